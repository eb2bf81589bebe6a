package main

import (
	"context"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"zentimer/internal/app"
	"zentimer/internal/config"
	"zentimer/internal/core/clock"
	"zentimer/internal/core/model"
	"zentimer/internal/logging"
	"zentimer/internal/platform"
	"zentimer/internal/storage"
	"zentimer/internal/ui/animation"
	"zentimer/internal/ui/preferences"
	"zentimer/internal/ui/timer"
	"zentimer/internal/ui/tray"
	"zentimer/resources"
)

// desktopSession holds the GUI collaborators. Fields are only touched on the fyne thread.
type desktopSession struct {
	ctx         context.Context
	configPath  string
	settings    preferences.Settings
	coordinator *app.Coordinator
	player      *platform.SoundPlayer
	view        *timer.Window
	prefs       *preferences.Window
	tray        *tray.Manager
	pulse       *animation.Engine
	logger      logging.Logger
}

func runDesktop(options config.Options, guard *platform.InstanceGuard, logger logging.Logger) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.SetIcon(resources.MustLogo(resources.IconActive))
	desktopApp, hasTray := fyneApp.(desktop.App)

	settings := options.Settings
	dbusNotifier := platform.NewDBusNotifier(appName, "")
	defer dbusNotifier.Close()

	mainWindow := fyneApp.NewWindow(settings.BaseTitle)
	player := platform.NewSoundPlayer(settings.SoundURL, settings.SoundVolume)
	coordinator := app.New(coordinatorConfig(settings), app.Deps{
		Notifier: platform.NewFallbackNotifier(dbusNotifier, platform.NewFyneNotifier(fyneApp)),
		Player:   player,
		Title:    timer.NewTitleSink(mainWindow, hasTray),
		Idle:     platform.NewIdleProvider(),
		Logger:   logger,
	})

	session := &desktopSession{
		ctx:         ctx,
		configPath:  options.ConfigPath,
		settings:    settings,
		coordinator: coordinator,
		player:      player,
		view:        timer.New(mainWindow, coordinator, coordinator.Tasks()),
		logger:      logger,
	}
	session.prefs = preferences.New(fyneApp, settings, preferences.Callbacks{
		OnSave:              session.saveSettings,
		OnRequestPermission: session.requestPermission,
	})
	session.prefs.SetPermission(coordinator.Permission())

	if hasTray {
		session.tray = tray.New(desktopApp, tray.Callbacks{
			OnToggle:      coordinator.Toggle,
			OnReset:       coordinator.Reset,
			OnShow:        session.view.Show,
			OnPreferences: session.prefs.Show,
			OnQuit:        fyneApp.Quit,
		})
		session.tray.SetIcon(resources.MustLogo(resources.IconPaused))
		session.pulse = animation.New(animation.DefaultConfig(), func(icon fyne.Resource) {
			fyne.Do(func() { session.tray.SetIcon(icon) })
		})
		mainWindow.SetCloseIntercept(mainWindow.Hide)
	}
	mainWindow.SetMaster()

	coordinator.Tasks().OnChange(func(task model.Task, ok bool) {
		fyne.Do(func() { session.view.RenderTask(task, ok) })
	})
	coordinator.OnNotificationConfigChange(func(notification model.NotificationConfig) {
		fyne.Do(func() { session.applyNotificationConfig(notification) })
	})
	guard.OnActivate(func() {
		fyne.Do(session.view.Show)
	})

	events := coordinator.Subscribe(16)
	go func() {
		for event := range events {
			event := event
			fyne.Do(func() { session.handleEvent(event) })
		}
	}()

	coordinator.Run(ctx)
	if settings.NotificationsEnabled {
		session.requestPermission()
	}
	if options.Task != "" {
		if _, err := coordinator.Tasks().SetTask(options.Task); err != nil {
			logger.Warn("set task", "error", err)
		}
	}
	session.renderTray(coordinator.Snapshot())

	session.view.Show()
	fyneApp.Run()

	if session.pulse != nil {
		session.pulse.Stop()
	}
	coordinator.Close()
	return 0
}

func (session *desktopSession) handleEvent(event clock.Event) {
	session.view.Render(event.Snapshot)
	session.renderTray(event.Snapshot)
	if session.pulse == nil || event.Kind == clock.EventTick {
		return
	}

	if event.Kind == clock.EventFinish {
		session.view.Show()
		session.pulse.StartPulse(session.ctx, animation.Frames{
			On:   resources.MustLogo(resources.IconFinished),
			Off:  resources.MustLogo(resources.IconPaused),
			Rest: resources.MustLogo(resources.IconFinished),
		})
		return
	}
	session.pulse.Stop()
	if event.Active {
		session.tray.SetIcon(resources.MustLogo(resources.IconActive))
	} else {
		session.tray.SetIcon(resources.MustLogo(resources.IconPaused))
	}
}

func (session *desktopSession) renderTray(snapshot clock.Snapshot) {
	if session.tray == nil {
		return
	}
	status := clock.FormatTime(snapshot.Remaining) + " " + timer.PhaseText(snapshot.Phase)
	session.tray.SetState(tray.State{
		Status:    status,
		Running:   snapshot.Active,
		CanReset:  app.ResetVisible(snapshot),
		HasWindow: true,
	})
}

// requestPermission probes the notifier off the UI thread.
func (session *desktopSession) requestPermission() {
	go func() {
		permission, err := session.coordinator.RequestPermission(session.ctx)
		if err != nil {
			session.logger.Warn("notifications unavailable", "error", err)
		}
		fyne.Do(func() { session.prefs.SetPermission(permission) })
	}()
}

func (session *desktopSession) applyNotificationConfig(notification model.NotificationConfig) {
	updated := session.settings.WithNotificationConfig(notification)
	if updated == session.settings {
		return
	}
	session.settings = updated
	session.prefs.UpdateSettings(updated)
	session.persist()
}

func (session *desktopSession) saveSettings(updated preferences.Settings) {
	initialChanged := updated.InitialDuration != session.settings.InitialDuration
	session.settings = updated
	session.coordinator.SetNotificationConfig(updated.NotificationConfig())
	session.coordinator.SetIdleConfig(updated.IdleConfig())
	session.player.SetVolume(updated.SoundVolume)
	if initialChanged {
		session.coordinator.SetInitial(int(updated.InitialDuration / time.Second))
	}
	session.persist()
}

func (session *desktopSession) persist() {
	if err := storage.SaveSettingsFile(session.configPath, session.settings); err != nil {
		session.logger.Warn("save settings", "error", err)
	}
}
