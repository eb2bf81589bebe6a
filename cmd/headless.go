package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"zentimer/internal/app"
	"zentimer/internal/config"
	"zentimer/internal/logging"
	"zentimer/internal/platform"
	"zentimer/internal/ui/terminal"
)

func runHeadless(options config.Options, logger logging.Logger) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings := options.Settings
	dbusNotifier := platform.NewDBusNotifier(appName, "")
	defer dbusNotifier.Close()

	title := platform.NewTerminalTitle(os.Stdout)
	coordinator := app.New(coordinatorConfig(settings), app.Deps{
		Notifier: platform.NewFallbackNotifier(dbusNotifier),
		Player:   platform.NewSoundPlayer(settings.SoundURL, settings.SoundVolume),
		Title:    title,
		Idle:     platform.NewIdleProvider(),
		Logger:   logger,
	})
	coordinator.Run(ctx)
	defer coordinator.Close()

	if settings.NotificationsEnabled {
		if _, err := coordinator.RequestPermission(ctx); err != nil {
			logger.Warn("notifications unavailable", "error", err)
		}
	}
	if options.Task != "" {
		if _, err := coordinator.Tasks().SetTask(options.Task); err != nil {
			logger.Warn("set task", "error", err)
		}
	}

	runner := terminal.New(coordinator, coordinator.Tasks(), title, os.Stdin, title, logger)
	if err := runner.Run(ctx); err != nil {
		logger.Error("headless runner", "error", err)
		return 1
	}
	return 0
}
