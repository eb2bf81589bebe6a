// Package app wires the clock engine to its observers and exposes the command
// surface the views and the headless runner use.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"zentimer/internal/core/alarm"
	"zentimer/internal/core/clock"
	"zentimer/internal/core/model"
	"zentimer/internal/core/reminder"
	"zentimer/internal/core/task"
	"zentimer/internal/core/titlebar"
	"zentimer/internal/logging"
)

const permissionTimeout = 10 * time.Second

// Notifier delivers desktop notifications and owns the permission state.
type Notifier interface {
	Permission() model.Permission
	RequestPermission(ctx context.Context) (model.Permission, error)
	Notify(ctx context.Context, notification model.Notification) error
}

// Player plays the alarm sound.
type Player interface {
	Play(ctx context.Context) error
}

// Config collects the runtime settings the coordinator needs.
type Config struct {
	Clock         model.ClockConfig
	Notification  model.NotificationConfig
	Idle          model.IdleConfig
	BaseTitle     string
	TitleInterval time.Duration
}

// Deps are the side-effecting ports. Idle may be nil when idle detection is not wanted at all.
type Deps struct {
	Notifier Notifier
	Player   Player
	Title    titlebar.Sink
	Idle     IdleChecker
	Logger   logging.Logger
}

// Coordinator owns the engine, the task tracker and the notification settings.
type Coordinator struct {
	engine   *clock.Engine
	tasks    *task.Tracker
	notifier Notifier
	title    *titlebar.Ticker
	idle     *IdleGuard
	logger   logging.Logger

	mu           sync.RWMutex
	notification model.NotificationConfig
	onConfig     []func(model.NotificationConfig)

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New builds a coordinator and registers the alarm, reminder and title observers.
func New(config Config, deps Deps) *Coordinator {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	coordinator := &Coordinator{
		engine:       clock.New(config.Clock),
		tasks:        task.NewTracker(),
		notifier:     deps.Notifier,
		logger:       logger,
		notification: config.Notification.Normalized(),
	}

	coordinator.engine.Observe(alarm.New(deps.Player, deps.Notifier, coordinator, coordinator.tasks, logger))
	if deps.Notifier != nil {
		coordinator.engine.Observe(reminder.New(coordinator, deps.Notifier, coordinator.tasks, logger))
	}
	if deps.Title != nil {
		coordinator.title = titlebar.New(deps.Title, coordinator.engine, coordinator.tasks, titlebar.Options{
			BaseTitle: config.BaseTitle,
			Interval:  config.TitleInterval,
		})
		coordinator.engine.Observe(coordinator.title)
	}
	if deps.Idle != nil {
		coordinator.idle = NewIdleGuard(deps.Idle, coordinator.engine, config.Idle, logger)
	}
	coordinator.engine.Observe(clock.ObserverFunc(coordinator.logEvent))
	return coordinator
}

// Run starts background helpers. It returns immediately.
func (coordinator *Coordinator) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	coordinator.cancel = cancel
	if coordinator.title != nil {
		coordinator.title.ShowBase()
	}
	if coordinator.idle != nil {
		coordinator.wg.Add(1)
		go func() {
			defer coordinator.wg.Done()
			coordinator.idle.Run(ctx)
		}()
	}
}

// Close stops the engine and every helper goroutine.
func (coordinator *Coordinator) Close() {
	if coordinator.cancel != nil {
		coordinator.cancel()
	}
	coordinator.wg.Wait()
	coordinator.engine.Close()
	if coordinator.title != nil {
		coordinator.title.Close()
	}
}

// Tasks returns the focus task tracker.
func (coordinator *Coordinator) Tasks() *task.Tracker {
	return coordinator.tasks
}

// Snapshot returns the current timer state.
func (coordinator *Coordinator) Snapshot() clock.Snapshot {
	return coordinator.engine.Snapshot()
}

// Subscribe returns a lossy channel of timer events for display.
func (coordinator *Coordinator) Subscribe(buffer int) <-chan clock.Event {
	return coordinator.engine.Subscribe(buffer)
}

// Start begins counting down.
func (coordinator *Coordinator) Start() bool {
	return coordinator.engine.Start()
}

// Pause stops counting down.
func (coordinator *Coordinator) Pause() bool {
	return coordinator.engine.Pause()
}

// Toggle pauses a running timer and starts any other.
func (coordinator *Coordinator) Toggle() {
	if coordinator.engine.Snapshot().Active {
		coordinator.engine.Pause()
		return
	}
	coordinator.engine.Start()
}

// Reset returns to the initial duration.
func (coordinator *Coordinator) Reset() {
	coordinator.engine.Reset()
}

// AddMinutes adjusts a stopped timer by whole minutes.
func (coordinator *Coordinator) AddMinutes(minutes int) bool {
	return coordinator.engine.AddTime(minutes * 60)
}

// SetDuration applies manual "MM" or "MM:SS" input.
func (coordinator *Coordinator) SetDuration(text string) error {
	if !coordinator.engine.SetDuration(text) {
		return fmt.Errorf("set duration: %q is not MM or MM:SS", text)
	}
	return nil
}

// SetInitial changes the duration Reset returns to.
func (coordinator *Coordinator) SetInitial(seconds int) {
	coordinator.engine.SetInitial(seconds)
}

// SetIdleConfig switches idle pausing on or off and changes its threshold.
func (coordinator *Coordinator) SetIdleConfig(config model.IdleConfig) {
	if coordinator.idle != nil {
		coordinator.idle.SetConfig(config)
	}
}

// NotificationConfig implements the reminder and alarm config sources.
func (coordinator *Coordinator) NotificationConfig() model.NotificationConfig {
	coordinator.mu.RLock()
	defer coordinator.mu.RUnlock()
	return coordinator.notification
}

// SetNotificationConfig replaces the reminder settings. The frequency is clamped.
func (coordinator *Coordinator) SetNotificationConfig(config model.NotificationConfig) {
	config = config.Normalized()
	coordinator.mu.Lock()
	coordinator.notification = config
	handlers := append([]func(model.NotificationConfig)(nil), coordinator.onConfig...)
	coordinator.mu.Unlock()

	for _, handler := range handlers {
		handler(config)
	}
}

// OnNotificationConfigChange registers a callback for settings changes.
func (coordinator *Coordinator) OnNotificationConfigChange(handler func(model.NotificationConfig)) {
	coordinator.mu.Lock()
	coordinator.onConfig = append(coordinator.onConfig, handler)
	coordinator.mu.Unlock()
}

// Permission reports the notification permission.
func (coordinator *Coordinator) Permission() model.Permission {
	if coordinator.notifier == nil {
		return model.PermissionDenied
	}
	return coordinator.notifier.Permission()
}

// RequestPermission asks the notifier for permission. Granting enables reminders.
func (coordinator *Coordinator) RequestPermission(ctx context.Context) (model.Permission, error) {
	if coordinator.notifier == nil {
		return model.PermissionDenied, nil
	}
	ctx, cancel := context.WithTimeout(ctx, permissionTimeout)
	defer cancel()

	permission, err := coordinator.notifier.RequestPermission(ctx)
	if err != nil {
		coordinator.logger.Debug("notification permission request failed", "error", err)
	}
	if permission == model.PermissionGranted {
		config := coordinator.NotificationConfig()
		config.Enabled = true
		coordinator.SetNotificationConfig(config)
	}
	coordinator.logger.Info("notification permission", "permission", permission)
	return permission, err
}

func (coordinator *Coordinator) logEvent(event clock.Event) {
	if event.Kind == clock.EventTick {
		return
	}
	coordinator.logger.Debug("timer "+string(event.Kind),
		"remaining", clock.FormatTime(event.Remaining),
		"phase", event.Phase,
	)
}

// ResetVisible reports whether a Reset control should be offered.
func ResetVisible(snapshot clock.Snapshot) bool {
	return snapshot.Active || snapshot.Finished || snapshot.Remaining != snapshot.Initial
}

// DecreaseEnabled reports whether time may be subtracted.
func DecreaseEnabled(snapshot clock.Snapshot) bool {
	return !snapshot.Active
}
