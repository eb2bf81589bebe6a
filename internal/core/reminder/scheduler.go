// Package reminder raises periodic "stay focused" notifications while the timer runs.
package reminder

import (
	"context"
	"strings"
	"sync"
	"time"

	"zentimer/internal/core/clock"
	"zentimer/internal/core/model"
	"zentimer/internal/logging"
)

const (
	// Title is the heading of every reminder.
	Title = "Stay Focused"
	// FallbackTaskName fills the placeholder when no task is set.
	FallbackTaskName = "Task"

	deliveryTimeout = 5 * time.Second
)

// Notifier delivers desktop notifications.
type Notifier interface {
	Permission() model.Permission
	Notify(ctx context.Context, notification model.Notification) error
}

// ConfigSource returns the live notification settings.
type ConfigSource interface {
	NotificationConfig() model.NotificationConfig
}

// TaskSource returns the current task name, or "" when there is none.
type TaskSource interface {
	Name() string
}

// Scheduler decides once per tick whether a reminder is due.
type Scheduler struct {
	mu          sync.Mutex
	config      ConfigSource
	notifier    Notifier
	tasks       TaskSource
	logger      logging.Logger
	previous    int
	hasPrevious bool

	// run hands delivery off the engine's dispatch path.
	run func(func())
}

// New creates a scheduler.
func New(config ConfigSource, notifier Notifier, tasks TaskSource, logger logging.Logger) *Scheduler {
	return &Scheduler{
		config:   config,
		notifier: notifier,
		tasks:    tasks,
		logger:   logger,
		run:      func(fn func()) { go fn() },
	}
}

// Observe implements clock.Observer.
func (scheduler *Scheduler) Observe(event clock.Event) {
	scheduler.mu.Lock()
	previous, hadPrevious := scheduler.previous, scheduler.hasPrevious
	scheduler.previous, scheduler.hasPrevious = event.Remaining, true
	scheduler.mu.Unlock()

	// Commands only rebaseline; reminders are evaluated on ticks.
	if !event.Ticked() {
		return
	}
	// A rise means the countdown was adjusted or reset.
	if !hadPrevious || previous < event.Remaining {
		previous = event.Remaining + 1
	}

	config := scheduler.config.NotificationConfig()
	if !Due(config, event.Snapshot, previous) {
		return
	}
	if permission := scheduler.notifier.Permission(); permission != model.PermissionGranted {
		scheduler.logger.Debug("reminder skipped", "permission", permission)
		return
	}

	notification := model.Notification{
		Title: Title,
		Body:  RenderMessage(config.MessageTemplate, scheduler.tasks.Name()),
	}
	scheduler.run(func() {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		defer cancel()
		if err := scheduler.notifier.Notify(ctx, notification); err != nil {
			scheduler.logger.Warn("reminder delivery failed", "error", err)
			return
		}
		scheduler.logger.Debug("reminder sent", "remaining", event.Remaining)
	})
}

// Due reports whether a multiple of the reminder frequency was crossed between
// previous (exclusive) and the snapshot's remaining time (inclusive). With one
// decrement per tick this is exactly remaining%frequency == 0; a coalesced tick
// still fires for the multiple it skipped. The configured initial duration never
// fires so that starting on a multiple stays quiet.
func Due(config model.NotificationConfig, snapshot clock.Snapshot, previous int) bool {
	if !config.Enabled || !snapshot.Active || snapshot.Remaining <= 0 {
		return false
	}
	frequency := config.FrequencySeconds()
	for multiple := ((previous - 1) / frequency) * frequency; multiple >= snapshot.Remaining && multiple > 0; multiple -= frequency {
		if multiple != snapshot.Initial {
			return true
		}
	}
	return false
}

// RenderMessage substitutes the first task placeholder in template.
func RenderMessage(template, taskName string) string {
	if taskName == "" {
		taskName = FallbackTaskName
	}
	return strings.Replace(template, model.TaskPlaceholder, taskName, 1)
}
