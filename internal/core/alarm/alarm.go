// Package alarm plays the alert sound and raises the "Time's Up!" notification
// when a countdown finishes.
package alarm

import (
	"context"
	"sync"
	"time"

	"zentimer/internal/core/clock"
	"zentimer/internal/core/model"
	"zentimer/internal/logging"
)

const (
	// Title is the heading of the finish notification.
	Title = "Time's Up!"
	// FallbackBody is used when no task is set.
	FallbackBody = "Timer Finished"

	playbackTimeout = 30 * time.Second
	deliveryTimeout = 5 * time.Second
)

// Player plays the alert sound once.
type Player interface {
	Play(ctx context.Context) error
}

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

// Trigger fires once per transition into the finished state.
type Trigger struct {
	mu       sync.Mutex
	finished bool

	player   Player
	notifier Notifier
	config   ConfigSource
	tasks    TaskSource
	logger   logging.Logger

	run func(func())
}

// New creates a trigger. A nil player or notifier disables that half.
func New(player Player, notifier Notifier, config ConfigSource, tasks TaskSource, logger logging.Logger) *Trigger {
	return &Trigger{
		player:   player,
		notifier: notifier,
		config:   config,
		tasks:    tasks,
		logger:   logger,
		run:      func(fn func()) { go fn() },
	}
}

// Observe implements clock.Observer.
func (trigger *Trigger) Observe(event clock.Event) {
	trigger.mu.Lock()
	was := trigger.finished
	trigger.finished = event.Finished
	trigger.mu.Unlock()

	if was || !event.Finished {
		return
	}
	trigger.logger.Info("countdown finished", "initial", clock.FormatTime(event.Initial))
	trigger.playSound()
	trigger.notify()
}

func (trigger *Trigger) playSound() {
	if trigger.player == nil {
		return
	}
	trigger.run(func() {
		ctx, cancel := context.WithTimeout(context.Background(), playbackTimeout)
		defer cancel()
		if err := trigger.player.Play(ctx); err != nil {
			trigger.logger.Warn("alarm playback failed", "error", err)
		}
	})
}

func (trigger *Trigger) notify() {
	if trigger.notifier == nil || !trigger.config.NotificationConfig().Enabled {
		return
	}
	if permission := trigger.notifier.Permission(); permission != model.PermissionGranted {
		trigger.logger.Debug("finish notification skipped", "permission", permission)
		return
	}
	notification := model.Notification{
		Title:      Title,
		Body:       Body(trigger.tasks.Name()),
		Persistent: true,
	}
	trigger.run(func() {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		defer cancel()
		if err := trigger.notifier.Notify(ctx, notification); err != nil {
			trigger.logger.Warn("finish notification failed", "error", err)
		}
	})
}

// Body returns the finish notification text for taskName.
func Body(taskName string) string {
	if taskName == "" {
		return FallbackBody
	}
	return "Finished: " + taskName
}
