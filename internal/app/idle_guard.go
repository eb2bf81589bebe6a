package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"zentimer/internal/core/clock"
	"zentimer/internal/core/model"
	"zentimer/internal/logging"
	"zentimer/internal/platform"
)

const defaultIdleCheckInterval = 5 * time.Second

// IdleChecker returns the duration since last user input.
type IdleChecker interface {
	IdleDuration() (time.Duration, error)
}

type pauser interface {
	Snapshot() clock.Snapshot
	Pause() bool
}

// IdleGuard pauses a running countdown once the user has been away too long.
// A disabled guard keeps polling so it can be switched on later.
type IdleGuard struct {
	checker  IdleChecker
	engine   pauser
	interval time.Duration
	logger   logging.Logger

	mu     sync.Mutex
	config model.IdleConfig
}

// NewIdleGuard creates a guard.
func NewIdleGuard(checker IdleChecker, engine pauser, config model.IdleConfig, logger logging.Logger) *IdleGuard {
	if config.CheckInterval <= 0 {
		config.CheckInterval = defaultIdleCheckInterval
	}
	return &IdleGuard{
		checker:  checker,
		engine:   engine,
		interval: config.CheckInterval,
		logger:   logger,
		config:   config,
	}
}

// SetConfig replaces the enable flag and threshold. The check interval is fixed at creation.
func (guard *IdleGuard) SetConfig(config model.IdleConfig) {
	guard.mu.Lock()
	guard.config.Enabled = config.Enabled
	guard.config.PauseAfter = config.PauseAfter
	guard.mu.Unlock()
}

// Run polls until ctx is done or idle detection turns out to be unsupported.
func (guard *IdleGuard) Run(ctx context.Context) {
	ticker := time.NewTicker(guard.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !guard.check() {
				return
			}
		}
	}
}

// check reports false when the guard should stop for the session.
func (guard *IdleGuard) check() bool {
	guard.mu.Lock()
	config := guard.config
	guard.mu.Unlock()
	if !config.Enabled || !guard.engine.Snapshot().Active {
		return true
	}

	idle, err := guard.checker.IdleDuration()
	if err != nil {
		if errors.Is(err, platform.ErrIdleUnsupported) {
			guard.logger.Info("idle detection unavailable, idle pause disabled")
			return false
		}
		guard.logger.Warn("idle check failed", "error", err)
		return true
	}

	if idle >= config.PauseAfter && guard.engine.Pause() {
		guard.logger.Info("paused after inactivity", "idle", idle.Round(time.Second))
	}
	return true
}
