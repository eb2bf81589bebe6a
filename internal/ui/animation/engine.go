// Package animation flashes the tray icon to draw attention to a finished countdown.
package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains pulse timing values.
type Config struct {
	OnDuration  Range
	OffDuration Range
	// Pulses bounds the number of on/off cycles. Zero pulses until stopped.
	Pulses int
}

// Frames is the icon pair a pulse alternates between.
type Frames struct {
	On   fyne.Resource
	Off  fyne.Resource
	Rest fyne.Resource
}

// Engine runs at most one pulse at a time.
type Engine struct {
	mu         sync.Mutex
	config     Config
	updateIcon func(fyne.Resource)
	cancel     context.CancelFunc
	rng        *rand.Rand
}

// New creates a new animation engine.
func New(config Config, updateIcon func(fyne.Resource)) *Engine {
	return &Engine{
		config:     config,
		updateIcon: updateIcon,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// StartPulse alternates frames.On and frames.Off, replacing any running pulse.
// frames.Rest is shown when the pulse runs out; a stopped pulse leaves the icon alone.
func (engine *Engine) StartPulse(ctx context.Context, frames Frames) {
	engine.start(ctx, func(runCtx context.Context) {
		for i := 0; engine.config.Pulses == 0 || i < engine.config.Pulses; i++ {
			engine.updateIcon(frames.On)
			if !sleepWithContext(runCtx, engine.config.OnDuration.Random(engine.rng)) {
				return
			}
			engine.updateIcon(frames.Off)
			if !sleepWithContext(runCtx, engine.config.OffDuration.Random(engine.rng)) {
				return
			}
		}
		if frames.Rest != nil {
			engine.updateIcon(frames.Rest)
		}
	})
}

// Stop terminates any active pulse.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	engine.mu.Unlock()

	go run(runCtx)
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
