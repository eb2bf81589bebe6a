// Package titlebar alternates the window title between the remaining time and
// the focus task while a countdown runs.
package titlebar

import (
	"context"
	"sync"
	"time"

	"zentimer/internal/core/clock"
)

const (
	// DefaultBaseTitle is shown whenever the timer is not running.
	DefaultBaseTitle = "Simple Web Timer"
	// DefaultInterval is the time between title flips.
	DefaultInterval = 2 * time.Second
	// FallbackTaskName is shown in the task frame when no task is set.
	FallbackTaskName = "Focus"
)

// Sink receives title updates.
type Sink interface {
	SetTitle(title string)
}

// StateSource returns the live timer state.
type StateSource interface {
	Snapshot() clock.Snapshot
}

// TaskSource returns the current task name, or "" when there is none.
type TaskSource interface {
	Name() string
}

// Options configures a Ticker. Zero values use the defaults.
type Options struct {
	BaseTitle string
	Interval  time.Duration
}

// Ticker drives a Sink from engine events.
type Ticker struct {
	mu         sync.Mutex
	sink       Sink
	state      StateSource
	tasks      TaskSource
	baseTitle  string
	interval   time.Duration
	active     bool
	showTime   bool
	closed     bool
	generation uint64
	cancel     context.CancelFunc
}

// New creates a ticker. Nothing is written until the first event or ShowBase.
func New(sink Sink, state StateSource, tasks TaskSource, opts Options) *Ticker {
	if opts.BaseTitle == "" {
		opts.BaseTitle = DefaultBaseTitle
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	return &Ticker{
		sink:      sink,
		state:     state,
		tasks:     tasks,
		baseTitle: opts.BaseTitle,
		interval:  opts.Interval,
	}
}

// Observe implements clock.Observer.
func (ticker *Ticker) Observe(event clock.Event) {
	ticker.mu.Lock()
	defer ticker.mu.Unlock()
	if ticker.closed || event.Active == ticker.active {
		return
	}
	ticker.active = event.Active
	if !event.Active {
		ticker.stopLocked()
		ticker.sink.SetTitle(ticker.baseTitle)
		return
	}

	ticker.showTime = true
	ticker.sink.SetTitle(TimeTitle(event.Remaining))
	ticker.showTime = false
	ticker.startLocked()
}

// ShowBase writes the base title.
func (ticker *Ticker) ShowBase() {
	ticker.mu.Lock()
	defer ticker.mu.Unlock()
	if ticker.closed {
		return
	}
	ticker.sink.SetTitle(ticker.baseTitle)
}

// Close stops flipping and restores the base title.
func (ticker *Ticker) Close() {
	ticker.mu.Lock()
	defer ticker.mu.Unlock()
	if ticker.closed {
		return
	}
	ticker.stopLocked()
	ticker.active = false
	ticker.closed = true
	ticker.sink.SetTitle(ticker.baseTitle)
}

func (ticker *Ticker) startLocked() {
	ticker.stopLocked()
	ctx, cancel := context.WithCancel(context.Background())
	ticker.cancel = cancel
	go ticker.run(ctx, ticker.generation)
}

func (ticker *Ticker) stopLocked() {
	if ticker.cancel != nil {
		ticker.cancel()
		ticker.cancel = nil
	}
	ticker.generation++
}

func (ticker *Ticker) run(ctx context.Context, generation uint64) {
	t := time.NewTicker(ticker.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if !ticker.flip(generation) {
				return
			}
		}
	}
}

// flip writes the next frame. It reports false once the loop is stale.
func (ticker *Ticker) flip(generation uint64) bool {
	ticker.mu.Lock()
	defer ticker.mu.Unlock()
	if generation != ticker.generation || !ticker.active {
		return false
	}

	if ticker.showTime {
		ticker.sink.SetTitle(TimeTitle(ticker.state.Snapshot().Remaining))
	} else {
		ticker.sink.SetTitle(TaskTitle(ticker.tasks.Name()))
	}
	ticker.showTime = !ticker.showTime
	return true
}

// TimeTitle renders the countdown frame.
func TimeTitle(remaining int) string {
	return "⏳ " + clock.FormatTime(remaining)
}

// TaskTitle renders the task frame.
func TaskTitle(name string) string {
	if name == "" {
		name = FallbackTaskName
	}
	return "🎯 " + name
}
