package clock

import (
	"context"
	"sync"
	"time"

	"zentimer/internal/core/model"
)

// Engine is the countdown state machine. All mutation goes through its commands.
type Engine struct {
	// dispatchMu serializes mutate-then-notify sequences.
	dispatchMu sync.Mutex
	mu         sync.Mutex

	interval   time.Duration
	initial    int
	remaining  int
	active     bool
	finished   bool
	started    bool
	closed     bool
	generation uint64
	cancelLoop context.CancelFunc

	observers []Observer
	events    []chan Event
}

// New creates an idle engine holding the configured initial duration.
func New(config model.ClockConfig) *Engine {
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}
	if config.InitialSeconds < 0 {
		config.InitialSeconds = 0
	}
	return &Engine{
		interval:  config.TickInterval,
		initial:   config.InitialSeconds,
		remaining: config.InitialSeconds,
	}
}

// Observe registers an observer that runs after every state change.
func (engine *Engine) Observe(observer Observer) {
	engine.mu.Lock()
	engine.observers = append(engine.observers, observer)
	engine.mu.Unlock()
}

// Subscribe registers a display channel. Events are dropped when it is full.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	if engine.closed {
		close(ch)
	} else {
		engine.events = append(engine.events, ch)
	}
	engine.mu.Unlock()
	return ch
}

// Snapshot returns the current state.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.snapshotLocked()
}

// Start begins counting down. It is a no-op at zero or while running.
func (engine *Engine) Start() bool {
	engine.dispatchMu.Lock()
	defer engine.dispatchMu.Unlock()

	engine.mu.Lock()
	if engine.closed || engine.active || engine.remaining <= 0 {
		engine.mu.Unlock()
		return false
	}
	engine.active = true
	engine.finished = false
	engine.started = true
	engine.startLoopLocked()
	event := engine.eventLocked(EventStart, time.Now())
	engine.mu.Unlock()

	engine.dispatch(event)
	return true
}

// Pause stops the tick loop. A pending tick never lands after Pause returns.
func (engine *Engine) Pause() bool {
	engine.dispatchMu.Lock()
	defer engine.dispatchMu.Unlock()

	engine.mu.Lock()
	if !engine.active {
		engine.mu.Unlock()
		return false
	}
	engine.stopLoopLocked()
	engine.active = false
	event := engine.eventLocked(EventPause, time.Now())
	engine.mu.Unlock()

	engine.dispatch(event)
	return true
}

// Reset returns to idle with the initial duration.
func (engine *Engine) Reset() {
	engine.mu.Lock()
	initial := engine.initial
	engine.mu.Unlock()
	engine.ResetTo(initial)
}

// ResetTo returns to idle holding seconds. Negative values clamp to zero.
func (engine *Engine) ResetTo(seconds int) {
	if seconds < 0 {
		seconds = 0
	}

	engine.dispatchMu.Lock()
	defer engine.dispatchMu.Unlock()

	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.resetLocked(seconds)
	event := engine.eventLocked(EventReset, time.Now())
	engine.mu.Unlock()

	engine.dispatch(event)
}

// SetDuration parses "MM" or "MM:SS" and resets to it.
// Unparseable input leaves the state untouched.
func (engine *Engine) SetDuration(text string) bool {
	seconds, ok := ParseDuration(text)
	if !ok {
		return false
	}
	engine.ResetTo(seconds)
	return true
}

// SetInitial changes the duration used by Reset. An untouched idle timer
// picks up the new value immediately.
func (engine *Engine) SetInitial(seconds int) {
	if seconds < 0 {
		seconds = 0
	}

	engine.dispatchMu.Lock()
	defer engine.dispatchMu.Unlock()

	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	untouched := !engine.started && !engine.finished && engine.remaining == engine.initial
	engine.initial = seconds
	if !untouched {
		engine.mu.Unlock()
		return
	}
	engine.resetLocked(seconds)
	event := engine.eventLocked(EventReset, time.Now())
	engine.mu.Unlock()

	engine.dispatch(event)
}

// AddTime adjusts the remaining time by delta seconds, floored at zero.
// It is rejected while running and never changes the active/finished flags.
func (engine *Engine) AddTime(delta int) bool {
	engine.dispatchMu.Lock()
	defer engine.dispatchMu.Unlock()

	engine.mu.Lock()
	if engine.closed || engine.active {
		engine.mu.Unlock()
		return false
	}
	engine.remaining += delta
	if engine.remaining < 0 {
		engine.remaining = 0
	}
	event := engine.eventLocked(EventAdjust, time.Now())
	engine.mu.Unlock()

	engine.dispatch(event)
	return true
}

// Close stops the tick loop and closes display subscribers.
func (engine *Engine) Close() {
	engine.dispatchMu.Lock()
	defer engine.dispatchMu.Unlock()

	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.stopLoopLocked()
	engine.active = false
	engine.closed = true
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (engine *Engine) run(ctx context.Context, generation uint64) {
	ticker := time.NewTicker(engine.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case tickTime := <-ticker.C:
			if !engine.tick(generation, tickTime) {
				return
			}
		}
	}
}

// tick decrements once. It reports whether the loop should keep going.
func (engine *Engine) tick(generation uint64, tickTime time.Time) bool {
	engine.dispatchMu.Lock()
	defer engine.dispatchMu.Unlock()

	engine.mu.Lock()
	if generation != engine.generation || !engine.active {
		engine.mu.Unlock()
		return false
	}

	kind := EventTick
	if engine.remaining <= 1 {
		engine.remaining = 0
		engine.active = false
		engine.finished = true
		engine.stopLoopLocked()
		kind = EventFinish
	} else {
		engine.remaining--
	}
	event := engine.eventLocked(kind, tickTime)
	engine.mu.Unlock()

	engine.dispatch(event)
	return kind == EventTick
}

func (engine *Engine) startLoopLocked() {
	engine.stopLoopLocked()
	ctx, cancel := context.WithCancel(context.Background())
	engine.cancelLoop = cancel
	go engine.run(ctx, engine.generation)
}

// stopLoopLocked cancels the loop and invalidates any tick already in flight.
func (engine *Engine) stopLoopLocked() {
	if engine.cancelLoop != nil {
		engine.cancelLoop()
		engine.cancelLoop = nil
	}
	engine.generation++
}

func (engine *Engine) resetLocked(seconds int) {
	engine.stopLoopLocked()
	engine.active = false
	engine.finished = false
	engine.started = false
	engine.remaining = seconds
}

func (engine *Engine) snapshotLocked() Snapshot {
	phase := PhaseIdle
	switch {
	case engine.finished:
		phase = PhaseFinished
	case engine.active:
		phase = PhaseRunning
	case engine.started:
		phase = PhasePaused
	}
	return Snapshot{
		Remaining: engine.remaining,
		Initial:   engine.initial,
		Active:    engine.active,
		Finished:  engine.finished,
		Phase:     phase,
	}
}

func (engine *Engine) eventLocked(kind EventKind, at time.Time) Event {
	return Event{
		Kind:     kind,
		Snapshot: engine.snapshotLocked(),
		At:       at,
	}
}

// dispatch runs with dispatchMu held and engine.mu released.
func (engine *Engine) dispatch(event Event) {
	engine.mu.Lock()
	observers := append([]Observer(nil), engine.observers...)
	events := append([]chan Event(nil), engine.events...)
	engine.mu.Unlock()

	for _, observer := range observers {
		observer.Observe(event)
	}
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
