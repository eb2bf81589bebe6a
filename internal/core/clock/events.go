package clock

import "time"

// Phase is the derived countdown state.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseRunning  Phase = "running"
	PhasePaused   Phase = "paused"
	PhaseFinished Phase = "finished"
)

// EventKind identifies what caused a state change.
type EventKind string

const (
	EventStart  EventKind = "start"
	EventPause  EventKind = "pause"
	EventReset  EventKind = "reset"
	EventAdjust EventKind = "adjust"
	EventTick   EventKind = "tick"
	EventFinish EventKind = "finish"
)

// Snapshot is a consistent copy of the timer state.
type Snapshot struct {
	Remaining int
	Initial   int
	Active    bool
	Finished  bool
	Phase     Phase
}

// Event is published to observers after every state change.
type Event struct {
	Kind EventKind
	Snapshot
	At time.Time
}

// Ticked reports whether the event was produced by the tick loop.
func (event Event) Ticked() bool {
	return event.Kind == EventTick || event.Kind == EventFinish
}

// Observer reacts synchronously to engine state changes.
// Observers must not call engine commands from Observe.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Observe calls fn(event).
func (fn ObserverFunc) Observe(event Event) {
	fn(event)
}
