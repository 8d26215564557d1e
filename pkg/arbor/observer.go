package arbor

import (
	"fmt"
	"time"
)

// EventKind identifies a scope lifecycle event.
type EventKind uint8

const (
	// EventCreated fires when the reconciler (or Render) creates a scope.
	EventCreated EventKind = iota + 1
	// EventUpdated fires when a scope receives a changed element.
	EventUpdated
	// EventDestroyed fires after a scope's cleanups ran.
	EventDestroyed
	// EventProcessed fires after a scope was rendered and reconciled,
	// successfully or not.
	EventProcessed
	// EventStale fires when a queued entry for a destroyed scope is skipped.
	EventStale
	// EventIdle fires when the update queue becomes empty.
	EventIdle
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventCreated:
		return "created"
	case EventUpdated:
		return "updated"
	case EventDestroyed:
		return "destroyed"
	case EventProcessed:
		return "processed"
	case EventStale:
		return "stale"
	case EventIdle:
		return "idle"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Event describes one lifecycle event.
type Event struct {
	Kind  EventKind
	Model *Model

	// Scope is nil for EventIdle.
	Scope *Scope

	// Duration and Err are set for EventProcessed.
	Duration time.Duration
	Err      error
}

// Observer receives lifecycle events synchronously on the model's
// goroutine. Observers must not call back into the model.
type Observer interface {
	Observe(ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ev Event)

// Observe calls f.
func (f ObserverFunc) Observe(ev Event) {
	f(ev)
}
