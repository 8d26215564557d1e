package arbor

import (
	"fmt"
	"reflect"
)

// ScopeState is the lifecycle state of a scope.
type ScopeState uint8

const (
	// ScopeUnattached is a scope that was created but never enqueued.
	ScopeUnattached ScopeState = iota
	// ScopePending is a scope waiting in the update queue.
	ScopePending
	// ScopeRendering is the scope currently being processed.
	ScopeRendering
	// ScopeIdle is a rendered scope with no pending update.
	ScopeIdle
	// ScopeDestroyed is terminal: the scope was unmatched by its parent.
	ScopeDestroyed
)

// String returns a human-readable name for the state.
func (s ScopeState) String() string {
	switch s {
	case ScopeUnattached:
		return "unattached"
	case ScopePending:
		return "pending"
	case ScopeRendering:
		return "rendering"
	case ScopeIdle:
		return "idle"
	case ScopeDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("ScopeState(%d)", uint8(s))
	}
}

// contextMap holds context values keyed by their type.
type contextMap map[reflect.Type]any

func (c contextMap) clone() contextMap {
	if len(c) == 0 {
		return nil
	}
	out := make(contextMap, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Scope is the persistent node of the shadow tree. It owns one component
// instance's element snapshot, its ordered children, its hook slots and the
// context values it inherited from its parent.
//
// Scopes are owned top-down by their parent; nothing else holds a strong
// reference that outlives destruction. Hook handles refer back to a scope
// by ID through the Model.
type Scope struct {
	id       uint64
	parentID uint64
	depth    int

	element  Element
	children []*Scope

	slots   slotStore
	context contextMap

	state   ScopeState
	queued  int
	renders int

	// hookOrder records the hook kinds of the first render (debug mode).
	hookOrder []HookType
	hookIndex int
}

func newScope(el Element, parent *Scope, ctx contextMap) *Scope {
	s := &Scope{
		id:      nextID(),
		element: el,
		context: ctx,
	}
	if parent != nil {
		s.parentID = parent.id
		s.depth = parent.depth + 1
	}
	return s
}

// ID returns the scope's unique identifier.
func (s *Scope) ID() uint64 {
	return s.id
}

// ParentID returns the ID of the parent scope, or 0 for the root.
func (s *Scope) ParentID() uint64 {
	return s.parentID
}

// Depth returns the distance from the root scope.
func (s *Scope) Depth() int {
	return s.depth
}

// Element returns the current element snapshot.
func (s *Scope) Element() Element {
	return s.element
}

// Children returns a copy of the ordered child scopes.
func (s *Scope) Children() []*Scope {
	out := make([]*Scope, len(s.children))
	copy(out, s.children)
	return out
}

// SlotCount returns the number of hook slots allocated.
func (s *Scope) SlotCount() int {
	return s.slots.len()
}

// State returns the lifecycle state.
func (s *Scope) State() ScopeState {
	return s.state
}

// Renders returns how many times the scope's component has rendered.
func (s *Scope) Renders() int {
	return s.renders
}

// Destroyed reports whether the scope was destroyed.
func (s *Scope) Destroyed() bool {
	return s.state == ScopeDestroyed
}

// String implements fmt.Stringer.
func (s *Scope) String() string {
	return fmt.Sprintf("%s(scope %d)", s.element, s.id)
}

// walk visits s and its descendants depth-first, stopping a branch when fn
// returns false.
func (s *Scope) walk(fn func(*Scope) bool) {
	if !fn(s) {
		return
	}
	for _, child := range s.children {
		child.walk(fn)
	}
}

// destroy tears down s and its subtree. Children are destroyed last-first,
// then s's own slot cleanups run in slot order. Destroying twice is a no-op.
func (s *Scope) destroy(m *Model) {
	if s.state == ScopeDestroyed {
		return
	}

	children := s.children
	s.children = nil
	for i := len(children) - 1; i >= 0; i-- {
		children[i].destroy(m)
	}

	s.state = ScopeDestroyed
	m.forget(s)

	s.slots.dispose(func(index int, recovered any, stack []byte) {
		m.reportError(&RenderError{
			ScopeID:   s.id,
			Component: s.element.component.Name(),
			Phase:     "cleanup",
			Recovered: recovered,
			Stack:     string(stack),
		})
	})
	s.context = nil
	s.hookOrder = nil

	m.emit(Event{Kind: EventDestroyed, Scope: s})
}
