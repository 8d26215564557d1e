package arbor

import (
	"fmt"
	"runtime/debug"
)

// HookType identifies the kind of hook that owns a slot.
type HookType uint8

const (
	HookState HookType = iota + 1
	HookMemo
	HookEffect
	HookRemember
)

// String returns a human-readable name for the hook type.
func (h HookType) String() string {
	switch h {
	case HookState:
		return "State"
	case HookMemo:
		return "Memo"
	case HookEffect:
		return "Effect"
	case HookRemember:
		return "Remember"
	default:
		return fmt.Sprintf("HookType(%d)", uint8(h))
	}
}

// slot is one positional storage cell. Concrete slots are generic over the
// hook's value types, so a type assertion on read checks both the hook kind
// and its type parameters.
type slot interface {
	hookType() HookType
}

// disposer is implemented by slots that hold a cleanup action.
type disposer interface {
	dispose()
}

// slotStore is the append-only, cursor-addressed slot sequence of a scope.
type slotStore struct {
	slots  []slot
	cursor int
}

// reset rewinds the cursor for a new render.
func (s *slotStore) reset() {
	s.cursor = 0
}

// next returns the slot under the cursor and advances, or reports false
// without advancing when the cursor is past the end (first render of that
// hook).
func (s *slotStore) next() (slot, int, bool) {
	idx := s.cursor
	if idx >= len(s.slots) {
		return nil, idx, false
	}
	s.cursor++
	return s.slots[idx], idx, true
}

// back moves the cursor back one slot so that the following put overwrites
// the slot just read.
func (s *slotStore) back() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// put stores v under the cursor, appending on first render and replacing
// otherwise, then advances.
func (s *slotStore) put(v slot) {
	if s.cursor >= len(s.slots) {
		s.slots = append(s.slots, v)
	} else {
		s.slots[s.cursor] = v
	}
	s.cursor++
}

// len returns the number of allocated slots.
func (s *slotStore) len() int {
	return len(s.slots)
}

// dispose runs slot cleanups in slot order. Each cleanup runs at most once;
// a panicking cleanup is reported and does not stop the rest.
func (s *slotStore) dispose(report func(index int, recovered any, stack []byte)) {
	for i, sl := range s.slots {
		d, ok := sl.(disposer)
		if !ok {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					report(i, r, debug.Stack())
				}
			}()
			d.dispose()
		}()
	}
	s.slots = nil
	s.cursor = 0
}

// readSlot reads the next slot of the active scope as S. It returns false
// on the first render of that hook. A slot of another type panics with
// code A002.
func readSlot[S slot](m *Model, s *Scope, hook HookType) (S, bool) {
	m.trackHook(s, hook)
	raw, idx, ok := s.slots.next()
	if !ok {
		var zero S
		return zero, false
	}
	typed, ok := raw.(S)
	if !ok {
		panic(slotMismatch(s, idx, hook, raw))
	}
	return typed, true
}
