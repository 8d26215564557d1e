package arbor

type memoSlot[D comparable, T any] struct {
	dep   D
	value T
}

func (*memoSlot[D, T]) hookType() HookType { return HookMemo }

// UseMemo returns compute(dep), recomputing only when dep differs from the
// dependency of the previous render. It never schedules an update.
//
// Dependencies are compared like element params, so an interface-typed
// dependency holding a slice or map is compared by value.
func UseMemo[D comparable, T any](m *Model, dep D, compute func(D) T) T {
	s := m.mustActive("UseMemo")
	if slot, ok := readSlot[*memoSlot[D, T]](m, s, HookMemo); ok {
		if defaultEquals(slot.dep, dep) {
			return slot.value
		}
		s.slots.back()
	}
	slot := &memoSlot[D, T]{dep: dep, value: compute(dep)}
	s.slots.put(slot)
	return slot.value
}

type rememberSlot[T any] struct {
	value T
}

func (*rememberSlot[T]) hookType() HookType { return HookRemember }

// Remember returns the value init produced on the scope's first render.
func Remember[T any](m *Model, init func() T) T {
	s := m.mustActive("Remember")
	if slot, ok := readSlot[*rememberSlot[T]](m, s, HookRemember); ok {
		return slot.value
	}
	slot := &rememberSlot[T]{value: init()}
	s.slots.put(slot)
	return slot.value
}
