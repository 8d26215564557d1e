package arbor

// State is a mutable cell stored in a hook slot. The *State returned by
// UseState is the same pointer on every render of the scope, so it can be
// captured by callbacks and passed in params.
//
// A State refers to its scope by ID, not by pointer. Once the scope is
// destroyed, Set, SetIfChanged and Update still write the cell but no
// longer schedule anything.
type State[T any] struct {
	value   T
	equal   func(a, b T) bool
	model   *Model
	scopeID uint64
}

func (s *State[T]) hookType() HookType { return HookState }

// UseState returns the state cell of the current hook slot, calling init to
// produce the initial value on the scope's first render.
func UseState[T any](m *Model, init func() T) *State[T] {
	s := m.mustActive("UseState")
	if st, ok := readSlot[*State[T]](m, s, HookState); ok {
		return st
	}
	st := &State[T]{
		value:   init(),
		model:   m,
		scopeID: s.id,
	}
	s.slots.put(st)
	return st
}

// Get returns the current value.
func (s *State[T]) Get() T {
	return s.value
}

// Set replaces the value and requests an update of the owning scope.
func (s *State[T]) Set(value T) {
	s.value = value
	s.request()
}

// SetIfChanged replaces the value and requests an update only when value
// differs from the current one. It reports whether it did.
func (s *State[T]) SetIfChanged(value T) bool {
	if s.equals(s.value, value) {
		return false
	}
	s.value = value
	s.request()
	return true
}

// Update mutates the value in place and always requests an update.
func (s *State[T]) Update(fn func(v *T)) {
	fn(&s.value)
	s.request()
}

// WithEquals sets the equality function used by SetIfChanged. The default
// uses == for comparable values and reflect.DeepEqual otherwise.
func (s *State[T]) WithEquals(fn func(a, b T) bool) *State[T] {
	s.equal = fn
	return s
}

// Alive reports whether the owning scope still exists.
func (s *State[T]) Alive() bool {
	_, ok := s.model.scopes[s.scopeID]
	return ok
}

func (s *State[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

func (s *State[T]) request() {
	scope, ok := s.model.scopes[s.scopeID]
	if !ok {
		s.model.logger.Warn("state changed after its scope was destroyed", "scope", s.scopeID)
		return
	}
	s.model.RequestUpdate(scope)
}
