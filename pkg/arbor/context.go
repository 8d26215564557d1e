package arbor

import "reflect"

// Provide stores value, keyed by its type T, in the active scope's context.
// Children created from now on inherit it; children that already exist keep
// the context they were created with.
func Provide[T any](m *Model, value T) {
	s := m.mustActive("Provide")
	if s.context == nil {
		s.context = make(contextMap)
	}
	s.context[typeKey[T]()] = value
}

// UseContext returns the context value of type T visible to the active
// scope and whether one was provided.
func UseContext[T any](m *Model) (T, bool) {
	s := m.mustActive("UseContext")
	v, ok := s.context[typeKey[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
