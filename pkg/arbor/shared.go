package arbor

// Shared wraps a value so that it compares by identity. Two Shared values
// are equal only when they were produced by the same NewShared call, which
// lets params carry callbacks or large values without forcing a re-render
// on every parent render.
//
//	onClick := arbor.Remember(m, func() arbor.Shared[func()] {
//	    return arbor.NewShared(func() { count.Update(func(n *int) { *n++ }) })
//	})
//	m.PushChild(widgets.Button.New(widgets.ButtonParams{OnClick: onClick}))
type Shared[T any] struct {
	ptr *T
}

// NewShared returns a Shared holding v.
func NewShared[T any](v T) Shared[T] {
	return Shared[T]{ptr: &v}
}

// Get returns the wrapped value, or the zero value for a zero Shared.
func (s Shared[T]) Get() T {
	if s.ptr == nil {
		var zero T
		return zero
	}
	return *s.ptr
}

// IsZero reports whether s wraps nothing.
func (s Shared[T]) IsZero() bool {
	return s.ptr == nil
}
