package arbor

import "reflect"

// Handle receives the value a component produces for whoever declared its
// element, for example the concrete widget a Button created. Ref and
// HandleFunc are the two implementations.
type Handle interface {
	provide(v any)
}

// Ref is a single-assignment cell. The first provided value wins; later
// values are ignored.
type Ref[T any] struct {
	value T
	set   bool
}

// NewRef returns an empty Ref.
func NewRef[T any]() *Ref[T] {
	return &Ref[T]{}
}

// Get returns the value and whether one was set.
func (r *Ref[T]) Get() (T, bool) {
	return r.value, r.set
}

// MustGet returns the value, panicking if none was set.
func (r *Ref[T]) MustGet() T {
	if !r.set {
		panic("arbor: Ref read before a value was provided")
	}
	return r.value
}

// Set stores v if the Ref is empty and reports whether it did.
func (r *Ref[T]) Set(v T) bool {
	if r.set {
		return false
	}
	r.value = v
	r.set = true
	return true
}

func (r *Ref[T]) provide(v any) {
	tv, ok := v.(T)
	if !ok {
		panic(handleMismatch(reflect.TypeOf((*T)(nil)).Elem(), v))
	}
	r.Set(tv)
}

// HandleFunc is a callback handle. It is called every time the component
// provides a value.
type HandleFunc[T any] func(T)

func (f HandleFunc[T]) provide(v any) {
	tv, ok := v.(T)
	if !ok {
		panic(handleMismatch(reflect.TypeOf((*T)(nil)).Elem(), v))
	}
	f(tv)
}

// ProvideHandle delivers v to the handle attached to the active scope's
// element. It does nothing when the element carries no handle.
func ProvideHandle(m *Model, v any) {
	s := m.mustActive("ProvideHandle")
	if h := s.element.handle; h != nil {
		h.provide(v)
	}
}

// UseRef returns a Ref that survives re-renders of the active scope. Attach
// it to a child element with WithHandle and read it from an AfterUpdate
// callback or a later render.
func UseRef[T any](m *Model) *Ref[T] {
	return Remember(m, NewRef[T])
}

type handleFuncHolder[T any] struct {
	fn func(T)
}

// UseHandleFunc returns a HandleFunc whose identity is stable across
// re-renders of the active scope while always calling the fn passed on the
// latest render.
func UseHandleFunc[T any](m *Model, fn func(T)) HandleFunc[T] {
	holder := Remember(m, func() *handleFuncHolder[T] { return &handleFuncHolder[T]{} })
	holder.fn = fn
	return Remember(m, func() HandleFunc[T] {
		return func(v T) {
			if holder.fn != nil {
				holder.fn(v)
			}
		}
	})
}
