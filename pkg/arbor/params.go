package arbor

import "reflect"

// ParamsComparer is implemented by params types that decide for themselves
// whether they changed relative to the previous params of the same scope.
type ParamsComparer interface {
	ParamsChanged(prev any) bool
}

// ParamsChanged reports whether next differs from prev.
//
// A next value implementing ParamsComparer decides. Otherwise values of
// different dynamic types always differ, comparable values are compared
// with ==, and the rest fall back to reflect.DeepEqual. Func values are
// never equal to anything but nil, so params holding callbacks count as
// changed on every render unless the callbacks are wrapped in Shared.
func ParamsChanged(prev, next any) bool {
	if c, ok := next.(ParamsComparer); ok {
		return c.ParamsChanged(prev)
	}
	if prev == nil || next == nil {
		return prev != next
	}

	pv := reflect.ValueOf(prev)
	nv := reflect.ValueOf(next)
	if pv.Type() != nv.Type() {
		return true
	}
	if pv.Comparable() && nv.Comparable() {
		return !pv.Equal(nv)
	}
	return !reflect.DeepEqual(prev, next)
}

// defaultEquals compares two values of the same static type with the same
// rules as ParamsChanged.
func defaultEquals[T any](a, b T) bool {
	return !ParamsChanged(any(a), any(b))
}
