package arbor

import "fmt"

// Element is an immutable description of one component invocation: the
// component identity, its params, an optional key and an optional handle.
// Elements are values; the With* methods return modified copies.
type Element struct {
	component *ComponentID
	params    any
	key       string
	keyed     bool
	handle    Handle
}

// CreateElement returns an element rendering component with params and no
// key or handle.
func CreateElement(component *ComponentID, params any) Element {
	if component == nil {
		panic("arbor: CreateElement requires a component")
	}
	return Element{component: component, params: params}
}

// WithKey returns a copy of e carrying key. Keys disambiguate siblings of the
// same component; the empty string is a valid key distinct from no key.
func (e Element) WithKey(key string) Element {
	e.key = key
	e.keyed = true
	return e
}

// WithHandle returns a copy of e that delivers the value its component
// provides (see ProvideHandle) to h.
func (e Element) WithHandle(h Handle) Element {
	e.handle = h
	return e
}

// Component returns the element's component identity.
func (e Element) Component() *ComponentID {
	return e.component
}

// Params returns the element's params.
func (e Element) Params() any {
	return e.params
}

// Key returns the element's key and whether one was set.
func (e Element) Key() (string, bool) {
	return e.key, e.keyed
}

// Handle returns the element's handle, or nil.
func (e Element) Handle() Handle {
	return e.handle
}

// IsZero reports whether e is the zero Element.
func (e Element) IsZero() bool {
	return e.component == nil
}

// Equal reports whether e and other render the same component with params
// that did not change. Keys and handles are not compared.
func (e Element) Equal(other Element) bool {
	return e.component == other.component && !ParamsChanged(e.params, other.params)
}

// String implements fmt.Stringer.
func (e Element) String() string {
	if e.keyed {
		return fmt.Sprintf("%s[key=%q]", e.component.Name(), e.key)
	}
	return e.component.Name()
}

// matchKey is the reconciler's bucket key.
type matchKey struct {
	component *ComponentID
	key       string
	keyed     bool
}

func (e Element) matchKey() matchKey {
	return matchKey{component: e.component, key: e.key, keyed: e.keyed}
}
