package arbor

import (
	"fmt"
	"reflect"
)

// RenderFunc renders one scope. It reads the element's params, calls hooks
// on m and declares the scope's children with m.PushChild.
type RenderFunc func(m *Model, el Element)

// ComponentID identifies a component type. Two elements belong to the same
// component when their ComponentID pointers are equal.
type ComponentID struct {
	id     uint64
	name   string
	params reflect.Type
	render RenderFunc
}

// NewComponentID creates an untyped component identity. Render receives the
// element unchanged and is responsible for checking its params.
func NewComponentID(name string, render RenderFunc) *ComponentID {
	if render == nil {
		panic("arbor: NewComponentID requires a render function")
	}
	return &ComponentID{
		id:     nextID(),
		name:   name,
		render: render,
	}
}

// Name returns the component's display name.
func (c *ComponentID) Name() string {
	if c == nil {
		return "<nil>"
	}
	return c.name
}

// ParamsType returns the params type declared with Define, or nil for
// untyped components.
func (c *ComponentID) ParamsType() reflect.Type {
	return c.params
}

// String implements fmt.Stringer.
func (c *ComponentID) String() string {
	return fmt.Sprintf("%s#%d", c.Name(), c.id)
}

// Component is a component identity whose elements carry params of type P.
//
//	var Counter = arbor.Define("Counter", func(m *arbor.Model, p CounterParams) {
//	    n := arbor.UseState(m, func() int { return p.Start })
//	    m.PushChild(widgets.Text.New(widgets.TextParams{Content: strconv.Itoa(n.Get())}))
//	})
//
//	model.Render(Counter.New(CounterParams{Start: 1}))
type Component[P any] struct {
	id *ComponentID
}

// Define creates a typed component. The params of every element rendered by
// this component are checked against P; a mismatch panics with code A004.
func Define[P any](name string, render func(m *Model, params P)) Component[P] {
	if render == nil {
		panic("arbor: Define requires a render function")
	}
	id := &ComponentID{
		id:     nextID(),
		name:   name,
		params: reflect.TypeOf((*P)(nil)).Elem(),
	}
	id.render = func(m *Model, el Element) {
		params, ok := el.params.(P)
		if !ok {
			panic(paramsMismatch(id, el.params))
		}
		render(m, params)
	}
	return Component[P]{id: id}
}

// ID returns the component's identity.
func (c Component[P]) ID() *ComponentID {
	return c.id
}

// New creates an element rendering this component with params.
func (c Component[P]) New(params P) Element {
	return CreateElement(c.id, params)
}
