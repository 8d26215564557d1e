// Package demo holds the sample component trees driven by the arbor CLI.
package demo

import (
	"fmt"

	"github.com/vango-dev/arbor/pkg/arbor"
	"github.com/vango-dev/arbor/pkg/widgets"
)

// CounterParams are the params of Counter.
type CounterParams struct {
	Start int
}

// Counter shows a count and a "+" button that increments it.
var Counter = arbor.Define("Counter", func(m *arbor.Model, p CounterParams) {
	count := arbor.UseState(m, func() int { return p.Start })
	inc := arbor.Remember(m, func() arbor.Shared[func()] {
		return arbor.NewShared(func() { count.Update(func(n *int) { *n++ }) })
	})
	m.PushChild(widgets.Col(
		widgets.Label(fmt.Sprintf("Count: %d", count.Get())),
		widgets.Button.New(widgets.ButtonParams{Label: "+", OnClick: inc}),
	))
})

// ListParams are the params of List.
type ListParams struct {
	Items []string
}

// List shows one keyed label per item.
var List = arbor.Define("List", func(m *arbor.Model, p ListParams) {
	rows := make([]arbor.Element, 0, len(p.Items))
	for _, it := range p.Items {
		rows = append(rows, widgets.Label(it).WithKey(it))
	}
	m.PushChild(widgets.Col(rows...))
})

// Mount renders children under a widgets.Root and returns its surface.
func Mount(m *arbor.Model, children ...arbor.Element) (*widgets.Surface, error) {
	ref := arbor.NewRef[*widgets.Surface]()
	if err := m.Render(widgets.Root.New(widgets.RootParams{Children: children}).WithHandle(ref)); err != nil {
		return nil, err
	}
	if err := m.Flush(); err != nil {
		return nil, err
	}
	surface, ok := ref.Get()
	if !ok {
		return nil, fmt.Errorf("root did not deliver its surface")
	}
	return surface, nil
}

// Rotate returns items shifted left by one.
func Rotate(items []string) []string {
	if len(items) < 2 {
		return items
	}
	out := make([]string, 0, len(items))
	out = append(out, items[1:]...)
	return append(out, items[0])
}
