package widgets

import (
	"github.com/vango-dev/arbor/pkg/arbor"
)

// container is the context value carrying the nearest container node.
type container struct {
	node *Node
}

// RootParams are the params of Root.
type RootParams struct {
	Children []arbor.Element
}

// Root creates a Surface, makes its root node the container of its
// descendants and delivers the *Surface to its element's handle.
var Root = arbor.Define("Root", func(m *arbor.Model, p RootParams) {
	self := m.Active()
	surface := arbor.Remember(m, func() *Surface {
		return &Surface{root: newNode(KindRoot, m, self.ID())}
	})
	arbor.Provide(m, container{node: surface.root})
	arbor.ProvideHandle(m, surface)
	m.PushChildren(p.Children...)
})

// ColumnParams are the params of Column.
type ColumnParams struct {
	Children []arbor.Element
}

// Column groups its children under one node.
var Column = arbor.Define("Column", func(m *arbor.Model, p ColumnParams) {
	node := useNode(m, KindColumn)
	arbor.Provide(m, container{node: node})
	m.PushChildren(p.Children...)
})

// TextParams are the params of Text.
type TextParams struct {
	Content string
}

// Text shows Content.
var Text = arbor.Define("Text", func(m *arbor.Model, p TextParams) {
	node := useNode(m, KindText)
	node.Text = p.Content
})

// ButtonParams are the params of Button. OnClick is wrapped in Shared so
// that re-rendering the parent with the same handler does not re-render the
// button.
type ButtonParams struct {
	Label   string
	OnClick arbor.Shared[func()]
}

// Button shows Label and runs OnClick when its node is clicked.
var Button = arbor.Define("Button", func(m *arbor.Model, p ButtonParams) {
	node := useNode(m, KindButton)
	node.Text = p.Label
	node.onClick = p.OnClick.Get()
})

// useNode keeps the active scope's node, attaches it to the container from
// context for as long as the scope lives and delivers it to the element's
// handle.
func useNode(m *arbor.Model, kind Kind) *Node {
	self := m.Active()
	node := arbor.Remember(m, func() *Node { return newNode(kind, m, self.ID()) })
	parent, _ := arbor.UseContext[container](m)
	arbor.UseEffect(m, parent.node, func(p *Node) arbor.Cleanup {
		if p == nil {
			m.Logger().Warn("widget rendered outside a container", "scope", self.ID(), "kind", kind)
			return nil
		}
		p.attach(self.ID(), node)
		return func() { p.detach(self.ID()) }
	})
	arbor.ProvideHandle(m, node)
	return node
}

// Col is shorthand for a Column element.
func Col(children ...arbor.Element) arbor.Element {
	return Column.New(ColumnParams{Children: children})
}

// Label is shorthand for a Text element.
func Label(content string) arbor.Element {
	return Text.New(TextParams{Content: content})
}
