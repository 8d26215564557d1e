package widgets

import (
	"fmt"
	"io"
	"strings"

	"github.com/vango-dev/arbor/pkg/arbor"
)

// Kind is the widget type of a Node.
type Kind string

const (
	KindRoot   Kind = "root"
	KindColumn Kind = "column"
	KindText   Kind = "text"
	KindButton Kind = "button"
)

// Node is one widget on a Surface.
//
// A container keeps its attached children by scope ID and orders them by
// the scope tree, so keyed moves in arbor are reflected without the widgets
// having to track positions. A node refers to its scope by ID only and may
// outlive it. Nodes must be read on the model's goroutine.
type Node struct {
	Kind Kind
	Text string

	model    *arbor.Model
	scopeID  uint64
	parent   *Node
	attached map[uint64]*Node
	onClick  func()
}

func newNode(kind Kind, m *arbor.Model, scopeID uint64) *Node {
	return &Node{Kind: kind, model: m, scopeID: scopeID}
}

// ScopeID returns the ID of the scope that owns the node.
func (n *Node) ScopeID() uint64 {
	return n.scopeID
}

// Live reports whether the owning scope still exists.
func (n *Node) Live() bool {
	_, ok := n.model.Scope(n.scopeID)
	return ok
}

// Parent returns the container the node is attached to, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Attached reports whether the node is attached to a container.
func (n *Node) Attached() bool {
	return n.parent != nil
}

// Children returns the attached child nodes in scope tree order. A node
// whose scope was destroyed has none.
func (n *Node) Children() []*Node {
	if len(n.attached) == 0 {
		return nil
	}
	scope, ok := n.model.Scope(n.scopeID)
	if !ok {
		return nil
	}
	out := make([]*Node, 0, len(n.attached))
	var visit func(s *arbor.Scope)
	visit = func(s *arbor.Scope) {
		for _, c := range s.Children() {
			if child, ok := n.attached[c.ID()]; ok {
				out = append(out, child)
				continue
			}
			visit(c)
		}
	}
	visit(scope)
	return out
}

// Click invokes a button's handler. It does nothing for other kinds.
func (n *Node) Click() {
	if n.onClick != nil {
		n.onClick()
	}
}

// Find returns the first node in depth-first order, n included, for which
// match returns true.
func (n *Node) Find(match func(*Node) bool) *Node {
	if match(n) {
		return n
	}
	for _, c := range n.Children() {
		if found := c.Find(match); found != nil {
			return found
		}
	}
	return nil
}

// FindButton returns the first button labelled label.
func (n *Node) FindButton(label string) *Node {
	return n.Find(func(c *Node) bool { return c.Kind == KindButton && c.Text == label })
}

// String returns a one-line description of the node.
func (n *Node) String() string {
	if n.Text == "" {
		return string(n.Kind)
	}
	return fmt.Sprintf("%s %q", n.Kind, n.Text)
}

func (n *Node) attach(id uint64, child *Node) {
	if n.attached == nil {
		n.attached = make(map[uint64]*Node)
	}
	n.attached[id] = child
	child.parent = n
}

func (n *Node) detach(id uint64) {
	if child, ok := n.attached[id]; ok {
		child.parent = nil
		delete(n.attached, id)
	}
}

func (n *Node) write(w io.Writer, depth int) {
	fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), n)
	for _, c := range n.Children() {
		c.write(w, depth+1)
	}
}

// Surface is the widget tree owned by a Root.
type Surface struct {
	root *Node
}

// Root returns the surface's root node.
func (s *Surface) Root() *Node {
	return s.root
}

// WriteTo writes an indented outline of the surface to w.
func (s *Surface) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	s.root.write(&b, 0)
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// String returns an indented outline of the surface.
func (s *Surface) String() string {
	var b strings.Builder
	s.root.write(&b, 0)
	return b.String()
}
