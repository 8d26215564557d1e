package widgets_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vango-dev/arbor/pkg/arbor"
	"github.com/vango-dev/arbor/pkg/arbortest"
	"github.com/vango-dev/arbor/pkg/widgets"
)

type counterParams struct {
	Start int
}

var counter = arbor.Define("Counter", func(m *arbor.Model, p counterParams) {
	count := arbor.UseState(m, func() int { return p.Start })
	inc := arbor.Remember(m, func() arbor.Shared[func()] {
		return arbor.NewShared(func() { count.Update(func(n *int) { *n++ }) })
	})
	m.PushChild(widgets.Col(
		widgets.Label(fmt.Sprintf("Count: %d", count.Get())),
		widgets.Button.New(widgets.ButtonParams{Label: "+", OnClick: inc}),
	))
})

func mount(t *testing.T, h *arbortest.Harness, children ...arbor.Element) *widgets.Surface {
	t.Helper()
	ref := arbor.NewRef[*widgets.Surface]()
	h.Render(widgets.Root.New(widgets.RootParams{Children: children}).WithHandle(ref))
	surface, ok := ref.Get()
	if !ok {
		t.Fatal("Root did not deliver its surface")
	}
	return surface
}

func expectSurface(t *testing.T, s *widgets.Surface, want string) {
	t.Helper()
	if diff := cmp.Diff(want, s.String()); diff != "" {
		t.Errorf("surface mismatch (-want +got):\n%s", diff)
	}
}

func TestCounterEndToEnd(t *testing.T) {
	h := arbortest.New(t, arbor.WithMode(arbor.Instant))
	surface := mount(t, h, counter.New(counterParams{}))

	expectSurface(t, surface, "root\n  column\n    text \"Count: 0\"\n    button \"+\"\n")
	text := surface.Root().Find(func(n *widgets.Node) bool { return n.Kind == widgets.KindText })

	button := surface.Root().FindButton("+")
	button.Click()
	button.Click()

	expectSurface(t, surface, "root\n  column\n    text \"Count: 2\"\n    button \"+\"\n")
	if got := surface.Root().Find(func(n *widgets.Node) bool { return n.Kind == widgets.KindText }); got != text {
		t.Error("text node should be reused across updates")
	}
	h.ExpectRenders(h.MustFind("Button"), 1)
	h.ExpectRenders(h.MustFind("Text"), 3)
}

func TestCounterPollMode(t *testing.T) {
	h := arbortest.New(t)
	surface := mount(t, h, counter.New(counterParams{Start: 5}))

	surface.Root().FindButton("+").Click()
	h.ExpectPending(1)
	expectSurface(t, surface, "root\n  column\n    text \"Count: 5\"\n    button \"+\"\n")

	h.Flush()
	expectSurface(t, surface, "root\n  column\n    text \"Count: 6\"\n    button \"+\"\n")
}

func labels(keys []string) []arbor.Element {
	out := make([]arbor.Element, len(keys))
	for i, k := range keys {
		out[i] = widgets.Label(k).WithKey(k)
	}
	return out
}

func TestKeyedLabelsFollowScopeOrder(t *testing.T) {
	h := arbortest.New(t)
	surface := mount(t, h, widgets.Col(labels([]string{"a", "b", "c"})...))

	nodes := map[string]*widgets.Node{}
	for _, n := range surface.Root().Children()[0].Children() {
		nodes[n.Text] = n
	}

	mount(t, h, widgets.Col(labels([]string{"c", "a"})...))
	expectSurface(t, surface, "root\n  column\n    text \"c\"\n    text \"a\"\n")

	got := surface.Root().Children()[0].Children()
	if got[0] != nodes["c"] || got[1] != nodes["a"] {
		t.Error("moved labels should keep their nodes")
	}
	if nodes["b"].Attached() {
		t.Error("removed label should be detached")
	}
}

func TestFragmentChildrenAttachToNearestContainer(t *testing.T) {
	h := arbortest.New(t)
	surface := mount(t, h, widgets.Col(
		widgets.Label("first"),
		arbor.Group(widgets.Label("inner 1"), widgets.Label("inner 2")),
		widgets.Label("last"),
	))

	expectSurface(t, surface, "root\n  column\n    text \"first\"\n    text \"inner 1\"\n    text \"inner 2\"\n    text \"last\"\n")
}

func TestNodeHandle(t *testing.T) {
	h := arbortest.New(t)
	ref := arbor.NewRef[*widgets.Node]()
	surface := mount(t, h, widgets.Label("hello").WithHandle(ref))

	node := ref.MustGet()
	if node.Parent() != surface.Root() || node.Text != "hello" {
		t.Errorf("handle node = %v with parent %v", node, node.Parent())
	}
}

func TestWidgetWithoutContainer(t *testing.T) {
	h := arbortest.New(t)
	h.Render(widgets.Label("orphan"))

	if h.Model.Root().SlotCount() == 0 {
		t.Error("orphan text should still render")
	}
}

func TestNodeOutlivesScope(t *testing.T) {
	h := arbortest.New(t)
	ref := arbor.NewRef[*widgets.Node]()
	mount(t, h, widgets.Col(widgets.Label("a")).WithHandle(ref))

	column := ref.MustGet()
	id := column.ScopeID()
	if !column.Live() || len(column.Children()) != 1 {
		t.Fatalf("mounted column: live=%v children=%d", column.Live(), len(column.Children()))
	}

	if err := h.Model.Unmount(); err != nil {
		t.Fatalf("Unmount() error = %v", err)
	}
	if column.Live() || column.Attached() || column.Children() != nil {
		t.Errorf("after Unmount: live=%v attached=%v children=%v", column.Live(), column.Attached(), column.Children())
	}
	if _, ok := h.Model.Scope(id); ok {
		t.Error("model should no longer know the column's scope")
	}
}
