// Package widgets is a small in-memory widget surface built entirely on the
// arbor hook API. It exists to drive arbor end to end in tests, demos and
// the inspector, without a real display.
//
// Root owns a Surface and provides its root node to descendants. Column,
// Text and Button each keep one Node in a remembered slot and attach it to
// the nearest container node from context with an effect, so destroying a
// scope detaches its node. Every widget delivers its value to the element's
// handle: Root a *Surface, the others their *Node.
//
//	ref := arbor.NewRef[*widgets.Surface]()
//	model.Render(widgets.Root.New(widgets.RootParams{
//	    Children: []arbor.Element{widgets.Text.New(widgets.TextParams{Content: "hi"})},
//	}).WithHandle(ref))
//	fmt.Print(ref.MustGet())
package widgets
