package arbor

// FragmentParams are the params of Fragment.
type FragmentParams struct {
	Children []Element
}

// Fragment renders its Children as its own children.
var Fragment = Define("Fragment", func(m *Model, p FragmentParams) {
	m.PushChildren(p.Children...)
})

// Group is shorthand for a Fragment element holding children.
func Group(children ...Element) Element {
	return Fragment.New(FragmentParams{Children: children})
}
