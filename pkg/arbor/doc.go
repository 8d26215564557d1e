// Package arbor is a component-tree runtime: it keeps a persistent tree of
// scopes in sync with the element tree that components declare, and gives
// each component positional hook state that survives re-renders.
//
// # Components and Elements
//
// A component is a render function with an identity. An Element is an
// immutable description of one invocation: component, params, optional key
// and optional handle.
//
//	var Greeting = arbor.Define("Greeting", func(m *arbor.Model, p GreetingParams) {
//	    m.PushChild(widgets.Text.New(widgets.TextParams{Content: "hi " + p.Name}))
//	})
//
// # Hooks
//
// Hooks store values in the active scope's slots, in call order. They must
// be called unconditionally and in the same order on every render.
//
//	count := arbor.UseState(m, func() int { return 0 })
//	double := arbor.UseMemo(m, count.Get(), func(n int) int { return n * 2 })
//	arbor.UseEffect(m, p.Topic, func(topic string) arbor.Cleanup {
//	    return subscribe(topic)
//	})
//
// Context values flow from a scope to the children it creates:
//
//	arbor.Provide(m, theme)
//	theme, ok := arbor.UseContext[Theme](m)
//
// # Scheduling
//
// Updates go through a FIFO queue. Under Instant, a requested update drains
// the queue before returning. Under Poll, the caller drives it with
// PerformUpdate or Flush. Requests made while a scope is rendering are only
// queued.
//
// # Errors
//
// Misuse of the hook API (a hook outside render, slot type mismatch, params
// of the wrong type) panics with an *errors.ArborError carrying a code.
// A panic inside one scope's render is recovered into a *RenderError and
// leaves the rest of the tree intact.
package arbor
