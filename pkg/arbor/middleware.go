package arbor

// Middleware wraps the processing of one scope. Implementations call next
// to render and reconcile the scope and may act before and after it, for
// example to time it or open a tracing span.
type Middleware interface {
	Handle(s *Scope, next func() error) error
}

// MiddlewareFunc adapts a function to Middleware.
type MiddlewareFunc func(s *Scope, next func() error) error

// Handle calls f.
func (f MiddlewareFunc) Handle(s *Scope, next func() error) error {
	return f(s, next)
}

// ComposeMiddleware builds a handler chain from middleware and a final
// handler. Middleware runs in order (first to last), with the handler at the
// end.
func ComposeMiddleware(s *Scope, mw []Middleware, handler func() error) error {
	if len(mw) == 0 {
		return handler()
	}

	chain := handler
	for i := len(mw) - 1; i >= 0; i-- {
		m := mw[i]
		next := chain
		chain = func() error {
			return m.Handle(s, next)
		}
	}

	return chain()
}

// Chain combines multiple middleware into one, run in order.
func Chain(middleware ...Middleware) Middleware {
	return MiddlewareFunc(func(s *Scope, next func() error) error {
		return ComposeMiddleware(s, middleware, next)
	})
}

// Skip bypasses mw for scopes matching condition.
func Skip(condition func(s *Scope) bool, mw Middleware) Middleware {
	return MiddlewareFunc(func(s *Scope, next func() error) error {
		if condition(s) {
			return next()
		}
		return mw.Handle(s, next)
	})
}

// Only runs mw for scopes matching condition.
func Only(condition func(s *Scope) bool, mw Middleware) Middleware {
	return MiddlewareFunc(func(s *Scope, next func() error) error {
		if !condition(s) {
			return next()
		}
		return mw.Handle(s, next)
	})
}
