package arbor

import "log/slog"

// Option configures a Model.
type Option func(*Model)

// WithMode sets the update mode (default Instant).
func WithMode(mode UpdateMode) Option {
	return func(m *Model) {
		m.mode = mode
	}
}

// WithDebug enables hook order validation: the hook kinds called by a
// scope's first render are recorded and every later render must repeat
// them exactly, or it fails with code A003.
func WithDebug(debug bool) Option {
	return func(m *Model) {
		m.debug = debug
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithMiddleware appends middleware wrapped around every scope's
// processing.
func WithMiddleware(mw ...Middleware) Option {
	return func(m *Model) {
		m.middleware = append(m.middleware, mw...)
	}
}

// WithObserver appends lifecycle observers.
func WithObserver(obs ...Observer) Option {
	return func(m *Model) {
		m.observers = append(m.observers, obs...)
	}
}

// WithErrorHandler sets the handler for errors that have no caller to be
// returned to: failures of drains started by RequestUpdate. The default
// logs them at error level.
func WithErrorHandler(fn func(error)) Option {
	return func(m *Model) {
		m.onError = fn
	}
}
