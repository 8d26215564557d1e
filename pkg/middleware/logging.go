package middleware

import (
	"log/slog"
	"time"

	"github.com/vango-dev/arbor/pkg/arbor"
)

// Logging creates middleware that logs every processed scope at debug
// level, and failures or scopes slower than slow at warn level. A zero slow
// disables the slow-render warning.
func Logging(logger *slog.Logger, slow time.Duration) arbor.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return arbor.MiddlewareFunc(func(s *arbor.Scope, next func() error) error {
		start := time.Now()
		err := next()
		elapsed := time.Since(start)

		attrs := []any{
			"scope", s.ID(),
			"component", s.Element().Component().Name(),
			"duration", elapsed,
		}
		switch {
		case err != nil:
			logger.Warn("scope update failed", append(attrs, "error", err)...)
		case slow > 0 && elapsed >= slow:
			logger.Warn("slow scope update", attrs...)
		default:
			logger.Debug("scope updated", attrs...)
		}
		return err
	})
}
