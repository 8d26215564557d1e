package arbor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type noParams struct{}

type recorder struct {
	events []string
}

func (r *recorder) add(format string, args ...any) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) take() []string {
	events := r.events
	r.events = nil
	return events
}

func newTestModel(t *testing.T, opts ...Option) *Model {
	t.Helper()
	base := []Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithErrorHandler(func(err error) {
			t.Errorf("unexpected error from drain: %v", err)
		}),
	}
	return New(append(base, opts...)...)
}

func assertEvents(t *testing.T, rec *recorder, want ...string) {
	t.Helper()
	if diff := cmp.Diff(want, rec.take(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func mustRender(t *testing.T, m *Model, el Element) {
	t.Helper()
	if err := m.Render(el); err != nil {
		t.Fatalf("Render(%s) error = %v", el, err)
	}
}

func mustFlush(t *testing.T, m *Model) {
	t.Helper()
	if err := m.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
}

func expectPanic(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic wrapping %v", target)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, target) {
			t.Fatalf("panic = %v, want error wrapping %v", r, target)
		}
	}()
	fn()
}

func childKeys(s *Scope) []string {
	var keys []string
	for _, c := range s.Children() {
		k, _ := c.Element().Key()
		keys = append(keys, k)
	}
	return keys
}

func childIDs(s *Scope) []uint64 {
	var ids []uint64
	for _, c := range s.Children() {
		ids = append(ids, c.ID())
	}
	return ids
}
