package arbortest

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vango-dev/arbor/pkg/arbor"
)

// Harness drives a Model from a test.
type Harness struct {
	t     testing.TB
	Model *arbor.Model
}

// New creates a Harness around a Poll-mode Model. opts are applied after
// the harness defaults, so they can switch the mode back to Instant.
func New(t testing.TB, opts ...arbor.Option) *Harness {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
	base := []arbor.Option{
		arbor.WithMode(arbor.Poll),
		arbor.WithLogger(logger),
		arbor.WithErrorHandler(func(err error) {
			t.Errorf("arbortest: update failed: %v", err)
		}),
	}
	return &Harness{t: t, Model: arbor.New(append(base, opts...)...)}
}

// Render renders root and flushes the queue, failing the test on error.
func (h *Harness) Render(root arbor.Element) *Harness {
	h.t.Helper()
	if err := h.Model.Render(root); err != nil {
		h.t.Fatalf("arbortest: Render(%s): %v", root, err)
	}
	h.Flush()
	return h
}

// Flush performs queued updates until the queue is empty, failing the test
// on error.
func (h *Harness) Flush() {
	h.t.Helper()
	if err := h.Model.Flush(); err != nil {
		h.t.Fatalf("arbortest: Flush: %v", err)
	}
}

// Step performs one queued update and reports whether there was one.
func (h *Harness) Step() bool {
	h.t.Helper()
	ok, err := h.Model.PerformUpdate()
	if err != nil {
		h.t.Fatalf("arbortest: PerformUpdate: %v", err)
	}
	return ok
}

// Find returns the first live scope rendering the component named name, or
// nil.
func (h *Harness) Find(name string) *arbor.Scope {
	var found *arbor.Scope
	h.Model.Walk(func(s *arbor.Scope) bool {
		if found != nil {
			return false
		}
		if s.Element().Component().Name() == name {
			found = s
			return false
		}
		return true
	})
	return found
}

// FindAll returns every live scope rendering the component named name, in
// depth-first order.
func (h *Harness) FindAll(name string) []*arbor.Scope {
	var out []*arbor.Scope
	h.Model.Walk(func(s *arbor.Scope) bool {
		if s.Element().Component().Name() == name {
			out = append(out, s)
		}
		return true
	})
	return out
}

// FindKey returns the first live scope rendering the component named name
// with the given key, or nil.
func (h *Harness) FindKey(name, key string) *arbor.Scope {
	for _, s := range h.FindAll(name) {
		if k, ok := s.Element().Key(); ok && k == key {
			return s
		}
	}
	return nil
}

// MustFind is Find that fails the test when nothing matches.
func (h *Harness) MustFind(name string) *arbor.Scope {
	h.t.Helper()
	s := h.Find(name)
	if s == nil {
		h.t.Fatalf("arbortest: no scope renders %s; tree:\n%s", name, h.Outline())
	}
	return s
}

// Outline returns the live tree, one scope per line, indented two spaces
// per level.
func (h *Harness) Outline() string {
	var b strings.Builder
	h.Model.Walk(func(s *arbor.Scope) bool {
		b.WriteString(strings.Repeat("  ", s.Depth()))
		b.WriteString(s.Element().String())
		b.WriteByte('\n')
		return true
	})
	return b.String()
}

// ExpectScopes asserts that the live tree matches want. want uses the
// Outline format; its common leading indentation and surrounding blank
// lines are ignored.
func (h *Harness) ExpectScopes(want string) {
	h.t.Helper()
	if diff := cmp.Diff(dedent(want), h.Outline()); diff != "" {
		h.t.Errorf("arbortest: scope tree mismatch (-want +got):\n%s", diff)
	}
}

// ExpectRenders asserts that s rendered exactly n times.
func (h *Harness) ExpectRenders(s *arbor.Scope, n int) {
	h.t.Helper()
	if s == nil {
		h.t.Errorf("arbortest: ExpectRenders on nil scope")
		return
	}
	if got := s.Renders(); got != n {
		h.t.Errorf("arbortest: %s rendered %d times, want %d", s, got, n)
	}
}

// ExpectPending asserts the number of queued updates.
func (h *Harness) ExpectPending(n int) {
	h.t.Helper()
	if got := h.Model.Pending(); got != n {
		h.t.Errorf("arbortest: %d updates pending, want %d", got, n)
	}
}

// dedent strips blank leading and trailing lines and the indentation shared
// by every non-blank line, and ends the result with a newline.
func dedent(s string) string {
	lines := strings.Split(s, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}

	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	for i, line := range lines {
		if len(line) >= indent {
			lines[i] = strings.TrimRight(line[indent:], " \t")
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
