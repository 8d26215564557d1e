package arbor

import (
	"errors"
	"testing"

	aerrors "github.com/vango-dev/arbor/internal/errors"
)

type failParams struct {
	Fail bool
}

func TestRenderPanicIsIsolated(t *testing.T) {
	leaf := Define("Leaf", func(m *Model, p noParams) {})
	boom := Define("Boom", func(m *Model, p failParams) {
		if p.Fail {
			panic("boom")
		}
		m.PushChild(leaf.New(noParams{}))
	})
	root := Define("Root", func(m *Model, p failParams) {
		m.PushChild(boom.New(p))
		m.PushChild(leaf.New(noParams{}))
	})

	m := newTestModel(t)
	mustRender(t, m, root.New(failParams{}))
	boomScope := m.Root().Children()[0]
	kept := boomScope.Children()[0]

	err := m.Render(root.New(failParams{Fail: true}))
	var re *RenderError
	if !errors.As(err, &re) {
		t.Fatalf("Render() error = %v, want *RenderError", err)
	}
	if re.Component != "Boom" || re.Phase != "render" || re.Recovered != "boom" || re.ScopeID != boomScope.ID() {
		t.Errorf("RenderError = %+v", re)
	}
	if re.Stack == "" {
		t.Error("RenderError should carry a stack")
	}
	if got := boomScope.Children(); len(got) != 1 || got[0] != kept {
		t.Error("failed render should keep the previous children")
	}
	if boomScope.State() != ScopeIdle {
		t.Errorf("failed scope state = %s, want idle", boomScope.State())
	}
	if m.Root().Children()[1].Destroyed() {
		t.Error("sibling should survive")
	}
	if got := m.Stats().Failed; got != 1 {
		t.Errorf("Stats().Failed = %d, want 1", got)
	}

	mustRender(t, m, root.New(failParams{}))
	if boomScope.Destroyed() || kept.Destroyed() {
		t.Error("tree should recover after a successful render")
	}
}

func TestAfterUpdatePanicIsReported(t *testing.T) {
	rec := &recorder{}
	child := Define("Child", func(m *Model, p noParams) { rec.add("child") })
	comp := Define("Comp", func(m *Model, p noParams) {
		AfterUpdate(m, func() { panic(errors.New("late")) })
		AfterUpdate(m, func() { rec.add("second callback") })
		m.PushChild(child.New(noParams{}))
	})

	m := newTestModel(t)
	err := m.Render(comp.New(noParams{}))
	var re *RenderError
	if !errors.As(err, &re) || re.Phase != "after-update" {
		t.Fatalf("Render() error = %v, want after-update RenderError", err)
	}
	if re.Unwrap() == nil || re.Unwrap().Error() != "late" {
		t.Errorf("Unwrap() = %v, want late", re.Unwrap())
	}
	assertEvents(t, rec, "second callback", "child")
}

func TestDrainErrorsGoToHandler(t *testing.T) {
	var handled []error
	var n *State[int]
	comp := Define("Comp", func(m *Model, p noParams) {
		n = UseState(m, func() int { return 0 })
		if n.Get() > 0 {
			panic("bad state")
		}
	})

	m := New(WithErrorHandler(func(err error) { handled = append(handled, err) }))
	mustRender(t, m, comp.New(noParams{}))
	n.Set(1)

	if len(handled) != 1 {
		t.Fatalf("handled %d errors, want 1", len(handled))
	}
	var re *RenderError
	if !errors.As(handled[0], &re) {
		t.Errorf("handled error = %v, want *RenderError", handled[0])
	}
}

func TestHookOutsideRenderPanics(t *testing.T) {
	m := newTestModel(t)
	tests := []struct {
		name string
		call func()
	}{
		{"UseState", func() { UseState(m, func() int { return 0 }) }},
		{"UseMemo", func() { UseMemo(m, 1, func(int) int { return 1 }) }},
		{"UseEffect", func() { UseEffect(m, 1, func(int) Cleanup { return nil }) }},
		{"Remember", func() { Remember(m, func() int { return 0 }) }},
		{"Provide", func() { Provide(m, theme{}) }},
		{"UseContext", func() { UseContext[theme](m) }},
		{"AfterUpdate", func() { AfterUpdate(m, func() {}) }},
		{"PushChild", func() { m.PushChild(Fragment.New(FragmentParams{})) }},
		{"ProvideHandle", func() { ProvideHandle(m, 1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectPanic(t, ErrNoActiveScope, tt.call)
		})
	}
}

func TestNoActiveScopeErrorCode(t *testing.T) {
	defer func() {
		r := recover()
		var ae *aerrors.ArborError
		err, _ := r.(error)
		if !errors.As(err, &ae) {
			t.Fatalf("panic = %v, want *ArborError", r)
		}
		if ae.Code != "A001" {
			t.Errorf("Code = %s, want A001", ae.Code)
		}
		if ae.Location == nil || ae.Location.Line == 0 {
			t.Error("A001 should point at the caller")
		}
	}()
	UseState[int](nil, func() int { return 0 })
}

func TestSlotTypeMismatch(t *testing.T) {
	comp := Define("Comp", func(m *Model, p failParams) {
		if p.Fail {
			UseState(m, func() string { return "" })
		} else {
			UseState(m, func() int { return 0 })
		}
	})

	m := newTestModel(t)
	mustRender(t, m, comp.New(failParams{}))
	err := m.Render(comp.New(failParams{Fail: true}))
	if !errors.Is(err, ErrSlotMismatch) {
		t.Errorf("Render() error = %v, want ErrSlotMismatch", err)
	}
}

func TestDebugHookOrder(t *testing.T) {
	comp := Define("Comp", func(m *Model, p failParams) {
		UseState(m, func() int { return 0 })
		if p.Fail {
			UseMemo(m, 1, func(int) int { return 1 })
		}
	})
	tests := []struct {
		name    string
		debug   bool
		wantErr error
	}{
		{"debug", true, ErrHookOrder},
		{"release", false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, WithDebug(tt.debug))
			mustRender(t, m, comp.New(failParams{}))
			err := m.Render(comp.New(failParams{Fail: true}))
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Render() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Render() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDebugHookCountShrink(t *testing.T) {
	comp := Define("Comp", func(m *Model, p failParams) {
		UseState(m, func() int { return 0 })
		if !p.Fail {
			Remember(m, func() int { return 0 })
		}
	})

	m := newTestModel(t, WithDebug(true))
	mustRender(t, m, comp.New(failParams{}))
	if err := m.Render(comp.New(failParams{Fail: true})); !errors.Is(err, ErrHookOrder) {
		t.Errorf("Render() error = %v, want ErrHookOrder", err)
	}
}

func TestParamsMismatch(t *testing.T) {
	comp := Define("Comp", func(m *Model, p itemParams) {})

	m := newTestModel(t)
	err := m.Render(CreateElement(comp.ID(), "not params"))
	if !errors.Is(err, ErrParamsMismatch) {
		t.Errorf("Render() error = %v, want ErrParamsMismatch", err)
	}
}

func TestUntypedComponent(t *testing.T) {
	var got any
	id := NewComponentID("Raw", func(m *Model, el Element) {
		got = el.Params()
	})

	m := newTestModel(t)
	mustRender(t, m, CreateElement(id, 7))
	if got != 7 || id.ParamsType() != nil {
		t.Errorf("params = %v, ParamsType = %v", got, id.ParamsType())
	}
}
