package arbor

import (
	"errors"
	"fmt"
	"reflect"

	aerrors "github.com/vango-dev/arbor/internal/errors"
)

// Sentinel errors wrapped by the *errors.ArborError values that programming
// errors panic with. Use errors.Is to classify a recovered panic or a
// RenderError.
var (
	// ErrNoActiveScope is raised when a hook runs while no scope is rendering.
	ErrNoActiveScope = errors.New("arbor: no active scope")

	// ErrSlotMismatch is raised when a hook slot holds a different kind or
	// type than the hook reading it expects.
	ErrSlotMismatch = errors.New("arbor: hook slot type mismatch")

	// ErrHookOrder is raised in debug mode when a scope calls a different
	// sequence of hooks than on its first render.
	ErrHookOrder = errors.New("arbor: hook order changed")

	// ErrParamsMismatch is raised when an element's params do not have the
	// type its component was defined with.
	ErrParamsMismatch = errors.New("arbor: element params do not match component")

	// ErrHandleMismatch is raised when a provided handle value does not have
	// the type the handle expects.
	ErrHandleMismatch = errors.New("arbor: handle value type mismatch")

	// ErrReentrantUpdate is returned by PerformUpdate when it is called while
	// a scope is being processed.
	ErrReentrantUpdate = errors.New("arbor: PerformUpdate called during processing")
)

// RenderError reports a failure while processing one scope. The scope's
// previous children are kept and the deferred callbacks registered during
// the failed render are dropped.
type RenderError struct {
	// ScopeID is the ID of the scope whose processing failed.
	ScopeID uint64

	// Component is the name of the scope's component.
	Component string

	// Phase is the processing step that failed: "render", "after-update"
	// or "cleanup".
	Phase string

	// Recovered is the value recovered from the panic.
	Recovered any

	// Stack is the goroutine stack captured at recovery.
	Stack string
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("arbor: %s of %s (scope %d) failed: %v", e.Phase, e.Component, e.ScopeID, e.Recovered)
}

// Unwrap returns the recovered value when it is an error.
func (e *RenderError) Unwrap() error {
	if err, ok := e.Recovered.(error); ok {
		return err
	}
	return nil
}

func noActiveScope(hook string) *aerrors.ArborError {
	return aerrors.New("A001").
		Wrap(ErrNoActiveScope).
		WithDetailf("%s called with no active scope", hook).
		WithCaller(3).
		WithSuggestion("Call hooks only from a component's render function, and pass the *Model it received")
}

func slotMismatch(s *Scope, index int, hook HookType, got any) *aerrors.ArborError {
	return aerrors.New("A002").
		Wrap(ErrSlotMismatch).
		WithDetailf("slot %d of %s holds %T, read by %s", index, s, got, hook)
}

func hookOrderChanged(s *Scope, detail string) *aerrors.ArborError {
	return aerrors.New("A003").
		Wrap(ErrHookOrder).
		WithDetailf("%s: %s", s, detail).
		WithSuggestion("Do not call hooks inside conditions or loops")
}

func paramsMismatch(c *ComponentID, params any) *aerrors.ArborError {
	return aerrors.New("A004").
		Wrap(ErrParamsMismatch).
		WithDetailf("%s expects %v, element carries %T", c.Name(), c.params, params)
}

func handleMismatch(want reflect.Type, got any) *aerrors.ArborError {
	return aerrors.New("A005").
		Wrap(ErrHandleMismatch).
		WithDetailf("handle expects %v, component provided %T", want, got)
}
