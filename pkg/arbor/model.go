package arbor

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"
)

// UpdateMode selects how queued scope updates are driven.
type UpdateMode uint8

const (
	// Instant drains the update queue synchronously whenever an update is
	// requested outside of processing.
	Instant UpdateMode = iota

	// Poll leaves queued updates for the caller, who drives them with
	// PerformUpdate or Flush (for example once per frame).
	Poll
)

// String returns the mode name used in configuration files.
func (u UpdateMode) String() string {
	switch u {
	case Instant:
		return "instant"
	case Poll:
		return "poll"
	default:
		return fmt.Sprintf("UpdateMode(%d)", uint8(u))
	}
}

// Stats counts what a Model has done since it was created.
type Stats struct {
	Processed uint64 `json:"processed"`
	Created   uint64 `json:"created"`
	Updated   uint64 `json:"updated"`
	Destroyed uint64 `json:"destroyed"`
	Stale     uint64 `json:"stale"`
	Failed    uint64 `json:"failed"`
}

// Model owns the scope tree and schedules its updates.
//
// A Model is single-threaded: Render, RequestUpdate, PerformUpdate and every
// hook must be called from the goroutine that drives it. Other goroutines
// hand work to that goroutine (a channel, a frame loop) rather than touching
// the model directly.
type Model struct {
	mode       UpdateMode
	debug      bool
	logger     *slog.Logger
	middleware []Middleware
	observers  []Observer
	onError    func(error)

	root   *Scope
	scopes map[uint64]*Scope
	queue  []*Scope

	// Valid only while one scope is being processed.
	active     *Scope
	scratch    []Element
	deferred   []func()
	processing bool
	draining   bool

	// Set while a subtree is being destroyed outside of a render.
	tearingDown bool
	collecting bool
	stepErrs   []error

	stats Stats
}

// New creates a Model. The default mode is Instant.
func New(opts ...Option) *Model {
	m := &Model{
		mode:   Instant,
		logger: slog.Default().With("component", "arbor"),
		scopes: make(map[uint64]*Scope),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.onError == nil {
		m.onError = func(err error) {
			m.logger.Error("update failed", "error", err)
		}
	}
	return m
}

// Mode returns the current update mode.
func (m *Model) Mode() UpdateMode {
	return m.mode
}

// SetMode switches the update mode. Switching to Instant does not drain
// updates that are already queued; the next requested update does.
func (m *Model) SetMode(mode UpdateMode) {
	m.mode = mode
}

// Debug reports whether hook order validation is enabled.
func (m *Model) Debug() bool {
	return m.debug
}

// Logger returns the model's logger.
func (m *Model) Logger() *slog.Logger {
	return m.logger
}

// Root returns the root scope, or nil before the first Render.
func (m *Model) Root() *Scope {
	return m.root
}

// Scope returns the live scope with the given ID.
func (m *Model) Scope(id uint64) (*Scope, bool) {
	s, ok := m.scopes[id]
	return s, ok
}

// Active returns the scope currently rendering, or nil.
func (m *Model) Active() *Scope {
	return m.active
}

// Pending returns the number of queued updates, stale entries included.
func (m *Model) Pending() int {
	return len(m.queue)
}

// Stats returns a copy of the model's counters.
func (m *Model) Stats() Stats {
	return m.stats
}

// Len returns the number of live scopes.
func (m *Model) Len() int {
	return len(m.scopes)
}

// Walk visits the live tree depth-first from the root. Returning false from
// fn skips that scope's children.
func (m *Model) Walk(fn func(s *Scope) bool) {
	if m.root != nil {
		m.root.walk(fn)
	}
}

// Render makes root the element of the root scope and enqueues the root.
// The first call creates the root scope. A root element of a different
// component replaces the whole tree, destroying the previous one.
//
// Under Instant, Render returns once the tree is up to date, with the
// joined errors of every scope that failed on the way. Under Poll it only
// enqueues and returns nil.
func (m *Model) Render(root Element) error {
	if root.IsZero() {
		panic("arbor: Render requires a non-zero element")
	}

	var errs []error
	switch {
	case m.root == nil:
		m.root = m.create(root, nil, nil)
	case m.root.element.component != root.component:
		if m.busy() {
			return ErrReentrantUpdate
		}
		old := m.root
		m.root = m.create(root, nil, nil)
		errs = m.teardown(old)
	default:
		m.root.element = root
		m.stats.Updated++
		m.emit(Event{Kind: EventUpdated, Scope: m.root})
	}

	m.enqueue(m.root)
	if err := m.maybeDrain(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// RequestUpdate enqueues s for re-rendering. Under Instant the queue is
// drained before RequestUpdate returns unless a scope is being processed,
// in which case s renders after the current scope, in the same drain.
// Errors of a drain started here are passed to the model's error handler.
// Destroyed scopes are ignored.
func (m *Model) RequestUpdate(s *Scope) {
	if s == nil || s.state == ScopeDestroyed {
		return
	}
	m.enqueue(s)
	if err := m.maybeDrain(); err != nil {
		m.onError(err)
	}
}

// PerformUpdate processes the oldest queued scope and reports whether the
// queue had an entry. Entries for scopes destroyed after they were queued
// are consumed without rendering. The returned error is the failure of the
// processed scope, if any.
func (m *Model) PerformUpdate() (bool, error) {
	if m.busy() {
		return false, ErrReentrantUpdate
	}
	if len(m.queue) == 0 {
		return false, nil
	}

	s := m.queue[0]
	m.queue[0] = nil
	m.queue = m.queue[1:]
	if len(m.queue) == 0 {
		m.queue = nil
	}
	s.queued--

	if s.state == ScopeDestroyed {
		m.stats.Stale++
		m.logger.Debug("skipping destroyed scope", "scope", s.id, "component", s.element.component.Name())
		m.emit(Event{Kind: EventStale, Scope: s})
		m.emitIdle()
		return true, nil
	}

	start := time.Now()
	err := ComposeMiddleware(s, m.middleware, func() error {
		return m.process(s)
	})
	m.stats.Processed++
	if err != nil {
		m.stats.Failed++
	}
	m.emit(Event{Kind: EventProcessed, Scope: s, Duration: time.Since(start), Err: err})
	m.emitIdle()
	return true, err
}

// Flush performs updates until the queue is empty, regardless of mode, and
// returns the joined errors.
func (m *Model) Flush() error {
	if m.busy() {
		return ErrReentrantUpdate
	}
	return m.drain()
}

// Unmount destroys the whole tree, running every cleanup, and returns the
// joined cleanup failures. Updates requested by cleanups are queued and,
// since their scopes are gone by then, skipped. The model can be rendered
// again afterwards.
func (m *Model) Unmount() error {
	if m.busy() {
		return ErrReentrantUpdate
	}
	if m.root == nil {
		return nil
	}
	root := m.root
	m.root = nil
	errs := m.teardown(root)
	if err := m.maybeDrain(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// PushChild declares el as the next child of the active scope. It panics
// when no scope is rendering.
func (m *Model) PushChild(el Element) {
	m.mustActive("PushChild")
	if el.IsZero() {
		return
	}
	m.scratch = append(m.scratch, el)
}

// PushChildren declares each element as a child of the active scope.
func (m *Model) PushChildren(els ...Element) {
	m.mustActive("PushChildren")
	for _, el := range els {
		if !el.IsZero() {
			m.scratch = append(m.scratch, el)
		}
	}
}

func (m *Model) mustActive(hook string) *Scope {
	if m == nil || m.active == nil {
		panic(noActiveScope(hook))
	}
	return m.active
}

func (m *Model) enqueue(s *Scope) {
	s.queued++
	if s.state != ScopeRendering {
		s.state = ScopePending
	}
	m.queue = append(m.queue, s)
}

func (m *Model) maybeDrain() error {
	if m.mode != Instant || m.draining || m.busy() {
		return nil
	}
	return m.drain()
}

func (m *Model) drain() error {
	m.draining = true
	defer func() { m.draining = false }()

	var errs []error
	for {
		ok, err := m.PerformUpdate()
		if err != nil {
			errs = append(errs, err)
		}
		if !ok {
			break
		}
	}
	return errors.Join(errs...)
}

// process renders s, reconciles its declared children and runs the
// callbacks deferred during the render. The active scope, the child buffer
// and the deferred list are reset before process returns, on every path.
func (m *Model) process(s *Scope) (err error) {
	prev := s.children

	m.processing = true
	m.collecting = true
	m.active = s
	m.scratch = nil
	m.deferred = nil
	s.state = ScopeRendering
	s.slots.reset()
	s.hookIndex = 0
	if s.renders == 0 {
		s.hookOrder = s.hookOrder[:0]
	}

	defer func() {
		m.active = nil
		m.scratch = nil
		m.deferred = nil
		m.processing = false
		m.collecting = false
		if s.queued > 0 {
			s.state = ScopePending
		} else {
			s.state = ScopeIdle
		}
		if errs := m.takeStepErrs(); len(errs) > 0 {
			err = errors.Join(append([]error{err}, errs...)...)
		}
	}()

	if err := m.guard(s, "render", func() {
		s.element.component.render(m, s.element)
		m.checkHookCount(s)
	}); err != nil {
		m.logger.Debug("render failed", "scope", s.id, "component", s.element.component.Name(), "error", err)
		return err
	}
	s.renders++
	m.active = nil

	declared := m.scratch
	m.scratch = nil
	s.children = m.reconcile(s, prev, declared)

	deferred := m.deferred
	m.deferred = nil
	var errs []error
	for _, fn := range deferred {
		if err := m.guard(s, "after-update", fn); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// guard runs fn and converts a panic into a *RenderError.
func (m *Model) guard(s *Scope, phase string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RenderError{
				ScopeID:   s.id,
				Component: s.element.component.Name(),
				Phase:     phase,
				Recovered: r,
				Stack:     string(debug.Stack()),
			}
		}
	}()
	fn()
	return nil
}

func (m *Model) create(el Element, parent *Scope, ctx contextMap) *Scope {
	s := newScope(el, parent, ctx)
	m.scopes[s.id] = s
	m.stats.Created++
	m.logger.Debug("scope created", "scope", s.id, "component", el.component.Name(), "depth", s.depth)
	m.emit(Event{Kind: EventCreated, Scope: s})
	return s
}

func (m *Model) forget(s *Scope) {
	delete(m.scopes, s.id)
	m.stats.Destroyed++
	m.logger.Debug("scope destroyed", "scope", s.id, "component", s.element.component.Name())
}

// trackHook validates hook order in debug mode.
func (m *Model) trackHook(s *Scope, hook HookType) {
	if !m.debug {
		return
	}
	if s.renders == 0 {
		s.hookOrder = append(s.hookOrder, hook)
	} else {
		if s.hookIndex >= len(s.hookOrder) {
			panic(hookOrderChanged(s, fmt.Sprintf("extra %s hook at index %d", hook, s.hookIndex)))
		}
		if want := s.hookOrder[s.hookIndex]; want != hook {
			panic(hookOrderChanged(s, fmt.Sprintf("index %d: expected %s, got %s", s.hookIndex, want, hook)))
		}
	}
	s.hookIndex++
}

func (m *Model) checkHookCount(s *Scope) {
	if !m.debug || s.renders == 0 {
		return
	}
	if s.hookIndex < len(s.hookOrder) {
		panic(hookOrderChanged(s, fmt.Sprintf("expected %d hooks, got %d", len(s.hookOrder), s.hookIndex)))
	}
}

func (m *Model) reportError(err error) {
	if m.collecting {
		m.stepErrs = append(m.stepErrs, err)
		return
	}
	m.onError(err)
}

// collect runs fn and returns the errors reported while it ran.
func (m *Model) collect(fn func()) []error {
	prevCollecting, prevErrs := m.collecting, m.stepErrs
	m.collecting, m.stepErrs = true, nil
	fn()
	errs := m.stepErrs
	m.collecting, m.stepErrs = prevCollecting, prevErrs
	return errs
}

// teardown destroys s outside of a render. Drains are held off until the
// whole subtree is gone, so cleanups that set state only enqueue.
func (m *Model) teardown(s *Scope) []error {
	prev := m.tearingDown
	m.tearingDown = true
	defer func() { m.tearingDown = prev }()
	return m.collect(func() { s.destroy(m) })
}

// busy reports whether a scope is being processed or torn down.
func (m *Model) busy() bool {
	return m.processing || m.tearingDown
}

func (m *Model) takeStepErrs() []error {
	errs := m.stepErrs
	m.stepErrs = nil
	return errs
}

func (m *Model) emit(ev Event) {
	if len(m.observers) == 0 {
		return
	}
	ev.Model = m
	for _, o := range m.observers {
		o.Observe(ev)
	}
}

func (m *Model) emitIdle() {
	if len(m.queue) == 0 {
		m.emit(Event{Kind: EventIdle})
	}
}
