package arbor

// Cleanup undoes what an effect set up.
type Cleanup func()

type effectSlot[D comparable] struct {
	dep     D
	cleanup Cleanup
}

func (*effectSlot[D]) hookType() HookType { return HookEffect }

// dispose runs the cleanup once.
func (e *effectSlot[D]) dispose() {
	if c := e.cleanup; c != nil {
		e.cleanup = nil
		c()
	}
}

// UseEffect runs setup during the scope's first render and again whenever
// dep differs from the previous render's dependency, running the previous
// cleanup first. The last cleanup also runs when the scope is destroyed.
// setup may return nil.
//
//	arbor.UseEffect(m, p.URL, func(url string) arbor.Cleanup {
//	    stop := subscribe(url)
//	    return stop
//	})
func UseEffect[D comparable](m *Model, dep D, setup func(D) Cleanup) {
	s := m.mustActive("UseEffect")
	if slot, ok := readSlot[*effectSlot[D]](m, s, HookEffect); ok {
		if defaultEquals(slot.dep, dep) {
			return
		}
		slot.dispose()
		s.slots.back()
	}
	slot := &effectSlot[D]{dep: dep}
	slot.cleanup = setup(dep)
	s.slots.put(slot)
}

// UseEffectFunc is UseEffect for effects without cleanup.
func UseEffectFunc[D comparable](m *Model, dep D, setup func(D)) {
	UseEffect(m, dep, func(d D) Cleanup {
		setup(d)
		return nil
	})
}

// OnMount runs fn once, during the scope's first render.
func OnMount(m *Model, fn func()) {
	UseEffect(m, struct{}{}, func(struct{}) Cleanup {
		fn()
		return nil
	})
}

type unmountHolder struct {
	fn func()
}

// OnUnmount runs the fn passed on the latest render when the scope is
// destroyed.
func OnUnmount(m *Model, fn func()) {
	holder := Remember(m, func() *unmountHolder { return &unmountHolder{} })
	holder.fn = fn
	UseEffect(m, struct{}{}, func(struct{}) Cleanup {
		return func() {
			if holder.fn != nil {
				holder.fn()
			}
		}
	})
}
