package inspect

import (
	"sync"
	"time"

	"github.com/vango-dev/arbor/pkg/arbor"
)

// maxFailures is how many update failures a Recorder keeps.
const maxFailures = 32

// Failure is one failed scope update.
type Failure struct {
	Time      time.Time `json:"time"`
	ScopeID   uint64    `json:"scopeId"`
	Component string    `json:"component"`
	Error     string    `json:"error"`
}

// Recorder is an arbor.Observer that keeps the latest Snapshot and recent
// failures of the model it observes. Its read methods are safe for
// concurrent use.
type Recorder struct {
	mu       sync.RWMutex
	seq      uint64
	latest   Snapshot
	has      bool
	failures []Failure

	publish func(Message)
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Observe implements arbor.Observer.
func (r *Recorder) Observe(ev arbor.Event) {
	switch ev.Kind {
	case arbor.EventIdle:
		snap := Capture(ev.Model)
		r.mu.Lock()
		r.seq++
		snap.Seq = r.seq
		r.latest = snap
		r.has = true
		publish := r.publish
		r.mu.Unlock()
		if publish != nil {
			publish(Message{Type: MessageSnapshot, Snapshot: &snap})
		}
	case arbor.EventProcessed:
		if ev.Err == nil {
			return
		}
		f := Failure{
			Time:      time.Now(),
			ScopeID:   ev.Scope.ID(),
			Component: ev.Scope.Element().Component().Name(),
			Error:     ev.Err.Error(),
		}
		r.mu.Lock()
		r.failures = append(r.failures, f)
		if len(r.failures) > maxFailures {
			r.failures = r.failures[len(r.failures)-maxFailures:]
		}
		publish := r.publish
		r.mu.Unlock()
		if publish != nil {
			publish(Message{Type: MessageFailure, Failure: &f})
		}
	}
}

// Latest returns the most recent snapshot and whether one was captured.
func (r *Recorder) Latest() (Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latest, r.has
}

// Failures returns the recent update failures, oldest first.
func (r *Recorder) Failures() []Failure {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Failure, len(r.failures))
	copy(out, r.failures)
	return out
}

func (r *Recorder) setPublisher(fn func(Message)) {
	r.mu.Lock()
	r.publish = fn
	r.mu.Unlock()
}
