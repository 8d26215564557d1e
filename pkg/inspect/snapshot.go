package inspect

import (
	"time"

	"github.com/vango-dev/arbor/pkg/arbor"
)

// ScopeInfo is a diagnostic view of one scope.
type ScopeInfo struct {
	ID        uint64   `json:"id"`
	ParentID  uint64   `json:"parentId,omitempty"`
	Component string   `json:"component"`
	Key       *string  `json:"key,omitempty"`
	Depth     int      `json:"depth"`
	State     string   `json:"state"`
	Slots     int      `json:"slots"`
	Renders   int      `json:"renders"`
	Children  []uint64 `json:"children,omitempty"`
}

// Snapshot is the scope tree of a model at one point in time, in
// depth-first order.
type Snapshot struct {
	Seq    uint64      `json:"seq"`
	Time   time.Time   `json:"time"`
	Stats  arbor.Stats `json:"stats"`
	Scopes []ScopeInfo `json:"scopes"`
}

// Find returns the scope with the given ID.
func (s Snapshot) Find(id uint64) (ScopeInfo, bool) {
	for _, sc := range s.Scopes {
		if sc.ID == id {
			return sc, true
		}
	}
	return ScopeInfo{}, false
}

// Capture builds a Snapshot of m. It must run on the model's goroutine.
func Capture(m *arbor.Model) Snapshot {
	snap := Snapshot{
		Time:   time.Now(),
		Stats:  m.Stats(),
		Scopes: make([]ScopeInfo, 0, m.Len()),
	}
	m.Walk(func(s *arbor.Scope) bool {
		el := s.Element()
		info := ScopeInfo{
			ID:        s.ID(),
			ParentID:  s.ParentID(),
			Component: el.Component().Name(),
			Depth:     s.Depth(),
			State:     s.State().String(),
			Slots:     s.SlotCount(),
			Renders:   s.Renders(),
		}
		if key, ok := el.Key(); ok {
			info.Key = &key
		}
		for _, c := range s.Children() {
			info.Children = append(info.Children, c.ID())
		}
		snap.Scopes = append(snap.Scopes, info)
		return true
	})
	return snap
}
