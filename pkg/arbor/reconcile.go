package arbor

// reconcile matches the previous children of parent against the elements
// declared by its latest render and returns the new child list, index
// aligned with declared.
//
// Previous children are bucketed by (component, key) in their original
// order and each declared element takes the first remaining scope of its
// bucket, so the Nth declared sibling with a given identity and key always
// reuses the Nth previous one. A reused scope whose element changed is
// enqueued; a declared element with no match gets a new scope that inherits
// a copy of parent's context and is enqueued for its first render. Previous
// children left in any bucket are destroyed.
func (m *Model) reconcile(parent *Scope, prev []*Scope, declared []Element) []*Scope {
	if len(prev) == 0 && len(declared) == 0 {
		return nil
	}

	buckets := make(map[matchKey][]*Scope, len(prev))
	for _, s := range prev {
		k := s.element.matchKey()
		buckets[k] = append(buckets[k], s)
	}

	reused := make(map[*Scope]struct{}, len(prev))
	children := make([]*Scope, 0, len(declared))
	for _, el := range declared {
		k := el.matchKey()
		if queue := buckets[k]; len(queue) > 0 {
			s := queue[0]
			buckets[k] = queue[1:]
			reused[s] = struct{}{}

			changed := !s.element.Equal(el)
			s.element = el
			if changed {
				m.stats.Updated++
				m.emit(Event{Kind: EventUpdated, Scope: s})
				m.enqueue(s)
			}
			children = append(children, s)
			continue
		}

		s := m.create(el, parent, parent.context.clone())
		m.enqueue(s)
		children = append(children, s)
	}

	for _, s := range prev {
		if _, ok := reused[s]; !ok {
			s.destroy(m)
		}
	}

	return children
}
