package arbor

// AfterUpdate registers fn to run once, after the active scope has rendered
// and its children have been reconciled. Children created by that
// reconciliation exist but have not rendered yet. State changes made by fn
// are queued, not rendered inline.
func AfterUpdate(m *Model, fn func()) {
	m.mustActive("AfterUpdate")
	m.deferred = append(m.deferred, fn)
}
