// Package arbortest provides helpers for testing arbor components.
//
// A Harness owns a Poll-mode Model whose log output goes to the test log
// and whose asynchronous errors fail the test. Render and Flush drive the
// queue explicitly, so a test can observe intermediate states.
//
//	h := arbortest.New(t)
//	h.Render(MyList.New(MyListParams{Items: []string{"a", "b"}}))
//	h.ExpectScopes(`
//	    MyList
//	      Item[key="a"]
//	      Item[key="b"]
//	`)
//
// # Finding scopes
//
// Find and FindAll look scopes up by component name in depth-first order;
// FindKey narrows to a key. MustFind fails the test when nothing matches.
package arbortest
