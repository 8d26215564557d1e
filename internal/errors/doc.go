// Package errors provides structured, actionable error values for arbor.
//
// Programming errors detected by the runtime (a hook called outside render,
// a hook slot read back as the wrong kind, an element whose params do not
// match its component) are raised as panics carrying an *ArborError. Each
// error has a stable code that maps to a registered template:
//
//	A001  hook called with no active scope
//	A002  hook slot type mismatch
//	A003  hook order changed between renders (debug mode)
//	A004  element params do not match the component
//	A005  handle value has the wrong type
//	C001  invalid configuration value
//	C002  configuration file could not be parsed
//	C003  configuration file not found
//	X001  command failed
//
// # Usage
//
//	err := errors.New("A001").
//	    WithCaller(1).
//	    WithSuggestion("Call hooks only from a component's render function")
//
//	fmt.Println(err.Format())
//	// ERROR A001: Hook called outside of render
//	//
//	//   counter.go:14
//	//
//	//   Hooks read and write the slots of the scope that is currently
//	//   rendering. Outside of a render there is no such scope.
//	//
//	//   Hint: Call hooks only from a component's render function
package errors
