// Package inspect serves a read-only view of a running arbor model over
// HTTP and WebSocket.
//
// A Recorder is attached to the model as an observer. Every time the update
// queue drains it captures a Snapshot of the scope tree (IDs, component
// names, keys, slot counts, render counts) and pushes it to connected
// WebSocket clients. The HTTP handlers only ever read the latest snapshot,
// so the model itself is never touched off its own goroutine.
//
//	rec := inspect.NewRecorder()
//	model := arbor.New(arbor.WithObserver(rec))
//	srv := inspect.NewServer(rec, inspect.WithGatherer(registry))
//	go srv.ListenAndServe(ctx, "127.0.0.1:7070")
//
// # Endpoints
//
//	GET /scopes        latest snapshot
//	GET /scopes/{id}   one scope of the latest snapshot
//	GET /stats         model counters
//	GET /errors        recent update failures
//	GET /metrics       Prometheus metrics
//	GET /ws            snapshot and error stream
package inspect
