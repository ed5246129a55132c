// Package session accumulates function records for one descriptor between
// an explicit start and end.
//
// A Registry is created by the build driver and passed to every discovery
// site. It holds at most one active Binder:
//
//	reg := session.NewRegistry()
//	reg.Start(session.Target{Name: "Rope", FileName: "rope.dll", Prefix: "rope"})
//	reg.Append(rec)
//	b, err := reg.End()
//
// # Thread Safety
//
// Registry is safe for concurrent use. Start, Append and End are short
// critical sections that never block on I/O.
//
// # Ordering
//
// Appends from one goroutine keep their order. Appends racing from several
// goroutines land in lock-acquisition order, which varies between runs.
// Use WithStableOrder to sort records by source position at End when the
// descriptor must be reproducible.
package session
