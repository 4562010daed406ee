// Package diag turns error values into diagnostics.
//
// A Service walks cause chains (Root, Chain, Info and friends), maps error
// types to stable integer codes and per-protocol tokens, resolves
// documentation links, and strips internal frames from stack traces. Tables
// are read from property files under ResourceDir in one or more fs.FS roots;
// the module embeds a default set.
//
// Errors that hide their cause or details in fields the standard unwrap
// conventions cannot see are handled by registering a Reader:
//
//	s, err := diag.New(diag.DefaultConfig(), diag.WithReader(
//		diag.NewReader(func(e *QueueError) error { return e.Dropped }, nil, nil),
//	))
package diag
