// Package fetch runs HTTP GET requests off the caller's goroutine.
//
// A Worker accepts at most one Request at a time. While a request is in
// flight, further submissions are dropped, not queued. Every accepted request
// produces exactly one Outcome, handed to the Sink the Worker was built with;
// the Sink is the only path by which results leave the background goroutine.
package fetch
