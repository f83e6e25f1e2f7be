// Package workers provides abstractions for managing and running
// background workers of the roster server.
// It defines the Worker interface and a Workers aggregate that starts and
// stops several workers in a unified way.
package workers

// Worker is a long-running background task.
//
// Run blocks until Stop is called. Stop must be safe to call more than once
// and from another goroutine than Run.
type Worker interface {
	Run()
	Stop()
}
