package server

import "context"

// Server defines the lifecycle contract of the roster server.
//
// Implementations are expected to block in [RunServer] until shutdown is
// requested and to release resources in [Shutdown].
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}

// BackgroundWorkers is the set of workers started next to the listener.
type BackgroundWorkers interface {
	Run()
	Stop()
}

// Flusher is closed last, after requests and workers are done.
type Flusher interface {
	Close(ctx context.Context) error
}
