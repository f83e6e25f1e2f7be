// Package server wires and runs the roster HTTP server.
//
// It owns the process lifecycle: startup of the HTTP listener and the
// background workers, signal handling, and a graceful shutdown that drains
// requests, stops the workers and flushes the roster.
package server
