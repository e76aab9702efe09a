package server

import "context"

// Server defines the lifecycle contract for the transport server managed by
// this package.
//
// Implementations are expected to block in [RunServer] until shutdown is
// requested and to release resources in [Shutdown].
type Server interface {
	// RunServer starts serving requests and blocks until SIGTERM, SIGINT or
	// SIGQUIT is received and in-flight requests have drained.
	RunServer()

	// Run is RunServer driven by ctx instead of process signals.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown(ctx context.Context) error
}
