package httpserver

import "errors"

var (
	// ErrServe indicates the listener failed or refused to start.
	ErrServe = errors.New("httpserver.serve_failed")

	// ErrShutdown indicates graceful shutdown did not complete in time.
	ErrShutdown = errors.New("httpserver.shutdown_failed")
)
