// Package httpserver wraps net/http with graceful shutdown and health
// probes for the auth service binary.
//
// Run blocks until the context is cancelled, an interrupt or TERM signal
// arrives, or the listener fails. Shutdown drains in-flight requests
// within the configured deadline and is safe to call more than once.
// Healthcheck builds a probe handler from dependency check functions
// such as pg.Healthcheck and redis.Healthcheck.
package httpserver
