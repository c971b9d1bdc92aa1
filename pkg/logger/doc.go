// Package logger builds the application's slog.Logger.
//
// The factory wraps the chosen handler with a decorator that injects
// request-scoped attributes (request id, client ip) from the context on
// every log call, so handlers never pass them explicitly.
//
//	log := logger.New(logger.WithEnvironment(cfg.Env, "authkit"))
//	slog.SetDefault(log)
package logger
