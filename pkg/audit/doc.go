// Package audit records security-relevant actions to an append-only log.
//
// Recording is best-effort: storage failures are logged locally and
// swallowed so an audit problem never aborts the business operation that
// triggered it. Entries are immutable once stored; retention is an
// operational concern outside this package.
//
// The Recorder writes, the Reader queries, and the Middleware captures
// state-changing HTTP requests automatically, deriving the action name
// from the method and path shape and the success flag from the response
// status class.
package audit
