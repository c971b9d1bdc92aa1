// Package pg manages the PostgreSQL connection pool, schema migrations,
// and common error classification for the storage layers built on pgx.
package pg
