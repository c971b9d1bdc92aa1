// Package redis connects the go-redis client used by the distributed MFA
// challenge store and exposes a health check for it.
package redis
