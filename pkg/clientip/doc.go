// Package clientip resolves the originating client address of an
// *http.Request behind reverse proxies.
//
// Headers are examined in descending priority until a valid address is
// found:
//
//  1. X-Forwarded-For - comma-separated list, first valid IP wins
//  2. X-Real-IP       - set by reverse proxies such as Nginx
//  3. RemoteAddr      - TCP peer address as a fallback
//
// GetIP never returns an error; when nothing parses it returns an empty
// string and the caller decides how to proceed. The audit log stores the
// result as-is.
package clientip
