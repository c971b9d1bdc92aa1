// Package csrf implements double-submit-cookie protection for
// state-changing requests.
//
// The guard issues a high-entropy token in a non-httpOnly cookie so client
// script can echo it back. Safe methods only trigger issuance; unsafe
// methods must carry the token in the X-CSRF-Token header or the _csrf
// form field, byte-equal to the cookie value.
//
//	guard := csrf.New(csrf.Config{CookieSecure: true})
//	r.Use(guard.Middleware)
//
// The comparison is a plain equality test. The cookie value is visible to
// the client by design, so constant-time comparison buys nothing here.
package csrf
