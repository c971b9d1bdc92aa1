// Package guard provides HTTP middleware gates over the session identity
// and the permission resolver.
//
// Each gate either calls through to the wrapped handler or produces a
// 401/403 outcome. API-style requests (JSON accept header or XHR marker)
// receive a JSON error body; browser requests are redirected to the login
// page with the original path preserved, or shown the forbidden handler.
//
//	g := guard.New(resolver)
//	r.With(g.RequireAuth).Get("/dashboard", dashboard)
//	r.With(g.RequirePermission(rbac.PermContentWrite)).Post("/content", createContent)
package guard
