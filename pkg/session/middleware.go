package session

import "net/http"

// Middleware resolves the session token on every request and, when it maps
// to a valid session of an active user, attaches the identity to the
// request context. Requests without a valid session pass through
// unauthenticated; rejecting them is the guard layer's job.
func (m *Manager) Middleware(transport Transport) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := transport.GetToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity, ok, err := m.Resolve(r.Context(), token)
			if err != nil || !ok {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}
