package guard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/salescoach/authkit/pkg/rbac"
	"github.com/salescoach/authkit/pkg/session"
)

// PermissionChecker is the subset of the rbac resolver the gates need.
type PermissionChecker interface {
	Check(ctx context.Context, role, permission string) (bool, error)
	CheckAny(ctx context.Context, role string, permissions ...string) (bool, error)
	CheckAll(ctx context.Context, role string, permissions ...string) (bool, error)
}

// Guard builds request gates over the session identity and a permission
// checker.
type Guard struct {
	checker     PermissionChecker
	loginPath   string
	onForbidden http.Handler
}

// Option configures a Guard.
type Option func(*Guard)

// WithLoginPath overrides the browser redirect target, default /login.
func WithLoginPath(path string) Option {
	return func(g *Guard) {
		if path != "" {
			g.loginPath = path
		}
	}
}

// WithForbiddenHandler overrides the browser-facing 403 response, e.g. to
// render an error view.
func WithForbiddenHandler(h http.Handler) Option {
	return func(g *Guard) {
		if h != nil {
			g.onForbidden = h
		}
	}
}

// New creates a guard over the given permission checker.
func New(checker PermissionChecker, opts ...Option) *Guard {
	if checker == nil {
		panic("guard: permission checker is required")
	}

	g := &Guard{
		checker:   checker,
		loginPath: "/login",
		onForbidden: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "Forbidden", http.StatusForbidden)
		}),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// RequireAuth passes requests that carry a resolved identity.
func (g *Guard) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.IdentityFromContext(r.Context()); !ok {
			g.unauthenticated(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin passes only identities holding the admin role.
func (g *Guard) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := session.IdentityFromContext(r.Context())
		if !ok {
			g.unauthenticated(w, r)
			return
		}
		if identity.Role != rbac.RoleAdmin {
			g.forbidden(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePermission passes identities whose role holds the permission.
func (g *Guard) RequirePermission(permission string) func(http.Handler) http.Handler {
	return g.check(func(ctx context.Context, role string) (bool, error) {
		return g.checker.Check(ctx, role, permission)
	})
}

// RequireAnyPermission passes identities holding at least one of the
// permissions.
func (g *Guard) RequireAnyPermission(permissions ...string) func(http.Handler) http.Handler {
	return g.check(func(ctx context.Context, role string) (bool, error) {
		return g.checker.CheckAny(ctx, role, permissions...)
	})
}

// RequireAllPermissions passes identities holding every permission.
func (g *Guard) RequireAllPermissions(permissions ...string) func(http.Handler) http.Handler {
	return g.check(func(ctx context.Context, role string) (bool, error) {
		return g.checker.CheckAll(ctx, role, permissions...)
	})
}

func (g *Guard) check(allowed func(ctx context.Context, role string) (bool, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := session.IdentityFromContext(r.Context())
			if !ok {
				g.unauthenticated(w, r)
				return
			}

			// Resolver failure denies access rather than failing open.
			ok, err := allowed(r.Context(), identity.Role)
			if err != nil || !ok {
				g.forbidden(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (g *Guard) unauthenticated(w http.ResponseWriter, r *http.Request) {
	if isAPIRequest(r) {
		writeJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	target := g.loginPath + "?redirect=" + url.QueryEscape(requestPath(r))
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (g *Guard) forbidden(w http.ResponseWriter, r *http.Request) {
	if isAPIRequest(r) {
		writeJSONError(w, http.StatusForbidden, "insufficient permissions")
		return
	}
	g.onForbidden.ServeHTTP(w, r)
}

// requestPath reconstructs the externally visible path so the post-login
// redirect survives reverse proxies that strip a prefix.
func requestPath(r *http.Request) string {
	path := r.URL.Path
	if r.URL.RawQuery != "" {
		path += "?" + r.URL.RawQuery
	}
	if prefix := r.Header.Get("X-Forwarded-Prefix"); prefix != "" {
		path = strings.TrimSuffix(prefix, "/") + path
	}
	return path
}

func isAPIRequest(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest")
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
