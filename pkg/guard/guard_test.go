package guard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/salescoach/authkit/pkg/guard"
	"github.com/salescoach/authkit/pkg/rbac"
	"github.com/salescoach/authkit/pkg/session"
)

func newGuard(t *testing.T, opts ...guard.Option) *guard.Guard {
	t.Helper()
	return guard.New(rbac.NewResolver(rbac.NewMemorySource(nil)), opts...)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestAs(role string, apiStyle bool) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/reports?week=23", nil)
	if apiStyle {
		req.Header.Set("Accept", "application/json")
	}
	if role != "" {
		identity := session.Identity{ID: uuid.New(), Email: "coach@example.com", Role: role}
		req = req.WithContext(session.WithIdentity(req.Context(), identity))
	}
	return req
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	handler := newGuard(t).RequireAuth(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(rbac.RoleUser, false))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs("", true))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication required")
}

func TestRequireAuthRedirectsBrowsers(t *testing.T) {
	t.Parallel()

	handler := newGuard(t).RequireAuth(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs("", false))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?redirect=%2Freports%3Fweek%3D23", rec.Header().Get("Location"))
}

func TestRequireAuthPreservesForwardedPrefix(t *testing.T) {
	t.Parallel()

	handler := newGuard(t).RequireAuth(okHandler())

	req := requestAs("", false)
	req.Header.Set("X-Forwarded-Prefix", "/app/")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?redirect=%2Fapp%2Freports%3Fweek%3D23", rec.Header().Get("Location"))
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	handler := newGuard(t).RequireAdmin(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(rbac.RoleAdmin, true))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(rbac.RoleContentManager, true))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient permissions")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs("", true))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequirePermission(t *testing.T) {
	t.Parallel()

	g := newGuard(t)

	handler := g.RequirePermission(rbac.PermContentWrite)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(rbac.RoleContentManager, true))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(rbac.RoleUser, true))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(rbac.RoleAdmin, true))
	assert.Equal(t, http.StatusOK, rec.Code, "admin bypasses permission checks")
}

func TestRequireAnyPermission(t *testing.T) {
	t.Parallel()

	handler := newGuard(t).RequireAnyPermission(
		rbac.PermAnalyticsRead, rbac.PermContentWrite,
	)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(rbac.RoleAnalyst, true))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(rbac.RoleUser, true))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAllPermissions(t *testing.T) {
	t.Parallel()

	handler := newGuard(t).RequireAllPermissions(
		rbac.PermContentRead, rbac.PermContentWrite,
	)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(rbac.RoleContentManager, true))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(rbac.RoleAnalyst, true))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestXHRMarkerTreatedAsAPI(t *testing.T) {
	t.Parallel()

	handler := newGuard(t).RequireAuth(okHandler())

	req := requestAs("", false)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCustomForbiddenHandler(t *testing.T) {
	t.Parallel()

	g := newGuard(t, guard.WithForbiddenHandler(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("custom error view"))
		}),
	))
	handler := g.RequireAdmin(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(rbac.RoleUser, false))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "custom error view")
}
