package csrf

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"time"
)

// tokenBytes is the entropy of an issued token before encoding.
const tokenBytes = 32

// Guard issues and validates double-submit CSRF tokens.
type Guard struct {
	cookieName string
	cookieTTL  time.Duration
	secure     bool
	headerName string
	fieldName  string
	onReject   http.Handler
}

// Option configures a Guard.
type Option func(*Guard)

// WithRejectHandler overrides the response written on token mismatch.
// The default writes 403 with a short JSON body.
func WithRejectHandler(h http.Handler) Option {
	return func(g *Guard) {
		if h != nil {
			g.onReject = h
		}
	}
}

// New creates a CSRF guard. Zero-value Config fields fall back to the
// documented defaults.
func New(cfg Config, opts ...Option) *Guard {
	g := &Guard{
		cookieName: cfg.CookieName,
		cookieTTL:  cfg.CookieTTL,
		secure:     cfg.CookieSecure,
		headerName: cfg.HeaderName,
		fieldName:  cfg.FieldName,
		onReject:   http.HandlerFunc(defaultReject),
	}
	if g.cookieName == "" {
		g.cookieName = "_csrf"
	}
	if g.cookieTTL <= 0 {
		g.cookieTTL = 24 * time.Hour
	}
	if g.headerName == "" {
		g.headerName = "X-CSRF-Token"
	}
	if g.fieldName == "" {
		g.fieldName = "_csrf"
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Middleware ensures every response carries a CSRF cookie and validates the
// submitted token on unsafe methods. Safe methods pass through after
// issuance; unsafe methods without a matching token get the reject handler.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := g.cookieToken(r)
		if token == "" {
			token = newToken()
			g.setCookie(w, token)
			// The freshly minted token cannot have been submitted yet,
			// so an unsafe request in the same round trip fails below.
		}

		if isSafeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		submitted := g.submittedToken(r)
		if submitted == "" || submitted != token {
			g.onReject.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Token returns the request's current CSRF cookie value, for embedding in
// rendered forms. Empty until the first response has issued a cookie.
func (g *Guard) Token(r *http.Request) string {
	return g.cookieToken(r)
}

func (g *Guard) cookieToken(r *http.Request) string {
	cookie, err := r.Cookie(g.cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (g *Guard) submittedToken(r *http.Request) string {
	if v := r.Header.Get(g.headerName); v != "" {
		return v
	}
	return r.PostFormValue(g.fieldName)
}

func (g *Guard) setCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     g.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(g.cookieTTL.Seconds()),
		HttpOnly: false,
		Secure:   g.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

func newToken() string {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		panic("csrf: entropy source failed: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}

func defaultReject(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"error":"invalid csrf token"}`))
}
