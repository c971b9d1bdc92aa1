package session

import (
	"net/http"
	"strings"
	"time"
)

// Transport extracts and sets session tokens on HTTP messages.
type Transport interface {
	GetToken(r *http.Request) string
	SetToken(w http.ResponseWriter, token string, ttl time.Duration)
	ClearToken(w http.ResponseWriter)
}

// CookieTransport carries the session token in an httpOnly cookie.
type CookieTransport struct {
	name   string
	secure bool
}

// NewCookieTransport creates a cookie transport for the named cookie.
func NewCookieTransport(name string, secure bool) *CookieTransport {
	if name == "" {
		name = "sid"
	}
	return &CookieTransport{name: name, secure: secure}
}

func (t *CookieTransport) GetToken(r *http.Request) string {
	cookie, err := r.Cookie(t.name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     t.name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (t *CookieTransport) ClearToken(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     t.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// HeaderTransport reads the token from an Authorization bearer header, for
// API clients that do not carry cookies. Setting and clearing are no-ops;
// API clients manage the token themselves.
type HeaderTransport struct{}

func (HeaderTransport) GetToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func (HeaderTransport) SetToken(http.ResponseWriter, string, time.Duration) {}

func (HeaderTransport) ClearToken(http.ResponseWriter) {}

// CompositeTransport tries each transport in order for extraction and
// applies writes through the first one.
type CompositeTransport struct {
	transports []Transport
}

// NewCompositeTransport composes transports; extraction order follows the
// argument order.
func NewCompositeTransport(transports ...Transport) *CompositeTransport {
	return &CompositeTransport{transports: transports}
}

func (t *CompositeTransport) GetToken(r *http.Request) string {
	for _, transport := range t.transports {
		if token := transport.GetToken(r); token != "" {
			return token
		}
	}
	return ""
}

func (t *CompositeTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) {
	if len(t.transports) > 0 {
		t.transports[0].SetToken(w, token, ttl)
	}
}

func (t *CompositeTransport) ClearToken(w http.ResponseWriter) {
	if len(t.transports) > 0 {
		t.transports[0].ClearToken(w)
	}
}
