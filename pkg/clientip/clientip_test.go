package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/salescoach/authkit/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{
			name: "forwarded-for wins",
			headers: map[string]string{
				"X-Forwarded-For": "203.0.113.195",
				"X-Real-IP":       "10.0.0.1",
			},
			remoteAddr: "172.16.0.1:54321",
			expected:   "203.0.113.195",
		},
		{
			name: "forwarded-for first valid entry",
			headers: map[string]string{
				"X-Forwarded-For": "not-an-ip, 198.51.100.178, 10.0.0.1",
			},
			remoteAddr: "172.16.0.1:54321",
			expected:   "198.51.100.178",
		},
		{
			name:       "real-ip fallback",
			headers:    map[string]string{"X-Real-IP": "198.51.100.7"},
			remoteAddr: "172.16.0.1:54321",
			expected:   "198.51.100.7",
		},
		{
			name:       "remote addr fallback",
			remoteAddr: "172.16.0.1:54321",
			expected:   "172.16.0.1",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "172.16.0.1",
			expected:   "172.16.0.1",
		},
		{
			name:       "ipv6 normalized",
			headers:    map[string]string{"X-Forwarded-For": "2001:DB8::1"},
			remoteAddr: "172.16.0.1:54321",
			expected:   "2001:db8::1",
		},
		{
			name:       "garbage everywhere",
			headers:    map[string]string{"X-Forwarded-For": "banana", "X-Real-IP": "also-banana"},
			remoteAddr: "not-an-address",
			expected:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			assert.Equal(t, tt.expected, clientip.GetIP(req))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var captured string
	handler := clientip.Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		captured = clientip.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9")

	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "203.0.113.9", captured)
}
