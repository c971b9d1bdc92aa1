package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/salescoach/authkit/pkg/audit"
	"github.com/salescoach/authkit/pkg/qrcode"
	"github.com/salescoach/authkit/pkg/session"
)

// Handler mounts the login ceremony routes. The session transport writes
// and clears the session cookie with lifetimes from sessionCfg; the
// recorder logs every attempt. The /mfa routes assume the caller mounted
// them behind the session middleware and an authentication gate.
func (s *Service) Handler(transport session.Transport, recorder *audit.Recorder, sessionCfg session.Config) http.Handler {
	h := &handlers{svc: s, transport: transport, recorder: recorder, sessionCfg: sessionCfg}

	r := chi.NewRouter()
	r.Post("/login", h.login)
	r.Post("/login/mfa", h.loginMFA)
	r.Post("/logout", h.logout)
	r.Post("/mfa/enroll", h.enrollMFA)
	r.Get("/mfa/qr", h.qrCode)
	r.Post("/mfa/activate", h.activateMFA)
	return r
}

type handlers struct {
	svc        *Service
	transport  session.Transport
	recorder   *audit.Recorder
	sessionCfg session.Config
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.svc.Login(r.Context(), req.Email, req.Password, req.Remember)
	if err != nil {
		h.record(r, "login", audit.WithSuccess(false), audit.WithDetail("email", normalizeEmail(req.Email)))
		writeError(w, err)
		return
	}

	if result.MFARequired {
		writeJSON(w, http.StatusOK, map[string]any{
			"mfa_required":    true,
			"challenge_token": result.ChallengeToken,
		})
		return
	}

	h.issueSession(w, result.SessionToken, req.Remember)
	h.record(r, "login")
	writeJSON(w, http.StatusOK, map[string]any{"authenticated": true})
}

type mfaLoginRequest struct {
	ChallengeToken string `json:"challenge_token"`
	Code           string `json:"code"`
	RecoveryCode   string `json:"recovery_code"`
	Remember       bool   `json:"remember"`
}

func (h *handlers) loginMFA(w http.ResponseWriter, r *http.Request) {
	var req mfaLoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	token, err := h.svc.VerifyMFA(r.Context(), req.ChallengeToken, req.Code, req.RecoveryCode, req.Remember)
	if err != nil {
		h.record(r, "login", audit.WithSuccess(false), audit.WithDetail("stage", "mfa"))
		writeError(w, err)
		return
	}

	h.issueSession(w, token, req.Remember)
	h.record(r, "login", audit.WithDetail("stage", "mfa"))
	writeJSON(w, http.StatusOK, map[string]any{"authenticated": true})
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	token := h.transport.GetToken(r)
	if err := h.svc.Logout(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}

	h.transport.ClearToken(w)
	h.record(r, "logout")
	writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
}

func (h *handlers) enrollMFA(w http.ResponseWriter, r *http.Request) {
	identity, ok := session.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "authentication required"})
		return
	}

	enrollment, err := h.svc.EnrollMFA(r.Context(), identity.ID.String())
	if err != nil {
		writeError(w, err)
		return
	}

	h.record(r, "mfa_enroll")
	writeJSON(w, http.StatusOK, enrollment)
}

func (h *handlers) qrCode(w http.ResponseWriter, r *http.Request) {
	identity, ok := session.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "authentication required"})
		return
	}

	uri, err := h.svc.EnrollmentURIFor(r.Context(), identity.ID.String())
	if err != nil {
		writeError(w, err)
		return
	}

	png, err := qrcode.PNG(uri, qrcode.DefaultSize)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}

type activateRequest struct {
	Code string `json:"code"`
}

func (h *handlers) activateMFA(w http.ResponseWriter, r *http.Request) {
	identity, ok := session.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "authentication required"})
		return
	}

	var req activateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.svc.ActivateMFA(r.Context(), identity.ID.String(), req.Code); err != nil {
		h.record(r, "mfa_activate", audit.WithSuccess(false))
		writeError(w, err)
		return
	}

	h.record(r, "mfa_activate")
	writeJSON(w, http.StatusOK, map[string]any{"mfa_enabled": true})
}

func (h *handlers) issueSession(w http.ResponseWriter, token string, remember bool) {
	ttl := h.sessionCfg.TTL
	if remember {
		ttl = h.sessionCfg.RememberTTL
	}
	h.transport.SetToken(w, token, ttl)
}

func (h *handlers) record(r *http.Request, action string, opts ...audit.EntryOption) {
	if h.recorder == nil {
		return
	}
	_ = h.recorder.FromRequest(r, action, "auth", opts...)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "malformed request body"})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "invalid credentials"})
	case errors.Is(err, ErrInvalidMFACode):
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "invalid code"})
	case errors.Is(err, ErrChallengeExpired):
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "challenge expired, log in again"})
	case errors.Is(err, ErrMFANotEnrolled):
		writeJSON(w, http.StatusConflict, map[string]any{"error": "mfa not enrolled"})
	case errors.Is(err, ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "user not found"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
