package audit

import (
	"net/http"
	"strings"
)

// Middleware records every state-changing request without handlers opting
// in. The action verb is derived from the method and path shape, the
// resource from the first path segment, and the success flag from the
// response status class. Safe methods pass through unrecorded.
func (r *Recorder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
			next.ServeHTTP(w, req)
			return
		}

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, req)

		action, resource, resourceID := describeRequest(req)
		opts := []EntryOption{WithSuccess(sw.status < http.StatusBadRequest)}
		if resourceID != "" {
			opts = append(opts, WithResourceID(resourceID))
		}
		_ = r.FromRequest(req, action, resource, opts...)
	})
}

// statusWriter captures the status code written by the handler.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

// describeRequest maps a mutating request onto an action verb, a resource
// name, and an optional resource id.
//
//	POST   /users          -> create, users
//	PUT    /users/42       -> update, users, 42
//	DELETE /users/42       -> delete, users, 42
//	POST   /users/42/toggle -> toggle, users, 42
//	POST   /login          -> login, auth
//	POST   /logout         -> logout, auth
func describeRequest(req *http.Request) (action, resource, resourceID string) {
	segments := splitPath(req.URL.Path)

	last := ""
	if len(segments) > 0 {
		last = segments[len(segments)-1]
	}

	switch last {
	case "login", "logout":
		return last, "auth", ""
	case "toggle":
		action = "toggle"
		segments = segments[:len(segments)-1]
	default:
		switch req.Method {
		case http.MethodPost:
			action = "create"
		case http.MethodPut, http.MethodPatch:
			action = "update"
		case http.MethodDelete:
			action = "delete"
		default:
			action = strings.ToLower(req.Method)
		}
	}

	if len(segments) > 0 {
		resource = segments[0]
	}
	if len(segments) > 1 {
		resourceID = segments[len(segments)-1]
	}
	return action, resource, resourceID
}

func splitPath(path string) []string {
	var segments []string
	for part := range strings.SplitSeq(path, "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
