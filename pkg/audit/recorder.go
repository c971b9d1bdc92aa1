package audit

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/salescoach/authkit/pkg/clientip"
)

// Actor identifies who performed an audited action.
type Actor struct {
	ID    uuid.UUID
	Email string
}

// ActorExtractor pulls the acting user out of a request context. It
// returns false when the request is unauthenticated.
type ActorExtractor func(ctx context.Context) (Actor, bool)

// Recorder appends entries to audit storage with best-effort semantics.
type Recorder struct {
	storage Storage
	actor   ActorExtractor
	log     *slog.Logger
	now     func() time.Time
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithActorExtractor wires identity extraction so FromRequest and the
// middleware can attribute entries to the logged-in user.
func WithActorExtractor(fn ActorExtractor) RecorderOption {
	return func(r *Recorder) { r.actor = fn }
}

// WithLogger overrides the logger used to report swallowed storage errors.
func WithLogger(log *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		if log != nil {
			r.log = log
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) { r.now = now }
}

// NewRecorder creates an audit recorder over the given storage.
func NewRecorder(storage Storage, opts ...RecorderOption) *Recorder {
	if storage == nil {
		panic("audit: storage is required")
	}

	r := &Recorder{
		storage: storage,
		log:     slog.Default(),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Record appends the entry, assigning ID and CreatedAt when unset. Storage
// failures are logged and swallowed; auditing must never abort the
// operation being audited. Only a structurally invalid entry returns an
// error.
func (r *Recorder) Record(ctx context.Context, entry Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.now()
	}

	if err := r.storage.Insert(ctx, entry); err != nil {
		r.log.ErrorContext(ctx, "audit append failed",
			slog.String("action", entry.Action),
			slog.String("resource", entry.Resource),
			slog.Any("error", err),
		)
	}
	return nil
}

// EntryOption customizes an entry built by FromRequest.
type EntryOption func(*Entry)

// WithResourceID attaches the identifier of the affected resource.
func WithResourceID(id string) EntryOption {
	return func(e *Entry) { e.ResourceID = id }
}

// WithDetail adds a key to the structured detail payload.
func WithDetail(key string, value any) EntryOption {
	return func(e *Entry) {
		if e.Details == nil {
			e.Details = make(map[string]any)
		}
		e.Details[key] = value
	}
}

// WithSuccess overrides the success flag, which defaults to true.
func WithSuccess(success bool) EntryOption {
	return func(e *Entry) { e.Success = success }
}

// FromRequest records an action, filling actor identity and network
// metadata from the request. Success defaults to true.
func (r *Recorder) FromRequest(req *http.Request, action, resource string, opts ...EntryOption) error {
	entry := Entry{
		Action:    action,
		Resource:  resource,
		IP:        clientip.GetIP(req),
		UserAgent: req.UserAgent(),
		Success:   true,
	}

	if r.actor != nil {
		if actor, ok := r.actor(req.Context()); ok {
			id := actor.ID
			entry.ActorID = &id
			entry.ActorEmail = actor.Email
		}
	}

	for _, opt := range opts {
		opt(&entry)
	}

	return r.Record(req.Context(), entry)
}
