package audit

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// DefaultQueryLimit applies when a caller passes a non-positive limit.
const DefaultQueryLimit = 50

// MaxQueryLimit caps any single query regardless of the requested limit.
const MaxQueryLimit = 500

// Reader queries the audit log. All results are ordered newest-first.
type Reader struct {
	storage Storage
}

// NewReader creates an audit reader over the given storage.
func NewReader(storage Storage) *Reader {
	if storage == nil {
		panic("audit: storage is required")
	}
	return &Reader{storage: storage}
}

// Recent returns the latest entries across all actors and resources.
func (r *Reader) Recent(ctx context.Context, limit int) ([]Entry, error) {
	return r.query(ctx, Filter{Limit: limit})
}

// ByActor returns the latest entries attributed to the given user.
func (r *Reader) ByActor(ctx context.Context, actorID uuid.UUID, limit int) ([]Entry, error) {
	return r.query(ctx, Filter{ActorID: &actorID, Limit: limit})
}

// ByResource returns the latest entries touching the named resource.
func (r *Reader) ByResource(ctx context.Context, resource string, limit int) ([]Entry, error) {
	return r.query(ctx, Filter{Resource: resource, Limit: limit})
}

func (r *Reader) query(ctx context.Context, filter Filter) ([]Entry, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultQueryLimit
	}
	if filter.Limit > MaxQueryLimit {
		filter.Limit = MaxQueryLimit
	}

	entries, err := r.storage.Select(ctx, filter)
	if err != nil {
		return nil, errors.Join(ErrStorageFailure, err)
	}
	return entries, nil
}
