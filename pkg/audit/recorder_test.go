package audit_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescoach/authkit/pkg/audit"
)

type failingStorage struct{}

func (failingStorage) Insert(context.Context, audit.Entry) error {
	return errors.New("disk on fire")
}

func (failingStorage) Select(context.Context, audit.Filter) ([]audit.Entry, error) {
	return nil, errors.New("disk on fire")
}

func TestRecord(t *testing.T) {
	t.Parallel()

	storage := audit.NewMemoryStorage()
	recorder := audit.NewRecorder(storage)
	ctx := context.Background()

	require.NoError(t, recorder.Record(ctx, audit.Entry{
		Action:   "create",
		Resource: "users",
		Success:  true,
	}))

	entries, err := storage.Select(ctx, audit.Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEqual(t, uuid.Nil, entries[0].ID)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestRecordRejectsMissingAction(t *testing.T) {
	t.Parallel()

	recorder := audit.NewRecorder(audit.NewMemoryStorage())

	err := recorder.Record(context.Background(), audit.Entry{Resource: "users"})
	assert.ErrorIs(t, err, audit.ErrInvalidEntry)
}

func TestRecordSwallowsStorageFailure(t *testing.T) {
	t.Parallel()

	recorder := audit.NewRecorder(failingStorage{})

	// A storage failure must never surface to the caller.
	err := recorder.Record(context.Background(), audit.Entry{Action: "login"})
	assert.NoError(t, err)
}

func TestFromRequest(t *testing.T) {
	t.Parallel()

	actorID := uuid.New()
	extractor := func(ctx context.Context) (audit.Actor, bool) {
		return audit.Actor{ID: actorID, Email: "coach@example.com"}, true
	}

	storage := audit.NewMemoryStorage()
	recorder := audit.NewRecorder(storage, audit.WithActorExtractor(extractor))

	req := httptest.NewRequest(http.MethodPost, "/content/42/toggle", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	req.Header.Set("User-Agent", "trainer-app/2.1")

	require.NoError(t, recorder.FromRequest(req, "toggle", "content",
		audit.WithResourceID("42"),
		audit.WithDetail("enabled", false),
	))

	entries, err := storage.Select(context.Background(), audit.Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	require.NotNil(t, entry.ActorID)
	assert.Equal(t, actorID, *entry.ActorID)
	assert.Equal(t, "coach@example.com", entry.ActorEmail)
	assert.Equal(t, "toggle", entry.Action)
	assert.Equal(t, "content", entry.Resource)
	assert.Equal(t, "42", entry.ResourceID)
	assert.Equal(t, "203.0.113.7", entry.IP)
	assert.Equal(t, "trainer-app/2.1", entry.UserAgent)
	assert.True(t, entry.Success)
	assert.Equal(t, map[string]any{"enabled": false}, entry.Details)
}

func TestFromRequestUnauthenticated(t *testing.T) {
	t.Parallel()

	storage := audit.NewMemoryStorage()
	recorder := audit.NewRecorder(storage)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, recorder.FromRequest(req, "login", "auth",
		audit.WithSuccess(false),
		audit.WithDetail("reason", "invalid credentials"),
	))

	entries, err := storage.Select(context.Background(), audit.Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].ActorID)
	assert.False(t, entries[0].Success)
}

func TestReader(t *testing.T) {
	t.Parallel()

	storage := audit.NewMemoryStorage()
	recorder := audit.NewRecorder(storage)
	reader := audit.NewReader(storage)
	ctx := context.Background()

	actorA := uuid.New()
	actorB := uuid.New()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seed := []audit.Entry{
		{ActorID: &actorA, Action: "create", Resource: "content", CreatedAt: base},
		{ActorID: &actorB, Action: "update", Resource: "content", CreatedAt: base.Add(time.Minute)},
		{ActorID: &actorA, Action: "delete", Resource: "users", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, e := range seed {
		require.NoError(t, recorder.Record(ctx, e))
	}

	recent, err := reader.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "delete", recent[0].Action, "newest first")
	assert.Equal(t, "update", recent[1].Action)

	byActor, err := reader.ByActor(ctx, actorA, 10)
	require.NoError(t, err)
	require.Len(t, byActor, 2)
	assert.Equal(t, "delete", byActor[0].Action)

	byResource, err := reader.ByResource(ctx, "content", 10)
	require.NoError(t, err)
	require.Len(t, byResource, 2)
	assert.Equal(t, "update", byResource[0].Action)
}

func TestReaderStorageFailure(t *testing.T) {
	t.Parallel()

	reader := audit.NewReader(failingStorage{})

	_, err := reader.Recent(context.Background(), 10)
	assert.ErrorIs(t, err, audit.ErrStorageFailure)
}
