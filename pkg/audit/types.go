package audit

import (
	"time"

	"github.com/google/uuid"
)

// Entry is a single audit log record. Actor fields are nil/empty for
// unauthenticated actions such as failed logins.
type Entry struct {
	ID         uuid.UUID      `json:"id"`
	ActorID    *uuid.UUID     `json:"actor_id,omitempty"`
	ActorEmail string         `json:"actor_email,omitempty"`
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	ResourceID string         `json:"resource_id,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	IP         string         `json:"ip,omitempty"`
	UserAgent  string         `json:"user_agent,omitempty"`
	Success    bool           `json:"success"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Validate checks the entry carries its required action verb.
func (e *Entry) Validate() error {
	if e.Action == "" {
		return ErrInvalidEntry
	}
	return nil
}

// Filter narrows a query. Zero fields match everything; Limit is clamped
// by the reader.
type Filter struct {
	ActorID  *uuid.UUID
	Resource string
	Limit    int
}
