package audit

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStorage persists audit entries in the audit_log table.
type PGStorage struct {
	pool *pgxpool.Pool
}

// NewPGStorage creates a Postgres-backed audit storage.
func NewPGStorage(pool *pgxpool.Pool) *PGStorage {
	return &PGStorage{pool: pool}
}

func (s *PGStorage) Insert(ctx context.Context, entry Entry) error {
	var details []byte
	if entry.Details != nil {
		var err error
		details, err = json.Marshal(entry.Details)
		if err != nil {
			return errors.Join(ErrStorageFailure, err)
		}
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO audit_log
			(id, actor_id, actor_email, action, resource, resource_id,
			 details, ip, user_agent, success, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		entry.ID, entry.ActorID, entry.ActorEmail, entry.Action,
		entry.Resource, entry.ResourceID, details, entry.IP,
		entry.UserAgent, entry.Success, entry.CreatedAt,
	)
	if err != nil {
		return errors.Join(ErrStorageFailure, err)
	}
	return nil
}

func (s *PGStorage) Select(ctx context.Context, filter Filter) ([]Entry, error) {
	query := `SELECT id, actor_id, actor_email, action, resource, resource_id,
			details, ip, user_agent, success, created_at
		FROM audit_log`
	args := []any{}

	switch {
	case filter.ActorID != nil:
		query += ` WHERE actor_id = $1`
		args = append(args, *filter.ActorID)
	case filter.Resource != "":
		query += ` WHERE resource = $1`
		args = append(args, filter.Resource)
	}

	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Join(ErrStorageFailure, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry   Entry
			details []byte
		)
		if err := rows.Scan(
			&entry.ID, &entry.ActorID, &entry.ActorEmail, &entry.Action,
			&entry.Resource, &entry.ResourceID, &details, &entry.IP,
			&entry.UserAgent, &entry.Success, &entry.CreatedAt,
		); err != nil {
			return nil, errors.Join(ErrStorageFailure, err)
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &entry.Details); err != nil {
				return nil, errors.Join(ErrStorageFailure, err)
			}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrStorageFailure, err)
	}

	return entries, nil
}
