package rbac

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGSource reads and writes role grants in the role_permissions table.
type PGSource struct {
	pool *pgxpool.Pool
}

// NewPGSource creates a Postgres-backed grant source.
func NewPGSource(pool *pgxpool.Pool) *PGSource {
	return &PGSource{pool: pool}
}

func (s *PGSource) Grants(ctx context.Context, role string) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT permission FROM role_permissions WHERE role = $1 ORDER BY permission`,
		role,
	)
	if err != nil {
		return nil, errors.Join(ErrSourceFailure, err)
	}
	defer rows.Close()

	var grants []string
	for rows.Next() {
		var permission string
		if err := rows.Scan(&permission); err != nil {
			return nil, errors.Join(ErrSourceFailure, err)
		}
		grants = append(grants, permission)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrSourceFailure, err)
	}

	return grants, nil
}

// SaveGrants replaces the role's grant rows in a single transaction.
func (s *PGSource) SaveGrants(ctx context.Context, role string, permissions []string) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return errors.Join(ErrSourceFailure, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`DELETE FROM role_permissions WHERE role = $1`, role,
	); err != nil {
		return errors.Join(ErrSourceFailure, err)
	}

	for _, permission := range permissions {
		if _, err := tx.Exec(ctx,
			`INSERT INTO role_permissions (role, permission) VALUES ($1, $2)`,
			role, permission,
		); err != nil {
			return errors.Join(ErrSourceFailure, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Join(ErrSourceFailure, err)
	}
	return nil
}
