// Package postgresmembershiprepo implements membership.Repo on PostgreSQL via pgx.
package postgresmembershiprepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/dliriotech/tms-auth-service/membership"
)

var _ membership.Repo = (*Repo)(nil)

type Repo struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) ListByUser(ctx context.Context, userID int) ([]membership.Membership, error) {
	const query = `
		SELECT user_id, empresa_id
		FROM user_empresas
		WHERE user_id = $1
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, errors.Wrap(err, "[Repo.ListByUser] query user_empresas")
	}
	defer rows.Close()

	var result []membership.Membership
	for rows.Next() {
		var m membership.Membership
		if err := rows.Scan(&m.UserID, &m.CompanyID); err != nil {
			return nil, errors.Wrap(err, "[Repo.ListByUser] scan user_empresas row")
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "[Repo.ListByUser] iterate user_empresas rows")
	}
	return result, nil
}

func (r *Repo) ExistsPair(ctx context.Context, userID, companyID int) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM user_empresas WHERE user_id = $1 AND empresa_id = $2
		)
	`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, companyID).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "[Repo.ExistsPair] query user_empresas")
	}
	return exists, nil
}
