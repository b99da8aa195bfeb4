// Package postgrescompanyrepo implements companies.Repo on PostgreSQL via pgx.
package postgrescompanyrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/dliriotech/tms-auth-service/companies"
)

var _ companies.Repo = (*Repo)(nil)

type Repo struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) GetByID(ctx context.Context, id int) (*companies.Company, error) {
	const query = `
		SELECT id, nombre, email
		FROM empresas
		WHERE id = $1
	`
	var c companies.Company
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, companies.ErrNotFound
		}
		return nil, errors.Wrap(err, "[Repo.GetByID] scan empresas row")
	}
	return &c, nil
}
