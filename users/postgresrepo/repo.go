// Package postgresuserrepo implements users.Repo on PostgreSQL via pgx.
package postgresuserrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/dliriotech/tms-auth-service/users"
)

var _ users.Repo = (*Repo)(nil)

type Repo struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	const query = `
		SELECT id, user_name, password, role, name, last_name
		FROM auth_users
		WHERE user_name = $1
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, username))
}

func (r *Repo) GetByID(ctx context.Context, id int) (*users.User, error) {
	const query = `
		SELECT id, user_name, password, role, name, last_name
		FROM auth_users
		WHERE id = $1
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *Repo) Create(ctx context.Context, user *users.User) (*users.User, error) {
	const query = `
		INSERT INTO auth_users (user_name, password, role, name, last_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		user.Username, user.PasswordHash, user.Role, user.Name, user.LastName,
	).Scan(&user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "[Repo.Create] insert auth_users")
	}
	return user, nil
}

func (r *Repo) scanUser(row pgx.Row) (*users.User, error) {
	var u users.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Name, &u.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, users.ErrNotFound
		}
		return nil, errors.Wrap(err, "[Repo.scanUser] scan auth_users row")
	}
	return &u, nil
}
