package users

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Repo implementations when no user matches.
var ErrNotFound = errors.New("user not found")

type Repo interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
}
