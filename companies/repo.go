package companies

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Repo implementations when no company matches.
var ErrNotFound = errors.New("company not found")

type Repo interface {
	GetByID(ctx context.Context, id int) (*Company, error)
}
