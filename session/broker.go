// Package session brokers the short-lived, single-use session tokens that
// bridge password verification and company selection during a multi-company
// login. Tokens live only in a shared key-value store, bound to a user ID
// with a TTL; once consumed or expired they never validate again.
package session

import (
	"context"
	"time"
)

// Broker issues and consumes single-use session tokens.
//
// ValidateAndConsume is a single atomic check-and-delete: of any number of
// concurrent calls with the same token, exactly one observes true. Separate
// validate-then-delete calls would race two token generations out of one
// disambiguation step.
type Broker interface {
	Issue(ctx context.Context, token string, userID int, ttl time.Duration) error
	ValidateAndConsume(ctx context.Context, token string, userID int) (bool, error)
	Delete(ctx context.Context, token string) (bool, error)
}
