package membership

import "context"

type Repo interface {
	// ListByUser returns the memberships for a user in store order.
	ListByUser(ctx context.Context, userID int) ([]Membership, error)
	// ExistsPair reports whether the (user, company) pair currently exists.
	ExistsPair(ctx context.Context, userID, companyID int) (bool, error)
}
