// Package membership models the many-to-many relation between users and
// companies. A (UserID, CompanyID) pair existing is the sole fact that
// authorizes minting an access token scoped to that company, so resolvers
// always consult the store live rather than caching.
package membership

// Membership is a bare (user, company) pair with no payload.
type Membership struct {
	UserID    int `json:"user_id"`
	CompanyID int `json:"empresa_id"`
}
