package token

// Token kinds carried in the "kind" claim. The kind is a first-class signed
// claim checked before any other claim extraction, so a refresh token can
// never be accepted where an access token is required and vice versa.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

// Claims is the decoded payload of a signed token.
type Claims struct {
	Username  string // "sub"
	UserID    int    // "id"
	Role      string // "role"
	Kind      string // "kind"
	CompanyID int    // "id_empresa", access tokens only
	IssuedAt  int64  // "iat"
	ExpiresAt int64  // "exp"
}

// IsAccess reports whether the token is company-scoped. An access token
// always carries id_empresa; a refresh token never does.
func (c *Claims) IsAccess() bool {
	return c.Kind == KindAccess
}
