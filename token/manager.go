// Package token signs, verifies, and parses the access and refresh tokens
// issued by the authentication service. Access tokens are scoped to exactly
// one company; refresh tokens carry identity only.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	autherrors "github.com/dliriotech/tms-auth-service/internal/errors"
	"github.com/dliriotech/tms-auth-service/users"
)

// Manager creates and parses signed tokens with a single symmetric signer.
type Manager struct {
	signer             Signer
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
	nowFunc            func() time.Time
}

type ManagerOption func(*Manager)

func WithTokenExpiry(accessTokenExpiry, refreshTokenExpiry time.Duration) ManagerOption {
	return func(m *Manager) {
		m.accessTokenExpiry = accessTokenExpiry
		m.refreshTokenExpiry = refreshTokenExpiry
	}
}

func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

func New(signer Signer, options ...ManagerOption) *Manager {
	m := &Manager{
		signer: signer,
	}

	for _, opt := range options {
		opt(m)
	}

	if m.accessTokenExpiry == 0 {
		m.accessTokenExpiry = time.Hour
	}
	if m.refreshTokenExpiry == 0 {
		m.refreshTokenExpiry = 7 * 24 * time.Hour
	}
	if m.nowFunc == nil {
		m.nowFunc = time.Now
	}
	return m
}

// CreateAccessToken mints a company-scoped access token. Callers must have
// confirmed the (user, company) membership pair before minting.
func (m *Manager) CreateAccessToken(user *users.User, companyID int) (string, error) {
	now := m.nowFunc()
	claims := jwt.MapClaims{
		"sub":        user.Username,
		"id":         user.ID,
		"role":       user.Role,
		"id_empresa": companyID,
		"kind":       KindAccess,
		"iat":        now.Unix(),
		"exp":        now.Add(m.accessTokenExpiry).Unix(),
		"jti":        uuid.New().String(),
	}
	return m.signer.Sign(claims)
}

// CreateRefreshToken mints an identity-only refresh token. It never carries
// a company claim.
func (m *Manager) CreateRefreshToken(user *users.User) (string, error) {
	now := m.nowFunc()
	claims := jwt.MapClaims{
		"sub":  user.Username,
		"id":   user.ID,
		"role": user.Role,
		"kind": KindRefresh,
		"iat":  now.Unix(),
		"exp":  now.Add(m.refreshTokenExpiry).Unix(),
		"jti":  uuid.New().String(),
	}
	return m.signer.Sign(claims)
}

// Verify reports whether the token has a valid signature and is unexpired.
// It never returns an error; any malformed input is simply false.
func (m *Manager) Verify(tokenStr string) bool {
	_, err := m.parse(tokenStr)
	return err == nil
}

// ParseClaims verifies the token and decodes its claims. The kind claim is
// validated before anything else is extracted.
func (m *Manager) ParseClaims(tokenStr string) (*Claims, error) {
	mapClaims, err := m.parse(tokenStr)
	if err != nil {
		return nil, autherrors.InvalidToken("invalid or expired token")
	}

	kind, _ := mapClaims["kind"].(string)
	if kind != KindAccess && kind != KindRefresh {
		return nil, autherrors.InvalidToken("token kind missing or unknown")
	}

	claims := &Claims{
		Kind:      kind,
		UserID:    intClaim(mapClaims, "id"),
		IssuedAt:  int64Claim(mapClaims, "iat"),
		ExpiresAt: int64Claim(mapClaims, "exp"),
	}
	claims.Username, _ = mapClaims["sub"].(string)
	claims.Role, _ = mapClaims["role"].(string)

	if _, present := mapClaims["id_empresa"]; present != (kind == KindAccess) {
		// A company claim on a refresh token (or a missing one on an access
		// token) means the token was not built by this service.
		return nil, autherrors.InvalidToken("token claims inconsistent with kind")
	}
	if kind == KindAccess {
		claims.CompanyID = intClaim(mapClaims, "id_empresa")
	}

	if claims.Username == "" || claims.UserID == 0 {
		return nil, autherrors.InvalidToken("token subject missing")
	}

	return claims, nil
}

func (m *Manager) parse(tokenStr string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(
		tokenStr,
		m.signer.GetVerificationKey,
		jwt.WithValidMethods([]string{m.signer.GetSigningMethod().Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return mapClaims, nil
}

// JSON numbers decode as float64; tokens we minted use integral values.
func intClaim(claims jwt.MapClaims, key string) int {
	switch v := claims[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

func int64Claim(claims jwt.MapClaims, key string) int64 {
	switch v := claims[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}
