// Package auth implements the authentication workflows: login with company
// disambiguation, session-token exchange, token refresh, and registration.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/dliriotech/tms-auth-service/companies"
	autherrors "github.com/dliriotech/tms-auth-service/internal/errors"
	"github.com/dliriotech/tms-auth-service/membership"
	"github.com/dliriotech/tms-auth-service/session"
	"github.com/dliriotech/tms-auth-service/token"
	"github.com/dliriotech/tms-auth-service/users"
)

const defaultSessionTokenTTL = 5 * time.Minute

// Repos holds all repository dependencies for the Service.
type Repos struct {
	Users       users.Repo      // Credential records
	Memberships membership.Repo // (user, company) pairs
	Companies   companies.Repo  // Display data for login responses
}

// LoginResult is the outcome of a login attempt. Exactly one of three shapes
// is populated: tokens (single company), a session token plus company list
// (multiple companies), or neither (no companies).
type LoginResult struct {
	UserID       int                 `json:"userId"`
	Username     string              `json:"userName"`
	Role         string              `json:"role"`
	Companies    []companies.Company `json:"empresas"`
	Token        string              `json:"token,omitempty"`
	RefreshToken string              `json:"refreshToken,omitempty"`
	SessionToken string              `json:"sessionToken,omitempty"`
	Name         string              `json:"name,omitempty"`
	LastName     string              `json:"lastName,omitempty"`
}

// TokenPair is a freshly minted access and refresh token.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// UserResponse is returned by Register.
type UserResponse struct {
	ID       int    `json:"id"`
	Username string `json:"userName"`
	Role     string `json:"role"`
}

// Service orchestrates credential verification, membership resolution,
// session-token brokering, and token minting. All cross-request state lives
// in the external key-value store behind the Broker.
type Service struct {
	repos           Repos
	broker          session.Broker
	tokens          *token.Manager
	sessionTokenTTL time.Duration
	nowTime         func() time.Time
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithSessionTokenTTL overrides the lifetime of issued session tokens.
func WithSessionTokenTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		s.sessionTokenTTL = ttl
	}
}

// NewService initializes a new Service with required dependencies.
func NewService(repos Repos, broker session.Broker, tokens *token.Manager, options ...ServiceOption) (*Service, error) {
	if repos.Users == nil {
		return nil, errors.New("[NewService] Users repo is required")
	}
	if repos.Memberships == nil {
		return nil, errors.New("[NewService] Memberships repo is required")
	}
	if repos.Companies == nil {
		return nil, errors.New("[NewService] Companies repo is required")
	}
	if broker == nil {
		return nil, errors.New("[NewService] session broker is required")
	}
	if tokens == nil {
		return nil, errors.New("[NewService] token manager is required")
	}

	s := &Service{
		repos:           repos,
		broker:          broker,
		tokens:          tokens,
		sessionTokenTTL: defaultSessionTokenTTL,
		nowTime:         time.Now,
	}

	for _, opt := range options {
		opt(s)
	}

	return s, nil
}

// Login verifies credentials and resolves the companies the user may act as.
// Zero companies yields a profile-only result; a single company yields tokens
// immediately; multiple companies yield a session token the client must
// exchange via GenerateToken after picking one.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.verifyCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}

	memberships, err := s.repos.Memberships.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Login] ListByUser")
	}

	result := &LoginResult{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		Name:      user.Name,
		LastName:  user.LastName,
		Companies: []companies.Company{},
	}

	switch len(memberships) {
	case 0:
		log.Info().Str("user", username).Msg("login succeeded with no company memberships")
		return result, nil

	case 1:
		// Unambiguous scope: tokens immediately, no company list to pick from.
		companyID := memberships[0].CompanyID
		pair, err := s.mintTokenPair(user, companyID)
		if err != nil {
			return nil, err
		}
		result.Token = pair.Token
		result.RefreshToken = pair.RefreshToken
		log.Info().Str("user", username).Int("empresa_id", companyID).Msg("login succeeded for single company")
		return result, nil

	default:
		sessionToken := uuid.New().String()
		if err := s.broker.Issue(ctx, sessionToken, user.ID, s.sessionTokenTTL); err != nil {
			return nil, errors.Wrap(err, "[Service.Login] broker.Issue")
		}
		result.SessionToken = sessionToken
		result.Companies = s.companyInfo(ctx, memberships)
		log.Info().Str("user", username).Int("empresas", len(memberships)).Msg("login pending company selection")
		return result, nil
	}
}

// GenerateToken exchanges a single-use session token for a token pair scoped
// to the chosen company. The session token is consumed atomically: a second
// call with the same token always fails.
func (s *Service) GenerateToken(ctx context.Context, userID, companyID int, sessionToken string) (*TokenPair, error) {
	ok, err := s.broker.ValidateAndConsume(ctx, sessionToken, userID)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.GenerateToken] ValidateAndConsume")
	}
	if !ok {
		return nil, autherrors.Unauthorized("session invalid or expired")
	}

	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, autherrors.UserNotFound("user not found")
		}
		return nil, errors.Wrap(err, "[Service.GenerateToken] GetByID")
	}

	if err := s.requireMembership(ctx, userID, companyID); err != nil {
		return nil, err
	}

	pair, err := s.mintTokenPair(user, companyID)
	if err != nil {
		return nil, err
	}
	log.Info().Int("user_id", userID).Int("empresa_id", companyID).Msg("token generated from session")
	return pair, nil
}

// RefreshToken mints a fresh token pair from a valid refresh token. The
// (user, company) membership is re-checked against the store at refresh time;
// claims from the original grant are never trusted for authorization.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string, companyID int) (*TokenPair, error) {
	claims, err := s.tokens.ParseClaims(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.IsAccess() {
		return nil, autherrors.InvalidToken("access token presented where a refresh token is required")
	}

	user, err := s.repos.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, autherrors.UserNotFound("user associated with token not found")
		}
		return nil, errors.Wrap(err, "[Service.RefreshToken] GetByID")
	}

	if err := s.requireMembership(ctx, user.ID, companyID); err != nil {
		return nil, err
	}

	pair, err := s.mintTokenPair(user, companyID)
	if err != nil {
		return nil, err
	}
	log.Info().Int("user_id", user.ID).Int("empresa_id", companyID).Msg("token pair refreshed")
	return pair, nil
}

// ValidateToken is a pure signature and expiry check, used by gateways to
// gate protected routes.
func (s *Service) ValidateToken(tokenStr string) bool {
	return s.tokens.Verify(tokenStr)
}

// Register creates a new credential record. Memberships are managed
// externally and are not created here.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	_, err := s.repos.Users.GetByUsername(ctx, req.Username)
	if err == nil {
		return nil, autherrors.UserAlreadyExists("user " + req.Username + " already exists")
	}
	if !errors.Is(err, users.ErrNotFound) {
		return nil, errors.Wrap(err, "[Service.Register] GetByUsername")
	}

	hash, err := users.HashPassword(req.Password)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Register] HashPassword")
	}

	created, err := s.repos.Users.Create(ctx, &users.User{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         req.Role,
	})
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Register] Create")
	}

	log.Info().Str("user", created.Username).Msg("user registered")
	return &UserResponse{ID: created.ID, Username: created.Username, Role: created.Role}, nil
}

func (s *Service) verifyCredentials(ctx context.Context, username, password string) (*users.User, error) {
	user, err := s.repos.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, autherrors.UserNotFound("user not found: " + username)
		}
		return nil, errors.Wrap(err, "[Service.verifyCredentials] GetByUsername")
	}
	if !users.CheckPasswordHash(password, user.PasswordHash) {
		return nil, autherrors.InvalidCredentials("incorrect password")
	}
	return user, nil
}

func (s *Service) requireMembership(ctx context.Context, userID, companyID int) error {
	exists, err := s.repos.Memberships.ExistsPair(ctx, userID, companyID)
	if err != nil {
		return errors.Wrap(err, "[Service.requireMembership] ExistsPair")
	}
	if !exists {
		return autherrors.Unauthorized("user has no access to this company")
	}
	return nil
}

func (s *Service) mintTokenPair(user *users.User, companyID int) (*TokenPair, error) {
	access, err := s.tokens.CreateAccessToken(user, companyID)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.mintTokenPair] CreateAccessToken")
	}
	refresh, err := s.tokens.CreateRefreshToken(user)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.mintTokenPair] CreateRefreshToken")
	}
	return &TokenPair{Token: access, RefreshToken: refresh}, nil
}

// companyInfo enriches membership pairs with company display data. The
// listing degrades to bare IDs when the company store cannot serve a row.
func (s *Service) companyInfo(ctx context.Context, memberships []membership.Membership) []companies.Company {
	infos := make([]companies.Company, 0, len(memberships))
	for _, m := range memberships {
		company, err := s.repos.Companies.GetByID(ctx, m.CompanyID)
		if err != nil {
			log.Debug().Int("empresa_id", m.CompanyID).Err(err).Msg("company enrichment unavailable")
			infos = append(infos, companies.Company{ID: m.CompanyID})
			continue
		}
		infos = append(infos, *company)
	}
	return infos
}
