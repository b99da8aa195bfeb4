package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dliriotech/tms-auth-service/auth"
	"github.com/dliriotech/tms-auth-service/companies"
	fakecompanyrepo "github.com/dliriotech/tms-auth-service/companies/repofake"
	autherrors "github.com/dliriotech/tms-auth-service/internal/errors"
	fakemembershiprepo "github.com/dliriotech/tms-auth-service/membership/repofake"
	"github.com/dliriotech/tms-auth-service/session"
	fakebroker "github.com/dliriotech/tms-auth-service/session/brokerfake"
	"github.com/dliriotech/tms-auth-service/token"
	"github.com/dliriotech/tms-auth-service/users"
	fakeuserrepo "github.com/dliriotech/tms-auth-service/users/repofake"
)

const (
	secretStr        = "test-signing-secret"
	testUserPassword = "password123"
	testRole         = "USER"
)

// testFixture holds all test dependencies
type testFixture struct {
	userRepo       *fakeuserrepo.FakeUserRepo
	membershipRepo *fakemembershiprepo.FakeMembershipRepo
	companyRepo    *fakecompanyrepo.FakeCompanyRepo
	broker         *fakebroker.FakeBroker
	tokenManager   *token.Manager
	service        *auth.Service
}

// testUser represents a test user with common fields
type testUser struct {
	Username   string
	Password   string
	Role       string
	Name       string
	LastName   string
	CompanyIDs []int
}

// setupTestFixture creates a new test fixture with all dependencies
func setupTestFixture(t *testing.T, options ...auth.ServiceOption) *testFixture {
	t.Helper()

	ur := fakeuserrepo.NewFakeUserRepo()
	mr := fakemembershiprepo.NewFakeMembershipRepo()
	cr := fakecompanyrepo.NewFakeCompanyRepo()
	br := fakebroker.NewFakeBroker()
	tm := token.New(token.NewHMACSigner(secretStr))

	repos := auth.Repos{
		Users:       ur,
		Memberships: mr,
		Companies:   cr,
	}

	service, err := auth.NewService(repos, br, tm, options...)
	require.NoError(t, err)

	return &testFixture{
		userRepo:       ur,
		membershipRepo: mr,
		companyRepo:    cr,
		broker:         br,
		tokenManager:   tm,
		service:        service,
	}
}

// createTestUser creates and stores a test user with its memberships,
// returning the assigned user ID.
func (f *testFixture) createTestUser(t *testing.T, user testUser) int {
	t.Helper()

	passwordHash, err := users.HashPassword(user.Password)
	require.NoError(t, err)

	created, err := f.userRepo.Create(context.Background(), &users.User{
		Username:     user.Username,
		PasswordHash: passwordHash,
		Role:         user.Role,
		Name:         user.Name,
		LastName:     user.LastName,
	})
	require.NoError(t, err)

	for _, companyID := range user.CompanyIDs {
		f.membershipRepo.Add(created.ID, companyID)
	}
	return created.ID
}

// createTestCompany stores display data for a company ID.
func (f *testFixture) createTestCompany(t *testing.T, id int, name, email string) {
	t.Helper()
	f.companyRepo.Upsert(&companies.Company{ID: id, Name: name, Email: email})
}

func requireKind(t *testing.T, err error, kind autherrors.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, autherrors.FromErr(err).Kind)
}

func TestLogin_SingleCompanyIssuesTokens(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestCompany(t, 7, "Transportes Norte", "norte@example.com")
	userID := f.createTestUser(t, testUser{
		Username:   "alice",
		Password:   testUserPassword,
		Role:       testRole,
		Name:       "Alice",
		LastName:   "Smith",
		CompanyIDs: []int{7},
	})

	result, err := f.service.Login(context.Background(), "alice", testUserPassword)

	require.NoError(t, err)
	require.Equal(t, userID, result.UserID)
	require.Equal(t, "alice", result.Username)
	require.NotEmpty(t, result.Token)
	require.NotEmpty(t, result.RefreshToken)
	require.Empty(t, result.SessionToken)
	require.Empty(t, result.Companies, "no company list when the scope is unambiguous")

	claims, err := f.tokenManager.ParseClaims(result.Token)
	require.NoError(t, err)
	require.Equal(t, 7, claims.CompanyID)
	require.Equal(t, token.KindAccess, claims.Kind)
}

func TestLogin_MultipleCompaniesReturnsSessionToken(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestCompany(t, 1, "Empresa Uno", "uno@example.com")
	f.createTestCompany(t, 2, "Empresa Dos", "dos@example.com")
	f.createTestCompany(t, 3, "Empresa Tres", "tres@example.com")
	f.createTestUser(t, testUser{
		Username:   "bob",
		Password:   testUserPassword,
		Role:       testRole,
		CompanyIDs: []int{1, 2, 3},
	})

	result, err := f.service.Login(context.Background(), "bob", testUserPassword)

	require.NoError(t, err)
	require.NotEmpty(t, result.SessionToken)
	require.Empty(t, result.Token, "no access token before company selection")
	require.Empty(t, result.RefreshToken)
	require.Len(t, result.Companies, 3)
	require.Equal(t, "Empresa Uno", result.Companies[0].Name)
}

func TestLogin_NoCompaniesReturnsProfileOnly(t *testing.T) {
	f := setupTestFixture(t)
	userID := f.createTestUser(t, testUser{
		Username: "carol",
		Password: testUserPassword,
		Role:     testRole,
	})

	result, err := f.service.Login(context.Background(), "carol", testUserPassword)

	require.NoError(t, err)
	require.Equal(t, userID, result.UserID)
	require.Empty(t, result.Token)
	require.Empty(t, result.RefreshToken)
	require.Empty(t, result.SessionToken)
	require.Empty(t, result.Companies)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUser{
		Username:   "alice",
		Password:   testUserPassword,
		Role:       testRole,
		CompanyIDs: []int{7},
	})

	_, err := f.service.Login(context.Background(), "alice", "wrong-password")

	requireKind(t, err, autherrors.KindInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Login(context.Background(), "nobody", testUserPassword)

	requireKind(t, err, autherrors.KindUserNotFound)
}

func TestLogin_MissingCompanyRowDegradesToBareID(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestCompany(t, 7, "Transportes Norte", "norte@example.com")
	// Membership to company 8 exists but the company store has no row for it.
	f.createTestUser(t, testUser{
		Username:   "alice",
		Password:   testUserPassword,
		Role:       testRole,
		CompanyIDs: []int{7, 8},
	})

	result, err := f.service.Login(context.Background(), "alice", testUserPassword)

	require.NoError(t, err)
	require.Len(t, result.Companies, 2)
	require.Equal(t, "Transportes Norte", result.Companies[0].Name)
	require.Equal(t, 8, result.Companies[1].ID)
	require.Empty(t, result.Companies[1].Name)
}

func TestGenerateToken_ConsumesSessionTokenOnce(t *testing.T) {
	f := setupTestFixture(t)
	userID := f.createTestUser(t, testUser{
		Username:   "bob",
		Password:   testUserPassword,
		Role:       testRole,
		CompanyIDs: []int{1, 2, 3},
	})

	result, err := f.service.Login(context.Background(), "bob", testUserPassword)
	require.NoError(t, err)
	require.NotEmpty(t, result.SessionToken)

	pair, err := f.service.GenerateToken(context.Background(), userID, 2, result.SessionToken)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Token)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := f.tokenManager.ParseClaims(pair.Token)
	require.NoError(t, err)
	require.Equal(t, 2, claims.CompanyID)

	// The same session token can never mint a second pair.
	_, err = f.service.GenerateToken(context.Background(), userID, 3, result.SessionToken)
	requireKind(t, err, autherrors.KindUnauthorized)
}

func TestGenerateToken_WrongUserDoesNotConsume(t *testing.T) {
	f := setupTestFixture(t)
	userID := f.createTestUser(t, testUser{
		Username:   "bob",
		Password:   testUserPassword,
		Role:       testRole,
		CompanyIDs: []int{1, 2},
	})

	result, err := f.service.Login(context.Background(), "bob", testUserPassword)
	require.NoError(t, err)

	_, err = f.service.GenerateToken(context.Background(), userID+100, 1, result.SessionToken)
	requireKind(t, err, autherrors.KindUnauthorized)

	// The rightful owner can still exchange it.
	_, err = f.service.GenerateToken(context.Background(), userID, 1, result.SessionToken)
	require.NoError(t, err)
}

func TestGenerateToken_ExpiredSessionToken(t *testing.T) {
	f := setupTestFixture(t, auth.WithSessionTokenTTL(time.Minute))
	userID := f.createTestUser(t, testUser{
		Username:   "bob",
		Password:   testUserPassword,
		Role:       testRole,
		CompanyIDs: []int{1, 2},
	})

	result, err := f.service.Login(context.Background(), "bob", testUserPassword)
	require.NoError(t, err)

	f.broker.NowFunc = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err = f.service.GenerateToken(context.Background(), userID, 1, result.SessionToken)
	requireKind(t, err, autherrors.KindUnauthorized)
}

func TestGenerateToken_CompanyOutsideMemberships(t *testing.T) {
	f := setupTestFixture(t)
	userID := f.createTestUser(t, testUser{
		Username:   "bob",
		Password:   testUserPassword,
		Role:       testRole,
		CompanyIDs: []int{1, 2},
	})

	result, err := f.service.Login(context.Background(), "bob", testUserPassword)
	require.NoError(t, err)

	_, err = f.service.GenerateToken(context.Background(), userID, 99, result.SessionToken)
	requireKind(t, err, autherrors.KindUnauthorized)
}

func TestGenerateToken_UnknownSessionToken(t *testing.T) {
	f := setupTestFixture(t)
	userID := f.createTestUser(t, testUser{
		Username:   "bob",
		Password:   testUserPassword,
		Role:       testRole,
		CompanyIDs: []int{1, 2},
	})

	_, err := f.service.GenerateToken(context.Background(), userID, 1, "never-issued")
	requireKind(t, err, autherrors.KindUnauthorized)
}

func TestRefreshToken_Success(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUser{
		Username:   "alice",
		Password:   testUserPassword,
		Role:       testRole,
		CompanyIDs: []int{7},
	})

	result, err := f.service.Login(context.Background(), "alice", testUserPassword)
	require.NoError(t, err)

	pair, err := f.service.RefreshToken(context.Background(), result.RefreshToken, 7)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Token)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := f.tokenManager.ParseClaims(pair.Token)
	require.NoError(t, err)
	require.Equal(t, 7, claims.CompanyID)
}

func TestRefreshToken_RevokedMembershipIsRejected(t *testing.T) {
	f := setupTestFixture(t)
	userID := f.createTestUser(t, testUser{
		Username:   "dave",
		Password:   testUserPassword,
		Role:       testRole,
		CompanyIDs: []int{5},
	})

	result, err := f.service.Login(context.Background(), "dave", testUserPassword)
	require.NoError(t, err)
	require.NotEmpty(t, result.RefreshToken)

	// Membership revoked after the refresh token was granted.
	f.membershipRepo.Remove(userID, 5)

	_, err = f.service.RefreshToken(context.Background(), result.RefreshToken, 5)
	requireKind(t, err, autherrors.KindUnauthorized)
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUser{
		Username:   "alice",
		Password:   testUserPassword,
		Role:       testRole,
		CompanyIDs: []int{7},
	})

	result, err := f.service.Login(context.Background(), "alice", testUserPassword)
	require.NoError(t, err)

	_, err = f.service.RefreshToken(context.Background(), result.Token, 7)
	requireKind(t, err, autherrors.KindInvalidToken)
}

func TestRefreshToken_GarbageToken(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.RefreshToken(context.Background(), "not-a-token", 1)
	requireKind(t, err, autherrors.KindInvalidToken)
}

func TestRefreshToken_DeletedUser(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUser{
		Username:   "alice",
		Password:   testUserPassword,
		Role:       testRole,
		CompanyIDs: []int{7},
	})

	// Mint a refresh token for a user ID the store has never seen.
	ghost := &users.User{ID: 999, Username: "ghost", Role: testRole}
	refresh, err := f.tokenManager.CreateRefreshToken(ghost)
	require.NoError(t, err)

	_, err = f.service.RefreshToken(context.Background(), refresh, 7)
	requireKind(t, err, autherrors.KindUserNotFound)
}

func TestValidateToken(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUser{
		Username:   "alice",
		Password:   testUserPassword,
		Role:       testRole,
		CompanyIDs: []int{7},
	})

	result, err := f.service.Login(context.Background(), "alice", testUserPassword)
	require.NoError(t, err)

	require.True(t, f.service.ValidateToken(result.Token))
	require.True(t, f.service.ValidateToken(result.RefreshToken))
	require.False(t, f.service.ValidateToken("garbage"))
	require.False(t, f.service.ValidateToken(""))
}

func TestRegister_Success(t *testing.T) {
	f := setupTestFixture(t)

	resp, err := f.service.Register(context.Background(), auth.RegisterRequest{
		Username: "newuser",
		Password: testUserPassword,
		Role:     testRole,
	})

	require.NoError(t, err)
	require.NotZero(t, resp.ID)
	require.Equal(t, "newuser", resp.Username)
	require.Equal(t, testRole, resp.Role)

	// Stored hash must verify but never equal the raw password.
	stored, err := f.userRepo.GetByUsername(context.Background(), "newuser")
	require.NoError(t, err)
	require.NotEqual(t, testUserPassword, stored.PasswordHash)
	require.True(t, users.CheckPasswordHash(testUserPassword, stored.PasswordHash))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUser{Username: "alice", Password: testUserPassword, Role: testRole})

	_, err := f.service.Register(context.Background(), auth.RegisterRequest{
		Username: "alice",
		Password: testUserPassword,
		Role:     testRole,
	})

	requireKind(t, err, autherrors.KindUserAlreadyExists)
}

func TestRegister_InvalidRequest(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Register(context.Background(), auth.RegisterRequest{
		Username: "alice",
		Password: "short",
		Role:     testRole,
	})

	requireKind(t, err, autherrors.KindValidation)
}

func TestNewService_MissingDependencies(t *testing.T) {
	ur := fakeuserrepo.NewFakeUserRepo()
	mr := fakemembershiprepo.NewFakeMembershipRepo()
	cr := fakecompanyrepo.NewFakeCompanyRepo()
	br := fakebroker.NewFakeBroker()
	tm := token.New(token.NewHMACSigner(secretStr))

	tests := []struct {
		name      string
		repos     auth.Repos
		broker    session.Broker
		manager   *token.Manager
		expectErr string
	}{
		{
			name:      "missing users repo",
			repos:     auth.Repos{Memberships: mr, Companies: cr},
			broker:    br,
			manager:   tm,
			expectErr: "Users repo is required",
		},
		{
			name:      "missing memberships repo",
			repos:     auth.Repos{Users: ur, Companies: cr},
			broker:    br,
			manager:   tm,
			expectErr: "Memberships repo is required",
		},
		{
			name:      "missing companies repo",
			repos:     auth.Repos{Users: ur, Memberships: mr},
			broker:    br,
			manager:   tm,
			expectErr: "Companies repo is required",
		},
		{
			name:      "missing broker",
			repos:     auth.Repos{Users: ur, Memberships: mr, Companies: cr},
			broker:    nil,
			manager:   tm,
			expectErr: "session broker is required",
		},
		{
			name:      "missing token manager",
			repos:     auth.Repos{Users: ur, Memberships: mr, Companies: cr},
			broker:    br,
			manager:   nil,
			expectErr: "token manager is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.NewService(tt.repos, tt.broker, tt.manager)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.expectErr)
		})
	}
}
