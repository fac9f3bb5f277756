package services_test

import (
	"context"
	"testing"
	"time"

	"skillbridge/internal/identity"
	"skillbridge/internal/models"
	"skillbridge/internal/remote"
	"skillbridge/internal/services"
	"skillbridge/internal/transport/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret"

type authFixture struct {
	accounts   *fakeAccountRepo
	residents  *fakeResidentRepo
	remoteDir  *fakeRemoteDirectory
	remoteAuth *fakeRemoteAuth
	tokens     *fakeTokenStore
	service    services.AuthService
}

func newAuthFixture() *authFixture {
	logger := zap.NewNop()
	f := &authFixture{
		accounts:   newFakeAccountRepo(),
		residents:  newFakeResidentRepo(),
		remoteDir:  newFakeRemoteDirectory(),
		remoteAuth: newFakeRemoteAuth(),
		tokens:     newFakeTokenStore(),
	}
	profiles := fakeRemoteProfiles{dir: f.remoteDir}
	reconciler := identity.NewReconciler(f.remoteDir, profiles, logger)
	f.service = services.NewAuthService(
		f.accounts, f.residents,
		f.remoteDir, profiles, f.remoteAuth,
		reconciler, f.tokens,
		testJWTSecret, time.Hour, 24*time.Hour,
		logger,
	)
	return f
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	account, err := f.service.Signup(ctx, &dto.SignupRequest{
		Username:  "maria",
		Email:     "Maria@Example.com",
		Password:  "hunter2hunter2",
		FirstName: "Maria",
		LastName:  "Santos",
	})
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, "maria", account.Username)
	assert.Equal(t, models.RoleResident, account.Role)

	stored, err := f.accounts.GetByUsername(ctx, "maria")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter2hunter2")))

	resident, err := f.residents.GetByAccountID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", resident.Email)

	assert.Contains(t, f.remoteAuth.signups, "maria@example.com")

	// Reconciliation created the remote pair linked by user_id.
	remoteAcct, err := f.remoteDir.GetByUsername(ctx, "maria")
	require.NoError(t, err)
	profile, err := fakeRemoteProfiles{dir: f.remoteDir}.GetByEmail(ctx, "maria@example.com")
	require.NoError(t, err)
	require.NotNil(t, profile.UserID)
	assert.Equal(t, remoteAcct.ID, *profile.UserID)
}

func TestAuthService_SignupRejectsMissingEmail(t *testing.T) {
	f := newAuthFixture()

	_, err := f.service.Signup(context.Background(), &dto.SignupRequest{
		Username: "maria",
		Email:    "   ",
		Password: "hunter2hunter2",
	})
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestAuthService_SignupRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("local", func(t *testing.T) {
		f := newAuthFixture()
		_, err := f.residents.Create(ctx, &dto.CreateResidentRequest{Email: "taken@example.com"})
		require.NoError(t, err)

		_, err = f.service.Signup(ctx, &dto.SignupRequest{
			Username: "other", Email: "taken@example.com", Password: "hunter2hunter2",
		})
		assert.ErrorIs(t, err, services.ErrConflict)
	})

	t.Run("remote", func(t *testing.T) {
		f := newAuthFixture()
		_, err := fakeRemoteProfiles{dir: f.remoteDir}.Insert(ctx, remote.ResidentRow{Email: "taken@example.com"})
		require.NoError(t, err)

		_, err = f.service.Signup(ctx, &dto.SignupRequest{
			Username: "other", Email: "Taken@example.com", Password: "hunter2hunter2",
		})
		assert.ErrorIs(t, err, services.ErrConflict)
	})
}

func TestAuthService_LoginLocal(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.DefaultCost)
	require.NoError(t, err)
	seeded, err := f.accounts.Create(ctx, &dto.CreateAccountRequest{
		Username: "jose", PasswordHash: string(hash), Role: string(models.RoleOfficial),
	})
	require.NoError(t, err)
	_, err = f.residents.Create(ctx, &dto.CreateResidentRequest{
		AccountID: &seeded.ID, Email: "jose@example.com",
	})
	require.NoError(t, err)

	account, access, refresh, err := f.service.Login(ctx, &dto.LoginRequest{
		Username: "jose", Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, account.ID)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, seeded.ID, f.tokens.tokens[refresh])

	claims := &services.Claims{}
	_, err = jwt.ParseWithClaims(access, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "jose", claims.Username)
	assert.Equal(t, "jose@example.com", claims.Email)
	assert.Equal(t, string(models.RoleOfficial), claims.Role)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.DefaultCost)
	require.NoError(t, err)
	_, err = f.accounts.Create(ctx, &dto.CreateAccountRequest{
		Username: "jose", PasswordHash: string(hash), Role: string(models.RoleResident),
	})
	require.NoError(t, err)

	_, _, _, err = f.service.Login(ctx, &dto.LoginRequest{Username: "jose", Password: "wrong"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_LoginUnknownUsername(t *testing.T) {
	f := newAuthFixture()

	_, _, _, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Username: "nobody", Password: "whatever",
	})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_LoginViaRemoteMaterializesAccount(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	// Identity exists only on the hosted side.
	remoteAcct, err := f.remoteDir.Create(ctx, "ana", string(models.RoleOfficial))
	require.NoError(t, err)
	_, err = fakeRemoteProfiles{dir: f.remoteDir}.Insert(ctx, remote.ResidentRow{
		UserID: &remoteAcct.ID, Email: "ana@example.com",
	})
	require.NoError(t, err)
	f.remoteAuth.passwords["ana@example.com"] = "anas password"

	account, _, refresh, err := f.service.Login(ctx, &dto.LoginRequest{
		Username: "ana", Password: "anas password",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleOfficial, account.Role)
	assert.NotEmpty(t, refresh)

	// Next login is purely local against the materialized hash.
	local, err := f.accounts.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(local.PasswordHash), []byte("anas password")))

	_, _, _, err = f.service.Login(ctx, &dto.LoginRequest{Username: "ana", Password: "wrong"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_RefreshRotatesToken(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	hash, err := bcrypt.GenerateFromPassword([]byte("pw pw pw pw"), bcrypt.DefaultCost)
	require.NoError(t, err)
	_, err = f.accounts.Create(ctx, &dto.CreateAccountRequest{
		Username: "jose", PasswordHash: string(hash), Role: string(models.RoleResident),
	})
	require.NoError(t, err)

	_, _, refresh, err := f.service.Login(ctx, &dto.LoginRequest{Username: "jose", Password: "pw pw pw pw"})
	require.NoError(t, err)

	access, rotated, err := f.service.Refresh(ctx, &dto.RefreshRequest{RefreshToken: refresh})
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEqual(t, refresh, rotated)
	assert.NotContains(t, f.tokens.tokens, refresh)
	assert.Contains(t, f.tokens.tokens, rotated)

	_, _, err = f.service.Refresh(ctx, &dto.RefreshRequest{RefreshToken: refresh})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_LogoutRevokes(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	f.tokens.tokens["tok"] = 7

	require.NoError(t, f.service.Logout(ctx, &dto.LogoutRequest{RefreshToken: "tok"}))
	assert.NotContains(t, f.tokens.tokens, "tok")
}
