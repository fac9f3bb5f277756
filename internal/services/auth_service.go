package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skillbridge/internal/identity"
	"skillbridge/internal/models"
	"skillbridge/internal/remote"
	"skillbridge/internal/storage"
	"skillbridge/internal/transport/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Claims is the access-token payload. Role gates the Official/Admin routes;
// username and email feed the identity paths downstream.
type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	accounts          storage.AccountRepository
	residents         storage.ResidentRepository
	remoteAccounts    identity.AccountDirectory
	remoteProfiles    identity.ProfileDirectory
	remoteAuth        RemoteAuthenticator
	reconciler        *identity.Reconciler
	tokens            TokenStore
	jwtSecret         string
	jwtExpiration     time.Duration
	refreshExpiration time.Duration
	logger            *zap.Logger
}

// NewAuthService wires the login/signup bridge.
func NewAuthService(
	accounts storage.AccountRepository,
	residents storage.ResidentRepository,
	remoteAccounts identity.AccountDirectory,
	remoteProfiles identity.ProfileDirectory,
	remoteAuth RemoteAuthenticator,
	reconciler *identity.Reconciler,
	tokens TokenStore,
	jwtSecret string,
	jwtExpiration, refreshExpiration time.Duration,
	logger *zap.Logger,
) AuthService {
	return &authService{
		accounts:          accounts,
		residents:         residents,
		remoteAccounts:    remoteAccounts,
		remoteProfiles:    remoteProfiles,
		remoteAuth:        remoteAuth,
		reconciler:        reconciler,
		tokens:            tokens,
		jwtSecret:         jwtSecret,
		jwtExpiration:     jwtExpiration,
		refreshExpiration: refreshExpiration,
		logger:            logger,
	}
}

// Signup creates a local account plus resident profile, refusing emails
// already present in either store, then reconciles the remote rows.
func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*models.Account, error) {
	email := NormalizeEmail(req.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	if source := s.emailExists(ctx, email); source != "" {
		return nil, fmt.Errorf("%w: an account with this email already exists (%s)", ErrConflict, source)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	account, err := s.accounts.Create(ctx, &dto.CreateAccountRequest{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         string(models.RoleResident),
	})
	if err != nil {
		return nil, MapRepoError(err, "creating account")
	}

	if _, err := s.residents.Create(ctx, &dto.CreateResidentRequest{
		AccountID: &account.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     email,
	}); err != nil {
		// The account row stays; reconciliation and the dedup batch restore
		// the profile side later.
		s.logger.Warn("local profile create failed during signup",
			zap.String("email", email), zap.Error(err))
	}

	// Remote credential registration and row reconciliation are both
	// best-effort: the signup already succeeded locally.
	if err := s.remoteAuth.SignUp(ctx, email, req.Password); err != nil {
		s.logger.Warn("remote credential signup failed", zap.String("email", email), zap.Error(err))
	}
	s.reconciler.EnsureBestEffort(ctx, identity.Identity{
		Username:  req.Username,
		Email:     email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})

	return account, nil
}

// emailExists reports which store already holds the email: "local",
// "remote", "both" or "" for neither. A remote lookup failure counts as
// absent; the signup must not be blocked by a flaky remote call.
func (s *authService) emailExists(ctx context.Context, email string) string {
	local := false
	if _, err := s.residents.GetByEmail(ctx, email); err == nil {
		local = true
	} else if !errors.Is(err, storage.ErrNotFound) {
		s.logger.Warn("local email check failed", zap.String("email", email), zap.Error(err))
	}

	remotePresent := false
	if _, err := s.remoteProfiles.GetByEmail(ctx, email); err == nil {
		remotePresent = true
	} else if !errors.Is(err, remote.ErrNoRows) {
		s.logger.Warn("remote email check failed", zap.String("email", email), zap.Error(err))
	}

	switch {
	case local && remotePresent:
		return "both"
	case local:
		return "local"
	case remotePresent:
		return "remote"
	}
	return ""
}

// Login authenticates by username. The local account is tried first; when
// it is missing the hosted auth service is consulted (username -> remote
// account -> profile email -> password grant) and a local account is
// created on success so the next login is purely local.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*models.Account, string, string, error) {
	account, err := s.accounts.GetByUsername(ctx, req.Username)
	switch {
	case err == nil:
		if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
			return nil, "", "", ErrInvalidCredentials
		}
	case errors.Is(err, storage.ErrNotFound):
		account, err = s.loginViaRemote(ctx, req.Username, req.Password)
		if err != nil {
			return nil, "", "", err
		}
	default:
		return nil, "", "", MapRepoError(err, "looking up account")
	}

	email := ""
	if resident, err := s.residents.GetByAccountID(ctx, account.ID); err == nil {
		email = resident.Email
	}

	s.reconciler.EnsureBestEffort(ctx, identity.Identity{Username: account.Username, Email: email})

	accessToken, err := s.signToken(account, email)
	if err != nil {
		return nil, "", "", err
	}
	refreshToken := uuid.NewString()
	if err := s.tokens.Save(ctx, refreshToken, account.ID, s.refreshExpiration); err != nil {
		return nil, "", "", err
	}
	return account, accessToken, refreshToken, nil
}

// loginViaRemote is the bridge path: resolve username to email through the
// remote identity tables, authenticate the password grant remotely, then
// materialize a matching local account.
func (s *authService) loginViaRemote(ctx context.Context, username, password string) (*models.Account, error) {
	remoteAccount, err := s.remoteAccounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, remote.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("remote account lookup: %w", err)
	}

	profile, err := s.remoteProfiles.GetByUserID(ctx, remoteAccount.ID)
	if err != nil {
		if errors.Is(err, remote.ErrNoRows) {
			s.logger.Warn("no remote profile for account, cannot resolve email",
				zap.String("username", username))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("remote profile lookup: %w", err)
	}

	if _, err := s.remoteAuth.SignInWithPassword(ctx, profile.Email, password); err != nil {
		s.logger.Info("remote auth rejected login", zap.String("username", username), zap.Error(err))
		return nil, ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	role := remoteAccount.Role
	if role == "" {
		role = string(models.RoleResident)
	}
	account, err := s.accounts.Create(ctx, &dto.CreateAccountRequest{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		// A concurrent login may have created it; fall back to the lookup.
		if errors.Is(err, storage.ErrDuplicateUsername) {
			return s.accounts.GetByUsername(ctx, username)
		}
		return nil, MapRepoError(err, "materializing local account")
	}
	s.logger.Info("materialized local account from remote identity",
		zap.String("username", username), zap.Int64("account_id", account.ID))
	return account, nil
}

// Refresh rotates a refresh token and issues a new access token.
func (s *authService) Refresh(ctx context.Context, req *dto.RefreshRequest) (string, string, error) {
	accountID, err := s.tokens.Lookup(ctx, req.RefreshToken)
	if err != nil {
		return "", "", err
	}
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return "", "", MapRepoError(err, "loading account for refresh")
	}

	email := ""
	if resident, err := s.residents.GetByAccountID(ctx, account.ID); err == nil {
		email = resident.Email
	}

	accessToken, err := s.signToken(account, email)
	if err != nil {
		return "", "", err
	}
	newRefresh := uuid.NewString()
	if err := s.tokens.Save(ctx, newRefresh, account.ID, s.refreshExpiration); err != nil {
		return "", "", err
	}
	if err := s.tokens.Revoke(ctx, req.RefreshToken); err != nil {
		s.logger.Warn("revoking rotated refresh token failed", zap.Error(err))
	}
	return accessToken, newRefresh, nil
}

// Logout revokes a refresh token.
func (s *authService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	return s.tokens.Revoke(ctx, req.RefreshToken)
}

func (s *authService) signToken(account *models.Account, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: account.Username,
		Email:    email,
		Role:     string(account.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", account.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return signed, nil
}
