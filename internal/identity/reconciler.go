// Package identity keeps the two identity stores — the local relational
// tables and the hosted table family — describing the same set of people.
// The reconciler runs inline on identity-producing events; the dedup batch
// (dedup.go) cleans up the drift the reconciler could not prevent.
package identity

import (
	"context"
	"errors"
	"strings"

	"skillbridge/internal/models"
	"skillbridge/internal/remote"

	"go.uber.org/zap"
)

// AccountDirectory is the slice of the remote account table the reconciler
// needs. Satisfied by *remote.Accounts.
type AccountDirectory interface {
	GetByUsername(ctx context.Context, username string) (*remote.AccountRow, error)
	Create(ctx context.Context, username, role string) (*remote.AccountRow, error)
}

// ProfileDirectory is the slice of the remote resident table the reconciler
// needs. Satisfied by *remote.Residents.
type ProfileDirectory interface {
	GetByEmail(ctx context.Context, email string) (*remote.ResidentRow, error)
	GetByUserID(ctx context.Context, userID int64) (*remote.ResidentRow, error)
	Insert(ctx context.Context, row remote.ResidentRow) (*remote.ResidentRow, error)
	SetUserID(ctx context.Context, id, userID int64) error
}

// Identity is the input to a reconciliation pass. Username is always
// present; email may be empty on some signup paths.
type Identity struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
}

// Result reports what a reconciliation pass did.
type Result struct {
	AccountID      int64
	ResidentID     int64
	CreatedAccount bool
	CreatedProfile bool
	Relinked       bool
}

// Reconciler guarantees that one remote account row and at most one remote
// resident profile exist per identity, linked by user_id.
type Reconciler struct {
	accounts AccountDirectory
	profiles ProfileDirectory
	logger   *zap.Logger
}

// NewReconciler builds a Reconciler.
func NewReconciler(accounts AccountDirectory, profiles ProfileDirectory, logger *zap.Logger) *Reconciler {
	return &Reconciler{accounts: accounts, profiles: profiles, logger: logger}
}

// EnsureLinkedProfile finds or creates the remote rows for one identity.
// Email is the primary lookup key for the profile; the user_id linkage is
// only a fallback because legacy rows were written with it null. The call is
// idempotent: a second pass for the same identity finds the rows made by the
// first and changes nothing.
//
// Errors are returned for the caller to log; the triggering user action
// (signup, login, application) must proceed regardless. Consistency not
// achieved here is restored later by the dedup batch.
func (r *Reconciler) EnsureLinkedProfile(ctx context.Context, id Identity) (Result, error) {
	var result Result
	email := strings.ToLower(strings.TrimSpace(id.Email))

	acct, err := r.accounts.GetByUsername(ctx, id.Username)
	if errors.Is(err, remote.ErrNoRows) {
		acct, err = r.accounts.Create(ctx, id.Username, string(models.RoleResident))
		if err == nil {
			result.CreatedAccount = true
			r.logger.Info("reconciler created remote account",
				zap.String("username", id.Username), zap.Int64("account_id", acct.ID))
		}
	}
	if err != nil {
		return result, err
	}
	result.AccountID = acct.ID

	// Email first: it proved the more reliable natural key, since the
	// user_id linkage was historically left null on some rows.
	if email != "" {
		profile, err := r.profiles.GetByEmail(ctx, email)
		if err == nil {
			result.ResidentID = profile.ID
			if profile.UserID == nil || *profile.UserID != acct.ID {
				if err := r.profiles.SetUserID(ctx, profile.ID, acct.ID); err != nil {
					return result, err
				}
				result.Relinked = true
				r.logger.Info("reconciler relinked profile",
					zap.Int64("resident_id", profile.ID), zap.Int64("account_id", acct.ID))
			}
			return result, nil
		}
		if !errors.Is(err, remote.ErrNoRows) {
			return result, err
		}
	}

	// Nothing by email; fall back to the linkage before inserting.
	profile, err := r.profiles.GetByUserID(ctx, acct.ID)
	if err == nil {
		result.ResidentID = profile.ID
		return result, nil
	}
	if !errors.Is(err, remote.ErrNoRows) {
		return result, err
	}

	created, err := r.profiles.Insert(ctx, remote.ResidentRow{
		UserID:             &acct.ID,
		FirstName:          id.FirstName,
		LastName:           id.LastName,
		Email:              email,
		Address:            "",
		ContactNumber:      "",
		EmploymentStatus:   string(models.EmploymentUnemployed),
		VerificationStatus: string(models.VerificationPending),
	})
	if err != nil {
		return result, err
	}
	result.ResidentID = created.ID
	result.CreatedProfile = true
	r.logger.Info("reconciler created profile",
		zap.String("email", email), zap.Int64("resident_id", created.ID))
	return result, nil
}

// EnsureBestEffort runs EnsureLinkedProfile and converts any failure into a
// log line. Used by callers whose own workflow must never abort on
// reconciliation trouble.
func (r *Reconciler) EnsureBestEffort(ctx context.Context, id Identity) Result {
	result, err := r.EnsureLinkedProfile(ctx, id)
	if err != nil {
		r.logger.Warn("identity reconciliation failed, continuing",
			zap.String("username", id.Username),
			zap.String("email", id.Email),
			zap.Error(err),
		)
	}
	return result
}
