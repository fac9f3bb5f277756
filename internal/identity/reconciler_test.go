package identity_test

import (
	"context"
	"errors"
	"testing"

	"skillbridge/internal/identity"
	"skillbridge/internal/remote"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAccounts struct {
	rows   map[string]*remote.AccountRow
	nextID int64

	createErr error
	getErr    error
	creates   int
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{rows: map[string]*remote.AccountRow{}, nextID: 1}
}

func (f *fakeAccounts) GetByUsername(ctx context.Context, username string) (*remote.AccountRow, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	row, ok := f.rows[username]
	if !ok {
		return nil, remote.ErrNoRows
	}
	return row, nil
}

func (f *fakeAccounts) Create(ctx context.Context, username, role string) (*remote.AccountRow, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.creates++
	row := &remote.AccountRow{ID: f.nextID, Username: username, Role: role}
	f.nextID++
	f.rows[username] = row
	return row, nil
}

type fakeProfiles struct {
	rows   []*remote.ResidentRow
	nextID int64

	insertErr error
	linkErr   error
	inserts   int
	relinks   int
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{nextID: 1}
}

func (f *fakeProfiles) GetByEmail(ctx context.Context, email string) (*remote.ResidentRow, error) {
	var best *remote.ResidentRow
	for _, row := range f.rows {
		if row.Email == email && (best == nil || row.ID > best.ID) {
			best = row
		}
	}
	if best == nil {
		return nil, remote.ErrNoRows
	}
	return best, nil
}

func (f *fakeProfiles) GetByUserID(ctx context.Context, userID int64) (*remote.ResidentRow, error) {
	var best *remote.ResidentRow
	for _, row := range f.rows {
		if row.UserID != nil && *row.UserID == userID && (best == nil || row.ID > best.ID) {
			best = row
		}
	}
	if best == nil {
		return nil, remote.ErrNoRows
	}
	return best, nil
}

func (f *fakeProfiles) Insert(ctx context.Context, row remote.ResidentRow) (*remote.ResidentRow, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.inserts++
	row.ID = f.nextID
	f.nextID++
	stored := row
	f.rows = append(f.rows, &stored)
	return &stored, nil
}

func (f *fakeProfiles) SetUserID(ctx context.Context, id, userID int64) error {
	if f.linkErr != nil {
		return f.linkErr
	}
	for _, row := range f.rows {
		if row.ID == id {
			f.relinks++
			uid := userID
			row.UserID = &uid
			return nil
		}
	}
	return remote.ErrNoRows
}

func TestEnsureLinkedProfile_CreatesBothRows(t *testing.T) {
	accounts := newFakeAccounts()
	profiles := newFakeProfiles()
	r := identity.NewReconciler(accounts, profiles, zap.NewNop())

	result, err := r.EnsureLinkedProfile(context.Background(), identity.Identity{
		Username:  "jdoe",
		Email:     "JDoe@Example.com",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)

	assert.True(t, result.CreatedAccount)
	assert.True(t, result.CreatedProfile)
	assert.False(t, result.Relinked)

	profile, err := profiles.GetByEmail(context.Background(), "jdoe@example.com")
	require.NoError(t, err)
	require.NotNil(t, profile.UserID)
	assert.Equal(t, result.AccountID, *profile.UserID)
	assert.Equal(t, "Unemployed", profile.EmploymentStatus)
	assert.Equal(t, "Pending", profile.VerificationStatus)
}

func TestEnsureLinkedProfile_Idempotent(t *testing.T) {
	accounts := newFakeAccounts()
	profiles := newFakeProfiles()
	r := identity.NewReconciler(accounts, profiles, zap.NewNop())

	id := identity.Identity{Username: "jdoe", Email: "jdoe@example.com"}

	first, err := r.EnsureLinkedProfile(context.Background(), id)
	require.NoError(t, err)

	second, err := r.EnsureLinkedProfile(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, first.AccountID, second.AccountID)
	assert.Equal(t, first.ResidentID, second.ResidentID)
	assert.False(t, second.CreatedAccount)
	assert.False(t, second.CreatedProfile)
	assert.False(t, second.Relinked)
	assert.Equal(t, 1, accounts.creates)
	assert.Equal(t, 1, profiles.inserts)
}

func TestEnsureLinkedProfile_RelinksUnlinkedRow(t *testing.T) {
	accounts := newFakeAccounts()
	profiles := newFakeProfiles()
	profiles.rows = append(profiles.rows, &remote.ResidentRow{
		ID:    7,
		Email: "jdoe@example.com",
	})
	profiles.nextID = 8
	r := identity.NewReconciler(accounts, profiles, zap.NewNop())

	result, err := r.EnsureLinkedProfile(context.Background(), identity.Identity{
		Username: "jdoe",
		Email:    "jdoe@example.com",
	})
	require.NoError(t, err)

	assert.True(t, result.Relinked)
	assert.False(t, result.CreatedProfile)
	assert.Equal(t, int64(7), result.ResidentID)
	require.NotNil(t, profiles.rows[0].UserID)
	assert.Equal(t, result.AccountID, *profiles.rows[0].UserID)
}

func TestEnsureLinkedProfile_RelinksStaleLinkage(t *testing.T) {
	accounts := newFakeAccounts()
	stale := int64(99)
	profiles := newFakeProfiles()
	profiles.rows = append(profiles.rows, &remote.ResidentRow{
		ID:     3,
		UserID: &stale,
		Email:  "jdoe@example.com",
	})
	profiles.nextID = 4
	r := identity.NewReconciler(accounts, profiles, zap.NewNop())

	result, err := r.EnsureLinkedProfile(context.Background(), identity.Identity{
		Username: "jdoe",
		Email:    "jdoe@example.com",
	})
	require.NoError(t, err)

	assert.True(t, result.Relinked)
	assert.Equal(t, result.AccountID, *profiles.rows[0].UserID)
}

func TestEnsureLinkedProfile_FallsBackToUserID(t *testing.T) {
	accounts := newFakeAccounts()
	acct, err := accounts.Create(context.Background(), "jdoe", "Resident")
	require.NoError(t, err)

	profiles := newFakeProfiles()
	profiles.rows = append(profiles.rows, &remote.ResidentRow{
		ID:     5,
		UserID: &acct.ID,
		Email:  "old-address@example.com",
	})
	profiles.nextID = 6
	r := identity.NewReconciler(accounts, profiles, zap.NewNop())

	// Email lookup misses (profile carries an old address); linkage wins.
	result, err := r.EnsureLinkedProfile(context.Background(), identity.Identity{
		Username: "jdoe",
		Email:    "new-address@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), result.ResidentID)
	assert.False(t, result.CreatedProfile)
	assert.Equal(t, 0, profiles.inserts)
}

func TestEnsureLinkedProfile_EmptyEmailUsesLinkageOnly(t *testing.T) {
	accounts := newFakeAccounts()
	profiles := newFakeProfiles()
	r := identity.NewReconciler(accounts, profiles, zap.NewNop())

	result, err := r.EnsureLinkedProfile(context.Background(), identity.Identity{Username: "jdoe"})
	require.NoError(t, err)

	assert.True(t, result.CreatedProfile)
	assert.Empty(t, profiles.rows[0].Email)
}

func TestEnsureLinkedProfile_PropagatesStoreErrors(t *testing.T) {
	storeDown := errors.New("store unavailable")

	accounts := newFakeAccounts()
	accounts.getErr = storeDown
	r := identity.NewReconciler(accounts, newFakeProfiles(), zap.NewNop())

	_, err := r.EnsureLinkedProfile(context.Background(), identity.Identity{Username: "jdoe"})
	assert.ErrorIs(t, err, storeDown)
}

func TestEnsureBestEffort_SwallowsErrors(t *testing.T) {
	accounts := newFakeAccounts()
	accounts.getErr = errors.New("store unavailable")
	r := identity.NewReconciler(accounts, newFakeProfiles(), zap.NewNop())

	// Must not panic or propagate; the triggering workflow continues.
	result := r.EnsureBestEffort(context.Background(), identity.Identity{Username: "jdoe"})
	assert.Zero(t, result.AccountID)
}
