package services_test

import (
	"context"
	"fmt"
	"time"

	"skillbridge/internal/audit"
	"skillbridge/internal/models"
	"skillbridge/internal/remote"
	"skillbridge/internal/services"
	"skillbridge/internal/storage"
	"skillbridge/internal/transport/dto"
)

// Hand-rolled in-memory fakes for the repository and remote-table seams.

type fakeAccountRepo struct {
	accounts map[string]*models.Account
	nextID   int64
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[string]*models.Account{}, nextID: 1}
}

func (f *fakeAccountRepo) GetAll(ctx context.Context) ([]models.Account, error) {
	out := []models.Account{}
	for _, a := range f.accounts {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	for _, a := range f.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeAccountRepo) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	a, ok := f.accounts[username]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return a, nil
}

func (f *fakeAccountRepo) Create(ctx context.Context, req *dto.CreateAccountRequest) (*models.Account, error) {
	if _, ok := f.accounts[req.Username]; ok {
		return nil, storage.ErrDuplicateUsername
	}
	a := &models.Account{
		ID:           f.nextID,
		Username:     req.Username,
		PasswordHash: req.PasswordHash,
		Role:         models.Role(req.Role),
		CreatedAt:    time.Now(),
	}
	f.nextID++
	f.accounts[req.Username] = a
	return a, nil
}

func (f *fakeAccountRepo) UpdateRole(ctx context.Context, id int64, role models.Role) (*models.Account, error) {
	a, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Role = role
	return a, nil
}

func (f *fakeAccountRepo) Delete(ctx context.Context, id int64) error {
	for username, a := range f.accounts {
		if a.ID == id {
			delete(f.accounts, username)
			return nil
		}
	}
	return storage.ErrNotFound
}

type fakeResidentRepo struct {
	residents []*models.Resident
	nextID    int64
}

func newFakeResidentRepo() *fakeResidentRepo {
	return &fakeResidentRepo{nextID: 1}
}

func (f *fakeResidentRepo) GetAll(ctx context.Context) ([]models.Resident, error) {
	out := []models.Resident{}
	for _, r := range f.residents {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeResidentRepo) GetByID(ctx context.Context, id int64) (*models.Resident, error) {
	for _, r := range f.residents {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeResidentRepo) GetByEmail(ctx context.Context, email string) (*models.Resident, error) {
	var best *models.Resident
	for _, r := range f.residents {
		if r.Email == email && (best == nil || r.ID > best.ID) {
			best = r
		}
	}
	if best == nil {
		return nil, storage.ErrNotFound
	}
	return best, nil
}

func (f *fakeResidentRepo) GetByAccountID(ctx context.Context, accountID int64) (*models.Resident, error) {
	var best *models.Resident
	for _, r := range f.residents {
		if r.AccountID != nil && *r.AccountID == accountID && (best == nil || r.ID > best.ID) {
			best = r
		}
	}
	if best == nil {
		return nil, storage.ErrNotFound
	}
	return best, nil
}

func (f *fakeResidentRepo) Create(ctx context.Context, req *dto.CreateResidentRequest) (*models.Resident, error) {
	r := &models.Resident{
		ID:                 f.nextID,
		AccountID:          req.AccountID,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              req.Email,
		EmploymentStatus:   models.EmploymentUnemployed,
		VerificationStatus: models.VerificationPending,
		DateRegistered:     time.Now(),
	}
	f.nextID++
	f.residents = append(f.residents, r)
	return r, nil
}

func (f *fakeResidentRepo) Update(ctx context.Context, req *dto.UpdateResidentRequest) (*models.Resident, error) {
	r, err := f.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if req.FirstName != nil {
		r.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		r.LastName = *req.LastName
	}
	if req.Address != nil {
		r.Address = *req.Address
	}
	if req.ProofResidencyURL != nil {
		r.ProofResidencyURL = *req.ProofResidencyURL
	}
	return r, nil
}

func (f *fakeResidentRepo) SetVerification(ctx context.Context, id int64, status models.VerificationStatus) (*models.Resident, error) {
	r, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.VerificationStatus = status
	return r, nil
}

func (f *fakeResidentRepo) SetAccountLink(ctx context.Context, id int64, accountID int64) error {
	r, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	r.AccountID = &accountID
	return nil
}

func (f *fakeResidentRepo) Delete(ctx context.Context, id int64) error {
	for i, r := range f.residents {
		if r.ID == id {
			f.residents = append(f.residents[:i], f.residents[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

// fakeRemoteDirectory covers the remote account and resident table seams.
type fakeRemoteDirectory struct {
	accounts      map[string]*remote.AccountRow
	profiles      []*remote.ResidentRow
	nextAccountID int64
	nextProfileID int64
}

func newFakeRemoteDirectory() *fakeRemoteDirectory {
	return &fakeRemoteDirectory{
		accounts:      map[string]*remote.AccountRow{},
		nextAccountID: 100,
		nextProfileID: 100,
	}
}

func (f *fakeRemoteDirectory) GetByUsername(ctx context.Context, username string) (*remote.AccountRow, error) {
	row, ok := f.accounts[username]
	if !ok {
		return nil, remote.ErrNoRows
	}
	return row, nil
}

func (f *fakeRemoteDirectory) Create(ctx context.Context, username, role string) (*remote.AccountRow, error) {
	row := &remote.AccountRow{ID: f.nextAccountID, Username: username, Role: role}
	f.nextAccountID++
	f.accounts[username] = row
	return row, nil
}

type fakeRemoteProfiles struct {
	dir *fakeRemoteDirectory
}

func (f fakeRemoteProfiles) GetByEmail(ctx context.Context, email string) (*remote.ResidentRow, error) {
	var best *remote.ResidentRow
	for _, row := range f.dir.profiles {
		if row.Email == email && (best == nil || row.ID > best.ID) {
			best = row
		}
	}
	if best == nil {
		return nil, remote.ErrNoRows
	}
	return best, nil
}

func (f fakeRemoteProfiles) GetByID(ctx context.Context, id int64) (*remote.ResidentRow, error) {
	for _, row := range f.dir.profiles {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, remote.ErrNoRows
}

func (f fakeRemoteProfiles) GetByUserID(ctx context.Context, userID int64) (*remote.ResidentRow, error) {
	var best *remote.ResidentRow
	for _, row := range f.dir.profiles {
		if row.UserID != nil && *row.UserID == userID && (best == nil || row.ID > best.ID) {
			best = row
		}
	}
	if best == nil {
		return nil, remote.ErrNoRows
	}
	return best, nil
}

func (f fakeRemoteProfiles) Insert(ctx context.Context, row remote.ResidentRow) (*remote.ResidentRow, error) {
	row.ID = f.dir.nextProfileID
	f.dir.nextProfileID++
	stored := row
	f.dir.profiles = append(f.dir.profiles, &stored)
	return &stored, nil
}

func (f fakeRemoteProfiles) SetUserID(ctx context.Context, id, userID int64) error {
	for _, row := range f.dir.profiles {
		if row.ID == id {
			uid := userID
			row.UserID = &uid
			return nil
		}
	}
	return remote.ErrNoRows
}

type fakeRemoteAuth struct {
	passwords map[string]string // email -> password
	signups   []string
}

func newFakeRemoteAuth() *fakeRemoteAuth {
	return &fakeRemoteAuth{passwords: map[string]string{}}
}

func (f *fakeRemoteAuth) SignInWithPassword(ctx context.Context, email, password string) (*remote.Session, error) {
	if f.passwords[email] != password {
		return nil, fmt.Errorf("remote auth: status 400")
	}
	return &remote.Session{AccessToken: "remote-token"}, nil
}

func (f *fakeRemoteAuth) SignUp(ctx context.Context, email, password string) error {
	f.passwords[email] = password
	f.signups = append(f.signups, email)
	return nil
}

type fakeTokenStore struct {
	tokens map[string]int64
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]int64{}}
}

func (f *fakeTokenStore) Save(ctx context.Context, token string, accountID int64, ttl time.Duration) error {
	f.tokens[token] = accountID
	return nil
}

func (f *fakeTokenStore) Lookup(ctx context.Context, token string) (int64, error) {
	id, ok := f.tokens[token]
	if !ok {
		return 0, services.ErrInvalidCredentials
	}
	return id, nil
}

func (f *fakeTokenStore) Revoke(ctx context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

type auditEntry struct {
	Action      string
	Entity      string
	EntityID    int64
	PerformedBy string
}

type fakeAuditor struct {
	records       []auditEntry
	notifications []audit.Notification
}

func (f *fakeAuditor) Record(ctx context.Context, action, entity string, entityID int64, performedBy string) {
	f.records = append(f.records, auditEntry{action, entity, entityID, performedBy})
}

func (f *fakeAuditor) Notify(ctx context.Context, n audit.Notification) {
	f.notifications = append(f.notifications, n)
}

type sentMail struct {
	To      string
	Subject string
}

type fakeSender struct {
	sent []sentMail
}

func (f *fakeSender) Send(ctx context.Context, to, subject, body string) error {
	f.sent = append(f.sent, sentMail{To: to, Subject: subject})
	return nil
}
