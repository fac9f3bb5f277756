package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skillbridge/internal/models"
	"skillbridge/internal/storage"
	"skillbridge/internal/transport/dto"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const residentColumns = `id, account_id, first_name, middle_name, last_name, birthdate, gender,
	address, contact_number, email, employment_status, verification_status,
	proof_residency_url, date_registered`

// ResidentRepo implements storage.ResidentRepository using PostgreSQL.
type ResidentRepo struct {
	db     Querier
	logger *zap.Logger
}

// NewResidentRepo creates a new ResidentRepo.
func NewResidentRepo(db *pgxpool.Pool, logger *zap.Logger) *ResidentRepo {
	return &ResidentRepo{db: db, logger: logger}
}

// WithTx creates a new ResidentRepo bound to the transaction.
func (r *ResidentRepo) WithTx(tx pgx.Tx) storage.ResidentRepository {
	return &ResidentRepo{db: tx, logger: r.logger}
}

var _ storage.ResidentRepository = (*ResidentRepo)(nil)

func scanResident(row pgx.Row) (*models.Resident, error) {
	var res models.Resident
	var middle, gender, proofURL *string
	err := row.Scan(
		&res.ID,
		&res.AccountID,
		&res.FirstName,
		&middle,
		&res.LastName,
		&res.Birthdate,
		&gender,
		&res.Address,
		&res.ContactNumber,
		&res.Email,
		&res.EmploymentStatus,
		&res.VerificationStatus,
		&proofURL,
		&res.DateRegistered,
	)
	if err != nil {
		return nil, err
	}
	if middle != nil {
		res.MiddleName = *middle
	}
	if gender != nil {
		res.Gender = *gender
	}
	if proofURL != nil {
		res.ProofResidencyURL = *proofURL
	}
	return &res, nil
}

// GetAll retrieves every resident profile.
func (r *ResidentRepo) GetAll(ctx context.Context) ([]models.Resident, error) {
	query := fmt.Sprintf(`SELECT %s FROM residents ORDER BY id`, residentColumns)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("querying residents", zap.Error(err))
		return nil, fmt.Errorf("failed to query residents: %w", err)
	}
	defer rows.Close()

	residents := []models.Resident{}
	for rows.Next() {
		res, err := scanResident(rows)
		if err != nil {
			r.logger.Error("scanning resident", zap.Error(err))
			return nil, fmt.Errorf("failed to scan resident: %w", err)
		}
		residents = append(residents, *res)
	}
	return residents, rows.Err()
}

// GetByID retrieves a resident by id.
func (r *ResidentRepo) GetByID(ctx context.Context, id int64) (*models.Resident, error) {
	query := fmt.Sprintf(`SELECT %s FROM residents WHERE id = $1`, residentColumns)
	res, err := scanResident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		r.logger.Error("getting resident by id", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get resident %d: %w", id, err)
	}
	return res, nil
}

// GetByEmail retrieves a resident by its natural key. Historic data can hold
// more than one row per email; the most recent (highest id) row wins.
func (r *ResidentRepo) GetByEmail(ctx context.Context, email string) (*models.Resident, error) {
	query := fmt.Sprintf(`SELECT %s FROM residents WHERE email = $1 ORDER BY id DESC LIMIT 1`, residentColumns)
	res, err := scanResident(r.db.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(email))))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		r.logger.Error("getting resident by email", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("failed to get resident by email: %w", err)
	}
	return res, nil
}

// GetByAccountID retrieves the resident linked to a local account.
func (r *ResidentRepo) GetByAccountID(ctx context.Context, accountID int64) (*models.Resident, error) {
	query := fmt.Sprintf(`SELECT %s FROM residents WHERE account_id = $1 ORDER BY id DESC LIMIT 1`, residentColumns)
	res, err := scanResident(r.db.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		r.logger.Error("getting resident by account", zap.Int64("account_id", accountID), zap.Error(err))
		return nil, fmt.Errorf("failed to get resident by account %d: %w", accountID, err)
	}
	return res, nil
}

// Create inserts a new resident profile with safe defaults.
func (r *ResidentRepo) Create(ctx context.Context, req *dto.CreateResidentRequest) (*models.Resident, error) {
	employment := req.EmploymentStatus
	if employment == "" {
		employment = string(models.EmploymentUnemployed)
	}
	query := fmt.Sprintf(`
		INSERT INTO residents (account_id, first_name, middle_name, last_name, birthdate, gender,
			address, contact_number, email, employment_status, verification_status, date_registered)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'Pending', NOW())
		RETURNING %s
	`, residentColumns)
	res, err := scanResident(r.db.QueryRow(ctx, query,
		req.AccountID,
		req.FirstName,
		req.MiddleName,
		req.LastName,
		req.Birthdate,
		nullable(req.Gender),
		req.Address,
		req.ContactNumber,
		strings.ToLower(strings.TrimSpace(req.Email)),
		employment,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			r.logger.Warn("duplicate email on resident create", zap.String("email", req.Email))
			return nil, storage.ErrDuplicateEmail
		}
		r.logger.Error("creating resident", zap.String("email", req.Email), zap.Error(err))
		return nil, fmt.Errorf("failed to create resident: %w", err)
	}
	return res, nil
}

// Update applies a partial self-edit.
func (r *ResidentRepo) Update(ctx context.Context, req *dto.UpdateResidentRequest) (*models.Resident, error) {
	sets := []string{}
	args := []interface{}{req.ID}

	add := func(col string, val interface{}) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if req.FirstName != nil {
		add("first_name", *req.FirstName)
	}
	if req.MiddleName != nil {
		add("middle_name", *req.MiddleName)
	}
	if req.LastName != nil {
		add("last_name", *req.LastName)
	}
	if req.Birthdate != nil {
		add("birthdate", *req.Birthdate)
	}
	if req.Gender != nil {
		add("gender", *req.Gender)
	}
	if req.Address != nil {
		add("address", *req.Address)
	}
	if req.ContactNumber != nil {
		add("contact_number", *req.ContactNumber)
	}
	if req.EmploymentStatus != nil {
		add("employment_status", *req.EmploymentStatus)
	}
	if req.ProofResidencyURL != nil {
		add("proof_residency_url", *req.ProofResidencyURL)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, req.ID)
	}

	query := fmt.Sprintf(`UPDATE residents SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(sets, ", "), residentColumns)
	res, err := scanResident(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		r.logger.Error("updating resident", zap.Int64("id", req.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to update resident %d: %w", req.ID, err)
	}
	return res, nil
}

// SetVerification records an Official's verification decision.
func (r *ResidentRepo) SetVerification(ctx context.Context, id int64, status models.VerificationStatus) (*models.Resident, error) {
	query := fmt.Sprintf(`UPDATE residents SET verification_status = $2 WHERE id = $1 RETURNING %s`, residentColumns)
	res, err := scanResident(r.db.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		r.logger.Error("setting verification status", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to set verification status: %w", err)
	}
	return res, nil
}

// SetAccountLink backfills a missing or stale account linkage.
func (r *ResidentRepo) SetAccountLink(ctx context.Context, id int64, accountID int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE residents SET account_id = $2 WHERE id = $1`, id, accountID)
	if err != nil {
		r.logger.Error("linking resident to account", zap.Int64("id", id), zap.Int64("account_id", accountID), zap.Error(err))
		return fmt.Errorf("failed to link resident %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Delete removes a resident row. Used by the dedup batch only.
func (r *ResidentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM residents WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("deleting resident", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete resident %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
