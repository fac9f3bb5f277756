package postgres

import (
	"context"
	"errors"
	"fmt"

	"skillbridge/internal/models"
	"skillbridge/internal/storage"
	"skillbridge/internal/transport/dto"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// AccountRepo implements storage.AccountRepository using PostgreSQL.
type AccountRepo struct {
	db     Querier
	logger *zap.Logger
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(db *pgxpool.Pool, logger *zap.Logger) *AccountRepo {
	return &AccountRepo{db: db, logger: logger}
}

// WithTx creates a new AccountRepo bound to the transaction.
func (r *AccountRepo) WithTx(tx pgx.Tx) storage.AccountRepository {
	return &AccountRepo{db: tx, logger: r.logger}
}

var _ storage.AccountRepository = (*AccountRepo)(nil)

// GetAll retrieves every local account.
func (r *AccountRepo) GetAll(ctx context.Context) ([]models.Account, error) {
	query := `
		SELECT id, username, password_hash, role, created_at
		FROM accounts
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("querying accounts", zap.Error(err))
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Account])
	if err != nil {
		r.logger.Error("scanning accounts", zap.Error(err))
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	return accounts, nil
}

// GetByID retrieves a single account by id.
func (r *AccountRepo) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `
		SELECT id, username, password_hash, role, created_at
		FROM accounts
		WHERE id = $1
	`
	var a models.Account
	err := r.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Role, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		r.logger.Error("getting account by id", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get account %d: %w", id, err)
	}
	return &a, nil
}

// GetByUsername retrieves a single account by its natural key.
func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := `
		SELECT id, username, password_hash, role, created_at
		FROM accounts
		WHERE username = $1
	`
	var a models.Account
	err := r.db.QueryRow(ctx, query, username).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Role, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		r.logger.Error("getting account by username", zap.String("username", username), zap.Error(err))
		return nil, fmt.Errorf("failed to get account %q: %w", username, err)
	}
	return &a, nil
}

// Create inserts a new account row.
func (r *AccountRepo) Create(ctx context.Context, req *dto.CreateAccountRequest) (*models.Account, error) {
	query := `
		INSERT INTO accounts (username, password_hash, role, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, username, password_hash, role, created_at
	`
	var a models.Account
	err := r.db.QueryRow(ctx, query, req.Username, req.PasswordHash, req.Role).
		Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Role, &a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			r.logger.Warn("duplicate username on account create", zap.String("username", req.Username))
			return nil, storage.ErrDuplicateUsername
		}
		r.logger.Error("creating account", zap.String("username", req.Username), zap.Error(err))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return &a, nil
}

// UpdateRole changes an account's role.
func (r *AccountRepo) UpdateRole(ctx context.Context, id int64, role models.Role) (*models.Account, error) {
	query := `
		UPDATE accounts
		SET role = $2
		WHERE id = $1
		RETURNING id, username, password_hash, role, created_at
	`
	var a models.Account
	err := r.db.QueryRow(ctx, query, id, role).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Role, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		r.logger.Error("updating account role", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update account role: %w", err)
	}
	return &a, nil
}

// Delete removes an account row. Used by the dedup batch only.
func (r *AccountRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("deleting account", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete account %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
