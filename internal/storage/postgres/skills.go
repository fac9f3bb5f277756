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

// SkillRepo implements storage.SkillRepository using PostgreSQL.
type SkillRepo struct {
	db     Querier
	logger *zap.Logger
}

// NewSkillRepo creates a new SkillRepo.
func NewSkillRepo(db *pgxpool.Pool, logger *zap.Logger) *SkillRepo {
	return &SkillRepo{db: db, logger: logger}
}

var _ storage.SkillRepository = (*SkillRepo)(nil)

// GetAll retrieves the skill vocabulary.
func (r *SkillRepo) GetAll(ctx context.Context) ([]models.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description FROM skills ORDER BY name`)
	if err != nil {
		r.logger.Error("querying skills", zap.Error(err))
		return nil, fmt.Errorf("failed to query skills: %w", err)
	}
	defer rows.Close()

	skills, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Skill])
	if err != nil {
		return nil, fmt.Errorf("failed to scan skills: %w", err)
	}
	if skills == nil {
		skills = []models.Skill{}
	}
	return skills, nil
}

// GetByID retrieves a single skill.
func (r *SkillRepo) GetByID(ctx context.Context, id int64) (*models.Skill, error) {
	var s models.Skill
	err := r.db.QueryRow(ctx, `SELECT id, name, description FROM skills WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		r.logger.Error("getting skill", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get skill %d: %w", id, err)
	}
	return &s, nil
}

// Create adds a skill to the vocabulary.
func (r *SkillRepo) Create(ctx context.Context, req *dto.CreateSkillRequest) (*models.Skill, error) {
	var s models.Skill
	err := r.db.QueryRow(ctx,
		`INSERT INTO skills (name, description) VALUES ($1, $2) RETURNING id, name, description`,
		req.Name, req.Description).Scan(&s.ID, &s.Name, &s.Description)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return nil, storage.ErrConflict
		}
		r.logger.Error("creating skill", zap.String("name", req.Name), zap.Error(err))
		return nil, fmt.Errorf("failed to create skill: %w", err)
	}
	return &s, nil
}

// Delete removes a skill and its join rows (cascade).
func (r *SkillRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("deleting skill", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete skill %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListForResident retrieves the skills declared by one resident.
func (r *SkillRepo) ListForResident(ctx context.Context, residentID int64) ([]models.Skill, error) {
	query := `
		SELECT s.id, s.name, s.description
		FROM skills s
		JOIN resident_skills rs ON rs.skill_id = s.id
		WHERE rs.resident_id = $1
		ORDER BY s.name
	`
	rows, err := r.db.Query(ctx, query, residentID)
	if err != nil {
		r.logger.Error("querying resident skills", zap.Int64("resident_id", residentID), zap.Error(err))
		return nil, fmt.Errorf("failed to query resident skills: %w", err)
	}
	defer rows.Close()

	skills, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Skill])
	if err != nil {
		return nil, fmt.Errorf("failed to scan resident skills: %w", err)
	}
	if skills == nil {
		skills = []models.Skill{}
	}
	return skills, nil
}

// AddToResident links a skill to a resident. Re-adding is a no-op.
func (r *SkillRepo) AddToResident(ctx context.Context, residentID, skillID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO resident_skills (resident_id, skill_id)
		VALUES ($1, $2)
		ON CONFLICT (resident_id, skill_id) DO NOTHING
	`, residentID, skillID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrForeignKeyViolation {
			return storage.ErrNotFound
		}
		r.logger.Error("adding resident skill", zap.Int64("resident_id", residentID), zap.Int64("skill_id", skillID), zap.Error(err))
		return fmt.Errorf("failed to add resident skill: %w", err)
	}
	return nil
}

// RemoveFromResident unlinks a skill from a resident.
func (r *SkillRepo) RemoveFromResident(ctx context.Context, residentID, skillID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM resident_skills WHERE resident_id = $1 AND skill_id = $2`, residentID, skillID)
	if err != nil {
		r.logger.Error("removing resident skill", zap.Int64("resident_id", residentID), zap.Int64("skill_id", skillID), zap.Error(err))
		return fmt.Errorf("failed to remove resident skill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
