package storage

import (
	"context"

	"skillbridge/internal/models"
	"skillbridge/internal/transport/dto"
)

// AccountRepository defines the interface for local account rows.
type AccountRepository interface {
	GetAll(ctx context.Context) ([]models.Account, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	Create(ctx context.Context, req *dto.CreateAccountRequest) (*models.Account, error)
	UpdateRole(ctx context.Context, id int64, role models.Role) (*models.Account, error)
	Delete(ctx context.Context, id int64) error
}

// ResidentRepository defines the interface for local resident profile rows.
type ResidentRepository interface {
	GetAll(ctx context.Context) ([]models.Resident, error)
	GetByID(ctx context.Context, id int64) (*models.Resident, error)
	GetByEmail(ctx context.Context, email string) (*models.Resident, error)
	GetByAccountID(ctx context.Context, accountID int64) (*models.Resident, error)
	Create(ctx context.Context, req *dto.CreateResidentRequest) (*models.Resident, error)
	Update(ctx context.Context, req *dto.UpdateResidentRequest) (*models.Resident, error)
	SetVerification(ctx context.Context, id int64, status models.VerificationStatus) (*models.Resident, error)
	SetAccountLink(ctx context.Context, id int64, accountID int64) error
	Delete(ctx context.Context, id int64) error
}

// SkillRepository defines the interface for the skill vocabulary and the
// resident-to-skill join relation.
type SkillRepository interface {
	GetAll(ctx context.Context) ([]models.Skill, error)
	GetByID(ctx context.Context, id int64) (*models.Skill, error)
	Create(ctx context.Context, req *dto.CreateSkillRequest) (*models.Skill, error)
	Delete(ctx context.Context, id int64) error
	ListForResident(ctx context.Context, residentID int64) ([]models.Skill, error)
	AddToResident(ctx context.Context, residentID, skillID int64) error
	RemoveFromResident(ctx context.Context, residentID, skillID int64) error
}
