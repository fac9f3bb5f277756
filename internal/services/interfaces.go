package services

import (
	"context"
	"time"

	"skillbridge/internal/audit"
	"skillbridge/internal/models"
	"skillbridge/internal/remote"
	"skillbridge/internal/transport/dto"
)

// AuthService defines the interface for the login/signup bridge between the
// hosted auth service and the local account table.
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*models.Account, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*models.Account, string, string, error) // account, access token, refresh token
	Refresh(ctx context.Context, req *dto.RefreshRequest) (string, string, error)
	Logout(ctx context.Context, req *dto.LogoutRequest) error
}

// ResidentService defines the interface for profile maintenance and the
// Official verification workflow.
type ResidentService interface {
	GetAll(ctx context.Context) ([]models.Resident, error)
	GetByID(ctx context.Context, id int64) (*models.Resident, error)
	GetByEmail(ctx context.Context, email string) (*models.Resident, error)
	Update(ctx context.Context, req *dto.UpdateResidentRequest) (*models.Resident, error)
	Verify(ctx context.Context, req *dto.VerifyResidentRequest, decidedBy string) (*models.Resident, error)
	AttachProof(ctx context.Context, residentID int64, filename, contentType string, data []byte) (*models.Resident, error)
}

// SkillService defines the interface for the skill vocabulary and resident
// skill declarations (kept in both stores; the remote mirror feeds matching).
type SkillService interface {
	List(ctx context.Context) ([]models.Skill, error)
	Create(ctx context.Context, req *dto.CreateSkillRequest) (*models.Skill, error)
	Delete(ctx context.Context, id int64) error
	ListForResident(ctx context.Context, residentID int64) ([]models.Skill, error)
	AddToResident(ctx context.Context, req *dto.ResidentSkillRequest) error
	RemoveFromResident(ctx context.Context, req *dto.ResidentSkillRequest) error
}

// JobService defines the interface for postings and recommendations.
type JobService interface {
	Post(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error)
	GetByID(ctx context.Context, id int64) (*models.Job, error)
	SetStatus(ctx context.Context, req *dto.UpdateJobStatusRequest, changedBy string) (*models.Job, error)
	// ListForResident returns every open job plus the recommended subset for
	// the resident identified by email (empty subset when email is blank or
	// no profile exists).
	ListForResident(ctx context.Context, residentEmail string) (all []models.Job, recommended []models.Job, err error)
}

// ApplicationService defines the interface for job applications.
type ApplicationService interface {
	Apply(ctx context.Context, req *dto.ApplyToJobRequest) (*models.JobApplication, error)
	ListByResident(ctx context.Context, residentEmail string) ([]models.JobApplication, error)
	ListByJob(ctx context.Context, jobID int64) ([]models.JobApplication, error)
	Decide(ctx context.Context, req *dto.UpdateApplicationStatusRequest, decidedBy string) (*models.JobApplication, error)
}

// TrainingService defines the interface for trainings and attendance.
type TrainingService interface {
	Post(ctx context.Context, req *dto.CreateTrainingRequest) (*models.Training, error)
	List(ctx context.Context) ([]models.Training, error)
	GetByID(ctx context.Context, id int64) (*models.Training, error)
	Register(ctx context.Context, req *dto.RegisterForTrainingRequest) (*models.TrainingParticipation, error)
	SetAttendance(ctx context.Context, req *dto.UpdateAttendanceRequest) (*models.TrainingParticipation, error)
}

// Auditor records entity-level actions and notifications, best-effort.
// Satisfied by *audit.Logger.
type Auditor interface {
	Record(ctx context.Context, action, entity string, entityID int64, performedBy string)
	Notify(ctx context.Context, n audit.Notification)
}

// RemoteAuthenticator is the slice of the hosted auth service the bridge
// needs. Satisfied by *remote.Client.
type RemoteAuthenticator interface {
	SignInWithPassword(ctx context.Context, email, password string) (*remote.Session, error)
	SignUp(ctx context.Context, email, password string) error
}

// TokenStore persists opaque refresh tokens with a TTL.
type TokenStore interface {
	Save(ctx context.Context, token string, accountID int64, ttl time.Duration) error
	Lookup(ctx context.Context, token string) (int64, error)
	Revoke(ctx context.Context, token string) error
}
