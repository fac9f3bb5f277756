package services

import (
	"context"
	"errors"
	"fmt"

	"skillbridge/internal/identity"
	"skillbridge/internal/mail"
	"skillbridge/internal/models"
	"skillbridge/internal/remote"
	"skillbridge/internal/transport/dto"

	"go.uber.org/zap"
)

// ApplicationLedger is the slice of the remote application table the service
// needs. Satisfied by *remote.Applications.
type ApplicationLedger interface {
	Exists(ctx context.Context, residentID, jobID int64) (bool, error)
	Insert(ctx context.Context, residentID, jobID int64) (*remote.ApplicationRow, error)
	GetByID(ctx context.Context, id int64) (*remote.ApplicationRow, error)
	ListByResident(ctx context.Context, residentID int64) ([]remote.ApplicationRow, error)
	ListByJob(ctx context.Context, jobID int64) ([]remote.ApplicationRow, error)
	SetStatus(ctx context.Context, id int64, status string) (*remote.ApplicationRow, error)
}

// JobLookup resolves one job posting. Satisfied by *remote.Jobs.
type JobLookup interface {
	GetByID(ctx context.Context, id int64) (*remote.JobRow, error)
}

// ResidentDirectory resolves remote resident rows by email or id.
// Satisfied by *remote.Residents.
type ResidentDirectory interface {
	ProfileLookup
	GetByID(ctx context.Context, id int64) (*remote.ResidentRow, error)
}

type applicationService struct {
	applications ApplicationLedger
	jobs         JobLookup
	profiles     ResidentDirectory
	reconciler   *identity.Reconciler
	sender       mail.Sender
	auditor      Auditor
	logger       *zap.Logger
}

// NewApplicationService wires the application workflow.
func NewApplicationService(
	applications ApplicationLedger,
	jobs JobLookup,
	profiles ResidentDirectory,
	reconciler *identity.Reconciler,
	sender mail.Sender,
	auditor Auditor,
	logger *zap.Logger,
) ApplicationService {
	return &applicationService{
		applications: applications,
		jobs:         jobs,
		profiles:     profiles,
		reconciler:   reconciler,
		sender:       sender,
		auditor:      auditor,
		logger:       logger,
	}
}

// Apply files an application for the authenticated resident. A missing
// remote profile is repaired on the way in rather than rejected: the
// reconciler creates the account and profile rows just as a signup would.
func (s *applicationService) Apply(ctx context.Context, req *dto.ApplyToJobRequest) (*models.JobApplication, error) {
	job, err := s.jobs.GetByID(ctx, req.JobID)
	if err != nil {
		if errors.Is(err, remote.ErrNoRows) {
			return nil, fmt.Errorf("%w: job %d", ErrNotFound, req.JobID)
		}
		return nil, fmt.Errorf("getting job: %w", err)
	}
	if models.JobStatus(job.Status) != models.JobStatusOpen {
		return nil, fmt.Errorf("%w: job %d is %s", ErrValidation, job.ID, job.Status)
	}

	residentID, err := s.resolveResident(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}

	exists, err := s.applications.Exists(ctx, residentID, req.JobID)
	if err != nil {
		return nil, fmt.Errorf("checking existing application: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: already applied to job %d", ErrConflict, req.JobID)
	}

	created, err := s.applications.Insert(ctx, residentID, req.JobID)
	if err != nil {
		return nil, fmt.Errorf("filing application: %w", err)
	}
	s.auditor.Record(ctx, "apply", "application", created.ID, req.Username)

	application := created.Model()
	return &application, nil
}

func (s *applicationService) ListByResident(ctx context.Context, residentEmail string) ([]models.JobApplication, error) {
	profile, err := s.profiles.GetByEmail(ctx, NormalizeEmail(residentEmail))
	if err != nil {
		if errors.Is(err, remote.ErrNoRows) {
			return []models.JobApplication{}, nil
		}
		return nil, fmt.Errorf("resolving resident: %w", err)
	}
	rows, err := s.applications.ListByResident(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}
	return applicationModels(rows), nil
}

func (s *applicationService) ListByJob(ctx context.Context, jobID int64) ([]models.JobApplication, error) {
	rows, err := s.applications.ListByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}
	return applicationModels(rows), nil
}

// Decide records an Official's decision and notifies the applicant.
func (s *applicationService) Decide(ctx context.Context, req *dto.UpdateApplicationStatusRequest, decidedBy string) (*models.JobApplication, error) {
	current, err := s.applications.GetByID(ctx, req.ApplicationID)
	if err != nil {
		if errors.Is(err, remote.ErrNoRows) {
			return nil, fmt.Errorf("%w: application %d", ErrNotFound, req.ApplicationID)
		}
		return nil, fmt.Errorf("getting application: %w", err)
	}
	from := models.ApplicationStatus(current.Status)
	to := models.ApplicationStatus(req.Status)
	if !isValidApplicationTransition(from, to) {
		return nil, fmt.Errorf("%w: application cannot move from %s to %s", ErrInvalidTransition, from, to)
	}

	updated, err := s.applications.SetStatus(ctx, req.ApplicationID, req.Status)
	if err != nil {
		return nil, fmt.Errorf("updating application status: %w", err)
	}
	s.auditor.Record(ctx, "decide", "application", updated.ID, decidedBy)
	s.notifyApplicant(ctx, updated)

	application := updated.Model()
	return &application, nil
}

// resolveResident maps the caller's identity to a remote resident id,
// reconciling the rows if the profile does not exist yet.
func (s *applicationService) resolveResident(ctx context.Context, username, email string) (int64, error) {
	normalized := NormalizeEmail(email)
	if normalized != "" {
		profile, err := s.profiles.GetByEmail(ctx, normalized)
		if err == nil {
			return profile.ID, nil
		}
		if !errors.Is(err, remote.ErrNoRows) {
			return 0, fmt.Errorf("resolving resident: %w", err)
		}
	}
	result, err := s.reconciler.EnsureLinkedProfile(ctx, identity.Identity{Username: username, Email: normalized})
	if err != nil {
		return 0, fmt.Errorf("reconciling applicant profile: %w", err)
	}
	return result.ResidentID, nil
}

func (s *applicationService) notifyApplicant(ctx context.Context, row *remote.ApplicationRow) {
	profile, err := s.profiles.GetByID(ctx, row.ResidentID)
	if err != nil {
		s.logger.Warn("looking up applicant for notice failed",
			zap.Int64("resident_id", row.ResidentID), zap.Error(err))
		return
	}
	subject := fmt.Sprintf("Your job application is %s", row.Status)
	body := fmt.Sprintf("<p>Hi %s,</p><p>Your application #%d was marked <b>%s</b>.</p>",
		profile.FirstName, row.ID, row.Status)
	if err := s.sender.Send(ctx, profile.Email, subject, body); err != nil {
		s.logger.Warn("application decision email failed",
			zap.String("email", profile.Email), zap.Error(err))
	}
}

func applicationModels(rows []remote.ApplicationRow) []models.JobApplication {
	out := make([]models.JobApplication, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Model())
	}
	return out
}
