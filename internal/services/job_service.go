package services

import (
	"context"
	"errors"
	"fmt"

	"skillbridge/internal/match"
	"skillbridge/internal/models"
	"skillbridge/internal/remote"
	"skillbridge/internal/transport/dto"

	"go.uber.org/zap"
)

// JobDirectory is the slice of the remote job tables the service needs.
// Satisfied by *remote.Jobs.
type JobDirectory interface {
	Insert(ctx context.Context, row remote.JobRow) (*remote.JobRow, error)
	List(ctx context.Context) ([]remote.JobRow, error)
	GetByID(ctx context.Context, id int64) (*remote.JobRow, error)
	SetStatus(ctx context.Context, id int64, status string) (*remote.JobRow, error)
	LinkSkills(ctx context.Context, jobID int64, skillIDs []int64) error
	SkillLinks(ctx context.Context) ([]remote.JobSkillRow, error)
	SkillVocabulary(ctx context.Context) ([]remote.SkillListRow, error)
}

// ProfileLookup resolves a resident email to its remote profile row.
type ProfileLookup interface {
	GetByEmail(ctx context.Context, email string) (*remote.ResidentRow, error)
}

// SkillSetLookup returns a resident's declared skill-id set.
type SkillSetLookup interface {
	SkillIDs(ctx context.Context, residentID int64) (map[int64]struct{}, error)
}

type jobService struct {
	jobs     JobDirectory
	profiles ProfileLookup
	skills   SkillSetLookup
	auditor  Auditor
	logger   *zap.Logger
}

// NewJobService wires postings and recommendations.
func NewJobService(jobs JobDirectory, profiles ProfileLookup, skills SkillSetLookup, auditor Auditor, logger *zap.Logger) JobService {
	return &jobService{jobs: jobs, profiles: profiles, skills: skills, auditor: auditor, logger: logger}
}

func (s *jobService) Post(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	created, err := s.jobs.Insert(ctx, remote.JobRow{
		Title:       req.Title,
		Description: req.Description,
		PostedBy:    req.PostedBy,
		Status:      req.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("posting job: %w", err)
	}
	if len(req.SkillIDs) > 0 {
		if err := s.jobs.LinkSkills(ctx, created.ID, req.SkillIDs); err != nil {
			// The posting exists; missing links only exclude it from
			// recommendations until relinked.
			s.logger.Warn("linking job skills failed", zap.Int64("job_id", created.ID), zap.Error(err))
		}
	}
	s.auditor.Record(ctx, "create", "job", created.ID, req.PostedBy)

	job := created.Model()
	job.SkillIDs = req.SkillIDs
	return &job, nil
}

func (s *jobService) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	row, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, remote.ErrNoRows) {
			return nil, fmt.Errorf("%w: job %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("getting job: %w", err)
	}
	job := row.Model()
	return &job, nil
}

func (s *jobService) SetStatus(ctx context.Context, req *dto.UpdateJobStatusRequest, changedBy string) (*models.Job, error) {
	row, err := s.jobs.SetStatus(ctx, req.JobID, req.Status)
	if err != nil {
		return nil, fmt.Errorf("updating job status: %w", err)
	}
	s.auditor.Record(ctx, "status", "job", req.JobID, changedBy)
	job := row.Model()
	return &job, nil
}

// ListForResident returns all open jobs annotated with their required
// skills, plus the recommended subset for the resident. Recommendation is
// best-effort: any failure resolving the resident or their skills degrades
// to an empty recommended list, never an error.
func (s *jobService) ListForResident(ctx context.Context, residentEmail string) ([]models.Job, []models.Job, error) {
	rows, err := s.jobs.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing jobs: %w", err)
	}

	links, err := s.jobs.SkillLinks(ctx)
	if err != nil {
		s.logger.Warn("loading job skill links failed", zap.Error(err))
		links = nil
	}
	names := map[int64]string{}
	if vocab, err := s.jobs.SkillVocabulary(ctx); err == nil {
		for _, skill := range vocab {
			names[skill.ID] = skill.Name
		}
	} else {
		s.logger.Warn("loading skill vocabulary failed", zap.Error(err))
	}

	skillsByJob := map[int64][]int64{}
	for _, link := range links {
		skillsByJob[link.JobID] = append(skillsByJob[link.JobID], link.SkillID)
	}

	all := []models.Job{}
	withSkills := []match.JobSkills{}
	for _, row := range rows {
		if models.JobStatus(row.Status) != models.JobStatusOpen {
			continue
		}
		job := row.Model()
		job.SkillIDs = skillsByJob[row.ID]
		for _, id := range job.SkillIDs {
			if name, ok := names[id]; ok {
				job.SkillNames = append(job.SkillNames, name)
			}
		}
		all = append(all, job)
		withSkills = append(withSkills, match.JobSkills{Job: job, SkillIDs: job.SkillIDs})
	}

	recommended := []models.Job{}
	email := NormalizeEmail(residentEmail)
	if email != "" {
		if residentSkills, ok := s.residentSkillSet(ctx, email); ok {
			recommended = match.Recommend(withSkills, residentSkills)
		}
	}
	return all, recommended, nil
}

func (s *jobService) residentSkillSet(ctx context.Context, email string) (map[int64]struct{}, bool) {
	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, remote.ErrNoRows) {
			s.logger.Warn("resolving resident for recommendations failed",
				zap.String("email", email), zap.Error(err))
		}
		return nil, false
	}
	skills, err := s.skills.SkillIDs(ctx, profile.ID)
	if err != nil {
		s.logger.Warn("loading resident skills failed",
			zap.Int64("resident_id", profile.ID), zap.Error(err))
		return nil, false
	}
	return skills, true
}
