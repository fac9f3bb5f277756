package services

import (
	"context"

	"skillbridge/internal/models"
	"skillbridge/internal/storage"
	"skillbridge/internal/transport/dto"

	"go.uber.org/zap"
)

// SkillMirror is the slice of the remote resident_skills table the service
// needs. Satisfied by *remote.ResidentSkills.
type SkillMirror interface {
	Add(ctx context.Context, residentID, skillID int64) error
	Remove(ctx context.Context, residentID, skillID int64) error
}

type skillService struct {
	repo   storage.SkillRepository
	mirror SkillMirror
	logger *zap.Logger
}

// NewSkillService wires the skill vocabulary. Resident skill links are
// written locally and mirrored to the remote resident_skills table, which
// is what the job recommender reads.
func NewSkillService(repo storage.SkillRepository, mirror SkillMirror, logger *zap.Logger) SkillService {
	return &skillService{repo: repo, mirror: mirror, logger: logger}
}

func (s *skillService) List(ctx context.Context) ([]models.Skill, error) {
	return s.repo.GetAll(ctx)
}

func (s *skillService) Create(ctx context.Context, req *dto.CreateSkillRequest) (*models.Skill, error) {
	skill, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, MapRepoError(err, "creating skill")
	}
	return skill, nil
}

func (s *skillService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return MapRepoError(err, "deleting skill")
	}
	return nil
}

func (s *skillService) ListForResident(ctx context.Context, residentID int64) ([]models.Skill, error) {
	return s.repo.ListForResident(ctx, residentID)
}

func (s *skillService) AddToResident(ctx context.Context, req *dto.ResidentSkillRequest) error {
	if err := s.repo.AddToResident(ctx, req.ResidentID, req.SkillID); err != nil {
		return MapRepoError(err, "adding resident skill")
	}
	// Mirror write is best-effort; the dedup batch does not cover skill
	// links, so a missed mirror only costs a recommendation until re-added.
	if err := s.mirror.Add(ctx, req.ResidentID, req.SkillID); err != nil {
		s.logger.Warn("remote skill mirror add failed",
			zap.Int64("resident_id", req.ResidentID),
			zap.Int64("skill_id", req.SkillID),
			zap.Error(err),
		)
	}
	return nil
}

func (s *skillService) RemoveFromResident(ctx context.Context, req *dto.ResidentSkillRequest) error {
	if err := s.repo.RemoveFromResident(ctx, req.ResidentID, req.SkillID); err != nil {
		return MapRepoError(err, "removing resident skill")
	}
	if err := s.mirror.Remove(ctx, req.ResidentID, req.SkillID); err != nil {
		s.logger.Warn("remote skill mirror remove failed",
			zap.Int64("resident_id", req.ResidentID),
			zap.Int64("skill_id", req.SkillID),
			zap.Error(err),
		)
	}
	return nil
}
