package services

import (
	"context"
	"fmt"
	"path"
	"time"

	"skillbridge/internal/mail"
	"skillbridge/internal/models"
	"skillbridge/internal/storage"
	"skillbridge/internal/transport/dto"

	"go.uber.org/zap"
)

// ArtifactStore accepts a binary upload and returns its public URL.
// Satisfied by the remote client's bucket API.
type ArtifactStore interface {
	Upload(ctx context.Context, bucket, objectPath, contentType string, data []byte) (string, error)
}

type residentService struct {
	repo      storage.ResidentRepository
	artifacts ArtifactStore
	bucket    string
	sender    mail.Sender
	auditor   Auditor
	logger    *zap.Logger
}

// NewResidentService wires profile maintenance and verification.
func NewResidentService(
	repo storage.ResidentRepository,
	artifacts ArtifactStore,
	bucket string,
	sender mail.Sender,
	auditor Auditor,
	logger *zap.Logger,
) ResidentService {
	return &residentService{
		repo:      repo,
		artifacts: artifacts,
		bucket:    bucket,
		sender:    sender,
		auditor:   auditor,
		logger:    logger,
	}
}

func (s *residentService) GetAll(ctx context.Context) ([]models.Resident, error) {
	return s.repo.GetAll(ctx)
}

func (s *residentService) GetByID(ctx context.Context, id int64) (*models.Resident, error) {
	resident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, MapRepoError(err, "getting resident")
	}
	return resident, nil
}

func (s *residentService) GetByEmail(ctx context.Context, email string) (*models.Resident, error) {
	resident, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, MapRepoError(err, "getting resident by email")
	}
	return resident, nil
}

func (s *residentService) Update(ctx context.Context, req *dto.UpdateResidentRequest) (*models.Resident, error) {
	resident, err := s.repo.Update(ctx, req)
	if err != nil {
		return nil, MapRepoError(err, "updating resident")
	}
	return resident, nil
}

// Verify records an Official's decision. Pending is the only state a
// decision can leave; both outcomes are terminal here.
func (s *residentService) Verify(ctx context.Context, req *dto.VerifyResidentRequest, decidedBy string) (*models.Resident, error) {
	resident, err := s.repo.GetByID(ctx, req.ResidentID)
	if err != nil {
		return nil, MapRepoError(err, "loading resident for verification")
	}

	target := models.VerificationStatus(req.Decision)
	if !isValidVerificationTransition(resident.VerificationStatus, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, resident.VerificationStatus, target)
	}

	updated, err := s.repo.SetVerification(ctx, req.ResidentID, target)
	if err != nil {
		return nil, MapRepoError(err, "setting verification status")
	}

	s.auditor.Record(ctx, "verify", "resident", updated.ID, decidedBy)
	s.notifyDecision(ctx, updated, target)
	return updated, nil
}

func (s *residentService) notifyDecision(ctx context.Context, resident *models.Resident, status models.VerificationStatus) {
	if resident.Email == "" {
		return
	}
	subject := "Your residency verification was approved"
	body := fmt.Sprintf("<p>Hi %s,</p><p>Your proof of residency has been verified. You can now apply for jobs and trainings.</p>", resident.FirstName)
	if status == models.VerificationRejected {
		subject = "Your residency verification was rejected"
		body = fmt.Sprintf("<p>Hi %s,</p><p>Your proof of residency could not be verified. Please update your documents and try again.</p>", resident.FirstName)
	}
	if err := s.sender.Send(ctx, resident.Email, subject, body); err != nil {
		s.logger.Warn("verification notice failed", zap.String("email", resident.Email), zap.Error(err))
	}
}

// AttachProof uploads a proof-of-residency artifact and stores its public
// URL on the profile. The URL is opaque to everything else.
func (s *residentService) AttachProof(ctx context.Context, residentID int64, filename, contentType string, data []byte) (*models.Resident, error) {
	objectPath := fmt.Sprintf("resident-%d/%d%s", residentID, time.Now().Unix(), path.Ext(filename))
	url, err := s.artifacts.Upload(ctx, s.bucket, objectPath, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("uploading proof of residency: %w", err)
	}
	updated, err := s.repo.Update(ctx, &dto.UpdateResidentRequest{
		ID:                residentID,
		ProofResidencyURL: &url,
	})
	if err != nil {
		return nil, MapRepoError(err, "storing proof URL")
	}
	return updated, nil
}
