package services

import (
	"context"
	"errors"
	"fmt"

	"skillbridge/internal/audit"
	"skillbridge/internal/identity"
	"skillbridge/internal/models"
	"skillbridge/internal/remote"
	"skillbridge/internal/transport/dto"

	"go.uber.org/zap"
)

// TrainingBoard is the slice of the remote training tables the service
// needs. Satisfied by *remote.Trainings.
type TrainingBoard interface {
	Insert(ctx context.Context, row remote.TrainingRow) (*remote.TrainingRow, error)
	List(ctx context.Context) ([]remote.TrainingRow, error)
	GetByID(ctx context.Context, id int64) (*remote.TrainingRow, error)
	Participants(ctx context.Context, trainingID int64) ([]remote.ParticipationRow, error)
	IsRegistered(ctx context.Context, trainingID, residentID int64) (bool, error)
	Register(ctx context.Context, trainingID, residentID int64) (*remote.ParticipationRow, error)
	Participation(ctx context.Context, id int64) (*remote.ParticipationRow, error)
	SetAttendance(ctx context.Context, participationID int64, attendance string) (*remote.ParticipationRow, error)
}

type trainingService struct {
	trainings  TrainingBoard
	profiles   ProfileLookup
	reconciler *identity.Reconciler
	auditor    Auditor
	logger     *zap.Logger
}

// NewTrainingService wires training announcements and attendance.
func NewTrainingService(
	trainings TrainingBoard,
	profiles ProfileLookup,
	reconciler *identity.Reconciler,
	auditor Auditor,
	logger *zap.Logger,
) TrainingService {
	return &trainingService{
		trainings:  trainings,
		profiles:   profiles,
		reconciler: reconciler,
		auditor:    auditor,
		logger:     logger,
	}
}

func (s *trainingService) Post(ctx context.Context, req *dto.CreateTrainingRequest) (*models.Training, error) {
	created, err := s.trainings.Insert(ctx, remote.TrainingRow{
		Name:          req.Name,
		Description:   req.Description,
		DateScheduled: req.DateScheduled,
		Location:      req.Location,
		Slots:         req.Slots,
		CreatedBy:     req.CreatedBy,
	})
	if err != nil {
		return nil, fmt.Errorf("posting training: %w", err)
	}
	s.auditor.Record(ctx, "create", "training", created.ID, req.CreatedBy)
	s.auditor.Notify(ctx, audit.Notification{
		Type:    "training",
		Message: fmt.Sprintf("New training posted: %s", created.Name),
		LinkURL: fmt.Sprintf("/trainings/%d", created.ID),
		Visible: true,
	})

	training := created.Model()
	training.AvailableSlots = training.Slots
	return &training, nil
}

func (s *trainingService) List(ctx context.Context) ([]models.Training, error) {
	rows, err := s.trainings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing trainings: %w", err)
	}
	out := make([]models.Training, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.withOccupancy(ctx, row))
	}
	return out, nil
}

func (s *trainingService) GetByID(ctx context.Context, id int64) (*models.Training, error) {
	row, err := s.trainings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, remote.ErrNoRows) {
			return nil, fmt.Errorf("%w: training %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("getting training: %w", err)
	}
	training := s.withOccupancy(ctx, *row)
	return &training, nil
}

// Register signs a resident up if seats remain and they are not already in.
func (s *trainingService) Register(ctx context.Context, req *dto.RegisterForTrainingRequest) (*models.TrainingParticipation, error) {
	row, err := s.trainings.GetByID(ctx, req.TrainingID)
	if err != nil {
		if errors.Is(err, remote.ErrNoRows) {
			return nil, fmt.Errorf("%w: training %d", ErrNotFound, req.TrainingID)
		}
		return nil, fmt.Errorf("getting training: %w", err)
	}

	residentID, err := s.resolveResident(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}

	registered, err := s.trainings.IsRegistered(ctx, req.TrainingID, residentID)
	if err != nil {
		return nil, fmt.Errorf("checking registration: %w", err)
	}
	if registered {
		return nil, fmt.Errorf("%w: already registered for training %d", ErrConflict, req.TrainingID)
	}

	participants, err := s.trainings.Participants(ctx, req.TrainingID)
	if err != nil {
		return nil, fmt.Errorf("counting participants: %w", err)
	}
	if row.Slots > 0 && len(participants) >= row.Slots {
		return nil, fmt.Errorf("%w: training %d", ErrTrainingFull, req.TrainingID)
	}

	created, err := s.trainings.Register(ctx, req.TrainingID, residentID)
	if err != nil {
		return nil, fmt.Errorf("registering: %w", err)
	}
	s.auditor.Record(ctx, "register", "training", req.TrainingID, req.Username)

	participation := created.Model()
	return &participation, nil
}

func (s *trainingService) SetAttendance(ctx context.Context, req *dto.UpdateAttendanceRequest) (*models.TrainingParticipation, error) {
	current, err := s.trainings.Participation(ctx, req.ParticipationID)
	if err != nil {
		if errors.Is(err, remote.ErrNoRows) {
			return nil, fmt.Errorf("%w: participation %d", ErrNotFound, req.ParticipationID)
		}
		return nil, fmt.Errorf("getting participation: %w", err)
	}
	from := models.AttendanceStatus(current.Attendance)
	to := models.AttendanceStatus(req.Attendance)
	if !isValidAttendanceTransition(from, to) {
		return nil, fmt.Errorf("%w: attendance cannot move from %s to %s", ErrInvalidTransition, from, to)
	}

	updated, err := s.trainings.SetAttendance(ctx, req.ParticipationID, req.Attendance)
	if err != nil {
		return nil, fmt.Errorf("updating attendance: %w", err)
	}
	participation := updated.Model()
	return &participation, nil
}

func (s *trainingService) resolveResident(ctx context.Context, username, email string) (int64, error) {
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
		return 0, fmt.Errorf("reconciling resident profile: %w", err)
	}
	return result.ResidentID, nil
}

// withOccupancy decorates a training with its registration counts. Counting
// failures degrade to slot totals only.
func (s *trainingService) withOccupancy(ctx context.Context, row remote.TrainingRow) models.Training {
	training := row.Model()
	participants, err := s.trainings.Participants(ctx, row.ID)
	if err != nil {
		s.logger.Warn("counting training participants failed",
			zap.Int64("training_id", row.ID), zap.Error(err))
		training.AvailableSlots = training.Slots
		return training
	}
	training.RegisteredCount = len(participants)
	training.AvailableSlots = training.Slots - training.RegisteredCount
	if training.AvailableSlots < 0 {
		training.AvailableSlots = 0
	}
	return training
}
