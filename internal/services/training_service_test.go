package services_test

import (
	"context"
	"testing"

	"skillbridge/internal/identity"
	"skillbridge/internal/models"
	"skillbridge/internal/remote"
	"skillbridge/internal/services"
	"skillbridge/internal/transport/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTrainings struct {
	trainings      map[int64]*remote.TrainingRow
	participations []*remote.ParticipationRow
	nextTrainingID int64
	nextPartID     int64
}

func newFakeTrainings() *fakeTrainings {
	return &fakeTrainings{
		trainings:      map[int64]*remote.TrainingRow{},
		nextTrainingID: 1,
		nextPartID:     1,
	}
}

func (f *fakeTrainings) Insert(ctx context.Context, row remote.TrainingRow) (*remote.TrainingRow, error) {
	row.ID = f.nextTrainingID
	if row.Status == "" {
		row.Status = string(models.TrainingUpcoming)
	}
	f.nextTrainingID++
	stored := row
	f.trainings[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeTrainings) List(ctx context.Context) ([]remote.TrainingRow, error) {
	out := []remote.TrainingRow{}
	for _, row := range f.trainings {
		out = append(out, *row)
	}
	return out, nil
}

func (f *fakeTrainings) GetByID(ctx context.Context, id int64) (*remote.TrainingRow, error) {
	row, ok := f.trainings[id]
	if !ok {
		return nil, remote.ErrNoRows
	}
	return row, nil
}

func (f *fakeTrainings) Participants(ctx context.Context, trainingID int64) ([]remote.ParticipationRow, error) {
	out := []remote.ParticipationRow{}
	for _, p := range f.participations {
		if p.TrainingID == trainingID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeTrainings) IsRegistered(ctx context.Context, trainingID, residentID int64) (bool, error) {
	for _, p := range f.participations {
		if p.TrainingID == trainingID && p.ResidentID == residentID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTrainings) Register(ctx context.Context, trainingID, residentID int64) (*remote.ParticipationRow, error) {
	p := &remote.ParticipationRow{
		ID:         f.nextPartID,
		TrainingID: trainingID,
		ResidentID: residentID,
		Attendance: string(models.AttendanceRegistered),
	}
	f.nextPartID++
	f.participations = append(f.participations, p)
	return p, nil
}

func (f *fakeTrainings) Participation(ctx context.Context, id int64) (*remote.ParticipationRow, error) {
	for _, p := range f.participations {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, remote.ErrNoRows
}

func (f *fakeTrainings) SetAttendance(ctx context.Context, participationID int64, attendance string) (*remote.ParticipationRow, error) {
	p, err := f.Participation(ctx, participationID)
	if err != nil {
		return nil, err
	}
	p.Attendance = attendance
	return p, nil
}

type trainingFixture struct {
	trainings *fakeTrainings
	remoteDir *fakeRemoteDirectory
	auditor   *fakeAuditor
	service   services.TrainingService
}

func newTrainingFixture() *trainingFixture {
	logger := zap.NewNop()
	f := &trainingFixture{
		trainings: newFakeTrainings(),
		remoteDir: newFakeRemoteDirectory(),
		auditor:   &fakeAuditor{},
	}
	profiles := fakeRemoteProfiles{dir: f.remoteDir}
	reconciler := identity.NewReconciler(f.remoteDir, profiles, logger)
	f.service = services.NewTrainingService(f.trainings, profiles, reconciler, f.auditor, logger)
	return f
}

func (f *trainingFixture) seedProfile(t *testing.T, email string) *remote.ResidentRow {
	t.Helper()
	profile, err := fakeRemoteProfiles{dir: f.remoteDir}.Insert(context.Background(), remote.ResidentRow{Email: email})
	require.NoError(t, err)
	return profile
}

func TestTrainingService_Post(t *testing.T) {
	ctx := context.Background()
	f := newTrainingFixture()

	training, err := f.service.Post(ctx, &dto.CreateTrainingRequest{
		Name:      "Basic Welding",
		Slots:     15,
		CreatedBy: "official1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Basic Welding", training.Name)
	assert.Equal(t, 15, training.Slots)
	assert.Equal(t, 15, training.AvailableSlots)

	require.Len(t, f.auditor.records, 1)
	assert.Equal(t, "create", f.auditor.records[0].Action)
	require.Len(t, f.auditor.notifications, 1)
	assert.Equal(t, "training", f.auditor.notifications[0].Type)
	assert.Contains(t, f.auditor.notifications[0].Message, "Basic Welding")
	assert.True(t, f.auditor.notifications[0].Visible)
}

func TestTrainingService_Register(t *testing.T) {
	ctx := context.Background()
	f := newTrainingFixture()
	created, err := f.trainings.Insert(ctx, remote.TrainingRow{Name: "Basic Welding", Slots: 2})
	require.NoError(t, err)
	profile := f.seedProfile(t, "maria@example.com")

	participation, err := f.service.Register(ctx, &dto.RegisterForTrainingRequest{
		TrainingID: created.ID, Username: "maria", Email: "maria@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, participation.TrainingID)
	assert.Equal(t, profile.ID, participation.ResidentID)
	assert.Equal(t, models.AttendanceRegistered, participation.Attendance)
}

func TestTrainingService_RegisterTwiceConflicts(t *testing.T) {
	ctx := context.Background()
	f := newTrainingFixture()
	created, err := f.trainings.Insert(ctx, remote.TrainingRow{Name: "Basic Welding", Slots: 5})
	require.NoError(t, err)
	f.seedProfile(t, "maria@example.com")

	req := &dto.RegisterForTrainingRequest{TrainingID: created.ID, Username: "maria", Email: "maria@example.com"}
	_, err = f.service.Register(ctx, req)
	require.NoError(t, err)

	_, err = f.service.Register(ctx, req)
	assert.ErrorIs(t, err, services.ErrConflict)
}

func TestTrainingService_RegisterFull(t *testing.T) {
	ctx := context.Background()
	f := newTrainingFixture()
	created, err := f.trainings.Insert(ctx, remote.TrainingRow{Name: "Basic Welding", Slots: 1})
	require.NoError(t, err)
	first := f.seedProfile(t, "first@example.com")
	f.seedProfile(t, "second@example.com")

	_, err = f.trainings.Register(ctx, created.ID, first.ID)
	require.NoError(t, err)

	_, err = f.service.Register(ctx, &dto.RegisterForTrainingRequest{
		TrainingID: created.ID, Username: "second", Email: "second@example.com",
	})
	assert.ErrorIs(t, err, services.ErrTrainingFull)
}

func TestTrainingService_RegisterUnlimitedSlots(t *testing.T) {
	ctx := context.Background()
	f := newTrainingFixture()
	created, err := f.trainings.Insert(ctx, remote.TrainingRow{Name: "Open Orientation", Slots: 0})
	require.NoError(t, err)
	f.seedProfile(t, "maria@example.com")

	_, err = f.service.Register(ctx, &dto.RegisterForTrainingRequest{
		TrainingID: created.ID, Username: "maria", Email: "maria@example.com",
	})
	assert.NoError(t, err)
}

func TestTrainingService_RegisterUnknownTraining(t *testing.T) {
	f := newTrainingFixture()

	_, err := f.service.Register(context.Background(), &dto.RegisterForTrainingRequest{
		TrainingID: 99, Username: "maria", Email: "maria@example.com",
	})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestTrainingService_RegisterRepairsMissingProfile(t *testing.T) {
	ctx := context.Background()
	f := newTrainingFixture()
	created, err := f.trainings.Insert(ctx, remote.TrainingRow{Name: "Basic Welding", Slots: 5})
	require.NoError(t, err)

	participation, err := f.service.Register(ctx, &dto.RegisterForTrainingRequest{
		TrainingID: created.ID, Username: "newcomer", Email: "newcomer@example.com",
	})
	require.NoError(t, err)

	profile, err := fakeRemoteProfiles{dir: f.remoteDir}.GetByEmail(ctx, "newcomer@example.com")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, participation.ResidentID)
}

func TestTrainingService_SetAttendance(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		from    models.AttendanceStatus
		to      models.AttendanceStatus
		wantErr error
	}{
		{"registered to attended", models.AttendanceRegistered, models.AttendanceAttended, nil},
		{"attended to completed", models.AttendanceAttended, models.AttendanceCompleted, nil},
		{"registered to completed", models.AttendanceRegistered, models.AttendanceCompleted, services.ErrInvalidTransition},
		{"completed to attended", models.AttendanceCompleted, models.AttendanceAttended, services.ErrInvalidTransition},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newTrainingFixture()
			p, err := f.trainings.Register(ctx, 1, 1)
			require.NoError(t, err)
			p.Attendance = string(tc.from)

			updated, err := f.service.SetAttendance(ctx, &dto.UpdateAttendanceRequest{
				ParticipationID: p.ID, Attendance: string(tc.to),
			})
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.to, updated.Attendance)
		})
	}
}

func TestTrainingService_GetByIDCountsOccupancy(t *testing.T) {
	ctx := context.Background()
	f := newTrainingFixture()
	created, err := f.trainings.Insert(ctx, remote.TrainingRow{Name: "Basic Welding", Slots: 3})
	require.NoError(t, err)
	_, err = f.trainings.Register(ctx, created.ID, 1)
	require.NoError(t, err)
	_, err = f.trainings.Register(ctx, created.ID, 2)
	require.NoError(t, err)

	training, err := f.service.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, training.RegisteredCount)
	assert.Equal(t, 1, training.AvailableSlots)
}
