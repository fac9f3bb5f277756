package dto

// CreateTrainingRequest defines the structure for posting a training.
type CreateTrainingRequest struct {
	Name          string `json:"name" validate:"required,max=150"`
	Description   string `json:"description" validate:"omitempty"`
	DateScheduled string `json:"date_scheduled" validate:"omitempty"`
	Location      string `json:"location" validate:"omitempty,max=150"`
	Slots         int    `json:"slots" validate:"omitempty,gte=0"`
	CreatedBy     string `json:"-"`
}

// RegisterForTrainingRequest registers a resident for a training.
type RegisterForTrainingRequest struct {
	TrainingID int64  `json:"training_id" validate:"required"`
	Username   string `json:"-"`
	Email      string `json:"-"`
}

// UpdateAttendanceRequest moves a participation through
// Registered -> Attended -> Completed.
type UpdateAttendanceRequest struct {
	ParticipationID int64  `json:"participation_id" validate:"required"`
	Attendance      string `json:"attendance" validate:"required,oneof=Registered Attended Completed"`
}
