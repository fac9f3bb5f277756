package dto

// ApplyToJobRequest submits a job application. Username/email identify the
// applicant so a missing profile can be reconciled on the way in.
type ApplyToJobRequest struct {
	JobID    int64  `json:"job_id" validate:"required"`
	Username string `json:"-"`
	Email    string `json:"-"`
}

// UpdateApplicationStatusRequest records an Official's decision.
type UpdateApplicationStatusRequest struct {
	ApplicationID int64  `json:"application_id" validate:"required"`
	Status        string `json:"status" validate:"required,oneof=Accepted Rejected Hired"`
}
