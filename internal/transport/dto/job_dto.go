package dto

// CreateJobRequest defines the structure for an Official posting a job.
type CreateJobRequest struct {
	Title       string  `json:"title" validate:"required,max=150"`
	Description string  `json:"description" validate:"omitempty"`
	Status      string  `json:"status" validate:"omitempty,oneof=Open Closed"`
	SkillIDs    []int64 `json:"skill_ids" validate:"omitempty,dive,gt=0"`
	PostedBy    string  `json:"-"` // set by the handler from the session identity
}

// UpdateJobStatusRequest opens or closes a posting.
type UpdateJobStatusRequest struct {
	JobID  int64  `json:"job_id" validate:"required"`
	Status string `json:"status" validate:"required,oneof=Open Closed"`
}

// ListJobsRequest identifies the resident whose recommendations to compute.
// Email may be empty; recommendations are skipped then.
type ListJobsRequest struct {
	ResidentEmail string `json:"resident_email" validate:"omitempty,email"`
}
