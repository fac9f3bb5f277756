package dto

import "time"

// CreateResidentRequest defines the structure for creating a resident profile.
type CreateResidentRequest struct {
	AccountID        *int64     `json:"account_id" validate:"omitempty"`
	FirstName        string     `json:"first_name" validate:"omitempty,max=100"`
	MiddleName       string     `json:"middle_name" validate:"omitempty,max=100"`
	LastName         string     `json:"last_name" validate:"omitempty,max=100"`
	Birthdate        *time.Time `json:"birthdate" validate:"omitempty"`
	Gender           string     `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Address          string     `json:"address" validate:"omitempty,max=255"`
	ContactNumber    string     `json:"contact_number" validate:"omitempty,max=20"`
	Email            string     `json:"email" validate:"required,email"`
	EmploymentStatus string     `json:"employment_status" validate:"omitempty,oneof=Employed Unemployed Self-employed"`
}

// UpdateResidentRequest defines the structure for a resident self-edit.
// Nil pointers leave the stored value untouched.
type UpdateResidentRequest struct {
	ID               int64      `json:"id" validate:"required"`
	FirstName        *string    `json:"first_name" validate:"omitempty,max=100"`
	MiddleName       *string    `json:"middle_name" validate:"omitempty,max=100"`
	LastName         *string    `json:"last_name" validate:"omitempty,max=100"`
	Birthdate        *time.Time `json:"birthdate" validate:"omitempty"`
	Gender           *string    `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Address          *string    `json:"address" validate:"omitempty,max=255"`
	ContactNumber    *string    `json:"contact_number" validate:"omitempty,max=20"`
	EmploymentStatus *string    `json:"employment_status" validate:"omitempty,oneof=Employed Unemployed Self-employed"`
	ProofResidencyURL *string   `json:"proof_residency_url" validate:"omitempty,max=512"`
}

// VerifyResidentRequest records an Official's verification decision.
type VerifyResidentRequest struct {
	ResidentID int64  `json:"resident_id" validate:"required"`
	Decision   string `json:"decision" validate:"required,oneof=Verified Rejected"`
}
