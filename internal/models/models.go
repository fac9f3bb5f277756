package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// --- Account Role Enum ---
type Role string

const (
	RoleResident Role = "Resident"
	RoleOfficial Role = "Official"
	RoleAdmin    Role = "Admin"
)

// Scan implements the sql.Scanner interface for Role
func (r *Role) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan Role: value is not string or []byte")
		}
	}
	v := Role(strVal)
	switch v {
	case RoleResident, RoleOfficial, RoleAdmin:
		*r = v
		return nil
	default:
		return fmt.Errorf("invalid Role value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for Role
func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

// --- Verification Status Enum ---
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "Pending"
	VerificationVerified VerificationStatus = "Verified"
	VerificationRejected VerificationStatus = "Rejected"
)

// Scan implements the sql.Scanner interface for VerificationStatus
func (vs *VerificationStatus) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan VerificationStatus: value is not string or []byte")
		}
	}
	v := VerificationStatus(strVal)
	switch v {
	case VerificationPending, VerificationVerified, VerificationRejected:
		*vs = v
		return nil
	default:
		return fmt.Errorf("invalid VerificationStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for VerificationStatus
func (vs VerificationStatus) Value() (driver.Value, error) {
	return string(vs), nil
}

// --- Employment Status Enum ---
type EmploymentStatus string

const (
	EmploymentEmployed     EmploymentStatus = "Employed"
	EmploymentUnemployed   EmploymentStatus = "Unemployed"
	EmploymentSelfEmployed EmploymentStatus = "Self-employed"
)

// Scan implements the sql.Scanner interface for EmploymentStatus
func (es *EmploymentStatus) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan EmploymentStatus: value is not string or []byte")
		}
	}
	v := EmploymentStatus(strVal)
	switch v {
	case EmploymentEmployed, EmploymentUnemployed, EmploymentSelfEmployed:
		*es = v
		return nil
	default:
		return fmt.Errorf("invalid EmploymentStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for EmploymentStatus
func (es EmploymentStatus) Value() (driver.Value, error) {
	return string(es), nil
}

// --- Job Status Enum ---
type JobStatus string

const (
	JobStatusOpen   JobStatus = "Open"
	JobStatusClosed JobStatus = "Closed"
)

// --- Application Status Enum ---
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationAccepted ApplicationStatus = "Accepted"
	ApplicationRejected ApplicationStatus = "Rejected"
	ApplicationHired    ApplicationStatus = "Hired"
)

// --- Training Status Enum ---
type TrainingStatus string

const (
	TrainingUpcoming  TrainingStatus = "Upcoming"
	TrainingCompleted TrainingStatus = "Completed"
)

// --- Attendance Status Enum ---
type AttendanceStatus string

const (
	AttendanceRegistered AttendanceStatus = "Registered"
	AttendanceAttended   AttendanceStatus = "Attended"
	AttendanceCompleted  AttendanceStatus = "Completed"
)

// Account is a locally managed login account. Username is the natural key.
type Account struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Resident is the legacy relational profile row. Email is the natural key;
// AccountID is the linkage to Account and may be null on old rows.
type Resident struct {
	ID                 int64              `json:"id"`
	AccountID          *int64             `json:"account_id,omitempty"`
	FirstName          string             `json:"first_name"`
	MiddleName         string             `json:"middle_name,omitempty"`
	LastName           string             `json:"last_name"`
	Birthdate          *time.Time         `json:"birthdate,omitempty"`
	Gender             string             `json:"gender,omitempty"`
	Address            string             `json:"address"`
	ContactNumber      string             `json:"contact_number"`
	Email              string             `json:"email"`
	EmploymentStatus   EmploymentStatus   `json:"employment_status"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	ProofResidencyURL  string             `json:"proof_residency_url,omitempty"`
	DateRegistered     time.Time          `json:"date_registered"`
}

// Skill is a small reference vocabulary shared by residents and jobs.
type Skill struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Job is a posting held in the remote store.
type Job struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PostedBy    string    `json:"posted_by"`
	Status      JobStatus `json:"status"`
	DatePosted  time.Time `json:"date_posted"`
	SkillIDs    []int64   `json:"skill_ids,omitempty"`
	SkillNames  []string  `json:"skill_names,omitempty"`
}

// JobApplication links a resident to a job. At most one application per
// (resident, job) pair is intended; the guard lives in the service layer.
type JobApplication struct {
	ID          int64             `json:"id"`
	ResidentID  int64             `json:"resident_id"`
	JobID       int64             `json:"job_id"`
	Status      ApplicationStatus `json:"status"`
	DateApplied time.Time         `json:"date_applied"`
}

// Training is an announced training session with limited slots.
type Training struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	DateScheduled   string         `json:"date_scheduled,omitempty"`
	Location        string         `json:"location,omitempty"`
	Slots           int            `json:"slots"`
	CreatedBy       string         `json:"created_by"`
	Status          TrainingStatus `json:"status"`
	RegisteredCount int            `json:"registered_count"`
	AvailableSlots  int            `json:"available_slots"`
}

// TrainingParticipation records a resident's registration for a training.
type TrainingParticipation struct {
	ID             int64            `json:"id"`
	TrainingID     int64            `json:"training_id"`
	ResidentID     int64            `json:"resident_id"`
	Attendance     AttendanceStatus `json:"attendance_status"`
	DateRegistered time.Time        `json:"date_registered"`
}
