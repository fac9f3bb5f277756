package remote

import (
	"context"
	"strings"
	"time"

	"skillbridge/internal/models"

	"github.com/google/uuid"
)

// The hosted schema predates this service and its column names are uneven:
// the identity tables use snake_case, the job tables CamelCase, and the
// posted date column is all lowercase. The row structs here pin those names
// down so nothing else in the codebase has to know about them.

// AccountRow mirrors the remote user_account table.
type AccountRow struct {
	ID           int64  `json:"id,omitempty"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Role         string `json:"role"`
}

// ResidentRow mirrors the remote resident table.
type ResidentRow struct {
	ID                 int64  `json:"id,omitempty"`
	UserID             *int64 `json:"user_id"`
	FirstName          string `json:"first_name"`
	MiddleName         string `json:"middle_name,omitempty"`
	LastName           string `json:"last_name"`
	Email              string `json:"email"`
	Address            string `json:"address"`
	ContactNumber      string `json:"contact_number"`
	EmploymentStatus   string `json:"employment_status"`
	VerificationStatus string `json:"verification_status"`
	DateRegistered     string `json:"date_registered,omitempty"`
}

// JobRow mirrors the remote jobs table.
type JobRow struct {
	ID          int64  `json:"JobID,omitempty"`
	Title       string `json:"Title"`
	Description string `json:"Description"`
	PostedBy    string `json:"PostedBy"`
	Status      string `json:"Status"`
	DatePosted  string `json:"dateposted,omitempty"`
}

// SkillListRow mirrors the remote skill_list table.
type SkillListRow struct {
	ID   int64  `json:"SkillID,omitempty"`
	Name string `json:"SkillName"`
}

// JobSkillRow mirrors the remote job_skill_list join table.
type JobSkillRow struct {
	ID        string `json:"id,omitempty"`
	JobID     int64  `json:"job_id"`
	SkillID   int64  `json:"skill_id"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ResidentSkillRow mirrors the remote resident_skills join table.
type ResidentSkillRow struct {
	ResidentID int64 `json:"resident_id"`
	SkillID    int64 `json:"skill_id"`
}

// ApplicationRow mirrors the remote JobApplication table.
type ApplicationRow struct {
	ID          int64  `json:"ApplicationID,omitempty"`
	ResidentID  int64  `json:"ResidentID"`
	JobID       int64  `json:"JobID"`
	Status      string `json:"ApplicationStatus"`
	DateApplied string `json:"DateApplied,omitempty"`
}

// TrainingRow mirrors the remote training table.
type TrainingRow struct {
	ID            int64  `json:"id,omitempty"`
	Name          string `json:"training_name"`
	Description   string `json:"description"`
	DateScheduled string `json:"date_scheduled,omitempty"`
	Location      string `json:"location,omitempty"`
	Slots         int    `json:"slots"`
	CreatedBy     string `json:"created_by"`
	Status        string `json:"status,omitempty"`
}

// ParticipationRow mirrors the remote training_participation table.
type ParticipationRow struct {
	ID             int64  `json:"id,omitempty"`
	TrainingID     int64  `json:"training_id"`
	ResidentID     int64  `json:"resident_id"`
	Attendance     string `json:"attendance_status"`
	DateRegistered string `json:"date_registered,omitempty"`
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Model converts a job row into the store-agnostic record.
func (r JobRow) Model() models.Job {
	return models.Job{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		PostedBy:    r.PostedBy,
		Status:      models.JobStatus(r.Status),
		DatePosted:  parseTimestamp(r.DatePosted),
	}
}

// Model converts an application row into the store-agnostic record.
func (r ApplicationRow) Model() models.JobApplication {
	return models.JobApplication{
		ID:          r.ID,
		ResidentID:  r.ResidentID,
		JobID:       r.JobID,
		Status:      models.ApplicationStatus(r.Status),
		DateApplied: parseTimestamp(r.DateApplied),
	}
}

// Model converts a training row into the store-agnostic record.
func (r TrainingRow) Model() models.Training {
	status := r.Status
	if status == "" {
		status = string(models.TrainingUpcoming)
	}
	return models.Training{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		DateScheduled: r.DateScheduled,
		Location:      r.Location,
		Slots:         r.Slots,
		CreatedBy:     r.CreatedBy,
		Status:        models.TrainingStatus(status),
	}
}

// Model converts a participation row into the store-agnostic record.
func (r ParticipationRow) Model() models.TrainingParticipation {
	return models.TrainingParticipation{
		ID:             r.ID,
		TrainingID:     r.TrainingID,
		ResidentID:     r.ResidentID,
		Attendance:     models.AttendanceStatus(r.Attendance),
		DateRegistered: parseTimestamp(r.DateRegistered),
	}
}

// --- Typed table stores ---

// Accounts wraps the remote user_account table.
type Accounts struct{ c *Client }

// Residents wraps the remote resident table.
type Residents struct{ c *Client }

// Jobs wraps the remote jobs, skill_list and job_skill_list tables.
type Jobs struct{ c *Client }

// ResidentSkills wraps the remote resident_skills join table.
type ResidentSkills struct{ c *Client }

// Applications wraps the remote JobApplication table.
type Applications struct{ c *Client }

// Trainings wraps the remote training and training_participation tables.
type Trainings struct{ c *Client }

func (c *Client) Accounts() *Accounts             { return &Accounts{c: c} }
func (c *Client) Residents() *Residents           { return &Residents{c: c} }
func (c *Client) Jobs() *Jobs                     { return &Jobs{c: c} }
func (c *Client) ResidentSkills() *ResidentSkills { return &ResidentSkills{c: c} }
func (c *Client) Applications() *Applications     { return &Applications{c: c} }
func (c *Client) Trainings() *Trainings           { return &Trainings{c: c} }

// GetByUsername looks up an account row by its natural key.
func (a *Accounts) GetByUsername(ctx context.Context, username string) (*AccountRow, error) {
	var row AccountRow
	err := a.c.Table("user_account").Eq("username", username).Order("id", true).Single(ctx, &row)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a new account row with the given role.
func (a *Accounts) Create(ctx context.Context, username, role string) (*AccountRow, error) {
	var created AccountRow
	err := a.c.Table("user_account").Insert(ctx, AccountRow{Username: username, Role: role}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetByEmail looks up a resident row by email, most recent (highest id) first.
func (r *Residents) GetByEmail(ctx context.Context, email string) (*ResidentRow, error) {
	var row ResidentRow
	err := r.c.Table("resident").
		Eq("email", strings.ToLower(strings.TrimSpace(email))).
		Order("id", true).
		Single(ctx, &row)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetByID looks up one resident row.
func (r *Residents) GetByID(ctx context.Context, id int64) (*ResidentRow, error) {
	var row ResidentRow
	if err := r.c.Table("resident").Eq("id", id).Single(ctx, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

// GetByUserID looks up a resident row by its account linkage.
func (r *Residents) GetByUserID(ctx context.Context, userID int64) (*ResidentRow, error) {
	var row ResidentRow
	err := r.c.Table("resident").Eq("user_id", userID).Order("id", true).Single(ctx, &row)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Insert creates a resident row.
func (r *Residents) Insert(ctx context.Context, row ResidentRow) (*ResidentRow, error) {
	if row.DateRegistered == "" {
		row.DateRegistered = time.Now().UTC().Format(time.RFC3339)
	}
	row.Email = strings.ToLower(strings.TrimSpace(row.Email))
	var created ResidentRow
	if err := r.c.Table("resident").Insert(ctx, row, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// SetUserID backfills the account linkage in place.
func (r *Residents) SetUserID(ctx context.Context, id, userID int64) error {
	return r.c.Table("resident").Eq("id", id).Update(ctx, map[string]int64{"user_id": userID}, nil)
}

// List returns every resident row (id, user_id and email only).
func (r *Residents) List(ctx context.Context) ([]ResidentRow, error) {
	var rows []ResidentRow
	err := r.c.Table("resident").Select("id,user_id,email").Get(ctx, &rows)
	return rows, err
}

// Delete removes one resident row by id.
func (r *Residents) Delete(ctx context.Context, id int64) error {
	n, err := r.c.Table("resident").Eq("id", id).Delete(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoRows
	}
	return nil
}

// Insert creates a job posting.
func (j *Jobs) Insert(ctx context.Context, row JobRow) (*JobRow, error) {
	if row.DatePosted == "" {
		row.DatePosted = time.Now().UTC().Format(time.RFC3339)
	}
	if row.Status == "" {
		row.Status = string(models.JobStatusOpen)
	}
	var created JobRow
	if err := j.c.Table("jobs").Insert(ctx, row, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// List returns every job posting.
func (j *Jobs) List(ctx context.Context) ([]JobRow, error) {
	var rows []JobRow
	err := j.c.Table("jobs").Order("dateposted", true).Get(ctx, &rows)
	return rows, err
}

// GetByID returns one job posting.
func (j *Jobs) GetByID(ctx context.Context, id int64) (*JobRow, error) {
	var row JobRow
	if err := j.c.Table("jobs").Eq("JobID", id).Single(ctx, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

// SetStatus opens or closes a posting.
func (j *Jobs) SetStatus(ctx context.Context, id int64, status string) (*JobRow, error) {
	var updated JobRow
	err := j.c.Table("jobs").Eq("JobID", id).Update(ctx, map[string]string{"Status": status}, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// LinkSkills attaches required skills to a posting, one join row per skill.
func (j *Jobs) LinkSkills(ctx context.Context, jobID int64, skillIDs []int64) error {
	for _, skillID := range skillIDs {
		row := JobSkillRow{
			ID:        uuid.NewString(),
			JobID:     jobID,
			SkillID:   skillID,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := j.c.Table("job_skill_list").Insert(ctx, row, nil); err != nil {
			return err
		}
	}
	return nil
}

// SkillLinks returns all job-to-skill join rows.
func (j *Jobs) SkillLinks(ctx context.Context) ([]JobSkillRow, error) {
	var rows []JobSkillRow
	err := j.c.Table("job_skill_list").Select("job_id,skill_id").Get(ctx, &rows)
	return rows, err
}

// SkillVocabulary returns the remote skill reference table.
func (j *Jobs) SkillVocabulary(ctx context.Context) ([]SkillListRow, error) {
	var rows []SkillListRow
	err := j.c.Table("skill_list").Select("SkillID,SkillName").Get(ctx, &rows)
	return rows, err
}

// SkillIDs returns the set of skill ids a resident has declared.
func (rs *ResidentSkills) SkillIDs(ctx context.Context, residentID int64) (map[int64]struct{}, error) {
	var rows []ResidentSkillRow
	err := rs.c.Table("resident_skills").Select("skill_id").Eq("resident_id", residentID).Get(ctx, &rows)
	if err != nil {
		return nil, err
	}
	ids := make(map[int64]struct{}, len(rows))
	for _, row := range rows {
		ids[row.SkillID] = struct{}{}
	}
	return ids, nil
}

// Add links a skill to a resident in the remote mirror.
func (rs *ResidentSkills) Add(ctx context.Context, residentID, skillID int64) error {
	return rs.c.Table("resident_skills").Insert(ctx, ResidentSkillRow{ResidentID: residentID, SkillID: skillID}, nil)
}

// Remove unlinks a skill from a resident in the remote mirror.
func (rs *ResidentSkills) Remove(ctx context.Context, residentID, skillID int64) error {
	_, err := rs.c.Table("resident_skills").
		Eq("resident_id", residentID).
		Eq("skill_id", skillID).
		Delete(ctx)
	return err
}

// Exists reports whether the resident already applied for the job.
func (a *Applications) Exists(ctx context.Context, residentID, jobID int64) (bool, error) {
	var rows []ApplicationRow
	err := a.c.Table("JobApplication").
		Select("ApplicationID").
		Eq("ResidentID", residentID).
		Eq("JobID", jobID).
		Get(ctx, &rows)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// Insert files a new application.
func (a *Applications) Insert(ctx context.Context, residentID, jobID int64) (*ApplicationRow, error) {
	row := ApplicationRow{
		ResidentID:  residentID,
		JobID:       jobID,
		Status:      string(models.ApplicationPending),
		DateApplied: time.Now().UTC().Format(time.RFC3339),
	}
	var created ApplicationRow
	if err := a.c.Table("JobApplication").Insert(ctx, row, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetByID returns one application.
func (a *Applications) GetByID(ctx context.Context, id int64) (*ApplicationRow, error) {
	var row ApplicationRow
	if err := a.c.Table("JobApplication").Eq("ApplicationID", id).Single(ctx, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

// ListByResident returns a resident's applications.
func (a *Applications) ListByResident(ctx context.Context, residentID int64) ([]ApplicationRow, error) {
	var rows []ApplicationRow
	err := a.c.Table("JobApplication").Eq("ResidentID", residentID).Get(ctx, &rows)
	return rows, err
}

// ListByJob returns every application for a job.
func (a *Applications) ListByJob(ctx context.Context, jobID int64) ([]ApplicationRow, error) {
	var rows []ApplicationRow
	err := a.c.Table("JobApplication").Eq("JobID", jobID).Get(ctx, &rows)
	return rows, err
}

// SetStatus records a decision on an application.
func (a *Applications) SetStatus(ctx context.Context, id int64, status string) (*ApplicationRow, error) {
	var updated ApplicationRow
	err := a.c.Table("JobApplication").
		Eq("ApplicationID", id).
		Update(ctx, map[string]string{"ApplicationStatus": status}, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Insert creates a training announcement. Slot count defaults to 20.
func (t *Trainings) Insert(ctx context.Context, row TrainingRow) (*TrainingRow, error) {
	if row.Slots == 0 {
		row.Slots = 20
	}
	if row.Status == "" {
		row.Status = string(models.TrainingUpcoming)
	}
	var created TrainingRow
	if err := t.c.Table("training").Insert(ctx, row, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// List returns every training, newest first.
func (t *Trainings) List(ctx context.Context) ([]TrainingRow, error) {
	var rows []TrainingRow
	err := t.c.Table("training").Order("id", true).Get(ctx, &rows)
	return rows, err
}

// GetByID returns one training.
func (t *Trainings) GetByID(ctx context.Context, id int64) (*TrainingRow, error) {
	var row TrainingRow
	if err := t.c.Table("training").Eq("id", id).Single(ctx, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

// Participants returns the registrations for one training.
func (t *Trainings) Participants(ctx context.Context, trainingID int64) ([]ParticipationRow, error) {
	var rows []ParticipationRow
	err := t.c.Table("training_participation").Eq("training_id", trainingID).Get(ctx, &rows)
	return rows, err
}

// IsRegistered reports whether a resident already registered for a training.
func (t *Trainings) IsRegistered(ctx context.Context, trainingID, residentID int64) (bool, error) {
	var rows []ParticipationRow
	err := t.c.Table("training_participation").
		Select("id").
		Eq("training_id", trainingID).
		Eq("resident_id", residentID).
		Get(ctx, &rows)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// Register files a new participation.
func (t *Trainings) Register(ctx context.Context, trainingID, residentID int64) (*ParticipationRow, error) {
	row := ParticipationRow{
		TrainingID:     trainingID,
		ResidentID:     residentID,
		Attendance:     string(models.AttendanceRegistered),
		DateRegistered: time.Now().UTC().Format(time.RFC3339),
	}
	var created ParticipationRow
	if err := t.c.Table("training_participation").Insert(ctx, row, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Participation returns one registration by id.
func (t *Trainings) Participation(ctx context.Context, id int64) (*ParticipationRow, error) {
	var row ParticipationRow
	if err := t.c.Table("training_participation").Eq("id", id).Single(ctx, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

// SetAttendance updates a participation's attendance status.
func (t *Trainings) SetAttendance(ctx context.Context, participationID int64, attendance string) (*ParticipationRow, error) {
	var updated ParticipationRow
	err := t.c.Table("training_participation").
		Eq("id", participationID).
		Update(ctx, map[string]string{"attendance_status": attendance}, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
