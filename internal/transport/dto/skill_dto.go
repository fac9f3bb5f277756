package dto

// CreateSkillRequest defines the structure for adding a skill to the vocabulary.
type CreateSkillRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty"`
}

// ResidentSkillRequest links or unlinks a skill for a resident.
type ResidentSkillRequest struct {
	ResidentID int64 `json:"resident_id" validate:"required"`
	SkillID    int64 `json:"skill_id" validate:"required"`
}
