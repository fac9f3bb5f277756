package handlers

import (
	"net/http"

	"skillbridge/internal/services"
	"skillbridge/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"go.uber.org/zap"
)

// SkillHandler holds the skill service dependency.
type SkillHandler struct {
	service   services.SkillService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSkillHandler creates a new SkillHandler.
func NewSkillHandler(service services.SkillService, validate *validator.Validate, logger *zap.Logger) *SkillHandler {
	return &SkillHandler{service: service, validator: validate, logger: logger}
}

// GetSkills godoc
// @Summary      List the skill vocabulary
// @Tags         skills
// @Produce      json
// @Success      200  {array}   models.Skill
// @Router       /skills [get]
func (h *SkillHandler) GetSkills(c *gin.Context) {
	skills, err := h.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to retrieve skills")
		return
	}
	c.JSON(http.StatusOK, skills)
}

// CreateSkill godoc
// @Summary      Add a skill to the vocabulary
// @Tags         skills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        skill body      dto.CreateSkillRequest true "Skill"
// @Success      201  {object}  models.Skill
// @Failure      409  {object}  map[string]string{error=string} "Skill already exists"
// @Router       /skills [post]
func (h *SkillHandler) CreateSkill(c *gin.Context) {
	var req dto.CreateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": formatValidationErrors(validationErrors)})
		return
	}

	skill, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to create skill")
		return
	}
	c.JSON(http.StatusCreated, skill)
}

// DeleteSkill godoc
// @Summary      Remove a skill from the vocabulary
// @Tags         skills
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Skill ID"
// @Success      204  {object}  nil
// @Failure      404  {object}  map[string]string{error=string} "Not Found"
// @Router       /skills/{id} [delete]
func (h *SkillHandler) DeleteSkill(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.logger, err, "Failed to delete skill")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetResidentSkills godoc
// @Summary      List a resident's declared skills
// @Tags         skills
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Resident ID"
// @Success      200  {array}   models.Skill
// @Router       /residents/{id}/skills [get]
func (h *SkillHandler) GetResidentSkills(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	skills, err := h.service.ListForResident(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to retrieve resident skills")
		return
	}
	c.JSON(http.StatusOK, skills)
}

// AddResidentSkill godoc
// @Summary      Declare a skill for a resident
// @Tags         skills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                      true "Resident ID"
// @Param        skill body      dto.ResidentSkillRequest true "Skill link"
// @Success      204  {object}  nil
// @Router       /residents/{id}/skills [post]
func (h *SkillHandler) AddResidentSkill(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ResidentSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.ResidentID = id

	if err := h.validator.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": formatValidationErrors(validationErrors)})
		return
	}

	if err := h.service.AddToResident(c.Request.Context(), &req); err != nil {
		respondServiceError(c, h.logger, err, "Failed to add resident skill")
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveResidentSkill godoc
// @Summary      Remove a declared skill from a resident
// @Tags         skills
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int  true  "Resident ID"
// @Param        skillId  path      int  true  "Skill ID"
// @Success      204  {object}  nil
// @Router       /residents/{id}/skills/{skillId} [delete]
func (h *SkillHandler) RemoveResidentSkill(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	skillID, ok := parseIDParam(c, "skillId")
	if !ok {
		return
	}
	req := dto.ResidentSkillRequest{ResidentID: id, SkillID: skillID}
	if err := h.service.RemoveFromResident(c.Request.Context(), &req); err != nil {
		respondServiceError(c, h.logger, err, "Failed to remove resident skill")
		return
	}
	c.Status(http.StatusNoContent)
}
