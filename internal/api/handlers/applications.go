package handlers

import (
	"net/http"

	"skillbridge/internal/api/middleware"
	"skillbridge/internal/services"
	"skillbridge/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"go.uber.org/zap"
)

// ApplicationHandler holds the application service dependency.
type ApplicationHandler struct {
	service   services.ApplicationService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(service services.ApplicationService, validate *validator.Validate, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{service: service, validator: validate, logger: logger}
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Files an application for the authenticated resident. A missing profile is repaired rather than rejected.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        application body      dto.ApplyToJobRequest true "Application"
// @Success      201  {object}  models.JobApplication
// @Failure      409  {object}  map[string]string{error=string} "Already applied"
// @Router       /applications [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req dto.ApplyToJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": formatValidationErrors(validationErrors)})
		return
	}

	claims, err := middleware.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	req.Username = claims.Username
	req.Email = claims.Email

	application, err := h.service.Apply(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to file application")
		return
	}
	c.JSON(http.StatusCreated, application)
}

// GetOwnApplications godoc
// @Summary      List the caller's applications
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.JobApplication
// @Router       /applications/me [get]
func (h *ApplicationHandler) GetOwnApplications(c *gin.Context) {
	claims, err := middleware.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	applications, err := h.service.ListByResident(c.Request.Context(), claims.Email)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to retrieve applications")
		return
	}
	c.JSON(http.StatusOK, applications)
}

// GetApplicationsByJob godoc
// @Summary      List applications for a job
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Job ID"
// @Success      200  {array}   models.JobApplication
// @Router       /jobs/{id}/applications [get]
func (h *ApplicationHandler) GetApplicationsByJob(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	applications, err := h.service.ListByJob(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to retrieve applications")
		return
	}
	c.JSON(http.StatusOK, applications)
}

// DecideApplication godoc
// @Summary      Decide an application
// @Description  Officials move an application through Pending, Accepted/Rejected and Hired.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                                true "Application ID"
// @Param        decision body      dto.UpdateApplicationStatusRequest true "Decision"
// @Success      200  {object}  models.JobApplication
// @Failure      400  {object}  map[string]string{error=string} "Invalid transition"
// @Router       /applications/{id}/status [put]
func (h *ApplicationHandler) DecideApplication(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.ApplicationID = id

	if err := h.validator.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": formatValidationErrors(validationErrors)})
		return
	}

	claims, err := middleware.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	application, err := h.service.Decide(c.Request.Context(), &req, claims.Username)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to record decision")
		return
	}
	c.JSON(http.StatusOK, application)
}
