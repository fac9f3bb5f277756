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

// JobHandler holds the job service dependency.
type JobHandler struct {
	service   services.JobService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(service services.JobService, validate *validator.Validate, logger *zap.Logger) *JobHandler {
	return &JobHandler{service: service, validator: validate, logger: logger}
}

// PostJob godoc
// @Summary      Post a job
// @Description  Officials publish a posting with its required skills.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        job body      dto.CreateJobRequest true "Job posting"
// @Success      201  {object}  models.Job
// @Failure      400  {object}  map[string]string{error=string} "Bad Request"
// @Router       /jobs [post]
func (h *JobHandler) PostJob(c *gin.Context) {
	var req dto.CreateJobRequest
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
	req.PostedBy = claims.Username

	job, err := h.service.Post(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to post job")
		return
	}
	c.JSON(http.StatusCreated, job)
}

// GetJobs godoc
// @Summary      List open jobs with recommendations
// @Description  Returns every open posting and, for residents, the subset matching their declared skills.
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{} "jobs and recommended"
// @Router       /jobs [get]
func (h *JobHandler) GetJobs(c *gin.Context) {
	email := ""
	if claims, err := middleware.GetClaimsFromContext(c); err == nil {
		email = claims.Email
	}

	all, recommended, err := h.service.ListForResident(c.Request.Context(), email)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to retrieve jobs")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"jobs":        all,
		"recommended": recommended,
	})
}

// GetJobByID godoc
// @Summary      Get a job by ID
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  models.Job
// @Failure      404  {object}  map[string]string{error=string} "Not Found"
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetJobByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	job, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to retrieve job")
		return
	}
	c.JSON(http.StatusOK, job)
}

// UpdateJobStatus godoc
// @Summary      Open or close a posting
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      int                        true "Job ID"
// @Param        status body      dto.UpdateJobStatusRequest true "New status"
// @Success      200  {object}  models.Job
// @Failure      400  {object}  map[string]string{error=string} "Bad Request"
// @Router       /jobs/{id}/status [put]
func (h *JobHandler) UpdateJobStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.JobID = id

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

	job, err := h.service.SetStatus(c.Request.Context(), &req, claims.Username)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to update job status")
		return
	}
	c.JSON(http.StatusOK, job)
}
