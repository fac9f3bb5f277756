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

// TrainingHandler holds the training service dependency.
type TrainingHandler struct {
	service   services.TrainingService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTrainingHandler creates a new TrainingHandler.
func NewTrainingHandler(service services.TrainingService, validate *validator.Validate, logger *zap.Logger) *TrainingHandler {
	return &TrainingHandler{service: service, validator: validate, logger: logger}
}

// PostTraining godoc
// @Summary      Announce a training
// @Tags         trainings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        training body      dto.CreateTrainingRequest true "Training"
// @Success      201  {object}  models.Training
// @Router       /trainings [post]
func (h *TrainingHandler) PostTraining(c *gin.Context) {
	var req dto.CreateTrainingRequest
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
	req.CreatedBy = claims.Username

	training, err := h.service.Post(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to post training")
		return
	}
	c.JSON(http.StatusCreated, training)
}

// GetTrainings godoc
// @Summary      List trainings with seat availability
// @Tags         trainings
// @Produce      json
// @Success      200  {array}   models.Training
// @Router       /trainings [get]
func (h *TrainingHandler) GetTrainings(c *gin.Context) {
	trainings, err := h.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to retrieve trainings")
		return
	}
	c.JSON(http.StatusOK, trainings)
}

// GetTrainingByID godoc
// @Summary      Get a training by ID
// @Tags         trainings
// @Produce      json
// @Param        id   path      int  true  "Training ID"
// @Success      200  {object}  models.Training
// @Failure      404  {object}  map[string]string{error=string} "Not Found"
// @Router       /trainings/{id} [get]
func (h *TrainingHandler) GetTrainingByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	training, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to retrieve training")
		return
	}
	c.JSON(http.StatusOK, training)
}

// RegisterForTraining godoc
// @Summary      Register for a training
// @Description  Signs the authenticated resident up while seats remain.
// @Tags         trainings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Training ID"
// @Success      201  {object}  models.TrainingParticipation
// @Failure      409  {object}  map[string]string{error=string} "Full or already registered"
// @Router       /trainings/{id}/register [post]
func (h *TrainingHandler) RegisterForTraining(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	claims, err := middleware.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	req := dto.RegisterForTrainingRequest{
		TrainingID: id,
		Username:   claims.Username,
		Email:      claims.Email,
	}
	participation, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to register")
		return
	}
	c.JSON(http.StatusCreated, participation)
}

// UpdateAttendance godoc
// @Summary      Update a participation's attendance
// @Tags         trainings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      int                         true "Participation ID"
// @Param        attendance body      dto.UpdateAttendanceRequest true "Attendance"
// @Success      200  {object}  models.TrainingParticipation
// @Failure      400  {object}  map[string]string{error=string} "Invalid transition"
// @Router       /participations/{id}/attendance [put]
func (h *TrainingHandler) UpdateAttendance(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.ParticipationID = id

	if err := h.validator.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": formatValidationErrors(validationErrors)})
		return
	}

	participation, err := h.service.SetAttendance(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to update attendance")
		return
	}
	c.JSON(http.StatusOK, participation)
}
