package handlers

import (
	"io"
	"net/http"

	"skillbridge/internal/api/middleware"
	"skillbridge/internal/services"
	"skillbridge/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"go.uber.org/zap"
)

const maxProofUploadBytes = 5 << 20

// ResidentHandler holds the resident service dependency.
type ResidentHandler struct {
	service   services.ResidentService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewResidentHandler creates a new ResidentHandler.
func NewResidentHandler(service services.ResidentService, validate *validator.Validate, logger *zap.Logger) *ResidentHandler {
	return &ResidentHandler{service: service, validator: validate, logger: logger}
}

// GetResidents godoc
// @Summary      List all residents
// @Tags         residents
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.Resident
// @Failure      500  {object}  map[string]string{error=string} "Internal Server Error"
// @Router       /residents [get]
func (h *ResidentHandler) GetResidents(c *gin.Context) {
	residents, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to retrieve residents")
		return
	}
	c.JSON(http.StatusOK, residents)
}

// GetResidentByID godoc
// @Summary      Get a resident by ID
// @Tags         residents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Resident ID"
// @Success      200  {object}  models.Resident
// @Failure      404  {object}  map[string]string{error=string} "Not Found"
// @Router       /residents/{id} [get]
func (h *ResidentHandler) GetResidentByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resident, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to retrieve resident")
		return
	}
	c.JSON(http.StatusOK, resident)
}

// GetOwnProfile godoc
// @Summary      Get the caller's profile
// @Tags         residents
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.Resident
// @Failure      404  {object}  map[string]string{error=string} "Not Found"
// @Router       /residents/me [get]
func (h *ResidentHandler) GetOwnProfile(c *gin.Context) {
	claims, err := middleware.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	resident, err := h.service.GetByEmail(c.Request.Context(), claims.Email)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to retrieve profile")
		return
	}
	c.JSON(http.StatusOK, resident)
}

// UpdateResident godoc
// @Summary      Update a resident profile
// @Tags         residents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                       true "Resident ID"
// @Param        resident body      dto.UpdateResidentRequest true "Fields to update"
// @Success      200  {object}  models.Resident
// @Failure      400  {object}  map[string]string{error=string} "Bad Request"
// @Failure      404  {object}  map[string]string{error=string} "Not Found"
// @Router       /residents/{id} [put]
func (h *ResidentHandler) UpdateResident(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.ID = id

	if err := h.validator.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": formatValidationErrors(validationErrors)})
		return
	}

	resident, err := h.service.Update(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to update resident")
		return
	}
	c.JSON(http.StatusOK, resident)
}

// VerifyResident godoc
// @Summary      Decide a resident's verification
// @Description  Officials mark a pending resident Verified or Rejected.
// @Tags         residents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                       true "Resident ID"
// @Param        decision body      dto.VerifyResidentRequest true "Decision"
// @Success      200  {object}  models.Resident
// @Failure      400  {object}  map[string]string{error=string} "Invalid transition"
// @Failure      404  {object}  map[string]string{error=string} "Not Found"
// @Router       /residents/{id}/verify [post]
func (h *ResidentHandler) VerifyResident(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.VerifyResidentRequest
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

	claims, err := middleware.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	resident, err := h.service.Verify(c.Request.Context(), &req, claims.Username)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to record decision")
		return
	}
	c.JSON(http.StatusOK, resident)
}

// UploadProof godoc
// @Summary      Upload proof of residency
// @Description  Stores the document in the hosted bucket and records its public URL.
// @Tags         residents
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int   true "Resident ID"
// @Param        file  formData  file  true "Document (max 5MB)"
// @Success      200  {object}  models.Resident
// @Failure      400  {object}  map[string]string{error=string} "Bad Request"
// @Router       /residents/{id}/proof [post]
func (h *ResidentHandler) UploadProof(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A 'file' form field is required"})
		return
	}
	if fileHeader.Size > maxProofUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 5MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxProofUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	resident, err := h.service.AttachProof(c.Request.Context(), id, fileHeader.Filename, contentType, data)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to store proof of residency")
		return
	}
	c.JSON(http.StatusOK, resident)
}
