package handlers

import (
	"net/http"

	"skillbridge/internal/services"
	"skillbridge/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"go.uber.org/zap"
)

// AuthHandler holds the auth service dependency.
type AuthHandler struct {
	service   services.AuthService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.AuthService, validate *validator.Validate, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{service: service, validator: validate, logger: logger}
}

// Signup godoc
// @Summary      Register a new account
// @Description  Creates a login account and resident profile, and links the hosted store rows.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        signup body      dto.SignupRequest true "Signup payload"
// @Success      201  {object}  models.Account "Account created"
// @Failure      400  {object}  map[string]string{error=string} "Bad Request"
// @Failure      409  {object}  map[string]string{error=string} "Email or username already in use"
// @Failure      500  {object}  map[string]string{error=string} "Internal Server Error"
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": formatValidationErrors(validationErrors)})
		return
	}

	account, err := h.service.Signup(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to create account")
		return
	}
	c.JSON(http.StatusCreated, account)
}

// Login godoc
// @Summary      Log in
// @Description  Authenticates by username, falling back to the hosted auth service for accounts that only exist there.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login body      dto.LoginRequest true "Login payload"
// @Success      200  {object}  map[string]interface{} "Tokens and account"
// @Failure      401  {object}  map[string]string{error=string} "Invalid credentials"
// @Failure      500  {object}  map[string]string{error=string} "Internal Server Error"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": formatValidationErrors(validationErrors)})
		return
	}

	account, accessToken, refreshToken, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to log in")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"account":       account,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Refresh godoc
// @Summary      Rotate tokens
// @Description  Exchanges a refresh token for a new access/refresh pair.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        refresh body      dto.RefreshRequest true "Refresh payload"
// @Success      200  {object}  map[string]string "New token pair"
// @Failure      401  {object}  map[string]string{error=string} "Invalid or expired refresh token"
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": formatValidationErrors(validationErrors)})
		return
	}

	accessToken, refreshToken, err := h.service.Refresh(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to refresh tokens")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes a refresh token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        logout body      dto.LogoutRequest true "Logout payload"
// @Success      204  {object}  nil "Logged out"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := h.service.Logout(c.Request.Context(), &req); err != nil {
		respondServiceError(c, h.logger, err, "Failed to log out")
		return
	}
	c.Status(http.StatusNoContent)
}
