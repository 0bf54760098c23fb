package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/upac/carnet-backend/internal/app/models"
	"github.com/upac/carnet-backend/internal/app/models/dto"
	"github.com/upac/carnet-backend/internal/app/services"
	"github.com/upac/carnet-backend/internal/middleware"
	"github.com/upac/carnet-backend/internal/pkg/apperrors"
)

// AuthController handles login, logout and password operations
type AuthController struct {
	authService *services.AuthService
	credentials *services.CredentialService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(
	authService *services.AuthService,
	credentials *services.CredentialService,
	logger zerolog.Logger,
) *AuthController {
	return &AuthController{
		authService: authService,
		credentials: credentials,
		logger:      logger,
	}
}

// Login authenticates a student or staff member
// @Summary Log in
// @Description Authenticates a student (by code) or staff member (by email) and returns a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse} "Session created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials or inactive card"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	session, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      session,
		Timestamp: time.Now(),
	})
}

// Logout revokes the caller's session
// @Summary Log out
// @Description Revokes the current session. Logging out twice succeeds quietly.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Session revoked"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	sessionID := ctx.GetString(middleware.ContextSessionID)

	if err := c.authService.Logout(ctx.Request.Context(), sessionID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Session revoked",
		Timestamp: time.Now(),
	})
}

// ChangePassword is the caller's self-service password change
// @Summary Change own password
// @Description Changes the caller's password after verifying the current one. Clears the first-login flag for students.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.APIResponse "Password changed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Current password is wrong"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/password [put]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	role := ctx.GetString(middleware.ContextRole)
	identifier := ctx.GetString(middleware.ContextIdentifier)

	var err error
	switch models.Role(role) {
	case models.RoleStudent:
		err = c.credentials.ChangeStudentPassword(ctx.Request.Context(), identifier, req.CurrentPassword, req.NewPassword)
	case models.RoleStaff:
		err = c.credentials.ChangeStaffPassword(ctx.Request.Context(), identifier, req.CurrentPassword, req.NewPassword)
	default:
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Unknown principal role"))
		return
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Password changed",
		Timestamp: time.Now(),
	})
}

// ResetStudentPassword is a staff-initiated password reset
// @Summary Reset a student's password
// @Description Staff reset: sets a new password and forces the student to change it on next login
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Student code"
// @Param request body dto.ResetPasswordRequest true "New password"
// @Success 200 {object} dto.APIResponse "Password reset"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Staff only"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{code}/password/reset [post]
func (c *AuthController) ResetStudentPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	code := ctx.Param("code")
	changedBy := ctx.GetString(middleware.ContextIdentifier)

	if err := c.credentials.ResetStudentPassword(ctx.Request.Context(), code, req.NewPassword, changedBy); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Password reset",
		Timestamp: time.Now(),
	})
}
