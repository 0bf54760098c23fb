package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/upac/carnet-backend/internal/app/models/dto"
	"github.com/upac/carnet-backend/internal/app/services"
	"github.com/upac/carnet-backend/internal/middleware"
)

// StaffController handles staff account operations
type StaffController struct {
	staffService *services.StaffService
}

// NewStaffController creates a new StaffController
func NewStaffController(staffService *services.StaffService) *StaffController {
	return &StaffController{
		staffService: staffService,
	}
}

// CreateStaff handles staff account creation
// @Summary Create a staff account
// @Description Creates a staff account. Only institutional email addresses are accepted.
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStaffRequest true "Staff information"
// @Success 201 {object} dto.APIResponse{data=dto.StaffResponse} "Staff account created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or non-institutional email"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Staff only"
// @Failure 409 {object} dto.ErrorResponse "Staff email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staff [post]
func (c *StaffController) CreateStaff(ctx *gin.Context) {
	var req dto.CreateStaffRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	staff, err := c.staffService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      dto.NewStaffResponse(staff),
		Timestamp: time.Now(),
	})
}

// GetStaff retrieves a staff member by email
// @Summary Get staff details
// @Description Retrieves a staff account by email
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param email path string true "Staff email"
// @Success 200 {object} dto.APIResponse{data=dto.StaffResponse} "Staff retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Staff only"
// @Failure 404 {object} dto.ErrorResponse "Staff member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staff/{email} [get]
func (c *StaffController) GetStaff(ctx *gin.Context) {
	staff, err := c.staffService.Get(ctx.Request.Context(), ctx.Param("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.NewStaffResponse(staff),
		Timestamp: time.Now(),
	})
}

// ListStaff retrieves all staff members
// @Summary List staff
// @Description Retrieves all staff accounts sorted by name
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.StaffResponse} "Staff retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Staff only"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staff [get]
func (c *StaffController) ListStaff(ctx *gin.Context) {
	staff, err := c.staffService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.NewStaffListResponse(staff),
		Timestamp: time.Now(),
	})
}

// UpdateStaff updates a staff account
// @Summary Update a staff account
// @Description Updates a staff account. Email is the key and never changes.
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param email path string true "Staff email"
// @Param request body dto.UpdateStaffRequest true "Updated staff information"
// @Success 200 {object} dto.APIResponse{data=dto.StaffResponse} "Staff updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Staff only"
// @Failure 404 {object} dto.ErrorResponse "Staff member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staff/{email} [put]
func (c *StaffController) UpdateStaff(ctx *gin.Context) {
	var req dto.UpdateStaffRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	staff, err := c.staffService.Update(ctx.Request.Context(), ctx.Param("email"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.NewStaffResponse(staff),
		Timestamp: time.Now(),
	})
}

// DeleteStaff deletes a staff account
// @Summary Delete a staff account
// @Description Deletes a staff account. Loans the staff member registered keep their name snapshot.
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param email path string true "Staff email"
// @Success 200 {object} dto.APIResponse "Staff deleted successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Staff only"
// @Failure 404 {object} dto.ErrorResponse "Staff member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staff/{email} [delete]
func (c *StaffController) DeleteStaff(ctx *gin.Context) {
	if err := c.staffService.Delete(ctx.Request.Context(), ctx.Param("email")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Staff account deleted",
		Timestamp: time.Now(),
	})
}
