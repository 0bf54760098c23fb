package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/upac/carnet-backend/internal/app/models/dto"
	"github.com/upac/carnet-backend/internal/app/services"
	"github.com/upac/carnet-backend/internal/middleware"
)

// LoanController handles loan ledger operations
type LoanController struct {
	loanService  *services.LoanService
	staffService *services.StaffService
}

// NewLoanController creates a new LoanController
func NewLoanController(loanService *services.LoanService, staffService *services.StaffService) *LoanController {
	return &LoanController{
		loanService:  loanService,
		staffService: staffService,
	}
}

// RegisterLoan handles loan registration
// @Summary Register a loan
// @Description Registers a loan for a student. Library loans must name a catalog item; laboratory items are free text.
// @Tags loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegisterLoanRequest true "Loan information"
// @Success 201 {object} dto.APIResponse{data=dto.LoanResponse} "Loan registered successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Staff only"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans [post]
func (c *LoanController) RegisterLoan(ctx *gin.Context) {
	var req dto.RegisterLoanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	// The acting staff member's name is snapshotted onto the loan row.
	staff, err := c.staffService.Get(ctx.Request.Context(), ctx.GetString(middleware.ContextIdentifier))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	loan, err := c.loanService.Register(ctx.Request.Context(), &req, staff)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      dto.NewLoanResponse(loan, time.Now()),
		Timestamp: time.Now(),
	})
}

// ReturnLoan closes an active loan
// @Summary Return a loan
// @Description Marks an active loan as returned. Returning twice conflicts instead of re-stamping the return time.
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} dto.APIResponse{data=dto.LoanResponse} "Loan returned successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Staff only"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 409 {object} dto.ErrorResponse "Loan already returned"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans/{id}/return [post]
func (c *LoanController) ReturnLoan(ctx *gin.Context) {
	loan, err := c.loanService.Return(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.NewLoanResponse(loan, time.Now()),
		Timestamp: time.Now(),
	})
}

// GetLoan retrieves a loan by id
// @Summary Get loan details
// @Description Retrieves a single loan with its derived day counts
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} dto.APIResponse{data=dto.LoanResponse} "Loan retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans/{id} [get]
func (c *LoanController) GetLoan(ctx *gin.Context) {
	loan, err := c.loanService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.NewLoanResponse(loan, time.Now()),
		Timestamp: time.Now(),
	})
}

// ListLoans retrieves loan history
// @Summary List loans
// @Description Retrieves loan history, newest first, optionally filtered by student code, category or status
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param studentCode query string false "Filter by student code"
// @Param category query string false "Filter by category" Enums(library, laboratory)
// @Param status query string false "Filter by status" Enums(active, returned)
// @Success 200 {object} dto.APIResponse{data=[]dto.LoanResponse} "Loans retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans [get]
func (c *LoanController) ListLoans(ctx *gin.Context) {
	var filter dto.LoanFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	loans, err := c.loanService.History(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.NewLoanListResponse(loans, time.Now()),
		Timestamp: time.Now(),
	})
}

// ActiveLoansForStudent retrieves a student's open loans
// @Summary List a student's active loans
// @Description Retrieves the open loans of one student, newest first
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param code path string true "Student code"
// @Success 200 {object} dto.APIResponse{data=[]dto.LoanResponse} "Active loans retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not your record"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{code}/loans/active [get]
func (c *LoanController) ActiveLoansForStudent(ctx *gin.Context) {
	loans, err := c.loanService.ActiveForStudent(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.NewLoanListResponse(loans, time.Now()),
		Timestamp: time.Now(),
	})
}

// GetCatalog retrieves the library item catalog
// @Summary Get the library catalog
// @Description Retrieves the fixed list of item types a library loan may use
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.CatalogResponse} "Catalog retrieved successfully"
// @Router /loans/catalog [get]
func (c *LoanController) GetCatalog(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.CatalogResponse{Items: c.loanService.Catalog()},
		Timestamp: time.Now(),
	})
}
