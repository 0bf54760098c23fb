package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/upac/carnet-backend/internal/app/models/dto"
	"github.com/upac/carnet-backend/internal/app/services"
	"github.com/upac/carnet-backend/internal/middleware"
)

// CardController handles card scans, download permission and the dashboard
type CardController struct {
	cardService *services.CardService
}

// NewCardController creates a new CardController
func NewCardController(cardService *services.CardService) *CardController {
	return &CardController{
		cardService: cardService,
	}
}

// ValidateCard resolves a scanned card payload
// @Summary Validate a card scan
// @Description Resolves a scanned payload (or bare student code) to the student, the card's current status and the open loan count
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Param payload path string true "Scanned payload" example(UPAC-12300298)
// @Success 200 {object} dto.APIResponse{data=dto.CardValidationResponse} "Card validated"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cards/validate/{payload} [get]
func (c *CardController) ValidateCard(ctx *gin.Context) {
	result, err := c.cardService.ValidateScan(ctx.Request.Context(), ctx.Param("payload"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      result,
		Timestamp: time.Now(),
	})
}

// CardDownloadPermission reports whether a student may download their card
// @Summary Check card download permission
// @Description Reports whether the student may download their digital card. Open loans block the download.
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Param code path string true "Student code"
// @Success 200 {object} dto.APIResponse{data=dto.CardDownloadResponse} "Permission computed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not your record"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{code}/card/download [get]
func (c *CardController) CardDownloadPermission(ctx *gin.Context) {
	result, err := c.cardService.DownloadPermission(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      result,
		Timestamp: time.Now(),
	})
}

// Dashboard retrieves the staff dashboard summary
// @Summary Get the dashboard summary
// @Description Counts students per card status plus the open loan total, all against one reference instant
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse} "Summary computed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Staff only"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard [get]
func (c *CardController) Dashboard(ctx *gin.Context) {
	summary, err := c.cardService.DashboardSummary(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      summary,
		Timestamp: time.Now(),
	})
}
