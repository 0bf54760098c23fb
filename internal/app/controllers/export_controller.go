package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/upac/carnet-backend/internal/app/services"
	"github.com/upac/carnet-backend/internal/middleware"
)

// ExportController handles staff roster downloads
type ExportController struct {
	exportService *services.ExportService
}

// NewExportController creates a new ExportController
func NewExportController(exportService *services.ExportService) *ExportController {
	return &ExportController{
		exportService: exportService,
	}
}

// ExportStudentsJSON downloads the roster as JSON
// @Summary Export students as JSON
// @Description Downloads every student record as indented JSON, photo payloads included inline
// @Tags exports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.StudentResponse "Roster file"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Staff only"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exports/students.json [get]
func (c *ExportController) ExportStudentsJSON(ctx *gin.Context) {
	data, err := c.exportService.StudentsJSON(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="students.json"`)
	ctx.Data(http.StatusOK, "application/json", data)
}

// ExportStudentsCSV downloads the roster as CSV
// @Summary Export students as CSV
// @Description Downloads every student record in the legacy CSV shape: every value quoted, photos replaced by a placeholder
// @Tags exports
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "Roster file"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Staff only"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exports/students.csv [get]
func (c *ExportController) ExportStudentsCSV(ctx *gin.Context) {
	data, err := c.exportService.StudentsCSV(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="students.csv"`)
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
