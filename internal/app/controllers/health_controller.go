package controllers

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/upac/carnet-backend/internal/app/models/dto"
)

// HealthController reports service liveness and host resource usage
type HealthController struct {
	db        *pgxpool.Pool
	startedAt time.Time
}

// NewHealthController creates a new HealthController
func NewHealthController(db *pgxpool.Pool) *HealthController {
	return &HealthController{
		db:        db,
		startedAt: time.Now(),
	}
}

// HealthResponse is the health endpoint payload.
type HealthResponse struct {
	Status            string  `json:"status" example:"ok"`
	Database          string  `json:"database" example:"up"`
	UptimeSeconds     int64   `json:"uptimeSeconds"`
	SystemMemoryTotal uint64  `json:"systemMemoryTotalBytes"`
	SystemMemoryUsed  uint64  `json:"systemMemoryUsedBytes"`
	ProcessRSS        uint64  `json:"processRssBytes"`
	SystemCPULoad     float64 `json:"systemCpuLoad"`
}

// Health reports service status
// @Summary Health check
// @Description Reports database connectivity, uptime and host resource usage
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse{data=controllers.HealthResponse} "Service healthy"
// @Success 503 {object} dto.APIResponse{data=controllers.HealthResponse} "Database unreachable"
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	resp := HealthResponse{
		Status:        "ok",
		Database:      "up",
		UptimeSeconds: int64(time.Since(c.startedAt).Seconds()),
	}

	status := http.StatusOK
	if err := c.db.Ping(ctx.Request.Context()); err != nil {
		resp.Status = "degraded"
		resp.Database = "down"
		status = http.StatusServiceUnavailable
	}

	if memStat, err := mem.VirtualMemory(); err == nil {
		resp.SystemMemoryTotal = memStat.Total
		resp.SystemMemoryUsed = memStat.Total - memStat.Available
	}
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if rss, err := proc.MemoryInfo(); err == nil && rss != nil {
			resp.ProcessRSS = rss.RSS
		}
	}
	if sysCPU, err := cpu.Percent(0, false); err == nil && len(sysCPU) > 0 {
		resp.SystemCPULoad = sysCPU[0] / 100.0
	}

	ctx.JSON(status, dto.APIResponse{
		Success:   status == http.StatusOK,
		Data:      resp,
		Timestamp: time.Now(),
	})
}
