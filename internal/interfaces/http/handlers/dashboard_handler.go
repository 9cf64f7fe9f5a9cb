package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"moto-club.backend/internal/domain/entities"
	"moto-club.backend/internal/interfaces/http/response"
)

// DashboardService computes the admin dashboard aggregates.
type DashboardService interface {
	GetStats(ctx context.Context) (*entities.DashboardStats, error)
	GetRecentRides(ctx context.Context) ([]entities.RecentRide, error)
	GetMonthlyRideVolume(ctx context.Context) ([]entities.MonthlyRideVolume, error)
	GetChapterActivity(ctx context.Context) ([]entities.ChapterActivity, error)
}

// DashboardHandler handles admin dashboard endpoints
type DashboardHandler struct {
	dashboardService DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats
// GET /api/v1/admin/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// GetRecentRides
// GET /api/v1/admin/dashboard/recent-rides
func (h *DashboardHandler) GetRecentRides(c *gin.Context) {
	rides, err := h.dashboardService.GetRecentRides(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, rides)
}

// GetMonthlyRideVolume
// GET /api/v1/admin/dashboard/monthly-rides-volume
func (h *DashboardHandler) GetMonthlyRideVolume(c *gin.Context) {
	volume, err := h.dashboardService.GetMonthlyRideVolume(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, volume)
}

// GetChapterActivity
// GET /api/v1/admin/dashboard/chapter-activity
func (h *DashboardHandler) GetChapterActivity(c *gin.Context) {
	chapters, err := h.dashboardService.GetChapterActivity(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, chapters)
}
