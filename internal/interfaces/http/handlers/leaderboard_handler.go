package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerrors "moto-club.backend/internal/domain/errors"
	"moto-club.backend/internal/domain/entities"
	"moto-club.backend/internal/interfaces/http/response"
)

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, limit int) ([]entities.LeaderboardEntry, error)
}

// LeaderboardHandler handles the captain leaderboard
type LeaderboardHandler struct {
	leaderboardService LeaderboardService
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardService LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// GetLeaderboard
// GET /api/v1/leaderboard?limit=
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.Error(c, domainerrors.BadRequest("limit must be a positive integer."))
			return
		}
		limit = n
	}

	entries, err := h.leaderboardService.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, entries)
}
