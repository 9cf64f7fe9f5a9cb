package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moto-club.backend/internal/domain/entities"
)

type leaderboardServiceStub struct {
	limits []int
}

func (s *leaderboardServiceStub) GetLeaderboard(_ context.Context, limit int) ([]entities.LeaderboardEntry, error) {
	s.limits = append(s.limits, limit)
	return []entities.LeaderboardEntry{{Rank: 1, RidesConducted: 2, Score: 230}}, nil
}

func TestLeaderboardHandler_GetLeaderboard(t *testing.T) {
	stub := &leaderboardServiceStub{}
	r := gin.New()
	r.GET("/leaderboard", NewLeaderboardHandler(stub).GetLeaderboard)

	w := serve(r, newRequest(http.MethodGet, "/leaderboard"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rank":1`)

	w = serve(r, newRequest(http.MethodGet, "/leaderboard?limit=5"))
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(r, newRequest(http.MethodGet, "/leaderboard?limit=lots"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, []int{0, 5}, stub.limits)
}
