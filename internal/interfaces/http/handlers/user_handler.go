package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"moto-club.backend/internal/domain/entities"
	"moto-club.backend/internal/interfaces/http/response"
)

// ProfileService reads and edits the caller's own profile.
type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*entities.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input entities.UpdateProfileInput) (*entities.User, error)
}

// AchievementService lists badges.
type AchievementService interface {
	ListCatalog(ctx context.Context) ([]*entities.Achievement, error)
	ListUserAchievements(ctx context.Context, userID uuid.UUID) ([]*entities.EarnedAchievement, error)
}

// UserHandler handles /users/me and the achievement catalog
type UserHandler struct {
	profiles     ProfileService
	achievements AchievementService
}

// NewUserHandler creates a new user handler
func NewUserHandler(profiles ProfileService, achievements AchievementService) *UserHandler {
	return &UserHandler{profiles: profiles, achievements: achievements}
}

// GetMe returns the current user
// GET /api/v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	user, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// UpdateMe edits name, city, bike model or avatar
// PATCH /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var input entities.UpdateProfileInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.profiles.UpdateProfile(c.Request.Context(), userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Profile updated successfully!",
		"user":    user,
	})
}

// ListMyAchievements
// GET /api/v1/users/me/achievements
func (h *UserHandler) ListMyAchievements(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	earned, err := h.achievements.ListUserAchievements(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, earned)
}

// ListAchievements returns the badge catalog
// GET /api/v1/achievements
func (h *UserHandler) ListAchievements(c *gin.Context) {
	catalog, err := h.achievements.ListCatalog(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, catalog)
}
