package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerrors "moto-club.backend/internal/domain/errors"
	"moto-club.backend/internal/domain/entities"
	"moto-club.backend/internal/interfaces/http/response"
	"moto-club.backend/pkg/utils"
)

// MemberService covers admin user management.
type MemberService interface {
	ListUsers(ctx context.Context, filter entities.UserFilter, pagination utils.PaginationParams) ([]*entities.User, utils.PaginationMeta, error)
	VerifyUser(ctx context.Context, userID uuid.UUID) (*entities.User, error)
	UpdateSafetyRating(ctx context.Context, userID uuid.UUID, rating int) (*entities.User, error)
}

// ModerationService covers ride approval.
type ModerationService interface {
	ListPendingRides(ctx context.Context) ([]*entities.RideSummary, error)
	ApproveRide(ctx context.Context, rideID uuid.UUID) (*entities.ModerationResult, error)
	RejectRide(ctx context.Context, rideID uuid.UUID, reason *string) (*entities.ModerationResult, error)
}

// AdminHandler handles admin member and ride moderation endpoints
type AdminHandler struct {
	members MemberService
	rides   ModerationService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(members MemberService, rides ModerationService) *AdminHandler {
	return &AdminHandler{members: members, rides: rides}
}

// ListUsers
// GET /api/v1/admin/users?search=&verified=&page=&limit=
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var pagination utils.PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid pagination parameters."))
		return
	}

	filter := entities.UserFilter{Search: strings.TrimSpace(c.Query("search"))}
	if raw := c.Query("verified"); raw != "" {
		verified, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("verified must be true or false."))
			return
		}
		filter.Verified = &verified
	}

	users, meta, err := h.members.ListUsers(c.Request.Context(), filter, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"users": users,
		"meta":  meta,
	})
}

// VerifyUser marks a member as verified
// PATCH /api/v1/admin/users/:id/verify
func (h *AdminHandler) VerifyUser(c *gin.Context) {
	userID, ok := pathID(c, "id", "user")
	if !ok {
		return
	}

	user, err := h.members.VerifyUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "User verified successfully!",
		"user":    user,
	})
}

// UpdateSafetyRating
// PATCH /api/v1/admin/users/:id/safety-rating
func (h *AdminHandler) UpdateSafetyRating(c *gin.Context) {
	userID, ok := pathID(c, "id", "user")
	if !ok {
		return
	}

	var input entities.SafetyRatingInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.members.UpdateSafetyRating(c.Request.Context(), userID, input.SafetyRating)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "User safety rating updated successfully!",
		"user":    user,
	})
}

// ListPendingRides lists rides awaiting moderation
// GET /api/v1/admin/rides/pending
func (h *AdminHandler) ListPendingRides(c *gin.Context) {
	rides, err := h.rides.ListPendingRides(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, rides)
}

// ApproveRide
// PATCH /api/v1/admin/rides/:id/approve
func (h *AdminHandler) ApproveRide(c *gin.Context) {
	rideID, ok := pathID(c, "id", "ride")
	if !ok {
		return
	}

	result, err := h.rides.ApproveRide(c.Request.Context(), rideID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Ride approved successfully!",
		"ride":    result,
	})
}

// RejectRide accepts an optional {reason} body
// PATCH /api/v1/admin/rides/:id/reject
func (h *AdminHandler) RejectRide(c *gin.Context) {
	rideID, ok := pathID(c, "id", "ride")
	if !ok {
		return
	}

	var input entities.RejectRideInput
	if c.Request.ContentLength != 0 && !bindJSON(c, &input) {
		return
	}

	result, err := h.rides.RejectRide(c.Request.Context(), rideID, input.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Ride rejected successfully!",
		"ride":    result,
	})
}
