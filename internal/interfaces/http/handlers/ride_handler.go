package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"moto-club.backend/internal/domain/entities"
	"moto-club.backend/internal/interfaces/http/response"
)

// RideService is the member-facing ride surface.
type RideService interface {
	CreateMicroRide(ctx context.Context, captainID uuid.UUID, input *entities.CreateRideInput) (*entities.Ride, error)
	ListRides(ctx context.Context) ([]*entities.RideSummary, error)
	GetRide(ctx context.Context, rideID uuid.UUID) (*entities.RideDetail, error)
	JoinRide(ctx context.Context, rideID, userID uuid.UUID) error
	LeaveRide(ctx context.Context, rideID, userID uuid.UUID) error
	AddPhoto(ctx context.Context, rideID, userID uuid.UUID, input *entities.AddPhotoInput) (*entities.RidePhoto, error)
	ListUserRides(ctx context.Context, userID uuid.UUID) ([]*entities.RideSummary, error)
}

// RideHandler handles ride endpoints
type RideHandler struct {
	rideService RideService
}

// NewRideHandler creates a new ride handler
func NewRideHandler(rideService RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// CreateRide proposes a micro-ride with the caller as captain
// POST /api/v1/rides
func (h *RideHandler) CreateRide(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var input entities.CreateRideInput
	if !bindJSON(c, &input) {
		return
	}

	ride, err := h.rideService.CreateMicroRide(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Micro-Ride created successfully!",
		"ride":    ride,
	})
}

// ListRides lists upcoming and ongoing rides
// GET /api/v1/rides
func (h *RideHandler) ListRides(c *gin.Context) {
	rides, err := h.rideService.ListRides(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, rides)
}

// GetRide returns a ride with its captain, participants and photos
// GET /api/v1/rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	rideID, ok := pathID(c, "id", "ride")
	if !ok {
		return
	}

	ride, err := h.rideService.GetRide(c.Request.Context(), rideID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, ride)
}

// JoinRide
// POST /api/v1/rides/:id/join
func (h *RideHandler) JoinRide(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	rideID, ok := pathID(c, "id", "ride")
	if !ok {
		return
	}

	if err := h.rideService.JoinRide(c.Request.Context(), rideID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Successfully joined the ride!"})
}

// LeaveRide
// POST /api/v1/rides/:id/leave
func (h *RideHandler) LeaveRide(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	rideID, ok := pathID(c, "id", "ride")
	if !ok {
		return
	}

	if err := h.rideService.LeaveRide(c.Request.Context(), rideID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Successfully left the ride."})
}

// AddPhoto attaches a photo to a ride the caller took part in
// POST /api/v1/rides/:id/photos
func (h *RideHandler) AddPhoto(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	rideID, ok := pathID(c, "id", "ride")
	if !ok {
		return
	}

	var input entities.AddPhotoInput
	if !bindJSON(c, &input) {
		return
	}

	photo, err := h.rideService.AddPhoto(c.Request.Context(), rideID, userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, photo)
}

// ListMyRides lists rides the caller captains or joined
// GET /api/v1/users/me/rides
func (h *RideHandler) ListMyRides(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	rides, err := h.rideService.ListUserRides(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, rides)
}
