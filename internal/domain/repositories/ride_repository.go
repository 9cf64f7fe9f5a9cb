package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"moto-club.backend/internal/domain/entities"
)

// RideRepository defines ride, participation and photo operations
type RideRepository interface {
	Create(ctx context.Context, ride *entities.Ride) error
	// GetByID honours a WithLock context by reading the row FOR UPDATE.
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Ride, error)
	GetSummary(ctx context.Context, id uuid.UUID) (*entities.RideSummary, error)
	ListByStatuses(ctx context.Context, statuses []entities.RideStatus, orderBy RideOrder, limit int) ([]*entities.RideSummary, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*entities.RideSummary, error)
	ListScheduledBetween(ctx context.Context, from, to time.Time) ([]*entities.RideSummary, error)
	// TransitionStatus updates only when the current status equals from; false when no row matched.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to entities.RideStatus, reason *string) (bool, error)
	ListDueForTransition(ctx context.Context, status entities.RideStatus, scheduledBefore time.Time, limit int) ([]*entities.Ride, error)
	CountByStatus(ctx context.Context) (map[entities.RideStatus]int64, error)
	CaptainStats(ctx context.Context, statuses []entities.RideStatus) ([]entities.CaptainStats, error)

	AddParticipant(ctx context.Context, rideID, userID uuid.UUID, joinedAt time.Time) error
	RemoveParticipant(ctx context.Context, rideID, userID uuid.UUID) (bool, error)
	IsParticipant(ctx context.Context, rideID, userID uuid.UUID) (bool, error)
	ListParticipants(ctx context.Context, rideID uuid.UUID) ([]entities.Participant, error)

	AddPhoto(ctx context.Context, photo *entities.RidePhoto) error
	ListPhotos(ctx context.Context, rideID uuid.UUID) ([]entities.RidePhoto, error)
}

// RideOrder selects the sort of a ride listing.
type RideOrder int

const (
	RideOrderScheduleAsc RideOrder = iota
	RideOrderScheduleDesc
	RideOrderCreatedDesc
)
