package repositories

import (
	"context"

	"github.com/google/uuid"
	"moto-club.backend/internal/domain/entities"
)

// AlertRepository defines system alert operations
type AlertRepository interface {
	Create(ctx context.Context, alert *entities.SystemAlert) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.SystemAlert, error)
	// List orders Critical first then newest; closed alerts only when includeClosed.
	List(ctx context.Context, includeClosed bool) ([]*entities.SystemAlert, error)
	UpdateStatus(ctx context.Context, alert *entities.SystemAlert) error
	CountOpen(ctx context.Context) (int64, error)
}
