package repositories

import (
	"context"

	"github.com/google/uuid"
	"moto-club.backend/internal/domain/entities"
	"moto-club.backend/pkg/utils"
)

// UserRepository defines member data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input entities.UpdateProfileInput) (*entities.User, error)
	List(ctx context.Context, filter entities.UserFilter, pagination utils.PaginationParams) ([]*entities.User, int64, error)
	// MarkVerified flips is_verified only when it is still false; ErrAlreadyVerified otherwise.
	MarkVerified(ctx context.Context, id uuid.UUID) (*entities.User, error)
	UpdateSafetyRating(ctx context.Context, id uuid.UUID, rating int) (*entities.User, error)
	SetCaptain(ctx context.Context, id uuid.UUID) error
	CountByVerification(ctx context.Context) (total int64, verified int64, err error)
	CountByCity(ctx context.Context) (map[string]int64, error)
}
