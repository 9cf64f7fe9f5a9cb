package repositories

import (
	"context"

	"github.com/google/uuid"
	"moto-club.backend/internal/domain/entities"
)

// AchievementRepository defines badge catalog and earned badge operations
type AchievementRepository interface {
	GetByName(ctx context.Context, name string) (*entities.Achievement, error)
	List(ctx context.Context) ([]*entities.Achievement, error)
	HasEarned(ctx context.Context, userID, achievementID uuid.UUID) (bool, error)
	// CreateEarned returns ErrAlreadyExists when the (user, achievement) pair is already stored.
	CreateEarned(ctx context.Context, ua *entities.UserAchievement) error
	ListEarned(ctx context.Context, userID uuid.UUID) ([]*entities.EarnedAchievement, error)
}
