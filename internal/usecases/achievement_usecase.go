package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"moto-club.backend/internal/domain/entities"
	domainerrors "moto-club.backend/internal/domain/errors"
	"moto-club.backend/internal/domain/repositories"
	"moto-club.backend/pkg/logger"
	"moto-club.backend/pkg/metrics"
	"moto-club.backend/pkg/utils"
)

// AchievementUsecase grants and lists badges
type AchievementUsecase struct {
	achievementRepo repositories.AchievementRepository
}

// NewAchievementUsecase creates a new achievement usecase
func NewAchievementUsecase(achievementRepo repositories.AchievementRepository) *AchievementUsecase {
	return &AchievementUsecase{achievementRepo: achievementRepo}
}

// Award grants the named catalog badge to a user at most once.
// It reports true when the user holds the badge afterwards. A name missing from the catalog is
// logged and reported as false without an error so a ride approval is not blocked by it.
// Pass a transactional context to make the grant part of the caller's unit of work.
func (u *AchievementUsecase) Award(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	achievement, err := u.achievementRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			logger.Warn(ctx, "Achievement missing from catalog",
				zap.String("achievement", name),
				zap.String("user_id", userID.String()),
			)
			return false, nil
		}
		return false, err
	}

	earned, err := u.achievementRepo.HasEarned(ctx, userID, achievement.ID)
	if err != nil {
		return false, err
	}
	if earned {
		return true, nil
	}

	err = u.achievementRepo.CreateEarned(ctx, &entities.UserAchievement{
		ID:            utils.GenerateUUIDv7(),
		UserID:        userID,
		AchievementID: achievement.ID,
		DateEarned:    nowFunc(),
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return true, nil
		}
		return false, err
	}

	metrics.AchievementsAwarded.WithLabelValues(name).Inc()
	logger.Info(ctx, "Achievement awarded",
		zap.String("achievement", name),
		zap.String("user_id", userID.String()),
	)
	return true, nil
}

// ListCatalog returns every badge that can be earned
func (u *AchievementUsecase) ListCatalog(ctx context.Context) ([]*entities.Achievement, error) {
	return u.achievementRepo.List(ctx)
}

// ListUserAchievements returns the badges a user has earned, newest first
func (u *AchievementUsecase) ListUserAchievements(ctx context.Context, userID uuid.UUID) ([]*entities.EarnedAchievement, error) {
	return u.achievementRepo.ListEarned(ctx, userID)
}
