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
	"moto-club.backend/pkg/utils"
)

// AdminUsecase handles member administration
type AdminUsecase struct {
	userRepo repositories.UserRepository
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(userRepo repositories.UserRepository) *AdminUsecase {
	return &AdminUsecase{userRepo: userRepo}
}

// ListUsers returns members newest first with pagination metadata
func (u *AdminUsecase) ListUsers(ctx context.Context, filter entities.UserFilter, pagination utils.PaginationParams) ([]*entities.User, utils.PaginationMeta, error) {
	pagination = utils.GetPaginationParams(pagination.Page, pagination.Limit)

	users, total, err := u.userRepo.List(ctx, filter, pagination)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	if users == nil {
		users = []*entities.User{}
	}
	return users, utils.CalculateMeta(total, pagination.Page, pagination.Limit), nil
}

// VerifyUser marks a member as verified exactly once
func (u *AdminUsecase) VerifyUser(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "User not found.", domainerrors.ErrUserNotFound)
	}
	if user.IsVerified {
		return nil, alreadyVerified()
	}

	user, err = u.userRepo.MarkVerified(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyVerified) {
			return nil, alreadyVerified()
		}
		return nil, notFound(err, "User not found.", domainerrors.ErrUserNotFound)
	}

	logger.Info(ctx, "Member verified", zap.String("user_id", userID.String()))
	return user, nil
}

// UpdateSafetyRating sets a member's 1..5 rating; the last write wins.
func (u *AdminUsecase) UpdateSafetyRating(ctx context.Context, userID uuid.UUID, rating int) (*entities.User, error) {
	if rating < 1 || rating > 5 {
		return nil, domainerrors.Validation(map[string]string{
			"safetyRating": "Safety rating must be between 1 and 5.",
		})
	}

	user, err := u.userRepo.UpdateSafetyRating(ctx, userID, rating)
	if err != nil {
		return nil, notFound(err, "User not found.", domainerrors.ErrUserNotFound)
	}
	return user, nil
}

func alreadyVerified() error {
	return domainerrors.Wrap(domainerrors.Conflict("User is already verified."), domainerrors.ErrAlreadyVerified)
}
