package usecases

import (
	"context"

	"github.com/google/uuid"
	"moto-club.backend/internal/domain/entities"
	domainerrors "moto-club.backend/internal/domain/errors"
	"moto-club.backend/internal/domain/repositories"
)

// UserUsecase serves the caller's own profile
type UserUsecase struct {
	userRepo repositories.UserRepository
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo repositories.UserRepository) *UserUsecase {
	return &UserUsecase{userRepo: userRepo}
}

// GetProfile returns the member behind the token
func (u *UserUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "User not found.", domainerrors.ErrUserNotFound)
	}
	return user, nil
}

// UpdateProfile applies the supplied self-service fields
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, input entities.UpdateProfileInput) (*entities.User, error) {
	if input.IsEmpty() {
		return nil, domainerrors.BadRequest("No profile fields provided.")
	}

	user, err := u.userRepo.UpdateProfile(ctx, userID, input)
	if err != nil {
		return nil, notFound(err, "User not found.", domainerrors.ErrUserNotFound)
	}
	return user, nil
}
