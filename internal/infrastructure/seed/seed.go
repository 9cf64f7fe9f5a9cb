package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"moto-club.backend/internal/config"
	"moto-club.backend/internal/domain/entities"
	domainerrors "moto-club.backend/internal/domain/errors"
	"moto-club.backend/pkg/crypto"
	"moto-club.backend/pkg/logger"
	"moto-club.backend/pkg/utils"
)

// placeholder VIN for accounts that never registered a bike
const adminVIN = "00000000000000000"

type catalogWriter interface {
	UpsertCatalog(ctx context.Context, items []*entities.Achievement) error
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Create(ctx context.Context, user *entities.User) error
}

var hashPassword = crypto.HashPassword

// Achievements writes the badge catalog, updating rows that already exist by name.
func Achievements(ctx context.Context, w catalogWriter) error {
	catalog := entities.AchievementCatalog()
	if err := w.UpsertCatalog(ctx, catalog); err != nil {
		return fmt.Errorf("failed to seed achievements: %w", err)
	}
	logger.Info(ctx, "Achievement catalog seeded", zap.Int("count", len(catalog)))
	return nil
}

// Admin creates the bootstrap administrator when ADMIN_EMAIL and ADMIN_PASSWORD are set.
// It reports whether an account was created; an existing account is left untouched.
func Admin(ctx context.Context, users userStore, cfg config.SeedConfig) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" || cfg.AdminPassword == "" {
		return false, nil
	}

	_, err := users.GetByEmail(ctx, email)
	if err == nil {
		logger.Info(ctx, "Admin account already present", zap.String("email", email))
		return false, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return false, fmt.Errorf("failed to look up admin: %w", err)
	}

	hash, err := hashPassword(cfg.AdminPassword)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}

	name := cfg.AdminName
	if name == "" {
		name = "Club Admin"
	}
	admin := &entities.User{
		ID:           utils.GenerateUUIDv7(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		City:         "Headquarters",
		BikeModel:    "N/A",
		VIN:          adminVIN,
		IsAdmin:      true,
		IsVerified:   true,
	}
	if err := users.Create(ctx, admin); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create admin: %w", err)
	}

	logger.Info(ctx, "Admin account created", zap.String("email", email))
	return true, nil
}
