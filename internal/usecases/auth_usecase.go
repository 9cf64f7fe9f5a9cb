package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"moto-club.backend/internal/domain/entities"
	domainerrors "moto-club.backend/internal/domain/errors"
	"moto-club.backend/internal/domain/repositories"
	"moto-club.backend/pkg/crypto"
	"moto-club.backend/pkg/jwt"
	"moto-club.backend/pkg/logger"
	"moto-club.backend/pkg/redis"
	"moto-club.backend/pkg/utils"
)

// SessionStore persists login sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error
	DeleteSession(ctx context.Context, sessionID string) error
}

var (
	hashPassword      = crypto.HashPassword
	generateSessionID = crypto.GenerateSessionID
)

// AuthUsecase handles signup, login and token refresh
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.JWTService
	sessions   SessionStore
	sessionTTL time.Duration
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	jwtService *jwt.JWTService,
	sessions SessionStore,
	sessionTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// Signup registers a member and issues a token pair
func (u *AuthUsecase) Signup(ctx context.Context, input *entities.SignupInput) (*entities.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	_, err := u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, emailTaken()
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := nowFunc()
	user := &entities.User{
		ID:           utils.GenerateUUIDv7(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: passwordHash,
		City:         strings.TrimSpace(input.City),
		BikeModel:    strings.TrimSpace(input.BikeModel),
		VIN:          strings.ToUpper(input.VIN),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, emailTaken()
		}
		return nil, err
	}

	pair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Member signed up", zap.String("user_id", user.ID.String()))
	return &entities.AuthResponse{
		Message:      "Signup successful!",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}, nil
}

// Login authenticates a member and returns tokens, optionally behind a Redis session
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, invalidCredentials()
	}

	pair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	resp := &entities.AuthResponse{
		Message: "Login successful!",
		User:    user,
	}

	if input.UseSession && u.sessions != nil {
		sessionID, err := generateSessionID()
		if err != nil {
			return nil, err
		}
		if err := u.sessions.CreateSession(ctx, sessionID, &redis.SessionData{
			UserID:       user.ID.String(),
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		}, u.sessionTTL); err != nil {
			return nil, err
		}
		resp.SessionID = sessionID
		return resp, nil
	}

	resp.AccessToken = pair.AccessToken
	resp.RefreshToken = pair.RefreshToken
	return resp, nil
}

// RefreshToken generates new tokens from a refresh token
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.Unauthorized("Invalid or expired refresh token."), err)
	}

	// the admin flag is re-read so promotions and demotions apply on refresh
	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("Invalid or expired refresh token.")
		}
		return nil, err
	}

	return u.jwtService.GenerateTokenPair(user.ID, user.Email, user.IsAdmin)
}

// Logout drops a Redis-backed session; token-only clients simply discard their tokens.
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" || u.sessions == nil {
		return nil
	}
	return u.sessions.DeleteSession(ctx, sessionID)
}

// GetUserByID gets a user by ID
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "User not found.", domainerrors.ErrUserNotFound)
	}
	return user, nil
}

func emailTaken() error {
	return domainerrors.Wrap(domainerrors.Conflict("An account with this email already exists."), domainerrors.ErrAlreadyExists)
}

func invalidCredentials() error {
	return domainerrors.Wrap(domainerrors.Unauthorized("Invalid email or password."), domainerrors.ErrInvalidCredentials)
}
