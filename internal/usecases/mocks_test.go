package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"moto-club.backend/internal/domain/entities"
	"moto-club.backend/internal/domain/repositories"
	"moto-club.backend/pkg/utils"
)

// MockUnitOfWork runs the callback inline so repository expectations still apply.
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(ctx context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

func (m *MockUnitOfWork) WithLock(ctx context.Context) context.Context {
	args := m.Called(ctx)
	return args.Get(0).(context.Context)
}

// MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, input entities.UpdateProfileInput) (*entities.User, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, filter entities.UserFilter, pagination utils.PaginationParams) ([]*entities.User, int64, error) {
	args := m.Called(ctx, filter, pagination)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entities.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) MarkVerified(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) UpdateSafetyRating(ctx context.Context, id uuid.UUID, rating int) (*entities.User, error) {
	args := m.Called(ctx, id, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) SetCaptain(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) CountByVerification(ctx context.Context) (int64, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) CountByCity(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

// MockRideRepository
type MockRideRepository struct {
	mock.Mock
}

func (m *MockRideRepository) Create(ctx context.Context, ride *entities.Ride) error {
	args := m.Called(ctx, ride)
	return args.Error(0)
}

func (m *MockRideRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Ride, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Ride), args.Error(1)
}

func (m *MockRideRepository) GetSummary(ctx context.Context, id uuid.UUID) (*entities.RideSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RideSummary), args.Error(1)
}

func (m *MockRideRepository) ListByStatuses(ctx context.Context, statuses []entities.RideStatus, orderBy repositories.RideOrder, limit int) ([]*entities.RideSummary, error) {
	args := m.Called(ctx, statuses, orderBy, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.RideSummary), args.Error(1)
}

func (m *MockRideRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entities.RideSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.RideSummary), args.Error(1)
}

func (m *MockRideRepository) ListScheduledBetween(ctx context.Context, from, to time.Time) ([]*entities.RideSummary, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.RideSummary), args.Error(1)
}

func (m *MockRideRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entities.RideStatus, reason *string) (bool, error) {
	args := m.Called(ctx, id, from, to, reason)
	return args.Bool(0), args.Error(1)
}

func (m *MockRideRepository) ListDueForTransition(ctx context.Context, status entities.RideStatus, scheduledBefore time.Time, limit int) ([]*entities.Ride, error) {
	args := m.Called(ctx, status, scheduledBefore, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Ride), args.Error(1)
}

func (m *MockRideRepository) CountByStatus(ctx context.Context) (map[entities.RideStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entities.RideStatus]int64), args.Error(1)
}

func (m *MockRideRepository) CaptainStats(ctx context.Context, statuses []entities.RideStatus) ([]entities.CaptainStats, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.CaptainStats), args.Error(1)
}

func (m *MockRideRepository) AddParticipant(ctx context.Context, rideID, userID uuid.UUID, joinedAt time.Time) error {
	args := m.Called(ctx, rideID, userID, joinedAt)
	return args.Error(0)
}

func (m *MockRideRepository) RemoveParticipant(ctx context.Context, rideID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, rideID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRideRepository) IsParticipant(ctx context.Context, rideID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, rideID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRideRepository) ListParticipants(ctx context.Context, rideID uuid.UUID) ([]entities.Participant, error) {
	args := m.Called(ctx, rideID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Participant), args.Error(1)
}

func (m *MockRideRepository) AddPhoto(ctx context.Context, photo *entities.RidePhoto) error {
	args := m.Called(ctx, photo)
	return args.Error(0)
}

func (m *MockRideRepository) ListPhotos(ctx context.Context, rideID uuid.UUID) ([]entities.RidePhoto, error) {
	args := m.Called(ctx, rideID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.RidePhoto), args.Error(1)
}

// MockAchievementRepository
type MockAchievementRepository struct {
	mock.Mock
}

func (m *MockAchievementRepository) GetByName(ctx context.Context, name string) (*entities.Achievement, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Achievement), args.Error(1)
}

func (m *MockAchievementRepository) List(ctx context.Context) ([]*entities.Achievement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Achievement), args.Error(1)
}

func (m *MockAchievementRepository) HasEarned(ctx context.Context, userID, achievementID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, achievementID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAchievementRepository) CreateEarned(ctx context.Context, ua *entities.UserAchievement) error {
	args := m.Called(ctx, ua)
	return args.Error(0)
}

func (m *MockAchievementRepository) ListEarned(ctx context.Context, userID uuid.UUID) ([]*entities.EarnedAchievement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.EarnedAchievement), args.Error(1)
}

// MockAlertRepository
type MockAlertRepository struct {
	mock.Mock
}

func (m *MockAlertRepository) Create(ctx context.Context, alert *entities.SystemAlert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockAlertRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.SystemAlert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SystemAlert), args.Error(1)
}

func (m *MockAlertRepository) List(ctx context.Context, includeClosed bool) ([]*entities.SystemAlert, error) {
	args := m.Called(ctx, includeClosed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SystemAlert), args.Error(1)
}

func (m *MockAlertRepository) UpdateStatus(ctx context.Context, alert *entities.SystemAlert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockAlertRepository) CountOpen(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockAwarder
type MockAwarder struct {
	mock.Mock
}

func (m *MockAwarder) Award(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, userID, name)
	return args.Bool(0), args.Error(1)
}
