package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"moto-club.backend/internal/domain/entities"
	domainerrors "moto-club.backend/internal/domain/errors"
	"moto-club.backend/internal/infrastructure/models"
	"moto-club.backend/pkg/utils"
)

// UserRepository implements member data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a member; a taken email yields ErrAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := toUserModel(user)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("email = ?", strings.ToLower(email)).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// UpdateProfile applies the supplied self-service fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, input entities.UpdateProfileInput) (*entities.User, error) {
	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.City != nil {
		updates["city"] = *input.City
	}
	if input.BikeModel != nil {
		updates["bike_model"] = *input.BikeModel
	}
	if input.AvatarURL != nil {
		updates["avatar_url"] = *input.AvatarURL
	}

	if err := r.updateByID(ctx, id, updates); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// List returns members newest first with their total count.
func (r *UserRepository) List(ctx context.Context, filter entities.UserFilter, pagination utils.PaginationParams) ([]*entities.User, int64, error) {
	query := GetDB(ctx, r.db).Model(&models.User{})

	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(city) LIKE ?", term, term, term)
	}
	if filter.Verified != nil {
		query = query.Where("is_verified = ?", *filter.Verified)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.User
	q := query.Order("created_at DESC")
	if pagination.Limit > 0 {
		q = q.Offset(pagination.CalculateOffset()).Limit(pagination.Limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*entities.User, 0, len(rows))
	for i := range rows {
		users = append(users, toUserEntity(&rows[i]))
	}
	return users, total, nil
}

// MarkVerified flips is_verified once.
func (r *UserRepository) MarkVerified(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	result := GetDB(ctx, r.db).Model(&models.User{}).
		Where("id = ? AND is_verified = ?", id, false).
		Updates(map[string]interface{}{
			"is_verified": true,
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// distinguish a missing member from one verified by a concurrent admin
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, domainerrors.ErrAlreadyVerified
	}
	return r.GetByID(ctx, id)
}

// UpdateSafetyRating overwrites the rating.
func (r *UserRepository) UpdateSafetyRating(ctx context.Context, id uuid.UUID, rating int) (*entities.User, error) {
	if err := r.updateByID(ctx, id, map[string]interface{}{
		"safety_rating": rating,
		"updated_at":    time.Now().UTC(),
	}); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// SetCaptain marks the member as having led a ride.
func (r *UserRepository) SetCaptain(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Model(&models.User{}).
		Where("id = ? AND is_captain = ?", id, false).
		Updates(map[string]interface{}{
			"is_captain": true,
			"updated_at": time.Now().UTC(),
		})
	return result.Error
}

// CountByVerification returns total and verified member counts.
func (r *UserRepository) CountByVerification(ctx context.Context) (int64, int64, error) {
	var row struct {
		Total    int64
		Verified int64
	}
	err := GetDB(ctx, r.db).Model(&models.User{}).
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN is_verified THEN 1 ELSE 0 END), 0) AS verified").
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Total, row.Verified, nil
}

// CountByCity returns member counts keyed by city.
func (r *UserRepository) CountByCity(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		City  string
		Count int64
	}
	err := GetDB(ctx, r.db).Model(&models.User{}).
		Select("city, COUNT(*) AS count").
		Group("city").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.City] = row.Count
	}
	return out, nil
}

func (r *UserRepository) updateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := GetDB(ctx, r.db).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toUserModel(u *entities.User) *models.User {
	return &models.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        strings.ToLower(u.Email),
		PasswordHash: u.PasswordHash,
		City:         u.City,
		BikeModel:    u.BikeModel,
		VIN:          u.VIN,
		AvatarURL:    u.AvatarURL,
		IsAdmin:      u.IsAdmin,
		IsVerified:   u.IsVerified,
		IsCaptain:    u.IsCaptain,
		SafetyRating: u.SafetyRating,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func toUserEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		City:         m.City,
		BikeModel:    m.BikeModel,
		VIN:          m.VIN,
		AvatarURL:    m.AvatarURL,
		IsAdmin:      m.IsAdmin,
		IsVerified:   m.IsVerified,
		IsCaptain:    m.IsCaptain,
		SafetyRating: m.SafetyRating,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
