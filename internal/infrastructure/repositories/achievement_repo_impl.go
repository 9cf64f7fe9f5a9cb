package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"moto-club.backend/internal/domain/entities"
	domainerrors "moto-club.backend/internal/domain/errors"
	"moto-club.backend/internal/infrastructure/models"
)

// AchievementRepository implements badge catalog and earned badge operations
type AchievementRepository struct {
	db *gorm.DB
}

// NewAchievementRepository creates a new achievement repository
func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// GetByName looks up a catalog entry by its unique name
func (r *AchievementRepository) GetByName(ctx context.Context, name string) (*entities.Achievement, error) {
	var m models.Achievement
	if err := GetDB(ctx, r.db).Where("name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toAchievementEntity(&m), nil
}

// List returns the catalog ordered by name
func (r *AchievementRepository) List(ctx context.Context) ([]*entities.Achievement, error) {
	var rows []models.Achievement
	if err := GetDB(ctx, r.db).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.Achievement, 0, len(rows))
	for i := range rows {
		out = append(out, toAchievementEntity(&rows[i]))
	}
	return out, nil
}

// HasEarned reports whether the user already holds the achievement
func (r *AchievementRepository) HasEarned(ctx context.Context, userID, achievementID uuid.UUID) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.UserAchievement{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		Count(&count).Error
	return count > 0, err
}

// CreateEarned stores an earned badge; the unique pair constraint is the final guard.
func (r *AchievementRepository) CreateEarned(ctx context.Context, ua *entities.UserAchievement) error {
	m := &models.UserAchievement{
		ID:            ua.ID,
		UserID:        ua.UserID,
		AchievementID: ua.AchievementID,
		DateEarned:    ua.DateEarned.UTC(),
	}
	db := GetDB(ctx, r.db)
	if db.Dialector.Name() == "postgres" {
		// a failed INSERT would abort the surrounding transaction, so let the
		// constraint swallow the duplicate instead
		result := db.Exec(`INSERT INTO user_achievements (id, user_id, achievement_id, date_earned)
			VALUES (?, ?, ?, ?) ON CONFLICT (user_id, achievement_id) DO NOTHING`,
			m.ID, m.UserID, m.AchievementID, m.DateEarned)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrAlreadyExists
		}
		return nil
	}
	if err := db.Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// ListEarned lists a user's badges, most recent first
func (r *AchievementRepository) ListEarned(ctx context.Context, userID uuid.UUID) ([]*entities.EarnedAchievement, error) {
	var rows []struct {
		models.Achievement
		DateEarned time.Time
	}
	err := GetDB(ctx, r.db).Table("user_achievements AS ua").
		Select("a.*, ua.date_earned").
		Joins("JOIN achievements a ON a.id = ua.achievement_id").
		Where("ua.user_id = ?", userID).
		Order("ua.date_earned DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*entities.EarnedAchievement, 0, len(rows))
	for i := range rows {
		out = append(out, &entities.EarnedAchievement{
			Achievement: *toAchievementEntity(&rows[i].Achievement),
			DateEarned:  rows[i].DateEarned,
		})
	}
	return out, nil
}

// UpsertCatalog inserts or refreshes catalog entries by name.
func (r *AchievementRepository) UpsertCatalog(ctx context.Context, items []*entities.Achievement) error {
	db := GetDB(ctx, r.db)
	for _, item := range items {
		var existing models.Achievement
		err := db.Where("name = ?", item.Name).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if item.ID == uuid.Nil {
				item.ID = uuid.New()
			}
			if err := db.Create(toAchievementModel(item)).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			item.ID = existing.ID
			if err := db.Model(&existing).Updates(map[string]interface{}{
				"description":      item.Description,
				"icon_name":        item.IconName,
				"criteria_details": datatypes.JSON(item.CriteriaDetails),
			}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func toAchievementModel(a *entities.Achievement) *models.Achievement {
	return &models.Achievement{
		ID:              a.ID,
		Name:            a.Name,
		Description:     a.Description,
		IconName:        a.IconName,
		CriteriaDetails: datatypes.JSON(a.CriteriaDetails),
	}
}

func toAchievementEntity(m *models.Achievement) *entities.Achievement {
	var criteria json.RawMessage
	if len(m.CriteriaDetails) > 0 {
		criteria = json.RawMessage(m.CriteriaDetails)
	}
	return &entities.Achievement{
		ID:              m.ID,
		Name:            m.Name,
		Description:     m.Description,
		IconName:        m.IconName,
		CriteriaDetails: criteria,
	}
}
