package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Achievement struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name            string         `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description     string         `gorm:"type:text;not null"`
	IconName        string         `gorm:"type:varchar(100);not null"`
	CriteriaDetails datatypes.JSON `gorm:"type:jsonb"`
}

type UserAchievement struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement"`
	AchievementID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement"`
	DateEarned    time.Time `gorm:"not null"`
}
