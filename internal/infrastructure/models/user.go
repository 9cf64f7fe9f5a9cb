package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	City         string    `gorm:"type:varchar(100);not null;index"`
	BikeModel    string    `gorm:"type:varchar(100);not null"`
	VIN          string    `gorm:"column:vin;type:varchar(17);not null"`
	AvatarURL    string    `gorm:"type:varchar(500)"`
	IsAdmin      bool      `gorm:"not null"`
	IsVerified   bool      `gorm:"not null"`
	IsCaptain    bool      `gorm:"not null"`
	SafetyRating null.Int  `gorm:"type:smallint"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
