package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type SystemAlert struct {
	ID               uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Type             string        `gorm:"type:varchar(100);not null"`
	Message          string        `gorm:"type:text;not null"`
	DetailsURL       null.String   `gorm:"type:varchar(500)"`
	Severity         string        `gorm:"type:varchar(20);not null"`
	Status           string        `gorm:"type:varchar(20);not null;index"`
	ResolvedByUserID uuid.NullUUID `gorm:"type:uuid"`
	ResolvedAt       null.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
