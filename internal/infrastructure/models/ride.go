package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type Ride struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name            string      `gorm:"type:varchar(100);not null"`
	Type            string      `gorm:"type:varchar(20);not null"`
	Description     null.String `gorm:"type:text"`
	RouteStart      string      `gorm:"type:varchar(255);not null"`
	RouteEnd        string      `gorm:"type:varchar(255);not null"`
	RouteMapLink    null.String `gorm:"type:varchar(500)"`
	DateTime        time.Time   `gorm:"not null;index"`
	CaptainID       uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status          string      `gorm:"type:varchar(30);not null;index"`
	RejectionReason null.String `gorm:"type:text"`
	ThumbnailURL    null.String `gorm:"type:varchar(500)"`
	DistanceKm      float64     `gorm:"type:numeric(8,2);not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type RideParticipant struct {
	RideID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	JoinedAt time.Time `gorm:"not null"`
}

type RidePhoto struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey"`
	RideID         uuid.UUID   `gorm:"type:uuid;not null;index"`
	UploaderUserID uuid.UUID   `gorm:"type:uuid;not null"`
	PhotoURL       string      `gorm:"type:varchar(1000);not null"`
	Caption        null.String `gorm:"type:varchar(280)"`
	UploadedAt     time.Time   `gorm:"not null"`
}

// RideSummaryRow is scanned from the ride + captain + participant count join.
type RideSummaryRow struct {
	Ride
	CaptainName         string
	CaptainAvatarURL    string
	CaptainBikeModel    string
	CaptainCity         string
	CaptainIsAdmin      bool
	CaptainIsVerified   bool
	CaptainIsCaptain    bool
	CaptainSafetyRating null.Int
	ParticipantsCount   int64
}
