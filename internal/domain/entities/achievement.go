package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Catalog achievement names granted by ride completion.
const (
	AchievementRoadCaptain        = "Road Captain"
	AchievementFirstRideCompleted = "First Ride Completed"
)

// Achievement is a catalog badge
type Achievement struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	IconName        string          `json:"iconName"`
	CriteriaDetails json.RawMessage `json:"criteriaDetails,omitempty"`
}

// UserAchievement is an earned badge instance
type UserAchievement struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	AchievementID uuid.UUID `json:"achievementId"`
	DateEarned    time.Time `json:"dateEarned"`
}

// EarnedAchievement joins a catalog badge with the time it was earned.
type EarnedAchievement struct {
	Achievement
	DateEarned time.Time `json:"dateEarned"`
}

// AchievementCatalog is the badge set seeded by cmd/migrate.
func AchievementCatalog() []*Achievement {
	return []*Achievement{
		{
			Name:            AchievementFirstRideCompleted,
			Description:     "You completed your first club ride!",
			IconName:        "Award",
			CriteriaDetails: json.RawMessage(`{"completedRides":1}`),
		},
		{
			Name:            AchievementRoadCaptain,
			Description:     "Successfully led a ride as captain.",
			IconName:        "UserCircle",
			CriteriaDetails: json.RawMessage(`{"captainedRides":1}`),
		},
	}
}
