package entities

import (
	"time"

	"github.com/google/uuid"
)

// DashboardStats are the admin overview counters.
type DashboardStats struct {
	TotalUsers               int64                `json:"totalUsers"`
	VerifiedUsers            int64                `json:"verifiedUsers"`
	PendingUserVerifications int64                `json:"pendingUserVerifications"`
	TotalRides               int64                `json:"totalRides"`
	UpcomingRides            int64                `json:"upcomingRides"`
	PendingRideApprovals     int64                `json:"pendingRideApprovals"`
	ActiveSystemAlerts       int64                `json:"activeSystemAlerts"`
	RidesByStatus            map[RideStatus]int64 `json:"ridesByStatus"`
}

// RecentRide is a dashboard row for the latest rides.
type RecentRide struct {
	ID                uuid.UUID   `json:"id"`
	Name              string      `json:"name"`
	Status            RideStatus  `json:"status"`
	ParticipantsCount int64       `json:"participantsCount"`
	StartTime         time.Time   `json:"startTime"`
	Captain           UserSummary `json:"captain"`
}

// MonthlyRideVolume is one point of the six-month series.
type MonthlyRideVolume struct {
	Month string `json:"month"`
	Year  int    `json:"year"`
	Rides int64  `json:"rides"`
}

// ChapterActivity summarizes one city chapter for the current month.
type ChapterActivity struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	RidesThisMonth   int64  `json:"ridesThisMonth"`
	MembersCount     int64  `json:"membersCount"`
	IsBelowThreshold bool   `json:"isBelowThreshold"`
}
