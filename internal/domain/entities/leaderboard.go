package entities

import "github.com/google/uuid"

// CaptainStats are raw per-captain aggregates.
type CaptainStats struct {
	UserID            uuid.UUID
	Name              string
	AvatarURL         string
	BikeModel         string
	RidesConducted    int64
	TotalDistance     float64
	TotalParticipants int64
}

// LeaderboardEntry is a ranked captain.
type LeaderboardEntry struct {
	Rank                     int         `json:"rank"`
	User                     UserSummary `json:"user"`
	RidesConducted           int64       `json:"ridesConducted"`
	TotalDistance            float64     `json:"totalDistance"`
	TotalParticipantsInRides int64       `json:"totalParticipantsInRides"`
	Score                    float64     `json:"score"`
}

// Score weights conducted rides and riders led above distance.
func (s CaptainStats) Score() float64 {
	return float64(s.RidesConducted)*100 + float64(s.TotalParticipants)*10 + s.TotalDistance
}
