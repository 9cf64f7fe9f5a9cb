package usecases

import (
	"context"
	"sort"
	"strings"

	"moto-club.backend/internal/domain/entities"
	"moto-club.backend/internal/domain/repositories"
	"moto-club.backend/pkg/utils"
)

// LeaderboardUsecase ranks ride captains
type LeaderboardUsecase struct {
	rideRepo repositories.RideRepository
}

// NewLeaderboardUsecase creates a new leaderboard usecase
func NewLeaderboardUsecase(rideRepo repositories.RideRepository) *LeaderboardUsecase {
	return &LeaderboardUsecase{rideRepo: rideRepo}
}

// GetLeaderboard returns the top captains by score, ties broken by name
func (u *LeaderboardUsecase) GetLeaderboard(ctx context.Context, limit int) ([]entities.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = utils.DefaultPageLimit
	}
	if limit > utils.MaxPageLimit {
		limit = utils.MaxPageLimit
	}

	stats, err := u.rideRepo.CaptainStats(ctx, entities.LeaderboardRideStatuses)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(stats, func(i, j int) bool {
		si, sj := stats[i].Score(), stats[j].Score()
		if si != sj {
			return si > sj
		}
		return strings.ToLower(stats[i].Name) < strings.ToLower(stats[j].Name)
	})

	if len(stats) > limit {
		stats = stats[:limit]
	}

	entries := make([]entities.LeaderboardEntry, 0, len(stats))
	for i, s := range stats {
		entries = append(entries, entities.LeaderboardEntry{
			Rank: i + 1,
			User: entities.UserSummary{
				ID:        s.UserID,
				Name:      s.Name,
				AvatarURL: s.AvatarURL,
				BikeModel: s.BikeModel,
				IsCaptain: true,
			},
			RidesConducted:           s.RidesConducted,
			TotalDistance:            s.TotalDistance,
			TotalParticipantsInRides: s.TotalParticipants,
			Score:                    s.Score(),
		})
	}
	return entries, nil
}
