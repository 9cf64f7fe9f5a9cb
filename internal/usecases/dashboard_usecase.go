package usecases

import (
	"context"
	"sort"
	"strings"
	"time"

	"moto-club.backend/internal/domain/entities"
	"moto-club.backend/internal/domain/repositories"
)

const (
	recentRidesLimit = 10
	volumeMonths     = 6
)

// recentRideStatuses feed the dashboard's latest rides panel.
var recentRideStatuses = []entities.RideStatus{
	entities.RideStatusOngoing,
	entities.RideStatusUpcoming,
	entities.RideStatusCompleted,
}

// DashboardUsecase computes the admin overview. Nothing is cached.
type DashboardUsecase struct {
	userRepo        repositories.UserRepository
	rideRepo        repositories.RideRepository
	alertRepo       repositories.AlertRepository
	minMonthlyRides int64
}

// NewDashboardUsecase creates a new dashboard usecase
func NewDashboardUsecase(
	userRepo repositories.UserRepository,
	rideRepo repositories.RideRepository,
	alertRepo repositories.AlertRepository,
	minMonthlyRides int,
) *DashboardUsecase {
	return &DashboardUsecase{
		userRepo:        userRepo,
		rideRepo:        rideRepo,
		alertRepo:       alertRepo,
		minMonthlyRides: int64(minMonthlyRides),
	}
}

// GetStats returns the headline counters
func (u *DashboardUsecase) GetStats(ctx context.Context) (*entities.DashboardStats, error) {
	total, verified, err := u.userRepo.CountByVerification(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := u.rideRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	openAlerts, err := u.alertRepo.CountOpen(ctx)
	if err != nil {
		return nil, err
	}

	var totalRides int64
	for _, n := range byStatus {
		totalRides += n
	}
	if byStatus == nil {
		byStatus = map[entities.RideStatus]int64{}
	}

	return &entities.DashboardStats{
		TotalUsers:               total,
		VerifiedUsers:            verified,
		PendingUserVerifications: total - verified,
		TotalRides:               totalRides,
		UpcomingRides:            byStatus[entities.RideStatusUpcoming],
		PendingRideApprovals:     byStatus[entities.RideStatusPendingApproval],
		ActiveSystemAlerts:       openAlerts,
		RidesByStatus:            byStatus,
	}, nil
}

// GetRecentRides returns the latest rides by scheduled date
func (u *DashboardUsecase) GetRecentRides(ctx context.Context) ([]entities.RecentRide, error) {
	rides, err := u.rideRepo.ListByStatuses(ctx, recentRideStatuses, repositories.RideOrderScheduleDesc, recentRidesLimit)
	if err != nil {
		return nil, err
	}

	out := make([]entities.RecentRide, 0, len(rides))
	for _, r := range rides {
		out = append(out, entities.RecentRide{
			ID:                r.ID,
			Name:              r.Name,
			Status:            r.Status,
			ParticipantsCount: r.ParticipantsCount,
			StartTime:         r.DateTime,
			Captain:           r.Captain,
		})
	}
	return out, nil
}

// GetMonthlyRideVolume counts rides per calendar month for the last six months,
// oldest first, with empty months reported as zero.
func (u *DashboardUsecase) GetMonthlyRideVolume(ctx context.Context) ([]entities.MonthlyRideVolume, error) {
	current := monthStart(nowFunc())
	from := current.AddDate(0, -(volumeMonths - 1), 0)

	rides, err := u.rideRepo.ListScheduledBetween(ctx, from, current.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}

	out := make([]entities.MonthlyRideVolume, volumeMonths)
	for i := range out {
		m := from.AddDate(0, i, 0)
		out[i] = entities.MonthlyRideVolume{Month: m.Format("Jan"), Year: m.Year()}
	}
	for _, r := range rides {
		if !countsTowardActivity(r.Status) {
			continue
		}
		d := r.DateTime.UTC()
		idx := (d.Year()-from.Year())*12 + int(d.Month()) - int(from.Month())
		if idx >= 0 && idx < volumeMonths {
			out[idx].Rides++
		}
	}
	return out, nil
}

// GetChapterActivity reports rides this month and membership per city chapter
func (u *DashboardUsecase) GetChapterActivity(ctx context.Context) ([]entities.ChapterActivity, error) {
	members, err := u.userRepo.CountByCity(ctx)
	if err != nil {
		return nil, err
	}

	start := monthStart(nowFunc())
	rides, err := u.rideRepo.ListScheduledBetween(ctx, start, start.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}

	ridesByCity := make(map[string]int64)
	for _, r := range rides {
		if !countsTowardActivity(r.Status) || r.CaptainCity == "" {
			continue
		}
		ridesByCity[r.CaptainCity]++
	}

	cities := make(map[string]struct{}, len(members))
	for city := range members {
		cities[city] = struct{}{}
	}
	for city := range ridesByCity {
		cities[city] = struct{}{}
	}

	out := make([]entities.ChapterActivity, 0, len(cities))
	for city := range cities {
		if strings.TrimSpace(city) == "" {
			continue
		}
		count := ridesByCity[city]
		out = append(out, entities.ChapterActivity{
			ID:               chapterID(city),
			Name:             city,
			RidesThisMonth:   count,
			MembersCount:     members[city],
			IsBelowThreshold: count < u.minMonthlyRides,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func countsTowardActivity(status entities.RideStatus) bool {
	switch status {
	case entities.RideStatusUpcoming, entities.RideStatusOngoing, entities.RideStatusCompleted:
		return true
	}
	return false
}

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func chapterID(city string) string {
	return strings.Join(strings.Fields(strings.ToLower(city)), "-")
}
