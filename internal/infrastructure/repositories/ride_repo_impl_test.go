package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"moto-club.backend/internal/domain/entities"
	domainerrors "moto-club.backend/internal/domain/errors"
	domainRepos "moto-club.backend/internal/domain/repositories"
)

func TestRideRepository_CreateAndGet(t *testing.T) {
	db := newClubDB(t)
	repo := NewRideRepository(db)
	ctx := context.Background()
	captain := seedUser(t, db, "Asha", "asha@club.io", "Pune")

	ride := &entities.Ride{
		ID:          uuid.New(),
		Name:        "Sunday Coffee Ride",
		Type:        entities.RideTypeMicro,
		Description: null.StringFrom("Easy loop"),
		RouteStart:  "Shivajinagar",
		RouteEnd:    "Lonavala",
		DateTime:    time.Now().Add(48 * time.Hour).UTC(),
		CaptainID:   captain,
		Status:      entities.RideStatusUpcoming,
		DistanceKm:  64.5,
	}
	require.NoError(t, repo.Create(ctx, ride))

	got, err := repo.GetByID(ctx, ride.ID)
	require.NoError(t, err)
	require.Equal(t, "Sunday Coffee Ride", got.Name)
	require.Equal(t, entities.RideStatusUpcoming, got.Status)
	require.Equal(t, "Easy loop", got.Description.String)
	require.InDelta(t, 64.5, got.DistanceKm, 0.001)

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetSummary(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestRideRepository_ListByStatusesWithCaptainAndCounts(t *testing.T) {
	db := newClubDB(t)
	repo := NewRideRepository(db)
	ctx := context.Background()
	captain := seedUser(t, db, "Asha", "asha@club.io", "Pune")
	rider := seedUser(t, db, "Bilal", "bilal@club.io", "Pune")
	now := time.Now().UTC()

	later := seedRide(t, db, captain, "Later Ride", "Upcoming", now.Add(72*time.Hour), 10)
	sooner := seedRide(t, db, captain, "Sooner Ride", "Ongoing", now.Add(time.Hour), 20)
	seedRide(t, db, captain, "Pending Ride", "Pending Approval", now.Add(24*time.Hour), 5)
	seedRide(t, db, captain, "Done Ride", "Completed", now.Add(-24*time.Hour), 5)
	seedParticipant(t, db, later, rider)

	rides, err := repo.ListByStatuses(ctx, entities.ListedRideStatuses, domainRepos.RideOrderScheduleAsc, 0)
	require.NoError(t, err)
	require.Len(t, rides, 2)
	require.Equal(t, sooner, rides[0].ID)
	require.Equal(t, later, rides[1].ID)
	require.Equal(t, "Asha", rides[1].Captain.Name)
	require.Equal(t, "Pune", rides[1].CaptainCity)
	require.Equal(t, int64(1), rides[1].ParticipantsCount)

	limited, err := repo.ListByStatuses(ctx, entities.ListedRideStatuses, domainRepos.RideOrderScheduleDesc, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	require.Equal(t, later, limited[0].ID)
}

func TestRideRepository_TransitionStatusIsGuarded(t *testing.T) {
	db := newClubDB(t)
	repo := NewRideRepository(db)
	ctx := context.Background()
	captain := seedUser(t, db, "Asha", "asha@club.io", "Pune")
	rideID := seedRide(t, db, captain, "Chapter Ride", "Pending Approval", time.Now().Add(time.Hour), 10)

	ok, err := repo.TransitionStatus(ctx, rideID, entities.RideStatusPendingApproval, entities.RideStatusUpcoming, nil)
	require.NoError(t, err)
	require.True(t, ok)

	reason := "duplicate"
	ok, err = repo.TransitionStatus(ctx, rideID, entities.RideStatusPendingApproval, entities.RideStatusRejected, &reason)
	require.NoError(t, err)
	require.False(t, ok)

	got, err := repo.GetByID(ctx, rideID)
	require.NoError(t, err)
	require.Equal(t, entities.RideStatusUpcoming, got.Status)
	require.False(t, got.RejectionReason.Valid)
}

func TestRideRepository_ParticipationLifecycle(t *testing.T) {
	db := newClubDB(t)
	repo := NewRideRepository(db)
	ctx := context.Background()
	captain := seedUser(t, db, "Asha", "asha@club.io", "Pune")
	rider := seedUser(t, db, "Bilal", "bilal@club.io", "Pune")
	rideID := seedRide(t, db, captain, "Ghats Run", "Upcoming", time.Now().Add(time.Hour), 80)

	require.NoError(t, repo.AddParticipant(ctx, rideID, rider, time.Now()))
	require.ErrorIs(t, repo.AddParticipant(ctx, rideID, rider, time.Now()), domainerrors.ErrAlreadyExists)

	joined, err := repo.IsParticipant(ctx, rideID, rider)
	require.NoError(t, err)
	require.True(t, joined)

	participants, err := repo.ListParticipants(ctx, rideID)
	require.NoError(t, err)
	require.Len(t, participants, 1)
	require.Equal(t, "Bilal", participants[0].Name)

	removed, err := repo.RemoveParticipant(ctx, rideID, rider)
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = repo.RemoveParticipant(ctx, rideID, rider)
	require.NoError(t, err)
	require.False(t, removed)

	var count int64
	require.NoError(t, db.Table("ride_participants").Count(&count).Error)
	require.Zero(t, count)
}

func TestRideRepository_ListForUserCoversCaptainAndParticipant(t *testing.T) {
	db := newClubDB(t)
	repo := NewRideRepository(db)
	ctx := context.Background()
	asha := seedUser(t, db, "Asha", "asha@club.io", "Pune")
	bilal := seedUser(t, db, "Bilal", "bilal@club.io", "Pune")
	now := time.Now().UTC()

	led := seedRide(t, db, asha, "Led By Asha", "Upcoming", now.Add(time.Hour), 10)
	joined := seedRide(t, db, bilal, "Led By Bilal", "Completed", now.Add(-time.Hour), 10)
	seedRide(t, db, bilal, "Unrelated", "Upcoming", now.Add(2*time.Hour), 10)
	seedParticipant(t, db, joined, asha)

	rides, err := repo.ListForUser(ctx, asha)
	require.NoError(t, err)
	require.Len(t, rides, 2)
	require.Equal(t, led, rides[0].ID)
	require.Equal(t, joined, rides[1].ID)
}

func TestRideRepository_Photos(t *testing.T) {
	db := newClubDB(t)
	repo := NewRideRepository(db)
	ctx := context.Background()
	captain := seedUser(t, db, "Asha", "asha@club.io", "Pune")
	rideID := seedRide(t, db, captain, "Photo Ride", "Completed", time.Now().Add(-time.Hour), 10)

	older := &entities.RidePhoto{ID: uuid.New(), RideID: rideID, UploaderUserID: captain, URL: "https://img/1.jpg", UploadedAt: time.Now().Add(-time.Minute)}
	newer := &entities.RidePhoto{ID: uuid.New(), RideID: rideID, UploaderUserID: captain, URL: "https://img/2.jpg", Caption: null.StringFrom("summit"), UploadedAt: time.Now()}
	require.NoError(t, repo.AddPhoto(ctx, older))
	require.NoError(t, repo.AddPhoto(ctx, newer))

	photos, err := repo.ListPhotos(ctx, rideID)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	require.Equal(t, newer.ID, photos[0].ID)
	require.Equal(t, "summit", photos[0].Caption.String)
	require.Equal(t, "Asha", photos[0].Uploader.Name)
}

func TestRideRepository_AggregatesAndDueRides(t *testing.T) {
	db := newClubDB(t)
	repo := NewRideRepository(db)
	ctx := context.Background()
	asha := seedUser(t, db, "Asha", "asha@club.io", "Pune")
	bilal := seedUser(t, db, "Bilal", "bilal@club.io", "Goa")
	rider := seedUser(t, db, "Chitra", "chitra@club.io", "Goa")
	now := time.Now().UTC()

	r1 := seedRide(t, db, asha, "Past Upcoming", "Upcoming", now.Add(-2*time.Hour), 100)
	seedRide(t, db, asha, "Future Upcoming", "Upcoming", now.Add(2*time.Hour), 50)
	seedRide(t, db, bilal, "Rejected", "Rejected", now.Add(-time.Hour), 500)
	seedParticipant(t, db, r1, rider)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), counts[entities.RideStatusUpcoming])
	require.Equal(t, int64(1), counts[entities.RideStatusRejected])

	stats, err := repo.CaptainStats(ctx, entities.LeaderboardRideStatuses)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	require.Equal(t, asha, stats[0].UserID)
	require.Equal(t, int64(2), stats[0].RidesConducted)
	require.InDelta(t, 150, stats[0].TotalDistance, 0.001)
	require.Equal(t, int64(1), stats[0].TotalParticipants)

	due, err := repo.ListDueForTransition(ctx, entities.RideStatusUpcoming, now, 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, r1, due[0].ID)

	window, err := repo.ListScheduledBetween(ctx, now.Add(-3*time.Hour), now)
	require.NoError(t, err)
	require.Len(t, window, 2)
	require.Equal(t, "Goa", window[1].CaptainCity)
}
