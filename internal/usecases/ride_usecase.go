package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"moto-club.backend/internal/domain/entities"
	domainerrors "moto-club.backend/internal/domain/errors"
	"moto-club.backend/internal/domain/repositories"
	"moto-club.backend/pkg/logger"
	"moto-club.backend/pkg/metrics"
	"moto-club.backend/pkg/utils"
)

const (
	pendingRidesLimit = 200
	lifecycleBatch    = 100
)

// Awarder grants catalog achievements.
type Awarder interface {
	Award(ctx context.Context, userID uuid.UUID, name string) (bool, error)
}

// RideUsecase handles ride scheduling, participation and moderation
type RideUsecase struct {
	rideRepo repositories.RideRepository
	userRepo repositories.UserRepository
	uow      repositories.UnitOfWork
	awarder  Awarder
}

// NewRideUsecase creates a new ride usecase
func NewRideUsecase(
	rideRepo repositories.RideRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	awarder Awarder,
) *RideUsecase {
	return &RideUsecase{
		rideRepo: rideRepo,
		userRepo: userRepo,
		uow:      uow,
		awarder:  awarder,
	}
}

// CreateMicroRide schedules a member-led ride. Micro rides skip moderation.
func (u *RideUsecase) CreateMicroRide(ctx context.Context, captainID uuid.UUID, input *entities.CreateRideInput) (*entities.Ride, error) {
	now := nowFunc()
	name := strings.TrimSpace(input.Name)
	start := strings.TrimSpace(input.StartPoint)
	end := strings.TrimSpace(input.EndPoint)

	details := map[string]string{}
	minLength(details, "name", name, 5)
	minLength(details, "startPoint", start, 3)
	minLength(details, "endPoint", end, 3)
	if !input.DateTime.After(now) {
		details["dateTime"] = "Ride date must be in the future."
	}
	if len(details) > 0 {
		return nil, domainerrors.Validation(details)
	}

	ride := &entities.Ride{
		ID:           utils.GenerateUUIDv7(),
		Name:         name,
		Type:         entities.RideTypeMicro,
		Description:  null.StringFromPtr(input.Description),
		RouteStart:   start,
		RouteEnd:     end,
		RouteMapLink: null.StringFromPtr(input.RouteMapLink),
		DateTime:     input.DateTime.UTC(),
		CaptainID:    captainID,
		Status:       entities.RideStatusUpcoming,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if input.DistanceKm != nil {
		ride.DistanceKm = *input.DistanceKm
	}

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.rideRepo.Create(txCtx, ride); err != nil {
			return err
		}
		if err := u.userRepo.SetCaptain(txCtx, captainID); err != nil {
			return notFound(err, "User not found.", domainerrors.ErrUserNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RidesCreated.WithLabelValues(string(ride.Type)).Inc()
	logger.Info(ctx, "Ride created",
		zap.String("ride_id", ride.ID.String()),
		zap.String("captain_id", captainID.String()),
	)
	return ride, nil
}

// ListRides returns approved rides that have not finished, soonest first
func (u *RideUsecase) ListRides(ctx context.Context) ([]*entities.RideSummary, error) {
	return u.rideRepo.ListByStatuses(ctx, entities.ListedRideStatuses, repositories.RideOrderScheduleAsc, 0)
}

// GetRide returns a ride with its captain, participants and photos
func (u *RideUsecase) GetRide(ctx context.Context, rideID uuid.UUID) (*entities.RideDetail, error) {
	summary, err := u.rideRepo.GetSummary(ctx, rideID)
	if err != nil {
		return nil, rideNotFound(err)
	}

	participants, err := u.rideRepo.ListParticipants(ctx, rideID)
	if err != nil {
		return nil, err
	}
	photos, err := u.rideRepo.ListPhotos(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if participants == nil {
		participants = []entities.Participant{}
	}
	if photos == nil {
		photos = []entities.RidePhoto{}
	}

	return &entities.RideDetail{
		Ride:              summary.Ride,
		Captain:           summary.Captain,
		ParticipantsCount: len(participants),
		Participants:      participants,
		Photos:            photos,
	}, nil
}

// JoinRide adds the user to an upcoming ride
func (u *RideUsecase) JoinRide(ctx context.Context, rideID, userID uuid.UUID) error {
	ride, err := u.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return rideNotFound(err)
	}

	// captain check first so it fails whatever the ride status is
	if ride.CaptainID == userID {
		return domainerrors.Wrap(
			domainerrors.BadRequest("Captain cannot join their own ride as a participant."),
			domainerrors.ErrCaptainCannotJoin,
		)
	}
	if ride.Status != entities.RideStatusUpcoming {
		return domainerrors.Wrap(
			domainerrors.BadRequest(fmt.Sprintf("Ride is not upcoming. Current status: %s", ride.Status)),
			domainerrors.ErrRideNotUpcoming,
		)
	}

	joined, err := u.rideRepo.IsParticipant(ctx, rideID, userID)
	if err != nil {
		return err
	}
	if joined {
		return alreadyJoined()
	}

	if err := u.rideRepo.AddParticipant(ctx, rideID, userID, nowFunc()); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return alreadyJoined()
		}
		return err
	}

	logger.Info(ctx, "Rider joined ride",
		zap.String("ride_id", rideID.String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}

// LeaveRide removes the user's participation
func (u *RideUsecase) LeaveRide(ctx context.Context, rideID, userID uuid.UUID) error {
	if _, err := u.rideRepo.GetByID(ctx, rideID); err != nil {
		return rideNotFound(err)
	}

	removed, err := u.rideRepo.RemoveParticipant(ctx, rideID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return domainerrors.Wrap(
			domainerrors.BadRequest("You were not a participant in this ride or already left."),
			domainerrors.ErrNotParticipant,
		)
	}
	return nil
}

// AddPhoto attaches a photo; only the captain and participants may post.
func (u *RideUsecase) AddPhoto(ctx context.Context, rideID, userID uuid.UUID, input *entities.AddPhotoInput) (*entities.RidePhoto, error) {
	ride, err := u.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, rideNotFound(err)
	}

	if ride.CaptainID != userID {
		joined, err := u.rideRepo.IsParticipant(ctx, rideID, userID)
		if err != nil {
			return nil, err
		}
		if !joined {
			return nil, domainerrors.Forbidden("Only the captain and participants can add photos to this ride.")
		}
	}

	photo := &entities.RidePhoto{
		ID:             utils.GenerateUUIDv7(),
		RideID:         rideID,
		UploaderUserID: userID,
		URL:            input.URL,
		Caption:        null.StringFromPtr(input.Caption),
		UploadedAt:     nowFunc(),
	}
	if err := u.rideRepo.AddPhoto(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

// ListPendingRides returns rides awaiting moderation, newest submissions first
func (u *RideUsecase) ListPendingRides(ctx context.Context) ([]*entities.RideSummary, error) {
	return u.rideRepo.ListByStatuses(ctx,
		[]entities.RideStatus{entities.RideStatusPendingApproval},
		repositories.RideOrderCreatedDesc,
		pendingRidesLimit,
	)
}

// ListUserRides returns rides the user captains or joined, newest first
func (u *RideUsecase) ListUserRides(ctx context.Context, userID uuid.UUID) ([]*entities.RideSummary, error) {
	return u.rideRepo.ListForUser(ctx, userID)
}

// ApproveRide publishes a pending ride. Approving a ride whose date already passed
// also grants the completion achievements in the same transaction.
func (u *RideUsecase) ApproveRide(ctx context.Context, rideID uuid.UUID) (*entities.ModerationResult, error) {
	var result *entities.ModerationResult

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		ride, err := u.lockPendingRide(txCtx, rideID)
		if err != nil {
			return err
		}

		if err := u.transition(txCtx, ride, entities.RideStatusPendingApproval, entities.RideStatusUpcoming, nil); err != nil {
			return err
		}

		if ride.IsPast(nowFunc()) {
			if err := u.awardCompletion(txCtx, ride); err != nil {
				return err
			}
		}

		result = &entities.ModerationResult{ID: ride.ID, Name: ride.Name, Status: entities.RideStatusUpcoming}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RidesModerated.WithLabelValues(string(result.Status)).Inc()
	logger.Info(ctx, "Ride approved", zap.String("ride_id", rideID.String()))
	return result, nil
}

// RejectRide declines a pending ride with an optional reason
func (u *RideUsecase) RejectRide(ctx context.Context, rideID uuid.UUID, reason *string) (*entities.ModerationResult, error) {
	var result *entities.ModerationResult

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		ride, err := u.lockPendingRide(txCtx, rideID)
		if err != nil {
			return err
		}

		if err := u.transition(txCtx, ride, entities.RideStatusPendingApproval, entities.RideStatusRejected, reason); err != nil {
			return err
		}

		result = &entities.ModerationResult{ID: ride.ID, Name: ride.Name, Status: entities.RideStatusRejected}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RidesModerated.WithLabelValues(string(result.Status)).Inc()
	logger.Info(ctx, "Ride rejected", zap.String("ride_id", rideID.String()))
	return result, nil
}

// StartDueRides moves upcoming rides whose start time passed to Ongoing.
func (u *RideUsecase) StartDueRides(ctx context.Context) (int, error) {
	rides, err := u.rideRepo.ListDueForTransition(ctx, entities.RideStatusUpcoming, nowFunc(), lifecycleBatch)
	if err != nil {
		return 0, err
	}

	started := 0
	for _, ride := range rides {
		ok, err := u.rideRepo.TransitionStatus(ctx, ride.ID, entities.RideStatusUpcoming, entities.RideStatusOngoing, nil)
		if err != nil {
			logger.Error(ctx, "Failed to start ride", zap.String("ride_id", ride.ID.String()), zap.Error(err))
			continue
		}
		if ok {
			started++
			metrics.RideTransitions.WithLabelValues(string(entities.RideStatusOngoing)).Inc()
		}
	}
	return started, nil
}

// CompleteDueRides finishes ongoing rides that started more than duration ago.
// Each completion and its achievements commit together; a failed ride is
// logged and left Ongoing for the next tick.
func (u *RideUsecase) CompleteDueRides(ctx context.Context, duration time.Duration) (int, error) {
	rides, err := u.rideRepo.ListDueForTransition(ctx, entities.RideStatusOngoing, nowFunc().Add(-duration), lifecycleBatch)
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, ride := range rides {
		done := false
		err := u.uow.Do(ctx, func(txCtx context.Context) error {
			ok, err := u.rideRepo.TransitionStatus(txCtx, ride.ID, entities.RideStatusOngoing, entities.RideStatusCompleted, nil)
			if err != nil || !ok {
				return err
			}
			done = true
			return u.awardCompletion(txCtx, ride)
		})
		if err != nil {
			logger.Error(ctx, "Failed to complete ride", zap.String("ride_id", ride.ID.String()), zap.Error(err))
			continue
		}
		if done {
			completed++
			metrics.RideTransitions.WithLabelValues(string(entities.RideStatusCompleted)).Inc()
		}
	}
	return completed, nil
}

func (u *RideUsecase) lockPendingRide(ctx context.Context, rideID uuid.UUID) (*entities.Ride, error) {
	ride, err := u.rideRepo.GetByID(u.uow.WithLock(ctx), rideID)
	if err != nil {
		return nil, rideNotFound(err)
	}
	if ride.Status != entities.RideStatusPendingApproval {
		return nil, notPending(ride.Status)
	}
	return ride, nil
}

func (u *RideUsecase) transition(ctx context.Context, ride *entities.Ride, from, to entities.RideStatus, reason *string) error {
	ok, err := u.rideRepo.TransitionStatus(ctx, ride.ID, from, to, reason)
	if err != nil {
		return err
	}
	if !ok {
		// the guarded update lost a race with another moderator
		current, err := u.rideRepo.GetByID(ctx, ride.ID)
		if err != nil {
			return rideNotFound(err)
		}
		return notPending(current.Status)
	}
	ride.Status = to
	return nil
}

func (u *RideUsecase) awardCompletion(ctx context.Context, ride *entities.Ride) error {
	if _, err := u.awarder.Award(ctx, ride.CaptainID, entities.AchievementRoadCaptain); err != nil {
		return fmt.Errorf("award captain: %w", err)
	}

	participants, err := u.rideRepo.ListParticipants(ctx, ride.ID)
	if err != nil {
		return err
	}
	for _, p := range participants {
		if _, err := u.awarder.Award(ctx, p.ID, entities.AchievementFirstRideCompleted); err != nil {
			return fmt.Errorf("award participant %s: %w", p.ID, err)
		}
	}
	return nil
}

func rideNotFound(err error) error {
	return notFound(err, "Ride not found.", domainerrors.ErrRideNotFound)
}

func notPending(status entities.RideStatus) error {
	return domainerrors.Wrap(
		domainerrors.BadRequest(fmt.Sprintf("Ride is not pending approval. Current status: %s", status)),
		domainerrors.ErrRideNotPending,
	)
}

func alreadyJoined() error {
	return domainerrors.Wrap(domainerrors.Conflict("You have already joined this ride."), domainerrors.ErrAlreadyJoined)
}

// minLength checks the trimmed value, since binding validates the raw input.
func minLength(details map[string]string, field, value string, n int) {
	if utf8.RuneCountInString(value) < n {
		details[field] = fmt.Sprintf("Must be at least %d characters.", n)
	}
}
