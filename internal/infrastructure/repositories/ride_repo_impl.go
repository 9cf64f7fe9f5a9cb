package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"moto-club.backend/internal/domain/entities"
	domainerrors "moto-club.backend/internal/domain/errors"
	domainRepos "moto-club.backend/internal/domain/repositories"
	"moto-club.backend/internal/infrastructure/models"
)

const rideSummaryColumns = `r.*,
	u.name AS captain_name,
	u.avatar_url AS captain_avatar_url,
	u.bike_model AS captain_bike_model,
	u.city AS captain_city,
	u.is_admin AS captain_is_admin,
	u.is_verified AS captain_is_verified,
	u.is_captain AS captain_is_captain,
	u.safety_rating AS captain_safety_rating,
	(SELECT COUNT(*) FROM ride_participants rp WHERE rp.ride_id = r.id) AS participants_count`

// RideRepository implements ride, participation and photo operations
type RideRepository struct {
	db *gorm.DB
}

// NewRideRepository creates a new ride repository
func NewRideRepository(db *gorm.DB) *RideRepository {
	return &RideRepository{db: db}
}

// Create inserts a ride
func (r *RideRepository) Create(ctx context.Context, ride *entities.Ride) error {
	m := toRideModel(ride)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	ride.CreatedAt = m.CreatedAt
	ride.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a ride by ID, locking the row when requested through the unit of work.
func (r *RideRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Ride, error) {
	var m models.Ride
	db := withRowLock(ctx, GetDB(ctx, r.db))
	if err := db.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toRideEntity(&m), nil
}

// GetSummary returns one ride with captain and participant count.
func (r *RideRepository) GetSummary(ctx context.Context, id uuid.UUID) (*entities.RideSummary, error) {
	var rows []models.RideSummaryRow
	if err := r.summaryQuery(ctx).Where("r.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domainerrors.ErrNotFound
	}
	return toRideSummary(&rows[0]), nil
}

// ListByStatuses lists rides in the given statuses.
func (r *RideRepository) ListByStatuses(ctx context.Context, statuses []entities.RideStatus, orderBy domainRepos.RideOrder, limit int) ([]*entities.RideSummary, error) {
	q := r.summaryQuery(ctx).Where("r.status IN ?", statusStrings(statuses))
	switch orderBy {
	case domainRepos.RideOrderScheduleDesc:
		q = q.Order("r.date_time DESC")
	case domainRepos.RideOrderCreatedDesc:
		q = q.Order("r.created_at DESC")
	default:
		q = q.Order("r.date_time ASC")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	return r.scanSummaries(q)
}

// ListForUser lists rides the user captains or joined, newest schedule first.
func (r *RideRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entities.RideSummary, error) {
	q := r.summaryQuery(ctx).
		Where("r.captain_id = ? OR EXISTS (SELECT 1 FROM ride_participants p WHERE p.ride_id = r.id AND p.user_id = ?)", userID, userID).
		Order("r.date_time DESC")
	return r.scanSummaries(q)
}

// ListScheduledBetween lists rides scheduled in [from, to).
func (r *RideRepository) ListScheduledBetween(ctx context.Context, from, to time.Time) ([]*entities.RideSummary, error) {
	q := r.summaryQuery(ctx).
		Where("r.date_time >= ? AND r.date_time < ?", from.UTC(), to.UTC()).
		Order("r.date_time ASC")
	return r.scanSummaries(q)
}

// TransitionStatus moves a ride from one status to another in a single guarded update.
func (r *RideRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entities.RideStatus, reason *string) (bool, error) {
	updates := map[string]interface{}{
		"status":     string(to),
		"updated_at": time.Now().UTC(),
	}
	if reason != nil {
		updates["rejection_reason"] = *reason
	}
	result := GetDB(ctx, r.db).Model(&models.Ride{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListDueForTransition lists rides in status scheduled before the cutoff, oldest first.
func (r *RideRepository) ListDueForTransition(ctx context.Context, status entities.RideStatus, scheduledBefore time.Time, limit int) ([]*entities.Ride, error) {
	var rows []models.Ride
	q := GetDB(ctx, r.db).
		Where("status = ? AND date_time < ?", string(status), scheduledBefore.UTC()).
		Order("date_time ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.Ride, 0, len(rows))
	for i := range rows {
		out = append(out, toRideEntity(&rows[i]))
	}
	return out, nil
}

// CountByStatus returns ride counts keyed by status.
func (r *RideRepository) CountByStatus(ctx context.Context) (map[entities.RideStatus]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := GetDB(ctx, r.db).Model(&models.Ride{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[entities.RideStatus]int64, len(rows))
	for _, row := range rows {
		out[entities.RideStatus(row.Status)] = row.Count
	}
	return out, nil
}

// CaptainStats aggregates rides, distance and riders led per captain.
func (r *RideRepository) CaptainStats(ctx context.Context, statuses []entities.RideStatus) ([]entities.CaptainStats, error) {
	var rows []struct {
		UserID            uuid.UUID
		Name              string
		AvatarURL         string
		BikeModel         string
		RidesConducted    int64
		TotalDistance     float64
		TotalParticipants int64
	}
	err := GetDB(ctx, r.db).Table("rides AS r").
		Select(`u.id AS user_id, u.name, u.avatar_url, u.bike_model,
			COUNT(r.id) AS rides_conducted,
			COALESCE(SUM(r.distance_km), 0) AS total_distance,
			COALESCE(SUM(pc.cnt), 0) AS total_participants`).
		Joins("JOIN users u ON u.id = r.captain_id").
		Joins("LEFT JOIN (SELECT ride_id, COUNT(*) AS cnt FROM ride_participants GROUP BY ride_id) pc ON pc.ride_id = r.id").
		Where("r.status IN ?", statusStrings(statuses)).
		Group("u.id, u.name, u.avatar_url, u.bike_model").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]entities.CaptainStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, entities.CaptainStats{
			UserID:            row.UserID,
			Name:              row.Name,
			AvatarURL:         row.AvatarURL,
			BikeModel:         row.BikeModel,
			RidesConducted:    row.RidesConducted,
			TotalDistance:     row.TotalDistance,
			TotalParticipants: row.TotalParticipants,
		})
	}
	return out, nil
}

// AddParticipant inserts the (ride, user) pair; a duplicate yields ErrAlreadyExists.
func (r *RideRepository) AddParticipant(ctx context.Context, rideID, userID uuid.UUID, joinedAt time.Time) error {
	m := &models.RideParticipant{RideID: rideID, UserID: userID, JoinedAt: joinedAt.UTC()}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// RemoveParticipant deletes the pair and reports whether a row was removed.
func (r *RideRepository) RemoveParticipant(ctx context.Context, rideID, userID uuid.UUID) (bool, error) {
	result := GetDB(ctx, r.db).
		Where("ride_id = ? AND user_id = ?", rideID, userID).
		Delete(&models.RideParticipant{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// IsParticipant reports whether the user joined the ride.
func (r *RideRepository) IsParticipant(ctx context.Context, rideID, userID uuid.UUID) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.RideParticipant{}).
		Where("ride_id = ? AND user_id = ?", rideID, userID).
		Count(&count).Error
	return count > 0, err
}

type participantRow struct {
	ID           uuid.UUID
	Name         string
	AvatarURL    string
	BikeModel    string
	IsAdmin      bool
	IsVerified   bool
	IsCaptain    bool
	SafetyRating null.Int
	JoinedAt     time.Time
}

// ListParticipants lists riders in join order.
func (r *RideRepository) ListParticipants(ctx context.Context, rideID uuid.UUID) ([]entities.Participant, error) {
	var rows []participantRow
	err := GetDB(ctx, r.db).Table("ride_participants AS p").
		Select("u.id, u.name, u.avatar_url, u.bike_model, u.is_admin, u.is_verified, u.is_captain, u.safety_rating, p.joined_at").
		Joins("JOIN users u ON u.id = p.user_id").
		Where("p.ride_id = ?", rideID).
		Order("p.joined_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]entities.Participant, 0, len(rows))
	for _, row := range rows {
		out = append(out, entities.Participant{
			UserSummary: entities.UserSummary{
				ID:           row.ID,
				Name:         row.Name,
				AvatarURL:    row.AvatarURL,
				BikeModel:    row.BikeModel,
				IsAdmin:      row.IsAdmin,
				IsVerified:   row.IsVerified,
				IsCaptain:    row.IsCaptain,
				SafetyRating: row.SafetyRating,
			},
			JoinedAt: row.JoinedAt,
		})
	}
	return out, nil
}

// AddPhoto inserts a ride photo
func (r *RideRepository) AddPhoto(ctx context.Context, photo *entities.RidePhoto) error {
	m := &models.RidePhoto{
		ID:             photo.ID,
		RideID:         photo.RideID,
		UploaderUserID: photo.UploaderUserID,
		PhotoURL:       photo.URL,
		Caption:        photo.Caption,
		UploadedAt:     photo.UploadedAt.UTC(),
	}
	return GetDB(ctx, r.db).Create(m).Error
}

// ListPhotos lists a ride's photos newest first with uploader names.
func (r *RideRepository) ListPhotos(ctx context.Context, rideID uuid.UUID) ([]entities.RidePhoto, error) {
	var rows []struct {
		models.RidePhoto
		UploaderName      string
		UploaderAvatarURL string
	}
	err := GetDB(ctx, r.db).Table("ride_photos AS ph").
		Select("ph.*, u.name AS uploader_name, u.avatar_url AS uploader_avatar_url").
		Joins("JOIN users u ON u.id = ph.uploader_user_id").
		Where("ph.ride_id = ?", rideID).
		Order("ph.uploaded_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]entities.RidePhoto, 0, len(rows))
	for _, row := range rows {
		out = append(out, entities.RidePhoto{
			ID:             row.ID,
			RideID:         row.RideID,
			UploaderUserID: row.UploaderUserID,
			URL:            row.PhotoURL,
			Caption:        row.Caption,
			UploadedAt:     row.UploadedAt,
			Uploader: &entities.UserSummary{
				ID:        row.UploaderUserID,
				Name:      row.UploaderName,
				AvatarURL: row.UploaderAvatarURL,
			},
		})
	}
	return out, nil
}

func (r *RideRepository) summaryQuery(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).Table("rides AS r").
		Select(rideSummaryColumns).
		Joins("JOIN users u ON u.id = r.captain_id")
}

func (r *RideRepository) scanSummaries(q *gorm.DB) ([]*entities.RideSummary, error) {
	var rows []models.RideSummaryRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.RideSummary, 0, len(rows))
	for i := range rows {
		out = append(out, toRideSummary(&rows[i]))
	}
	return out, nil
}

func statusStrings(statuses []entities.RideStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func toRideModel(ride *entities.Ride) *models.Ride {
	return &models.Ride{
		ID:              ride.ID,
		Name:            ride.Name,
		Type:            string(ride.Type),
		Description:     ride.Description,
		RouteStart:      ride.RouteStart,
		RouteEnd:        ride.RouteEnd,
		RouteMapLink:    ride.RouteMapLink,
		DateTime:        ride.DateTime.UTC(),
		CaptainID:       ride.CaptainID,
		Status:          string(ride.Status),
		RejectionReason: ride.RejectionReason,
		ThumbnailURL:    ride.ThumbnailURL,
		DistanceKm:      ride.DistanceKm,
		CreatedAt:       ride.CreatedAt,
		UpdatedAt:       ride.UpdatedAt,
	}
}

func toRideEntity(m *models.Ride) *entities.Ride {
	return &entities.Ride{
		ID:              m.ID,
		Name:            m.Name,
		Type:            entities.RideType(m.Type),
		Description:     m.Description,
		RouteStart:      m.RouteStart,
		RouteEnd:        m.RouteEnd,
		RouteMapLink:    m.RouteMapLink,
		DateTime:        m.DateTime,
		CaptainID:       m.CaptainID,
		Status:          entities.RideStatus(m.Status),
		RejectionReason: m.RejectionReason,
		ThumbnailURL:    m.ThumbnailURL,
		DistanceKm:      m.DistanceKm,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toRideSummary(row *models.RideSummaryRow) *entities.RideSummary {
	return &entities.RideSummary{
		Ride: *toRideEntity(&row.Ride),
		Captain: entities.UserSummary{
			ID:           row.CaptainID,
			Name:         row.CaptainName,
			AvatarURL:    row.CaptainAvatarURL,
			BikeModel:    row.CaptainBikeModel,
			IsAdmin:      row.CaptainIsAdmin,
			IsVerified:   row.CaptainIsVerified,
			IsCaptain:    row.CaptainIsCaptain,
			SafetyRating: row.CaptainSafetyRating,
		},
		CaptainCity:       row.CaptainCity,
		ParticipantsCount: row.ParticipantsCount,
	}
}
