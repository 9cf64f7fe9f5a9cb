package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"moto-club.backend/internal/domain/entities"
	domainerrors "moto-club.backend/internal/domain/errors"
	"moto-club.backend/internal/infrastructure/models"
)

const severityRankOrder = `CASE severity
	WHEN 'Critical' THEN 1
	WHEN 'High' THEN 2
	WHEN 'Medium' THEN 3
	WHEN 'Low' THEN 4
	ELSE 5 END`

var closedAlertStatuses = []string{string(entities.AlertStatusResolved), string(entities.AlertStatusDismissed)}

// AlertRepository implements system alert operations
type AlertRepository struct {
	db *gorm.DB
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// Create inserts an alert
func (r *AlertRepository) Create(ctx context.Context, alert *entities.SystemAlert) error {
	m := toAlertModel(alert)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	alert.CreatedAt = m.CreatedAt
	alert.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets an alert by ID
func (r *AlertRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.SystemAlert, error) {
	var m models.SystemAlert
	if err := withRowLock(ctx, GetDB(ctx, r.db)).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toAlertEntity(&m), nil
}

// List returns alerts by severity rank then recency
func (r *AlertRepository) List(ctx context.Context, includeClosed bool) ([]*entities.SystemAlert, error) {
	q := GetDB(ctx, r.db).Model(&models.SystemAlert{})
	if !includeClosed {
		q = q.Where("status NOT IN ?", closedAlertStatuses)
	}

	var rows []models.SystemAlert
	if err := q.Order(severityRankOrder).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.SystemAlert, 0, len(rows))
	for i := range rows {
		out = append(out, toAlertEntity(&rows[i]))
	}
	return out, nil
}

// UpdateStatus persists status and resolution metadata
func (r *AlertRepository) UpdateStatus(ctx context.Context, alert *entities.SystemAlert) error {
	result := GetDB(ctx, r.db).Model(&models.SystemAlert{}).
		Where("id = ?", alert.ID).
		Updates(map[string]interface{}{
			"status":              string(alert.Status),
			"resolved_by_user_id": alert.ResolvedByUserID,
			"resolved_at":         alert.ResolvedAt,
			"updated_at":          alert.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// CountOpen counts alerts that are neither resolved nor dismissed
func (r *AlertRepository) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.SystemAlert{}).
		Where("status NOT IN ?", closedAlertStatuses).
		Count(&count).Error
	return count, err
}

func toAlertModel(a *entities.SystemAlert) *models.SystemAlert {
	return &models.SystemAlert{
		ID:               a.ID,
		Type:             a.Type,
		Message:          a.Message,
		DetailsURL:       a.DetailsURL,
		Severity:         string(a.Severity),
		Status:           string(a.Status),
		ResolvedByUserID: a.ResolvedByUserID,
		ResolvedAt:       a.ResolvedAt,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func toAlertEntity(m *models.SystemAlert) *entities.SystemAlert {
	return &entities.SystemAlert{
		ID:               m.ID,
		Type:             m.Type,
		Message:          m.Message,
		DetailsURL:       m.DetailsURL,
		Severity:         entities.AlertSeverity(m.Severity),
		Status:           entities.AlertStatus(m.Status),
		ResolvedByUserID: m.ResolvedByUserID,
		ResolvedAt:       m.ResolvedAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
