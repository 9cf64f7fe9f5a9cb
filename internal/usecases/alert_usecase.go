package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"moto-club.backend/internal/domain/entities"
	domainerrors "moto-club.backend/internal/domain/errors"
	"moto-club.backend/internal/domain/repositories"
	"moto-club.backend/pkg/logger"
	"moto-club.backend/pkg/utils"
)

// AlertUsecase handles system alert triage
type AlertUsecase struct {
	alertRepo repositories.AlertRepository
	uow       repositories.UnitOfWork
}

// NewAlertUsecase creates a new alert usecase
func NewAlertUsecase(alertRepo repositories.AlertRepository, uow repositories.UnitOfWork) *AlertUsecase {
	return &AlertUsecase{
		alertRepo: alertRepo,
		uow:       uow,
	}
}

// ListAlerts returns open alerts, or every alert when includeClosed is set
func (u *AlertUsecase) ListAlerts(ctx context.Context, includeClosed bool) ([]*entities.SystemAlert, error) {
	alerts, err := u.alertRepo.List(ctx, includeClosed)
	if err != nil {
		return nil, err
	}
	if alerts == nil {
		alerts = []*entities.SystemAlert{}
	}
	return alerts, nil
}

// CreateAlert raises a new alert in the New state
func (u *AlertUsecase) CreateAlert(ctx context.Context, input *entities.CreateAlertInput) (*entities.SystemAlert, error) {
	now := nowFunc()
	alert := &entities.SystemAlert{
		ID:         utils.GenerateUUIDv7(),
		Type:       strings.TrimSpace(input.Type),
		Message:    strings.TrimSpace(input.Message),
		DetailsURL: null.StringFromPtr(input.DetailsURL),
		Severity:   input.Severity,
		Status:     entities.AlertStatusNew,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := u.alertRepo.Create(ctx, alert); err != nil {
		return nil, err
	}

	logger.Info(ctx, "System alert raised",
		zap.String("alert_id", alert.ID.String()),
		zap.String("severity", string(alert.Severity)),
	)
	return alert, nil
}

// UpdateAlertStatus moves an alert to a new triage state on behalf of actorID
func (u *AlertUsecase) UpdateAlertStatus(ctx context.Context, alertID uuid.UUID, status entities.AlertStatus, actorID uuid.UUID) (*entities.SystemAlert, error) {
	var updated *entities.SystemAlert

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		alert, err := u.alertRepo.GetByID(u.uow.WithLock(txCtx), alertID)
		if err != nil {
			return notFound(err, "Alert not found.", domainerrors.ErrAlertNotFound)
		}

		if alert.Status == status {
			return domainerrors.Wrap(
				domainerrors.BadRequest(fmt.Sprintf("Alert is already in '%s' status.", status)),
				domainerrors.ErrSameStatus,
			)
		}

		alert.ApplyStatus(status, actorID, nowFunc())
		if err := u.alertRepo.UpdateStatus(txCtx, alert); err != nil {
			return notFound(err, "Alert not found.", domainerrors.ErrAlertNotFound)
		}
		updated = alert
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Alert status updated",
		zap.String("alert_id", alertID.String()),
		zap.String("status", string(status)),
	)
	return updated, nil
}
