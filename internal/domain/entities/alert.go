package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// AlertSeverity orders system alerts
type AlertSeverity string

const (
	AlertSeverityLow      AlertSeverity = "Low"
	AlertSeverityMedium   AlertSeverity = "Medium"
	AlertSeverityHigh     AlertSeverity = "High"
	AlertSeverityCritical AlertSeverity = "Critical"
)

// Rank returns 1 for the most severe level.
func (s AlertSeverity) Rank() int {
	switch s {
	case AlertSeverityCritical:
		return 1
	case AlertSeverityHigh:
		return 2
	case AlertSeverityMedium:
		return 3
	case AlertSeverityLow:
		return 4
	default:
		return 5
	}
}

// AlertStatus is the triage state of an alert
type AlertStatus string

const (
	AlertStatusNew            AlertStatus = "New"
	AlertStatusInvestigating  AlertStatus = "Investigating"
	AlertStatusActionRequired AlertStatus = "ActionRequired"
	AlertStatusResolved       AlertStatus = "Resolved"
	AlertStatusDismissed      AlertStatus = "Dismissed"
)

// IsClosed reports whether the status is hidden from the default listing.
func (s AlertStatus) IsClosed() bool {
	return s == AlertStatusResolved || s == AlertStatusDismissed
}

// SystemAlert is an operational notice for admins
type SystemAlert struct {
	ID               uuid.UUID     `json:"id"`
	Type             string        `json:"type"`
	Message          string        `json:"message"`
	DetailsURL       null.String   `json:"detailsUrl"`
	Severity         AlertSeverity `json:"severity"`
	Status           AlertStatus   `json:"status"`
	ResolvedByUserID uuid.NullUUID `json:"resolvedByUserId"`
	ResolvedAt       null.Time     `json:"resolvedAt"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// ApplyStatus moves the alert to next, stamping or clearing resolution metadata.
func (a *SystemAlert) ApplyStatus(next AlertStatus, actor uuid.UUID, now time.Time) {
	a.Status = next
	a.UpdatedAt = now
	if next == AlertStatusResolved {
		a.ResolvedByUserID = uuid.NullUUID{UUID: actor, Valid: true}
		a.ResolvedAt = null.TimeFrom(now)
		return
	}
	a.ResolvedByUserID = uuid.NullUUID{}
	a.ResolvedAt = null.Time{}
}

// UpdateAlertStatusInput is the status PATCH payload.
type UpdateAlertStatusInput struct {
	Status AlertStatus `json:"status" binding:"required,oneof=New Investigating ActionRequired Resolved Dismissed"`
}

// CreateAlertInput raises a new alert.
type CreateAlertInput struct {
	Type       string        `json:"type" binding:"required,min=2,max=100"`
	Message    string        `json:"message" binding:"required,min=3,max=1000"`
	DetailsURL *string       `json:"detailsUrl" binding:"omitempty,max=500"`
	Severity   AlertSeverity `json:"severity" binding:"required,oneof=Low Medium High Critical"`
}
