package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"moto-club.backend/internal/domain/entities"
	"moto-club.backend/internal/interfaces/http/response"
)

// AlertService is the system alert surface.
type AlertService interface {
	ListAlerts(ctx context.Context, includeClosed bool) ([]*entities.SystemAlert, error)
	CreateAlert(ctx context.Context, input *entities.CreateAlertInput) (*entities.SystemAlert, error)
	UpdateAlertStatus(ctx context.Context, alertID uuid.UUID, status entities.AlertStatus, actorID uuid.UUID) (*entities.SystemAlert, error)
}

// AlertHandler handles admin alert endpoints
type AlertHandler struct {
	alertService AlertService
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(alertService AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// ListAlerts lists open alerts, or every alert with ?status=all
// GET /api/v1/admin/alerts
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	alerts, err := h.alertService.ListAlerts(c.Request.Context(), c.Query("status") == "all")
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, alerts)
}

// CreateAlert
// POST /api/v1/admin/alerts
func (h *AlertHandler) CreateAlert(c *gin.Context) {
	var input entities.CreateAlertInput
	if !bindJSON(c, &input) {
		return
	}

	alert, err := h.alertService.CreateAlert(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, alert)
}

// UpdateAlertStatus
// PATCH /api/v1/admin/alerts/:id/status
func (h *AlertHandler) UpdateAlertStatus(c *gin.Context) {
	actorID, ok := callerID(c)
	if !ok {
		return
	}
	alertID, ok := pathID(c, "id", "alert")
	if !ok {
		return
	}

	var input entities.UpdateAlertStatusInput
	if !bindJSON(c, &input) {
		return
	}

	alert, err := h.alertService.UpdateAlertStatus(c.Request.Context(), alertID, input.Status, actorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": fmt.Sprintf("Alert status updated to %s.", alert.Status),
		"alert":   alert,
	})
}
