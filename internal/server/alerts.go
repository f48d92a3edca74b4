package server

import (
	"errors"
	"net/http"

	"sevaconnect/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleNGOAlerts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ngoID := flow.Param(ctx, "ngoID")

	alerts, err := s.alerts.AlertsByNGO(ctx, ngoID)
	if err != nil {
		s.logger.WithError(err).Error("failed to list alerts")
		s.internalServerError(w)
		return
	}

	unread, err := s.alerts.UnreadCount(ctx, ngoID)
	if err != nil {
		s.logger.WithError(err).Error("failed to count unread alerts")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"alerts":      alerts,
		"unreadCount": unread,
	})
}

func (s *Service) handleMarkAlertRead(w http.ResponseWriter, r *http.Request) {
	alertID := flow.Param(r.Context(), "alertID")

	alert, err := s.alerts.MarkRead(r.Context(), alertID)
	if err != nil {
		if errors.Is(err, types.ErrAlertNotFound) {
			s.respondError(w, http.StatusNotFound, "Alert not found")
			return
		}
		s.logger.WithError(err).Error("failed to mark alert read")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"message": "Alert marked as read",
		"alert":   alert,
	})
}

func (s *Service) handleMarkAllAlertsRead(w http.ResponseWriter, r *http.Request) {
	ngoID := flow.Param(r.Context(), "ngoID")

	if err := s.alerts.MarkAllRead(r.Context(), ngoID); err != nil {
		s.logger.WithError(err).Error("failed to mark all alerts read")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"message": "All alerts marked as read",
	})
}

func (s *Service) handleDeleteAlert(w http.ResponseWriter, r *http.Request) {
	alertID := flow.Param(r.Context(), "alertID")

	if err := s.alerts.Delete(r.Context(), alertID); err != nil {
		if errors.Is(err, types.ErrAlertNotFound) {
			s.respondError(w, http.StatusNotFound, "Alert not found")
			return
		}
		s.logger.WithError(err).Error("failed to delete alert")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"message": "Alert deleted successfully",
	})
}
