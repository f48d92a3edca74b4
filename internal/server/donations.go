package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"sevaconnect/pkg/types"

	"github.com/alexedwards/flow"
)

type createDonationRequest struct {
	DonorID string               `json:"donorId"`
	NGOID   string               `json:"ngoId"`
	Items   []types.DonationItem `json:"items"`
	Notes   *string              `json:"notes"`
	Type    types.DonationType   `json:"type"`
}

func (s *Service) handleCreateDonation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createDonationRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	donor, err := s.users.User(ctx, req.DonorID)
	if err != nil && !errors.Is(err, types.ErrUserNotFound) {
		s.logger.WithError(err).Error("failed to fetch donor")
		s.internalServerError(w)
		return
	}
	if donor == nil || donor.Role != types.UserRoleDonor {
		s.respondError(w, http.StatusBadRequest, "Invalid donor")
		return
	}

	ngo, err := s.ngos.NGO(ctx, req.NGOID)
	if err != nil {
		if errors.Is(err, types.ErrNGONotFound) {
			s.respondError(w, http.StatusBadRequest, "NGO not found")
			return
		}
		s.logger.WithError(err).Error("failed to fetch ngo for donation")
		s.internalServerError(w)
		return
	}

	for _, item := range req.Items {
		if item.Name == "" || item.Quantity < 1 {
			s.respondError(w, http.StatusBadRequest, "Each item needs a name and a quantity of at least 1")
			return
		}
	}

	if req.Type != "" && !req.Type.Valid() {
		s.respondError(w, http.StatusBadRequest, "Invalid donation type")
		return
	}

	donation := &types.Donation{
		DonorID: donor.ID,
		NGOID:   ngo.ID,
		NGOName: ngo.OrganizationName,
		Items:   req.Items,
		Notes:   req.Notes,
		Type:    req.Type,
	}

	if err := s.donations.Create(ctx, donation); err != nil {
		s.logger.WithError(err).Error("failed to create donation")
		s.internalServerError(w)
		return
	}

	s.notify(ctx, &types.Alert{
		NGOID:             ngo.ID,
		Type:              types.AlertTypeNewDonation,
		Message:           fmt.Sprintf("New donation from %s", donor.Name),
		Priority:          types.AlertPriorityMedium,
		RelatedEntityType: relatedEntity(types.RelatedEntityDonation),
		RelatedEntityID:   &donation.ID,
	})

	s.respondJSON(w, http.StatusCreated, map[string]any{
		"message":    "Donation created successfully",
		"donationId": donation.ID,
		"donation":   donation,
	})
}

func (s *Service) handleDonorDonations(w http.ResponseWriter, r *http.Request) {
	donorID := flow.Param(r.Context(), "donorID")

	donations, err := s.donations.DonationsByDonor(r.Context(), donorID)
	if err != nil {
		s.logger.WithError(err).Error("failed to list donor donations")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"donations": donations})
}

func (s *Service) handleNGODonations(w http.ResponseWriter, r *http.Request) {
	ngoID := flow.Param(r.Context(), "ngoID")

	donations, err := s.donations.DonationsByNGO(r.Context(), ngoID)
	if err != nil {
		s.logger.WithError(err).Error("failed to list ngo donations")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"donations": donations})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (s *Service) handleUpdateDonationStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	donationID := flow.Param(ctx, "donationID")

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status := types.DonationStatus(req.Status)
	if !status.Valid() {
		s.respondError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	donation, err := s.donations.Donation(ctx, donationID)
	if err != nil {
		if errors.Is(err, types.ErrDonationNotFound) {
			s.respondError(w, http.StatusNotFound, "Donation not found")
			return
		}
		s.logger.WithError(err).Error("failed to fetch donation")
		s.internalServerError(w)
		return
	}

	if !donation.Status.CanTransitionTo(status) {
		s.respondError(w, http.StatusBadRequest,
			fmt.Sprintf("Cannot change status from %s to %s", donation.Status, status))
		return
	}

	updated, err := s.donations.SetStatus(ctx, donationID, status)
	if err != nil {
		if errors.Is(err, types.ErrDonationNotFound) {
			s.respondError(w, http.StatusNotFound, "Donation not found")
			return
		}
		s.logger.WithError(err).Error("failed to set donation status")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"message":  "Donation status updated successfully",
		"donation": updated,
	})
}

// notify records an alert as a side effect of another workflow. Failures are
// logged, never surfaced: the triggering operation has already succeeded.
func (s *Service) notify(ctx context.Context, alert *types.Alert) {
	if err := s.alerts.Create(ctx, alert); err != nil {
		s.logger.WithError(err).WithField("alert_type", alert.Type).Error("failed to create alert")
	}
}

func relatedEntity(t types.RelatedEntityType) *types.RelatedEntityType {
	return &t
}
