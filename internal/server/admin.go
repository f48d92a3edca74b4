package server

import (
	"errors"
	"net/http"

	"sevaconnect/pkg/types"

	"github.com/alexedwards/flow"
)

type pendingNGOView struct {
	ngoView
	User *pendingNGOUser `json:"user,omitempty"`
}

type pendingNGOUser struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

func (s *Service) handlePendingNGOs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ngos, err := s.ngos.NGOsByStatus(ctx, types.VerificationStatusPending)
	if err != nil {
		s.logger.WithError(err).Error("failed to list pending ngos")
		s.internalServerError(w)
		return
	}

	views := make([]*pendingNGOView, 0, len(ngos))
	for _, ngo := range ngos {
		view := &pendingNGOView{ngoView: newNGOView(ngo)}

		owner, err := s.users.User(ctx, ngo.UserID)
		if err != nil && !errors.Is(err, types.ErrUserNotFound) {
			s.logger.WithError(err).Error("failed to fetch ngo owner")
			s.internalServerError(w)
			return
		}
		if owner != nil {
			view.User = &pendingNGOUser{
				Name:  owner.Name,
				Email: owner.Email,
				Phone: owner.Phone,
			}
		}

		views = append(views, view)
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"ngos": views})
}

func (s *Service) handleVerifyNGO(w http.ResponseWriter, r *http.Request) {
	ngoID := flow.Param(r.Context(), "ngoID")

	ngo, err := s.ngos.SetVerificationStatus(r.Context(), ngoID, types.VerificationStatusVerified, nil)
	if err != nil {
		if errors.Is(err, types.ErrNGONotFound) {
			s.respondError(w, http.StatusNotFound, "NGO not found")
			return
		}
		s.logger.WithError(err).Error("failed to verify ngo")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"message": "NGO verified successfully",
		"ngo":     newNGOView(ngo),
	})
}

type rejectNGORequest struct {
	Reason string `json:"reason"`
}

func (s *Service) handleRejectNGO(w http.ResponseWriter, r *http.Request) {
	ngoID := flow.Param(r.Context(), "ngoID")

	var req rejectNGORequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Reason == "" {
		s.respondError(w, http.StatusBadRequest, "Rejection reason is required")
		return
	}

	ngo, err := s.ngos.SetVerificationStatus(r.Context(), ngoID, types.VerificationStatusRejected, &req.Reason)
	if err != nil {
		if errors.Is(err, types.ErrNGONotFound) {
			s.respondError(w, http.StatusNotFound, "NGO not found")
			return
		}
		s.logger.WithError(err).Error("failed to reject ngo")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"message": "NGO rejected",
		"ngo":     newNGOView(ngo),
	})
}

func (s *Service) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	totalNGOs, err := s.ngos.CountByStatus(ctx, "")
	if err != nil {
		s.logger.WithError(err).Error("failed to count ngos")
		s.internalServerError(w)
		return
	}

	verifiedNGOs, err := s.ngos.CountByStatus(ctx, types.VerificationStatusVerified)
	if err != nil {
		s.logger.WithError(err).Error("failed to count verified ngos")
		s.internalServerError(w)
		return
	}

	pendingNGOs, err := s.ngos.CountByStatus(ctx, types.VerificationStatusPending)
	if err != nil {
		s.logger.WithError(err).Error("failed to count pending ngos")
		s.internalServerError(w)
		return
	}

	totalDonors, err := s.users.CountByRole(ctx, types.UserRoleDonor)
	if err != nil {
		s.logger.WithError(err).Error("failed to count donors")
		s.internalServerError(w)
		return
	}

	totalDonations, err := s.donations.Count(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to count donations")
		s.internalServerError(w)
		return
	}

	recent, err := s.donations.RecentDonations(ctx, 5)
	if err != nil {
		s.logger.WithError(err).Error("failed to list recent donations")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"stats": map[string]any{
			"totalNGOs":      totalNGOs,
			"verifiedNGOs":   verifiedNGOs,
			"pendingNGOs":    pendingNGOs,
			"totalDonors":    totalDonors,
			"totalDonations": totalDonations,
		},
		"recentDonations": recent,
	})
}
