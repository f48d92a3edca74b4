package server

import (
	"errors"
	"fmt"
	"net/http"

	"sevaconnect/pkg/types"

	"github.com/alexedwards/flow"
)

type applyVolunteerRequest struct {
	DonorID      string   `json:"donorId"`
	NGOID        string   `json:"ngoId"`
	Skills       []string `json:"skills"`
	Availability struct {
		Days      []string `json:"days"`
		TimeSlots []string `json:"timeSlots"`
	} `json:"availability"`
	Message *string `json:"message"`
}

func (s *Service) handleVolunteerApply(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req applyVolunteerRequest
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
		s.logger.WithError(err).Error("failed to fetch ngo for application")
		s.internalServerError(w)
		return
	}

	application := &types.VolunteerApplication{
		DonorID:       donor.ID,
		NGOID:         ngo.ID,
		NGOName:       ngo.OrganizationName,
		Skills:        req.Skills,
		AvailableDays: req.Availability.Days,
		TimeSlots:     req.Availability.TimeSlots,
		Message:       req.Message,
	}

	if err := s.volunteers.Create(ctx, application); err != nil {
		if errors.Is(err, types.ErrAlreadyApplied) {
			s.respondError(w, http.StatusBadRequest, "You have already applied to volunteer for this NGO")
			return
		}
		s.logger.WithError(err).Error("failed to create volunteer application")
		s.internalServerError(w)
		return
	}

	s.notify(ctx, &types.Alert{
		NGOID:             ngo.ID,
		Type:              types.AlertTypeVolunteerRequest,
		Message:           fmt.Sprintf("New volunteer application from %s", donor.Name),
		Priority:          types.AlertPriorityMedium,
		RelatedEntityType: relatedEntity(types.RelatedEntityVolunteer),
		RelatedEntityID:   &application.ID,
	})

	s.respondJSON(w, http.StatusCreated, map[string]any{
		"message":       "Volunteer application submitted successfully",
		"applicationId": application.ID,
		"application":   application,
	})
}

func (s *Service) handleDonorApplications(w http.ResponseWriter, r *http.Request) {
	donorID := flow.Param(r.Context(), "donorID")

	applications, err := s.volunteers.ApplicationsByDonor(r.Context(), donorID)
	if err != nil {
		s.logger.WithError(err).Error("failed to list donor applications")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"applications": applications})
}

func (s *Service) handleNGOApplications(w http.ResponseWriter, r *http.Request) {
	ngoID := flow.Param(r.Context(), "ngoID")

	applications, err := s.volunteers.ApplicationsByNGO(r.Context(), ngoID)
	if err != nil {
		s.logger.WithError(err).Error("failed to list ngo applications")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"applications": applications})
}

func (s *Service) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	applicationID := flow.Param(ctx, "applicationID")

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status := types.ApplicationStatus(req.Status)
	if !status.Valid() {
		s.respondError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	application, err := s.volunteers.Application(ctx, applicationID)
	if err != nil {
		if errors.Is(err, types.ErrApplicationNotFound) {
			s.respondError(w, http.StatusNotFound, "Volunteer application not found")
			return
		}
		s.logger.WithError(err).Error("failed to fetch application")
		s.internalServerError(w)
		return
	}

	if !application.Status.CanTransitionTo(status) {
		s.respondError(w, http.StatusBadRequest,
			fmt.Sprintf("Cannot change status from %s to %s", application.Status, status))
		return
	}

	updated, err := s.volunteers.SetStatus(ctx, applicationID, status)
	if err != nil {
		if errors.Is(err, types.ErrApplicationNotFound) {
			s.respondError(w, http.StatusNotFound, "Volunteer application not found")
			return
		}
		s.logger.WithError(err).Error("failed to set application status")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"message":     "Volunteer application status updated successfully",
		"application": updated,
	})
}
