package server

import (
	"errors"
	"net/http"
	"strings"

	"sevaconnect/pkg/types"

	"github.com/alexedwards/flow"
)

// ngoView is the public projection of an NGO: nested address/location, no
// owning user id or rejection detail.
type ngoView struct {
	ID                 string                   `json:"id"`
	OrganizationName   string                   `json:"organizationName"`
	Description        string                   `json:"description"`
	Address            types.Address            `json:"address"`
	Location           types.Location           `json:"location"`
	Category           string                   `json:"category"`
	Needs              []string                 `json:"needs"`
	Contact            string                   `json:"contact"`
	Tags               []string                 `json:"tags"`
	VerificationStatus types.VerificationStatus `json:"verificationStatus"`
}

func newNGOView(ngo *types.NGO) ngoView {
	return ngoView{
		ID:                 ngo.ID,
		OrganizationName:   ngo.OrganizationName,
		Description:        ngo.Description,
		Address:            ngo.Address(),
		Location:           ngo.Location(),
		Category:           ngo.Category,
		Needs:              ngo.Needs,
		Contact:            ngo.Contact,
		Tags:               ngo.Tags,
		VerificationStatus: ngo.VerificationStatus,
	}
}

func (s *Service) handleListNGOs(w http.ResponseWriter, r *http.Request) {
	ngos, err := s.ngos.VerifiedNGOs(r.Context(), "", "", "")
	if err != nil {
		s.logger.WithError(err).Error("failed to list verified ngos")
		s.internalServerError(w)
		return
	}

	views := make([]ngoView, len(ngos))
	for i, ngo := range ngos {
		views[i] = newNGOView(ngo)
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"ngos": views})
}

func (s *Service) handleGetNGO(w http.ResponseWriter, r *http.Request) {
	ngoID := flow.Param(r.Context(), "ngoID")

	ngo, err := s.ngos.NGO(r.Context(), ngoID)
	if err != nil {
		if errors.Is(err, types.ErrNGONotFound) {
			s.respondError(w, http.StatusNotFound, "NGO not found")
			return
		}
		s.logger.WithError(err).Error("failed to fetch ngo")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"ngo": newNGOView(ngo)})
}

type updateNGORequest struct {
	OrganizationName *string `json:"organizationName"`
	Description      *string `json:"description"`
	Contact          *string `json:"contact"`
	Category         *string `json:"category"`
	Address          *struct {
		Street  *string `json:"street"`
		City    *string `json:"city"`
		State   *string `json:"state"`
		ZipCode *string `json:"zipCode"`
		Country *string `json:"country"`
	} `json:"address"`
	Location *types.Location `json:"location"`
	Needs    *[]string       `json:"needs"`
	Tags     *[]string       `json:"tags"`
}

// handleUpdateNGO applies a partial update onto the stored profile. The
// verification status is not editable here; that belongs to moderation.
func (s *Service) handleUpdateNGO(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ngoID := flow.Param(ctx, "ngoID")

	var req updateNGORequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ngo, err := s.ngos.NGO(ctx, ngoID)
	if err != nil {
		if errors.Is(err, types.ErrNGONotFound) {
			s.respondError(w, http.StatusNotFound, "NGO not found")
			return
		}
		s.logger.WithError(err).Error("failed to fetch ngo for update")
		s.internalServerError(w)
		return
	}

	if req.OrganizationName != nil {
		ngo.OrganizationName = *req.OrganizationName
	}
	if req.Description != nil {
		ngo.Description = *req.Description
	}
	if req.Contact != nil {
		ngo.Contact = *req.Contact
	}
	if req.Category != nil {
		ngo.Category = *req.Category
	}
	if req.Address != nil {
		if req.Address.Street != nil {
			ngo.Street = *req.Address.Street
		}
		if req.Address.City != nil {
			ngo.City = *req.Address.City
		}
		if req.Address.State != nil {
			ngo.State = *req.Address.State
		}
		if req.Address.ZipCode != nil {
			ngo.ZipCode = *req.Address.ZipCode
		}
		if req.Address.Country != nil {
			ngo.Country = *req.Address.Country
		}
	}
	if req.Location != nil {
		ngo.Lat = req.Location.Lat
		ngo.Lng = req.Location.Lng
	}
	if req.Needs != nil {
		ngo.Needs = *req.Needs
	}
	if req.Tags != nil {
		ngo.Tags = *req.Tags
	}

	if err := s.ngos.Update(ctx, ngoID, ngo); err != nil {
		if errors.Is(err, types.ErrNGONotFound) {
			s.respondError(w, http.StatusNotFound, "NGO not found")
			return
		}
		s.logger.WithError(err).Error("failed to update ngo")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"message": "NGO updated successfully",
		"ngo":     newNGOView(ngo),
	})
}

type addNeedRequest struct {
	Need string `json:"need"`
}

func (s *Service) handleAddNGONeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ngoID := flow.Param(ctx, "ngoID")

	var req addNeedRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Need = strings.TrimSpace(req.Need)
	if req.Need == "" {
		s.respondError(w, http.StatusBadRequest, "Need is required")
		return
	}

	needs, err := s.ngos.AddNeed(ctx, ngoID, req.Need)
	if err != nil {
		if errors.Is(err, types.ErrNGONotFound) {
			s.respondError(w, http.StatusNotFound, "NGO not found")
			return
		}
		s.logger.WithError(err).Error("failed to add ngo need")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"message": "Need added successfully",
		"needs":   needs,
	})
}
