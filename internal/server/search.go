package server

import (
	"net/http"
	"strconv"
	"strings"

	"sevaconnect/pkg/types"
)

func (s *Service) handleSearchNGOs(w http.ResponseWriter, r *http.Request) {
	filters, err := parseSearchFilters(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	response, err := s.searcher.Search(r.Context(), filters)
	if err != nil {
		s.logger.WithError(err).Error("ngo search failed")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, response)
}

func (s *Service) handleSearchFilters(w http.ResponseWriter, r *http.Request) {
	facets, err := s.searcher.Facets(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to build filter facets")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, facets)
}

// parseSearchFilters decodes the query string into SearchFilters. The caller
// location arrives either as separate lat/lng parameters or as a combined
// userLocation=lat,lng pair.
func parseSearchFilters(r *http.Request) (*types.SearchFilters, error) {
	values := r.URL.Query()

	var filters types.SearchFilters
	if err := queryDecoder.Decode(&filters, values); err != nil {
		return nil, errInvalidSearchQuery
	}

	// needs may arrive repeated or comma-separated; normalize either way.
	filters.Needs = splitCSV(filters.Needs)

	if loc := values.Get("userLocation"); loc != "" && filters.UserLocation() == nil {
		lat, lng, ok := parseLatLng(loc)
		if !ok {
			return nil, errInvalidSearchQuery
		}
		filters.Lat = &lat
		filters.Lng = &lng
	}

	return &filters, nil
}

var errInvalidSearchQuery = searchQueryError("invalid search parameters")

type searchQueryError string

func (e searchQueryError) Error() string { return string(e) }

func parseLatLng(s string) (lat, lng float64, ok bool) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, false
	}
	lng, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, false
	}

	return lat, lng, true
}

func splitCSV(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
