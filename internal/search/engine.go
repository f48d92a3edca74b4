package search

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"sevaconnect/pkg/types"
)

// KilometersPerDegree is the rough flat-earth conversion used for radius
// filtering: straight-line distance on raw lat/lng degrees times ~111 km per
// degree. Good enough at city scale near the tropics; it is not a geodesic
// and accuracy degrades with latitude and distance.
const KilometersPerDegree = 111.0

// NGOSource supplies the verified NGOs a search may consider. The equality
// and substring filters are pushed down; everything else happens here.
type NGOSource interface {
	VerifiedNGOs(ctx context.Context, category, city, state string) ([]*types.NGO, error)
}

// Engine answers NGO searches over the publicly visible (verified) set. All
// supplied filters combine with logical AND.
type Engine struct {
	source NGOSource
}

func NewEngine(source NGOSource) *Engine {
	return &Engine{source: source}
}

// match pairs a projected result with the fields sorting needs but the public
// projection drops.
type match struct {
	result    *types.NGOSearchResult
	createdAt time.Time
}

func (e *Engine) Search(ctx context.Context, filters *types.SearchFilters) (*types.SearchResponse, error) {
	ngos, err := e.source.VerifiedNGOs(ctx, filters.Category, filters.City, filters.State)
	if err != nil {
		return nil, fmt.Errorf("fetch candidate ngos: %w", err)
	}

	tokens := tokenize(filters.Search)
	userLocation := filters.UserLocation()

	matches := make([]match, 0, len(ngos))
	for _, ngo := range ngos {
		if len(tokens) > 0 && !matchesText(ngo, tokens) {
			continue
		}
		if len(filters.Needs) > 0 && !intersects(ngo.Needs, filters.Needs) {
			continue
		}

		result := project(ngo)

		if userLocation != nil {
			d := Distance(*userLocation, ngo.Location())
			if filters.MaxDistance > 0 && d > filters.MaxDistance {
				continue
			}
			result.Distance = &d
		}

		matches = append(matches, match{result: result, createdAt: ngo.CreatedAt})
	}

	sortMatches(matches, filters.SortBy, userLocation != nil)

	results := make([]*types.NGOSearchResult, len(matches))
	for i, m := range matches {
		results[i] = m.result
	}

	return &types.SearchResponse{
		NGOs:       results,
		TotalCount: len(results),
		Filters:    *filters,
	}, nil
}

// Distance approximates the straight-line distance between two coordinates in
// kilometers using the Euclidean norm on raw degrees.
func Distance(a, b types.Location) float64 {
	dLat := a.Lat - b.Lat
	dLng := a.Lng - b.Lng
	return math.Sqrt(dLat*dLat+dLng*dLng) * KilometersPerDegree
}

func tokenize(s string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(s)))
}

// matchesText reports whether any token appears, case-insensitively, in the
// NGO's name, description, needs or tags. OR across tokens mirrors the text
// index the search was originally built on.
func matchesText(ngo *types.NGO, tokens []string) bool {
	var b strings.Builder
	b.WriteString(ngo.OrganizationName)
	b.WriteByte(' ')
	b.WriteString(ngo.Description)
	for _, need := range ngo.Needs {
		b.WriteByte(' ')
		b.WriteString(need)
	}
	for _, tag := range ngo.Tags {
		b.WriteByte(' ')
		b.WriteString(tag)
	}

	haystack := strings.ToLower(b.String())
	for _, token := range tokens {
		if strings.Contains(haystack, token) {
			return true
		}
	}
	return false
}

func intersects(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

func project(ngo *types.NGO) *types.NGOSearchResult {
	return &types.NGOSearchResult{
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

// sortMatches orders matches per sortBy. Distance sort silently degrades to
// insertion order when no user location was supplied; anything unrecognized
// sorts by name.
func sortMatches(matches []match, sortBy types.SortOrder, hasLocation bool) {
	switch sortBy {
	case types.SortByDistance:
		if !hasLocation {
			return
		}
		sort.SliceStable(matches, func(i, j int) bool {
			return *matches[i].result.Distance < *matches[j].result.Distance
		})
	case types.SortByRecent:
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].createdAt.After(matches[j].createdAt)
		})
	default:
		sort.SliceStable(matches, func(i, j int) bool {
			return strings.ToLower(matches[i].result.OrganizationName) < strings.ToLower(matches[j].result.OrganizationName)
		})
	}
}
