package search

import (
	"context"
	"testing"
	"time"

	"sevaconnect/internal/utils"
	"sevaconnect/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	ngos []*types.NGO

	// captured arguments from the last VerifiedNGOs call
	category, city, state string
}

func (f *fakeSource) VerifiedNGOs(_ context.Context, category, city, state string) ([]*types.NGO, error) {
	f.category, f.city, f.state = category, city, state

	out := make([]*types.NGO, 0, len(f.ngos))
	for _, ngo := range f.ngos {
		if category != "" && ngo.Category != category {
			continue
		}
		if city != "" && ngo.City != city {
			continue
		}
		if state != "" && ngo.State != state {
			continue
		}
		out = append(out, ngo)
	}
	return out, nil
}

func testNGOs() []*types.NGO {
	base := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	return []*types.NGO{
		{
			ID:                 "ngo-mumbai",
			OrganizationName:   "Seva Shelter",
			Description:        "Shelter support for homeless families",
			City:               "Mumbai",
			State:              "Maharashtra",
			Lat:                19.0760,
			Lng:                72.8777,
			Category:           "shelter",
			Needs:              []string{"blankets", "rice"},
			Tags:               []string{"shelter", "mumbai"},
			VerificationStatus: types.VerificationStatusVerified,
			CreatedAt:          base,
		},
		{
			ID:                 "ngo-pune",
			OrganizationName:   "Annapurna Kitchen",
			Description:        "Daily meals for school children",
			City:               "Pune",
			State:              "Maharashtra",
			Lat:                18.5204,
			Lng:                73.8567,
			Category:           "food",
			Needs:              []string{"rice", "lentils"},
			Tags:               []string{"food", "pune"},
			VerificationStatus: types.VerificationStatusVerified,
			CreatedAt:          base.Add(48 * time.Hour),
		},
		{
			ID:                 "ngo-delhi",
			OrganizationName:   "Bright Futures",
			Description:        "Education for first-generation students",
			City:               "New Delhi",
			State:              "Delhi",
			Lat:                28.6139,
			Lng:                77.2090,
			Category:           "education",
			Needs:              []string{"notebooks"},
			Tags:               []string{"education", "delhi"},
			VerificationStatus: types.VerificationStatusVerified,
			CreatedAt:          base.Add(24 * time.Hour),
		},
	}
}

func newTestEngine() (*Engine, *fakeSource) {
	source := &fakeSource{ngos: testNGOs()}
	return NewEngine(source), source
}

func resultIDs(resp *types.SearchResponse) []string {
	ids := make([]string, len(resp.NGOs))
	for i, ngo := range resp.NGOs {
		ids[i] = ngo.ID
	}
	return ids
}

func TestSearch_NoFilters(t *testing.T) {
	engine, _ := newTestEngine()

	resp, err := engine.Search(context.Background(), &types.SearchFilters{})
	require.NoError(t, err)

	// Everything verified comes back, sorted by name.
	assert.Equal(t, []string{"ngo-pune", "ngo-delhi", "ngo-mumbai"}, resultIDs(resp))
	assert.Equal(t, 3, resp.TotalCount)
	for _, ngo := range resp.NGOs {
		assert.Nil(t, ngo.Distance)
	}
}

func TestSearch_CategoryFilter(t *testing.T) {
	engine, source := newTestEngine()

	resp, err := engine.Search(context.Background(), &types.SearchFilters{Category: "food"})
	require.NoError(t, err)

	assert.Equal(t, "food", source.category)
	assert.Equal(t, []string{"ngo-pune"}, resultIDs(resp))
}

func TestSearch_TextTokens(t *testing.T) {
	engine, _ := newTestEngine()

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{
			name:   "single token matches name",
			search: "shelter",
			want:   []string{"ngo-mumbai"},
		},
		{
			name:   "token matches description",
			search: "meals",
			want:   []string{"ngo-pune"},
		},
		{
			name:   "token matches needs",
			search: "notebooks",
			want:   []string{"ngo-delhi"},
		},
		{
			name:   "multiple tokens union across ngos",
			search: "shelter notebooks",
			want:   []string{"ngo-delhi", "ngo-mumbai"},
		},
		{
			name:   "case insensitive",
			search: "SHELTER",
			want:   []string{"ngo-mumbai"},
		},
		{
			name:   "no match",
			search: "submarine",
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := engine.Search(context.Background(), &types.SearchFilters{Search: tt.search})
			require.NoError(t, err)
			assert.Equal(t, tt.want, resultIDs(resp))
		})
	}
}

func TestSearch_NeedsIntersection(t *testing.T) {
	engine, _ := newTestEngine()

	resp, err := engine.Search(context.Background(), &types.SearchFilters{Needs: []string{"RICE"}})
	require.NoError(t, err)

	// Case-insensitive match; any overlap qualifies.
	assert.Equal(t, []string{"ngo-pune", "ngo-mumbai"}, resultIDs(resp))
}

func TestSearch_DistanceFilter(t *testing.T) {
	engine, _ := newTestEngine()

	mumbai := types.Location{Lat: 19.0760, Lng: 72.8777}

	resp, err := engine.Search(context.Background(), &types.SearchFilters{
		Lat:         utils.Float64Ptr(mumbai.Lat),
		Lng:         utils.Float64Ptr(mumbai.Lng),
		MaxDistance: 1,
	})
	require.NoError(t, err)

	require.Equal(t, []string{"ngo-mumbai"}, resultIDs(resp))
	require.NotNil(t, resp.NGOs[0].Distance)
	assert.InDelta(t, 0, *resp.NGOs[0].Distance, 0.001)
}

func TestSearch_DistanceAnnotatedWithoutMax(t *testing.T) {
	engine, _ := newTestEngine()

	resp, err := engine.Search(context.Background(), &types.SearchFilters{
		Lat: utils.Float64Ptr(19.0760),
		Lng: utils.Float64Ptr(72.8777),
	})
	require.NoError(t, err)

	// No radius set: nothing filtered out, but every result is annotated.
	require.Len(t, resp.NGOs, 3)
	for _, ngo := range resp.NGOs {
		require.NotNil(t, ngo.Distance)
	}
}

func TestSearch_SortByDistance(t *testing.T) {
	engine, _ := newTestEngine()

	resp, err := engine.Search(context.Background(), &types.SearchFilters{
		Lat:    utils.Float64Ptr(19.0760),
		Lng:    utils.Float64Ptr(72.8777),
		SortBy: types.SortByDistance,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"ngo-mumbai", "ngo-pune", "ngo-delhi"}, resultIDs(resp))
}

func TestSearch_SortByDistanceWithoutLocation(t *testing.T) {
	engine, _ := newTestEngine()

	// Distance sort without coordinates degrades to source order.
	resp, err := engine.Search(context.Background(), &types.SearchFilters{SortBy: types.SortByDistance})
	require.NoError(t, err)

	assert.Equal(t, []string{"ngo-mumbai", "ngo-pune", "ngo-delhi"}, resultIDs(resp))
}

func TestSearch_SortByRecent(t *testing.T) {
	engine, _ := newTestEngine()

	resp, err := engine.Search(context.Background(), &types.SearchFilters{SortBy: types.SortByRecent})
	require.NoError(t, err)

	assert.Equal(t, []string{"ngo-pune", "ngo-delhi", "ngo-mumbai"}, resultIDs(resp))
}

func TestSearch_UnknownSortFallsBackToName(t *testing.T) {
	engine, _ := newTestEngine()

	resp, err := engine.Search(context.Background(), &types.SearchFilters{SortBy: "elevation"})
	require.NoError(t, err)

	assert.Equal(t, []string{"ngo-pune", "ngo-delhi", "ngo-mumbai"}, resultIDs(resp))
}

func TestDistance(t *testing.T) {
	a := types.Location{Lat: 19.0, Lng: 72.0}

	assert.InDelta(t, 0, Distance(a, a), 0.0001)
	assert.InDelta(t, KilometersPerDegree, Distance(a, types.Location{Lat: 20.0, Lng: 72.0}), 0.0001)

	// Symmetric.
	b := types.Location{Lat: 18.5, Lng: 73.8}
	assert.InDelta(t, Distance(a, b), Distance(b, a), 0.0001)
}
