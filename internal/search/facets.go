package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"sevaconnect/pkg/types"
)

const (
	// A need must occur across at least this many verified NGOs to show up
	// as a facet value.
	minNeedOccurrences = 2

	maxNeedFacets = 20
)

// Facets returns the distinct categories, cities and states across verified
// NGOs, plus the common needs: values occurring in at least two verified
// NGOs, most frequent first, capped at twenty.
func (e *Engine) Facets(ctx context.Context) (*types.FilterFacets, error) {
	ngos, err := e.source.VerifiedNGOs(ctx, "", "", "")
	if err != nil {
		return nil, fmt.Errorf("fetch verified ngos: %w", err)
	}

	categories := make(map[string]struct{})
	cities := make(map[string]struct{})
	states := make(map[string]struct{})
	needCounts := make(map[string]int)

	for _, ngo := range ngos {
		if ngo.Category != "" {
			categories[ngo.Category] = struct{}{}
		}
		if ngo.City != "" {
			cities[ngo.City] = struct{}{}
		}
		if ngo.State != "" {
			states[ngo.State] = struct{}{}
		}

		// Count each need once per NGO even if listed twice.
		seen := make(map[string]struct{}, len(ngo.Needs))
		for _, need := range ngo.Needs {
			if need == "" {
				continue
			}
			if _, ok := seen[need]; ok {
				continue
			}
			seen[need] = struct{}{}
			needCounts[need]++
		}
	}

	return &types.FilterFacets{
		Categories: sortedKeys(categories),
		Cities:     sortedKeys(cities),
		States:     sortedKeys(states),
		Needs:      commonNeeds(needCounts),
	}, nil
}

func sortedKeys(values map[string]struct{}) []string {
	out := make([]string, 0, len(values))
	for v := range values {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func commonNeeds(counts map[string]int) []string {
	needs := make([]string, 0, len(counts))
	for need, count := range counts {
		if count >= minNeedOccurrences {
			needs = append(needs, need)
		}
	}

	sort.Slice(needs, func(i, j int) bool {
		if counts[needs[i]] != counts[needs[j]] {
			return counts[needs[i]] > counts[needs[j]]
		}
		return strings.ToLower(needs[i]) < strings.ToLower(needs[j])
	})

	if len(needs) > maxNeedFacets {
		needs = needs[:maxNeedFacets]
	}
	return needs
}
