package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// resolveProfile picks the profile a user typed. An exact id wins, then an
// exact name (case-insensitive), then the single closest fuzzy name match.
func resolveProfile(profiles []profileView, query string) (*profileView, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty profile name")
	}

	for i := range profiles {
		if profiles[i].ID == query {
			return &profiles[i], nil
		}
	}

	var named []int
	for i := range profiles {
		if strings.EqualFold(profiles[i].Name, query) {
			named = append(named, i)
		}
	}
	switch len(named) {
	case 1:
		return &profiles[named[0]], nil
	case 0:
	default:
		return nil, ambiguous(query, profiles, named)
	}

	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	if len(ranks) == 0 {
		return nil, fmt.Errorf("no profile matches %q", query)
	}
	sort.Sort(ranks)

	best := []int{ranks[0].OriginalIndex}
	for _, r := range ranks[1:] {
		if r.Distance == ranks[0].Distance {
			best = append(best, r.OriginalIndex)
		}
	}
	if len(best) > 1 {
		return nil, ambiguous(query, profiles, best)
	}
	return &profiles[best[0]], nil
}

func ambiguous(query string, profiles []profileView, idx []int) error {
	candidates := make([]string, len(idx))
	for i, n := range idx {
		candidates[i] = fmt.Sprintf("%s (%s)", profiles[n].Name, shortID(profiles[n].ID))
	}
	return fmt.Errorf("%q matches several profiles: %s; use the id", query, strings.Join(candidates, ", "))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
