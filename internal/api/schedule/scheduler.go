package schedule

import (
	"slices"
	"time"

	"github.com/FACorreiaa/go-lazy-traveler/internal/types"
)

// BuildItinerary assigns one candidate per slot category. Candidates must
// already be distance-sorted and eligibility-filtered. For each slot, pass
// one takes the first unused candidate whose category is in the slot's
// preferred sub-tags; pass two falls back to the full catalog entry. A slot
// with no match in either pass is omitted and the itinerary shortens.
//
// The search is greedy and non-backtracking: an earlier slot's choice is
// never revisited even if a later slot's category would have matched it
// more specifically. That keeps the assignment linear and deterministic.
// Place uniqueness holds by construction via the used set.
func BuildItinerary(candidates []types.PlaceCandidate, template types.ScheduleTemplate, mapping types.PreferredTagMapping, startTime time.Time) types.Itinerary {
	itinerary := types.Itinerary{Template: template.Name}
	used := make(map[string]struct{})

	for i, category := range template.Categories {
		pref, ok := mapping.Lookup(category)
		if !ok {
			continue
		}

		idx := firstMatch(candidates, used, pref.Preferred)
		if idx < 0 {
			idx = firstMatch(candidates, used, pref.Fallback)
		}
		if idx < 0 {
			continue
		}

		chosen := candidates[idx]
		used[chosen.PlaceID] = struct{}{}

		var distance float64
		if chosen.DistanceKm != nil {
			distance = *chosen.DistanceKm
		}
		itinerary.Slots = append(itinerary.Slots, types.ScheduleSlot{
			TimeLabel:     startTime.Add(time.Duration(i) * time.Hour).Format("15:04"),
			Category:      category,
			PlaceID:       chosen.PlaceID,
			Name:          chosen.Name,
			PlaceCategory: chosen.Category,
			Address:       chosen.Address,
			OpeningHours:  chosen.OpeningHours,
			DistanceKm:    distance,
			Rating:        chosen.Rating,
			Website:       chosen.Website,
		})
	}
	return itinerary
}

// firstMatch returns the index of the first unused candidate whose category
// is one of the given sub-tags, or -1.
func firstMatch(candidates []types.PlaceCandidate, used map[string]struct{}, tags []string) int {
	for i, c := range candidates {
		if _, taken := used[c.PlaceID]; taken {
			continue
		}
		if slices.Contains(tags, c.Category) {
			return i
		}
	}
	return -1
}
