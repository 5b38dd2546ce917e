package places

import (
	"math"
	"sort"

	"github.com/FACorreiaa/go-lazy-traveler/internal/types"
)

// Haversine calculates the great-circle distance between two coordinates.
// Returns distance in kilometers.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371 // Earth's radius in kilometers

	lat1Rad := lat1 * math.Pi / 180
	lon1Rad := lon1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lon2Rad := lon2 * math.Pi / 180

	dlat := lat2Rad - lat1Rad
	dlon := lon2Rad - lon1Rad

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return R * c
}

// SortByDistance attaches the distance from the user's position to every
// located candidate and returns them in stable ascending order. Candidates
// without coordinates are excluded rather than ranked at 0,0, so incomplete
// index records never outrank real ones.
func SortByDistance(candidates []types.PlaceCandidate, userLat, userLon float64) []types.PlaceCandidate {
	located := make([]types.PlaceCandidate, 0, len(candidates))
	for _, c := range candidates {
		if !c.HasCoordinates() {
			continue
		}
		d := Haversine(userLat, userLon, *c.Latitude, *c.Longitude)
		c.DistanceKm = &d
		located = append(located, c)
	}

	sort.SliceStable(located, func(i, j int) bool {
		return *located[i].DistanceKm < *located[j].DistanceKm
	})
	return located
}
