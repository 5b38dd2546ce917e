package types

// PlaceCandidate is a place record returned by the semantic index. The
// pipeline treats it as read-only except for DistanceKm, which the distance
// sort computes and attaches. Latitude/Longitude are pointers because index
// records may lack coordinates; such candidates are dropped from ranking.
type PlaceCandidate struct {
	PlaceID      string   `json:"place_id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Address      string   `json:"address"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	OpeningHours string   `json:"opening_hours,omitempty"`
	Website      string   `json:"website,omitempty"`
	DistanceKm   *float64 `json:"distance_km,omitempty"`
}

// HasCoordinates reports whether the candidate carries a usable location.
func (p PlaceCandidate) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// ScheduleSlot is one time-labeled stop of an itinerary, carrying a copy of
// the chosen candidate's display fields.
type ScheduleSlot struct {
	TimeLabel     string   `json:"time"`
	Category      string   `json:"category"`
	PlaceID       string   `json:"place_id"`
	Name          string   `json:"name"`
	PlaceCategory string   `json:"place_category"`
	Address       string   `json:"address"`
	OpeningHours  string   `json:"opening_hours,omitempty"`
	DistanceKm    float64  `json:"distance_km"`
	Rating        *float64 `json:"rating,omitempty"`
	Website       string   `json:"website,omitempty"`
}

// Itinerary is the ordered, deduplicated output of the slot scheduler. It
// may be shorter than the requested slot count when a category had no
// eligible candidate; no two slots reference the same place.
type Itinerary struct {
	Template string         `json:"template"`
	Slots    []ScheduleSlot `json:"slots"`
}
