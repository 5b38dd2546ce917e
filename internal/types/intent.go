package types

// Intent is the classified purpose of a free-text query.
type Intent string

const (
	IntentFunction Intent = "function"
	IntentPlace    Intent = "place"
	IntentSchedule Intent = "schedule"
	IntentUnknown  Intent = "unknown"
)

// KnownIntents lists every label the classifier is allowed to return. Any
// other label is a classification error and routes to unknown.
var KnownIntents = []Intent{IntentFunction, IntentPlace, IntentSchedule, IntentUnknown}

// ValidIntent reports whether the label is one the router accepts.
func ValidIntent(label string) bool {
	for _, i := range KnownIntents {
		if string(i) == label {
			return true
		}
	}
	return false
}

// RouteResult is the structured outcome of routing one query. Exactly one
// of Answer, Places, Itinerary or Message is populated depending on the
// route taken; rendering is the consumer's concern.
type RouteResult struct {
	Intent    Intent           `json:"intent"`
	Answer    string           `json:"answer,omitempty"`
	Places    []PlaceCandidate `json:"places,omitempty"`
	Itinerary *Itinerary       `json:"itinerary,omitempty"`
	Message   string           `json:"message,omitempty"`
}
