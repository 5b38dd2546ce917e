package types

import "slices"

// TemplateUnavailable names the sentinel template returned outside the
// schedulable window (23:00-07:59). Its Reason carries the user-facing
// explanation; Categories is empty.
const TemplateUnavailable = "unavailable"

// ScheduleTemplate is the named, ordered list of slot categories selected
// for an hour-of-day bucket.
type ScheduleTemplate struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories,omitempty"`
	Reason     string   `json:"reason,omitempty"`
}

// Unavailable reports whether the template is the no-scheduling sentinel.
// Callers must check this before treating Categories as slots.
func (t ScheduleTemplate) Unavailable() bool {
	return t.Name == TemplateUnavailable
}

// InterestTagSet holds a user's declared preference tags. Order carries no
// meaning; resolution always follows catalog order.
type InterestTagSet []string

// Contains reports whether the tag is part of the set.
func (s InterestTagSet) Contains(tag string) bool {
	return slices.Contains(s, tag)
}

// CategoryPreference is the resolved tag selection for one slot category.
// Preferred is the catalog-ordered intersection with the user's tags, or
// the full catalog entry when that intersection is empty. Fallback is
// always the full catalog entry and backs the scheduler's second pass.
type CategoryPreference struct {
	Category  string   `json:"category"`
	Preferred []string `json:"preferred"`
	Fallback  []string `json:"fallback"`
}

// PreferredTagMapping maps each slot category to its resolved sub-tags,
// ordered by first appearance in the schedule template so earlier
// categories keep retrieval priority.
type PreferredTagMapping []CategoryPreference

// Lookup returns the preference entry for a category.
func (m PreferredTagMapping) Lookup(category string) (CategoryPreference, bool) {
	for _, p := range m {
		if p.Category == category {
			return p, true
		}
	}
	return CategoryPreference{}, false
}
