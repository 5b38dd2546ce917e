package schedule

import (
	"slices"
	"time"

	"github.com/FACorreiaa/go-lazy-traveler/internal/types"
)

// Slot category names shared by the hour-bucket table and the catalog.
const (
	CategorySights    = "sights"
	CategoryFood      = "food"
	CategoryBreakfast = "breakfast"
	CategoryLateNight = "late-night"
	CategoryCafe      = "cafe"
)

// UnavailableReason is the user-facing explanation carried by the sentinel
// template outside the schedulable window.
const UnavailableReason = "Scheduling isn't available right now. Itineraries can be planned between 08:00 and 23:00. Shall we start with tomorrow 08:00?"

// HourBucket maps the half-open hour range [StartHour, EndHour) to a named
// template. Buckets are evaluated top-down; hours no bucket claims fall
// through to the unavailable sentinel.
type HourBucket struct {
	StartHour  int
	EndHour    int
	Name       string
	Categories []string
}

// DefaultHourBuckets reproduces the production schedule table. The 23:00 to
// 07:59 band is intentionally absent: it is the unavailable window.
func DefaultHourBuckets() []HourBucket {
	return []HourBucket{
		{8, 10, "morning", []string{CategoryBreakfast, CategorySights, CategorySights, CategoryFood}},
		{10, 14, "lunch", []string{CategoryFood, CategorySights, CategoryCafe, CategorySights}},
		{14, 15, "afternoon", []string{CategorySights, CategoryCafe, CategorySights, CategorySights}},
		{15, 16, "afternoon", []string{CategorySights, CategoryCafe, CategorySights, CategoryFood}},
		{16, 17, "late-afternoon", []string{CategorySights, CategoryCafe, CategoryFood, CategorySights}},
		{17, 19, "early-evening", []string{CategoryFood, CategorySights, CategorySights, CategoryLateNight}},
		{19, 20, "evening", []string{CategoryFood, CategorySights, CategoryLateNight, CategoryLateNight}},
		{20, 21, "night-early", []string{CategorySights, CategoryLateNight, CategoryLateNight}},
		{21, 22, "night-mid", []string{CategoryLateNight, CategoryLateNight}},
		{22, 23, "night-late", []string{CategoryLateNight}},
	}
}

// SelectTemplate picks the schedule template for the local time. Pure
// function of now.Hour(); callers must check Unavailable() before treating
// Categories as slots.
func SelectTemplate(now time.Time, buckets []HourBucket) types.ScheduleTemplate {
	hour := now.Hour()
	for _, b := range buckets {
		if b.StartHour <= hour && hour < b.EndHour {
			return types.ScheduleTemplate{
				Name:       b.Name,
				Categories: slices.Clone(b.Categories),
			}
		}
	}
	return types.ScheduleTemplate{
		Name:   types.TemplateUnavailable,
		Reason: UnavailableReason,
	}
}
