// Package almanac derives calendar context for content selection.
// All functions are pure over the supplied time, so jobs can be tested
// against any fixed clock.
package almanac

import (
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is the coarse daypart bucket used by the selector.
type TimeOfDay string

const (
	EarlyMorning TimeOfDay = "early_morning"
	Morning      TimeOfDay = "morning"
	Lunch        TimeOfDay = "lunch"
	Afternoon    TimeOfDay = "afternoon"
	Dinner       TimeOfDay = "dinner"
	Evening      TimeOfDay = "evening"
	LateNight    TimeOfDay = "late_night"
	Night        TimeOfDay = "night"
)

// Season for the northern hemisphere, by fixed month ranges.
type Season string

const (
	Spring Season = "spring"
	Summer Season = "summer"
	Autumn Season = "autumn"
	Winter Season = "winter"
)

// SpecialDay is a fixed-date calendar entry with its own template,
// category and hashtags. The template carries the {kaomoji} placeholder.
type SpecialDay struct {
	Name     string
	Template string
	Category string
	Hashtags []string
}

// specialDays is keyed by "MM/DD". At most one entry per calendar day.
var specialDays = map[string]SpecialDay{
	"01/01": {Name: "New Year", Template: "Happy New Year! {kaomoji}", Category: "happy", Hashtags: []string{"#NewYear", "#HappyNewYear"}},
	"02/14": {Name: "Valentine's Day", Template: "Happy Valentine's Day! {kaomoji}", Category: "love", Hashtags: []string{"#ValentinesDay", "#Love"}},
	"03/17": {Name: "St. Patrick's Day", Template: "Happy St. Patrick's Day! {kaomoji}", Category: "happy", Hashtags: []string{"#StPatricksDay", "#Lucky"}},
	"04/01": {Name: "April Fools", Template: "Happy April Fools' Day! {kaomoji}", Category: "surprised", Hashtags: []string{"#AprilFools", "#Pranks"}},
	"10/31": {Name: "Halloween", Template: "Happy Halloween! {kaomoji}", Category: "surprised", Hashtags: []string{"#Halloween", "#Spooky"}},
	"12/25": {Name: "Christmas", Template: "Merry Christmas! {kaomoji}", Category: "happy", Hashtags: []string{"#MerryChristmas", "#Christmas"}},
	"12/31": {Name: "New Year's Eve", Template: "Happy New Year's Eve! {kaomoji}", Category: "happy", Hashtags: []string{"#NewYearsEve", "#Countdown"}},
}

// TimeOfDayAt buckets the hour of day.
func TimeOfDayAt(now time.Time) TimeOfDay {
	switch hour := now.Hour(); {
	case hour < 5:
		return Night
	case hour < 8:
		return EarlyMorning
	case hour < 11:
		return Morning
	case hour < 14:
		return Lunch
	case hour < 17:
		return Afternoon
	case hour < 20:
		return Dinner
	case hour < 23:
		return Evening
	default:
		return LateNight
	}
}

// SeasonAt returns the season for the given date.
func SeasonAt(now time.Time) Season {
	switch now.Month() {
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	case time.September, time.October, time.November:
		return Autumn
	default:
		return Winter
	}
}

// WeekdayName returns the lowercase day-of-week name.
func WeekdayName(now time.Time) string {
	return strings.ToLower(now.Weekday().String())
}

// SpecialDayAt looks up today's entry in the fixed calendar.
func SpecialDayAt(now time.Time) (SpecialDay, bool) {
	key := fmt.Sprintf("%02d/%02d", int(now.Month()), now.Day())
	day, ok := specialDays[key]
	return day, ok
}

// Snapshot is the ephemeral context for one selection call. Trends are
// filled in by the caller when trending topics are enabled.
type Snapshot struct {
	Now       time.Time
	TimeOfDay TimeOfDay
	Weekday   time.Weekday
	Season    Season
	Trends    []string
}

// SnapshotAt builds a snapshot from a clock reading.
func SnapshotAt(now time.Time) Snapshot {
	return Snapshot{
		Now:       now,
		TimeOfDay: TimeOfDayAt(now),
		Weekday:   now.Weekday(),
		Season:    SeasonAt(now),
	}
}
