package almanac

import (
	"testing"
	"time"
)

func at(month time.Month, day, hour int) time.Time {
	return time.Date(2025, month, day, hour, 30, 0, 0, time.UTC)
}

func TestTimeOfDayAt_Buckets(t *testing.T) {
	cases := []struct {
		hour int
		want TimeOfDay
	}{
		{0, Night},
		{4, Night},
		{5, EarlyMorning},
		{7, EarlyMorning},
		{8, Morning},
		{12, Lunch},
		{15, Afternoon},
		{18, Dinner},
		{21, Evening},
		{23, LateNight},
	}

	for _, tc := range cases {
		if got := TimeOfDayAt(at(time.June, 10, tc.hour)); got != tc.want {
			t.Errorf("hour %d: expected %s, got %s", tc.hour, tc.want, got)
		}
	}
}

func TestSeasonAt_MonthRanges(t *testing.T) {
	cases := []struct {
		month time.Month
		want  Season
	}{
		{time.January, Winter},
		{time.February, Winter},
		{time.March, Spring},
		{time.May, Spring},
		{time.June, Summer},
		{time.August, Summer},
		{time.September, Autumn},
		{time.November, Autumn},
		{time.December, Winter},
	}

	for _, tc := range cases {
		if got := SeasonAt(at(tc.month, 10, 12)); got != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.month, tc.want, got)
		}
	}
}

func TestSpecialDayAt_Christmas(t *testing.T) {
	day, ok := SpecialDayAt(at(time.December, 25, 9))
	if !ok {
		t.Fatal("expected December 25 to be a special day")
	}
	if day.Name != "Christmas" {
		t.Errorf("expected Christmas, got %s", day.Name)
	}
	if day.Category != "happy" {
		t.Errorf("expected happy category, got %s", day.Category)
	}
	if len(day.Hashtags) == 0 {
		t.Error("expected fixed hashtags")
	}
}

func TestSpecialDayAt_OrdinaryDay(t *testing.T) {
	if _, ok := SpecialDayAt(at(time.June, 11, 9)); ok {
		t.Error("expected June 11 to not be a special day")
	}
}

func TestSnapshotAt(t *testing.T) {
	now := time.Date(2025, time.October, 6, 12, 0, 0, 0, time.UTC) // a Monday
	snap := SnapshotAt(now)

	if snap.TimeOfDay != Lunch {
		t.Errorf("expected lunch, got %s", snap.TimeOfDay)
	}
	if snap.Weekday != time.Monday {
		t.Errorf("expected Monday, got %s", snap.Weekday)
	}
	if snap.Season != Autumn {
		t.Errorf("expected autumn, got %s", snap.Season)
	}
	if len(snap.Trends) != 0 {
		t.Error("expected no trends in a fresh snapshot")
	}
}

func TestWeekdayName(t *testing.T) {
	if got := WeekdayName(time.Date(2025, time.October, 5, 0, 0, 0, 0, time.UTC)); got != "sunday" {
		t.Errorf("expected sunday, got %s", got)
	}
}
