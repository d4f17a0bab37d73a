package services

import (
	"errors"
	"testing"
	"time"
)

func TestWeekStartFindsPrecedingSunday(t *testing.T) {
	tests := []struct {
		name   string
		anchor time.Time
		want   string
	}{
		{
			name:   "friday mid march",
			anchor: time.Date(2024, time.March, 15, 13, 45, 0, 0, time.UTC),
			want:   "2024-03-10",
		},
		{
			name:   "sunday is its own start",
			anchor: time.Date(2024, time.March, 17, 0, 0, 0, 0, time.UTC),
			want:   "2024-03-17",
		},
		{
			name:   "saturday late evening",
			anchor: time.Date(2024, time.March, 16, 23, 59, 59, 0, time.UTC),
			want:   "2024-03-10",
		},
		{
			name:   "crosses month boundary",
			anchor: time.Date(2024, time.May, 2, 8, 0, 0, 0, time.UTC),
			want:   "2024-04-28",
		},
		{
			name:   "crosses year boundary",
			anchor: time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC),
			want:   "2024-12-29",
		},
		{
			name:   "leap day",
			anchor: time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC),
			want:   "2024-02-25",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ISODate(WeekStart(tt.anchor)); got != tt.want {
				t.Fatalf("WeekStart() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestWeekStartInvariantsAcrossTwoYears(t *testing.T) {
	location, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	day := time.Date(2023, time.January, 1, 18, 30, 0, 0, location)
	for index := 0; index < 730; index++ {
		current := day.AddDate(0, 0, index)
		start := WeekStart(current)

		if start.Weekday() != time.Sunday {
			t.Fatalf("WeekStart(%s) = %s, which is a %s", ISODate(current), ISODate(start), start.Weekday())
		}
		if start.After(current) {
			t.Fatalf("WeekStart(%s) = %s is after the anchor", ISODate(current), ISODate(start))
		}
		if !current.Before(start.AddDate(0, 0, DaysPerWeek)) {
			t.Fatalf("anchor %s falls outside the window starting %s", ISODate(current), ISODate(start))
		}
		if again := WeekStart(start); !again.Equal(start) {
			t.Fatalf("WeekStart is not idempotent for %s: got %s", ISODate(start), ISODate(again))
		}
	}
}

func TestWeekDatesReturnsSevenConsecutiveDays(t *testing.T) {
	start := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	dates := WeekDates(start)

	want := []string{"2024-03-10", "2024-03-11", "2024-03-12", "2024-03-13", "2024-03-14", "2024-03-15", "2024-03-16"}
	if len(dates) != len(want) {
		t.Fatalf("WeekDates() returned %d dates, want %d", len(dates), len(want))
	}
	for index, date := range dates {
		if ISODate(date) != want[index] {
			t.Fatalf("WeekDates()[%d] = %s, want %s", index, ISODate(date), want[index])
		}
		if index > 0 && !date.After(dates[index-1]) {
			t.Fatalf("WeekDates() is not strictly increasing at %d", index)
		}
	}
	if !dates[0].Equal(start) {
		t.Fatalf("WeekDates()[0] = %v, want %v", dates[0], start)
	}
}

func TestWeekDatesAcrossDaylightSavingChange(t *testing.T) {
	location, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	dates := WeekDates(time.Date(2024, time.March, 31, 0, 0, 0, 0, location))
	if got := ISODate(dates[6]); got != "2024-04-06" {
		t.Fatalf("last date = %s, want 2024-04-06", got)
	}
	for _, date := range dates {
		if date.Hour() != 0 {
			t.Fatalf("expected midnight for %s, got hour %d", ISODate(date), date.Hour())
		}
	}
}

func TestISODateIgnoresTimeOfDay(t *testing.T) {
	location := time.FixedZone("UTC+14", 14*60*60)
	late := time.Date(2024, time.March, 10, 23, 30, 0, 0, location)
	early := time.Date(2024, time.March, 10, 0, 5, 0, 0, location)

	if ISODate(late) != "2024-03-10" || ISODate(early) != "2024-03-10" {
		t.Fatalf("ISODate() = (%s, %s), want both 2024-03-10", ISODate(late), ISODate(early))
	}
}

func TestParseISODateRoundTrip(t *testing.T) {
	parsed, err := ParseISODate("2024-02-29", time.UTC)
	if err != nil {
		t.Fatalf("ParseISODate() error: %v", err)
	}
	if ISODate(parsed) != "2024-02-29" {
		t.Fatalf("ParseISODate() round trip = %s", ISODate(parsed))
	}

	for _, raw := range []string{"", "2024-02-30", "03/10/2024", "2024-3-1"} {
		if _, err := ParseISODate(raw, time.UTC); err == nil {
			t.Fatalf("ParseISODate(%q) expected error", raw)
		}
	}
}

func TestNavigateWeekIsReversible(t *testing.T) {
	start := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	next, err := NavigateWeek(start, 1)
	if err != nil {
		t.Fatalf("NavigateWeek(+1) error: %v", err)
	}
	if ISODate(next) != "2024-03-17" {
		t.Fatalf("NavigateWeek(+1) = %s, want 2024-03-17", ISODate(next))
	}

	back, err := NavigateWeek(next, -1)
	if err != nil {
		t.Fatalf("NavigateWeek(-1) error: %v", err)
	}
	if !back.Equal(start) {
		t.Fatalf("NavigateWeek(NavigateWeek(w, +1), -1) = %s, want %s", ISODate(back), ISODate(start))
	}

	if _, err := NavigateWeek(start, 2); !errors.Is(err, ErrInvalidWeekDirection) {
		t.Fatalf("expected ErrInvalidWeekDirection, got %v", err)
	}
}

func TestWeekWindowNextWeekFollowsPreviousEnd(t *testing.T) {
	window := NewWeekWindow(time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC))
	if window.StartISO() != "2024-03-10" || window.EndISO() != "2024-03-16" {
		t.Fatalf("window = [%s, %s], want [2024-03-10, 2024-03-16]", window.StartISO(), window.EndISO())
	}

	next, err := window.Navigate(1)
	if err != nil {
		t.Fatalf("Navigate(+1) error: %v", err)
	}
	if next.StartISO() != "2024-03-17" {
		t.Fatalf("next week start = %s, want 2024-03-17", next.StartISO())
	}
	if !next.Start.Equal(window.End().AddDate(0, 0, 1)) {
		t.Fatal("next week must start the day after the previous window ends")
	}
}

func TestWeekWindowLabelAndHeaders(t *testing.T) {
	window := NewWeekWindow(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC))

	if got := window.Label(); got != "Dec 29 - Jan 4, 2025" {
		t.Fatalf("Label() = %q, want %q", got, "Dec 29 - Jan 4, 2025")
	}

	headers := window.DayHeaders()
	if len(headers) != DaysPerWeek {
		t.Fatalf("DayHeaders() returned %d headers", len(headers))
	}
	if headers[0].Weekday != "Sun" || headers[0].Day != 29 || headers[6].Weekday != "Sat" || headers[6].Day != 4 {
		t.Fatalf("DayHeaders() = %#v", headers)
	}
	if !window.Contains(time.Date(2025, time.January, 4, 23, 0, 0, 0, time.UTC)) {
		t.Fatal("expected window to contain its last day")
	}
	if window.Contains(time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("expected window to exclude the following Sunday")
	}
}
