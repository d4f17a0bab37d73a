package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	ISODateLayout = "2006-01-02"
	DaysPerWeek   = 7
)

var ErrInvalidWeekDirection = errors.New("week direction must be +1 or -1")

var weekdayHeaders = [DaysPerWeek]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// DateAtLocation drops the time of day, keeping the calendar date the value
// has in location.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = value.Location()
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// WeekStart returns midnight of the Sunday on or before date, in date's own location.
func WeekStart(date time.Time) time.Time {
	day := DateAtLocation(date, date.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func WeekDates(weekStart time.Time) []time.Time {
	start := DateAtLocation(weekStart, weekStart.Location())
	dates := make([]time.Time, 0, DaysPerWeek)
	for offset := 0; offset < DaysPerWeek; offset++ {
		dates = append(dates, start.AddDate(0, 0, offset))
	}
	return dates
}

func ISODate(date time.Time) string {
	return date.Format(ISODateLayout)
}

func ParseISODate(raw string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.Local
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, errors.New("date is required")
	}
	parsed, err := time.ParseInLocation(ISODateLayout, trimmed, location)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return parsed, nil
}

func NavigateWeek(weekStart time.Time, direction int) (time.Time, error) {
	if direction != 1 && direction != -1 {
		return time.Time{}, ErrInvalidWeekDirection
	}
	return weekStart.AddDate(0, 0, direction*DaysPerWeek), nil
}

type WeekWindow struct {
	Start time.Time
}

type WeekDayHeader struct {
	Weekday string
	Day     int
	Date    string
}

func NewWeekWindow(anchor time.Time) WeekWindow {
	return WeekWindow{Start: WeekStart(anchor)}
}

func (window WeekWindow) Dates() []time.Time {
	return WeekDates(window.Start)
}

func (window WeekWindow) End() time.Time {
	return window.Start.AddDate(0, 0, DaysPerWeek-1)
}

func (window WeekWindow) StartISO() string {
	return ISODate(window.Start)
}

func (window WeekWindow) EndISO() string {
	return ISODate(window.End())
}

func (window WeekWindow) Contains(date time.Time) bool {
	key := ISODate(DateAtLocation(date, window.Start.Location()))
	return key >= window.StartISO() && key <= window.EndISO()
}

func (window WeekWindow) Navigate(direction int) (WeekWindow, error) {
	start, err := NavigateWeek(window.Start, direction)
	if err != nil {
		return WeekWindow{}, err
	}
	return WeekWindow{Start: start}, nil
}

// Label renders the window as "Mar 10 - Mar 16, 2024".
func (window WeekWindow) Label() string {
	return window.Start.Format("Jan 2") + " - " + window.End().Format("Jan 2, 2006")
}

func (window WeekWindow) DayHeaders() []WeekDayHeader {
	dates := window.Dates()
	headers := make([]WeekDayHeader, 0, len(dates))
	for _, date := range dates {
		headers = append(headers, WeekDayHeader{
			Weekday: weekdayHeaders[date.Weekday()],
			Day:     date.Day(),
			Date:    ISODate(date),
		})
	}
	return headers
}
