package services

import (
	"errors"
	"os"
	"strconv"
	"time"

	"backend/models"
)

// ErrInvalidDate is returned when a week reference date cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

// WeekWindow is a resolved 7-day planning window. End is always Start plus
// six days; the ISO labels come from the window's start date.
type WeekWindow struct {
	ISOWeek int       `json:"iso_week" example:"35"`
	ISOYear int       `json:"iso_year" example:"2026"`
	Start   time.Time `json:"start" example:"2026-08-24T00:00:00Z"`
	End     time.Time `json:"end" example:"2026-08-30T00:00:00Z"`
}

const weekDateLayout = "2006-01-02"

// ParseWeekReference parses a YYYY-MM-DD reference date.
func ParseWeekReference(value string) (time.Time, error) {
	ref, err := time.Parse(weekDateLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return ref, nil
}

// ComputeWeek resolves the planning week containing referenceDate, starting
// on weekStartDay. Deterministic: same inputs always give the same window.
func ComputeWeek(referenceDate time.Time, weekStartDay time.Weekday) WeekWindow {
	ref := time.Date(referenceDate.Year(), referenceDate.Month(), referenceDate.Day(), 0, 0, 0, 0, time.UTC)

	offset := (int(ref.Weekday()) - int(weekStartDay) + 7) % 7
	start := ref.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, models.DaysPerWeek-1)

	isoYear, isoWeek := start.ISOWeek()
	return WeekWindow{
		ISOWeek: isoWeek,
		ISOYear: isoYear,
		Start:   start,
		End:     end,
	}
}

// ConfiguredWeekStart reads WEEK_START_DAY (0=Sunday .. 6=Saturday) from the
// environment, defaulting to Monday. Callers may override per request.
func ConfiguredWeekStart() time.Weekday {
	raw := os.Getenv("WEEK_START_DAY")
	if raw == "" {
		return time.Monday
	}
	day, err := strconv.Atoi(raw)
	if err != nil || day < 0 || day > 6 {
		return time.Monday
	}
	return time.Weekday(day)
}

// DayIndexFor returns the 0-based slot index of date inside the plan window
// starting at planStart, or -1 when the date falls outside the week.
func DayIndexFor(planStart, date time.Time) int {
	start := time.Date(planStart.Year(), planStart.Month(), planStart.Day(), 0, 0, 0, 0, time.UTC)
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	idx := int(d.Sub(start).Hours() / 24)
	if idx < 0 || idx >= models.DaysPerWeek {
		return -1
	}
	return idx
}
