package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeWeek_MondayStart(t *testing.T) {
	// Wednesday 2026-08-26 sits in the Mon 24th .. Sun 30th week
	ref := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
	window := ComputeWeek(ref, time.Monday)

	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), window.End)
	assert.Equal(t, 35, window.ISOWeek)
	assert.Equal(t, 2026, window.ISOYear)
}

func TestComputeWeek_ReferenceOnStartDay(t *testing.T) {
	ref := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	window := ComputeWeek(ref, time.Monday)

	assert.Equal(t, ref, window.Start)
	assert.Equal(t, ref.AddDate(0, 0, 6), window.End)
}

func TestComputeWeek_SundayStart(t *testing.T) {
	// With a Sunday start, Wednesday the 26th belongs to Sun 23rd .. Sat 29th
	ref := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
	window := ComputeWeek(ref, time.Sunday)

	assert.Equal(t, time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), window.End)
}

func TestComputeWeek_Deterministic(t *testing.T) {
	// Every date of the week resolves to the same window
	start := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	for d := 0; d < 7; d++ {
		window := ComputeWeek(start.AddDate(0, 0, d), time.Monday)
		assert.Equal(t, start, window.Start, "day offset %d", d)
		assert.Equal(t, 35, window.ISOWeek)
	}
}

func TestComputeWeek_YearBoundary(t *testing.T) {
	// 2027-01-01 is a Friday; its Monday-start week begins 2026-12-28 and
	// carries ISO week 53 of 2026
	ref := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	window := ComputeWeek(ref, time.Monday)

	assert.Equal(t, time.Date(2026, 12, 28, 0, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, 53, window.ISOWeek)
	assert.Equal(t, 2026, window.ISOYear)
}

func TestParseWeekReference(t *testing.T) {
	ref, err := ParseWeekReference("2026-08-26")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC), ref)

	_, err = ParseWeekReference("26/08/2026")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseWeekReference("")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDayIndexFor(t *testing.T) {
	planStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DayIndexFor(planStart, planStart))
	assert.Equal(t, 1, DayIndexFor(planStart, planStart.AddDate(0, 0, 1)))
	assert.Equal(t, 6, DayIndexFor(planStart, planStart.AddDate(0, 0, 6)))
	assert.Equal(t, -1, DayIndexFor(planStart, planStart.AddDate(0, 0, 7)))
	assert.Equal(t, -1, DayIndexFor(planStart, planStart.AddDate(0, 0, -1)))
}
