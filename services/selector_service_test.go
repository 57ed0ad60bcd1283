package services

import (
	"testing"
	"time"

	"backend/models"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
}

func TestIsSelectable(t *testing.T) {
	task := models.ScheduleActivity{ActivityType: models.ActivityTypeTask, Progress: 40, Status: "in_progress"}
	assert.True(t, IsSelectable(task))

	milestone := task
	milestone.ActivityType = models.ActivityTypeMilestone
	assert.False(t, IsSelectable(milestone))

	summary := task
	summary.ActivityType = models.ActivityTypeSummary
	assert.False(t, IsSelectable(summary))

	finished := task
	finished.Progress = 100
	assert.False(t, IsSelectable(finished))

	done := task
	done.Status = "completed"
	assert.False(t, IsSelectable(done))
}

func TestOverlapsWindow(t *testing.T) {
	windowStart, windowEnd := day(0), day(6)

	inside := models.ScheduleActivity{StartDate: day(1), EndDate: day(3)}
	assert.True(t, OverlapsWindow(inside, windowStart, windowEnd))

	spanning := models.ScheduleActivity{StartDate: day(-10), EndDate: day(20)}
	assert.True(t, OverlapsWindow(spanning, windowStart, windowEnd))

	endsOnStart := models.ScheduleActivity{StartDate: day(-5), EndDate: day(0)}
	assert.True(t, OverlapsWindow(endsOnStart, windowStart, windowEnd))

	startsOnEnd := models.ScheduleActivity{StartDate: day(6), EndDate: day(9)}
	assert.True(t, OverlapsWindow(startsOnEnd, windowStart, windowEnd))

	before := models.ScheduleActivity{StartDate: day(-5), EndDate: day(-1)}
	assert.False(t, OverlapsWindow(before, windowStart, windowEnd))

	after := models.ScheduleActivity{StartDate: day(7), EndDate: day(9)}
	assert.False(t, OverlapsWindow(after, windowStart, windowEnd))
}

func TestActivityDuration(t *testing.T) {
	explicit := 4
	withField := models.ScheduleActivity{DurationDays: &explicit, StartDate: day(0), EndDate: day(9)}
	assert.Equal(t, 4, ActivityDuration(withField))

	derived := models.ScheduleActivity{StartDate: day(0), EndDate: day(5)}
	assert.Equal(t, 6, ActivityDuration(derived))

	zero := 0
	clamped := models.ScheduleActivity{DurationDays: &zero}
	assert.Equal(t, 1, ActivityDuration(clamped))
}

func TestDailyTarget(t *testing.T) {
	// 120 units over 6 days is 20 per day
	assert.Equal(t, 20.0, DailyTarget(120, 6))

	// 100 over 3 rounds to 2 decimals
	assert.Equal(t, 33.33, DailyTarget(100, 3))

	// zero duration clamps to 1
	assert.Equal(t, 50.0, DailyTarget(50, 0))
}

func TestBuildCandidate_QuantityApportionment(t *testing.T) {
	duration := 6
	activity := models.ScheduleActivity{
		ID:           205,
		ActivityType: models.ActivityTypeTask,
		StartDate:    day(0),
		EndDate:      day(5),
		DurationDays: &duration,
	}
	links := []models.QuantityLink{
		{ActivityID: 205, ItemID: 311, Description: "C30 concrete", Unit: "m3", TotalQty: 120, Weight: 1},
	}

	candidate := BuildCandidate(activity, nil, links)

	assert.Equal(t, 6, candidate.DurationDays)
	assert.False(t, candidate.HasConstraint)
	assert.Len(t, candidate.Targets, 1)
	assert.Equal(t, 20.0, candidate.Targets[0].DailyTarget)
	assert.Equal(t, 120.0, candidate.Targets[0].TotalQty)
}

func TestBuildCandidate_PicksNewestOpenConstraint(t *testing.T) {
	activity := models.ScheduleActivity{ID: 205, ActivityType: models.ActivityTypeTask}
	constraints := []models.ActivityConstraint{
		{ID: 40, Status: "open", CreatedAt: day(-3)},
		{ID: 44, Status: "open", CreatedAt: day(-1)},
		{ID: 48, Status: "resolved", CreatedAt: day(0)},
	}

	candidate := BuildCandidate(activity, constraints, nil)

	assert.True(t, candidate.HasConstraint)
	if assert.NotNil(t, candidate.ConstraintID) {
		assert.Equal(t, 44, *candidate.ConstraintID)
	}
}

func TestBuildCandidate_PullForwardOutsideWindow(t *testing.T) {
	// A task dated entirely in next week is still a valid candidate for this
	// week's plan: the available list offers it and the add path must not
	// re-filter it by window.
	windowStart, windowEnd := day(0), day(6)
	nextWeek := models.ScheduleActivity{
		ID:           301,
		ActivityType: models.ActivityTypeTask,
		StartDate:    day(7),
		EndDate:      day(10),
		Status:       "not_started",
	}

	assert.True(t, IsSelectable(nextWeek))
	assert.False(t, OverlapsWindow(nextWeek, windowStart, windowEnd))

	candidates := BuildCandidates([]models.ScheduleActivity{nextWeek}, nil, nil)
	assert.Len(t, candidates, 1)
	assert.Equal(t, 301, candidates[0].Activity.ID)
}

func TestSeedActivity(t *testing.T) {
	constraintID := 44
	candidate := models.WeekCandidate{
		Activity: models.ScheduleActivity{
			ID:          205,
			Name:        "Pour slab sector B",
			Code:        "ST-2.4",
			Unit:        "m3",
			Responsible: "crew-lead@example.com",
		},
		HasConstraint: true,
		ConstraintID:  &constraintID,
	}

	seeded := SeedActivity(7, 3, candidate)

	assert.Equal(t, 7, seeded.PlanID)
	assert.Equal(t, 3, seeded.DisplayOrder)
	assert.Equal(t, 205, seeded.ActivityID)
	assert.Equal(t, "Pour slab sector B", seeded.ActivityName)
	assert.Equal(t, "ST-2.4", seeded.ActivityCode)
	assert.Equal(t, "m3", seeded.Unit)
	assert.Equal(t, "crew-lead@example.com", seeded.Responsible)
	assert.True(t, seeded.HasConstraint)
	if assert.NotNil(t, seeded.ConstraintID) {
		assert.Equal(t, 44, *seeded.ConstraintID)
	}

	// commitments start empty, one zero per weekday
	assert.Len(t, seeded.Planned, models.DaysPerWeek)
	assert.Len(t, seeded.Actual, models.DaysPerWeek)
	for i := 0; i < models.DaysPerWeek; i++ {
		assert.Zero(t, seeded.Planned[i])
		assert.Zero(t, seeded.Actual[i])
	}
}

func TestBuildCandidates_FiltersUnselectable(t *testing.T) {
	activities := []models.ScheduleActivity{
		{ID: 1, ActivityType: models.ActivityTypeTask},
		{ID: 2, ActivityType: models.ActivityTypeMilestone},
		{ID: 3, ActivityType: models.ActivityTypeTask, Progress: 100},
		{ID: 4, ActivityType: models.ActivityTypeTask},
	}

	candidates := BuildCandidates(activities, nil, nil)

	assert.Len(t, candidates, 2)
	assert.Equal(t, 1, candidates[0].Activity.ID)
	assert.Equal(t, 4, candidates[1].Activity.ID)
}
