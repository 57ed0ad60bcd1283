package services

import (
	"testing"

	"backend/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func plannedActivity(id int, planned, actual []float64) models.PlannedActivity {
	return models.PlannedActivity{
		ID:      id,
		Planned: pq.Float64Array(planned),
		Actual:  pq.Float64Array(actual),
	}
}

func strPtr(s string) *string { return &s }

func TestActivityCompletion_PartialWeek(t *testing.T) {
	// 50 planned over Mon-Fri, 25 delivered
	a := plannedActivity(31,
		[]float64{10, 10, 10, 10, 10, 0, 0},
		[]float64{10, 10, 5, 0, 0, 0, 0})

	m := ActivityCompletion(a)

	assert.Equal(t, 50.0, m.TotalPlanned)
	assert.Equal(t, 25.0, m.TotalActual)
	assert.False(t, m.Completed)
	assert.Equal(t, 50.0, m.PPC)
}

func TestActivityCompletion_Complete(t *testing.T) {
	a := plannedActivity(31,
		[]float64{10, 10, 0, 0, 0, 0, 0},
		[]float64{10, 12, 0, 0, 0, 0, 0})

	m := ActivityCompletion(a)

	assert.True(t, m.Completed)
	assert.Equal(t, 100.0, m.PPC)
}

func TestActivityCompletion_NothingPlanned(t *testing.T) {
	a := plannedActivity(31,
		[]float64{0, 0, 0, 0, 0, 0, 0},
		[]float64{5, 0, 0, 0, 0, 0, 0})

	m := ActivityCompletion(a)

	assert.False(t, m.Completed)
	assert.Equal(t, 0.0, m.PPC)
}

func TestComputePlanMetrics_DailyPPC(t *testing.T) {
	activities := []models.PlannedActivity{
		plannedActivity(1,
			[]float64{10, 10, 10, 10, 10, 0, 0},
			[]float64{10, 10, 5, 0, 0, 0, 0}),
		plannedActivity(2,
			[]float64{5, 0, 5, 0, 0, 0, 0},
			[]float64{5, 0, 5, 0, 0, 0, 0}),
	}

	metrics := ComputePlanMetrics(7, activities, nil)

	// Monday: both met. Tuesday: only activity 1 planned, met. Wednesday:
	// activity 2 met, activity 1 short. Thursday/Friday: activity 1 short.
	assert.Equal(t, 100.0, metrics.DailyPPC[0])
	assert.Equal(t, 100.0, metrics.DailyPPC[1])
	assert.Equal(t, 50.0, metrics.DailyPPC[2])
	assert.Equal(t, 0.0, metrics.DailyPPC[3])
	assert.Equal(t, 0.0, metrics.DailyPPC[4])
	// no planned work on the weekend: excluded, not failed
	assert.Equal(t, 0.0, metrics.DailyPPC[5])
	assert.Equal(t, 0.0, metrics.DailyPPC[6])
}

func TestComputePlanMetrics_WeeklyPPC(t *testing.T) {
	// 4 activities with planned work, 3 complete: weekly PPC 75
	activities := []models.PlannedActivity{
		plannedActivity(1, []float64{10, 0, 0, 0, 0, 0, 0}, []float64{10, 0, 0, 0, 0, 0, 0}),
		plannedActivity(2, []float64{10, 0, 0, 0, 0, 0, 0}, []float64{10, 0, 0, 0, 0, 0, 0}),
		plannedActivity(3, []float64{10, 0, 0, 0, 0, 0, 0}, []float64{10, 0, 0, 0, 0, 0, 0}),
		plannedActivity(4, []float64{10, 0, 0, 0, 0, 0, 0}, []float64{4, 0, 0, 0, 0, 0, 0}),
	}
	// a fifth activity with nothing planned stays out of the ratio
	activities = append(activities,
		plannedActivity(5, []float64{0, 0, 0, 0, 0, 0, 0}, []float64{0, 0, 0, 0, 0, 0, 0}))

	metrics := ComputePlanMetrics(7, activities, nil)

	assert.Equal(t, 5, metrics.TotalActivities)
	assert.Equal(t, 4, metrics.PlannedActivities)
	assert.Equal(t, 3, metrics.CompletedActivities)
	assert.Equal(t, 75.0, metrics.WeeklyPPC)
}

func TestComputePlanMetrics_EmptyPlan(t *testing.T) {
	metrics := ComputePlanMetrics(7, nil, nil)

	assert.Equal(t, 0, metrics.TotalActivities)
	assert.Equal(t, 0.0, metrics.WeeklyPPC)
	for d := 0; d < models.DaysPerWeek; d++ {
		assert.Equal(t, 0.0, metrics.DailyPPC[d])
	}
	// the histogram still carries every category at zero
	assert.Len(t, metrics.CauseHistogram, len(models.CauseCategories))
	for _, bar := range metrics.CauseHistogram {
		assert.Equal(t, 0, bar.Count)
	}
}

func TestComputePlanMetrics_ConstraintCount(t *testing.T) {
	withConstraint := plannedActivity(1, []float64{10, 0, 0, 0, 0, 0, 0}, []float64{10, 0, 0, 0, 0, 0, 0})
	withConstraint.HasConstraint = true

	metrics := ComputePlanMetrics(7, []models.PlannedActivity{
		withConstraint,
		plannedActivity(2, []float64{10, 0, 0, 0, 0, 0, 0}, []float64{0, 0, 0, 0, 0, 0, 0}),
	}, nil)

	assert.Equal(t, 1, metrics.ActivitiesWithConstraint)
}

func TestBuildCauseHistogram(t *testing.T) {
	records := []models.DailyCheckRecord{
		{Completed: false, CauseCode: strPtr(models.CauseMaterial)},
		{Completed: false, CauseCode: strPtr(models.CauseMaterial)},
		{Completed: false, CauseCode: strPtr(models.CauseSafety)},
		// completed record with a stale cause never counts
		{Completed: true, CauseCode: strPtr(models.CauseLabor)},
		// incomplete without cause (zero-planned day) never counts
		{Completed: false},
	}

	metrics := ComputePlanMetrics(7, nil, records)

	counts := map[string]int{}
	for _, bar := range metrics.CauseHistogram {
		counts[bar.Code] = bar.Count
	}
	assert.Equal(t, 2, counts[models.CauseMaterial])
	assert.Equal(t, 1, counts[models.CauseSafety])
	assert.Equal(t, 0, counts[models.CauseLabor])
	assert.Len(t, metrics.CauseHistogram, 7)
}

func TestCauseLabel(t *testing.T) {
	assert.Equal(t, "Material", CauseLabel(models.CauseMaterial))
	assert.Equal(t, "Environment", CauseLabel(models.CauseEnvironment))
}

func TestRoundPercent(t *testing.T) {
	assert.Equal(t, 0.0, roundPercent(3, 0))
	assert.Equal(t, 50.0, roundPercent(1, 2))
	assert.Equal(t, 66.67, roundPercent(2, 3))
}
