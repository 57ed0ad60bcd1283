package services

import (
	"strings"

	"backend/models"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var causeTitler = cases.Title(language.English)

// CauseLabel renders a cause code for display ("MATERIAL" -> "Material").
func CauseLabel(code string) string {
	return causeTitler.String(strings.ToLower(code))
}

// roundPercent computes numerator/denominator*100 rounded to 2 decimals.
// A zero denominator yields 0, never NaN or Inf.
func roundPercent(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	pct := decimal.NewFromInt(int64(numerator)).
		Div(decimal.NewFromInt(int64(denominator))).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	f, _ := pct.Float64()
	return f
}

// ActivityCompletion sums the 7 planned and actual slots. An activity is
// complete only when it had planned work and the actual total met it.
func ActivityCompletion(activity models.PlannedActivity) models.ActivityMetrics {
	planned := activity.PlannedSlots()
	actual := activity.ActualSlots()

	var totalPlanned, totalActual float64
	for d := 0; d < models.DaysPerWeek; d++ {
		totalPlanned += planned[d]
		totalActual += actual[d]
	}

	m := models.ActivityMetrics{
		ActivityID:   activity.ID,
		TotalPlanned: totalPlanned,
		TotalActual:  totalActual,
	}
	if totalPlanned > 0 {
		m.Completed = totalActual >= totalPlanned
		if m.Completed {
			m.PPC = 100
		} else {
			ratio := decimal.NewFromFloat(totalActual).
				Div(decimal.NewFromFloat(totalPlanned)).
				Mul(decimal.NewFromInt(100)).
				Round(2)
			m.PPC, _ = ratio.Float64()
		}
	}
	return m
}

// ComputePlanMetrics recomputes the full metric set for one plan from its
// activities and check-in records. Pure: persistence is the caller's job.
// Empty plans degrade to all-zero metrics.
func ComputePlanMetrics(planID int, activities []models.PlannedActivity, records []models.DailyCheckRecord) models.PlanMetrics {
	metrics := models.PlanMetrics{
		PlanID:          planID,
		TotalActivities: len(activities),
		Activities:      make([]models.ActivityMetrics, 0, len(activities)),
	}

	// Per-day PPC: only activities with planned work that day count.
	for d := 0; d < models.DaysPerWeek; d++ {
		planned, met := 0, 0
		for _, activity := range activities {
			p := activity.PlannedSlots()
			a := activity.ActualSlots()
			if p[d] <= 0 {
				continue
			}
			planned++
			if a[d] >= p[d] {
				met++
			}
		}
		metrics.DailyPPC[d] = roundPercent(met, planned)
	}

	// Per-activity totals and the weekly rollup. Activities with no planned
	// work sit outside both numerator and denominator.
	for _, activity := range activities {
		am := ActivityCompletion(activity)
		metrics.Activities = append(metrics.Activities, am)
		if activity.HasConstraint {
			metrics.ActivitiesWithConstraint++
		}
		if am.TotalPlanned > 0 {
			metrics.PlannedActivities++
			if am.Completed {
				metrics.CompletedActivities++
			}
		}
	}
	metrics.WeeklyPPC = roundPercent(metrics.CompletedActivities, metrics.PlannedActivities)

	metrics.CauseHistogram = buildCauseHistogram(records)
	return metrics
}

// buildCauseHistogram tallies the causes on incomplete check-ins across the
// 6M+S category set, keeping every category in the output (zeros included)
// so charts stay stable.
func buildCauseHistogram(records []models.DailyCheckRecord) []models.CauseCount {
	counts := make(map[string]int, len(models.CauseCategories))
	for _, record := range records {
		if record.Completed || record.CauseCode == nil {
			continue
		}
		code := *record.CauseCode
		if models.IsValidCause(code) {
			counts[code]++
		}
	}

	histogram := make([]models.CauseCount, 0, len(models.CauseCategories))
	for _, code := range models.CauseCategories {
		histogram = append(histogram, models.CauseCount{
			Code:  code,
			Label: CauseLabel(code),
			Count: counts[code],
		})
	}
	return histogram
}
