package services

import (
	"time"

	"backend/models"

	"github.com/shopspring/decimal"
)

// IsSelectable reports whether a master-schedule activity can carry weekly
// work: milestones, summaries and finished activities never do.
func IsSelectable(activity models.ScheduleActivity) bool {
	switch activity.ActivityType {
	case models.ActivityTypeMilestone, models.ActivityTypeSummary:
		return false
	}
	if activity.Progress >= 100 {
		return false
	}
	if activity.Status == "completed" || activity.Status == "done" {
		return false
	}
	return true
}

// OverlapsWindow is the candidate predicate: the activity's date range
// touches the week window at any point.
func OverlapsWindow(activity models.ScheduleActivity, windowStart, windowEnd time.Time) bool {
	return !activity.StartDate.After(windowEnd) && !activity.EndDate.Before(windowStart)
}

// ActivityDuration resolves the working duration in days: the explicit field
// when present, otherwise the inclusive span between start and end. Never
// less than 1.
func ActivityDuration(activity models.ScheduleActivity) int {
	duration := 0
	if activity.DurationDays != nil {
		duration = *activity.DurationDays
	} else {
		duration = int(activity.EndDate.Sub(activity.StartDate).Hours()/24) + 1
	}
	if duration < 1 {
		duration = 1
	}
	return duration
}

// DailyTarget apportions a linked total quantity evenly over the activity's
// duration, rounded to 2 decimals.
func DailyTarget(totalQty float64, durationDays int) float64 {
	if durationDays < 1 {
		durationDays = 1
	}
	target := decimal.NewFromFloat(totalQty).
		DivRound(decimal.NewFromInt(int64(durationDays)), 2)
	f, _ := target.Float64()
	return f
}

// BuildCandidate assembles one selector result: resolved duration, the
// winning open constraint (most recently created wins when several are
// unresolved) and the apportioned quantity targets.
func BuildCandidate(activity models.ScheduleActivity, constraints []models.ActivityConstraint, links []models.QuantityLink) models.WeekCandidate {
	candidate := models.WeekCandidate{
		Activity:     activity,
		DurationDays: ActivityDuration(activity),
		Targets:      []models.LinkedQuantityTarget{},
	}

	if winner := pickConstraint(constraints); winner != nil {
		candidate.HasConstraint = true
		id := winner.ID
		candidate.ConstraintID = &id
	}

	for _, link := range links {
		candidate.Targets = append(candidate.Targets, models.LinkedQuantityTarget{
			ItemID:      link.ItemID,
			Description: link.Description,
			Unit:        link.Unit,
			TotalQty:    link.TotalQty,
			Weight:      link.Weight,
			DailyTarget: DailyTarget(link.TotalQty, candidate.DurationDays),
		})
	}

	return candidate
}

// BuildCandidates maps every selectable activity to its candidate row,
// preserving the input order (it becomes the plan's display order).
func BuildCandidates(activities []models.ScheduleActivity, constraintsByActivity map[int][]models.ActivityConstraint, linksByActivity map[int][]models.QuantityLink) []models.WeekCandidate {
	candidates := make([]models.WeekCandidate, 0, len(activities))
	for _, activity := range activities {
		if !IsSelectable(activity) {
			continue
		}
		candidates = append(candidates, BuildCandidate(activity, constraintsByActivity[activity.ID], linksByActivity[activity.ID]))
	}
	return candidates
}

// SeedActivity maps one selector candidate to the planned activity row a
// fresh plan starts with. Slots start at zero: quantity targets are
// informational, the day-by-day commitment is entered by a person.
func SeedActivity(planID, displayOrder int, candidate models.WeekCandidate) models.PlannedActivity {
	return models.PlannedActivity{
		PlanID:        planID,
		ActivityID:    candidate.Activity.ID,
		ActivityName:  candidate.Activity.Name,
		ActivityCode:  candidate.Activity.Code,
		DisplayOrder:  displayOrder,
		Unit:          candidate.Activity.Unit,
		Planned:       models.ZeroSlots(),
		Actual:        models.ZeroSlots(),
		HasConstraint: candidate.HasConstraint,
		ConstraintID:  candidate.ConstraintID,
		Responsible:   candidate.Activity.Responsible,
	}
}

func pickConstraint(constraints []models.ActivityConstraint) *models.ActivityConstraint {
	var winner *models.ActivityConstraint
	for i := range constraints {
		c := &constraints[i]
		if c.Status != "open" && c.Status != "unresolved" {
			continue
		}
		if winner == nil || c.CreatedAt.After(winner.CreatedAt) {
			winner = c
		}
	}
	return winner
}
