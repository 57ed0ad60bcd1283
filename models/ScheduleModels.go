package models

import "time"

// Master-schedule activity types. Only tasks carry weekly work; milestones
// and summary bars are never selectable into a plan.
const (
	ActivityTypeTask      = "task"
	ActivityTypeMilestone = "milestone"
	ActivityTypeSummary   = "summary"
)

// ScheduleActivity projects the schedule_activity fields the weekly planner
// reads. The master schedule itself is owned by the scheduling module.
type ScheduleActivity struct {
	ID           int       `json:"id" example:"205"`
	ProjectID    int       `json:"project_id" example:"12"`
	Name         string    `json:"name" example:"Pour slab sector B"`
	Code         string    `json:"code" example:"ST-2.4"`
	ActivityType string    `json:"activity_type" example:"task"`
	StartDate    time.Time `json:"start_date" example:"2026-08-20T00:00:00Z"`
	EndDate      time.Time `json:"end_date" example:"2026-08-27T00:00:00Z"`
	DurationDays *int      `json:"duration_days,omitempty" example:"6"`
	Progress     float64   `json:"progress" example:"40"`
	Status       string    `json:"status" example:"in_progress"`
	Responsible  string    `json:"responsible" example:"crew-lead@example.com"`
	Unit         string    `json:"unit" example:"m3"`
}

// ActivityConstraint is an open issue blocking an activity (missing
// material, pending approval). Planned activities carry a flag when one is
// open at selection time.
type ActivityConstraint struct {
	ID          int       `json:"id" example:"44"`
	ActivityID  int       `json:"activity_id" example:"205"`
	Description string    `json:"description" example:"Rebar order not confirmed"`
	Status      string    `json:"status" example:"open"`
	Origin      string    `json:"origin,omitempty" example:"interference"`
	CreatedAt   time.Time `json:"created_at" example:"2026-08-22T09:00:00Z"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

// QuantityLink ties a measurable item (BOQ line) to a schedule activity.
type QuantityLink struct {
	ID          int     `json:"id" example:"9"`
	ActivityID  int     `json:"activity_id" example:"205"`
	ItemID      int     `json:"item_id" example:"311"`
	Description string  `json:"description" example:"C30 concrete"`
	Unit        string  `json:"unit" example:"m3"`
	TotalQty    float64 `json:"total_qty" example:"120"`
	Weight      float64 `json:"weight" example:"1"`
}

// LinkedQuantityTarget is a quantity link with its apportioned daily target.
type LinkedQuantityTarget struct {
	ItemID      int     `json:"item_id" example:"311"`
	Description string  `json:"description" example:"C30 concrete"`
	Unit        string  `json:"unit" example:"m3"`
	TotalQty    float64 `json:"total_qty" example:"120"`
	Weight      float64 `json:"weight" example:"1"`
	DailyTarget float64 `json:"daily_target" example:"20"`
}

// WeekCandidate is one selector result: a schedule activity eligible for the
// requested week, with resolved duration, constraint flag and apportioned
// quantity targets.
type WeekCandidate struct {
	Activity      ScheduleActivity       `json:"activity"`
	DurationDays  int                    `json:"duration_days" example:"6"`
	HasConstraint bool                   `json:"has_constraint" example:"true"`
	ConstraintID  *int                   `json:"constraint_id,omitempty" example:"44"`
	Targets       []LinkedQuantityTarget `json:"targets"`
}

// WeekCandidateListResponse wraps the selector output.
type WeekCandidateListResponse struct {
	Success bool            `json:"success" example:"true"`
	Data    []WeekCandidate `json:"data"`
}
