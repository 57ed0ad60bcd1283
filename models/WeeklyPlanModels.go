package models

import (
	"time"

	"github.com/lib/pq"
)

// Plan lifecycle statuses. A plan is born PLANNED and moves forward through
// acceptance events only; the status column caches the latest event outcome.
const (
	PlanStatusPlanned            = "PLANNED"
	PlanStatusAwaitingAcceptance = "AWAITING_ACCEPTANCE"
	PlanStatusAccepted           = "ACCEPTED"
	PlanStatusInExecution        = "IN_EXECUTION"
	PlanStatusCompleted          = "COMPLETED"
)

// DaysPerWeek is the fixed slot count of a planning window.
const DaysPerWeek = 7

// WeeklyPlan represents one weekly_plan row: a 7-day commitment window for
// one project, unique per (company, project, iso week, iso year).
type WeeklyPlan struct {
	ID                       int       `json:"id" example:"7"`
	CompanyID                int       `json:"company_id" example:"4"`
	ProjectID                int       `json:"project_id" example:"12"`
	ISOWeek                  int       `json:"iso_week" example:"35"`
	ISOYear                  int       `json:"iso_year" example:"2026"`
	StartDate                time.Time `json:"start_date" example:"2026-08-24T00:00:00Z"`
	EndDate                  time.Time `json:"end_date" example:"2026-08-30T00:00:00Z"`
	Status                   string    `json:"status" example:"PLANNED"`
	WeeklyPPC                float64   `json:"weekly_ppc" example:"75"`
	TotalActivities          int       `json:"total_activities" example:"4"`
	CompletedActivities      int       `json:"completed_activities" example:"3"`
	ActivitiesWithConstraint int       `json:"activities_with_constraint" example:"1"`
	Responsible              string    `json:"responsible" example:"foreman@example.com"`
	CreatedAt                time.Time `json:"created_at" example:"2026-08-24T08:00:00Z"`
	UpdatedAt                time.Time `json:"updated_at" example:"2026-08-28T17:00:00Z"`
}

// PlannedActivity represents one planned_activity row: a schedule activity
// committed into a weekly plan, with per-day planned and actual quantities in
// 7-slot arrays (index 0 is the plan's start day).
type PlannedActivity struct {
	ID            int             `json:"id" example:"31"`
	PlanID        int             `json:"plan_id" example:"7"`
	ActivityID    int             `json:"activity_id" example:"205"`
	ActivityName  string          `json:"activity_name" example:"Pour slab sector B"`
	ActivityCode  string          `json:"activity_code" example:"ST-2.4"`
	DisplayOrder  int             `json:"display_order" example:"1"`
	Unit          string          `json:"unit" example:"m3"`
	Planned       pq.Float64Array `json:"planned" swaggertype:"array,number"`
	Actual        pq.Float64Array `json:"actual" swaggertype:"array,number"`
	HasConstraint bool            `json:"has_constraint" example:"false"`
	ConstraintID  *int            `json:"constraint_id,omitempty"`
	PPC           float64         `json:"ppc" example:"50"`
	Completed     bool            `json:"completed" example:"false"`
	Responsible   string          `json:"responsible" example:"crew-lead@example.com"`
	CreatedAt     time.Time       `json:"created_at" example:"2026-08-24T08:00:00Z"`
	UpdatedAt     time.Time       `json:"updated_at" example:"2026-08-28T17:00:00Z"`
}

// PlannedSlots returns the planned quantities padded or truncated to exactly
// 7 slots, so downstream math never indexes out of range.
func (a PlannedActivity) PlannedSlots() [DaysPerWeek]float64 {
	return toSlots(a.Planned)
}

// ActualSlots returns the actual quantities as a fixed 7-slot array.
func (a PlannedActivity) ActualSlots() [DaysPerWeek]float64 {
	return toSlots(a.Actual)
}

func toSlots(values pq.Float64Array) [DaysPerWeek]float64 {
	var slots [DaysPerWeek]float64
	for i := 0; i < DaysPerWeek && i < len(values); i++ {
		slots[i] = values[i]
	}
	return slots
}

// ZeroSlots returns a fresh all-zero 7-slot array for new activities.
func ZeroSlots() pq.Float64Array {
	return make(pq.Float64Array, DaysPerWeek)
}

// GetOrCreatePlanRequest is the body for POST /api/weekly-plans. The
// reference date is any date inside the wanted week; week_start_day
// optionally overrides the configured default (0=Sunday .. 6=Saturday).
type GetOrCreatePlanRequest struct {
	CompanyID     int    `json:"company_id" binding:"required" example:"4"`
	ProjectID     int    `json:"project_id" binding:"required" example:"12"`
	ReferenceDate string `json:"reference_date" binding:"required" example:"2026-08-26"`
	WeekStartDay  *int   `json:"week_start_day,omitempty" example:"1"`
	Responsible   string `json:"responsible" example:"foreman@example.com"`
}

// AddPlanActivityRequest adds one schedule activity to an open plan.
type AddPlanActivityRequest struct {
	ActivityID  int       `json:"activity_id" binding:"required" example:"205"`
	Planned     []float64 `json:"planned" example:"10,10,10,10,10,0,0"`
	Unit        string    `json:"unit" example:"m3"`
	Responsible string    `json:"responsible" example:"crew-lead@example.com"`
}

// UpdatePlannedQuantitiesRequest replaces the 7 planned slots of one planned
// activity while the plan is still structurally open.
type UpdatePlannedQuantitiesRequest struct {
	Planned []float64 `json:"planned" binding:"required" example:"10,10,10,10,10,0,0"`
}

// WeeklyPlanData is the get-or-create payload: the plan, its activities and
// whether this call created it.
type WeeklyPlanData struct {
	Plan       WeeklyPlan        `json:"plan"`
	Activities []PlannedActivity `json:"activities"`
	IsNew      bool              `json:"is_new" example:"false"`
}

// WeeklyPlanResponse wraps a single plan payload.
type WeeklyPlanResponse struct {
	Success bool           `json:"success" example:"true"`
	Message string         `json:"message,omitempty"`
	Data    WeeklyPlanData `json:"data"`
}

// WeeklyPlanListResponse wraps a project's plan history.
type WeeklyPlanListResponse struct {
	Success bool         `json:"success" example:"true"`
	Data    []WeeklyPlan `json:"data"`
}

// PlannedActivityResponse wraps one planned activity.
type PlannedActivityResponse struct {
	Success bool            `json:"success" example:"true"`
	Message string          `json:"message,omitempty"`
	Data    PlannedActivity `json:"data"`
}
