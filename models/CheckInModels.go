package models

import "time"

// Cause-of-failure taxonomy (6M+S). Every incomplete check-in on a day with
// planned work must carry one of these codes.
const (
	CauseMaterial    = "MATERIAL"
	CauseLabor       = "LABOR"
	CauseMachine     = "MACHINE"
	CauseMethod      = "METHOD"
	CauseEnvironment = "ENVIRONMENT"
	CauseMeasurement = "MEASUREMENT"
	CauseSafety      = "SAFETY"
)

// CauseCategories lists the taxonomy in histogram display order.
var CauseCategories = []string{
	CauseMaterial,
	CauseLabor,
	CauseMachine,
	CauseMethod,
	CauseEnvironment,
	CauseMeasurement,
	CauseSafety,
}

// IsValidCause reports whether code belongs to the taxonomy.
func IsValidCause(code string) bool {
	for _, c := range CauseCategories {
		if c == code {
			return true
		}
	}
	return false
}

// DailyCheckRecord represents one daily_check_record row: the field report
// for one planned activity on one day. planned_qty is a snapshot taken at
// first check-in and never overwritten by later updates of the same day.
type DailyCheckRecord struct {
	ID               int       `json:"id" example:"88"`
	ActivityID       int       `json:"activity_id" example:"31"`
	CheckDate        time.Time `json:"check_date" example:"2026-08-25T00:00:00Z"`
	DayIndex         int       `json:"day_index" example:"1"`
	PlannedQty       float64   `json:"planned_qty" example:"10"`
	ActualQty        float64   `json:"actual_qty" example:"5"`
	Completed        bool      `json:"completed" example:"false"`
	CauseCode        *string   `json:"cause_code,omitempty" example:"MATERIAL"`
	CauseDescription *string   `json:"cause_description,omitempty" example:"Rebar delivery slipped a day"`
	CheckedBy        string    `json:"checked_by" example:"crew-lead@example.com"`
	CreatedAt        time.Time `json:"created_at" example:"2026-08-25T17:05:00Z"`
	UpdatedAt        time.Time `json:"updated_at" example:"2026-08-25T17:05:00Z"`
}

// CheckInRequest is the body for POST /api/planned-activities/:id/check-ins.
type CheckInRequest struct {
	CheckDate        string  `json:"check_date" binding:"required" example:"2026-08-25"`
	ActualQty        float64 `json:"actual_qty" example:"5"`
	CauseCode        string  `json:"cause_code,omitempty" example:"MATERIAL"`
	CauseDescription string  `json:"cause_description,omitempty" example:"Rebar delivery slipped a day"`
	CheckedBy        string  `json:"checked_by" example:"crew-lead@example.com"`
}

// CheckInResponse reports the recorded state of the day. CauseRequired is
// set (with HTTP 400 and no write) when an incomplete day is missing its
// cause of failure.
type CheckInResponse struct {
	Success       bool              `json:"success" example:"true"`
	Message       string            `json:"message,omitempty"`
	CauseRequired bool              `json:"cause_required,omitempty"`
	Data          *DailyCheckRecord `json:"data,omitempty"`
}

// CheckRecordListResponse wraps a plan's check-in history.
type CheckRecordListResponse struct {
	Success bool               `json:"success" example:"true"`
	Data    []DailyCheckRecord `json:"data"`
}
