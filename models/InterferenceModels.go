package models

import "time"

// Interference statuses. OPEN reports may be resolved in place or promoted
// to a schedule constraint, which marks them CONVERTED. CONVERTED is
// terminal.
const (
	InterferenceOpen      = "OPEN"
	InterferenceResolved  = "RESOLVED"
	InterferenceConverted = "CONVERTED"
)

// FieldInterference is an obstacle reported from the field during execution.
// It may point at a specific planned activity or stand alone on the plan.
type FieldInterference struct {
	ID                    int        `json:"id" example:"5"`
	ProjectID             int        `json:"project_id" example:"12"`
	PlanID                int        `json:"plan_id" example:"7"`
	ActivityID            *int       `json:"activity_id,omitempty" example:"31"`
	Description           string     `json:"description" example:"Scaffolding blocks crane path"`
	ReportedBy            string     `json:"reported_by" example:"crew-lead@example.com"`
	CompanyInvolved       string     `json:"company_involved,omitempty" example:"Acme Scaffolding"`
	CompanyType           string     `json:"company_type,omitempty" example:"subcontractor"`
	Category              string     `json:"category,omitempty" example:"logistics"`
	Impact                string     `json:"impact,omitempty" example:"crane idle half a day"`
	OccurredAt            time.Time  `json:"occurred_at" example:"2026-08-26T09:15:00Z"`
	Status                string     `json:"status" example:"OPEN"`
	ConvertedConstraintID *int       `json:"converted_constraint_id,omitempty" example:"61"`
	CreatedAt             time.Time  `json:"created_at" example:"2026-08-26T11:40:00Z"`
	UpdatedAt             time.Time  `json:"updated_at" example:"2026-08-26T11:40:00Z"`
}

// ReportInterferenceRequest is the body for POST /api/weekly-plans/:id/interferences.
// occurred_at defaults to now when omitted.
type ReportInterferenceRequest struct {
	ActivityID      *int   `json:"activity_id,omitempty" example:"31"`
	Description     string `json:"description" binding:"required" example:"Scaffolding blocks crane path"`
	ReportedBy      string `json:"reported_by" example:"crew-lead@example.com"`
	CompanyInvolved string `json:"company_involved,omitempty" example:"Acme Scaffolding"`
	CompanyType     string `json:"company_type,omitempty" example:"subcontractor"`
	Category        string `json:"category,omitempty" example:"logistics"`
	Impact          string `json:"impact,omitempty" example:"crane idle half a day"`
	OccurredAt      string `json:"occurred_at,omitempty" example:"2026-08-26"`
}

// PromoteInterferenceRequest converts an open interference into a master
// schedule constraint.
type PromoteInterferenceRequest struct {
	PromotedBy string `json:"promoted_by" example:"planner@example.com"`
}

// InterferenceResponse wraps one interference row.
type InterferenceResponse struct {
	Success bool              `json:"success" example:"true"`
	Message string            `json:"message,omitempty"`
	Data    FieldInterference `json:"data"`
}

// InterferenceListResponse wraps a plan's interference list.
type InterferenceListResponse struct {
	Success bool                `json:"success" example:"true"`
	Data    []FieldInterference `json:"data"`
}
