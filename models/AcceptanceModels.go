package models

import "time"

// Acceptance event types. Every status transition appends exactly one event
// row; the event log is the authoritative history of the plan.
const (
	EventSubmitToProduction = "SUBMIT_TO_PRODUCTION"
	EventAccept             = "ACCEPT"
	EventReject             = "REJECT"
	EventReturnToPlanning   = "RETURN_TO_PLANNING"
	EventStartExecution     = "START_EXECUTION"
	EventComplete           = "COMPLETE"
)

// AcceptanceEvent is the JSON shape of one acceptance_event row.
type AcceptanceEvent struct {
	ID        int       `json:"id" example:"15"`
	PlanID    int       `json:"plan_id" example:"7"`
	Actor     string    `json:"actor" example:"production-lead@example.com"`
	Sector    string    `json:"sector,omitempty" example:"Sector B"`
	EventType string    `json:"event_type" example:"ACCEPT"`
	Notes     string    `json:"notes,omitempty" example:"Crane confirmed for Tuesday"`
	CreatedAt time.Time `json:"created_at" example:"2026-08-24T12:00:00Z"`
}

// AcceptanceRequest is the body for the plan transition endpoints.
type AcceptanceRequest struct {
	Actor  string `json:"actor" binding:"required" example:"production-lead@example.com"`
	Sector string `json:"sector,omitempty" example:"Sector B"`
	Notes  string `json:"notes,omitempty" example:"Crane confirmed for Tuesday"`
}

// AcceptanceResponse reports the plan's status after a transition.
type AcceptanceResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty"`
	PlanID  int    `json:"plan_id" example:"7"`
	Status  string `json:"status" example:"ACCEPTED"`
}

// AcceptanceEventListResponse wraps a plan's event history, oldest first.
type AcceptanceEventListResponse struct {
	Success bool              `json:"success" example:"true"`
	Data    []AcceptanceEvent `json:"data"`
}
