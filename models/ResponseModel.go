package models

// ErrorResponse is the generic error envelope used across the API.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Weekly plan not found"`
	Details string `json:"details,omitempty"`
}

// MessageResponse is the generic success envelope for endpoints that return
// no entity payload.
type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Operation completed successfully"`
}

// ValidateSessionResponse is returned by POST /api/validate-session.
type ValidateSessionResponse struct {
	Message   string `json:"message" example:"Session validated"`
	SessionID string `json:"session_id"`
	HostName  string `json:"host_name" example:"user@example.com"`
	RoleName  string `json:"role_name" example:"Planner"`
}
