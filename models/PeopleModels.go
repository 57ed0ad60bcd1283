package models

import (
	"time"
)

// User represents the users table (the people who plan, accept and check in
// work). Only the fields the planner needs are projected here.
type User struct {
	ID          int       `json:"id" example:"1"`
	EmployeeId  string    `json:"employee_id" example:"EMP001"`
	Email       string    `json:"email" example:"user@example.com"`
	Password    string    `json:"-"`
	FirstName   string    `json:"first_name" example:"Asha"`
	LastName    string    `json:"last_name" example:"Verma"`
	RoleID      int       `json:"role_id" example:"1"`
	RoleName    string    `json:"role_name" example:"Planner"`
	CompanyID   int       `json:"company_id" example:"4"`
	Suspended   bool      `json:"suspended" example:"false"`
	CreatedAt   time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt   time.Time `json:"updated_at" example:"2024-01-15T10:30:00Z"`
	LastAccess  time.Time `json:"last_access,omitempty" example:"2026-08-25T10:30:00Z"`
	FirstAccess time.Time `json:"first_access,omitempty" example:"2024-01-15T10:30:00Z"`
}

// Session represents the session table.
type Session struct {
	UserID                int       `json:"user_id" example:"1"`
	SessionID             string    `json:"session_id" example:"7f6c1c2e-..."`
	HostName              string    `json:"host_name" example:"user@example.com"`
	IPAddress             string    `json:"ip_address" example:"10.0.0.4"`
	Timestamp             time.Time `json:"timestp" example:"2026-08-25T10:30:00Z"`
	ExpiresAt             time.Time `json:"expires_at" example:"2026-08-26T10:30:00Z"`
	RefreshToken          string    `json:"-"`
	RefreshTokenExpiresAt time.Time `json:"-"`
}

// LoginRequest is the body for POST /api/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"user@example.com"`
	Password string `json:"password" binding:"required" example:""`
}

// LoginResponse carries the session and token pair issued on login.
type LoginResponse struct {
	Success      bool   `json:"success" example:"true"`
	Message      string `json:"message" example:"Login successful"`
	SessionID    string `json:"session_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user,omitempty"`
}

// RefreshTokenRequest is the body for POST /api/refresh-token.
type RefreshTokenRequest struct {
	SessionID    string `json:"session_id" binding:"required"`
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ActivityLog mirrors one activity_logs row (who did what, from where).
type ActivityLog struct {
	ID           int       `json:"id" example:"1"`
	CreatedAt    time.Time `json:"created_at" example:"2026-08-25T10:30:00Z"`
	UserName     string    `json:"user_name" example:"Asha Verma"`
	HostName     string    `json:"host_name" example:"user@example.com"`
	EventContext string    `json:"event_context" example:"WeeklyPlan"`
	IPAddress    string    `json:"ip_address" example:"10.0.0.4"`
	Description  string    `json:"description" example:"Created weekly plan W35/2026 for project 12"`
	EventName    string    `json:"event_name" example:"Create"`
	ProjectID    int       `json:"project_id" example:"12"`
}
