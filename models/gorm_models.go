package models

import (
	"time"

	"gorm.io/gorm"
)

// GORM-compatible models with proper tags

// AcceptanceEventGorm represents the acceptance_event table with GORM tags.
// Rows are append-only; the plan status column is a cache derived from them.
type AcceptanceEventGorm struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	PlanID    int       `gorm:"column:plan_id;not null;index" json:"plan_id"`
	Actor     string    `gorm:"column:actor;not null" json:"actor"`
	Sector    string    `gorm:"column:sector" json:"sector"`
	EventType string    `gorm:"column:event_type;not null" json:"event_type"`
	Notes     string    `gorm:"column:notes" json:"notes"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

// TableName specifies the table name for AcceptanceEventGorm
func (AcceptanceEventGorm) TableName() string {
	return "acceptance_event"
}

// ActivityLogGorm represents the activity_logs table with GORM tags
type ActivityLogGorm struct {
	ID           uint           `gorm:"primaryKey;column:id" json:"id"`
	CreatedAt    time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	UserName     string         `gorm:"column:user_name;not null" json:"user_name"`
	HostName     string         `gorm:"column:host_name;not null" json:"host_name"`
	EventContext string         `gorm:"column:event_context;not null" json:"event_context"`
	IPAddress    string         `gorm:"column:ip_address;not null" json:"ip_address"`
	Description  string         `gorm:"column:description;not null" json:"description"`
	EventName    string         `gorm:"column:event_name;not null" json:"event_name"`
	ProjectID    int            `gorm:"column:project_id" json:"project_id"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for ActivityLogGorm
func (ActivityLogGorm) TableName() string {
	return "activity_logs"
}

// DeviceTokenGorm represents the device_token table with GORM tags. Push
// notifications on acceptance transitions go to every registered device of
// the responsible user.
type DeviceTokenGorm struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	UserID    int       `gorm:"column:user_id;not null;index" json:"user_id"`
	Token     string    `gorm:"column:token;uniqueIndex;not null" json:"token"`
	Platform  string    `gorm:"column:platform" json:"platform"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName specifies the table name for DeviceTokenGorm
func (DeviceTokenGorm) TableName() string {
	return "device_token"
}
