package models

import (
	"time"
)

// ActivityLog is an append-only audit record. Entries are written by the
// system (balance maintenance) or by an authenticated user; no update or
// delete path exists for them.
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ActorType string    `gorm:"size:20;not null;index" json:"actor_type"` // system, user
	ActorID   uint      `gorm:"index" json:"actor_id"`
	Action    string    `gorm:"size:60;not null;index" json:"action"`
	Data      string    `gorm:"type:jsonb" json:"data"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for ActivityLog
func (ActivityLog) TableName() string {
	return "activity_logs"
}

// Actor type constants
const (
	ActorTypeSystem = "system"
	ActorTypeUser   = "user"
)

// Action name constants
const (
	ActionProjectBalanceUpdated = "project_balance_updated"
	ActionAdvanceClosed         = "advance_closed"
	ActionUserLogin             = "user_login"
)
