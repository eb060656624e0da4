package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EntityType constants used in EventLog.EntityType
const (
	EntityTypeTask        = "task"
	EntityTypeBoard       = "board"
	EntityTypeCategory    = "category"
	EntityTypeCustomField = "customField"
	EntityTypeUser        = "user"
	EntityTypeSystem      = "system"
)

// EventLog is an append-only audit record of a single mutation. Rows are never
// updated or deleted by the application.
type EventLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_event_logs_user_id" json:"userId"`
	EventType  string         `gorm:"type:varchar(100);not null;index:idx_event_logs_event_type" json:"eventType"`
	EntityType string         `gorm:"type:varchar(50);not null;index:idx_event_logs_entity_type" json:"entityType"`
	EntityID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_event_logs_entity_id" json:"entityId"`
	Details    datatypes.JSON `gorm:"type:jsonb" json:"details"`
	IPAddress  string         `gorm:"type:varchar(64)" json:"ipAddress"`
	UserAgent  string         `gorm:"type:varchar(512)" json:"userAgent"`
	CreatedAt  time.Time      `gorm:"not null;index:idx_event_logs_created_at" json:"createdAt"`
}

// TableName specifies the table name for EventLog
func (EventLog) TableName() string {
	return "event_logs"
}
