package dto

import (
	"time"

	"github.com/google/uuid"
)

// EventLogQuery narrows and paginates an event log query
type EventLogQuery struct {
	Page       int
	Limit      int
	UserID     *uuid.UUID
	EntityType *string
	EventType  *string
}

// ActorSummary is a denormalized view of the acting user for display purposes
type ActorSummary struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	AvatarColor string    `json:"avatarColor"`
}

// EventLogResponse represents one audit trail entry
type EventLogResponse struct {
	ID         uuid.UUID              `json:"id"`
	UserID     uuid.UUID              `json:"userId"`
	Actor      *ActorSummary          `json:"actor,omitempty"`
	EventType  string                 `json:"eventType"`
	EntityType string                 `json:"entityType"`
	EntityID   uuid.UUID              `json:"entityId"`
	Details    map[string]interface{} `json:"details"`
	IPAddress  string                 `json:"ipAddress"`
	UserAgent  string                 `json:"userAgent"`
	CreatedAt  time.Time              `json:"createdAt"`
}

// EventLogPage is one page of audit trail entries
type EventLogPage struct {
	Entries []*EventLogResponse `json:"entries"`
	Total   int64               `json:"total"`
	Page    int                 `json:"page"`
	Limit   int                 `json:"limit"`
}

// EventLogSummary holds aggregate event counts per entity type
type EventLogSummary struct {
	Task        int64 `json:"task"`
	Board       int64 `json:"board"`
	Category    int64 `json:"category"`
	CustomField int64 `json:"customField"`
	User        int64 `json:"user"`
	System      int64 `json:"system"`
}
