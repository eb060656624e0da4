package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
)

// EventLogFilter narrows an event log query. Nil fields are ignored.
type EventLogFilter struct {
	UserID     *uuid.UUID
	EntityType *string
	EventType  *string
	Limit      int
	Offset     int
}

// EventLogRepository defines the interface for event log data access. The log is
// append-only: there is no update or delete operation.
type EventLogRepository interface {
	Create(ctx context.Context, entry *domain.EventLog) error
	Query(ctx context.Context, filter EventLogFilter) ([]*domain.EventLog, int64, error)
	CountByEntityType(ctx context.Context) (map[string]int64, error)
}

// eventLogRepositoryImpl is the GORM implementation of EventLogRepository
type eventLogRepositoryImpl struct {
	db *gorm.DB
}

// NewEventLogRepository creates a new instance of EventLogRepository
func NewEventLogRepository(db *gorm.DB) EventLogRepository {
	return &eventLogRepositoryImpl{db: db}
}

// Create appends one event log row
func (r *eventLogRepositoryImpl) Create(ctx context.Context, entry *domain.EventLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Query returns a page of event log rows ordered by creation time descending,
// along with the total row count for the filter. All filter values are bound as
// query parameters.
func (r *eventLogRepositoryImpl) Query(ctx context.Context, filter EventLogFilter) ([]*domain.EventLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.EventLog{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.EntityType != nil {
		query = query.Where("entity_type = ?", *filter.EntityType)
	}
	if filter.EventType != nil {
		query = query.Where("event_type = ?", *filter.EventType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []*domain.EventLog
	if err := query.
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// CountByEntityType returns aggregate row counts grouped by the entity_type
// column. Grouping is by the stored column, not a prefix parse of event_type.
func (r *eventLogRepositoryImpl) CountByEntityType(ctx context.Context) (map[string]int64, error) {
	type entityCount struct {
		EntityType string
		Count      int64
	}

	var rows []entityCount
	if err := r.db.WithContext(ctx).
		Model(&domain.EventLog{}).
		Select("entity_type, COUNT(*) as count").
		Group("entity_type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.EntityType] = row.Count
	}
	return counts, nil
}
