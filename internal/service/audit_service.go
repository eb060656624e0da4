package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/metrics"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

const (
	defaultEventLogLimit = 50
	maxEventLogLimit     = 200
)

// AuditService records and queries the append-only event log. Every successful
// mutation in the other services produces exactly one entry through Record.
type AuditService interface {
	// Record appends one event log entry. Failures are logged and counted but
	// never propagated: an audit write failure must not fail the mutation that
	// already succeeded.
	Record(ctx context.Context, actor Actor, eventType, entityType string, entityID uuid.UUID, details map[string]interface{})
	Query(ctx context.Context, query dto.EventLogQuery) (*dto.EventLogPage, error)
	Summary(ctx context.Context) (*dto.EventLogSummary, error)
}

type auditServiceImpl struct {
	eventLogRepo repository.EventLogRepository
	userRepo     repository.UserRepository
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewAuditService creates a new instance of AuditService
func NewAuditService(
	eventLogRepo repository.EventLogRepository,
	userRepo repository.UserRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) AuditService {
	return &auditServiceImpl{
		eventLogRepo: eventLogRepo,
		userRepo:     userRepo,
		metrics:      m,
		logger:       logger,
	}
}

func (s *auditServiceImpl) Record(ctx context.Context, actor Actor, eventType, entityType string, entityID uuid.UUID, details map[string]interface{}) {
	var detailsJSON datatypes.JSON
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			s.logger.Warn("Failed to encode event details",
				zap.String("event_type", eventType),
				zap.Error(err))
			data = []byte("{}")
		}
		detailsJSON = data
	} else {
		detailsJSON = []byte("{}")
	}

	entry := &domain.EventLog{
		UserID:     actor.UserID,
		EventType:  eventType,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    detailsJSON,
		IPAddress:  actor.IPAddress,
		UserAgent:  actor.UserAgent,
	}

	if err := s.eventLogRepo.Create(ctx, entry); err != nil {
		if s.metrics != nil {
			s.metrics.IncrementAuditWriteFailure()
		}
		s.logger.Warn("Failed to write event log entry",
			zap.String("event_type", eventType),
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID.String()),
			zap.Error(err))
	}
}

func (s *auditServiceImpl) Query(ctx context.Context, query dto.EventLogQuery) (*dto.EventLogPage, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = defaultEventLogLimit
	}
	if limit > maxEventLogLimit {
		limit = maxEventLogLimit
	}

	filter := repository.EventLogFilter{
		UserID:     query.UserID,
		EntityType: query.EntityType,
		EventType:  query.EventType,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	entries, total, err := s.eventLogRepo.Query(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to query event log", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to query event log", err.Error())
	}

	actors, err := s.resolveActors(ctx, entries)
	if err != nil {
		// Actor display data is best effort; entries still go out without it.
		s.logger.Warn("Failed to resolve event log actors", zap.Error(err))
		actors = map[uuid.UUID]*dto.ActorSummary{}
	}

	responses := make([]*dto.EventLogResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, toEventLogResponse(entry, actors[entry.UserID]))
	}

	return &dto.EventLogPage{
		Entries: responses,
		Total:   total,
		Page:    page,
		Limit:   limit,
	}, nil
}

func (s *auditServiceImpl) Summary(ctx context.Context) (*dto.EventLogSummary, error) {
	counts, err := s.eventLogRepo.CountByEntityType(ctx)
	if err != nil {
		s.logger.Error("Failed to count event log entries", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to summarize event log", err.Error())
	}

	return &dto.EventLogSummary{
		Task:        counts[domain.EntityTypeTask],
		Board:       counts[domain.EntityTypeBoard],
		Category:    counts[domain.EntityTypeCategory],
		CustomField: counts[domain.EntityTypeCustomField],
		User:        counts[domain.EntityTypeUser],
		System:      counts[domain.EntityTypeSystem],
	}, nil
}

// resolveActors loads the acting users for a page of entries in one query
func (s *auditServiceImpl) resolveActors(ctx context.Context, entries []*domain.EventLog) (map[uuid.UUID]*dto.ActorSummary, error) {
	seen := make(map[uuid.UUID]bool, len(entries))
	ids := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		if entry.UserID == uuid.Nil || seen[entry.UserID] {
			continue
		}
		seen[entry.UserID] = true
		ids = append(ids, entry.UserID)
	}

	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	actors := make(map[uuid.UUID]*dto.ActorSummary, len(users))
	for _, user := range users {
		actors[user.ID] = &dto.ActorSummary{
			ID:          user.ID,
			Username:    user.Username,
			Email:       user.Email,
			Role:        string(user.Role),
			AvatarColor: user.AvatarColor,
		}
	}
	return actors, nil
}

func toEventLogResponse(entry *domain.EventLog, actor *dto.ActorSummary) *dto.EventLogResponse {
	var details map[string]interface{}
	if len(entry.Details) > 0 {
		if err := json.Unmarshal(entry.Details, &details); err != nil {
			details = map[string]interface{}{}
		}
	} else {
		details = map[string]interface{}{}
	}

	return &dto.EventLogResponse{
		ID:         entry.ID,
		UserID:     entry.UserID,
		Actor:      actor,
		EventType:  entry.EventType,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Details:    details,
		IPAddress:  entry.IPAddress,
		UserAgent:  entry.UserAgent,
		CreatedAt:  entry.CreatedAt,
	}
}
