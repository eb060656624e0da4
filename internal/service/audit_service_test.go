package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/repository"
)

func newAuditServiceForTest(eventLogRepo *MockEventLogRepository, userRepo *MockUserRepository) AuditService {
	return NewAuditService(eventLogRepo, userRepo, nil, zap.NewNop())
}

func TestAuditRecord(t *testing.T) {
	actor := Actor{
		UserID:    uuid.New(),
		IPAddress: "10.0.0.1",
		UserAgent: "test-agent",
	}
	entityID := uuid.New()

	t.Run("writes one entry with encoded details", func(t *testing.T) {
		var written *domain.EventLog
		eventLogRepo := &MockEventLogRepository{
			CreateFunc: func(ctx context.Context, entry *domain.EventLog) error {
				written = entry
				return nil
			},
		}
		service := newAuditServiceForTest(eventLogRepo, &MockUserRepository{})

		service.Record(context.Background(), actor, "task.created", domain.EntityTypeTask, entityID, map[string]interface{}{
			"title": "New task",
		})

		require.NotNil(t, written)
		assert.Equal(t, actor.UserID, written.UserID)
		assert.Equal(t, "task.created", written.EventType)
		assert.Equal(t, domain.EntityTypeTask, written.EntityType)
		assert.Equal(t, entityID, written.EntityID)
		assert.Equal(t, "10.0.0.1", written.IPAddress)
		assert.Equal(t, "test-agent", written.UserAgent)
		assert.JSONEq(t, `{"title":"New task"}`, string(written.Details))
	})

	t.Run("nil details become an empty object", func(t *testing.T) {
		var written *domain.EventLog
		eventLogRepo := &MockEventLogRepository{
			CreateFunc: func(ctx context.Context, entry *domain.EventLog) error {
				written = entry
				return nil
			},
		}
		service := newAuditServiceForTest(eventLogRepo, &MockUserRepository{})

		service.Record(context.Background(), actor, "task.deleted", domain.EntityTypeTask, entityID, nil)

		require.NotNil(t, written)
		assert.JSONEq(t, `{}`, string(written.Details))
	})

	t.Run("write failure is swallowed", func(t *testing.T) {
		eventLogRepo := &MockEventLogRepository{
			CreateFunc: func(ctx context.Context, entry *domain.EventLog) error {
				return errors.New("event log unavailable")
			},
		}
		service := newAuditServiceForTest(eventLogRepo, &MockUserRepository{})

		assert.NotPanics(t, func() {
			service.Record(context.Background(), actor, "task.created", domain.EntityTypeTask, entityID, nil)
		})
	})
}

func TestAuditQuery(t *testing.T) {
	t.Run("defaults page and limit", func(t *testing.T) {
		var captured repository.EventLogFilter
		eventLogRepo := &MockEventLogRepository{
			QueryFunc: func(ctx context.Context, filter repository.EventLogFilter) ([]*domain.EventLog, int64, error) {
				captured = filter
				return []*domain.EventLog{}, 0, nil
			},
		}
		service := newAuditServiceForTest(eventLogRepo, &MockUserRepository{})

		page, err := service.Query(context.Background(), dto.EventLogQuery{})

		require.NoError(t, err)
		assert.Equal(t, 50, captured.Limit)
		assert.Equal(t, 0, captured.Offset)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 50, page.Limit)
	})

	t.Run("caps an oversized limit and offsets by page", func(t *testing.T) {
		var captured repository.EventLogFilter
		eventLogRepo := &MockEventLogRepository{
			QueryFunc: func(ctx context.Context, filter repository.EventLogFilter) ([]*domain.EventLog, int64, error) {
				captured = filter
				return []*domain.EventLog{}, 0, nil
			},
		}
		service := newAuditServiceForTest(eventLogRepo, &MockUserRepository{})

		_, err := service.Query(context.Background(), dto.EventLogQuery{Page: 3, Limit: 1000})

		require.NoError(t, err)
		assert.Equal(t, 200, captured.Limit)
		assert.Equal(t, 400, captured.Offset)
	})

	t.Run("resolves acting users for display", func(t *testing.T) {
		userID := uuid.New()
		entries := []*domain.EventLog{
			{ID: uuid.New(), UserID: userID, EventType: "task.created", EntityType: domain.EntityTypeTask, EntityID: uuid.New()},
			{ID: uuid.New(), UserID: userID, EventType: "task.updated", EntityType: domain.EntityTypeTask, EntityID: uuid.New()},
			{ID: uuid.New(), UserID: uuid.Nil, EventType: "system.settingChanged", EntityType: domain.EntityTypeSystem, EntityID: uuid.Nil},
		}
		eventLogRepo := &MockEventLogRepository{
			QueryFunc: func(ctx context.Context, filter repository.EventLogFilter) ([]*domain.EventLog, int64, error) {
				return entries, int64(len(entries)), nil
			},
		}

		var requestedIDs []uuid.UUID
		userRepo := &MockUserRepository{
			FindByIDsFunc: func(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error) {
				requestedIDs = ids
				return []*domain.User{
					{BaseModel: domain.BaseModel{ID: userID}, Username: "alice", Role: domain.UserRoleUser},
				}, nil
			},
		}
		service := newAuditServiceForTest(eventLogRepo, userRepo)

		page, err := service.Query(context.Background(), dto.EventLogQuery{})

		require.NoError(t, err)
		// Duplicate and nil actor IDs are not looked up.
		assert.Equal(t, []uuid.UUID{userID}, requestedIDs)
		require.Len(t, page.Entries, 3)
		require.NotNil(t, page.Entries[0].Actor)
		assert.Equal(t, "alice", page.Entries[0].Actor.Username)
		assert.Nil(t, page.Entries[2].Actor)
	})

	t.Run("actor lookup failure leaves entries without actors", func(t *testing.T) {
		entries := []*domain.EventLog{
			{ID: uuid.New(), UserID: uuid.New(), EventType: "task.created", EntityType: domain.EntityTypeTask, EntityID: uuid.New()},
		}
		eventLogRepo := &MockEventLogRepository{
			QueryFunc: func(ctx context.Context, filter repository.EventLogFilter) ([]*domain.EventLog, int64, error) {
				return entries, 1, nil
			},
		}
		userRepo := &MockUserRepository{
			FindByIDsFunc: func(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error) {
				return nil, errors.New("users unavailable")
			},
		}
		service := newAuditServiceForTest(eventLogRepo, userRepo)

		page, err := service.Query(context.Background(), dto.EventLogQuery{})

		require.NoError(t, err)
		require.Len(t, page.Entries, 1)
		assert.Nil(t, page.Entries[0].Actor)
	})
}

func TestAuditSummary(t *testing.T) {
	eventLogRepo := &MockEventLogRepository{
		CountByEntityTypeFunc: func(ctx context.Context) (map[string]int64, error) {
			return map[string]int64{
				domain.EntityTypeTask:        12,
				domain.EntityTypeBoard:       3,
				domain.EntityTypeCategory:    5,
				domain.EntityTypeCustomField: 2,
				domain.EntityTypeUser:        7,
			}, nil
		},
	}
	service := newAuditServiceForTest(eventLogRepo, &MockUserRepository{})

	summary, err := service.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(12), summary.Task)
	assert.Equal(t, int64(3), summary.Board)
	assert.Equal(t, int64(5), summary.Category)
	assert.Equal(t, int64(2), summary.CustomField)
	assert.Equal(t, int64(7), summary.User)
	assert.Equal(t, int64(0), summary.System)
}
