package service

import (
	"context"

	"github.com/google/uuid"

	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/repository"
)

// MockTaskRepository is a mock implementation of TaskRepository
type MockTaskRepository struct {
	CreateFunc                  func(ctx context.Context, task *domain.Task) error
	FindByIDFunc                func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindByCategoryIDFunc        func(ctx context.Context, categoryID uuid.UUID, includeArchived bool) ([]*domain.Task, error)
	FindArchivedByBoardIDFunc   func(ctx context.Context, boardID uuid.UUID) ([]*domain.Task, error)
	UpdateFunc                  func(ctx context.Context, task *domain.Task) error
	UpdateRankFunc              func(ctx context.Context, id uuid.UUID, rank int) error
	DeleteFunc                  func(ctx context.Context, id uuid.UUID) error
	DeleteByCategoryIDFunc      func(ctx context.Context, categoryID uuid.UUID) error
	CountActiveByCategoryIDFunc func(ctx context.Context, categoryID uuid.UUID) (int64, error)
	MaxRankByCategoryIDFunc     func(ctx context.Context, categoryID uuid.UUID) (int, error)
	CountAllFunc                func(ctx context.Context) (int64, error)
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskRepository) FindByCategoryID(ctx context.Context, categoryID uuid.UUID, includeArchived bool) ([]*domain.Task, error) {
	if m.FindByCategoryIDFunc != nil {
		return m.FindByCategoryIDFunc(ctx, categoryID, includeArchived)
	}
	return nil, nil
}

func (m *MockTaskRepository) FindArchivedByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Task, error) {
	if m.FindArchivedByBoardIDFunc != nil {
		return m.FindArchivedByBoardIDFunc(ctx, boardID)
	}
	return nil, nil
}

func (m *MockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) UpdateRank(ctx context.Context, id uuid.UUID, rank int) error {
	if m.UpdateRankFunc != nil {
		return m.UpdateRankFunc(ctx, id, rank)
	}
	return nil
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockTaskRepository) DeleteByCategoryID(ctx context.Context, categoryID uuid.UUID) error {
	if m.DeleteByCategoryIDFunc != nil {
		return m.DeleteByCategoryIDFunc(ctx, categoryID)
	}
	return nil
}

func (m *MockTaskRepository) CountActiveByCategoryID(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	if m.CountActiveByCategoryIDFunc != nil {
		return m.CountActiveByCategoryIDFunc(ctx, categoryID)
	}
	return 0, nil
}

func (m *MockTaskRepository) MaxRankByCategoryID(ctx context.Context, categoryID uuid.UUID) (int, error) {
	if m.MaxRankByCategoryIDFunc != nil {
		return m.MaxRankByCategoryIDFunc(ctx, categoryID)
	}
	return -1, nil
}

func (m *MockTaskRepository) CountAll(ctx context.Context) (int64, error) {
	if m.CountAllFunc != nil {
		return m.CountAllFunc(ctx)
	}
	return 0, nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	CreateFunc            func(ctx context.Context, category *domain.Category) error
	FindByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	FindByBoardIDFunc     func(ctx context.Context, boardID uuid.UUID) ([]*domain.Category, error)
	UpdateFunc            func(ctx context.Context, category *domain.Category) error
	DeleteFunc            func(ctx context.Context, id uuid.UUID) error
	MaxOrderByBoardIDFunc func(ctx context.Context, boardID uuid.UUID) (int, error)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, category)
	}
	return nil
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCategoryRepository) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Category, error) {
	if m.FindByBoardIDFunc != nil {
		return m.FindByBoardIDFunc(ctx, boardID)
	}
	return nil, nil
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, category)
	}
	return nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockCategoryRepository) MaxOrderByBoardID(ctx context.Context, boardID uuid.UUID) (int, error) {
	if m.MaxOrderByBoardIDFunc != nil {
		return m.MaxOrderByBoardIDFunc(ctx, boardID)
	}
	return -1, nil
}

// MockCustomFieldRepository is a mock implementation of CustomFieldRepository
type MockCustomFieldRepository struct {
	CreateFunc             func(ctx context.Context, field *domain.CustomField) error
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.CustomField, error)
	FindByBoardIDFunc      func(ctx context.Context, boardID uuid.UUID) ([]*domain.CustomField, error)
	FindByBoardAndNameFunc func(ctx context.Context, boardID uuid.UUID, name string) (*domain.CustomField, error)
	UpdateFunc             func(ctx context.Context, field *domain.CustomField) error
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
	DeleteByBoardIDFunc    func(ctx context.Context, boardID uuid.UUID) error
}

func (m *MockCustomFieldRepository) Create(ctx context.Context, field *domain.CustomField) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, field)
	}
	return nil
}

func (m *MockCustomFieldRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.CustomField, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCustomFieldRepository) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.CustomField, error) {
	if m.FindByBoardIDFunc != nil {
		return m.FindByBoardIDFunc(ctx, boardID)
	}
	return nil, nil
}

func (m *MockCustomFieldRepository) FindByBoardAndName(ctx context.Context, boardID uuid.UUID, name string) (*domain.CustomField, error) {
	if m.FindByBoardAndNameFunc != nil {
		return m.FindByBoardAndNameFunc(ctx, boardID, name)
	}
	return nil, nil
}

func (m *MockCustomFieldRepository) Update(ctx context.Context, field *domain.CustomField) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, field)
	}
	return nil
}

func (m *MockCustomFieldRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockCustomFieldRepository) DeleteByBoardID(ctx context.Context, boardID uuid.UUID) error {
	if m.DeleteByBoardIDFunc != nil {
		return m.DeleteByBoardIDFunc(ctx, boardID)
	}
	return nil
}

// MockBoardRepository is a mock implementation of BoardRepository
type MockBoardRepository struct {
	CreateFunc        func(ctx context.Context, board *domain.Board) error
	FindByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	FindByOwnerIDFunc func(ctx context.Context, ownerID uuid.UUID, includeArchived bool) ([]*domain.Board, error)
	UpdateFunc        func(ctx context.Context, board *domain.Board) error
	DeleteFunc        func(ctx context.Context, id uuid.UUID) error
	CountAllFunc      func(ctx context.Context) (int64, error)
}

func (m *MockBoardRepository) Create(ctx context.Context, board *domain.Board) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, board)
	}
	return nil
}

func (m *MockBoardRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockBoardRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID, includeArchived bool) ([]*domain.Board, error) {
	if m.FindByOwnerIDFunc != nil {
		return m.FindByOwnerIDFunc(ctx, ownerID, includeArchived)
	}
	return nil, nil
}

func (m *MockBoardRepository) Update(ctx context.Context, board *domain.Board) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, board)
	}
	return nil
}

func (m *MockBoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockBoardRepository) CountAll(ctx context.Context) (int64, error) {
	if m.CountAllFunc != nil {
		return m.CountAllFunc(ctx)
	}
	return 0, nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	CreateFunc         func(ctx context.Context, user *domain.User) error
	FindByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByIDsFunc      func(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error)
	FindByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
	FindAllFunc        func(ctx context.Context) ([]*domain.User, error)
	UpdateFunc         func(ctx context.Context, user *domain.User) error
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return []*domain.User{}, nil
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockEventLogRepository is a mock implementation of EventLogRepository
type MockEventLogRepository struct {
	CreateFunc            func(ctx context.Context, entry *domain.EventLog) error
	QueryFunc             func(ctx context.Context, filter repository.EventLogFilter) ([]*domain.EventLog, int64, error)
	CountByEntityTypeFunc func(ctx context.Context) (map[string]int64, error)
}

func (m *MockEventLogRepository) Create(ctx context.Context, entry *domain.EventLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	return nil
}

func (m *MockEventLogRepository) Query(ctx context.Context, filter repository.EventLogFilter) ([]*domain.EventLog, int64, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *MockEventLogRepository) CountByEntityType(ctx context.Context) (map[string]int64, error) {
	if m.CountByEntityTypeFunc != nil {
		return m.CountByEntityTypeFunc(ctx)
	}
	return map[string]int64{}, nil
}

// MockSystemSettingRepository is a mock implementation of SystemSettingRepository
type MockSystemSettingRepository struct {
	GetFunc     func(ctx context.Context, key string) (*domain.SystemSetting, error)
	SetFunc     func(ctx context.Context, key, value string) error
	FindAllFunc func(ctx context.Context) ([]*domain.SystemSetting, error)
}

func (m *MockSystemSettingRepository) Get(ctx context.Context, key string) (*domain.SystemSetting, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return nil, nil
}

func (m *MockSystemSettingRepository) Set(ctx context.Context, key, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value)
	}
	return nil
}

func (m *MockSystemSettingRepository) FindAll(ctx context.Context) ([]*domain.SystemSetting, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

// recordedEvent captures one audit Record call
type recordedEvent struct {
	Actor      Actor
	EventType  string
	EntityType string
	EntityID   uuid.UUID
	Details    map[string]interface{}
}

// MockAuditService is a mock implementation of AuditService that captures events
type MockAuditService struct {
	Events      []recordedEvent
	QueryFunc   func(ctx context.Context, query dto.EventLogQuery) (*dto.EventLogPage, error)
	SummaryFunc func(ctx context.Context) (*dto.EventLogSummary, error)
}

func (m *MockAuditService) Record(ctx context.Context, actor Actor, eventType, entityType string, entityID uuid.UUID, details map[string]interface{}) {
	m.Events = append(m.Events, recordedEvent{
		Actor:      actor,
		EventType:  eventType,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	})
}

func (m *MockAuditService) Query(ctx context.Context, query dto.EventLogQuery) (*dto.EventLogPage, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, query)
	}
	return &dto.EventLogPage{}, nil
}

func (m *MockAuditService) Summary(ctx context.Context) (*dto.EventLogSummary, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx)
	}
	return &dto.EventLogSummary{}, nil
}
