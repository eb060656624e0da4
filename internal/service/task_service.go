package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard-api/internal/cache"
	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/metrics"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

// TaskService defines the interface for task business logic. Every mutation takes
// an explicit Actor and, when it succeeds, records exactly one event log entry.
type TaskService interface {
	CreateTask(ctx context.Context, actor Actor, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	GetTask(ctx context.Context, id uuid.UUID) (*dto.TaskResponse, error)
	GetTasksByCategory(ctx context.Context, categoryID uuid.UUID, includeArchived bool) ([]dto.TaskResponse, error)
	GetArchivedTasksByBoard(ctx context.Context, boardID uuid.UUID) ([]dto.TaskResponse, error)
	UpdateTask(ctx context.Context, actor Actor, id uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	ArchiveTask(ctx context.Context, actor Actor, id uuid.UUID) (*dto.TaskResponse, error)
	RestoreTask(ctx context.Context, actor Actor, id uuid.UUID) (*dto.TaskResponse, error)
	// DeleteTask removes a task and returns the ID of the category that owned it.
	DeleteTask(ctx context.Context, actor Actor, id uuid.UUID) (uuid.UUID, error)
	MoveTask(ctx context.Context, actor Actor, id uuid.UUID, req *dto.MoveTaskRequest) (*dto.TaskResponse, error)
}

type taskServiceImpl struct {
	taskRepo        repository.TaskRepository
	categoryRepo    repository.CategoryRepository
	customFieldRepo repository.CustomFieldRepository
	audit           AuditService
	taskCache       *cache.TaskCache
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

// NewTaskService creates a new instance of TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	categoryRepo repository.CategoryRepository,
	customFieldRepo repository.CustomFieldRepository,
	audit AuditService,
	taskCache *cache.TaskCache,
	m *metrics.Metrics,
	logger *zap.Logger,
) TaskService {
	return &taskServiceImpl{
		taskRepo:        taskRepo,
		categoryRepo:    categoryRepo,
		customFieldRepo: customFieldRepo,
		audit:           audit,
		taskCache:       taskCache,
		metrics:         m,
		logger:          logger,
	}
}

// CreateTask creates a task at the end of its category. Custom data is normalized
// before persistence so nil and empty-string values never reach storage.
func (s *taskServiceImpl) CreateTask(ctx context.Context, actor Actor, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Category not found", req.CategoryID.String())
		}
		s.logger.Error("Failed to find category", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create task", err.Error())
	}

	maxRank, err := s.taskRepo.MaxRankByCategoryID(ctx, category.ID)
	if err != nil {
		s.logger.Error("Failed to determine task rank", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create task", err.Error())
	}

	task := &domain.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		CategoryID:  category.ID,
		Assignees:   encodeStringSlice(req.Assignees),
		CustomData:  encodeJSONMap(NormalizeCustomData(req.CustomData)),
		Rank:        maxRank + 1,
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		task.Priority = &priority
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		s.logger.Error("Failed to create task", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create task", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementTaskCreated()
	}
	s.taskCache.InvalidateCategory(ctx, category.ID)
	s.audit.Record(ctx, actor, "task.created", domain.EntityTypeTask, task.ID, taskSnapshot(task))

	resp := toTaskResponse(task)
	return &resp, nil
}

// GetTask returns a single task. Custom data entries that no longer match a custom
// field on the board are filtered out of the response but kept in storage.
func (s *taskServiceImpl) GetTask(ctx context.Context, id uuid.UUID) (*dto.TaskResponse, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Task not found", id.String())
		}
		s.logger.Error("Failed to find task", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to get task", err.Error())
	}

	validFields, err := s.validFieldNamesForCategory(ctx, task.CategoryID)
	if err != nil {
		return nil, err
	}

	resp := toTaskResponse(task)
	resp.CustomData = PruneStaleCustomData(resp.CustomData, validFields)
	return &resp, nil
}

// GetTasksByCategory returns the ordered task list of a category. Non-archived
// listings are served through the Redis cache when available.
func (s *taskServiceImpl) GetTasksByCategory(ctx context.Context, categoryID uuid.UUID, includeArchived bool) ([]dto.TaskResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Category not found", categoryID.String())
		}
		s.logger.Error("Failed to find category", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list tasks", err.Error())
	}

	var responses []dto.TaskResponse
	cached := false
	if !includeArchived {
		if hit, ok := s.taskCache.GetCategoryTasks(ctx, categoryID); ok {
			responses = hit
			cached = true
			if s.metrics != nil {
				s.metrics.RecordCacheHit("category_tasks")
			}
		} else if s.metrics != nil {
			s.metrics.RecordCacheMiss("category_tasks")
		}
	}

	if !cached {
		tasks, err := s.taskRepo.FindByCategoryID(ctx, categoryID, includeArchived)
		if err != nil {
			s.logger.Error("Failed to list tasks", zap.Error(err))
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list tasks", err.Error())
		}
		responses = make([]dto.TaskResponse, 0, len(tasks))
		for _, task := range tasks {
			responses = append(responses, toTaskResponse(task))
		}
		if !includeArchived {
			s.taskCache.SetCategoryTasks(ctx, categoryID, responses)
		}
	}

	// Pruning happens after the cache so cached entries stay valid across
	// custom field changes.
	validFields, err := s.validFieldNamesForBoard(ctx, category.BoardID)
	if err != nil {
		return nil, err
	}
	for i := range responses {
		responses[i].CustomData = PruneStaleCustomData(responses[i].CustomData, validFields)
	}
	return responses, nil
}

// GetArchivedTasksByBoard returns all archived tasks of a board
func (s *taskServiceImpl) GetArchivedTasksByBoard(ctx context.Context, boardID uuid.UUID) ([]dto.TaskResponse, error) {
	tasks, err := s.taskRepo.FindArchivedByBoardID(ctx, boardID)
	if err != nil {
		s.logger.Error("Failed to list archived tasks", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list archived tasks", err.Error())
	}

	validFields, err := s.validFieldNamesForBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		resp := toTaskResponse(task)
		resp.CustomData = PruneStaleCustomData(resp.CustomData, validFields)
		responses = append(responses, resp)
	}
	return responses, nil
}

// UpdateTask applies a partial update. The custom data patch is merged over the
// stored mapping, so a key set to nil or the empty string clears that field while
// unrelated keys survive.
func (s *taskServiceImpl) UpdateTask(ctx context.Context, actor Actor, id uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Task not found", id.String())
		}
		s.logger.Error("Failed to find task", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update task", err.Error())
	}

	before := taskSnapshot(task)
	previousCategoryID := task.CategoryID

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		task.Priority = &priority
	}
	if req.Assignees != nil {
		task.Assignees = encodeStringSlice(*req.Assignees)
	}
	if req.CustomData != nil {
		merged := MergeCustomData(decodeJSONMap(task.CustomData), *req.CustomData)
		task.CustomData = encodeJSONMap(merged)
	}
	if req.CategoryID != nil && *req.CategoryID != task.CategoryID {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewNotFoundError("Category not found", req.CategoryID.String())
			}
			s.logger.Error("Failed to find category", zap.Error(err))
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update task", err.Error())
		}
		maxRank, err := s.taskRepo.MaxRankByCategoryID(ctx, *req.CategoryID)
		if err != nil {
			s.logger.Error("Failed to determine task rank", zap.Error(err))
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update task", err.Error())
		}
		task.CategoryID = *req.CategoryID
		task.Rank = maxRank + 1
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		s.logger.Error("Failed to update task", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update task", err.Error())
	}

	after := taskSnapshot(task)
	s.taskCache.InvalidateCategories(ctx, previousCategoryID, task.CategoryID)
	s.audit.Record(ctx, actor, "task.updated", domain.EntityTypeTask, task.ID, map[string]interface{}{
		"before":        before,
		"after":         after,
		"changedFields": patchedFields(req),
	})

	resp := toTaskResponse(task)
	return &resp, nil
}

// ArchiveTask marks a task as archived
func (s *taskServiceImpl) ArchiveTask(ctx context.Context, actor Actor, id uuid.UUID) (*dto.TaskResponse, error) {
	return s.setArchived(ctx, actor, id, true, "task.archived")
}

// RestoreTask brings an archived task back to its category
func (s *taskServiceImpl) RestoreTask(ctx context.Context, actor Actor, id uuid.UUID) (*dto.TaskResponse, error) {
	return s.setArchived(ctx, actor, id, false, "task.restored")
}

func (s *taskServiceImpl) setArchived(ctx context.Context, actor Actor, id uuid.UUID, archived bool, eventType string) (*dto.TaskResponse, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Task not found", id.String())
		}
		s.logger.Error("Failed to find task", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update task", err.Error())
	}

	task.IsArchived = archived
	if err := s.taskRepo.Update(ctx, task); err != nil {
		s.logger.Error("Failed to update task", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update task", err.Error())
	}

	s.taskCache.InvalidateCategory(ctx, task.CategoryID)
	s.audit.Record(ctx, actor, eventType, domain.EntityTypeTask, task.ID, taskSnapshot(task))

	resp := toTaskResponse(task)
	return &resp, nil
}

// DeleteTask hard deletes a task and returns the owning category ID so callers can
// refresh that category. The event carries a full snapshot because the row is gone.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, actor Actor, id uuid.UUID) (uuid.UUID, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, response.NewNotFoundError("Task not found", id.String())
		}
		s.logger.Error("Failed to find task", zap.Error(err))
		return uuid.Nil, response.NewAppError(response.ErrCodeInternal, "Failed to delete task", err.Error())
	}

	categoryID := task.CategoryID
	snapshot := taskSnapshot(task)

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete task", zap.Error(err))
		return uuid.Nil, response.NewAppError(response.ErrCodeInternal, "Failed to delete task", err.Error())
	}

	s.taskCache.InvalidateCategory(ctx, categoryID)
	s.audit.Record(ctx, actor, "task.deleted", domain.EntityTypeTask, id, map[string]interface{}{
		"task": snapshot,
	})
	return categoryID, nil
}

// MoveTask relocates a task to a position inside a target category and renumbers
// the active tasks of the target, and on a cross-category move also the source, to
// a dense 0..N-1 rank sequence. Moving to the current position is a no-op and
// records no event.
func (s *taskServiceImpl) MoveTask(ctx context.Context, actor Actor, id uuid.UUID, req *dto.MoveTaskRequest) (*dto.TaskResponse, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Task not found", id.String())
		}
		s.logger.Error("Failed to find task", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to move task", err.Error())
	}

	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Category not found", req.CategoryID.String())
		}
		s.logger.Error("Failed to find category", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to move task", err.Error())
	}

	sourceCategoryID := task.CategoryID
	targets, err := s.taskRepo.FindByCategoryID(ctx, req.CategoryID, false)
	if err != nil {
		s.logger.Error("Failed to list target tasks", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to move task", err.Error())
	}

	// Remove the moving task from the target ordering before reinsertion.
	ordered := make([]*domain.Task, 0, len(targets)+1)
	currentIndex := -1
	for _, t := range targets {
		if t.ID == task.ID {
			currentIndex = len(ordered)
			continue
		}
		ordered = append(ordered, t)
	}

	index := req.Index
	if index < 0 {
		index = 0
	}
	if index > len(ordered) {
		index = len(ordered)
	}

	if sourceCategoryID == req.CategoryID && currentIndex == index {
		resp := toTaskResponse(task)
		return &resp, nil
	}

	ordered = append(ordered, nil)
	copy(ordered[index+1:], ordered[index:])
	ordered[index] = task

	task.CategoryID = req.CategoryID
	if err := s.taskRepo.Update(ctx, task); err != nil {
		s.logger.Error("Failed to move task", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to move task", err.Error())
	}

	if err := s.renumberTasks(ctx, ordered); err != nil {
		return nil, err
	}

	// A cross-category move leaves a hole in the source ordering; close it.
	if sourceCategoryID != req.CategoryID {
		remaining, err := s.taskRepo.FindByCategoryID(ctx, sourceCategoryID, false)
		if err != nil {
			s.logger.Error("Failed to list source tasks", zap.Error(err))
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to move task", err.Error())
		}
		if err := s.renumberTasks(ctx, remaining); err != nil {
			return nil, err
		}
	}

	if s.metrics != nil {
		s.metrics.IncrementTaskMoved()
	}
	s.taskCache.InvalidateCategories(ctx, sourceCategoryID, req.CategoryID)
	s.audit.Record(ctx, actor, "task.moved", domain.EntityTypeTask, task.ID, map[string]interface{}{
		"fromCategoryId": sourceCategoryID.String(),
		"toCategoryId":   req.CategoryID.String(),
		"index":          index,
	})

	resp := toTaskResponse(task)
	return &resp, nil
}

// renumberTasks persists a dense 0..N-1 rank sequence over an ordered task list,
// touching only the rows whose rank actually changes
func (s *taskServiceImpl) renumberTasks(ctx context.Context, ordered []*domain.Task) error {
	for rank, t := range ordered {
		if t.Rank == rank {
			continue
		}
		t.Rank = rank
		if err := s.taskRepo.UpdateRank(ctx, t.ID, rank); err != nil {
			s.logger.Error("Failed to renumber task", zap.Error(err))
			return response.NewAppError(response.ErrCodeInternal, "Failed to move task", err.Error())
		}
	}
	return nil
}

// validFieldNamesForCategory resolves the owning board and returns its custom
// field name set
func (s *taskServiceImpl) validFieldNamesForCategory(ctx context.Context, categoryID uuid.UUID) (map[string]bool, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Category not found", categoryID.String())
		}
		s.logger.Error("Failed to find category", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to resolve custom fields", err.Error())
	}
	return s.validFieldNamesForBoard(ctx, category.BoardID)
}

func (s *taskServiceImpl) validFieldNamesForBoard(ctx context.Context, boardID uuid.UUID) (map[string]bool, error) {
	fields, err := s.customFieldRepo.FindByBoardID(ctx, boardID)
	if err != nil {
		s.logger.Error("Failed to list custom fields", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to resolve custom fields", err.Error())
	}
	names := make(map[string]bool, len(fields))
	for _, field := range fields {
		names[field.Name] = true
	}
	return names, nil
}

// taskSnapshot captures the audit-relevant state of a task
func taskSnapshot(task *domain.Task) map[string]interface{} {
	snapshot := map[string]interface{}{
		"title":       task.Title,
		"description": task.Description,
		"categoryId":  task.CategoryID.String(),
		"isArchived":  task.IsArchived,
		"assignees":   decodeStringSlice(task.Assignees),
		"customData":  decodeJSONMap(task.CustomData),
		"rank":        task.Rank,
	}
	if task.DueDate != nil {
		snapshot["dueDate"] = *task.DueDate
	}
	if task.Priority != nil {
		snapshot["priority"] = string(*task.Priority)
	}
	return snapshot
}

// patchedFields lists the top-level keys present in an update request, whether
// or not the patch actually changes the stored value
func patchedFields(req *dto.UpdateTaskRequest) []string {
	fields := []string{}
	if req.Title != nil {
		fields = append(fields, "title")
	}
	if req.Description != nil {
		fields = append(fields, "description")
	}
	if req.DueDate != nil {
		fields = append(fields, "dueDate")
	}
	if req.Priority != nil {
		fields = append(fields, "priority")
	}
	if req.CategoryID != nil {
		fields = append(fields, "categoryId")
	}
	if req.Assignees != nil {
		fields = append(fields, "assignees")
	}
	if req.CustomData != nil {
		fields = append(fields, "customData")
	}
	return fields
}

func toTaskResponse(task *domain.Task) dto.TaskResponse {
	var priority *string
	if task.Priority != nil {
		p := string(*task.Priority)
		priority = &p
	}
	return dto.TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Priority:    priority,
		CategoryID:  task.CategoryID,
		IsArchived:  task.IsArchived,
		Assignees:   decodeStringSlice(task.Assignees),
		CustomData:  decodeJSONMap(task.CustomData),
		Comments:    task.Comments,
		Rank:        task.Rank,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// decodeJSONMap decodes a stored JSON object, degrading to an empty mapping
func decodeJSONMap(data []byte) map[string]interface{} {
	if len(data) == 0 {
		return map[string]interface{}{}
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return map[string]interface{}{}
	}
	return m
}

// encodeJSONMap encodes a mapping for JSONB storage, nil becomes {}
func encodeJSONMap(m map[string]interface{}) []byte {
	if m == nil {
		m = map[string]interface{}{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return []byte("{}")
	}
	return data
}

func decodeStringSlice(data []byte) []string {
	if len(data) == 0 {
		return []string{}
	}
	var s []string
	if err := json.Unmarshal(data, &s); err != nil || s == nil {
		return []string{}
	}
	return s
}

func encodeStringSlice(s []string) []byte {
	if s == nil {
		s = []string{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return []byte("[]")
	}
	return data
}
