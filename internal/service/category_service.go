package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard-api/internal/cache"
	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

// CategoryService defines the interface for category business logic
type CategoryService interface {
	CreateCategory(ctx context.Context, actor Actor, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error)
	GetCategoriesByBoard(ctx context.Context, boardID uuid.UUID) ([]dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, actor Actor, id uuid.UUID, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, actor Actor, id uuid.UUID) error
}

type categoryServiceImpl struct {
	categoryRepo repository.CategoryRepository
	boardRepo    repository.BoardRepository
	taskRepo     repository.TaskRepository
	audit        AuditService
	taskCache    *cache.TaskCache
	logger       *zap.Logger
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	boardRepo repository.BoardRepository,
	taskRepo repository.TaskRepository,
	audit AuditService,
	taskCache *cache.TaskCache,
	logger *zap.Logger,
) CategoryService {
	return &categoryServiceImpl{
		categoryRepo: categoryRepo,
		boardRepo:    boardRepo,
		taskRepo:     taskRepo,
		audit:        audit,
		taskCache:    taskCache,
		logger:       logger,
	}
}

// CreateCategory appends a category to the end of its board. The first category of
// a board gets order 0, every later one gets the current maximum plus one.
func (s *categoryServiceImpl) CreateCategory(ctx context.Context, actor Actor, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if _, err := s.boardRepo.FindByID(ctx, req.BoardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Board not found", req.BoardID.String())
		}
		s.logger.Error("Failed to find board", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create category", err.Error())
	}

	maxOrder, err := s.categoryRepo.MaxOrderByBoardID(ctx, req.BoardID)
	if err != nil {
		s.logger.Error("Failed to determine category order", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create category", err.Error())
	}

	category := &domain.Category{
		Name:    req.Name,
		Color:   req.Color,
		BoardID: req.BoardID,
		Order:   maxOrder + 1,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		s.logger.Error("Failed to create category", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create category", err.Error())
	}

	s.audit.Record(ctx, actor, "category.created", domain.EntityTypeCategory, category.ID, map[string]interface{}{
		"name":    category.Name,
		"color":   category.Color,
		"boardId": category.BoardID.String(),
		"order":   category.Order,
	})

	resp := toCategoryResponse(category)
	return &resp, nil
}

// GetCategory returns a single category
func (s *categoryServiceImpl) GetCategory(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Category not found", id.String())
		}
		s.logger.Error("Failed to find category", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to get category", err.Error())
	}

	resp := toCategoryResponse(category)
	return &resp, nil
}

// GetCategoriesByBoard returns the categories of a board sorted by display order
func (s *categoryServiceImpl) GetCategoriesByBoard(ctx context.Context, boardID uuid.UUID) ([]dto.CategoryResponse, error) {
	if _, err := s.boardRepo.FindByID(ctx, boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Board not found", boardID.String())
		}
		s.logger.Error("Failed to find board", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list categories", err.Error())
	}

	categories, err := s.categoryRepo.FindByBoardID(ctx, boardID)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list categories", err.Error())
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, toCategoryResponse(category))
	}
	return responses, nil
}

// UpdateCategory applies a partial update. Setting Order repositions the category
// among its siblings; ties between equal orders are resolved by the stable board
// ordering at read time.
func (s *categoryServiceImpl) UpdateCategory(ctx context.Context, actor Actor, id uuid.UUID, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Category not found", id.String())
		}
		s.logger.Error("Failed to find category", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update category", err.Error())
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.Order != nil {
		if *req.Order < 0 {
			return nil, response.NewValidationError("Order must not be negative", fmt.Sprintf("order=%d", *req.Order))
		}
		category.Order = *req.Order
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		s.logger.Error("Failed to update category", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update category", err.Error())
	}

	s.audit.Record(ctx, actor, "category.updated", domain.EntityTypeCategory, category.ID, map[string]interface{}{
		"name":    category.Name,
		"color":   category.Color,
		"boardId": category.BoardID.String(),
		"order":   category.Order,
	})

	resp := toCategoryResponse(category)
	return &resp, nil
}

// DeleteCategory hard deletes a category and its archived tasks. A category that
// still holds non-archived tasks is protected and the call fails with a conflict.
func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, actor Actor, id uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Category not found", id.String())
		}
		s.logger.Error("Failed to find category", zap.Error(err))
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete category", err.Error())
	}

	activeCount, err := s.taskRepo.CountActiveByCategoryID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to count category tasks", zap.Error(err))
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete category", err.Error())
	}
	if activeCount > 0 {
		return response.NewConflictError(
			"Category still contains active tasks",
			fmt.Sprintf("%d active task(s) must be moved or archived first", activeCount))
	}

	if err := s.taskRepo.DeleteByCategoryID(ctx, id); err != nil {
		s.logger.Error("Failed to delete category tasks", zap.Error(err))
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete category", err.Error())
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete category", zap.Error(err))
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete category", err.Error())
	}

	s.taskCache.InvalidateCategory(ctx, id)
	s.audit.Record(ctx, actor, "category.deleted", domain.EntityTypeCategory, id, map[string]interface{}{
		"name":    category.Name,
		"color":   category.Color,
		"boardId": category.BoardID.String(),
		"order":   category.Order,
	})
	return nil
}

func toCategoryResponse(category *domain.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Color:     category.Color,
		BoardID:   category.BoardID,
		Order:     category.Order,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}
