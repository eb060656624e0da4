package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard-api/internal/cache"
	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

// BoardService defines the interface for board business logic
type BoardService interface {
	CreateBoard(ctx context.Context, actor Actor, req *dto.CreateBoardRequest) (*dto.BoardResponse, error)
	GetBoard(ctx context.Context, id uuid.UUID) (*dto.BoardDetailResponse, error)
	GetBoardsByOwner(ctx context.Context, ownerID uuid.UUID, includeArchived bool) ([]dto.BoardResponse, error)
	UpdateBoard(ctx context.Context, actor Actor, id uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error)
	DeleteBoard(ctx context.Context, actor Actor, id uuid.UUID) error
}

type boardServiceImpl struct {
	boardRepo       repository.BoardRepository
	categoryRepo    repository.CategoryRepository
	customFieldRepo repository.CustomFieldRepository
	taskRepo        repository.TaskRepository
	audit           AuditService
	taskCache       *cache.TaskCache
	logger          *zap.Logger
}

// NewBoardService creates a new instance of BoardService
func NewBoardService(
	boardRepo repository.BoardRepository,
	categoryRepo repository.CategoryRepository,
	customFieldRepo repository.CustomFieldRepository,
	taskRepo repository.TaskRepository,
	audit AuditService,
	taskCache *cache.TaskCache,
	logger *zap.Logger,
) BoardService {
	return &boardServiceImpl{
		boardRepo:       boardRepo,
		categoryRepo:    categoryRepo,
		customFieldRepo: customFieldRepo,
		taskRepo:        taskRepo,
		audit:           audit,
		taskCache:       taskCache,
		logger:          logger,
	}
}

// CreateBoard creates a board owned by the acting user
func (s *boardServiceImpl) CreateBoard(ctx context.Context, actor Actor, req *dto.CreateBoardRequest) (*dto.BoardResponse, error) {
	board := &domain.Board{
		Name:    req.Name,
		OwnerID: actor.UserID,
	}

	if err := s.boardRepo.Create(ctx, board); err != nil {
		s.logger.Error("Failed to create board", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create board", err.Error())
	}

	s.audit.Record(ctx, actor, "board.created", domain.EntityTypeBoard, board.ID, map[string]interface{}{
		"name":    board.Name,
		"ownerId": board.OwnerID.String(),
	})

	resp := toBoardResponse(board)
	return &resp, nil
}

// GetBoard returns a board together with its ordered categories and custom fields
func (s *boardServiceImpl) GetBoard(ctx context.Context, id uuid.UUID) (*dto.BoardDetailResponse, error) {
	board, err := s.boardRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Board not found", id.String())
		}
		s.logger.Error("Failed to find board", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to get board", err.Error())
	}

	categories, err := s.categoryRepo.FindByBoardID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to get board", err.Error())
	}
	fields, err := s.customFieldRepo.FindByBoardID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to list custom fields", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to get board", err.Error())
	}

	detail := &dto.BoardDetailResponse{
		BoardResponse: toBoardResponse(board),
		Categories:    make([]dto.CategoryResponse, 0, len(categories)),
		CustomFields:  make([]dto.CustomFieldResponse, 0, len(fields)),
	}
	for _, category := range categories {
		detail.Categories = append(detail.Categories, toCategoryResponse(category))
	}
	for _, field := range fields {
		detail.CustomFields = append(detail.CustomFields, toCustomFieldResponse(field))
	}
	return detail, nil
}

// GetBoardsByOwner returns boards owned by a user, newest first
func (s *boardServiceImpl) GetBoardsByOwner(ctx context.Context, ownerID uuid.UUID, includeArchived bool) ([]dto.BoardResponse, error) {
	boards, err := s.boardRepo.FindByOwnerID(ctx, ownerID, includeArchived)
	if err != nil {
		s.logger.Error("Failed to list boards", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list boards", err.Error())
	}

	responses := make([]dto.BoardResponse, 0, len(boards))
	for _, board := range boards {
		responses = append(responses, toBoardResponse(board))
	}
	return responses, nil
}

// UpdateBoard applies a partial update. Toggling IsArchived produces an archive or
// restore event instead of a plain update event.
func (s *boardServiceImpl) UpdateBoard(ctx context.Context, actor Actor, id uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error) {
	board, err := s.boardRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Board not found", id.String())
		}
		s.logger.Error("Failed to find board", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update board", err.Error())
	}

	eventType := "board.updated"
	if req.Name != nil {
		board.Name = *req.Name
	}
	if req.IsArchived != nil && *req.IsArchived != board.IsArchived {
		board.IsArchived = *req.IsArchived
		if board.IsArchived {
			eventType = "board.archived"
		} else {
			eventType = "board.restored"
		}
	}

	if err := s.boardRepo.Update(ctx, board); err != nil {
		s.logger.Error("Failed to update board", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update board", err.Error())
	}

	s.audit.Record(ctx, actor, eventType, domain.EntityTypeBoard, board.ID, map[string]interface{}{
		"name":       board.Name,
		"ownerId":    board.OwnerID.String(),
		"isArchived": board.IsArchived,
	})

	resp := toBoardResponse(board)
	return &resp, nil
}

// DeleteBoard hard deletes a board with everything in it: tasks first, then custom
// fields and categories, then the board row itself.
func (s *boardServiceImpl) DeleteBoard(ctx context.Context, actor Actor, id uuid.UUID) error {
	board, err := s.boardRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Board not found", id.String())
		}
		s.logger.Error("Failed to find board", zap.Error(err))
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete board", err.Error())
	}

	categories, err := s.categoryRepo.FindByBoardID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete board", err.Error())
	}

	for _, category := range categories {
		if err := s.taskRepo.DeleteByCategoryID(ctx, category.ID); err != nil {
			s.logger.Error("Failed to delete category tasks", zap.Error(err))
			return response.NewAppError(response.ErrCodeInternal, "Failed to delete board", err.Error())
		}
		if err := s.categoryRepo.Delete(ctx, category.ID); err != nil {
			s.logger.Error("Failed to delete category", zap.Error(err))
			return response.NewAppError(response.ErrCodeInternal, "Failed to delete board", err.Error())
		}
		s.taskCache.InvalidateCategory(ctx, category.ID)
	}

	if err := s.customFieldRepo.DeleteByBoardID(ctx, id); err != nil {
		s.logger.Error("Failed to delete custom fields", zap.Error(err))
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete board", err.Error())
	}
	if err := s.boardRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete board", zap.Error(err))
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete board", err.Error())
	}

	s.audit.Record(ctx, actor, "board.deleted", domain.EntityTypeBoard, id, map[string]interface{}{
		"name":       board.Name,
		"ownerId":    board.OwnerID.String(),
		"categories": len(categories),
	})
	return nil
}

func toBoardResponse(board *domain.Board) dto.BoardResponse {
	return dto.BoardResponse{
		ID:         board.ID,
		Name:       board.Name,
		OwnerID:    board.OwnerID,
		IsArchived: board.IsArchived,
		CreatedAt:  board.CreatedAt,
		UpdatedAt:  board.UpdatedAt,
	}
}
