package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

// CustomFieldService defines the interface for custom field business logic
type CustomFieldService interface {
	CreateCustomField(ctx context.Context, actor Actor, req *dto.CreateCustomFieldRequest) (*dto.CustomFieldResponse, error)
	GetCustomFieldsByBoard(ctx context.Context, boardID uuid.UUID) ([]dto.CustomFieldResponse, error)
	UpdateCustomField(ctx context.Context, actor Actor, id uuid.UUID, req *dto.UpdateCustomFieldRequest) (*dto.CustomFieldResponse, error)
	DeleteCustomField(ctx context.Context, actor Actor, id uuid.UUID) error
}

type customFieldServiceImpl struct {
	customFieldRepo repository.CustomFieldRepository
	boardRepo       repository.BoardRepository
	audit           AuditService
	logger          *zap.Logger
}

// NewCustomFieldService creates a new instance of CustomFieldService
func NewCustomFieldService(
	customFieldRepo repository.CustomFieldRepository,
	boardRepo repository.BoardRepository,
	audit AuditService,
	logger *zap.Logger,
) CustomFieldService {
	return &customFieldServiceImpl{
		customFieldRepo: customFieldRepo,
		boardRepo:       boardRepo,
		audit:           audit,
		logger:          logger,
	}
}

// CreateCustomField creates a board-scoped field. Field names are unique per board
// because the name is the key into task custom data.
func (s *customFieldServiceImpl) CreateCustomField(ctx context.Context, actor Actor, req *dto.CreateCustomFieldRequest) (*dto.CustomFieldResponse, error) {
	if _, err := s.boardRepo.FindByID(ctx, req.BoardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Board not found", req.BoardID.String())
		}
		s.logger.Error("Failed to find board", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create custom field", err.Error())
	}

	existing, err := s.customFieldRepo.FindByBoardAndName(ctx, req.BoardID, req.Name)
	if err != nil {
		s.logger.Error("Failed to check custom field name", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create custom field", err.Error())
	}
	if existing != nil {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists,
			"A custom field with this name already exists on the board", req.Name)
	}

	field := &domain.CustomField{
		Name:    req.Name,
		Type:    domain.CustomFieldType(req.Type),
		Options: req.Options,
		BoardID: req.BoardID,
	}

	if err := s.customFieldRepo.Create(ctx, field); err != nil {
		s.logger.Error("Failed to create custom field", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create custom field", err.Error())
	}

	s.audit.Record(ctx, actor, "customField.created", domain.EntityTypeCustomField, field.ID, customFieldSnapshot(field))

	resp := toCustomFieldResponse(field)
	return &resp, nil
}

// GetCustomFieldsByBoard returns the custom fields of a board in creation order
func (s *customFieldServiceImpl) GetCustomFieldsByBoard(ctx context.Context, boardID uuid.UUID) ([]dto.CustomFieldResponse, error) {
	if _, err := s.boardRepo.FindByID(ctx, boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Board not found", boardID.String())
		}
		s.logger.Error("Failed to find board", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list custom fields", err.Error())
	}

	fields, err := s.customFieldRepo.FindByBoardID(ctx, boardID)
	if err != nil {
		s.logger.Error("Failed to list custom fields", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list custom fields", err.Error())
	}

	responses := make([]dto.CustomFieldResponse, 0, len(fields))
	for _, field := range fields {
		responses = append(responses, toCustomFieldResponse(field))
	}
	return responses, nil
}

// UpdateCustomField applies a partial update. Renaming a field does not rewrite
// task custom data; values stored under the old name simply stop rendering until a
// field with that name exists again.
func (s *customFieldServiceImpl) UpdateCustomField(ctx context.Context, actor Actor, id uuid.UUID, req *dto.UpdateCustomFieldRequest) (*dto.CustomFieldResponse, error) {
	field, err := s.customFieldRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Custom field not found", id.String())
		}
		s.logger.Error("Failed to find custom field", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update custom field", err.Error())
	}

	if req.Name != nil && *req.Name != field.Name {
		existing, err := s.customFieldRepo.FindByBoardAndName(ctx, field.BoardID, *req.Name)
		if err != nil {
			s.logger.Error("Failed to check custom field name", zap.Error(err))
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update custom field", err.Error())
		}
		if existing != nil {
			return nil, response.NewAppError(response.ErrCodeAlreadyExists,
				"A custom field with this name already exists on the board", *req.Name)
		}
		field.Name = *req.Name
	}
	if req.Type != nil {
		field.Type = domain.CustomFieldType(*req.Type)
	}
	if req.Options != nil {
		field.Options = *req.Options
	}

	if err := s.customFieldRepo.Update(ctx, field); err != nil {
		s.logger.Error("Failed to update custom field", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update custom field", err.Error())
	}

	s.audit.Record(ctx, actor, "customField.updated", domain.EntityTypeCustomField, field.ID, customFieldSnapshot(field))

	resp := toCustomFieldResponse(field)
	return &resp, nil
}

// DeleteCustomField removes a field definition. Task custom data stored under the
// field's name is deliberately left untouched; re-adding a field with the same name
// makes the old values visible again.
func (s *customFieldServiceImpl) DeleteCustomField(ctx context.Context, actor Actor, id uuid.UUID) error {
	field, err := s.customFieldRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Custom field not found", id.String())
		}
		s.logger.Error("Failed to find custom field", zap.Error(err))
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete custom field", err.Error())
	}

	if err := s.customFieldRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete custom field", zap.Error(err))
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete custom field", err.Error())
	}

	s.audit.Record(ctx, actor, "customField.deleted", domain.EntityTypeCustomField, id, customFieldSnapshot(field))
	return nil
}

func customFieldSnapshot(field *domain.CustomField) map[string]interface{} {
	return map[string]interface{}{
		"name":    field.Name,
		"type":    string(field.Type),
		"options": field.Options,
		"boardId": field.BoardID.String(),
	}
}

func toCustomFieldResponse(field *domain.CustomField) dto.CustomFieldResponse {
	return dto.CustomFieldResponse{
		ID:        field.ID,
		Name:      field.Name,
		Type:      string(field.Type),
		Options:   field.Options,
		BoardID:   field.BoardID,
		CreatedAt: field.CreatedAt,
		UpdatedAt: field.UpdatedAt,
	}
}
