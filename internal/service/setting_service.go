package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

// SettingService defines the interface for system setting business logic
type SettingService interface {
	GetSettings(ctx context.Context) ([]dto.SettingResponse, error)
	GetSetting(ctx context.Context, key string) (*dto.SettingResponse, error)
	UpdateSetting(ctx context.Context, actor Actor, key string, req *dto.UpdateSettingRequest) (*dto.SettingResponse, error)
}

type settingServiceImpl struct {
	settingRepo repository.SystemSettingRepository
	audit       AuditService
	logger      *zap.Logger
}

// NewSettingService creates a new instance of SettingService
func NewSettingService(
	settingRepo repository.SystemSettingRepository,
	audit AuditService,
	logger *zap.Logger,
) SettingService {
	return &settingServiceImpl{
		settingRepo: settingRepo,
		audit:       audit,
		logger:      logger,
	}
}

// GetSettings returns all settings ordered by key
func (s *settingServiceImpl) GetSettings(ctx context.Context) ([]dto.SettingResponse, error) {
	settings, err := s.settingRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list settings", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list settings", err.Error())
	}

	responses := make([]dto.SettingResponse, 0, len(settings))
	for _, setting := range settings {
		responses = append(responses, toSettingResponse(setting))
	}
	return responses, nil
}

// GetSetting returns a single setting by key
func (s *settingServiceImpl) GetSetting(ctx context.Context, key string) (*dto.SettingResponse, error) {
	setting, err := s.settingRepo.Get(ctx, key)
	if err != nil {
		s.logger.Error("Failed to get setting", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to get setting", err.Error())
	}
	if setting == nil {
		return nil, response.NewNotFoundError("Setting not found", key)
	}

	resp := toSettingResponse(setting)
	return &resp, nil
}

// UpdateSetting upserts a setting value by key
func (s *settingServiceImpl) UpdateSetting(ctx context.Context, actor Actor, key string, req *dto.UpdateSettingRequest) (*dto.SettingResponse, error) {
	if err := s.settingRepo.Set(ctx, key, req.Value); err != nil {
		s.logger.Error("Failed to update setting", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update setting", err.Error())
	}

	setting, err := s.settingRepo.Get(ctx, key)
	if err != nil || setting == nil {
		s.logger.Error("Failed to reload setting", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update setting", "setting missing after upsert")
	}

	s.audit.Record(ctx, actor, "system.settingChanged", domain.EntityTypeSystem, uuid.Nil, map[string]interface{}{
		"key":   key,
		"value": req.Value,
	})

	resp := toSettingResponse(setting)
	return &resp, nil
}

func toSettingResponse(setting *domain.SystemSetting) dto.SettingResponse {
	return dto.SettingResponse{
		Key:       setting.Key,
		Value:     setting.Value,
		UpdatedAt: setting.UpdatedAt,
	}
}
