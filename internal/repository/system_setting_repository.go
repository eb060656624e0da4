package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard-api/internal/domain"
)

// SystemSettingRepository defines the interface for system setting data access
type SystemSettingRepository interface {
	Get(ctx context.Context, key string) (*domain.SystemSetting, error)
	Set(ctx context.Context, key, value string) error
	FindAll(ctx context.Context) ([]*domain.SystemSetting, error)
}

// systemSettingRepositoryImpl is the GORM implementation of SystemSettingRepository
type systemSettingRepositoryImpl struct {
	db *gorm.DB
}

// NewSystemSettingRepository creates a new instance of SystemSettingRepository
func NewSystemSettingRepository(db *gorm.DB) SystemSettingRepository {
	return &systemSettingRepositoryImpl{db: db}
}

// Get finds a setting by key, nil when absent
func (r *systemSettingRepositoryImpl) Get(ctx context.Context, key string) (*domain.SystemSetting, error) {
	var setting domain.SystemSetting
	if err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

// Set upserts a setting value by key
func (r *systemSettingRepositoryImpl) Set(ctx context.Context, key, value string) error {
	setting := domain.SystemSetting{Key: key, Value: value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&setting).Error
}

// FindAll finds all settings ordered by key
func (r *systemSettingRepositoryImpl) FindAll(ctx context.Context) ([]*domain.SystemSetting, error) {
	var settings []*domain.SystemSetting
	if err := r.db.WithContext(ctx).
		Order("key ASC").
		Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}
