package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"taskboard-api/internal/dto"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultTaskListTTL = 5 * time.Minute

// TaskCache caches per-category task lists in Redis. All methods are
// safe to call with a nil receiver or nil client so the service layer
// works without Redis (local development, tests).
type TaskCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewTaskCache(client *redis.Client, logger *zap.Logger) *TaskCache {
	return &TaskCache{
		client: client,
		ttl:    defaultTaskListTTL,
		logger: logger,
	}
}

func taskListKey(categoryID uuid.UUID) string {
	return fmt.Sprintf("category:tasks:%s", categoryID.String())
}

// GetCategoryTasks returns the cached task list for a category.
// The second return value reports whether the key was present.
func (c *TaskCache) GetCategoryTasks(ctx context.Context, categoryID uuid.UUID) ([]dto.TaskResponse, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, taskListKey(categoryID)).Bytes()
	if err != nil {
		if err != redis.Nil && c.logger != nil {
			c.logger.Warn("Failed to read task list from cache",
				zap.String("category_id", categoryID.String()),
				zap.Error(err))
		}
		return nil, false
	}

	var tasks []dto.TaskResponse
	if err := json.Unmarshal(data, &tasks); err != nil {
		if c.logger != nil {
			c.logger.Warn("Failed to decode cached task list",
				zap.String("category_id", categoryID.String()),
				zap.Error(err))
		}
		return nil, false
	}
	return tasks, true
}

// SetCategoryTasks stores the task list for a category. Cache write
// failures are logged and ignored.
func (c *TaskCache) SetCategoryTasks(ctx context.Context, categoryID uuid.UUID, tasks []dto.TaskResponse) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(tasks)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("Failed to encode task list for cache",
				zap.String("category_id", categoryID.String()),
				zap.Error(err))
		}
		return
	}

	if err := c.client.Set(ctx, taskListKey(categoryID), data, c.ttl).Err(); err != nil {
		if c.logger != nil {
			c.logger.Warn("Failed to write task list to cache",
				zap.String("category_id", categoryID.String()),
				zap.Error(err))
		}
	}
}

// InvalidateCategory drops the cached task list for a category. Called
// after any mutation that changes the category's task set or ordering.
func (c *TaskCache) InvalidateCategory(ctx context.Context, categoryID uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Del(ctx, taskListKey(categoryID)).Err(); err != nil {
		if c.logger != nil {
			c.logger.Warn("Failed to invalidate task list cache",
				zap.String("category_id", categoryID.String()),
				zap.Error(err))
		}
	}
}

// InvalidateCategories drops cached task lists for multiple categories.
func (c *TaskCache) InvalidateCategories(ctx context.Context, categoryIDs ...uuid.UUID) {
	for _, id := range categoryIDs {
		c.InvalidateCategory(ctx, id)
	}
}
