package dto

import (
	"time"

	"github.com/google/uuid"
)

// TaskResponse represents the task response
type TaskResponse struct {
	ID          uuid.UUID              `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	DueDate     *string                `json:"dueDate"`
	Priority    *string                `json:"priority"`
	CategoryID  uuid.UUID              `json:"categoryId"`
	IsArchived  bool                   `json:"isArchived"`
	Assignees   []string               `json:"assignees"`
	CustomData  map[string]interface{} `json:"customData"`
	Comments    int                    `json:"comments"`
	Rank        int                    `json:"rank"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// CreateTaskRequest represents the request to create a new task
type CreateTaskRequest struct {
	Title       string                 `json:"title" binding:"required,max=255"`
	Description string                 `json:"description"`
	DueDate     *string                `json:"dueDate"`
	Priority    *string                `json:"priority" binding:"omitempty,oneof=low medium high"`
	CategoryID  uuid.UUID              `json:"categoryId" binding:"required"`
	Assignees   []string               `json:"assignees"`
	CustomData  map[string]interface{} `json:"customData"`
}

// UpdateTaskRequest represents a partial update of a task. Nil fields are left
// untouched; CustomData is merged over the stored mapping rather than replacing it.
type UpdateTaskRequest struct {
	Title       *string                 `json:"title" binding:"omitempty,max=255"`
	Description *string                 `json:"description"`
	DueDate     *string                 `json:"dueDate"`
	Priority    *string                 `json:"priority" binding:"omitempty,oneof=low medium high"`
	CategoryID  *uuid.UUID              `json:"categoryId"`
	Assignees   *[]string               `json:"assignees"`
	CustomData  *map[string]interface{} `json:"customData"`
}

// MoveTaskRequest represents a drag-and-drop relocation of a task
type MoveTaskRequest struct {
	CategoryID uuid.UUID `json:"categoryId" binding:"required"`
	Index      int       `json:"index" binding:"gte=0"`
}
