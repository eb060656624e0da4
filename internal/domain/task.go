package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TaskPriority represents the priority level of a task
type TaskPriority string

// TaskPriority constants
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Task represents a unit of work inside a category. CustomData is a sparse JSON
// mapping from CustomField.Name to a scalar value; it is never null at rest
// (normalized to {}). Rank is the persisted position within the owning category.
type Task struct {
	BaseModel
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	DueDate     *string        `gorm:"type:varchar(30)" json:"dueDate"`
	Priority    *TaskPriority  `gorm:"type:varchar(10)" json:"priority"`
	CategoryID  uuid.UUID      `gorm:"type:uuid;not null;index:idx_tasks_category_id" json:"categoryId"`
	IsArchived  bool           `gorm:"not null;default:false;index:idx_tasks_is_archived" json:"isArchived"`
	Assignees   datatypes.JSON `gorm:"type:jsonb" json:"assignees"`
	CustomData  datatypes.JSON `gorm:"type:jsonb" json:"customData"`
	Comments    int            `gorm:"not null;default:0" json:"comments"`
	Rank        int            `gorm:"column:display_rank;not null;default:0;index:idx_tasks_display_rank" json:"rank"`
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "tasks"
}
