package domain

import "github.com/google/uuid"

// CustomFieldType represents the value type of a board-scoped custom field
type CustomFieldType string

// CustomFieldType constants
const (
	CustomFieldTypeText     CustomFieldType = "text"
	CustomFieldTypeNumber   CustomFieldType = "number"
	CustomFieldTypeDate     CustomFieldType = "date"
	CustomFieldTypeSelect   CustomFieldType = "select"
	CustomFieldTypeCheckbox CustomFieldType = "checkbox"
	CustomFieldTypeURL      CustomFieldType = "url"
)

// CustomField represents a board-scoped attribute schema. Its Name is the key into
// Task.CustomData for tasks of the same board; Options is only meaningful for
// type=select and holds a comma-separated list of allowed values.
type CustomField struct {
	BaseModel
	Name    string          `gorm:"type:varchar(100);not null;uniqueIndex:uq_custom_fields_board_name,priority:2" json:"name"`
	Type    CustomFieldType `gorm:"type:varchar(20);not null" json:"type"`
	Options string          `gorm:"type:text" json:"options"`
	BoardID uuid.UUID       `gorm:"type:uuid;not null;index:idx_custom_fields_board_id;uniqueIndex:uq_custom_fields_board_name,priority:1" json:"boardId"`
}

// TableName specifies the table name for CustomField
func (CustomField) TableName() string {
	return "custom_fields"
}
