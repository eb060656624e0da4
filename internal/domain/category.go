package domain

import "github.com/google/uuid"

// Category represents an ordered column within a board. Categories of a board are
// always sortable by Order ascending; the sequence is not necessarily contiguous.
type Category struct {
	BaseModel
	Name    string    `gorm:"type:varchar(255);not null" json:"name"`
	Color   string    `gorm:"type:varchar(20)" json:"color"`
	BoardID uuid.UUID `gorm:"type:uuid;not null;index:idx_categories_board_id" json:"boardId"`
	Order   int       `gorm:"column:display_order;not null;default:0;index:idx_categories_display_order" json:"order"`
	Tasks   []Task    `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "categories"
}
