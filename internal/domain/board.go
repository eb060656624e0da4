package domain

import "github.com/google/uuid"

// Board represents a top-level container owned by a user, holding categories and custom fields
type Board struct {
	BaseModel
	Name         string        `gorm:"type:varchar(255);not null" json:"name"`
	OwnerID      uuid.UUID     `gorm:"type:uuid;not null;index:idx_boards_owner_id" json:"ownerId"`
	IsArchived   bool          `gorm:"not null;default:false;index:idx_boards_is_archived" json:"isArchived"`
	Categories   []Category    `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"categories,omitempty"`
	CustomFields []CustomField `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"customFields,omitempty"`
}

// TableName specifies the table name for Board
func (Board) TableName() string {
	return "boards"
}
