package dto

import (
	"time"

	"github.com/google/uuid"
)

// BoardResponse represents the board response
type BoardResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	OwnerID    uuid.UUID `json:"ownerId"`
	IsArchived bool      `json:"isArchived"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BoardDetailResponse represents a board with its categories and custom fields
type BoardDetailResponse struct {
	BoardResponse
	Categories   []CategoryResponse    `json:"categories"`
	CustomFields []CustomFieldResponse `json:"customFields"`
}

// CreateBoardRequest represents the request to create a new board
type CreateBoardRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// UpdateBoardRequest represents the request to update a board
type UpdateBoardRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=255"`
	IsArchived *bool   `json:"isArchived"`
}
