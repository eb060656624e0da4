package dto

import (
	"time"

	"github.com/google/uuid"
)

// CategoryResponse represents the category response
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	BoardID   uuid.UUID `json:"boardId"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateCategoryRequest represents the request to create a new category
type CreateCategoryRequest struct {
	Name    string    `json:"name" binding:"required,max=255"`
	Color   string    `json:"color" binding:"omitempty,hexcolor"`
	BoardID uuid.UUID `json:"boardId" binding:"required"`
}

// UpdateCategoryRequest represents the request to update a category
type UpdateCategoryRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=255"`
	Color *string `json:"color" binding:"omitempty,hexcolor"`
	Order *int    `json:"order"`
}
