package dto

import (
	"time"

	"github.com/google/uuid"
)

// CustomFieldResponse represents the custom field response
type CustomFieldResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Options   string    `json:"options,omitempty"`
	BoardID   uuid.UUID `json:"boardId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateCustomFieldRequest represents the request to create a new custom field
type CreateCustomFieldRequest struct {
	Name    string    `json:"name" binding:"required,max=100"`
	Type    string    `json:"type" binding:"required,oneof=text number date select checkbox url"`
	Options string    `json:"options"`
	BoardID uuid.UUID `json:"boardId" binding:"required"`
}

// UpdateCustomFieldRequest represents the request to update a custom field
type UpdateCustomFieldRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=100"`
	Type    *string `json:"type" binding:"omitempty,oneof=text number date select checkbox url"`
	Options *string `json:"options"`
}
