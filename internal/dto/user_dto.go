package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserResponse represents the user response. The password hash is never exposed.
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	AvatarColor string    `json:"avatarColor"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RegisterUserRequest represents the request to register a new user
type RegisterUserRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=100"`
	Password    string `json:"password" binding:"required,min=8"`
	FullName    string `json:"fullName" binding:"max=255"`
	Email       string `json:"email" binding:"omitempty,email"`
	AvatarColor string `json:"avatarColor" binding:"omitempty,hexcolor"`
}

// LoginRequest represents the credentials for a login attempt
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token together with the account
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateUserRequest represents an admin update of a user account
type UpdateUserRequest struct {
	FullName    *string `json:"fullName" binding:"omitempty,max=255"`
	Email       *string `json:"email" binding:"omitempty,email"`
	AvatarColor *string `json:"avatarColor" binding:"omitempty,hexcolor"`
	Role        *string `json:"role" binding:"omitempty,oneof=admin user"`
	IsActive    *bool   `json:"isActive"`
}
