package dto

import (
	"time"

	"github.com/dahira-app/dahira_backend/internal/core/domain"
)

// CreateUserRequest defines the data needed to register a new user.
type CreateUserRequest struct {
	Username string            `json:"username" binding:"required,min=3"`
	Name     string            `json:"name" binding:"required"`
	Password string            `json:"password" binding:"required,min=8"`
	Roles    []domain.UserRole `json:"roles" binding:"omitempty,dive,oneof=MEMBER FINANCE BUREAU"`
}

// LoginRequest defines the login credentials payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the signed JWT after a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID    string            `json:"userID"`
	Username  string            `json:"username"`
	Name      string            `json:"name"`
	Roles     []domain.UserRole `json:"roles"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:    user.UserID,
		Username:  user.Username,
		Name:      user.Name,
		Roles:     user.Roles,
		CreatedAt: user.CreatedAt,
	}
}
