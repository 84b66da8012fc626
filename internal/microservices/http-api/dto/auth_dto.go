package dto

import (
	"churchhub/internal/access"
	"churchhub/internal/microservices/http-api/models"
)

// Data Transfer Objects for authentication requests and responses

// RegisterRequest: payload for user registration
type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8,max=72"` // bcrypt ignores bytes past 72
	UserName string  `json:"userName" binding:"required,min=1,max=100"`
	Role     string  `json:"role"`
	BranchID *string `json:"branchId" binding:"omitempty,ref"`
}

// LoginRequest: payload for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserView: public user view, never carries the password hash
type UserView struct {
	ID       string            `json:"id"`
	Email    string            `json:"email"`
	UserName string            `json:"userName"`
	Role     access.Role       `json:"role"`
	BranchID *string           `json:"branchId"`
	Status   models.UserStatus `json:"status"`
}

// AuthResponse: response payload after successful authentication
type AuthResponse struct {
	Token     string   `json:"token"`
	ExpiresIn int64    `json:"expiresIn"` // seconds
	User      UserView `json:"user"`
}

// MessageResponse: generic acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

func FromModelToUserView(user *models.User) UserView {
	return UserView{
		ID:       user.ID,
		Email:    user.Email,
		UserName: user.UserName,
		Role:     user.Role,
		BranchID: user.BranchID,
		Status:   user.Status,
	}
}
