package dto

import (
	"time"

	"churchhub/internal/access"
	"churchhub/internal/microservices/http-api/models"
)

// AssignmentRequest: admin change of role, branch or status. Nil fields are left as is;
// an empty branchId detaches the user from their branch.
type AssignmentRequest struct {
	Role     *string `json:"role"`
	BranchID *string `json:"branchId" binding:"omitempty,ref"`
	Status   *string `json:"status"`
}

// MemberResponse: branch member summary
type MemberResponse struct {
	ID        string            `json:"id"`
	UserName  string            `json:"user_name"`
	Email     string            `json:"email"`
	Role      access.Role       `json:"role"`
	Status    models.UserStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// UserSummary: identity attached to records created by a user
type UserSummary struct {
	ID       string `json:"id"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
}

func FromModelToMemberResponse(user *models.User) MemberResponse {
	return MemberResponse{
		ID:        user.ID,
		UserName:  user.UserName,
		Email:     user.Email,
		Role:      user.Role,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
	}
}

func FromModelToUserSummary(user *models.User) *UserSummary {
	if user == nil {
		return nil
	}
	return &UserSummary{ID: user.ID, UserName: user.UserName, Email: user.Email}
}
