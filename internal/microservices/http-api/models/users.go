package models

import (
	"time"

	"churchhub/internal/access"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

func (s UserStatus) Valid() bool {
	return s == UserStatusActive || s == UserStatusSuspended
}

type User struct {
	ID        string      `gorm:"primaryKey;type:uuid" json:"id"`
	Email     string      `gorm:"uniqueIndex;not null" json:"email"`
	Password  string      `gorm:"column:password_hash;not null" json:"-"` // Not show in JSON
	UserName  string      `gorm:"column:user_name;not null" json:"user_name"`
	Role      access.Role `gorm:"type:varchar(32);not null;default:'individual';index" json:"role"`
	BranchID  *string     `gorm:"type:uuid;index" json:"branch_id"`
	Status    UserStatus  `gorm:"type:varchar(16);not null;default:'active'" json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
