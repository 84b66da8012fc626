package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BranchStatus string

const (
	BranchStatusActive   BranchStatus = "active"
	BranchStatusInactive BranchStatus = "inactive"
)

func (s BranchStatus) Valid() bool {
	return s == BranchStatusActive || s == BranchStatusInactive
}

type Branch struct {
	ID          string       `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string       `gorm:"not null" json:"name"`
	Location    string       `json:"location"`
	Description string       `gorm:"type:text" json:"description"`
	Status      BranchStatus `gorm:"type:varchar(16);not null;default:'active'" json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (b *Branch) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return
}

func (Branch) TableName() string {
	return "branches"
}

// BranchStats aggregates one branch's activity.
type BranchStats struct {
	MemberCount        int64   `json:"memberCount"`
	ActiveProjects     int64   `json:"activeProjects"`
	TotalContributions float64 `json:"totalContributions"`
	PendingSubmissions int64   `json:"pendingSubmissions"`
}
