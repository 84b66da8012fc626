package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusPending   ProjectStatus = "pending"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPending, ProjectStatusActive, ProjectStatusCompleted:
		return true
	}
	return false
}

type Project struct {
	ID          string        `gorm:"primaryKey;type:uuid" json:"id"`
	Title       string        `gorm:"not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	Goal        float64       `gorm:"not null" json:"goal"`
	Raised      float64       `gorm:"not null;default:0" json:"raised"` // only grows through contributions unless edited
	Deadline    *time.Time    `json:"deadline"`
	Category    string        `json:"category"`
	Status      ProjectStatus `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	BranchID    *string       `gorm:"type:uuid;index" json:"branch_id"`
	CreatedBy   string        `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt   time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

func (Project) TableName() string {
	return "projects"
}

// ProjectFilter narrows project listings; zero fields are ignored.
type ProjectFilter struct {
	BranchID string
	Status   ProjectStatus
	Category string
}
