package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contribution is immutable once created.
type Contribution struct {
	ID            string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID        string    `gorm:"type:uuid;not null;index" json:"user_id"`
	ProjectID     string    `gorm:"type:uuid;not null;index" json:"project_id"`
	Amount        float64   `gorm:"not null" json:"amount"`
	PaymentMethod string    `gorm:"not null" json:"payment_method"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`

	// Associations
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"-"`
}

func (c *Contribution) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

func (Contribution) TableName() string {
	return "contributions"
}
