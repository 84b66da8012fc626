package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionPending, SubmissionApproved, SubmissionRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed.
func (s SubmissionStatus) Terminal() bool {
	return s == SubmissionApproved || s == SubmissionRejected
}

// Attachment is the metadata of one uploaded file; the bytes live in storage.
type Attachment struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalname"`
	Path         string `json:"path"`
	MimeType     string `json:"mimetype"`
	Size         int64  `json:"size"`
}

type MagazineSubmission struct {
	ID          string                          `gorm:"primaryKey;type:uuid" json:"id"`
	Title       string                          `gorm:"not null" json:"title"`
	ContentType string                          `json:"content_type"`
	Content     string                          `gorm:"type:text" json:"content"`
	AuthorName  string                          `json:"author_name"`
	UserID      string                          `gorm:"type:uuid;not null;index" json:"user_id"`
	BranchID    *string                         `gorm:"type:uuid;index" json:"branch_id"`
	Status      SubmissionStatus                `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	Feedback    *string                         `gorm:"type:text" json:"feedback"`
	ReviewedBy  *string                         `gorm:"type:uuid" json:"reviewed_by"`
	ReviewedAt  *time.Time                      `json:"reviewed_at"`
	Attachments datatypes.JSONSlice[Attachment] `gorm:"not null" json:"attachments"`
	CreatedAt   time.Time                       `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time                       `json:"updated_at"`

	// Associations
	User   *User   `gorm:"foreignKey:UserID" json:"-"`
	Branch *Branch `gorm:"foreignKey:BranchID" json:"-"`
}

func (s *MagazineSubmission) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.Attachments == nil {
		s.Attachments = datatypes.JSONSlice[Attachment]{}
	}
	return
}

func (MagazineSubmission) TableName() string {
	return "magazine_submissions"
}

// SubmissionFilter narrows submission listings; zero fields are ignored.
type SubmissionFilter struct {
	UserID   string
	BranchID string
	Status   SubmissionStatus
}

// MagazineSection is an admin-maintained, ordered taxonomy entry.
type MagazineSection struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Order       int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *MagazineSection) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}

func (MagazineSection) TableName() string {
	return "magazine_sections"
}
