package repository

import (
	"context"
	"errors"
	"time"

	"churchhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// ErrAlreadyReviewed is returned when a review targets a submission that has
// left the pending state.
var ErrAlreadyReviewed = errors.New("submission already reviewed")

// Review carries the decision applied to a pending submission.
type Review struct {
	Status     models.SubmissionStatus
	Feedback   *string
	ReviewerID string
	ReviewedAt time.Time
}

type MagazineRepository interface {
	// CreateSubmission stores the submission together with the fan-out notifications.
	CreateSubmission(ctx context.Context, submission *models.MagazineSubmission, notifications []models.Notification) error
	GetSubmission(ctx context.Context, id string) (*models.MagazineSubmission, error)
	ListSubmissions(ctx context.Context, filter models.SubmissionFilter) ([]models.MagazineSubmission, error)
	// ReviewSubmission moves a pending submission to a terminal state and stores the
	// submitter notification. Returns ErrAlreadyReviewed if it was not pending.
	ReviewSubmission(ctx context.Context, id string, review Review, notification *models.Notification) (*models.MagazineSubmission, error)

	ListSections(ctx context.Context) ([]models.MagazineSection, error)
	GetSection(ctx context.Context, id string) (*models.MagazineSection, error)
	CreateSection(ctx context.Context, section *models.MagazineSection) error
	UpdateSection(ctx context.Context, section *models.MagazineSection) error
	DeleteSection(ctx context.Context, id string) error
}

type magazineRepository struct {
	db *gorm.DB
}

func NewMagazineRepository(db *gorm.DB) MagazineRepository {
	return &magazineRepository{db: db}
}

func (r *magazineRepository) CreateSubmission(ctx context.Context, submission *models.MagazineSubmission, notifications []models.Notification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(submission).Error; err != nil {
			return err
		}
		if len(notifications) == 0 {
			return nil
		}
		return tx.Create(&notifications).Error
	})
}

func (r *magazineRepository) GetSubmission(ctx context.Context, id string) (*models.MagazineSubmission, error) {
	var submission models.MagazineSubmission
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Branch").
		First(&submission, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// ListSubmissions returns submissions newest first
func (r *magazineRepository) ListSubmissions(ctx context.Context, filter models.SubmissionFilter) ([]models.MagazineSubmission, error) {
	query := r.db.WithContext(ctx).Model(&models.MagazineSubmission{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.BranchID != "" {
		query = query.Where("branch_id = ?", filter.BranchID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var submissions []models.MagazineSubmission
	err := query.
		Preload("User").
		Preload("Branch").
		Order("created_at DESC").
		Find(&submissions).Error
	return submissions, err
}

func (r *magazineRepository) ReviewSubmission(ctx context.Context, id string, review Review, notification *models.Notification) (*models.MagazineSubmission, error) {
	var submission models.MagazineSubmission
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// status = 'pending' in the predicate makes the transition single-shot
		// even when two reviewers race
		result := tx.Model(&models.MagazineSubmission{}).
			Where("id = ? AND status = ?", id, models.SubmissionPending).
			Updates(map[string]any{
				"status":      review.Status,
				"feedback":    review.Feedback,
				"reviewed_by": review.ReviewerID,
				"reviewed_at": review.ReviewedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.MagazineSubmission{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
			return ErrAlreadyReviewed
		}

		if notification != nil {
			if err := tx.Create(notification).Error; err != nil {
				return err
			}
		}
		return tx.Preload("User").Preload("Branch").First(&submission, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *magazineRepository) ListSections(ctx context.Context) ([]models.MagazineSection, error) {
	var sections []models.MagazineSection
	err := r.db.WithContext(ctx).Order("sort_order ASC").Order("title ASC").Find(&sections).Error
	return sections, err
}

func (r *magazineRepository) GetSection(ctx context.Context, id string) (*models.MagazineSection, error) {
	var section models.MagazineSection
	if err := r.db.WithContext(ctx).First(&section, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *magazineRepository) CreateSection(ctx context.Context, section *models.MagazineSection) error {
	return r.db.WithContext(ctx).Create(section).Error
}

func (r *magazineRepository) UpdateSection(ctx context.Context, section *models.MagazineSection) error {
	return r.db.WithContext(ctx).Save(section).Error
}

func (r *magazineRepository) DeleteSection(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MagazineSection{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
