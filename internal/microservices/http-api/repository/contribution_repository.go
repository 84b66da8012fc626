package repository

import (
	"context"

	"churchhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ContributionRepository interface {
	// Create records the contribution, adds its amount to the project total and appends
	// the receipt notification in a single transaction.
	Create(ctx context.Context, contribution *models.Contribution, receipt *models.Notification) error
	ListByUser(ctx context.Context, userID string) ([]models.Contribution, error)
	ListByProject(ctx context.Context, projectID string) ([]models.Contribution, error)
}

type contributionRepository struct {
	db *gorm.DB
}

func NewContributionRepository(db *gorm.DB) ContributionRepository {
	return &contributionRepository{db: db}
}

func (r *contributionRepository) Create(ctx context.Context, contribution *models.Contribution, receipt *models.Notification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := addToRaised(tx, contribution.ProjectID, contribution.Amount)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Create(contribution).Error; err != nil {
			return err
		}
		if receipt != nil {
			return tx.Create(receipt).Error
		}
		return nil
	})
}

// addToRaised increments the project total inside the UPDATE itself
// (raised = raised + ?), so concurrent contributions never overwrite each other.
func addToRaised(tx *gorm.DB, projectID string, amount float64) *gorm.DB {
	return tx.Model(&models.Project{}).
		Where("id = ?", projectID).
		Update("raised", gorm.Expr("raised + ?", amount))
}

// ListByUser returns the user's contributions with their project, newest first
func (r *contributionRepository) ListByUser(ctx context.Context, userID string) ([]models.Contribution, error) {
	var contributions []models.Contribution
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Project").
		Order("created_at DESC").
		Find(&contributions).Error
	return contributions, err
}

// ListByProject returns the project's contributions with their contributor, newest first
func (r *contributionRepository) ListByProject(ctx context.Context, projectID string) ([]models.Contribution, error) {
	var contributions []models.Contribution
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Preload("User").
		Order("created_at DESC").
		Find(&contributions).Error
	return contributions, err
}
