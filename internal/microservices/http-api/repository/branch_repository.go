package repository

import (
	"context"
	"database/sql"

	"churchhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type BranchRepository interface {
	List(ctx context.Context) ([]models.Branch, error)
	GetByID(ctx context.Context, id string) (*models.Branch, error)
	Create(ctx context.Context, branch *models.Branch) error
	Update(ctx context.Context, branch *models.Branch) error
	Stats(ctx context.Context, id string) (*models.BranchStats, error)
}

type branchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) List(ctx context.Context) ([]models.Branch, error) {
	var branches []models.Branch
	err := r.db.WithContext(ctx).Order("name ASC").Find(&branches).Error
	return branches, err
}

func (r *branchRepository) GetByID(ctx context.Context, id string) (*models.Branch, error) {
	var branch models.Branch
	if err := r.db.WithContext(ctx).First(&branch, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) Create(ctx context.Context, branch *models.Branch) error {
	return r.db.WithContext(ctx).Create(branch).Error
}

func (r *branchRepository) Update(ctx context.Context, branch *models.Branch) error {
	return r.db.WithContext(ctx).Save(branch).Error
}

// snapshotOptions returns the transaction options under which several reads
// see one snapshot. Postgres needs REPEATABLE READ for that; under its default
// READ COMMITTED every statement takes a fresh snapshot.
func snapshotOptions(dialect string) []*sql.TxOptions {
	if dialect == "postgres" {
		return []*sql.TxOptions{{Isolation: sql.LevelRepeatableRead, ReadOnly: true}}
	}
	return nil
}

// Stats computes all aggregates inside one read-only snapshot transaction;
// any failing query aborts the whole result.
func (r *branchRepository) Stats(ctx context.Context, id string) (*models.BranchStats, error) {
	stats := &models.BranchStats{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("branch_id = ?", id).
			Count(&stats.MemberCount).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Project{}).
			Where("branch_id = ? AND status = ?", id, models.ProjectStatusActive).
			Count(&stats.ActiveProjects).Error; err != nil {
			return err
		}

		var total sql.NullFloat64
		if err := tx.Model(&models.Project{}).
			Select("SUM(raised)").
			Where("branch_id = ?", id).
			Row().Scan(&total); err != nil {
			return err
		}
		stats.TotalContributions = total.Float64

		return tx.Model(&models.MagazineSubmission{}).
			Where("branch_id = ? AND status = ?", id, models.SubmissionPending).
			Count(&stats.PendingSubmissions).Error
	}, snapshotOptions(r.db.Dialector.Name())...)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
