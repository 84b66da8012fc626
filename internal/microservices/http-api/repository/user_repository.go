package repository

import (
	"context"

	"churchhub/internal/access"
	"churchhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ListByBranch(ctx context.Context, branchID string) ([]models.User, error)
	ListIDsByRoleAndBranch(ctx context.Context, role access.Role, branchID string) ([]string, error)
}

// userRepository is the GORM implementation of UserRepository.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository in a GORM implementation
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	// return nil on error so callers never see a zero-value user as "found"
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListByBranch(ctx context.Context, branchID string) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}

func (r *userRepository) ListIDsByRoleAndBranch(ctx context.Context, role access.Role, branchID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ? AND branch_id = ?", role, branchID).
		Order("created_at ASC").
		Pluck("id", &ids).Error
	return ids, err
}
