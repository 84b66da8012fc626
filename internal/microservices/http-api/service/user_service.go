package service

import (
	"context"
	"errors"
	"log/slog"

	"churchhub/internal/access"
	"churchhub/internal/apperror"
	"churchhub/internal/microservices/http-api/dto"
	"churchhub/internal/microservices/http-api/models"
	"churchhub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

// UserService covers admin-only account management.
type UserService interface {
	Get(ctx context.Context, id string) (*dto.UserView, error)
	Assign(ctx context.Context, id string, req dto.AssignmentRequest) (*dto.UserView, error)
}

type userService struct {
	userRepo   repository.UserRepository
	branchRepo repository.BranchRepository
	logger     *slog.Logger
}

func NewUserService(userRepo repository.UserRepository, branchRepo repository.BranchRepository, logger *slog.Logger) UserService {
	return &userService{userRepo: userRepo, branchRepo: branchRepo, logger: logger}
}

func (s *userService) Get(ctx context.Context, id string) (*dto.UserView, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "User not found")
	}
	view := dto.FromModelToUserView(user)
	return &view, nil
}

func (s *userService) Assign(ctx context.Context, id string, req dto.AssignmentRequest) (*dto.UserView, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "User not found")
	}

	if req.Role != nil {
		role, err := access.ParseRole(*req.Role)
		if err != nil {
			return nil, apperror.Wrap(apperror.KindValidation, "invalid role", err)
		}
		user.Role = role
	}

	if req.BranchID != nil {
		if *req.BranchID == "" {
			user.BranchID = nil
		} else {
			if _, err := s.branchRepo.GetByID(ctx, *req.BranchID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, apperror.Validation("Unknown branch")
				}
				return nil, apperror.Internal("failed to load branch", err)
			}
			branchID := *req.BranchID
			user.BranchID = &branchID
		}
	}

	if req.Status != nil {
		status := models.UserStatus(*req.Status)
		if !status.Valid() {
			return nil, apperror.Validation("status must be active or suspended")
		}
		user.Status = status
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperror.Internal("failed to update user", err)
	}

	s.logger.InfoContext(ctx, "user assignment changed", "user_id", user.ID, "role", user.Role, "status", user.Status)
	view := dto.FromModelToUserView(user)
	return &view, nil
}
