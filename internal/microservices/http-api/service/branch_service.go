package service

import (
	"context"
	"log/slog"

	"churchhub/internal/access"
	"churchhub/internal/apperror"
	"churchhub/internal/microservices/http-api/dto"
	"churchhub/internal/microservices/http-api/models"
	"churchhub/internal/microservices/http-api/repository"
)

type BranchService interface {
	List(ctx context.Context) ([]models.Branch, error)
	Get(ctx context.Context, id string) (*models.Branch, error)
	Create(ctx context.Context, req dto.CreateBranchRequest) (*models.Branch, error)
	Update(ctx context.Context, id string, req dto.UpdateBranchRequest) (*models.Branch, error)
	Members(ctx context.Context, caller *access.Principal, id string) ([]dto.MemberResponse, error)
	Stats(ctx context.Context, caller *access.Principal, id string) (*models.BranchStats, error)
	Projects(ctx context.Context, id string) ([]models.Project, error)
}

type branchService struct {
	branchRepo  repository.BranchRepository
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	logger      *slog.Logger
}

func NewBranchService(branchRepo repository.BranchRepository, userRepo repository.UserRepository, projectRepo repository.ProjectRepository, logger *slog.Logger) BranchService {
	return &branchService{
		branchRepo:  branchRepo,
		userRepo:    userRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

func parseBranchStatus(raw string) (models.BranchStatus, error) {
	if raw == "" {
		return models.BranchStatusActive, nil
	}
	status := models.BranchStatus(raw)
	if !status.Valid() {
		return "", apperror.Validation("status must be active or inactive")
	}
	return status, nil
}

func (s *branchService) List(ctx context.Context) ([]models.Branch, error) {
	branches, err := s.branchRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to list branches", err)
	}
	return branches, nil
}

func (s *branchService) Get(ctx context.Context, id string) (*models.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Branch not found")
	}
	return branch, nil
}

func (s *branchService) Create(ctx context.Context, req dto.CreateBranchRequest) (*models.Branch, error) {
	status, err := parseBranchStatus(req.Status)
	if err != nil {
		return nil, err
	}

	branch := &models.Branch{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		Status:      status,
	}
	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, apperror.Internal("failed to create branch", err)
	}
	s.logger.InfoContext(ctx, "branch created", "branch_id", branch.ID)
	return branch, nil
}

func (s *branchService) Update(ctx context.Context, id string, req dto.UpdateBranchRequest) (*models.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Branch not found")
	}

	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Location != nil {
		branch.Location = *req.Location
	}
	if req.Description != nil {
		branch.Description = *req.Description
	}
	if req.Status != nil {
		status := models.BranchStatus(*req.Status)
		if !status.Valid() {
			return nil, apperror.Validation("status must be active or inactive")
		}
		branch.Status = status
	}

	if err := s.branchRepo.Update(ctx, branch); err != nil {
		return nil, apperror.Internal("failed to update branch", err)
	}
	return branch, nil
}

// inspect applies the role scope before touching the store, then checks existence.
func (s *branchService) inspect(ctx context.Context, caller *access.Principal, id string) error {
	if !caller.ManagesBranch(&id) {
		return ErrNotBranchScope
	}
	if _, err := s.branchRepo.GetByID(ctx, id); err != nil {
		return lookupError(err, "Branch not found")
	}
	return nil
}

func (s *branchService) Members(ctx context.Context, caller *access.Principal, id string) ([]dto.MemberResponse, error) {
	if err := s.inspect(ctx, caller, id); err != nil {
		return nil, err
	}

	users, err := s.userRepo.ListByBranch(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to list members", err)
	}
	members := make([]dto.MemberResponse, 0, len(users))
	for i := range users {
		members = append(members, dto.FromModelToMemberResponse(&users[i]))
	}
	return members, nil
}

func (s *branchService) Stats(ctx context.Context, caller *access.Principal, id string) (*models.BranchStats, error) {
	if err := s.inspect(ctx, caller, id); err != nil {
		return nil, err
	}

	stats, err := s.branchRepo.Stats(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to compute branch stats", err)
	}
	return stats, nil
}

func (s *branchService) Projects(ctx context.Context, id string) ([]models.Project, error) {
	if _, err := s.branchRepo.GetByID(ctx, id); err != nil {
		return nil, lookupError(err, "Branch not found")
	}
	projects, err := s.projectRepo.List(ctx, models.ProjectFilter{BranchID: id})
	if err != nil {
		return nil, apperror.Internal("failed to list projects", err)
	}
	return projects, nil
}
