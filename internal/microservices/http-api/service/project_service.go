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

type ProjectService interface {
	List(ctx context.Context, query dto.ProjectQuery) ([]models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	Create(ctx context.Context, caller *access.Principal, req dto.CreateProjectRequest) (*models.Project, error)
	Update(ctx context.Context, caller *access.Principal, id string, req dto.UpdateProjectRequest) (*models.Project, error)
	Delete(ctx context.Context, caller *access.Principal, id string) error
}

type projectService struct {
	projectRepo repository.ProjectRepository
	branchRepo  repository.BranchRepository
	logger      *slog.Logger
}

func NewProjectService(projectRepo repository.ProjectRepository, branchRepo repository.BranchRepository, logger *slog.Logger) ProjectService {
	return &projectService{projectRepo: projectRepo, branchRepo: branchRepo, logger: logger}
}

func parseProjectStatus(raw string, fallback models.ProjectStatus) (models.ProjectStatus, error) {
	if raw == "" {
		return fallback, nil
	}
	status := models.ProjectStatus(raw)
	if !status.Valid() {
		return "", apperror.Validation("status must be one of pending, active, completed")
	}
	return status, nil
}

func validAmounts(goal float64, raised *float64) error {
	if goal <= 0 || !dto.IsMoney(goal) {
		return apperror.Validation("goal must be positive with at most two decimals and below 10000000000")
	}
	if raised != nil && (*raised < 0 || !dto.IsMoney(*raised)) {
		return apperror.Validation("raised must not be negative, with at most two decimals and below 10000000000")
	}
	return nil
}

func (s *projectService) List(ctx context.Context, query dto.ProjectQuery) ([]models.Project, error) {
	filter := models.ProjectFilter{BranchID: query.BranchID, Category: query.Category}
	if query.Status != "" {
		status, err := parseProjectStatus(query.Status, "")
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}

	projects, err := s.projectRepo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal("failed to list projects", err)
	}
	return projects, nil
}

func (s *projectService) Get(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Project not found")
	}
	return project, nil
}

func (s *projectService) Create(ctx context.Context, caller *access.Principal, req dto.CreateProjectRequest) (*models.Project, error) {
	if err := validAmounts(req.Goal, nil); err != nil {
		return nil, err
	}
	status, err := parseProjectStatus(req.Status, models.ProjectStatusPending)
	if err != nil {
		return nil, err
	}

	// coordinators always create inside their own branch; admins may pick one
	branchID := caller.BranchID
	if caller.Can(access.CapAllBranches) {
		if req.BranchID != nil && *req.BranchID != "" {
			if _, err := s.branchRepo.GetByID(ctx, *req.BranchID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, apperror.Validation("Unknown branch")
				}
				return nil, apperror.Internal("failed to load branch", err)
			}
			branchID = req.BranchID
		}
	} else if branchID == nil {
		return nil, apperror.Forbidden("Coordinator is not assigned to a branch")
	}

	project := &models.Project{
		Title:       req.Title,
		Description: req.Description,
		Goal:        req.Goal,
		Raised:      0,
		Deadline:    req.Deadline,
		Category:    req.Category,
		Status:      status,
		BranchID:    branchID,
		CreatedBy:   caller.UserID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, apperror.Internal("failed to create project", err)
	}

	s.logger.InfoContext(ctx, "project created", "project_id", project.ID, "user_id", caller.UserID)
	return project, nil
}

// loadManaged fetches a project and checks the caller may change it.
func (s *projectService) loadManaged(ctx context.Context, caller *access.Principal, id string) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Project not found")
	}
	if !caller.ManagesBranch(project.BranchID) {
		return nil, ErrNotBranchScope
	}
	return project, nil
}

func (s *projectService) Update(ctx context.Context, caller *access.Principal, id string, req dto.UpdateProjectRequest) (*models.Project, error) {
	if req.Raised == nil {
		return nil, apperror.Validation("raised is required")
	}
	if err := validAmounts(req.Goal, req.Raised); err != nil {
		return nil, err
	}

	project, err := s.loadManaged(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	status, err := parseProjectStatus(req.Status, "")
	if err != nil {
		return nil, err
	}

	project.Title = req.Title
	project.Description = req.Description
	project.Goal = req.Goal
	project.Raised = *req.Raised
	project.Deadline = req.Deadline
	project.Category = req.Category
	project.Status = status

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, apperror.Internal("failed to update project", err)
	}
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, caller *access.Principal, id string) error {
	if _, err := s.loadManaged(ctx, caller, id); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return apperror.NotFound("Project not found")
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return apperror.Conflict("Project has contributions and cannot be deleted")
		}
		return apperror.Internal("failed to delete project", err)
	}

	s.logger.InfoContext(ctx, "project deleted", "project_id", id, "user_id", caller.UserID)
	return nil
}
