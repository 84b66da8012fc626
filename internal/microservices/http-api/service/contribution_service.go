package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"churchhub/internal/access"
	"churchhub/internal/apperror"
	"churchhub/internal/microservices/http-api/dto"
	"churchhub/internal/microservices/http-api/models"
	"churchhub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

type ContributionService interface {
	Create(ctx context.Context, caller *access.Principal, req dto.CreateContributionRequest) (*models.Contribution, error)
	ListByUser(ctx context.Context, userID string) ([]models.Contribution, error)
	// ListByProject returns every contribution to projects the caller manages,
	// and only the caller's own contributions otherwise.
	ListByProject(ctx context.Context, caller *access.Principal, projectID string) ([]dto.ProjectContributionResponse, error)
}

type contributionService struct {
	contributionRepo repository.ContributionRepository
	projectRepo      repository.ProjectRepository
	publisher        NotificationPublisher
	logger           *slog.Logger
}

func NewContributionService(contributionRepo repository.ContributionRepository, projectRepo repository.ProjectRepository, publisher NotificationPublisher, logger *slog.Logger) ContributionService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &contributionService{
		contributionRepo: contributionRepo,
		projectRepo:      projectRepo,
		publisher:        publisher,
		logger:           logger,
	}
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

func (s *contributionService) Create(ctx context.Context, caller *access.Principal, req dto.CreateContributionRequest) (*models.Contribution, error) {
	if req.Amount <= 0 {
		return nil, apperror.Validation("amount must be greater than zero")
	}
	if !dto.IsMoney(req.Amount) {
		return nil, apperror.Validation("amount must have at most two decimals and be below 10000000000")
	}

	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, lookupError(err, "Project not found")
	}
	if project.Status == models.ProjectStatusCompleted {
		return nil, apperror.Validation("Project is completed and no longer accepts contributions")
	}

	contribution := &models.Contribution{
		UserID:        caller.UserID,
		ProjectID:     project.ID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
	}
	receipt := &models.Notification{
		UserID:  caller.UserID,
		Title:   "Contribution Received",
		Message: fmt.Sprintf("Thank you for your $%s contribution!", formatAmount(req.Amount)),
		Type:    models.NotificationTypeContribution,
	}

	if err := s.contributionRepo.Create(ctx, contribution, receipt); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Project not found")
		}
		return nil, apperror.Internal("failed to record contribution", err)
	}

	s.publisher.Publish(receipt.UserID, receipt)
	s.logger.InfoContext(ctx, "contribution recorded",
		"contribution_id", contribution.ID,
		"project_id", project.ID,
		"user_id", caller.UserID,
		"amount", contribution.Amount,
	)
	return contribution, nil
}

func (s *contributionService) ListByUser(ctx context.Context, userID string) ([]models.Contribution, error) {
	contributions, err := s.contributionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("failed to list contributions", err)
	}
	return contributions, nil
}

func (s *contributionService) ListByProject(ctx context.Context, caller *access.Principal, projectID string) ([]dto.ProjectContributionResponse, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, lookupError(err, "Project not found")
	}

	contributions, err := s.contributionRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, apperror.Internal("failed to list contributions", err)
	}

	manages := caller.ManagesBranch(project.BranchID)
	responses := make([]dto.ProjectContributionResponse, 0, len(contributions))
	for i := range contributions {
		if !manages && contributions[i].UserID != caller.UserID {
			continue
		}
		responses = append(responses, dto.FromModelToProjectContribution(&contributions[i]))
	}
	return responses, nil
}
