package service

import (
	"context"
	"io"
	"log/slog"

	"churchhub/internal/access"
	"churchhub/internal/microservices/http-api/models"
	"churchhub/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ListByBranch(ctx context.Context, branchID string) ([]models.User, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) ListIDsByRoleAndBranch(ctx context.Context, role access.Role, branchID string) ([]string, error) {
	args := m.Called(ctx, role, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockBranchRepository mocks the BranchRepository interface
type MockBranchRepository struct {
	mock.Mock
}

func (m *MockBranchRepository) List(ctx context.Context) ([]models.Branch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Branch), args.Error(1)
}

func (m *MockBranchRepository) GetByID(ctx context.Context, id string) (*models.Branch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Branch), args.Error(1)
}

func (m *MockBranchRepository) Create(ctx context.Context, branch *models.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockBranchRepository) Update(ctx context.Context, branch *models.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockBranchRepository) Stats(ctx context.Context, id string) (*models.BranchStats, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BranchStats), args.Error(1)
}

// MockProjectRepository mocks the ProjectRepository interface
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) List(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectRepository) Create(ctx context.Context, project *models.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Update(ctx context.Context, project *models.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockContributionRepository mocks the ContributionRepository interface
type MockContributionRepository struct {
	mock.Mock
}

func (m *MockContributionRepository) Create(ctx context.Context, contribution *models.Contribution, receipt *models.Notification) error {
	args := m.Called(ctx, contribution, receipt)
	return args.Error(0)
}

func (m *MockContributionRepository) ListByUser(ctx context.Context, userID string) ([]models.Contribution, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Contribution), args.Error(1)
}

func (m *MockContributionRepository) ListByProject(ctx context.Context, projectID string) ([]models.Contribution, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Contribution), args.Error(1)
}

// MockMagazineRepository mocks the MagazineRepository interface
type MockMagazineRepository struct {
	mock.Mock
}

func (m *MockMagazineRepository) CreateSubmission(ctx context.Context, submission *models.MagazineSubmission, notifications []models.Notification) error {
	args := m.Called(ctx, submission, notifications)
	return args.Error(0)
}

func (m *MockMagazineRepository) GetSubmission(ctx context.Context, id string) (*models.MagazineSubmission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MagazineSubmission), args.Error(1)
}

func (m *MockMagazineRepository) ListSubmissions(ctx context.Context, filter models.SubmissionFilter) ([]models.MagazineSubmission, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MagazineSubmission), args.Error(1)
}

func (m *MockMagazineRepository) ReviewSubmission(ctx context.Context, id string, review repository.Review, notification *models.Notification) (*models.MagazineSubmission, error) {
	args := m.Called(ctx, id, review, notification)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MagazineSubmission), args.Error(1)
}

func (m *MockMagazineRepository) ListSections(ctx context.Context) ([]models.MagazineSection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MagazineSection), args.Error(1)
}

func (m *MockMagazineRepository) GetSection(ctx context.Context, id string) (*models.MagazineSection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MagazineSection), args.Error(1)
}

func (m *MockMagazineRepository) CreateSection(ctx context.Context, section *models.MagazineSection) error {
	args := m.Called(ctx, section)
	return args.Error(0)
}

func (m *MockMagazineRepository) UpdateSection(ctx context.Context, section *models.MagazineSection) error {
	args := m.Called(ctx, section)
	return args.Error(0)
}

func (m *MockMagazineRepository) DeleteSection(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublisher records pushed notifications
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(userID string, notification *models.Notification) {
	m.Called(userID, notification)
}
