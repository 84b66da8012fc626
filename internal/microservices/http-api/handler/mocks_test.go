package handler

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"churchhub/internal/access"
	"churchhub/internal/microservices/http-api/dto"
	"churchhub/internal/microservices/http-api/middleware"
	"churchhub/internal/microservices/http-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return router
}

// as installs a fixed principal, standing in for the auth middleware.
func as(principal *access.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetPrincipal(c, principal)
		c.Next()
	}
}

func strPtr(s string) *string { return &s }

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Verify(ctx context.Context, token string) (*access.Principal, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*access.Principal), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockAuthService) Me(ctx context.Context, userID string) (*dto.UserView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserView), args.Error(1)
}

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) List(ctx context.Context, query dto.ProjectQuery) ([]models.Project, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) Create(ctx context.Context, caller *access.Principal, req dto.CreateProjectRequest) (*models.Project, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) Update(ctx context.Context, caller *access.Principal, id string, req dto.UpdateProjectRequest) (*models.Project, error) {
	args := m.Called(ctx, caller, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) Delete(ctx context.Context, caller *access.Principal, id string) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

type MockContributionService struct {
	mock.Mock
}

func (m *MockContributionService) Create(ctx context.Context, caller *access.Principal, req dto.CreateContributionRequest) (*models.Contribution, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contribution), args.Error(1)
}

func (m *MockContributionService) ListByUser(ctx context.Context, userID string) ([]models.Contribution, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Contribution), args.Error(1)
}

func (m *MockContributionService) ListByProject(ctx context.Context, caller *access.Principal, projectID string) ([]dto.ProjectContributionResponse, error) {
	args := m.Called(ctx, caller, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ProjectContributionResponse), args.Error(1)
}

type MockMagazineService struct {
	mock.Mock
}

func (m *MockMagazineService) CreateSubmission(ctx context.Context, caller *access.Principal, req dto.CreateSubmissionRequest, files []dto.FileUpload) (*dto.SubmissionResponse, error) {
	args := m.Called(ctx, caller, req, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SubmissionResponse), args.Error(1)
}

func (m *MockMagazineService) ListSubmissions(ctx context.Context, caller *access.Principal, query dto.SubmissionQuery) ([]dto.SubmissionResponse, error) {
	args := m.Called(ctx, caller, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.SubmissionResponse), args.Error(1)
}

func (m *MockMagazineService) GetSubmission(ctx context.Context, caller *access.Principal, id string) (*dto.SubmissionResponse, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SubmissionResponse), args.Error(1)
}

func (m *MockMagazineService) ReviewSubmission(ctx context.Context, caller *access.Principal, id string, req dto.ReviewSubmissionRequest) (*dto.SubmissionResponse, error) {
	args := m.Called(ctx, caller, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SubmissionResponse), args.Error(1)
}

func (m *MockMagazineService) OpenAttachment(ctx context.Context, caller *access.Principal, id string, index int) (io.ReadCloser, *models.Attachment, error) {
	args := m.Called(ctx, caller, id, index)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(*models.Attachment), args.Error(2)
}

func (m *MockMagazineService) ListSections(ctx context.Context) ([]models.MagazineSection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MagazineSection), args.Error(1)
}

func (m *MockMagazineService) CreateSection(ctx context.Context, req dto.SectionRequest) (*models.MagazineSection, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MagazineSection), args.Error(1)
}

func (m *MockMagazineService) UpdateSection(ctx context.Context, id string, req dto.SectionRequest) (*models.MagazineSection, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MagazineSection), args.Error(1)
}

func (m *MockMagazineService) DeleteSection(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) List(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// nopCloser wraps a string as an attachment body.
func nopCloser(s string) io.ReadCloser { return io.NopCloser(strings.NewReader(s)) }
