package service

import (
	"context"
	"testing"

	"churchhub/internal/access"
	"churchhub/internal/apperror"
	"churchhub/internal/microservices/http-api/dto"
	"churchhub/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestProjectCreate_CoordinatorUsesOwnBranch(t *testing.T) {
	mockProjectRepo := new(MockProjectRepository)
	svc := NewProjectService(mockProjectRepo, new(MockBranchRepository), testLogger())
	branch := "north"
	other := "south"
	caller := &access.Principal{UserID: "coord", Role: access.RoleBranchCoordinator, BranchID: &branch}

	mockProjectRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Project")).Return(nil)

	project, err := svc.Create(context.Background(), caller, dto.CreateProjectRequest{
		Title:    "Roof",
		Goal:     5000,
		BranchID: &other, // ignored for coordinators
	})

	require.NoError(t, err)
	assert.Equal(t, 0.0, project.Raised)
	assert.Equal(t, models.ProjectStatusPending, project.Status)
	require.NotNil(t, project.BranchID)
	assert.Equal(t, "north", *project.BranchID)
	assert.Equal(t, "coord", project.CreatedBy)
}

func TestProjectCreate_AdminPicksBranch(t *testing.T) {
	mockProjectRepo := new(MockProjectRepository)
	mockBranchRepo := new(MockBranchRepository)
	svc := NewProjectService(mockProjectRepo, mockBranchRepo, testLogger())
	caller := &access.Principal{UserID: "root", Role: access.RoleAdmin}
	branch := "south"

	mockBranchRepo.On("GetByID", mock.Anything, "south").Return(&models.Branch{ID: "south"}, nil)
	mockProjectRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	project, err := svc.Create(context.Background(), caller, dto.CreateProjectRequest{Title: "Organ", Goal: 100, Status: "active", BranchID: &branch})
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusActive, project.Status)
	assert.Equal(t, "south", *project.BranchID)
}

func TestProjectCreate_Invalid(t *testing.T) {
	svc := NewProjectService(new(MockProjectRepository), new(MockBranchRepository), testLogger())

	_, err := svc.Create(context.Background(),
		&access.Principal{UserID: "coord", Role: access.RoleBranchCoordinator},
		dto.CreateProjectRequest{Title: "Roof", Goal: 1})
	assert.True(t, apperror.Is(err, apperror.KindForbidden), "coordinator without branch")

	_, err = svc.Create(context.Background(),
		&access.Principal{UserID: "root", Role: access.RoleAdmin},
		dto.CreateProjectRequest{Title: "Roof", Goal: 1, Status: "archived"})
	assert.True(t, apperror.Is(err, apperror.KindValidation), "unknown status")
}

func TestProjectAmounts_MustFitColumn(t *testing.T) {
	mockProjectRepo := new(MockProjectRepository)
	svc := NewProjectService(mockProjectRepo, new(MockBranchRepository), testLogger())
	admin := &access.Principal{UserID: "root", Role: access.RoleAdmin}

	for _, goal := range []float64{0.004, 12.345, 1e10} {
		_, err := svc.Create(context.Background(), admin, dto.CreateProjectRequest{Title: "Roof", Goal: goal})
		assert.True(t, apperror.Is(err, apperror.KindValidation), "goal %v", goal)
	}

	raised := 0.001
	_, err := svc.Update(context.Background(), admin, "p1", dto.UpdateProjectRequest{Title: "Roof", Goal: 10, Raised: &raised, Status: "active"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	mockProjectRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockProjectRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestProjectUpdate_OtherBranchForbidden(t *testing.T) {
	mockProjectRepo := new(MockProjectRepository)
	svc := NewProjectService(mockProjectRepo, new(MockBranchRepository), testLogger())
	north, south := "north", "south"
	caller := &access.Principal{UserID: "coord", Role: access.RoleBranchCoordinator, BranchID: &north}
	raised := 10.0

	mockProjectRepo.On("GetByID", mock.Anything, "p1").Return(&models.Project{ID: "p1", BranchID: &south}, nil)

	_, err := svc.Update(context.Background(), caller, "p1", dto.UpdateProjectRequest{Title: "x", Goal: 1, Raised: &raised, Status: "active"})
	assert.Equal(t, ErrNotBranchScope, err)

	err = svc.Delete(context.Background(), caller, "p1")
	assert.Equal(t, ErrNotBranchScope, err)
	mockProjectRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockProjectRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestProjectUpdate_ReplacesFields(t *testing.T) {
	mockProjectRepo := new(MockProjectRepository)
	svc := NewProjectService(mockProjectRepo, new(MockBranchRepository), testLogger())
	north := "north"
	caller := &access.Principal{UserID: "coord", Role: access.RoleBranchCoordinator, BranchID: &north}
	raised := 42.0

	mockProjectRepo.On("GetByID", mock.Anything, "p1").Return(&models.Project{ID: "p1", BranchID: &north, Category: "repairs", Description: "old"}, nil)
	mockProjectRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	project, err := svc.Update(context.Background(), caller, "p1", dto.UpdateProjectRequest{Title: "Roof", Goal: 900, Raised: &raised, Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "Roof", project.Title)
	assert.Equal(t, 42.0, project.Raised)
	assert.Equal(t, models.ProjectStatusCompleted, project.Status)
	assert.Empty(t, project.Category)
	assert.Empty(t, project.Description)
}

func TestProjectDelete_ForeignKeyConflict(t *testing.T) {
	mockProjectRepo := new(MockProjectRepository)
	svc := NewProjectService(mockProjectRepo, new(MockBranchRepository), testLogger())
	caller := &access.Principal{UserID: "root", Role: access.RoleAdmin}

	mockProjectRepo.On("GetByID", mock.Anything, "p1").Return(&models.Project{ID: "p1"}, nil)
	mockProjectRepo.On("Delete", mock.Anything, "p1").Return(gorm.ErrForeignKeyViolated)

	err := svc.Delete(context.Background(), caller, "p1")
	assert.True(t, apperror.Is(err, apperror.KindConflict))
}

func TestProjectGet_NotFound(t *testing.T) {
	mockProjectRepo := new(MockProjectRepository)
	svc := NewProjectService(mockProjectRepo, new(MockBranchRepository), testLogger())
	mockProjectRepo.On("GetByID", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), "nope")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
