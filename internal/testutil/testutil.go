// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"churchhub/database"
	"churchhub/internal/access"
	"churchhub/internal/microservices/http-api/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB opens a private in-memory sqlite database with the full schema.
// A single connection serialises transactions, so concurrency tests on it check
// bookkeeping rather than isolation; the SQL shape of updates is asserted separately.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func CreateBranch(t testing.TB, db *gorm.DB, name string) *models.Branch {
	t.Helper()
	branch := &models.Branch{Name: name, Location: name + " city", Status: models.BranchStatusActive}
	require.NoError(t, db.WithContext(context.Background()).Create(branch).Error)
	return branch
}

// CreateUser inserts a user with a placeholder hash; use the auth service when
// the password must verify.
func CreateUser(t testing.TB, db *gorm.DB, email string, role access.Role, branchID *string) *models.User {
	t.Helper()
	user := &models.User{
		Email:    email,
		Password: "x",
		UserName: email,
		Role:     role,
		BranchID: branchID,
		Status:   models.UserStatusActive,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(user).Error)
	return user
}

func CreateProject(t testing.TB, db *gorm.DB, title string, goal float64, branchID *string, createdBy string) *models.Project {
	t.Helper()
	project := &models.Project{
		Title:     title,
		Goal:      goal,
		Status:    models.ProjectStatusActive,
		BranchID:  branchID,
		CreatedBy: createdBy,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(project).Error)
	return project
}

func StrPtr(s string) *string {
	return &s
}
