package command

// admin.go holds the user administration commands that work directly on the database.

import (
	"errors"
	"fmt"
	"strings"

	"churchhub/database"
	"churchhub/internal/access"
	"churchhub/internal/middleware/auth"
	"churchhub/internal/microservices/http-api/dto"
	"churchhub/internal/microservices/http-api/models"
	"churchhub/internal/microservices/http-api/repository"
	"churchhub/internal/microservices/http-api/service"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// createAdminCmd bootstraps an admin; registration cannot be trusted to do it
// once role self-selection is switched off.
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		name, _ := cmd.Flags().GetString("name")
		email = strings.ToLower(strings.TrimSpace(email))
		if len(password) < 8 {
			return fmt.Errorf("password must be at least 8 characters")
		}

		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer database.Close(db)

		users := repository.NewUserRepository(db)
		if _, err := users.FindByEmail(cmd.Context(), email); err == nil {
			return fmt.Errorf("a user with email %s already exists", email)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		user := &models.User{
			Email:    email,
			Password: hash,
			UserName: name,
			Role:     access.RoleAdmin,
			Status:   models.UserStatusActive,
		}
		if err := users.Create(cmd.Context(), user); err != nil {
			return fmt.Errorf("failed to create admin: %w", err)
		}

		color.Green("✓ Admin created")
		fmt.Printf("UserID: %s\n", user.ID)
		return nil
	},
}

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Change the role, branch or status of a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")

		var req dto.AssignmentRequest
		if cmd.Flags().Changed("role") {
			role, _ := cmd.Flags().GetString("role")
			req.Role = &role
		}
		if cmd.Flags().Changed("branch") {
			branch, _ := cmd.Flags().GetString("branch")
			if branch != "" {
				if _, err := uuid.Parse(branch); err != nil {
					return fmt.Errorf("--branch must be a branch id: %w", err)
				}
			}
			req.BranchID = &branch
		}
		if cmd.Flags().Changed("status") {
			status, _ := cmd.Flags().GetString("status")
			req.Status = &status
		}
		if req.Role == nil && req.BranchID == nil && req.Status == nil {
			return fmt.Errorf("nothing to change: pass --role, --branch or --status")
		}

		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer database.Close(db)

		users := repository.NewUserRepository(db)
		user, err := users.FindByEmail(cmd.Context(), strings.ToLower(strings.TrimSpace(email)))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("no user with email %s", email)
			}
			return err
		}

		svc := service.NewUserService(users, repository.NewBranchRepository(db), cliLogger())
		view, err := svc.Assign(cmd.Context(), user.ID, req)
		if err != nil {
			return err
		}

		color.Green("✓ %s is now %s", view.Email, view.Role)
		if view.BranchID != nil {
			fmt.Printf("Branch: %s\n", *view.BranchID)
		}
		fmt.Printf("Status: %s\n", view.Status)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringP("email", "e", "", "Email address of the admin")
	createAdminCmd.Flags().StringP("password", "p", "", "Password of the admin")
	createAdminCmd.Flags().StringP("name", "n", "Administrator", "Display name of the admin")
	createAdminCmd.MarkFlagRequired("email")
	createAdminCmd.MarkFlagRequired("password")

	assignCmd.Flags().StringP("email", "e", "", "Email address of the user")
	assignCmd.Flags().StringP("role", "r", "", "individual, branch-coordinator or admin")
	assignCmd.Flags().StringP("branch", "b", "", "branch id; empty detaches the user")
	assignCmd.Flags().String("status", "", "active or suspended")
	assignCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(createAdminCmd)
	rootCmd.AddCommand(assignCmd)
}
