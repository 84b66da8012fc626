package command

import (
	"churchhub/database"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.MigrateUp(db, cliLogger()); err != nil {
			return err
		}
		color.Green("✓ Database is up to date")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")

		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.MigrateDown(db, steps, cliLogger()); err != nil {
			return err
		}
		color.Yellow("✓ Rolled back %d migration(s)", steps)
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateDownCmd.Flags().Int("steps", 1, "number of migrations to roll back")

	rootCmd.AddCommand(migrateCmd)
}
