package command

// root.go defines the root command for the churchhub admin CLI.
// set up the global flags here.

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"churchhub/database"
	"churchhub/internal/logging"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	apiURL      string // Global flag for API server URL
	databaseURL string // database connection string for the admin commands
	verbose     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "churchhub",
	Short: "churchhub - administration tool for the ChurchHub API",
	Long: `churchhub operates a ChurchHub deployment. It can:
- Apply or roll back database migrations
- Create the first admin account
- Assign roles and branches to users
- Probe a running API server and watch its notification stream

Use "churchhub command --help" to see all available commands.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional
		_ = godotenv.Load()
		if databaseURL == "" {
			databaseURL = os.Getenv("DATABASE_URL")
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("✗ %v", err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags = available to all subcommands
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:5000/api", "API server URL")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "database URL (defaults to $DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
}

func cliLogger() *slog.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logging.NewWithWriter(os.Stderr, level, "text")
}

// openDB connects with the URL from --database-url or the environment.
func openDB(ctx context.Context) (*gorm.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("no database configured: pass --database-url or set DATABASE_URL")
	}
	opts := database.DefaultOptions
	opts.MaxOpenConns = 2
	return database.Connect(ctx, databaseURL, opts, cliLogger())
}
