package command

import (
	"fmt"

	"churchhub/cmd/cli/command/client"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Probe a running API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ready, _ := cmd.Flags().GetBool("ready")

		httpClient := client.NewHTTPClient(apiURL)
		health, err := httpClient.Health(ready)
		if health != nil {
			for name, status := range health.Checks {
				if status == "ok" {
					color.Green("  %-10s %s", name, status)
				} else {
					color.Red("  %-10s %s", name, status)
				}
			}
		}
		if err != nil {
			return fmt.Errorf("health check failed: %w", err)
		}

		color.Green("✓ %s", health.Message)
		return nil
	},
}

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Stream the notifications of an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		token, _ := cmd.Flags().GetString("token")
		return client.WatchNotifications(apiURL, token)
	},
}

func init() {
	healthCmd.Flags().Bool("ready", false, "also check database and session store")
	rootCmd.AddCommand(healthCmd)

	notificationsCmd.Flags().StringP("token", "t", "", "bearer token of the account")
	notificationsCmd.MarkFlagRequired("token")
	rootCmd.AddCommand(notificationsCmd)
}
