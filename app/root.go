// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quickfix-booking",
	Short: "QuickFix-Booking is a repair-shop booking and dashboard service",
	Long: `QuickFix-Booking is a multi-store repair-shop booking service
that serves the public intake form API, an admin dashboard for managing
repair requests and form options, and an integration API for external
platforms.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
