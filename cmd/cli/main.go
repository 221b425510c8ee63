package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"weathernotify.app/internal/app"
)

var application *app.Application

var rootCmd = &cobra.Command{
	Use:   "weathernotify",
	Short: "Weather notification service",
	Long: `weathernotify delivers scheduled OpenWeatherMap reports to Discord channels.
Subscriptions and ticks can be managed from the command line against the
configured database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			slog.Debug("No .env file found or error loading it")
		}

		var err error
		application, err = app.NewApplication()
		if err != nil {
			return fmt.Errorf("initialize application: %w", err)
		}
		return nil
	},
}

func main() {
	err := rootCmd.Execute()
	if application != nil {
		if closeErr := application.Close(); closeErr != nil {
			slog.Warn("Error closing resources", "error", closeErr)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
