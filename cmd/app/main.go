package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"weathernotify.app/internal/app"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found or error loading it")
	}

	application, err := app.NewApplication()
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	cfg := application.Config()
	slog.Info("Weather notification service configured",
		"port", cfg.Server.Port,
		"timezone", cfg.Scheduler.Timezone,
		"default_times", cfg.Scheduler.DefaultTimes,
		"notifier", cfg.Notifier.Type.String(),
		"cache", cfg.Cache.Type.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- application.Start(ctx)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			slog.Error("Application stopped with error", "error", err)
			_ = application.Close()
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("Received shutdown signal...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := application.Shutdown(shutdownCtx); err != nil {
			slog.Error("Error during graceful shutdown", "error", err)
			os.Exit(1)
		}
		<-serveErr
	}
}
