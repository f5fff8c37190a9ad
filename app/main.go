package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"blogmirror/app/api"
	"blogmirror/app/cfg"
	"blogmirror/app/database"
	"blogmirror/app/feed"
	"blogmirror/app/hub"
	"blogmirror/app/tasks"
)

func main() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	c, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	if c == nil {
		// Help was requested
		return
	}

	setupLogger(c.Debug)

	slog.Info("Starting Blog Mirror", "version", c.Version, "feed", c.FeedURL)

	db, err := database.NewConnection(c.DBPath)
	if err != nil {
		slog.Error("Failed to connect to database", "path", c.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", c.DBPath, "schema_version", version, "dirty", dirty)

	postRepo := database.NewPostRepository(db)
	subRepo := database.NewSubscriptionRepository(db)

	httpClient := &http.Client{}
	parser := feed.NewParser()
	syncer := feed.NewSyncer(postRepo)
	contentExtractor := feed.NewContentExtractor()

	hubClient := hub.NewClient(httpClient, c.HubURL, c.UserAgent)
	registry := hub.NewRegistry(subRepo, hubClient)

	scheduler := tasks.NewScheduler(c, postRepo, httpClient, parser, syncer, contentExtractor)
	scheduler.Start()
	defer scheduler.Stop()
	slog.Info("Background scheduler started", "workers", c.WorkerCount, "interval", c.SchedulerInterval)

	handler := api.NewHandler(c, postRepo, registry, parser, syncer, scheduler, httpClient)
	server := api.NewServer(handler, c.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + c.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", c.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
