package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	launchpad "github.com/launchpad-hq/launchpad"
	"github.com/launchpad-hq/launchpad/internal/ai"
	"github.com/launchpad-hq/launchpad/internal/config"
	"github.com/launchpad-hq/launchpad/internal/handler"
	"github.com/launchpad-hq/launchpad/internal/middleware"
	"github.com/launchpad-hq/launchpad/internal/realtime"
	"github.com/launchpad-hq/launchpad/internal/repository"
	"github.com/launchpad-hq/launchpad/internal/service"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(launchpad.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	profiles := repository.NewProfileRepo(pool)
	startups := repository.NewStartupRepo(pool)
	sessions := repository.NewSessionRepo(pool)
	messages := repository.NewMessageRepo(pool)
	investments := repository.NewInvestmentRepo(pool)
	notifications := repository.NewNotificationRepo(pool)
	outbox := repository.NewOutboxRepo(pool)

	// Initialize services
	hub := realtime.NewHub()
	gateway := ai.NewGateway(cfg)
	profileService := service.NewProfiles(profiles)
	startupService := service.NewStartups(startups)
	roomService := service.NewPitchRoom(sessions, messages, investments, startups, gateway, hub)
	dmService := service.NewDirectMessaging(messages, sessions, startups, notifications, hub)
	deckService := service.NewPitchDecks(cfg.PitchDeckDir)
	relay := service.NewOutboxRelay(outbox)

	// Background workers
	go relay.Run(ctx)
	go roomService.RunSweeper(ctx)

	// Build the HTTP surface
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.Logging(),
		middleware.ProfileLoader(profiles),
	)

	h := handler.New(handler.Deps{
		Cfg:      cfg,
		Profiles: profileService,
		Startups: startupService,
		Rooms:    roomService,
		DM:       dmService,
		Decks:    deckService,
		Gateway:  gateway,
		Hub:      hub,
	})
	h.Register(engine)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}
