package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/Seyram02/nations-league/brackets"
	"github.com/Seyram02/nations-league/commentary"
	"github.com/Seyram02/nations-league/config"
	"github.com/Seyram02/nations-league/db"
	"github.com/Seyram02/nations-league/handlers"
	"github.com/Seyram02/nations-league/repositories"
	api "github.com/Seyram02/nations-league/routes"
	"github.com/Seyram02/nations-league/services"
	"github.com/Seyram02/nations-league/sim"
	"github.com/Seyram02/nations-league/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Crest storage is optional; without R2 credentials uploads return a
	// service-unavailable error but everything else works.
	var crestUploader storage.FileUploader
	if cfg.CrestStorageConfigured() {
		crestUploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("crest storage not configured, uploads disabled")
	}

	wsHub := brackets.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	logger.Info("Repositories initialized")

	engine := sim.NewEngine(nil)

	var textGenerator commentary.Generator
	if cfg.GeminiAPIKey != "" {
		textGenerator = commentary.NewGeminiGenerator(cfg.GeminiAPIKey)
		logger.Info("Gemini commentary generator enabled")
	} else {
		logger.Warn("GEMINI_API_KEY not set, using fallback commentary only")
	}

	emailService := services.NewEmailService(services.EmailConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	})
	if !emailService.Enabled() {
		logger.Warn("SMTP not configured, match notification emails disabled")
	}

	teamService := services.NewTeamService(dbConn, teamRepo, matchRepo, engine, crestUploader)
	matchService := services.NewMatchService(dbConn, matchRepo, teamRepo, engine, textGenerator, emailService, wsHub, logger)
	tournamentService := services.NewTournamentService(dbConn, teamRepo, matchRepo, wsHub, logger)
	logger.Info("Services initialized")

	teamHandler := handlers.NewTeamHandler(teamService)
	matchHandler := handlers.NewMatchHandler(matchService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		teamHandler,
		matchHandler,
		tournamentHandler,
		webSocketHandler,
	)
	logger.Info("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
