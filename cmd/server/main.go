package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finanza-app/finanza-backend/internal/adapter/assistant"
	httpadapter "github.com/finanza-app/finanza-backend/internal/adapter/http"
	"github.com/finanza-app/finanza-backend/internal/adapter/repository/postgres"
	"github.com/finanza-app/finanza-backend/internal/config"
	"github.com/finanza-app/finanza-backend/internal/usecase/goals"
	"github.com/finanza-app/finanza-backend/internal/usecase/portfolio"
	"github.com/finanza-app/finanza-backend/pkg/logger"
)

func main() {
	ctx := context.Background()

	// 1. Configuration and logging
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.Environment)
	defer log.Sync()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Database
	db, err := postgres.NewDB(cfg.Database.DSN())
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	// 3. Repositories
	assetRepo := postgres.NewAssetRepository(db)
	goalRepo := postgres.NewGoalRepository(db)
	allocationRepo := postgres.NewAllocationGoalsRepository(db)

	// 4. Services (use cases)
	portfolioService := portfolio.NewService(assetRepo, time.Now)
	goalsService := goals.NewService(goalRepo, allocationRepo, portfolioService)

	// AI assistant is optional: without a key the endpoints answer 503
	var assistantService *assistant.Service
	if cfg.Gemini.APIKey != "" {
		assistantService, err = assistant.New(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, log)
		if err != nil {
			log.Fatalw("failed to initialize assistant", "error", err)
		}
	} else {
		log.Warn("GEMINI_API_KEY not set, assistant endpoints disabled")
	}

	// 5. HTTP server
	server := httpadapter.NewServer(
		assetRepo,
		goalRepo,
		allocationRepo,
		portfolioService,
		goalsService,
		assistantService,
		log,
		cfg.Auth.APIToken,
		cfg.Server.AllowedOrigins,
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Infow("HTTP server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("failed to serve", "error", err)
		}
	}()

	waitForShutdown(httpServer, log)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(server *http.Server, log *logger.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Infow("shutting down gracefully", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorw("forced shutdown", "error", err)
	}
	log.Info("HTTP server stopped")
}
