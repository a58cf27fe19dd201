package main

// @title Collection Point Service API
// @version 1.0.0
// @description Backend for the waste collection point discovery screen. A host device opens a
// @description discovery session with its reported location, toggles material categories and taps
// @description markers; the service keeps the screen state, queries the points catalog and
// @description publishes navigation intents to a Redis stream.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/collection-point-service/docs"
	"github.com/collection-point-service/internal/config"
	httpDelivery "github.com/collection-point-service/internal/delivery/http"
	"github.com/collection-point-service/internal/delivery/http/handler"
	"github.com/collection-point-service/internal/infrastructure/catalogapi"
	"github.com/collection-point-service/internal/pkg/logger"
	redisRepo "github.com/collection-point-service/internal/repository/redis"
	"github.com/collection-point-service/internal/usecase"
	"github.com/collection-point-service/internal/worker"
	"github.com/collection-point-service/internal/worker/session"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Collection Point Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("catalog", cfg.Catalog.BaseURL),
		zap.String("city", cfg.CityContext().String()),
	)

	// 3. Connect to Redis (navigation stream)
	redisClient, err := redisRepo.NewClient(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// 4. Initialize Repositories
	catalogRepo := catalogapi.NewCatalogClient(&cfg.Catalog, log)
	navigationRepo := redisRepo.NewNavigationRepository(redisClient.Redis(), cfg.Navigation.Stream, log)

	log.Info("Repositories initialized")

	// 5. Initialize Use Cases
	discoveryUC := usecase.NewDiscoveryUseCase(
		catalogRepo,
		navigationRepo,
		usecase.DiscoveryConfig{
			City:           cfg.CityContext(),
			Fallback:       cfg.FallbackRegion(),
			MountTimeout:   cfg.Session.MountTimeout,
			PublishTimeout: cfg.Navigation.PublishTimeout,
		},
		log,
	)
	detailUC := usecase.NewDetailUseCase(catalogRepo, log)

	log.Info("Use cases initialized")

	// 6. Initialize HTTP Handlers
	discoveryHandler := handler.NewDiscoveryHandler(discoveryUC, log)
	detailHandler := handler.NewDetailHandler(detailUC, log)
	wsHandler := handler.NewWSHandler(discoveryUC, log)

	// 7. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		discoveryHandler,
		detailHandler,
		wsHandler,
		redisClient,
	)

	// 8. Start workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(session.NewReaperWorker(
		discoveryUC,
		cfg.Session.IdleTTL,
		cfg.Session.ReapInterval,
		log,
	))
	if err := workerManager.Start(workerCtx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	// Stop workers and unmount every open screen
	stopWorkers()
	if err := workerManager.Stop(); err != nil {
		log.Error("Worker shutdown error", zap.Error(err))
	}
	discoveryUC.CloseAll()

	// Close Redis connection
	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
