package http

import (
	"context"
	"time"

	"github.com/collection-point-service/internal/config"
	"github.com/collection-point-service/internal/delivery/http/handler"
	"github.com/collection-point-service/internal/delivery/http/middleware"
	"github.com/collection-point-service/internal/pkg/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/websocket/v2"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// HealthChecker - зависимость, проверяемая в /health
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	discoveryHandler *handler.DiscoveryHandler
	detailHandler    *handler.DetailHandler
	wsHandler        *handler.WSHandler
	health           HealthChecker
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	discoveryHandler *handler.DiscoveryHandler,
	detailHandler *handler.DetailHandler,
	wsHandler *handler.WSHandler,
	health HealthChecker,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Collection Point Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		discoveryHandler: discoveryHandler,
		detailHandler:    detailHandler,
		wsHandler:        wsHandler,
		health:           health,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(metrics.Middleware())
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	s.app.Get("/metrics", metrics.Handler())

	// WebSocket push of screen snapshots
	ws := s.app.Group("/ws", s.wsHandler.Upgrade)
	ws.Get("/sessions/:id", websocket.New(s.wsHandler.Stream))

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", s.healthCheck)

	// Discovery sessions
	sessions := api.Group("/sessions")
	sessions.Post("/", s.discoveryHandler.OpenSession)
	sessions.Get("/:id", s.discoveryHandler.GetSession)
	sessions.Get("/:id/markers.geojson", s.discoveryHandler.GetMarkersGeoJSON)
	sessions.Post("/:id/filters/:categoryId/toggle", s.discoveryHandler.ToggleCategory)
	sessions.Post("/:id/markers/:pointId/select", s.discoveryHandler.SelectMarker)
	sessions.Post("/:id/back", s.discoveryHandler.Back)
	sessions.Delete("/:id", s.discoveryHandler.CloseSession)

	// Point detail
	api.Get("/points/:id", s.detailHandler.GetPoint)
}

// healthCheck godoc
// @Summary Liveness
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (s *Server) healthCheck(c *fiber.Ctx) error {
	status := "healthy"
	code := fiber.StatusOK
	checks := fiber.Map{}

	if s.health != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := s.health.Health(ctx); err != nil {
			status, code = "degraded", fiber.StatusServiceUnavailable
			checks["redis"] = err.Error()
		} else {
			checks["redis"] = "ok"
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"checks": checks,
		"time":   time.Now(),
	})
}

// App exposes the fiber app for in-process tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := "INTERNAL_SERVER_ERROR"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			if code < fiber.StatusInternalServerError {
				errCode = "HTTP_ERROR"
			}
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    errCode,
				"message": err.Error(),
			},
		})
	}
}
