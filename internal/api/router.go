package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/taskly/tracker-api/docs"
	"github.com/taskly/tracker-api/internal/api/handler"
	"github.com/taskly/tracker-api/internal/api/middleware"
	"github.com/taskly/tracker-api/internal/core/ports"
	"github.com/taskly/tracker-api/internal/core/service"
	mongodb "github.com/taskly/tracker-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskly/tracker-api/internal/infrastructure/db/redis"
	"github.com/taskly/tracker-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, activity ports.ActivityRecorder, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("tracker"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	guard := service.NewGuard(projectRepo, taskRepo)
	throttle := redisdb.NewLoginThrottle(rdb)

	authService := service.NewAuthService(userRepo, throttle, jwtSecret, 24*time.Hour, log)
	projectService := service.NewProjectService(projectRepo, taskRepo, guard, activity, log)
	taskService := service.NewTaskService(taskRepo, guard, activity, log)
	statsService := service.NewStatsService(projectRepo, taskRepo)

	authHandler := handler.NewAuthHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService)
	statsHandler := handler.NewStatsHandler(statsService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated API ---
	v1 := e.Group("/v1", middleware.Auth(jwtSecret))

	v1.GET("/profile", authHandler.Profile)
	v1.PUT("/profile", authHandler.UpdateProfile)
	v1.PUT("/profile/password", authHandler.ChangePassword)

	v1.GET("/projects", projectHandler.List)
	v1.POST("/projects", projectHandler.Create)
	v1.GET("/projects/:id", projectHandler.Get)
	v1.PUT("/projects/:id", projectHandler.Update)
	v1.DELETE("/projects/:id", projectHandler.Delete)

	v1.GET("/tasks", taskHandler.List)
	v1.POST("/tasks", taskHandler.Create)
	v1.GET("/tasks/:id", taskHandler.Get)
	v1.PUT("/tasks/:id", taskHandler.Update)
	v1.DELETE("/tasks/:id", taskHandler.Delete)
	v1.POST("/tasks/:id/complete", taskHandler.Complete)

	v1.GET("/stats", statsHandler.Get)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
