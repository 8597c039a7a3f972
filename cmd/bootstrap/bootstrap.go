package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-scheduler/config"
	deliveryHttp "clinic-scheduler/internal/delivery/http"
	"clinic-scheduler/internal/delivery/http/handler"
	"clinic-scheduler/internal/delivery/http/middleware"
	"clinic-scheduler/internal/infrastructure/cache"
	"clinic-scheduler/internal/infrastructure/database"
	"clinic-scheduler/internal/repository"
	"clinic-scheduler/internal/service"
	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/jwt"
	"clinic-scheduler/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Apply schema migrations
	if err := database.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	doctorRepo := repository.NewDoctorRepository()
	specialtyRepo := repository.NewSpecialtyRepository()
	patientRepo := repository.NewPatientRepository()
	slotRepo := repository.NewTimeSlotRepository()
	templateRepo := repository.NewAvailabilityTemplateRepository()
	blockRepo := repository.NewTimeBlockRepository()
	apptRepo := repository.NewAppointmentRepository()
	historyRepo := repository.NewHistoryRepository()
	auditRepo := repository.NewAuditRepository()

	// Initialize services
	recorder := service.NewRecorder(log, auditRepo, historyRepo)
	availabilityCache := service.NewAvailabilityCache(redisClient, log, cfg.Availability.CacheTTL)

	// Initialize usecases
	availabilityUsecase := usecase.NewAvailabilityUsecase(db, log, cfg.Availability.MaxRangeDays,
		doctorRepo, slotRepo, templateRepo, blockRepo, apptRepo, availabilityCache)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log,
		apptRepo, doctorRepo, patientRepo, slotRepo, historyRepo, recorder, availabilityCache)
	scheduleUsecase := usecase.NewScheduleUsecase(db, log,
		slotRepo, templateRepo, blockRepo, doctorRepo, recorder, availabilityCache)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo, specialtyRepo, userRepo, recorder)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditRepo)

	// Initialize handlers
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUsecase)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	scheduleHandler := handler.NewScheduleHandler(scheduleUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(availabilityHandler, appointmentHandler, scheduleHandler,
		doctorHandler, auditLogHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
