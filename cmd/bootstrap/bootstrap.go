package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotel-ortus/config"
	deliveryHttp "hotel-ortus/internal/delivery/http"
	"hotel-ortus/internal/delivery/http/handler"
	"hotel-ortus/internal/delivery/http/middleware"
	"hotel-ortus/internal/domain/entity"
	"hotel-ortus/internal/infrastructure/cache"
	"hotel-ortus/internal/infrastructure/database"
	"hotel-ortus/internal/infrastructure/messaging"
	"hotel-ortus/internal/repository"
	"hotel-ortus/internal/service"
	"hotel-ortus/internal/usecase"
	"hotel-ortus/pkg/jwt"
	"hotel-ortus/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config       *config.Config
	DB           *gorm.DB
	RedisClient  *redis.Client
	Publisher    *messaging.Publisher
	AutoCheckout *service.AutoCheckoutService
	Server       *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	setupLogger(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")

	if cfg.Migrations.AutoApply {
		if err := database.MigrateUp(cfg.Migrations.Path, cfg.DB); err != nil {
			return nil, err
		}
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Event publishing is optional
	if cfg.RabbitMQ.URL != "" {
		app.Publisher = messaging.NewPublisher(cfg.RabbitMQ, logrus.StandardLogger())
		logrus.WithField("queue", cfg.RabbitMQ.Queue).Info("Booking events will be published to RabbitMQ")
	}

	// Initialize all layers
	app.Server, app.AutoCheckout = initializeServer(cfg, db, redisClient, app.Publisher)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// initializeServer creates and configures the HTTP server and the checkout sweep
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, publisher *messaging.Publisher) (*http.Server, *service.AutoCheckoutService) {
	// Initialize logger
	log := logrus.StandardLogger()

	rules := entity.HouseRules{
		Location:     cfg.App.Location(),
		CheckInHour:  cfg.Booking.CheckInHour,
		CheckOutHour: cfg.Booking.CheckOutHour,
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	bookingRepo := repository.NewBookingRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	var eventPublisher service.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
	}
	notifier := service.NewNotifier(eventPublisher, log)
	auditService := service.NewAuditService(log, auditLogRepo)
	statsService := service.NewBookingStatsService(db, log, bookingRepo, rules)
	folioService := service.NewFolioService(cfg.App.Name, rules)
	autoCheckout := service.NewAutoCheckoutService(db, redisClient, log, bookingRepo, auditService, notifier, cfg.Booking, rules)

	// Initialize usecases
	lifecycleOpts := usecase.LifecycleOptions{MaxExtensionDays: cfg.Booking.MaxExtensionDays}
	newLifecycle := usecase.NewBookingLifecycleUsecase
	if cfg.Booking.StrictTransitions {
		newLifecycle = usecase.NewStrictBookingLifecycleUsecase
		log.Info("Strict booking transitions enabled")
	}

	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, auditService, jwtService, redisClient)
	bookingUsecase := usecase.NewBookingUsecase(db, log, bookingRepo, auditService, statsService, folioService, notifier, rules, time.Now)
	lifecycleUsecase := newLifecycle(db, log, bookingRepo, auditService, notifier, rules, lifecycleOpts, time.Now)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	bookingHandler := handler.NewBookingHandler(bookingUsecase, customValidator)
	adminBookingHandler := handler.NewAdminBookingHandler(bookingUsecase, lifecycleUsecase, customValidator, time.Now)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigins...)
	requestLogger := middleware.NewRequestLogger(log)

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, bookingHandler, adminBookingHandler, auditLogHandler, authMiddleware, corsMiddleware, requestLogger)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}, autoCheckout
}

// Run starts the HTTP server and the checkout sweep, then handles graceful shutdown
func (app *App) Run() {
	app.AutoCheckout.Start()

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

	// Let an in-flight sweep finish before the pool goes away
	app.AutoCheckout.Stop()

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, broker)
func (app *App) Close() {
	if app.Publisher != nil {
		if err := app.Publisher.Close(); err != nil {
			logrus.Warnf("Failed to close RabbitMQ publisher: %v", err)
		}
	}

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
