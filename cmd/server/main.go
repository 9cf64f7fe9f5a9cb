package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"moto-club.backend/internal/config"
	pgsource "moto-club.backend/internal/infrastructure/datasources/postgres"
	"moto-club.backend/internal/infrastructure/jobs"
	"moto-club.backend/internal/infrastructure/repositories"
	"moto-club.backend/internal/infrastructure/seed"
	"moto-club.backend/internal/interfaces/http/handlers"
	"moto-club.backend/internal/interfaces/http/middleware"
	"moto-club.backend/internal/usecases"
	"moto-club.backend/pkg/jwt"
	"moto-club.backend/pkg/logger"
	"moto-club.backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	initSentry = sentry.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt:    false,
			TranslateError: true,
		})
	}
	newSessionStore = redis.NewSessionStore
	runServer       = func(srv *http.Server) error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
	getStdDB      = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
	migrateSchema = pgsource.CreateSchema
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	defer logger.Sync()
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Sentry.DSN != "" {
		if err := initSentry(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			Release:     cfg.Server.Version,
		}); err != nil {
			logger.Warn(ctx, "Sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer redis.Close()
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	if err := sqlDB.Ping(); err != nil {
		logger.Warn(ctx, "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(ctx, "Connected to PostgreSQL via GORM")
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	userRepo := repositories.NewUserRepository(db)
	rideRepo := repositories.NewRideRepository(db)
	achievementRepo := repositories.NewAchievementRepository(db)
	alertRepo := repositories.NewAlertRepository(db)
	uow := repositories.NewUnitOfWork(db)

	if cfg.Database.AutoMigrate {
		if err := bootstrapDatabase(ctx, sqlDB, cfg, achievementRepo, userRepo); err != nil {
			return err
		}
	}

	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService, sessionStore, cfg.Security.SessionTTL)
	achievementUsecase := usecases.NewAchievementUsecase(achievementRepo)
	rideUsecase := usecases.NewRideUsecase(rideRepo, userRepo, uow, achievementUsecase)
	adminUsecase := usecases.NewAdminUsecase(userRepo)
	alertUsecase := usecases.NewAlertUsecase(alertRepo, uow)
	dashboardUsecase := usecases.NewDashboardUsecase(userRepo, rideRepo, alertRepo, cfg.Dashboard.ChapterMinMonthlyRides)
	leaderboardUsecase := usecases.NewLeaderboardUsecase(rideRepo)
	userUsecase := usecases.NewUserUsecase(userRepo)

	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var lifecycleJob *jobs.RideLifecycleJob
	if cfg.Jobs.RideLifecycleEnabled {
		lifecycleJob = jobs.NewRideLifecycleJob(rideUsecase, cfg.Jobs.RideLifecycleInterval, cfg.Jobs.RideDuration)
		go lifecycleJob.Start(jobCtx)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r, cfg.CORS.AllowedOrigins)
	registerHealthRoute(r, cfg.Server.Version)
	registerMetricsRoute(r)
	registerFallbacks(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:        handlers.NewAuthHandler(authUsecase),
		rideHandler:        handlers.NewRideHandler(rideUsecase),
		adminHandler:       handlers.NewAdminHandler(adminUsecase, rideUsecase),
		alertHandler:       handlers.NewAlertHandler(alertUsecase),
		dashboardHandler:   handlers.NewDashboardHandler(dashboardUsecase),
		userHandler:        handlers.NewUserHandler(userUsecase, achievementUsecase),
		leaderboardHandler: handlers.NewLeaderboardHandler(leaderboardUsecase),
		authMiddleware:     middleware.AuthMiddleware(jwtService, sessionStore),
		idempotency:        middleware.IdempotencyMiddleware(cfg.Security.IdempotencyTTL),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(ctx, "Shutting down server")
		if lifecycleJob != nil {
			lifecycleJob.Stop()
		}
		cancel()
		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(ctx, "Server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info(ctx, "Moto club backend starting",
		zap.String("port", cfg.Server.Port),
		zap.String("api", "/api/v1"),
		zap.Int("routes", len(r.Routes())),
	)

	if err := runServer(srv); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// bootstrapDatabase creates missing tables and seeds the catalog plus the optional admin.
func bootstrapDatabase(ctx context.Context, sqlDB *sql.DB, cfg *config.Config, achievements *repositories.AchievementRepository, users *repositories.UserRepository) error {
	if err := migrateSchema(ctx, sqlDB); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	if err := seed.Achievements(ctx, achievements); err != nil {
		return err
	}
	if _, err := seed.Admin(ctx, users, cfg.Seed); err != nil {
		return err
	}
	return nil
}
