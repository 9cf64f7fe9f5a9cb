package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"moto-club.backend/internal/config"
	pgsource "moto-club.backend/internal/infrastructure/datasources/postgres"
	"moto-club.backend/internal/infrastructure/repositories"
	"moto-club.backend/internal/infrastructure/seed"
	"moto-club.backend/pkg/logger"
)

var (
	loadDotenv    = godotenv.Load
	loadCfg       = config.Load
	initLog       = logger.Init
	connect       = pgsource.NewConnection
	migrateSchema = pgsource.CreateSchema
	wrapGorm      = func(sqlDB *sql.DB) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{TranslateError: true})
	}
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()
	initLog(cfg.Server.Env)
	defer logger.Sync()

	sqlDB, err := connect(cfg.Database)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := migrateSchema(ctx, sqlDB); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	logger.Info(ctx, "Schema up to date", zap.String("database", cfg.Database.DBName))

	db, err := wrapGorm(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to open gorm session: %w", err)
	}

	if err := seed.Achievements(ctx, repositories.NewAchievementRepository(db)); err != nil {
		return err
	}

	created, err := seed.Admin(ctx, repositories.NewUserRepository(db), cfg.Seed)
	if err != nil {
		return err
	}
	logger.Info(ctx, "Migration finished", zap.Bool("admin_created", created))
	return nil
}
