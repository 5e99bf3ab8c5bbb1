package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/enterprise-ats/internal/models"
)

// InitDatabase opens the postgres pool, checks it answers and migrates the
// ATS tables.
func InitDatabase(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), gormConfig(cfg.Server.Env))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	configurePool(sqlDB, cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("✅ Database connected (max open %d, max idle %d)\n", cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)

	if err := db.AutoMigrate(migrationModels()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("✅ Database migration completed")

	return db, nil
}

// gormConfig logs SQL only in development. TranslateError lets repositories
// match gorm.ErrDuplicatedKey instead of driver codes.
func gormConfig(env string) *gorm.Config {
	logLevel := logger.Silent
	if env == "development" {
		logLevel = logger.Info
	}

	return &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
}

func configurePool(sqlDB *sql.DB, cfg DatabaseConfig) {
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
}

func migrationModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Job{},
		&models.Candidate{},
	}
}
