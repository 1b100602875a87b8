package database

import (
	"context"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"smarthire_backend/internal/config"
	"smarthire_backend/internal/logger"
	"smarthire_backend/internal/repositories"
	"smarthire_backend/internal/repositories/memory"
	"smarthire_backend/internal/repositories/mongo"
)

// Open создает хранилище по database.driver из конфигурации
func Open(ctx context.Context, cfg *config.Config) (repositories.Store, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres, config.DriverMySQL:
		db, err := ConnectGorm(cfg)
		if err != nil {
			return nil, err
		}
		store := repositories.NewGormStore(db)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("ping %s: %w", cfg.Database.Driver, err)
		}
		return store, nil

	case config.DriverMongo:
		store, err := mongo.Connect(ctx, cfg.Database.MongoURI, cfg.Database.MongoDatabase,
			mongo.WithTransactions(cfg.Database.MongoTransactions))
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.DriverMemory:
		logger.Warn("Using in-memory store, data is lost on restart")
		return memory.New(), nil
	}
	return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
}

// ConnectGorm открывает GORM для postgres или mysql
func ConnectGorm(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.Database.DSN)
	case config.DriverMySQL:
		dialector = mysql.Open(cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("driver %q is not a SQL driver", cfg.Database.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.NewGormLogger(cfg.Server.Env),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}
	return db, nil
}
