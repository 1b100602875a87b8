package database

import (
	"context"
	"fmt"

	"smarthire_backend/internal/logger"
	"smarthire_backend/internal/repositories"
)

// AutoMigrate создает схему: таблицы GORM или индексы MongoDB
func AutoMigrate(ctx context.Context, store repositories.Store) error {
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.Info("AutoMigrate completed")
	return nil
}
