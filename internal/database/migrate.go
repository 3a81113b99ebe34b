package database

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"

	// postgres driver нужен golang-migrate для применения миграций.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	// file driver необходим для чтения миграций с диска.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies every pending migration from dir. The schema is owned by the web
// backend in production, so this is meant for local runs and integration tests.
func RunMigrations(databaseURL, dir string, logger *slog.Logger) error {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("ошибка при определении пути к миграциям: %w", err)
	}

	m, err := migrate.New("file://"+absPath, databaseURL)
	if err != nil {
		return fmt.Errorf("не удалось создать экземпляр migrate: %w", err)
	}

	defer func() {
		sourceErr, dbErr := m.Close()
		if sourceErr != nil || dbErr != nil {
			logger.Warn("Ошибка при закрытии migrate",
				"source_error", sourceErr,
				"database_error", dbErr,
			)
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("не удалось применить миграции: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("не удалось получить версию схемы: %w", err)
	}

	logger.Info("Миграции применены",
		"version", version,
		"dirty", dirty,
	)

	return nil
}
