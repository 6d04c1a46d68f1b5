package database

import (
	"errors"
	"fmt"
	"net/url"

	"hotel-ortus/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
)

// MigrationURL builds the postgres:// URL golang-migrate expects.
func MigrationURL(cfg config.DBConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Path:   "/" + cfg.Name,
	}
	q := u.Query()
	q.Set("sslmode", sslMode(cfg))
	u.RawQuery = q.Encode()
	return u.String()
}

// MigrateUp applies every pending migration. No pending migration is not an error.
func MigrateUp(sourceURL string, cfg config.DBConfig) error {
	m, err := migrate.New(sourceURL, MigrationURL(cfg))
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logrus.Info("Database schema is up to date")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	logrus.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("Database migrations applied")
	return nil
}

// MigrateDown rolls back the given number of migrations.
func MigrateDown(sourceURL string, cfg config.DBConfig, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}

	m, err := migrate.New(sourceURL, MigrationURL(cfg))
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	return nil
}
