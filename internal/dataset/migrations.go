package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version the store understands.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Series table",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS series (
					region TEXT NOT NULL,
					mode TEXT NOT NULL CHECK (mode IN ('historical', 'forecast')),
					period TEXT NOT NULL,
					demand REAL NOT NULL DEFAULT 0,
					supply REAL NOT NULL DEFAULT 0,
					blackout_probability REAL NOT NULL DEFAULT 0,
					PRIMARY KEY (region, mode, period)
				)`,
			}
			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Track when series were written",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`ALTER TABLE series ADD COLUMN updated_at DATETIME`,
				`UPDATE series SET updated_at = CURRENT_TIMESTAMP`,
				`CREATE TRIGGER IF NOT EXISTS series_updated_at
					AFTER INSERT ON series
					FOR EACH ROW WHEN NEW.updated_at IS NULL
					BEGIN
						UPDATE series SET updated_at = CURRENT_TIMESTAMP
						WHERE region = NEW.region AND mode = NEW.mode AND period = NEW.period;
					END`,
				`CREATE INDEX IF NOT EXISTS idx_series_region ON series(region)`,
			}
			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate brings the schema up to ExpectedSchemaVersion.
func (s *Store) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied dataset migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion); err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("dataset schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}
	return nil
}
