// Package dataset stores the historical and forecast series shown by the chart panel.
package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sayan30092004/load-main/internal/chart"
	"github.com/Sayan30092004/load-main/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// ErrNoSeries is returned when no rows exist for a region, including the global fallback.
var ErrNoSeries = errors.New("no series stored")

// Store is a SQLite-backed series store.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Ensure we implement the interface.
var _ Provider = (*Store)(nil)

// NewSQLiteStore opens (creating if needed) the dataset database at dbPath.
func NewSQLiteStore(dbPath string) (*Store, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create dataset directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping dataset: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// SaveSeries replaces the series stored for a region and mode.
func (s *Store) SaveSeries(ctx context.Context, region string, mode chart.Mode, points []model.TimeSeriesPoint) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(region, "region"); err != nil {
		return err
	}
	if err := validateMode(mode); err != nil {
		return err
	}
	if err := validatePoints(points); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM series WHERE region = ? AND mode = ?`, region, string(mode)); err != nil {
		return fmt.Errorf("failed to clear series: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO series (region, mode, period, demand, supply, blackout_probability)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, p := range points {
		if _, err := stmt.ExecContext(ctx, region, string(mode), p.Date, p.Demand, p.Supply, p.BlackoutProbability); err != nil {
			return fmt.Errorf("failed to insert %s/%s %s: %w", region, mode, p.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit series: %w", err)
	}
	return nil
}

// Series returns the points for a region ordered by period. Regions without their own rows
// fall back to the rows stored under the global region.
func (s *Store) Series(ctx context.Context, region string, mode chart.Mode) ([]model.TimeSeriesPoint, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateMode(mode); err != nil {
		return nil, err
	}

	candidates := []string{strings.TrimSpace(region)}
	if candidates[0] != model.GlobalRegion {
		candidates = append(candidates, model.GlobalRegion)
	}

	for _, name := range candidates {
		if name == "" {
			continue
		}
		points, err := s.querySeries(ctx, name, mode)
		if err != nil {
			return nil, err
		}
		if len(points) > 0 {
			return points, nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrNoSeries, region, mode)
}

func (s *Store) querySeries(ctx context.Context, region string, mode chart.Mode) ([]model.TimeSeriesPoint, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT period, demand, supply, blackout_probability
		FROM series
		WHERE region = ? AND mode = ?
		ORDER BY period`, region, string(mode))
	if err != nil {
		return nil, fmt.Errorf("failed to query series: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var points []model.TimeSeriesPoint
	for rows.Next() {
		var p model.TimeSeriesPoint
		if err := rows.Scan(&p.Date, &p.Demand, &p.Supply, &p.BlackoutProbability); err != nil {
			return nil, fmt.Errorf("failed to scan series row: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate series: %w", err)
	}
	return points, nil
}

// Regions lists the regions that have stored series.
func (s *Store) Regions(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT region FROM series ORDER BY region`)
	if err != nil {
		return nil, fmt.Errorf("failed to query regions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var regions []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan region: %w", err)
		}
		regions = append(regions, name)
	}
	return regions, rows.Err()
}

// Count returns the number of stored points.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM series`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count series: %w", err)
	}
	return n, nil
}
