package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rtoki/japan-national-admin-procedures/internal/domain/entity"
)

// Repository loads the survey table from the SQLite snapshot when present,
// falling back to a one-time CSV parse (and writing the snapshot for the
// next start). It implements domain.DatasetRepository.
type Repository struct {
	csvPath      string
	snapshotPath string
	logger       *slog.Logger
}

// NewRepository creates a dataset repository. snapshotPath may be empty to
// disable caching.
func NewRepository(csvPath, snapshotPath string, logger *slog.Logger) *Repository {
	return &Repository{
		csvPath:      csvPath,
		snapshotPath: snapshotPath,
		logger:       logger,
	}
}

// Load returns the immutable survey table.
func (r *Repository) Load(ctx context.Context) (*entity.Table, error) {
	if r.snapshotPath != "" {
		if _, err := os.Stat(r.snapshotPath); err == nil {
			start := time.Now()
			rows, err := readSnapshot(ctx, r.snapshotPath)
			if err == nil {
				r.logger.Info("dataset loaded from snapshot",
					"path", r.snapshotPath,
					"rows", len(rows),
					"elapsed", time.Since(start).String(),
				)
				return entity.NewTable(rows), nil
			}
			// A stale or corrupt snapshot is not fatal; rebuild from CSV.
			r.logger.Warn("snapshot unreadable, falling back to csv",
				"path", r.snapshotPath, "error", err)
		}
	}

	rows, err := r.loadCSV()
	if err != nil {
		return nil, err
	}

	if r.snapshotPath != "" {
		if err := writeSnapshot(ctx, r.snapshotPath, rows); err != nil {
			r.logger.Warn("failed to write snapshot", "path", r.snapshotPath, "error", err)
		} else {
			r.logger.Info("snapshot written", "path", r.snapshotPath, "rows", len(rows))
		}
	}
	return entity.NewTable(rows), nil
}

// Convert forces a CSV parse and snapshot rebuild regardless of any
// existing snapshot. Used by the CLI convert command.
func (r *Repository) Convert(ctx context.Context) (int, error) {
	if r.snapshotPath == "" {
		return 0, fmt.Errorf("no snapshot path configured")
	}
	rows, err := r.loadCSV()
	if err != nil {
		return 0, err
	}
	if err := writeSnapshot(ctx, r.snapshotPath, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (r *Repository) loadCSV() ([]*entity.Procedure, error) {
	start := time.Now()
	f, err := os.Open(r.csvPath)
	if err != nil {
		return nil, fmt.Errorf("open dataset csv: %w", err)
	}
	defer f.Close()

	rows, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse dataset csv: %w", err)
	}
	r.logger.Info("dataset parsed from csv",
		"path", r.csvPath,
		"rows", len(rows),
		"elapsed", time.Since(start).String(),
	)
	return rows, nil
}
