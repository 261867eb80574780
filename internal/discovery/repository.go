package discovery

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"voyager-server/internal/shared/database"
)

// Repository persists discoveries in Postgres. Saves are idempotent: a
// rediscovered object keeps its original timestamp.
type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing discovery repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) Save(ctx context.Context, rec Record) error {
	logger := r.logger.With(
		"component", "discovery_repository",
		"operation", "save",
		"object_id", rec.ObjectID,
		"object_type", rec.ObjectType,
	)
	logger.Debug("Saving discovery")

	query := `
		INSERT INTO discoveries (object_id, object_type, x, y, discovered_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (object_id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, rec.ObjectID, rec.ObjectType, rec.X, rec.Y, rec.DiscoveredAt); err != nil {
		logger.Error("Failed to save discovery", "error", err)
		return fmt.Errorf("failed to save discovery: %w", err)
	}

	logger.Debug("Discovery saved")
	return nil
}

func (r *Repository) Has(ctx context.Context, objectID string) (bool, error) {
	query := `SELECT 1 FROM discoveries WHERE object_id = $1`

	var one int
	err := r.db.QueryRowContext(ctx, query, objectID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		r.logger.Error("Failed to check discovery", "object_id", objectID, "error", err)
		return false, fmt.Errorf("failed to check discovery: %w", err)
	}
	return true, nil
}

func (r *Repository) List(ctx context.Context) ([]Record, error) {
	logger := r.logger.With("component", "discovery_repository", "operation", "list")
	logger.Debug("Listing discoveries")

	query := `
		SELECT object_id, object_type, x, y, discovered_at
		FROM discoveries
		ORDER BY discovered_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("Failed to list discoveries", "error", err)
		return nil, fmt.Errorf("failed to list discoveries: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ObjectID, &rec.ObjectType, &rec.X, &rec.Y, &rec.DiscoveredAt); err != nil {
			logger.Error("Failed to scan discovery row", "error", err)
			return nil, fmt.Errorf("failed to scan discovery row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate discoveries: %w", err)
	}

	logger.Debug("Discoveries listed", "count", len(records))
	return records, nil
}
