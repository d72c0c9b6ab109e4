package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/crumbwork/crumbwork/internal/models"
)

// PriceHistoryRepository handles the append-only price change log.
// Rows are only ever inserted and read; there is no update or delete.
type PriceHistoryRepository struct {
	db *sql.DB
}

// NewPriceHistoryRepository creates a new price history repository.
func NewPriceHistoryRepository(db *sql.DB) *PriceHistoryRepository {
	return &PriceHistoryRepository{db: db}
}

const priceHistoryColumns = `id, entity_type, entity_id, old_value, new_value,
		change_amount, change_percent, reason, recorded_at`

// Create appends a price change record.
func (r *PriceHistoryRepository) Create(ctx context.Context, tx *sql.Tx, change *models.PriceChange) error {
	query := `
		INSERT INTO price_history (
			id, entity_type, entity_id, old_value, new_value,
			change_amount, change_percent, reason, recorded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if change.RecordedAt.IsZero() {
		change.RecordedAt = time.Now().UTC()
	}

	_, err := getExecer(r.db, tx).ExecContext(ctx, query,
		change.ID,
		string(change.EntityType),
		change.EntityID,
		change.OldValue,
		change.NewValue,
		change.ChangeAmount,
		change.ChangePercent,
		nullableString(change.Reason),
		change.RecordedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting price change: %w", err)
	}

	return nil
}

// ListByEntity retrieves all price changes for one entity, oldest first.
// Chronological order is what the stats computation expects.
func (r *PriceHistoryRepository) ListByEntity(ctx context.Context, entityType models.PriceEntityType, entityID string) ([]*models.PriceChange, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM price_history
		WHERE entity_type = ? AND entity_id = ?
		ORDER BY recorded_at, id`, priceHistoryColumns)

	rows, err := r.db.QueryContext(ctx, query, string(entityType), entityID)
	if err != nil {
		return nil, fmt.Errorf("querying price history: %w", err)
	}
	defer rows.Close()

	return collectPriceChanges(rows)
}

// ListRecent retrieves the most recent price changes across all entities.
func (r *PriceHistoryRepository) ListRecent(ctx context.Context, limit int) ([]*models.PriceChange, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM price_history
		ORDER BY recorded_at DESC, id DESC
		LIMIT ?`, priceHistoryColumns)

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent price changes: %w", err)
	}
	defer rows.Close()

	return collectPriceChanges(rows)
}

// CountByEntity returns the number of recorded changes for one entity.
func (r *PriceHistoryRepository) CountByEntity(ctx context.Context, entityType models.PriceEntityType, entityID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM price_history WHERE entity_type = ? AND entity_id = ?",
		string(entityType), entityID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting price changes: %w", err)
	}
	return count, nil
}

func collectPriceChanges(rows *sql.Rows) ([]*models.PriceChange, error) {
	var changes []*models.PriceChange
	for rows.Next() {
		var change models.PriceChange
		var entityType string
		var reason sql.NullString
		var recordedStr string

		err := rows.Scan(
			&change.ID,
			&entityType,
			&change.EntityID,
			&change.OldValue,
			&change.NewValue,
			&change.ChangeAmount,
			&change.ChangePercent,
			&reason,
			&recordedStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning price change: %w", err)
		}

		change.EntityType = models.PriceEntityType(entityType)
		if reason.Valid {
			change.Reason = reason.String
		}
		change.RecordedAt, _ = time.Parse(time.RFC3339, recordedStr)

		changes = append(changes, &change)
	}

	return changes, rows.Err()
}
