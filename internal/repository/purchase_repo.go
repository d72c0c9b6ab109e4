package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/crumbwork/crumbwork/internal/models"
)

// PurchaseRepository handles purchase data access. Purchases are an
// append-only log; there is no update.
type PurchaseRepository struct {
	db *sql.DB
}

// NewPurchaseRepository creates a new purchase repository.
func NewPurchaseRepository(db *sql.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

const purchaseColumns = `id, ingredient_id, quantity, unit, total_price,
		calculated_unit_cost, affects_stock, supplier, note, purchased_at, created_at`

// Create inserts a new purchase.
func (r *PurchaseRepository) Create(ctx context.Context, tx *sql.Tx, purchase *models.Purchase) error {
	query := `
		INSERT INTO purchases (
			id, ingredient_id, quantity, unit, total_price,
			calculated_unit_cost, affects_stock, supplier, note, purchased_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	purchase.CreatedAt = time.Now().UTC()
	if purchase.PurchasedAt.IsZero() {
		purchase.PurchasedAt = purchase.CreatedAt
	}

	_, err := getExecer(r.db, tx).ExecContext(ctx, query,
		purchase.ID,
		purchase.IngredientID,
		purchase.Quantity,
		purchase.Unit,
		purchase.TotalPrice,
		purchase.CalculatedUnitCost,
		purchase.AffectsStock,
		purchase.Supplier,
		nullableString(purchase.Note),
		purchase.PurchasedAt.Format(time.RFC3339),
		purchase.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting purchase: %w", err)
	}

	return nil
}

// GetByID retrieves a purchase by ID.
func (r *PurchaseRepository) GetByID(ctx context.Context, id string) (*models.Purchase, error) {
	query := fmt.Sprintf(`SELECT %s FROM purchases WHERE id = ?`, purchaseColumns)

	row := r.db.QueryRowContext(ctx, query, id)
	purchase, err := scanPurchaseFrom(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("purchase not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning purchase: %w", err)
	}

	return purchase, nil
}

// List retrieves purchases with filtering and pagination, newest first.
func (r *PurchaseRepository) List(ctx context.Context, filter models.PurchaseFilter, page models.Pagination) (*models.PurchaseList, error) {
	var conditions []string
	var args []any

	if filter.IngredientID != "" {
		conditions = append(conditions, "ingredient_id = ?")
		args = append(args, filter.IngredientID)
	}
	if filter.Since != nil {
		conditions = append(conditions, "purchased_at >= ?")
		args = append(args, filter.Since.Format(time.RFC3339))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM purchases %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting purchases: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM purchases
		%s
		ORDER BY purchased_at DESC, created_at DESC
		LIMIT ? OFFSET ?`, purchaseColumns, whereClause)

	args = append(args, page.Limit(), page.Offset())
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying purchases: %w", err)
	}
	defer rows.Close()

	var purchases []*models.Purchase
	for rows.Next() {
		purchase, err := scanPurchaseFrom(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning purchase row: %w", err)
		}
		purchases = append(purchases, purchase)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating purchases: %w", err)
	}

	return &models.PurchaseList{
		Purchases:  purchases,
		Total:      total,
		Page:       page.Page,
		TotalPages: page.TotalPages(total),
	}, nil
}

// LatestForIngredient returns the most recent purchase of an ingredient,
// or nil when none exists.
func (r *PurchaseRepository) LatestForIngredient(ctx context.Context, ingredientID string) (*models.Purchase, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM purchases
		WHERE ingredient_id = ?
		ORDER BY purchased_at DESC, created_at DESC
		LIMIT 1`, purchaseColumns)

	row := r.db.QueryRowContext(ctx, query, ingredientID)
	purchase, err := scanPurchaseFrom(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning purchase: %w", err)
	}

	return purchase, nil
}

// scanPurchaseFrom scans a purchase using the given Scan function, which
// lets *sql.Row and *sql.Rows share one implementation.
func scanPurchaseFrom(scan func(dest ...any) error) (*models.Purchase, error) {
	var purchase models.Purchase
	var supplier, note sql.NullString
	var purchasedStr, createdStr string

	err := scan(
		&purchase.ID,
		&purchase.IngredientID,
		&purchase.Quantity,
		&purchase.Unit,
		&purchase.TotalPrice,
		&purchase.CalculatedUnitCost,
		&purchase.AffectsStock,
		&supplier,
		&note,
		&purchasedStr,
		&createdStr,
	)
	if err != nil {
		return nil, err
	}

	if supplier.Valid {
		purchase.Supplier = &supplier.String
	}
	if note.Valid {
		purchase.Note = note.String
	}
	purchase.PurchasedAt, _ = time.Parse(time.RFC3339, purchasedStr)
	purchase.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)

	return &purchase, nil
}
