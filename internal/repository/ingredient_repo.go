// Package repository provides the data access layer for the bakery ledger.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/crumbwork/crumbwork/internal/models"
)

// execer abstracts over *sql.DB and *sql.Tx for write operations.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// getExecer returns the transaction when one is provided, the pool otherwise.
func getExecer(db *sql.DB, tx *sql.Tx) execer {
	if tx != nil {
		return tx
	}
	return db
}

// IngredientRepository handles ingredient data access.
type IngredientRepository struct {
	db *sql.DB
}

// NewIngredientRepository creates a new ingredient repository.
func NewIngredientRepository(db *sql.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

const ingredientColumns = `id, name, base_unit, cost_per_base_unit, stock_on_hand,
		supplier, lead_time_days, created_at, updated_at`

// Create inserts a new ingredient.
func (r *IngredientRepository) Create(ctx context.Context, tx *sql.Tx, ingredient *models.Ingredient) error {
	query := `
		INSERT INTO ingredients (
			id, name, base_unit, cost_per_base_unit, stock_on_hand,
			supplier, lead_time_days, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	ingredient.CreatedAt = now
	ingredient.UpdatedAt = now

	_, err := getExecer(r.db, tx).ExecContext(ctx, query,
		ingredient.ID,
		ingredient.Name,
		ingredient.BaseUnit,
		ingredient.CostPerBaseUnit,
		ingredient.StockOnHand,
		ingredient.Supplier,
		ingredient.LeadTimeDays,
		ingredient.CreatedAt.Format(time.RFC3339),
		ingredient.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting ingredient: %w", err)
	}

	return nil
}

// GetByID retrieves an ingredient by ID.
func (r *IngredientRepository) GetByID(ctx context.Context, id string) (*models.Ingredient, error) {
	query := fmt.Sprintf(`SELECT %s FROM ingredients WHERE id = ?`, ingredientColumns)
	return scanIngredient(r.db.QueryRowContext(ctx, query, id), id)
}

// GetByName retrieves an ingredient by its unique name.
func (r *IngredientRepository) GetByName(ctx context.Context, name string) (*models.Ingredient, error) {
	query := fmt.Sprintf(`SELECT %s FROM ingredients WHERE name = ?`, ingredientColumns)
	return scanIngredient(r.db.QueryRowContext(ctx, query, name), name)
}

// Update modifies an existing ingredient.
func (r *IngredientRepository) Update(ctx context.Context, tx *sql.Tx, ingredient *models.Ingredient) error {
	query := `
		UPDATE ingredients SET
			name = ?, base_unit = ?, cost_per_base_unit = ?, stock_on_hand = ?,
			supplier = ?, lead_time_days = ?, updated_at = ?
		WHERE id = ?`

	ingredient.UpdatedAt = time.Now().UTC()

	result, err := getExecer(r.db, tx).ExecContext(ctx, query,
		ingredient.Name,
		ingredient.BaseUnit,
		ingredient.CostPerBaseUnit,
		ingredient.StockOnHand,
		ingredient.Supplier,
		ingredient.LeadTimeDays,
		ingredient.UpdatedAt.Format(time.RFC3339),
		ingredient.ID,
	)
	if err != nil {
		return fmt.Errorf("updating ingredient: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("ingredient not found: %s", ingredient.ID)
	}

	return nil
}

// UpdateCost sets only the cost and the updated timestamp. Used by the
// purchase flow so concurrent stock adjustments are not overwritten.
func (r *IngredientRepository) UpdateCost(ctx context.Context, tx *sql.Tx, id string, costPerBaseUnit float64) error {
	query := `UPDATE ingredients SET cost_per_base_unit = ?, updated_at = ? WHERE id = ?`

	result, err := getExecer(r.db, tx).ExecContext(ctx, query,
		costPerBaseUnit,
		time.Now().UTC().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating ingredient cost: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("ingredient not found: %s", id)
	}

	return nil
}

// AdjustStock adds delta (which may be negative) to the stock on hand.
func (r *IngredientRepository) AdjustStock(ctx context.Context, tx *sql.Tx, id string, delta float64) error {
	query := `UPDATE ingredients SET stock_on_hand = stock_on_hand + ?, updated_at = ? WHERE id = ?`

	result, err := getExecer(r.db, tx).ExecContext(ctx, query,
		delta,
		time.Now().UTC().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("adjusting stock: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("ingredient not found: %s", id)
	}

	return nil
}

// List retrieves ingredients with filtering and pagination.
func (r *IngredientRepository) List(ctx context.Context, filter models.IngredientFilter, page models.Pagination) (*models.IngredientList, error) {
	var conditions []string
	var args []any

	if filter.Search != "" {
		conditions = append(conditions, "name LIKE ?")
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.BaseUnit != "" {
		conditions = append(conditions, "base_unit = ?")
		args = append(args, filter.BaseUnit)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM ingredients %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting ingredients: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM ingredients
		%s
		ORDER BY name
		LIMIT ? OFFSET ?`, ingredientColumns, whereClause)

	args = append(args, page.Limit(), page.Offset())
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []*models.Ingredient
	for rows.Next() {
		ingredient, err := scanIngredientRow(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ingredient)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ingredients: %w", err)
	}

	return &models.IngredientList{
		Ingredients: ingredients,
		Total:       total,
		Page:        page.Page,
		TotalPages:  page.TotalPages(total),
	}, nil
}

// All retrieves every ingredient, ordered by name. Used by the bulk price
// update flow, which operates on the whole catalog.
func (r *IngredientRepository) All(ctx context.Context) ([]*models.Ingredient, error) {
	query := fmt.Sprintf(`SELECT %s FROM ingredients ORDER BY name`, ingredientColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []*models.Ingredient
	for rows.Next() {
		ingredient, err := scanIngredientRow(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ingredient)
	}

	return ingredients, rows.Err()
}

// IsReferenced reports whether any recipe line uses the ingredient.
func (r *IngredientRepository) IsReferenced(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM recipe_lines WHERE ingredient_id = ?", id,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("counting recipe references: %w", err)
	}
	return count > 0, nil
}

// Delete removes an ingredient. Callers must check IsReferenced first;
// the foreign key constraint is the backstop.
func (r *IngredientRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	result, err := getExecer(r.db, tx).ExecContext(ctx,
		"DELETE FROM ingredients WHERE id = ?", id,
	)
	if err != nil {
		return fmt.Errorf("deleting ingredient: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("ingredient not found: %s", id)
	}

	return nil
}

// scanIngredient scans a single row into an Ingredient struct. The key is
// whatever the lookup used (ID or name) and only feeds the error message.
func scanIngredient(row *sql.Row, key string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	var supplier sql.NullString
	var leadTime sql.NullInt64
	var createdStr, updatedStr string

	err := row.Scan(
		&ingredient.ID,
		&ingredient.Name,
		&ingredient.BaseUnit,
		&ingredient.CostPerBaseUnit,
		&ingredient.StockOnHand,
		&supplier,
		&leadTime,
		&createdStr,
		&updatedStr,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("ingredient not found: %s", key)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning ingredient: %w", err)
	}

	applyIngredientNullables(&ingredient, supplier, leadTime, createdStr, updatedStr)
	return &ingredient, nil
}

// scanIngredientRow scans a row from a rows iterator.
func scanIngredientRow(rows *sql.Rows) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	var supplier sql.NullString
	var leadTime sql.NullInt64
	var createdStr, updatedStr string

	err := rows.Scan(
		&ingredient.ID,
		&ingredient.Name,
		&ingredient.BaseUnit,
		&ingredient.CostPerBaseUnit,
		&ingredient.StockOnHand,
		&supplier,
		&leadTime,
		&createdStr,
		&updatedStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning ingredient row: %w", err)
	}

	applyIngredientNullables(&ingredient, supplier, leadTime, createdStr, updatedStr)
	return &ingredient, nil
}

func applyIngredientNullables(ingredient *models.Ingredient, supplier sql.NullString, leadTime sql.NullInt64, createdStr, updatedStr string) {
	if supplier.Valid {
		ingredient.Supplier = &supplier.String
	}
	if leadTime.Valid {
		days := int(leadTime.Int64)
		ingredient.LeadTimeDays = &days
	}
	ingredient.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	ingredient.UpdatedAt, _ = time.Parse(time.RFC3339, updatedStr)
}
