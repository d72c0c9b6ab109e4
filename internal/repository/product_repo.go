package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/crumbwork/crumbwork/internal/models"
)

// ProductRepository handles product data access.
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, sku, name, recipe_id, base_cost, suggested_price,
		image_path, created_at, updated_at`

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, tx *sql.Tx, product *models.Product) error {
	query := `
		INSERT INTO products (
			id, sku, name, recipe_id, base_cost, suggested_price,
			image_path, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := getExecer(r.db, tx).ExecContext(ctx, query,
		product.ID,
		product.SKU,
		product.Name,
		product.RecipeID,
		product.BaseCost,
		product.SuggestedPrice,
		product.ImagePath,
		product.CreatedAt.Format(time.RFC3339),
		product.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = ?`, productColumns)
	return scanProduct(r.db.QueryRowContext(ctx, query, id), id)
}

// GetBySKU retrieves a product by SKU.
func (r *ProductRepository) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE sku = ?`, productColumns)
	return scanProduct(r.db.QueryRowContext(ctx, query, sku), sku)
}

// Update modifies an existing product.
func (r *ProductRepository) Update(ctx context.Context, tx *sql.Tx, product *models.Product) error {
	query := `
		UPDATE products SET
			sku = ?, name = ?, recipe_id = ?, base_cost = ?, suggested_price = ?,
			image_path = ?, updated_at = ?
		WHERE id = ?`

	product.UpdatedAt = time.Now().UTC()

	result, err := getExecer(r.db, tx).ExecContext(ctx, query,
		product.SKU,
		product.Name,
		product.RecipeID,
		product.BaseCost,
		product.SuggestedPrice,
		product.ImagePath,
		product.UpdatedAt.Format(time.RFC3339),
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("product not found: %s", product.ID)
	}

	return nil
}

// UpdatePricing sets only the cached cost and price fields.
func (r *ProductRepository) UpdatePricing(ctx context.Context, tx *sql.Tx, id string, baseCost, suggestedPrice float64) error {
	query := `UPDATE products SET base_cost = ?, suggested_price = ?, updated_at = ? WHERE id = ?`

	result, err := getExecer(r.db, tx).ExecContext(ctx, query,
		baseCost,
		suggestedPrice,
		time.Now().UTC().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating product pricing: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("product not found: %s", id)
	}

	return nil
}

// List retrieves products with filtering and pagination.
func (r *ProductRepository) List(ctx context.Context, filter models.ProductFilter, page models.Pagination) (*models.ProductList, error) {
	var conditions []string
	var args []any

	if filter.Search != "" {
		conditions = append(conditions, "(name LIKE ? OR sku LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if filter.RecipeID != "" {
		conditions = append(conditions, "recipe_id = ?")
		args = append(args, filter.RecipeID)
	}
	if filter.OnlyLinked {
		conditions = append(conditions, "recipe_id IS NOT NULL")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting products: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		%s
		ORDER BY name
		LIMIT ? OFFSET ?`, productColumns, whereClause)

	args = append(args, page.Limit(), page.Offset())
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := scanProductRow(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}

	return &models.ProductList{
		Products:   products,
		Total:      total,
		Page:       page.Page,
		TotalPages: page.TotalPages(total),
	}, nil
}

// AllLinked retrieves every recipe-linked product without pagination.
// The batch cost refresh walks the full set.
func (r *ProductRepository) AllLinked(ctx context.Context) ([]*models.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE recipe_id IS NOT NULL ORDER BY name`, productColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying linked products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := scanProductRow(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

// GetByRecipe retrieves all products linked to a recipe.
func (r *ProductRepository) GetByRecipe(ctx context.Context, recipeID string) ([]*models.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE recipe_id = ? ORDER BY name`, productColumns)

	rows, err := r.db.QueryContext(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("querying products by recipe: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := scanProductRow(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

// MaxSKUSequence returns the highest numeric suffix among SKUs with the
// given prefix, so new SKUs continue the sequence after restart.
func (r *ProductRepository) MaxSKUSequence(ctx context.Context, prefix string) (int, error) {
	query := `SELECT sku FROM products WHERE sku LIKE ? ORDER BY sku DESC LIMIT 1`

	var lastSKU string
	err := r.db.QueryRowContext(ctx, query, prefix+"-%").Scan(&lastSKU)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("getting last SKU: %w", err)
	}

	var seq int
	if _, err := fmt.Sscanf(lastSKU, prefix+"-%05d", &seq); err != nil {
		return 0, fmt.Errorf("parsing SKU %q: %w", lastSKU, err)
	}

	return seq, nil
}

// Delete removes a product.
func (r *ProductRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	result, err := getExecer(r.db, tx).ExecContext(ctx,
		"DELETE FROM products WHERE id = ?", id,
	)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("product not found: %s", id)
	}

	return nil
}

func scanProduct(row *sql.Row, key string) (*models.Product, error) {
	var product models.Product
	var recipeID, imagePath sql.NullString
	var createdStr, updatedStr string

	err := row.Scan(
		&product.ID,
		&product.SKU,
		&product.Name,
		&recipeID,
		&product.BaseCost,
		&product.SuggestedPrice,
		&imagePath,
		&createdStr,
		&updatedStr,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product not found: %s", key)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning product: %w", err)
	}

	applyProductNullables(&product, recipeID, imagePath, createdStr, updatedStr)
	return &product, nil
}

func scanProductRow(rows *sql.Rows) (*models.Product, error) {
	var product models.Product
	var recipeID, imagePath sql.NullString
	var createdStr, updatedStr string

	err := rows.Scan(
		&product.ID,
		&product.SKU,
		&product.Name,
		&recipeID,
		&product.BaseCost,
		&product.SuggestedPrice,
		&imagePath,
		&createdStr,
		&updatedStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning product row: %w", err)
	}

	applyProductNullables(&product, recipeID, imagePath, createdStr, updatedStr)
	return &product, nil
}

func applyProductNullables(product *models.Product, recipeID, imagePath sql.NullString, createdStr, updatedStr string) {
	if recipeID.Valid {
		product.RecipeID = &recipeID.String
	}
	if imagePath.Valid {
		product.ImagePath = &imagePath.String
	}
	product.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	product.UpdatedAt, _ = time.Parse(time.RFC3339, updatedStr)
}
