package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/crumbwork/crumbwork/internal/models"
)

// RecipeRepository handles recipe and recipe-line data access.
type RecipeRepository struct {
	db *sql.DB
}

// NewRecipeRepository creates a new recipe repository.
func NewRecipeRepository(db *sql.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create inserts a new recipe and its lines.
func (r *RecipeRepository) Create(ctx context.Context, tx *sql.Tx, recipe *models.Recipe) error {
	query := `
		INSERT INTO recipes (id, name, description, servings, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	exec := getExecer(r.db, tx)
	_, err := exec.ExecContext(ctx, query,
		recipe.ID,
		recipe.Name,
		nullableString(recipe.Description),
		recipe.Servings,
		recipe.Active,
		recipe.CreatedAt.Format(time.RFC3339),
		recipe.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting recipe: %w", err)
	}

	for _, line := range recipe.Lines {
		line.RecipeID = recipe.ID
		if err := r.createLine(ctx, exec, line); err != nil {
			return err
		}
	}

	return nil
}

// AddLine inserts a single recipe line.
func (r *RecipeRepository) AddLine(ctx context.Context, tx *sql.Tx, line *models.RecipeLine) error {
	return r.createLine(ctx, getExecer(r.db, tx), line)
}

func (r *RecipeRepository) createLine(ctx context.Context, exec execer, line *models.RecipeLine) error {
	query := `
		INSERT INTO recipe_lines (id, recipe_id, ingredient_id, quantity, unit, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	line.CreatedAt = time.Now().UTC()

	_, err := exec.ExecContext(ctx, query,
		line.ID,
		line.RecipeID,
		line.IngredientID,
		line.Quantity,
		line.Unit,
		nullableString(line.Note),
		line.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting recipe line: %w", err)
	}

	return nil
}

// ReplaceLines deletes all lines of a recipe and inserts the given set.
func (r *RecipeRepository) ReplaceLines(ctx context.Context, tx *sql.Tx, recipeID string, lines []*models.RecipeLine) error {
	exec := getExecer(r.db, tx)

	if _, err := exec.ExecContext(ctx, "DELETE FROM recipe_lines WHERE recipe_id = ?", recipeID); err != nil {
		return fmt.Errorf("clearing recipe lines: %w", err)
	}

	for _, line := range lines {
		line.RecipeID = recipeID
		if err := r.createLine(ctx, exec, line); err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves a recipe with its lines and their ingredients joined.
func (r *RecipeRepository) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	query := `
		SELECT id, name, description, servings, active, created_at, updated_at
		FROM recipes
		WHERE id = ?`

	recipe, err := scanRecipe(r.db.QueryRowContext(ctx, query, id), id)
	if err != nil {
		return nil, err
	}

	lines, err := r.GetLines(ctx, id)
	if err != nil {
		return nil, err
	}
	recipe.Lines = lines

	return recipe, nil
}

// GetLines retrieves the lines of a recipe with each ingredient joined.
func (r *RecipeRepository) GetLines(ctx context.Context, recipeID string) ([]*models.RecipeLine, error) {
	query := `
		SELECT l.id, l.recipe_id, l.ingredient_id, l.quantity, l.unit, l.note, l.created_at,
			i.id, i.name, i.base_unit, i.cost_per_base_unit, i.stock_on_hand,
			i.supplier, i.lead_time_days, i.created_at, i.updated_at
		FROM recipe_lines l
		JOIN ingredients i ON i.id = l.ingredient_id
		WHERE l.recipe_id = ?
		ORDER BY l.created_at, l.id`

	rows, err := r.db.QueryContext(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("querying recipe lines: %w", err)
	}
	defer rows.Close()

	var lines []*models.RecipeLine
	for rows.Next() {
		var line models.RecipeLine
		var note sql.NullString
		var lineCreatedStr string
		var ingredient models.Ingredient
		var supplier sql.NullString
		var leadTime sql.NullInt64
		var ingCreatedStr, ingUpdatedStr string

		err := rows.Scan(
			&line.ID,
			&line.RecipeID,
			&line.IngredientID,
			&line.Quantity,
			&line.Unit,
			&note,
			&lineCreatedStr,
			&ingredient.ID,
			&ingredient.Name,
			&ingredient.BaseUnit,
			&ingredient.CostPerBaseUnit,
			&ingredient.StockOnHand,
			&supplier,
			&leadTime,
			&ingCreatedStr,
			&ingUpdatedStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning recipe line: %w", err)
		}

		if note.Valid {
			line.Note = note.String
		}
		line.CreatedAt, _ = time.Parse(time.RFC3339, lineCreatedStr)
		applyIngredientNullables(&ingredient, supplier, leadTime, ingCreatedStr, ingUpdatedStr)
		line.Ingredient = &ingredient

		lines = append(lines, &line)
	}

	return lines, rows.Err()
}

// Update modifies an existing recipe's own fields. Lines are managed
// separately via ReplaceLines.
func (r *RecipeRepository) Update(ctx context.Context, tx *sql.Tx, recipe *models.Recipe) error {
	query := `
		UPDATE recipes SET
			name = ?, description = ?, servings = ?, active = ?, updated_at = ?
		WHERE id = ?`

	recipe.UpdatedAt = time.Now().UTC()

	result, err := getExecer(r.db, tx).ExecContext(ctx, query,
		recipe.Name,
		nullableString(recipe.Description),
		recipe.Servings,
		recipe.Active,
		recipe.UpdatedAt.Format(time.RFC3339),
		recipe.ID,
	)
	if err != nil {
		return fmt.Errorf("updating recipe: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("recipe not found: %s", recipe.ID)
	}

	return nil
}

// SetActive soft-deletes or restores a recipe.
func (r *RecipeRepository) SetActive(ctx context.Context, tx *sql.Tx, id string, active bool) error {
	query := `UPDATE recipes SET active = ?, updated_at = ? WHERE id = ?`

	result, err := getExecer(r.db, tx).ExecContext(ctx, query,
		active,
		time.Now().UTC().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("setting recipe active flag: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("recipe not found: %s", id)
	}

	return nil
}

// List retrieves recipes with filtering and pagination. Lines are not
// joined; use GetByID for a full recipe.
func (r *RecipeRepository) List(ctx context.Context, filter models.RecipeFilter, page models.Pagination) (*models.RecipeList, error) {
	var conditions []string
	var args []any

	if !filter.IncludeHidden {
		conditions = append(conditions, "active = 1")
	}
	if filter.Search != "" {
		conditions = append(conditions, "name LIKE ?")
		args = append(args, "%"+filter.Search+"%")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM recipes %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting recipes: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, description, servings, active, created_at, updated_at
		FROM recipes
		%s
		ORDER BY name
		LIMIT ? OFFSET ?`, whereClause)

	args = append(args, page.Limit(), page.Offset())
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*models.Recipe
	for rows.Next() {
		recipe, err := scanRecipeRow(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recipes: %w", err)
	}

	return &models.RecipeList{
		Recipes:    recipes,
		Total:      total,
		Page:       page.Page,
		TotalPages: page.TotalPages(total),
	}, nil
}

// RecipesUsingIngredient returns the IDs of active recipes with at least
// one line referencing the ingredient.
func (r *RecipeRepository) RecipesUsingIngredient(ctx context.Context, ingredientID string) ([]string, error) {
	query := `
		SELECT DISTINCT r.id
		FROM recipes r
		JOIN recipe_lines l ON l.recipe_id = r.id
		WHERE l.ingredient_id = ? AND r.active = 1`

	rows, err := r.db.QueryContext(ctx, query, ingredientID)
	if err != nil {
		return nil, fmt.Errorf("querying recipes by ingredient: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning recipe id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func scanRecipe(row *sql.Row, id string) (*models.Recipe, error) {
	var recipe models.Recipe
	var description sql.NullString
	var createdStr, updatedStr string

	err := row.Scan(
		&recipe.ID,
		&recipe.Name,
		&description,
		&recipe.Servings,
		&recipe.Active,
		&createdStr,
		&updatedStr,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("recipe not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning recipe: %w", err)
	}

	if description.Valid {
		recipe.Description = description.String
	}
	recipe.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	recipe.UpdatedAt, _ = time.Parse(time.RFC3339, updatedStr)

	return &recipe, nil
}

func scanRecipeRow(rows *sql.Rows) (*models.Recipe, error) {
	var recipe models.Recipe
	var description sql.NullString
	var createdStr, updatedStr string

	err := rows.Scan(
		&recipe.ID,
		&recipe.Name,
		&description,
		&recipe.Servings,
		&recipe.Active,
		&createdStr,
		&updatedStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning recipe row: %w", err)
	}

	if description.Valid {
		recipe.Description = description.String
	}
	recipe.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	recipe.UpdatedAt, _ = time.Parse(time.RFC3339, updatedStr)

	return &recipe, nil
}

// nullableString converts an empty string to SQL NULL.
func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
