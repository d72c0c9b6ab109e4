package repository

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crumbwork/crumbwork/internal/models"
	"github.com/crumbwork/crumbwork/internal/testutil"
)

func setupTestDB(t *testing.T) *testutil.TestDB {
	t.Helper()

	db := testutil.NewTestDB(t)

	// Get migrations path relative to this file
	migrationsDir := filepath.Join("..", "..", "internal", "database", "migrations")
	db.RunMigrations(t, migrationsDir)

	return db
}

func TestIngredientRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewIngredientRepository(db.DB)
	ctx := context.Background()

	t.Run("Create valid ingredient", func(t *testing.T) {
		ingredient := testutil.FixtureIngredient()

		if err := repo.Create(ctx, nil, ingredient); err != nil {
			t.Fatalf("failed to create ingredient: %v", err)
		}

		found, err := repo.GetByID(ctx, ingredient.ID)
		if err != nil {
			t.Fatalf("failed to get ingredient: %v", err)
		}

		if found.Name != ingredient.Name {
			t.Errorf("expected name %s, got %s", ingredient.Name, found.Name)
		}
		if found.CostPerBaseUnit != ingredient.CostPerBaseUnit {
			t.Errorf("expected cost %v, got %v", ingredient.CostPerBaseUnit, found.CostPerBaseUnit)
		}
	})

	t.Run("Create with transaction", func(t *testing.T) {
		ingredient := testutil.FixtureIngredient()

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			t.Fatalf("failed to begin transaction: %v", err)
		}
		defer tx.Rollback()

		if err := repo.Create(ctx, tx, ingredient); err != nil {
			t.Fatalf("failed to create ingredient: %v", err)
		}

		if err := tx.Commit(); err != nil {
			t.Fatalf("failed to commit transaction: %v", err)
		}

		if _, err := repo.GetByID(ctx, ingredient.ID); err != nil {
			t.Fatalf("failed to get ingredient: %v", err)
		}
	})

	t.Run("Duplicate name returns error", func(t *testing.T) {
		first := testutil.FixtureIngredient()
		if err := repo.Create(ctx, nil, first); err != nil {
			t.Fatalf("failed to create first ingredient: %v", err)
		}

		second := testutil.FixtureIngredient(func(i *models.Ingredient) {
			i.Name = first.Name
		})

		if err := repo.Create(ctx, nil, second); err == nil {
			t.Error("expected error for duplicate name, got nil")
		}
	})

	t.Run("Nullable fields round trip", func(t *testing.T) {
		ingredient := testutil.FixtureIngredient(func(i *models.Ingredient) {
			i.Supplier = testutil.StringPtr("Mill & Co")
			i.LeadTimeDays = testutil.IntPtr(3)
		})

		if err := repo.Create(ctx, nil, ingredient); err != nil {
			t.Fatalf("failed to create ingredient: %v", err)
		}

		found, err := repo.GetByID(ctx, ingredient.ID)
		if err != nil {
			t.Fatalf("failed to get ingredient: %v", err)
		}

		if found.Supplier == nil || *found.Supplier != "Mill & Co" {
			t.Errorf("expected supplier round-tripped, got %v", found.Supplier)
		}
		if found.LeadTimeDays == nil || *found.LeadTimeDays != 3 {
			t.Errorf("expected lead time round-tripped, got %v", found.LeadTimeDays)
		}
	})
}

func TestIngredientRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewIngredientRepository(db.DB)

	_, err := repo.GetByID(context.Background(), "ing-missing")
	if err == nil {
		t.Fatal("expected error for missing ingredient")
	}
	if !strings.Contains(err.Error(), "ing-missing") {
		t.Errorf("expected the lookup key in the error, got %q", err.Error())
	}
}

func TestIngredientRepository_UpdateCost(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewIngredientRepository(db.DB)
	ctx := context.Background()

	ingredient := testutil.FixtureIngredient()
	if err := repo.Create(ctx, nil, ingredient); err != nil {
		t.Fatalf("failed to create ingredient: %v", err)
	}

	t.Run("Updates only the cost", func(t *testing.T) {
		if err := repo.UpdateCost(ctx, nil, ingredient.ID, 0.005); err != nil {
			t.Fatalf("failed to update cost: %v", err)
		}

		found, err := repo.GetByID(ctx, ingredient.ID)
		if err != nil {
			t.Fatalf("failed to get ingredient: %v", err)
		}

		if found.CostPerBaseUnit != 0.005 {
			t.Errorf("expected cost 0.005, got %v", found.CostPerBaseUnit)
		}
		if found.StockOnHand != ingredient.StockOnHand {
			t.Errorf("stock should be untouched, got %v", found.StockOnHand)
		}
	})

	t.Run("Unknown ingredient returns error", func(t *testing.T) {
		if err := repo.UpdateCost(ctx, nil, "missing-id", 1.0); err == nil {
			t.Error("expected error for missing ingredient, got nil")
		}
	})
}

func TestIngredientRepository_AdjustStock(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewIngredientRepository(db.DB)
	ctx := context.Background()

	ingredient := testutil.FixtureIngredient(func(i *models.Ingredient) {
		i.StockOnHand = 100
	})
	if err := repo.Create(ctx, nil, ingredient); err != nil {
		t.Fatalf("failed to create ingredient: %v", err)
	}

	if err := repo.AdjustStock(ctx, nil, ingredient.ID, 250); err != nil {
		t.Fatalf("failed to adjust stock: %v", err)
	}
	if err := repo.AdjustStock(ctx, nil, ingredient.ID, -50); err != nil {
		t.Fatalf("failed to adjust stock: %v", err)
	}

	found, err := repo.GetByID(ctx, ingredient.ID)
	if err != nil {
		t.Fatalf("failed to get ingredient: %v", err)
	}

	if found.StockOnHand != 300 {
		t.Errorf("expected stock 300, got %v", found.StockOnHand)
	}
}

func TestIngredientRepository_List(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewIngredientRepository(db.DB)
	ctx := context.Background()

	names := []string{"Bread Flour", "Cake Flour", "Whole Milk"}
	units := []string{"g", "g", "ml"}
	for i, name := range names {
		ingredient := testutil.FixtureIngredient(func(ing *models.Ingredient) {
			ing.Name = name
			ing.BaseUnit = units[i]
		})
		if err := repo.Create(ctx, nil, ingredient); err != nil {
			t.Fatalf("failed to create ingredient: %v", err)
		}
	}

	t.Run("List all", func(t *testing.T) {
		list, err := repo.List(ctx, models.IngredientFilter{}, models.DefaultPagination())
		if err != nil {
			t.Fatalf("failed to list ingredients: %v", err)
		}
		if list.Total != 3 {
			t.Errorf("expected 3 ingredients, got %d", list.Total)
		}
	})

	t.Run("Filter by search term", func(t *testing.T) {
		list, err := repo.List(ctx, models.IngredientFilter{Search: "Flour"}, models.DefaultPagination())
		if err != nil {
			t.Fatalf("failed to list ingredients: %v", err)
		}
		if list.Total != 2 {
			t.Errorf("expected 2 matches, got %d", list.Total)
		}
	})

	t.Run("Filter by base unit", func(t *testing.T) {
		list, err := repo.List(ctx, models.IngredientFilter{BaseUnit: "ml"}, models.DefaultPagination())
		if err != nil {
			t.Fatalf("failed to list ingredients: %v", err)
		}
		if list.Total != 1 {
			t.Errorf("expected 1 match, got %d", list.Total)
		}
	})

	t.Run("Results ordered by name", func(t *testing.T) {
		list, err := repo.List(ctx, models.IngredientFilter{}, models.DefaultPagination())
		if err != nil {
			t.Fatalf("failed to list ingredients: %v", err)
		}
		if list.Ingredients[0].Name != "Bread Flour" {
			t.Errorf("expected Bread Flour first, got %s", list.Ingredients[0].Name)
		}
	})
}

func TestIngredientRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	ingredientRepo := NewIngredientRepository(db.DB)
	recipeRepo := NewRecipeRepository(db.DB)
	ctx := context.Background()

	t.Run("Delete unreferenced ingredient", func(t *testing.T) {
		ingredient := testutil.FixtureIngredient()
		if err := ingredientRepo.Create(ctx, nil, ingredient); err != nil {
			t.Fatalf("failed to create ingredient: %v", err)
		}

		referenced, err := ingredientRepo.IsReferenced(ctx, ingredient.ID)
		if err != nil {
			t.Fatalf("failed to check references: %v", err)
		}
		if referenced {
			t.Error("expected ingredient to be unreferenced")
		}

		if err := ingredientRepo.Delete(ctx, nil, ingredient.ID); err != nil {
			t.Fatalf("failed to delete ingredient: %v", err)
		}

		if _, err := ingredientRepo.GetByID(ctx, ingredient.ID); err == nil {
			t.Error("expected error getting deleted ingredient, got nil")
		}
	})

	t.Run("Referenced ingredient is detected", func(t *testing.T) {
		ingredient := testutil.FixtureIngredient()
		if err := ingredientRepo.Create(ctx, nil, ingredient); err != nil {
			t.Fatalf("failed to create ingredient: %v", err)
		}

		recipe := testutil.FixtureRecipe()
		recipe.Lines = []*models.RecipeLine{
			testutil.FixtureRecipeLine(recipe.ID, ingredient.ID),
		}
		if err := recipeRepo.Create(ctx, nil, recipe); err != nil {
			t.Fatalf("failed to create recipe: %v", err)
		}

		referenced, err := ingredientRepo.IsReferenced(ctx, ingredient.ID)
		if err != nil {
			t.Fatalf("failed to check references: %v", err)
		}
		if !referenced {
			t.Error("expected ingredient to be referenced")
		}
	})
}
