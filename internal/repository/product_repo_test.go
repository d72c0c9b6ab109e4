package repository

import (
	"context"
	"testing"

	"github.com/crumbwork/crumbwork/internal/models"
	"github.com/crumbwork/crumbwork/internal/testutil"
)

func TestProductRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	productRepo := NewProductRepository(db.DB)
	recipeRepo := NewRecipeRepository(db.DB)
	ctx := context.Background()

	t.Run("Create unlinked product", func(t *testing.T) {
		product := testutil.FixtureProduct()

		if err := productRepo.Create(ctx, nil, product); err != nil {
			t.Fatalf("failed to create product: %v", err)
		}

		found, err := productRepo.GetByID(ctx, product.ID)
		if err != nil {
			t.Fatalf("failed to get product: %v", err)
		}

		if found.SKU != product.SKU {
			t.Errorf("expected SKU %s, got %s", product.SKU, found.SKU)
		}
		if found.RecipeID != nil {
			t.Errorf("expected no recipe link, got %v", *found.RecipeID)
		}
	})

	t.Run("Create linked product", func(t *testing.T) {
		recipe := testutil.FixtureRecipe()
		if err := recipeRepo.Create(ctx, nil, recipe); err != nil {
			t.Fatalf("failed to create recipe: %v", err)
		}

		product := testutil.FixtureLinkedProduct(recipe.ID)
		if err := productRepo.Create(ctx, nil, product); err != nil {
			t.Fatalf("failed to create product: %v", err)
		}

		found, err := productRepo.GetBySKU(ctx, product.SKU)
		if err != nil {
			t.Fatalf("failed to get product by SKU: %v", err)
		}
		if found.RecipeID == nil || *found.RecipeID != recipe.ID {
			t.Errorf("expected recipe link %s, got %v", recipe.ID, found.RecipeID)
		}
	})

	t.Run("Duplicate SKU returns error", func(t *testing.T) {
		first := testutil.FixtureProduct()
		if err := productRepo.Create(ctx, nil, first); err != nil {
			t.Fatalf("failed to create first product: %v", err)
		}

		second := testutil.FixtureProduct(func(p *models.Product) {
			p.SKU = first.SKU
		})
		if err := productRepo.Create(ctx, nil, second); err == nil {
			t.Error("expected error for duplicate SKU, got nil")
		}
	})
}

func TestProductRepository_UpdatePricing(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	productRepo := NewProductRepository(db.DB)
	ctx := context.Background()

	product := testutil.FixtureProduct(func(p *models.Product) {
		p.BaseCost = 2.00
		p.SuggestedPrice = 3.20
	})
	if err := productRepo.Create(ctx, nil, product); err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	if err := productRepo.UpdatePricing(ctx, nil, product.ID, 2.40, 3.84); err != nil {
		t.Fatalf("failed to update pricing: %v", err)
	}

	found, err := productRepo.GetByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("failed to get product: %v", err)
	}

	if found.BaseCost != 2.40 {
		t.Errorf("expected base cost 2.40, got %v", found.BaseCost)
	}
	if found.SuggestedPrice != 3.84 {
		t.Errorf("expected suggested price 3.84, got %v", found.SuggestedPrice)
	}
	if found.Name != product.Name {
		t.Errorf("name should be untouched, got %s", found.Name)
	}
}

func TestProductRepository_GetByRecipe(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	productRepo := NewProductRepository(db.DB)
	recipeRepo := NewRecipeRepository(db.DB)
	ctx := context.Background()

	recipe := testutil.FixtureRecipe()
	if err := recipeRepo.Create(ctx, nil, recipe); err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}

	for range 2 {
		product := testutil.FixtureLinkedProduct(recipe.ID)
		if err := productRepo.Create(ctx, nil, product); err != nil {
			t.Fatalf("failed to create product: %v", err)
		}
	}
	unlinked := testutil.FixtureProduct()
	if err := productRepo.Create(ctx, nil, unlinked); err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	products, err := productRepo.GetByRecipe(ctx, recipe.ID)
	if err != nil {
		t.Fatalf("failed to get products by recipe: %v", err)
	}

	if len(products) != 2 {
		t.Errorf("expected 2 linked products, got %d", len(products))
	}
}

func TestProductRepository_MaxSKUSequence(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	productRepo := NewProductRepository(db.DB)
	ctx := context.Background()

	t.Run("Empty table returns zero", func(t *testing.T) {
		seq, err := productRepo.MaxSKUSequence(ctx, "PRD")
		if err != nil {
			t.Fatalf("failed to get max SKU sequence: %v", err)
		}
		if seq != 0 {
			t.Errorf("expected 0, got %d", seq)
		}
	})

	t.Run("Returns highest suffix", func(t *testing.T) {
		for _, sku := range []string{"PRD-00001", "PRD-00007", "PRD-00003"} {
			product := testutil.FixtureProduct(func(p *models.Product) {
				p.SKU = sku
			})
			if err := productRepo.Create(ctx, nil, product); err != nil {
				t.Fatalf("failed to create product: %v", err)
			}
		}

		seq, err := productRepo.MaxSKUSequence(ctx, "PRD")
		if err != nil {
			t.Fatalf("failed to get max SKU sequence: %v", err)
		}
		if seq != 7 {
			t.Errorf("expected 7, got %d", seq)
		}
	})
}

func TestProductRepository_List(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	productRepo := NewProductRepository(db.DB)
	recipeRepo := NewRecipeRepository(db.DB)
	ctx := context.Background()

	recipe := testutil.FixtureRecipe()
	if err := recipeRepo.Create(ctx, nil, recipe); err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}

	linked := testutil.FixtureLinkedProduct(recipe.ID, func(p *models.Product) {
		p.Name = "Country Loaf"
	})
	unlinked := testutil.FixtureProduct(func(p *models.Product) {
		p.Name = "Gift Card"
	})
	for _, p := range []*models.Product{linked, unlinked} {
		if err := productRepo.Create(ctx, nil, p); err != nil {
			t.Fatalf("failed to create product: %v", err)
		}
	}

	t.Run("OnlyLinked filter", func(t *testing.T) {
		list, err := productRepo.List(ctx, models.ProductFilter{OnlyLinked: true}, models.DefaultPagination())
		if err != nil {
			t.Fatalf("failed to list products: %v", err)
		}
		if list.Total != 1 {
			t.Errorf("expected 1 linked product, got %d", list.Total)
		}
	})

	t.Run("Search matches name", func(t *testing.T) {
		list, err := productRepo.List(ctx, models.ProductFilter{Search: "Loaf"}, models.DefaultPagination())
		if err != nil {
			t.Fatalf("failed to list products: %v", err)
		}
		if list.Total != 1 {
			t.Errorf("expected 1 match, got %d", list.Total)
		}
	})
}
