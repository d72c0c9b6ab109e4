package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/crumbwork/crumbwork/internal/models"
)

// FixtureIngredient creates a test ingredient with sensible defaults.
func FixtureIngredient(overrides ...func(*models.Ingredient)) *models.Ingredient {
	id := uuid.New().String()
	now := time.Now().UTC()

	ingredient := &models.Ingredient{
		ID:              id,
		Name:            "Flour " + id[:8],
		BaseUnit:        "g",
		CostPerBaseUnit: 0.002,
		StockOnHand:     5000,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	for _, override := range overrides {
		override(ingredient)
	}

	return ingredient
}

// FixtureVolumeIngredient creates an ingredient measured by volume.
func FixtureVolumeIngredient(overrides ...func(*models.Ingredient)) *models.Ingredient {
	return FixtureIngredient(append([]func(*models.Ingredient){
		func(i *models.Ingredient) {
			i.Name = "Milk " + i.ID[:8]
			i.BaseUnit = "ml"
			i.CostPerBaseUnit = 0.0015
			i.StockOnHand = 2000
		},
	}, overrides...)...)
}

// FixtureCountIngredient creates an ingredient measured by count.
func FixtureCountIngredient(overrides ...func(*models.Ingredient)) *models.Ingredient {
	return FixtureIngredient(append([]func(*models.Ingredient){
		func(i *models.Ingredient) {
			i.Name = "Eggs " + i.ID[:8]
			i.BaseUnit = "unit"
			i.CostPerBaseUnit = 0.35
			i.StockOnHand = 60
		},
	}, overrides...)...)
}

// FixtureRecipe creates a test recipe with sensible defaults. Lines are
// not persisted automatically; attach them with FixtureRecipeLine.
func FixtureRecipe(overrides ...func(*models.Recipe)) *models.Recipe {
	id := uuid.New().String()
	now := time.Now().UTC()

	recipe := &models.Recipe{
		ID:          id,
		Name:        "Sourdough " + id[:8],
		Description: "Basic sourdough loaf",
		Servings:    4,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for _, override := range overrides {
		override(recipe)
	}

	return recipe
}

// FixtureRecipeLine creates a recipe line tying an ingredient to a recipe.
func FixtureRecipeLine(recipeID, ingredientID string, overrides ...func(*models.RecipeLine)) *models.RecipeLine {
	id := uuid.New().String()
	now := time.Now().UTC()

	line := &models.RecipeLine{
		ID:           id,
		RecipeID:     recipeID,
		IngredientID: ingredientID,
		Quantity:     500,
		Unit:         "g",
		CreatedAt:    now,
	}

	for _, override := range overrides {
		override(line)
	}

	return line
}

// FixtureProduct creates a test product with sensible defaults.
func FixtureProduct(overrides ...func(*models.Product)) *models.Product {
	id := uuid.New().String()
	now := time.Now().UTC()

	product := &models.Product{
		ID:             id,
		SKU:            "PRD-" + id[:5],
		Name:           "Loaf " + id[:8],
		BaseCost:       2.50,
		SuggestedPrice: 4.00,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	for _, override := range overrides {
		override(product)
	}

	return product
}

// FixtureLinkedProduct creates a product linked to a recipe.
func FixtureLinkedProduct(recipeID string, overrides ...func(*models.Product)) *models.Product {
	return FixtureProduct(append([]func(*models.Product){
		func(p *models.Product) {
			p.RecipeID = &recipeID
		},
	}, overrides...)...)
}

// FixturePurchase creates a test purchase with sensible defaults.
func FixturePurchase(ingredientID string, overrides ...func(*models.Purchase)) *models.Purchase {
	id := uuid.New().String()
	now := time.Now().UTC()

	purchase := &models.Purchase{
		ID:                 id,
		IngredientID:       ingredientID,
		Quantity:           1000,
		Unit:               "g",
		TotalPrice:         2.00,
		CalculatedUnitCost: 0.002,
		AffectsStock:       true,
		PurchasedAt:        now,
		CreatedAt:          now,
	}

	for _, override := range overrides {
		override(purchase)
	}

	return purchase
}

// FixturePriceChange creates a test price change record.
func FixturePriceChange(entityType models.PriceEntityType, entityID string, overrides ...func(*models.PriceChange)) *models.PriceChange {
	id := uuid.New().String()
	now := time.Now().UTC()

	change := &models.PriceChange{
		ID:            id,
		EntityType:    entityType,
		EntityID:      entityID,
		OldValue:      2.00,
		NewValue:      2.50,
		ChangeAmount:  0.50,
		ChangePercent: 25.0,
		Reason:        "purchase",
		RecordedAt:    now,
	}

	for _, override := range overrides {
		override(change)
	}

	return change
}

// StringPtr returns a pointer to a string value.
func StringPtr(s string) *string {
	return &s
}

// IntPtr returns a pointer to an int value.
func IntPtr(i int) *int {
	return &i
}

// Float64Ptr returns a pointer to a float64 value.
func Float64Ptr(f float64) *float64 {
	return &f
}

// TimePtr returns a pointer to a time value.
func TimePtr(t time.Time) *time.Time {
	return &t
}
