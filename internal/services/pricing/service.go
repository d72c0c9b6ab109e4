// Package pricing manages recipes, products, and the price history reads
// built on them. Product costs are cached, denormalized values: they are
// written when a product is created or explicitly refreshed and at no
// other time. An ingredient cost change therefore leaves products stale
// on purpose, until someone asks for a refresh.
package pricing

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/crumbwork/crumbwork/internal/cache"
	"github.com/crumbwork/crumbwork/internal/database"
	"github.com/crumbwork/crumbwork/internal/models"
	"github.com/crumbwork/crumbwork/internal/repository"
	"github.com/crumbwork/crumbwork/internal/services/costing"
	"github.com/crumbwork/crumbwork/internal/util"
)

// Options configures the pricing service.
type Options struct {
	// DefaultMarkupPercent derives a suggested price when no explicit
	// markup or preserved margin is available.
	DefaultMarkupPercent float64
	// SKUPrefix prefixes generated product SKUs.
	SKUPrefix string
	// CacheTTL bounds staleness of cached listings.
	CacheTTL time.Duration
}

// Service provides recipe, product, and price history operations.
type Service struct {
	db          *database.DB
	recipes     *repository.RecipeRepository
	products    *repository.ProductRepository
	history     *repository.PriceHistoryRepository
	cache       *cache.Cache
	engine      *costing.Engine
	idGenerator *util.IDGenerator
	skus        *util.SKUGenerator
	skuOnce     sync.Once
	skuErr      error
	opts        Options
}

// NewService creates a new pricing service. The cost engine runs under the
// fallback policy: a recipe with a mismatched line still gets a cost.
func NewService(db *database.DB, c *cache.Cache, opts Options) *Service {
	return &Service{
		db:          db,
		recipes:     repository.NewRecipeRepository(db.DB),
		products:    repository.NewProductRepository(db.DB),
		history:     repository.NewPriceHistoryRepository(db.DB),
		cache:       c,
		engine:      costing.NewEngine(costing.MismatchFallback),
		idGenerator: util.NewIDGenerator(),
		skus:        util.NewSKUGenerator(opts.SKUPrefix),
		opts:        opts,
	}
}

// ----------------------------------------------------------------------------
// Recipes
// ----------------------------------------------------------------------------

// CreateRecipe creates a recipe with its lines.
func (s *Service) CreateRecipe(ctx context.Context, input CreateRecipeInput) (*models.Recipe, error) {
	recipe, err := models.NewRecipe(s.idGenerator.NewID(), input.Name, input.Servings)
	if err != nil {
		return nil, err
	}
	recipe.Description = input.Description

	for _, lineInput := range input.Lines {
		line, err := models.NewRecipeLine(s.idGenerator.NewID(), recipe.ID,
			lineInput.IngredientID, lineInput.Quantity, lineInput.Unit)
		if err != nil {
			return nil, fmt.Errorf("line for ingredient %s: %w", lineInput.IngredientID, err)
		}
		line.Note = lineInput.Note
		recipe.Lines = append(recipe.Lines, line)
	}

	if err := s.recipes.Create(ctx, nil, recipe); err != nil {
		return nil, fmt.Errorf("creating recipe: %w", err)
	}

	s.cache.InvalidateFor(cache.MutationRecipeEdited)
	return recipe, nil
}

// GetRecipe retrieves a recipe with its lines and ingredients.
func (s *Service) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	return s.recipes.GetByID(ctx, id)
}

// ListRecipes retrieves recipes with filtering and pagination. Only the
// unfiltered default page is cached; the key does not encode pagination.
func (s *Service) ListRecipes(ctx context.Context, filter models.RecipeFilter, page models.Pagination) (*models.RecipeList, error) {
	cacheable := filter == (models.RecipeFilter{}) && page == models.DefaultPagination()
	if !cacheable {
		return s.recipes.List(ctx, filter, page)
	}

	value, err := s.cache.GetOrCompute(cache.KeyRecipes, s.opts.CacheTTL, func() (any, error) {
		return s.recipes.List(ctx, filter, page)
	})
	if err != nil {
		return nil, err
	}
	return value.(*models.RecipeList), nil
}

// UpdateRecipe modifies a recipe's fields and replaces its lines.
func (s *Service) UpdateRecipe(ctx context.Context, recipe *models.Recipe, lines []RecipeLineInput) error {
	newLines := make([]*models.RecipeLine, 0, len(lines))
	for _, lineInput := range lines {
		line, err := models.NewRecipeLine(s.idGenerator.NewID(), recipe.ID,
			lineInput.IngredientID, lineInput.Quantity, lineInput.Unit)
		if err != nil {
			return fmt.Errorf("line for ingredient %s: %w", lineInput.IngredientID, err)
		}
		line.Note = lineInput.Note
		newLines = append(newLines, line)
	}

	err := s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		if err := s.recipes.Update(ctx, tx, recipe); err != nil {
			return err
		}
		return s.recipes.ReplaceLines(ctx, tx, recipe.ID, newLines)
	})
	if err != nil {
		return fmt.Errorf("updating recipe: %w", err)
	}

	s.cache.InvalidateFor(cache.MutationRecipeEdited)
	return nil
}

// DeactivateRecipe soft-deletes a recipe. Linked products keep their
// cached costs; they just can no longer be refreshed against it.
func (s *Service) DeactivateRecipe(ctx context.Context, id string) error {
	if err := s.recipes.SetActive(ctx, nil, id, false); err != nil {
		return err
	}
	s.cache.InvalidateFor(cache.MutationRecipeEdited)
	return nil
}

// RestoreRecipe reverses a soft delete.
func (s *Service) RestoreRecipe(ctx context.Context, id string) error {
	if err := s.recipes.SetActive(ctx, nil, id, true); err != nil {
		return err
	}
	s.cache.InvalidateFor(cache.MutationRecipeEdited)
	return nil
}

// RecipeCost computes the live cost breakdown of a recipe from current
// ingredient costs.
func (s *Service) RecipeCost(ctx context.Context, recipeID string) (*costing.RecipeCost, error) {
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return s.engine.ComputeRecipeCost(recipe)
}

// ----------------------------------------------------------------------------
// Products
// ----------------------------------------------------------------------------

// CreateProduct creates a product. Linked products are costed from their
// recipe; unlinked ones carry the cost and price they were given.
func (s *Service) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	sku, err := s.nextSKU(ctx)
	if err != nil {
		return nil, err
	}

	baseCost := input.BaseCost
	suggestedPrice := input.SuggestedPrice
	var recipeID *string

	if input.RecipeID != "" {
		recipe, err := s.recipes.GetByID(ctx, input.RecipeID)
		if err != nil {
			return nil, fmt.Errorf("getting recipe: %w", err)
		}
		if !recipe.Active {
			return nil, ErrRecipeInactive
		}

		cost, err := s.engine.ComputeRecipeCost(recipe)
		if err != nil {
			return nil, fmt.Errorf("costing recipe: %w", err)
		}

		markup := s.opts.DefaultMarkupPercent
		if input.MarkupPercent != nil {
			markup = *input.MarkupPercent
		}

		baseCost = util.RoundCents(cost.PerServing)
		suggestedPrice = util.RoundCents(costing.SuggestedPrice(baseCost, markup))
		recipeID = &recipe.ID
	}

	product, err := models.NewProduct(s.idGenerator.NewID(), sku, input.Name, baseCost, suggestedPrice)
	if err != nil {
		return nil, err
	}
	product.RecipeID = recipeID
	product.ImagePath = input.ImagePath

	if err := s.products.Create(ctx, nil, product); err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}

	s.cache.InvalidateFor(cache.MutationProductEdited)
	return product, nil
}

// GetProduct retrieves a product by ID.
func (s *Service) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

// ListProducts retrieves products with filtering and pagination. Only the
// unfiltered default page is cached; the key does not encode pagination.
func (s *Service) ListProducts(ctx context.Context, filter models.ProductFilter, page models.Pagination) (*models.ProductList, error) {
	cacheable := filter == (models.ProductFilter{}) && page == models.DefaultPagination()
	if !cacheable {
		return s.products.List(ctx, filter, page)
	}

	value, err := s.cache.GetOrCompute(cache.KeyProducts, s.opts.CacheTTL, func() (any, error) {
		return s.products.List(ctx, filter, page)
	})
	if err != nil {
		return nil, err
	}
	return value.(*models.ProductList), nil
}

// RefreshProductCost recomputes a product's cost from its recipe and
// reprices it so the margin ratio survives the cost change. Writing the
// same numbers again is a no-op with no history row.
func (s *Service) RefreshProductCost(ctx context.Context, productID string) (*RefreshOutcome, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.HasRecipe() {
		return nil, ErrProductHasNoRecipe
	}

	recipe, err := s.recipes.GetByID(ctx, *product.RecipeID)
	if err != nil {
		return nil, fmt.Errorf("getting recipe: %w", err)
	}

	cost, err := s.engine.ComputeRecipeCost(recipe)
	if err != nil {
		return nil, fmt.Errorf("costing recipe: %w", err)
	}

	newCost := util.RoundCents(cost.PerServing)
	newPrice := util.RoundCents(costing.RepriceForNewCost(
		product.BaseCost, product.SuggestedPrice, newCost, s.opts.DefaultMarkupPercent))

	outcome := &RefreshOutcome{
		ProductID: product.ID,
		Name:      product.Name,
		OldCost:   product.BaseCost,
		NewCost:   newCost,
		NewPrice:  newPrice,
	}

	if util.NearlyEqual(product.BaseCost, newCost) && util.NearlyEqual(product.SuggestedPrice, newPrice) {
		return outcome, nil
	}

	oldPrice := product.SuggestedPrice
	if err := s.products.UpdatePricing(ctx, nil, product.ID, newCost, newPrice); err != nil {
		return nil, err
	}
	outcome.Changed = true

	if !util.NearlyEqual(oldPrice, newPrice) {
		s.recordPriceChange(ctx, product.ID, oldPrice, newPrice, "cost refresh")
	}
	s.cache.InvalidateFor(cache.MutationProductEdited)

	slog.Info("product cost refreshed",
		"product", product.Name,
		"old_cost", outcome.OldCost,
		"new_cost", newCost,
		"new_price", newPrice,
	)

	return outcome, nil
}

// RefreshAllProductCosts refreshes every recipe-linked product. One
// failure never stops the rest; the summary carries each outcome.
func (s *Service) RefreshAllProductCosts(ctx context.Context) (*RefreshSummary, error) {
	products, err := s.products.AllLinked(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	summary := &RefreshSummary{}
	for _, product := range products {
		outcome, err := s.RefreshProductCost(ctx, product.ID)
		if err != nil {
			summary.Outcomes = append(summary.Outcomes, RefreshOutcome{
				ProductID: product.ID,
				Name:      product.Name,
				Err:       err,
			})
			continue
		}
		summary.Outcomes = append(summary.Outcomes, *outcome)
	}

	slog.Info("product cost refresh finished",
		"refreshed", summary.Refreshed(),
		"failed", summary.Failed(),
		"total", len(summary.Outcomes),
	)

	return summary, nil
}

// SetProductPrice writes a manual suggested price. A no-op write leaves
// no history row.
func (s *Service) SetProductPrice(ctx context.Context, productID string, newPrice float64, reason string) error {
	if newPrice < 0 {
		return fmt.Errorf("price must be non-negative")
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	newPrice = util.RoundCents(newPrice)
	if util.NearlyEqual(product.SuggestedPrice, newPrice) {
		return nil
	}

	oldPrice := product.SuggestedPrice
	if err := s.products.UpdatePricing(ctx, nil, product.ID, product.BaseCost, newPrice); err != nil {
		return err
	}

	s.recordPriceChange(ctx, product.ID, oldPrice, newPrice, reason)
	s.cache.InvalidateFor(cache.MutationProductEdited)
	return nil
}

// ----------------------------------------------------------------------------
// Price history
// ----------------------------------------------------------------------------

// PriceHistory returns the full change log of one entity, oldest first.
func (s *Service) PriceHistory(ctx context.Context, entityType models.PriceEntityType, entityID string) ([]*models.PriceChange, error) {
	return s.history.ListByEntity(ctx, entityType, entityID)
}

// PriceStatsFor computes aggregate statistics over one entity's history.
func (s *Service) PriceStatsFor(ctx context.Context, entityType models.PriceEntityType, entityID string) (models.PriceStats, error) {
	entries, err := s.history.ListByEntity(ctx, entityType, entityID)
	if err != nil {
		return models.PriceStats{}, err
	}
	return models.ComputePriceStats(entries), nil
}

// RecentPriceChanges returns the latest changes across all entities.
func (s *Service) RecentPriceChanges(ctx context.Context, limit int) ([]*models.PriceChange, error) {
	return s.history.ListRecent(ctx, limit)
}

// recordPriceChange appends to the product price history. Failures are
// logged, not returned; the pricing write already committed.
func (s *Service) recordPriceChange(ctx context.Context, productID string, oldValue, newValue float64, reason string) {
	change, err := models.NewPriceChange(s.idGenerator.NewID(), models.PriceEntityProduct, productID, oldValue, newValue, reason)
	if err != nil {
		slog.Warn("building price change record", "product", productID, "error", err)
		return
	}
	if err := s.history.Create(ctx, nil, change); err != nil {
		slog.Warn("recording price change", "product", productID, "error", err)
	}
}

// nextSKU returns the next sequential SKU, seeding the generator from the
// database on first use.
func (s *Service) nextSKU(ctx context.Context) (string, error) {
	s.skuOnce.Do(func() {
		prefix := s.opts.SKUPrefix
		if prefix == "" {
			prefix = "PRD"
		}
		seq, err := s.products.MaxSKUSequence(ctx, prefix)
		if err != nil {
			s.skuErr = fmt.Errorf("seeding SKU sequence: %w", err)
			return
		}
		s.skus.SetLastSequence(seq)
	})
	if s.skuErr != nil {
		return "", s.skuErr
	}
	return s.skus.Next(), nil
}
