// Package inventory manages ingredients, purchases, and the cost cascade
// that purchases trigger. A purchase is the only routine way an
// ingredient's cost of record changes: the latest purchase always wins,
// with no averaging against earlier ones.
package inventory

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

// Options configures the inventory service.
type Options struct {
	// MaxBulkIncreasePercent is the upper bound for bulk price updates.
	MaxBulkIncreasePercent float64
	// CacheTTL bounds staleness of cached listings.
	CacheTTL time.Duration
}

// Service provides ingredient and purchase operations.
type Service struct {
	db          *database.DB
	ingredients *repository.IngredientRepository
	purchases   *repository.PurchaseRepository
	history     *repository.PriceHistoryRepository
	cache       *cache.Cache
	engine      *costing.Engine
	idGenerator *util.IDGenerator
	opts        Options
}

// NewService creates a new inventory service. The cost engine runs under
// the reject policy: purchases never fall back on a unit mismatch.
func NewService(db *database.DB, c *cache.Cache, opts Options) *Service {
	return &Service{
		db:          db,
		ingredients: repository.NewIngredientRepository(db.DB),
		purchases:   repository.NewPurchaseRepository(db.DB),
		history:     repository.NewPriceHistoryRepository(db.DB),
		cache:       c,
		engine:      costing.NewEngine(costing.MismatchReject),
		idGenerator: util.NewIDGenerator(),
		opts:        opts,
	}
}

// CreateIngredient creates an ingredient and, when an opening purchase is
// provided, registers it immediately. The two steps are intentionally not
// one transaction: if the purchase fails the ingredient still exists, and
// the returned error says the purchase must be retried separately.
func (s *Service) CreateIngredient(ctx context.Context, input CreateIngredientInput) (*models.Ingredient, error) {
	ingredient, err := models.NewIngredient(s.idGenerator.NewID(), input.Name, input.BaseUnit, input.CostPerBaseUnit)
	if err != nil {
		return nil, err
	}
	ingredient.StockOnHand = input.StockOnHand
	ingredient.Supplier = input.Supplier
	ingredient.LeadTimeDays = input.LeadTimeDays

	if err := s.ingredients.Create(ctx, nil, ingredient); err != nil {
		return nil, fmt.Errorf("creating ingredient: %w", err)
	}

	s.cache.InvalidateFor(cache.MutationIngredientEdited)

	if input.OpeningPurchase != nil {
		opening := *input.OpeningPurchase
		opening.IngredientID = ingredient.ID
		if _, err := s.RegisterPurchase(ctx, opening); err != nil {
			return ingredient, fmt.Errorf("ingredient created, but opening purchase failed: %w", err)
		}
		// Re-read so the caller sees the cost the purchase set
		refreshed, err := s.ingredients.GetByID(ctx, ingredient.ID)
		if err == nil {
			ingredient = refreshed
		}
	}

	return ingredient, nil
}

// GetIngredient retrieves an ingredient by ID.
func (s *Service) GetIngredient(ctx context.Context, id string) (*models.Ingredient, error) {
	return s.ingredients.GetByID(ctx, id)
}

// ListIngredients retrieves ingredients with filtering and pagination.
// Only the unfiltered default page is served from the cache; the cache key
// does not encode pagination, so any other page shape goes to the database.
func (s *Service) ListIngredients(ctx context.Context, filter models.IngredientFilter, page models.Pagination) (*models.IngredientList, error) {
	cacheable := filter == (models.IngredientFilter{}) && page == models.DefaultPagination()

	if !cacheable {
		return s.ingredients.List(ctx, filter, page)
	}

	value, err := s.cache.GetOrCompute(cache.KeyIngredients, s.opts.CacheTTL, func() (any, error) {
		return s.ingredients.List(ctx, filter, page)
	})
	if err != nil {
		return nil, err
	}
	return value.(*models.IngredientList), nil
}

// RegisterPurchase records a purchase and cascades its derived unit cost
// into the ingredient. The purchase row, the cost overwrite, and the stock
// increment commit atomically; the history append and cache invalidation
// run after the commit and only warn on failure, since the money already
// moved and the caches self-heal by expiry.
func (s *Service) RegisterPurchase(ctx context.Context, input PurchaseInput) (*models.Purchase, error) {
	if input.Quantity <= 0 {
		return nil, ErrZeroQuantity
	}

	purchase, err := models.NewPurchase(s.idGenerator.NewID(), input.IngredientID, input.Quantity, input.Unit, input.TotalPrice)
	if err != nil {
		return nil, err
	}
	purchase.AffectsStock = input.AffectsStock
	purchase.Supplier = input.Supplier
	purchase.Note = input.Note
	if !input.PurchasedAt.IsZero() {
		purchase.PurchasedAt = input.PurchasedAt
	}

	ingredient, err := s.ingredients.GetByID(ctx, input.IngredientID)
	if err != nil {
		return nil, fmt.Errorf("getting ingredient: %w", err)
	}

	// Reject policy: a purchase in an unconvertible unit never writes a cost
	baseQty, _, err := s.engine.ConvertToBase(input.Quantity, input.Unit, ingredient)
	if err != nil {
		return nil, err
	}

	newCost := input.TotalPrice / baseQty
	purchase.CalculatedUnitCost = newCost

	oldCost := ingredient.CostPerBaseUnit
	costChanged := !util.NearlyEqual(oldCost, newCost)

	err = s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		if err := s.purchases.Create(ctx, tx, purchase); err != nil {
			return err
		}
		if costChanged {
			if err := s.ingredients.UpdateCost(ctx, tx, ingredient.ID, newCost); err != nil {
				return err
			}
		}
		if purchase.AffectsStock {
			if err := s.ingredients.AdjustStock(ctx, tx, ingredient.ID, baseQty); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("registering purchase: %w", err)
	}

	if costChanged {
		s.recordPriceChange(ctx, models.PriceEntityIngredient, ingredient.ID, oldCost, newCost,
			fmt.Sprintf("purchase %s", purchase.ID))
		s.cache.InvalidateFor(cache.MutationIngredientCostChange)
	}
	s.cache.InvalidateFor(cache.MutationPurchaseRegistered)

	slog.Info("purchase registered",
		"ingredient", ingredient.Name,
		"quantity", input.Quantity,
		"unit", input.Unit,
		"unit_cost", newCost,
		"cost_changed", costChanged,
	)

	return purchase, nil
}

// UpdateIngredientCost sets an ingredient's cost directly, outside the
// purchase flow. Writing the same cost again is a no-op: no history row,
// no invalidation.
func (s *Service) UpdateIngredientCost(ctx context.Context, id string, newCost float64, reason string) error {
	if newCost < 0 {
		return fmt.Errorf("cost must be non-negative")
	}

	ingredient, err := s.ingredients.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("getting ingredient: %w", err)
	}

	if util.NearlyEqual(ingredient.CostPerBaseUnit, newCost) {
		return nil
	}

	oldCost := ingredient.CostPerBaseUnit
	if err := s.ingredients.UpdateCost(ctx, nil, id, newCost); err != nil {
		return err
	}

	s.recordPriceChange(ctx, models.PriceEntityIngredient, id, oldCost, newCost, reason)
	s.cache.InvalidateFor(cache.MutationIngredientCostChange)

	return nil
}

// BulkUpdatePrices raises every ingredient's cost by the given percentage.
// The percentage must be positive and no greater than the configured bound.
// Each ingredient updates independently and concurrently; one failure never
// stops the rest, and the result carries a per-ingredient outcome.
func (s *Service) BulkUpdatePrices(ctx context.Context, percent float64) (*BulkUpdateResult, error) {
	if percent <= 0 || percent > s.opts.MaxBulkIncreasePercent {
		return nil, fmt.Errorf("%w: %.2f not in (0, %.2f]", ErrPercentOutOfRange, percent, s.opts.MaxBulkIncreasePercent)
	}

	ingredients, err := s.ingredients.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing ingredients: %w", err)
	}

	result := &BulkUpdateResult{
		Percent: percent,
		Items:   make([]BulkItemResult, len(ingredients)),
	}

	var wg sync.WaitGroup
	for i, ingredient := range ingredients {
		wg.Add(1)
		go func() {
			defer wg.Done()

			newCost := util.ApplyPercent(ingredient.CostPerBaseUnit, percent)
			item := BulkItemResult{
				IngredientID: ingredient.ID,
				Name:         ingredient.Name,
				OldCost:      ingredient.CostPerBaseUnit,
				NewCost:      newCost,
			}
			item.Err = s.UpdateIngredientCost(ctx, ingredient.ID,
				newCost, fmt.Sprintf("bulk update %+.2f%%", percent))
			result.Items[i] = item
		}()
	}
	wg.Wait()

	slog.Info("bulk price update finished",
		"percent", percent,
		"updated", result.Updated(),
		"failed", result.Failed(),
	)

	return result, nil
}

// UpdateIngredient modifies an ingredient's descriptive fields. Cost and
// stock are managed by their dedicated flows and are not touched here.
func (s *Service) UpdateIngredient(ctx context.Context, ingredient *models.Ingredient) error {
	current, err := s.ingredients.GetByID(ctx, ingredient.ID)
	if err != nil {
		return fmt.Errorf("getting ingredient: %w", err)
	}
	ingredient.CostPerBaseUnit = current.CostPerBaseUnit
	ingredient.StockOnHand = current.StockOnHand

	if err := s.ingredients.Update(ctx, nil, ingredient); err != nil {
		return err
	}

	s.cache.InvalidateFor(cache.MutationIngredientEdited)
	return nil
}

// AdjustStock applies a manual stock correction in base units.
func (s *Service) AdjustStock(ctx context.Context, id string, adjustment StockAdjustment) error {
	ingredient, err := s.ingredients.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("getting ingredient: %w", err)
	}

	if ingredient.StockOnHand+adjustment.Delta < 0 {
		return ErrInsufficientStock
	}

	if err := s.ingredients.AdjustStock(ctx, nil, id, adjustment.Delta); err != nil {
		return err
	}

	s.cache.InvalidateFor(cache.MutationIngredientEdited)

	slog.Info("stock adjusted",
		"ingredient", ingredient.Name,
		"delta", adjustment.Delta,
		"reason", adjustment.Reason,
	)

	return nil
}

// DeleteIngredient removes an ingredient that no recipe references.
func (s *Service) DeleteIngredient(ctx context.Context, id string) error {
	referenced, err := s.ingredients.IsReferenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return ErrIngredientInUse
	}

	if err := s.ingredients.Delete(ctx, nil, id); err != nil {
		return err
	}

	s.cache.InvalidateFor(cache.MutationIngredientEdited)
	return nil
}

// ListPurchases retrieves purchases with filtering and pagination.
func (s *Service) ListPurchases(ctx context.Context, filter models.PurchaseFilter, page models.Pagination) (*models.PurchaseList, error) {
	return s.purchases.List(ctx, filter, page)
}

// recordPriceChange appends to the price history. Failures are logged,
// not returned: the cost write already committed and the history is a
// derived record, not the source of truth.
func (s *Service) recordPriceChange(ctx context.Context, entityType models.PriceEntityType, entityID string, oldValue, newValue float64, reason string) {
	change, err := models.NewPriceChange(s.idGenerator.NewID(), entityType, entityID, oldValue, newValue, reason)
	if err != nil {
		slog.Warn("building price change record", "entity", entityID, "error", err)
		return
	}
	if err := s.history.Create(ctx, nil, change); err != nil {
		slog.Warn("recording price change", "entity", entityID, "error", err)
	}
}
