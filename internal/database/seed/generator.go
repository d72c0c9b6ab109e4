package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/crumbwork/crumbwork/internal/units"
	"github.com/crumbwork/crumbwork/internal/util"
)

// Config configures the seed data generator.
type Config struct {
	RandomSeed             int64
	HistoryDays            int // how far back purchase history reaches
	PurchasesPerIngredient int
	SKUPrefix              string
}

// DefaultConfig returns a default seed configuration.
func DefaultConfig() Config {
	return Config{
		RandomSeed:             1889,
		HistoryDays:            120,
		PurchasesPerIngredient: 3,
		SKUPrefix:              "PRD",
	}
}

// seededIngredient tracks an inserted ingredient so later stages can
// reference it by catalog name.
type seededIngredient struct {
	id       string
	baseUnit string
	cost     float64 // final cost per base unit after the purchase history
}

// Generator generates seed data for a bakery database.
type Generator struct {
	db     *sql.DB
	cfg    Config
	rng    *rand.Rand
	idGen  *util.IDGenerator
	skuGen *util.SKUGenerator

	// Tracking
	ingredients   map[string]seededIngredient
	recipeIDs     map[string]string
	purchaseCount int
	productCount  int
}

// NewGenerator creates a new seed data generator.
func NewGenerator(db *sql.DB, cfg Config) *Generator {
	return &Generator{
		db:          db,
		cfg:         cfg,
		rng:         rand.New(rand.NewSource(cfg.RandomSeed)),
		idGen:       util.NewIDGenerator(),
		skuGen:      util.NewSKUGenerator(cfg.SKUPrefix),
		ingredients: make(map[string]seededIngredient),
		recipeIDs:   make(map[string]string),
	}
}

// Generate creates all seed data in one transaction.
func (g *Generator) Generate(ctx context.Context) error {
	slog.Info("starting seed data generation",
		"ingredients", len(IngredientCatalog),
		"recipes", len(RecipeCatalog),
		"products", len(ProductCatalog),
	)

	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if err := g.generateIngredients(ctx, tx); err != nil {
		return fmt.Errorf("generating ingredients: %w", err)
	}

	if err := g.generatePurchases(ctx, tx); err != nil {
		return fmt.Errorf("generating purchases: %w", err)
	}

	if err := g.generateRecipes(ctx, tx); err != nil {
		return fmt.Errorf("generating recipes: %w", err)
	}

	if err := g.generateProducts(ctx, tx); err != nil {
		return fmt.Errorf("generating products: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	slog.Info("seed data generation complete",
		"ingredients", len(g.ingredients),
		"purchases", g.purchaseCount,
		"recipes", len(g.recipeIDs),
		"products", g.productCount,
	)

	return nil
}

func (g *Generator) generateIngredients(ctx context.Context, tx *sql.Tx) error {
	slog.Debug("generating ingredients")

	query := `INSERT INTO ingredients (
		id, name, base_unit, cost_per_base_unit, stock_on_hand,
		supplier, lead_time_days, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC().Format(time.RFC3339)

	for _, item := range IngredientCatalog {
		id := g.idGen.NewID()
		supplier := Suppliers[g.rng.Intn(len(Suppliers))]

		// The final cost drifts a little from the catalog value; the
		// purchase history generated next walks toward it.
		cost := g.driftedCost(item.UnitCost)

		_, err := tx.ExecContext(ctx, query,
			id, item.Name, item.BaseUnit, cost, item.Stock,
			supplier, item.LeadTimeDays, now, now,
		)
		if err != nil {
			return fmt.Errorf("inserting ingredient %s: %w", item.Name, err)
		}

		g.ingredients[item.Name] = seededIngredient{
			id:       id,
			baseUnit: item.BaseUnit,
			cost:     cost,
		}
	}

	slog.Debug("ingredients generated", "count", len(g.ingredients))
	return nil
}

// generatePurchases backfills each ingredient's purchase log over the
// configured history window. The last purchase of an ingredient implies
// exactly the cost stored on its row; earlier ones drift around the
// catalog value, with a matching price history entry per cost change.
func (g *Generator) generatePurchases(ctx context.Context, tx *sql.Tx) error {
	slog.Debug("generating purchases")

	purchaseQuery := `INSERT INTO purchases (
		id, ingredient_id, quantity, unit, total_price, calculated_unit_cost,
		affects_stock, supplier, note, purchased_at, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	historyQuery := `INSERT INTO price_history (
		id, entity_type, entity_id, old_value, new_value,
		change_amount, change_percent, reason, recorded_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC()

	for _, item := range IngredientCatalog {
		seeded := g.ingredients[item.Name]

		baseQty, err := units.Convert(item.PurchaseQty, item.PurchaseUnit, item.BaseUnit)
		if err != nil {
			return fmt.Errorf("pack size for %s: %w", item.Name, err)
		}

		prevCost := 0.0
		for i := 0; i < g.cfg.PurchasesPerIngredient; i++ {
			// Oldest first, the last one landing on the stored cost.
			daysAgo := g.cfg.HistoryDays * (g.cfg.PurchasesPerIngredient - i) / (g.cfg.PurchasesPerIngredient + 1)
			purchasedAt := now.AddDate(0, 0, -daysAgo).Add(-time.Duration(g.rng.Intn(12)) * time.Hour)

			unitCost := g.driftedCost(item.UnitCost)
			if i == g.cfg.PurchasesPerIngredient-1 {
				unitCost = seeded.cost
			}
			totalPrice := util.RoundCents(unitCost * baseQty)

			id := g.idGen.NewID()
			supplier := Suppliers[g.rng.Intn(len(Suppliers))]

			_, err := tx.ExecContext(ctx, purchaseQuery,
				id, seeded.id, item.PurchaseQty, item.PurchaseUnit,
				totalPrice, unitCost, 1, supplier, nil,
				purchasedAt.Format(time.RFC3339), purchasedAt.Format(time.RFC3339),
			)
			if err != nil {
				return fmt.Errorf("inserting purchase for %s: %w", item.Name, err)
			}
			g.purchaseCount++

			if !util.NearlyEqual(prevCost, unitCost) {
				changePercent := 0.0
				if prevCost != 0 {
					changePercent = (unitCost - prevCost) / prevCost * 100
				}
				_, err := tx.ExecContext(ctx, historyQuery,
					g.idGen.NewID(), "INGREDIENT", seeded.id,
					prevCost, unitCost, unitCost-prevCost, changePercent,
					fmt.Sprintf("purchase %s", id), purchasedAt.Format(time.RFC3339),
				)
				if err != nil {
					return fmt.Errorf("inserting price history for %s: %w", item.Name, err)
				}
			}
			prevCost = unitCost
		}
	}

	slog.Debug("purchases generated", "count", g.purchaseCount)
	return nil
}

func (g *Generator) generateRecipes(ctx context.Context, tx *sql.Tx) error {
	slog.Debug("generating recipes")

	recipeQuery := `INSERT INTO recipes (
		id, name, description, servings, active, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?)`

	lineQuery := `INSERT INTO recipe_lines (
		id, recipe_id, ingredient_id, quantity, unit, note, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC().Format(time.RFC3339)
	lineCount := 0

	for _, recipe := range RecipeCatalog {
		recipeID := g.idGen.NewID()

		_, err := tx.ExecContext(ctx, recipeQuery,
			recipeID, recipe.Name, recipe.Description, recipe.Servings, 1, now, now,
		)
		if err != nil {
			return fmt.Errorf("inserting recipe %s: %w", recipe.Name, err)
		}
		g.recipeIDs[recipe.Name] = recipeID

		for _, line := range recipe.Lines {
			seeded, ok := g.ingredients[line.Ingredient]
			if !ok {
				return fmt.Errorf("recipe %s references unknown ingredient %s", recipe.Name, line.Ingredient)
			}

			_, err := tx.ExecContext(ctx, lineQuery,
				g.idGen.NewID(), recipeID, seeded.id,
				line.Quantity, line.Unit, nil, now,
			)
			if err != nil {
				return fmt.Errorf("inserting line %s/%s: %w", recipe.Name, line.Ingredient, err)
			}
			lineCount++
		}
	}

	slog.Debug("recipes generated", "recipes", len(g.recipeIDs), "lines", lineCount)
	return nil
}

func (g *Generator) generateProducts(ctx context.Context, tx *sql.Tx) error {
	slog.Debug("generating products")

	query := `INSERT INTO products (
		id, sku, name, recipe_id, base_cost, suggested_price,
		image_path, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC().Format(time.RFC3339)

	for _, product := range ProductCatalog {
		var recipeID interface{}
		baseCost := product.FlatCost
		price := product.FlatPrice

		if product.Recipe != "" {
			id, ok := g.recipeIDs[product.Recipe]
			if !ok {
				return fmt.Errorf("product %s references unknown recipe %s", product.Name, product.Recipe)
			}
			recipeID = id

			perServing, err := g.recipeCostPerServing(product.Recipe)
			if err != nil {
				return fmt.Errorf("costing recipe %s: %w", product.Recipe, err)
			}
			baseCost = util.RoundCents(perServing)
			price = util.RoundCents(baseCost * (1 + product.MarkupPercent/100))
		}

		_, err := tx.ExecContext(ctx, query,
			g.idGen.NewID(), g.skuGen.Next(), product.Name, recipeID,
			baseCost, price, nil, now, now,
		)
		if err != nil {
			return fmt.Errorf("inserting product %s: %w", product.Name, err)
		}
		g.productCount++
	}

	slog.Debug("products generated", "count", g.productCount)
	return nil
}

// recipeCostPerServing computes a catalog recipe's per-serving cost from
// the seeded ingredient costs, so seeded products start out consistent
// with their recipes.
func (g *Generator) recipeCostPerServing(name string) (float64, error) {
	for _, recipe := range RecipeCatalog {
		if recipe.Name != name {
			continue
		}

		total := 0.0
		for _, line := range recipe.Lines {
			seeded := g.ingredients[line.Ingredient]
			baseQty, err := units.Convert(line.Quantity, line.Unit, seeded.baseUnit)
			if err != nil {
				return 0, fmt.Errorf("line %s: %w", line.Ingredient, err)
			}
			total += baseQty * seeded.cost
		}
		return total / float64(recipe.Servings), nil
	}
	return 0, fmt.Errorf("recipe %s not in catalog", name)
}

// driftedCost returns the catalog cost nudged by up to ±8%, so seeded
// purchase history shows realistic supplier price movement.
func (g *Generator) driftedCost(catalogCost float64) float64 {
	drift := 1 + (g.rng.Float64()-0.5)*0.16
	return catalogCost * drift
}
