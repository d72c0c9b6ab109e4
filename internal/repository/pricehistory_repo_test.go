package repository

import (
	"context"
	"testing"
	"time"

	"github.com/crumbwork/crumbwork/internal/models"
	"github.com/crumbwork/crumbwork/internal/testutil"
)

func TestPriceHistoryRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	historyRepo := NewPriceHistoryRepository(db.DB)
	ctx := context.Background()

	entityID := "ingredient-1"
	now := time.Now().UTC()

	// Three changes recorded over three days
	values := []struct {
		old, new float64
		when     time.Time
	}{
		{0, 2.00, now.AddDate(0, 0, -2)},
		{2.00, 2.50, now.AddDate(0, 0, -1)},
		{2.50, 2.25, now},
	}
	for _, v := range values {
		change := testutil.FixturePriceChange(models.PriceEntityIngredient, entityID, func(c *models.PriceChange) {
			c.OldValue = v.old
			c.NewValue = v.new
			c.ChangeAmount = v.new - v.old
			c.RecordedAt = v.when
		})
		if err := historyRepo.Create(ctx, nil, change); err != nil {
			t.Fatalf("failed to create price change: %v", err)
		}
	}

	t.Run("ListByEntity returns oldest first", func(t *testing.T) {
		changes, err := historyRepo.ListByEntity(ctx, models.PriceEntityIngredient, entityID)
		if err != nil {
			t.Fatalf("failed to list price changes: %v", err)
		}

		if len(changes) != 3 {
			t.Fatalf("expected 3 changes, got %d", len(changes))
		}
		if changes[0].NewValue != 2.00 {
			t.Errorf("expected oldest change first, got new value %v", changes[0].NewValue)
		}
		if changes[2].NewValue != 2.25 {
			t.Errorf("expected newest change last, got new value %v", changes[2].NewValue)
		}
	})

	t.Run("Entity type scopes the history", func(t *testing.T) {
		changes, err := historyRepo.ListByEntity(ctx, models.PriceEntityProduct, entityID)
		if err != nil {
			t.Fatalf("failed to list price changes: %v", err)
		}
		if len(changes) != 0 {
			t.Errorf("expected no product changes, got %d", len(changes))
		}
	})

	t.Run("CountByEntity", func(t *testing.T) {
		count, err := historyRepo.CountByEntity(ctx, models.PriceEntityIngredient, entityID)
		if err != nil {
			t.Fatalf("failed to count price changes: %v", err)
		}
		if count != 3 {
			t.Errorf("expected 3, got %d", count)
		}
	})

	t.Run("Stats over listed history", func(t *testing.T) {
		changes, err := historyRepo.ListByEntity(ctx, models.PriceEntityIngredient, entityID)
		if err != nil {
			t.Fatalf("failed to list price changes: %v", err)
		}

		stats := models.ComputePriceStats(changes)
		if stats.Count != 3 {
			t.Errorf("expected count 3, got %d", stats.Count)
		}
		if stats.Min != 2.00 || stats.Max != 2.50 {
			t.Errorf("expected min 2.00 max 2.50, got %v / %v", stats.Min, stats.Max)
		}
		if stats.Last != 2.25 {
			t.Errorf("expected last 2.25, got %v", stats.Last)
		}
	})
}

func TestPriceHistoryRepository_ListRecent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	historyRepo := NewPriceHistoryRepository(db.DB)
	ctx := context.Background()

	now := time.Now().UTC()
	for i := range 5 {
		change := testutil.FixturePriceChange(models.PriceEntityIngredient, "ingredient-1", func(c *models.PriceChange) {
			c.RecordedAt = now.AddDate(0, 0, -i)
		})
		if err := historyRepo.Create(ctx, nil, change); err != nil {
			t.Fatalf("failed to create price change: %v", err)
		}
	}

	changes, err := historyRepo.ListRecent(ctx, 3)
	if err != nil {
		t.Fatalf("failed to list recent changes: %v", err)
	}

	if len(changes) != 3 {
		t.Fatalf("expected 3 changes, got %d", len(changes))
	}
	if !changes[0].RecordedAt.After(changes[2].RecordedAt) {
		t.Error("expected newest change first")
	}
}
