package models

import (
	"math"
	"testing"
)

func TestNewPriceChange(t *testing.T) {
	t.Run("Derives change amount and percent", func(t *testing.T) {
		c, err := NewPriceChange("pc-001", PriceEntityIngredient, "ing-001", 2.0, 2.5, "purchase")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.ChangeAmount != 0.5 {
			t.Errorf("expected change amount 0.5, got %v", c.ChangeAmount)
		}
		if math.Abs(c.ChangePercent-25) > 1e-9 {
			t.Errorf("expected change percent 25, got %v", c.ChangePercent)
		}
		if !c.Increased() {
			t.Error("expected Increased() to be true")
		}
	})

	t.Run("Zero old value has zero percent", func(t *testing.T) {
		c, err := NewPriceChange("pc-002", PriceEntityProduct, "prod-001", 0, 5, "initial")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.ChangePercent != 0 {
			t.Errorf("expected 0 percent for zero old value, got %v", c.ChangePercent)
		}
	})

	t.Run("Invalid entity type rejected", func(t *testing.T) {
		if _, err := NewPriceChange("pc-003", "SUPPLIER", "x", 1, 2, ""); err == nil {
			t.Error("expected error for invalid entity type")
		}
	})

	t.Run("Missing entity ID rejected", func(t *testing.T) {
		if _, err := NewPriceChange("pc-004", PriceEntityProduct, "", 1, 2, ""); err == nil {
			t.Error("expected error for missing entity ID")
		}
	})
}

func TestComputePriceStats(t *testing.T) {
	t.Run("Empty history", func(t *testing.T) {
		stats := ComputePriceStats(nil)
		if stats.Count != 0 {
			t.Errorf("expected count 0, got %d", stats.Count)
		}
	})

	t.Run("Single entry", func(t *testing.T) {
		entries := []*PriceChange{
			{OldValue: 0, NewValue: 2.0, ChangeAmount: 2.0},
		}
		stats := ComputePriceStats(entries)
		if stats.Count != 1 || stats.First != 2.0 || stats.Last != 2.0 {
			t.Errorf("unexpected stats: %+v", stats)
		}
		if stats.Min != 2.0 || stats.Max != 2.0 || stats.Average != 2.0 {
			t.Errorf("unexpected min/max/avg: %+v", stats)
		}
	})

	t.Run("Rises and falls", func(t *testing.T) {
		// 2.00 → 3.00 → 2.50 → 4.00
		entries := []*PriceChange{
			{OldValue: 1.0, NewValue: 2.0, ChangeAmount: 1.0},
			{OldValue: 2.0, NewValue: 3.0, ChangeAmount: 1.0},
			{OldValue: 3.0, NewValue: 2.5, ChangeAmount: -0.5},
			{OldValue: 2.5, NewValue: 4.0, ChangeAmount: 1.5},
		}
		stats := ComputePriceStats(entries)

		if stats.Count != 4 {
			t.Errorf("expected count 4, got %d", stats.Count)
		}
		if stats.First != 2.0 {
			t.Errorf("expected first 2.0, got %v", stats.First)
		}
		if stats.Last != 4.0 {
			t.Errorf("expected last 4.0, got %v", stats.Last)
		}
		if stats.Min != 2.0 {
			t.Errorf("expected min 2.0, got %v", stats.Min)
		}
		if stats.Max != 4.0 {
			t.Errorf("expected max 4.0, got %v", stats.Max)
		}
		if math.Abs(stats.Average-2.875) > 1e-9 {
			t.Errorf("expected average 2.875, got %v", stats.Average)
		}
		if math.Abs(stats.TotalIncrease-3.5) > 1e-9 {
			t.Errorf("expected total increase 3.5, got %v", stats.TotalIncrease)
		}
		if math.Abs(stats.TotalDecrease-0.5) > 1e-9 {
			t.Errorf("expected total decrease 0.5, got %v", stats.TotalDecrease)
		}
	})
}
