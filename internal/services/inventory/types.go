package inventory

import (
	"errors"
	"time"
)

var (
	// ErrZeroQuantity rejects purchases with a zero or negative quantity;
	// a unit cost cannot be derived from them.
	ErrZeroQuantity = errors.New("purchase quantity must be positive")

	// ErrPercentOutOfRange rejects bulk updates outside the configured bound.
	ErrPercentOutOfRange = errors.New("percentage out of allowed range")

	// ErrIngredientInUse refuses deletion of an ingredient referenced by
	// recipe lines.
	ErrIngredientInUse = errors.New("ingredient is used by recipes")

	// ErrInsufficientStock refuses adjustments that would drive stock negative.
	ErrInsufficientStock = errors.New("adjustment would make stock negative")
)

// CreateIngredientInput describes a new ingredient. When OpeningPurchase
// is set, the purchase is registered right after creation so the
// ingredient starts with a real cost of record.
type CreateIngredientInput struct {
	Name            string
	BaseUnit        string
	CostPerBaseUnit float64
	StockOnHand     float64
	Supplier        *string
	LeadTimeDays    *int
	OpeningPurchase *PurchaseInput
}

// PurchaseInput describes a purchase to register.
type PurchaseInput struct {
	IngredientID string
	Quantity     float64
	Unit         string
	TotalPrice   float64
	AffectsStock bool
	Supplier     *string
	Note         string
	PurchasedAt  time.Time
}

// StockAdjustment describes a manual stock correction in base units.
type StockAdjustment struct {
	Delta  float64
	Reason string
}

// BulkItemResult is the outcome of one ingredient in a bulk price update.
type BulkItemResult struct {
	IngredientID string
	Name         string
	OldCost      float64
	NewCost      float64
	Err          error
}

// BulkUpdateResult aggregates the per-ingredient outcomes of a bulk update.
type BulkUpdateResult struct {
	Percent float64
	Items   []BulkItemResult
}

// Updated returns how many ingredients were successfully repriced.
func (r *BulkUpdateResult) Updated() int {
	n := 0
	for _, item := range r.Items {
		if item.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns how many ingredients failed to update.
func (r *BulkUpdateResult) Failed() int {
	return len(r.Items) - r.Updated()
}
