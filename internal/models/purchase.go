package models

import (
	"errors"
	"time"

	"github.com/crumbwork/crumbwork/internal/units"
)

// Purchase records buying a quantity of one ingredient for a total price.
// CalculatedUnitCost is derived at registration time: total price divided
// by the quantity converted into the ingredient's base unit. AffectsStock
// controls whether stock on hand is incremented; a price-reference-only
// purchase leaves stock untouched.
type Purchase struct {
	ID                 string
	IngredientID       string
	Quantity           float64
	Unit               string
	TotalPrice         float64
	CalculatedUnitCost float64
	AffectsStock       bool
	Supplier           *string
	Note               string
	PurchasedAt        time.Time
	CreatedAt          time.Time

	// Joined fields
	Ingredient *Ingredient
}

// NewPurchase creates a purchase after validating its invariants. The
// derived unit cost is computed later, during registration, because it
// needs the ingredient's base unit.
func NewPurchase(id, ingredientID string, quantity float64, unit string, totalPrice float64) (*Purchase, error) {
	var errs []error

	if ingredientID == "" {
		errs = append(errs, errors.New("ingredient ID is required"))
	}
	if quantity <= 0 {
		errs = append(errs, errors.New("quantity must be positive"))
	}
	if !units.IsKnown(unit) {
		errs = append(errs, &units.UnknownUnitError{Unit: unit})
	}
	if totalPrice < 0 {
		errs = append(errs, errors.New("total price must be non-negative"))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Purchase{
		ID:           id,
		IngredientID: ingredientID,
		Quantity:     quantity,
		Unit:         unit,
		TotalPrice:   totalPrice,
		AffectsStock: true,
		PurchasedAt:  time.Now().UTC(),
	}, nil
}

// PurchaseFilter narrows purchase list queries.
type PurchaseFilter struct {
	IngredientID string
	Since        *time.Time
}

// PurchaseList is a page of purchases.
type PurchaseList struct {
	Purchases  []*Purchase
	Total      int
	Page       int
	TotalPages int
}
