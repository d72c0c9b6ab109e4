// Package models defines the entities of the bakery ledger: ingredients,
// recipes, products, purchases, and the price-change history. Constructors
// enforce the numeric invariants (non-negative costs, positive quantities,
// servings of at least one) so downstream layers never re-validate.
package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/crumbwork/crumbwork/internal/units"
)

// Ingredient is a raw input to recipes. Its cost and stock are always
// expressed in BaseUnit; purchases in other units are converted before
// they touch either field.
type Ingredient struct {
	ID              string
	Name            string
	BaseUnit        string
	CostPerBaseUnit float64
	StockOnHand     float64 // in base units
	Supplier        *string
	LeadTimeDays    *int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewIngredient creates an ingredient after validating its invariants.
func NewIngredient(id, name, baseUnit string, costPerBaseUnit float64) (*Ingredient, error) {
	var errs []error

	if name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if !units.IsKnown(baseUnit) {
		errs = append(errs, fmt.Errorf("unknown base unit %q", baseUnit))
	}
	if costPerBaseUnit < 0 {
		errs = append(errs, errors.New("cost per base unit must be non-negative"))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Ingredient{
		ID:              id,
		Name:            name,
		BaseUnit:        baseUnit,
		CostPerBaseUnit: costPerBaseUnit,
	}, nil
}

// StockValue returns the monetary value of the stock on hand.
func (i *Ingredient) StockValue() float64 {
	return i.StockOnHand * i.CostPerBaseUnit
}

// Category returns the ingredient's measurement category.
func (i *Ingredient) Category() (units.Category, error) {
	return units.CategoryOf(i.BaseUnit)
}

// IngredientFilter narrows ingredient list queries.
type IngredientFilter struct {
	Search   string // substring match on name
	BaseUnit string
}

// IngredientList is a page of ingredients.
type IngredientList struct {
	Ingredients []*Ingredient
	Total       int
	Page        int
	TotalPages  int
}
