package models

import (
	"errors"
	"time"
)

// Product is a sellable item. BaseCost and SuggestedPrice are cached,
// denormalized values derived from the linked recipe at the last refresh;
// they go stale when ingredient costs change and stay stale until a caller
// explicitly refreshes the product.
type Product struct {
	ID             string
	SKU            string
	Name           string
	RecipeID       *string
	BaseCost       float64
	SuggestedPrice float64
	ImagePath      *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields
	Recipe *Recipe
}

// NewProduct creates a product after validating its invariants.
func NewProduct(id, sku, name string, baseCost, suggestedPrice float64) (*Product, error) {
	var errs []error

	if name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if baseCost < 0 {
		errs = append(errs, errors.New("base cost must be non-negative"))
	}
	if suggestedPrice < 0 {
		errs = append(errs, errors.New("suggested price must be non-negative"))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Product{
		ID:             id,
		SKU:            sku,
		Name:           name,
		BaseCost:       baseCost,
		SuggestedPrice: suggestedPrice,
	}, nil
}

// MarginPercent returns the product's current margin over cost as a
// percentage: (price/cost - 1) * 100. Returns 0 when the cost is 0,
// since a margin over a zero cost is undefined.
func (p *Product) MarginPercent() float64 {
	if p.BaseCost == 0 {
		return 0
	}
	return (p.SuggestedPrice/p.BaseCost - 1) * 100
}

// HasRecipe reports whether the product is linked to a recipe and can
// therefore have its cost refreshed.
func (p *Product) HasRecipe() bool {
	return p.RecipeID != nil && *p.RecipeID != ""
}

// ProductFilter narrows product list queries.
type ProductFilter struct {
	Search     string
	RecipeID   string
	OnlyLinked bool // only products with a recipe
}

// ProductList is a page of products.
type ProductList struct {
	Products   []*Product
	Total      int
	Page       int
	TotalPages int
}
