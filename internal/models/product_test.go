package models

import (
	"math"
	"testing"
)

func TestNewProduct(t *testing.T) {
	tests := []struct {
		name     string
		prodName string
		cost     float64
		price    float64
		wantErr  bool
	}{
		{"Valid product", "Sourdough Loaf", 2.40, 6.00, false},
		{"Zero cost and price", "Sample", 0, 0, false},
		{"Missing name", "", 1, 2, true},
		{"Negative cost", "Loaf", -1, 2, true},
		{"Negative price", "Loaf", 1, -2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProduct("prod-001", "PRD-00001", tt.prodName, tt.cost, tt.price)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestProduct_MarginPercent(t *testing.T) {
	tests := []struct {
		name  string
		cost  float64
		price float64
		want  float64
	}{
		{"60 percent margin", 100, 160, 60},
		{"No margin", 100, 100, 0},
		{"Sold below cost", 100, 80, -20},
		{"Zero cost is undefined, reported as 0", 0, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{BaseCost: tt.cost, SuggestedPrice: tt.price}
			if got := p.MarginPercent(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("MarginPercent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProduct_HasRecipe(t *testing.T) {
	recipeID := "rec-001"
	empty := ""

	tests := []struct {
		name     string
		recipeID *string
		want     bool
	}{
		{"Linked product", &recipeID, true},
		{"Unlinked product", nil, false},
		{"Empty recipe ID", &empty, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{RecipeID: tt.recipeID}
			if got := p.HasRecipe(); got != tt.want {
				t.Errorf("HasRecipe() = %v, want %v", got, tt.want)
			}
		})
	}
}
