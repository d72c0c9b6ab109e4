package inventory

import (
	"strings"
	"testing"

	"github.com/crumbwork/crumbwork/internal/models"
)

func testIngredient() *models.Ingredient {
	supplier := "Heartland Milling Co."
	return &models.Ingredient{
		ID:              "ing-001",
		Name:            "Bread Flour",
		BaseUnit:        "g",
		CostPerBaseUnit: 0.0011,
		Supplier:        &supplier,
	}
}

func TestPurchaseForm_New(t *testing.T) {
	form := NewPurchaseForm(testIngredient())

	if form.IsSubmitted() {
		t.Error("Should not be submitted initially")
	}
	if form.IsCancelled() {
		t.Error("Should not be cancelled initially")
	}
	// Supplier should be prefilled from the ingredient
	if form.supplier.Value() != "Heartland Milling Co." {
		t.Errorf("Expected prefilled supplier, got %q", form.supplier.Value())
	}
}

func TestPurchaseForm_UnitOptions_BaseFirst(t *testing.T) {
	form := NewPurchaseForm(testIngredient())

	// Default unit selection is the ingredient's base unit
	if form.unit.Value() != "g" {
		t.Errorf("Expected base unit 'g' selected, got %q", form.unit.Value())
	}
}

func TestPurchaseForm_CompatibleUnits(t *testing.T) {
	options := compatibleUnits("g")

	if options[0] != "g" {
		t.Errorf("Expected base unit first, got %q", options[0])
	}

	joined := strings.Join(options, ",")
	for _, want := range []string{"kg", "oz", "lb"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Expected weight unit %q in options %v", want, options)
		}
	}
	if strings.Contains(joined, "ml") {
		t.Errorf("Did not expect volume unit in weight options %v", options)
	}
}

func TestPurchaseForm_TabNavigation(t *testing.T) {
	form := NewPurchaseForm(testIngredient())

	if !form.quantity.IsFocused() {
		t.Error("Expected quantity focused initially")
	}

	form.HandleKey("tab")
	if !form.unit.IsFocused() {
		t.Error("Expected unit focused after tab")
	}

	form.HandleKey("shift+tab")
	if !form.quantity.IsFocused() {
		t.Error("Expected quantity focused after shift+tab")
	}
}

func TestPurchaseForm_SubmitValid(t *testing.T) {
	form := NewPurchaseForm(testIngredient())

	// Type quantity
	form.HandleKey("2")
	form.HandleKey("5")

	// Skip to total price
	form.HandleKey("tab")
	form.HandleKey("tab")
	form.HandleKey("3")
	form.HandleKey("0")

	form.HandleKey("ctrl+s")
	if !form.IsSubmitted() {
		t.Fatal("Expected form submitted")
	}

	input, err := form.GetData()
	if err != nil {
		t.Fatalf("GetData: %v", err)
	}
	if input.IngredientID != "ing-001" {
		t.Errorf("Expected ingredient id ing-001, got %q", input.IngredientID)
	}
	if input.Quantity != 25 {
		t.Errorf("Expected quantity 25, got %v", input.Quantity)
	}
	if input.TotalPrice != 30 {
		t.Errorf("Expected total price 30, got %v", input.TotalPrice)
	}
	if input.Unit != "g" {
		t.Errorf("Expected unit 'g', got %q", input.Unit)
	}
	if !input.AffectsStock {
		t.Error("Expected purchase to affect stock by default")
	}
	if input.Supplier == nil || *input.Supplier != "Heartland Milling Co." {
		t.Error("Expected supplier carried through")
	}
}

func TestPurchaseForm_SubmitInvalidQuantity(t *testing.T) {
	form := NewPurchaseForm(testIngredient())

	form.HandleKey("x")
	form.HandleKey("ctrl+s")

	if form.IsSubmitted() {
		t.Error("Expected form not submitted with invalid quantity")
	}
	if form.err == "" {
		t.Error("Expected inline error after invalid submit")
	}
}

func TestPurchaseForm_Cancel(t *testing.T) {
	form := NewPurchaseForm(testIngredient())

	form.HandleKey("esc")
	if !form.IsCancelled() {
		t.Error("Expected form cancelled after esc")
	}
}

func TestPurchaseForm_Render(t *testing.T) {
	form := NewPurchaseForm(testIngredient())
	output := form.Render()

	if !strings.Contains(output, "REGISTER PURCHASE: BREAD FLOUR") {
		t.Error("Expected title with ingredient name")
	}
	if !strings.Contains(output, "Quantity") {
		t.Error("Expected quantity field label")
	}
	if !strings.Contains(output, "Ctrl+S:Save") {
		t.Error("Expected save key in help text")
	}
}
