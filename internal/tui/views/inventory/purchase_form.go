package inventory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/crumbwork/crumbwork/internal/models"
	"github.com/crumbwork/crumbwork/internal/services/inventory"
	"github.com/crumbwork/crumbwork/internal/tui/components"
	"github.com/crumbwork/crumbwork/internal/units"
)

// PurchaseForm collects a purchase registration for one ingredient.
type PurchaseForm struct {
	ingredient *models.Ingredient

	quantity     *components.Input
	unit         *components.Select
	totalPrice   *components.Input
	affectsStock *components.Select
	supplier     *components.Input
	note         *components.Input

	focusIndex int
	fields     []components.FormField
	submitted  bool
	cancelled  bool
	err        string
}

// NewPurchaseForm creates a purchase form for the given ingredient. The
// unit picker offers the units compatible with the ingredient's base
// unit, base unit first.
func NewPurchaseForm(ingredient *models.Ingredient) *PurchaseForm {
	unitOptions := compatibleUnits(ingredient.BaseUnit)

	supplier := ""
	if ingredient.Supplier != nil {
		supplier = *ingredient.Supplier
	}

	f := &PurchaseForm{
		ingredient: ingredient,

		quantity:     components.NewInput("Quantity").SetRequired(true).SetWidth(10).SetPlaceholder("0"),
		unit:         components.NewSelect("Unit", unitOptions),
		totalPrice:   components.NewInput("Total Price").SetRequired(true).SetWidth(10).SetPlaceholder("0.00"),
		affectsStock: components.NewSelect("Adds Stock", []string{"yes", "no"}),
		supplier:     components.NewInput("Supplier").SetWidth(30).SetValue(supplier),
		note:         components.NewInput("Note").SetWidth(40),
	}

	f.fields = []components.FormField{
		f.quantity,
		f.unit,
		f.totalPrice,
		f.affectsStock,
		f.supplier,
		f.note,
	}
	f.fields[0].Focus(true)

	return f
}

// compatibleUnits returns the unit symbols in the same measurement
// category as baseUnit, with baseUnit first.
func compatibleUnits(baseUnit string) []string {
	options := []string{baseUnit}
	for _, symbols := range units.All() {
		for _, symbol := range symbols {
			if symbol != baseUnit && units.AreCompatible(symbol, baseUnit) {
				options = append(options, symbol)
			}
		}
	}
	return options
}

// HandleKey handles key input.
func (f *PurchaseForm) HandleKey(key string) {
	switch key {
	case "tab", "down":
		f.nextField()
	case "shift+tab", "up":
		f.prevField()
	case "ctrl+s":
		f.submit()
	case "esc":
		f.cancelled = true
	case "enter":
		if f.focusIndex == len(f.fields)-1 {
			f.submit()
		} else {
			f.nextField()
		}
	default:
		f.fields[f.focusIndex].HandleKey(key)
	}
}

func (f *PurchaseForm) nextField() {
	f.fields[f.focusIndex].Focus(false)
	f.focusIndex = (f.focusIndex + 1) % len(f.fields)
	f.fields[f.focusIndex].Focus(true)
}

func (f *PurchaseForm) prevField() {
	f.fields[f.focusIndex].Focus(false)
	f.focusIndex--
	if f.focusIndex < 0 {
		f.focusIndex = len(f.fields) - 1
	}
	f.fields[f.focusIndex].Focus(true)
}

func (f *PurchaseForm) submit() {
	f.err = ""

	if _, err := strconv.ParseFloat(f.quantity.Value(), 64); err != nil {
		f.err = "Invalid quantity"
		return
	}
	if _, err := strconv.ParseFloat(f.totalPrice.Value(), 64); err != nil {
		f.err = "Invalid total price"
		return
	}

	f.submitted = true
}

// IsSubmitted returns true if the form was submitted.
func (f *PurchaseForm) IsSubmitted() bool {
	return f.submitted
}

// IsCancelled returns true if the form was cancelled.
func (f *PurchaseForm) IsCancelled() bool {
	return f.cancelled
}

// GetData returns the purchase input described by the form.
func (f *PurchaseForm) GetData() (inventory.PurchaseInput, error) {
	quantity, err := strconv.ParseFloat(f.quantity.Value(), 64)
	if err != nil {
		return inventory.PurchaseInput{}, fmt.Errorf("invalid quantity: %w", err)
	}

	totalPrice, err := strconv.ParseFloat(f.totalPrice.Value(), 64)
	if err != nil {
		return inventory.PurchaseInput{}, fmt.Errorf("invalid total price: %w", err)
	}

	input := inventory.PurchaseInput{
		IngredientID: f.ingredient.ID,
		Quantity:     quantity,
		Unit:         f.unit.Value(),
		TotalPrice:   totalPrice,
		AffectsStock: f.affectsStock.SelectedIndex() == 0,
		Note:         f.note.Value(),
	}

	if supplier := strings.TrimSpace(f.supplier.Value()); supplier != "" {
		input.Supplier = &supplier
	}

	return input, nil
}

// Render renders the form.
func (f *PurchaseForm) Render() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	helpStyle := lipgloss.NewStyle().Faint(true)
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E05555"))

	const labelWidth = 14

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== REGISTER PURCHASE: " + strings.ToUpper(f.ingredient.Name) + " ==="))
	b.WriteString("\n\n")

	for _, field := range f.fields {
		b.WriteString(field.RenderWithLabelWidth(labelWidth))
		b.WriteString("\n")
	}

	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(errStyle.Render("Error: " + f.err))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Tab/Down:Next  Shift+Tab/Up:Prev  Ctrl+S:Save  Esc:Cancel"))

	return b.String()
}
