// Package inventory provides TUI views for the ingredient ledger.
package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/crumbwork/crumbwork/internal/models"
	"github.com/crumbwork/crumbwork/internal/services/inventory"
	"github.com/crumbwork/crumbwork/internal/tui/components"
)

// IngredientsView displays the ingredient list.
type IngredientsView struct {
	service     *inventory.Service
	table       *components.Table
	ingredients []*models.Ingredient
	page        models.Pagination
	filter      models.IngredientFilter
	currency    string
	loading     bool
	err         error

	// Purchases for the selected ingredient, loaded on demand for the
	// detail view.
	detailPurchases []*models.Purchase
}

// NewIngredientsView creates a new ingredients view.
func NewIngredientsView(service *inventory.Service, currency string) *IngredientsView {
	columns := []components.Column{
		{Title: "Name", Width: 22},
		{Title: "Unit", Width: 5},
		{Title: "Cost/Unit", Width: 10, Align: lipgloss.Right},
		{Title: "Stock", Width: 10, Align: lipgloss.Right},
		{Title: "Value", Width: 10, Align: lipgloss.Right},
		{Title: "Supplier", Width: 24},
	}

	table := components.NewTable(columns)
	table.SetVisibleRows(20)
	table.Focus(true)

	return &IngredientsView{
		service:  service,
		table:    table,
		currency: currency,
		page:     models.DefaultPagination(),
	}
}

// SetStyles applies theme styles to the view's table.
func (v *IngredientsView) SetStyles(styles components.TableStyles) {
	v.table.SetStyles(styles)
}

// SetVisibleRows adjusts the table height.
func (v *IngredientsView) SetVisibleRows(n int) {
	v.table.SetVisibleRows(n)
}

// Load fetches ingredients from the database.
func (v *IngredientsView) Load(ctx context.Context) error {
	v.loading = true
	v.err = nil

	result, err := v.service.ListIngredients(ctx, v.filter, v.page)
	if err != nil {
		v.loading = false
		v.err = err
		return err
	}

	v.ingredients = result.Ingredients
	v.loading = false

	rows := make([][]string, len(v.ingredients))
	for i, ing := range v.ingredients {
		supplier := "-"
		if ing.Supplier != nil {
			supplier = *ing.Supplier
		}

		rows[i] = []string{
			ing.Name,
			ing.BaseUnit,
			fmt.Sprintf("%s%.4f", v.currency, ing.CostPerBaseUnit),
			fmt.Sprintf("%.1f", ing.StockOnHand),
			fmt.Sprintf("%s%.2f", v.currency, ing.StockValue()),
			supplier,
		}
	}

	v.table.SetRows(rows)
	v.table.SetPagination(result.Page, result.TotalPages, result.Total)

	return nil
}

// LoadDetail fetches the recent purchases of the selected ingredient for
// the detail view.
func (v *IngredientsView) LoadDetail(ctx context.Context) error {
	ing := v.SelectedIngredient()
	if ing == nil {
		return nil
	}

	result, err := v.service.ListPurchases(ctx,
		models.PurchaseFilter{IngredientID: ing.ID},
		models.Pagination{Page: 1, PageSize: 10})
	if err != nil {
		return err
	}

	v.detailPurchases = result.Purchases
	return nil
}

// SetSearch sets the name search filter and resets paging.
func (v *IngredientsView) SetSearch(term string) {
	v.filter.Search = term
	v.page.Page = 1
}

// NextPage moves to the next page.
func (v *IngredientsView) NextPage() {
	v.page.Page++
}

// PrevPage moves to the previous page.
func (v *IngredientsView) PrevPage() {
	if v.page.Page > 1 {
		v.page.Page--
	}
}

// MoveUp moves the selection up.
func (v *IngredientsView) MoveUp() {
	v.table.MoveUp()
}

// MoveDown moves the selection down.
func (v *IngredientsView) MoveDown() {
	v.table.MoveDown()
}

// SelectedIngredient returns the currently selected ingredient.
func (v *IngredientsView) SelectedIngredient() *models.Ingredient {
	idx := v.table.Selected()
	if idx >= 0 && idx < len(v.ingredients) {
		return v.ingredients[idx]
	}
	return nil
}

// Render renders the ingredient list.
func (v *IngredientsView) Render(width, height int) string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	labelStyle := lipgloss.NewStyle().Faint(true)
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E05555"))

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== INGREDIENTS ==="))
	b.WriteString("\n\n")

	if v.filter.Search != "" {
		b.WriteString(labelStyle.Render("Filter: "))
		b.WriteString(v.filter.Search)
		b.WriteString("\n\n")
	}

	if v.err != nil {
		b.WriteString(errStyle.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if v.loading {
		b.WriteString(labelStyle.Render("Loading..."))
		b.WriteString("\n")
	} else if v.table.Empty() {
		b.WriteString(labelStyle.Render("No ingredients found."))
		b.WriteString("\n")
	} else {
		b.WriteString(v.table.Render())
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Up/Down:Select  Enter:Details  p:Purchase  b:Bulk Update  /:Search  PgUp/Dn:Page"))

	return b.String()
}

// RenderDetail renders the detail view for an ingredient, including its
// recent purchases.
func (v *IngredientsView) RenderDetail(ing *models.Ingredient) string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	sectionStyle := lipgloss.NewStyle().Bold(true)
	labelStyle := lipgloss.NewStyle().Faint(true).Width(16)
	helpStyle := lipgloss.NewStyle().Faint(true)

	if ing == nil {
		return labelStyle.Render("No ingredient selected")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== INGREDIENT DETAILS ==="))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Name:") + " " + ing.Name + "\n")
	b.WriteString(labelStyle.Render("Base Unit:") + " " + ing.BaseUnit + "\n")
	b.WriteString(labelStyle.Render("Cost/Unit:") + " " + fmt.Sprintf("%s%.4f", v.currency, ing.CostPerBaseUnit) + "\n")
	b.WriteString(labelStyle.Render("Stock:") + " " + fmt.Sprintf("%.1f %s", ing.StockOnHand, ing.BaseUnit) + "\n")
	b.WriteString(labelStyle.Render("Stock Value:") + " " + fmt.Sprintf("%s%.2f", v.currency, ing.StockValue()) + "\n")
	if ing.Supplier != nil {
		b.WriteString(labelStyle.Render("Supplier:") + " " + *ing.Supplier + "\n")
	}
	if ing.LeadTimeDays != nil {
		b.WriteString(labelStyle.Render("Lead Time:") + " " + fmt.Sprintf("%d days", *ing.LeadTimeDays) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("RECENT PURCHASES"))
	b.WriteString("\n")
	if len(v.detailPurchases) == 0 {
		b.WriteString(helpStyle.Render("  No purchases recorded."))
		b.WriteString("\n")
	}
	for _, p := range v.detailPurchases {
		stockNote := ""
		if !p.AffectsStock {
			stockNote = " (price only)"
		}
		b.WriteString(fmt.Sprintf("  %s  %.1f %s for %s%.2f → %s%.4f/%s%s\n",
			p.PurchasedAt.Format("2006-01-02"),
			p.Quantity, p.Unit,
			v.currency, p.TotalPrice,
			v.currency, p.CalculatedUnitCost, ing.BaseUnit,
			stockNote,
		))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Esc:Back  p:Purchase"))

	return b.String()
}
