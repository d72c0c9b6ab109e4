// Package products provides TUI views for the product catalog.
package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/crumbwork/crumbwork/internal/models"
	"github.com/crumbwork/crumbwork/internal/services/pricing"
	"github.com/crumbwork/crumbwork/internal/tui/components"
)

// ProductsView displays the product catalog with cached costs and prices.
type ProductsView struct {
	service  *pricing.Service
	table    *components.Table
	products []*models.Product
	page     models.Pagination
	filter   models.ProductFilter
	currency string
	loading  bool
	err      error

	// Price history stats for the selected product's detail view.
	detailStats   models.PriceStats
	detailHistory []*models.PriceChange
}

// NewProductsView creates a new products view.
func NewProductsView(service *pricing.Service, currency string) *ProductsView {
	columns := []components.Column{
		{Title: "SKU", Width: 10},
		{Title: "Name", Width: 26},
		{Title: "Cost", Width: 9, Align: lipgloss.Right},
		{Title: "Price", Width: 9, Align: lipgloss.Right},
		{Title: "Margin", Width: 8, Align: lipgloss.Right},
		{Title: "Recipe", Width: 7},
	}

	table := components.NewTable(columns)
	table.SetVisibleRows(20)
	table.Focus(true)

	return &ProductsView{
		service:  service,
		table:    table,
		currency: currency,
		page:     models.DefaultPagination(),
	}
}

// SetStyles applies theme styles to the view's table.
func (v *ProductsView) SetStyles(styles components.TableStyles) {
	v.table.SetStyles(styles)
}

// SetVisibleRows adjusts the table height.
func (v *ProductsView) SetVisibleRows(n int) {
	v.table.SetVisibleRows(n)
}

// Load fetches products from the database.
func (v *ProductsView) Load(ctx context.Context) error {
	v.loading = true
	v.err = nil

	result, err := v.service.ListProducts(ctx, v.filter, v.page)
	if err != nil {
		v.loading = false
		v.err = err
		return err
	}

	v.products = result.Products
	v.loading = false

	rows := make([][]string, len(v.products))
	for i, p := range v.products {
		margin := "-"
		if p.BaseCost > 0 {
			margin = fmt.Sprintf("%.0f%%", p.MarginPercent())
		}

		linked := "-"
		if p.HasRecipe() {
			linked = "yes"
		}

		rows[i] = []string{
			p.SKU,
			p.Name,
			fmt.Sprintf("%s%.2f", v.currency, p.BaseCost),
			fmt.Sprintf("%s%.2f", v.currency, p.SuggestedPrice),
			margin,
			linked,
		}
	}

	v.table.SetRows(rows)
	v.table.SetPagination(result.Page, result.TotalPages, result.Total)

	return nil
}

// LoadDetail fetches the price history of the selected product.
func (v *ProductsView) LoadDetail(ctx context.Context) error {
	product := v.SelectedProduct()
	if product == nil {
		return nil
	}

	history, err := v.service.PriceHistory(ctx, models.PriceEntityProduct, product.ID)
	if err != nil {
		return err
	}

	v.detailHistory = history
	v.detailStats = models.ComputePriceStats(history)
	return nil
}

// SetSearch sets the search filter and resets paging.
func (v *ProductsView) SetSearch(term string) {
	v.filter.Search = term
	v.page.Page = 1
}

// NextPage moves to the next page.
func (v *ProductsView) NextPage() {
	v.page.Page++
}

// PrevPage moves to the previous page.
func (v *ProductsView) PrevPage() {
	if v.page.Page > 1 {
		v.page.Page--
	}
}

// MoveUp moves the selection up.
func (v *ProductsView) MoveUp() {
	v.table.MoveUp()
}

// MoveDown moves the selection down.
func (v *ProductsView) MoveDown() {
	v.table.MoveDown()
}

// SelectedProduct returns the currently selected product.
func (v *ProductsView) SelectedProduct() *models.Product {
	idx := v.table.Selected()
	if idx >= 0 && idx < len(v.products) {
		return v.products[idx]
	}
	return nil
}

// Render renders the product list.
func (v *ProductsView) Render(width, height int) string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	labelStyle := lipgloss.NewStyle().Faint(true)
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E05555"))

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== PRODUCTS ==="))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(errStyle.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if v.loading {
		b.WriteString(labelStyle.Render("Loading..."))
		b.WriteString("\n")
	} else if v.table.Empty() {
		b.WriteString(labelStyle.Render("No products found."))
		b.WriteString("\n")
	} else {
		b.WriteString(v.table.Render())
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Up/Down:Select  Enter:Details  r:Refresh Cost  R:Refresh All  PgUp/Dn:Page"))

	return b.String()
}

// RenderDetail renders the detail view for a product, including price
// history statistics.
func (v *ProductsView) RenderDetail(product *models.Product) string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	sectionStyle := lipgloss.NewStyle().Bold(true)
	labelStyle := lipgloss.NewStyle().Faint(true).Width(16)
	helpStyle := lipgloss.NewStyle().Faint(true)

	if product == nil {
		return labelStyle.Render("No product selected")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== PRODUCT DETAILS ==="))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("SKU:") + " " + product.SKU + "\n")
	b.WriteString(labelStyle.Render("Name:") + " " + product.Name + "\n")
	b.WriteString(labelStyle.Render("Base Cost:") + " " + fmt.Sprintf("%s%.2f", v.currency, product.BaseCost) + "\n")
	b.WriteString(labelStyle.Render("Price:") + " " + fmt.Sprintf("%s%.2f", v.currency, product.SuggestedPrice) + "\n")
	if product.BaseCost > 0 {
		b.WriteString(labelStyle.Render("Margin:") + " " + fmt.Sprintf("%.1f%%", product.MarginPercent()) + "\n")
	}
	if product.HasRecipe() {
		b.WriteString(labelStyle.Render("Recipe-linked:") + " yes (cost refreshes on demand)\n")
	} else {
		b.WriteString(labelStyle.Render("Recipe-linked:") + " no\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("PRICE HISTORY"))
	b.WriteString("\n")
	if v.detailStats.Count == 0 {
		b.WriteString(helpStyle.Render("  No price changes recorded."))
		b.WriteString("\n")
	} else {
		b.WriteString(labelStyle.Render("Changes:") + " " + fmt.Sprintf("%d", v.detailStats.Count) + "\n")
		b.WriteString(labelStyle.Render("Min/Max:") + " " + fmt.Sprintf("%s%.2f / %s%.2f",
			v.currency, v.detailStats.Min, v.currency, v.detailStats.Max) + "\n")
		b.WriteString(labelStyle.Render("Average:") + " " + fmt.Sprintf("%s%.2f", v.currency, v.detailStats.Average) + "\n")

		// Last few changes, most recent first
		start := len(v.detailHistory) - 5
		if start < 0 {
			start = 0
		}
		b.WriteString("\n")
		for i := len(v.detailHistory) - 1; i >= start; i-- {
			c := v.detailHistory[i]
			b.WriteString(fmt.Sprintf("  %s  %s%.2f → %s%.2f (%+.1f%%)  %s\n",
				c.RecordedAt.Format("2006-01-02"),
				v.currency, c.OldValue,
				v.currency, c.NewValue,
				c.ChangePercent,
				c.Reason,
			))
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Esc:Back  r:Refresh Cost"))

	return b.String()
}
