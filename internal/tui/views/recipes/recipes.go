// Package recipes provides TUI views for recipes and their live costs.
package recipes

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/crumbwork/crumbwork/internal/models"
	"github.com/crumbwork/crumbwork/internal/services/costing"
	"github.com/crumbwork/crumbwork/internal/services/pricing"
	"github.com/crumbwork/crumbwork/internal/tui/components"
)

// RecipesView displays the recipe list with live per-serving costs.
type RecipesView struct {
	service  *pricing.Service
	table    *components.Table
	recipes  []*models.Recipe
	costs    map[string]*costing.RecipeCost
	page     models.Pagination
	filter   models.RecipeFilter
	currency string
	loading  bool
	err      error

	// Cost breakdown for the selected recipe's detail view.
	detailCost *costing.RecipeCost
}

// NewRecipesView creates a new recipes view.
func NewRecipesView(service *pricing.Service, currency string) *RecipesView {
	columns := []components.Column{
		{Title: "Name", Width: 26},
		{Title: "Servings", Width: 8, Align: lipgloss.Right},
		{Title: "Total Cost", Width: 11, Align: lipgloss.Right},
		{Title: "Per Serving", Width: 11, Align: lipgloss.Right},
		{Title: "Status", Width: 8},
	}

	table := components.NewTable(columns)
	table.SetVisibleRows(20)
	table.Focus(true)

	return &RecipesView{
		service:  service,
		table:    table,
		costs:    make(map[string]*costing.RecipeCost),
		currency: currency,
		page:     models.DefaultPagination(),
	}
}

// SetStyles applies theme styles to the view's table.
func (v *RecipesView) SetStyles(styles components.TableStyles) {
	v.table.SetStyles(styles)
}

// SetVisibleRows adjusts the table height.
func (v *RecipesView) SetVisibleRows(n int) {
	v.table.SetVisibleRows(n)
}

// Load fetches recipes and computes each one's live cost.
func (v *RecipesView) Load(ctx context.Context) error {
	v.loading = true
	v.err = nil

	result, err := v.service.ListRecipes(ctx, v.filter, v.page)
	if err != nil {
		v.loading = false
		v.err = err
		return err
	}

	v.recipes = result.Recipes
	v.costs = make(map[string]*costing.RecipeCost, len(v.recipes))
	v.loading = false

	rows := make([][]string, len(v.recipes))
	for i, r := range v.recipes {
		totalStr := "-"
		perServingStr := "-"

		cost, err := v.service.RecipeCost(ctx, r.ID)
		if err == nil {
			v.costs[r.ID] = cost
			totalStr = fmt.Sprintf("%s%.2f", v.currency, cost.Total)
			perServingStr = fmt.Sprintf("%s%.2f", v.currency, cost.PerServing)
			if cost.AnyFallback() {
				perServingStr += "*"
			}
		}

		status := "active"
		if !r.Active {
			status = "hidden"
		}

		rows[i] = []string{
			r.Name,
			fmt.Sprintf("%d", r.Servings),
			totalStr,
			perServingStr,
			status,
		}
	}

	v.table.SetRows(rows)
	v.table.SetPagination(result.Page, result.TotalPages, result.Total)

	return nil
}

// LoadDetail computes the full cost breakdown of the selected recipe.
func (v *RecipesView) LoadDetail(ctx context.Context) error {
	recipe := v.SelectedRecipe()
	if recipe == nil {
		return nil
	}

	cost, err := v.service.RecipeCost(ctx, recipe.ID)
	if err != nil {
		return err
	}

	v.detailCost = cost
	return nil
}

// SetSearch sets the name search filter and resets paging.
func (v *RecipesView) SetSearch(term string) {
	v.filter.Search = term
	v.page.Page = 1
}

// ToggleHidden toggles whether soft-deleted recipes are listed.
func (v *RecipesView) ToggleHidden() {
	v.filter.IncludeHidden = !v.filter.IncludeHidden
	v.page.Page = 1
}

// NextPage moves to the next page.
func (v *RecipesView) NextPage() {
	v.page.Page++
}

// PrevPage moves to the previous page.
func (v *RecipesView) PrevPage() {
	if v.page.Page > 1 {
		v.page.Page--
	}
}

// MoveUp moves the selection up.
func (v *RecipesView) MoveUp() {
	v.table.MoveUp()
}

// MoveDown moves the selection down.
func (v *RecipesView) MoveDown() {
	v.table.MoveDown()
}

// SelectedRecipe returns the currently selected recipe.
func (v *RecipesView) SelectedRecipe() *models.Recipe {
	idx := v.table.Selected()
	if idx >= 0 && idx < len(v.recipes) {
		return v.recipes[idx]
	}
	return nil
}

// Render renders the recipe list.
func (v *RecipesView) Render(width, height int) string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	labelStyle := lipgloss.NewStyle().Faint(true)
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E05555"))

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== RECIPES ==="))
	b.WriteString("\n\n")

	if v.filter.IncludeHidden {
		b.WriteString(labelStyle.Render("Showing hidden recipes"))
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
		b.WriteString(labelStyle.Render("No recipes found."))
		b.WriteString("\n")
	} else {
		b.WriteString(v.table.Render())
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("* line unit incompatible with ingredient; quantity read as base units"))
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Up/Down:Select  Enter:Breakdown  h:Hidden  d:Deactivate  PgUp/Dn:Page"))

	return b.String()
}

// RenderDetail renders the cost breakdown for a recipe.
func (v *RecipesView) RenderDetail(recipe *models.Recipe) string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	labelStyle := lipgloss.NewStyle().Faint(true).Width(14)
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E0A030"))
	helpStyle := lipgloss.NewStyle().Faint(true)

	if recipe == nil {
		return labelStyle.Render("No recipe selected")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== COST BREAKDOWN: " + strings.ToUpper(recipe.Name) + " ==="))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Servings:") + " " + fmt.Sprintf("%d", recipe.Servings) + "\n")
	if recipe.Description != "" {
		b.WriteString(labelStyle.Render("Description:") + " " + recipe.Description + "\n")
	}
	b.WriteString("\n")

	if v.detailCost == nil {
		b.WriteString(helpStyle.Render("Cost unavailable."))
		return b.String()
	}

	for _, line := range v.detailCost.Lines {
		marker := " "
		if line.UsedFallback {
			marker = "*"
		}
		b.WriteString(fmt.Sprintf("  %s%-22s %8.1f %-5s → %8.1f base  %s%.4f\n",
			marker, line.IngredientName,
			line.Quantity, line.Unit,
			line.BaseQuantity,
			v.currency, line.Cost,
		))
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Total:") + " " + fmt.Sprintf("%s%.4f", v.currency, v.detailCost.Total) + "\n")
	b.WriteString(labelStyle.Render("Per Serving:") + " " + fmt.Sprintf("%s%.4f", v.currency, v.detailCost.PerServing) + "\n")

	if v.detailCost.AnyFallback() {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render("* quantity interpreted in the ingredient's base unit"))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("Esc:Back"))

	return b.String()
}
