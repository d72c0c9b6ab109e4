package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/crumbwork/crumbwork/internal/services/inventory"
)

func TestApp_InitialState(t *testing.T) {
	app := newTestApp(t)

	if app.currentModule != ModuleDashboard {
		t.Errorf("expected initial module Dashboard, got %s", app.currentModule)
	}
	if !app.ready {
		t.Error("expected app to be ready")
	}
	if app.quitting {
		t.Error("expected app not to be quitting")
	}
	if app.showDetail {
		t.Error("expected no detail shown initially")
	}
	if app.showForm {
		t.Error("expected no form shown initially")
	}
	if app.searchMode {
		t.Error("expected search mode off initially")
	}
}

func TestApp_View_NotReady(t *testing.T) {
	app := newTestApp(t)
	app.ready = false

	output := app.View()
	if !strings.Contains(output, "Initializing") {
		t.Error("expected initialization message when not ready")
	}
}

func TestApp_View_Quitting(t *testing.T) {
	app := newTestApp(t)
	app.quitting = true

	output := app.View()
	if !strings.Contains(output, "Closing up") {
		t.Error("expected closing message when quitting")
	}
}

func TestApp_View_Dashboard(t *testing.T) {
	app := newTestApp(t)
	output := app.View()

	if !strings.Contains(output, "CRUMBWORK BAKERY") {
		t.Error("expected dashboard title in view output")
	}
}

func TestApp_ModuleNavigation_FKeys(t *testing.T) {
	tests := []struct {
		key      tea.KeyType
		expected Module
	}{
		{tea.KeyF3, ModuleIngredients},
		{tea.KeyF4, ModuleRecipes},
		{tea.KeyF5, ModuleProducts},
		{tea.KeyF6, ModuleHistory},
		{tea.KeyF2, ModuleDashboard},
	}

	for _, tt := range tests {
		t.Run(string(tt.expected), func(t *testing.T) {
			app := newTestApp(t)
			app.Update(specialKeyMsg(tt.key))

			if app.currentModule != tt.expected {
				t.Errorf("expected module %s, got %s", tt.expected, app.currentModule)
			}
		})
	}
}

func TestApp_ModuleNavigation_HelpKey(t *testing.T) {
	app := newTestApp(t)
	app.Update(specialKeyMsg(tea.KeyF1))

	if app.currentModule != ModuleHelp {
		t.Errorf("expected Help module, got %s", app.currentModule)
	}
}

func TestApp_ModuleNavigation_ClearsDetail(t *testing.T) {
	app := newTestApp(t)
	app.showDetail = true

	app.Update(specialKeyMsg(tea.KeyF5))

	if app.showDetail {
		t.Error("expected detail to be cleared on module switch")
	}
}

func TestApp_QuitConfirmation_Show(t *testing.T) {
	app := newTestApp(t)
	app.Update(keyMsg("q"))

	if !app.showConfirm {
		t.Error("expected quit confirmation to show")
	}
}

func TestApp_QuitConfirmation_Cancel(t *testing.T) {
	app := newTestApp(t)
	app.Update(keyMsg("q"))
	app.Update(keyMsg("n"))

	if app.showConfirm {
		t.Error("expected quit confirmation to be dismissed")
	}
	if app.quitting {
		t.Error("expected app not to be quitting after cancel")
	}
}

func TestApp_QuitConfirmation_Confirm(t *testing.T) {
	app := newTestApp(t)
	app.Update(keyMsg("q"))
	_, cmd := app.Update(keyMsg("y"))

	if !app.quitting {
		t.Error("expected app to be quitting after confirm")
	}
	// The returned command should be tea.Quit
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
}

func TestApp_QuitConfirmation_F10(t *testing.T) {
	app := newTestApp(t)
	app.Update(specialKeyMsg(tea.KeyF10))

	if !app.showConfirm {
		t.Error("expected quit confirmation from F10")
	}
}

func TestApp_QuitConfirmation_EscCancels(t *testing.T) {
	app := newTestApp(t)
	app.Update(keyMsg("q"))
	app.Update(specialKeyMsg(tea.KeyEscape))

	if app.showConfirm {
		t.Error("expected Esc to dismiss confirmation")
	}
}

func TestApp_QuitConfirmation_IgnoresOtherKeys(t *testing.T) {
	app := newTestApp(t)
	app.Update(keyMsg("q"))
	app.Update(keyMsg("x"))

	if !app.showConfirm {
		t.Error("expected confirmation to stay open on unrelated key")
	}
}

func TestApp_ConfirmDialog_Render(t *testing.T) {
	app := newTestApp(t)
	app.showConfirm = true

	output := app.View()
	if !strings.Contains(output, "CONFIRM EXIT") {
		t.Error("expected confirm dialog in output")
	}
}

func TestApp_WindowResize(t *testing.T) {
	app := newTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	if app.width != 80 {
		t.Errorf("expected width 80, got %d", app.width)
	}
	if app.height != 24 {
		t.Errorf("expected height 24, got %d", app.height)
	}
	if !app.ready {
		t.Error("expected app ready after window size")
	}
}

func TestApp_IngredientsNavigation(t *testing.T) {
	app := newTestApp(t)

	app.Update(specialKeyMsg(tea.KeyF3))
	if app.currentModule != ModuleIngredients {
		t.Fatalf("expected Ingredients, got %s", app.currentModule)
	}

	app.Update(ingredientsLoadedMsg{})

	// Navigate down/up (no data, should not crash)
	app.Update(specialKeyMsg(tea.KeyDown))
	app.Update(specialKeyMsg(tea.KeyUp))
	app.Update(keyMsg("j"))
	app.Update(keyMsg("k"))

	output := app.View()
	if !strings.Contains(output, "INGREDIENTS") {
		t.Error("expected ingredients view in output")
	}
}

func TestApp_RecipesNavigation(t *testing.T) {
	app := newTestApp(t)

	app.Update(specialKeyMsg(tea.KeyF4))
	if app.currentModule != ModuleRecipes {
		t.Fatalf("expected Recipes, got %s", app.currentModule)
	}

	app.Update(recipesLoadedMsg{})
	app.Update(specialKeyMsg(tea.KeyDown))
	app.Update(specialKeyMsg(tea.KeyUp))

	output := app.View()
	if !strings.Contains(output, "RECIPES") {
		t.Error("expected recipes view in output")
	}
}

func TestApp_ProductsNavigation(t *testing.T) {
	app := newTestApp(t)

	app.Update(specialKeyMsg(tea.KeyF5))
	if app.currentModule != ModuleProducts {
		t.Fatalf("expected Products, got %s", app.currentModule)
	}

	app.Update(productsLoadedMsg{})
	app.Update(specialKeyMsg(tea.KeyDown))
	app.Update(specialKeyMsg(tea.KeyUp))

	output := app.View()
	if !strings.Contains(output, "PRODUCTS") {
		t.Error("expected products view in output")
	}
}

func TestApp_HistoryModule(t *testing.T) {
	app := newTestApp(t)

	app.Update(specialKeyMsg(tea.KeyF6))
	if app.currentModule != ModuleHistory {
		t.Fatalf("expected History, got %s", app.currentModule)
	}

	app.Update(historyLoadedMsg{})

	output := app.View()
	if !strings.Contains(output, "PRICE HISTORY") {
		t.Error("expected history view in output")
	}
	if !strings.Contains(output, "No price changes recorded") {
		t.Error("expected empty history message")
	}
}

func TestApp_SearchMode_Enter(t *testing.T) {
	app := newTestApp(t)
	app.Update(specialKeyMsg(tea.KeyF3))
	app.Update(ingredientsLoadedMsg{})

	// Enter search mode with '/'
	app.Update(keyMsg("/"))
	if !app.searchMode {
		t.Error("expected search mode to be active")
	}

	// Type search term
	app.Update(keyMsg("F"))
	app.Update(keyMsg("l"))
	app.Update(keyMsg("o"))
	app.Update(keyMsg("u"))
	app.Update(keyMsg("r"))
	if app.searchInput != "Flour" {
		t.Errorf("expected search 'Flour', got %q", app.searchInput)
	}

	// View should show search bar
	output := app.View()
	if !strings.Contains(output, "SEARCH") {
		t.Error("expected SEARCH bar in output during search mode")
	}
}

func TestApp_SearchMode_Backspace(t *testing.T) {
	app := newTestApp(t)
	app.Update(specialKeyMsg(tea.KeyF3))
	app.Update(ingredientsLoadedMsg{})

	app.Update(keyMsg("s"))
	app.Update(keyMsg("A"))
	app.Update(keyMsg("B"))
	app.Update(specialKeyMsg(tea.KeyBackspace))

	if app.searchInput != "A" {
		t.Errorf("expected 'A' after backspace, got %q", app.searchInput)
	}
}

func TestApp_SearchMode_Cancel(t *testing.T) {
	app := newTestApp(t)
	app.Update(specialKeyMsg(tea.KeyF3))
	app.Update(ingredientsLoadedMsg{})

	app.Update(keyMsg("/"))
	app.Update(keyMsg("T"))
	app.Update(keyMsg("e"))

	// Cancel with Esc
	app.Update(specialKeyMsg(tea.KeyEscape))
	if app.searchMode {
		t.Error("expected search mode off after Esc")
	}
	if app.searchInput != "" {
		t.Errorf("expected empty search after cancel, got %q", app.searchInput)
	}
}

func TestApp_SearchMode_Submit(t *testing.T) {
	app := newTestApp(t)
	app.Update(specialKeyMsg(tea.KeyF3))
	app.Update(ingredientsLoadedMsg{})

	app.Update(keyMsg("s"))
	app.Update(keyMsg("T"))
	app.Update(specialKeyMsg(tea.KeyEnter))

	if app.searchMode {
		t.Error("expected search mode off after submit")
	}
}

func TestApp_BulkMode_EntryAndCancel(t *testing.T) {
	app := newTestApp(t)
	app.Update(specialKeyMsg(tea.KeyF3))
	app.Update(ingredientsLoadedMsg{})

	app.Update(keyMsg("b"))
	if !app.bulkMode {
		t.Fatal("expected bulk mode after 'b'")
	}

	app.Update(keyMsg("1"))
	app.Update(keyMsg("0"))
	if app.bulkInput != "10" {
		t.Errorf("expected bulk input '10', got %q", app.bulkInput)
	}

	output := app.View()
	if !strings.Contains(output, "BULK UPDATE") {
		t.Error("expected bulk update prompt in output")
	}

	app.Update(specialKeyMsg(tea.KeyEscape))
	if app.bulkMode {
		t.Error("expected bulk mode off after Esc")
	}
}

func TestApp_BulkMode_Submit(t *testing.T) {
	app := newTestApp(t)
	app.Update(specialKeyMsg(tea.KeyF3))
	app.Update(ingredientsLoadedMsg{})

	app.Update(keyMsg("b"))
	app.Update(keyMsg("5"))
	_, cmd := app.Update(specialKeyMsg(tea.KeyEnter))

	if app.bulkMode {
		t.Error("expected bulk mode off after submit")
	}
	if cmd == nil {
		t.Error("expected bulk update command")
	}
}

func TestApp_BulkMode_InvalidPercent(t *testing.T) {
	app := newTestApp(t)
	app.Update(specialKeyMsg(tea.KeyF3))
	app.Update(ingredientsLoadedMsg{})

	app.Update(keyMsg("b"))
	app.Update(keyMsg("x"))
	app.Update(specialKeyMsg(tea.KeyEnter))

	if len(app.alerts) == 0 {
		t.Error("expected alert on invalid percentage")
	}
}

func TestApp_PurchaseForm_OpenAndCancel(t *testing.T) {
	app := newTestApp(t)

	// A purchase form needs a selected ingredient
	_, err := app.inventorySvc.CreateIngredient(context.Background(), inventory.CreateIngredientInput{
		Name:            "Bread Flour",
		BaseUnit:        "g",
		CostPerBaseUnit: 0.0011,
	})
	if err != nil {
		t.Fatalf("seeding ingredient: %v", err)
	}

	app.Update(specialKeyMsg(tea.KeyF3))
	if err := app.ingredientsView.Load(context.Background()); err != nil {
		t.Fatalf("loading ingredients: %v", err)
	}

	app.Update(keyMsg("p"))
	if !app.showForm {
		t.Fatal("expected form to be shown after 'p'")
	}
	if app.purchaseForm == nil {
		t.Fatal("expected purchase form to be created")
	}

	output := app.View()
	if !strings.Contains(output, "REGISTER PURCHASE") {
		t.Error("expected purchase form in output")
	}

	// Cancel form
	app.Update(specialKeyMsg(tea.KeyEscape))
	if app.showForm {
		t.Error("expected form to be hidden after cancel")
	}
}

func TestApp_PurchaseForm_NoSelection(t *testing.T) {
	app := newTestApp(t)
	app.Update(specialKeyMsg(tea.KeyF3))
	app.Update(ingredientsLoadedMsg{})

	// Empty list, 'p' should do nothing
	app.Update(keyMsg("p"))
	if app.showForm {
		t.Error("expected no form without a selected ingredient")
	}
}

func TestApp_BackNavigation_HelpToOriginal(t *testing.T) {
	app := newTestApp(t)

	// Go to products first
	app.Update(specialKeyMsg(tea.KeyF5))
	app.Update(productsLoadedMsg{})

	// Go to help
	app.Update(specialKeyMsg(tea.KeyF1))
	if app.currentModule != ModuleHelp {
		t.Fatalf("expected Help, got %s", app.currentModule)
	}
	if app.previousModule != ModuleProducts {
		t.Errorf("expected previous module Products, got %s", app.previousModule)
	}

	// Go back
	app.Update(specialKeyMsg(tea.KeyEscape))
	if app.currentModule != ModuleProducts {
		t.Errorf("expected to return to Products, got %s", app.currentModule)
	}
}

func TestApp_BackNavigation_DetailToList(t *testing.T) {
	app := newTestApp(t)
	app.Update(specialKeyMsg(tea.KeyF5))
	app.Update(productsLoadedMsg{})

	app.showDetail = true

	// Esc hides detail via back handler (before module-specific handling)
	app.Update(specialKeyMsg(tea.KeyEscape))
	if app.showDetail {
		t.Error("expected detail to be hidden after back")
	}
}

func TestApp_AlertManagement(t *testing.T) {
	app := newTestApp(t)

	app.AddAlert(AlertInfo, "Test info")
	app.AddAlert(AlertWarning, "Test warning")

	if len(app.alerts) != 2 {
		t.Errorf("expected 2 alerts, got %d", len(app.alerts))
	}

	// Newest alert should be first
	if app.alerts[0].Message != "Test warning" {
		t.Errorf("expected newest alert first, got %q", app.alerts[0].Message)
	}

	output := app.View()
	if !strings.Contains(output, "Test warning") {
		t.Error("expected warning alert in view output")
	}

	// Clear
	app.ClearAlerts()
	if len(app.alerts) != 0 {
		t.Errorf("expected 0 alerts after clear, got %d", len(app.alerts))
	}
}

func TestApp_AlertLimit(t *testing.T) {
	app := newTestApp(t)

	for i := 0; i < 15; i++ {
		app.AddAlert(AlertInfo, fmt.Sprintf("Alert %d", i))
	}

	if len(app.alerts) != 10 {
		t.Errorf("expected max 10 alerts, got %d", len(app.alerts))
	}
}

func TestApp_AlertBar_NoAlerts(t *testing.T) {
	app := newTestApp(t)
	output := app.renderAlertBar()

	if !strings.Contains(output, "Ready") {
		t.Error("expected 'Ready' with no alerts")
	}
}

func TestApp_CountsMessage(t *testing.T) {
	app := newTestApp(t)
	app.Update(countsMsg{ingredients: 29, products: 11})

	if app.ingredientCount != 29 {
		t.Errorf("expected 29 ingredients, got %d", app.ingredientCount)
	}
	if app.productCount != 11 {
		t.Errorf("expected 11 products, got %d", app.productCount)
	}
}

func TestApp_LoadErrors_RaiseAlerts(t *testing.T) {
	app := newTestApp(t)

	app.Update(ingredientsLoadedMsg{err: fmt.Errorf("test error")})
	app.Update(recipesLoadedMsg{err: fmt.Errorf("test error")})
	app.Update(productsLoadedMsg{err: fmt.Errorf("test error")})
	app.Update(historyLoadedMsg{err: fmt.Errorf("test error")})

	if len(app.alerts) != 4 {
		t.Errorf("expected 4 alerts from load errors, got %d", len(app.alerts))
	}
}

func TestApp_ModuleRendering(t *testing.T) {
	tests := []struct {
		module   Module
		contains string
	}{
		{ModuleDashboard, "CRUMBWORK BAKERY"},
		{ModuleHistory, "PRICE HISTORY"},
		{ModuleHelp, "HELP"},
	}

	for _, tt := range tests {
		t.Run(string(tt.module), func(t *testing.T) {
			app := newTestApp(t)
			app.currentModule = tt.module

			output := app.View()
			if !strings.Contains(output, tt.contains) {
				t.Errorf("expected %q in %s module output", tt.contains, tt.module)
			}
		})
	}
}

func TestApp_Header(t *testing.T) {
	app := newTestApp(t)
	output := app.renderHeader()

	if !strings.Contains(output, "CRUMBWORK") {
		t.Error("expected app name in header")
	}
	if !strings.Contains(output, "ingredients") {
		t.Error("expected ingredient count in header")
	}
}

func TestApp_Footer(t *testing.T) {
	app := newTestApp(t)
	output := app.renderFooter()

	if !strings.Contains(output, "Help") {
		t.Error("expected help info in footer")
	}
	if !strings.Contains(output, "Quit") {
		t.Error("expected quit info in footer")
	}
}

func TestApp_Dashboard_Sections(t *testing.T) {
	app := newTestApp(t)
	output := app.renderDashboard()

	if !strings.Contains(output, "CATALOG") {
		t.Error("expected CATALOG section in dashboard")
	}
	if !strings.Contains(output, "PRICING POLICY") {
		t.Error("expected PRICING POLICY section in dashboard")
	}
}

func TestApp_RecipeKeys_ToggleHidden(t *testing.T) {
	app := newTestApp(t)
	app.Update(specialKeyMsg(tea.KeyF4))
	app.Update(recipesLoadedMsg{})

	// 'h' toggles hidden recipes and reloads
	_, cmd := app.Update(keyMsg("h"))
	if cmd == nil {
		t.Error("expected reload command after toggling hidden")
	}
}

func TestApp_ProductKeys_RefreshAll(t *testing.T) {
	app := newTestApp(t)
	app.Update(specialKeyMsg(tea.KeyF5))
	app.Update(productsLoadedMsg{})

	_, cmd := app.Update(keyMsg("R"))
	if cmd == nil {
		t.Error("expected refresh-all command")
	}
}
