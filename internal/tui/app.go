package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/crumbwork/crumbwork/internal/cache"
	"github.com/crumbwork/crumbwork/internal/config"
	"github.com/crumbwork/crumbwork/internal/database"
	"github.com/crumbwork/crumbwork/internal/models"
	"github.com/crumbwork/crumbwork/internal/services/inventory"
	"github.com/crumbwork/crumbwork/internal/services/pricing"
	invviews "github.com/crumbwork/crumbwork/internal/tui/views/inventory"
	prodviews "github.com/crumbwork/crumbwork/internal/tui/views/products"
	recviews "github.com/crumbwork/crumbwork/internal/tui/views/recipes"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// MaxContentWidth is the maximum width for content display
const MaxContentWidth = 120

// Module represents a view module in the application.
type Module string

const (
	ModuleDashboard   Module = "dashboard"
	ModuleIngredients Module = "ingredients"
	ModuleRecipes     Module = "recipes"
	ModuleProducts    Module = "products"
	ModuleHistory     Module = "history"
	ModuleHelp        Module = "help"
)

// Alert is a transient status message shown in the alert bar.
type Alert struct {
	Level   AlertLevel
	Message string
	Time    time.Time
}

// AlertLevel indicates the severity of an alert.
type AlertLevel int

const (
	AlertInfo AlertLevel = iota
	AlertWarning
)

// App is the main Bubble Tea application model.
type App struct {
	// Dependencies
	db     *database.DB
	config *config.Config

	// Services
	inventorySvc *inventory.Service
	pricingSvc   *pricing.Service

	// Views
	ingredientsView *invviews.IngredientsView
	recipesView     *recviews.RecipesView
	productsView    *prodviews.ProductsView
	purchaseForm    *invviews.PurchaseForm

	// UI state
	theme       *Theme
	keys        KeyMap
	width       int
	height      int
	ready       bool
	quitting    bool
	showConfirm bool

	// Current view
	currentModule  Module
	previousModule Module
	showDetail     bool
	showForm       bool
	searchMode     bool
	searchInput    string
	bulkMode       bool // bulk price update percent entry
	bulkInput      string

	// History module data
	priceChanges []*models.PriceChange

	// Alerts
	alerts []Alert

	// Dashboard counts
	ingredientCount int
	productCount    int
}

// New creates a new App instance.
func New(db *database.DB, cfg *config.Config) *App {
	sharedCache := cache.New()
	cacheTTL := time.Duration(cfg.Cache.TTLSeconds) * time.Second

	invSvc := inventory.NewService(db, sharedCache, inventory.Options{
		MaxBulkIncreasePercent: cfg.Pricing.MaxBulkIncreasePercent,
		CacheTTL:               cacheTTL,
	})
	priceSvc := pricing.NewService(db, sharedCache, pricing.Options{
		DefaultMarkupPercent: cfg.Pricing.DefaultMarkupPercent,
		SKUPrefix:            cfg.Pricing.SKUPrefix,
		CacheTTL:             cacheTTL,
	})

	currency := cfg.Bakery.Currency
	theme := NewTheme(cfg.Display.ColorScheme)

	ingredientsView := invviews.NewIngredientsView(invSvc, currency)
	ingredientsView.SetStyles(theme.TableStyles())
	recipesView := recviews.NewRecipesView(priceSvc, currency)
	recipesView.SetStyles(theme.TableStyles())
	productsView := prodviews.NewProductsView(priceSvc, currency)
	productsView.SetStyles(theme.TableStyles())

	return &App{
		db:              db,
		config:          cfg,
		inventorySvc:    invSvc,
		pricingSvc:      priceSvc,
		ingredientsView: ingredientsView,
		recipesView:     recipesView,
		productsView:    productsView,
		theme:           theme,
		keys:            DefaultKeyMap(),
		currentModule:   ModuleDashboard,
		alerts:          []Alert{},
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		a.loadCounts(),
	)
}

// updateViewDimensions propagates the window size to the views.
func (a *App) updateViewDimensions() {
	rows := a.height - 14
	if rows < 5 {
		rows = 5
	}
	a.ingredientsView.SetVisibleRows(rows)
	a.recipesView.SetVisibleRows(rows)
	a.productsView.SetVisibleRows(rows)
}

// ----------------------------------------------------------------------------
// Messages and commands
// ----------------------------------------------------------------------------

type countsMsg struct {
	ingredients int
	products    int
}

type ingredientsLoadedMsg struct{ err error }
type recipesLoadedMsg struct{ err error }
type productsLoadedMsg struct{ err error }

type historyLoadedMsg struct {
	changes []*models.PriceChange
	err     error
}

type purchaseSavedMsg struct{ err error }

type bulkUpdateDoneMsg struct {
	result *inventory.BulkUpdateResult
	err    error
}

type refreshDoneMsg struct {
	outcome *pricing.RefreshOutcome
	err     error
}

type refreshAllDoneMsg struct {
	summary *pricing.RefreshSummary
	err     error
}

type recipeDeactivatedMsg struct{ err error }

func (a *App) loadCounts() tea.Cmd {
	return func() tea.Msg {
		var msg countsMsg
		// Counts may fail before first migration; the dashboard just
		// shows zeros then.
		a.db.QueryRow("SELECT COUNT(*) FROM ingredients").Scan(&msg.ingredients)
		a.db.QueryRow("SELECT COUNT(*) FROM products").Scan(&msg.products)
		return msg
	}
}

func (a *App) loadIngredients() tea.Cmd {
	return func() tea.Msg {
		return ingredientsLoadedMsg{err: a.ingredientsView.Load(context.Background())}
	}
}

func (a *App) loadRecipes() tea.Cmd {
	return func() tea.Msg {
		return recipesLoadedMsg{err: a.recipesView.Load(context.Background())}
	}
}

func (a *App) loadProducts() tea.Cmd {
	return func() tea.Msg {
		return productsLoadedMsg{err: a.productsView.Load(context.Background())}
	}
}

func (a *App) loadHistory() tea.Cmd {
	return func() tea.Msg {
		changes, err := a.pricingSvc.RecentPriceChanges(context.Background(), 30)
		return historyLoadedMsg{changes: changes, err: err}
	}
}

func (a *App) savePurchase() tea.Cmd {
	return func() tea.Msg {
		input, err := a.purchaseForm.GetData()
		if err != nil {
			return purchaseSavedMsg{err: err}
		}
		_, err = a.inventorySvc.RegisterPurchase(context.Background(), input)
		return purchaseSavedMsg{err: err}
	}
}

func (a *App) runBulkUpdate(percent float64) tea.Cmd {
	return func() tea.Msg {
		result, err := a.inventorySvc.BulkUpdatePrices(context.Background(), percent)
		return bulkUpdateDoneMsg{result: result, err: err}
	}
}

func (a *App) refreshProduct(productID string) tea.Cmd {
	return func() tea.Msg {
		outcome, err := a.pricingSvc.RefreshProductCost(context.Background(), productID)
		return refreshDoneMsg{outcome: outcome, err: err}
	}
}

func (a *App) refreshAllProducts() tea.Cmd {
	return func() tea.Msg {
		summary, err := a.pricingSvc.RefreshAllProductCosts(context.Background())
		return refreshAllDoneMsg{summary: summary, err: err}
	}
}

func (a *App) deactivateRecipe(recipeID string) tea.Cmd {
	return func() tea.Msg {
		return recipeDeactivatedMsg{err: a.pricingSvc.DeactivateRecipe(context.Background(), recipeID)}
	}
}

// ----------------------------------------------------------------------------
// Update
// ----------------------------------------------------------------------------

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.updateViewDimensions()
		return a, nil

	case countsMsg:
		a.ingredientCount = msg.ingredients
		a.productCount = msg.products
		return a, nil

	case ingredientsLoadedMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Failed to load ingredients: "+msg.err.Error())
		}
		return a, nil

	case recipesLoadedMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Failed to load recipes: "+msg.err.Error())
		}
		return a, nil

	case productsLoadedMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Failed to load products: "+msg.err.Error())
		}
		return a, nil

	case historyLoadedMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Failed to load price history: "+msg.err.Error())
		} else {
			a.priceChanges = msg.changes
		}
		return a, nil

	case purchaseSavedMsg:
		a.showForm = false
		a.purchaseForm = nil
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Failed to register purchase: "+msg.err.Error())
		} else {
			a.AddAlert(AlertInfo, "Purchase registered")
		}
		return a, tea.Batch(a.loadIngredients(), a.loadCounts())

	case bulkUpdateDoneMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Bulk update failed: "+msg.err.Error())
		} else {
			a.AddAlert(AlertInfo, fmt.Sprintf("Bulk update: %d updated, %d failed",
				msg.result.Updated(), msg.result.Failed()))
		}
		return a, a.loadIngredients()

	case refreshDoneMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Refresh failed: "+msg.err.Error())
		} else if msg.outcome.Changed {
			a.AddAlert(AlertInfo, fmt.Sprintf("%s: cost %.2f → %.2f, price %.2f",
				msg.outcome.Name, msg.outcome.OldCost, msg.outcome.NewCost, msg.outcome.NewPrice))
		} else {
			a.AddAlert(AlertInfo, msg.outcome.Name+": cost unchanged")
		}
		return a, a.loadProducts()

	case refreshAllDoneMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Refresh failed: "+msg.err.Error())
		} else {
			a.AddAlert(AlertInfo, fmt.Sprintf("Refreshed %d of %d products",
				msg.summary.Refreshed(), len(msg.summary.Outcomes)))
		}
		return a, a.loadProducts()

	case recipeDeactivatedMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Failed to deactivate recipe: "+msg.err.Error())
		} else {
			a.AddAlert(AlertInfo, "Recipe hidden")
		}
		return a, a.loadRecipes()
	}

	return a, nil
}

// handleKeyPress processes key press events.
func (a *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit confirmation modal takes priority
	if a.showConfirm {
		switch msg.String() {
		case "y", "Y", "enter":
			a.quitting = true
			return a, tea.Quit
		case "n", "N", "esc":
			a.showConfirm = false
		}
		return a, nil
	}

	// Input modes consume all keys before global bindings
	if a.showForm && a.purchaseForm != nil {
		return a.handleFormKeys(msg)
	}
	if a.searchMode {
		return a.handleSearchKeys(msg)
	}
	if a.bulkMode {
		return a.handleBulkKeys(msg)
	}

	if a.keys.IsQuit(msg) {
		a.showConfirm = true
		return a, nil
	}

	if a.keys.IsFunctionKey(msg) {
		switch a.keys.FunctionKeyModule(msg) {
		case "quit":
			a.showConfirm = true
		case "help":
			a.previousModule = a.currentModule
			a.currentModule = ModuleHelp
		case "dashboard":
			a.currentModule = ModuleDashboard
			a.showDetail = false
			return a, a.loadCounts()
		case "ingredients":
			a.currentModule = ModuleIngredients
			a.showDetail = false
			return a, a.loadIngredients()
		case "recipes":
			a.currentModule = ModuleRecipes
			a.showDetail = false
			return a, a.loadRecipes()
		case "products":
			a.currentModule = ModuleProducts
			a.showDetail = false
			return a, a.loadProducts()
		case "history":
			a.currentModule = ModuleHistory
			a.showDetail = false
			return a, a.loadHistory()
		}
		return a, nil
	}

	if a.keys.Back.Matches(msg) {
		if a.showDetail {
			a.showDetail = false
			return a, nil
		}
		if a.currentModule == ModuleHelp && a.previousModule != "" {
			a.currentModule = a.previousModule
			a.previousModule = ""
		}
		return a, nil
	}

	switch a.currentModule {
	case ModuleIngredients:
		return a.handleIngredientKeys(msg)
	case ModuleRecipes:
		return a.handleRecipeKeys(msg)
	case ModuleProducts:
		return a.handleProductKeys(msg)
	}

	return a, nil
}

// handleIngredientKeys handles key presses in the ingredients module.
func (a *App) handleIngredientKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Purchase registration works from both list and detail view
	if msg.String() == "p" {
		ing := a.ingredientsView.SelectedIngredient()
		if ing != nil {
			a.purchaseForm = invviews.NewPurchaseForm(ing)
			a.showForm = true
			a.showDetail = false
		}
		return a, nil
	}

	if a.showDetail {
		return a, nil
	}

	switch msg.String() {
	case "up", "k":
		a.ingredientsView.MoveUp()
	case "down", "j":
		a.ingredientsView.MoveDown()
	case "enter":
		if a.ingredientsView.SelectedIngredient() != nil {
			a.showDetail = true
			return a, func() tea.Msg {
				return ingredientsLoadedMsg{err: a.ingredientsView.LoadDetail(context.Background())}
			}
		}
	case "pgup":
		a.ingredientsView.PrevPage()
		return a, a.loadIngredients()
	case "pgdown":
		a.ingredientsView.NextPage()
		return a, a.loadIngredients()
	case "b":
		a.bulkMode = true
		a.bulkInput = ""
	case "/", "s":
		a.searchMode = true
		a.searchInput = ""
	}

	return a, nil
}

// handleRecipeKeys handles key presses in the recipes module.
func (a *App) handleRecipeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showDetail {
		return a, nil
	}

	switch msg.String() {
	case "up", "k":
		a.recipesView.MoveUp()
	case "down", "j":
		a.recipesView.MoveDown()
	case "enter":
		if a.recipesView.SelectedRecipe() != nil {
			a.showDetail = true
			return a, func() tea.Msg {
				return recipesLoadedMsg{err: a.recipesView.LoadDetail(context.Background())}
			}
		}
	case "pgup":
		a.recipesView.PrevPage()
		return a, a.loadRecipes()
	case "pgdown":
		a.recipesView.NextPage()
		return a, a.loadRecipes()
	case "h":
		a.recipesView.ToggleHidden()
		return a, a.loadRecipes()
	case "d":
		recipe := a.recipesView.SelectedRecipe()
		if recipe != nil && recipe.Active {
			return a, a.deactivateRecipe(recipe.ID)
		}
	}

	return a, nil
}

// handleProductKeys handles key presses in the products module.
func (a *App) handleProductKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Refresh works from both list and detail view
	if msg.String() == "r" {
		product := a.productsView.SelectedProduct()
		if product != nil {
			a.showDetail = false
			return a, a.refreshProduct(product.ID)
		}
		return a, nil
	}

	if a.showDetail {
		return a, nil
	}

	switch msg.String() {
	case "up", "k":
		a.productsView.MoveUp()
	case "down", "j":
		a.productsView.MoveDown()
	case "enter":
		if a.productsView.SelectedProduct() != nil {
			a.showDetail = true
			return a, func() tea.Msg {
				return productsLoadedMsg{err: a.productsView.LoadDetail(context.Background())}
			}
		}
	case "pgup":
		a.productsView.PrevPage()
		return a, a.loadProducts()
	case "pgdown":
		a.productsView.NextPage()
		return a, a.loadProducts()
	case "R":
		return a, a.refreshAllProducts()
	}

	return a, nil
}

// handleFormKeys handles key presses in form mode.
func (a *App) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.purchaseForm.HandleKey(msg.String())

	if a.purchaseForm.IsCancelled() {
		a.showForm = false
		a.purchaseForm = nil
		return a, nil
	}

	if a.purchaseForm.IsSubmitted() {
		return a, a.savePurchase()
	}

	return a, nil
}

// handleSearchKeys handles key presses in search mode.
func (a *App) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "esc":
		a.searchMode = false
		a.searchInput = ""
		a.ingredientsView.SetSearch("")
		return a, a.loadIngredients()
	case "enter":
		a.searchMode = false
		a.ingredientsView.SetSearch(a.searchInput)
		return a, a.loadIngredients()
	case "backspace":
		if len(a.searchInput) > 0 {
			a.searchInput = a.searchInput[:len(a.searchInput)-1]
		}
	default:
		if len(key) == 1 {
			a.searchInput += key
		}
	}

	return a, nil
}

// handleBulkKeys handles percent entry for the bulk price update.
func (a *App) handleBulkKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "esc":
		a.bulkMode = false
		a.bulkInput = ""
	case "enter":
		a.bulkMode = false
		percent, err := strconv.ParseFloat(a.bulkInput, 64)
		a.bulkInput = ""
		if err != nil {
			a.AddAlert(AlertWarning, "Invalid percentage")
			return a, nil
		}
		return a, a.runBulkUpdate(percent)
	case "backspace":
		if len(a.bulkInput) > 0 {
			a.bulkInput = a.bulkInput[:len(a.bulkInput)-1]
		}
	default:
		if len(key) == 1 {
			a.bulkInput += key
		}
	}

	return a, nil
}

// ----------------------------------------------------------------------------
// View
// ----------------------------------------------------------------------------

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	if a.quitting {
		return a.theme.Title.Render("Closing up the bakery...")
	}

	var b strings.Builder

	b.WriteString(a.renderHeader())
	b.WriteString("\n")
	b.WriteString(a.renderAlertBar())
	b.WriteString("\n")

	contentHeight := a.height - 6
	if a.showConfirm {
		b.WriteString(a.renderConfirmDialog(contentHeight))
	} else {
		b.WriteString(a.renderContent(contentHeight))
	}

	b.WriteString("\n")
	b.WriteString(a.renderFooter())

	return b.String()
}

// renderHeader renders the top header bar.
func (a *App) renderHeader() string {
	title := fmt.Sprintf("CRUMBWORK v%s", Version)

	info := fmt.Sprintf("%s | %d ingredients | %d products",
		a.config.Bakery.Name,
		a.ingredientCount,
		a.productCount,
	)

	spacing := a.width - lipgloss.Width(title) - lipgloss.Width(info) - 2
	if spacing < 1 {
		spacing = 1
	}

	header := a.theme.Header.Render(title) +
		strings.Repeat(" ", spacing) +
		a.theme.Header.Render(info)

	return header + "\n" + a.theme.DrawDoubleLine(a.width)
}

// renderAlertBar renders the current time and the latest alert.
func (a *App) renderAlertBar() string {
	timeStr := time.Now().Format(a.config.Display.DateFormat + " 15:04")

	var alertText string
	if len(a.alerts) > 0 {
		alert := a.alerts[0]
		if alert.Level == AlertWarning {
			alertText = a.theme.Warning.Render("WARNING: " + alert.Message)
		} else {
			alertText = a.theme.Accent.Render(alert.Message)
		}
	} else {
		alertText = a.theme.Muted.Render("Ready")
	}

	return a.theme.Value.Render(timeStr) + a.theme.StatusDivider.Render() + alertText
}

// renderContent renders the main content area for the current module.
func (a *App) renderContent(height int) string {
	content := a.moduleContent()

	contentWidth := a.width
	if contentWidth > MaxContentWidth {
		contentWidth = MaxContentWidth
	}

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Top)

	return style.Render(lipgloss.NewStyle().Width(contentWidth).Render(content))
}

func (a *App) moduleContent() string {
	switch a.currentModule {
	case ModuleDashboard:
		return a.renderDashboard()
	case ModuleIngredients:
		return a.renderIngredients()
	case ModuleRecipes:
		return a.renderRecipes()
	case ModuleProducts:
		return a.renderProducts()
	case ModuleHistory:
		return a.renderHistory()
	case ModuleHelp:
		return a.renderHelp()
	default:
		return ""
	}
}

// renderIngredients renders the ingredients module.
func (a *App) renderIngredients() string {
	if a.showForm && a.purchaseForm != nil {
		return a.purchaseForm.Render()
	}

	if a.showDetail {
		return a.ingredientsView.RenderDetail(a.ingredientsView.SelectedIngredient())
	}

	var prompt string
	if a.searchMode {
		prompt = a.theme.Label.Render("SEARCH: ") +
			a.theme.Accent.Render(a.searchInput+"_") + "\n\n"
	}
	if a.bulkMode {
		prompt = a.theme.Label.Render(fmt.Sprintf("BULK UPDATE %% (0 < p <= %.0f): ",
			a.config.Pricing.MaxBulkIncreasePercent)) +
			a.theme.Accent.Render(a.bulkInput+"_") + "\n\n"
	}

	return prompt + a.ingredientsView.Render(a.width, a.height-6)
}

// renderRecipes renders the recipes module.
func (a *App) renderRecipes() string {
	if a.showDetail {
		return a.recipesView.RenderDetail(a.recipesView.SelectedRecipe())
	}
	return a.recipesView.Render(a.width, a.height-6)
}

// renderProducts renders the products module.
func (a *App) renderProducts() string {
	if a.showDetail {
		return a.productsView.RenderDetail(a.productsView.SelectedProduct())
	}
	return a.productsView.Render(a.width, a.height-6)
}

// renderHistory renders the recent price changes across all entities.
func (a *App) renderHistory() string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render("═══ PRICE HISTORY ═══"))
	b.WriteString("\n\n")

	if len(a.priceChanges) == 0 {
		b.WriteString(a.theme.Muted.Render("No price changes recorded."))
		return b.String()
	}

	currency := a.config.Bakery.Currency
	for _, c := range a.priceChanges {
		direction := a.theme.Success.Render("▲")
		if c.NewValue < c.OldValue {
			direction = a.theme.Error.Render("▼")
		}

		line := fmt.Sprintf("%s  %-10s %s %s%.4f → %s%.4f (%+.1f%%)  %s",
			c.RecordedAt.Format("2006-01-02"),
			c.EntityType,
			direction,
			currency, c.OldValue,
			currency, c.NewValue,
			c.ChangePercent,
			c.Reason,
		)
		b.WriteString(a.theme.Primary.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// renderDashboard renders the main dashboard view.
func (a *App) renderDashboard() string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render("═══ " + strings.ToUpper(a.config.Bakery.Name) + " ═══"))
	b.WriteString("\n\n")

	b.WriteString(a.theme.Subtitle.Render("CATALOG"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Ingredients: %d\n", a.ingredientCount))
	b.WriteString(fmt.Sprintf("  Products:    %d\n", a.productCount))
	b.WriteString("\n")

	b.WriteString(a.theme.Subtitle.Render("PRICING POLICY"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Default Markup:    %.0f%%\n", a.config.Pricing.DefaultMarkupPercent))
	b.WriteString(fmt.Sprintf("  Max Bulk Increase: %.0f%%\n", a.config.Pricing.MaxBulkIncreasePercent))
	b.WriteString("\n")

	b.WriteString(a.theme.Muted.Render("Product costs refresh on demand; press F5 then r to refresh."))

	return b.String()
}

// renderHelp renders the help screen.
func (a *App) renderHelp() string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render("═══ HELP ═══"))
	b.WriteString("\n\n")

	b.WriteString(a.theme.Subtitle.Render("NAVIGATION"))
	b.WriteString("\n\n")

	navItems := [][2]string{
		{"F1", "Help"},
		{"F2", "Dashboard"},
		{"F3", "Ingredients"},
		{"F4", "Recipes"},
		{"F5", "Products"},
		{"F6", "Price History"},
		{"F10", "Quit"},
	}
	for _, item := range navItems {
		b.WriteString(a.theme.Primary.Render(fmt.Sprintf("    %-8s  %s", item[0], item[1])))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.theme.Subtitle.Render("CONTROLS"))
	b.WriteString("\n\n")

	ctrlItems := [][2]string{
		{"Up/Down", "Navigate"},
		{"Enter", "Select / details"},
		{"Esc", "Back / cancel"},
		{"/", "Search ingredients"},
		{"p", "Register purchase"},
		{"b", "Bulk price update"},
		{"r", "Refresh product cost"},
		{"R", "Refresh all products"},
		{"d", "Hide recipe"},
		{"h", "Show hidden recipes"},
	}
	for _, item := range ctrlItems {
		b.WriteString(a.theme.Primary.Render(fmt.Sprintf("    %-8s  %s", item[0], item[1])))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.theme.Muted.Render("Press Esc to return"))

	return b.String()
}

// renderConfirmDialog renders the quit confirmation dialog.
func (a *App) renderConfirmDialog(height int) string {
	dialog := a.theme.Box.Render(
		a.theme.Title.Render("CONFIRM EXIT") + "\n\n" +
			a.theme.Base.Render("Are you sure you want to exit?") + "\n\n" +
			a.theme.Label.Render("[Y]es  [N]o"),
	)

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return style.Render(dialog)
}

// renderFooter renders the bottom status bar.
func (a *App) renderFooter() string {
	return a.theme.DrawHorizontalLine(a.width) + "\n" +
		a.theme.Footer.Render(a.keys.StatusBarHelp())
}

// AddAlert pushes a new alert to the front of the alert list.
func (a *App) AddAlert(level AlertLevel, message string) {
	a.alerts = append([]Alert{{
		Level:   level,
		Message: message,
		Time:    time.Now(),
	}}, a.alerts...)

	if len(a.alerts) > 10 {
		a.alerts = a.alerts[:10]
	}
}

// ClearAlerts removes all alerts.
func (a *App) ClearAlerts() {
	a.alerts = []Alert{}
}

// Run starts the TUI application.
func Run(ctx context.Context, db *database.DB, cfg *config.Config) error {
	app := New(db, cfg)

	p := tea.NewProgram(app, tea.WithAltScreen())

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	_, err := p.Run()
	return err
}
