// Package seed provides data generation for populating a fresh bakery
// database with a realistic catalog.
package seed

// Suppliers is a curated list of wholesale suppliers.
var Suppliers = []string{
	"Heartland Milling Co.",
	"Valley Dairy Cooperative",
	"Sweetwater Sugar Supply",
	"Meadowbrook Farms",
	"Pacific Spice Traders",
	"Northside Restaurant Depot",
	"Golden Grain Distributors",
	"Lakeview Produce",
}

// IngredientCatalog defines the ingredients for seeding. UnitCost is the
// cost per base unit; PurchaseQty and PurchaseUnit describe the pack size
// the ingredient is typically bought in.
var IngredientCatalog = []struct {
	Name         string
	BaseUnit     string
	UnitCost     float64
	Stock        float64
	PurchaseQty  float64
	PurchaseUnit string
	LeadTimeDays int
}{
	{"Bread Flour", "g", 0.0011, 25000, 25, "kg", 3},
	{"All-Purpose Flour", "g", 0.0009, 20000, 25, "kg", 3},
	{"Whole Wheat Flour", "g", 0.0013, 10000, 10, "kg", 3},
	{"Rye Flour", "g", 0.0016, 8000, 10, "kg", 5},
	{"Granulated Sugar", "g", 0.0012, 12000, 10, "kg", 2},
	{"Brown Sugar", "g", 0.0018, 6000, 5, "kg", 2},
	{"Powdered Sugar", "g", 0.0020, 4000, 5, "kg", 2},
	{"Fine Sea Salt", "g", 0.0008, 5000, 5, "kg", 7},
	{"Instant Yeast", "g", 0.0120, 1000, 500, "g", 5},
	{"Baking Powder", "g", 0.0090, 1500, 1, "kg", 5},
	{"Baking Soda", "g", 0.0040, 1500, 1, "kg", 5},
	{"Unsalted Butter", "g", 0.0095, 8000, 5, "kg", 2},
	{"Cream Cheese", "g", 0.0085, 4000, 2, "kg", 2},
	{"Dark Chocolate", "g", 0.0160, 5000, 5, "kg", 7},
	{"Cocoa Powder", "g", 0.0140, 2000, 1, "kg", 7},
	{"Almond Flour", "g", 0.0110, 3000, 2, "kg", 7},
	{"Raisins", "g", 0.0065, 3000, 2, "kg", 7},
	{"Walnuts", "g", 0.0180, 2500, 2, "kg", 7},
	{"Cinnamon", "g", 0.0220, 800, 500, "g", 10},
	{"Vanilla Extract", "ml", 0.0450, 1000, 500, "ml", 10},
	{"Whole Milk", "ml", 0.0011, 15000, 10, "l", 1},
	{"Heavy Cream", "ml", 0.0042, 5000, 2, "l", 1},
	{"Buttermilk", "ml", 0.0018, 4000, 2, "l", 1},
	{"Vegetable Oil", "ml", 0.0022, 6000, 5, "l", 3},
	{"Olive Oil", "ml", 0.0085, 3000, 3, "l", 3},
	{"Honey", "ml", 0.0078, 2500, 1, "l", 7},
	{"Eggs", "unit", 0.32, 360, 15, "dozen", 1},
	{"Lemons", "unit", 0.55, 40, 24, "unit", 2},
	{"Sourdough Starter", "g", 0.0030, 2000, 1, "kg", 0},
}

// RecipeCatalog defines the recipes for seeding. Line units deliberately
// mix prefixed and compound units (kg, l, dozen) with base units.
var RecipeCatalog = []struct {
	Name        string
	Description string
	Servings    int
	Lines       []struct {
		Ingredient string
		Quantity   float64
		Unit       string
	}
}{
	{
		"Country Sourdough", "Slow-fermented rustic loaf", 2,
		[]struct {
			Ingredient string
			Quantity   float64
			Unit       string
		}{
			{"Bread Flour", 1, "kg"},
			{"Sourdough Starter", 200, "g"},
			{"Fine Sea Salt", 22, "g"},
		},
	},
	{
		"Classic Baguette", "Traditional French baguette", 4,
		[]struct {
			Ingredient string
			Quantity   float64
			Unit       string
		}{
			{"Bread Flour", 1, "kg"},
			{"Instant Yeast", 7, "g"},
			{"Fine Sea Salt", 20, "g"},
		},
	},
	{
		"Butter Croissants", "Laminated all-butter croissants", 12,
		[]struct {
			Ingredient string
			Quantity   float64
			Unit       string
		}{
			{"All-Purpose Flour", 500, "g"},
			{"Unsalted Butter", 280, "g"},
			{"Whole Milk", 140, "ml"},
			{"Granulated Sugar", 55, "g"},
			{"Instant Yeast", 10, "g"},
			{"Fine Sea Salt", 12, "g"},
		},
	},
	{
		"Chocolate Brownies", "Fudgy dark chocolate brownies", 16,
		[]struct {
			Ingredient string
			Quantity   float64
			Unit       string
		}{
			{"Dark Chocolate", 200, "g"},
			{"Unsalted Butter", 175, "g"},
			{"Granulated Sugar", 325, "g"},
			{"All-Purpose Flour", 130, "g"},
			{"Cocoa Powder", 25, "g"},
			{"Eggs", 3, "unit"},
		},
	},
	{
		"Cinnamon Rolls", "Soft rolls with cinnamon-sugar filling", 12,
		[]struct {
			Ingredient string
			Quantity   float64
			Unit       string
		}{
			{"All-Purpose Flour", 650, "g"},
			{"Whole Milk", 240, "ml"},
			{"Unsalted Butter", 120, "g"},
			{"Brown Sugar", 200, "g"},
			{"Cinnamon", 15, "g"},
			{"Instant Yeast", 9, "g"},
			{"Eggs", 2, "unit"},
		},
	},
	{
		"Lemon Pound Cake", "Dense buttery cake with lemon glaze", 10,
		[]struct {
			Ingredient string
			Quantity   float64
			Unit       string
		}{
			{"All-Purpose Flour", 300, "g"},
			{"Unsalted Butter", 225, "g"},
			{"Granulated Sugar", 300, "g"},
			{"Powdered Sugar", 120, "g"},
			{"Lemons", 3, "unit"},
			{"Eggs", 4, "unit"},
		},
	},
	{
		"Buttermilk Pancake Mix", "Dry mix sold by the batch", 8,
		[]struct {
			Ingredient string
			Quantity   float64
			Unit       string
		}{
			{"All-Purpose Flour", 480, "g"},
			{"Buttermilk", 0.7, "l"},
			{"Baking Powder", 20, "g"},
			{"Granulated Sugar", 50, "g"},
			{"Eggs", 0.25, "dozen"},
		},
	},
	{
		"Seeded Rye Loaf", "Dense rye with caraway", 2,
		[]struct {
			Ingredient string
			Quantity   float64
			Unit       string
		}{
			{"Rye Flour", 600, "g"},
			{"Bread Flour", 400, "g"},
			{"Sourdough Starter", 250, "g"},
			{"Honey", 30, "ml"},
			{"Fine Sea Salt", 20, "g"},
		},
	},
}

// ProductCatalog defines the sellable products for seeding. Recipe-linked
// products are costed from their recipe; the rest carry a flat cost.
var ProductCatalog = []struct {
	Name          string
	Recipe        string // empty for unlinked products
	MarkupPercent float64
	FlatCost      float64
	FlatPrice     float64
}{
	{"Country Sourdough Loaf", "Country Sourdough", 120, 0, 0},
	{"Baguette", "Classic Baguette", 150, 0, 0},
	{"Butter Croissant", "Butter Croissants", 180, 0, 0},
	{"Double Chocolate Brownie", "Chocolate Brownies", 160, 0, 0},
	{"Cinnamon Roll", "Cinnamon Rolls", 170, 0, 0},
	{"Lemon Pound Cake Slice", "Lemon Pound Cake", 140, 0, 0},
	{"Pancake Mix Bag", "Buttermilk Pancake Mix", 100, 0, 0},
	{"Seeded Rye Loaf", "Seeded Rye Loaf", 130, 0, 0},
	{"Drip Coffee", "", 0, 0.45, 2.50},
	{"Bakery Tote Bag", "", 0, 4.00, 12.00},
	{"Gift Card", "", 0, 0, 25.00},
}
