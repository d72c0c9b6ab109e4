// Package units converts physical quantities between measurement units.
// Every unit belongs to exactly one measurement category (weight, volume,
// count) and carries a fixed multiplier to that category's canonical unit.
// Conversion across categories is not defined.
package units

import "fmt"

// Category is a measurement category. Units convert freely within a
// category and never across categories.
type Category string

const (
	CategoryWeight Category = "weight"
	CategoryVolume Category = "volume"
	CategoryCount  Category = "count"
)

func (c Category) String() string {
	return string(c)
}

// BaseUnit returns the canonical unit all conversions in the category
// pass through.
func (c Category) BaseUnit() string {
	switch c {
	case CategoryWeight:
		return "g"
	case CategoryVolume:
		return "ml"
	case CategoryCount:
		return "unit"
	}
	return ""
}

// unitDef describes a unit: its category and its multiplier to the
// category's canonical unit (e.g. 1 kg = 1000 g).
type unitDef struct {
	category Category
	toBase   float64
}

// registry is the static unit table. It is never mutated after init, so
// concurrent reads need no locking.
var registry = map[string]unitDef{
	// Weight, canonical unit: gram
	"g":  {CategoryWeight, 1},
	"kg": {CategoryWeight, 1000},
	"oz": {CategoryWeight, 28.349523125},
	"lb": {CategoryWeight, 453.59237},

	// Volume, canonical unit: milliliter
	"ml":   {CategoryVolume, 1},
	"l":    {CategoryVolume, 1000},
	"tsp":  {CategoryVolume, 4.92892159375},
	"tbsp": {CategoryVolume, 14.78676478125},
	"floz": {CategoryVolume, 29.5735295625},
	"cup":  {CategoryVolume, 236.5882365},

	// Count, canonical unit: single unit
	"unit":  {CategoryCount, 1},
	"dozen": {CategoryCount, 12},
}

// UnknownUnitError reports a unit symbol missing from the unit table.
type UnknownUnitError struct {
	Unit string
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("unknown unit %q", e.Unit)
}

// IncompatibleUnitsError reports a conversion attempt between units in
// different measurement categories.
type IncompatibleUnitsError struct {
	From string
	To   string
}

func (e *IncompatibleUnitsError) Error() string {
	return fmt.Sprintf("cannot convert between %q and %q: incompatible measurement categories", e.From, e.To)
}

// CategoryOf returns the measurement category of a unit.
func CategoryOf(unit string) (Category, error) {
	def, ok := registry[unit]
	if !ok {
		return "", &UnknownUnitError{Unit: unit}
	}
	return def.category, nil
}

// IsKnown reports whether the unit symbol exists in the unit table.
func IsKnown(unit string) bool {
	_, ok := registry[unit]
	return ok
}

// AreCompatible reports whether two units share a measurement category.
// Unknown units are compatible with nothing, including themselves; this
// never returns an error so callers can branch on the bool alone.
func AreCompatible(unitA, unitB string) bool {
	a, okA := registry[unitA]
	b, okB := registry[unitB]
	if !okA || !okB {
		return false
	}
	return a.category == b.category
}

// Convert converts a quantity from one unit to another within the same
// measurement category. Zero converts to zero. Callers validate sign;
// negative quantities pass through arithmetically.
func Convert(quantity float64, fromUnit, toUnit string) (float64, error) {
	from, ok := registry[fromUnit]
	if !ok {
		return 0, &UnknownUnitError{Unit: fromUnit}
	}
	to, ok := registry[toUnit]
	if !ok {
		return 0, &UnknownUnitError{Unit: toUnit}
	}
	if from.category != to.category {
		return 0, &IncompatibleUnitsError{From: fromUnit, To: toUnit}
	}
	return quantity * from.toBase / to.toBase, nil
}

// All returns every known unit symbol grouped by category. The TUI uses
// this for display; the slices are fresh copies on every call.
func All() map[Category][]string {
	out := make(map[Category][]string)
	for symbol, def := range registry {
		out[def.category] = append(out[def.category], symbol)
	}
	return out
}
