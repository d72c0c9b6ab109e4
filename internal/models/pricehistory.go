package models

import (
	"errors"
	"time"
)

// PriceEntityType identifies which kind of entity a price change belongs to.
type PriceEntityType string

const (
	PriceEntityIngredient PriceEntityType = "INGREDIENT"
	PriceEntityProduct    PriceEntityType = "PRODUCT"
)

func (t PriceEntityType) String() string {
	return string(t)
}

// PriceChange is one append-only record of a tracked value changing: an
// ingredient's cost per base unit or a product's suggested price. Rows are
// never updated or deleted.
type PriceChange struct {
	ID            string
	EntityType    PriceEntityType
	EntityID      string
	OldValue      float64
	NewValue      float64
	ChangeAmount  float64
	ChangePercent float64
	Reason        string
	RecordedAt    time.Time
}

// NewPriceChange creates a price change record, deriving the change amount
// and percentage. A zero old value yields a 0 change percentage since the
// relative change is undefined.
func NewPriceChange(id string, entityType PriceEntityType, entityID string, oldValue, newValue float64, reason string) (*PriceChange, error) {
	var errs []error

	if entityType != PriceEntityIngredient && entityType != PriceEntityProduct {
		errs = append(errs, errors.New("invalid entity type"))
	}
	if entityID == "" {
		errs = append(errs, errors.New("entity ID is required"))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	changePercent := 0.0
	if oldValue != 0 {
		changePercent = (newValue - oldValue) / oldValue * 100
	}

	return &PriceChange{
		ID:            id,
		EntityType:    entityType,
		EntityID:      entityID,
		OldValue:      oldValue,
		NewValue:      newValue,
		ChangeAmount:  newValue - oldValue,
		ChangePercent: changePercent,
		Reason:        reason,
		RecordedAt:    time.Now().UTC(),
	}, nil
}

// Increased reports whether the change raised the tracked value.
func (c *PriceChange) Increased() bool {
	return c.NewValue > c.OldValue
}

// PriceStats aggregates the price history of one entity. Computed on read
// over all of its entries in chronological order, never maintained
// incrementally.
type PriceStats struct {
	Count         int
	First         float64
	Last          float64
	Min           float64
	Max           float64
	Average       float64
	TotalIncrease float64
	TotalDecrease float64
}

// ComputePriceStats derives aggregate statistics from entries ordered
// oldest first. First/Last/Min/Max/Average describe the recorded new
// values; TotalIncrease and TotalDecrease sum the positive and negative
// change amounts separately (TotalDecrease is reported as a positive
// magnitude).
func ComputePriceStats(entries []*PriceChange) PriceStats {
	if len(entries) == 0 {
		return PriceStats{}
	}

	stats := PriceStats{
		Count: len(entries),
		First: entries[0].NewValue,
		Last:  entries[len(entries)-1].NewValue,
		Min:   entries[0].NewValue,
		Max:   entries[0].NewValue,
	}

	sum := 0.0
	for _, e := range entries {
		v := e.NewValue
		sum += v
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
		if e.ChangeAmount > 0 {
			stats.TotalIncrease += e.ChangeAmount
		} else {
			stats.TotalDecrease += -e.ChangeAmount
		}
	}
	stats.Average = sum / float64(len(entries))

	return stats
}
