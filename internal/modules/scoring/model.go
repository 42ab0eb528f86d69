// README: Scoring query and ranked result types.
package scoring

import (
	"smartdrive/internal/modules/catalog"
	"smartdrive/internal/modules/slots"
)

// Query holds the criteria used to filter and score listings. Empty strings and zero
// budgets match everything.
type Query struct {
	Category  string
	Fuel      string
	Gearbox   string
	City      string
	BudgetMax int
	BudgetMin int
}

// QueryFromSlots keeps only the concrete slots; Unset and Any impose no constraint.
func QueryFromSlots(s slots.Slots) Query {
	var q Query
	q.Category, _ = s.Category.Str()
	q.Fuel, _ = s.Fuel.Str()
	q.Gearbox, _ = s.Gearbox.Str()
	q.City, _ = s.City.Str()
	q.BudgetMax, _ = s.BudgetMax.Int()
	return q
}

func QueryFromFilter(f catalog.Filter) Query {
	return Query{
		Category:  f.Type,
		Fuel:      f.Fuel,
		Gearbox:   f.Gearbox,
		City:      f.City,
		BudgetMax: f.PriceMax,
		BudgetMin: f.PriceMin,
	}
}

// Listing is the record type being ranked.
type Listing = catalog.Listing

// Label is the qualitative rating derived from a score.
type Label string

const (
	LabelExcellent Label = "excellent"
	LabelGood      Label = "good"
	LabelFair      Label = "fair"
	LabelAvoid     Label = "avoid"
)

// Result is a listing with its score. It serializes flat, in the listing's own shape.
type Result struct {
	catalog.Listing
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
	Why     string   `json:"why"`
	Label   Label    `json:"label"`
}
