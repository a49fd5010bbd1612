package patrimony

import (
	"fmt"
	"iter"

	"github.com/etnz/patrimony/date"
)

// Holdings is a read only view on the open positions.
type Holdings interface {
	Open() iter.Seq2[string, Quantity]
}

// Valuation is the value of the portfolio at a boundary.
type Valuation struct {
	On         date.Date
	Total      Money
	ByCategory map[string]Money // every known category, possibly zero.
	Assets     map[string]Money // value of every open position.
}

// Diagnostic reports a condition that degraded the valuation without
// stopping it.
type Diagnostic struct {
	On      date.Date `json:"date"`
	Asset   string    `json:"asset"`
	Message string    `json:"message"`
}

func (d Diagnostic) String() string { return fmt.Sprintf("%v %s: %s", d.On, d.Asset, d.Message) }

// Valuer values the open positions of holdings.
type Valuer struct {
	holdings   Holdings
	prices     *PriceResolver
	categories *Categories
	cur        string
}

// NewValuer returns a Valuer of holdings.
func NewValuer(holdings Holdings, prices *PriceResolver, categories *Categories, currency string) *Valuer {
	return &Valuer{holdings: holdings, prices: prices, categories: categories, cur: currency}
}

// Value returns the valuation of the open positions at boundary.
//
// An asset whose price cannot be resolved is valued 0 and reported as a
// Diagnostic.
func (v *Valuer) Value(boundary date.Date) (Valuation, []Diagnostic) {
	val := Valuation{
		On:         boundary,
		Total:      M(0, v.cur),
		ByCategory: make(map[string]Money),
		Assets:     make(map[string]Money),
	}
	for _, cat := range v.categories.All() {
		val.ByCategory[cat] = M(0, v.cur)
	}

	var diags []Diagnostic
	for asset, qty := range v.holdings.Open() {
		price, ok := v.prices.Resolve(asset, boundary)
		if !ok {
			diags = append(diags, Diagnostic{On: boundary, Asset: asset, Message: "no price on or before this date"})
		}
		value := price.Mul(qty)
		cat := v.categories.Resolve(asset)
		val.Assets[asset] = value
		val.ByCategory[cat] = val.ByCategory[cat].Add(value)
		val.Total = val.Total.Add(value)
	}
	return val, diags
}
