package patrimony

import (
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Holding is an open position in the ranking.
type Holding struct {
	Asset    string   `json:"asset"`
	Category string   `json:"category"`
	Quantity Quantity `json:"quantity"`
	Invested Money    `json:"invested"`
	Value    Money    `json:"value"`
	Return   Percent  `json:"return"` // (value - invested) / invested, 0 if nothing is invested.
	Weight   Percent  `json:"weight"` // share of the total value.
}

// Rank lists the open positions of the replayer, valued by val, by
// decreasing value. Equal values are sorted by asset.
func Rank(r *Replayer, val Valuation, categories *Categories) []Holding {
	var holdings []Holding
	for asset, qty := range r.Open() {
		value, ok := val.Assets[asset]
		if !ok {
			value = M(0, r.cur)
		}
		invested := r.Invested(asset)
		holdings = append(holdings, Holding{
			Asset:    asset,
			Category: categories.Resolve(asset),
			Quantity: qty,
			Invested: invested,
			Value:    value,
			Return:   returnOn(value, invested),
			Weight:   share(value, val.Total),
		})
	}
	slices.SortStableFunc(holdings, func(a, b Holding) int {
		if c := b.Value.Decimal().Cmp(a.Value.Decimal()); c != 0 {
			return c
		}
		return strings.Compare(a.Asset, b.Asset)
	})
	return holdings
}

// AllocationGap compares the value of a category with its target.
type AllocationGap struct {
	Category    string  `json:"category"`
	Target      Percent `json:"target"`
	TargetValue Money   `json:"target_value"`
	Actual      Money   `json:"actual"`
	Gap         Money   `json:"gap"` // positive when the category is under its target.
}

// Allocate returns the allocation gap of every targeted category, sorted by
// category.
func Allocate(val Valuation, targets Targets) []AllocationGap {
	var gaps []AllocationGap
	for _, cat := range slices.Sorted(maps.Keys(targets)) {
		fraction := targets[cat]
		actual, ok := val.ByCategory[cat]
		if !ok {
			actual = M(0, val.Total.Currency())
		}
		target := M(val.Total.Decimal().Mul(fraction), val.Total.Currency())
		gaps = append(gaps, AllocationGap{
			Category:    cat,
			Target:      Percent(fraction.Mul(decimal.NewFromInt(100)).InexactFloat64()),
			TargetValue: target,
			Actual:      actual,
			Gap:         target.Sub(actual),
		})
	}
	return gaps
}
