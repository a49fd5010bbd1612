package patrimony

import (
	"github.com/etnz/patrimony/date"
	"github.com/shopspring/decimal"
)

// Quotes is the monthly quote table of the portfolio assets.
//
// Each quote is dated on the first day of its labelled month. Only
// positive quotes are stored: a missing, null, zero or negative quote means
// "no quote".
type Quotes struct {
	assets map[string]*date.History[decimal.Decimal]
}

// NewQuotes returns an empty quote table.
func NewQuotes() *Quotes {
	return &Quotes{assets: make(map[string]*date.History[decimal.Decimal])}
}

// Add records the price of an asset for the month containing 'month'.
// Non positive prices are ignored.
func (q *Quotes) Add(asset string, month date.Date, price decimal.Decimal) {
	if !price.IsPositive() {
		return
	}
	h, ok := q.assets[asset]
	if !ok {
		h = new(date.History[decimal.Decimal])
		q.assets[asset] = h
	}
	h.Append(month.StartOf(date.Monthly), price)
}

// history returns the quotes of an asset, looking up the exact asset id
// first and its base ticker second. It returns nil if neither has a quote.
func (q *Quotes) history(asset string) *date.History[decimal.Decimal] {
	if h, ok := q.assets[asset]; ok && h.Len() > 0 {
		return h
	}
	if h, ok := q.assets[BaseTicker(asset)]; ok && h.Len() > 0 {
		return h
	}
	return nil
}

// PriceResolver finds the best known price of an asset for a period.
type PriceResolver struct {
	quotes *Quotes
	cur    string
}

// NewPriceResolver returns a resolver over quotes, pricing in currency.
func NewPriceResolver(quotes *Quotes, currency string) *PriceResolver {
	return &PriceResolver{quotes: quotes, cur: currency}
}

// Resolve returns the price of the asset for the period ending on cutoff.
//
// The quote of the cutoff's month is used when present. Otherwise the
// latest quote dated on or before the cutoff is used, never a later one.
// If there is none, Resolve returns a zero price and false.
func (r *PriceResolver) Resolve(asset string, cutoff date.Date) (Money, bool) {
	h := r.quotes.history(asset)
	if h == nil {
		return M(0, r.cur), false
	}
	if price, ok := h.Get(cutoff.StartOf(date.Monthly)); ok {
		return M(price, r.cur), true
	}
	if price, ok := h.ValueAsOf(cutoff); ok {
		return M(price, r.cur), true
	}
	return M(0, r.cur), false
}
