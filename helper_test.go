package patrimony

import (
	"strings"
	"testing"

	"github.com/etnz/patrimony/date"
	"github.com/shopspring/decimal"
)

// BRL is a helper for test to create reais from const
func BRL(v float64) Money { return M(v, "BRL") }

// newTx is a helper for test to create a transaction from const
func newTx(day, asset string, kind Kind, quantity, value float64) Transaction {
	return Transaction{Asset: asset, Date: date.MustParse(day), Kind: kind, Quantity: Q(quantity), Value: BRL(value)}
}

// newDiv is a helper for test to create a dividend from const
func newDiv(day, asset string, value float64) Dividend {
	return Dividend{Asset: asset, Date: date.MustParse(day), Value: BRL(value)}
}

// newQuotes builds a quote table from "asset", "label", price triplets.
func newQuotes(t *testing.T, quotes ...any) *Quotes {
	t.Helper()
	q := NewQuotes()
	for i := 0; i+2 < len(quotes); i += 3 {
		month, err := date.ParseMonth(quotes[i+1].(string))
		if err != nil {
			t.Fatalf("invalid label: %v", err)
		}
		q.Add(quotes[i].(string), month, decimal.NewFromFloat(quotes[i+2].(float64)))
	}
	return q
}

// newCategories builds a category map from "asset:category" pairs.
func newCategories(pairs ...string) *Categories {
	c := NewCategories()
	for _, p := range pairs {
		asset, cat, _ := strings.Cut(p, ":")
		c.Set(asset, cat)
	}
	return c
}
