package patrimony

import (
	"slices"

	"github.com/etnz/patrimony/date"
)

// Ledger holds the transactions and dividends of a portfolio.
//
// In a Ledger transactions and dividends are always in chronological order,
// entries on the same day keep their original order.
type Ledger struct {
	transactions []Transaction
	dividends    []Dividend
}

// NewLedger creates a ledger from unsorted transactions and dividends.
// The slices are copied.
func NewLedger(transactions []Transaction, dividends []Dividend) *Ledger {
	l := &Ledger{
		transactions: slices.Clone(transactions),
		dividends:    slices.Clone(dividends),
	}
	slices.SortStableFunc(l.transactions, func(a, b Transaction) int { return compareDates(a.Date, b.Date) })
	slices.SortStableFunc(l.dividends, func(a, b Dividend) int { return compareDates(a.Date, b.Date) })
	return l
}

func compareDates(a, b date.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

// First returns the date of the earliest transaction.
func (l *Ledger) First() (date.Date, bool) {
	if len(l.transactions) == 0 {
		return date.Date{}, false
	}
	return l.transactions[0].Date, true
}
