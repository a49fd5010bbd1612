package patrimony

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/etnz/patrimony/date"
)

// Flows are the money movements consumed by one Advance.
type Flows struct {
	Contributions Money // value of the transactions increasing positions.
	Withdrawals   Money // value of the transactions decreasing positions.
	Dividends     Money
	// Delta is the signed change of quantity per asset.
	Delta map[string]Quantity
}

// NetContribution returns contributions minus withdrawals.
func (f Flows) NetContribution() Money { return f.Contributions.Sub(f.Withdrawals) }

// Replayer replays a Ledger against ascending boundaries.
//
// It owns the running position and net invested amount of every asset.
type Replayer struct {
	ledger   *Ledger
	cur      string
	tx, div  int // cursors on the next unconsumed entries.
	last     date.Date
	position map[string]Quantity
	invested map[string]Money
}

// NewReplayer returns a replayer positioned before the first entry of ledger.
func NewReplayer(ledger *Ledger, currency string) *Replayer {
	return &Replayer{
		ledger:   ledger,
		cur:      currency,
		position: make(map[string]Quantity),
		invested: make(map[string]Money),
	}
}

// Advance consumes every transaction and dividend dated on or before
// boundary that was not consumed yet, and returns their flows.
//
// Boundaries must be passed in ascending order. An entry with a kind outside
// the closed set of kinds is an error.
func (r *Replayer) Advance(boundary date.Date) (Flows, error) {
	if boundary.Before(r.last) {
		return Flows{}, fmt.Errorf("boundary %v is before the previous boundary %v", boundary, r.last)
	}
	r.last = boundary

	flows := Flows{
		Contributions: M(0, r.cur),
		Withdrawals:   M(0, r.cur),
		Dividends:     M(0, r.cur),
		Delta:         make(map[string]Quantity),
	}
	txs := r.ledger.transactions
	for ; r.tx < len(txs) && !txs[r.tx].Date.After(boundary); r.tx++ {
		tx := txs[r.tx]
		qty, value := tx.Quantity, tx.Value
		switch tx.Kind.sign() {
		case 1:
			flows.Contributions = flows.Contributions.Add(value)
		case -1:
			flows.Withdrawals = flows.Withdrawals.Add(value)
			qty, value = qty.Neg(), value.Neg()
		default:
			return Flows{}, fmt.Errorf("transaction of %q on %v: unknown transaction kind %q", tx.Asset, tx.Date, tx.Kind)
		}
		r.position[tx.Asset] = r.position[tx.Asset].Add(qty)
		r.invested[tx.Asset] = r.Invested(tx.Asset).Add(value)
		flows.Delta[tx.Asset] = flows.Delta[tx.Asset].Add(qty)
	}
	divs := r.ledger.dividends
	for ; r.div < len(divs) && !divs[r.div].Date.After(boundary); r.div++ {
		flows.Dividends = flows.Dividends.Add(divs[r.div].Value)
	}
	return flows, nil
}

// Position returns the running quantity of an asset.
func (r *Replayer) Position(asset string) Quantity { return r.position[asset] }

// Invested returns the net invested amount of an asset.
func (r *Replayer) Invested(asset string) Money {
	if m, ok := r.invested[asset]; ok {
		return m
	}
	return M(0, r.cur)
}

// Open iterates over the open positions in ascending asset order.
func (r *Replayer) Open() iter.Seq2[string, Quantity] {
	return func(yield func(string, Quantity) bool) {
		for _, asset := range slices.Sorted(maps.Keys(r.position)) {
			qty := r.position[asset]
			if !qty.IsOpen() {
				continue
			}
			if !yield(asset, qty) {
				return
			}
		}
	}
}
