// Package options computes the monthly cash flow of option trades held in
// a Brazilian and an international account.
//
// International premiums are in US dollars and are converted to reais with
// the USD/BRL rate of the opening date, the closing leg included.
package options

import (
	"fmt"
	"strings"

	"github.com/etnz/patrimony/date"
	"github.com/shopspring/decimal"
)

// Side is the direction of the opening trade.
type Side string

const (
	Sell Side = "sell" // premium received at opening, paid back at closing.
	Buy  Side = "buy"  // premium paid at opening, received at closing.
)

var sideAliases = map[string]Side{
	"venda":  Sell,
	"sell":   Sell,
	"compra": Buy,
	"buy":    Buy,
}

// ParseSide parses an operation side, "Venda" or "Compra" as found in the
// trade journals, or "sell" or "buy".
func ParseSide(s string) (Side, error) {
	if side, ok := sideAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return side, nil
	}
	return "", fmt.Errorf("unknown option operation %q", s)
}

// Operation is an option trade.
type Operation struct {
	Opened       date.Date // zero when the journal has no opening date.
	Side         Side
	OpenPremium  decimal.Decimal // premium per option at opening.
	Quantity     decimal.Decimal
	OpenFees     decimal.Decimal
	Closed       date.Date // zero while the operation is open.
	ClosePremium decimal.Decimal
	CloseFees    decimal.Decimal
}

// IsClosed reports whether the operation has a closing leg.
func (op Operation) IsClosed() bool { return !op.Closed.IsZero() }

// legs returns the opening and closing flows of the operation, in the
// operation currency. Received money is positive.
func (op Operation) legs() (opening, closing decimal.Decimal, err error) {
	openValue := op.OpenPremium.Mul(op.Quantity)
	closeValue := op.ClosePremium.Mul(op.Quantity)
	switch op.Side {
	case Sell:
		opening = openValue.Sub(op.OpenFees)
		if op.IsClosed() {
			closing = closeValue.Add(op.CloseFees).Neg()
		}
	case Buy:
		opening = openValue.Add(op.OpenFees).Neg()
		if op.IsClosed() {
			closing = closeValue.Sub(op.CloseFees)
		}
	default:
		return decimal.Zero, decimal.Zero, fmt.Errorf("unknown option operation %q", op.Side)
	}
	return opening, closing, nil
}
