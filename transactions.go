package patrimony

import (
	"fmt"
	"strings"

	"github.com/etnz/patrimony/date"
)

// Kind is the closed set of transaction kinds a ledger can hold.
type Kind string

// Transaction kinds. The first three increase the position and the net
// invested amount of the asset, the others decrease them.
const (
	KindContribution     Kind = "contribution"
	KindAdjustmentCredit Kind = "adjustment-credit"
	KindBuy              Kind = "buy"
	KindWithdrawal       Kind = "withdrawal"
	KindAdjustmentDebit  Kind = "adjustment-debit"
	KindRedemption       Kind = "redemption"
	KindSell             Kind = "sell"
)

// kindAliases maps the tags used in the family ledgers to their Kind.
var kindAliases = map[string]Kind{
	"APORTE":                      KindContribution,
	"APORTE (AJUSTE ZERAMENTO)":   KindAdjustmentCredit,
	"COMPRA":                      KindBuy,
	"RETIRADA":                    KindWithdrawal,
	"RETIRADA (AJUSTE ZERAMENTO)": KindAdjustmentDebit,
	"RESGATE":                     KindRedemption,
	"VENDA":                       KindSell,
}

// ParseKind parses either a Kind name ("buy") or a ledger tag ("COMPRA").
// Any other value is an error: the set of kinds is closed.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	if k := Kind(strings.ToLower(s)); k.sign() != 0 {
		return k, nil
	}
	if k, ok := kindAliases[strings.ToUpper(s)]; ok {
		return k, nil
	}
	return "", fmt.Errorf("unknown transaction kind %q", s)
}

// sign returns +1 for kinds that increase a position, -1 for kinds that
// decrease it and 0 for anything outside the closed set.
func (k Kind) sign() int {
	switch k {
	case KindContribution, KindAdjustmentCredit, KindBuy:
		return 1
	case KindWithdrawal, KindAdjustmentDebit, KindRedemption, KindSell:
		return -1
	default:
		return 0
	}
}

// Transaction is a movement of money and units in or out of an asset.
type Transaction struct {
	Asset    string
	Date     date.Date
	Kind     Kind
	Quantity Quantity // units moved, always positive, the kind gives the direction.
	Value    Money    // total value moved, always positive.
}

// Dividend is an income paid by an asset.
type Dividend struct {
	Asset string
	Date  date.Date
	Value Money
}
