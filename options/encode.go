package options

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/patrimony/date"
	"github.com/shopspring/decimal"
)

// Market identifies the account of a journal. International journals may
// name their quantity field "quantidade_opcoes".
type Market int

const (
	BR Market = iota
	US
)

func (m Market) String() string {
	if m == US {
		return "us"
	}
	return "br"
}

type record struct {
	Opened          string              `json:"data_operacao"`
	Operation       string              `json:"operacao"`
	OpenPremium     decimal.NullDecimal `json:"preco_opcao_abertura"`
	Quantity        decimal.NullDecimal `json:"quantidade"`
	OptionsQuantity decimal.NullDecimal `json:"quantidade_opcoes"`
	Fees            decimal.NullDecimal `json:"taxas"`
	OpenFees        decimal.NullDecimal `json:"taxas_abertura"`
	CloseFees       decimal.NullDecimal `json:"taxas_fechamento"`
	Status          string              `json:"status"`
	Closed          string              `json:"data_fechamento"`
	ClosePremium    decimal.NullDecimal `json:"preco_opcao_fechamento"`
}

// closedStatus are the status of an operation with a closing leg.
var closedStatus = map[string]bool{"fechada": true, "closed": true}

// Decode reads an options journal: {"operacoes":[...]}.
//
// Missing amounts are zero. Per leg fees "taxas_abertura" and
// "taxas_fechamento" take precedence over "taxas", charged on each leg. A
// closing leg is recorded only for closed operations with a closing date.
func Decode(r io.Reader, market Market) ([]Operation, error) {
	var doc struct {
		Operations []record `json:"operacoes"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid %v options document: %w", market, err)
	}
	ops := make([]Operation, 0, len(doc.Operations))
	var errs []error
	for i, rec := range doc.Operations {
		op, err := rec.decode(market)
		if err != nil {
			errs = append(errs, fmt.Errorf("%v operation #%d: %w", market, i, err))
			continue
		}
		ops = append(ops, op)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return ops, nil
}

func (rec record) decode(market Market) (Operation, error) {
	side, err := ParseSide(rec.Operation)
	if err != nil {
		return Operation{}, err
	}
	quantity := rec.Quantity
	if market == US && rec.OptionsQuantity.Valid {
		quantity = rec.OptionsQuantity
	}
	op := Operation{
		Side:         side,
		OpenPremium:  rec.OpenPremium.Decimal,
		Quantity:     quantity.Decimal,
		OpenFees:     fees(rec.OpenFees, rec.Fees),
		ClosePremium: rec.ClosePremium.Decimal,
		CloseFees:    fees(rec.CloseFees, rec.Fees),
	}
	if rec.Opened != "" {
		if op.Opened, err = date.Parse(rec.Opened); err != nil {
			return Operation{}, err
		}
	}
	if closedStatus[strings.ToLower(rec.Status)] && rec.Closed != "" {
		if op.Closed, err = date.Parse(rec.Closed); err != nil {
			return Operation{}, err
		}
	}
	return op, nil
}

// fees returns the leg fees when set, the operation fees otherwise.
func fees(leg, all decimal.NullDecimal) decimal.Decimal {
	if leg.Valid {
		return leg.Decimal
	}
	return all.Decimal
}
