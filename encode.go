package patrimony

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/etnz/patrimony/date"
	"github.com/shopspring/decimal"
)

func init() {
	// decimals are written as JSON numbers in every document.
	decimal.MarshalJSONWithoutQuotes = true
}

// movement is a record of the transactions and dividends documents.
type movement struct {
	Asset    string              `json:"ativo"`
	Date     string              `json:"data"`
	Kind     string              `json:"tipo"`
	Quantity decimal.NullDecimal `json:"quantidade"`
	Value    *decimal.Decimal    `json:"valor_total"`
}

type movements struct {
	Movements []movement `json:"movimentacoes"`
}

// common checks of a movement: asset, date and value are mandatory.
func (m movement) decode(currency string) (string, date.Date, Money, error) {
	var errs []error
	if m.Asset == "" {
		errs = append(errs, errors.New("missing \"ativo\""))
	}
	on, err := date.Parse(m.Date)
	if err != nil {
		errs = append(errs, err)
	}
	var value Money
	if m.Value == nil {
		errs = append(errs, errors.New("missing \"valor_total\""))
	} else {
		value = M(*m.Value, currency)
	}
	return m.Asset, on, value, errors.Join(errs...)
}

func decodeMovements(r io.Reader) ([]movement, error) {
	var doc movements
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid movements document: %w", err)
	}
	return doc.Movements, nil
}

// DecodeTransactions reads a transactions document.
//
// Every record is checked, and all the errors found are returned together.
// Amounts are in 'currency'.
func DecodeTransactions(r io.Reader, currency string) ([]Transaction, error) {
	records, err := decodeMovements(r)
	if err != nil {
		return nil, err
	}
	txs := make([]Transaction, 0, len(records))
	var errs []error
	for i, rec := range records {
		asset, on, value, err := rec.decode(currency)
		kind, kerr := ParseKind(rec.Kind)
		if err := errors.Join(err, kerr); err != nil {
			errs = append(errs, fmt.Errorf("transaction #%d: %w", i, err))
			continue
		}
		txs = append(txs, Transaction{
			Asset:    asset,
			Date:     on,
			Kind:     kind,
			Quantity: Q(rec.Quantity.Decimal), // a missing quantity is zero.
			Value:    value,
		})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return txs, nil
}

// DecodeDividends reads a dividends document.
func DecodeDividends(r io.Reader, currency string) ([]Dividend, error) {
	records, err := decodeMovements(r)
	if err != nil {
		return nil, err
	}
	divs := make([]Dividend, 0, len(records))
	var errs []error
	for i, rec := range records {
		asset, on, value, err := rec.decode(currency)
		if err != nil {
			errs = append(errs, fmt.Errorf("dividend #%d: %w", i, err))
			continue
		}
		divs = append(divs, Dividend{Asset: asset, Date: on, Value: value})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return divs, nil
}

// DecodeQuotes reads a quote table: asset id to month label to price.
//
// Null, zero and negative prices are "no quote" and skipped. An invalid
// month label, or two labels of the same month for an asset, is an error.
func DecodeQuotes(r io.Reader) (*Quotes, error) {
	var doc map[string]map[string]decimal.NullDecimal
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid quotes document: %w", err)
	}
	q := NewQuotes()
	var errs []error
	for _, asset := range slices.Sorted(maps.Keys(doc)) {
		prices := doc[asset]
		labels := make(map[date.Date]string, len(prices))
		for _, label := range slices.Sorted(maps.Keys(prices)) {
			month, err := date.ParseMonth(label)
			if err != nil {
				errs = append(errs, fmt.Errorf("quotes of %q: %w", asset, err))
				continue
			}
			if other, dup := labels[month]; dup {
				errs = append(errs, fmt.Errorf("quotes of %q: labels %q and %q are the same month", asset, other, label))
				continue
			}
			labels[month] = label
			if price := prices[label]; price.Valid {
				q.Add(asset, month, price.Decimal)
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return q, nil
}

type categoryDoc struct {
	Assets []struct {
		Name  string `json:"nome"`
		Class string `json:"macro_classe"`
	} `json:"ativos"`
}

// DecodeCategories reads an asset to category map.
// Assets without a class are Uncategorized.
func DecodeCategories(r io.Reader) (*Categories, error) {
	var doc categoryDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid categories document: %w", err)
	}
	c := NewCategories()
	var errs []error
	for i, a := range doc.Assets {
		if a.Name == "" {
			errs = append(errs, fmt.Errorf("category #%d: missing \"nome\"", i))
			continue
		}
		c.Set(a.Name, a.Class)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

// BenchmarkMonth holds the monthly rates, in percent, of the benchmark
// series for one month.
type BenchmarkMonth struct {
	Month date.Date
	Rates map[string]float64
}

// DecodeBenchmarks reads the benchmark rates document.
func DecodeBenchmarks(r io.Reader) ([]BenchmarkMonth, error) {
	var doc []struct {
		Month string             `json:"month"`
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid benchmarks document: %w", err)
	}
	months := make([]BenchmarkMonth, 0, len(doc))
	var errs []error
	for i, m := range doc {
		on, err := date.ParseMonth(m.Month)
		if err != nil {
			errs = append(errs, fmt.Errorf("benchmark #%d: %w", i, err))
			continue
		}
		months = append(months, BenchmarkMonth{Month: on, Rates: m.Rates})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return months, nil
}

// Targets maps a category to its target fraction of the total value.
type Targets map[string]decimal.Decimal

// DecodeTargets reads the allocation targets. Fractions must be in [0, 1].
func DecodeTargets(r io.Reader) (Targets, error) {
	var doc Targets
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid targets document: %w", err)
	}
	var errs []error
	for cat, f := range doc {
		if f.IsNegative() || f.GreaterThan(decimal.NewFromInt(1)) {
			errs = append(errs, fmt.Errorf("target of %q is %v want a fraction in [0, 1]", cat, f))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return doc, nil
}
