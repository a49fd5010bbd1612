package options

import (
	"context"
	"maps"
	"slices"

	"github.com/etnz/patrimony"
	"github.com/etnz/patrimony/date"
	"github.com/shopspring/decimal"
)

// Currency is the currency of the cash flow report.
const Currency = "BRL"

// USD is the currency of the international operations.
const USD = "USD"

// TotalLabel is the month label of the total row.
const TotalLabel = "TOTAL"

// MonthFlow is the net cash flow of a month, positive when money is received.
type MonthFlow struct {
	Month string          `json:"month"` // "2006-01" or TotalLabel.
	BR    patrimony.Money `json:"br"`
	USD   patrimony.Money `json:"us_usd"`
	US    patrimony.Money `json:"us"` // USD converted to BRL.
	Total patrimony.Money `json:"total"`
}

// Report is the options cash flow, month by month.
type Report struct {
	Months []MonthFlow                `json:"months"`
	Total  MonthFlow                  `json:"total"`
	Rates  map[string]decimal.Decimal `json:"rates,omitempty"` // USD/BRL rate by opening day.
}

// Compute computes the monthly cash flow of the BR and US operations.
//
// Operations without an opening date are skipped. US flows are converted
// with the rate of their opening date.
func Compute(ctx context.Context, br, us []Operation, rates *Rates) (*Report, error) {
	if rates == nil {
		rates = NewRates(nil, decimal.Zero)
	}
	flows := make(map[string]*MonthFlow)
	month := func(on date.Date) *MonthFlow {
		key := date.MonthKey(on)
		f, ok := flows[key]
		if !ok {
			f = &MonthFlow{Month: key, BR: zero(), USD: usd(decimal.Zero), US: zero(), Total: zero()}
			flows[key] = f
		}
		return f
	}

	for _, op := range br {
		if op.Opened.IsZero() {
			continue
		}
		opening, closing, err := op.legs()
		if err != nil {
			return nil, err
		}
		f := month(op.Opened)
		f.BR = f.BR.Add(brl(opening))
		if op.IsClosed() {
			f := month(op.Closed)
			f.BR = f.BR.Add(brl(closing))
		}
	}
	for _, op := range us {
		if op.Opened.IsZero() {
			continue
		}
		opening, closing, err := op.legs()
		if err != nil {
			return nil, err
		}
		rate := rates.Rate(ctx, op.Opened)
		f := month(op.Opened)
		f.USD = f.USD.Add(usd(opening))
		f.US = f.US.Add(brl(opening.Mul(rate)))
		if op.IsClosed() {
			f := month(op.Closed)
			f.USD = f.USD.Add(usd(closing))
			f.US = f.US.Add(brl(closing.Mul(rate)))
		}
	}

	report := &Report{
		Total: MonthFlow{Month: TotalLabel, BR: zero(), USD: usd(decimal.Zero), US: zero(), Total: zero()},
		Rates: make(map[string]decimal.Decimal),
	}
	for day, rate := range rates.Used() {
		report.Rates[day.String()] = rate
	}
	for _, key := range slices.Sorted(maps.Keys(flows)) {
		f := *flows[key]
		f.Total = f.BR.Add(f.US)
		report.Months = append(report.Months, f)
		report.Total.BR = report.Total.BR.Add(f.BR)
		report.Total.USD = report.Total.USD.Add(f.USD)
		report.Total.US = report.Total.US.Add(f.US)
	}
	report.Total.Total = report.Total.BR.Add(report.Total.US)
	return report, nil
}

func zero() patrimony.Money                 { return patrimony.M(0, Currency) }
func brl(v decimal.Decimal) patrimony.Money { return patrimony.M(v, Currency) }
func usd(v decimal.Decimal) patrimony.Money { return patrimony.M(v, USD) }
