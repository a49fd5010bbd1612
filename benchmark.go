package patrimony

import (
	"fmt"
	"maps"
	"slices"

	"github.com/etnz/patrimony/date"
)

// Benchmarks holds the monthly rates, in percent, of reference series such
// as "cdi" or "ifix".
type Benchmarks struct {
	rates map[string]map[date.Date]float64 // name, first day of month, rate.
}

// NewBenchmarks indexes the monthly rates by series.
func NewBenchmarks(months []BenchmarkMonth) *Benchmarks {
	b := &Benchmarks{rates: make(map[string]map[date.Date]float64)}
	for _, m := range months {
		on := m.Month.StartOf(date.Monthly)
		for name, rate := range m.Rates {
			series, ok := b.rates[name]
			if !ok {
				series = make(map[date.Date]float64)
				b.rates[name] = series
			}
			series[on] = rate
		}
	}
	return b
}

// Names returns the series names in ascending order.
func (b *Benchmarks) Names() []string {
	if b == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(b.rates))
}

// Rate returns the rate of a series for the month containing 'on'.
// A missing rate is 0.
func (b *Benchmarks) Rate(name string, on date.Date) float64 {
	if b == nil {
		return 0
	}
	return b.rates[name][on.StartOf(date.Monthly)]
}

// Compound returns the compounded rate of a series over the months of r.
func (b *Benchmarks) Compound(name string, r date.Range) Percent {
	index := 1.0
	for m := range date.Months(r.From, r.To) {
		index *= 1 + b.Rate(name, m)/100
	}
	return Percent((index - 1) * 100)
}

// WindowPoint is the cumulative return at one month of a Window.
type WindowPoint struct {
	On         date.Date
	Portfolio  Percent
	Benchmarks map[string]Percent
}

func (p WindowPoint) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("month", date.MonthKey(p.On))
	w.Append("portfolio", p.Portfolio)
	w.Optional("benchmarks", p.Benchmarks)
	return w.MarshalJSON()
}

// Window is the cumulative return of the portfolio and of the benchmarks
// over trailing months.
type Window struct {
	Name   string        `json:"name"`
	Months int           `json:"months"` // 0 for the full history.
	Points []WindowPoint `json:"points"`
}

// WindowName returns the name of a window over trailing months: "12m" or
// "all" for the full history.
func WindowName(months int) string {
	if months <= 0 {
		return "all"
	}
	return fmt.Sprintf("%dm", months)
}

// Chain computes the cumulative returns over the last 'months' records, or
// over all of them when months is 0 or exceeds the history.
//
// The window starts at the record preceding the first return month, where
// every index is 1. Each month the portfolio index is multiplied by
// value(t)/value(t-1), unless value(t-1) is not positive, and each benchmark
// index by 1 + rate/100. The portfolio ratio does not remove the net
// contributions of the month.
func Chain(records []MonthlyRecord, benchmarks *Benchmarks, months int) Window {
	win := Window{Name: WindowName(months), Months: max(months, 0)}
	n := len(records)
	if n == 0 {
		return win
	}
	base := 0
	if months > 0 && months < n {
		base = n - months - 1
	}

	names := benchmarks.Names()
	portfolio := 1.0
	indexes := make(map[string]float64, len(names))
	for _, name := range names {
		indexes[name] = 1
	}
	for t := base; t < n; t++ {
		if t > base {
			prev, cur := records[t-1].Value, records[t].Value
			if prev.IsPositive() {
				portfolio *= cur.Ratio(prev).InexactFloat64()
			}
			for _, name := range names {
				indexes[name] *= 1 + benchmarks.Rate(name, records[t].On)/100
			}
		}
		point := WindowPoint{On: records[t].On, Portfolio: Percent((portfolio - 1) * 100)}
		if len(names) > 0 {
			point.Benchmarks = make(map[string]Percent, len(names))
			for _, name := range names {
				point.Benchmarks[name] = Percent((indexes[name] - 1) * 100)
			}
		}
		win.Points = append(win.Points, point)
	}
	return win
}
