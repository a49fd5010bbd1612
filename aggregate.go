package patrimony

import (
	"github.com/etnz/patrimony/date"
)

// MonthlyRecord is the valuation and the profit decomposition of one month.
//
// For every month the following holds:
//
//	NetContribution = Contributions - Withdrawals
//	Profit          = Value - previous Value - NetContribution
//	Appreciation    = Profit - Dividends
type MonthlyRecord struct {
	On         date.Date // month boundary: last day of the month or the cutoff.
	Value      Money
	ByCategory map[string]Money

	Contributions   Money
	Withdrawals     Money
	Dividends       Money
	NetContribution Money
	NewMoney        Money // net contribution not coming from reinvested dividends.
	Profit          Money
	Appreciation    Money
}

// Month returns the "2006-01" key of the record.
func (r MonthlyRecord) Month() string { return date.MonthKey(r.On) }

func (r MonthlyRecord) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("month", r.Month())
	w.Append("value", r.Value)
	w.Append("by_category", r.ByCategory)
	w.Append("contributions", r.Contributions)
	w.Append("withdrawals", r.Withdrawals)
	w.Append("dividends", r.Dividends)
	w.Append("net_contribution", r.NetContribution)
	w.Append("new_money", r.NewMoney)
	w.Append("profit", r.Profit)
	w.Append("appreciation", r.Appreciation)
	return w.MarshalJSON()
}

// AnnualRecord rolls up the monthly records of one year.
type AnnualRecord struct {
	Year       int
	Start      Money // value at the end of the previous year, 0 for the first year.
	Value      Money // value at the last month of the year.
	ByCategory map[string]Money

	Contributions   Money
	Withdrawals     Money
	Dividends       Money
	NetContribution Money
	NewMoney        Money
	Profit          Money
	Appreciation    Money

	ReturnExcludingDividends Percent
	ReturnIncludingDividends Percent
	Benchmarks               map[string]Percent // compounded rate of each benchmark over the year.
}

func (r AnnualRecord) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("year", r.Year)
	w.Append("start", r.Start)
	w.Append("value", r.Value)
	w.Append("by_category", r.ByCategory)
	w.Append("contributions", r.Contributions)
	w.Append("withdrawals", r.Withdrawals)
	w.Append("dividends", r.Dividends)
	w.Append("net_contribution", r.NetContribution)
	w.Append("new_money", r.NewMoney)
	w.Append("profit", r.Profit)
	w.Append("appreciation", r.Appreciation)
	w.Append("return_excluding_dividends", r.ReturnExcludingDividends)
	w.Append("return_including_dividends", r.ReturnIncludingDividends)
	w.Optional("benchmarks", r.Benchmarks)
	return w.MarshalJSON()
}

// Aggregator accumulates monthly records in chronological order.
type Aggregator struct {
	cur     string
	records []MonthlyRecord
}

// NewAggregator returns an empty Aggregator.
func NewAggregator(currency string) *Aggregator { return &Aggregator{cur: currency} }

// Add records the month of a valuation and the flows consumed to reach it.
// Months must be added in chronological order.
func (a *Aggregator) Add(val Valuation, flows Flows) MonthlyRecord {
	prev := M(0, a.cur)
	if n := len(a.records); n > 0 {
		prev = a.records[n-1].Value
	}
	net := flows.NetContribution()
	profit := val.Total.Sub(prev).Sub(net)
	rec := MonthlyRecord{
		On:              val.On,
		Value:           val.Total,
		ByCategory:      val.ByCategory,
		Contributions:   flows.Contributions,
		Withdrawals:     flows.Withdrawals,
		Dividends:       flows.Dividends,
		NetContribution: net,
		NewMoney:        net.Sub(flows.Dividends),
		Profit:          profit,
		Appreciation:    profit.Sub(flows.Dividends),
	}
	a.records = append(a.records, rec)
	return rec
}

// Monthly returns the monthly records.
func (a *Aggregator) Monthly() []MonthlyRecord { return a.records }

// Annual rolls the monthly records up by calendar year. Benchmarks may be nil.
func (a *Aggregator) Annual(benchmarks *Benchmarks) []AnnualRecord {
	var years []AnnualRecord
	start := M(0, a.cur)
	for i := 0; i < len(a.records); {
		first := a.records[i].On
		year := date.NewRange(first, date.Yearly)
		rec := AnnualRecord{
			Year:            first.Year(),
			Start:           start,
			Contributions:   M(0, a.cur),
			Withdrawals:     M(0, a.cur),
			Dividends:       M(0, a.cur),
			NetContribution: M(0, a.cur),
			NewMoney:        M(0, a.cur),
			Profit:          M(0, a.cur),
			Appreciation:    M(0, a.cur),
		}
		for ; i < len(a.records) && year.Contains(a.records[i].On); i++ {
			m := a.records[i]
			rec.Value = m.Value
			rec.ByCategory = m.ByCategory
			rec.Contributions = rec.Contributions.Add(m.Contributions)
			rec.Withdrawals = rec.Withdrawals.Add(m.Withdrawals)
			rec.Dividends = rec.Dividends.Add(m.Dividends)
			rec.NetContribution = rec.NetContribution.Add(m.NetContribution)
			rec.NewMoney = rec.NewMoney.Add(m.NewMoney)
			rec.Profit = rec.Profit.Add(m.Profit)
			rec.Appreciation = rec.Appreciation.Add(m.Appreciation)
		}
		last := a.records[i-1].On

		base := rec.Start.Add(rec.NetContribution)
		rec.ReturnExcludingDividends = returnOn(rec.Value.Sub(rec.Dividends), base)
		rec.ReturnIncludingDividends = returnOn(rec.Value, base)
		if benchmarks != nil {
			rec.Benchmarks = make(map[string]Percent)
			for _, name := range benchmarks.Names() {
				rec.Benchmarks[name] = benchmarks.Compound(name, date.Range{From: first.StartOf(date.Monthly), To: last})
			}
		}
		years = append(years, rec)
		start = rec.Value
	}
	return years
}
