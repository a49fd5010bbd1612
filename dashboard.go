package patrimony

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/etnz/patrimony/date"
	"github.com/oklog/ulid/v2"
)

// DefaultCurrency is the reporting currency when none is configured.
const DefaultCurrency = "BRL"

// DefaultWindows are the benchmark windows: trailing 12 and 24 months and
// the full history.
var DefaultWindows = []int{12, 24, 0}

// cagrMonths is the number of monthly records required to compute a 5 years
// compound annual growth rate.
const cagrMonths = 61

// Options control a dashboard computation. The zero value is usable.
type Options struct {
	Currency string    // default DefaultCurrency.
	Start    date.Date // first month, default to the month of the first transaction.
	Cutoff   date.Date // last day, default to today.
	Windows  []int     // trailing months of the benchmark windows, DefaultWindows when empty.
	Now      func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Currency == "" {
		o.Currency = DefaultCurrency
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Cutoff.IsZero() {
		o.Cutoff = date.New(o.Now().Date())
	}
	if len(o.Windows) == 0 {
		o.Windows = DefaultWindows
	}
	return o
}

// Input gathers the documents a dashboard is computed from.
// Benchmarks and Targets are optional.
type Input struct {
	Transactions []Transaction
	Dividends    []Dividend
	Quotes       *Quotes
	Categories   *Categories
	Benchmarks   []BenchmarkMonth
	Targets      Targets
}

// KPIs summarize the portfolio at the cutoff.
type KPIs struct {
	Value         Money
	NetInvested   Money    // sum of the net contributions.
	NominalReturn Percent  // (value - net invested) / net invested.
	CAGR5y        *Percent // nil without 5 years of history.
}

func (k KPIs) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("value", k.Value)
	w.Append("net_invested", k.NetInvested)
	w.Append("nominal_return", k.NominalReturn)
	w.Optional("cagr_5y", k.CAGR5y)
	return w.MarshalJSON()
}

// Dashboard is the snapshot produced by one run.
type Dashboard struct {
	RunID       ulid.ULID       `json:"run_id"`
	Generated   time.Time       `json:"generated"`
	Currency    string          `json:"currency"`
	Cutoff      date.Date       `json:"cutoff"`
	KPIs        KPIs            `json:"kpis"`
	Monthly     []MonthlyRecord `json:"monthly"`
	Annual      []AnnualRecord  `json:"annual"`
	Benchmarks  []Window        `json:"benchmarks"`
	Ranking     []Holding       `json:"ranking"`
	Allocation  []AllocationGap `json:"allocation,omitempty"`
	Diagnostics []Diagnostic    `json:"diagnostics,omitempty"`
}

// Compute replays the ledger month by month up to the cutoff and builds the
// dashboard.
//
// Unresolved prices are reported in the Diagnostics. Missing documents and
// invalid transactions are errors.
func Compute(in Input, opts Options) (*Dashboard, error) {
	opts = opts.withDefaults()
	if in.Quotes == nil {
		return nil, errors.New("missing quotes")
	}
	if in.Categories == nil {
		return nil, errors.New("missing categories")
	}

	ledger := NewLedger(in.Transactions, in.Dividends)
	start := opts.Start
	if start.IsZero() {
		first, ok := ledger.First()
		if !ok {
			return nil, errors.New("no transaction and no start month: nothing to value")
		}
		start = first
	}
	if opts.Cutoff.Before(start.StartOf(date.Monthly)) {
		return nil, fmt.Errorf("cutoff %v is before the start month %s", opts.Cutoff, date.MonthKey(start))
	}

	now := opts.Now()
	d := &Dashboard{
		RunID:     ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()),
		Generated: now,
		Currency:  opts.Currency,
		Cutoff:    opts.Cutoff,
	}

	replayer := NewReplayer(ledger, opts.Currency)
	valuer := NewValuer(replayer, NewPriceResolver(in.Quotes, opts.Currency), in.Categories, opts.Currency)
	agg := NewAggregator(opts.Currency)
	var last Valuation
	for boundary := range date.Months(start, opts.Cutoff) {
		flows, err := replayer.Advance(boundary)
		if err != nil {
			return nil, fmt.Errorf("replaying %s: %w", date.MonthKey(boundary), err)
		}
		val, diags := valuer.Value(boundary)
		d.Diagnostics = append(d.Diagnostics, diags...)
		agg.Add(val, flows)
		last = val
	}

	var benchmarks *Benchmarks
	if len(in.Benchmarks) > 0 {
		benchmarks = NewBenchmarks(in.Benchmarks)
	}
	d.Monthly = agg.Monthly()
	d.Annual = agg.Annual(benchmarks)
	d.KPIs = computeKPIs(d.Monthly, opts.Currency)
	for _, months := range opts.Windows {
		d.Benchmarks = append(d.Benchmarks, Chain(d.Monthly, benchmarks, months))
	}
	d.Ranking = Rank(replayer, last, in.Categories)
	if len(in.Targets) > 0 {
		d.Allocation = Allocate(last, in.Targets)
	}
	return d, nil
}

func computeKPIs(records []MonthlyRecord, currency string) KPIs {
	k := KPIs{Value: M(0, currency), NetInvested: M(0, currency)}
	n := len(records)
	if n == 0 {
		return k
	}
	for _, r := range records {
		k.NetInvested = k.NetInvested.Add(r.NetContribution)
	}
	k.Value = records[n-1].Value
	k.NominalReturn = returnOn(k.Value, k.NetInvested)

	if n >= cagrMonths {
		if past := records[n-cagrMonths].Value; past.IsPositive() {
			ratio := k.Value.Ratio(past).InexactFloat64()
			cagr := Percent((math.Pow(ratio, 1.0/5) - 1) * 100)
			k.CAGR5y = &cagr
		}
	}
	return k
}
