package patrimony

import (
	"testing"

	"github.com/etnz/patrimony/date"
)

// runMonths replays a ledger from its first month to cutoff and returns the
// aggregator.
func runMonths(t *testing.T, txs []Transaction, divs []Dividend, quotes *Quotes, categories *Categories, cutoff string) *Aggregator {
	t.Helper()
	ledger := NewLedger(txs, divs)
	first, _ := ledger.First()
	r := NewReplayer(ledger, "BRL")
	v := NewValuer(r, NewPriceResolver(quotes, "BRL"), categories, "BRL")
	agg := NewAggregator("BRL")
	for boundary := range date.Months(first, date.MustParse(cutoff)) {
		flows, err := r.Advance(boundary)
		if err != nil {
			t.Fatalf("Advance(%v) unexpected error: %v", boundary, err)
		}
		val, _ := v.Value(boundary)
		agg.Add(val, flows)
	}
	return agg
}

func TestAggregator_LastKnownPrice(t *testing.T) {
	agg := runMonths(t,
		[]Transaction{newTx("2024-01-10", "X", KindContribution, 10, 1000)},
		nil,
		newQuotes(t, "X", "jan/2024", 100.0),
		newCategories("X:acoes"),
		"2024-03-31")

	records := agg.Monthly()
	if len(records) != 3 {
		t.Fatalf("Monthly() = %d records want 3", len(records))
	}
	for i, rec := range records {
		if !rec.Value.Equal(BRL(1000)) {
			t.Errorf("%s value = %v want 1000", rec.Month(), rec.Value)
		}
		if i > 0 && !rec.Appreciation.IsZero() {
			t.Errorf("%s appreciation = %v want 0", rec.Month(), rec.Appreciation)
		}
	}
	// the first month profit is measured against a 0 value.
	if !records[0].Profit.IsZero() || !records[0].NetContribution.Equal(BRL(1000)) {
		t.Errorf("jan profit, net contribution = %v, %v want 0, 1000", records[0].Profit, records[0].NetContribution)
	}
}

func TestAggregator_DividendSign(t *testing.T) {
	agg := runMonths(t,
		[]Transaction{newTx("2024-01-10", "X", KindContribution, 10, 1000)},
		[]Dividend{newDiv("2024-02-15", "X", 50)},
		newQuotes(t, "X", "jan/2024", 100.0),
		newCategories("X:acoes"),
		"2024-03-31")

	feb := agg.Monthly()[1]
	if !feb.Dividends.Equal(BRL(50)) {
		t.Errorf("feb dividends = %v want 50", feb.Dividends)
	}
	if !feb.Profit.IsZero() {
		t.Errorf("feb profit = %v want 0", feb.Profit)
	}
	if !feb.Appreciation.Equal(BRL(-50)) {
		t.Errorf("feb appreciation = %v want -50", feb.Appreciation)
	}
	if !feb.NewMoney.Equal(BRL(-50)) {
		t.Errorf("feb new money = %v want -50", feb.NewMoney)
	}
}

func TestAggregator_Identities(t *testing.T) {
	agg := runMonths(t,
		[]Transaction{
			newTx("2023-11-03", "PETR4", KindBuy, 100, 3000),
			newTx("2023-12-10", "KNRI11_A", KindBuy, 10, 1400),
			newTx("2024-02-05", "PETR4", KindSell, 40, 1500),
			newTx("2024-03-20", "CDB", KindContribution, 1, 5000),
			newTx("2024-05-02", "CDB", KindRedemption, 0.5, 2600),
		},
		[]Dividend{newDiv("2024-01-15", "KNRI11_A", 10), newDiv("2024-04-15", "PETR4", 25)},
		newQuotes(t,
			"PETR4", "nov/2023", 31.0, "PETR4", "jan/2024", 36.0, "PETR4", "abr/2024", 33.5,
			"KNRI11", "dez/2023", 140.0, "KNRI11", "mar/2024", 150.0,
			"CDB", "mar/2024", 5000.0, "CDB", "mai/2024", 5210.0,
		),
		newCategories("PETR4:acoes", "KNRI11:fiis", "CDB:renda fixa"),
		"2024-06-12")

	records := agg.Monthly()
	if len(records) != 8 {
		t.Fatalf("Monthly() = %d records want 8 (contiguous nov/2023 to jun/2024)", len(records))
	}
	prev := BRL(0)
	for i, rec := range records {
		if i > 0 {
			want := records[i-1].On.StartOf(date.Monthly).AddMonth(1).EndOf(date.Monthly)
			if i == len(records)-1 {
				want = date.MustParse("2024-06-12")
			}
			if rec.On != want {
				t.Errorf("record #%d on %v want %v", i, rec.On, want)
			}
		}
		delta := rec.Value.Sub(prev)
		sum := rec.NetContribution.Add(rec.Appreciation).Add(rec.Dividends)
		if !delta.Round().Equal(sum.Round()) {
			t.Errorf("%s value delta = %v want net contribution + appreciation + dividends = %v", rec.Month(), delta, sum)
		}
		total := BRL(0)
		for _, v := range rec.ByCategory {
			total = total.Add(v)
		}
		if !total.Equal(rec.Value) {
			t.Errorf("%s sum of categories = %v want %v", rec.Month(), total, rec.Value)
		}
		if len(rec.ByCategory) != 4 {
			t.Errorf("%s categories = %v want the 4 known categories", rec.Month(), rec.ByCategory)
		}
		prev = rec.Value
	}
}

func TestAggregator_Annual(t *testing.T) {
	agg := runMonths(t,
		[]Transaction{
			newTx("2023-12-10", "X", KindBuy, 10, 1000),
			newTx("2024-06-10", "X", KindBuy, 10, 1200),
		},
		[]Dividend{newDiv("2024-03-15", "X", 40)},
		newQuotes(t, "X", "dez/2023", 100.0, "X", "jun/2024", 120.0, "X", "dez/2024", 130.0),
		newCategories("X:acoes"),
		"2024-12-31")

	years := agg.Annual(NewBenchmarks([]BenchmarkMonth{
		{Month: date.MustParse("2024-01-01"), Rates: map[string]float64{"cdi": 1}},
		{Month: date.MustParse("2024-02-01"), Rates: map[string]float64{"cdi": 1}},
	}))
	if len(years) != 2 {
		t.Fatalf("Annual() = %d years want 2", len(years))
	}
	y23, y24 := years[0], years[1]
	if !y23.Start.IsZero() || !y23.Value.Equal(BRL(1000)) {
		t.Errorf("2023 start, value = %v, %v want 0, 1000", y23.Start, y23.Value)
	}
	// 2023: base = 0 + 1000, end = 1000.
	if !y23.ReturnIncludingDividends.Equal(0) {
		t.Errorf("2023 return = %v want 0", y23.ReturnIncludingDividends)
	}
	if !y24.Start.Equal(BRL(1000)) || !y24.Value.Equal(BRL(2600)) {
		t.Errorf("2024 start, value = %v, %v want 1000, 2600", y24.Start, y24.Value)
	}
	if !y24.NetContribution.Equal(BRL(1200)) || !y24.Dividends.Equal(BRL(40)) {
		t.Errorf("2024 net contribution, dividends = %v, %v want 1200, 40", y24.NetContribution, y24.Dividends)
	}
	// base = 1000 + 1200 = 2200
	if want := Percent(400.0 / 2200 * 100); !y24.ReturnIncludingDividends.Equal(want) {
		t.Errorf("2024 return including dividends = %v want %v", y24.ReturnIncludingDividends, want)
	}
	if want := Percent(360.0 / 2200 * 100); !y24.ReturnExcludingDividends.Equal(want) {
		t.Errorf("2024 return excluding dividends = %v want %v", y24.ReturnExcludingDividends, want)
	}
	if !y24.Profit.Equal(BRL(400)) || !y24.Appreciation.Equal(BRL(360)) {
		t.Errorf("2024 profit, appreciation = %v, %v want 400, 360", y24.Profit, y24.Appreciation)
	}
	if want := Percent(2.01); !y24.Benchmarks["cdi"].Equal(want) {
		t.Errorf("2024 cdi = %v want %v", y24.Benchmarks["cdi"], want)
	}
}

func TestAggregator_AnnualNonPositiveBase(t *testing.T) {
	// all the money withdrawn: the base of the second year is 0.
	agg := runMonths(t,
		[]Transaction{
			newTx("2023-12-10", "X", KindBuy, 10, 1000),
			newTx("2024-01-10", "X", KindSell, 10, 1000),
		},
		nil,
		newQuotes(t, "X", "dez/2023", 100.0),
		newCategories(),
		"2024-02-29")
	years := agg.Annual(nil)
	if got := years[1]; got.ReturnIncludingDividends != 0 || got.ReturnExcludingDividends != 0 {
		t.Errorf("2024 returns = %v, %v want exactly 0", got.ReturnIncludingDividends, got.ReturnExcludingDividends)
	}
	if years[1].Benchmarks != nil {
		t.Errorf("2024 benchmarks = %v want nil", years[1].Benchmarks)
	}
}
