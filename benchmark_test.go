package patrimony

import (
	"encoding/json"
	"testing"

	"github.com/etnz/patrimony/date"
)

// monthly is a helper for test to create monthly records starting on
// January 2024 with the given values.
func monthly(values ...float64) []MonthlyRecord {
	var records []MonthlyRecord
	m := date.MustParse("2024-01-01")
	for _, v := range values {
		records = append(records, MonthlyRecord{On: m.EndOf(date.Monthly), Value: BRL(v)})
		m = m.AddMonth(1)
	}
	return records
}

func TestChain(t *testing.T) {
	b := NewBenchmarks([]BenchmarkMonth{
		{Month: date.MustParse("2024-02-01"), Rates: map[string]float64{"cdi": 1, "ifix": 2}},
		{Month: date.MustParse("2024-03-01"), Rates: map[string]float64{"cdi": 1}}, // ifix missing is 0
	})

	win := Chain(monthly(100, 110, 121), b, 0)
	if win.Name != "all" || len(win.Points) != 3 {
		t.Fatalf("Chain(all) = %q with %d points want \"all\" with 3", win.Name, len(win.Points))
	}
	tests := []struct {
		portfolio, cdi, ifix Percent
	}{
		{0, 0, 0},
		{10, 1, 2},
		{21, 2.01, 2},
	}
	for i, test := range tests {
		p := win.Points[i]
		if !p.Portfolio.Equal(test.portfolio) || !p.Benchmarks["cdi"].Equal(test.cdi) || !p.Benchmarks["ifix"].Equal(test.ifix) {
			t.Errorf("point #%d = %v, %v want %v, cdi %v ifix %v", i, p.Portfolio, p.Benchmarks, test.portfolio, test.cdi, test.ifix)
		}
	}
}

func TestChain_Window(t *testing.T) {
	records := monthly(100, 110, 0, 50, 60)

	win := Chain(records, nil, 2)
	if win.Name != "2m" || len(win.Points) != 3 {
		t.Fatalf("Chain(2) = %q with %d points want \"2m\" with 3", win.Name, len(win.Points))
	}
	// the window base is the month before the first return month.
	if win.Points[0].On != records[2].On {
		t.Errorf("window base = %v want %v", win.Points[0].On, records[2].On)
	}
	// ratio skipped after a zero value.
	want := []Percent{0, 0, 20}
	for i, w := range want {
		if !win.Points[i].Portfolio.Equal(w) {
			t.Errorf("point #%d = %v want %v", i, win.Points[i].Portfolio, w)
		}
	}
	if win.Points[0].Benchmarks != nil {
		t.Errorf("benchmarks without series = %v want nil", win.Points[0].Benchmarks)
	}

	// a window longer than the history is the full history.
	if got := Chain(records, nil, 12); len(got.Points) != 5 {
		t.Errorf("Chain(12) over 5 months = %d points want 5", len(got.Points))
	}
	if got := Chain(nil, nil, 12); len(got.Points) != 0 {
		t.Errorf("Chain(12) over no month = %d points want 0", len(got.Points))
	}
}

func TestBenchmarks_Compound(t *testing.T) {
	b := NewBenchmarks([]BenchmarkMonth{
		{Month: date.MustParse("2024-01-01"), Rates: map[string]float64{"cdi": 10}},
		{Month: date.MustParse("2024-02-01"), Rates: map[string]float64{"cdi": 10}},
		{Month: date.MustParse("2025-01-01"), Rates: map[string]float64{"cdi": 50}},
	})
	got := b.Compound("cdi", date.NewRange(date.MustParse("2024-06-01"), date.Yearly))
	if want := Percent(21); !got.Equal(want) {
		t.Errorf("Compound(cdi, 2024) = %v want %v", got, want)
	}
	if got := b.Names(); len(got) != 1 || got[0] != "cdi" {
		t.Errorf("Names() = %v want [cdi]", got)
	}
}

func TestWindowPoint_MarshalJSON(t *testing.T) {
	p := WindowPoint{On: date.MustParse("2024-03-31"), Portfolio: 12.3456, Benchmarks: map[string]Percent{"cdi": 1}}
	got, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	if want := `{"month":"2024-03","portfolio":12.35,"benchmarks":{"cdi":1}}`; string(got) != want {
		t.Errorf("Marshal() = %s want %s", got, want)
	}
}
