package patrimony

import (
	"testing"

	"github.com/etnz/patrimony/date"
)

func TestPriceResolver_Resolve(t *testing.T) {
	quotes := newQuotes(t,
		"X", "jan/2024", 100.0,
		"X", "mar/2024", 120.0,
		"X", "jun/2024", 0.0, // no quote
		"Y", "fev/2024", 10.0,
		"Z", "2024-05", 7.0,
	)
	r := NewPriceResolver(quotes, "BRL")

	tests := []struct {
		name   string
		asset  string
		cutoff string
		want   Money
		wantOk bool
	}{
		{"exact month", "X", "2024-01-31", BRL(100), true},
		{"exact month before the cutoff day", "X", "2024-03-01", BRL(120), true},
		{"last known price", "X", "2024-02-29", BRL(100), true},
		{"zero quote is skipped", "X", "2024-06-30", BRL(120), true},
		{"never a later quote", "Z", "2024-04-30", BRL(0), false},
		{"before any quote", "X", "2023-12-31", BRL(0), false},
		{"base ticker", "Y_2022", "2024-02-29", BRL(10), true},
		{"exact id first", "X", "2024-02-29", BRL(100), true},
		{"unknown asset", "W", "2024-02-29", BRL(0), false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, ok := r.Resolve(test.asset, date.MustParse(test.cutoff))
			if ok != test.wantOk || !got.Equal(test.want) {
				t.Errorf("Resolve(%q, %s) = %v, %v want %v, %v", test.asset, test.cutoff, got, ok, test.want, test.wantOk)
			}
		})
	}
}

func TestPriceResolver_BaseTickerWhenEmpty(t *testing.T) {
	// An asset id without any positive quote falls back on the base ticker.
	quotes := newQuotes(t,
		"KNRI11_A", "jan/2024", 0.0,
		"KNRI11", "jan/2024", 150.0,
	)
	r := NewPriceResolver(quotes, "BRL")
	got, ok := r.Resolve("KNRI11_A", date.MustParse("2024-01-31"))
	if !ok || !got.Equal(BRL(150)) {
		t.Errorf("Resolve(KNRI11_A) = %v, %v want 150, true", got, ok)
	}
}

func TestPriceResolver_NeverAfterCutoff(t *testing.T) {
	quotes := newQuotes(t,
		"X", "jan/2024", 100.0,
		"X", "fev/2024", 110.0,
		"X", "mar/2024", 120.0,
	)
	r := NewPriceResolver(quotes, "BRL")
	for boundary := range date.Months(date.MustParse("2023-11-01"), date.MustParse("2024-04-15")) {
		price, ok := r.Resolve("X", boundary)
		if !ok {
			continue
		}
		for on, p := range quotes.assets["X"].Values() {
			if on.After(boundary) && p.Equal(price.Decimal()) {
				t.Errorf("Resolve(X, %v) = %v, a quote dated %v", boundary, price, on)
			}
		}
	}
}
