package options

import (
	"context"
	"log"

	"github.com/etnz/patrimony/date"
	"github.com/shopspring/decimal"
)

// DefaultFallbackRate is the USD/BRL rate used when no rate can be fetched.
var DefaultFallbackRate = decimal.RequireFromString("5.70")

// RateProvider returns the USD/BRL rate of a day.
type RateProvider interface {
	Rate(ctx context.Context, day date.Date) (decimal.Decimal, error)
}

// Rates memoizes the rates of a RateProvider for one run.
//
// A failed lookup returns the fallback rate, and the fallback is memoized
// too: a day is requested at most once.
type Rates struct {
	provider RateProvider
	fallback decimal.Decimal
	memo     map[date.Date]decimal.Decimal
}

// NewRates returns memoized rates of provider. A nil provider always
// returns the fallback. A zero fallback is DefaultFallbackRate.
func NewRates(provider RateProvider, fallback decimal.Decimal) *Rates {
	if fallback.IsZero() {
		fallback = DefaultFallbackRate
	}
	return &Rates{provider: provider, fallback: fallback, memo: make(map[date.Date]decimal.Decimal)}
}

// Rate returns the rate of day.
func (r *Rates) Rate(ctx context.Context, day date.Date) decimal.Decimal {
	if rate, ok := r.memo[day]; ok {
		return rate
	}
	rate := r.fallback
	if r.provider != nil {
		got, err := r.provider.Rate(ctx, day)
		switch {
		case err != nil:
			log.Printf("USD/BRL rate of %v unavailable, using %v: %v", day, r.fallback, err)
		case !got.IsPositive():
			log.Printf("USD/BRL rate of %v is %v, using %v", day, got, r.fallback)
		default:
			rate = got
		}
	}
	r.memo[day] = rate
	return rate
}

// Used returns the rates of every day requested so far.
func (r *Rates) Used() map[date.Date]decimal.Decimal { return r.memo }
