// Package bcb fetches the PTAX USD/BRL rates published by the Banco Central
// do Brasil.
package bcb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/patrimony/date"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the PTAX OData service.
const DefaultBaseURL = "https://olinda.bcb.gov.br/olinda/servico/PTAX/versao/v1/odata"

// DefaultTimeout is the timeout of a single rate request.
const DefaultTimeout = 5 * time.Second

// ErrNoQuote is returned for days without a PTAX rate: weekends and bank
// holidays.
var ErrNoQuote = errors.New("no PTAX rate for this day")

// Client is a PTAX rate client.
//
// Requests are rate limited, and a circuit breaker stops calling the
// service after 3 consecutive failures.
type Client struct {
	base    string
	client  *http.Client
	timeout time.Duration
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the service URL.
func WithBaseURL(url string) Option { return func(c *Client) { c.base = url } }

// WithHTTPClient sets the http client, see Daily for a cached one.
func WithHTTPClient(client *http.Client) Option { return func(c *Client) { c.client = client } }

// WithTimeout sets the timeout of each request.
func WithTimeout(d time.Duration) Option { return func(c *Client) { c.timeout = d } }

// WithRateLimit limits the requests per second. Zero or less disables the limit.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// New returns a PTAX client.
func New(opts ...Option) *Client {
	c := &Client{
		base:    DefaultBaseURL,
		client:  http.DefaultClient,
		timeout: DefaultTimeout,
		limiter: rate.NewLimiter(rate.Limit(5), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "ptax",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		// a day without rate is an answer of the service.
		IsSuccessful: func(err error) bool { return err == nil || errors.Is(err, ErrNoQuote) },
	})
	return c
}

// Rate returns the PTAX selling rate of the day.
func (c *Client) Rate(ctx context.Context, day date.Date) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := c.limiter.Wait(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("PTAX rate of %v: %w", day, err)
	}
	v, err := c.breaker.Execute(func() (any, error) { return c.fetch(ctx, day) })
	if err != nil {
		return decimal.Zero, fmt.Errorf("PTAX rate of %v: %w", day, err)
	}
	return v.(decimal.Decimal), nil
}

func (c *Client) fetch(ctx context.Context, day date.Date) (decimal.Decimal, error) {
	addr := fmt.Sprintf("%s/CotacaoDolarDia(dataCotacao=@dataCotacao)?@dataCotacao='%s'&$format=json", c.base, day.Format("01-02-2006"))
	var jobj any
	if err := jwget(ctx, c.client, addr, &jobj); err != nil {
		return decimal.Zero, err
	}
	if values, err := jsonpath.Get("$.value", jobj); err != nil {
		return decimal.Zero, fmt.Errorf("invalid PTAX answer: %w", err)
	} else if list, ok := values.([]any); !ok || len(list) == 0 {
		return decimal.Zero, ErrNoQuote
	}

	path := "$.value[0].cotacaoVenda"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error parsing %q: %w", path, err)
	}
	val, ok := jval.(float64)
	if !ok {
		return decimal.Zero, fmt.Errorf("error parsing %q: not a float %v", path, jval)
	}
	return decimal.NewFromFloat(val), nil
}
