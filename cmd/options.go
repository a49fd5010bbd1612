package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/patrimony/bcb"
	"github.com/etnz/patrimony/config"
	"github.com/etnz/patrimony/options"
	"github.com/etnz/patrimony/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type optionsCmd struct {
	output  string
	offline bool
}

func (*optionsCmd) Name() string     { return "options" }
func (*optionsCmd) Synopsis() string { return "compute the monthly cash flow of option trades" }
func (*optionsCmd) Usage() string {
	return `ptm options [-o <file>] [-offline]

  Computes the monthly cash flow of the Brazilian and international option
  trades. International flows are converted to BRL with the PTAX rate of
  their opening day, or the fallback rate when it cannot be fetched.
`
}

func (c *optionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file (defaults to the configured options output in the data directory)")
	f.BoolVar(&c.offline, "offline", false, "Do not fetch PTAX rates, use the fallback rate")
}

func (c *optionsCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	rates, err := c.rates(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	br, err := decodeOptions(filepath.Join(cfg.DataDir, cfg.Options.BR), options.BR)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	us, err := decodeOptions(filepath.Join(cfg.DataDir, cfg.Options.US), options.US)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := options.Compute(ctx, br, us, rates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	output := c.output
	if output == "" {
		output = filepath.Join(cfg.DataDir, cfg.Options.Output)
	}
	doc := struct {
		Generated time.Time `json:"generated"`
		*options.Report
	}{time.Now(), report}
	if err := writeJSON(output, doc); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.OptionsMarkdown(report))
	return subcommands.ExitSuccess
}

// rates returns the USD/BRL rates configured by cfg.
func (c *optionsCmd) rates(cfg *config.Config) (*options.Rates, error) {
	fallback := decimal.NewFromFloat(cfg.Forex.Fallback)
	if c.offline {
		return options.NewRates(nil, fallback), nil
	}
	timeout, err := cfg.Forex.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	opts := []bcb.Option{
		bcb.WithTimeout(timeout),
		bcb.WithRateLimit(cfg.Forex.RPS),
	}
	if cfg.Forex.URL != "" {
		opts = append(opts, bcb.WithBaseURL(cfg.Forex.URL))
	}
	if cfg.Forex.Cache {
		opts = append(opts, bcb.WithHTTPClient(bcb.Daily()))
	}
	return options.NewRates(bcb.New(opts...), fallback), nil
}

func decodeOptions(path string, market options.Market) ([]options.Operation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", path, err)
	}
	defer f.Close()
	ops, err := options.Decode(f, market)
	if err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", path, err)
	}
	return ops, nil
}
