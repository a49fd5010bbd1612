package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/etnz/patrimony"
	"github.com/etnz/patrimony/config"
	"github.com/etnz/patrimony/date"
	"github.com/etnz/patrimony/renderer"
	"github.com/google/subcommands"
)

// period holds the flags overriding the configured period.
type period struct {
	start  string
	cutoff string
}

func (p *period) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.start, "start", "", "First month of the dashboard, e.g. jan/2019 (defaults to the configuration, then to the first transaction)")
	f.StringVar(&p.cutoff, "d", "", "Cutoff date of the dashboard (defaults to the configuration, then to today)")
}

// compute loads the input documents and computes the dashboard.
func (p *period) compute(cfg *config.Config) (*patrimony.Dashboard, error) {
	if p.start != "" {
		cfg.Start = p.start
	}
	if p.cutoff != "" {
		cfg.Cutoff = p.cutoff
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	start, _ := cfg.StartDate()
	cutoff, _ := cfg.CutoffDate()

	in, err := patrimony.Load(cfg.DataDir, cfg.Files, cfg.Currency)
	if err != nil {
		return nil, err
	}
	return patrimony.Compute(*in, patrimony.Options{
		Currency: cfg.Currency,
		Start:    start,
		Cutoff:   cutoff,
		Windows:  cfg.Windows,
	})
}

type dashboardCmd struct {
	period
	output string
	months int
	quiet  bool
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "compute the patrimony dashboard and write it as JSON" }
func (*dashboardCmd) Usage() string {
	return `ptm dashboard [-d <date>] [-start <month>] [-o <file>] [-months <n>] [-q]

  Replays the transactions month by month up to the cutoff date, values the
  positions with the monthly quotes, and writes the dashboard JSON document.
  A summary is displayed, unless -q is set.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	c.period.SetFlags(f)
	f.StringVar(&c.output, "o", "", "Output file (defaults to the configured output in the data directory)")
	f.IntVar(&c.months, "months", 12, "Number of trailing months in the displayed summary")
	f.BoolVar(&c.quiet, "q", false, "Do not display the summary")
}

func (c *dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	d, err := c.compute(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, diag := range d.Diagnostics {
		log.Printf("warning: %v", diag)
	}

	output := c.output
	if output == "" {
		output = filepath.Join(cfg.DataDir, cfg.Output)
	}
	if err := writeJSON(output, d); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	log.Printf("%d months up to %s written to %s", len(d.Monthly), date.Label(d.Cutoff), output)

	if !c.quiet {
		printMarkdown(renderer.DashboardMarkdown(d, renderer.DashboardRenderOptions{Months: c.months}))
	}
	return subcommands.ExitSuccess
}
