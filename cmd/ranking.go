package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/patrimony/renderer"
	"github.com/google/subcommands"
)

type rankingCmd struct {
	period
}

func (*rankingCmd) Name() string     { return "ranking" }
func (*rankingCmd) Synopsis() string { return "display the holdings ranking and the allocation gaps" }
func (*rankingCmd) Usage() string {
	return `ptm ranking [-d <date>]

  Displays the open positions at the cutoff date sorted by value, with their
  return on the net invested amount, and the gap to the allocation targets.
`
}

func (c *rankingCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
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
	printMarkdown(renderer.RankingMarkdown(d))
	return subcommands.ExitSuccess
}
