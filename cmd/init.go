package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/patrimony/config"
	"github.com/google/subcommands"
)

type initCmd struct {
	dataDir string
	force   bool
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "write a default configuration file" }
func (*initCmd) Usage() string {
	return `ptm [-config <file>] init [-data <dir>] [-f]

  Writes the default configuration to the -config file. An existing file is
  kept unless -f is set.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dataDir, "data", ".", "Data directory holding the input documents")
	f.BoolVar(&c.force, "f", false, "Overwrite an existing configuration file")
}

func (c *initCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if _, err := os.Stat(*configFile); !c.force && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error: %q already exists, use -f to overwrite it\n", *configFile)
		return subcommands.ExitFailure
	}
	cfg := config.Default()
	cfg.DataDir = c.dataDir
	if err := cfg.SaveToFile(*configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully wrote configuration to %s\n", *configFile)
	return subcommands.ExitSuccess
}
