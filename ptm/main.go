// Command ptm computes the family patrimony dashboard.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/patrimony/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	name := path.Base(os.Args[0])
	completion().Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion describes the command line for shell completion.
// It is driven by the shell through the COMP_LINE variable.
func completion() *complete.Command {
	c := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{"config": predict.Files("*.yaml")},
	}
	for _, sub := range cmd.Commands {
		fs := flag.NewFlagSet(sub.Name(), flag.ContinueOnError)
		sub.SetFlags(fs)
		flags := map[string]complete.Predictor{}
		fs.VisitAll(func(f *flag.Flag) {
			switch f.Name {
			case "o":
				flags[f.Name] = predict.Files("*.json")
			case "data":
				flags[f.Name] = predict.Dirs("*")
			default:
				flags[f.Name] = predict.Nothing
			}
		})
		c.Sub[sub.Name()] = &complete.Command{Flags: flags}
	}
	return c
}
