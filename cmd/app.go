// Package cmd implements the CLI application computing a family patrimony dashboard.
package cmd

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/patrimony/config"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&dashboardCmd{}, "reports")
	c.Register(&rankingCmd{}, "reports")
	c.Register(&optionsCmd{}, "reports")

	c.Register(&initCmd{}, "configuration")
}

// Commands lists every subcommand, for shell completion.
var Commands = []subcommands.Command{&dashboardCmd{}, &rankingCmd{}, &optionsCmd{}, &initCmd{}}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", config.DefaultFile, "Path to the configuration file (YAML or JSON)")

// loadConfig loads the configuration file. A missing default file is the
// default configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFromFile(*configFile)
	if errors.Is(err, fs.ErrNotExist) && *configFile == config.DefaultFile {
		log.Println("warning, configuration file does not exist, using the default configuration instead")
		return config.Default(), nil
	}
	return cfg, err
}

// writeJSON writes v in a 2 spaces indented JSON file.
func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", path, err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	return f.Close()
}

// printMarkdown prints markdown to the terminal, falling back to raw
// markdown when it cannot be styled.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
