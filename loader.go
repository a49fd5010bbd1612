package patrimony

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Files names the input documents of a dashboard, relative to a data
// directory. Benchmarks and Targets are optional, an empty name skips them.
type Files struct {
	Transactions string `yaml:"transactions" json:"transactions"`
	Dividends    string `yaml:"dividends" json:"dividends"`
	Quotes       string `yaml:"quotes" json:"quotes"`
	Categories   string `yaml:"categories" json:"categories"`
	Benchmarks   string `yaml:"benchmarks,omitempty" json:"benchmarks,omitempty"`
	Targets      string `yaml:"targets,omitempty" json:"targets,omitempty"`
}

// DefaultFiles are the usual names of the input documents.
var DefaultFiles = Files{
	Transactions: "transacoes.json",
	Dividends:    "dividendos.json",
	Quotes:       "cotacoes.json",
	Categories:   "ativos.json",
	Benchmarks:   "benchmarks.json",
	Targets:      "metas.json",
}

// Load reads the input documents from dir.
//
// A missing required document is an error. A missing optional document is
// skipped.
func Load(dir string, files Files, currency string) (*Input, error) {
	in := new(Input)
	var err error
	errs := []error{
		decodeFile(dir, files.Transactions, true, func(r io.Reader) error {
			in.Transactions, err = DecodeTransactions(r, currency)
			return err
		}),
		decodeFile(dir, files.Dividends, true, func(r io.Reader) error {
			in.Dividends, err = DecodeDividends(r, currency)
			return err
		}),
		decodeFile(dir, files.Quotes, true, func(r io.Reader) error {
			in.Quotes, err = DecodeQuotes(r)
			return err
		}),
		decodeFile(dir, files.Categories, true, func(r io.Reader) error {
			in.Categories, err = DecodeCategories(r)
			return err
		}),
		decodeFile(dir, files.Benchmarks, false, func(r io.Reader) error {
			in.Benchmarks, err = DecodeBenchmarks(r)
			return err
		}),
		decodeFile(dir, files.Targets, false, func(r io.Reader) error {
			in.Targets, err = DecodeTargets(r)
			return err
		}),
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return in, nil
}

// decodeFile opens dir/name and decodes it.
func decodeFile(dir, name string, required bool, decode func(io.Reader) error) error {
	if name == "" {
		if required {
			return errors.New("missing required document name")
		}
		return nil
	}
	path := filepath.Join(dir, name)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not open %q: %w", path, err)
	}
	defer f.Close()
	if err := decode(f); err != nil {
		return fmt.Errorf("could not decode %q: %w", path, err)
	}
	return nil
}
