// Package config reads and writes the configuration of a patrimony data
// directory.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/etnz/patrimony"
	"github.com/etnz/patrimony/bcb"
	"github.com/etnz/patrimony/date"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "patrimony.yaml"

// Config is the complete configuration of a run.
type Config struct {
	DataDir  string          `json:"data_dir" yaml:"data_dir"`
	Currency string          `json:"currency" yaml:"currency"`
	Start    string          `json:"start,omitempty" yaml:"start,omitempty"`   // first month, e.g. "2019-01"
	Cutoff   string          `json:"cutoff,omitempty" yaml:"cutoff,omitempty"` // last day, e.g. "2024-06-30", default today
	Windows  []int           `json:"windows" yaml:"windows"`
	Files    patrimony.Files `json:"files" yaml:"files"`
	Output   string          `json:"output" yaml:"output"`
	Options  OptionsConfig   `json:"options" yaml:"options"`
	Forex    ForexConfig     `json:"forex" yaml:"forex"`
}

// OptionsConfig names the option journals and the cash flow output.
type OptionsConfig struct {
	BR     string `json:"br" yaml:"br"`
	US     string `json:"us" yaml:"us"`
	Output string `json:"output" yaml:"output"`
}

// ForexConfig configures the USD/BRL rate client.
type ForexConfig struct {
	URL      string  `json:"url" yaml:"url"`
	Timeout  string  `json:"timeout" yaml:"timeout"` // e.g. "5s"
	Fallback float64 `json:"fallback" yaml:"fallback"`
	RPS      float64 `json:"rps" yaml:"rps"`
	Cache    bool    `json:"cache" yaml:"cache"` // cache the answers on disk for the day.
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file, YAML for a .yaml or .yml
// extension, JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid. All the problems found are
// reported.
func (c *Config) Validate() error {
	var errs []error
	if c.DataDir == "" {
		errs = append(errs, errors.New("data_dir is required"))
	}
	if money.GetCurrency(c.Currency) == nil {
		errs = append(errs, fmt.Errorf("currency %q is not an ISO 4217 code", c.Currency))
	}
	if _, err := c.StartDate(); err != nil {
		errs = append(errs, fmt.Errorf("start: %w", err))
	}
	if _, err := c.CutoffDate(); err != nil {
		errs = append(errs, fmt.Errorf("cutoff: %w", err))
	}
	for _, w := range c.Windows {
		if w < 0 {
			errs = append(errs, fmt.Errorf("windows: %d months is negative", w))
		}
	}
	for _, f := range []struct{ name, file string }{
		{"transactions", c.Files.Transactions},
		{"dividends", c.Files.Dividends},
		{"quotes", c.Files.Quotes},
		{"categories", c.Files.Categories},
	} {
		if f.file == "" {
			errs = append(errs, fmt.Errorf("files.%s is required", f.name))
		}
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output is required"))
	}
	if _, err := c.Forex.TimeoutDuration(); err != nil {
		errs = append(errs, fmt.Errorf("forex.timeout: %w", err))
	}
	if c.Forex.Fallback <= 0 {
		errs = append(errs, errors.New("forex.fallback must be positive"))
	}
	return errors.Join(errs...)
}

// StartDate returns the first month, zero when not set.
func (c *Config) StartDate() (date.Date, error) {
	if c.Start == "" {
		return date.Date{}, nil
	}
	return date.ParseMonth(c.Start)
}

// CutoffDate returns the last day, zero when not set.
func (c *Config) CutoffDate() (date.Date, error) {
	if c.Cutoff == "" {
		return date.Date{}, nil
	}
	return date.Parse(c.Cutoff)
}

// TimeoutDuration returns the request timeout.
func (f ForexConfig) TimeoutDuration() (time.Duration, error) {
	if f.Timeout == "" {
		return bcb.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(f.Timeout)
	if err == nil && d <= 0 {
		err = fmt.Errorf("%v is not positive", d)
	}
	return d, err
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		DataDir:  ".",
		Currency: patrimony.DefaultCurrency,
		Windows:  slices.Clone(patrimony.DefaultWindows),
		Files:    patrimony.DefaultFiles,
		Output:   "dashboard.json",
		Options: OptionsConfig{
			BR:     "opcoes_br.json",
			US:     "opcoes_intl.json",
			Output: "fluxo_caixa_opcoes.json",
		},
		Forex: ForexConfig{
			URL:      bcb.DefaultBaseURL,
			Timeout:  bcb.DefaultTimeout.String(),
			Fallback: 5.70,
			RPS:      5,
			Cache:    true,
		},
	}
}
