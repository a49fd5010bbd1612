package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/patrimony/config"
	"github.com/google/subcommands"
)

// workspace writes files in a temporary data directory and points the
// -config flag to a configuration using it.
func workspace(t *testing.T, files map[string]string) (dir string) {
	t.Helper()
	dir = t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("could not write %q: %v", name, err)
		}
	}
	cfg := config.Default()
	cfg.DataDir = dir
	cfg.Cutoff = "2024-02-29"
	path := filepath.Join(dir, "patrimony.yaml")
	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile() unexpected error: %v", err)
	}
	old := *configFile
	*configFile = path
	t.Cleanup(func() { *configFile = old })
	return dir
}

// run parses args for c and executes it.
func run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("%s: invalid arguments %v: %v", c.Name(), args, err)
	}
	return c.Execute(context.Background(), f)
}

var dataFiles = map[string]string{
	"transacoes.json":  `{"movimentacoes":[{"ativo":"X","data":"2024-01-10","tipo":"APORTE","quantidade":10,"valor_total":1000}]}`,
	"dividendos.json":  `{"movimentacoes":[{"ativo":"X","data":"2024-02-15","valor_total":20}]}`,
	"cotacoes.json":    `{"X":{"jan/2024":100,"fev/2024":110}}`,
	"ativos.json":      `{"ativos":[{"nome":"X","macro_classe":"acoes"}]}`,
	"opcoes_br.json":   `{"operacoes":[{"data_operacao":"2024-01-05","operacao":"Venda","preco_opcao_abertura":0.50,"quantidade":1000,"taxas":10,"status":"aberta"}]}`,
	"opcoes_intl.json": `{"operacoes":[]}`,
}

func TestDashboardCmd(t *testing.T) {
	dir := workspace(t, dataFiles)
	if got := run(t, &dashboardCmd{}, "-q"); got != subcommands.ExitSuccess {
		t.Fatalf("dashboard exit status = %v want success", got)
	}

	data, err := os.ReadFile(filepath.Join(dir, "dashboard.json"))
	if err != nil {
		t.Fatalf("dashboard output: %v", err)
	}
	var doc struct {
		Cutoff  string `json:"cutoff"`
		Monthly []struct {
			Month string  `json:"month"`
			Value float64 `json:"value"`
		} `json:"monthly"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("dashboard output is not valid JSON: %v", err)
	}
	if doc.Cutoff != "2024-02-29" {
		t.Errorf("cutoff = %q want 2024-02-29", doc.Cutoff)
	}
	if len(doc.Monthly) != 2 || doc.Monthly[1].Value != 1100 {
		t.Errorf("monthly = %+v want 2 months ending at 1100", doc.Monthly)
	}
}

func TestDashboardCmd_MissingQuotes(t *testing.T) {
	files := make(map[string]string)
	for name, content := range dataFiles {
		if name != "cotacoes.json" {
			files[name] = content
		}
	}
	workspace(t, files)
	if got := run(t, &dashboardCmd{}, "-q"); got != subcommands.ExitFailure {
		t.Errorf("dashboard exit status = %v want failure", got)
	}
}

func TestOptionsCmd(t *testing.T) {
	dir := workspace(t, dataFiles)
	if got := run(t, &optionsCmd{}, "-offline"); got != subcommands.ExitSuccess {
		t.Fatalf("options exit status = %v want success", got)
	}
	data, err := os.ReadFile(filepath.Join(dir, "fluxo_caixa_opcoes.json"))
	if err != nil {
		t.Fatalf("options output: %v", err)
	}
	var doc struct {
		Generated string          `json:"generated"`
		Months    json.RawMessage `json:"months"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("options output is not valid JSON: %v", err)
	}
	if doc.Generated == "" || len(doc.Months) == 0 {
		t.Errorf("options output = %s want generated and months", data)
	}
}

func TestInitCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patrimony.yaml")
	old := *configFile
	*configFile = path
	defer func() { *configFile = old }()

	if got := run(t, &initCmd{}, "-data", "data"); got != subcommands.ExitSuccess {
		t.Fatalf("init exit status = %v want success", got)
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() unexpected error: %v", err)
	}
	if cfg.DataDir != "data" {
		t.Errorf("DataDir = %q want data", cfg.DataDir)
	}

	if got := run(t, &initCmd{}); got != subcommands.ExitFailure {
		t.Errorf("init over an existing file exit status = %v want failure", got)
	}
	if got := run(t, &initCmd{}, "-f"); got != subcommands.ExitSuccess {
		t.Errorf("init -f exit status = %v want success", got)
	}
}
