package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"strings"
	"text/template"

	"github.com/etnz/patrimony"
	"github.com/etnz/patrimony/date"
	"github.com/etnz/patrimony/options"
)

//go:embed templates/*.md
var templates embed.FS

// funcs are the helpers available to every template.
var funcs = template.FuncMap{
	"month": date.MonthKey,
	"label": date.Label,
	"names": func(m map[string]patrimony.Percent) []string { return slices.Sorted(maps.Keys(m)) },
	"last": func(w patrimony.Window) *patrimony.WindowPoint {
		if len(w.Points) == 0 {
			return nil
		}
		return &w.Points[len(w.Points)-1]
	},
	"series": func(windows []patrimony.Window) []string {
		for _, w := range windows {
			if len(w.Points) > 0 {
				return slices.Sorted(maps.Keys(w.Points[0].Benchmarks))
			}
		}
		return nil
	},
	"inc": func(i int) int { return i + 1 },
	"recent": func(n int, records []patrimony.MonthlyRecord) []patrimony.MonthlyRecord {
		return records[max(len(records)-n, 0):]
	},
}

// DashboardRenderOptions holds configuration for rendering a dashboard.
type DashboardRenderOptions struct {
	Months          int  // number of trailing months in the monthly table, 0 for none.
	SkipDiagnostics bool // Do not render the diagnostics section.
}

// DashboardMarkdown renders the dashboard to a markdown string.
func DashboardMarkdown(d *patrimony.Dashboard, opts DashboardRenderOptions) string {
	partials := map[string]string{
		"dashboard_kpis":        "templates/dashboard_kpis.md",
		"dashboard_annual":      "templates/dashboard_annual.md",
		"dashboard_benchmarks":  "templates/dashboard_benchmarks.md",
		"dashboard_monthly":     "",
		"dashboard_diagnostics": "templates/dashboard_diagnostics.md",
	}
	if opts.Months > 0 {
		partials["dashboard_monthly"] = "templates/dashboard_monthly.md"
	}
	if opts.SkipDiagnostics {
		partials["dashboard_diagnostics"] = ""
	}
	view := struct {
		*patrimony.Dashboard
		Months int
	}{d, opts.Months}
	return renderTemplate("dashboard", "templates/dashboard.md", partials, view)
}

// RankingMarkdown renders the holdings ranking and the allocation gaps.
func RankingMarkdown(d *patrimony.Dashboard) string {
	return renderTemplate("ranking", "templates/ranking.md", nil, d)
}

// OptionsMarkdown renders the options cash flow.
func OptionsMarkdown(r *options.Report) string {
	return renderTemplate("options", "templates/options.md", nil, r)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			content, err = fs.ReadFile(templates, file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
