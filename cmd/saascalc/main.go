package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/joelkehle/saascalc/internal/config"
	"github.com/joelkehle/saascalc/internal/currency"
	"github.com/joelkehle/saascalc/internal/export"
	"github.com/joelkehle/saascalc/internal/render"
	"github.com/joelkehle/saascalc/internal/saasmetrics"
	"github.com/joelkehle/saascalc/internal/scenario"
)

const dateLayout = "2006-01-02"

func main() {
	inputPath := flag.String("input", "", "Path to a scenario file (YAML or JSON)")
	presetName := flag.String("preset", "", "Built-in scenario when -input is not given (default, reset)")
	format := flag.String("format", "", "Output format: csv, report, markdown, html, pdf, json")
	displayCurrency := flag.String("currency", "", "Display currency: USD or SAR")
	outputPath := flag.String("output", "", "Output file; '-' writes to stdout (defaults to a dated file in the output dir)")
	dateFlag := flag.String("date", "", "Report date as YYYY-MM-DD (defaults to today)")
	envFile := flag.String("env", ".env", "Optional dotenv file with SAASCALC_* defaults")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *format != "" {
		if cfg.Format, err = config.ParseFormat(*format); err != nil {
			log.Fatalf("parse -format: %v", err)
		}
	}
	if *displayCurrency != "" {
		if cfg.Currency, err = currency.Parse(*displayCurrency); err != nil {
			log.Fatalf("parse -currency: %v", err)
		}
	}
	if *presetName != "" {
		cfg.Preset = *presetName
	}

	date := time.Now()
	if *dateFlag != "" {
		if date, err = time.Parse(dateLayout, *dateFlag); err != nil {
			log.Fatalf("parse -date: %v", err)
		}
	}

	var s saasmetrics.Scenario
	switch {
	case *inputPath != "" && *presetName != "":
		log.Fatal("use either -input or -preset, not both")
	case *inputPath != "":
		if s, err = scenario.Load(*inputPath); err != nil {
			log.Fatalf("load scenario: %v", err)
		}
	default:
		if s, err = scenario.Preset(cfg.Preset); err != nil {
			log.Fatalf("load preset: %v", err)
		}
	}

	out, err := renderOutput(context.Background(), cfg, s, date)
	if err != nil {
		log.Fatalf("render %s: %v", cfg.Format, err)
	}

	if *outputPath == "-" {
		if _, err := os.Stdout.Write(out); err != nil {
			log.Fatalf("write stdout: %v", err)
		}
		return
	}
	path := *outputPath
	if path == "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			log.Fatalf("create output dir: %v", err)
		}
		path = filepath.Join(cfg.OutputDir, defaultFilename(cfg.Format, date))
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		log.Fatalf("write output: %v", err)
	}
	log.Printf("wrote %s (%s, %s)", path, cfg.Format, humanize.Bytes(uint64(len(out))))
}

// renderOutput produces the bytes for cfg.Format. Only pdf blocks on an
// external process.
func renderOutput(ctx context.Context, cfg config.Config, s saasmetrics.Scenario, date time.Time) ([]byte, error) {
	m := s.Metrics()
	switch cfg.Format {
	case config.FormatCSV:
		return []byte(export.CSV(s, m, cfg.Currency)), nil
	case config.FormatReport:
		return []byte(export.ToReport(s, m, cfg.Currency, date).Text()), nil
	case config.FormatMarkdown:
		return []byte(export.ToReport(s, m, cfg.Currency, date).Markdown()), nil
	case config.FormatHTML, config.FormatPDF:
		doc, err := render.HTML(export.ToReport(s, m, cfg.Currency, date).Markdown(), export.ReportTitle)
		if err != nil {
			return nil, err
		}
		if cfg.Format == config.FormatHTML {
			return []byte(doc), nil
		}
		return render.NewPDFRenderer(cfg.ChromePath).Render(ctx, doc)
	case config.FormatJSON:
		return encodeJSON(s, m, cfg.Currency, date)
	default:
		return nil, fmt.Errorf("%w %q", config.ErrUnknownFormat, cfg.Format)
	}
}

type metricsDump struct {
	GeneratedOn     string                       `json:"generated_on"`
	DisplayCurrency currency.Currency            `json:"display_currency"`
	Scenario        saasmetrics.Scenario         `json:"scenario"`
	Metrics         saasmetrics.FinancialMetrics `json:"metrics"`
}

func encodeJSON(s saasmetrics.Scenario, m saasmetrics.FinancialMetrics, c currency.Currency, date time.Time) ([]byte, error) {
	b, err := json.MarshalIndent(metricsDump{
		GeneratedOn:     date.Format(dateLayout),
		DisplayCurrency: c,
		Scenario:        s,
		Metrics:         m,
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// defaultFilename names the output for format, e.g.
// narra-saas-report-2026-10-15.pdf.
func defaultFilename(format string, date time.Time) string {
	day := date.Format(dateLayout)
	switch format {
	case config.FormatCSV:
		return "narra-saas-scenario-" + day + ".csv"
	case config.FormatJSON:
		return "narra-saas-metrics-" + day + ".json"
	}
	return "narra-saas-report-" + day + reportExt(format)
}

func reportExt(format string) string {
	switch format {
	case config.FormatMarkdown:
		return ".md"
	case config.FormatHTML:
		return ".html"
	case config.FormatPDF:
		return ".pdf"
	}
	return ".txt"
}
