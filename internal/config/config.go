// Package config resolves CLI defaults from an optional .env file and the
// process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"

	"github.com/joelkehle/saascalc/internal/currency"
	"github.com/joelkehle/saascalc/internal/scenario"
)

const (
	EnvCurrency  = "SAASCALC_CURRENCY"
	EnvFormat    = "SAASCALC_FORMAT"
	EnvOutputDir = "SAASCALC_OUTPUT_DIR"
	EnvPreset    = "SAASCALC_PRESET"
	EnvChrome    = "CHROME_PATH"
)

// Output formats understood by the CLI.
const (
	FormatCSV      = "csv"
	FormatReport   = "report"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatPDF      = "pdf"
	FormatJSON     = "json"
)

var Formats = []string{FormatCSV, FormatReport, FormatMarkdown, FormatHTML, FormatPDF, FormatJSON}

var ErrUnknownFormat = errors.New("unknown format")

type Config struct {
	Currency   currency.Currency
	Format     string
	OutputDir  string
	Preset     string
	ChromePath string
}

// Default is the configuration with nothing set.
func Default() Config {
	return Config{
		Currency:  currency.Base,
		Format:    FormatReport,
		OutputDir: ".",
		Preset:    scenario.PresetDefault,
	}
}

// Load starts from Default, applies values from envFile when it exists, and
// then the process environment, which wins over the file.
func Load(envFile string) (Config, error) {
	fileVals := map[string]string{}
	if envFile != "" {
		vals, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileVals = vals
		case !errors.Is(err, os.ErrNotExist):
			return Config{}, fmt.Errorf("read %s: %w", envFile, err)
		}
	}
	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(fileVals[key])
	}

	cfg := Default()
	if v := lookup(EnvCurrency); v != "" {
		c, err := currency.Parse(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvCurrency, err)
		}
		cfg.Currency = c
	}
	if v := lookup(EnvFormat); v != "" {
		f, err := ParseFormat(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvFormat, err)
		}
		cfg.Format = f
	}
	if v := lookup(EnvOutputDir); v != "" {
		cfg.OutputDir = v
	}
	if v := lookup(EnvPreset); v != "" {
		if !slices.Contains(scenario.PresetNames(), v) {
			return Config{}, fmt.Errorf("%s: %w %q", EnvPreset, scenario.ErrUnknownPreset, v)
		}
		cfg.Preset = v
	}
	cfg.ChromePath = lookup(EnvChrome)
	return cfg, nil
}

// ParseFormat normalizes an output format name.
func ParseFormat(s string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(s))
	if !slices.Contains(Formats, f) {
		return "", fmt.Errorf("%w %q (want one of %s)", ErrUnknownFormat, s, strings.Join(Formats, ", "))
	}
	return f, nil
}
