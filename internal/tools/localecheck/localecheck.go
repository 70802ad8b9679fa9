// Package localecheck reports how complete each locale's translations are.
package localecheck

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/louisbranch/pkmnkit/internal/platform/cmd"
	"github.com/louisbranch/pkmnkit/internal/platform/i18n/catalog"
)

// Config holds localecheck configuration.
type Config struct {
	BaseLocale string `env:"PKMN_BASE_LOCALE"`
	JSONOut    string
	Strict     bool
}

// Report is the translation status of every locale against the base one.
type Report struct {
	BaseLocale string         `json:"base_locale"`
	Locales    []LocaleStatus `json:"locales"`
}

// LocaleStatus summarizes one locale.
type LocaleStatus struct {
	Locale      string            `json:"locale"`
	BaseKeys    int               `json:"base_keys"`
	Translated  int               `json:"translated"`
	Completion  float64           `json:"completion"`
	Namespaces  []NamespaceStatus `json:"namespaces"`
	MissingKeys []string          `json:"missing_keys"`
	ExtraKeys   []string          `json:"extra_keys"`
}

// NamespaceStatus summarizes one namespace of a locale.
type NamespaceStatus struct {
	Namespace  string  `json:"namespace"`
	BaseKeys   int     `json:"base_keys"`
	Missing    int     `json:"missing"`
	Extra      int     `json:"extra"`
	Completion float64 `json:"completion"`
}

// ParseConfig reads the environment, then flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := cmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.BaseLocale == "" {
		cfg.BaseLocale = catalog.BaseLocale
	}
	fs.StringVar(&cfg.BaseLocale, "base-locale", cfg.BaseLocale, "locale the others are compared against")
	fs.StringVar(&cfg.JSONOut, "json-out", "", "also write the report as JSON to this path")
	fs.BoolVar(&cfg.Strict, "strict", false, "fail when any locale misses keys")
	if err := cmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run checks the embedded catalogs and writes a summary table to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		return errors.New("output is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	bundle, err := catalog.LoadEmbedded()
	if err != nil {
		return fmt.Errorf("load locales: %w", err)
	}
	base := cfg.BaseLocale
	if base == "" {
		base = catalog.BaseLocale
	}
	if !bundle.HasLocale(base) {
		return fmt.Errorf("base locale %q is missing from catalogs", base)
	}
	rep := BuildReport(bundle, base)
	if err := writeSummary(out, rep); err != nil {
		return err
	}
	if cfg.JSONOut != "" {
		if err := writeJSON(cfg.JSONOut, rep); err != nil {
			return err
		}
	}
	if cfg.Strict {
		var incomplete []string
		for _, l := range rep.Locales {
			if len(l.MissingKeys) > 0 {
				incomplete = append(incomplete, l.Locale)
			}
		}
		if len(incomplete) > 0 {
			return fmt.Errorf("missing translations in %s", strings.Join(incomplete, ", "))
		}
	}
	return nil
}

// BuildReport compares every locale of bundle against base.
func BuildReport(bundle *catalog.Bundle, base string) Report {
	rep := Report{BaseLocale: base}
	for _, locale := range bundle.Locales() {
		status := LocaleStatus{Locale: locale}
		for _, ns := range union(bundle.Namespaces(base), bundle.Namespaces(locale)) {
			baseNS := bundle.NamespaceMessages(base, ns)
			localeNS := bundle.NamespaceMessages(locale, ns)
			missing := diff(baseNS, localeNS)
			extra := diff(localeNS, baseNS)
			status.BaseKeys += len(baseNS)
			status.Translated += len(baseNS) - len(missing)
			status.MissingKeys = append(status.MissingKeys, missing...)
			status.ExtraKeys = append(status.ExtraKeys, extra...)
			status.Namespaces = append(status.Namespaces, NamespaceStatus{
				Namespace:  ns,
				BaseKeys:   len(baseNS),
				Missing:    len(missing),
				Extra:      len(extra),
				Completion: percent(len(baseNS)-len(missing), len(baseNS)),
			})
		}
		sort.Strings(status.MissingKeys)
		sort.Strings(status.ExtraKeys)
		status.Completion = percent(status.Translated, status.BaseKeys)
		rep.Locales = append(rep.Locales, status)
	}
	return rep
}

func writeSummary(out io.Writer, rep Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Base locale: %s\n\n", rep.BaseLocale)
	b.WriteString("| Locale | Base Keys | Translated | Missing | Extra | Completion |\n")
	b.WriteString("| --- | ---: | ---: | ---: | ---: | ---: |\n")
	for _, l := range rep.Locales {
		fmt.Fprintf(&b, "| `%s` | %d | %d | %d | %d | %.1f%% |\n",
			l.Locale, l.BaseKeys, l.Translated, len(l.MissingKeys), len(l.ExtraKeys), l.Completion)
	}
	for _, l := range rep.Locales {
		if len(l.MissingKeys) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\nMissing in %s:\n", l.Locale)
		for _, key := range l.MissingKeys {
			fmt.Fprintf(&b, "- `%s`\n", key)
		}
	}
	_, err := io.WriteString(out, b.String())
	return err
}

func writeJSON(path string, rep Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// diff lists the keys of a that b lacks, sorted.
func diff(a, b map[string]string) []string {
	out := []string{}
	for key := range a {
		if _, ok := b[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func union(a, b []string) []string {
	set := map[string]struct{}{}
	for _, s := range append(append([]string(nil), a...), b...) {
		set[s] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func percent(n, d int) float64 {
	if d <= 0 {
		return 100
	}
	return math.Round(float64(n)*1000/float64(d)) / 10
}
