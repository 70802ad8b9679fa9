// Package pkmconvert converts a single-entity file to another game.
package pkmconvert

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/louisbranch/pkmnkit/internal/pkmn/convert"
	"github.com/louisbranch/pkmnkit/internal/pkmn/game"
	"github.com/louisbranch/pkmnkit/internal/pkmn/pokemon"
	"github.com/louisbranch/pkmnkit/internal/platform/cmd"
	"github.com/louisbranch/pkmnkit/internal/platform/i18n/catalog"
	"github.com/louisbranch/pkmnkit/internal/tools/toolenv"
)

// Config holds pkmconvert configuration.
type Config struct {
	toolenv.Env
	In         string
	Out        string
	SourceGame string
	Game       string
	DryRun     bool
}

// ParseConfig reads the environment, then flags. The entity file is the
// first positional argument.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := cmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Game, "game", "", "destination game")
	fs.StringVar(&cfg.SourceGame, "from", "", "source game of a Game Boy file (default Red or Gold)")
	fs.StringVar(&cfg.Out, "out", "", "destination file (default: input name with the destination extension)")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "print the result without writing it")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "output locale")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "reference database path")
	if err := cmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.In = fs.Arg(0)
	return cfg, nil
}

// Run converts the entity in cfg.In and writes it unless DryRun is set.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		return errors.New("output is required")
	}
	if strings.TrimSpace(cfg.In) == "" {
		return errors.New("entity file is required")
	}
	if strings.TrimSpace(cfg.Game) == "" {
		return errors.New("destination game is required")
	}
	bundle, err := catalog.LoadEmbedded()
	if err != nil {
		return fmt.Errorf("load locales: %w", err)
	}
	dest, err := game.Parse(cfg.Game)
	if err != nil {
		return toolenv.Localize(bundle, cfg.Locale, err)
	}
	var from game.Game
	if cfg.SourceGame != "" {
		if from, err = game.Parse(cfg.SourceGame); err != nil {
			return toolenv.Localize(bundle, cfg.Locale, err)
		}
	}
	cat, err := toolenv.OpenCatalog(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	src, err := pokemon.ReadFile(cat, cfg.In, from)
	if err != nil {
		return toolenv.Localize(bundle, cfg.Locale, err)
	}
	converted, err := convert.Convert(ctx, cat, src, dest)
	if err != nil {
		return toolenv.Localize(bundle, cfg.Locale, err)
	}
	p := bundle.Printer(cfg.Locale)
	if _, err := p.Fprintf(out, "convert.result", src.Species().Name, string(src.Game()), string(dest), converted.Nickname(), converted.Level()); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}
	if cfg.DryRun {
		return nil
	}
	path := cfg.Out
	if path == "" {
		path = strings.TrimSuffix(cfg.In, filepath.Ext(cfg.In)) + "-" + strings.ToLower(string(dest)) + pokemon.Extension(converted)
	}
	if err := pokemon.WriteFile(converted, path); err != nil {
		return toolenv.Localize(bundle, cfg.Locale, err)
	}
	_, err = fmt.Fprintln(out, path)
	return err
}
