// Package refdbseed creates or migrates the reference database.
package refdbseed

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/louisbranch/pkmnkit/internal/pkmn/game"
	"github.com/louisbranch/pkmnkit/internal/platform/cmd"
	"github.com/louisbranch/pkmnkit/internal/tools/toolenv"
)

// Config holds refdb-seed configuration.
type Config struct {
	toolenv.Env
}

// ParseConfig reads the environment, then flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := cmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "reference database path")
	if err := cmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run applies the embedded migrations and reports what the catalog holds
// per game.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		return errors.New("output is required")
	}
	cat, err := toolenv.OpenCatalog(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "reference database ready: %s\n", cfg.DBPath)
	for _, g := range game.All() {
		fmt.Fprintf(out, "  %-10s items %3d  pockets %d\n", g, len(cat.Items(g)), len(cat.Pockets(g.VersionGroup())))
	}
	fmt.Fprintf(out, "  natures %d\n", len(cat.Natures()))
	return nil
}
