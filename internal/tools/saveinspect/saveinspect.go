// Package saveinspect prints a localized summary of a game save.
package saveinspect

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/message"

	"github.com/louisbranch/pkmnkit/internal/pkmn/container"
	"github.com/louisbranch/pkmnkit/internal/pkmn/game"
	"github.com/louisbranch/pkmnkit/internal/pkmn/gamesave"
	"github.com/louisbranch/pkmnkit/internal/pkmn/items"
	"github.com/louisbranch/pkmnkit/internal/pkmn/pokemon"
	"github.com/louisbranch/pkmnkit/internal/platform/cmd"
	"github.com/louisbranch/pkmnkit/internal/platform/i18n/catalog"
	"github.com/louisbranch/pkmnkit/internal/tools/toolenv"
)

// Column widths of the listing.
const (
	speciesWidth = 12
	itemWidth    = 14
)

// Config holds saveinspect configuration.
type Config struct {
	toolenv.Env
	SavePath string `env:"PKMN_SAVE_PATH"`
	Game     string `env:"PKMN_GAME"`
	AllBoxes bool
}

// ParseConfig reads the environment, then flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := cmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.SavePath, "save", cfg.SavePath, "save file to inspect")
	fs.StringVar(&cfg.Game, "game", cfg.Game, "game of the save when the file cannot tell (e.g. Blue, Silver)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "output locale")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "reference database path")
	fs.BoolVar(&cfg.AllBoxes, "all-boxes", false, "list empty boxes too")
	if err := cmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run loads the save and writes its summary to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		return errors.New("output is required")
	}
	if strings.TrimSpace(cfg.SavePath) == "" {
		return errors.New("save path is required")
	}
	bundle, err := catalog.LoadEmbedded()
	if err != nil {
		return fmt.Errorf("load locales: %w", err)
	}
	cat, err := toolenv.OpenCatalog(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	var opts []gamesave.Option
	if cfg.Game != "" {
		g, err := game.Parse(cfg.Game)
		if err != nil {
			return toolenv.Localize(bundle, cfg.Locale, err)
		}
		opts = append(opts, gamesave.WithGame(g))
	}
	s, err := gamesave.Load(ctx, cat, cfg.SavePath, opts...)
	if err != nil {
		return toolenv.Localize(bundle, cfg.Locale, err)
	}
	w := &writer{out: out, p: bundle.Printer(cfg.Locale), bundle: bundle, locale: bundle.Match(cfg.Locale)}
	w.summary(s, cfg.AllBoxes)
	return w.err
}

type writer struct {
	out    io.Writer
	p      *message.Printer
	bundle *catalog.Bundle
	locale string
	err    error
}

func (w *writer) line(key string, args ...any) {
	if w.err != nil {
		return
	}
	if _, err := w.p.Fprintf(w.out, key, args...); err != nil {
		w.err = err
		return
	}
	_, w.err = fmt.Fprintln(w.out)
}

func (w *writer) label(prefix, key string) string {
	return w.bundle.Label(w.locale, prefix+"."+key)
}

func (w *writer) summary(s *gamesave.Save, allBoxes bool) {
	w.line("save.format", string(s.Format()))
	w.line("save.game", string(s.Game()))
	w.line("save.trainer", s.TrainerName(), fmt.Sprintf("%05d", s.TrainerPublicID()))
	w.line("save.trainer_gender", w.label("gender", s.TrainerGender()))
	if rival, err := s.RivalName(); err == nil {
		w.line("save.rival", rival)
	}
	w.line("save.money", s.Money())
	w.line("save.play_time", s.PlayTime().String())
	w.line("save.pokedex", s.Pokedex().NumSeen(), s.Pokedex().NumCaught())

	w.line("save.party", s.Party().NumPokemon())
	w.members(s.Party().Pokemon())
	if daycare, err := s.Daycare(); err == nil {
		w.line("save.daycare", daycare.NumPokemon(), daycare.Capacity())
		w.members(daycare.Pokemon())
	}

	names, err := s.PC().BoxNames()
	for i, box := range s.PC().Boxes() {
		if box.NumPokemon() == 0 && !allBoxes {
			continue
		}
		name := container.DefaultBoxName(s.Game(), i)
		if err == nil {
			name = names[i]
		}
		w.line("save.box", name, box.NumPokemon(), box.Capacity())
		w.members(box.Pokemon())
	}

	for _, pocket := range s.Bag().Pockets() {
		w.pocket(pocket)
	}
	w.pocket(s.ItemPC())

	for _, name := range s.AttributeNames() {
		v, err := s.NumericAttribute(name)
		if err != nil {
			continue
		}
		w.line("save.extra", name, v)
	}
}

func (w *writer) members(list []pokemon.Pokemon) {
	for _, p := range list {
		if p == nil {
			continue
		}
		w.line("save.pokemon", runewidth.FillRight(p.Species().Name, speciesWidth), p.Level(), p.Nickname())
	}
}

func (w *writer) pocket(l *items.List) {
	w.line("save.pocket", w.label("pocket", l.Name()), l.NumItems(), l.Len())
	for _, slot := range l.Slots() {
		if slot.Empty() || slot.Amount == 0 {
			continue
		}
		w.line("save.item", runewidth.FillRight(slot.Item, itemWidth), slot.Amount)
	}
}
