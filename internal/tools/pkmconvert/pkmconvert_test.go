package pkmconvert

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/pkmnkit/internal/pkmn/game"
	"github.com/louisbranch/pkmnkit/internal/pkmn/pokemon"
	"github.com/louisbranch/pkmnkit/internal/pkmn/refdb/refdbtest"
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

func TestParseConfig(t *testing.T) {
	fs := flag.NewFlagSet("pkmconvert", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-game", "Ruby", "-from", "Yellow", "-dry-run", "pika.pk1"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.In != "pika.pk1" || cfg.Game != "Ruby" || cfg.SourceGame != "Yellow" || !cfg.DryRun {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func writeEntity(t *testing.T, dir string) string {
	t.Helper()
	p, err := pokemon.New(refdbtest.Catalog(t), "Pikachu", game.Yellow, "", 12)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := p.SetNickname("SPARKY"); err != nil {
		t.Fatalf("nickname: %v", err)
	}
	path := filepath.Join(dir, "pika.pk1")
	if err := pokemon.WriteFile(p, path); err != nil {
		t.Fatalf("write entity: %v", err)
	}
	return path
}

func TestRunConvertsAndWrites(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{In: writeEntity(t, dir), SourceGame: "Yellow", Game: "Crystal"}
	cfg.DBPath = filepath.Join(dir, "pkmn.db")
	cfg.Locale = "en-US"

	var out bytes.Buffer
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := filepath.Join(dir, "pika-crystal.pk2")
	if !strings.Contains(out.String(), "Pikachu (Yellow) -> Crystal: SPARKY Lv.12") || !strings.Contains(out.String(), want) {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
	got, err := pokemon.ReadFile(refdbtest.Catalog(t), want, game.Crystal)
	if err != nil {
		t.Fatalf("read converted: %v", err)
	}
	if got.Nickname() != "SPARKY" || got.Level() != 12 {
		t.Fatalf("unexpected converted entity %s Lv.%d", got.Nickname(), got.Level())
	}
}

func TestRunDryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{In: writeEntity(t, dir), Game: "Emerald", DryRun: true}
	cfg.DBPath = filepath.Join(dir, "pkmn.db")
	if err := Run(context.Background(), cfg, &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "pika-emerald.3gpkm")); !os.IsNotExist(err) {
		t.Fatalf("expected no output file, got %v", err)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	in := writeEntity(t, dir)
	tests := []struct {
		name string
		cfg  Config
		code apperrors.Code
	}{
		{"missing input", Config{Game: "Red"}, ""},
		{"missing game", Config{In: in}, ""},
		{"unknown game", Config{In: in, Game: "Stadium"}, apperrors.CodeInvalidArgument},
		{"GameCube", Config{In: in, Game: "XD"}, apperrors.CodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.DBPath = filepath.Join(dir, "pkmn.db")
			err := Run(context.Background(), tt.cfg, &bytes.Buffer{})
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.code != "" && !apperrors.HasCode(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
		})
	}
}
