package config

import (
	"path/filepath"
	"strings"
	"testing"
)

type envTestConfig struct {
	Level int `env:"PKMN_TEST_LEVEL" envDefault:"50"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Level != 50 {
		t.Fatalf("expected default level 50, got %d", cfg.Level)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("PKMN_TEST_LEVEL", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadPaths(t *testing.T) {
	t.Setenv("PKMN_DB_PATH", "")
	t.Setenv("PKMN_TMP_DIR", "/var/tmp/pkmn")
	t.Setenv("PKMN_LOCALE", "pt-BR")

	p, err := LoadPaths()
	if err != nil {
		t.Fatalf("load paths: %v", err)
	}
	if p.DBPath != filepath.Join("data", "pkmn.db") {
		t.Fatalf("DBPath = %q", p.DBPath)
	}
	if p.TmpDir != "/var/tmp/pkmn" {
		t.Fatalf("TmpDir = %q", p.TmpDir)
	}
	if p.Locale != "pt-BR" {
		t.Fatalf("Locale = %q", p.Locale)
	}
}
