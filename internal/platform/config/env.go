package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Paths are the filesystem locations the tools need. They are opaque to the
// library packages, which receive them as plain arguments.
type Paths struct {
	DBPath string `env:"PKMN_DB_PATH"`
	TmpDir string `env:"PKMN_TMP_DIR"`
	Locale string `env:"PKMN_LOCALE" envDefault:"en-US"`
}

// LoadPaths reads Paths from the environment and fills in defaults.
func LoadPaths() (Paths, error) {
	var p Paths
	if err := ParseEnv(&p); err != nil {
		return Paths{}, err
	}
	if p.DBPath == "" {
		p.DBPath = filepath.Join("data", "pkmn.db")
	}
	if p.TmpDir == "" {
		p.TmpDir = os.TempDir()
	}
	return p, nil
}
