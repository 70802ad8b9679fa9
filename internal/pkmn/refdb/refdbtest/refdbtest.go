// Package refdbtest builds the seeded reference catalog for tests in other
// packages.
package refdbtest

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/louisbranch/pkmnkit/internal/pkmn/refdb"
	"github.com/louisbranch/pkmnkit/internal/pkmn/refdb/sqlite"
)

var (
	once    sync.Once
	shared  *refdb.Catalog
	loadErr error
)

// Catalog returns the catalog loaded from a freshly migrated database. The
// database is built once per test binary; the catalog is immutable so tests
// may share it.
func Catalog(t testing.TB) *refdb.Catalog {
	t.Helper()
	once.Do(func() {
		dir, err := os.MkdirTemp("", "pkmn-refdb-")
		if err != nil {
			loadErr = err
			return
		}
		defer os.RemoveAll(dir)

		ctx := context.Background()
		store, err := sqlite.Open(ctx, filepath.Join(dir, "refdb.sqlite"))
		if err != nil {
			loadErr = err
			return
		}
		defer store.Close()
		shared, loadErr = store.LoadCatalog(ctx)
	})
	if loadErr != nil {
		t.Fatalf("load reference catalog: %v", loadErr)
	}
	return shared
}
