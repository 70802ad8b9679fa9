// Package sqlite stores the reference database in SQLite and loads it into a
// refdb.Catalog.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/pkmnkit/internal/pkmn/calc"
	"github.com/louisbranch/pkmnkit/internal/pkmn/game"
	"github.com/louisbranch/pkmnkit/internal/pkmn/refdb"
	"github.com/louisbranch/pkmnkit/internal/pkmn/refdb/sqlite/migrations"
	"github.com/louisbranch/pkmnkit/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Store is a reference database handle.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) the reference database at path and applies
// the embedded schema and seed migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if err := os.MkdirAll(filepath.Dir(filepath.Clean(path)), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// LoadCatalog reads every table into an immutable catalog.
func (s *Store) LoadCatalog(ctx context.Context) (*refdb.Catalog, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if err := s.checkGames(ctx); err != nil {
		return nil, err
	}
	var (
		d   refdb.Data
		err error
	)
	if d.Species, err = s.species(ctx); err != nil {
		return nil, err
	}
	if d.Forms, err = s.forms(ctx); err != nil {
		return nil, err
	}
	if d.Moves, err = s.moves(ctx); err != nil {
		return nil, err
	}
	if d.Items, err = s.items(ctx); err != nil {
		return nil, err
	}
	if d.Pockets, err = s.pockets(ctx); err != nil {
		return nil, err
	}
	if d.Locations, err = s.locations(ctx); err != nil {
		return nil, err
	}
	if d.Natures, err = s.natures(ctx); err != nil {
		return nil, err
	}
	return refdb.New(d)
}

// checkGames verifies the games table agrees with the compiled game list.
func (s *Store) checkGames(ctx context.Context) error {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT name, generation, version_group FROM games ORDER BY position`)
	if err != nil {
		return fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()
	seen := 0
	for rows.Next() {
		var (
			name, group string
			gen         int
		)
		if err := rows.Scan(&name, &gen, &group); err != nil {
			return fmt.Errorf("scan game: %w", err)
		}
		g := game.Game(name)
		if !g.Valid() || g.Generation() != gen || string(g.VersionGroup()) != group {
			return fmt.Errorf("game %s: stored as generation %d/%s", name, gen, group)
		}
		seen++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate games: %w", err)
	}
	if seen != len(game.All()) {
		return fmt.Errorf("games table has %d rows, want %d", seen, len(game.All()))
	}
	return nil
}

func (s *Store) species(ctx context.Context) ([]refdb.Species, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT national_id, name, gen1_index, gen3_index, type1, type2,
		       hp, attack, defense, speed, special, special_attack, special_defense,
		       growth_rate, gender_ratio, base_friendship, catch_rate,
		       ability1, ability2, height_dm, weight_hg
		  FROM species ORDER BY national_id`)
	if err != nil {
		return nil, fmt.Errorf("query species: %w", err)
	}
	defer rows.Close()

	var out []refdb.Species
	for rows.Next() {
		var (
			sp                 refdb.Species
			growth, ratio      string
			ability1, ability2 string
		)
		if err := rows.Scan(&sp.NationalID, &sp.Name, &sp.Gen1Index, &sp.Gen3Index, &sp.Type1, &sp.Type2,
			&sp.Base.HP, &sp.Base.Attack, &sp.Base.Defense, &sp.Base.Speed, &sp.Base.Special,
			&sp.Base.SpecialAttack, &sp.Base.SpecialDefense,
			&growth, &ratio, &sp.BaseFriendship, &sp.CatchRate,
			&ability1, &ability2, &sp.HeightDM, &sp.WeightHG); err != nil {
			return nil, fmt.Errorf("scan species: %w", err)
		}
		if sp.Growth, err = calc.ParseGrowthRate(growth); err != nil {
			return nil, fmt.Errorf("species %s: %w", sp.Name, err)
		}
		if sp.GenderRatio, err = calc.ParseGenderRatio(ratio); err != nil {
			return nil, fmt.Errorf("species %s: %w", sp.Name, err)
		}
		sp.Abilities = [2]string{ability1, ability2}
		out = append(out, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate species: %w", err)
	}
	return out, nil
}

func (s *Store) forms(ctx context.Context) ([]refdb.Form, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT species, form, generation, position FROM species_forms`)
	if err != nil {
		return nil, fmt.Errorf("query species forms: %w", err)
	}
	defer rows.Close()

	var out []refdb.Form
	for rows.Next() {
		var f refdb.Form
		if err := rows.Scan(&f.Species, &f.Name, &f.Generation, &f.Position); err != nil {
			return nil, fmt.Errorf("scan species form: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate species forms: %w", err)
	}
	return out, nil
}

func (s *Store) moves(ctx context.Context) ([]refdb.Move, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, name, type, pp, power, generation, version_groups FROM moves ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query moves: %w", err)
	}
	defer rows.Close()

	var out []refdb.Move
	for rows.Next() {
		var (
			m      refdb.Move
			groups string
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.Type, &m.PP, &m.Power, &m.Generation, &groups); err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		m.VersionGroups = refdb.ParseVersionGroups(groups)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate moves: %w", err)
	}
	return out, nil
}

func (s *Store) items(ctx context.Context) ([]refdb.Item, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT name, category, gen1_index, gen2_index, gen3_index, fling_power, version_groups
		  FROM items ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var out []refdb.Item
	for rows.Next() {
		var (
			it     refdb.Item
			groups string
		)
		if err := rows.Scan(&it.Name, &it.Category, &it.Gen1Index, &it.Gen2Index, &it.Gen3Index, &it.FlingPower, &groups); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		it.VersionGroups = refdb.ParseVersionGroups(groups)
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return out, nil
}

func (s *Store) pockets(ctx context.Context) ([]refdb.Pocket, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT version_group, name, categories, capacity, position
		  FROM item_pockets ORDER BY version_group, position`)
	if err != nil {
		return nil, fmt.Errorf("query item pockets: %w", err)
	}
	defer rows.Close()

	var out []refdb.Pocket
	for rows.Next() {
		var (
			p          refdb.Pocket
			group      string
			categories string
		)
		if err := rows.Scan(&group, &p.Name, &categories, &p.Capacity, &p.Position); err != nil {
			return nil, fmt.Errorf("scan item pocket: %w", err)
		}
		p.VersionGroup = game.VersionGroup(group)
		for _, c := range strings.Split(categories, ",") {
			if c = strings.TrimSpace(c); c != "" {
				p.Categories = append(p.Categories, c)
			}
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item pockets: %w", err)
	}
	return out, nil
}

func (s *Store) locations(ctx context.Context) ([]refdb.Location, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT generation, game_index, name FROM locations ORDER BY generation, game_index`)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	defer rows.Close()

	var out []refdb.Location
	for rows.Next() {
		var l refdb.Location
		if err := rows.Scan(&l.Generation, &l.Index, &l.Name); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}
	return out, nil
}

func (s *Store) natures(ctx context.Context) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT name FROM natures ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query natures: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan nature: %w", err)
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate natures: %w", err)
	}
	return out, nil
}
