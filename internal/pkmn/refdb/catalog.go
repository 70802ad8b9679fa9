// Package refdb holds the read-only reference data the codecs consult:
// species, moves, items, pockets, locations and natures, with the
// per-generation indices each game stores on disk.
//
// A Catalog is loaded once (usually from refdb/sqlite) and never mutated, so
// it can be shared freely between saves and conversions.
package refdb

import (
	"fmt"
	"sort"
	"strings"

	"github.com/louisbranch/pkmnkit/internal/pkmn/calc"
	"github.com/louisbranch/pkmnkit/internal/pkmn/game"
)

// NoItem is the name of the empty held item / slot.
const NoItem = "None"

// StandardForm is the form of species that have no alternate forms.
const StandardForm = "Standard"

// Last national dex number introduced by each generation.
var lastNational = map[int]int{1: 151, 2: 251, 3: 386}

// Last move id available in each generation.
var lastMove = map[int]int{1: 165, 2: 251, 3: 354}

// Item categories. A pocket accepts a set of categories.
const (
	CategoryItem     = "item"
	CategoryKey      = "key"
	CategoryBall     = "ball"
	CategoryTM       = "tm"
	CategoryBerry    = "berry"
	CategoryCologne  = "cologne"
	CategoryBattleCD = "battle_cd"
)

// AnyCategory is the pocket category wildcard.
const AnyCategory = "*"

// BaseStats are a species' base stats. Special is the Generation I value;
// SpecialAttack and SpecialDefense apply from Generation II.
type BaseStats struct {
	HP             int
	Attack         int
	Defense        int
	Speed          int
	Special        int
	SpecialAttack  int
	SpecialDefense int
}

// Get returns the base value of stat. Generation II uses SpecialAttack for
// both halves of its unified Special IV, so callers pick the stat explicitly.
func (b BaseStats) Get(stat calc.Stat) int {
	switch stat {
	case calc.HP:
		return b.HP
	case calc.Attack:
		return b.Attack
	case calc.Defense:
		return b.Defense
	case calc.Speed:
		return b.Speed
	case calc.Special:
		return b.Special
	case calc.SpecialAttack:
		return b.SpecialAttack
	case calc.SpecialDefense:
		return b.SpecialDefense
	}
	return 0
}

// Species is one species entry.
type Species struct {
	NationalID     int
	Name           string
	Gen1Index      int
	Gen3Index      int
	Type1          string
	Type2          string
	Base           BaseStats
	Growth         calc.GrowthRate
	GenderRatio    calc.GenderRatio
	BaseFriendship int
	CatchRate      int
	Abilities      [2]string
	HeightDM       int
	WeightHG       int
}

// Gen2Index is the Generation II internal index, which equals the national number.
func (s Species) Gen2Index() int {
	if s.NationalID > lastNational[2] {
		return 0
	}
	return s.NationalID
}

// ExperienceAt returns the experience the species needs for level.
func (s Species) ExperienceAt(level int) (int, error) {
	return calc.ExperienceAt(s.Growth, level)
}

// LevelAt returns the level the species has with exp experience.
func (s Species) LevelAt(exp int) (int, error) {
	return calc.LevelAt(s.Growth, exp)
}

// HasAbility reports whether ability is one of the species' abilities.
func (s Species) HasAbility(ability string) bool {
	for _, a := range s.Abilities {
		if a != "" && key(a) == key(ability) {
			return true
		}
	}
	return false
}

// Form is an alternate appearance introduced in a generation.
type Form struct {
	Species    string
	Name       string
	Generation int
	Position   int
}

// Move is one move entry. VersionGroups restricts moves that exist only in
// some games (Shadow moves); empty means every game of its generation onward.
type Move struct {
	ID            int
	Name          string
	Type          string
	PP            int
	Power         int
	Generation    int
	VersionGroups []game.VersionGroup
}

// Item is one item entry. An index of zero means the item does not exist in
// that generation.
type Item struct {
	Name          string
	Category      string
	Gen1Index     int
	Gen2Index     int
	Gen3Index     int
	FlingPower    int
	VersionGroups []game.VersionGroup
}

// Pocket is one bag pocket (or the item PC) of a version group.
type Pocket struct {
	VersionGroup game.VersionGroup
	Name         string
	Categories   []string
	Capacity     int
	Position     int
}

// Accepts reports whether item belongs in the pocket.
func (p Pocket) Accepts(item Item) bool {
	for _, c := range p.Categories {
		if c == AnyCategory || c == item.Category {
			return true
		}
	}
	return false
}

// Location is a met location with its per-generation index.
type Location struct {
	Generation int
	Index      int
	Name       string
}

// Data is the raw content a Catalog is built from.
type Data struct {
	Species   []Species
	Forms     []Form
	Moves     []Move
	Items     []Item
	Pockets   []Pocket
	Locations []Location
	Natures   []string
}

// Catalog is an immutable, indexed snapshot of the reference data.
type Catalog struct {
	species       []Species
	speciesByName map[string]int
	speciesByNat  map[int]int
	speciesByGen1 map[int]int
	speciesByGen3 map[int]int
	forms         map[int][]Form

	moves       []Move
	moveByName  map[string]int
	moveByID    map[int]int
	items       []Item
	itemByName  map[string]int
	itemByIndex map[int]map[int]int

	pockets   map[game.VersionGroup][]Pocket
	locations map[int][]Location
	locByName map[int]map[string]int
	locByIdx  map[int]map[int]int
	natures   []string
}

// New indexes d into a Catalog, rejecting duplicate names and indices.
func New(d Data) (*Catalog, error) {
	c := &Catalog{
		speciesByName: map[string]int{},
		speciesByNat:  map[int]int{},
		speciesByGen1: map[int]int{},
		speciesByGen3: map[int]int{},
		forms:         map[int][]Form{},
		moveByName:    map[string]int{},
		moveByID:      map[int]int{},
		itemByName:    map[string]int{},
		itemByIndex:   map[int]map[int]int{1: {}, 2: {}, 3: {}},
		pockets:       map[game.VersionGroup][]Pocket{},
		locations:     map[int][]Location{},
		locByName:     map[int]map[string]int{},
		locByIdx:      map[int]map[int]int{},
		natures:       append([]string(nil), d.Natures...),
	}

	c.species = append([]Species(nil), d.Species...)
	sort.Slice(c.species, func(i, j int) bool { return c.species[i].NationalID < c.species[j].NationalID })
	for i, s := range c.species {
		if err := unique(c.speciesByName, key(s.Name), i, "species name", s.Name); err != nil {
			return nil, err
		}
		if err := unique(c.speciesByNat, s.NationalID, i, "species national id", s.Name); err != nil {
			return nil, err
		}
		if s.Gen1Index != 0 {
			if err := unique(c.speciesByGen1, s.Gen1Index, i, "species gen1 index", s.Name); err != nil {
				return nil, err
			}
		}
		if s.Gen3Index != 0 {
			if err := unique(c.speciesByGen3, s.Gen3Index, i, "species gen3 index", s.Name); err != nil {
				return nil, err
			}
		}
	}
	for _, f := range d.Forms {
		i, ok := c.speciesByName[key(f.Species)]
		if !ok {
			return nil, fmt.Errorf("form %s: unknown species %s", f.Name, f.Species)
		}
		nat := c.species[i].NationalID
		c.forms[nat] = append(c.forms[nat], f)
	}
	for nat := range c.forms {
		forms := c.forms[nat]
		sort.SliceStable(forms, func(i, j int) bool { return forms[i].Position < forms[j].Position })
	}

	c.moves = append([]Move(nil), d.Moves...)
	sort.Slice(c.moves, func(i, j int) bool { return c.moves[i].ID < c.moves[j].ID })
	for i, m := range c.moves {
		if err := unique(c.moveByName, key(m.Name), i, "move name", m.Name); err != nil {
			return nil, err
		}
		if err := unique(c.moveByID, m.ID, i, "move id", m.Name); err != nil {
			return nil, err
		}
	}

	c.items = append([]Item(nil), d.Items...)
	for i, it := range c.items {
		if err := unique(c.itemByName, key(it.Name), i, "item name", it.Name); err != nil {
			return nil, err
		}
		for gen, idx := range map[int]int{1: it.Gen1Index, 2: it.Gen2Index, 3: it.Gen3Index} {
			if idx == 0 {
				continue
			}
			if err := unique(c.itemByIndex[gen], idx, i, fmt.Sprintf("item gen%d index", gen), it.Name); err != nil {
				return nil, err
			}
		}
	}

	for _, p := range d.Pockets {
		c.pockets[p.VersionGroup] = append(c.pockets[p.VersionGroup], p)
	}
	for vg := range c.pockets {
		ps := c.pockets[vg]
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Position < ps[j].Position })
	}

	for _, l := range d.Locations {
		gen := l.Generation
		if c.locByName[gen] == nil {
			c.locByName[gen] = map[string]int{}
			c.locByIdx[gen] = map[int]int{}
		}
		i := len(c.locations[gen])
		if err := unique(c.locByIdx[gen], l.Index, i, fmt.Sprintf("gen%d location index", gen), l.Name); err != nil {
			return nil, err
		}
		// Several indices may share a name; the first one wins for lookups by name.
		if _, dup := c.locByName[gen][key(l.Name)]; !dup {
			c.locByName[gen][key(l.Name)] = i
		}
		c.locations[gen] = append(c.locations[gen], l)
	}
	return c, nil
}

func unique[K comparable](m map[K]int, k K, i int, field, name string) error {
	if _, dup := m[k]; dup {
		return fmt.Errorf("duplicate %s: %s", field, name)
	}
	m[k] = i
	return nil
}

func inGroups(groups []game.VersionGroup, g game.Game) bool {
	if len(groups) == 0 {
		return true
	}
	vg := g.VersionGroup()
	for _, x := range groups {
		if x == vg {
			return true
		}
	}
	return false
}

// ParseVersionGroups reads a comma-separated version group list.
func ParseVersionGroups(s string) []game.VersionGroup {
	var out []game.VersionGroup
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, game.VersionGroup(part))
		}
	}
	return out
}
