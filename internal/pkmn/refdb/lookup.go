package refdb

import (
	"strconv"

	"github.com/louisbranch/pkmnkit/internal/pkmn/game"
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// Species looks a species up by name.
func (c *Catalog) Species(name string) (Species, error) {
	i, ok := c.speciesByName[key(name)]
	if !ok {
		return Species{}, apperrors.NotFound("species", name)
	}
	return c.species[i], nil
}

// SpeciesByNationalID looks a species up by national dex number.
func (c *Catalog) SpeciesByNationalID(id int) (Species, error) {
	i, ok := c.speciesByNat[id]
	if !ok {
		return Species{}, apperrors.NotFound("species national id", strconv.Itoa(id))
	}
	return c.species[i], nil
}

// SpeciesByIndex resolves the internal species index stored by g.
func (c *Catalog) SpeciesByIndex(g game.Game, index int) (Species, error) {
	var (
		i  int
		ok bool
	)
	switch g.Generation() {
	case 1:
		i, ok = c.speciesByGen1[index]
	case 2:
		if index >= 1 && index <= lastNational[2] {
			i, ok = c.speciesByNat[index]
		}
	case 3:
		i, ok = c.speciesByGen3[index]
	}
	if !ok {
		return Species{}, apperrors.InvalidArgument(string(g)+" species index", strconv.Itoa(index))
	}
	return c.species[i], nil
}

// SpeciesIndex returns the internal index g stores for s.
func (c *Catalog) SpeciesIndex(g game.Game, s Species) (int, error) {
	if !c.SpeciesInGame(s, g) {
		return 0, apperrors.InvalidArgument(string(g)+" species", s.Name)
	}
	var idx int
	switch g.Generation() {
	case 1:
		idx = s.Gen1Index
	case 2:
		idx = s.Gen2Index()
	case 3:
		idx = s.Gen3Index
	}
	if idx == 0 {
		return 0, apperrors.InvalidArgument(string(g)+" species", s.Name)
	}
	return idx, nil
}

// SpeciesInGame reports whether s can exist in g.
func (c *Catalog) SpeciesInGame(s Species, g game.Game) bool {
	return s.NationalID >= 1 && s.NationalID <= lastNational[g.Generation()]
}

// Forms lists the forms of s available in g, default first.
func (c *Catalog) Forms(s Species, g game.Game) []string {
	var out []string
	for _, f := range c.forms[s.NationalID] {
		if f.Generation <= g.Generation() {
			out = append(out, f.Name)
		}
	}
	if len(out) == 0 {
		return []string{StandardForm}
	}
	return out
}

// ValidForm reports whether form is one of the forms of s in g.
func (c *Catalog) ValidForm(s Species, g game.Game, form string) bool {
	for _, f := range c.Forms(s, g) {
		if f == form {
			return true
		}
	}
	return false
}

// Move looks a move up by name.
func (c *Catalog) Move(name string) (Move, error) {
	i, ok := c.moveByName[key(name)]
	if !ok {
		return Move{}, apperrors.NotFound("move", name)
	}
	return c.moves[i], nil
}

// MoveByID looks a move up by its index, which every supported game shares.
func (c *Catalog) MoveByID(id int) (Move, error) {
	i, ok := c.moveByID[id]
	if !ok {
		return Move{}, apperrors.NotFound("move id", strconv.Itoa(id))
	}
	return c.moves[i], nil
}

// MoveInGame reports whether m can be known by an entity of g.
func (c *Catalog) MoveInGame(m Move, g game.Game) bool {
	gen := g.Generation()
	if m.Generation > gen || !inGroups(m.VersionGroups, g) {
		return false
	}
	return len(m.VersionGroups) > 0 || m.ID <= lastMove[gen]
}

// Item looks an item up by name. The empty name and "None" both resolve to
// the empty item.
func (c *Catalog) Item(name string) (Item, error) {
	if name == "" || key(name) == key(NoItem) {
		return Item{Name: NoItem}, nil
	}
	i, ok := c.itemByName[key(name)]
	if !ok {
		return Item{}, apperrors.NotFound("item", name)
	}
	return c.items[i], nil
}

// ItemByIndex resolves the item index stored by g. Index 0 is the empty item.
func (c *Catalog) ItemByIndex(g game.Game, index int) (Item, error) {
	if index == 0 {
		return Item{Name: NoItem}, nil
	}
	i, ok := c.itemByIndex[g.Generation()][index]
	if !ok || !inGroups(c.items[i].VersionGroups, g) {
		return Item{}, apperrors.InvalidArgument(string(g)+" item index", strconv.Itoa(index))
	}
	return c.items[i], nil
}

// ItemIndex returns the index g stores for item.
func (c *Catalog) ItemIndex(g game.Game, item Item) (int, error) {
	if item.Name == NoItem {
		return 0, nil
	}
	if !c.ItemInGame(item, g) {
		return 0, apperrors.InvalidArgument(string(g)+" item", item.Name)
	}
	return itemIndex(item, g.Generation()), nil
}

func itemIndex(item Item, gen int) int {
	switch gen {
	case 1:
		return item.Gen1Index
	case 2:
		return item.Gen2Index
	case 3:
		return item.Gen3Index
	}
	return 0
}

// ItemInGame reports whether item exists in g.
func (c *Catalog) ItemInGame(item Item, g game.Game) bool {
	if item.Name == NoItem {
		return true
	}
	return itemIndex(item, g.Generation()) != 0 && inGroups(item.VersionGroups, g)
}

// Holdable reports whether an entity of g may hold item. Key items and
// TM/HMs cannot be held, and nothing is held in Generation I.
func (c *Catalog) Holdable(item Item, g game.Game) bool {
	if item.Name == NoItem {
		return true
	}
	if g.Generation() < 2 || !c.ItemInGame(item, g) {
		return false
	}
	switch item.Category {
	case CategoryKey, CategoryTM, CategoryCologne, CategoryBattleCD:
		return false
	}
	return true
}

// Items lists every item that exists in g.
func (c *Catalog) Items(g game.Game) []Item {
	var out []Item
	for _, it := range c.items {
		if c.ItemInGame(it, g) {
			out = append(out, it)
		}
	}
	return out
}

// FlingPower returns the Fling power of item, zero when it cannot be flung.
func (c *Catalog) FlingPower(item string) (int, error) {
	it, err := c.Item(item)
	if err != nil {
		return 0, err
	}
	return it.FlingPower, nil
}

// Pockets returns the bag pockets and item PC of a version group in display order.
func (c *Catalog) Pockets(vg game.VersionGroup) []Pocket {
	return append([]Pocket(nil), c.pockets[vg]...)
}

// Location looks a met location up by name in generation gen.
func (c *Catalog) Location(gen int, name string) (Location, error) {
	i, ok := c.locByName[gen][key(name)]
	if !ok {
		return Location{}, apperrors.InvalidArgument("location", name)
	}
	return c.locations[gen][i], nil
}

// LocationByIndex resolves a stored met-location index.
func (c *Catalog) LocationByIndex(gen, index int) (Location, error) {
	i, ok := c.locByIdx[gen][index]
	if !ok {
		return Location{}, apperrors.InvalidArgument("location index", strconv.Itoa(index))
	}
	return c.locations[gen][i], nil
}

// Locations lists the met locations of generation gen.
func (c *Catalog) Locations(gen int) []Location {
	return append([]Location(nil), c.locations[gen]...)
}

// Natures lists the natures in personality order.
func (c *Catalog) Natures() []string {
	return append([]string(nil), c.natures...)
}
