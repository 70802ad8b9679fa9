package items

import (
	"github.com/louisbranch/pkmnkit/internal/pkmn/game"
	"github.com/louisbranch/pkmnkit/internal/pkmn/refdb"
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// PCName is the pocket name of the item PC in every version group.
const PCName = "PC"

// Bag is the fixed set of pockets a game's player carries.
type Bag struct {
	game    game.Game
	pockets []*List
}

// NewBag builds the empty bag of g.
func NewBag(cat *refdb.Catalog, g game.Game) (*Bag, error) {
	b := &Bag{game: g}
	for _, p := range cat.Pockets(g.VersionGroup()) {
		if p.Name == PCName {
			continue
		}
		l, err := NewList(cat, g, p)
		if err != nil {
			return nil, err
		}
		b.pockets = append(b.pockets, l)
	}
	if len(b.pockets) == 0 {
		return nil, apperrors.Unsupported("item bag", string(g))
	}
	return b, nil
}

// NewPC builds the empty item PC of g.
func NewPC(cat *refdb.Catalog, g game.Game) (*List, error) {
	return NewPocket(cat, g, PCName)
}

// Game returns the game the bag belongs to.
func (b *Bag) Game() game.Game { return b.game }

// Pockets returns the pockets in display order.
func (b *Bag) Pockets() []*List {
	return append([]*List(nil), b.pockets...)
}

// Pocket returns the named pocket.
func (b *Bag) Pocket(name string) (*List, error) {
	for _, p := range b.pockets {
		if refdb.SameName(p.Name(), name) {
			return p, nil
		}
	}
	return nil, apperrors.InvalidArgument(string(b.game)+" pocket", name)
}

// PocketFor returns the pocket that accepts the item.
func (b *Bag) PocketFor(item string) (*List, error) {
	for _, p := range b.pockets {
		if p.Accepts(item) {
			return p, nil
		}
	}
	return nil, apperrors.InvalidArgument(string(b.game)+" bag item", item)
}

// Add adds amount of item to the pocket that accepts it.
func (b *Bag) Add(item string, amount int) error {
	p, err := b.PocketFor(item)
	if err != nil {
		return err
	}
	return p.Add(item, amount)
}

// Remove removes amount of item from the pocket that accepts it.
func (b *Bag) Remove(item string, amount int) error {
	p, err := b.PocketFor(item)
	if err != nil {
		return err
	}
	return p.Remove(item, amount)
}

// Clone returns an independent copy.
func (b *Bag) Clone() *Bag {
	c := &Bag{game: b.game, pockets: make([]*List, len(b.pockets))}
	for i, p := range b.pockets {
		c.pockets[i] = p.Clone()
	}
	return c
}
