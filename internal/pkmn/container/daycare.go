package container

import (
	"github.com/louisbranch/pkmnkit/internal/pkmn/game"
	"github.com/louisbranch/pkmnkit/internal/pkmn/pokemon"
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// Daycare holds the Pokémon left to level up. Generation I keeps one and
// cannot breed; later games keep two that also breed and may hold an egg.
// The same slots serve leveling and breeding.
type Daycare struct {
	slots
	breeds bool
	egg    pokemon.Pokemon
}

// NewDaycare builds an empty daycare for g.
func NewDaycare(g game.Game) (*Daycare, error) {
	if !g.Valid() {
		return nil, apperrors.InvalidArgument("game", string(g))
	}
	switch {
	case g.Platform() == game.GameCube:
		return nil, apperrors.Unsupported("daycare", string(g))
	case g.Generation() == 1:
		return &Daycare{slots: newSlots(g, 1, Sparse{})}, nil
	default:
		return &Daycare{slots: newSlots(g, 2, Sparse{}), breeds: true}, nil
	}
}

// CanBreed reports whether the daycare produces eggs.
func (d *Daycare) CanBreed() bool { return d.breeds }

// Egg returns the waiting egg, or nil when there is none.
func (d *Daycare) Egg() (pokemon.Pokemon, error) {
	if !d.breeds {
		return nil, apperrors.Unsupported("breeding", string(d.game))
	}
	return d.egg, nil
}

// SetEgg stores a copy of p as the waiting egg. A nil p removes it.
func (d *Daycare) SetEgg(p pokemon.Pokemon) error {
	if !d.breeds {
		return apperrors.Unsupported("breeding", string(d.game))
	}
	if p == nil {
		d.egg = nil
		return nil
	}
	if p.Game() != d.game {
		return apperrors.InvalidArgument(string(d.game)+" Pokémon", string(p.Game()))
	}
	d.egg = p.Clone()
	return nil
}

// Load fills an empty daycare from decoded entities. Nil entries stay empty.
func (d *Daycare) Load(members []pokemon.Pokemon) error {
	if len(members) > d.Capacity() {
		return apperrors.InvalidFormat("daycare holds more Pokémon than its capacity")
	}
	for i, m := range members {
		if m != nil {
			d.put(i, m)
		}
	}
	return nil
}

// Clone returns an independent copy.
func (d *Daycare) Clone() *Daycare {
	c := &Daycare{slots: d.clone(), breeds: d.breeds}
	if d.egg != nil {
		c.egg = d.egg.Clone()
	}
	return c
}
