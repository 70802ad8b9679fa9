package container

import (
	"github.com/louisbranch/pkmnkit/internal/pkmn/codec"
	"github.com/louisbranch/pkmnkit/internal/pkmn/game"
	"github.com/louisbranch/pkmnkit/internal/pkmn/pokemon"
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// PartySize is the number of party slots in every game.
const PartySize = 6

// MaxBoxNameLength is the longest box name Generation II and III accept.
const MaxBoxNameLength = 8

// slots is the shared slot storage of Party and Box.
type slots struct {
	game      game.Game
	list      []pokemon.Pokemon
	placement Placement
}

func newSlots(g game.Game, capacity int, placement Placement) slots {
	return slots{game: g, list: make([]pokemon.Pokemon, capacity), placement: placement}
}

func (s *slots) Game() game.Game { return s.game }

// Capacity is the number of slots.
func (s *slots) Capacity() int { return len(s.list) }

// Placement returns the rule the slots follow.
func (s *slots) Placement() Placement { return s.placement }

// NumPokemon counts occupied slots, gaps included.
func (s *slots) NumPokemon() int {
	n := 0
	for _, p := range s.list {
		if p != nil {
			n++
		}
	}
	return n
}

func (s *slots) checkIndex(i int) error {
	if i < 0 || i >= len(s.list) {
		return apperrors.OutOfRange("slot", 0, len(s.list)-1)
	}
	return nil
}

// At returns the creature in slot i, or nil when the slot is empty. The
// returned entity is the stored one: changes to it change the container.
func (s *slots) At(i int) (pokemon.Pokemon, error) {
	if err := s.checkIndex(i); err != nil {
		return nil, err
	}
	return s.list[i], nil
}

// Pokemon returns a snapshot of every slot, nil for empty ones.
func (s *slots) Pokemon() []pokemon.Pokemon {
	out := make([]pokemon.Pokemon, len(s.list))
	copy(out, s.list)
	return out
}

// Set stores a copy of p in slot i. A nil p clears the slot. p must belong
// to the container's game and may not be the entity already in slot i.
func (s *slots) Set(i int, p pokemon.Pokemon) error {
	if p == nil {
		return s.Clear(i)
	}
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if s.list[i] == p {
		return apperrors.InvalidArgument("slot", "cannot set a Pokémon to itself")
	}
	if p.Game() != s.game {
		return apperrors.InvalidArgument(string(s.game)+" Pokémon", string(p.Game()))
	}
	if err := s.placement.CanSet(s.list, i); err != nil {
		return err
	}
	s.list[i] = p.Clone()
	return nil
}

// Clear empties slot i. Entities taken from the slot before stay valid.
func (s *slots) Clear(i int) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if err := s.placement.CanClear(s.list, i); err != nil {
		return err
	}
	s.list[i] = nil
	return nil
}

// put stores p without copying or placement checks. Decoders use it to fill
// a freshly built container.
func (s *slots) put(i int, p pokemon.Pokemon) {
	s.list[i] = p
}

func (s *slots) clone() slots {
	c := slots{game: s.game, list: make([]pokemon.Pokemon, len(s.list)), placement: s.placement}
	for i, p := range s.list {
		if p != nil {
			c.list[i] = p.Clone()
		}
	}
	return c
}

// Party is the six-slot team. Its slots stay contiguous in every game.
type Party struct {
	slots
}

// NewParty builds an empty party for g.
func NewParty(g game.Game) (*Party, error) {
	if !g.Valid() {
		return nil, apperrors.InvalidArgument("game", string(g))
	}
	return &Party{slots: newSlots(g, PartySize, Contiguous{})}, nil
}

// Load fills an empty party from decoded entities in order.
func (p *Party) Load(members []pokemon.Pokemon) error {
	if len(members) > PartySize {
		return apperrors.InvalidFormat("party holds more than six Pokémon")
	}
	for i, m := range members {
		p.put(i, m)
	}
	return nil
}

// Clone returns an independent copy.
func (p *Party) Clone() *Party {
	return &Party{slots: p.clone()}
}

// Box is one PC box. Generation I boxes have no name.
type Box struct {
	slots
	name string
}

// NewBox builds an empty box of g with the given capacity.
func NewBox(g game.Game, capacity int, name string) (*Box, error) {
	if !g.Valid() {
		return nil, apperrors.InvalidArgument("game", string(g))
	}
	if capacity < 1 {
		return nil, apperrors.InvalidArgument("box capacity", "must be positive")
	}
	b := &Box{slots: newSlots(g, capacity, BoxPlacement(g))}
	if g.Generation() > 1 {
		if err := b.SetName(name); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Name returns the box name.
func (b *Box) Name() (string, error) {
	if b.game.Generation() == 1 {
		return "", apperrors.Unsupported("box names", string(b.game))
	}
	return b.name, nil
}

// SetName renames the box. The name must be printable in the game's
// character set.
func (b *Box) SetName(name string) error {
	var cs *codec.Charset
	switch b.game.Platform() {
	case game.GameBoy:
		if b.game.Generation() == 1 {
			return apperrors.Unsupported("box names", string(b.game))
		}
		cs = codec.GameBoy
	case game.GameBoyAdvance:
		cs = codec.GBA
	default:
		if n := len([]rune(name)); n < 1 || n > MaxBoxNameLength {
			return apperrors.OutOfRange("box name length", 1, MaxBoxNameLength)
		}
		b.name = name
		return nil
	}
	if err := cs.Encode(make([]byte, MaxBoxNameLength+1), name, MaxBoxNameLength); err != nil {
		return err
	}
	b.name = name
	return nil
}

// Load fills an empty box from decoded entities. Nil entries stay empty.
func (b *Box) Load(members []pokemon.Pokemon) error {
	if len(members) > b.Capacity() {
		return apperrors.InvalidFormat("box holds more Pokémon than its capacity")
	}
	for i, m := range members {
		if m != nil {
			b.put(i, m)
		}
	}
	return nil
}

// Clone returns an independent copy.
func (b *Box) Clone() *Box {
	return &Box{slots: b.clone(), name: b.name}
}
