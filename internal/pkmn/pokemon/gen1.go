package pokemon

import (
	"github.com/louisbranch/pkmnkit/internal/pkmn/calc"
	"github.com/louisbranch/pkmnkit/internal/pkmn/game"
	"github.com/louisbranch/pkmnkit/internal/pkmn/refdb"
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// Record sizes of Generation I.
const (
	Gen1BoxSize   = 33
	Gen1PartySize = 44
)

var gen1Layout = &gbLayout{
	size:      Gen1PartySize,
	boxSize:   Gen1BoxSize,
	species:   0x00,
	currentHP: 0x01,
	boxLevel:  0x03,
	moves:     0x08,
	trainerID: 0x0C,
	exp:       0x0E,
	evs:       0x11,
	ivs:       0x1B,
	pp:        0x1D,
	level:     0x21,
	stats:     0x22,
	statList:  calc.GBStats,
}

const (
	gen1Types     = 0x05
	gen1CatchRate = 0x07
)

var gen1TypeIDs = map[string]byte{
	"Normal": 0x00, "Fighting": 0x01, "Flying": 0x02, "Poison": 0x03,
	"Ground": 0x04, "Rock": 0x05, "Bug": 0x07, "Ghost": 0x08,
	"Fire": 0x14, "Water": 0x15, "Grass": 0x16, "Electric": 0x17,
	"Psychic": 0x18, "Ice": 0x19, "Dragon": 0x1A,
}

// Gen1 is a Red, Blue or Yellow entity.
type Gen1 struct {
	gb
	// pikachuFriendship is kept outside the record: Yellow stores it in the
	// save, for the starter only.
	pikachuFriendship int
}

var _ Pokemon = (*Gen1)(nil)

func newGen1(b base, level int) (*Gen1, error) {
	idx, err := b.cat.SpeciesIndex(b.game, b.species)
	if err != nil {
		return nil, err
	}
	p := &Gen1{gb: gb{base: b, layout: gen1Layout, raw: make([]byte, Gen1PartySize)}}
	p.writeTypes()
	p.raw[gen1CatchRate] = byte(b.species.CatchRate)
	if p.hasFriendship() {
		p.pikachuFriendship = b.species.BaseFriendship
	}
	if err := p.fillNew(idx, level); err != nil {
		return nil, err
	}
	return p, nil
}

// FromGen1 decodes a 33-byte box or 44-byte party record of game g with its
// 11-byte name arrays. Nil names get the defaults.
func FromGen1(cat *refdb.Catalog, g game.Game, record, nickname, trainerName []byte) (*Gen1, error) {
	if g.Generation() != 1 {
		return nil, apperrors.InvalidArgument("Generation I game", string(g))
	}
	if len(record) != Gen1BoxSize && len(record) != Gen1PartySize {
		return nil, apperrors.InvalidFormat("Generation I record must be 33 or 44 bytes")
	}
	s, err := cat.SpeciesByIndex(g, int(record[gen1Layout.species]))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidFormat, "decode species", err)
	}
	p := &Gen1{gb: gb{base: base{cat: cat, game: g, species: s}, layout: gen1Layout, raw: make([]byte, Gen1PartySize)}}
	copy(p.raw, record)
	if err := p.decodeNames(nickname, trainerName); err != nil {
		return nil, err
	}
	if err := p.decode(len(record) == Gen1BoxSize); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *gb) decodeNames(nickname, trainerName []byte) error {
	if nickname == nil {
		if err := p.SetNickname(defaultNickname(p.species)); err != nil {
			return err
		}
	}
	if trainerName == nil {
		if err := p.SetTrainerName(DefaultTrainerName); err != nil {
			return err
		}
	}
	return p.setNames(nickname, trainerName)
}

func (p *Gen1) Clone() Pokemon {
	c := *p
	c.gb = p.gb.clone()
	return &c
}

func (p *Gen1) Form() string { return refdb.StandardForm }

func (p *Gen1) SetForm(form string) error {
	if !p.cat.ValidForm(p.species, p.game, form) {
		return apperrors.InvalidArgument(p.species.Name+" form", form)
	}
	return nil
}

// Trainers are always male in Generation I.
func (p *Gen1) TrainerGender() (calc.Gender, error) { return calc.Male, nil }

func (p *Gen1) SetTrainerGender(g calc.Gender) error {
	if g == calc.Male {
		return nil
	}
	return p.unsupported("female trainers")
}

func (p *Gen1) hasFriendship() bool {
	return p.game == game.Yellow && refdb.SameName(p.species.Name, "Pikachu")
}

// Friendship is only tracked for Pikachu in Yellow.
func (p *Gen1) Friendship() (int, error) {
	if !p.hasFriendship() {
		return 0, p.unsupported("friendship")
	}
	return p.pikachuFriendship, nil
}

func (p *Gen1) SetFriendship(v int) error {
	if !p.hasFriendship() {
		return p.unsupported("friendship")
	}
	if v < 0 || v > 255 {
		return apperrors.OutOfRange("friendship", 0, 255)
	}
	p.pikachuFriendship = v
	return nil
}

// CatchRate returns the catch rate byte, which Generation II reads as the
// held item of a traded entity.
func (p *Gen1) CatchRate() int { return int(p.raw[gen1CatchRate]) }

func (p *Gen1) SetCatchRate(v int) error {
	if v < 0 || v > 255 {
		return apperrors.OutOfRange("catch rate", 0, 255)
	}
	p.raw[gen1CatchRate] = byte(v)
	return nil
}

// writeTypes stores the species types; a missing second type, or one that
// does not exist in Generation I, repeats the first.
func (p *Gen1) writeTypes() {
	t1 := gen1TypeIDs[p.species.Type1]
	t2, ok := gen1TypeIDs[p.species.Type2]
	if !ok {
		t2 = t1
	}
	p.raw[gen1Types] = t1
	p.raw[gen1Types+1] = t2
}
