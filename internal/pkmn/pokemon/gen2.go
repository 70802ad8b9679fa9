package pokemon

import (
	"strconv"

	"github.com/louisbranch/pkmnkit/internal/pkmn/calc"
	"github.com/louisbranch/pkmnkit/internal/pkmn/codec"
	"github.com/louisbranch/pkmnkit/internal/pkmn/game"
	"github.com/louisbranch/pkmnkit/internal/pkmn/refdb"
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// Record sizes of Generation II.
const (
	Gen2BoxSize   = 32
	Gen2PartySize = 48
)

var gen2Layout = &gbLayout{
	size:      Gen2PartySize,
	boxSize:   Gen2BoxSize,
	species:   0x00,
	moves:     0x02,
	trainerID: 0x06,
	exp:       0x08,
	evs:       0x0B,
	ivs:       0x15,
	pp:        0x17,
	boxLevel:  -1,
	level:     0x1F,
	currentHP: 0x22,
	stats:     0x24,
	statList:  calc.Gen2Stats,
}

const (
	gen2HeldItem   = 0x01
	gen2Friendship = 0x1B
	gen2Pokerus    = 0x1C
	gen2CaughtData = 0x1D
)

// Caught data bit fields, a big-endian word.
var (
	gen2CaughtTime     = codec.Field{Name: "time of day", Shift: 14, Width: 2}
	gen2CaughtLevel    = codec.Field{Name: "level met", Shift: 8, Width: 6}
	gen2CaughtLocation = codec.Field{Name: "location met", Shift: 0, Width: 7}
	gen2TrainerFemale  = codec.Flag(7)
	gen2PokerusDays    = codec.Field{Name: "Pokérus", Shift: 0, Width: 4}
)

// TimeOfDay is the Generation II caught-time field.
type TimeOfDay int

const (
	TimeNone TimeOfDay = iota
	Morning
	Day
	Night
)

// Gen2 is a Gold, Silver or Crystal entity.
type Gen2 struct {
	gb
	// egg lives outside the record: the games mark eggs in the party and box
	// species lists.
	egg bool
}

var _ Pokemon = (*Gen2)(nil)

func newGen2(b base, level int) (*Gen2, error) {
	idx, err := b.cat.SpeciesIndex(b.game, b.species)
	if err != nil {
		return nil, err
	}
	p := &Gen2{gb: gb{base: b, layout: gen2Layout, raw: make([]byte, Gen2PartySize)}}
	p.raw[gen2Friendship] = byte(b.species.BaseFriendship)
	if err := p.fillNew(idx, level); err != nil {
		return nil, err
	}
	return p, nil
}

// FromGen2 decodes a 32-byte box or 48-byte party record of game g with its
// 11-byte name arrays. Nil names get the defaults.
func FromGen2(cat *refdb.Catalog, g game.Game, record, nickname, trainerName []byte) (*Gen2, error) {
	if g.Generation() != 2 {
		return nil, apperrors.InvalidArgument("Generation II game", string(g))
	}
	if len(record) != Gen2BoxSize && len(record) != Gen2PartySize {
		return nil, apperrors.InvalidFormat("Generation II record must be 32 or 48 bytes")
	}
	s, err := cat.SpeciesByIndex(g, int(record[gen2Layout.species]))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidFormat, "decode species", err)
	}
	p := &Gen2{gb: gb{base: base{cat: cat, game: g, species: s}, layout: gen2Layout, raw: make([]byte, Gen2PartySize)}}
	copy(p.raw, record)
	if item := int(record[gen2HeldItem]); item != 0 {
		if _, err := cat.ItemByIndex(g, item); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInvalidFormat, "decode held item", err)
		}
	}
	if err := p.decodeNames(nickname, trainerName); err != nil {
		return nil, err
	}
	if err := p.decode(len(record) == Gen2BoxSize); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Gen2) Clone() Pokemon {
	c := *p
	c.gb = p.gb.clone()
	return &c
}

func (p *Gen2) isUnown() bool { return refdb.SameName(p.species.Name, "Unown") }

// Form is the Unown letter derived from the IVs, or the standard form.
func (p *Gen2) Form() string {
	if !p.isUnown() {
		return refdb.StandardForm
	}
	ivs := p.IVs()
	form, _ := calc.Gen2UnownForm(ivs[calc.Attack], ivs[calc.Defense], ivs[calc.Speed], ivs[calc.Special])
	return form
}

// SetForm rewrites bits 1-2 of each stored IV to select an Unown letter.
func (p *Gen2) SetForm(form string) error {
	if !p.cat.ValidForm(p.species, p.game, form) {
		return apperrors.InvalidArgument(p.species.Name+" form", form)
	}
	if !p.isUnown() {
		return nil
	}
	letter := int(form[0] - 'A')
	v := letter * 10
	w := p.ivWord()
	for i, iv := range []codec.GBIV{codec.GBAttack, codec.GBDefense, codec.GBSpeed, codec.GBSpecial} {
		bits := (v >> (6 - 2*uint(i))) & 0x3
		next, err := w.Set(iv, w.Get(iv)&^0x6|bits<<1)
		if err != nil {
			return err
		}
		w = next
	}
	be.PutU16(p.raw, p.layout.ivs, uint16(w))
	return p.recompute()
}

func (p *Gen2) caught() uint32 { return uint32(be.U16(p.raw, gen2CaughtData)) }

func (p *Gen2) setCaught(f codec.Field, v int) error {
	if v < 0 || uint32(v) > f.Max() {
		return apperrors.OutOfRange(f.Name, 0, int(f.Max()))
	}
	w, err := f.Set(p.caught(), uint32(v))
	if err != nil {
		return err
	}
	be.PutU16(p.raw, gen2CaughtData, uint16(w))
	return nil
}

func (p *Gen2) TrainerGender() (calc.Gender, error) {
	if gen2TrainerFemale.Get(p.caught()) {
		return calc.Female, nil
	}
	return calc.Male, nil
}

func (p *Gen2) SetTrainerGender(g calc.Gender) error {
	if g != calc.Male && g != calc.Female {
		return apperrors.InvalidArgument("trainer gender", string(g))
	}
	be.PutU16(p.raw, gen2CaughtData, uint16(gen2TrainerFemale.Set(p.caught(), g == calc.Female)))
	return nil
}

// TimeOfDay returns when the entity was caught.
func (p *Gen2) TimeOfDay() TimeOfDay { return TimeOfDay(gen2CaughtTime.Get(p.caught())) }

func (p *Gen2) SetTimeOfDay(t TimeOfDay) error { return p.setCaught(gen2CaughtTime, int(t)) }

func (p *Gen2) LevelMet() (int, error) { return int(gen2CaughtLevel.Get(p.caught())), nil }

func (p *Gen2) SetLevelMet(level int) error { return p.setCaught(gen2CaughtLevel, level) }

func (p *Gen2) LocationMet() (string, error) {
	loc, err := p.cat.LocationByIndex(2, int(gen2CaughtLocation.Get(p.caught())))
	if err != nil {
		return "", err
	}
	return loc.Name, nil
}

func (p *Gen2) SetLocationMet(location string) error {
	loc, err := p.cat.Location(2, location)
	if err != nil {
		return err
	}
	return p.setCaught(gen2CaughtLocation, loc.Index)
}

func (p *Gen2) Gender() (calc.Gender, error) {
	return calc.Gen2Gender(p.species.GenderRatio, p.IVs()[calc.Attack])
}

// SetGender moves the Attack IV to the nearest value giving g.
func (p *Gen2) SetGender(g calc.Gender) error {
	atk, err := calc.Gen2AttackIVForGender(p.species.GenderRatio, g, p.IVs()[calc.Attack])
	if err != nil {
		return err
	}
	return p.SetIV(calc.Attack, atk)
}

func (p *Gen2) Shiny() (bool, error) {
	ivs := p.IVs()
	return calc.Gen2Shiny(ivs[calc.Attack], ivs[calc.Defense], ivs[calc.Speed], ivs[calc.Special])
}

// SetShiny sets Defense, Speed and Special to 10 and an Attack IV with bit 1
// set to make it shiny; clearing it moves Defense off 10. Species whose
// female Attack IVs are all below 2 cannot be shiny and female.
func (p *Gen2) SetShiny(shiny bool) error {
	cur, err := p.Shiny()
	if err != nil || cur == shiny {
		return err
	}
	w := p.ivWord()
	if shiny {
		for _, iv := range []codec.GBIV{codec.GBDefense, codec.GBSpeed, codec.GBSpecial} {
			if w, err = w.Set(iv, 10); err != nil {
				return err
			}
		}
		if w, err = w.Set(codec.GBAttack, w.Get(codec.GBAttack)|0x2); err != nil {
			return err
		}
	} else if w, err = w.Set(codec.GBDefense, 11); err != nil {
		return err
	}
	be.PutU16(p.raw, p.layout.ivs, uint16(w))
	return p.recompute()
}

func (p *Gen2) HiddenPower() (calc.HiddenPower, error) {
	ivs := p.IVs()
	return calc.Gen2HiddenPower(ivs[calc.Attack], ivs[calc.Defense], ivs[calc.Speed], ivs[calc.Special])
}

func (p *Gen2) Friendship() (int, error) { return int(p.raw[gen2Friendship]), nil }

func (p *Gen2) SetFriendship(v int) error {
	if v < 0 || v > 255 {
		return apperrors.OutOfRange("friendship", 0, 255)
	}
	p.raw[gen2Friendship] = byte(v)
	return nil
}

func (p *Gen2) HeldItem() (string, error) {
	item, err := p.cat.ItemByIndex(p.game, int(p.raw[gen2HeldItem]))
	if err != nil {
		return "", err
	}
	return item.Name, nil
}

func (p *Gen2) SetHeldItem(name string) error {
	item, err := p.cat.Item(name)
	if err != nil {
		return err
	}
	if item.Name == refdb.NoItem {
		p.raw[gen2HeldItem] = 0
		return nil
	}
	if !p.cat.Holdable(item, p.game) {
		return apperrors.InvalidArgument(string(p.game)+" held item", name)
	}
	idx, err := p.cat.ItemIndex(p.game, item)
	if err != nil {
		return err
	}
	p.raw[gen2HeldItem] = byte(idx)
	return nil
}

func (p *Gen2) PokerusDuration() (int, error) {
	return int(gen2PokerusDays.Get(uint32(p.raw[gen2Pokerus]))), nil
}

func (p *Gen2) SetPokerusDuration(days int) error {
	if days < 0 || uint32(days) > gen2PokerusDays.Max() {
		return apperrors.OutOfRange("Pokérus duration", 0, int(gen2PokerusDays.Max()))
	}
	v, err := gen2PokerusDays.Set(uint32(p.raw[gen2Pokerus]), uint32(days))
	if err != nil {
		return err
	}
	p.raw[gen2Pokerus] = byte(v)
	return nil
}

func (p *Gen2) IsEgg() (bool, error) { return p.egg, nil }

func (p *Gen2) SetEgg(egg bool) error {
	p.egg = egg
	return nil
}

// String names the time of day.
func (t TimeOfDay) String() string {
	switch t {
	case Morning:
		return "Morning"
	case Day:
		return "Day"
	case Night:
		return "Night"
	case TimeNone:
		return "None"
	}
	return "TimeOfDay(" + strconv.Itoa(int(t)) + ")"
}
