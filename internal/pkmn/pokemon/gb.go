package pokemon

import (
	"bytes"

	"github.com/louisbranch/pkmnkit/internal/pkmn/calc"
	"github.com/louisbranch/pkmnkit/internal/pkmn/codec"
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// NameSize is the length of a Game Boy name array, terminator included.
const NameSize = 11

// gbLayout holds the offsets of one Game Boy party record. Both generations
// store the same fields; only their positions and the stat list differ.
type gbLayout struct {
	size      int
	boxSize   int
	species   int
	moves     int
	trainerID int
	exp       int
	evs       int
	ivs       int
	pp        int
	boxLevel  int // -1 when the box record has no level copy
	level     int
	currentHP int
	stats     int
	statList  []calc.Stat
}

// gbEVs lists the stored EVs (and IVs) in storage order.
var gbEVs = []calc.Stat{calc.HP, calc.Attack, calc.Defense, calc.Speed, calc.Special}

var gbIVOf = map[calc.Stat]codec.GBIV{
	calc.HP:      codec.GBHP,
	calc.Attack:  codec.GBAttack,
	calc.Defense: codec.GBDefense,
	calc.Speed:   codec.GBSpeed,
	calc.Special: codec.GBSpecial,
}

// gb implements the attributes Generations I and II share.
type gb struct {
	base
	layout      *gbLayout
	raw         []byte
	nickname    [NameSize]byte
	trainerName [NameSize]byte
}

var be = codec.BigEndian

func (p *gb) clone() gb {
	c := *p
	c.raw = bytes.Clone(p.raw)
	return c
}

// Bytes returns a copy of the party record.
func (p *gb) Bytes() []byte { return bytes.Clone(p.raw) }

// BoxBytes returns a copy of the box record, the leading part of the party
// record.
func (p *gb) BoxBytes() []byte { return bytes.Clone(p.raw[:p.layout.boxSize]) }

// NicknameBytes returns the encoded nickname.
func (p *gb) NicknameBytes() []byte { return bytes.Clone(p.nickname[:]) }

// TrainerNameBytes returns the encoded trainer name.
func (p *gb) TrainerNameBytes() []byte { return bytes.Clone(p.trainerName[:]) }

func (p *gb) Nickname() string { return codec.GameBoy.Decode(p.nickname[:]) }

func (p *gb) SetNickname(name string) error {
	var buf [NameSize]byte
	if err := codec.GameBoy.Encode(buf[:], name, MaxNicknameLength); err != nil {
		return err
	}
	p.nickname = buf
	return nil
}

func (p *gb) TrainerName() string { return codec.GameBoy.Decode(p.trainerName[:]) }

func (p *gb) SetTrainerName(name string) error {
	var buf [NameSize]byte
	if err := codec.GameBoy.Encode(buf[:], name, MaxTrainerLength); err != nil {
		return err
	}
	p.trainerName = buf
	return nil
}

func (p *gb) TrainerID() uint32 { return uint32(be.U16(p.raw, p.layout.trainerID)) }

func (p *gb) SetTrainerID(id uint32) error {
	if id > 0xFFFF {
		return apperrors.OutOfRange("trainer ID", 0, 0xFFFF)
	}
	be.PutU16(p.raw, p.layout.trainerID, uint16(id))
	return nil
}

func (p *gb) TrainerPublicID() uint16 { return be.U16(p.raw, p.layout.trainerID) }

func (p *gb) SetTrainerPublicID(id uint16) error {
	be.PutU16(p.raw, p.layout.trainerID, id)
	return nil
}

func (p *gb) Experience() int { return int(be.U24(p.raw, p.layout.exp)) }

func (p *gb) SetExperience(exp int) error {
	limit := p.maxExperience()
	if exp < 0 || exp > limit {
		return apperrors.OutOfRange("experience", 0, limit)
	}
	level, err := p.species.LevelAt(exp)
	if err != nil {
		return err
	}
	if err := be.PutU24(p.raw, p.layout.exp, uint32(exp)); err != nil {
		return err
	}
	p.writeLevel(level)
	return p.recompute()
}

func (p *gb) Level() int { return int(p.raw[p.layout.level]) }

func (p *gb) SetLevel(level int) error {
	if err := checkLevel(level); err != nil {
		return err
	}
	exp, err := p.species.ExperienceAt(level)
	if err != nil {
		return err
	}
	if err := be.PutU24(p.raw, p.layout.exp, uint32(exp)); err != nil {
		return err
	}
	p.writeLevel(level)
	return p.recompute()
}

func (p *gb) writeLevel(level int) {
	p.raw[p.layout.level] = byte(level)
	if p.layout.boxLevel >= 0 {
		p.raw[p.layout.boxLevel] = byte(level)
	}
}

func (p *gb) CurrentHP() int { return int(be.U16(p.raw, p.layout.currentHP)) }

func (p *gb) SetCurrentHP(hp int) error {
	limit := p.Stats()[calc.HP]
	if hp < 0 || hp > limit {
		return apperrors.OutOfRange("current HP", 0, limit)
	}
	be.PutU16(p.raw, p.layout.currentHP, uint16(hp))
	return nil
}

func (p *gb) Stats() map[calc.Stat]int {
	out := make(map[calc.Stat]int, len(p.layout.statList))
	for i, s := range p.layout.statList {
		out[s] = int(be.U16(p.raw, p.layout.stats+2*i))
	}
	return out
}

func (p *gb) ivWord() codec.GBIVs { return codec.GBIVs(be.U16(p.raw, p.layout.ivs)) }

func (p *gb) IVs() map[calc.Stat]int {
	w := p.ivWord()
	out := make(map[calc.Stat]int, len(gbEVs))
	for _, s := range gbEVs {
		out[s] = w.Get(gbIVOf[s])
	}
	return out
}

func (p *gb) SetIV(stat calc.Stat, v int) error {
	iv, ok := gbIVOf[stat]
	if !ok {
		return apperrors.InvalidArgument("IV", string(stat))
	}
	w, err := p.ivWord().Set(iv, v)
	if err != nil {
		return err
	}
	be.PutU16(p.raw, p.layout.ivs, uint16(w))
	return p.recompute()
}

func (p *gb) EVs() map[calc.Stat]int {
	out := make(map[calc.Stat]int, len(gbEVs))
	for i, s := range gbEVs {
		out[s] = int(be.U16(p.raw, p.layout.evs+2*i))
	}
	return out
}

func (p *gb) SetEV(stat calc.Stat, v int) error {
	for i, s := range gbEVs {
		if s != stat {
			continue
		}
		if v < 0 || v > calc.MaxGBEV {
			return apperrors.OutOfRange("EV", 0, calc.MaxGBEV)
		}
		be.PutU16(p.raw, p.layout.evs+2*i, uint16(v))
		return p.recompute()
	}
	return apperrors.InvalidArgument("EV", string(stat))
}

// recompute rewrites the party stats from level, IVs, EVs and base stats.
// Current HP is kept, capped at the new maximum.
func (p *gb) recompute() error {
	ivs, evs, level := p.IVs(), p.EVs(), p.Level()
	for i, s := range p.layout.statList {
		src := s
		if s == calc.SpecialAttack || s == calc.SpecialDefense {
			src = calc.Special
		}
		v, err := calc.GBStat(src, level, p.species.Base.Get(s), evs[src], ivs[src])
		if err != nil {
			return err
		}
		be.PutU16(p.raw, p.layout.stats+2*i, uint16(v))
	}
	if be.U16(p.raw, p.layout.currentHP) > be.U16(p.raw, p.layout.stats) {
		p.heal()
	}
	return nil
}

// heal restores current HP to the maximum.
func (p *gb) heal() {
	be.PutU16(p.raw, p.layout.currentHP, be.U16(p.raw, p.layout.stats))
}

func (p *gb) Moves() [MoveSlots]MoveSlot {
	var out [MoveSlots]MoveSlot
	for i := range out {
		out[i] = MoveSlot{
			Move: p.moveName(int(p.raw[p.layout.moves+i])),
			PP:   codec.PPByte(p.raw[p.layout.pp+i]).PP(),
		}
	}
	return out
}

func (p *gb) SetMove(slot int, name string) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	m, err := p.move(name)
	if err != nil {
		return err
	}
	if m.ID > 0xFF {
		return apperrors.InvalidArgument(string(p.game)+" move", name)
	}
	pp, err := codec.PPByte(0).WithPP(m.PP)
	if err != nil {
		return err
	}
	p.raw[p.layout.moves+slot] = byte(m.ID)
	p.raw[p.layout.pp+slot] = byte(pp)
	return nil
}

func (p *gb) SetMovePP(slot, pp int) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	m, err := p.cat.MoveByID(int(p.raw[p.layout.moves+slot]))
	if err != nil {
		return apperrors.InvalidArgument("move slot", "empty")
	}
	cur := codec.PPByte(p.raw[p.layout.pp+slot])
	limit := codec.MaxPP(m.PP, cur.Ups())
	if pp < 0 || pp > limit {
		return apperrors.OutOfRange("PP", 0, limit)
	}
	next, err := cur.WithPP(pp)
	if err != nil {
		return err
	}
	p.raw[p.layout.pp+slot] = byte(next)
	return nil
}

// fillNew writes the fields every new Game Boy entity starts with.
func (p *gb) fillNew(speciesIndex, level int) error {
	p.raw[p.layout.species] = byte(speciesIndex)
	be.PutU16(p.raw, p.layout.trainerID, DefaultGBTrainerID)
	be.PutU16(p.raw, p.layout.ivs, uint16(roll()))
	if err := p.SetNickname(defaultNickname(p.species)); err != nil {
		return err
	}
	if err := p.SetTrainerName(DefaultTrainerName); err != nil {
		return err
	}
	if err := p.SetLevel(level); err != nil {
		return err
	}
	p.heal()
	return nil
}

// decode validates the species and moves of a record already copied into p
// and fills in the party fields when only a box record was given.
func (p *gb) decode(boxOnly bool) error {
	for i := 0; i < MoveSlots; i++ {
		id := int(p.raw[p.layout.moves+i])
		if id == 0 {
			continue
		}
		if _, err := p.cat.MoveByID(id); err != nil {
			return apperrors.Wrap(apperrors.CodeInvalidFormat, "decode move", err)
		}
	}
	if !boxOnly {
		return nil
	}
	level := 0
	if p.layout.boxLevel >= 0 {
		level = int(p.raw[p.layout.boxLevel])
	} else {
		level = int(p.raw[p.layout.level])
	}
	if level < calc.MinLevel || level > calc.MaxLevel {
		l, err := p.species.LevelAt(p.Experience())
		if err != nil {
			return apperrors.Wrap(apperrors.CodeInvalidFormat, "decode level", err)
		}
		level = l
	}
	// Only the party extension is rebuilt. Bytes inside the box record,
	// including a stored current HP, are kept as read.
	p.raw[p.layout.level] = byte(level)
	if err := p.recompute(); err != nil {
		return err
	}
	if p.layout.currentHP >= p.layout.boxSize {
		p.heal()
	}
	return nil
}

// setNames copies encoded name arrays; nil keeps the current value.
func (p *gb) setNames(nickname, trainerName []byte) error {
	if nickname != nil {
		if len(nickname) != NameSize {
			return apperrors.InvalidFormat("nickname must be 11 bytes")
		}
		copy(p.nickname[:], nickname)
	}
	if trainerName != nil {
		if len(trainerName) != NameSize {
			return apperrors.InvalidFormat("trainer name must be 11 bytes")
		}
		copy(p.trainerName[:], trainerName)
	}
	return nil
}
