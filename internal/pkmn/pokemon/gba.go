package pokemon

import (
	"bytes"
	"strconv"

	"github.com/louisbranch/pkmnkit/internal/pkmn/calc"
	"github.com/louisbranch/pkmnkit/internal/pkmn/codec"
	"github.com/louisbranch/pkmnkit/internal/pkmn/game"
	"github.com/louisbranch/pkmnkit/internal/pkmn/refdb"
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// Record sizes of the Game Boy Advance games.
const (
	GBABoxSize   = 80
	GBAPartySize = 100
)

// Offsets into the decrypted record, substructures in GAEM order.
const (
	gbaPersonality = 0x00
	gbaTrainerID   = 0x04
	gbaNickname    = 0x08
	gbaLanguage    = 0x12
	gbaFlags       = 0x13
	gbaTrainerName = 0x14
	gbaMarkings    = 0x1B
	gbaChecksumOff = 0x1C

	gbaSpecies    = 0x20
	gbaHeldItem   = 0x22
	gbaExp        = 0x24
	gbaPPBonuses  = 0x28
	gbaFriendship = 0x29
	gbaMoves      = 0x2C
	gbaPP         = 0x34
	gbaEVs        = 0x38
	gbaContest    = 0x3E
	gbaPokerus    = 0x44
	gbaMetLoc     = 0x45
	gbaOrigins    = 0x46
	gbaIVs        = 0x48
	gbaRibbons    = 0x4C

	gbaLevel     = 0x54
	gbaCurrentHP = 0x56
	gbaStats     = 0x58

	gbaNicknameSize    = 10
	gbaTrainerNameSize = 7
	gbaEnglish         = 0x02
	gbaHasSpecies      = 0x02
	gbaFatefulLocation = 255
)

var (
	gbaLevelMet      = codec.Field{Name: "level met", Shift: 0, Width: 7}
	gbaOriginGame    = codec.Field{Name: "original game", Shift: 7, Width: 4}
	gbaBall          = codec.Field{Name: "ball", Shift: 11, Width: 4}
	gbaTrainerFemale = codec.Flag(15)
	gbaPokerusDays   = codec.Field{Name: "Pokérus", Shift: 0, Width: 4}
)

var gbaIVOf = map[calc.Stat]codec.ModernIV{
	calc.HP:             codec.ModernHP,
	calc.Attack:         codec.ModernAttack,
	calc.Defense:        codec.ModernDefense,
	calc.Speed:          codec.ModernSpeed,
	calc.SpecialAttack:  codec.ModernSpecialAttack,
	calc.SpecialDefense: codec.ModernSpecialDefense,
}

// Contest ribbons come in four ranks per category, stored as a 3-bit count.
var contestRanks = []string{"", "Super", "Hyper", "Master"}

var contestRibbonCategories = []string{"Cool", "Beauty", "Cute", "Smart", "Tough"}

// gbaRibbonBits maps the single-bit ribbons to their bit in the ribbon word.
var gbaRibbonBits = map[string]uint{
	"Champion": 15, "Winning": 16, "Victory": 17, "Artist": 18, "Effort": 19,
	"Marine": 20, "Land": 21, "Sky": 22, "Country": 23, "National": 24,
	"Earth": 25, "World": 26,
}

// GBA is a Ruby, Sapphire, Emerald, FireRed or LeafGreen entity.
type GBA struct {
	base
	// raw is the decrypted party record.
	raw []byte
}

var _ Pokemon = (*GBA)(nil)

func newGBA(b base, level int) (*GBA, error) {
	idx, err := b.cat.SpeciesIndex(b.game, b.species)
	if err != nil {
		return nil, err
	}
	p := &GBA{base: b, raw: make([]byte, GBAPartySize)}
	le.PutU32(p.raw, gbaPersonality, roll())
	le.PutU32(p.raw, gbaTrainerID, DefaultTrainerID)
	le.PutU16(p.raw, gbaSpecies, uint16(idx))
	le.PutU32(p.raw, gbaIVs, roll()&0x3FFFFFFF)
	p.raw[gbaLanguage] = gbaEnglish
	p.raw[gbaFlags] = gbaHasSpecies
	p.raw[gbaFriendship] = byte(b.species.BaseFriendship)
	p.raw[gbaMetLoc] = gbaFatefulLocation
	if err := p.SetNickname(defaultNickname(b.species)); err != nil {
		return nil, err
	}
	if err := p.SetTrainerName(DefaultTrainerName); err != nil {
		return nil, err
	}
	if err := p.SetOriginalGame(b.game); err != nil {
		return nil, err
	}
	if err := p.SetBall("Poké Ball"); err != nil {
		return nil, err
	}
	if err := p.SetLevelMet(level); err != nil {
		return nil, err
	}
	if err := p.SetLevel(level); err != nil {
		return nil, err
	}
	p.heal()
	return p, nil
}

// FromGBA decodes an encrypted 80-byte box or 100-byte party record of game
// g. A record whose checksum does not match its data is rejected.
func FromGBA(cat *refdb.Catalog, g game.Game, record []byte) (*GBA, error) {
	if g.Platform() != game.GameBoyAdvance {
		return nil, apperrors.InvalidArgument("Game Boy Advance game", string(g))
	}
	if len(record) != GBABoxSize && len(record) != GBAPartySize {
		return nil, apperrors.InvalidFormat("Game Boy Advance record must be 80 or 100 bytes")
	}
	raw := make([]byte, GBAPartySize)
	copy(raw, record)
	personality := le.U32(raw, gbaPersonality)
	data := bytes.Clone(raw[gbaDataOffset : gbaDataOffset+gbaDataSize])
	gbaCrypt(data, personality^le.U32(raw, gbaTrainerID))
	plain := gbaUnshuffle(data, personality)
	if sum := gbaChecksum(plain); sum != le.U16(raw, gbaChecksumOff) {
		return nil, apperrors.WithMetadata(apperrors.CodeChecksumMismatch, "entity checksum mismatch",
			map[string]string{"Expected": strconv.Itoa(int(le.U16(raw, gbaChecksumOff))), "Actual": strconv.Itoa(int(sum))})
	}
	copy(raw[gbaDataOffset:], plain)

	s, err := cat.SpeciesByIndex(g, int(le.U16(raw, gbaSpecies)))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidFormat, "decode species", err)
	}
	p := &GBA{base: base{cat: cat, game: g, species: s}, raw: raw}
	if item := int(le.U16(raw, gbaHeldItem)); item != 0 {
		if _, err := cat.ItemByIndex(g, item); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInvalidFormat, "decode held item", err)
		}
	}
	for i := 0; i < MoveSlots; i++ {
		if id := int(le.U16(raw, gbaMoves+2*i)); id != 0 {
			if _, err := cat.MoveByID(id); err != nil {
				return nil, apperrors.Wrap(apperrors.CodeInvalidFormat, "decode move", err)
			}
		}
	}
	if len(record) == GBABoxSize {
		level, err := s.LevelAt(p.Experience())
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInvalidFormat, "decode level", err)
		}
		p.raw[gbaLevel] = byte(level)
		if err := p.recompute(); err != nil {
			return nil, err
		}
		p.heal()
	}
	return p, nil
}

// Bytes returns the encrypted party record with a fresh checksum.
func (p *GBA) Bytes() []byte {
	out := bytes.Clone(p.raw)
	plain := out[gbaDataOffset : gbaDataOffset+gbaDataSize]
	le.PutU16(out, gbaChecksumOff, gbaChecksum(plain))
	personality := p.personality()
	data := gbaShuffle(plain, personality)
	gbaCrypt(data, personality^p.TrainerID())
	copy(out[gbaDataOffset:], data)
	return out
}

// BoxBytes returns the encrypted box record.
func (p *GBA) BoxBytes() []byte { return p.Bytes()[:GBABoxSize] }

func (p *GBA) Clone() Pokemon {
	c := *p
	c.raw = bytes.Clone(p.raw)
	return &c
}

func (p *GBA) personality() uint32 { return le.U32(p.raw, gbaPersonality) }

func (p *GBA) isUnown() bool { return refdb.SameName(p.species.Name, "Unown") }

func (p *GBA) Form() string {
	if !p.isUnown() {
		return refdb.StandardForm
	}
	return calc.Gen3UnownForm(p.personality())
}

// SetForm rewrites the low two bits of each personality byte to select an
// Unown form.
func (p *GBA) SetForm(form string) error {
	if !p.cat.ValidForm(p.species, p.game, form) {
		return apperrors.InvalidArgument(p.species.Name+" form", form)
	}
	if !p.isUnown() {
		return nil
	}
	var v uint32
	switch form {
	case "!":
		v = 26
	case "?":
		v = 27
	default:
		v = uint32(form[0] - 'A')
	}
	pid := p.personality() &^ 0x03030303
	for i := uint(0); i < 4; i++ {
		pid |= ((v >> (2 * i)) & 0x3) << (8 * i)
	}
	return p.SetPersonality(pid)
}

func (p *GBA) Nickname() string {
	return codec.GBA.Decode(p.raw[gbaNickname : gbaNickname+gbaNicknameSize])
}

func (p *GBA) SetNickname(name string) error {
	buf := make([]byte, gbaNicknameSize)
	if err := codec.GBA.Encode(buf, name, MaxNicknameLength); err != nil {
		return err
	}
	copy(p.raw[gbaNickname:], buf)
	return nil
}

func (p *GBA) TrainerName() string {
	return codec.GBA.Decode(p.raw[gbaTrainerName : gbaTrainerName+gbaTrainerNameSize])
}

func (p *GBA) SetTrainerName(name string) error {
	buf := make([]byte, gbaTrainerNameSize)
	if err := codec.GBA.Encode(buf, name, MaxTrainerLength); err != nil {
		return err
	}
	copy(p.raw[gbaTrainerName:], buf)
	return nil
}

func (p *GBA) TrainerID() uint32 { return le.U32(p.raw, gbaTrainerID) }

func (p *GBA) SetTrainerID(id uint32) error {
	le.PutU32(p.raw, gbaTrainerID, id)
	return nil
}

func (p *GBA) TrainerPublicID() uint16 { return le.U16(p.raw, gbaTrainerID) }

func (p *GBA) SetTrainerPublicID(id uint16) error {
	le.PutU16(p.raw, gbaTrainerID, id)
	return nil
}

func (p *GBA) TrainerSecretID() (uint16, error) { return le.U16(p.raw, gbaTrainerID+2), nil }

func (p *GBA) SetTrainerSecretID(id uint16) error {
	le.PutU16(p.raw, gbaTrainerID+2, id)
	return nil
}

func (p *GBA) origins() uint32 { return uint32(le.U16(p.raw, gbaOrigins)) }

func (p *GBA) setOrigins(f codec.Field, v int) error {
	if v < 0 || uint32(v) > f.Max() {
		return apperrors.OutOfRange(f.Name, 0, int(f.Max()))
	}
	w, err := f.Set(p.origins(), uint32(v))
	if err != nil {
		return err
	}
	le.PutU16(p.raw, gbaOrigins, uint16(w))
	return nil
}

func (p *GBA) TrainerGender() (calc.Gender, error) {
	if gbaTrainerFemale.Get(p.origins()) {
		return calc.Female, nil
	}
	return calc.Male, nil
}

func (p *GBA) SetTrainerGender(g calc.Gender) error {
	if g != calc.Male && g != calc.Female {
		return apperrors.InvalidArgument("trainer gender", string(g))
	}
	le.PutU16(p.raw, gbaOrigins, uint16(gbaTrainerFemale.Set(p.origins(), g == calc.Female)))
	return nil
}

func (p *GBA) Experience() int { return int(le.U32(p.raw, gbaExp)) }

func (p *GBA) SetExperience(exp int) error {
	limit := p.maxExperience()
	if exp < 0 || exp > limit {
		return apperrors.OutOfRange("experience", 0, limit)
	}
	level, err := p.species.LevelAt(exp)
	if err != nil {
		return err
	}
	le.PutU32(p.raw, gbaExp, uint32(exp))
	p.raw[gbaLevel] = byte(level)
	return p.recompute()
}

func (p *GBA) Level() int { return int(p.raw[gbaLevel]) }

func (p *GBA) SetLevel(level int) error {
	if err := checkLevel(level); err != nil {
		return err
	}
	exp, err := p.species.ExperienceAt(level)
	if err != nil {
		return err
	}
	le.PutU32(p.raw, gbaExp, uint32(exp))
	p.raw[gbaLevel] = byte(level)
	return p.recompute()
}

func (p *GBA) CurrentHP() int { return int(le.U16(p.raw, gbaCurrentHP)) }

func (p *GBA) SetCurrentHP(hp int) error {
	limit := p.Stats()[calc.HP]
	if hp < 0 || hp > limit {
		return apperrors.OutOfRange("current HP", 0, limit)
	}
	le.PutU16(p.raw, gbaCurrentHP, uint16(hp))
	return nil
}

func (p *GBA) Stats() map[calc.Stat]int {
	out := make(map[calc.Stat]int, len(calc.ModernStats))
	for i, s := range calc.ModernStats {
		out[s] = int(le.U16(p.raw, gbaStats+2*i))
	}
	return out
}

func (p *GBA) ivWord() codec.ModernIVs { return codec.ModernIVs(le.U32(p.raw, gbaIVs)) }

func (p *GBA) IVs() map[calc.Stat]int {
	w := p.ivWord()
	out := make(map[calc.Stat]int, len(calc.ModernStats))
	for _, s := range calc.ModernStats {
		out[s] = w.Get(gbaIVOf[s])
	}
	return out
}

func (p *GBA) SetIV(stat calc.Stat, v int) error {
	iv, ok := gbaIVOf[stat]
	if !ok {
		return apperrors.InvalidArgument("IV", string(stat))
	}
	w, err := p.ivWord().Set(iv, v)
	if err != nil {
		return err
	}
	le.PutU32(p.raw, gbaIVs, uint32(w))
	return p.recompute()
}

func (p *GBA) EVs() map[calc.Stat]int {
	out := make(map[calc.Stat]int, len(calc.ModernStats))
	for i, s := range calc.ModernStats {
		out[s] = int(p.raw[gbaEVs+i])
	}
	return out
}

// SetEV rejects values that would push the EV total above 510.
func (p *GBA) SetEV(stat calc.Stat, v int) error {
	for i, s := range calc.ModernStats {
		if s != stat {
			continue
		}
		if v < 0 || v > calc.MaxModernEV {
			return apperrors.OutOfRange("EV", 0, calc.MaxModernEV)
		}
		total := v
		for other, ev := range p.EVs() {
			if other != stat {
				total += ev
			}
		}
		if total > calc.MaxEVTotal {
			return apperrors.OutOfRange("EV total", 0, calc.MaxEVTotal)
		}
		p.raw[gbaEVs+i] = byte(v)
		return p.recompute()
	}
	return apperrors.InvalidArgument("EV", string(stat))
}

// recompute rewrites the party stats. Current HP is kept, capped at the new
// maximum.
func (p *GBA) recompute() error {
	ivs, evs, level := p.IVs(), p.EVs(), p.Level()
	nature := calc.Nature(p.personality())
	for i, s := range calc.ModernStats {
		mod, err := calc.NatureModifier(nature, s)
		if err != nil {
			return err
		}
		v, err := calc.ModernStat(s, level, mod, p.species.Base.Get(s), evs[s], ivs[s])
		if err != nil {
			return err
		}
		if s == calc.HP && p.species.Base.HP == 1 {
			v = 1
		}
		le.PutU16(p.raw, gbaStats+2*i, uint16(v))
	}
	if le.U16(p.raw, gbaCurrentHP) > le.U16(p.raw, gbaStats) {
		p.heal()
	}
	return nil
}

// heal restores current HP to the maximum.
func (p *GBA) heal() {
	le.PutU16(p.raw, gbaCurrentHP, le.U16(p.raw, gbaStats))
}

func (p *GBA) Personality() (uint32, error) { return p.personality(), nil }

// SetPersonality replaces the personality, which moves gender, nature,
// shininess and the Unown form with it.
func (p *GBA) SetPersonality(pid uint32) error {
	le.PutU32(p.raw, gbaPersonality, pid)
	return p.recompute()
}

func (p *GBA) Gender() (calc.Gender, error) {
	return calc.ModernGender(p.species.GenderRatio, p.personality())
}

func (p *GBA) SetGender(g calc.Gender) error {
	pid, err := calc.PersonalityForGender(p.species.GenderRatio, g, p.personality())
	if err != nil {
		return err
	}
	return p.SetPersonality(pid)
}

func (p *GBA) Shiny() (bool, error) { return calc.ModernShiny(p.personality(), p.TrainerID()), nil }

// SetShiny rewrites the personality so the shininess matches. Gender,
// nature and Unown form are kept.
func (p *GBA) SetShiny(shiny bool) error {
	gender, err := p.Gender()
	if err != nil {
		return err
	}
	form := p.Form()
	pid, err := calc.PersonalityForShininess(p.personality(), p.TrainerID(), shiny, func(pid uint32) bool {
		g, err := calc.ModernGender(p.species.GenderRatio, pid)
		if err != nil || g != gender {
			return false
		}
		return !p.isUnown() || calc.Gen3UnownForm(pid) == form
	})
	if err != nil {
		return err
	}
	return p.SetPersonality(pid)
}

func (p *GBA) Nature() (string, error) { return calc.Nature(p.personality()), nil }

func (p *GBA) SetNature(nature string) error {
	pid, err := calc.PersonalityForNature(nature, p.personality())
	if err != nil {
		return err
	}
	return p.SetPersonality(pid)
}

func (p *GBA) Ability() (string, error) {
	a := p.species.Abilities
	if p.ivWord().AbilitySlot() == 1 && a[1] != "" {
		return a[1], nil
	}
	return a[0], nil
}

func (p *GBA) SetAbility(ability string) error {
	slot := -1
	for i, a := range p.species.Abilities {
		if a != "" && refdb.SameName(a, ability) {
			slot = i
			break
		}
	}
	if slot < 0 {
		return apperrors.InvalidArgument(p.species.Name+" ability", ability)
	}
	w, err := p.ivWord().WithAbilitySlot(slot)
	if err != nil {
		return err
	}
	le.PutU32(p.raw, gbaIVs, uint32(w))
	return nil
}

func (p *GBA) HiddenPower() (calc.HiddenPower, error) {
	ivs := p.IVs()
	return calc.ModernHiddenPower(ivs[calc.HP], ivs[calc.Attack], ivs[calc.Defense],
		ivs[calc.Speed], ivs[calc.SpecialAttack], ivs[calc.SpecialDefense])
}

func (p *GBA) Friendship() (int, error) { return int(p.raw[gbaFriendship]), nil }

func (p *GBA) SetFriendship(v int) error {
	if v < 0 || v > 255 {
		return apperrors.OutOfRange("friendship", 0, 255)
	}
	p.raw[gbaFriendship] = byte(v)
	return nil
}

func (p *GBA) HeldItem() (string, error) {
	item, err := p.cat.ItemByIndex(p.game, int(le.U16(p.raw, gbaHeldItem)))
	if err != nil {
		return "", err
	}
	return item.Name, nil
}

func (p *GBA) SetHeldItem(name string) error {
	item, err := p.cat.Item(name)
	if err != nil {
		return err
	}
	if item.Name == refdb.NoItem {
		le.PutU16(p.raw, gbaHeldItem, 0)
		return nil
	}
	if !p.cat.Holdable(item, p.game) {
		return apperrors.InvalidArgument(string(p.game)+" held item", name)
	}
	idx, err := p.cat.ItemIndex(p.game, item)
	if err != nil {
		return err
	}
	le.PutU16(p.raw, gbaHeldItem, uint16(idx))
	return nil
}

func (p *GBA) Ball() (string, error) {
	item, err := p.cat.ItemByIndex(p.game, int(gbaBall.Get(p.origins())))
	if err != nil {
		return "", err
	}
	return item.Name, nil
}

func (p *GBA) SetBall(name string) error {
	item, err := p.cat.Item(name)
	if err != nil {
		return err
	}
	if item.Category != refdb.CategoryBall || !p.cat.ItemInGame(item, p.game) {
		return apperrors.InvalidArgument(string(p.game)+" ball", name)
	}
	idx, err := p.cat.ItemIndex(p.game, item)
	if err != nil {
		return err
	}
	return p.setOrigins(gbaBall, idx)
}

// LevelMet is 0 for entities hatched from an egg.
func (p *GBA) LevelMet() (int, error) { return int(gbaLevelMet.Get(p.origins())), nil }

func (p *GBA) SetLevelMet(level int) error {
	if level < 0 || level > calc.MaxLevel {
		return apperrors.OutOfRange("level met", 0, calc.MaxLevel)
	}
	return p.setOrigins(gbaLevelMet, level)
}

func (p *GBA) LocationMet() (string, error) {
	loc, err := p.cat.LocationByIndex(3, int(p.raw[gbaMetLoc]))
	if err != nil {
		return "", err
	}
	return loc.Name, nil
}

func (p *GBA) SetLocationMet(location string) error {
	loc, err := p.cat.Location(3, location)
	if err != nil {
		return err
	}
	p.raw[gbaMetLoc] = byte(loc.Index)
	return nil
}

func (p *GBA) OriginalGame() (game.Game, error) {
	id := int(gbaOriginGame.Get(p.origins()))
	g, ok := game.FromOriginID(id)
	if !ok {
		return "", apperrors.InvalidArgument("original game", strconv.Itoa(id))
	}
	return g, nil
}

func (p *GBA) SetOriginalGame(g game.Game) error {
	if g.Generation() != 3 {
		return apperrors.InvalidArgument("original game", string(g))
	}
	return p.setOrigins(gbaOriginGame, g.OriginID())
}

func (p *GBA) PokerusDuration() (int, error) {
	return int(gbaPokerusDays.Get(uint32(p.raw[gbaPokerus]))), nil
}

func (p *GBA) SetPokerusDuration(days int) error {
	if days < 0 || uint32(days) > gbaPokerusDays.Max() {
		return apperrors.OutOfRange("Pokérus duration", 0, int(gbaPokerusDays.Max()))
	}
	v, err := gbaPokerusDays.Set(uint32(p.raw[gbaPokerus]), uint32(days))
	if err != nil {
		return err
	}
	p.raw[gbaPokerus] = byte(v)
	return nil
}

func (p *GBA) IsEgg() (bool, error) { return p.ivWord().IsEgg(), nil }

func (p *GBA) SetEgg(egg bool) error {
	le.PutU32(p.raw, gbaIVs, uint32(p.ivWord().WithEgg(egg)))
	return nil
}

// gbaMarkingBits is the storage order of the markings byte.
var gbaMarkingBits = map[Marking]uint{Circle: 0, Square: 1, Triangle: 2, Heart: 3}

func (p *GBA) Markings() (map[Marking]bool, error) {
	out := make(map[Marking]bool, len(Markings))
	for _, m := range Markings {
		out[m] = codec.Flag(gbaMarkingBits[m]).Get(uint32(p.raw[gbaMarkings]))
	}
	return out, nil
}

func (p *GBA) SetMarking(m Marking, on bool) error {
	bit, ok := gbaMarkingBits[m]
	if !ok {
		return apperrors.InvalidArgument("marking", string(m))
	}
	p.raw[gbaMarkings] = byte(codec.Flag(bit).Set(uint32(p.raw[gbaMarkings]), on))
	return nil
}

func (p *GBA) ribbons() uint32 { return le.U32(p.raw, gbaRibbons) }

func contestRibbonName(category string, rank int) string {
	if contestRanks[rank-1] == "" {
		return category
	}
	return category + " " + contestRanks[rank-1]
}

func (p *GBA) Ribbons() (map[string]bool, error) {
	w := p.ribbons()
	out := make(map[string]bool, len(contestRibbonCategories)*len(contestRanks)+len(gbaRibbonBits))
	for i, c := range contestRibbonCategories {
		rank := int(p.contestField(i).Get(w))
		for r := 1; r <= len(contestRanks); r++ {
			out[contestRibbonName(c, r)] = rank >= r
		}
	}
	for name, bit := range gbaRibbonBits {
		out[name] = codec.Flag(bit).Get(w)
	}
	return out, nil
}

func (p *GBA) contestField(category int) codec.Field {
	return codec.Field{Name: contestRibbonCategories[category] + " ribbons", Shift: uint(3 * category), Width: 3}
}

// SetRibbon sets one ribbon. Contest ribbons are ranked: setting a rank sets
// every rank below it and clearing it clears every rank above.
func (p *GBA) SetRibbon(ribbon string, on bool) error {
	w := p.ribbons()
	if bit, ok := gbaRibbonBits[ribbon]; ok {
		le.PutU32(p.raw, gbaRibbons, codec.Flag(bit).Set(w, on))
		return nil
	}
	for i, c := range contestRibbonCategories {
		for r := 1; r <= len(contestRanks); r++ {
			if contestRibbonName(c, r) != ribbon {
				continue
			}
			f := p.contestField(i)
			rank := int(f.Get(w))
			switch {
			case on && rank < r:
				rank = r
			case !on && rank >= r:
				rank = r - 1
			}
			next, err := f.Set(w, uint32(rank))
			if err != nil {
				return err
			}
			le.PutU32(p.raw, gbaRibbons, next)
			return nil
		}
	}
	return apperrors.InvalidArgument("ribbon", ribbon)
}

func (p *GBA) ContestStats() (map[ContestStat]int, error) {
	out := make(map[ContestStat]int, len(ContestStats))
	for i, s := range ContestStats {
		out[s] = int(p.raw[gbaContest+i])
	}
	return out, nil
}

func (p *GBA) SetContestStat(stat ContestStat, v int) error {
	for i, s := range ContestStats {
		if s != stat {
			continue
		}
		if v < 0 || v > 255 {
			return apperrors.OutOfRange(string(stat), 0, 255)
		}
		p.raw[gbaContest+i] = byte(v)
		return nil
	}
	return apperrors.InvalidArgument("contest stat", string(stat))
}

func (p *GBA) Moves() [MoveSlots]MoveSlot {
	var out [MoveSlots]MoveSlot
	for i := range out {
		out[i] = MoveSlot{
			Move: p.moveName(int(le.U16(p.raw, gbaMoves+2*i))),
			PP:   int(p.raw[gbaPP+i]),
		}
	}
	return out
}

// SetMove replaces a move with full PP and no PP Ups.
func (p *GBA) SetMove(slot int, name string) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	m, err := p.move(name)
	if err != nil {
		return err
	}
	le.PutU16(p.raw, gbaMoves+2*slot, uint16(m.ID))
	p.raw[gbaPP+slot] = byte(m.PP)
	p.raw[gbaPPBonuses] &^= 0x3 << (2 * uint(slot))
	return nil
}

func (p *GBA) SetMovePP(slot, pp int) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	m, err := p.cat.MoveByID(int(le.U16(p.raw, gbaMoves+2*slot)))
	if err != nil {
		return apperrors.InvalidArgument("move slot", "empty")
	}
	limit := codec.MaxPP(m.PP, codec.PPUpsFromBonuses(p.raw[gbaPPBonuses], slot))
	if pp < 0 || pp > limit {
		return apperrors.OutOfRange("PP", 0, limit)
	}
	p.raw[gbaPP+slot] = byte(pp)
	return nil
}
