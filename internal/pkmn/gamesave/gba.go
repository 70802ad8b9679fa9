package gamesave

import (
	"bytes"
	"strconv"
	"time"

	"github.com/louisbranch/pkmnkit/internal/pkmn/codec"
	"github.com/louisbranch/pkmnkit/internal/pkmn/container"
	"github.com/louisbranch/pkmnkit/internal/pkmn/items"
	"github.com/louisbranch/pkmnkit/internal/pkmn/pokemon"
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// Flash layout shared by every Game Boy Advance game.
const (
	gbaSaveSize       = 0x20000
	gbaSectorSize     = 0x1000
	gbaSectorsPerSlot = 14
	gbaFooterID       = 0xFF4
	gbaFooterChecksum = 0xFF6
	gbaFooterMagic    = 0xFF8
	gbaFooterIndex    = 0xFFC
	gbaMagic          = 0x08012025
)

// Section 0 (trainer info) offsets.
const (
	gbaTrainerName   = 0x00
	gbaTrainerGender = 0x08
	gbaTrainerID     = 0x0A
	gbaPlayTime      = 0x0E
	gbaTextOptions   = 0x14
	gbaDexCaught     = 0x28
	gbaDexSeen       = 0x5C
	gbaDexSize       = 49
	gbaGameCode      = 0xAC
	gbaNumSpecies    = 386
	gbaNameSize      = maxTrainerLength + 1
	gbaMaxCoins      = 9999
	gbaTextboxFrames = 20
)

// PC buffer offsets, counted from the start of section 5.
const (
	gbaPCCurrentBox = 0x0000
	gbaPCBoxes      = 0x0004
	gbaPCBoxNames   = 0x8344
	gbaBoxNameSize  = 9
	gbaFirstPCSect  = 5
)

var le = codec.LittleEndian

// gbaLayout holds what differs between Ruby/Sapphire, Emerald and
// FireRed/LeafGreen.
type gbaLayout struct {
	sectionSizes [gbaSectorsPerSlot]int
	securityKey  int // offset in section 0, -1 when the game has none
	teamSize     int
	money        int
	itemPC       int
	pockets      []int
}

func newGBALayout(f Format) gbaLayout {
	l := gbaLayout{sectionSizes: [gbaSectorsPerSlot]int{
		0, 0xF80, 0xF80, 0xF80, 0, 0xF80, 0xF80, 0xF80, 0xF80, 0xF80, 0xF80, 0xF80, 0xF80, 0x7D0,
	}}
	switch f {
	case FormatRS:
		l.sectionSizes[0], l.sectionSizes[4] = 0x890, 0xC40
		l.securityKey = -1
		l.teamSize, l.money, l.itemPC = 0x234, 0x490, 0x498
		l.pockets = []int{0x560, 0x5B0, 0x600, 0x640, 0x740}
	case FormatEmerald:
		l.sectionSizes[0], l.sectionSizes[4] = 0xF2C, 0xF08
		l.securityKey = 0xAC
		l.teamSize, l.money, l.itemPC = 0x234, 0x490, 0x498
		l.pockets = []int{0x560, 0x5D8, 0x650, 0x690, 0x790}
	default:
		l.sectionSizes[0], l.sectionSizes[4] = 0xF24, 0xD98
		l.securityKey = 0xF20
		l.teamSize, l.money, l.itemPC = 0x34, 0x290, 0x298
		l.pockets = []int{0x310, 0x3B8, 0x430, 0x464, 0x54C}
	}
	return l
}

// gbaSlot maps section ids to sector offsets in the file.
type gbaSlot struct {
	index   uint32
	sectors [gbaSectorsPerSlot]int
}

// readGBASlot validates the sectors of slot n (0 or 1). Checksums are only
// checked when sizes is given.
func readGBASlot(data []byte, n int, sizes *[gbaSectorsPerSlot]int) (gbaSlot, bool) {
	var slot gbaSlot
	seen := [gbaSectorsPerSlot]bool{}
	for i := 0; i < gbaSectorsPerSlot; i++ {
		off := (n*gbaSectorsPerSlot + i) * gbaSectorSize
		sector := data[off : off+gbaSectorSize]
		if le.U32(sector, gbaFooterMagic) != gbaMagic {
			return slot, false
		}
		id := int(le.U16(sector, gbaFooterID))
		if id >= gbaSectorsPerSlot || seen[id] {
			return slot, false
		}
		seen[id] = true
		slot.sectors[id] = off
		if i == 0 {
			slot.index = le.U32(sector, gbaFooterIndex)
		}
		if sizes != nil && le.U16(sector, gbaFooterChecksum) != gbaSectorChecksum(sector[:sizes[id]]) {
			return slot, false
		}
	}
	return slot, true
}

// gbaSectorChecksum folds the 32-bit word sum into 16 bits.
func gbaSectorChecksum(b []byte) uint16 {
	var sum uint32
	for i := 0; i+4 <= len(b); i += 4 {
		sum += le.U32(b, i)
	}
	return uint16(sum>>16) + uint16(sum)
}

// currentGBASlot returns the most recent valid slot.
func currentGBASlot(data []byte, sizes *[gbaSectorsPerSlot]int) (gbaSlot, bool) {
	a, okA := readGBASlot(data, 0, sizes)
	b, okB := readGBASlot(data, 1, sizes)
	switch {
	case okA && okB:
		if b.index > a.index {
			return b, true
		}
		return a, true
	case okA:
		return a, true
	case okB:
		return b, true
	}
	return gbaSlot{}, false
}

// gbaFormat reads the game code of the trainer section.
func gbaFormat(data []byte) (Format, bool) {
	slot, ok := currentGBASlot(data, nil)
	if !ok {
		return "", false
	}
	var f Format
	switch le.U32(data, slot.sectors[0]+gbaGameCode) {
	case 0:
		f = FormatRS
	case 1:
		f = FormatFRLG
	default:
		f = FormatEmerald
	}
	sizes := newGBALayout(f).sectionSizes
	if _, ok := currentGBASlot(data, &sizes); !ok {
		return "", false
	}
	return f, true
}

func (l gbaLayout) section(data []byte, slot gbaSlot, id int) []byte {
	off := slot.sectors[id]
	return data[off : off+l.sectionSizes[id]]
}

// pcBuffer joins sections 5 to 13.
func (l gbaLayout) pcBuffer(data []byte, slot gbaSlot) []byte {
	var buf []byte
	for id := gbaFirstPCSect; id < gbaSectorsPerSlot; id++ {
		buf = append(buf, l.section(data, slot, id)...)
	}
	return buf
}

func (l gbaLayout) putPCBuffer(out []byte, slot gbaSlot, buf []byte) {
	for id := gbaFirstPCSect; id < gbaSectorsPerSlot; id++ {
		n := copy(l.section(out, slot, id), buf)
		buf = buf[n:]
	}
}

func (l gbaLayout) key(sec0 []byte) uint32 {
	if l.securityKey < 0 {
		return 0
	}
	return le.U32(sec0, l.securityKey)
}

func gbaRecordEmpty(rec []byte) bool {
	for _, b := range rec {
		if b != 0 {
			return false
		}
	}
	return true
}

func (l gbaLayout) decode(s *Save) error {
	data := s.raw
	slot, ok := currentGBASlot(data, &l.sectionSizes)
	if !ok {
		return apperrors.New(apperrors.CodeChecksumMismatch, "no valid save slot")
	}
	sec0, sec1 := l.section(data, slot, 0), l.section(data, slot, 1)
	key := l.key(sec0)
	cs := codec.GBA

	s.trainerName = cs.Decode(sec0[gbaTrainerName : gbaTrainerName+gbaNameSize])
	s.trainerGender = "Male"
	if sec0[gbaTrainerGender] == 1 {
		s.trainerGender = "Female"
	}
	s.trainerID = le.U32(sec0, gbaTrainerID)
	s.playTime = time.Duration(int(le.U16(sec0, gbaPlayTime)))*time.Hour +
		time.Duration(int(sec0[gbaPlayTime+2]))*time.Minute +
		time.Duration(int(sec0[gbaPlayTime+3]))*time.Second
	s.money = int(le.U32(sec1, l.money) ^ key)
	if s.money > MaxMoney {
		return apperrors.InvalidFormat("money out of range")
	}
	s.pokedex = newPokedex(gbaNumSpecies, sec0[gbaDexSeen:gbaDexSeen+gbaDexSize], sec0[gbaDexCaught:gbaDexCaught+gbaDexSize])

	var err error
	if s.bag, err = items.NewBag(s.cat, s.game); err != nil {
		return err
	}
	pockets := s.bag.Pockets()
	if len(pockets) != len(l.pockets) {
		return apperrors.InvalidFormat("unexpected Game Boy Advance pocket set")
	}
	for i, p := range pockets {
		if err := decodeGBAItems(s, sec1[l.pockets[i]:], p, uint16(key)); err != nil {
			return err
		}
	}
	if s.itemPC, err = items.NewPC(s.cat, s.game); err != nil {
		return err
	}
	if err := decodeGBAItems(s, sec1[l.itemPC:], s.itemPC, 0); err != nil {
		return err
	}

	if s.party, err = container.NewParty(s.game); err != nil {
		return err
	}
	count := int(le.U32(sec1, l.teamSize))
	if count > container.PartySize {
		return apperrors.InvalidFormat("party count out of range")
	}
	var members []pokemon.Pokemon
	for i := 0; i < count; i++ {
		off := l.teamSize + 4 + i*pokemon.GBAPartySize
		p, err := pokemon.FromGBA(s.cat, s.game, sec1[off:off+pokemon.GBAPartySize])
		if err != nil {
			return apperrors.WrapWithMetadata(apperrors.CodeInvalidFormat, "decode party entry",
				map[string]string{"Slot": strconv.Itoa(i)}, err)
		}
		members = append(members, p)
	}
	if err := s.party.Load(members); err != nil {
		return err
	}

	pc := l.pcBuffer(data, slot)
	if s.pc, err = container.NewPC(s.game); err != nil {
		return err
	}
	s.currentBox = int(le.U32(pc, gbaPCCurrentBox))
	if s.currentBox >= s.pc.NumBoxes() {
		return apperrors.InvalidFormat("current box out of range")
	}
	for i, box := range s.pc.Boxes() {
		name := cs.Decode(pc[gbaPCBoxNames+i*gbaBoxNameSize : gbaPCBoxNames+(i+1)*gbaBoxNameSize])
		s.boxNames = append(s.boxNames, name)
		if name != "" {
			if err := box.SetName(name); err != nil {
				return apperrors.Wrap(apperrors.CodeInvalidFormat, "decode box name", err)
			}
		}
		members := make([]pokemon.Pokemon, box.Capacity())
		for j := range members {
			off := l.boxRecord(i, j, box.Capacity())
			rec := pc[off : off+pokemon.GBABoxSize]
			if gbaRecordEmpty(rec) {
				continue
			}
			p, err := pokemon.FromGBA(s.cat, s.game, rec)
			if err != nil {
				return apperrors.WrapWithMetadata(apperrors.CodeInvalidFormat, "decode box entry",
					map[string]string{"Box": strconv.Itoa(i), "Slot": strconv.Itoa(j)}, err)
			}
			members[j] = p
		}
		if err := box.Load(members); err != nil {
			return err
		}
	}

	s.attrs = map[string]*extraAttr{}
	coinsOff := l.money + 4
	s.addAttr("casino_coins", int(le.U16(sec1, coinsOff)^uint16(key)), 0, gbaMaxCoins,
		func(out []byte, v int) error {
			le.PutU16(l.section(out, slot, 1), coinsOff, uint16(v)^uint16(key))
			return nil
		})
	s.addAttr("textbox_frame", int(sec0[gbaTextOptions]>>3)+1, 1, gbaTextboxFrames,
		func(out []byte, v int) error {
			o := l.section(out, slot, 0)
			o[gbaTextOptions] = o[gbaTextOptions]&0x07 | byte(v-1)<<3
			return nil
		})
	s.addPokedexAttrs()
	s.gbaSlot = slot
	return nil
}

func (l gbaLayout) boxRecord(box, slot, capacity int) int {
	return gbaPCBoxes + (box*capacity+slot)*pokemon.GBABoxSize
}

func (l gbaLayout) encode(s *Save, out []byte) error {
	slot := s.gbaSlot
	sec0, sec1 := l.section(out, slot, 0), l.section(out, slot, 1)
	key := l.key(sec0)

	if err := putText(s.game, sec0[gbaTrainerName:gbaTrainerName+gbaNameSize], s.trainerName, maxTrainerLength); err != nil {
		return err
	}
	if female := s.TrainerGender() == "Female"; (sec0[gbaTrainerGender] == 1) != female {
		sec0[gbaTrainerGender] = 0
		if female {
			sec0[gbaTrainerGender] = 1
		}
	}
	le.PutU32(sec0, gbaTrainerID, s.trainerID)
	total := int(s.playTime / time.Second)
	le.PutU16(sec0, gbaPlayTime, uint16(total/3600))
	sec0[gbaPlayTime+2] = byte(total / 60 % 60)
	sec0[gbaPlayTime+3] = byte(total % 60)
	le.PutU32(sec1, l.money, uint32(s.money)^key)

	for i, p := range s.bag.Pockets() {
		if err := encodeGBAItems(s, sec1[l.pockets[i]:], p, uint16(key)); err != nil {
			return err
		}
	}
	if err := encodeGBAItems(s, sec1[l.itemPC:], s.itemPC, 0); err != nil {
		return err
	}

	oldCount := int(le.U32(sec1, l.teamSize))
	n := 0
	for _, p := range s.party.Pokemon() {
		if p == nil {
			break
		}
		v, ok := p.(*pokemon.GBA)
		if !ok {
			return apperrors.InvalidArgument("Game Boy Advance Pokémon", string(p.Game()))
		}
		copy(sec1[l.teamSize+4+n*pokemon.GBAPartySize:], v.Bytes())
		n++
	}
	for i := n; i < oldCount && i < container.PartySize; i++ {
		off := l.teamSize + 4 + i*pokemon.GBAPartySize
		clear(sec1[off : off+pokemon.GBAPartySize])
	}
	le.PutU32(sec1, l.teamSize, uint32(n))

	pc := l.pcBuffer(out, slot)
	for i, box := range s.pc.Boxes() {
		dst := pc[gbaPCBoxNames+i*gbaBoxNameSize : gbaPCBoxNames+(i+1)*gbaBoxNameSize]
		if err := s.putBoxName(dst, i, box); err != nil {
			return err
		}
		for j, p := range box.Pokemon() {
			off := l.boxRecord(i, j, box.Capacity())
			rec := pc[off : off+pokemon.GBABoxSize]
			if p == nil {
				if !gbaRecordEmpty(rec) {
					clear(rec)
				}
				continue
			}
			v, ok := p.(*pokemon.GBA)
			if !ok {
				return apperrors.InvalidArgument("Game Boy Advance Pokémon", string(p.Game()))
			}
			copy(rec, v.BoxBytes())
		}
	}
	l.putPCBuffer(out, slot, pc)

	if err := s.encodeAttrs(out); err != nil {
		return err
	}

	for id := 0; id < gbaSectorsPerSlot; id++ {
		off := slot.sectors[id]
		size := l.sectionSizes[id]
		if !bytes.Equal(out[off:off+size], s.raw[off:off+size]) {
			le.PutU16(out, off+gbaFooterChecksum, gbaSectorChecksum(out[off:off+size]))
		}
	}
	return nil
}

// decodeGBAItems reads fixed-size (id, amount) entries. Amounts are XORed
// with the low half of the security key.
func decodeGBAItems(s *Save, data []byte, l *items.List, key uint16) error {
	for i := 0; i < l.Len(); i++ {
		id := int(le.U16(data, 4*i))
		if id == 0 {
			continue
		}
		it, err := s.cat.ItemByIndex(s.game, id)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeInvalidFormat, "decode "+l.Name(), err)
		}
		amount := int(le.U16(data, 4*i+2) ^ key)
		if err := l.Set(l.NumItems(), it.Name, amount); err != nil {
			return apperrors.Wrap(apperrors.CodeInvalidFormat, "decode "+l.Name(), err)
		}
	}
	return nil
}

func encodeGBAItems(s *Save, data []byte, l *items.List, key uint16) error {
	slots := l.Slots()
	n := l.NumItems()
	for i := 0; i < l.Len(); i++ {
		if i >= n {
			if le.U16(data, 4*i) != 0 {
				le.PutU16(data, 4*i, 0)
				le.PutU16(data, 4*i+2, key)
			}
			continue
		}
		idx, err := itemIndex(s, slots[i].Item)
		if err != nil {
			return err
		}
		le.PutU16(data, 4*i, uint16(idx))
		le.PutU16(data, 4*i+2, uint16(slots[i].Amount)^key)
	}
	return nil
}
