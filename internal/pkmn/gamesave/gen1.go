package gamesave

import (
	"time"

	"github.com/louisbranch/pkmnkit/internal/pkmn/codec"
	"github.com/louisbranch/pkmnkit/internal/pkmn/container"
	"github.com/louisbranch/pkmnkit/internal/pkmn/game"
	"github.com/louisbranch/pkmnkit/internal/pkmn/items"
	"github.com/louisbranch/pkmnkit/internal/pkmn/pokemon"
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// Generation I save offsets.
const (
	gbSaveSize = 0x8000

	gen1PlayerName   = 0x2598
	gen1DexCaught    = 0x25A3
	gen1DexSeen      = 0x25B6
	gen1DexSize      = 19
	gen1Bag          = 0x25C9
	gen1Money        = 0x25F3
	gen1RivalName    = 0x25F6
	gen1PlayerID     = 0x2605
	gen1Friendship   = 0x271C
	gen1ItemPC       = 0x27E6
	gen1CurrentBox   = 0x284C
	gen1CasinoCoins  = 0x2850
	gen1PlayHours    = 0x2CED
	gen1PlayMinutes  = 0x2CEF
	gen1PlaySeconds  = 0x2CF0
	gen1DaycareInUse = 0x2CF4
	gen1DaycareName  = 0x2CF5
	gen1DaycareOT    = 0x2D00
	gen1DaycareMon   = 0x2D0B
	gen1Party        = 0x2F2C
	gen1BoxBuffer    = 0x30C0
	gen1ChecksumOff  = 0x3523
	gen1BoxesPerBank = 6
	gen1BoxSize      = 0x462
	gen1BankChecksum = 0x1A4C
	gen1NumSpecies   = 151
)

var gen1Banks = [2]int{0x4000, 0x6000}

var (
	gen1PartyList = gbList{offset: gen1Party, capacity: container.PartySize, recordSize: pokemon.Gen1PartySize}
	gen1BoxList   = gbList{offset: 0, capacity: 20, recordSize: pokemon.Gen1BoxSize}
)

func gen1ChecksumValid(data []byte) bool {
	return len(data) >= gbSaveSize && data[gen1ChecksumOff] == gen1Checksum(data[gen1PlayerName:gen1ChecksumOff])
}

// gen1Game tells Yellow from Red by the starter Pikachu's friendship, which
// Red and Blue leave at zero. Red and Blue cannot be told apart.
func gen1Game(data []byte) game.Game {
	if data[gen1Friendship] != 0 {
		return game.Yellow
	}
	return game.Red
}

// gen1BoxOffset returns where box i lives in its bank.
func gen1BoxOffset(i int) int {
	return gen1Banks[i/gen1BoxesPerBank] + (i%gen1BoxesPerBank)*gen1BoxSize
}

type gen1Layout struct{}

func (gen1Layout) decode(s *Save) error {
	data := s.raw
	cs := codec.GameBoy
	s.trainerName = cs.Decode(data[gen1PlayerName : gen1PlayerName+gbNameSize])
	s.rivalName = cs.Decode(data[gen1RivalName : gen1RivalName+gbNameSize])
	s.trainerID = uint32(be.U16(data, gen1PlayerID))
	s.money = codec.DecodeBCD(data[gen1Money : gen1Money+3])
	s.playTime = time.Duration(int(data[gen1PlayHours]))*time.Hour +
		time.Duration(int(data[gen1PlayMinutes]))*time.Minute +
		time.Duration(int(data[gen1PlaySeconds]))*time.Second
	s.currentBox = int(data[gen1CurrentBox] & 0x7F)
	s.pokedex = newPokedex(gen1NumSpecies, data[gen1DexSeen:gen1DexSeen+gen1DexSize], data[gen1DexCaught:gen1DexCaught+gen1DexSize])

	var err error
	if s.bag, err = items.NewBag(s.cat, s.game); err != nil {
		return err
	}
	pocket := s.bag.Pockets()[0]
	if err := decodeGBItems(s, data, gen1Bag, pocket); err != nil {
		return err
	}
	if s.itemPC, err = items.NewPC(s.cat, s.game); err != nil {
		return err
	}
	if err := decodeGBItems(s, data, gen1ItemPC, s.itemPC); err != nil {
		return err
	}

	if s.party, err = container.NewParty(s.game); err != nil {
		return err
	}
	members, _, err := decodeGBList(s, data, gen1PartyList)
	if err != nil {
		return err
	}
	if err := s.party.Load(members); err != nil {
		return err
	}
	if s.pc, err = container.NewPC(s.game); err != nil {
		return err
	}
	if s.currentBox >= s.pc.NumBoxes() {
		return apperrors.InvalidFormat("current box out of range")
	}
	s.boxInit = make([]bool, s.pc.NumBoxes())
	for i, box := range s.pc.Boxes() {
		l := gen1BoxList
		l.offset = gen1BoxOffset(i)
		if i == s.currentBox {
			l.offset = gen1BoxBuffer
		}
		members, ok, err := decodeGBList(s, data, l)
		if err != nil {
			return err
		}
		s.boxInit[i] = ok
		if err := box.Load(members); err != nil {
			return err
		}
	}

	if err := decodeGen1Daycare(s, data); err != nil {
		return err
	}

	s.attrs = map[string]*extraAttr{}
	s.addAttr("casino_coins", codec.DecodeBCD(data[gen1CasinoCoins:gen1CasinoCoins+2]), 0, 9999,
		func(out []byte, v int) error { return codec.EncodeBCD(out[gen1CasinoCoins:gen1CasinoCoins+2], v) })
	if s.game == game.Yellow {
		s.addAttr("pikachu_friendship", int(data[gen1Friendship]), 0, 255,
			func(out []byte, v int) error { out[gen1Friendship] = byte(v); return nil })
	}
	s.addPokedexAttrs()
	return nil
}

func (gen1Layout) encode(s *Save, out []byte) error {
	if err := putText(s.game, out[gen1PlayerName:gen1PlayerName+gbNameSize], s.trainerName, maxTrainerLength); err != nil {
		return err
	}
	if err := putText(s.game, out[gen1RivalName:gen1RivalName+gbNameSize], s.rivalName, maxTrainerLength); err != nil {
		return err
	}
	be.PutU16(out, gen1PlayerID, uint16(s.trainerID))
	if err := codec.EncodeBCD(out[gen1Money:gen1Money+3], s.money); err != nil {
		return err
	}
	putGBPlayTime(out, gen1PlayHours, gen1PlayMinutes, gen1PlaySeconds, s.playTime)

	if err := encodeGBItems(s, out, gen1Bag, s.bag.Pockets()[0]); err != nil {
		return err
	}
	if err := encodeGBItems(s, out, gen1ItemPC, s.itemPC); err != nil {
		return err
	}
	if err := encodeGBList(out, gen1PartyList, s.party.Pokemon()); err != nil {
		return err
	}
	for i, box := range s.pc.Boxes() {
		if !s.boxInit[i] && box.NumPokemon() == 0 {
			continue
		}
		l := gen1BoxList
		l.offset = gen1BoxOffset(i)
		if i == s.currentBox {
			l.offset = gen1BoxBuffer
		}
		if err := encodeGBList(out, l, box.Pokemon()); err != nil {
			return err
		}
	}
	if err := encodeGen1Daycare(s, out); err != nil {
		return err
	}
	if err := s.encodeAttrs(out); err != nil {
		return err
	}

	if changed(out, s.raw, gen1PlayerName, gen1ChecksumOff) {
		out[gen1ChecksumOff] = gen1Checksum(out[gen1PlayerName:gen1ChecksumOff])
	}
	for _, bank := range gen1Banks {
		for i := 0; i < gen1BoxesPerBank; i++ {
			start := bank + i*gen1BoxSize
			if changed(out, s.raw, start, start+gen1BoxSize) {
				out[bank+gen1BankChecksum+1+i] = gen1Checksum(out[start : start+gen1BoxSize])
			}
		}
		if changed(out, s.raw, bank, bank+gen1BankChecksum) {
			out[bank+gen1BankChecksum] = gen1Checksum(out[bank : bank+gen1BankChecksum])
		}
	}
	return nil
}

// decodeGen1Daycare reads the single daycare slot. The game leaves the
// record in place when the Pokémon is taken back and only clears the in-use
// flag.
func decodeGen1Daycare(s *Save, data []byte) error {
	var err error
	if s.daycare, err = container.NewDaycare(s.game); err != nil {
		return err
	}
	if data[gen1DaycareInUse] == 0 {
		return nil
	}
	p, err := pokemon.FromGen1(s.cat, s.game,
		data[gen1DaycareMon:gen1DaycareMon+pokemon.Gen1BoxSize],
		data[gen1DaycareName:gen1DaycareName+gbNameSize],
		data[gen1DaycareOT:gen1DaycareOT+gbNameSize])
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInvalidFormat, "decode daycare", err)
	}
	return s.daycare.Load([]pokemon.Pokemon{p})
}

func encodeGen1Daycare(s *Save, out []byte) error {
	p, err := s.daycare.At(0)
	if err != nil {
		return err
	}
	if p == nil {
		out[gen1DaycareInUse] = 0
		return nil
	}
	g1, ok := p.(*pokemon.Gen1)
	if !ok {
		return apperrors.InvalidArgument("Generation I Pokémon", string(p.Game()))
	}
	if out[gen1DaycareInUse] == 0 {
		out[gen1DaycareInUse] = 1
	}
	copy(out[gen1DaycareName:], g1.NicknameBytes())
	copy(out[gen1DaycareOT:], g1.TrainerNameBytes())
	copy(out[gen1DaycareMon:], g1.BoxBytes())
	return nil
}

// putGBPlayTime writes hours, minutes and seconds. Frames stay as stored.
func putGBPlayTime(out []byte, hours, minutes, seconds int, d time.Duration) {
	total := int(d / time.Second)
	out[hours] = byte(total / 3600)
	out[minutes] = byte(total / 60 % 60)
	out[seconds] = byte(total % 60)
}
