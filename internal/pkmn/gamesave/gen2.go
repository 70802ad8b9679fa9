package gamesave

import (
	"time"

	"github.com/louisbranch/pkmnkit/internal/pkmn/codec"
	"github.com/louisbranch/pkmnkit/internal/pkmn/container"
	"github.com/louisbranch/pkmnkit/internal/pkmn/items"
	"github.com/louisbranch/pkmnkit/internal/pkmn/pokemon"
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

const (
	gen2TextboxFrame  = 0x2002
	gen2PlayerID      = 0x2009
	gen2PlayerName    = 0x200B
	gen2RivalName     = 0x2021
	gen2DexSize       = 32
	gen2NumSpecies    = 251
	gen2BoxNameSize   = 9
	gen2BoxesPerBank  = 7
	gen2BoxStride     = 0x450
	gen2MaxCoins      = 9999
	gen2TextboxFrames = 8
)

var gen2Banks = [2]int{0x4000, 0x6000}

// gen2Layout holds the offsets that differ between Gold/Silver and Crystal.
type gen2Layout struct {
	playTime      int
	money         int
	casinoCoins   int
	tmPocket      int
	itemPocket    int
	keyPocket     int
	ballPocket    int
	itemPC        int
	currentBox    int
	boxNames      int
	party         int
	dexCaught     int
	dexSeen       int
	boxBuffer     int
	playerGender  int
	checksum      int
	checksumStart int
	checksumEnd   int
}

var (
	gen2GS = gen2Layout{
		playTime:      0x2053,
		money:         0x23DB,
		casinoCoins:   0x23E2,
		tmPocket:      0x23E6,
		itemPocket:    0x241F,
		keyPocket:     0x2449,
		ballPocket:    0x2464,
		itemPC:        0x247E,
		currentBox:    0x2724,
		boxNames:      0x2727,
		party:         0x288A,
		dexCaught:     0x2A4C,
		dexSeen:       0x2A6C,
		boxBuffer:     0x2D6C,
		playerGender:  -1,
		checksum:      0x2D69,
		checksumStart: 0x2009,
		checksumEnd:   0x2D69,
	}
	gen2Crystal = gen2Layout{
		playTime:      0x2054,
		money:         0x23DC,
		casinoCoins:   0x23E3,
		tmPocket:      0x23E7,
		itemPocket:    0x2420,
		keyPocket:     0x244A,
		ballPocket:    0x2465,
		itemPC:        0x247F,
		currentBox:    0x2700,
		boxNames:      0x2703,
		party:         0x2865,
		dexCaught:     0x2A27,
		dexSeen:       0x2A47,
		boxBuffer:     0x2D10,
		playerGender:  0x3E3D,
		checksum:      0x2D0D,
		checksumStart: 0x2009,
		checksumEnd:   0x2B83,
	}
)

func (l gen2Layout) checksumValid(data []byte) bool {
	return len(data) >= gbSaveSize &&
		codec.LittleEndian.U16(data, l.checksum) == gen2Checksum(data[l.checksumStart:l.checksumEnd])
}

func (l gen2Layout) partyList() gbList {
	return gbList{offset: l.party, capacity: container.PartySize, recordSize: pokemon.Gen2PartySize}
}

func (l gen2Layout) boxList(i, current int) gbList {
	off := gen2Banks[i/gen2BoxesPerBank] + (i%gen2BoxesPerBank)*gen2BoxStride
	if i == current {
		off = l.boxBuffer
	}
	return gbList{offset: off, capacity: 20, recordSize: pokemon.Gen2BoxSize}
}

// pocketOffsets lists the bag pockets in the order the catalog returns them:
// Items, KeyItems, Balls, TM/HM.
func (l gen2Layout) pocketOffsets() []int {
	return []int{l.itemPocket, l.keyPocket, l.ballPocket, l.tmPocket}
}

func (l gen2Layout) decode(s *Save) error {
	data := s.raw
	cs := codec.GameBoy
	s.trainerName = cs.Decode(data[gen2PlayerName : gen2PlayerName+gbNameSize])
	s.rivalName = cs.Decode(data[gen2RivalName : gen2RivalName+gbNameSize])
	s.trainerID = uint32(be.U16(data, gen2PlayerID))
	s.money = int(be.U24(data, l.money))
	s.playTime = time.Duration(int(be.U16(data, l.playTime)))*time.Hour +
		time.Duration(int(data[l.playTime+2]))*time.Minute +
		time.Duration(int(data[l.playTime+3]))*time.Second
	if l.playerGender >= 0 {
		s.trainerGender = "Male"
		if data[l.playerGender] == 1 {
			s.trainerGender = "Female"
		}
	}
	s.currentBox = int(data[l.currentBox] & 0x0F)
	s.pokedex = newPokedex(gen2NumSpecies, data[l.dexSeen:l.dexSeen+gen2DexSize], data[l.dexCaught:l.dexCaught+gen2DexSize])

	var err error
	if s.bag, err = items.NewBag(s.cat, s.game); err != nil {
		return err
	}
	pockets := s.bag.Pockets()
	offsets := l.pocketOffsets()
	if len(pockets) != len(offsets) {
		return apperrors.InvalidFormat("unexpected Generation II pocket set")
	}
	for i, p := range pockets {
		if err := decodeGBItems(s, data, offsets[i], p); err != nil {
			return err
		}
	}
	if s.itemPC, err = items.NewPC(s.cat, s.game); err != nil {
		return err
	}
	if err := decodeGBItems(s, data, l.itemPC, s.itemPC); err != nil {
		return err
	}

	if s.party, err = container.NewParty(s.game); err != nil {
		return err
	}
	members, _, err := decodeGBList(s, data, l.partyList())
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
		name := cs.Decode(data[l.boxNames+i*gen2BoxNameSize : l.boxNames+(i+1)*gen2BoxNameSize])
		s.boxNames = append(s.boxNames, name)
		if name != "" {
			if err := box.SetName(name); err != nil {
				return apperrors.Wrap(apperrors.CodeInvalidFormat, "decode box name", err)
			}
		}
		members, ok, err := decodeGBList(s, data, l.boxList(i, s.currentBox))
		if err != nil {
			return err
		}
		s.boxInit[i] = ok
		if err := box.Load(members); err != nil {
			return err
		}
	}

	s.attrs = map[string]*extraAttr{}
	s.addAttr("casino_coins", int(be.U16(data, l.casinoCoins)), 0, gen2MaxCoins,
		func(out []byte, v int) error { be.PutU16(out, l.casinoCoins, uint16(v)); return nil })
	s.addAttr("textbox_frame", int(data[gen2TextboxFrame]&0x07)+1, 1, gen2TextboxFrames,
		func(out []byte, v int) error {
			out[gen2TextboxFrame] = out[gen2TextboxFrame]&^0x07 | byte(v-1)
			return nil
		})
	s.addPokedexAttrs()
	return nil
}

func (l gen2Layout) encode(s *Save, out []byte) error {
	if err := putText(s.game, out[gen2PlayerName:gen2PlayerName+gbNameSize], s.trainerName, maxTrainerLength); err != nil {
		return err
	}
	if err := putText(s.game, out[gen2RivalName:gen2RivalName+gbNameSize], s.rivalName, maxTrainerLength); err != nil {
		return err
	}
	be.PutU16(out, gen2PlayerID, uint16(s.trainerID))
	if err := be.PutU24(out, l.money, uint32(s.money)); err != nil {
		return err
	}
	total := int(s.playTime / time.Second)
	be.PutU16(out, l.playTime, uint16(total/3600))
	out[l.playTime+2] = byte(total / 60 % 60)
	out[l.playTime+3] = byte(total % 60)
	if female := s.TrainerGender() == "Female"; l.playerGender >= 0 && (out[l.playerGender] == 1) != female {
		out[l.playerGender] = 0
		if female {
			out[l.playerGender] = 1
		}
	}

	for i, p := range s.bag.Pockets() {
		if err := encodeGBItems(s, out, l.pocketOffsets()[i], p); err != nil {
			return err
		}
	}
	if err := encodeGBItems(s, out, l.itemPC, s.itemPC); err != nil {
		return err
	}
	if err := encodeGBList(out, l.partyList(), s.party.Pokemon()); err != nil {
		return err
	}
	for i, box := range s.pc.Boxes() {
		dst := out[l.boxNames+i*gen2BoxNameSize : l.boxNames+(i+1)*gen2BoxNameSize]
		if err := s.putBoxName(dst, i, box); err != nil {
			return err
		}
		if !s.boxInit[i] && box.NumPokemon() == 0 {
			continue
		}
		if err := encodeGBList(out, l.boxList(i, s.currentBox), box.Pokemon()); err != nil {
			return err
		}
	}
	if err := s.encodeAttrs(out); err != nil {
		return err
	}

	if changed(out, s.raw, l.checksumStart, l.checksumEnd) {
		codec.LittleEndian.PutU16(out, l.checksum, gen2Checksum(out[l.checksumStart:l.checksumEnd]))
	}
	return nil
}
