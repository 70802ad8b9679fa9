package gamesave

import (
	"bytes"
	"strconv"

	"github.com/louisbranch/pkmnkit/internal/pkmn/codec"
	"github.com/louisbranch/pkmnkit/internal/pkmn/game"
	"github.com/louisbranch/pkmnkit/internal/pkmn/items"
	"github.com/louisbranch/pkmnkit/internal/pkmn/pokemon"
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

const (
	gbNameSize       = pokemon.NameSize
	maxTrainerLength = pokemon.MaxTrainerLength
	gbListEnd        = 0xFF
	gbEggSpecies     = 0xFD
)

var be = codec.BigEndian

func charsetFor(g game.Game) *codec.Charset {
	if g.Platform() == game.GameBoy {
		return codec.GameBoy
	}
	return codec.GBA
}

func checkText(g game.Game, s string, maxLen int) error {
	return charsetFor(g).Encode(make([]byte, maxLen+1), s, maxLen)
}

// putText encodes s into dst unless dst already reads as s, which keeps any
// bytes after the terminator.
func putText(g game.Game, dst []byte, s string, maxLen int) error {
	cs := charsetFor(g)
	if cs.Decode(dst) == s {
		return nil
	}
	return cs.Encode(dst, s, maxLen)
}

func changed(out, raw []byte, from, to int) bool {
	return !bytes.Equal(out[from:to], raw[from:to])
}

// gbList is a Game Boy Pokémon list: a count, a species list ending in 0xFF,
// the records, then the trainer names and the nicknames.
type gbList struct {
	offset     int
	capacity   int
	recordSize int
}

func (l gbList) species() int     { return l.offset + 1 }
func (l gbList) records() int     { return l.species() + l.capacity + 1 }
func (l gbList) trainers() int    { return l.records() + l.capacity*l.recordSize }
func (l gbList) nicknames() int   { return l.trainers() + l.capacity*gbNameSize }
func (l gbList) end() int         { return l.nicknames() + l.capacity*gbNameSize }
func (l gbList) record(i int) int { return l.records() + i*l.recordSize }

// decodeGBList reads the list at l. A count above capacity marks a list the
// game never initialized; it decodes as empty with ok false.
func decodeGBList(s *Save, data []byte, l gbList) (members []pokemon.Pokemon, ok bool, err error) {
	count := int(data[l.offset])
	if count > l.capacity {
		return nil, false, nil
	}
	for i := 0; i < count; i++ {
		rec := data[l.record(i) : l.record(i)+l.recordSize]
		trainer := data[l.trainers()+i*gbNameSize : l.trainers()+(i+1)*gbNameSize]
		nickname := data[l.nicknames()+i*gbNameSize : l.nicknames()+(i+1)*gbNameSize]
		var p pokemon.Pokemon
		switch s.game.Generation() {
		case 1:
			p, err = pokemon.FromGen1(s.cat, s.game, rec, nickname, trainer)
		default:
			var g2 *pokemon.Gen2
			g2, err = pokemon.FromGen2(s.cat, s.game, rec, nickname, trainer)
			if err == nil && data[l.species()+i] == gbEggSpecies {
				err = g2.SetEgg(true)
			}
			p = g2
		}
		if err != nil {
			return nil, false, apperrors.WrapWithMetadata(apperrors.CodeInvalidFormat, "decode Pokémon list entry",
				map[string]string{"Offset": strconv.Itoa(l.offset), "Slot": strconv.Itoa(i)}, err)
		}
		members = append(members, p)
	}
	return members, true, nil
}

// encodeGBList writes the occupied prefix of members into out. Slots past the
// count keep their old bytes.
func encodeGBList(out []byte, l gbList, members []pokemon.Pokemon) error {
	n := 0
	for _, p := range members {
		if p == nil {
			break
		}
		var rec, trainer, nickname []byte
		egg := false
		switch v := p.(type) {
		case *pokemon.Gen1:
			rec, trainer, nickname = v.Bytes(), v.TrainerNameBytes(), v.NicknameBytes()
			if l.recordSize == pokemon.Gen1BoxSize {
				rec = v.BoxBytes()
			}
		case *pokemon.Gen2:
			rec, trainer, nickname = v.Bytes(), v.TrainerNameBytes(), v.NicknameBytes()
			if l.recordSize == pokemon.Gen2BoxSize {
				rec = v.BoxBytes()
			}
			egg, _ = v.IsEgg()
		default:
			return apperrors.InvalidArgument("Game Boy Pokémon", string(p.Game()))
		}
		species := rec[0]
		if egg {
			species = gbEggSpecies
		}
		out[l.species()+n] = species
		copy(out[l.record(n):], rec)
		copy(out[l.trainers()+n*gbNameSize:], trainer)
		copy(out[l.nicknames()+n*gbNameSize:], nickname)
		n++
	}
	out[l.offset] = byte(n)
	out[l.species()+n] = gbListEnd
	return nil
}

// gbItemStride is the size of one entry in a Game Boy item list.
func gbItemStride(l *items.List) int {
	if l.Kind() == items.Singles {
		return 1
	}
	return 2
}

// decodeGBItems reads a count-prefixed item list into l.
func decodeGBItems(s *Save, data []byte, off int, l *items.List) error {
	if l.Kind() == items.Fixed {
		for i, slot := range l.Slots() {
			if err := l.Set(i, slot.Item, int(data[off+i])); err != nil {
				return apperrors.Wrap(apperrors.CodeInvalidFormat, "decode "+l.Name(), err)
			}
		}
		return nil
	}
	count := int(data[off])
	if count > l.Len() {
		return apperrors.WithMetadata(apperrors.CodeInvalidFormat, "item list count exceeds capacity",
			map[string]string{"List": l.Name(), "Count": strconv.Itoa(count)})
	}
	stride := gbItemStride(l)
	for i := 0; i < count; i++ {
		entry := off + 1 + i*stride
		it, err := s.cat.ItemByIndex(s.game, int(data[entry]))
		if err != nil {
			return apperrors.Wrap(apperrors.CodeInvalidFormat, "decode "+l.Name(), err)
		}
		amount := 1
		if stride == 2 {
			amount = int(data[entry+1])
		}
		if err := l.Set(i, it.Name, amount); err != nil {
			return apperrors.Wrap(apperrors.CodeInvalidFormat, "decode "+l.Name(), err)
		}
	}
	return nil
}

func encodeGBItems(s *Save, out []byte, off int, l *items.List) error {
	slots := l.Slots()
	if l.Kind() == items.Fixed {
		for i, slot := range slots {
			out[off+i] = byte(slot.Amount)
		}
		return nil
	}
	stride := gbItemStride(l)
	n := l.NumItems()
	out[off] = byte(n)
	for i := 0; i < n; i++ {
		idx, err := itemIndex(s, slots[i].Item)
		if err != nil {
			return err
		}
		entry := off + 1 + i*stride
		out[entry] = byte(idx)
		if stride == 2 {
			out[entry+1] = byte(slots[i].Amount)
		}
	}
	out[off+1+n*stride] = gbListEnd
	return nil
}

func itemIndex(s *Save, name string) (int, error) {
	it, err := s.cat.Item(name)
	if err != nil {
		return 0, err
	}
	return s.cat.ItemIndex(s.game, it)
}

// gen1Checksum is the complement of the byte sum.
func gen1Checksum(b []byte) byte {
	var sum byte
	for _, x := range b {
		sum += x
	}
	return ^sum
}

// gen2Checksum is the 16-bit byte sum.
func gen2Checksum(b []byte) uint16 {
	var sum uint16
	for _, x := range b {
		sum += uint16(x)
	}
	return sum
}
