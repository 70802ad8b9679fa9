package codec

import (
	"strings"

	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// Charset is an in-game single-byte character table.
type Charset struct {
	name       string
	terminator byte
	decode     map[byte]rune
	encode     map[rune]byte
}

func newCharset(name string, terminator byte, table map[byte]rune) *Charset {
	cs := &Charset{name: name, terminator: terminator, decode: table, encode: make(map[rune]byte, len(table))}
	for b, r := range table {
		if existing, ok := cs.encode[r]; !ok || b < existing {
			cs.encode[r] = b
		}
	}
	return cs
}

// Terminator returns the end-of-string byte.
func (cs *Charset) Terminator() byte { return cs.terminator }

// Decode reads text up to the terminator or the end of b. Bytes with no
// mapping are skipped.
func (cs *Charset) Decode(b []byte) string {
	var sb strings.Builder
	for _, x := range b {
		if x == cs.terminator {
			break
		}
		if r, ok := cs.decode[x]; ok {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Encode writes s into dst, terminating it and filling the rest of dst with
// the terminator. s must have between 1 and maxLen characters.
func (cs *Charset) Encode(dst []byte, s string, maxLen int) error {
	runes := []rune(s)
	if len(runes) < 1 || len(runes) > maxLen {
		return apperrors.OutOfRange("text length", 1, maxLen)
	}
	if len(runes) > len(dst) {
		return apperrors.OutOfRange("text length", 1, len(dst))
	}
	encoded := make([]byte, len(runes))
	for i, r := range runes {
		b, ok := cs.encode[r]
		if !ok {
			return apperrors.InvalidArgument(cs.name+" character", string(r))
		}
		encoded[i] = b
	}
	n := copy(dst, encoded)
	for i := n; i < len(dst); i++ {
		dst[i] = cs.terminator
	}
	return nil
}

// GameBoy is the English character table of Generations I and II.
var GameBoy = newCharset("Game Boy", 0x50, gameBoyTable())

// GBA is the English character table of Generation III.
var GBA = newCharset("GBA", 0xFF, gbaTable())

func gameBoyTable() map[byte]rune {
	t := map[byte]rune{
		0x7F: ' ', 0x9A: '(', 0x9B: ')', 0x9C: ':', 0x9D: ';', 0x9E: '[', 0x9F: ']',
		0xBA: 'é', 0xE0: '\'', 0xE3: '-', 0xE6: '?', 0xE7: '!', 0xE8: '.',
		0xEF: '♂', 0xF1: '×', 0xF3: '/', 0xF4: ',', 0xF5: '♀',
	}
	for i := 0; i < 26; i++ {
		t[byte(0x80+i)] = rune('A' + i)
		t[byte(0xA0+i)] = rune('a' + i)
	}
	for i := 0; i < 10; i++ {
		t[byte(0xF6+i)] = rune('0' + i)
	}
	return t
}

func gbaTable() map[byte]rune {
	t := map[byte]rune{
		0x00: ' ', 0x1B: 'é', 0x5C: '(', 0x5D: ')',
		0xAB: '!', 0xAC: '?', 0xAD: '.', 0xAE: '-', 0xB0: '…',
		0xB1: '“', 0xB2: '”', 0xB3: '‘', 0xB4: '\'', 0xB5: '♂', 0xB6: '♀',
		0xB8: ',', 0xB9: '×', 0xBA: '/', 0xF0: ':',
	}
	for i := 0; i < 10; i++ {
		t[byte(0xA1+i)] = rune('0' + i)
	}
	for i := 0; i < 26; i++ {
		t[byte(0xBB+i)] = rune('A' + i)
		t[byte(0xD5+i)] = rune('a' + i)
	}
	return t
}
