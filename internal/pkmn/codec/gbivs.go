package codec

import (
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// GBIV identifies one IV of the Game Boy IV word.
type GBIV int

const (
	GBAttack GBIV = iota
	GBDefense
	GBSpeed
	GBSpecial
	GBHP
)

// MaxGBIV is the largest Game Boy IV.
const MaxGBIV = 15

var gbIVShift = [...]uint{GBAttack: 12, GBDefense: 8, GBSpeed: 4, GBSpecial: 0}

// GBIVs is the 16-bit IV word of Generations I and II, stored big-endian as
// Attack|Defense|Speed|Special nibbles. The HP IV is not stored: it is
// assembled from the low bit of the other four.
type GBIVs uint16

// Get returns one IV.
func (w GBIVs) Get(iv GBIV) int {
	if iv == GBHP {
		return int(w.Get(GBAttack)&1)<<3 |
			int(w.Get(GBDefense)&1)<<2 |
			int(w.Get(GBSpeed)&1)<<1 |
			int(w.Get(GBSpecial)&1)
	}
	return int(w>>gbIVShift[iv]) & 0xF
}

// Set returns the word with one IV replaced. Setting HP rewrites the low bit
// of each of the four stored IVs and nothing else.
func (w GBIVs) Set(iv GBIV, v int) (GBIVs, error) {
	if v < 0 || v > MaxGBIV {
		return w, apperrors.OutOfRange("IV", 0, MaxGBIV)
	}
	if iv == GBHP {
		out := w
		for i, stored := range []GBIV{GBAttack, GBDefense, GBSpeed, GBSpecial} {
			bit := GBIVs((v >> (3 - i)) & 1)
			out = out&^(1<<gbIVShift[stored]) | bit<<gbIVShift[stored]
		}
		return out, nil
	}
	shift := gbIVShift[iv]
	return w&^(0xF<<shift) | GBIVs(v)<<shift, nil
}

// NewGBIVs packs four stored IVs.
func NewGBIVs(attack, defense, speed, special int) (GBIVs, error) {
	var w GBIVs
	var err error
	for _, p := range []struct {
		iv GBIV
		v  int
	}{{GBAttack, attack}, {GBDefense, defense}, {GBSpeed, speed}, {GBSpecial, special}} {
		if w, err = w.Set(p.iv, p.v); err != nil {
			return 0, err
		}
	}
	return w, nil
}
