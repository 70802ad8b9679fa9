package codec

import (
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

var (
	ppField    = Field{Name: "PP", Shift: 0, Width: 6}
	ppUpsField = Field{Name: "PP Ups", Shift: 6, Width: 2}
)

// PPByte is the Game Boy move PP byte: low 6 bits current PP, top 2 bits PP Ups.
type PPByte uint8

// PP returns the remaining PP.
func (b PPByte) PP() int { return int(ppField.Get(uint32(b))) }

// Ups returns the number of PP Ups applied.
func (b PPByte) Ups() int { return int(ppUpsField.Get(uint32(b))) }

// WithPP replaces the remaining PP.
func (b PPByte) WithPP(pp int) (PPByte, error) {
	if pp < 0 || uint32(pp) > ppField.Max() {
		return b, apperrors.OutOfRange("PP", 0, int(ppField.Max()))
	}
	v, err := ppField.Set(uint32(b), uint32(pp))
	return PPByte(v), err
}

// WithUps replaces the PP Up count.
func (b PPByte) WithUps(n int) (PPByte, error) {
	if n < 0 || uint32(n) > ppUpsField.Max() {
		return b, apperrors.OutOfRange("PP Ups", 0, int(ppUpsField.Max()))
	}
	v, err := ppUpsField.Set(uint32(b), uint32(n))
	return PPByte(v), err
}

// PPUpsFromBonuses reads the PP Ups of move slot i from the Generation III
// pp_bonuses byte (two bits per move).
func PPUpsFromBonuses(bonuses byte, i int) int {
	return int(bonuses>>(2*uint(i))) & 0x3
}

// MaxPP returns base PP raised by ups PP Ups (each adds a fifth of the base).
func MaxPP(base, ups int) int {
	return base + base*ups/5
}
