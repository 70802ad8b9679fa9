package codec

import (
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// ModernIV identifies one IV of the Generation III+ IV word, in storage order.
type ModernIV uint

const (
	ModernHP ModernIV = iota
	ModernAttack
	ModernDefense
	ModernSpeed
	ModernSpecialAttack
	ModernSpecialDefense
)

// MaxModernIV is the largest Generation III+ IV.
const MaxModernIV = 31

const (
	ivEggFlag     Flag = 30
	ivAbilityFlag Flag = 31
)

// ModernIVs is the 32-bit IV/egg/ability word: six 5-bit IVs from bit 0,
// then the egg flag and the ability slot flag.
type ModernIVs uint32

func (iv ModernIV) field() Field {
	return Field{Name: "IV", Shift: uint(iv) * 5, Width: 5}
}

// Get returns one IV.
func (w ModernIVs) Get(iv ModernIV) int {
	return int(iv.field().Get(uint32(w)))
}

// Set returns the word with one IV replaced.
func (w ModernIVs) Set(iv ModernIV, v int) (ModernIVs, error) {
	if v < 0 || v > MaxModernIV {
		return w, apperrors.OutOfRange("IV", 0, MaxModernIV)
	}
	out, err := iv.field().Set(uint32(w), uint32(v))
	return ModernIVs(out), err
}

// IsEgg reports the egg flag.
func (w ModernIVs) IsEgg() bool { return ivEggFlag.Get(uint32(w)) }

// WithEgg sets the egg flag.
func (w ModernIVs) WithEgg(on bool) ModernIVs { return ModernIVs(ivEggFlag.Set(uint32(w), on)) }

// AbilitySlot returns 0 or 1.
func (w ModernIVs) AbilitySlot() int {
	if ivAbilityFlag.Get(uint32(w)) {
		return 1
	}
	return 0
}

// WithAbilitySlot selects the first (0) or second (1) species ability.
func (w ModernIVs) WithAbilitySlot(slot int) (ModernIVs, error) {
	if slot != 0 && slot != 1 {
		return w, apperrors.OutOfRange("ability slot", 0, 1)
	}
	return ModernIVs(ivAbilityFlag.Set(uint32(w), slot == 1)), nil
}
