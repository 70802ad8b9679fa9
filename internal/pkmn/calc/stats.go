package calc

import (
	"math"

	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// Stat names a battle stat.
type Stat string

const (
	HP             Stat = "HP"
	Attack         Stat = "Attack"
	Defense        Stat = "Defense"
	Speed          Stat = "Speed"
	Special        Stat = "Special"
	SpecialAttack  Stat = "Special Attack"
	SpecialDefense Stat = "Special Defense"
)

// Limits of the stat inputs.
const (
	MaxGBEV      = 65535
	MaxGBIV      = 15
	MaxModernEV  = 255
	MaxModernIV  = 31
	MaxEVTotal   = 510
	MinLevel     = 1
	MaxLevel     = 100
	maxGlitchLvl = 255
)

// GBStats lists the stats of a Generation I Pokémon.
var GBStats = []Stat{HP, Attack, Defense, Speed, Special}

// Gen2Stats lists the stats of a Generation II Pokémon. Both special stats
// share the Generation I Special IV and EV.
var Gen2Stats = []Stat{HP, Attack, Defense, Speed, SpecialAttack, SpecialDefense}

// ModernStats lists the stats of a Generation III+ Pokémon.
var ModernStats = []Stat{HP, Attack, Defense, Speed, SpecialAttack, SpecialDefense}

func validLevel(level int) error {
	if level < MinLevel || level > MaxLevel {
		return apperrors.OutOfRange("Level", MinLevel, MaxLevel)
	}
	return nil
}

func isGBStat(s Stat) bool {
	switch s {
	case HP, Attack, Defense, Speed, Special, SpecialAttack, SpecialDefense:
		return true
	}
	return false
}

func isModernStat(s Stat) bool {
	return s != Special && isGBStat(s)
}

// GBStat computes a Generation I/II stat. Published tables can differ by one
// from this formula because of where they round.
func GBStat(stat Stat, level, base, ev, iv int) (int, error) {
	if !isGBStat(stat) {
		return 0, apperrors.InvalidArgument("stat", string(stat))
	}
	if err := validLevel(level); err != nil {
		return 0, err
	}
	if ev < 0 || ev > MaxGBEV {
		return 0, apperrors.OutOfRange("EV", 0, MaxGBEV)
	}
	if iv < 0 || iv > MaxGBIV {
		return 0, apperrors.OutOfRange("IV", 0, MaxGBIV)
	}
	evBonus := int(math.Sqrt(float64(ev))) / 4
	v := ((base+iv)*2 + evBonus) * level / 100
	if stat == HP {
		return v + level + 10, nil
	}
	return v + 5, nil
}

// ModernStat computes a Generation III+ stat. natureModifier must be 0.9, 1.0
// or 1.1; it does not apply to HP.
func ModernStat(stat Stat, level int, natureModifier float64, base, ev, iv int) (int, error) {
	if !isModernStat(stat) {
		return 0, apperrors.InvalidArgument("stat", string(stat))
	}
	tenths, ok := natureTenths(natureModifier)
	if !ok {
		return 0, apperrors.InvalidArgument("nature modifier", formatFloat(natureModifier))
	}
	if err := validLevel(level); err != nil {
		return 0, err
	}
	if ev < 0 || ev > MaxModernEV {
		return 0, apperrors.OutOfRange("EV", 0, MaxModernEV)
	}
	if iv < 0 || iv > MaxModernIV {
		return 0, apperrors.OutOfRange("IV", 0, MaxModernIV)
	}
	v := (2*base + iv + ev/4) * level / 100
	if stat == HP {
		return v + level + 10, nil
	}
	return (v + 5) * tenths / 10, nil
}

func natureTenths(m float64) (int, bool) {
	for _, tenths := range []int{9, 10, 11} {
		if math.Abs(m-float64(tenths)/10) < 1e-4 {
			return tenths, true
		}
	}
	return 0, false
}
