package calc

import (
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// Damage applies the standard damage formula. Each step floors before the
// next, and modifier (type, STAB, random and other multipliers combined) is
// applied last.
func Damage(level, power, attack, defense int, modifier float64) (int, error) {
	switch {
	case level < 1 || level > maxGlitchLvl:
		return 0, apperrors.OutOfRange("attacker level", 1, maxGlitchLvl)
	case power < 0:
		return 0, apperrors.OutOfRange("move power", 0, 1<<16-1)
	case attack < 0:
		return 0, apperrors.OutOfRange("attack stat", 0, 1<<16-1)
	case defense < 1:
		return 0, apperrors.OutOfRange("defense stat", 1, 1<<16-1)
	case modifier < 0:
		return 0, apperrors.InvalidArgument("modifier", formatFloat(modifier))
	}
	base := (2*level/5+2)*power*attack/defense/50 + 2
	return int(float64(base) * modifier), nil
}

// Gen1CriticalHitChance returns the Generation I critical hit probability.
// Focus Energy and Dire Hit lower it because of the game's bug.
func Gen1CriticalHitChance(speed int, rateIncreased, highRateMove bool) (float64, error) {
	if speed < 1 || speed > 255 {
		return 0, apperrors.OutOfRange("speed", 1, 255)
	}
	threshold := speed / 2
	if rateIncreased {
		threshold /= 4
	}
	if highRateMove {
		threshold = min(255, threshold*8)
	}
	return float64(threshold) / 256, nil
}

// CriticalHitChance returns the probability at a critical hit stage for
// Generations II-VI.
func CriticalHitChance(generation, stage int) (float64, error) {
	if generation < 2 || generation > 6 {
		return 0, apperrors.OutOfRange("generation", 2, 6)
	}
	if stage < 0 {
		return 0, apperrors.OutOfRange("critical hit stage", 0, 4)
	}
	early := generation < 6
	switch stage {
	case 0:
		return 0.0625, nil
	case 1:
		return 0.125, nil
	case 2:
		if early {
			return 0.25, nil
		}
		return 0.5, nil
	case 3:
		if early {
			return 1.0 / 3, nil
		}
		return 1, nil
	}
	if early {
		return 0.5, nil
	}
	return 1, nil
}

// Gen1CriticalHitModifier returns the Generation I critical damage
// multiplier, which depends on the attacker's level.
func Gen1CriticalHitModifier(level int) (float64, error) {
	if level < 1 || level > maxGlitchLvl {
		return 0, apperrors.OutOfRange("attacker level", 1, maxGlitchLvl)
	}
	return float64(2*level+5) / float64(level+5), nil
}

// CriticalHitModifier returns the critical damage multiplier for
// Generations II-VI.
func CriticalHitModifier(generation int) (float64, error) {
	if generation < 2 || generation > 6 {
		return 0, apperrors.OutOfRange("generation", 2, 6)
	}
	if generation >= 6 {
		return 1.5, nil
	}
	return 2, nil
}
