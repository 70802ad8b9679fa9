package calc

import (
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// GrowthRate is a species experience curve.
type GrowthRate string

const (
	Erratic     GrowthRate = "Erratic"
	Fast        GrowthRate = "Fast"
	MediumFast  GrowthRate = "Medium Fast"
	MediumSlow  GrowthRate = "Medium Slow"
	Slow        GrowthRate = "Slow"
	Fluctuating GrowthRate = "Fluctuating"
)

// ParseGrowthRate validates a growth rate name.
func ParseGrowthRate(s string) (GrowthRate, error) {
	switch r := GrowthRate(s); r {
	case Erratic, Fast, MediumFast, MediumSlow, Slow, Fluctuating:
		return r, nil
	}
	return "", apperrors.InvalidArgument("growth rate", s)
}

// ExperienceAt returns the total experience needed to reach level.
func ExperienceAt(rate GrowthRate, level int) (int, error) {
	if err := validLevel(level); err != nil {
		return 0, err
	}
	if level == 1 {
		return 0, nil
	}
	n := level
	cube := n * n * n
	switch rate {
	case Fast:
		return 4 * cube / 5, nil
	case MediumFast:
		return cube, nil
	case MediumSlow:
		return 6*cube/5 - 15*n*n + 100*n - 140, nil
	case Slow:
		return 5 * cube / 4, nil
	case Erratic:
		switch {
		case n < 50:
			return cube * (100 - n) / 50, nil
		case n < 68:
			return cube * (150 - n) / 100, nil
		case n < 98:
			return cube * ((1911 - 10*n) / 3) / 500, nil
		default:
			return cube * (160 - n) / 100, nil
		}
	case Fluctuating:
		switch {
		case n < 15:
			return cube * ((n+1)/3 + 24) / 50, nil
		case n < 36:
			return cube * (n + 14) / 50, nil
		default:
			return cube * (n/2 + 32) / 50, nil
		}
	}
	return 0, apperrors.InvalidArgument("growth rate", string(rate))
}

// LevelAt returns the level a Pokémon with exp experience is at.
func LevelAt(rate GrowthRate, exp int) (int, error) {
	maxExp, err := ExperienceAt(rate, MaxLevel)
	if err != nil {
		return 0, err
	}
	if exp < 0 || exp > maxExp {
		return 0, apperrors.OutOfRange("Experience", 0, maxExp)
	}
	level := MinLevel
	for level < MaxLevel {
		next, _ := ExperienceAt(rate, level+1)
		if exp < next {
			break
		}
		level++
	}
	return level, nil
}
