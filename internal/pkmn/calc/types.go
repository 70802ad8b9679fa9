package calc

import (
	"strconv"

	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// NoType is the second type of a single-typed Pokémon.
const NoType = "None"

var baseTypes = []string{
	"Normal", "Fire", "Water", "Electric", "Grass", "Ice", "Fighting", "Poison",
	"Ground", "Flying", "Psychic", "Bug", "Rock", "Ghost", "Dragon",
}

// typeIntroduced is the first generation each type exists in. Shadow exists
// only in Colosseum and XD, which are Generation III.
var typeIntroduced = map[string]int{
	"Dark":   2,
	"Steel":  2,
	"Fairy":  6,
	"Shadow": 3,
}

type matchup map[string]float64

// gen2Chart lists every non-neutral matchup of Generations II-V.
var gen2Chart = map[string]matchup{
	"Normal":   {"Rock": 0.5, "Steel": 0.5, "Ghost": 0},
	"Fire":     {"Fire": 0.5, "Water": 0.5, "Grass": 2, "Ice": 2, "Bug": 2, "Rock": 0.5, "Dragon": 0.5, "Steel": 2},
	"Water":    {"Fire": 2, "Water": 0.5, "Grass": 0.5, "Ground": 2, "Rock": 2, "Dragon": 0.5},
	"Electric": {"Water": 2, "Electric": 0.5, "Grass": 0.5, "Ground": 0, "Flying": 2, "Dragon": 0.5},
	"Grass":    {"Fire": 0.5, "Water": 2, "Grass": 0.5, "Poison": 0.5, "Ground": 2, "Flying": 0.5, "Bug": 0.5, "Rock": 2, "Dragon": 0.5, "Steel": 0.5},
	"Ice":      {"Fire": 0.5, "Water": 0.5, "Grass": 2, "Ice": 0.5, "Ground": 2, "Flying": 2, "Dragon": 2, "Steel": 0.5},
	"Fighting": {"Normal": 2, "Ice": 2, "Poison": 0.5, "Flying": 0.5, "Psychic": 0.5, "Bug": 0.5, "Rock": 2, "Ghost": 0, "Dark": 2, "Steel": 2},
	"Poison":   {"Grass": 2, "Poison": 0.5, "Ground": 0.5, "Rock": 0.5, "Ghost": 0.5, "Steel": 0},
	"Ground":   {"Fire": 2, "Electric": 2, "Grass": 0.5, "Poison": 2, "Flying": 0, "Bug": 0.5, "Rock": 2, "Steel": 2},
	"Flying":   {"Electric": 0.5, "Grass": 2, "Fighting": 2, "Bug": 2, "Rock": 0.5, "Steel": 0.5},
	"Psychic":  {"Fighting": 2, "Poison": 2, "Psychic": 0.5, "Dark": 0, "Steel": 0.5},
	"Bug":      {"Fire": 0.5, "Grass": 2, "Fighting": 0.5, "Poison": 0.5, "Flying": 0.5, "Psychic": 2, "Ghost": 0.5, "Dark": 2, "Steel": 0.5},
	"Rock":     {"Fire": 2, "Ice": 2, "Fighting": 0.5, "Ground": 0.5, "Flying": 2, "Bug": 2, "Steel": 0.5},
	"Ghost":    {"Normal": 0, "Psychic": 2, "Ghost": 2, "Dark": 0.5, "Steel": 0.5},
	"Dragon":   {"Dragon": 2, "Steel": 0.5},
	"Dark":     {"Fighting": 0.5, "Psychic": 2, "Ghost": 2, "Dark": 0.5, "Steel": 0.5},
	"Steel":    {"Fire": 0.5, "Water": 0.5, "Electric": 0.5, "Ice": 2, "Rock": 2, "Steel": 0.5},
}

// gen1Overrides are the Generation I matchups that differ from gen2Chart.
var gen1Overrides = map[string]matchup{
	"Bug":    {"Poison": 2},
	"Poison": {"Bug": 2},
	"Ghost":  {"Psychic": 0},
	"Ice":    {"Fire": 1},
}

// gen6Overrides are the Generation VI matchups that differ from gen2Chart.
var gen6Overrides = map[string]matchup{
	"Ghost":    {"Steel": 1},
	"Dark":     {"Steel": 1, "Fairy": 0.5},
	"Fairy":    {"Fighting": 2, "Dragon": 2, "Dark": 2, "Fire": 0.5, "Poison": 0.5, "Steel": 0.5},
	"Fighting": {"Fairy": 0.5},
	"Bug":      {"Fairy": 0.5},
	"Dragon":   {"Fairy": 0},
	"Poison":   {"Fairy": 2},
	"Steel":    {"Fairy": 2},
}

func typeExists(generation int, t string) bool {
	first, special := typeIntroduced[t]
	if !special {
		for _, b := range baseTypes {
			if b == t {
				return true
			}
		}
		return false
	}
	if t == "Shadow" {
		return generation == 3
	}
	return generation >= first
}

// Types returns the types that exist in a generation.
func Types(generation int) ([]string, error) {
	if generation < 1 || generation > 6 {
		return nil, apperrors.OutOfRange("generation", 1, 6)
	}
	out := append([]string(nil), baseTypes...)
	for _, t := range []string{"Dark", "Steel", "Fairy", "Shadow"} {
		if typeExists(generation, t) {
			out = append(out, t)
		}
	}
	return out, nil
}

func lookup(generation int, attacking, defending string) float64 {
	if attacking == "Shadow" {
		if defending == "Shadow" {
			return 0.5
		}
		return 2
	}
	if defending == "Shadow" {
		return 1
	}
	var overrides map[string]matchup
	switch {
	case generation == 1:
		overrides = gen1Overrides
	case generation >= 6:
		overrides = gen6Overrides
	}
	if v, ok := overrides[attacking][defending]; ok {
		return v
	}
	if v, ok := gen2Chart[attacking][defending]; ok {
		return v
	}
	return 1
}

// TypeDamageModifier returns the effectiveness of an attacking type against
// one defending type in a generation.
func TypeDamageModifier(generation int, attacking, defending string) (float64, error) {
	return DualTypeDamageModifier(generation, attacking, defending, NoType)
}

// DualTypeDamageModifier multiplies the effectiveness against both defending
// types. defending2 may be NoType.
func DualTypeDamageModifier(generation int, attacking, defending1, defending2 string) (float64, error) {
	if generation < 1 || generation > 6 {
		return 0, apperrors.OutOfRange("generation", 1, 6)
	}
	gen := "Generation " + strconv.Itoa(generation)
	for _, t := range []string{attacking, defending1} {
		if !typeExists(generation, t) {
			return 0, apperrors.InvalidArgument(gen+" type", t)
		}
	}
	mod := lookup(generation, attacking, defending1)
	if defending2 == NoType || defending2 == "" {
		return mod, nil
	}
	if !typeExists(generation, defending2) {
		return 0, apperrors.InvalidArgument(gen+" type", defending2)
	}
	return mod * lookup(generation, attacking, defending2), nil
}
