package calc

import (
	"math"
	"strconv"

	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// Gender of a Pokémon or trainer.
type Gender string

const (
	Male       Gender = "Male"
	Female     Gender = "Female"
	Genderless Gender = "Genderless"
)

// GenderRatio is the male/female split of a species.
type GenderRatio string

const (
	RatioGenderless GenderRatio = "Genderless"
	RatioAllMale    GenderRatio = "All Male"
	RatioMale7To1   GenderRatio = "7:1"
	RatioMale3To1   GenderRatio = "3:1"
	RatioEven       GenderRatio = "1:1"
	RatioFemale3To1 GenderRatio = "1:3"
	RatioAllFemale  GenderRatio = "All Female"
)

// genderThresholds holds, per ratio, the Generation II Attack IV and the
// Generation III+ personality low byte below which the Pokémon is female.
var genderThresholds = map[GenderRatio]struct{ gen2, modern int }{
	RatioMale7To1:   {2, 31},
	RatioMale3To1:   {4, 63},
	RatioEven:       {8, 127},
	RatioFemale3To1: {12, 191},
}

// ParseGenderRatio validates a ratio name.
func ParseGenderRatio(s string) (GenderRatio, error) {
	switch r := GenderRatio(s); r {
	case RatioGenderless, RatioAllMale, RatioAllFemale:
		return r, nil
	default:
		if _, ok := genderThresholds[r]; ok {
			return r, nil
		}
	}
	return "", apperrors.InvalidArgument("gender ratio", s)
}

func fixedGender(ratio GenderRatio) (Gender, bool, error) {
	switch ratio {
	case RatioGenderless:
		return Genderless, true, nil
	case RatioAllMale:
		return Male, true, nil
	case RatioAllFemale:
		return Female, true, nil
	}
	if _, ok := genderThresholds[ratio]; !ok {
		return "", false, apperrors.InvalidArgument("gender ratio", string(ratio))
	}
	return "", false, nil
}

// Gen2Gender derives a Generation II gender from the Attack IV.
func Gen2Gender(ratio GenderRatio, attackIV int) (Gender, error) {
	if attackIV < 0 || attackIV > MaxGBIV {
		return "", apperrors.OutOfRange("Attack IV", 0, MaxGBIV)
	}
	if g, fixed, err := fixedGender(ratio); err != nil || fixed {
		return g, err
	}
	if attackIV < genderThresholds[ratio].gen2 {
		return Female, nil
	}
	return Male, nil
}

// Gen2AttackIVForGender returns the Attack IV closest to current that yields
// gender. Fixed-gender species only accept their own gender.
func Gen2AttackIVForGender(ratio GenderRatio, gender Gender, current int) (int, error) {
	got, err := Gen2Gender(ratio, current)
	if err != nil {
		return 0, err
	}
	if got == gender {
		return current, nil
	}
	if _, fixed, _ := fixedGender(ratio); fixed {
		return 0, apperrors.InvalidArgument("gender", string(gender))
	}
	threshold := genderThresholds[ratio].gen2
	switch gender {
	case Female:
		return threshold - 1, nil
	case Male:
		return threshold, nil
	}
	return 0, apperrors.InvalidArgument("gender", string(gender))
}

// ModernGender derives a Generation III+ gender from the personality low byte.
func ModernGender(ratio GenderRatio, personality uint32) (Gender, error) {
	if g, fixed, err := fixedGender(ratio); err != nil || fixed {
		return g, err
	}
	if int(personality&0xFF) < genderThresholds[ratio].modern {
		return Female, nil
	}
	return Male, nil
}

// PersonalityForGender returns personality with its low byte moved just
// across the threshold so it yields gender. The rest of the word is kept.
func PersonalityForGender(ratio GenderRatio, gender Gender, personality uint32) (uint32, error) {
	got, err := ModernGender(ratio, personality)
	if err != nil {
		return 0, err
	}
	if got == gender {
		return personality, nil
	}
	if _, fixed, _ := fixedGender(ratio); fixed {
		return 0, apperrors.InvalidArgument("gender", string(gender))
	}
	threshold := uint32(genderThresholds[ratio].modern)
	switch gender {
	case Female:
		return personality&^0xFF | (threshold - 1), nil
	case Male:
		return personality&^0xFF | threshold, nil
	}
	return 0, apperrors.InvalidArgument("gender", string(gender))
}

func checkGBIVs(ivs ...int) error {
	for _, iv := range ivs {
		if iv < 0 || iv > MaxGBIV {
			return apperrors.OutOfRange("IV", 0, MaxGBIV)
		}
	}
	return nil
}

func checkModernIVs(ivs ...int) error {
	for _, iv := range ivs {
		if iv < 0 || iv > MaxModernIV {
			return apperrors.OutOfRange("IV", 0, MaxModernIV)
		}
	}
	return nil
}

// Gen2Shiny reports whether Generation II IVs make a Pokémon shiny: Defense,
// Speed and Special of 10 and an Attack IV with bit 1 set.
func Gen2Shiny(attack, defense, speed, special int) (bool, error) {
	if err := checkGBIVs(attack, defense, speed, special); err != nil {
		return false, err
	}
	return defense == 10 && speed == 10 && special == 10 && attack&0x2 != 0, nil
}

// ModernShiny reports whether personality is shiny for the combined 32-bit
// trainer ID (secret ID in the high half).
func ModernShiny(personality, trainerID uint32) bool {
	return shinyValue(personality, trainerID) < 8
}

func shinyValue(personality, trainerID uint32) uint32 {
	return (trainerID >> 16) ^ (trainerID & 0xFFFF) ^ (personality >> 16) ^ (personality & 0xFFFF)
}

// PersonalityForShininess returns a personality near personality that is
// shiny (or not) for trainerID. The nature is always kept. keep vets any
// other trait the caller needs preserved; a nil keep preserves the low byte,
// which holds the gender. Candidates change the high half first, then the
// second byte, then the low byte.
func PersonalityForShininess(personality, trainerID uint32, shiny bool, keep func(uint32) bool) (uint32, error) {
	if ModernShiny(personality, trainerID) == shiny {
		return personality, nil
	}
	if keep == nil {
		keep = func(pid uint32) bool { return pid&0xFF == personality&0xFF }
	}
	ok := func(pid uint32) bool {
		return ModernShiny(pid, trainerID) == shiny && pid%25 == personality%25 && keep(pid)
	}
	tid := trainerID>>16 ^ trainerID&0xFFFF
	high := personality >> 16
	for d := uint32(0); d <= 0xFFFF; d++ {
		low := personality&0xFFFF ^ (d&0xFF<<8 | d>>8)
		if shiny {
			for x := uint32(0); x < 8; x++ {
				h := (low^tid)&^0x7 | (high^x)&0x7
				if pid := h<<16 | low; ok(pid) {
					return pid, nil
				}
			}
			continue
		}
		for y := uint32(0); y <= 0x1FFF; y++ {
			if pid := (high^y<<3)<<16 | low; ok(pid) {
				return pid, nil
			}
		}
	}
	return 0, apperrors.InvalidArgument("shiny", strconv.FormatBool(shiny))
}

// Gen2UnownForm returns the Unown letter encoded in Generation II IVs.
func Gen2UnownForm(attack, defense, speed, special int) (string, error) {
	if err := checkGBIVs(attack, defense, speed, special); err != nil {
		return "", err
	}
	v := (attack&0x6)<<5 | (defense&0x6)<<3 | (speed&0x6)<<1 | (special&0x6)>>1
	return string(rune('A' + v/10)), nil
}

// Gen3UnownForm returns the Unown form encoded in a personality value.
func Gen3UnownForm(personality uint32) string {
	b := func(i uint) uint32 { return (personality >> (8 * i)) & 0x3 }
	v := (b(3)<<6 | b(2)<<4 | b(1)<<2 | b(0)) % 28
	switch v {
	case 26:
		return "!"
	case 27:
		return "?"
	}
	return string(rune('A' + v))
}

// WurmpleBecomesSilcoon reports whether a Wurmple with this personality
// evolves into Silcoon (otherwise Cascoon).
func WurmpleBecomesSilcoon(personality uint32, beforeGen5 bool) bool {
	if beforeGen5 {
		return (personality&0xFFFF)%10 < 5
	}
	return personality%10 < 5
}

// Natures in index order.
var Natures = []string{
	"Hardy", "Lonely", "Brave", "Adamant", "Naughty",
	"Bold", "Docile", "Relaxed", "Impish", "Lax",
	"Timid", "Hasty", "Serious", "Jolly", "Naive",
	"Modest", "Mild", "Quiet", "Bashful", "Rash",
	"Calm", "Gentle", "Sassy", "Careful", "Quirky",
}

var natureStats = []Stat{Attack, Defense, Speed, SpecialAttack, SpecialDefense}

// Nature returns the nature encoded in a Generation III-V personality.
func Nature(personality uint32) string {
	return Natures[personality%25]
}

// NatureIndex returns the index of a nature name.
func NatureIndex(nature string) (int, error) {
	for i, n := range Natures {
		if n == nature {
			return i, nil
		}
	}
	return 0, apperrors.InvalidArgument("nature", nature)
}

// PersonalityForNature returns the value closest above personality whose
// nature is nature and whose low byte is unchanged, wrapping within 32 bits.
// Steps of 256 keep the gender byte; 256 is 6 mod 25 and 21 is its inverse.
func PersonalityForNature(nature string, personality uint32) (uint32, error) {
	idx, err := NatureIndex(nature)
	if err != nil {
		return 0, err
	}
	delta := (uint32(idx) + 25 - personality%25) % 25
	step := 256 * (delta * 21 % 25)
	if personality > ^uint32(0)-step {
		return personality - (256*25 - step), nil
	}
	return personality + step, nil
}

// NatureModifier returns the multiplier nature applies to stat: 1.1 for the
// raised stat, 0.9 for the lowered one, 1.0 otherwise. HP is never affected.
func NatureModifier(nature string, stat Stat) (float64, error) {
	idx, err := NatureIndex(nature)
	if err != nil {
		return 0, err
	}
	if !isModernStat(stat) {
		return 0, apperrors.InvalidArgument("stat", string(stat))
	}
	up, down := natureStats[idx/5], natureStats[idx%5]
	switch {
	case up == down:
		return 1.0, nil
	case stat == up:
		return 1.1, nil
	case stat == down:
		return 0.9, nil
	}
	return 1.0, nil
}

// SpindaCoords is the position of one Spinda spot.
type SpindaCoords struct {
	X, Y int
}

// Add returns the coordinate-wise sum of c and o.
func (c SpindaCoords) Add(o SpindaCoords) SpindaCoords {
	return SpindaCoords{c.X + o.X, c.Y + o.Y}
}

// SpindaSpots holds the four spot positions of a Spinda.
type SpindaSpots struct {
	LeftEar, RightEar, LeftFace, RightFace SpindaCoords
}

// Add sums s and o spot by spot.
func (s SpindaSpots) Add(o SpindaSpots) SpindaSpots {
	return SpindaSpots{
		LeftEar:   s.LeftEar.Add(o.LeftEar),
		RightEar:  s.RightEar.Add(o.RightEar),
		LeftFace:  s.LeftFace.Add(o.LeftFace),
		RightFace: s.RightFace.Add(o.RightFace),
	}
}

// Offset moves every spot by c.
func (s SpindaSpots) Offset(c SpindaCoords) SpindaSpots {
	return s.Add(SpindaSpots{c, c, c, c})
}

// SpindaSpotOffset returns the spot offsets encoded in a personality. Each
// byte, lowest first, places one spot: low nibble X, high nibble Y.
func SpindaSpotOffset(personality uint32) SpindaSpots {
	spot := func(i uint) SpindaCoords {
		b := int(personality >> (8 * i) & 0xFF)
		return SpindaCoords{b & 0x0F, b >> 4}
	}
	return SpindaSpots{spot(0), spot(1), spot(2), spot(3)}
}

// sizeBuckets maps the upper bound of each size roll bucket to its base,
// divisor and offset.
var sizeBuckets = []struct{ max, x, y, z int }{
	{9, 290, 1, 0},
	{109, 300, 1, 10},
	{309, 400, 2, 110},
	{709, 500, 4, 310},
	{2709, 600, 20, 710},
	{7709, 700, 50, 2710},
	{17709, 800, 100, 7710},
	{32709, 900, 150, 17710},
	{47709, 1000, 100, 47710},
	{57709, 1100, 100, 47710},
	{62709, 1200, 50, 57710},
	{64709, 1300, 20, 62710},
	{65209, 1400, 5, 64710},
	{65409, 1500, 2, 65210},
	{65535, 1700, 1, 65510},
}

// Gen3Size returns the height in meters, rounded to 0.2, that Generation III
// games record for a Pokémon whose species is heightDM decimeters tall.
func Gen3Size(heightDM int, personality uint32, hp, attack, defense, speed, spAtk, spDef int) (float64, error) {
	if heightDM <= 0 {
		return 0, apperrors.InvalidArgument("height", strconv.Itoa(heightDM))
	}
	if err := checkModernIVs(hp, attack, defense, speed, spAtk, spDef); err != nil {
		return 0, err
	}
	p1, p2 := int(personality&0xFF), int(personality>>8&0xFF)
	hp, attack, defense, speed, spAtk, spDef = hp%16, attack%16, defense%16, speed%16, spAtk%16, spDef%16
	roll := ((attack^defense)*hp^p1)*256 + ((spAtk^spDef)*speed ^ p2)

	b := sizeBuckets[len(sizeBuckets)-1]
	for _, bucket := range sizeBuckets {
		if roll <= bucket.max {
			b = bucket
			break
		}
	}
	mm := ((b.max-b.z)/b.y + b.x) * heightDM / 10
	return math.Floor(float64(mm)/1000*5+0.5) / 5, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
