package calc

import (
	"strconv"

	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

func checkHP(field string, current, max int) error {
	if max < 1 {
		return apperrors.OutOfRange(field+" max HP", 1, 1<<16-1)
	}
	if current < 0 || current > max {
		return apperrors.OutOfRange(field+" current HP", 0, max)
	}
	return nil
}

func checkSpeed(field string, speed int) error {
	if speed < 1 {
		return apperrors.OutOfRange(field, 1, 1<<16-1)
	}
	return nil
}

func checkWeight(field string, kg float64) error {
	if kg <= 0 {
		return apperrors.InvalidArgument(field, formatFloat(kg))
	}
	return nil
}

// BrinePower doubles when the target is at or below half HP.
func BrinePower(targetHP, targetMaxHP int) (int, error) {
	if err := checkHP("target", targetHP, targetMaxHP); err != nil {
		return 0, err
	}
	if targetHP*2 <= targetMaxHP {
		return 130, nil
	}
	return 65, nil
}

// CrushGripPower scales with the target's remaining HP. It exists from
// Generation IV.
func CrushGripPower(targetHP, targetMaxHP, generation int) (int, error) {
	if err := checkHP("target", targetHP, targetMaxHP); err != nil {
		return 0, err
	}
	if generation < 4 {
		return 0, apperrors.Unsupported("Crush Grip", "Generation "+strconv.Itoa(generation))
	}
	p := 120 * targetHP / targetMaxHP
	if generation == 4 {
		return p + 1, nil
	}
	return max(1, p), nil
}

// WringOutPower shares Crush Grip's formula.
func WringOutPower(targetHP, targetMaxHP, generation int) (int, error) {
	return CrushGripPower(targetHP, targetMaxHP, generation)
}

// EchoedVoicePowers lists the power on consecutive turns.
func EchoedVoicePowers() []int { return []int{40, 80, 120, 160, 200} }

// ElectroBallPower tiers on the target's speed relative to the attacker's.
func ElectroBallPower(attackerSpeed, targetSpeed int) (int, error) {
	if err := checkSpeed("attacker speed", attackerSpeed); err != nil {
		return 0, err
	}
	if err := checkSpeed("target speed", targetSpeed); err != nil {
		return 0, err
	}
	a, t := attackerSpeed, targetSpeed
	switch {
	case 4*t < a:
		return 150, nil
	case 3*t < a:
		return 120, nil
	case 2*t <= a:
		return 80, nil
	case t <= a:
		return 60, nil
	}
	return 40, nil
}

// EruptionPower scales with the attacker's remaining HP.
func EruptionPower(attackerHP, attackerMaxHP int) (int, error) {
	if err := checkHP("attacker", attackerHP, attackerMaxHP); err != nil {
		return 0, err
	}
	return max(1, 150*attackerHP/attackerMaxHP), nil
}

// WaterSpoutPower shares Eruption's formula.
func WaterSpoutPower(attackerHP, attackerMaxHP int) (int, error) {
	return EruptionPower(attackerHP, attackerMaxHP)
}

// FlailPower grows as the attacker's HP drops.
func FlailPower(attackerHP, attackerMaxHP int) (int, error) {
	if err := checkHP("attacker", attackerHP, attackerMaxHP); err != nil {
		return 0, err
	}
	n := 48 * attackerHP / attackerMaxHP
	switch {
	case n <= 1:
		return 200, nil
	case n <= 4:
		return 150, nil
	case n <= 9:
		return 100, nil
	case n <= 16:
		return 80, nil
	case n <= 32:
		return 40, nil
	}
	return 20, nil
}

// ReversalPower shares Flail's formula.
func ReversalPower(attackerHP, attackerMaxHP int) (int, error) {
	return FlailPower(attackerHP, attackerMaxHP)
}

// FlingPowers resolves the Fling power of a held item.
type FlingPowers interface {
	FlingPower(item string) (int, error)
}

// FlingPower returns the power of Fling with item held. Items that cannot be
// flung fail with INVALID_ARGUMENT.
func FlingPower(items FlingPowers, item string) (int, error) {
	p, err := items.FlingPower(item)
	if err != nil {
		return 0, err
	}
	if p <= 0 {
		return 0, apperrors.InvalidArgument("Fling item", item)
	}
	return p, nil
}

func checkFriendship(f int) error {
	if f < 0 || f > 255 {
		return apperrors.OutOfRange("Friendship", 0, 255)
	}
	return nil
}

// FrustrationPower is stronger the lower the friendship.
func FrustrationPower(friendship int) (int, error) {
	if err := checkFriendship(friendship); err != nil {
		return 0, err
	}
	return max(1, (255-friendship)*2/5), nil
}

// ReturnPower is stronger the higher the friendship.
func ReturnPower(friendship int) (int, error) {
	if err := checkFriendship(friendship); err != nil {
		return 0, err
	}
	return max(1, friendship*2/5), nil
}

// FuryCutterPowers lists the power on consecutive hits in a generation.
func FuryCutterPowers(generation int) ([]int, error) {
	switch {
	case generation < 1 || generation > 6:
		return nil, apperrors.OutOfRange("generation", 1, 6)
	case generation == 1:
		return nil, apperrors.Unsupported("Fury Cutter", "Generation 1")
	case generation <= 4:
		return []int{10, 20, 40, 80, 160}, nil
	case generation == 5:
		return []int{20, 40, 80, 160}, nil
	}
	return []int{40, 80, 160}, nil
}

// GrassKnotPower tiers on the target's weight in kilograms.
func GrassKnotPower(targetWeight float64) (int, error) {
	if err := checkWeight("target weight", targetWeight); err != nil {
		return 0, err
	}
	return weightTier(targetWeight), nil
}

func weightTier(kg float64) int {
	switch {
	case kg < 10:
		return 20
	case kg < 25:
		return 40
	case kg < 50:
		return 60
	case kg < 100:
		return 80
	case kg < 200:
		return 100
	}
	return 120
}

// LowKickPower is fixed at 50 before Generation III and tiers on weight after.
func LowKickPower(targetWeight float64, generation int) (int, error) {
	if generation < 1 || generation > 6 {
		return 0, apperrors.OutOfRange("generation", 1, 6)
	}
	if err := checkWeight("target weight", targetWeight); err != nil {
		return 0, err
	}
	if generation < 3 {
		return 50, nil
	}
	return weightTier(targetWeight), nil
}

// GyroBallPower grows with the target's speed relative to the attacker's,
// capped at 150.
func GyroBallPower(attackerSpeed, targetSpeed int) (int, error) {
	if err := checkSpeed("attacker speed", attackerSpeed); err != nil {
		return 0, err
	}
	if err := checkSpeed("target speed", targetSpeed); err != nil {
		return 0, err
	}
	return min(150, 25*targetSpeed/attackerSpeed), nil
}

// HeatCrashPower tiers on how many times heavier the attacker is.
func HeatCrashPower(attackerWeight, targetWeight float64) (int, error) {
	if err := checkWeight("attacker weight", attackerWeight); err != nil {
		return 0, err
	}
	if err := checkWeight("target weight", targetWeight); err != nil {
		return 0, err
	}
	switch {
	case attackerWeight >= 5*targetWeight:
		return 120, nil
	case attackerWeight >= 4*targetWeight:
		return 100, nil
	case attackerWeight >= 3*targetWeight:
		return 80, nil
	case attackerWeight >= 2*targetWeight:
		return 60, nil
	}
	return 40, nil
}

// HeavySlamPower shares Heat Crash's formula.
func HeavySlamPower(attackerWeight, targetWeight float64) (int, error) {
	return HeatCrashPower(attackerWeight, targetWeight)
}

// IceBallPowers lists the power on consecutive turns.
func IceBallPowers() []int { return []int{30, 60, 120, 240, 480} }

// RolloutPowers lists the power on consecutive turns.
func RolloutPowers() []int { return []int{30, 60, 120, 240, 480} }

// StatStages holds the positive stat stage boosts of a Pokémon, each 0-6.
type StatStages struct {
	Attack, Defense, SpecialAttack, SpecialDefense, Speed, Evasion, Accuracy int
}

func (s StatStages) total() (int, error) {
	sum := 0
	for _, v := range []int{s.Attack, s.Defense, s.SpecialAttack, s.SpecialDefense, s.Speed, s.Evasion, s.Accuracy} {
		if v < 0 || v > 6 {
			return 0, apperrors.OutOfRange("stat stage", 0, 6)
		}
		sum += v
	}
	return sum, nil
}

// PowerTripPower adds 20 per boosted stage of the attacker.
func PowerTripPower(stages StatStages) (int, error) {
	n, err := stages.total()
	if err != nil {
		return 0, err
	}
	return 20 + 20*n, nil
}

// StoredPowerPower shares Power Trip's formula.
func StoredPowerPower(stages StatStages) (int, error) {
	return PowerTripPower(stages)
}

// PunishmentPower adds 20 per boosted stage of the target, capped at 200.
func PunishmentPower(stages StatStages) (int, error) {
	n, err := stages.total()
	if err != nil {
		return 0, err
	}
	return min(200, 60+20*n), nil
}

// SpitUpPower is 100 per Stockpile used (0-3).
func SpitUpPower(stockpiled int) (int, error) {
	if stockpiled < 0 || stockpiled > 3 {
		return 0, apperrors.OutOfRange("stockpile", 0, 3)
	}
	return 100 * stockpiled, nil
}

var trumpCardPowers = []int{200, 80, 60, 50, 40}

// TrumpCardPower depends on the PP left after use (0-4).
func TrumpCardPower(ppRemaining int) (int, error) {
	if ppRemaining < 0 || ppRemaining >= len(trumpCardPowers) {
		return 0, apperrors.OutOfRange("PP remaining", 0, len(trumpCardPowers)-1)
	}
	return trumpCardPowers[ppRemaining], nil
}
