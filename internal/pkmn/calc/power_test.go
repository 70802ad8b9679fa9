package calc

import (
	"errors"
	"testing"

	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

type flingTable map[string]int

func (f flingTable) FlingPower(item string) (int, error) {
	p, ok := f[item]
	if !ok {
		return 0, apperrors.NotFound("item", item)
	}
	return p, nil
}

func TestMovePowers(t *testing.T) {
	tests := []struct {
		name string
		fn   func() (int, error)
		want int
	}{
		{"electro ball half speed", func() (int, error) { return ElectroBallPower(100, 50) }, 80},
		{"electro ball quarter speed", func() (int, error) { return ElectroBallPower(100, 25) }, 120},
		{"electro ball slower", func() (int, error) { return ElectroBallPower(100, 101) }, 40},
		{"electro ball equal", func() (int, error) { return ElectroBallPower(100, 100) }, 60},
		{"electro ball much faster", func() (int, error) { return ElectroBallPower(100, 20) }, 150},
		{"brine above half", func() (int, error) { return BrinePower(51, 100) }, 65},
		{"brine at half", func() (int, error) { return BrinePower(50, 100) }, 130},
		{"crush grip gen4", func() (int, error) { return CrushGripPower(100, 100, 4) }, 121},
		{"crush grip gen5 floor", func() (int, error) { return CrushGripPower(0, 100, 5) }, 1},
		{"wring out gen6", func() (int, error) { return WringOutPower(50, 100, 6) }, 60},
		{"eruption full", func() (int, error) { return EruptionPower(300, 300) }, 150},
		{"water spout empty", func() (int, error) { return WaterSpoutPower(0, 300) }, 1},
		{"flail critical", func() (int, error) { return FlailPower(1, 100) }, 200},
		{"flail high", func() (int, error) { return FlailPower(100, 100) }, 20},
		{"reversal mid", func() (int, error) { return ReversalPower(50, 100) }, 40},
		{"reversal low", func() (int, error) { return ReversalPower(30, 100) }, 80},
		{"frustration", func() (int, error) { return FrustrationPower(0) }, 102},
		{"frustration max friendship", func() (int, error) { return FrustrationPower(255) }, 1},
		{"return", func() (int, error) { return ReturnPower(255) }, 102},
		{"grass knot", func() (int, error) { return GrassKnotPower(24.9) }, 40},
		{"grass knot heavy", func() (int, error) { return GrassKnotPower(460) }, 120},
		{"low kick gen2", func() (int, error) { return LowKickPower(460, 2) }, 50},
		{"low kick gen3", func() (int, error) { return LowKickPower(55, 3) }, 80},
		{"gyro ball", func() (int, error) { return GyroBallPower(50, 100) }, 50},
		{"gyro ball cap", func() (int, error) { return GyroBallPower(1, 500) }, 150},
		{"heat crash 5x", func() (int, error) { return HeatCrashPower(500, 100) }, 120},
		{"heat crash 2x", func() (int, error) { return HeatCrashPower(200, 100) }, 60},
		{"heavy slam lighter", func() (int, error) { return HeavySlamPower(50, 100) }, 40},
		{"power trip", func() (int, error) { return PowerTripPower(StatStages{Attack: 2, Speed: 1}) }, 80},
		{"stored power", func() (int, error) { return StoredPowerPower(StatStages{}) }, 20},
		{"punishment cap", func() (int, error) { return PunishmentPower(StatStages{Attack: 6, Defense: 6}) }, 200},
		{"spit up", func() (int, error) { return SpitUpPower(3) }, 300},
		{"trump card", func() (int, error) { return TrumpCardPower(0) }, 200},
		{"fling", func() (int, error) { return FlingPower(flingTable{"Iron Ball": 130}, "Iron Ball") }, 130},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestMovePowerErrors(t *testing.T) {
	tests := []struct {
		name string
		fn   func() (int, error)
		code apperrors.Code
	}{
		{"brine hp above max", func() (int, error) { return BrinePower(101, 100) }, apperrors.CodeOutOfRange},
		{"crush grip gen3", func() (int, error) { return CrushGripPower(1, 1, 3) }, apperrors.CodeUnsupported},
		{"electro ball zero speed", func() (int, error) { return ElectroBallPower(100, 0) }, apperrors.CodeOutOfRange},
		{"flail negative hp", func() (int, error) { return FlailPower(-1, 100) }, apperrors.CodeOutOfRange},
		{"return friendship", func() (int, error) { return ReturnPower(256) }, apperrors.CodeOutOfRange},
		{"grass knot weight", func() (int, error) { return GrassKnotPower(-1) }, apperrors.CodeInvalidArgument},
		{"power trip stage", func() (int, error) { return PowerTripPower(StatStages{Accuracy: 7}) }, apperrors.CodeOutOfRange},
		{"spit up", func() (int, error) { return SpitUpPower(4) }, apperrors.CodeOutOfRange},
		{"trump card", func() (int, error) { return TrumpCardPower(5) }, apperrors.CodeOutOfRange},
		{"fling unknown", func() (int, error) { return FlingPower(flingTable{}, "Potion") }, apperrors.CodeNotFound},
		{"fling unflingable", func() (int, error) { return FlingPower(flingTable{"Poke Ball": 0}, "Poke Ball") }, apperrors.CodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.fn(); !apperrors.HasCode(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestFuryCutterPowers(t *testing.T) {
	tests := []struct {
		generation int
		want       []int
	}{
		{2, []int{10, 20, 40, 80, 160}},
		{4, []int{10, 20, 40, 80, 160}},
		{5, []int{20, 40, 80, 160}},
		{6, []int{40, 80, 160}},
	}
	for _, tt := range tests {
		got, err := FuryCutterPowers(tt.generation)
		if err != nil {
			t.Fatalf("fury cutter: %v", err)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("gen %d: expected %v, got %v", tt.generation, tt.want, got)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("gen %d: expected %v, got %v", tt.generation, tt.want, got)
			}
		}
	}
	if _, err := FuryCutterPowers(1); !apperrors.HasCode(err, apperrors.CodeUnsupported) {
		t.Fatalf("expected unsupported, got %v", err)
	}
}

func TestInvalidWeightReportsValue(t *testing.T) {
	_, err := GrassKnotPower(-1.5)
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected domain error, got %v", err)
	}
	if got := appErr.Metadata["Value"]; got != "-1.5" {
		t.Fatalf("expected value -1.5, got %q", got)
	}
}
