package calc

import (
	"math"
	"testing"

	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

func TestDamage(t *testing.T) {
	// Level 75 Glaceon using Ice Fang on Garchomp: STAB, 4x, lowest roll.
	got, err := Damage(75, 65, 123, 163, 1.5*4*0.85)
	if err != nil {
		t.Fatalf("damage: %v", err)
	}
	if got != 168 {
		t.Fatalf("expected 168, got %d", got)
	}
	if _, err := Damage(0, 1, 1, 1, 1); !apperrors.HasCode(err, apperrors.CodeOutOfRange) {
		t.Fatalf("expected out of range level, got %v", err)
	}
	if _, err := Damage(50, 1, 1, 0, 1); !apperrors.HasCode(err, apperrors.CodeOutOfRange) {
		t.Fatalf("expected out of range defense, got %v", err)
	}
	if _, err := Damage(50, 1, 1, 1, -1); !apperrors.HasCode(err, apperrors.CodeInvalidArgument) {
		t.Fatalf("expected invalid modifier, got %v", err)
	}
}

func TestCriticalHits(t *testing.T) {
	chance, err := Gen1CriticalHitChance(100, false, false)
	if err != nil {
		t.Fatalf("gen1 chance: %v", err)
	}
	if chance != 50.0/256 {
		t.Fatalf("expected %v, got %v", 50.0/256, chance)
	}
	if c, _ := Gen1CriticalHitChance(100, true, false); c != 12.0/256 {
		t.Fatalf("expected Focus Energy to lower the chance, got %v", c)
	}
	if c, _ := Gen1CriticalHitChance(255, false, true); c != 255.0/256 {
		t.Fatalf("expected capped threshold, got %v", c)
	}
	if _, err := Gen1CriticalHitChance(0, false, false); !apperrors.HasCode(err, apperrors.CodeOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}

	stages := []struct {
		generation, stage int
		want              float64
	}{
		{2, 0, 0.0625},
		{3, 1, 0.125},
		{5, 2, 0.25},
		{6, 2, 0.5},
		{4, 3, 1.0 / 3},
		{6, 3, 1},
		{5, 9, 0.5},
	}
	for _, tt := range stages {
		got, err := CriticalHitChance(tt.generation, tt.stage)
		if err != nil {
			t.Fatalf("critical hit chance: %v", err)
		}
		if got != tt.want {
			t.Fatalf("gen %d stage %d: expected %v, got %v", tt.generation, tt.stage, tt.want, got)
		}
	}
	if _, err := CriticalHitChance(1, 0); !apperrors.HasCode(err, apperrors.CodeOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}

	mod, err := Gen1CriticalHitModifier(10)
	if err != nil {
		t.Fatalf("gen1 modifier: %v", err)
	}
	if math.Abs(mod-25.0/15) > 1e-9 {
		t.Fatalf("expected %v, got %v", 25.0/15, mod)
	}
	if m, _ := CriticalHitModifier(5); m != 2 {
		t.Fatalf("expected 2, got %v", m)
	}
	if m, _ := CriticalHitModifier(6); m != 1.5 {
		t.Fatalf("expected 1.5, got %v", m)
	}
}
