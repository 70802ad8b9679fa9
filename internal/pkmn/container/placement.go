// Package container holds the party, the PC boxes and the PC that groups them.
//
// Game Boy formats store creatures as a count followed by a packed list, so
// their boxes keep occupied slots as a prefix. From Generation III a box is a
// grid and any free slot may be filled. The rule is picked once, when the
// container is built, and every mutation goes through it.
package container

import (
	"strconv"

	"github.com/louisbranch/pkmnkit/internal/pkmn/game"
	"github.com/louisbranch/pkmnkit/internal/pkmn/pokemon"
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// Placement decides which slots may be filled or cleared.
type Placement interface {
	// CanSet reports whether slot i of slots may receive a creature.
	CanSet(slots []pokemon.Pokemon, i int) error
	// CanClear reports whether slot i of slots may be emptied.
	CanClear(slots []pokemon.Pokemon, i int) error
	String() string
}

// Contiguous keeps the occupied slots as a prefix.
type Contiguous struct{}

func (Contiguous) CanSet(slots []pokemon.Pokemon, i int) error {
	if slots[i] != nil {
		return nil
	}
	if n := prefixLen(slots); i != n {
		return apperrors.WithMetadata(apperrors.CodeInvalidArgument, "slots must stay contiguous",
			map[string]string{"Field": "slot", "Value": strconv.Itoa(i), "Next": strconv.Itoa(n)})
	}
	return nil
}

func (Contiguous) CanClear(slots []pokemon.Pokemon, i int) error {
	if slots[i] == nil {
		return nil
	}
	if last := prefixLen(slots) - 1; i != last {
		return apperrors.WithMetadata(apperrors.CodeInvalidArgument, "only the last occupied slot can be cleared",
			map[string]string{"Field": "slot", "Value": strconv.Itoa(i), "Last": strconv.Itoa(last)})
	}
	return nil
}

func (Contiguous) String() string { return "contiguous" }

// Sparse lets any slot be filled or cleared.
type Sparse struct{}

func (Sparse) CanSet([]pokemon.Pokemon, int) error   { return nil }
func (Sparse) CanClear([]pokemon.Pokemon, int) error { return nil }
func (Sparse) String() string                        { return "sparse" }

// BoxPlacement returns the placement boxes of g use.
func BoxPlacement(g game.Game) Placement {
	if g.Platform() == game.GameBoy {
		return Contiguous{}
	}
	return Sparse{}
}

func prefixLen(slots []pokemon.Pokemon) int {
	for i, p := range slots {
		if p == nil {
			return i
		}
	}
	return len(slots)
}
