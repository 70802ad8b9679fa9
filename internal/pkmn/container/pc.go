package container

import (
	"strconv"

	"github.com/louisbranch/pkmnkit/internal/pkmn/game"
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// Layout is the shape of a game's PC.
type Layout struct {
	Boxes    int
	Capacity int
}

var layouts = map[game.Platform]Layout{
	game.GameBoy:        {Boxes: 12, Capacity: 20},
	game.GameBoyAdvance: {Boxes: 14, Capacity: 30},
}

// PCLayout returns the number of boxes and slots per box of g.
func PCLayout(g game.Game) (Layout, error) {
	if !g.Valid() {
		return Layout{}, apperrors.InvalidArgument("game", string(g))
	}
	switch g {
	case game.Gold, game.Silver, game.Crystal:
		return Layout{Boxes: 14, Capacity: 20}, nil
	case game.Colosseum:
		return Layout{Boxes: 3, Capacity: 30}, nil
	case game.XD:
		return Layout{Boxes: 8, Capacity: 30}, nil
	}
	return layouts[g.Platform()], nil
}

// DefaultBoxName is the name a fresh save gives box i (zero-based).
func DefaultBoxName(g game.Game, i int) string {
	if g.Platform() == game.GameBoy {
		return "BOX" + strconv.Itoa(i+1)
	}
	return "BOX " + strconv.Itoa(i+1)
}

// PC is the set of boxes of one save.
type PC struct {
	game  game.Game
	boxes []*Box
}

// NewPC builds a PC of empty, default-named boxes for g.
func NewPC(g game.Game) (*PC, error) {
	layout, err := PCLayout(g)
	if err != nil {
		return nil, err
	}
	pc := &PC{game: g, boxes: make([]*Box, layout.Boxes)}
	for i := range pc.boxes {
		b, err := NewBox(g, layout.Capacity, DefaultBoxName(g, i))
		if err != nil {
			return nil, err
		}
		pc.boxes[i] = b
	}
	return pc, nil
}

func (pc *PC) Game() game.Game { return pc.game }

// NumBoxes returns the number of boxes.
func (pc *PC) NumBoxes() int { return len(pc.boxes) }

// Boxes returns the boxes in order. The boxes are shared with the PC.
func (pc *PC) Boxes() []*Box {
	out := make([]*Box, len(pc.boxes))
	copy(out, pc.boxes)
	return out
}

// Box returns box i.
func (pc *PC) Box(i int) (*Box, error) {
	if i < 0 || i >= len(pc.boxes) {
		return nil, apperrors.OutOfRange("box", 0, len(pc.boxes)-1)
	}
	return pc.boxes[i], nil
}

// BoxNames lists the box names. Generation I boxes are unnamed.
func (pc *PC) BoxNames() ([]string, error) {
	if pc.game.Generation() == 1 {
		return nil, apperrors.Unsupported("box names", string(pc.game))
	}
	names := make([]string, len(pc.boxes))
	for i, b := range pc.boxes {
		names[i], _ = b.Name()
	}
	return names, nil
}

// NumPokemon counts the creatures stored across every box.
func (pc *PC) NumPokemon() int {
	n := 0
	for _, b := range pc.boxes {
		n += b.NumPokemon()
	}
	return n
}

// Clone returns an independent copy.
func (pc *PC) Clone() *PC {
	c := &PC{game: pc.game, boxes: make([]*Box, len(pc.boxes))}
	for i, b := range pc.boxes {
		c.boxes[i] = b.Clone()
	}
	return c
}
