// Package game enumerates the supported games and the generation, platform
// and version group each one belongs to.
package game

import (
	"strings"

	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// Game names one cartridge or disc.
type Game string

const (
	Red       Game = "Red"
	Blue      Game = "Blue"
	Yellow    Game = "Yellow"
	Gold      Game = "Gold"
	Silver    Game = "Silver"
	Crystal   Game = "Crystal"
	Ruby      Game = "Ruby"
	Sapphire  Game = "Sapphire"
	Emerald   Game = "Emerald"
	FireRed   Game = "FireRed"
	LeafGreen Game = "LeafGreen"
	Colosseum Game = "Colosseum"
	XD        Game = "XD"
)

// Platform is the console family a game runs on.
type Platform string

const (
	GameBoy        Platform = "Game Boy"
	GameBoyAdvance Platform = "Game Boy Advance"
	GameCube       Platform = "GameCube"
)

// VersionGroup groups games that share data layout and item/move availability.
type VersionGroup string

const (
	RedBlue          VersionGroup = "Red/Blue"
	YellowGroup      VersionGroup = "Yellow"
	GoldSilver       VersionGroup = "Gold/Silver"
	CrystalGroup     VersionGroup = "Crystal"
	RubySapphire     VersionGroup = "Ruby/Sapphire"
	EmeraldGroup     VersionGroup = "Emerald"
	FireRedLeafGreen VersionGroup = "FireRed/LeafGreen"
	ColosseumGroup   VersionGroup = "Colosseum"
	XDGroup          VersionGroup = "XD"
)

type info struct {
	generation int
	platform   Platform
	group      VersionGroup
	// originID is the value stored in the Generation III origin-game field.
	originID int
}

var games = map[Game]info{
	Red:       {1, GameBoy, RedBlue, 0},
	Blue:      {1, GameBoy, RedBlue, 0},
	Yellow:    {1, GameBoy, YellowGroup, 0},
	Gold:      {2, GameBoy, GoldSilver, 0},
	Silver:    {2, GameBoy, GoldSilver, 0},
	Crystal:   {2, GameBoy, CrystalGroup, 0},
	Sapphire:  {3, GameBoyAdvance, RubySapphire, 1},
	Ruby:      {3, GameBoyAdvance, RubySapphire, 2},
	Emerald:   {3, GameBoyAdvance, EmeraldGroup, 3},
	FireRed:   {3, GameBoyAdvance, FireRedLeafGreen, 4},
	LeafGreen: {3, GameBoyAdvance, FireRedLeafGreen, 5},
	Colosseum: {3, GameCube, ColosseumGroup, 15},
	XD:        {3, GameCube, XDGroup, 15},
}

var ordered = []Game{Red, Blue, Yellow, Gold, Silver, Crystal, Ruby, Sapphire, Emerald, FireRed, LeafGreen, Colosseum, XD}

// All returns every supported game in release order.
func All() []Game {
	return append([]Game(nil), ordered...)
}

// Parse resolves a game name case-insensitively.
func Parse(name string) (Game, error) {
	trimmed := strings.TrimSpace(name)
	for _, g := range ordered {
		if strings.EqualFold(string(g), trimmed) {
			return g, nil
		}
	}
	return "", apperrors.InvalidArgument("game", name)
}

// Valid reports whether g is a supported game.
func (g Game) Valid() bool {
	_, ok := games[g]
	return ok
}

// Generation returns the generation number (1-3), or 0 for unknown games.
func (g Game) Generation() int {
	return games[g].generation
}

// Platform returns the console family.
func (g Game) Platform() Platform {
	return games[g].platform
}

// VersionGroup returns the layout/availability group of g.
func (g Game) VersionGroup() VersionGroup {
	return games[g].group
}

// OriginID returns the Generation III origin-game value, or 0 before Generation III.
func (g Game) OriginID() int {
	return games[g].originID
}

// IsGameBoy reports whether g stores entities in a Game Boy layout.
func (g Game) IsGameBoy() bool {
	return g.Platform() == GameBoy
}

// FromOriginID maps a Generation III origin-game field back to a game.
// Colosseum and XD share one value; Colosseum is returned for it.
func FromOriginID(id int) (Game, bool) {
	for _, g := range ordered {
		if games[g].originID == id && id != 0 {
			return g, true
		}
	}
	return "", false
}

// Games returns the games in a version group, in release order.
func (vg VersionGroup) Games() []Game {
	var out []Game
	for _, g := range ordered {
		if games[g].group == vg {
			out = append(out, g)
		}
	}
	return out
}
