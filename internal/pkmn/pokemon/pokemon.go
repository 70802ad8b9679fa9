// Package pokemon models one creature over the record layout of the game it
// belongs to.
//
// Every variant keeps the raw record as its only state. Getters decode from
// it and setters validate, write the record, and recompute whatever depends
// on the written field (stats, level, gender), so the typed view and the bytes
// never disagree.
package pokemon

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/pkmnkit/internal/pkmn/calc"
	"github.com/louisbranch/pkmnkit/internal/pkmn/game"
	"github.com/louisbranch/pkmnkit/internal/pkmn/refdb"
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
	"github.com/louisbranch/pkmnkit/internal/random"
)

// ErrUnsupported matches every error returned for an attribute the entity's
// game does not record.
var ErrUnsupported = apperrors.New(apperrors.CodeUnsupported, "feature not in game")

// Defaults for entities built with New.
const (
	DefaultTrainerName = "PKMNKIT"
	DefaultTrainerID   = uint32(0x2A61_05C3)
	DefaultGBTrainerID = uint16(DefaultTrainerID & 0xFFFF)
	MaxNicknameLength  = 10
	MaxTrainerLength   = 7
	MoveSlots          = 4
)

// MoveSlot is one of the four known moves. An empty slot has Move "None".
type MoveSlot struct {
	Move string
	PP   int
}

// Marking is one of the box markings.
type Marking string

const (
	Circle   Marking = "Circle"
	Triangle Marking = "Triangle"
	Square   Marking = "Square"
	Heart    Marking = "Heart"
)

// Markings lists every marking.
var Markings = []Marking{Circle, Triangle, Square, Heart}

// ContestStat is one of the contest condition values.
type ContestStat string

const (
	Cool   ContestStat = "Cool"
	Beauty ContestStat = "Beauty"
	Cute   ContestStat = "Cute"
	Smart  ContestStat = "Smart"
	Tough  ContestStat = "Tough"
	Feel   ContestStat = "Feel"
)

// ContestStats lists the contest stats in storage order.
var ContestStats = []ContestStat{Cool, Beauty, Cute, Smart, Tough, Feel}

// Pokemon is the uniform API over every supported record layout. Attributes
// a game does not record return an error matching ErrUnsupported.
type Pokemon interface {
	Game() game.Game
	Species() refdb.Species
	Form() string
	SetForm(form string) error
	// Clone returns an independent copy.
	Clone() Pokemon

	Nickname() string
	SetNickname(name string) error
	TrainerName() string
	SetTrainerName(name string) error
	TrainerID() uint32
	SetTrainerID(id uint32) error
	TrainerPublicID() uint16
	SetTrainerPublicID(id uint16) error
	TrainerSecretID() (uint16, error)
	SetTrainerSecretID(id uint16) error
	TrainerGender() (calc.Gender, error)
	SetTrainerGender(g calc.Gender) error

	Experience() int
	SetExperience(exp int) error
	Level() int
	SetLevel(level int) error
	CurrentHP() int
	SetCurrentHP(hp int) error
	Stats() map[calc.Stat]int
	IVs() map[calc.Stat]int
	SetIV(stat calc.Stat, v int) error
	EVs() map[calc.Stat]int
	SetEV(stat calc.Stat, v int) error

	Gender() (calc.Gender, error)
	SetGender(g calc.Gender) error
	Shiny() (bool, error)
	SetShiny(shiny bool) error
	Personality() (uint32, error)
	SetPersonality(p uint32) error
	Nature() (string, error)
	SetNature(nature string) error
	Ability() (string, error)
	SetAbility(ability string) error
	HiddenPower() (calc.HiddenPower, error)
	Friendship() (int, error)
	SetFriendship(v int) error

	HeldItem() (string, error)
	SetHeldItem(item string) error
	Ball() (string, error)
	SetBall(ball string) error
	LevelMet() (int, error)
	SetLevelMet(level int) error
	LocationMet() (string, error)
	SetLocationMet(location string) error
	LocationMetAsEgg() (string, error)
	SetLocationMetAsEgg(location string) error
	OriginalGame() (game.Game, error)
	SetOriginalGame(g game.Game) error
	PokerusDuration() (int, error)
	SetPokerusDuration(days int) error
	IsEgg() (bool, error)
	SetEgg(egg bool) error

	Markings() (map[Marking]bool, error)
	SetMarking(m Marking, on bool) error
	Ribbons() (map[string]bool, error)
	SetRibbon(ribbon string, on bool) error
	ContestStats() (map[ContestStat]int, error)
	SetContestStat(stat ContestStat, v int) error

	Moves() [MoveSlots]MoveSlot
	SetMove(slot int, move string) error
	SetMovePP(slot, pp int) error
}

// New builds a level-level entity of species for g with random IVs (and a
// random personality from Generation III), no EVs, no moves and the default
// trainer. An empty form selects the species' default form.
func New(cat *refdb.Catalog, species string, g game.Game, form string, level int) (Pokemon, error) {
	if !g.Valid() {
		return nil, apperrors.InvalidArgument("game", string(g))
	}
	s, err := cat.Species(species)
	if err != nil {
		return nil, err
	}
	if !cat.SpeciesInGame(s, g) {
		return nil, apperrors.InvalidArgument(string(g)+" species", species)
	}
	if form == "" {
		form = cat.Forms(s, g)[0]
	}
	if !cat.ValidForm(s, g, form) {
		return nil, apperrors.InvalidArgument(s.Name+" form", form)
	}
	if err := checkLevel(level); err != nil {
		return nil, err
	}

	b := base{cat: cat, game: g, species: s}
	var p Pokemon
	switch {
	case g.Platform() == game.GameCube:
		return nil, apperrors.Unsupported("Pokémon entities", string(g))
	case g.Generation() == 1:
		p, err = newGen1(b, level)
	case g.Generation() == 2:
		p, err = newGen2(b, level)
	default:
		p, err = newGBA(b, level)
	}
	if err != nil {
		return nil, err
	}
	if form != p.Form() {
		if err := p.SetForm(form); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// defaultNickname is the species name as the games print it.
func defaultNickname(s refdb.Species) string {
	return strings.ToUpper(s.Name)
}

func checkLevel(level int) error {
	if level < calc.MinLevel || level > calc.MaxLevel {
		return apperrors.OutOfRange("level", calc.MinLevel, calc.MaxLevel)
	}
	return nil
}

func checkSlot(slot int) error {
	if slot < 0 || slot >= MoveSlots {
		return apperrors.OutOfRange("move slot", 0, MoveSlots-1)
	}
	return nil
}

var (
	rngMu sync.Mutex
	rng   *rand.Rand
)

// roll draws from the generator shared by every new entity.
func roll() uint32 {
	rngMu.Lock()
	defer rngMu.Unlock()
	if rng == nil {
		seed, err := random.NewSeed()
		if err != nil {
			seed = time.Now().UnixNano()
		}
		rng = random.NewRand(seed)
	}
	return rng.Uint32()
}
