package pokemon

import (
	"github.com/louisbranch/pkmnkit/internal/pkmn/calc"
	"github.com/louisbranch/pkmnkit/internal/pkmn/game"
	"github.com/louisbranch/pkmnkit/internal/pkmn/refdb"
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// base carries the reference data every variant needs and answers the
// optional attributes with unsupported errors. Variants override what their
// layout records.
type base struct {
	cat     *refdb.Catalog
	game    game.Game
	species refdb.Species
}

func (b *base) Game() game.Game        { return b.game }
func (b *base) Species() refdb.Species { return b.species }
func (b *base) unsupported(feature string) error {
	return apperrors.Unsupported(feature, string(b.game))
}

// move resolves a move name that an entity of this game may know. "None" and
// the empty name clear a slot and resolve to the zero move.
func (b *base) move(name string) (refdb.Move, error) {
	if name == "" || refdb.SameName(name, refdb.NoItem) {
		return refdb.Move{}, nil
	}
	m, err := b.cat.Move(name)
	if err != nil {
		return refdb.Move{}, err
	}
	if !b.cat.MoveInGame(m, b.game) {
		return refdb.Move{}, apperrors.InvalidArgument(string(b.game)+" move", name)
	}
	return m, nil
}

func (b *base) moveName(id int) string {
	if id == 0 {
		return refdb.NoItem
	}
	m, err := b.cat.MoveByID(id)
	if err != nil {
		return refdb.NoItem
	}
	return m.Name
}

func (b *base) maxExperience() int {
	exp, _ := b.species.ExperienceAt(calc.MaxLevel)
	return exp
}

func (b *base) TrainerSecretID() (uint16, error) { return 0, b.unsupported("trainer secret ID") }
func (b *base) SetTrainerSecretID(uint16) error  { return b.unsupported("trainer secret ID") }
func (b *base) TrainerGender() (calc.Gender, error) {
	return "", b.unsupported("trainer gender")
}
func (b *base) SetTrainerGender(calc.Gender) error { return b.unsupported("trainer gender") }

func (b *base) Gender() (calc.Gender, error)  { return "", b.unsupported("gender") }
func (b *base) SetGender(calc.Gender) error   { return b.unsupported("gender") }
func (b *base) Shiny() (bool, error)          { return false, b.unsupported("shininess") }
func (b *base) SetShiny(bool) error           { return b.unsupported("shininess") }
func (b *base) Personality() (uint32, error)  { return 0, b.unsupported("personality") }
func (b *base) SetPersonality(uint32) error   { return b.unsupported("personality") }
func (b *base) Nature() (string, error)       { return "", b.unsupported("nature") }
func (b *base) SetNature(string) error        { return b.unsupported("nature") }
func (b *base) Ability() (string, error)      { return "", b.unsupported("ability") }
func (b *base) SetAbility(string) error       { return b.unsupported("ability") }
func (b *base) Friendship() (int, error)      { return 0, b.unsupported("friendship") }
func (b *base) SetFriendship(int) error       { return b.unsupported("friendship") }
func (b *base) HeldItem() (string, error)     { return "", b.unsupported("held item") }
func (b *base) SetHeldItem(string) error      { return b.unsupported("held item") }
func (b *base) Ball() (string, error)         { return "", b.unsupported("ball") }
func (b *base) SetBall(string) error          { return b.unsupported("ball") }
func (b *base) LevelMet() (int, error)        { return 0, b.unsupported("level met") }
func (b *base) SetLevelMet(int) error         { return b.unsupported("level met") }
func (b *base) LocationMet() (string, error)  { return "", b.unsupported("location met") }
func (b *base) SetLocationMet(string) error   { return b.unsupported("location met") }
func (b *base) PokerusDuration() (int, error) { return 0, b.unsupported("Pokérus") }
func (b *base) SetPokerusDuration(int) error  { return b.unsupported("Pokérus") }
func (b *base) IsEgg() (bool, error)          { return false, b.unsupported("eggs") }
func (b *base) SetEgg(bool) error             { return b.unsupported("eggs") }

func (b *base) HiddenPower() (calc.HiddenPower, error) {
	return calc.HiddenPower{}, b.unsupported("Hidden Power")
}

// Egg met locations are first recorded in Generation IV.
func (b *base) LocationMetAsEgg() (string, error) { return "", b.unsupported("egg met location") }
func (b *base) SetLocationMetAsEgg(string) error  { return b.unsupported("egg met location") }

func (b *base) OriginalGame() (game.Game, error) { return "", b.unsupported("original game") }
func (b *base) SetOriginalGame(game.Game) error  { return b.unsupported("original game") }

func (b *base) Markings() (map[Marking]bool, error) { return nil, b.unsupported("markings") }
func (b *base) SetMarking(Marking, bool) error      { return b.unsupported("markings") }
func (b *base) Ribbons() (map[string]bool, error)   { return nil, b.unsupported("ribbons") }
func (b *base) SetRibbon(string, bool) error        { return b.unsupported("ribbons") }
func (b *base) ContestStats() (map[ContestStat]int, error) {
	return nil, b.unsupported("contest stats")
}
func (b *base) SetContestStat(ContestStat, int) error { return b.unsupported("contest stats") }
