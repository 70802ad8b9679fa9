// Package convert moves a Pokémon entity from one game's record layout to
// another's.
//
// Conversion builds a fresh entity in the destination game and carries over
// every attribute both games record. Values the destination cannot represent
// (a move, item or location it does not know) are dropped and the
// destination's default stays. Level met becomes the level at transfer and
// current HP is capped at the destination's maximum.
package convert

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/pkmnkit/internal/pkmn/calc"
	"github.com/louisbranch/pkmnkit/internal/pkmn/game"
	"github.com/louisbranch/pkmnkit/internal/pkmn/pokemon"
	"github.com/louisbranch/pkmnkit/internal/pkmn/refdb"
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
	pkmnotel "github.com/louisbranch/pkmnkit/internal/platform/otel"
)

// Convert returns a copy of src for dest. It fails when the species or form
// does not exist in dest. The source entity is never modified.
func Convert(ctx context.Context, cat *refdb.Catalog, src pokemon.Pokemon, dest game.Game) (out pokemon.Pokemon, err error) {
	_, span := pkmnotel.Tracer().Start(ctx, "convert.Convert", trace.WithAttributes(
		attribute.String("pkmn.species", src.Species().Name),
		attribute.String("pkmn.game.source", string(src.Game())),
		attribute.String("pkmn.game.dest", string(dest)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !dest.Valid() {
		return nil, apperrors.InvalidArgument("game", string(dest))
	}
	species := src.Species()
	if !cat.SpeciesInGame(species, dest) {
		return nil, apperrors.InvalidArgument(string(dest)+" species", species.Name)
	}
	if !cat.ValidForm(species, dest, src.Form()) {
		return nil, apperrors.InvalidArgument(species.Name+" form in "+string(dest), src.Form())
	}
	p, err := pokemon.New(cat, species.Name, dest, src.Form(), src.Level())
	if err != nil {
		return nil, err
	}

	from, to := src.Game().Generation(), dest.Generation()
	steps := []func(src, p pokemon.Pokemon) error{
		copyIdentity,
		copyNames,
		copyTrainer,
		copyGrowth,
		copyMoves,
		copyHeld,
		copyCaught,
	}
	if sameIVEncoding(from, to) {
		steps = append(steps, copyGenetics)
	} else {
		steps = append(steps, copyDerived)
	}
	if from >= 3 && to >= 3 {
		steps = append(steps, copyModern)
	}
	steps = append(steps, copyCondition)
	for _, step := range steps {
		if err := step(src, p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// copyCondition carries current HP, capped at the destination's maximum.
func copyCondition(src, p pokemon.Pokemon) error {
	return p.SetCurrentHP(min(src.CurrentHP(), p.Stats()[calc.HP]))
}

// sameIVEncoding reports whether both generations store IVs and EVs the same
// way: 4-bit IVs with 16-bit stat experience, or 5-bit IVs with 8-bit EVs.
func sameIVEncoding(from, to int) bool {
	return (from <= 2) == (to <= 2)
}

func unsupported(err error) bool {
	return errors.Is(err, pokemon.ErrUnsupported)
}

// unrepresentable reports errors for values the destination has no place for.
func unrepresentable(err error) bool {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeUnsupported, apperrors.CodeInvalidArgument, apperrors.CodeNotFound, apperrors.CodeOutOfRange:
		return true
	}
	return false
}

// carry copies one attribute when both entities record it.
func carry[T any](get func() (T, error), set func(T) error) error {
	v, err := get()
	if unsupported(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := set(v); err != nil && !unsupported(err) {
		return err
	}
	return nil
}

// carryIfValid is carry for values the destination may not know. They are
// dropped instead of failing the conversion.
func carryIfValid[T any](get func() (T, error), set func(T) error) error {
	v, err := get()
	if err != nil {
		if unrepresentable(err) {
			return nil
		}
		return err
	}
	if err := set(v); err != nil && !unrepresentable(err) {
		return err
	}
	return nil
}

func copyIdentity(src, p pokemon.Pokemon) error {
	if err := carry(src.IsEgg, p.SetEgg); err != nil {
		return err
	}
	return carry(src.Friendship, p.SetFriendship)
}

func copyNames(src, p pokemon.Pokemon) error {
	if err := p.SetNickname(src.Nickname()); err != nil {
		return err
	}
	return p.SetTrainerName(src.TrainerName())
}

func copyTrainer(src, p pokemon.Pokemon) error {
	if err := p.SetTrainerPublicID(src.TrainerPublicID()); err != nil {
		return err
	}
	if err := carry(src.TrainerSecretID, p.SetTrainerSecretID); err != nil {
		return err
	}
	return carry(src.TrainerGender, p.SetTrainerGender)
}

func copyGrowth(src, p pokemon.Pokemon) error {
	return p.SetExperience(src.Experience())
}

// copyMoves keeps the moves the destination knows, in order, with their PP
// when it fits the destination's limit.
func copyMoves(src, p pokemon.Pokemon) error {
	slot := 0
	for _, m := range src.Moves() {
		if m.Move == refdb.NoItem {
			continue
		}
		if err := p.SetMove(slot, m.Move); err != nil {
			if unrepresentable(err) {
				continue
			}
			return err
		}
		if err := p.SetMovePP(slot, m.PP); err != nil && !unrepresentable(err) {
			return err
		}
		slot++
	}
	return nil
}

func copyHeld(src, p pokemon.Pokemon) error {
	if err := carryIfValid(src.HeldItem, p.SetHeldItem); err != nil {
		return err
	}
	return carry(src.PokerusDuration, p.SetPokerusDuration)
}

// copyCaught resets level met to the level at transfer.
func copyCaught(src, p pokemon.Pokemon) error {
	if err := carryIfValid(src.LocationMet, p.SetLocationMet); err != nil {
		return err
	}
	if err := carryIfValid(src.OriginalGame, p.SetOriginalGame); err != nil {
		return err
	}
	if err := p.SetLevelMet(p.Level()); err != nil && !unrepresentable(err) {
		return err
	}
	return nil
}

// copyGenetics copies IVs and EVs between games sharing their encoding.
// Game Boy HP IVs follow from the other four.
func copyGenetics(src, p pokemon.Pokemon) error {
	ivs, evs := src.IVs(), src.EVs()
	for stat := range p.IVs() {
		v, ok := ivs[stat]
		if !ok || (stat == calc.HP && p.Game().Generation() <= 2) {
			continue
		}
		if err := p.SetIV(stat, v); err != nil {
			return err
		}
	}
	for stat := range p.EVs() {
		if v, ok := evs[stat]; ok {
			if err := p.SetEV(stat, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// copyDerived keeps shininess and gender across an IV encoding change.
// Shininess goes first since setting it may move gender.
func copyDerived(src, p pokemon.Pokemon) error {
	form := p.Form()
	if err := carry(src.Shiny, p.SetShiny); err != nil && !unrepresentable(err) {
		return err
	}
	// Generation II shininess fixes most IV bits, which also select the
	// Unown letter. The form wins.
	if p.Form() != form {
		if err := p.SetForm(form); err != nil {
			return err
		}
	}
	g, err := src.Gender()
	if unsupported(err) || g == calc.Genderless {
		return nil
	}
	if err != nil {
		return err
	}
	if err := p.SetGender(g); err != nil && !unsupported(err) {
		return err
	}
	return nil
}

// copyModern copies the attributes only Generation III and later record.
// The personality carries gender, nature, shininess and form with it.
func copyModern(src, p pokemon.Pokemon) error {
	if err := carry(src.Personality, p.SetPersonality); err != nil {
		return err
	}
	if err := carry(src.Ability, p.SetAbility); err != nil {
		return err
	}
	if err := carryIfValid(src.Ball, p.SetBall); err != nil {
		return err
	}
	marks, err := src.Markings()
	if err != nil {
		return err
	}
	for m, on := range marks {
		if err := p.SetMarking(m, on); err != nil {
			return err
		}
	}
	ribbons, err := src.Ribbons()
	if err != nil {
		return err
	}
	for r, on := range ribbons {
		if err := p.SetRibbon(r, on); err != nil && !unrepresentable(err) {
			return err
		}
	}
	contest, err := src.ContestStats()
	if err != nil {
		return err
	}
	for s, v := range contest {
		if err := p.SetContestStat(s, v); err != nil {
			return err
		}
	}
	return nil
}
