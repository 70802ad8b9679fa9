package pokemon

import (
	"errors"
	"testing"

	"github.com/louisbranch/pkmnkit/internal/pkmn/calc"
	"github.com/louisbranch/pkmnkit/internal/pkmn/game"
	"github.com/louisbranch/pkmnkit/internal/pkmn/refdb/refdbtest"
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

func newPokemon(t *testing.T, species string, g game.Game, form string, level int) Pokemon {
	t.Helper()
	p, err := New(refdbtest.Catalog(t), species, g, form, level)
	if err != nil {
		t.Fatalf("new %s in %s: %v", species, g, err)
	}
	return p
}

func TestNewDefaults(t *testing.T) {
	for _, g := range []game.Game{game.Red, game.Yellow, game.Gold, game.Crystal, game.Ruby, game.Emerald, game.FireRed} {
		t.Run(string(g), func(t *testing.T) {
			p := newPokemon(t, "Pikachu", g, "", 25)
			if p.Game() != g {
				t.Fatalf("expected game %s, got %s", g, p.Game())
			}
			if p.Level() != 25 {
				t.Fatalf("expected level 25, got %d", p.Level())
			}
			want, err := p.Species().ExperienceAt(25)
			if err != nil {
				t.Fatalf("experience at: %v", err)
			}
			if p.Experience() != want {
				t.Fatalf("expected experience %d, got %d", want, p.Experience())
			}
			if p.Nickname() != "PIKACHU" {
				t.Fatalf("expected nickname PIKACHU, got %q", p.Nickname())
			}
			if p.TrainerName() != DefaultTrainerName {
				t.Fatalf("expected trainer %s, got %q", DefaultTrainerName, p.TrainerName())
			}
			if p.CurrentHP() != p.Stats()[calc.HP] {
				t.Fatalf("expected full HP %d, got %d", p.Stats()[calc.HP], p.CurrentHP())
			}
			if p.Form() != "Standard" {
				t.Fatalf("expected standard form, got %s", p.Form())
			}
			for i, m := range p.Moves() {
				if m.Move != "None" || m.PP != 0 {
					t.Fatalf("slot %d: expected empty move, got %+v", i, m)
				}
			}
		})
	}
}

func TestNewValidation(t *testing.T) {
	cat := refdbtest.Catalog(t)
	tests := []struct {
		name    string
		species string
		game    game.Game
		form    string
		level   int
		code    apperrors.Code
	}{
		{"unknown species", "Missingno", game.Red, "", 5, apperrors.CodeNotFound},
		{"species from a later generation", "Chikorita", game.Blue, "", 5, apperrors.CodeInvalidArgument},
		{"bad form", "Pikachu", game.Ruby, "Cosplay", 5, apperrors.CodeInvalidArgument},
		{"level zero", "Pikachu", game.Gold, "", 0, apperrors.CodeOutOfRange},
		{"level above max", "Pikachu", game.Gold, "", 101, apperrors.CodeOutOfRange},
		{"unknown game", "Pikachu", game.Game("Stadium"), "", 5, apperrors.CodeInvalidArgument},
		{"gamecube entity", "Pikachu", game.XD, "", 5, apperrors.CodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(cat, tt.species, tt.game, tt.form, tt.level)
			if !apperrors.HasCode(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestUnsupportedAttributes(t *testing.T) {
	red := newPokemon(t, "Pikachu", game.Red, "", 5)
	gold := newPokemon(t, "Pikachu", game.Gold, "", 5)
	ruby := newPokemon(t, "Pikachu", game.Ruby, "", 5)

	tests := []struct {
		name string
		err  error
	}{
		{"gen1 gender", func() error { _, err := red.Gender(); return err }()},
		{"gen1 shiny", red.SetShiny(true)},
		{"gen1 held item", red.SetHeldItem("Potion")},
		{"gen1 friendship outside yellow", func() error { _, err := red.Friendship(); return err }()},
		{"gen1 female trainer", red.SetTrainerGender(calc.Female)},
		{"gen2 ball", func() error { _, err := gold.Ball(); return err }()},
		{"gen2 nature", gold.SetNature("Adamant")},
		{"gen2 secret id", func() error { _, err := gold.TrainerSecretID(); return err }()},
		{"gen2 markings", gold.SetMarking(Circle, true)},
		{"gba egg location", func() error { _, err := ruby.LocationMetAsEgg(); return err }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, ErrUnsupported) {
				t.Fatalf("expected unsupported error, got %v", tt.err)
			}
		})
	}
}

func TestLevelExperienceCoupling(t *testing.T) {
	for _, g := range []game.Game{game.Red, game.Silver, game.LeafGreen} {
		t.Run(string(g), func(t *testing.T) {
			p := newPokemon(t, "Bulbasaur", g, "", 5)
			s := p.Species()

			if err := p.SetLevel(50); err != nil {
				t.Fatalf("set level: %v", err)
			}
			exp50, _ := s.ExperienceAt(50)
			if p.Experience() != exp50 {
				t.Fatalf("expected experience %d, got %d", exp50, p.Experience())
			}

			if err := p.SetExperience(exp50 + 1); err != nil {
				t.Fatalf("set experience: %v", err)
			}
			if p.Level() != 50 {
				t.Fatalf("expected level 50, got %d", p.Level())
			}

			exp51, _ := s.ExperienceAt(51)
			if err := p.SetExperience(exp51); err != nil {
				t.Fatalf("set experience: %v", err)
			}
			if p.Level() != 51 {
				t.Fatalf("expected level 51, got %d", p.Level())
			}

			limit, _ := s.ExperienceAt(100)
			if err := p.SetExperience(limit + 1); !apperrors.HasCode(err, apperrors.CodeOutOfRange) {
				t.Fatalf("expected out of range, got %v", err)
			}
			if p.Level() != 51 {
				t.Fatalf("failed update changed level to %d", p.Level())
			}
		})
	}
}

func TestStatsFollowInputs(t *testing.T) {
	p := newPokemon(t, "Snorlax", game.Blue, "", 50)
	hp := p.CurrentHP()
	for _, s := range calc.GBStats {
		if err := p.SetIV(s, 15); err != nil && s != calc.HP {
			t.Fatalf("set IV %s: %v", s, err)
		}
	}
	if err := p.SetEV(calc.HP, 65535); err != nil {
		t.Fatalf("set EV: %v", err)
	}
	want, err := calc.GBStat(calc.HP, 50, p.Species().Base.HP, 65535, 15)
	if err != nil {
		t.Fatalf("gb stat: %v", err)
	}
	if got := p.Stats()[calc.HP]; got != want {
		t.Fatalf("expected HP %d, got %d", want, got)
	}
	if p.CurrentHP() != hp {
		t.Fatalf("expected current HP kept at %d, got %d", hp, p.CurrentHP())
	}
	if err := p.SetCurrentHP(want + 1); !apperrors.HasCode(err, apperrors.CodeOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
}

func TestGBHPIVIsDerived(t *testing.T) {
	p := newPokemon(t, "Eevee", game.Crystal, "", 10)
	for _, s := range []calc.Stat{calc.Attack, calc.Defense, calc.Speed, calc.Special} {
		if err := p.SetIV(s, 0); err != nil {
			t.Fatalf("set IV: %v", err)
		}
	}
	if err := p.SetIV(calc.HP, 0b1010); err != nil {
		t.Fatalf("set HP IV: %v", err)
	}
	ivs := p.IVs()
	want := map[calc.Stat]int{calc.HP: 10, calc.Attack: 1, calc.Defense: 0, calc.Speed: 1, calc.Special: 0}
	for s, v := range want {
		if ivs[s] != v {
			t.Fatalf("%s: expected %d, got %d", s, v, ivs[s])
		}
	}
	if err := p.SetIV(calc.Attack, 16); !apperrors.HasCode(err, apperrors.CodeOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
	if err := p.SetIV(calc.SpecialAttack, 3); !apperrors.HasCode(err, apperrors.CodeInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestGen2GenderAndShiny(t *testing.T) {
	p := newPokemon(t, "Pikachu", game.Gold, "", 20)
	if err := p.SetGender(calc.Female); err != nil {
		t.Fatalf("set gender: %v", err)
	}
	if g, _ := p.Gender(); g != calc.Female {
		t.Fatalf("expected female, got %s", g)
	}
	if err := p.SetShiny(true); err != nil {
		t.Fatalf("set shiny: %v", err)
	}
	if shiny, _ := p.Shiny(); !shiny {
		t.Fatalf("expected shiny")
	}
	if g, _ := p.Gender(); g != calc.Female {
		t.Fatalf("expected shininess to keep female, got %s", g)
	}
	if err := p.SetShiny(false); err != nil {
		t.Fatalf("clear shiny: %v", err)
	}
	if shiny, _ := p.Shiny(); shiny {
		t.Fatalf("expected not shiny")
	}

	genderless := newPokemon(t, "Magnemite", game.Gold, "", 20)
	if err := genderless.SetGender(calc.Male); !apperrors.HasCode(err, apperrors.CodeInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestGen2UnownForm(t *testing.T) {
	p := newPokemon(t, "Unown", game.Gold, "G", 5)
	if p.Form() != "G" {
		t.Fatalf("expected form G, got %s", p.Form())
	}
	if err := p.SetForm("B"); err != nil {
		t.Fatalf("set form: %v", err)
	}
	if p.Form() != "B" {
		t.Fatalf("expected form B, got %s", p.Form())
	}
	if err := p.SetForm("!"); !apperrors.HasCode(err, apperrors.CodeInvalidArgument) {
		t.Fatalf("expected invalid argument for gen3 form, got %v", err)
	}
}

func TestGBAUnownForm(t *testing.T) {
	for _, form := range []string{"A", "Z", "!", "?"} {
		p := newPokemon(t, "Unown", game.Emerald, form, 5)
		if p.Form() != form {
			t.Fatalf("expected form %s, got %s", form, p.Form())
		}
	}
}

func TestGBAIdentitySetters(t *testing.T) {
	p := newPokemon(t, "Pikachu", game.Ruby, "", 30)
	if err := p.SetGender(calc.Female); err != nil {
		t.Fatalf("set gender: %v", err)
	}
	if err := p.SetNature("Adamant"); err != nil {
		t.Fatalf("set nature: %v", err)
	}
	if n, _ := p.Nature(); n != "Adamant" {
		t.Fatalf("expected Adamant, got %s", n)
	}
	if g, _ := p.Gender(); g != calc.Female {
		t.Fatalf("expected nature change to keep female, got %s", g)
	}
	if err := p.SetShiny(true); err != nil {
		t.Fatalf("set shiny: %v", err)
	}
	if shiny, _ := p.Shiny(); !shiny {
		t.Fatalf("expected shiny")
	}
	if g, _ := p.Gender(); g != calc.Female {
		t.Fatalf("expected shininess to keep female, got %s", g)
	}

	mod, _ := calc.NatureModifier("Hardy", calc.Attack)
	if err := p.SetNature("Hardy"); err != nil {
		t.Fatalf("set nature: %v", err)
	}
	ivs, evs := p.IVs(), p.EVs()
	want, _ := calc.ModernStat(calc.Attack, 30, mod, p.Species().Base.Attack, evs[calc.Attack], ivs[calc.Attack])
	if got := p.Stats()[calc.Attack]; got != want {
		t.Fatalf("expected attack %d after nature change, got %d", want, got)
	}
}

func TestGBAAbility(t *testing.T) {
	p := newPokemon(t, "Growlithe", game.FireRed, "", 10)
	if err := p.SetAbility("Flash Fire"); err != nil {
		t.Fatalf("set ability: %v", err)
	}
	if a, _ := p.Ability(); a != "Flash Fire" {
		t.Fatalf("expected Flash Fire, got %s", a)
	}
	if err := p.SetAbility("Levitate"); !apperrors.HasCode(err, apperrors.CodeInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestGBAEVTotal(t *testing.T) {
	p := newPokemon(t, "Mudkip", game.Sapphire, "", 5)
	for _, s := range []calc.Stat{calc.HP, calc.Attack} {
		if err := p.SetEV(s, 255); err != nil {
			t.Fatalf("set EV %s: %v", s, err)
		}
	}
	if err := p.SetEV(calc.Speed, 1); !apperrors.HasCode(err, apperrors.CodeOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
	if p.EVs()[calc.Speed] != 0 {
		t.Fatalf("failed update wrote speed EV %d", p.EVs()[calc.Speed])
	}
	if err := p.SetEV(calc.Special, 1); !apperrors.HasCode(err, apperrors.CodeInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestShedinjaHP(t *testing.T) {
	p := newPokemon(t, "Shedinja", game.Emerald, "", 50)
	if p.Stats()[calc.HP] != 1 {
		t.Fatalf("expected 1 HP, got %d", p.Stats()[calc.HP])
	}
}

func TestMoves(t *testing.T) {
	tests := []struct {
		game game.Game
		move string
		pp   int
		ok   bool
	}{
		{game.Red, "Thunderbolt", 15, true},
		{game.Red, "Curse", 0, false},
		{game.Gold, "Curse", 10, true},
		{game.Ruby, "Psycho Boost", 5, true},
		{game.Ruby, "Roost", 0, false},
		{game.Ruby, "Shadow Rush", 0, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.game)+"/"+tt.move, func(t *testing.T) {
			p := newPokemon(t, "Pikachu", tt.game, "", 30)
			err := p.SetMove(1, tt.move)
			if !tt.ok {
				if err == nil {
					t.Fatalf("expected %s to be rejected", tt.move)
				}
				return
			}
			if err != nil {
				t.Fatalf("set move: %v", err)
			}
			if got := p.Moves()[1]; got.Move != tt.move || got.PP != tt.pp {
				t.Fatalf("expected %s/%d, got %+v", tt.move, tt.pp, got)
			}
			if err := p.SetMovePP(1, tt.pp+1); !apperrors.HasCode(err, apperrors.CodeOutOfRange) {
				t.Fatalf("expected out of range, got %v", err)
			}
			if err := p.SetMovePP(1, 0); err != nil {
				t.Fatalf("set PP: %v", err)
			}
			if err := p.SetMove(1, "None"); err != nil {
				t.Fatalf("clear move: %v", err)
			}
			if got := p.Moves()[1]; got.Move != "None" {
				t.Fatalf("expected cleared slot, got %+v", got)
			}
		})
	}

	p := newPokemon(t, "Pikachu", game.Ruby, "", 30)
	if err := p.SetMove(4, "Tackle"); !apperrors.HasCode(err, apperrors.CodeOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
}

func TestHeldItem(t *testing.T) {
	for _, g := range []game.Game{game.Gold, game.Emerald} {
		t.Run(string(g), func(t *testing.T) {
			p := newPokemon(t, "Pikachu", g, "", 5)
			if err := p.SetHeldItem("Leftovers"); err != nil {
				t.Fatalf("set held item: %v", err)
			}
			if item, _ := p.HeldItem(); item != "Leftovers" {
				t.Fatalf("expected Leftovers, got %s", item)
			}
			if err := p.SetHeldItem("Bicycle"); !apperrors.HasCode(err, apperrors.CodeInvalidArgument) {
				t.Fatalf("expected key item to be rejected, got %v", err)
			}
			if err := p.SetHeldItem("None"); err != nil {
				t.Fatalf("clear held item: %v", err)
			}
			if item, _ := p.HeldItem(); item != "None" {
				t.Fatalf("expected None, got %s", item)
			}
		})
	}
}

func TestGen2CaughtData(t *testing.T) {
	p := newPokemon(t, "Togepi", game.Crystal, "", 5).(*Gen2)
	if err := p.SetTimeOfDay(Night); err != nil {
		t.Fatalf("set time: %v", err)
	}
	if err := p.SetLevelMet(12); err != nil {
		t.Fatalf("set level met: %v", err)
	}
	if err := p.SetTrainerGender(calc.Female); err != nil {
		t.Fatalf("set trainer gender: %v", err)
	}
	if err := p.SetLocationMet("Sprout Tower"); err != nil {
		t.Fatalf("set location: %v", err)
	}

	if p.TimeOfDay() != Night {
		t.Fatalf("expected night, got %s", p.TimeOfDay())
	}
	if lvl, _ := p.LevelMet(); lvl != 12 {
		t.Fatalf("expected level met 12, got %d", lvl)
	}
	if g, _ := p.TrainerGender(); g != calc.Female {
		t.Fatalf("expected female trainer, got %s", g)
	}
	if loc, _ := p.LocationMet(); loc != "Sprout Tower" {
		t.Fatalf("expected Sprout Tower, got %s", loc)
	}
	if err := p.SetLevelMet(64); !apperrors.HasCode(err, apperrors.CodeOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
	if err := p.SetLocationMet("Littleroot Town"); !apperrors.HasCode(err, apperrors.CodeInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestYellowPikachuFriendship(t *testing.T) {
	p := newPokemon(t, "Pikachu", game.Yellow, "", 5)
	if err := p.SetFriendship(200); err != nil {
		t.Fatalf("set friendship: %v", err)
	}
	if f, _ := p.Friendship(); f != 200 {
		t.Fatalf("expected 200, got %d", f)
	}
	other := newPokemon(t, "Eevee", game.Yellow, "", 5)
	if err := other.SetFriendship(1); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected unsupported, got %v", err)
	}
}

func TestRibbonsAndMarkings(t *testing.T) {
	p := newPokemon(t, "Treecko", game.Emerald, "", 5)
	if err := p.SetRibbon("Cool Hyper", true); err != nil {
		t.Fatalf("set ribbon: %v", err)
	}
	r, _ := p.Ribbons()
	if !r["Cool"] || !r["Cool Super"] || !r["Cool Hyper"] || r["Cool Master"] {
		t.Fatalf("unexpected cool ribbons: %v", r)
	}
	if err := p.SetRibbon("Cool Super", false); err != nil {
		t.Fatalf("clear ribbon: %v", err)
	}
	r, _ = p.Ribbons()
	if !r["Cool"] || r["Cool Super"] || r["Cool Hyper"] {
		t.Fatalf("unexpected cool ribbons after clear: %v", r)
	}
	if err := p.SetRibbon("Champion", true); err != nil {
		t.Fatalf("set champion: %v", err)
	}
	if r, _ = p.Ribbons(); !r["Champion"] || r["World"] {
		t.Fatalf("unexpected ribbons: %v", r)
	}
	if err := p.SetRibbon("Sinnoh Champ", true); !apperrors.HasCode(err, apperrors.CodeInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}

	if err := p.SetMarking(Heart, true); err != nil {
		t.Fatalf("set marking: %v", err)
	}
	m, _ := p.Markings()
	if !m[Heart] || m[Circle] {
		t.Fatalf("unexpected markings: %v", m)
	}
	if err := p.SetContestStat(Feel, 200); err != nil {
		t.Fatalf("set contest stat: %v", err)
	}
	if c, _ := p.ContestStats(); c[Feel] != 200 {
		t.Fatalf("expected feel 200, got %d", c[Feel])
	}
}

func TestCloneIsIndependent(t *testing.T) {
	for _, g := range []game.Game{game.Red, game.Gold, game.Ruby} {
		t.Run(string(g), func(t *testing.T) {
			p := newPokemon(t, "Pikachu", g, "", 10)
			c := p.Clone()
			if err := c.SetNickname("SPARKY"); err != nil {
				t.Fatalf("set nickname: %v", err)
			}
			if err := c.SetLevel(50); err != nil {
				t.Fatalf("set level: %v", err)
			}
			if p.Nickname() != "PIKACHU" || p.Level() != 10 {
				t.Fatalf("clone mutation leaked: %s level %d", p.Nickname(), p.Level())
			}
		})
	}
}

func TestNames(t *testing.T) {
	p := newPokemon(t, "Nidoran♀", game.Blue, "", 5)
	if p.Nickname() != "NIDORAN♀" {
		t.Fatalf("expected NIDORAN♀, got %q", p.Nickname())
	}
	if err := p.SetNickname("ABCDEFGHIJK"); !apperrors.HasCode(err, apperrors.CodeOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
	if err := p.SetTrainerName("ASH"); err != nil {
		t.Fatalf("set trainer name: %v", err)
	}
	if p.TrainerName() != "ASH" {
		t.Fatalf("expected ASH, got %q", p.TrainerName())
	}
	if err := p.SetTrainerName("ABCDEFGH"); !apperrors.HasCode(err, apperrors.CodeOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
	if err := p.SetTrainerID(70000); !apperrors.HasCode(err, apperrors.CodeOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
}

func TestRecomputeKeepsCurrentHP(t *testing.T) {
	for _, g := range []game.Game{game.Red, game.Crystal, game.Emerald} {
		t.Run(string(g), func(t *testing.T) {
			p := newPokemon(t, "Snorlax", g, "", 50)
			if err := p.SetCurrentHP(7); err != nil {
				t.Fatalf("set current HP: %v", err)
			}
			if err := p.SetEV(calc.Speed, 100); err != nil {
				t.Fatalf("set EV: %v", err)
			}
			if p.CurrentHP() != 7 {
				t.Fatalf("expected current HP 7, got %d", p.CurrentHP())
			}
			if err := p.SetLevel(1); err != nil {
				t.Fatalf("set level: %v", err)
			}
			want := min(7, p.Stats()[calc.HP])
			if p.CurrentHP() != want {
				t.Fatalf("expected current HP %d, got %d", want, p.CurrentHP())
			}
		})
	}
}

func TestGen2NewAboveCaughtLevelLimit(t *testing.T) {
	for _, level := range []int{64, 70, 100} {
		p := newPokemon(t, "Pikachu", game.Crystal, "", level)
		if p.Level() != level {
			t.Fatalf("expected level %d, got %d", level, p.Level())
		}
		if met, err := p.LevelMet(); err != nil || met != 0 {
			t.Fatalf("expected level met 0, got %d (%v)", met, err)
		}
	}
}

func TestGameBoyDefaultTrainerID(t *testing.T) {
	for _, g := range []game.Game{game.Red, game.Gold} {
		p := newPokemon(t, "Pikachu", g, "", 5)
		if p.TrainerID() != uint32(DefaultGBTrainerID) {
			t.Fatalf("expected trainer ID %d, got %d", DefaultGBTrainerID, p.TrainerID())
		}
	}
	if p := newPokemon(t, "Pikachu", game.Ruby, "", 5); p.TrainerID() != DefaultTrainerID {
		t.Fatalf("expected trainer ID %d, got %d", DefaultTrainerID, p.TrainerID())
	}
}

func TestGBASetShinyKeepsUnownForm(t *testing.T) {
	for _, form := range []string{"B", "M", "W", "Z", "?"} {
		t.Run(form, func(t *testing.T) {
			p := newPokemon(t, "Unown", game.Emerald, form, 20)
			nature, _ := p.Nature()
			if err := p.SetShiny(true); err != nil {
				t.Fatalf("set shiny: %v", err)
			}
			if shiny, _ := p.Shiny(); !shiny {
				t.Fatalf("expected shiny")
			}
			if p.Form() != form {
				t.Fatalf("expected form %s, got %s", form, p.Form())
			}
			if n, _ := p.Nature(); n != nature {
				t.Fatalf("expected nature %s, got %s", nature, n)
			}
		})
	}
}
