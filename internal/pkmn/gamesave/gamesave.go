// Package gamesave loads and writes whole game saves.
//
// A Save keeps the bytes it was read from. Encoding starts from those bytes
// and rewrites only the structures the save models, so an unmodified save
// encodes to the same bytes it was loaded from. Checksums are recomputed for
// every region whose content changed.
package gamesave

import (
	"context"
	"os"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/pkmnkit/internal/pkmn/container"
	"github.com/louisbranch/pkmnkit/internal/pkmn/game"
	"github.com/louisbranch/pkmnkit/internal/pkmn/items"
	"github.com/louisbranch/pkmnkit/internal/pkmn/refdb"
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
	pkmnotel "github.com/louisbranch/pkmnkit/internal/platform/otel"
)

// Format identifies a save layout. Games sharing a layout share a format.
type Format string

const (
	FormatGen1      Format = "Red/Blue/Yellow"
	FormatGS        Format = "Gold/Silver"
	FormatCrystal   Format = "Crystal"
	FormatRS        Format = "Ruby/Sapphire"
	FormatEmerald   Format = "Emerald"
	FormatFRLG      Format = "FireRed/LeafGreen"
	FormatColosseum Format = "Colosseum"
	FormatXD        Format = "XD"
)

// Games lists the games written in format f. The first one is the default
// when nothing in the file tells them apart.
func (f Format) Games() []game.Game {
	switch f {
	case FormatGen1:
		return []game.Game{game.Red, game.Blue, game.Yellow}
	case FormatGS:
		return []game.Game{game.Gold, game.Silver}
	case FormatCrystal:
		return []game.Game{game.Crystal}
	case FormatRS:
		return []game.Game{game.Ruby, game.Sapphire}
	case FormatEmerald:
		return []game.Game{game.Emerald}
	case FormatFRLG:
		return []game.Game{game.FireRed, game.LeafGreen}
	case FormatColosseum:
		return []game.Game{game.Colosseum}
	case FormatXD:
		return []game.Game{game.XD}
	}
	return nil
}

func (f Format) has(g game.Game) bool {
	for _, x := range f.Games() {
		if x == g {
			return true
		}
	}
	return false
}

// MaxMoney is the most money any supported game records.
const MaxMoney = 999999

// MaxPlayHours is the largest hour count a save records.
const MaxPlayHours = 255

// layout reads and writes the modeled structures of one format.
type layout interface {
	decode(s *Save) error
	encode(s *Save, out []byte) error
}

// Save is a loaded game save.
type Save struct {
	cat    *refdb.Catalog
	format Format
	game   game.Game
	raw    []byte
	layout layout

	trainerName   string
	trainerID     uint32
	trainerGender string
	rivalName     string
	money         int
	playTime      time.Duration
	currentBox    int

	party  *container.Party
	pc     *container.PC
	bag    *items.Bag
	itemPC *items.List

	pokedex Pokedex
	attrs   map[string]*extraAttr
	// daycare is nil where the save layout does not expose one.
	daycare *container.Daycare

	// boxInit marks Game Boy boxes the game has initialized. Untouched
	// uninitialized boxes are not written back.
	boxInit []bool
	// boxNames holds the names as read. An empty stored name shows as the
	// default name and is not written back unless renamed.
	boxNames []string
	// gbaSlot is the flash slot a Game Boy Advance save was read from.
	gbaSlot gbaSlot
}

func (s *Save) putBoxName(dst []byte, i int, box *container.Box) error {
	name, err := box.Name()
	if err != nil {
		return err
	}
	if i < len(s.boxNames) && s.boxNames[i] == "" && name == container.DefaultBoxName(s.game, i) {
		return nil
	}
	return putText(s.game, dst, name, container.MaxBoxNameLength)
}

// Option adjusts how a save is decoded.
type Option func(*options)

type options struct {
	game game.Game
}

// WithGame names the game of the save when its format covers several games
// the file cannot tell apart (Red and Blue, Gold and Silver, Ruby and
// Sapphire, FireRed and LeafGreen).
func WithGame(g game.Game) Option {
	return func(o *options) { o.game = g }
}

func tracer() trace.Tracer { return pkmnotel.Tracer() }

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Load reads and decodes the save at path.
func Load(ctx context.Context, cat *refdb.Catalog, path string, opts ...Option) (s *Save, err error) {
	ctx, span := tracer().Start(ctx, "gamesave.Load", trace.WithAttributes(attribute.String("pkmn.save.path", path)))
	defer func() { endSpan(span, err) }()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidArgument, "read save file", err)
	}
	s, err = Decode(ctx, cat, data, opts...)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("pkmn.save.format", string(s.format)),
		attribute.String("pkmn.game", string(s.game)),
	)
	return s, nil
}

// Decode decodes a save held in memory.
func Decode(ctx context.Context, cat *refdb.Catalog, data []byte, opts ...Option) (*Save, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	format, err := Detect(data)
	if err != nil {
		return nil, err
	}
	l, g, err := layoutFor(format, data)
	if err != nil {
		return nil, err
	}
	if o.game != "" {
		if !format.has(o.game) {
			return nil, apperrors.InvalidArgument(string(format)+" game", string(o.game))
		}
		g = o.game
	}
	s := &Save{cat: cat, format: format, game: g, raw: append([]byte(nil), data...), layout: l}
	if err := l.decode(s); err != nil {
		return nil, err
	}
	return s, nil
}

func layoutFor(f Format, data []byte) (layout, game.Game, error) {
	switch f {
	case FormatGen1:
		return gen1Layout{}, gen1Game(data), nil
	case FormatGS:
		return gen2GS, game.Gold, nil
	case FormatCrystal:
		return gen2Crystal, game.Crystal, nil
	case FormatRS, FormatEmerald, FormatFRLG:
		return newGBALayout(f), f.Games()[0], nil
	}
	return nil, "", apperrors.Unsupported("save loading", string(f))
}

// Encode returns the save as file bytes.
func (s *Save) Encode() ([]byte, error) {
	out := append([]byte(nil), s.raw...)
	if err := s.layout.encode(s, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveAs encodes the save and writes it to path. The file is written to a
// temporary file in the same directory and renamed over path, so a failed
// call leaves any existing file untouched.
func (s *Save) SaveAs(ctx context.Context, path string) (err error) {
	_, span := tracer().Start(ctx, "gamesave.SaveAs", trace.WithAttributes(
		attribute.String("pkmn.save.path", path),
		attribute.String("pkmn.save.format", string(s.format)),
	))
	defer func() { endSpan(span, err) }()

	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := s.Encode()
	if err != nil {
		return err
	}
	if err := writeAtomic(path, data); err != nil {
		return err
	}
	s.commit(data)
	return nil
}

// commit makes data the saved baseline: later encodes compare against it
// instead of the bytes originally read.
func (s *Save) commit(data []byte) {
	s.raw = data
	for _, a := range s.attrs {
		a.orig = a.value
	}
	for i, box := range s.pc.Boxes() {
		if i < len(s.boxInit) && box.NumPokemon() > 0 {
			s.boxInit[i] = true
		}
		if i >= len(s.boxNames) {
			continue
		}
		name, err := box.Name()
		if err != nil {
			continue
		}
		if s.boxNames[i] != "" || name != container.DefaultBoxName(s.game, i) {
			s.boxNames[i] = name
		}
	}
}

// Format returns the save layout.
func (s *Save) Format() Format { return s.format }

// Game returns the game the save belongs to.
func (s *Save) Game() game.Game { return s.game }

// TrainerName returns the player's name.
func (s *Save) TrainerName() string { return s.trainerName }

// SetTrainerName renames the player.
func (s *Save) SetTrainerName(name string) error {
	if err := checkText(s.game, name, maxTrainerLength); err != nil {
		return err
	}
	s.trainerName = name
	return nil
}

// TrainerID returns the full trainer ID: 16 bits in Game Boy games, the
// combined public and secret IDs from Generation III.
func (s *Save) TrainerID() uint32 { return s.trainerID }

// SetTrainerID changes the trainer ID.
func (s *Save) SetTrainerID(id uint32) error {
	if s.game.Platform() == game.GameBoy && id > 0xFFFF {
		return apperrors.OutOfRange("trainer ID", 0, 0xFFFF)
	}
	s.trainerID = id
	return nil
}

// TrainerPublicID returns the visible part of the trainer ID.
func (s *Save) TrainerPublicID() uint16 { return uint16(s.trainerID) }

// TrainerSecretID returns the hidden part of the trainer ID.
func (s *Save) TrainerSecretID() (uint16, error) {
	if s.game.Generation() < 3 {
		return 0, apperrors.Unsupported("trainer secret ID", string(s.game))
	}
	return uint16(s.trainerID >> 16), nil
}

// TrainerGender returns "Male" or "Female". Games before Crystal only have
// male players.
func (s *Save) TrainerGender() string {
	if s.trainerGender == "" {
		return "Male"
	}
	return s.trainerGender
}

// SetTrainerGender changes the player's gender where the game records it.
func (s *Save) SetTrainerGender(gender string) error {
	if s.game.Generation() == 1 || s.game == game.Gold || s.game == game.Silver {
		return apperrors.Unsupported("trainer gender", string(s.game))
	}
	if gender != "Male" && gender != "Female" {
		return apperrors.InvalidArgument("trainer gender", gender)
	}
	s.trainerGender = gender
	return nil
}

// RivalName returns the rival's name. Only Game Boy saves record it.
func (s *Save) RivalName() (string, error) {
	if s.game.Platform() != game.GameBoy {
		return "", apperrors.Unsupported("rival name", string(s.game))
	}
	return s.rivalName, nil
}

// SetRivalName renames the rival.
func (s *Save) SetRivalName(name string) error {
	if s.game.Platform() != game.GameBoy {
		return apperrors.Unsupported("rival name", string(s.game))
	}
	if err := checkText(s.game, name, maxTrainerLength); err != nil {
		return err
	}
	s.rivalName = name
	return nil
}

// Money returns the player's money.
func (s *Save) Money() int { return s.money }

// SetMoney changes the player's money.
func (s *Save) SetMoney(v int) error {
	if v < 0 || v > MaxMoney {
		return apperrors.OutOfRange("money", 0, MaxMoney)
	}
	s.money = v
	return nil
}

// PlayTime returns the recorded play time.
func (s *Save) PlayTime() time.Duration { return s.playTime }

// SetPlayTime changes the play time. Saves count whole seconds, so any other
// duration is rejected.
func (s *Save) SetPlayTime(d time.Duration) error {
	if d < 0 || d >= (MaxPlayHours+1)*time.Hour {
		return apperrors.OutOfRange("play time hours", 0, MaxPlayHours)
	}
	if d%time.Second != 0 {
		return apperrors.InvalidArgument("play time", d.String())
	}
	s.playTime = d
	return nil
}

// CurrentBox returns the index of the PC box the game has open.
func (s *Save) CurrentBox() int { return s.currentBox }

// Party returns the player's party. Changes to it are saved.
func (s *Save) Party() *container.Party { return s.party }

// PC returns the Pokémon PC. Changes to it are saved.
func (s *Save) PC() *container.PC { return s.pc }

// Bag returns the item bag. Changes to it are saved.
func (s *Save) Bag() *items.Bag { return s.bag }

// ItemPC returns the item storage PC. Changes to it are saved.
func (s *Save) ItemPC() *items.List { return s.itemPC }

// Pokedex returns the seen and caught flags.
func (s *Save) Pokedex() Pokedex { return s.pokedex }

// Daycare returns the daycare. Changes to it are saved. Only Generation I
// saves expose it.
func (s *Save) Daycare() (*container.Daycare, error) {
	if s.daycare == nil {
		return nil, apperrors.Unsupported("daycare", string(s.game))
	}
	return s.daycare, nil
}
