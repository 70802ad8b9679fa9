package gamesave

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/pkmnkit/internal/pkmn/codec"
	"github.com/louisbranch/pkmnkit/internal/pkmn/container"
	"github.com/louisbranch/pkmnkit/internal/pkmn/game"
	"github.com/louisbranch/pkmnkit/internal/pkmn/pokemon"
	"github.com/louisbranch/pkmnkit/internal/pkmn/refdb"
	"github.com/louisbranch/pkmnkit/internal/pkmn/refdb/refdbtest"
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

func newMon(t *testing.T, cat *refdb.Catalog, species string, g game.Game, level int) pokemon.Pokemon {
	t.Helper()
	p, err := pokemon.New(cat, species, g, "", level)
	if err != nil {
		t.Fatalf("new %s: %v", species, err)
	}
	return p
}

func mustEncodeText(t *testing.T, cs *codec.Charset, dst []byte, s string) {
	t.Helper()
	if err := cs.Encode(dst, s, len(dst)-1); err != nil {
		t.Fatalf("encode %q: %v", s, err)
	}
}

func emptyGBItems(data []byte, off int) {
	data[off] = 0
	data[off+1] = gbListEnd
}

// gen1Save builds a Red or Yellow save with Pikachu in the party, an empty
// current box, an initialized empty second box and uninitialized others.
func gen1Save(t *testing.T, cat *refdb.Catalog, yellow bool) []byte {
	t.Helper()
	g := game.Red
	data := make([]byte, gbSaveSize)
	mustEncodeText(t, codec.GameBoy, data[gen1PlayerName:gen1PlayerName+gbNameSize], "ASH")
	mustEncodeText(t, codec.GameBoy, data[gen1RivalName:gen1RivalName+gbNameSize], "GARY")
	be.PutU16(data, gen1PlayerID, 12345)
	if err := codec.EncodeBCD(data[gen1Money:gen1Money+3], 3000); err != nil {
		t.Fatalf("encode money: %v", err)
	}
	if err := codec.EncodeBCD(data[gen1CasinoCoins:gen1CasinoCoins+2], 120); err != nil {
		t.Fatalf("encode coins: %v", err)
	}
	data[gen1PlayHours], data[gen1PlayMinutes], data[gen1PlaySeconds] = 12, 34, 56
	data[gen1DexSeen+3] = 0x01 // #25
	data[gen1DexSeen] = 0x07   // #1-3
	data[gen1DexCaught+3] = 0x01
	if yellow {
		g = game.Yellow
		data[gen1Friendship] = 90
	}
	emptyGBItems(data, gen1Bag)
	emptyGBItems(data, gen1ItemPC)

	if err := encodeGBList(data, gen1PartyList, []pokemon.Pokemon{newMon(t, cat, "Pikachu", g, 5)}); err != nil {
		t.Fatalf("encode party: %v", err)
	}
	for i := 0; i < 12; i++ {
		data[gen1BoxOffset(i)] = 0xFF
	}
	l := gen1BoxList
	l.offset = gen1BoxBuffer
	if err := encodeGBList(data, l, nil); err != nil {
		t.Fatalf("encode box buffer: %v", err)
	}
	l.offset = gen1BoxOffset(1)
	if err := encodeGBList(data, l, nil); err != nil {
		t.Fatalf("encode box: %v", err)
	}

	data[gen1ChecksumOff] = gen1Checksum(data[gen1PlayerName:gen1ChecksumOff])
	for _, bank := range gen1Banks {
		for i := 0; i < gen1BoxesPerBank; i++ {
			start := bank + i*gen1BoxSize
			data[bank+gen1BankChecksum+1+i] = gen1Checksum(data[start : start+gen1BoxSize])
		}
		data[bank+gen1BankChecksum] = gen1Checksum(data[bank : bank+gen1BankChecksum])
	}
	return data
}

// crystalSave builds a Crystal save with Cyndaquil in the party and a female
// player.
func crystalSave(t *testing.T, cat *refdb.Catalog) []byte {
	t.Helper()
	l := gen2Crystal
	data := make([]byte, gbSaveSize)
	mustEncodeText(t, codec.GameBoy, data[gen2PlayerName:gen2PlayerName+gbNameSize], "KRIS")
	mustEncodeText(t, codec.GameBoy, data[gen2RivalName:gen2RivalName+gbNameSize], "SILVER")
	be.PutU16(data, gen2PlayerID, 54321)
	if err := be.PutU24(data, l.money, 4200); err != nil {
		t.Fatalf("encode money: %v", err)
	}
	be.PutU16(data, l.playTime, 300)
	data[l.playTime+2], data[l.playTime+3] = 1, 2
	data[l.playerGender] = 1
	data[gen2TextboxFrame] = 3
	be.PutU16(data, l.casinoCoins, 500)
	for _, off := range []int{l.itemPocket, l.keyPocket, l.ballPocket, l.itemPC} {
		emptyGBItems(data, off)
	}
	if err := encodeGBList(data, l.partyList(), []pokemon.Pokemon{newMon(t, cat, "Cyndaquil", game.Crystal, 5)}); err != nil {
		t.Fatalf("encode party: %v", err)
	}
	for i := 0; i < 14; i++ {
		if err := encodeGBList(data, l.boxList(i, 0), nil); err != nil {
			t.Fatalf("encode box %d: %v", i, err)
		}
		name := data[l.boxNames+i*gen2BoxNameSize : l.boxNames+(i+1)*gen2BoxNameSize]
		if i == 2 {
			for j := range name {
				name[j] = codec.GameBoy.Terminator()
			}
			continue
		}
		mustEncodeText(t, codec.GameBoy, name, "BOX"+string(rune('A'+i)))
	}
	codec.LittleEndian.PutU16(data, l.checksum, gen2Checksum(data[l.checksumStart:l.checksumEnd]))
	return data
}

const testGBAKey = 0x1234ABCD

// gbaSave builds a Generation III save in slot 0 with sectors stored out of
// order, Pikachu in the party and five Potions in the bag.
func gbaSave(t *testing.T, cat *refdb.Catalog, f Format) []byte {
	t.Helper()
	l := newGBALayout(f)
	g := f.Games()[0]
	data := make([]byte, gbaSaveSize)
	slot := gbaSlot{index: 7}
	for id := range slot.sectors {
		slot.sectors[id] = ((id + 3) % gbaSectorsPerSlot) * gbaSectorSize
	}
	var key uint32
	sec0 := l.section(data, slot, 0)
	switch f {
	case FormatEmerald:
		key = testGBAKey
		le.PutU32(sec0, gbaGameCode, key)
	case FormatFRLG:
		key = testGBAKey
		le.PutU32(sec0, gbaGameCode, 1)
		le.PutU32(sec0, l.securityKey, key)
	}
	mustEncodeText(t, codec.GBA, sec0[gbaTrainerName:gbaTrainerName+gbaNameSize], "MAY")
	sec0[gbaTrainerGender] = 1
	le.PutU32(sec0, gbaTrainerID, 0x0001D431)
	le.PutU16(sec0, gbaPlayTime, 10)
	sec0[gbaPlayTime+2], sec0[gbaPlayTime+3] = 20, 30
	sec0[gbaTextOptions] = 4<<3 | 2
	sec0[gbaDexSeen+3] = 0x01

	sec1 := l.section(data, slot, 1)
	le.PutU32(sec1, l.money, 5000^key)
	le.PutU16(sec1, l.money+4, 77^uint16(key))
	le.PutU16(sec1, l.pockets[0], 13)
	le.PutU16(sec1, l.pockets[0]+2, 5^uint16(key))
	p := newMon(t, cat, "Pikachu", g, 10).(*pokemon.GBA)
	copy(sec1[l.teamSize+4:], p.Bytes())
	le.PutU32(sec1, l.teamSize, 1)

	pc := l.pcBuffer(data, slot)
	for i := 0; i < 14; i++ {
		mustEncodeText(t, codec.GBA, pc[gbaPCBoxNames+i*gbaBoxNameSize:gbaPCBoxNames+(i+1)*gbaBoxNameSize], "BOX "+string(rune('A'+i)))
	}
	l.putPCBuffer(data, slot, pc)

	for id := 0; id < gbaSectorsPerSlot; id++ {
		off := slot.sectors[id]
		le.PutU16(data, off+gbaFooterID, uint16(id))
		le.PutU32(data, off+gbaFooterMagic, gbaMagic)
		le.PutU32(data, off+gbaFooterIndex, slot.index)
		le.PutU16(data, off+gbaFooterChecksum, gbaSectorChecksum(data[off:off+l.sectionSizes[id]]))
	}
	return data
}

func decode(t *testing.T, cat *refdb.Catalog, data []byte, opts ...Option) *Save {
	t.Helper()
	s, err := Decode(context.Background(), cat, data, opts...)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return s
}

func encode(t *testing.T, s *Save) []byte {
	t.Helper()
	out, err := s.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return out
}

func TestUnmodifiedSavesEncodeIdentically(t *testing.T) {
	cat := refdbtest.Catalog(t)
	tests := []struct {
		name   string
		data   []byte
		format Format
		game   game.Game
	}{
		{"red", gen1Save(t, cat, false), FormatGen1, game.Red},
		{"yellow", gen1Save(t, cat, true), FormatGen1, game.Yellow},
		{"crystal", crystalSave(t, cat), FormatCrystal, game.Crystal},
		{"ruby", gbaSave(t, cat, FormatRS), FormatRS, game.Ruby},
		{"emerald", gbaSave(t, cat, FormatEmerald), FormatEmerald, game.Emerald},
		{"firered", gbaSave(t, cat, FormatFRLG), FormatFRLG, game.FireRed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := decode(t, cat, tt.data)
			if s.Format() != tt.format || s.Game() != tt.game {
				t.Fatalf("expected %s/%s, got %s/%s", tt.format, tt.game, s.Format(), s.Game())
			}
			if s.Party().NumPokemon() != 1 {
				t.Fatalf("expected 1 party member, got %d", s.Party().NumPokemon())
			}
			if !bytes.Equal(encode(t, s), tt.data) {
				t.Fatalf("expected unmodified save to encode identically")
			}
		})
	}
}

func TestGen1Fields(t *testing.T) {
	cat := refdbtest.Catalog(t)
	s := decode(t, cat, gen1Save(t, cat, true))
	if s.TrainerName() != "ASH" || s.TrainerID() != 12345 || s.Money() != 3000 {
		t.Fatalf("expected ASH/12345/3000, got %s/%d/%d", s.TrainerName(), s.TrainerID(), s.Money())
	}
	if rival, err := s.RivalName(); err != nil || rival != "GARY" {
		t.Fatalf("expected rival GARY, got %q (%v)", rival, err)
	}
	if want := 12*time.Hour + 34*time.Minute + 56*time.Second; s.PlayTime() != want {
		t.Fatalf("expected play time %s, got %s", want, s.PlayTime())
	}
	if !s.Pokedex().Seen(25) || !s.Pokedex().Caught(25) || s.Pokedex().NumSeen() != 4 {
		t.Fatalf("unexpected pokedex: seen %d caught %d", s.Pokedex().NumSeen(), s.Pokedex().NumCaught())
	}
	if v, err := s.NumericAttribute("pikachu_friendship"); err != nil || v != 90 {
		t.Fatalf("expected friendship 90, got %d (%v)", v, err)
	}
	if v, err := s.NumericAttribute("casino_coins"); err != nil || v != 120 {
		t.Fatalf("expected 120 coins, got %d (%v)", v, err)
	}
	if _, err := s.TrainerSecretID(); !apperrors.HasCode(err, apperrors.CodeUnsupported) {
		t.Fatalf("expected unsupported secret ID, got %v", err)
	}
	if err := s.SetTrainerGender("Female"); !apperrors.HasCode(err, apperrors.CodeUnsupported) {
		t.Fatalf("expected unsupported gender, got %v", err)
	}
	if _, err := s.PC().BoxNames(); !apperrors.HasCode(err, apperrors.CodeUnsupported) {
		t.Fatalf("expected unsupported box names, got %v", err)
	}
}

func TestGen1ModifyAndReload(t *testing.T) {
	cat := refdbtest.Catalog(t)
	s := decode(t, cat, gen1Save(t, cat, false), WithGame(game.Blue))
	if s.Game() != game.Blue {
		t.Fatalf("expected Blue, got %s", s.Game())
	}
	if err := s.SetTrainerName("RED"); err != nil {
		t.Fatalf("set name: %v", err)
	}
	if err := s.SetMoney(999999); err != nil {
		t.Fatalf("set money: %v", err)
	}
	if err := s.Bag().Add("Potion", 3); err != nil {
		t.Fatalf("add potion: %v", err)
	}
	if err := s.SetNumericAttribute("casino_coins", 9999); err != nil {
		t.Fatalf("set coins: %v", err)
	}
	box, err := s.PC().Box(5)
	if err != nil {
		t.Fatalf("box: %v", err)
	}
	if err := box.Set(0, newMon(t, cat, "Charmander", game.Blue, 7)); err != nil {
		t.Fatalf("set box slot: %v", err)
	}

	path := filepath.Join(t.TempDir(), "blue.sav")
	if err := s.SaveAs(context.Background(), path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(context.Background(), cat, path, WithGame(game.Blue))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.TrainerName() != "RED" || got.Money() != 999999 {
		t.Fatalf("expected RED/999999, got %s/%d", got.TrainerName(), got.Money())
	}
	if got.Bag().Pockets()[0].NumItems() != 1 {
		t.Fatalf("expected 1 bag item, got %d", got.Bag().Pockets()[0].NumItems())
	}
	if v, _ := got.NumericAttribute("casino_coins"); v != 9999 {
		t.Fatalf("expected 9999 coins, got %d", v)
	}
	gotBox, _ := got.PC().Box(5)
	p, err := gotBox.At(0)
	if err != nil || p == nil || p.Species().Name != "Charmander" {
		t.Fatalf("expected Charmander in box 6, got %v (%v)", p, err)
	}
	if _, err := got.NumericAttribute("pikachu_friendship"); !apperrors.HasCode(err, apperrors.CodeUnsupported) {
		t.Fatalf("expected no friendship outside Yellow, got %v", err)
	}
}

func TestCrystalModifyAndReload(t *testing.T) {
	cat := refdbtest.Catalog(t)
	s := decode(t, cat, crystalSave(t, cat))
	if s.TrainerGender() != "Female" {
		t.Fatalf("expected Female, got %s", s.TrainerGender())
	}
	if v, _ := s.NumericAttribute("textbox_frame"); v != 4 {
		t.Fatalf("expected textbox frame 4, got %d", v)
	}
	names, err := s.PC().BoxNames()
	if err != nil {
		t.Fatalf("box names: %v", err)
	}
	if names[0] != "BOXA" || names[2] != "BOX3" {
		t.Fatalf("expected BOXA and default BOX3, got %q and %q", names[0], names[2])
	}

	if err := s.SetTrainerGender("Male"); err != nil {
		t.Fatalf("set gender: %v", err)
	}
	if err := s.SetPlayTime(2*time.Hour + time.Second); err != nil {
		t.Fatalf("set play time: %v", err)
	}
	if err := s.SetNumericAttribute("textbox_frame", 9); !apperrors.HasCode(err, apperrors.CodeOutOfRange) {
		t.Fatalf("expected out of range frame, got %v", err)
	}
	box, _ := s.PC().Box(0)
	if err := box.SetName("PARTY"); err != nil {
		t.Fatalf("rename box: %v", err)
	}
	if err := box.Set(0, newMon(t, cat, "Pikachu", game.Crystal, 12)); err != nil {
		t.Fatalf("set box slot: %v", err)
	}

	got := decode(t, cat, encode(t, s))
	if got.TrainerGender() != "Male" {
		t.Fatalf("expected Male, got %s", got.TrainerGender())
	}
	if got.PlayTime() != 2*time.Hour+time.Second {
		t.Fatalf("expected 2h0m1s, got %s", got.PlayTime())
	}
	names, _ = got.PC().BoxNames()
	if names[0] != "PARTY" {
		t.Fatalf("expected renamed box, got %q", names[0])
	}
	gotBox, _ := got.PC().Box(0)
	if gotBox.NumPokemon() != 1 {
		t.Fatalf("expected 1 Pokémon in current box, got %d", gotBox.NumPokemon())
	}
}

func TestGBAFieldsAndReload(t *testing.T) {
	cat := refdbtest.Catalog(t)
	for _, f := range []Format{FormatRS, FormatEmerald, FormatFRLG} {
		t.Run(string(f), func(t *testing.T) {
			s := decode(t, cat, gbaSave(t, cat, f))
			if s.TrainerName() != "MAY" || s.TrainerGender() != "Female" || s.Money() != 5000 {
				t.Fatalf("expected MAY/Female/5000, got %s/%s/%d", s.TrainerName(), s.TrainerGender(), s.Money())
			}
			if sid, err := s.TrainerSecretID(); err != nil || sid != 1 || s.TrainerPublicID() != 0xD431 {
				t.Fatalf("unexpected IDs %d/%d (%v)", s.TrainerPublicID(), sid, err)
			}
			if v, _ := s.NumericAttribute("casino_coins"); v != 77 {
				t.Fatalf("expected 77 coins, got %d", v)
			}
			if v, _ := s.NumericAttribute("textbox_frame"); v != 5 {
				t.Fatalf("expected textbox frame 5, got %d", v)
			}
			slot, err := s.Bag().Pockets()[0].At(0)
			if err != nil || slot.Item != "Potion" || slot.Amount != 5 {
				t.Fatalf("expected 5 Potions, got %+v (%v)", slot, err)
			}
			if _, err := s.RivalName(); !apperrors.HasCode(err, apperrors.CodeUnsupported) {
				t.Fatalf("expected unsupported rival name, got %v", err)
			}

			if err := s.SetMoney(123456); err != nil {
				t.Fatalf("set money: %v", err)
			}
			if err := s.SetNumericAttribute("casino_coins", 9999); err != nil {
				t.Fatalf("set coins: %v", err)
			}
			if err := s.Bag().Remove("Potion", 5); err != nil {
				t.Fatalf("remove potions: %v", err)
			}
			box, _ := s.PC().Box(3)
			if err := box.Set(17, newMon(t, cat, "Pikachu", s.Game(), 30)); err != nil {
				t.Fatalf("set box slot: %v", err)
			}
			if err := s.Party().Clear(0); err != nil {
				t.Fatalf("clear party: %v", err)
			}

			out := encode(t, s)
			if got, err := Detect(out); err != nil || got != f {
				t.Fatalf("expected %s after encode, got %s (%v)", f, got, err)
			}
			got := decode(t, cat, out)
			if got.Money() != 123456 || got.Bag().Pockets()[0].NumItems() != 0 || got.Party().NumPokemon() != 0 {
				t.Fatalf("unexpected reload: money %d items %d party %d",
					got.Money(), got.Bag().Pockets()[0].NumItems(), got.Party().NumPokemon())
			}
			if v, _ := got.NumericAttribute("casino_coins"); v != 9999 {
				t.Fatalf("expected 9999 coins, got %d", v)
			}
			gotBox, _ := got.PC().Box(3)
			if p, _ := gotBox.At(17); p == nil || p.Level() != 30 {
				t.Fatalf("expected level 30 Pikachu in box 4 slot 18, got %v", p)
			}
		})
	}
}

func TestGBAUsesNewestSlot(t *testing.T) {
	cat := refdbtest.Catalog(t)
	older := gbaSave(t, cat, FormatEmerald)
	newer := gbaSave(t, cat, FormatEmerald)
	s := decode(t, cat, newer)
	if err := s.SetMoney(1); err != nil {
		t.Fatalf("set money: %v", err)
	}
	newer = encode(t, s)
	for id := 0; id < gbaSectorsPerSlot; id++ {
		off := id * gbaSectorSize
		le.PutU32(newer, off+gbaFooterIndex, 8)
		sizes := newGBALayout(FormatEmerald).sectionSizes
		le.PutU16(newer, off+gbaFooterChecksum, gbaSectorChecksum(newer[off:off+sizes[le.U16(newer, off+gbaFooterID)]]))
	}

	data := make([]byte, gbaSaveSize)
	copy(data, older[:gbaSectorsPerSlot*gbaSectorSize])
	copy(data[gbaSectorsPerSlot*gbaSectorSize:], newer[:gbaSectorsPerSlot*gbaSectorSize])
	if got := decode(t, cat, data); got.Money() != 1 {
		t.Fatalf("expected newest slot money 1, got %d", got.Money())
	}

	// A corrupted newest slot falls back to the older one.
	data[gbaSectorsPerSlot*gbaSectorSize+10] ^= 0xFF
	if got := decode(t, cat, data); got.Money() != 5000 {
		t.Fatalf("expected fallback money 5000, got %d", got.Money())
	}
}

func TestDetect(t *testing.T) {
	cat := refdbtest.Catalog(t)
	badGB := gen1Save(t, cat, false)
	badGB[gen1ChecksumOff]++
	colosseum := make([]byte, gciColosseumSize)
	copy(colosseum, "GC6E01")
	xd := make([]byte, gciXDSize)
	copy(xd, "GXXE01")

	tests := []struct {
		name string
		data []byte
		want Format
		code apperrors.Code
	}{
		{"gen1 with trailing clock", append(gen1Save(t, cat, false), make([]byte, 0x10)...), FormatGen1, ""},
		{"crystal", crystalSave(t, cat), FormatCrystal, ""},
		{"emerald", gbaSave(t, cat, FormatEmerald), FormatEmerald, ""},
		{"colosseum", colosseum, FormatColosseum, ""},
		{"xd", xd, FormatXD, ""},
		{"bad checksum", badGB, "", apperrors.CodeInvalidFormat},
		{"blank flash", make([]byte, gbaSaveSize), "", apperrors.CodeInvalidFormat},
		{"odd size", make([]byte, 1234), "", apperrors.CodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.data)
			if tt.code != "" {
				if !apperrors.HasCode(err, tt.code) {
					t.Fatalf("expected %s, got %v", tt.code, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("expected %s, got %s (%v)", tt.want, got, err)
			}
		})
	}

	for name, data := range map[string][]byte{"Colosseum": colosseum, "XD": xd} {
		if _, err := Decode(context.Background(), cat, data); !apperrors.HasCode(err, apperrors.CodeUnsupported) {
			t.Fatalf("expected unsupported %s load, got %v", name, err)
		}
	}
}

func TestDetectType(t *testing.T) {
	cat := refdbtest.Catalog(t)
	path := filepath.Join(t.TempDir(), "crystal.sav")
	if err := os.WriteFile(path, crystalSave(t, cat), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if f, err := DetectType(path); err != nil || f != FormatCrystal {
		t.Fatalf("expected Crystal, got %s (%v)", f, err)
	}
	if _, err := DetectType(path + ".missing"); !apperrors.HasCode(err, apperrors.CodeInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestWithGameRejectsOtherFormat(t *testing.T) {
	cat := refdbtest.Catalog(t)
	_, err := Decode(context.Background(), cat, gen1Save(t, cat, false), WithGame(game.Gold))
	if !apperrors.HasCode(err, apperrors.CodeInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestSaveFieldValidation(t *testing.T) {
	cat := refdbtest.Catalog(t)
	s := decode(t, cat, gen1Save(t, cat, false))
	tests := []struct {
		name string
		err  error
		code apperrors.Code
	}{
		{"money", s.SetMoney(MaxMoney + 1), apperrors.CodeOutOfRange},
		{"trainer ID", s.SetTrainerID(0x10000), apperrors.CodeOutOfRange},
		{"long name", s.SetTrainerName("ABCDEFGH"), apperrors.CodeOutOfRange},
		{"bad character", s.SetRivalName("BL@"), apperrors.CodeInvalidArgument},
		{"play time", s.SetPlayTime(256 * time.Hour), apperrors.CodeOutOfRange},
		{"sub-second play time", s.SetPlayTime(time.Hour + 500*time.Millisecond), apperrors.CodeInvalidArgument},
		{"read-only", s.SetNumericAttribute("pokedex_seen", 1), apperrors.CodeInvalidArgument},
		{"unknown", s.SetNumericAttribute("badges", 1), apperrors.CodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !apperrors.HasCode(tt.err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, tt.err)
			}
		})
	}
	want := []string{"casino_coins", "pokedex_caught", "pokedex_seen"}
	if got := strings.Join(s.AttributeNames(), ","); got != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %s", want, got)
	}
}

func TestSaveAsFailureKeepsTarget(t *testing.T) {
	cat := refdbtest.Catalog(t)
	s := decode(t, cat, gen1Save(t, cat, false))
	dir := t.TempDir()
	target := filepath.Join(dir, "occupied")
	if err := os.MkdirAll(filepath.Join(target, "child"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := s.SaveAs(context.Background(), target); err == nil {
		t.Fatalf("expected error saving over a directory")
	}
	if info, err := os.Stat(target); err != nil || !info.IsDir() {
		t.Fatalf("expected target directory to survive, got %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp file cleanup, found %d entries", len(entries))
	}
}

func TestSaveAsResetsBaseline(t *testing.T) {
	cat := refdbtest.Catalog(t)
	s := decode(t, cat, gen1Save(t, cat, false))
	box, err := s.PC().Box(5)
	if err != nil {
		t.Fatalf("box: %v", err)
	}
	if err := box.Set(0, newMon(t, cat, "Charmander", game.Red, 7)); err != nil {
		t.Fatalf("set box slot: %v", err)
	}
	if err := s.SetNumericAttribute("casino_coins", 200); err != nil {
		t.Fatalf("set coins: %v", err)
	}
	path := filepath.Join(t.TempDir(), "red.sav")
	if err := s.SaveAs(context.Background(), path); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Undo both edits on the same Save and encode again.
	if err := box.Clear(0); err != nil {
		t.Fatalf("clear box slot: %v", err)
	}
	if err := s.SetNumericAttribute("casino_coins", 120); err != nil {
		t.Fatalf("set coins: %v", err)
	}
	got := decode(t, cat, encode(t, s))
	gotBox, _ := got.PC().Box(5)
	if gotBox.NumPokemon() != 0 {
		t.Fatalf("expected emptied box, got %d Pokémon", gotBox.NumPokemon())
	}
	if v, _ := got.NumericAttribute("casino_coins"); v != 120 {
		t.Fatalf("expected 120 coins, got %d", v)
	}
	if !bytes.Equal(encode(t, got), encode(t, s)) {
		t.Fatalf("expected reloaded save to encode like the edited one")
	}
}

func TestSaveAsKeepsRenamedBoxes(t *testing.T) {
	cat := refdbtest.Catalog(t)
	s := decode(t, cat, crystalSave(t, cat))
	box, _ := s.PC().Box(2)
	if err := box.SetName("FOSSILS"); err != nil {
		t.Fatalf("rename box: %v", err)
	}
	path := filepath.Join(t.TempDir(), "crystal.sav")
	if err := s.SaveAs(context.Background(), path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := box.SetName(container.DefaultBoxName(game.Crystal, 2)); err != nil {
		t.Fatalf("rename box: %v", err)
	}
	names, _ := decode(t, cat, encode(t, s)).PC().BoxNames()
	if names[2] != "BOX3" {
		t.Fatalf("expected box renamed back to BOX3, got %q", names[2])
	}
}

func TestGen1Daycare(t *testing.T) {
	cat := refdbtest.Catalog(t)
	s := decode(t, cat, gen1Save(t, cat, false))
	d, err := s.Daycare()
	if err != nil {
		t.Fatalf("daycare: %v", err)
	}
	if d.NumPokemon() != 0 || d.Capacity() != 1 || d.CanBreed() {
		t.Fatalf("expected empty one-slot daycare, got %d/%d breeds %v", d.NumPokemon(), d.Capacity(), d.CanBreed())
	}
	mon := newMon(t, cat, "Snorlax", game.Red, 30)
	if err := mon.SetNickname("LAX"); err != nil {
		t.Fatalf("set nickname: %v", err)
	}
	if err := d.Set(0, mon); err != nil {
		t.Fatalf("set daycare: %v", err)
	}

	out := encode(t, s)
	if out[gen1DaycareInUse] != 1 {
		t.Fatalf("expected in-use flag, got %d", out[gen1DaycareInUse])
	}
	got := decode(t, cat, out)
	gd, _ := got.Daycare()
	p, err := gd.At(0)
	if err != nil || p == nil {
		t.Fatalf("expected daycare Pokémon, got %v (%v)", p, err)
	}
	if p.Species().Name != "Snorlax" || p.Level() != 30 || p.Nickname() != "LAX" {
		t.Fatalf("expected LAX the level 30 Snorlax, got %s %s Lv.%d", p.Nickname(), p.Species().Name, p.Level())
	}

	if err := gd.Clear(0); err != nil {
		t.Fatalf("clear daycare: %v", err)
	}
	again, _ := decode(t, cat, encode(t, got)).Daycare()
	if again.NumPokemon() != 0 {
		t.Fatalf("expected empty daycare, got %d", again.NumPokemon())
	}

	if _, err := decode(t, cat, crystalSave(t, cat)).Daycare(); !apperrors.HasCode(err, apperrors.CodeUnsupported) {
		t.Fatalf("expected unsupported daycare, got %v", err)
	}
}
