package pokemon

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/pkmnkit/internal/pkmn/game"
	"github.com/louisbranch/pkmnkit/internal/pkmn/refdb"
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// Single-entity file extensions.
const (
	ExtGen1 = ".pk1"
	ExtGen2 = ".pk2"
	ExtGBA  = ".3gpkm"
)

// Game Boy entity files hold a box or party record, optionally followed by
// the trainer name and nickname arrays.
const gbNamesSize = 2 * NameSize

// ReadFile decodes a .pk1, .pk2 or .3gpkm file. Game Boy records do not say
// which game they came from, so g names it; an empty g picks Red or Gold.
// A .3gpkm file uses its recorded original game unless g is given.
func ReadFile(cat *refdb.Catalog, path string, g game.Game) (Pokemon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidArgument, "read entity file", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ExtGen1:
		if g == "" {
			g = game.Red
		}
		record, nickname, trainerName, err := splitGB(data, Gen1BoxSize, Gen1PartySize)
		if err != nil {
			return nil, err
		}
		return FromGen1(cat, g, record, nickname, trainerName)
	case ExtGen2:
		if g == "" {
			g = game.Gold
		}
		record, nickname, trainerName, err := splitGB(data, Gen2BoxSize, Gen2PartySize)
		if err != nil {
			return nil, err
		}
		return FromGen2(cat, g, record, nickname, trainerName)
	case ExtGBA:
		if g == "" {
			g = game.Ruby
			if p, err := FromGBA(cat, g, data); err == nil {
				if origin, err := p.OriginalGame(); err == nil && origin.Platform() == game.GameBoyAdvance {
					g = origin
				}
			}
		}
		return FromGBA(cat, g, data)
	}
	return nil, apperrors.InvalidArgument("entity file extension", ext)
}

func splitGB(data []byte, boxSize, partySize int) (record, nickname, trainerName []byte, err error) {
	switch len(data) {
	case boxSize, partySize:
		return data, nil, nil, nil
	case boxSize + gbNamesSize, partySize + gbNamesSize:
		n := len(data) - gbNamesSize
		return data[:n], data[n+NameSize:], data[n : n+NameSize], nil
	}
	return nil, nil, nil, apperrors.InvalidFormat("unexpected entity file size")
}

// Extension returns the single-entity file extension for p's generation.
func Extension(p Pokemon) string {
	switch p.Game().Generation() {
	case 1:
		return ExtGen1
	case 2:
		return ExtGen2
	}
	return ExtGBA
}

// WriteFile stores p as a party record. Game Boy files carry the trainer
// name and nickname after the record. The extension of path must match p.
func WriteFile(p Pokemon, path string) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext != Extension(p) {
		return apperrors.InvalidArgument("entity file extension", ext)
	}
	var data []byte
	switch v := p.(type) {
	case *Gen1:
		data = append(append(v.Bytes(), v.TrainerNameBytes()...), v.NicknameBytes()...)
	case *Gen2:
		data = append(append(v.Bytes(), v.TrainerNameBytes()...), v.NicknameBytes()...)
	case *GBA:
		data = v.Bytes()
	default:
		return apperrors.Unsupported("entity files", string(p.Game()))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperrors.Wrap(apperrors.CodeUnknown, "write entity file", err)
	}
	return nil
}
