package gamesave

import (
	"bytes"
	"os"
	"strconv"

	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// GameCube memory card exports (.gci) carry a 0x40-byte header whose first
// bytes are the game code.
const (
	gciColosseumSize = 0x60040
	gciXDSize        = 0x56040
	gbSaveMaxSize    = gbSaveSize + 0x30
)

var (
	gciColosseumCode = []byte("GC6")
	gciXDCode        = []byte("GXX")
)

// Detect identifies the format of save data. Game Boy saves are told apart
// by which checksum holds, Game Boy Advance saves by the game code of the
// newest slot.
func Detect(data []byte) (Format, error) {
	switch n := len(data); {
	case n >= gbSaveSize && n <= gbSaveMaxSize:
		switch {
		case gen2Crystal.checksumValid(data):
			return FormatCrystal, nil
		case gen2GS.checksumValid(data):
			return FormatGS, nil
		case gen1ChecksumValid(data):
			return FormatGen1, nil
		}
		return "", apperrors.InvalidFormat("no Game Boy save checksum matches")
	case n == gbaSaveSize:
		if f, ok := gbaFormat(data); ok {
			return f, nil
		}
		return "", apperrors.InvalidFormat("no valid Game Boy Advance save slot")
	case n == gciColosseumSize && bytes.HasPrefix(data, gciColosseumCode):
		return FormatColosseum, nil
	case n == gciXDSize && bytes.HasPrefix(data, gciXDCode):
		return FormatXD, nil
	}
	return "", apperrors.WithMetadata(apperrors.CodeInvalidFormat, "unrecognized save size",
		map[string]string{"Size": strconv.Itoa(len(data))})
}

// DetectType reads the file at path and identifies its format.
func DetectType(path string) (Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInvalidArgument, "read save file", err)
	}
	return Detect(data)
}
