package pokemon

import (
	"strings"

	"github.com/louisbranch/pkmnkit/internal/pkmn/codec"
)

const (
	gbaDataOffset = 0x20
	gbaDataSize   = 48
	gbaBlockSize  = 12
	gbaBlocks     = "GAEM"
)

// gbaOrders is the on-disk order of the four substructures, chosen by
// personality % 24.
var gbaOrders = [24]string{
	"GAEM", "GAME", "GEAM", "GEMA", "GMAE", "GMEA",
	"AGEM", "AGME", "AEGM", "AEMG", "AMGE", "AMEG",
	"EGAM", "EGMA", "EAGM", "EAMG", "EMGA", "EMAG",
	"MGAE", "MGEA", "MAGE", "MAEG", "MEGA", "MEAG",
}

var le = codec.LittleEndian

// gbaCrypt XORs the data section with key, one little-endian word at a time.
func gbaCrypt(data []byte, key uint32) {
	for i := 0; i+4 <= len(data); i += 4 {
		le.PutU32(data, i, le.U32(data, i)^key)
	}
}

// gbaChecksum sums the plain data section as little-endian halfwords.
func gbaChecksum(data []byte) uint16 {
	var sum uint16
	for i := 0; i+2 <= len(data); i += 2 {
		sum += le.U16(data, i)
	}
	return sum
}

// gbaUnshuffle returns the data section in GAEM order.
func gbaUnshuffle(data []byte, personality uint32) []byte {
	out := make([]byte, gbaDataSize)
	for pos, block := range gbaOrders[personality%24] {
		dst := strings.IndexRune(gbaBlocks, block)
		copy(out[dst*gbaBlockSize:], data[pos*gbaBlockSize:(pos+1)*gbaBlockSize])
	}
	return out
}

// gbaShuffle is the inverse of gbaUnshuffle.
func gbaShuffle(plain []byte, personality uint32) []byte {
	out := make([]byte, gbaDataSize)
	for pos, block := range gbaOrders[personality%24] {
		src := strings.IndexRune(gbaBlocks, block)
		copy(out[pos*gbaBlockSize:], plain[src*gbaBlockSize:(src+1)*gbaBlockSize])
	}
	return out
}
