package gamesave

import "math/bits"

// Pokedex holds the seen and caught flags of a save, one bit per national
// dex number, lowest bit first.
type Pokedex struct {
	size   int
	seen   []byte
	caught []byte
}

func newPokedex(size int, seen, caught []byte) Pokedex {
	return Pokedex{
		size:   size,
		seen:   append([]byte(nil), seen...),
		caught: append([]byte(nil), caught...),
	}
}

// Size returns how many species the game's Pokédex covers.
func (d Pokedex) Size() int { return d.size }

// Seen reports whether the species with national dex number id was seen.
func (d Pokedex) Seen(id int) bool { return dexFlag(d.seen, d.size, id) }

// Caught reports whether the species with national dex number id was caught.
func (d Pokedex) Caught(id int) bool { return dexFlag(d.caught, d.size, id) }

// NumSeen counts seen species.
func (d Pokedex) NumSeen() int { return dexCount(d.seen, d.size) }

// NumCaught counts caught species.
func (d Pokedex) NumCaught() int { return dexCount(d.caught, d.size) }

func dexFlag(b []byte, size, id int) bool {
	if id < 1 || id > size {
		return false
	}
	i := id - 1
	return b[i/8]&(1<<(i%8)) != 0
}

func dexCount(b []byte, size int) int {
	n := 0
	for i, x := range b {
		rest := size - i*8
		if rest <= 0 {
			break
		}
		if rest < 8 {
			x &= byte(1<<rest - 1)
		}
		n += bits.OnesCount8(x)
	}
	return n
}
