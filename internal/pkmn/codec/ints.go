package codec

import (
	"encoding/binary"

	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// ByteOrder selects the endianness of a multi-byte field.
type ByteOrder int

const (
	BigEndian ByteOrder = iota
	LittleEndian
)

func (o ByteOrder) binary() binary.ByteOrder {
	if o == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// U16 reads a 16-bit value at off.
func (o ByteOrder) U16(b []byte, off int) uint16 {
	return o.binary().Uint16(b[off:])
}

// PutU16 writes a 16-bit value at off.
func (o ByteOrder) PutU16(b []byte, off int, v uint16) {
	o.binary().PutUint16(b[off:], v)
}

// U32 reads a 32-bit value at off.
func (o ByteOrder) U32(b []byte, off int) uint32 {
	return o.binary().Uint32(b[off:])
}

// PutU32 writes a 32-bit value at off.
func (o ByteOrder) PutU32(b []byte, off int, v uint32) {
	o.binary().PutUint32(b[off:], v)
}

// U24 reads a 3-byte value at off.
func (o ByteOrder) U24(b []byte, off int) uint32 {
	if o == LittleEndian {
		return uint32(b[off]) | uint32(b[off+1])<<8 | uint32(b[off+2])<<16
	}
	return uint32(b[off])<<16 | uint32(b[off+1])<<8 | uint32(b[off+2])
}

// MaxU24 is the largest value a 3-byte field holds.
const MaxU24 = 1<<24 - 1

// PutU24 writes a 3-byte value at off.
func (o ByteOrder) PutU24(b []byte, off int, v uint32) error {
	if v > MaxU24 {
		return apperrors.OutOfRange("24-bit value", 0, MaxU24)
	}
	if o == LittleEndian {
		b[off], b[off+1], b[off+2] = byte(v), byte(v>>8), byte(v>>16)
		return nil
	}
	b[off], b[off+1], b[off+2] = byte(v>>16), byte(v>>8), byte(v)
	return nil
}
