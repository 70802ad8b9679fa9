package codec

import (
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// Field describes Width bits starting at bit Shift of an integer word.
type Field struct {
	Name  string
	Shift uint
	Width uint
}

// Mask returns the in-place mask of the field.
func (f Field) Mask() uint32 {
	return f.Max() << f.Shift
}

// Max returns the largest value the field can hold.
func (f Field) Max() uint32 {
	if f.Width >= 32 {
		return ^uint32(0)
	}
	return (1 << f.Width) - 1
}

// Get extracts the field from word.
func (f Field) Get(word uint32) uint32 {
	return (word >> f.Shift) & f.Max()
}

// Set returns word with the field replaced by v.
func (f Field) Set(word uint32, v uint32) (uint32, error) {
	if v > f.Max() {
		return word, apperrors.OutOfRange(f.Name, 0, int(f.Max()))
	}
	return (word &^ f.Mask()) | (v << f.Shift), nil
}

// Flag is a single bit of a word.
type Flag uint

// Get reports whether the bit is set.
func (b Flag) Get(word uint32) bool {
	return word&(1<<uint(b)) != 0
}

// Set returns word with the bit set or cleared.
func (b Flag) Set(word uint32, on bool) uint32 {
	if on {
		return word | (1 << uint(b))
	}
	return word &^ (1 << uint(b))
}
