package codec

import (
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// DecodeBCD reads packed binary-coded decimal, two digits per byte, most
// significant first. Nibbles above 9 are read as their raw value so odd bytes
// still decode.
func DecodeBCD(b []byte) int {
	v := 0
	for _, x := range b {
		v = v*100 + int(x>>4)*10 + int(x&0x0F)
	}
	return v
}

// MaxBCD returns the largest value n bytes of BCD can hold.
func MaxBCD(n int) int {
	limit := 1
	for i := 0; i < n; i++ {
		limit *= 100
	}
	return limit - 1
}

// EncodeBCD writes v into b as packed BCD.
func EncodeBCD(b []byte, v int) error {
	if v < 0 || v > MaxBCD(len(b)) {
		return apperrors.OutOfRange("BCD value", 0, MaxBCD(len(b)))
	}
	for i := len(b) - 1; i >= 0; i-- {
		lo := v % 10
		v /= 10
		hi := v % 10
		v /= 10
		b[i] = byte(hi<<4 | lo)
	}
	return nil
}
