// Package codec translates values to and from their on-disk representation:
// fixed-width integers, packed bit fields, BCD, the Game Boy IV word, the
// Generation III IV word, PP bytes and the in-game character sets.
//
// Decoding never fails: any stored bit pattern maps to some value and
// re-encodes to the same bits. Encoding rejects values outside the field's
// domain with an OUT_OF_RANGE error.
package codec
