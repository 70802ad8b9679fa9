// Package calc holds the pure game formulas: stats, experience curves, move
// power, damage, critical hits, type effectiveness and the values derived
// from IVs or personality (gender, shininess, forms, hidden power, nature).
//
// Every function validates its inputs and returns an OUT_OF_RANGE or
// INVALID_ARGUMENT error instead of clamping.
package calc
