package logic

import "math/big"

// WideConverter converts vectors of any width. It is an optional capability:
// Wide reports whether this build provides one.
type WideConverter interface {
	// FromBig returns the low width bits of x in two's complement.
	FromBig(x *big.Int, width int) Vec
	// Uint interprets v as an unsigned number of arbitrary width.
	Uint(v Vec) (*big.Int, bool)
	// Int interprets v as a two's complement number of arbitrary width.
	Int(v Vec) (*big.Int, bool)
}

// Wide returns the arbitrary-precision converter when the build includes it.
func Wide() (WideConverter, bool) {
	if wide == nil {
		return nil, false
	}
	return wide, true
}

var wide WideConverter
