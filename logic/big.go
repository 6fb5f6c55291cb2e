//go:build !vhpinobig

package logic

import "math/big"

func init() {
	wide = bigConverter{}
}

type bigConverter struct{}

func (bigConverter) FromBig(x *big.Int, width int) Vec {
	if width < 0 {
		width = 0
	}
	// Two's complement of a negative x is x mod 2^width.
	m := new(big.Int).Lsh(big.NewInt(1), uint(width))
	u := new(big.Int).Mod(x, m)

	out := make(Vec, width)
	for i := 0; i < width; i++ {
		if u.Bit(i) == 1 {
			out[width-1-i] = One
		} else {
			out[width-1-i] = Zero
		}
	}
	return out
}

func (bigConverter) Uint(v Vec) (*big.Int, bool) {
	u := new(big.Int)
	for i, x := range v {
		switch x {
		case Zero:
		case One:
			u.SetBit(u, len(v)-1-i, 1)
		default:
			return nil, false
		}
	}
	return u, true
}

func (c bigConverter) Int(v Vec) (*big.Int, bool) {
	u, ok := c.Uint(v)
	if !ok {
		return nil, false
	}
	if len(v) == 0 || v[0] != One {
		return u, true
	}
	bias := new(big.Int).Lsh(big.NewInt(1), uint(len(v)))
	return u.Sub(u, bias), true
}
