//go:build !vhpinobig

package logic

import (
	"math/big"
	"testing"
)

func TestWide_Available(t *testing.T) {
	if _, ok := Wide(); !ok {
		t.Fatal("Wide() should be available in the default build")
	}
}

func TestWide_RoundTrip(t *testing.T) {
	wc, _ := Wide()

	huge, _ := new(big.Int).SetString("123456789abcdef0123456789abcdef", 16)
	tests := []struct {
		name  string
		x     *big.Int
		width int
	}{
		{"zero", big.NewInt(0), 8},
		{"minus one", big.NewInt(-1), 100},
		{"huge", huge, 128},
		{"negative huge", new(big.Int).Neg(huge), 130},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := wc.FromBig(tt.x, tt.width)
			if len(v) != tt.width {
				t.Fatalf("width = %d, want %d", len(v), tt.width)
			}
			got, ok := wc.Int(v)
			if !ok || got.Cmp(tt.x) != 0 {
				t.Errorf("Int = %v, %v; want %v", got, ok, tt.x)
			}
		})
	}
}

func TestWide_MatchesMachinePath(t *testing.T) {
	wc, _ := Wide()
	for _, s := range []string{"101", "100", "001", "0111"} {
		v := ParseVec(s)
		mi, _ := v.Int()
		bi, ok := wc.Int(v)
		if !ok || bi.Int64() != mi {
			t.Errorf("%s: big %v, machine %d", s, bi, mi)
		}
		mu, _ := v.Uint()
		bu, ok := wc.Uint(v)
		if !ok || bu.Uint64() != mu {
			t.Errorf("%s: big %v, machine %d", s, bu, mu)
		}
	}
}

func TestWide_RejectsNonBinary(t *testing.T) {
	wc, _ := Wide()
	if _, ok := wc.Uint(ParseVec("1X")); ok {
		t.Error("Uint should fail on X")
	}
	if _, ok := wc.Int(ParseVec("-0")); ok {
		t.Error("Int should fail on don't-care")
	}
}
