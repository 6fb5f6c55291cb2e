// Package simtime holds the 64-bit simulation time and physical quantity types.
//
// The VHPI ABI splits every 64-bit quantity into a signed high word and an
// unsigned low word, in that order in memory. Time and Physical keep that shape
// so they can be handed to native code unchanged, and convert exactly to and
// from int64.
package simtime

import (
	"strconv"
	"strings"

	"github.com/wippyai/vhpi/errors"
)

// Time is a simulation time in femtoseconds.
type Time struct {
	High int32
	Low  uint32
}

// FromInt64 splits v into its high and low words.
func FromInt64(v int64) Time {
	return Time{High: int32(v >> 32), Low: uint32(v)}
}

// FromUint32 builds a time from an unsigned 32-bit quantity. The high word is zero.
func FromUint32(v uint32) Time {
	return Time{Low: v}
}

// Int64 recombines the two words.
func (t Time) Int64() int64 {
	return int64(t.High)<<32 | int64(t.Low)
}

// Mul returns the full 64-bit product of t and u.
func (t Time) Mul(u Time) Time {
	return FromInt64(t.Int64() * u.Int64())
}

// Add returns t + u.
func (t Time) Add(u Time) Time {
	return FromInt64(t.Int64() + u.Int64())
}

// Sub returns t - u.
func (t Time) Sub(u Time) Time {
	return FromInt64(t.Int64() - u.Int64())
}

// Compare returns -1, 0 or +1.
func (t Time) Compare(u Time) int {
	a, b := t.Int64(), u.Int64()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Before reports whether t is earlier than u.
func (t Time) Before(u Time) bool { return t.Int64() < u.Int64() }

// IsZero reports whether t is the zero time.
func (t Time) IsZero() bool { return t.High == 0 && t.Low == 0 }

// Physical converts t to a physical quantity of the same magnitude.
func (t Time) Physical() Physical {
	return Physical(t)
}

// Unit is a time unit expressed in femtoseconds.
type Unit int64

const (
	Femtosecond Unit = 1
	Picosecond       = 1000 * Femtosecond
	Nanosecond       = 1000 * Picosecond
	Microsecond      = 1000 * Nanosecond
	Millisecond      = 1000 * Microsecond
	Second           = 1000 * Millisecond
)

var units = []struct {
	unit Unit
	name string
}{
	{Second, "s"},
	{Millisecond, "ms"},
	{Microsecond, "µs"},
	{Nanosecond, "ns"},
	{Picosecond, "ps"},
	{Femtosecond, "fs"},
}

// Of returns n units as a Time.
func Of(n int64, u Unit) Time {
	return FromInt64(n * int64(u))
}

// String renders t in the largest unit that divides it exactly.
// Zero renders as "0 s".
func (t Time) String() string {
	v := t.Int64()
	for _, u := range units {
		if v%int64(u.unit) == 0 {
			return strconv.FormatInt(v/int64(u.unit), 10) + " " + u.name
		}
	}
	return strconv.FormatInt(v, 10) + " fs"
}

// Parse reads a time such as "10 ns", "10ns", "1.5 us" or a bare femtosecond
// count. "us" is accepted for "µs".
func Parse(s string) (Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Time{}, errors.InvalidInput(errors.PhaseParse, "empty time")
	}

	i := len(s)
	for i > 0 {
		c := s[i-1]
		if (c >= '0' && c <= '9') || c == '.' || c == ' ' {
			break
		}
		i--
	}
	num := strings.TrimSpace(s[:i])
	suffix := strings.ToLower(strings.TrimSpace(s[i:]))

	unit := Femtosecond
	if suffix != "" {
		u, ok := unitBySuffix(suffix)
		if !ok {
			return Time{}, errors.New(errors.PhaseParse, errors.KindInvalidInput).
				Detail("unknown time unit %q", suffix).
				Value(s).
				Build()
		}
		unit = u
	}

	if whole, frac, ok := strings.Cut(num, "."); ok {
		w, err := strconv.ParseInt(whole, 10, 64)
		if err != nil {
			return Time{}, errors.ParseFailed("time "+strconv.Quote(s), err)
		}
		scale := int64(unit)
		fs := w * scale
		sign := int64(1)
		if strings.HasPrefix(whole, "-") {
			sign = -1
		}
		for _, c := range frac {
			if c < '0' || c > '9' {
				return Time{}, errors.ParseFailed("time "+strconv.Quote(s), strconv.ErrSyntax)
			}
			scale /= 10
			if scale == 0 {
				return Time{}, errors.New(errors.PhaseParse, errors.KindInvalidInput).
					Detail("time %q finer than 1 fs", s).
					Build()
			}
			fs += sign * int64(c-'0') * scale
		}
		return FromInt64(fs), nil
	}

	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return Time{}, errors.ParseFailed("time "+strconv.Quote(s), err)
	}
	return Of(n, unit), nil
}

func unitBySuffix(s string) (Unit, bool) {
	switch s {
	case "fs":
		return Femtosecond, true
	case "ps":
		return Picosecond, true
	case "ns":
		return Nanosecond, true
	case "us", "µs":
		return Microsecond, true
	case "ms":
		return Millisecond, true
	case "s", "sec":
		return Second, true
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Time) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
