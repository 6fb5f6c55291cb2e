package simtime

import "strconv"

// Physical is a quantity of a physical type in its base unit.
// It has the same two-word layout as Time.
type Physical struct {
	High int32
	Low  uint32
}

// PhysicalFromInt64 splits v into its high and low words.
func PhysicalFromInt64(v int64) Physical {
	return Physical{High: int32(v >> 32), Low: uint32(v)}
}

// PhysicalFromUint32 builds a physical quantity from an unsigned 32-bit value.
func PhysicalFromUint32(v uint32) Physical {
	return Physical{Low: v}
}

// Int64 recombines the two words.
func (p Physical) Int64() int64 {
	return int64(p.High)<<32 | int64(p.Low)
}

// Time reinterprets p as a time in femtoseconds.
func (p Physical) Time() Time {
	return Time(p)
}

func (p Physical) String() string {
	return strconv.FormatInt(p.Int64(), 10)
}
