package cpu

import "github.com/thelolagemann/sm83/internal/types"

// Flags is the F register. The upper nibble holds the four
// condition flags, the lower nibble is unused by the CPU but is
// kept as written so that AF round-trips through the stack.
type Flags uint8

const (
	// FlagZero is set when the result of an operation is zero.
	FlagZero Flags = types.Bit7
	// FlagSubtract is set when the last operation was a subtraction.
	FlagSubtract Flags = types.Bit6
	// FlagHalfCarry is set on a carry/borrow involving the low nibble.
	FlagHalfCarry Flags = types.Bit5
	// FlagCarry is set on a carry out of, or borrow into, the top bit.
	FlagCarry Flags = types.Bit4

	// FlagMask covers the bits that carry meaning.
	FlagMask = FlagZero | FlagSubtract | FlagHalfCarry | FlagCarry
)

// newFlags builds a Flags value from the four condition bits, with
// the reserved nibble cleared.
func newFlags(zero, subtract, halfCarry, carry bool) Flags {
	var f Flags
	return f.With(FlagZero, zero).
		With(FlagSubtract, subtract).
		With(FlagHalfCarry, halfCarry).
		With(FlagCarry, carry)
}

// Has returns true if every bit in flag is set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// With returns a copy of f with flag set or cleared.
func (f Flags) With(flag Flags, on bool) Flags {
	if on {
		return f | flag
	}
	return f &^ flag
}

// String renders the condition flags as ZNHC, using '-' for
// cleared flags (e.g. "Z-HC").
func (f Flags) String() string {
	b := []byte("----")
	for i, flag := range []Flags{FlagZero, FlagSubtract, FlagHalfCarry, FlagCarry} {
		if f.Has(flag) {
			b[i] = "ZNHC"[i]
		}
	}
	return string(b)
}

// setFlags replaces the F register wholesale.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	c.F = newFlags(zero, subtract, halfCarry, carry)
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flags) bool {
	return c.F.Has(flag)
}
