package cpu

import "fmt"

// add is a helper function for adding n to the A register and
// setting the flags accordingly. The result is returned rather
// than stored.
//
// Used by:
//
//	ADD A, n
//	ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if the 8-bit sum is zero.
//	N - Reset.
//	H - Set if the sum leaves the low nibble, see halfCarryAdd.
//	C - Set if carry from bit 7.
//
// ADC folds the carry flag into the sum. When no carry came in and
// the sum carries out of bit 7, that carry wraps back into bit 0 of
// the result instead, so a carry is never counted twice. The flags
// describe the sum before the wrap.
func (c *CPU) add(n uint8, withCarry bool) uint8 {
	var carryIn uint16
	if withCarry && c.isFlagSet(FlagCarry) {
		carryIn = 1
	}

	sum := uint16(c.A) + uint16(n) + carryIn
	result := uint8(sum)
	carry := sum > 0xFF

	c.setFlags(result == 0, false, halfCarryAdd(c.A, n, result), carry)

	if withCarry && carry && carryIn == 0 {
		result++
	}
	return result
}

// halfCarryAdd reports whether an addition of a and n producing
// result climbed out of the low nibble: one of the operands fits in
// 4 bits and the result does not.
func halfCarryAdd(a, n, result uint8) bool {
	return (a <= 0x0F || n <= 0x0F) && result > 0x0F
}

// sub is a helper function for subtracting n from the A register
// and setting the flags accordingly. The result is returned rather
// than stored, so CP can share it.
//
// Used by:
//
//	SUB n
//	SBC A, n
//	CP n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(n uint8, withCarry bool) uint8 {
	var borrowIn int16
	if withCarry && c.isFlagSet(FlagCarry) {
		borrowIn = 1
	}

	diff := int16(c.A) - int16(n) - borrowIn
	diffHalf := int16(c.A&0x0F) - int16(n&0x0F) - borrowIn

	c.setFlags(uint8(diff) == 0, true, diffHalf < 0, diff < 0)
	return uint8(diff)
}

// inc increments the given target by 1, wrapping on overflow.
//
//	INC n
//	n = A, B, C, D, E, H, L, (HL), HL
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Not affected.
//	H - Set if the low nibble was 0b1111 before the increment.
//	C - Not affected.
//
// INC HL computes Z and H in the same way over the 16-bit value.
func (c *CPU) inc(target IncTarget, mem []byte) {
	var zero, half bool

	switch t := target.(type) {
	case Reg:
		value := c.get8(t, mem)
		incremented := value + 1
		c.set8(t, incremented, mem)
		zero, half = incremented == 0, value&0x0F == 0x0F
	case Pair:
		if t != PairHL {
			panic(fmt.Sprintf("invalid INC register pair: %s", t))
		}
		value := c.HL()
		incremented := value + 1
		c.SetHL(incremented)
		zero, half = incremented == 0, value&0x0F == 0x0F
	default:
		panic(fmt.Sprintf("invalid INC target %T", target))
	}

	c.F = c.F.With(FlagZero, zero).With(FlagHalfCarry, half)
}

// addHLRR adds the given register pair to HL.
//
//	ADD HL, nn
//	nn = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHLRR(p Pair) {
	switch p {
	case PairBC, PairDE, PairHL, PairSP:
	default:
		panic(fmt.Sprintf("invalid ADD HL register pair: %s", p))
	}

	hl, n := c.HL(), c.pair(p)
	sum := uint32(hl) + uint32(n)

	c.setFlags(c.isFlagSet(FlagZero), false, (hl&0x0FFF)+(n&0x0FFF) > 0x0FFF, sum > 0xFFFF)
	c.SetHL(uint16(sum))
}
