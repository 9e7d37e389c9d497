package cpu

import "fmt"

// stackPair panics unless p can be pushed or popped.
func stackPair(p Pair) Pair {
	switch p {
	case PairAF, PairBC, PairDE, PairHL:
		return p
	}
	panic(fmt.Sprintf("invalid stack register pair: %s", p))
}

// push pushes the given register pair onto the stack. The high byte
// is written at SP, then the low byte one below it, leaving SP one
// below the last byte written.
//
//	PUSH nn
//	nn = AF, BC, DE, HL
//
// Flags affected:
//
//	Z - Not affected.
//	N - Not affected.
//	H - Not affected.
//	C - Not affected.
func (c *CPU) push(p Pair, mem []byte) {
	high, low := split(c.pair(stackPair(p)))

	writeByte(mem, c.SP, high)
	c.SP--
	writeByte(mem, c.SP, low)
	c.SP--
}

// pop pops the given register pair off the stack, mirroring push.
//
//	POP nn
//	nn = AF, BC, DE, HL
//
// Flags affected: none, unless nn is AF, in which case F is
// replaced by the low byte read from the stack.
func (c *CPU) pop(p Pair, mem []byte) {
	stackPair(p)

	c.SP++
	low := readByte(mem, c.SP)
	c.SP++
	high := readByte(mem, c.SP)

	c.setPair(p, join(high, low))
}
