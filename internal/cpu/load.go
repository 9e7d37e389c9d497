package cpu

import "fmt"

// loadImmediate loads the given value into a register, the byte at
// (HL), or a register pair.
//
//	LD n, d8
//	n = A, B, C, D, E, H, L, (HL), BC, DE, HL
//
// For a register pair the value is zero-extended.
func (c *CPU) loadImmediate(target LDNTarget, value uint8, mem []byte) {
	switch t := target.(type) {
	case Reg:
		c.set8(t, value, mem)
	case Pair:
		switch t {
		case PairBC, PairDE, PairHL:
			c.setPair(t, uint16(value))
		default:
			panic(fmt.Sprintf("invalid LD target: %s", t))
		}
	default:
		panic(fmt.Sprintf("invalid LD target %T", target))
	}
}

// loadAccumulator loads the A register.
//
//	LD A, n
//	n = A, B, C, D, E, H, L, (BC), (DE), (HL), (a16), d8
func (c *CPU) loadAccumulator(from LoadSource, mem []byte) {
	switch f := from.(type) {
	case Reg:
		c.A = c.get8(f, mem)
	case Indirect:
		c.A = readByte(mem, c.indirectAddress(f))
	case Absolute:
		c.A = readByte(mem, uint16(f))
	case Immediate:
		c.A = uint8(f)
	default:
		panic(fmt.Sprintf("invalid LD source %T", from))
	}
}

// storeAccumulator stores the A register.
//
//	LD n, A
//	n = A, B, C, D, E, H, L, (BC), (DE), (HL), (a16)
func (c *CPU) storeAccumulator(to StoreTarget, mem []byte) {
	switch t := to.(type) {
	case Reg:
		c.set8(t, c.A, mem)
	case Indirect:
		writeByte(mem, c.indirectAddress(t), c.A)
	case Absolute:
		writeByte(mem, uint16(t), c.A)
	default:
		panic(fmt.Sprintf("invalid LD destination %T", to))
	}
}
