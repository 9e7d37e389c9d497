package cpu

import "fmt"

// Register represents an 8-bit SM83 register.
type Register = uint8

// Registers represents the SM83 register file. The CPU has 7
// general purpose 8-bit registers (A, B, C, D, E, H, L), the flags
// register F, and the 16-bit stack pointer and program counter.
//
// The register pairs AF, BC, DE and HL have no storage of their
// own; they are composed from the 8-bit registers on every access.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	F Flags
	H Register
	L Register

	// SP is the stack pointer, it points one below the last byte pushed.
	SP uint16
	// PC is the program counter, it points to the next instruction to be decoded.
	PC uint16
}

func join(high, low Register) uint16 {
	return uint16(high)<<8 | uint16(low)
}

func split(value uint16) (high, low Register) {
	return uint8(value >> 8), uint8(value)
}

// BC returns the B and C registers as a 16-bit value.
func (r *Registers) BC() uint16 { return join(r.B, r.C) }

// SetBC stores the high byte of value in B and the low byte in C.
func (r *Registers) SetBC(value uint16) { r.B, r.C = split(value) }

// DE returns the D and E registers as a 16-bit value.
func (r *Registers) DE() uint16 { return join(r.D, r.E) }

// SetDE stores the high byte of value in D and the low byte in E.
func (r *Registers) SetDE(value uint16) { r.D, r.E = split(value) }

// HL returns the H and L registers as a 16-bit value.
func (r *Registers) HL() uint16 { return join(r.H, r.L) }

// SetHL stores the high byte of value in H and the low byte in L.
func (r *Registers) SetHL(value uint16) { r.H, r.L = split(value) }

// AF returns the A register and the flags as a 16-bit value.
func (r *Registers) AF() uint16 { return join(r.A, uint8(r.F)) }

// SetAF stores the high byte of value in A and the low byte in F.
// The reserved low nibble of F is stored as given.
func (r *Registers) SetAF(value uint16) {
	a, f := split(value)
	r.A, r.F = a, Flags(f)
}

// pair returns the value of the given register pair.
func (r *Registers) pair(p Pair) uint16 {
	switch p {
	case PairBC:
		return r.BC()
	case PairDE:
		return r.DE()
	case PairHL:
		return r.HL()
	case PairSP:
		return r.SP
	case PairAF:
		return r.AF()
	}
	panic(fmt.Sprintf("invalid register pair: %d", p))
}

// setPair sets the value of the given register pair.
func (r *Registers) setPair(p Pair, value uint16) {
	switch p {
	case PairBC:
		r.SetBC(value)
	case PairDE:
		r.SetDE(value)
	case PairHL:
		r.SetHL(value)
	case PairSP:
		r.SP = value
	case PairAF:
		r.SetAF(value)
	default:
		panic(fmt.Sprintf("invalid register pair: %d", p))
	}
}

// String returns a single line register dump.
func (r Registers) String() string {
	return fmt.Sprintf("A: %02x F: %02x B: %02x C: %02x D: %02x E: %02x H: %02x L: %02x SP: %04x PC: %04x [%s]",
		r.A, uint8(r.F), r.B, r.C, r.D, r.E, r.H, r.L, r.SP, r.PC, r.F)
}
