// Package cpu implements the instruction core of the SM83, the 8-bit
// CPU found in the Game Boy. A CPU holds nothing but its register
// file; memory is supplied by the caller on every call to Execute.
package cpu

import (
	"fmt"

	"github.com/thelolagemann/sm83/internal/types"
)

// CPU represents the SM83 CPU. It is responsible for executing
// instructions that have already been decoded.
type CPU struct {
	// Registers contains the 8-bit registers, the flags, SP and PC.
	Registers
}

// NewCPU creates a new CPU with every register cleared.
func NewCPU() *CPU {
	return &CPU{}
}

// MemoryFault is raised (as a panic value) when an instruction
// addresses memory outside the buffer it was given. There is no
// sensible way to continue once this happens.
type MemoryFault struct {
	Address uint16
	Size    int
	Write   bool
}

func (m *MemoryFault) Error() string {
	op := "read"
	if m.Write {
		op = "write"
	}
	return fmt.Sprintf("memory %s at $%04X outside %d byte buffer", op, m.Address, m.Size)
}

// readByte reads a byte from memory.
func readByte(mem []byte, address uint16) uint8 {
	if int(address) >= len(mem) {
		panic(&MemoryFault{Address: address, Size: len(mem)})
	}
	return mem[address]
}

// writeByte writes the given value to the given address.
func writeByte(mem []byte, address uint16, value uint8) {
	if int(address) >= len(mem) {
		panic(&MemoryFault{Address: address, Size: len(mem), Write: true})
	}
	mem[address] = value
}

// Snapshot returns a copy of the register file.
func (c *CPU) Snapshot() Registers {
	return c.Registers
}

// Execute performs a single instruction against mem. Only the
// registers, flags and memory named by the instruction are changed.
//
// Execute panics with a *MemoryFault if the instruction addresses
// memory beyond len(mem), and with a descriptive message if the
// instruction carries an operand its family does not support.
func (c *CPU) Execute(instr Instruction, mem []byte) {
	switch i := instr.(type) {
	case LDN:
		c.loadImmediate(i.Target, i.Value, mem)
	case LDRR:
		c.set8(i.To, c.get8(i.From, mem), mem)
	case LDA:
		c.loadAccumulator(i.From, mem)
	case LDFA:
		c.storeAccumulator(i.To, mem)
	case PUSH:
		c.push(i.Pair, mem)
	case POP:
		c.pop(i.Pair, mem)
	case ADD:
		c.A = c.add(c.aluOperand(i.Operand, mem), false)
	case ADC:
		c.A = c.add(c.aluOperand(i.Operand, mem), true)
	case SUB:
		c.A = c.sub(c.aluOperand(i.Operand, mem), false)
	case SBC:
		c.A = c.sub(c.aluOperand(i.Operand, mem), true)
	case CP:
		c.sub(c.aluOperand(i.Operand, mem), false)
	case INC:
		c.inc(i.Target, mem)
	case AND:
		c.and(c.aluOperand(i.Operand, mem))
	case OR:
		c.or(c.aluOperand(i.Operand, mem))
	case XOR:
		c.xor(c.aluOperand(i.Operand, mem))
	case ADD16:
		c.addHLRR(i.Pair)
	default:
		panic(fmt.Sprintf("unsupported instruction %T", instr))
	}
}

// get8 returns the value of an 8-bit operand.
func (c *CPU) get8(r Reg, mem []byte) uint8 {
	switch r {
	case RegA:
		return c.A
	case RegB:
		return c.B
	case RegC:
		return c.C
	case RegD:
		return c.D
	case RegE:
		return c.E
	case RegH:
		return c.H
	case RegL:
		return c.L
	case RegHLInd:
		return readByte(mem, c.HL())
	}
	panic(fmt.Sprintf("invalid register index: %d", r))
}

// set8 stores value in an 8-bit operand.
func (c *CPU) set8(r Reg, value uint8, mem []byte) {
	switch r {
	case RegA:
		c.A = value
	case RegB:
		c.B = value
	case RegC:
		c.C = value
	case RegD:
		c.D = value
	case RegE:
		c.E = value
	case RegH:
		c.H = value
	case RegL:
		c.L = value
	case RegHLInd:
		writeByte(mem, c.HL(), value)
	default:
		panic(fmt.Sprintf("invalid register index: %d", r))
	}
}

// indirectAddress resolves (BC) or (DE) to an address.
func (c *CPU) indirectAddress(i Indirect) uint16 {
	switch i {
	case IndBC:
		return c.BC()
	case IndDE:
		return c.DE()
	}
	panic(fmt.Sprintf("invalid indirect operand: %d", i))
}

// aluOperand returns the value of the right hand side of an 8-bit
// arithmetic or logic operation.
func (c *CPU) aluOperand(op ALUOperand, mem []byte) uint8 {
	switch o := op.(type) {
	case Reg:
		return c.get8(o, mem)
	case Immediate:
		return uint8(o)
	}
	panic(fmt.Sprintf("invalid ALU operand %T", op))
}

var _ types.Stater = (*CPU)(nil)

// Load restores the register file from s.
func (c *CPU) Load(s *types.State) {
	c.A = s.Read8()
	c.F = Flags(s.Read8())
	c.B = s.Read8()
	c.C = s.Read8()
	c.D = s.Read8()
	c.E = s.Read8()
	c.H = s.Read8()
	c.L = s.Read8()
	c.SP = s.Read16()
	c.PC = s.Read16()
}

// Save writes the register file to s.
func (c *CPU) Save(s *types.State) {
	s.Write8(c.A)
	s.Write8(uint8(c.F))
	s.Write8(c.B)
	s.Write8(c.C)
	s.Write8(c.D)
	s.Write8(c.E)
	s.Write8(c.H)
	s.Write8(c.L)
	s.Write16(c.SP)
	s.Write16(c.PC)
}
