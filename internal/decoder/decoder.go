// Package decoder turns the opcode bytes found at the program counter
// into cpu.Instruction values. Only the opcodes the instruction core
// models are decoded; anything else is reported as unsupported.
package decoder

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/sm83/internal/cpu"
)

var (
	// ErrUnsupportedOpcode is returned for opcodes outside the modeled subset.
	ErrUnsupportedOpcode = errors.New("unsupported opcode")
	// ErrTruncated is returned when an opcode or its operands run past
	// the end of memory.
	ErrTruncated = errors.New("truncated instruction")
)

// aluOps holds the ALU instruction constructors in opcode order,
// i.e. 0x80 + 8*i for register operands and 0xC6 + 8*i for d8.
var aluOps = [8]func(cpu.ALUOperand) cpu.Instruction{
	func(o cpu.ALUOperand) cpu.Instruction { return cpu.ADD{Operand: o} },
	func(o cpu.ALUOperand) cpu.Instruction { return cpu.ADC{Operand: o} },
	func(o cpu.ALUOperand) cpu.Instruction { return cpu.SUB{Operand: o} },
	func(o cpu.ALUOperand) cpu.Instruction { return cpu.SBC{Operand: o} },
	func(o cpu.ALUOperand) cpu.Instruction { return cpu.AND{Operand: o} },
	func(o cpu.ALUOperand) cpu.Instruction { return cpu.XOR{Operand: o} },
	func(o cpu.ALUOperand) cpu.Instruction { return cpu.OR{Operand: o} },
	func(o cpu.ALUOperand) cpu.Instruction { return cpu.CP{Operand: o} },
}

// stackPairs maps bits 4-5 of PUSH/POP opcodes to a register pair.
var stackPairs = [4]cpu.Pair{cpu.PairBC, cpu.PairDE, cpu.PairHL, cpu.PairAF}

// addPairs maps bits 4-5 of ADD HL, nn opcodes to a register pair.
var addPairs = [4]cpu.Pair{cpu.PairBC, cpu.PairDE, cpu.PairHL, cpu.PairSP}

// Decode decodes the instruction at pc, returning it along with its
// length in bytes. The caller is responsible for advancing the
// program counter.
func Decode(mem []byte, pc uint16) (cpu.Instruction, uint16, error) {
	if int(pc) >= len(mem) {
		return nil, 0, fmt.Errorf("$%04X: %w", pc, ErrTruncated)
	}
	opcode := mem[pc]

	// operand reads the n-th byte following the opcode
	operand := func(n uint16) (uint8, error) {
		addr := int(pc) + int(n)
		if addr >= len(mem) {
			return 0, fmt.Errorf("$%04X %02X: %w", pc, opcode, ErrTruncated)
		}
		return mem[addr], nil
	}

	switch {
	case opcode&0xC7 == 0x06: // LD r, d8
		v, err := operand(1)
		if err != nil {
			return nil, 0, err
		}
		return cpu.LDN{Target: cpu.Reg(opcode >> 3 & 7), Value: v}, 2, nil
	case opcode&0xC7 == 0x04: // INC r
		return cpu.INC{Target: cpu.Reg(opcode >> 3 & 7)}, 1, nil
	case opcode&0xCF == 0x09: // ADD HL, nn
		return cpu.ADD16{Pair: addPairs[opcode>>4&3]}, 1, nil
	case opcode&0xCF == 0xC5: // PUSH nn
		return cpu.PUSH{Pair: stackPairs[opcode>>4&3]}, 1, nil
	case opcode&0xCF == 0xC1: // POP nn
		return cpu.POP{Pair: stackPairs[opcode>>4&3]}, 1, nil
	case opcode == 0x76: // HALT
		return nil, 0, unsupported(pc, opcode)
	case opcode >= 0x40 && opcode <= 0x7F: // LD r, r'
		return cpu.LDRR{To: cpu.Reg(opcode >> 3 & 7), From: cpu.Reg(opcode & 7)}, 1, nil
	case opcode >= 0x80 && opcode <= 0xBF: // ALU A, r
		return aluOps[opcode>>3&7](cpu.Reg(opcode & 7)), 1, nil
	case opcode&0xC7 == 0xC6: // ALU A, d8
		v, err := operand(1)
		if err != nil {
			return nil, 0, err
		}
		return aluOps[opcode>>3&7](cpu.Immediate(v)), 2, nil
	}

	switch opcode {
	case 0x02: // LD (BC), A
		return cpu.LDFA{To: cpu.IndBC}, 1, nil
	case 0x0A: // LD A, (BC)
		return cpu.LDA{From: cpu.IndBC}, 1, nil
	case 0x12: // LD (DE), A
		return cpu.LDFA{To: cpu.IndDE}, 1, nil
	case 0x1A: // LD A, (DE)
		return cpu.LDA{From: cpu.IndDE}, 1, nil
	case 0x23: // INC HL
		return cpu.INC{Target: cpu.PairHL}, 1, nil
	case 0xEA, 0xFA: // LD (a16), A / LD A, (a16)
		low, err := operand(1)
		if err != nil {
			return nil, 0, err
		}
		high, err := operand(2)
		if err != nil {
			return nil, 0, err
		}
		address := cpu.Absolute(uint16(high)<<8 | uint16(low))
		if opcode == 0xEA {
			return cpu.LDFA{To: address}, 3, nil
		}
		return cpu.LDA{From: address}, 3, nil
	}

	return nil, 0, unsupported(pc, opcode)
}

func unsupported(pc uint16, opcode uint8) error {
	return fmt.Errorf("$%04X %02X: %w", pc, opcode, ErrUnsupportedOpcode)
}
