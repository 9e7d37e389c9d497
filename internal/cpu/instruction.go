package cpu

import "fmt"

// Instruction is a single decoded SM83 instruction. The set of
// instructions is closed: each opcode family is its own type, and
// the operand types each family accepts are restricted by the
// small marker interfaces below, so a family can only be built
// with operands it knows how to address.
type Instruction interface {
	fmt.Stringer
	instruction()
}

// Reg is an 8-bit operand, in opcode encoding order. RegHLInd is
// not a register but the byte in memory pointed to by HL.
type Reg uint8

const (
	RegB Reg = iota
	RegC
	RegD
	RegE
	RegH
	RegL
	RegHLInd
	RegA
)

var regNames = [...]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

func (r Reg) String() string {
	if int(r) < len(regNames) {
		return regNames[r]
	}
	return fmt.Sprintf("Reg(%d)", uint8(r))
}

// Pair is a 16-bit register pair, or the stack pointer.
type Pair uint8

const (
	PairBC Pair = iota
	PairDE
	PairHL
	PairSP
	PairAF
)

var pairNames = [...]string{"BC", "DE", "HL", "SP", "AF"}

func (p Pair) String() string {
	if int(p) < len(pairNames) {
		return pairNames[p]
	}
	return fmt.Sprintf("Pair(%d)", uint8(p))
}

// Indirect is the byte in memory pointed to by BC or DE. The byte
// pointed to by HL is addressed with RegHLInd.
type Indirect uint8

const (
	IndBC Indirect = iota
	IndDE
)

func (i Indirect) String() string {
	switch i {
	case IndBC:
		return "(BC)"
	case IndDE:
		return "(DE)"
	}
	return fmt.Sprintf("Indirect(%d)", uint8(i))
}

// Absolute is the byte in memory at a fixed 16-bit address.
type Absolute uint16

func (a Absolute) String() string { return fmt.Sprintf("($%04X)", uint16(a)) }

// Immediate is a literal 8-bit value.
type Immediate uint8

func (i Immediate) String() string { return fmt.Sprintf("$%02X", uint8(i)) }

// LDNTarget is a destination for LDN: a Reg, or one of PairBC,
// PairDE or PairHL.
type LDNTarget interface {
	fmt.Stringer
	ldnTarget()
}

// LoadSource is a source for LDA: a Reg, Indirect, Absolute or
// Immediate.
type LoadSource interface {
	fmt.Stringer
	loadSource()
}

// StoreTarget is a destination for LDFA: a Reg, Indirect or
// Absolute.
type StoreTarget interface {
	fmt.Stringer
	storeTarget()
}

// ALUOperand is the right hand side of an 8-bit arithmetic or
// logic operation: a Reg or an Immediate.
type ALUOperand interface {
	fmt.Stringer
	aluOperand()
}

// IncTarget is the operand of INC: a Reg, or PairHL.
type IncTarget interface {
	fmt.Stringer
	incTarget()
}

func (Reg) ldnTarget()   {}
func (Reg) loadSource()  {}
func (Reg) storeTarget() {}
func (Reg) aluOperand()  {}
func (Reg) incTarget()   {}

func (Pair) ldnTarget() {}
func (Pair) incTarget() {}

func (Indirect) loadSource()  {}
func (Indirect) storeTarget() {}

func (Absolute) loadSource()  {}
func (Absolute) storeTarget() {}

func (Immediate) loadSource() {}
func (Immediate) aluOperand() {}

type (
	// LDN loads an immediate value into a register, the byte at
	// (HL), or zero-extended into a register pair.
	//
	//	LD n, d8
	LDN struct {
		Target LDNTarget
		Value  uint8
	}
	// LDRR copies one register (or (HL)) into another.
	//
	//	LD r, r'
	LDRR struct {
		To, From Reg
	}
	// LDA loads the accumulator.
	//
	//	LD A, n
	LDA struct {
		From LoadSource
	}
	// LDFA stores the accumulator.
	//
	//	LD n, A
	LDFA struct {
		To StoreTarget
	}
	// PUSH pushes a register pair onto the stack.
	PUSH struct {
		Pair Pair
	}
	// POP pops a register pair off the stack.
	POP struct {
		Pair Pair
	}
	// ADD adds the operand to A.
	ADD struct {
		Operand ALUOperand
	}
	// ADC adds the operand and the carry flag to A.
	ADC struct {
		Operand ALUOperand
	}
	// SUB subtracts the operand from A.
	SUB struct {
		Operand ALUOperand
	}
	// SBC subtracts the operand and the carry flag from A.
	SBC struct {
		Operand ALUOperand
	}
	// CP compares the operand with A, setting the flags of SUB
	// without storing the result.
	CP struct {
		Operand ALUOperand
	}
	// INC increments a register, the byte at (HL), or HL.
	INC struct {
		Target IncTarget
	}
	// AND performs a bitwise AND of the operand into A.
	AND struct {
		Operand ALUOperand
	}
	// OR performs a bitwise OR of the operand into A.
	OR struct {
		Operand ALUOperand
	}
	// XOR performs a bitwise XOR of the operand into A.
	XOR struct {
		Operand ALUOperand
	}
	// ADD16 adds a register pair (or SP) to HL.
	//
	//	ADD HL, nn
	ADD16 struct {
		Pair Pair
	}
)

func (LDN) instruction()   {}
func (LDRR) instruction()  {}
func (LDA) instruction()   {}
func (LDFA) instruction()  {}
func (PUSH) instruction()  {}
func (POP) instruction()   {}
func (ADD) instruction()   {}
func (ADC) instruction()   {}
func (SUB) instruction()   {}
func (SBC) instruction()   {}
func (CP) instruction()    {}
func (INC) instruction()   {}
func (AND) instruction()   {}
func (OR) instruction()    {}
func (XOR) instruction()   {}
func (ADD16) instruction() {}

func (i LDN) String() string {
	if _, ok := i.Target.(Pair); ok {
		return fmt.Sprintf("LD %s, $%04X", i.Target, i.Value)
	}
	return fmt.Sprintf("LD %s, $%02X", i.Target, i.Value)
}

func (i LDRR) String() string  { return fmt.Sprintf("LD %s, %s", i.To, i.From) }
func (i LDA) String() string   { return fmt.Sprintf("LD A, %s", i.From) }
func (i LDFA) String() string  { return fmt.Sprintf("LD %s, A", i.To) }
func (i PUSH) String() string  { return "PUSH " + i.Pair.String() }
func (i POP) String() string   { return "POP " + i.Pair.String() }
func (i ADD) String() string   { return "ADD A, " + i.Operand.String() }
func (i ADC) String() string   { return "ADC A, " + i.Operand.String() }
func (i SUB) String() string   { return "SUB " + i.Operand.String() }
func (i SBC) String() string   { return "SBC A, " + i.Operand.String() }
func (i CP) String() string    { return "CP " + i.Operand.String() }
func (i INC) String() string   { return "INC " + i.Target.String() }
func (i AND) String() string   { return "AND " + i.Operand.String() }
func (i OR) String() string    { return "OR " + i.Operand.String() }
func (i XOR) String() string   { return "XOR " + i.Operand.String() }
func (i ADD16) String() string { return "ADD HL, " + i.Pair.String() }
