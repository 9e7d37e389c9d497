package cpu

import "testing"

func TestInstruction_String(t *testing.T) {
	for instr, want := range map[Instruction]string{
		LDN{RegB, 0x05}:                "LD B, $05",
		LDN{RegHLInd, 0xFF}:            "LD (HL), $FF",
		LDN{PairBC, 0x05}:              "LD BC, $0005",
		LDRR{To: RegA, From: RegHLInd}: "LD A, (HL)",
		LDA{IndBC}:                     "LD A, (BC)",
		LDA{Absolute(0xC000)}:          "LD A, ($C000)",
		LDA{Immediate(0x10)}:           "LD A, $10",
		LDFA{IndDE}:                    "LD (DE), A",
		PUSH{PairAF}:                   "PUSH AF",
		POP{PairHL}:                    "POP HL",
		ADD{RegB}:                      "ADD A, B",
		ADC{Immediate(0x01)}:           "ADC A, $01",
		SUB{RegC}:                      "SUB C",
		SBC{RegD}:                      "SBC A, D",
		CP{Immediate(0xFE)}:            "CP $FE",
		AND{RegE}:                      "AND E",
		OR{RegH}:                       "OR H",
		XOR{RegA}:                      "XOR A",
		INC{PairHL}:                    "INC HL",
		INC{RegL}:                      "INC L",
		ADD16{PairSP}:                  "ADD HL, SP",
	} {
		if got := instr.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

func TestOperand_String(t *testing.T) {
	if got := Reg(9).String(); got != "Reg(9)" {
		t.Errorf("expected Reg(9), got %s", got)
	}
	if got := Pair(7).String(); got != "Pair(7)" {
		t.Errorf("expected Pair(7), got %s", got)
	}
}
