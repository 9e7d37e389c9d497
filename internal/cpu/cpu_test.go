package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelolagemann/sm83/internal/types"
)

type unknown struct{}

func (unknown) instruction()   {}
func (unknown) String() string { return "???" }

func TestCPU_MemoryFault(t *testing.T) {
	tests := []struct {
		name  string
		instr Instruction
		write bool
	}{
		{"LD A, (BC)", LDA{IndBC}, false},
		{"LD (a16), A", LDFA{Absolute(0x8000)}, true},
		{"ADD A, (HL)", ADD{RegHLInd}, false},
		{"INC (HL)", INC{RegHLInd}, false},
		{"POP BC", POP{PairBC}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCPU()
			c.SetBC(0x8000)
			c.SetHL(0x8000)
			c.SP = 0x7FFF

			defer func() {
				r := recover()
				fault, ok := r.(*MemoryFault)
				require.True(t, ok, "expected a *MemoryFault, got %v", r)
				assert.Equal(t, uint16(0x8000), fault.Address)
				assert.Equal(t, 0x100, fault.Size)
				assert.Equal(t, tt.write, fault.Write)
				assert.Contains(t, fault.Error(), "$8000")
			}()
			c.Execute(tt.instr, make([]byte, 0x100))
		})
	}
}

func TestCPU_Unsupported(t *testing.T) {
	assert.PanicsWithValue(t, "unsupported instruction cpu.unknown", func() {
		NewCPU().Execute(unknown{}, nil)
	})
	assert.Panics(t, func() {
		NewCPU().Execute(LDRR{To: Reg(8), From: RegA}, nil)
	})
}

func TestCPU_Independent(t *testing.T) {
	a, b := NewCPU(), NewCPU()
	a.Execute(LDN{RegA, 1}, nil)
	b.Execute(LDN{RegA, 2}, nil)
	assert.Equal(t, uint8(1), a.A)
	assert.Equal(t, uint8(2), b.A)
}

func TestCPU_Snapshot(t *testing.T) {
	c := NewCPU()
	c.A = 0x10
	snap := c.Snapshot()
	c.A = 0x20
	assert.Equal(t, uint8(0x10), snap.A)
}

func TestCPU_State(t *testing.T) {
	c := NewCPU()
	c.Registers = Registers{A: 1, F: 0xF5, B: 2, C: 3, D: 4, E: 5, H: 6, L: 7, SP: 0xFFFE, PC: 0x0150}

	s := types.NewState()
	c.Save(s)
	assert.Equal(t, 12, s.Len())

	restored := NewCPU()
	restored.Load(types.StateFromBytes(s.Bytes()))
	assert.Equal(t, c.Registers, restored.Registers)
}

func BenchmarkCPU_Execute(b *testing.B) {
	program := []Instruction{
		LDN{RegB, 0x01},
		ADD{RegB},
		ADC{Immediate(0x10)},
		SUB{RegC},
		CP{Immediate(0x42)},
		INC{RegHLInd},
		PUSH{PairBC},
		POP{PairDE},
		ADD16{PairDE},
		XOR{RegA},
	}
	c := NewCPU()
	mem := make([]byte, 0x10000)
	c.SP = 0xFFFE

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Execute(program[i%len(program)], mem)
	}
}
