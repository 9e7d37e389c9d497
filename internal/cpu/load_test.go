package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstruction_Load(t *testing.T) {
	t.Run("LD r, d8", func(t *testing.T) {
		for r := RegB; r <= RegA; r++ {
			if r == RegHLInd {
				continue
			}
			c := NewCPU()
			c.Execute(LDN{r, 0x5A}, nil)
			if got := c.get8(r, nil); got != 0x5A {
				t.Errorf("LD %s: expected 0x5A, got %#02x", r, got)
			}
		}
	})
	t.Run("LD (HL), d8", func(t *testing.T) {
		c := NewCPU()
		mem := make([]byte, 0x20)
		c.SetHL(0x10)
		c.Execute(LDN{RegHLInd, 0x77}, mem)
		assert.Equal(t, uint8(0x77), mem[0x10])
	})
	t.Run("LD rr, d8", func(t *testing.T) {
		c := NewCPU()
		c.SetDE(0xFFFF)
		c.Execute(LDN{PairDE, 0x42}, nil)
		assert.Equal(t, uint16(0x0042), c.DE())
		assert.Panics(t, func() { c.Execute(LDN{PairSP, 0x42}, nil) })
		assert.Panics(t, func() { c.Execute(LDN{PairAF, 0x42}, nil) })
	})
	t.Run("LD r, r'", func(t *testing.T) {
		c := NewCPU()
		mem := make([]byte, 0x20)
		c.B = 0x12
		c.Execute(LDRR{To: RegE, From: RegB}, mem)
		assert.Equal(t, uint8(0x12), c.E)

		c.SetHL(0x04)
		c.Execute(LDRR{To: RegHLInd, From: RegE}, mem)
		assert.Equal(t, uint8(0x12), mem[0x04])

		mem[0x04] = 0x99
		c.Execute(LDRR{To: RegA, From: RegHLInd}, mem)
		assert.Equal(t, uint8(0x99), c.A)
	})
	t.Run("LD A, n", func(t *testing.T) {
		c := NewCPU()
		mem := make([]byte, 0x40)
		mem[0x10], mem[0x20], mem[0x30] = 1, 2, 3
		c.SetBC(0x10)
		c.SetDE(0x20)

		c.Execute(LDA{IndBC}, mem)
		assert.Equal(t, uint8(1), c.A)
		c.Execute(LDA{IndDE}, mem)
		assert.Equal(t, uint8(2), c.A)
		c.Execute(LDA{Absolute(0x30)}, mem)
		assert.Equal(t, uint8(3), c.A)
		c.Execute(LDA{Immediate(4)}, mem)
		assert.Equal(t, uint8(4), c.A)
		c.L = 5
		c.Execute(LDA{RegL}, mem)
		assert.Equal(t, uint8(5), c.A)
	})
	t.Run("LD n, A", func(t *testing.T) {
		c := NewCPU()
		mem := make([]byte, 0x40)
		c.A = 0xAA
		c.SetBC(0x11)
		c.SetDE(0x22)

		c.Execute(LDFA{IndBC}, mem)
		c.Execute(LDFA{IndDE}, mem)
		c.Execute(LDFA{Absolute(0x33)}, mem)
		c.Execute(LDFA{RegH}, mem)
		assert.Equal(t, uint8(0xAA), mem[0x11])
		assert.Equal(t, uint8(0xAA), mem[0x22])
		assert.Equal(t, uint8(0xAA), mem[0x33])
		assert.Equal(t, uint8(0xAA), c.H)
	})
	t.Run("flags untouched", func(t *testing.T) {
		c := NewCPU()
		c.F = FlagMask
		c.Execute(LDN{RegA, 0}, nil)
		c.Execute(LDRR{To: RegB, From: RegA}, nil)
		assert.Equal(t, FlagMask, c.F)
	})
}
