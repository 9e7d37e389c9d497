package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRange(t *testing.T) {
	assert.True(t, WorkRAM.Contains(0xC000))
	assert.True(t, WorkRAM.Contains(0xDFFF))
	assert.False(t, WorkRAM.Contains(0xE000))
	assert.Equal(t, 0x2000, WorkRAM.Len())
	assert.Equal(t, "$C000-$DFFF", WorkRAM.String())
	assert.Equal(t, "$FF80-$FFFE", HighRAM.String())
}

func TestMemoryRegions(t *testing.T) {
	t.Run("contiguous", func(t *testing.T) {
		next := 0
		for _, r := range MemoryRegions {
			if int(r.Start) != next {
				t.Errorf("%s: expected start $%04X, got $%04X", r.Name, next, r.Start)
			}
			next = r.End
		}
		if next != int(IE) {
			t.Errorf("expected regions to end at IE, got $%04X", next)
		}
	})
	t.Run("Region", func(t *testing.T) {
		for addr, want := range map[uint16]string{
			0x0000: "ROM0",
			0x4000: "ROMX",
			0x9FFF: "VRAM",
			0xA000: "SRAM",
			0xC100: "WRAM",
			0xE000: "ECHO",
			0xFE9F: "OAM",
			0xFEA0: "UNUSED",
			0xFF40: "IO",
			0xFF80: "HRAM",
			0xFFFF: "IE",
		} {
			assert.Equal(t, want, Region(addr), "$%04X", addr)
		}
	})
	t.Run("vectors", func(t *testing.T) {
		for _, v := range []uint16{RST00, RST08, RST10, RST18, RST20, RST28, RST30, RST38, VBlankINT, LCDINT, TimerINT, SerialINT, JoypadINT} {
			assert.Equal(t, "ROM0", Region(v))
			assert.Less(t, v, EntryPoint.Start)
		}
	})
}
