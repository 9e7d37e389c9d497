package types

import "fmt"

// Range represents a half-open range [Start, End) of the SM83's 16-bit
// address space. End is held as an int so that a range may extend to
// the very top of memory.
type Range struct {
	Start uint16
	End   int
}

// Contains returns true if address falls within the range.
func (r Range) Contains(address uint16) bool {
	return address >= r.Start && int(address) < r.End
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() int {
	return r.End - int(r.Start)
}

func (r Range) String() string {
	return fmt.Sprintf("$%04X-$%04X", r.Start, r.End-1)
}

// The memory map of the Game Boy. The instruction core addresses
// memory as a flat byte array; these ranges describe what a mapper
// placed in front of that array would route each address to.
var (
	// ROMBank0 is the fixed first 16 KiB bank of the cartridge ROM.
	ROMBank0 = Range{0x0000, 0x4000}
	// ROMBankN is the switchable 16 KiB cartridge ROM bank.
	ROMBankN = Range{0x4000, 0x8000}
	// VideoRAM holds tile data and the background maps.
	VideoRAM = Range{0x8000, 0xA000}
	// ExternalRAM is the switchable cartridge RAM bank.
	ExternalRAM = Range{0xA000, 0xC000}
	// WorkRAM is the 8 KiB of internal RAM.
	WorkRAM = Range{0xC000, 0xE000}
	// EchoRAM mirrors the first 7.5 KiB of WorkRAM.
	EchoRAM = Range{0xE000, 0xFE00}
	// OAM is the sprite attribute table.
	OAM = Range{0xFE00, 0xFEA0}
	// Unusable is unmapped on the original hardware.
	Unusable = Range{0xFEA0, 0xFF00}
	// IOPorts are the hardware registers.
	IOPorts = Range{0xFF00, 0xFF4C}
	// Unusable2 sits between the IO ports and high RAM.
	Unusable2 = Range{0xFF4C, 0xFF80}
	// HighRAM is the internal RAM below the interrupt enable register.
	HighRAM = Range{0xFF80, 0xFFFF}
)

// IE is the address of the interrupt enable register.
const IE uint16 = 0xFFFF

// MemoryRegions lists every region of the memory map in address
// order. Together they cover $0000-$FFFE; IE sits on its own at $FFFF.
var MemoryRegions = []struct {
	Name string
	Range
}{
	{"ROM0", ROMBank0},
	{"ROMX", ROMBankN},
	{"VRAM", VideoRAM},
	{"SRAM", ExternalRAM},
	{"WRAM", WorkRAM},
	{"ECHO", EchoRAM},
	{"OAM", OAM},
	{"UNUSED", Unusable},
	{"IO", IOPorts},
	{"UNUSED", Unusable2},
	{"HRAM", HighRAM},
}

// Region returns the name of the memory region address belongs to.
func Region(address uint16) string {
	if address == IE {
		return "IE"
	}
	for _, r := range MemoryRegions {
		if r.Contains(address) {
			return r.Name
		}
	}
	return ""
}

// RestartVector is the target address of one of the RST instructions.
type RestartVector = uint16

const (
	RST00 RestartVector = 0x0000
	RST08 RestartVector = 0x0008
	RST10 RestartVector = 0x0010
	RST18 RestartVector = 0x0018
	RST20 RestartVector = 0x0020
	RST28 RestartVector = 0x0028
	RST30 RestartVector = 0x0030
	RST38 RestartVector = 0x0038
)

// InterruptVector is the address the CPU jumps to when servicing an
// interrupt.
type InterruptVector = uint16

const (
	// VBlankINT is requested when the LCD enters vertical blank.
	VBlankINT InterruptVector = 0x0040
	// LCDINT is requested by the LCD STAT conditions.
	LCDINT InterruptVector = 0x0048
	// TimerINT is requested when TIMA overflows.
	TimerINT InterruptVector = 0x0050
	// SerialINT is requested when a serial transfer completes.
	SerialINT InterruptVector = 0x0058
	// JoypadINT is requested on a high to low transition of P10-P13.
	JoypadINT InterruptVector = 0x0060
)

// The cartridge header, found in every ROM between $0100 and $014F.
var (
	// EntryPoint is where execution begins after the boot ROM.
	EntryPoint = Range{0x0100, 0x0104}
	// NintendoLogo is the scrolling logo bitmap.
	NintendoLogo = Range{0x0104, 0x0134}
	// Title is the upper case ASCII game title.
	Title = Range{0x0134, 0x0143}
	// GlobalChecksum covers the 16-bit checksum of the whole ROM.
	GlobalChecksum = Range{0x014E, 0x0150}
)

const (
	CGBFlag         uint16 = 0x0143
	NewLicenseeHigh uint16 = 0x0144
	NewLicenseeLow  uint16 = 0x0145
	SGBFlag         uint16 = 0x0146
	CartridgeType   uint16 = 0x0147
	ROMSize         uint16 = 0x0148
	RAMSize         uint16 = 0x0149
	DestinationCode uint16 = 0x014A
	OldLicenseeCode uint16 = 0x014B
	MaskROMVersion  uint16 = 0x014C
	HeaderChecksum  uint16 = 0x014D
)
