package types

import (
	"fmt"
	"strings"
)

// Header is the cartridge header found between $0100 and $014F of a
// ROM image. The instruction core never reads it; it is used to
// describe images before they are run.
type Header struct {
	// Title of the game, without trailing padding.
	Title string
	// CGB is true if the cartridge supports or requires the Color
	// Game Boy. In older cartridges this byte was part of the title.
	CGB           bool
	CartridgeType uint8
	// ROMSize in bytes (32 KiB << n).
	ROMSize        int
	HeaderChecksum uint8
	GlobalChecksum uint16

	// computed over $0134-$014C
	checksum uint8
}

// ParseHeader parses the header of the given image, which must start
// at address $0000. It returns false if the image is too short to
// hold a header.
func ParseHeader(image []byte) (Header, bool) {
	if len(image) < GlobalChecksum.End {
		return Header{}, false
	}

	h := Header{
		CGB:            image[CGBFlag]&0x80 != 0,
		CartridgeType:  image[CartridgeType],
		ROMSize:        (32 * 1024) << (image[ROMSize] & 0x0F),
		HeaderChecksum: image[HeaderChecksum],
		GlobalChecksum: uint16(image[GlobalChecksum.Start])<<8 | uint16(image[GlobalChecksum.Start+1]),
	}

	title := image[Title.Start:Title.End]
	if !h.CGB {
		title = image[Title.Start : Title.End+1]
	}
	h.Title = strings.TrimRight(string(title), "\x00 ")

	for _, b := range image[Title.Start:HeaderChecksum] {
		h.checksum = h.checksum - b - 1
	}

	return h, true
}

// Valid returns true if the header checksum matches the header bytes.
func (h Header) Valid() bool {
	return h.checksum == h.HeaderChecksum
}

func (h Header) String() string {
	mode := "DMG"
	if h.CGB {
		mode = "CGB"
	}
	return fmt.Sprintf("%s Mode: %s | Type: $%02X | ROM Size: %dkB", h.Title, mode, h.CartridgeType, h.ROMSize/1024)
}
