package trace

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/brotli/go/cbrotli"

	"github.com/thelolagemann/sm83/internal/cpu"
)

// Type is the first byte of every message sent by the hub.
type Type = uint8

const (
	// EventStep carries a payload that clients should store at the
	// given cache index.
	EventStep Type = iota
	// EventCached refers to a payload the client already holds.
	EventCached
	// EventSync replays a cache entry to a newly connected client.
	// The last EventSync of a burst is the latest snapshot.
	EventSync
	// EventInfo lists the connected clients and their round trip
	// time in milliseconds.
	EventInfo

	// Closing is sent by a client that wants to disconnect.
	Closing = 255
)

const (
	headerSize  = 1 + 2 + 8
	payloadSize = 12
)

var (
	// ErrShortMessage is returned when a message is smaller than its
	// header or payload.
	ErrShortMessage = errors.New("trace: short message")
	// ErrUnknownType is returned for a message type the hub never sends.
	ErrUnknownType = errors.New("trace: unknown message type")
)

// Message is a decoded hub message.
type Message struct {
	Type    Type
	Index   uint16
	Step    uint64
	Payload []byte
}

// EncodePayload packs the register file and the instruction mnemonic.
func EncodePayload(regs cpu.Registers, mnemonic string) []byte {
	b := make([]byte, payloadSize, payloadSize+len(mnemonic))
	b[0] = regs.A
	b[1] = uint8(regs.F)
	b[2] = regs.B
	b[3] = regs.C
	b[4] = regs.D
	b[5] = regs.E
	b[6] = regs.H
	b[7] = regs.L
	binary.LittleEndian.PutUint16(b[8:], regs.SP)
	binary.LittleEndian.PutUint16(b[10:], regs.PC)
	return append(b, mnemonic...)
}

// DecodePayload is the inverse of EncodePayload.
func DecodePayload(b []byte) (cpu.Registers, string, error) {
	if len(b) < payloadSize {
		return cpu.Registers{}, "", ErrShortMessage
	}
	regs := cpu.Registers{
		A:  b[0],
		F:  cpu.Flags(b[1]),
		B:  b[2],
		C:  b[3],
		D:  b[4],
		E:  b[5],
		H:  b[6],
		L:  b[7],
		SP: binary.LittleEndian.Uint16(b[8:]),
		PC: binary.LittleEndian.Uint16(b[10:]),
	}
	return regs, string(b[payloadSize:]), nil
}

func createMessage(t Type, idx int, step uint64, payload []byte) []byte {
	msg := make([]byte, headerSize, headerSize+len(payload))
	msg[0] = t
	binary.LittleEndian.PutUint16(msg[1:], uint16(idx))
	binary.LittleEndian.PutUint64(msg[3:], step)
	return append(msg, payload...)
}

// ParseMessage decodes a step, cached or sync message. Compressed
// payloads are decompressed when compressed is true.
func ParseMessage(b []byte, compressed bool) (Message, error) {
	if len(b) < headerSize {
		return Message{}, ErrShortMessage
	}
	m := Message{
		Type:  b[0],
		Index: binary.LittleEndian.Uint16(b[1:]),
		Step:  binary.LittleEndian.Uint64(b[3:]),
	}

	switch m.Type {
	case EventCached:
		return m, nil
	case EventStep, EventSync:
		m.Payload = b[headerSize:]
		if compressed {
			var err error
			if m.Payload, err = cbrotli.Decode(m.Payload); err != nil {
				return Message{}, fmt.Errorf("trace: decompress: %w", err)
			}
		}
		return m, nil
	default:
		return Message{}, fmt.Errorf("%w: %d", ErrUnknownType, m.Type)
	}
}
