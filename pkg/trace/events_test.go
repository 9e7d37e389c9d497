package trace

import (
	"testing"

	"github.com/google/brotli/go/cbrotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelolagemann/sm83/internal/cpu"
)

var testRegisters = cpu.Registers{
	A: 0x01, F: cpu.FlagZero | cpu.FlagCarry,
	B: 0x02, C: 0x03, D: 0x04, E: 0x05, H: 0x06, L: 0x07,
	SP: 0xFFFE, PC: 0x0150,
}

func TestPayload(t *testing.T) {
	payload := EncodePayload(testRegisters, "ADD A, B")
	assert.Equal(t, []byte{0x01, 0x90, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0xFE, 0xFF, 0x50, 0x01}, payload[:payloadSize])

	regs, mnemonic, err := DecodePayload(payload)
	require.NoError(t, err)
	assert.Equal(t, testRegisters, regs)
	assert.Equal(t, "ADD A, B", mnemonic)

	_, _, err = DecodePayload(payload[:payloadSize-1])
	assert.ErrorIs(t, err, ErrShortMessage)
}

func TestParseMessage(t *testing.T) {
	payload := EncodePayload(testRegisters, "INC HL")

	t.Run("step", func(t *testing.T) {
		m, err := ParseMessage(createMessage(EventStep, 0x0102, 0x0807060504030201, payload), false)
		require.NoError(t, err)
		assert.Equal(t, EventStep, m.Type)
		assert.Equal(t, uint16(0x0102), m.Index)
		assert.Equal(t, uint64(0x0807060504030201), m.Step)
		assert.Equal(t, payload, m.Payload)
	})
	t.Run("cached", func(t *testing.T) {
		m, err := ParseMessage(createMessage(EventCached, 7, 99, nil), false)
		require.NoError(t, err)
		assert.Equal(t, Message{Type: EventCached, Index: 7, Step: 99}, m)
	})
	t.Run("compressed", func(t *testing.T) {
		compressed, err := cbrotli.Encode(payload, cbrotli.WriterOptions{Quality: 5})
		require.NoError(t, err)
		m, err := ParseMessage(createMessage(EventSync, 1, 2, compressed), true)
		require.NoError(t, err)
		assert.Equal(t, payload, m.Payload)
	})
	t.Run("errors", func(t *testing.T) {
		_, err := ParseMessage([]byte{EventStep, 0, 0}, false)
		assert.ErrorIs(t, err, ErrShortMessage)
		_, err = ParseMessage(createMessage(EventInfo, 0, 0, nil), false)
		assert.ErrorIs(t, err, ErrUnknownType)
		_, err = ParseMessage(createMessage(EventStep, 0, 0, []byte("garbage")), true)
		assert.Error(t, err)
	})
}
