package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		s := NewState()
		s.Write8(0x12)
		s.Write16(0x3456)
		s.Write64(0x0102030405060708)
		s.WriteBool(true)
		s.WriteBool(false)
		s.WriteData([]byte{0xAA, 0xBB})
		assert.Equal(t, 1+2+8+1+1+2, s.Len())

		r := StateFromBytes(s.Bytes())
		assert.Equal(t, uint8(0x12), r.Read8())
		assert.Equal(t, uint16(0x3456), r.Read16())
		assert.Equal(t, uint64(0x0102030405060708), r.Read64())
		assert.True(t, r.ReadBool())
		assert.False(t, r.ReadBool())
		data := make([]byte, 2)
		r.ReadData(data)
		assert.Equal(t, []byte{0xAA, 0xBB}, data)
		assert.NoError(t, r.Err())
	})
	t.Run("little endian", func(t *testing.T) {
		s := NewState()
		s.Write16(0x1234)
		assert.Equal(t, []byte{0x34, 0x12}, s.Bytes())
	})
	t.Run("short read", func(t *testing.T) {
		r := StateFromBytes([]byte{0x01})
		assert.Equal(t, uint16(0), r.Read16())
		assert.ErrorIs(t, r.Err(), ErrShortState)

		// sticky
		assert.Equal(t, uint8(0), r.Read8())
		assert.ErrorIs(t, r.Err(), ErrShortState)

		r.ResetPosition()
		assert.NoError(t, r.Err())
		assert.Equal(t, uint8(0x01), r.Read8())
	})
	t.Run("short data", func(t *testing.T) {
		r := StateFromBytes([]byte{0x01, 0x02})
		data := []byte{9, 9, 9}
		r.ReadData(data)
		assert.Equal(t, []byte{9, 9, 9}, data)
		assert.Error(t, r.Err())
	})
	t.Run("Fail", func(t *testing.T) {
		r := StateFromBytes([]byte{0x01, 0x02})
		r.Fail(ErrBadState)
		assert.ErrorIs(t, r.Err(), ErrBadState)
		assert.Equal(t, uint8(0), r.Read8())

		// the first error wins
		r.Fail(ErrShortState)
		assert.ErrorIs(t, r.Err(), ErrBadState)
	})
	t.Run("SaveToFile", func(t *testing.T) {
		s := NewState()
		s.Write64(42)
		path := filepath.Join(t.TempDir(), "state.sav")
		require.NoError(t, s.SaveToFile(path))

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), StateFromBytes(b).Read64())
	})
}
