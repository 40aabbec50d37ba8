package binread

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReads(t *testing.T) {
	t.Parallel()

	r := New([]byte{0x01, 0x02, 0xFF, 0xFF, 0xFF, 0xFE, 0xAA, 0xBB}, 0)
	assert.Equal(t, uint16(0x0102), r.Uint16())
	assert.Equal(t, int32(-2), r.Int32())
	assert.Equal(t, []byte{0xAA, 0xBB}, r.Bytes(2))
	assert.Equal(t, 8, r.Offset())
	assert.Equal(t, 0, r.Remaining())
	assert.False(t, r.Failed())
}

func TestFailureIsSticky(t *testing.T) {
	t.Parallel()

	r := New([]byte{0x01, 0x02}, 0)
	assert.Equal(t, uint32(0), r.Uint32())
	require.True(t, r.Failed())

	// Everything after the first overrun stays zero.
	assert.Equal(t, uint16(0), r.Uint16())
	assert.Nil(t, r.Bytes(1))
	assert.Equal(t, 0, r.Remaining())
}

func TestSkipPastEndFails(t *testing.T) {
	t.Parallel()

	r := New(make([]byte, 4), 0)
	r.Skip(2)
	assert.False(t, r.Failed())
	r.Skip(3)
	assert.True(t, r.Failed())
}

func TestNewWithBadOffset(t *testing.T) {
	t.Parallel()

	r := New(make([]byte, 4), 5)
	assert.True(t, r.Failed())
	r = New(make([]byte, 4), 4)
	assert.False(t, r.Failed())
	assert.Equal(t, 0, r.Remaining())
}
