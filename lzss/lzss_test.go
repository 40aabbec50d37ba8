package lzss

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// literals encodes p as an all-literal token stream.
func literals(p []byte) []byte {
	var enc []byte
	for len(p) > 0 {
		n := len(p)
		if n > FlagBits {
			n = FlagBits
		}
		enc = append(enc, 0xFF)
		enc = append(enc, p[:n]...)
		p = p[n:]
	}
	return enc
}

func TestDecodeLiterals(t *testing.T) {
	t.Parallel()

	want := []byte("the quick brown fox jumps over the lazy dog")
	enc := literals(want)

	got := Decompress(enc, len(enc))
	assert.Equal(t, want, got)
}

func TestDecodeReferenceIntoPrefill(t *testing.T) {
	t.Parallel()

	// Fresh window is all spaces, so a back-reference before anything
	// was written must produce spaces.
	enc := []byte{
		0x00,       // all 8 bits are references; only one fits the budget
		0x00, 0x01, // offset 0, length nibble 1 -> 4 bytes
	}
	got := Decompress(enc, len(enc))
	assert.Equal(t, bytes.Repeat([]byte{Filler}, 4), got)
}

func TestDecodeSelfOverlappingReference(t *testing.T) {
	t.Parallel()

	// One literal 'A' lands at the initial cursor (4078), then a
	// reference starting there with length 5 must read its own output
	// byte-by-byte, yielding a run of six 'A's.
	enc := []byte{
		0x01,       // bit0 literal, bit1 reference
		'A',        // literal
		0xEE, 0xF2, // offset 0xFEE (4078), length nibble 2 -> 5
	}
	got := Decompress(enc, len(enc))
	assert.Equal(t, bytes.Repeat([]byte{'A'}, 6), got)
}

func TestDecodeStopsAtInputBudget(t *testing.T) {
	t.Parallel()

	payload := []byte("abcdefgh")
	enc := literals(payload)

	// Budget covers the flag byte plus three literals only.
	got := Decompress(enc, 4)
	assert.Equal(t, []byte("abc"), got)
}

func TestDecodeTruncatedTail(t *testing.T) {
	t.Parallel()

	payload := []byte("abcdefgh")
	enc := literals(payload)

	// Budget larger than the data: output is simply shorter, not an error.
	got := Decompress(enc[:5], 100)
	assert.Equal(t, []byte("abcd"), got)
}

func TestDecodeNextReportsConsumed(t *testing.T) {
	t.Parallel()

	enc := literals([]byte("0123456789"))
	d := NewDecoder()

	out, consumed := d.DecodeNext(enc, 9) // flag + 8 literals
	assert.Equal(t, []byte("01234567"), out)
	assert.Equal(t, 9, consumed)

	out, consumed = d.DecodeNext(enc[consumed:], len(enc)-consumed)
	assert.Equal(t, []byte("89"), out)
	assert.Equal(t, 3, consumed)
}

func TestChunkedMatchesMonolithic(t *testing.T) {
	t.Parallel()

	// A stream whose second block back-references bytes produced by the
	// first: state must be continuous across the chunk cut.
	first := literals([]byte("ABCDEFGH"))
	// "ABCDEFGH" occupies window[4078..4085]; reference 6 bytes of it.
	second := []byte{
		0x00,
		0xEE, 0xF3, // offset 4078, length nibble 3 -> 6 bytes
	}
	whole := append(append([]byte{}, first...), second...)
	want := []byte("ABCDEFGHABCDEF")

	mono := Decompress(whole, len(whole))
	require.Equal(t, want, mono)

	d := NewDecoder()
	out1, n1 := d.DecodeNext(whole, len(first))
	require.Equal(t, len(first), n1)
	out2, _ := d.DecodeNext(whole[n1:], len(second))

	assert.Equal(t, want, append(out1, out2...))
}

func TestFeedRawBytesReachableByReference(t *testing.T) {
	t.Parallel()

	d := NewDecoder()
	d.Feed([]byte("XYZ")) // raw chunk folded into the window

	// Back-reference to the fed bytes at window[4078..4080].
	enc := []byte{
		0x00,
		0xEE, 0xF0, // offset 4078, length 3
	}
	out, _ := d.DecodeNext(enc, len(enc))
	assert.Equal(t, []byte("XYZ"), out)
}

func TestDecodeResetsBetweenCalls(t *testing.T) {
	t.Parallel()

	d := NewDecoder()
	d.Feed([]byte("garbage that must not survive the reset"))

	enc := []byte{
		0x00,
		0xEE, 0xF0, // offset 4078, length 3
	}
	// Decode resets, so the fed bytes are gone and prefill spaces remain.
	out := d.Decode(enc, len(enc))
	assert.Equal(t, bytes.Repeat([]byte{Filler}, 3), out)
}

func TestDecompressEmptyInput(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Decompress(nil, 10))
	assert.Empty(t, Decompress([]byte{0xFF}, 0))
}
