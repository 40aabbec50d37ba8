/*
Package lzss implements the LZSS decompression variant used by Fallout 1
DAT archives.

Format: one flag byte governs the next up to 8 tokens, low bit first.
Bit 1 = literal (1 input byte, emitted as-is). Bit 0 = back-reference
(2 input bytes): byte0 is the low 8 bits of a 12-bit window offset,
byte1's high nibble the upper 4 offset bits, byte1's low nibble the
length minus 3 (lengths 3..18). The window is a 4096-byte ring buffer
pre-filled with spaces, with the write cursor starting at 4078.

Decoding is driven by an input-byte budget, not an output length: the
decoder consumes exactly n compressed bytes (or until the source ends)
and the output length falls out of the token stream. A truncated tail
yields a shorter output, never an error.

The window persists across calls for chunked archive entries: use
DecodeNext to continue a decode without resetting, and Feed to fold raw
(stored) chunk bytes into the window so later back-references can reach
them.

	dec := lzss.NewDecoder()
	out := dec.Decode(packed, len(packed)) // one-shot, resets state

	dec.Reset()
	part, consumed := dec.DecodeNext(packed, 512) // chunked, state kept
	dec.Feed(rawChunk)
*/
package lzss
