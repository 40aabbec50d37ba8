package lzss

// Decoder holds the ring-buffer state of one decompression session.
//
// A Decoder must not be shared across concurrent decodes; each logical
// file gets its own instance (or a Reset between files). The zero value
// is not ready to use — call NewDecoder or Reset first.
type Decoder struct {
	window [WindowSize]byte
	cursor int
}

// NewDecoder returns a Decoder with a freshly reset window.
func NewDecoder() *Decoder {
	d := &Decoder{}
	d.Reset()
	return d
}

// Reset refills the window with the filler byte and moves the write
// cursor to its initial position. Required once per logical file.
func (d *Decoder) Reset() {
	for i := range d.window {
		d.window[i] = Filler
	}
	d.cursor = windowStart
}

// Decode is the one-shot entry point: it resets the window, then decodes
// by consuming up to n input bytes from src. The output length is
// determined by the token stream. A truncated src yields a shorter
// output; Decode never fails.
func (d *Decoder) Decode(src []byte, n int) []byte {
	d.Reset()
	out, _ := d.DecodeNext(src, n)
	return out
}

// DecodeNext decodes from the start of src, consuming up to n input
// bytes, without resetting the window. It returns the decoded bytes and
// the number of source bytes actually consumed — token boundaries do not
// align with arbitrary chunk cuts, so the caller needs the consumed
// count to advance its own cursor.
func (d *Decoder) DecodeNext(src []byte, n int) ([]byte, int) {
	var out []byte
	pos := 0
	remaining := n

	for remaining > 0 && pos < len(src) {
		flags := src[pos]
		pos++
		remaining--

		for bit := 0; bit < FlagBits; bit++ {
			if remaining <= 0 || pos >= len(src) {
				break
			}

			if flags&(1<<bit) != 0 {
				// Literal: emit and remember.
				b := src[pos]
				pos++
				remaining--
				out = append(out, b)
				d.put(b)
				continue
			}

			// Back-reference: 12-bit offset, 4-bit length nibble.
			if remaining < 2 || pos+1 >= len(src) {
				pos = len(src)
				break
			}
			low := src[pos]
			high := src[pos+1]
			pos += 2
			remaining -= 2

			offset := int(low) | int(high&0xF0)<<4
			length := int(high&0x0F) + MinMatch

			// Byte-at-a-time so a reference into bytes written by this
			// same copy reads the freshly written values.
			for i := 0; i < length; i++ {
				b := d.window[(offset+i)&(WindowSize-1)]
				out = append(out, b)
				d.put(b)
			}
		}
	}

	return out, pos
}

// Feed folds raw (uncompressed) bytes into the window without producing
// output. Chunked archive entries interleave stored chunks with
// compressed ones, and later back-references may target stored bytes.
func (d *Decoder) Feed(p []byte) {
	for _, b := range p {
		d.put(b)
	}
}

func (d *Decoder) put(b byte) {
	d.window[d.cursor] = b
	d.cursor = (d.cursor + 1) & (WindowSize - 1)
}

// Decompress decodes src with a fresh Decoder, consuming up to n input
// bytes. Pass len(src) to decode the whole buffer.
func Decompress(src []byte, n int) []byte {
	return NewDecoder().Decode(src, n)
}
