// Package binread provides a big-endian cursor over a byte slice with a
// sticky failure flag.
//
// Game data is routinely truncated or corrupt, and the parsers built on
// this package return partial results instead of errors. An out-of-bounds
// read yields the zero value and latches Failed; callers check Failed at
// record boundaries rather than after every field.
package binread

import "encoding/binary"

// Reader is a big-endian cursor over data. The zero value is not usable;
// use New.
type Reader struct {
	data   []byte
	off    int
	failed bool
}

// New returns a Reader positioned at off.
func New(data []byte, off int) *Reader {
	r := &Reader{data: data}
	if off < 0 || off > len(data) {
		r.failed = true
		r.off = len(data)
		return r
	}
	r.off = off
	return r
}

// Offset returns the current byte offset.
func (r *Reader) Offset() int { return r.off }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.off }

// Failed reports whether any read ran past the end of the data.
// Once set it stays set; subsequent reads return zero values.
func (r *Reader) Failed() bool { return r.failed }

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int) {
	if r.failed || n < 0 || r.off+n > len(r.data) {
		r.failed = true
		r.off = len(r.data)
		return
	}
	r.off += n
}

// Bytes reads n raw bytes. The returned slice aliases the underlying data.
func (r *Reader) Bytes(n int) []byte {
	if r.failed || n < 0 || r.off+n > len(r.data) {
		r.failed = true
		r.off = len(r.data)
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

// Uint16 reads a big-endian 16-bit unsigned integer.
func (r *Reader) Uint16() uint16 {
	b := r.Bytes(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

// Uint32 reads a big-endian 32-bit unsigned integer.
func (r *Reader) Uint32() uint32 {
	b := r.Bytes(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// Int32 reads a big-endian 32-bit signed integer.
func (r *Reader) Int32() int32 {
	return int32(r.Uint32())
}
