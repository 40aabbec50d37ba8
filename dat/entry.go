package dat

// Compression identifies how an entry's payload is stored.
type Compression uint8

// Compression modes, selected by the high nibble of an entry's flags
// word. Any unrecognized nibble is treated as raw.
const (
	CompressionRaw     Compression = 0x20 // stored verbatim
	CompressionLZSS    Compression = 0x10 // one LZSS block
	CompressionChunked Compression = 0x40 // mixed stored/LZSS sub-blocks
)

// String implements fmt.Stringer.
func (c Compression) String() string {
	switch c {
	case CompressionRaw:
		return "raw"
	case CompressionLZSS:
		return "lzss"
	case CompressionChunked:
		return "chunked"
	default:
		return "unknown"
	}
}

// Entry is one file record from the archive index. Entries are immutable
// after the index parse.
type Entry struct {
	// Path is the normalized (uppercase, backslash-separated) path.
	Path string

	// Flags is the raw on-disk flags word; the high nibble selects the
	// compression mode.
	Flags uint32

	// Offset is the absolute byte offset of the payload in the archive.
	Offset uint32

	// PackedSize is the on-disk payload size in bytes.
	PackedSize uint32

	// UnpackedSize is the decoded size in bytes.
	UnpackedSize uint32
}

// Compression returns the entry's compression mode. Unrecognized flag
// nibbles fall back to CompressionRaw.
func (e Entry) Compression() Compression {
	switch c := Compression(e.Flags & 0xF0); c {
	case CompressionLZSS, CompressionChunked:
		return c
	default:
		return CompressionRaw
	}
}

// Compressed reports whether the payload requires decompression.
func (e Entry) Compressed() bool {
	return e.Compression() != CompressionRaw
}
