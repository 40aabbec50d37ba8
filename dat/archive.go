package dat

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/korri123/falloutdata/lzss"
)

// ByteSource provides random access to the archive bytes.
//
// The source must support concurrent positioned reads; *os.File does.
type ByteSource interface {
	io.ReaderAt
	Size() int64
}

// entryRecordSize is the per-entry data size a directory must declare
// for its file records to be understood. Any other size is skipped.
const entryRecordSize = 16

// Archive is an open DAT container. The index is built once at open
// time and is read-only afterwards, so an Archive is safe for
// concurrent use.
type Archive struct {
	source  ByteSource
	closer  io.Closer
	entries map[string]Entry
	paths   []string // normalized, sorted

	cacheSize int
	cache     *lru.Cache[string, []byte]
	readGroup singleflight.Group
	logger    *slog.Logger
}

// Open opens the DAT file at path and parses its index.
func Open(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dat: %w", err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("dat: %w", err)
	}
	a, err := New(&fileSource{f: f, size: fi.Size()})
	if err != nil {
		f.Close()
		return nil, err
	}
	a.closer = f
	return a, nil
}

// New parses the index from source and returns an Archive.
//
// Only an unreadable root header is fatal (ErrBadIndex); a truncated or
// malformed index body yields the entries parsed up to that point.
func New(source ByteSource, opts ...Option) (*Archive, error) {
	a := &Archive{
		source:  source,
		entries: make(map[string]Entry),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.cacheSize > 0 {
		c, err := lru.New[string, []byte](a.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("dat: %w", err)
		}
		a.cache = c
	}

	if err := a.parseIndex(); err != nil {
		return nil, err
	}

	a.paths = make([]string, 0, len(a.entries))
	for p := range a.entries {
		a.paths = append(a.paths, p)
	}
	sort.Strings(a.paths)
	return a, nil
}

// log returns the logger, falling back to a discard logger if nil.
func (a *Archive) log() *slog.Logger {
	if a.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a.logger
}

// Close closes the underlying file when the archive was opened with
// Open. Archives built on a caller-owned ByteSource are unaffected.
func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// fileSource adapts *os.File to ByteSource.
type fileSource struct {
	f    *os.File
	size int64
}

func (s *fileSource) ReadAt(p []byte, off int64) (int, error) { return s.f.ReadAt(p, off) }
func (s *fileSource) Size() int64                             { return s.size }

// indexReader walks the index sequentially from the start of the file.
type indexReader struct {
	r  *bufio.Reader
	ok bool
}

func (ir *indexReader) u32() uint32 {
	var b [4]byte
	if _, err := io.ReadFull(ir.r, b[:]); err != nil {
		ir.ok = false
		return 0
	}
	return binary.BigEndian.Uint32(b[:])
}

func (ir *indexReader) key() string {
	n, err := ir.r.ReadByte()
	if err != nil {
		ir.ok = false
		return ""
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(ir.r, b); err != nil {
		ir.ok = false
		return ""
	}
	return string(b)
}

func (ir *indexReader) skip(n uint32) {
	if _, err := ir.r.Discard(int(n)); err != nil {
		ir.ok = false
	}
}

// parseIndex reads the nested associative-array index: a root table of
// directory names, then one table of file records per directory.
func (a *Archive) parseIndex() error {
	ir := &indexReader{
		r:  bufio.NewReader(io.NewSectionReader(a.source, 0, a.source.Size())),
		ok: true,
	}

	rootCount := ir.u32()
	_ = ir.u32() // max
	rootDataSize := ir.u32()
	_ = ir.u32() // unused
	if !ir.ok {
		return ErrBadIndex
	}

	dirs := make([]string, 0, rootCount)
	for i := uint32(0); i < rootCount && ir.ok; i++ {
		name := ir.key()
		if rootDataSize > 0 {
			ir.skip(rootDataSize)
		}
		dirs = append(dirs, name)
	}

	for _, dir := range dirs {
		if !ir.ok {
			break
		}
		count := ir.u32()
		_ = ir.u32() // max
		dataSize := ir.u32()
		_ = ir.u32() // unused

		for i := uint32(0); i < count && ir.ok; i++ {
			name := ir.key()
			if dataSize != entryRecordSize {
				// Record shape not understood: skip the raw bytes and
				// keep the directory empty rather than failing.
				if dataSize > 0 {
					ir.skip(dataSize)
				}
				continue
			}
			flags := ir.u32()
			offset := ir.u32()
			unpacked := ir.u32()
			packed := ir.u32()
			if !ir.ok {
				break
			}

			full := name
			if dir != "" {
				full = dir + `\` + name
			}
			full = NormalizePath(full)
			a.entries[full] = Entry{
				Path:         full,
				Flags:        flags,
				Offset:       offset,
				PackedSize:   packed,
				UnpackedSize: unpacked,
			}
		}
	}
	return nil
}

// Exists reports whether path names an entry in the archive.
func (a *Archive) Exists(path string) bool {
	_, ok := a.entries[NormalizePath(path)]
	return ok
}

// Stat returns the metadata for path without reading or decompressing
// its payload. It returns ErrNotFound when the path is absent.
func (a *Archive) Stat(path string) (Entry, error) {
	e, ok := a.entries[NormalizePath(path)]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return e, nil
}

// List returns the stored paths matching pattern, sorted.
//
// An empty pattern returns every path. A pattern of the form "*.EXT"
// matches by extension; anything else is a case-insensitive substring
// filter. Separators in the pattern are normalized like paths.
func (a *Archive) List(pattern string) []string {
	if pattern == "" {
		return append([]string(nil), a.paths...)
	}
	p := NormalizePath(pattern)
	var out []string
	if ext, ok := strings.CutPrefix(p, "*"); ok {
		for _, path := range a.paths {
			if strings.HasSuffix(path, ext) {
				out = append(out, path)
			}
		}
		return out
	}
	for _, path := range a.paths {
		if strings.Contains(path, p) {
			out = append(out, path)
		}
	}
	return out
}

// ReadFile reads and decodes the entry at path. It returns ErrNotFound
// when the path is absent from the index.
//
// When caching is enabled the returned slice may be shared with other
// callers and must be treated as read-only.
func (a *Archive) ReadFile(path string) ([]byte, error) {
	key := NormalizePath(path)
	e, ok := a.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	if a.cache == nil {
		return a.readEntry(e)
	}

	if data, ok := a.cache.Get(key); ok {
		a.log().Debug("entry cache hit", "path", key)
		return data, nil
	}

	// Deduplicate concurrent decompressions of the same entry.
	v, err, _ := a.readGroup.Do(key, func() (any, error) {
		if data, ok := a.cache.Get(key); ok {
			return data, nil
		}
		data, err := a.readEntry(e)
		if err != nil {
			return nil, err
		}
		a.cache.Add(key, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// readEntry fetches and decodes one entry's payload.
func (a *Archive) readEntry(e Entry) ([]byte, error) {
	packed := make([]byte, e.PackedSize)
	if _, err := io.ReadFull(io.NewSectionReader(a.source, int64(e.Offset), int64(e.PackedSize)), packed); err != nil {
		return nil, fmt.Errorf("dat: read %s: %w", e.Path, err)
	}
	a.log().Debug("read entry", "path", e.Path, "compression", e.Compression().String(), "packed", e.PackedSize, "unpacked", e.UnpackedSize)

	switch e.Compression() {
	case CompressionLZSS:
		out := lzss.Decompress(packed, len(packed))
		if uint32(len(out)) > e.UnpackedSize {
			out = out[:e.UnpackedSize]
		}
		return out, nil
	case CompressionChunked:
		return readChunked(packed, int(e.UnpackedSize)), nil
	default:
		// Raw, and the fallback for unrecognized flag nibbles.
		return packed, nil
	}
}

// readChunked decodes a chunked payload: a sequence of 2-byte big-endian
// headers, each introducing either a stored run (top bit set, low 15
// bits = byte count) or an LZSS sub-block (header = compressed input
// byte count). One window is shared across all chunks, and stored runs
// are folded into it so later back-references can reach them.
func readChunked(packed []byte, unpacked int) []byte {
	dec := lzss.NewDecoder()
	out := make([]byte, 0, unpacked)
	pos := 0

	for len(out) < unpacked && pos+2 <= len(packed) {
		header := binary.BigEndian.Uint16(packed[pos : pos+2])
		pos += 2

		if header&0x8000 != 0 {
			n := int(header & 0x7FFF)
			if n == 0 {
				break // zero-length stored chunk cannot make progress
			}
			if pos+n > len(packed) {
				n = len(packed) - pos
			}
			chunk := packed[pos : pos+n]
			pos += n
			out = append(out, chunk...)
			dec.Feed(chunk)
			continue
		}

		if header == 0 {
			break
		}
		chunk, consumed := dec.DecodeNext(packed[pos:], int(header))
		pos += consumed
		out = append(out, chunk...)
		if consumed == 0 {
			break
		}
	}

	if len(out) > unpacked {
		out = out[:unpacked]
	}
	return out
}
