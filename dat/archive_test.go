package dat

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixtureEntry struct {
	dir      string
	name     string
	flags    uint32
	payload  []byte // packed bytes as stored on disk
	unpacked uint32
}

// buildArchive serializes fixture entries into DAT container bytes:
// root directory table, per-directory file tables, then payloads.
func buildArchive(t *testing.T, entries []fixtureEntry) []byte {
	t.Helper()

	var dirs []string
	byDir := make(map[string][]fixtureEntry)
	for _, e := range entries {
		if _, ok := byDir[e.dir]; !ok {
			dirs = append(dirs, e.dir)
		}
		byDir[e.dir] = append(byDir[e.dir], e)
	}

	// First pass: index size, so payload offsets can be assigned.
	indexLen := 16
	for _, d := range dirs {
		indexLen += 1 + len(d)
		indexLen += 16
		for _, e := range byDir[d] {
			indexLen += 1 + len(e.name) + 16
		}
	}

	offsets := make(map[string]uint32)
	off := uint32(indexLen)
	for _, d := range dirs {
		for _, e := range byDir[d] {
			offsets[d+"/"+e.name] = off
			off += uint32(len(e.payload))
		}
	}

	var buf bytes.Buffer
	u32 := func(v uint32) {
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], v)
		buf.Write(b[:])
	}
	key := func(s string) {
		buf.WriteByte(byte(len(s)))
		buf.WriteString(s)
	}

	u32(uint32(len(dirs)))
	u32(uint32(len(dirs)))
	u32(0) // no root-level data after keys
	u32(0)
	for _, d := range dirs {
		key(d)
	}
	for _, d := range dirs {
		es := byDir[d]
		u32(uint32(len(es)))
		u32(uint32(len(es)))
		u32(16)
		u32(0)
		for _, e := range es {
			key(e.name)
			u32(e.flags)
			u32(offsets[d+"/"+e.name])
			u32(e.unpacked)
			u32(uint32(len(e.payload)))
		}
	}
	require.Equal(t, indexLen, buf.Len())

	for _, d := range dirs {
		for _, e := range byDir[d] {
			buf.Write(e.payload)
		}
	}
	return buf.Bytes()
}

func openFixture(t *testing.T, entries []fixtureEntry, opts ...Option) *Archive {
	t.Helper()
	a, err := New(bytes.NewReader(buildArchive(t, entries)), opts...)
	require.NoError(t, err)
	return a
}

// lzssLiterals encodes p as an all-literal LZSS token stream.
func lzssLiterals(p []byte) []byte {
	var enc []byte
	for len(p) > 0 {
		n := min(len(p), 8)
		enc = append(enc, 0xFF)
		enc = append(enc, p[:n]...)
		p = p[n:]
	}
	return enc
}

func TestLookupIsCaseAndSeparatorInsensitive(t *testing.T) {
	t.Parallel()

	a := openFixture(t, []fixtureEntry{
		{dir: `TEXT\ENGLISH\DIALOG`, name: "FOO.MSG", flags: 0x20, payload: []byte("hello"), unpacked: 5},
	})

	for _, path := range []string{
		"Text/English/Dialog/Foo.msg",
		`TEXT\ENGLISH\DIALOG\FOO.MSG`,
		`text\english\dialog\foo.msg`,
	} {
		data, err := a.ReadFile(path)
		require.NoError(t, err, path)
		assert.Equal(t, []byte("hello"), data, path)
		assert.True(t, a.Exists(path), path)
	}
}

func TestReadDispatch(t *testing.T) {
	t.Parallel()

	raw := []byte("0123456789")
	plain := bytes.Repeat([]byte("ab"), 20)

	a := openFixture(t, []fixtureEntry{
		{dir: "D", name: "RAW.BIN", flags: 0x20, payload: raw, unpacked: uint32(len(raw))},
		{dir: "D", name: "PACKED.BIN", flags: 0x10, payload: lzssLiterals(plain), unpacked: uint32(len(plain))},
		{dir: "D", name: "ODD.BIN", flags: 0x50, payload: raw, unpacked: uint32(len(raw))},
	})

	got, err := a.ReadFile(`D\RAW.BIN`)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	got, err = a.ReadFile(`D\PACKED.BIN`)
	require.NoError(t, err)
	assert.Equal(t, plain, got)

	// Unrecognized flag nibble falls back to a raw copy.
	got, err = a.ReadFile(`D\ODD.BIN`)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestReadChunkedEntry(t *testing.T) {
	t.Parallel()

	// Stored chunk, then an LZSS chunk that back-references the stored
	// bytes: only a shared window across chunks decodes this correctly.
	stored := []byte("ABCDEFGH")
	ref := []byte{
		0x00,
		0xEE, 0xF3, // window offset 4078, length 6
	}
	var payload bytes.Buffer
	var hdr [2]byte
	binary.BigEndian.PutUint16(hdr[:], 0x8000|uint16(len(stored)))
	payload.Write(hdr[:])
	payload.Write(stored)
	binary.BigEndian.PutUint16(hdr[:], uint16(len(ref)))
	payload.Write(hdr[:])
	payload.Write(ref)

	want := []byte("ABCDEFGHABCDEF")
	a := openFixture(t, []fixtureEntry{
		{dir: "D", name: "CHUNKED.BIN", flags: 0x40, payload: payload.Bytes(), unpacked: uint32(len(want))},
	})

	got, err := a.ReadFile(`D\CHUNKED.BIN`)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadFileNotFound(t *testing.T) {
	t.Parallel()

	a := openFixture(t, []fixtureEntry{
		{dir: "D", name: "A.BIN", flags: 0x20, payload: []byte("x"), unpacked: 1},
	})

	_, err := a.ReadFile(`D\MISSING.BIN`)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = a.Stat(`D\MISSING.BIN`)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, a.Exists(`D\MISSING.BIN`))
}

func TestStatReturnsMetadataWithoutReading(t *testing.T) {
	t.Parallel()

	a := openFixture(t, []fixtureEntry{
		{dir: "D", name: "A.BIN", flags: 0x10, payload: []byte{0xFF, 'x'}, unpacked: 123},
	})

	e, err := a.Stat("d/a.bin")
	require.NoError(t, err)
	assert.Equal(t, `D\A.BIN`, e.Path)
	assert.Equal(t, CompressionLZSS, e.Compression())
	assert.True(t, e.Compressed())
	assert.Equal(t, uint32(2), e.PackedSize)
	assert.Equal(t, uint32(123), e.UnpackedSize)
}

func TestList(t *testing.T) {
	t.Parallel()

	a := openFixture(t, []fixtureEntry{
		{dir: "MAPS", name: "JUNKTOWN.MAP", flags: 0x20, payload: []byte("j"), unpacked: 1},
		{dir: "SCRIPTS", name: "ABEL.INT", flags: 0x20, payload: []byte("a"), unpacked: 1},
		{dir: "MAPS", name: "VAULT13.MAP", flags: 0x20, payload: []byte("v"), unpacked: 1},
	})

	assert.Equal(t, []string{`MAPS\JUNKTOWN.MAP`, `MAPS\VAULT13.MAP`, `SCRIPTS\ABEL.INT`}, a.List(""))
	assert.Equal(t, []string{`MAPS\JUNKTOWN.MAP`, `MAPS\VAULT13.MAP`}, a.List("*.map"))
	assert.Equal(t, []string{`MAPS\JUNKTOWN.MAP`}, a.List("junk"))
	assert.Empty(t, a.List("*.PRO"))
}

func TestDirectoryWithUnknownRecordSizeIsSkipped(t *testing.T) {
	t.Parallel()

	// Hand-build an index whose only directory declares an 8-byte
	// record shape: the reader must skip it without failing.
	var buf bytes.Buffer
	u32 := func(v uint32) {
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], v)
		buf.Write(b[:])
	}
	u32(1)
	u32(1)
	u32(0)
	u32(0)
	buf.WriteByte(3)
	buf.WriteString("DIR")
	u32(1)
	u32(1)
	u32(8) // not the understood 16-byte record
	u32(0)
	buf.WriteByte(5)
	buf.WriteString("A.BIN")
	buf.Write(make([]byte, 8))

	a, err := New(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Empty(t, a.List(""))
}

func TestTruncatedRootHeaderIsFatal(t *testing.T) {
	t.Parallel()

	_, err := New(bytes.NewReader([]byte{0, 0, 0}))
	assert.ErrorIs(t, err, ErrBadIndex)
}

func TestTruncatedIndexBodyKeepsParsedEntries(t *testing.T) {
	t.Parallel()

	full := buildArchive(t, []fixtureEntry{
		{dir: "D", name: "A.BIN", flags: 0x20, payload: []byte("x"), unpacked: 1},
	})
	// Cut inside the directory's file table: root header is intact, so
	// parsing succeeds with whatever was recovered.
	a, err := New(bytes.NewReader(full[:20]))
	require.NoError(t, err)
	assert.Empty(t, a.List(""))
}

func TestReadFileCached(t *testing.T) {
	t.Parallel()

	plain := bytes.Repeat([]byte("z"), 16)
	a := openFixture(t, []fixtureEntry{
		{dir: "D", name: "A.BIN", flags: 0x10, payload: lzssLiterals(plain), unpacked: uint32(len(plain))},
	}, WithCacheSize(8))

	first, err := a.ReadFile(`D\A.BIN`)
	require.NoError(t, err)
	second, err := a.ReadFile(`D\A.BIN`)
	require.NoError(t, err)
	assert.Equal(t, plain, first)
	assert.Equal(t, plain, second)
}

func TestExtractAll(t *testing.T) {
	t.Parallel()

	a := openFixture(t, []fixtureEntry{
		{dir: "TEXT", name: "A.TXT", flags: 0x20, payload: []byte("aaa"), unpacked: 3},
		{dir: "TEXT", name: "B.TXT", flags: 0x20, payload: []byte("bbb"), unpacked: 3},
	})

	dest := t.TempDir()
	require.NoError(t, a.ExtractAll(dest, "*.TXT", ExtractWithWorkers(2)))

	got, err := os.ReadFile(filepath.Join(dest, "TEXT", "A.TXT"))
	require.NoError(t, err)
	assert.Equal(t, []byte("aaa"), got)
	got, err = os.ReadFile(filepath.Join(dest, "TEXT", "B.TXT"))
	require.NoError(t, err)
	assert.Equal(t, []byte("bbb"), got)
}

func TestEndToEndSyntheticArchive(t *testing.T) {
	t.Parallel()

	rawBytes := []byte("0123456789")
	plain := bytes.Repeat([]byte("fallout "), 5) // 40 bytes

	a := openFixture(t, []fixtureEntry{
		{dir: "", name: "B.", flags: 0x10, payload: lzssLiterals(plain), unpacked: uint32(len(plain))},
		{dir: "", name: "A.", flags: 0x20, payload: rawBytes, unpacked: uint32(len(rawBytes))},
	})

	assert.Equal(t, []string{"A.", "B."}, a.List("*."))

	got, err := a.ReadFile("A.")
	require.NoError(t, err)
	assert.Equal(t, rawBytes, got)
	assert.Len(t, got, 10)

	got, err = a.ReadFile("B.")
	require.NoError(t, err)
	assert.Equal(t, plain, got)
	assert.Len(t, got, 40)
}
