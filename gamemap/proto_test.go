package gamemap

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korri123/falloutdata/dat"
)

// buildDAT serializes raw (uncompressed) entries into DAT container
// bytes, one directory per distinct dir name.
func buildDAT(t *testing.T, files map[string][]byte) *dat.Archive {
	t.Helper()

	type entry struct {
		dir, name string
		data      []byte
	}
	var dirs []string
	byDir := make(map[string][]entry)
	for path, data := range files {
		i := bytes.LastIndexByte([]byte(path), '\\')
		e := entry{dir: path[:i], name: path[i+1:], data: data}
		if _, ok := byDir[e.dir]; !ok {
			dirs = append(dirs, e.dir)
		}
		byDir[e.dir] = append(byDir[e.dir], e)
	}

	indexLen := 16
	for _, d := range dirs {
		indexLen += 1 + len(d) + 16
		for _, e := range byDir[d] {
			indexLen += 1 + len(e.name) + 16
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
	u32(0)
	u32(0)
	for _, d := range dirs {
		key(d)
	}
	off := uint32(indexLen)
	for _, d := range dirs {
		es := byDir[d]
		u32(uint32(len(es)))
		u32(uint32(len(es)))
		u32(16)
		u32(0)
		for _, e := range es {
			key(e.name)
			u32(0x20) // raw
			u32(off)
			u32(uint32(len(e.data)))
			u32(uint32(len(e.data)))
			off += uint32(len(e.data))
		}
	}
	for _, d := range dirs {
		for _, e := range byDir[d] {
			buf.Write(e.data)
		}
	}

	a, err := dat.New(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	return a
}

func protoRecord(pid, subtype int32) []byte {
	b := make([]byte, protoMinSize)
	binary.BigEndian.PutUint32(b[:4], uint32(pid))
	binary.BigEndian.PutUint32(b[protoSubtypeOffset:], uint32(subtype))
	return b
}

func TestLoadSubtypes(t *testing.T) {
	t.Parallel()

	a := buildDAT(t, map[string][]byte{
		`PROTO\ITEMS\ITEMS.LST`:       []byte("GUN.PRO\nSHORT.PRO\nMISSING.PRO\n\n"),
		`PROTO\ITEMS\GUN.PRO`:         protoRecord(0x0000000A, int32(ItemWeapon)),
		`PROTO\ITEMS\SHORT.PRO`:       make([]byte, protoMinSize-1),
		`PROTO\SCENERY\SCENERY.LST`:   []byte("DOOR.PRO\n"),
		`PROTO\SCENERY\DOOR.PRO`:      protoRecord(0x02000020, int32(SceneryDoor)),
		`PROTO\CRITTERS\CRITTERS.LST`: []byte("unrelated\n"),
	})

	items, scenery, err := LoadSubtypes(a)
	require.NoError(t, err)

	assert.Equal(t, map[int32]ItemType{0x0000000A: ItemWeapon}, items)
	assert.Equal(t, map[int32]SceneryType{0x02000020: SceneryDoor}, scenery)
}

func TestLoadSubtypesWithoutProtoLists(t *testing.T) {
	t.Parallel()

	a := buildDAT(t, map[string][]byte{
		`MAPS\EMPTY.MAP`: []byte("not a proto"),
	})

	items, scenery, err := LoadSubtypes(a)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, scenery)
}

func TestParseFromArchive(t *testing.T) {
	t.Parallel()

	var b mapBuilder
	b.header(allTilesEmpty, 0, 0)
	b.emptyScripts()
	b.objects([elevationCount][]objFix{
		0: {{id: 1, tile: 77, pid: 0x01000001, sid: -1, payload: critterPayload(9)}},
	})

	a := buildDAT(t, map[string][]byte{
		`MAPS\TEST.MAP`: b.buf.Bytes(),
	})

	assert.Equal(t, []string{`MAPS\TEST.MAP`}, ListMaps(a))

	m, err := NewParser().ParseFromArchive(a, "maps/test.map")
	require.NoError(t, err)
	require.Len(t, m.Objects, 1)
	assert.Equal(t, int32(77), m.Objects[0].Tile)

	_, err = NewParser().ParseFromArchive(a, "maps/none.map")
	assert.ErrorIs(t, err, dat.ErrNotFound)
}
