package gamemap

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/korri123/falloutdata/dat"
)

const (
	itemListPath    = `PROTO\ITEMS\ITEMS.LST`
	sceneryListPath = `PROTO\SCENERY\SCENERY.LST`

	// A .PRO record stores its PID at offset 0 and its subtype at 32.
	protoSubtypeOffset = 32
	protoMinSize       = protoSubtypeOffset + 4
)

// LoadSubtypes builds the item and scenery PID to subtype tables from
// an archive's prototype files. A missing list yields an empty table;
// individual prototypes that are missing or too short are skipped.
func LoadSubtypes(a *dat.Archive) (map[int32]ItemType, map[int32]SceneryType, error) {
	items := make(map[int32]ItemType)
	err := eachProto(a, itemListPath, `PROTO\ITEMS`, func(pid, subtype int32) {
		items[pid] = ItemType(subtype)
	})
	if err != nil {
		return nil, nil, err
	}

	scenery := make(map[int32]SceneryType)
	err = eachProto(a, sceneryListPath, `PROTO\SCENERY`, func(pid, subtype int32) {
		scenery[pid] = SceneryType(subtype)
	})
	if err != nil {
		return nil, nil, err
	}
	return items, scenery, nil
}

func eachProto(a *dat.Archive, listPath, dir string, fn func(pid, subtype int32)) error {
	listing, err := a.ReadFile(listPath)
	if errors.Is(err, dat.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("gamemap: read %s: %w", listPath, err)
	}

	for _, line := range strings.Split(string(listing), "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		data, err := a.ReadFile(dir + `\` + name)
		if err != nil || len(data) < protoMinSize {
			continue
		}
		pid := int32(binary.BigEndian.Uint32(data[:4]))
		subtype := int32(binary.BigEndian.Uint32(data[protoSubtypeOffset:]))
		fn(pid, subtype)
	}
	return nil
}
