package gamemap

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/korri123/falloutdata/dat"
	"github.com/korri123/falloutdata/internal/binread"
)

const (
	headerSize     = 236
	elevationCount = 3

	scriptsPerExtent = 16

	// One elevation's tile grid: 100x100 squares, a floor and a roof
	// tile packed per word.
	tileGridWords = 10000

	// Object counts past this are treated as a desynced stream.
	maxObjects = 50000
)

// Header is the fixed 236-byte map header. The 44 reserved words at its
// tail are skipped, not retained.
type Header struct {
	Version           int32
	Name              string
	EnteringTile      int32
	EnteringElevation int32
	EnteringRotation  int32
	LocalVarCount     int32
	MessageListIndex  int32
	Flags             int32
	Darkness          int32
	GlobalVarCount    int32
	MapID             int32
	LastVisitTime     int32
}

// HasMapScript reports whether a map-level script is attached.
func (h Header) HasMapScript() bool { return h.MessageListIndex >= 0 }

// Map is a parsed map file. Objects and Scripts hold every record in
// file order; the by-elevation and by-kind slices share the same
// pointers.
type Map struct {
	Header             Header
	Objects            []*Object
	ObjectsByElevation [elevationCount][]*Object
	Scripts            []*ScriptRecord
	ScriptsByKind      [scriptKindCount][]*ScriptRecord
}

// Critters returns the critter objects in file order.
func (m *Map) Critters() []*Object { return m.objectsOfType(TypeCritter) }

// Items returns the item objects in file order.
func (m *Map) Items() []*Object { return m.objectsOfType(TypeItem) }

// Scenery returns the scenery objects in file order.
func (m *Map) Scenery() []*Object { return m.objectsOfType(TypeScenery) }

func (m *Map) objectsOfType(t ObjectType) []*Object {
	var out []*Object
	for _, o := range m.Objects {
		if o.Type() == t {
			out = append(out, o)
		}
	}
	return out
}

// ObjectsAt returns the objects standing on a tile at an elevation.
func (m *Map) ObjectsAt(tile int32, elevation int) []*Object {
	if elevation < 0 || elevation >= elevationCount {
		return nil
	}
	var out []*Object
	for _, o := range m.ObjectsByElevation[elevation] {
		if o.Tile == tile {
			out = append(out, o)
		}
	}
	return out
}

// ScriptForObject finds the script record owned by an object, matching
// the record's object ID.
func (m *Map) ScriptForObject(o *Object) (*ScriptRecord, bool) {
	for _, s := range m.Scripts {
		if s.ObjectID == o.ID {
			return s, true
		}
	}
	return nil, false
}

// ScriptsByIndex returns every script record with a given script-list
// index.
func (m *Map) ScriptsByIndex(idx int32) []*ScriptRecord {
	var out []*ScriptRecord
	for _, s := range m.Scripts {
		if s.ScriptIndex == idx {
			out = append(out, s)
		}
	}
	return out
}

// Parser deserializes map files. Item and scenery payloads depend on
// subtype tables from the prototype files; without them those payloads
// are left nil, which also means any trailing payload words stay in the
// stream and desync it. Feed the tables from LoadSubtypes when payload
// fidelity matters.
type Parser struct {
	itemTypes    map[int32]ItemType
	sceneryTypes map[int32]SceneryType
	logger       *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithItemSubtypes supplies the item PID to subtype table.
func WithItemSubtypes(m map[int32]ItemType) Option {
	return func(p *Parser) { p.itemTypes = m }
}

// WithScenerySubtypes supplies the scenery PID to subtype table.
func WithScenerySubtypes(m map[int32]SceneryType) Option {
	return func(p *Parser) { p.sceneryTypes = m }
}

// WithLogger sets the logger. Without one, logs are discarded.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) { p.logger = l }
}

// NewParser returns a Parser with the given options applied.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) log() *slog.Logger {
	if p.logger != nil {
		return p.logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Parse deserializes a map file. It fails only when the buffer cannot
// hold the fixed header; a stream that goes bad later yields whatever
// was recovered up to that point.
func (p *Parser) Parse(data []byte) (*Map, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("gamemap: %d bytes, below the %d-byte header", len(data), headerSize)
	}
	r := binread.New(data, 0)
	m := &Map{Header: readHeader(r)}

	if n := m.Header.GlobalVarCount; n > 0 {
		r.Skip(int(n) * 4)
	}
	if n := m.Header.LocalVarCount; n > 0 {
		r.Skip(int(n) * 4)
	}
	// A set elevation flag means that elevation stores no tiles.
	for elev := 0; elev < elevationCount; elev++ {
		if m.Header.Flags&(2<<elev) == 0 {
			r.Skip(tileGridWords * 4)
		}
	}

	p.readScripts(r, m)
	if r.Failed() {
		p.log().Debug("map scripts section truncated", "name", m.Header.Name, "offset", r.Offset())
		return m, nil
	}
	p.readObjects(r, m)

	p.log().Debug("parsed map",
		"name", m.Header.Name,
		"objects", len(m.Objects),
		"scripts", len(m.Scripts))
	return m, nil
}

// ParseFromArchive reads and deserializes a map stored in a DAT
// archive.
func (p *Parser) ParseFromArchive(a *dat.Archive, path string) (*Map, error) {
	data, err := a.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.Parse(data)
}

// ListMaps returns every map file in an archive, sorted.
func ListMaps(a *dat.Archive) []string {
	return a.List("*.MAP")
}

func readHeader(r *binread.Reader) Header {
	h := Header{Version: r.Int32()}
	h.Name = string(bytes.TrimRight(r.Bytes(16), "\x00"))
	h.EnteringTile = r.Int32()
	h.EnteringElevation = r.Int32()
	h.EnteringRotation = r.Int32()
	h.LocalVarCount = r.Int32()
	h.MessageListIndex = r.Int32()
	h.Flags = r.Int32()
	h.Darkness = r.Int32()
	h.GlobalVarCount = r.Int32()
	h.MapID = r.Int32()
	h.LastVisitTime = r.Int32()
	r.Skip(44 * 4) // reserved
	return h
}

// readScripts decodes the five per-kind script lists. Each non-empty
// list is stored as extents of 16 fixed slots followed by a valid-count
// and a stale next pointer; only the first valid-count slots are real.
func (p *Parser) readScripts(r *binread.Reader, m *Map) {
	for kind := 0; kind < scriptKindCount; kind++ {
		count := int(r.Int32())
		if r.Failed() {
			return
		}
		if count <= 0 {
			continue
		}
		extents := (count + scriptsPerExtent - 1) / scriptsPerExtent
		for e := 0; e < extents; e++ {
			var slots [scriptsPerExtent]*ScriptRecord
			for i := range slots {
				slots[i] = readScriptRecord(r)
				if r.Failed() {
					return
				}
			}
			valid := int(r.Int32())
			r.Skip(4) // stale extent pointer
			if r.Failed() {
				return
			}
			if valid > scriptsPerExtent {
				valid = scriptsPerExtent
			}
			for i := 0; i < valid; i++ {
				m.Scripts = append(m.Scripts, slots[i])
				m.ScriptsByKind[kind] = append(m.ScriptsByKind[kind], slots[i])
			}
		}
	}
}

func readScriptRecord(r *binread.Reader) *ScriptRecord {
	s := &ScriptRecord{
		SID:  r.Int32(),
		Next: r.Int32(),
	}
	// The record's size depends on its own SID, so a corrupt SID
	// desyncs everything after it.
	switch s.Kind() {
	case ScriptSpatial:
		s.BuiltTile = r.Int32()
		s.Radius = r.Int32()
	case ScriptTimed:
		s.Time = r.Int32()
	}
	s.Flags = r.Int32()
	s.ScriptIndex = r.Int32()
	r.Skip(4) // stale program pointer
	s.ObjectID = r.Int32()
	s.LocalVarOffset = r.Int32()
	s.LocalVarCount = r.Int32()
	s.Field28 = r.Int32()
	s.Action = r.Int32()
	s.FixedParam = r.Int32()
	s.ActionBeingUsed = r.Int32()
	s.ScriptOverrides = r.Int32()
	s.Field48 = r.Int32()
	s.HowMuch = r.Int32()
	s.RunInfoFlags = r.Int32()
	return s
}

func (p *Parser) readObjects(r *binread.Reader, m *Map) {
	total := int(r.Int32())
	if r.Failed() || total < 0 || total > maxObjects {
		return
	}
	for elev := 0; elev < elevationCount; elev++ {
		count := int(r.Int32())
		if r.Failed() || count < 0 || count > total {
			return
		}
		for i := 0; i < count; i++ {
			o, ok := p.readObject(r, int32(elev))
			if !ok {
				p.log().Debug("map objects section truncated",
					"name", m.Header.Name,
					"elevation", elev,
					"parsed", len(m.Objects))
				return
			}
			m.Objects = append(m.Objects, o)
			m.ObjectsByElevation[elev] = append(m.ObjectsByElevation[elev], o)
		}
	}
}

func (p *Parser) readObject(r *binread.Reader, elevation int32) (*Object, bool) {
	o := &Object{
		ID:       r.Int32(),
		Tile:     r.Int32(),
		X:        r.Int32(),
		Y:        r.Int32(),
		SX:       r.Int32(),
		SY:       r.Int32(),
		Frame:    r.Int32(),
		Rotation: r.Int32(),
		FID:      r.Int32(),
		Flags:    r.Int32(),
	}
	r.Skip(4) // stored elevation, superseded by the section index
	o.Elevation = elevation
	o.PID = r.Int32()
	o.CID = r.Int32()
	o.LightDistance = r.Int32()
	o.LightIntensity = r.Int32()
	r.Skip(4) // unused word
	o.SID = r.Int32()
	o.MessageListIndex = r.Int32()
	if r.Failed() {
		return nil, false
	}

	invLen := p.readPayload(r, o)
	if r.Failed() {
		return nil, false
	}

	for i := 0; i < invLen; i++ {
		qty := r.Int32()
		item, ok := p.readObject(r, elevation)
		if !ok {
			return nil, false
		}
		o.Inventory = append(o.Inventory, InventoryItem{Quantity: qty, Item: item})
	}
	return o, true
}

// readPayload decodes the type-specific tail of an object and returns
// its declared inventory length.
func (p *Parser) readPayload(r *binread.Reader, o *Object) int {
	invLen := int(r.Int32())
	o.InventoryCapacity = r.Int32()
	r.Skip(4) // stale item-list pointer

	switch o.Type() {
	case TypeCritter:
		o.Payload = &CritterData{
			Reaction: r.Int32(),
			Combat: CombatData{
				DamageLastTurn: r.Int32(),
				Maneuver:       r.Int32(),
				ActionPoints:   r.Int32(),
				Results:        r.Int32(),
				AIPacket:       r.Int32(),
				Team:           r.Int32(),
				WhoHitMe:       r.Int32(),
			},
			HP:        r.Int32(),
			Radiation: r.Int32(),
			Poison:    r.Int32(),
		}
		return invLen
	}

	o.UpdatedFlags = r.Int32()
	switch o.Type() {
	case TypeItem:
		p.readItemPayload(r, o)
	case TypeScenery:
		p.readSceneryPayload(r, o)
	case TypeMisc:
		// Exit grids are the only misc objects with a payload.
		if o.PID >= 0x5000010 && o.PID <= 0x5000017 {
			o.Payload = &ExitGridData{
				Map:       r.Int32(),
				Tile:      r.Int32(),
				Elevation: r.Int32(),
				Rotation:  r.Int32(),
			}
		}
	}
	return invLen
}

func (p *Parser) readItemPayload(r *binread.Reader, o *Object) {
	t, ok := p.itemTypes[o.PID]
	if !ok {
		return
	}
	switch t {
	case ItemWeapon:
		o.Payload = &WeaponData{AmmoQuantity: r.Int32(), AmmoTypePID: r.Int32()}
	case ItemAmmo:
		o.Payload = &AmmoData{Quantity: r.Int32()}
	case ItemMisc:
		o.Payload = &MiscItemData{Charges: r.Int32()}
	case ItemKey:
		o.Payload = &KeyData{KeyCode: r.Int32()}
	}
	// Armor, containers and drugs carry no extra words.
}

func (p *Parser) readSceneryPayload(r *binread.Reader, o *Object) {
	t, ok := p.sceneryTypes[o.PID]
	if !ok {
		return
	}
	switch t {
	case SceneryDoor:
		o.Payload = &DoorData{OpenFlags: r.Int32()}
	case SceneryStairs:
		o.Payload = &StairsData{DestinationMap: r.Int32(), DestinationTile: r.Int32()}
	case SceneryElevator:
		o.Payload = &ElevatorData{Type: r.Int32(), Level: r.Int32()}
	case SceneryLadderUp, SceneryLadderDown:
		o.Payload = &LadderData{DestinationTile: r.Int32()}
	}
	// Generic scenery carries no extra words.
}
