package gamemap

import "fmt"

// ScriptKind is the script class carried in a SID's high byte. It also
// determines the on-disk record size: spatial records carry a trigger
// tile and radius, timed records carry a trigger time.
type ScriptKind int32

const (
	ScriptSystem ScriptKind = iota
	ScriptSpatial
	ScriptTimed
	ScriptItem
	ScriptCritter

	scriptKindCount = 5
)

func (k ScriptKind) String() string {
	switch k {
	case ScriptSystem:
		return "system"
	case ScriptSpatial:
		return "spatial"
	case ScriptTimed:
		return "timed"
	case ScriptItem:
		return "item"
	case ScriptCritter:
		return "critter"
	default:
		return fmt.Sprintf("ScriptKind(%d)", int32(k))
	}
}

// ScriptRecord is one script entry of a map's scripts section.
type ScriptRecord struct {
	SID  int32
	Next int32 // stale chain pointer, kept only for round-trips

	// BuiltTile and Radius are read for spatial records only.
	BuiltTile int32
	Radius    int32

	// Time is read for timed records only.
	Time int32

	Flags           int32
	ScriptIndex     int32 // index into the script list
	ObjectID        int32 // owning object, matched against Object.ID
	LocalVarOffset  int32
	LocalVarCount   int32
	Field28         int32
	Action          int32
	FixedParam      int32
	ActionBeingUsed int32
	ScriptOverrides int32
	Field48         int32
	HowMuch         int32
	RunInfoFlags    int32
}

// Kind returns the script class from the SID's high byte.
func (s *ScriptRecord) Kind() ScriptKind { return ScriptKind(s.SID >> 24 & 0xFF) }

// IDNumber returns the SID without the kind bits.
func (s *ScriptRecord) IDNumber() int32 { return s.SID & 0x00FFFFFF }

// Tile returns the trigger tile of a spatial record.
func (s *ScriptRecord) Tile() int32 { return s.BuiltTile & 0x3FFFFFF }

// Elevation returns the trigger elevation of a spatial record.
func (s *ScriptRecord) Elevation() int32 { return (s.BuiltTile >> 29) & 0x7 }
