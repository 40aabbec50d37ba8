package gamemap

import "fmt"

// ObjectType is the object class carried in a PID's high byte.
type ObjectType int32

const (
	TypeItem ObjectType = iota
	TypeCritter
	TypeScenery
	TypeWall
	TypeTile
	TypeMisc
)

func (t ObjectType) String() string {
	switch t {
	case TypeItem:
		return "item"
	case TypeCritter:
		return "critter"
	case TypeScenery:
		return "scenery"
	case TypeWall:
		return "wall"
	case TypeTile:
		return "tile"
	case TypeMisc:
		return "misc"
	default:
		return fmt.Sprintf("ObjectType(%d)", int32(t))
	}
}

// ItemType is an item's subtype, defined by its prototype record rather
// than the map file.
type ItemType int32

const (
	ItemArmor ItemType = iota
	ItemContainer
	ItemDrug
	ItemWeapon
	ItemAmmo
	ItemMisc
	ItemKey
)

// SceneryType is a scenery object's subtype from its prototype record.
type SceneryType int32

const (
	SceneryDoor SceneryType = iota
	SceneryStairs
	SceneryElevator
	SceneryLadderUp
	SceneryLadderDown
	SceneryGeneric
)

// Object flag bits.
const (
	FlagHidden      = 0x01
	FlagNoSave      = 0x04
	FlagFlat        = 0x08
	FlagNoBlock     = 0x10
	FlagLighting    = 0x20
	FlagMultiHex    = 0x800
	FlagInLeftHand  = 0x1000000
	FlagInRightHand = 0x2000000
	FlagWorn        = 0x4000000
)

// CombatData is a critter's serialized combat state.
type CombatData struct {
	DamageLastTurn int32
	Maneuver       int32
	ActionPoints   int32
	Results        int32
	AIPacket       int32
	Team           int32
	WhoHitMe       int32
}

// CritterData is the payload of critter objects.
type CritterData struct {
	Reaction  int32
	Combat    CombatData
	HP        int32
	Radiation int32
	Poison    int32
}

// WeaponData is the payload of weapon items.
type WeaponData struct {
	AmmoQuantity int32
	AmmoTypePID  int32
}

// AmmoData is the payload of ammo items.
type AmmoData struct {
	Quantity int32
}

// MiscItemData is the payload of misc items with charges.
type MiscItemData struct {
	Charges int32
}

// KeyData is the payload of key items.
type KeyData struct {
	KeyCode int32
}

// DoorData is the payload of door scenery.
type DoorData struct {
	OpenFlags int32
}

func (d DoorData) Locked() bool { return d.OpenFlags&0x02000000 != 0 }
func (d DoorData) Jammed() bool { return d.OpenFlags&0x04000000 != 0 }

// StairsData is the payload of stairs scenery.
type StairsData struct {
	DestinationMap  int32
	DestinationTile int32 // built tile, tile and elevation packed
}

func (s StairsData) Tile() int32      { return s.DestinationTile & 0x3FFFFFF }
func (s StairsData) Elevation() int32 { return (s.DestinationTile >> 29) & 0x7 }

// ElevatorData is the payload of elevator scenery.
type ElevatorData struct {
	Type  int32
	Level int32
}

// LadderData is the payload of ladder scenery, up or down.
type LadderData struct {
	DestinationTile int32
}

func (l LadderData) Tile() int32      { return l.DestinationTile & 0x3FFFFFF }
func (l LadderData) Elevation() int32 { return (l.DestinationTile >> 29) & 0x7 }

// ExitGridData is the payload of exit-grid misc objects, which send the
// player to another map.
type ExitGridData struct {
	Map       int32
	Tile      int32
	Elevation int32
	Rotation  int32
}

// InventoryItem is one stacked entry of an object's inventory.
type InventoryItem struct {
	Quantity int32
	Item     *Object
}

// Object is one placed object. Payload holds the type-specific data,
// one of the *Data structs above, or nil when the type carries none or
// the subtype is unknown.
type Object struct {
	ID               int32
	Tile             int32
	X                int32
	Y                int32
	SX               int32
	SY               int32
	Frame            int32
	Rotation         int32
	FID              int32
	Flags            int32
	Elevation        int32
	PID              int32
	CID              int32
	LightDistance    int32
	LightIntensity   int32
	SID              int32
	MessageListIndex int32

	// UpdatedFlags is the flags word every non-critter payload starts
	// with; critters store combat state instead.
	UpdatedFlags int32

	InventoryCapacity int32
	Inventory         []InventoryItem

	Payload any
}

// Type returns the object class from the PID's high byte.
func (o *Object) Type() ObjectType { return ObjectType(o.PID >> 24 & 0xFF) }

// PIDIndex returns the prototype number without the type bits.
func (o *Object) PIDIndex() int32 { return o.PID & 0x00FFFFFF }

// FIDType returns the art class from the FID.
func (o *Object) FIDType() int32 { return o.FID >> 24 & 0xF }

// FIDIndex returns the art index from the FID.
func (o *Object) FIDIndex() int32 { return o.FID & 0xFFF }

// HasScript reports whether a script is attached.
func (o *Object) HasScript() bool { return o.SID >= 0 }

// ScriptKind returns the attached script's kind, or -1 without one.
func (o *Object) ScriptKind() int32 {
	if o.SID < 0 {
		return -1
	}
	return o.SID >> 24 & 0xFF
}

// ScriptIndex returns the attached script's index into the script list,
// or -1 without one.
func (o *Object) ScriptIndex() int32 {
	if o.SID < 0 {
		return -1
	}
	return o.SID & 0x00FFFFFF
}

func (o *Object) String() string {
	return fmt.Sprintf("%s pid=0x%08X tile=%d elev=%d", o.Type(), uint32(o.PID), o.Tile, o.Elevation)
}
