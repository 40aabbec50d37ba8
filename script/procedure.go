package script

// ProcedureFlags are the attribute bits of a procedure record.
type ProcedureFlags uint32

// Procedure attribute flags.
const (
	FlagTimed       ProcedureFlags = 0x01
	FlagConditional ProcedureFlags = 0x02
	FlagImported    ProcedureFlags = 0x04
	FlagExported    ProcedureFlags = 0x08
	FlagCritical    ProcedureFlags = 0x10
)

// Procedure is one entry of a module's procedure table. Procedures are
// parsed once at load and immutable thereafter.
type Procedure struct {
	// Name is resolved from the identifier table at parse time.
	Name string

	// NameOffset is the raw identifier-table offset the name came from.
	NameOffset uint32

	Flags ProcedureFlags

	// Time is the trigger time for timed procedures.
	Time uint32

	// ConditionAddress is the byte offset of the condition code.
	ConditionAddress uint32

	// CodeAddress is the byte offset of the entry code.
	CodeAddress uint32

	// ArgCount is the declared argument count.
	ArgCount uint32
}

func (p Procedure) Timed() bool       { return p.Flags&FlagTimed != 0 }
func (p Procedure) Conditional() bool { return p.Flags&FlagConditional != 0 }
func (p Procedure) Imported() bool    { return p.Flags&FlagImported != 0 }
func (p Procedure) Exported() bool    { return p.Flags&FlagExported != 0 }
func (p Procedure) Critical() bool    { return p.Flags&FlagCritical != 0 }
