package script

import (
	"fmt"
	"math"
)

// OperandKind tags the decoded operand of a PUSH instruction.
type OperandKind uint8

// Operand kinds.
const (
	OperandNone         OperandKind = iota // bare opcode, no operand
	OperandInt                             // signed 32-bit integer
	OperandFloat                           // IEEE-754 float, same 4 bytes
	OperandString                          // static string, resolved to text
	OperandStringOffset                    // dynamic-string offset, unresolved
)

// Operand is the decoded payload of a PUSH instruction. Kind selects
// which field is meaningful; the others are zero.
//
// Dynamic-string offsets stay unresolved: the dynamic string table is a
// runtime construct and is not present in the file.
type Operand struct {
	Kind   OperandKind
	Int    int32
	Float  float32
	Str    string
	Offset uint32
}

// Instruction is one decoded bytecode instruction. Instructions are
// produced lazily by the disassembler and never persisted.
type Instruction struct {
	// Offset is the byte offset of the opcode within the module.
	Offset int

	// Opcode is the raw 16-bit opcode including high-byte type flags.
	Opcode uint16

	Operand Operand

	// Size is the total encoded size: 2, or 6 when an operand follows.
	Size int
}

// Name returns the instruction's mnemonic.
func (i Instruction) Name() string { return OpcodeName(i.Opcode) }

// IsPush reports whether this is a PUSH in any of its typed encodings.
func (i Instruction) IsPush() bool { return i.Opcode&0x3FF == pushBase }

// IsJump reports whether this is a branch instruction.
func (i Instruction) IsJump() bool {
	return i.Opcode == OpJump || i.Opcode == OpIf || i.Opcode == OpWhile
}

// String formats the instruction for disassembly listings.
func (i Instruction) String() string {
	switch i.Operand.Kind {
	case OperandInt:
		return fmt.Sprintf("%04X: %s %d", i.Offset, i.Name(), i.Operand.Int)
	case OperandFloat:
		return fmt.Sprintf("%04X: %s %f", i.Offset, i.Name(), i.Operand.Float)
	case OperandString:
		return fmt.Sprintf("%04X: %s %q", i.Offset, i.Name(), i.Operand.Str)
	case OperandStringOffset:
		return fmt.Sprintf("%04X: %s dynstr@%d", i.Offset, i.Name(), i.Operand.Offset)
	default:
		return fmt.Sprintf("%04X: %s", i.Offset, i.Name())
	}
}

// Iterator walks a module's bytecode instruction by instruction.
type Iterator struct {
	s   *Script
	off int
}

// Offset returns the current byte offset.
func (it *Iterator) Offset() int { return it.off }

// Seek moves the iterator to a byte offset.
func (it *Iterator) Seek(off int) error {
	if off < 0 || off > len(it.s.data) {
		return fmt.Errorf("script: seek offset %d out of range [0, %d]", off, len(it.s.data))
	}
	it.off = off
	return nil
}

// More reports whether a full opcode remains.
func (it *Iterator) More() bool {
	return it.off+2 <= len(it.s.data)
}

// Next decodes the instruction at the current offset and advances past
// it. The second return value is false once the code is exhausted.
func (it *Iterator) Next() (Instruction, bool) {
	if !it.More() {
		return Instruction{}, false
	}

	ins := Instruction{
		Offset: it.off,
		Opcode: it.s.readWord(it.off),
		Size:   2,
	}
	it.off += 2

	if ins.Opcode&0x3FF != pushBase {
		return ins, true
	}

	// PUSH always carries 4 operand bytes; a module truncated inside the
	// operand leaves a bare 2-byte instruction.
	if it.off+4 > len(it.s.data) {
		return ins, true
	}
	raw := it.s.readLong(it.off)
	it.off += 4
	ins.Size = 6

	// The high byte's flag bits pick the interpretation of the same
	// 4 bytes; a plain 0x80 high byte pushes the value as an integer.
	switch high := byte(ins.Opcode >> 8); {
	case high&flagInt != 0:
		ins.Operand = Operand{Kind: OperandInt, Int: int32(raw)}
	case high&flagFloat != 0:
		ins.Operand = Operand{Kind: OperandFloat, Float: math.Float32frombits(raw)}
	// Dynamic before static: the dynamic pattern (0x98) carries the
	// static bit (0x10) as well.
	case high&flagDynamicString != 0:
		ins.Operand = Operand{Kind: OperandStringOffset, Offset: raw}
	case high&flagStaticString != 0:
		ins.Operand = Operand{Kind: OperandString, Str: it.s.StaticString(raw)}
	default:
		ins.Operand = Operand{Kind: OperandInt, Int: int32(raw)}
	}
	return ins, true
}
