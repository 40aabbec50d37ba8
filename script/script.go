package script

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/korri123/falloutdata/dat"
)

const (
	procedureTableOffset = 42
	procedureRecordSize  = 24
)

// Script is a parsed script module. The raw buffer is retained because
// executable code interleaves with the tables; tables are parsed once
// and immutable afterward.
type Script struct {
	data []byte
	name string

	procedures []Procedure

	identifiersOffset int
	identifiersSize   int
	staticOffset      int
	staticSize        int
}

// New parses a script module from its raw bytes. It fails only when the
// buffer cannot hold the procedure-count field; a module truncated
// anywhere past that parses with partial tables.
func New(data []byte, name string) (*Script, error) {
	if len(data) < procedureTableOffset+4 {
		return nil, fmt.Errorf("script %s: %d bytes, below the %d-byte minimum",
			name, len(data), procedureTableOffset+4)
	}
	s := &Script{data: data, name: name}
	s.parse()
	return s, nil
}

// FromArchive reads and parses a script module stored in a DAT archive.
func FromArchive(a *dat.Archive, path string) (*Script, error) {
	data, err := a.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(data, path)
}

func (s *Script) parse() {
	count := int(s.readLong(procedureTableOffset))

	ptr := procedureTableOffset + 4
	for i := 0; i < count; i++ {
		if ptr+procedureRecordSize > len(s.data) {
			break
		}
		s.procedures = append(s.procedures, Procedure{
			NameOffset:       s.readLong(ptr),
			Flags:            ProcedureFlags(s.readLong(ptr + 4)),
			Time:             s.readLong(ptr + 8),
			ConditionAddress: s.readLong(ptr + 12),
			CodeAddress:      s.readLong(ptr + 16),
			ArgCount:         s.readLong(ptr + 20),
		})
		ptr += procedureRecordSize
	}

	s.identifiersOffset = ptr
	if ptr+4 <= len(s.data) {
		s.identifiersSize = int(s.readLong(ptr))
	}

	s.staticOffset = s.identifiersOffset + 4 + s.identifiersSize
	if s.staticOffset+4 <= len(s.data) {
		// 0xFFFFFFFF and oversized lengths both mean "rest of the file".
		raw := s.readLong(s.staticOffset)
		if raw == 0xFFFFFFFF || int64(raw) > int64(len(s.data)) {
			s.staticSize = len(s.data) - s.staticOffset - 4
		} else {
			s.staticSize = int(raw)
		}
	}

	for i := range s.procedures {
		s.procedures[i].Name = s.Identifier(s.procedures[i].NameOffset)
	}
}

// Name returns the display name the module was loaded under.
func (s *Script) Name() string { return s.name }

// Len returns the module's size in bytes. Code can live anywhere in the
// buffer, so this is also where disassembly stops.
func (s *Script) Len() int { return len(s.data) }

// Procedures returns the procedure table in file order.
func (s *Script) Procedures() []Procedure { return s.procedures }

// Procedure finds a procedure by name, case-insensitively.
func (s *Script) Procedure(name string) (Procedure, bool) {
	for _, p := range s.procedures {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Procedure{}, false
}

// Identifier resolves an identifier-table offset to its string. Offsets
// are relative to the table's size field; out-of-range offsets resolve
// to "".
func (s *Script) Identifier(off uint32) string {
	return s.cstring(s.identifiersOffset + int(off))
}

// StaticString resolves a static-string-table offset to its string.
// Offsets are relative to the first string, past the size field.
func (s *Script) StaticString(off uint32) string {
	return s.cstring(s.staticOffset + 4 + int(off))
}

func (s *Script) cstring(abs int) string {
	if abs < 0 || abs >= len(s.data) {
		return ""
	}
	end := bytes.IndexByte(s.data[abs:], 0)
	if end < 0 {
		end = len(s.data) - abs
	}
	return string(s.data[abs : abs+end])
}

func (s *Script) readWord(off int) uint16 {
	return binary.BigEndian.Uint16(s.data[off : off+2])
}

func (s *Script) readLong(off int) uint32 {
	return binary.BigEndian.Uint32(s.data[off : off+4])
}

// Iterate returns an iterator positioned at a byte offset, 0 for the
// bootstrap code at the start of the module.
func (s *Script) Iterate(offset int) *Iterator {
	return &Iterator{s: s, off: offset}
}

// Disassemble decodes the instructions in [start, end). Pass end < 0 to
// decode through the end of the module.
func (s *Script) Disassemble(start, end int) []Instruction {
	if end < 0 || end > len(s.data) {
		end = len(s.data)
	}
	var out []Instruction
	it := s.Iterate(start)
	for it.Offset() < end && it.More() {
		ins, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, ins)
	}
	return out
}

// DisassembleProcedure decodes a procedure's body. Records carry no
// length, so the body runs to the nearest later procedure entry point,
// or to the end of the module for the last one.
func (s *Script) DisassembleProcedure(p Procedure) []Instruction {
	start := int(p.CodeAddress)
	end := len(s.data)
	for _, other := range s.procedures {
		if addr := int(other.CodeAddress); addr > start && addr < end {
			end = addr
		}
	}
	return s.Disassemble(start, end)
}
