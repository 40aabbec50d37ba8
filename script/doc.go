/*
Package script parses compiled Fallout 1 script modules (.INT files) and
disassembles their bytecode.

A module is a single buffer: 42 bytes of bootstrap code, a procedure
table (count + 24-byte records), an identifier table and a static-string
table (each a byte length followed by NUL-terminated strings addressed
by offset), with executable code spanning the whole file — bootstrap
before the tables, main code after. Disassembly is therefore driven by
explicit byte offsets, never by scanning for table boundaries.

Opcodes are big-endian 16-bit words. PUSH (low 10 bits 0x001) carries a
4-byte operand whose interpretation — signed integer, IEEE-754 float,
static-string offset, or dynamic-string offset — is selected by flag
bits in the opcode's high byte; every other opcode is bare.

Parsing fails only when the buffer cannot hold the fixed header; any
later misread degrades to empty or partial tables.

	s, err := script.New(data, "abel.int")
	if err != nil {
		return err
	}
	proc, ok := s.Procedure("map_enter_p_proc")
	if ok {
		for _, ins := range s.DisassembleProcedure(proc) {
			fmt.Printf("%04X %s\n", ins.Offset, ins.Name())
		}
	}
*/
package script
