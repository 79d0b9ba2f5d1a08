// Package debug renders compiled bytecode back to a readable instruction
// listing, used by the VM's trace mode and by the `emit` command.
package debug

import (
	"fmt"
	"io"

	"l/bytecode"
	"l/value"
)

// Disassemble writes every instruction in bc under a `== name ==` header.
func Disassemble(w io.Writer, bc *bytecode.Bytecode, name string) {
	fmt.Fprintf(w, "== %s ==\n", name)
	for offset := 0; offset < len(bc.Code); {
		offset = DisassembleInstruction(w, bc, offset)
	}
}

// DisassembleInstruction writes the single instruction at offset and
// returns the offset of the instruction that follows it.
func DisassembleInstruction(w io.Writer, bc *bytecode.Bytecode, offset int) int {
	fmt.Fprintf(w, "%04d ", offset)

	line := bc.LineOf(offset)
	if offset > 0 && line == bc.LineOf(offset-1) {
		fmt.Fprint(w, "   | ")
	} else {
		fmt.Fprintf(w, "%4d ", line)
	}

	op := bytecode.Op(bc.Code[offset])
	switch op {
	case bytecode.OP_CONSTANT, bytecode.OP_DEFINE_GLOBAL, bytecode.OP_GET_GLOBAL, bytecode.OP_SET_GLOBAL:
		return constantInstruction(w, op.String(), bc, offset)
	case bytecode.OP_CONSTANT_LONG, bytecode.OP_DEFINE_GLOBAL_LONG, bytecode.OP_GET_GLOBAL_LONG, bytecode.OP_SET_GLOBAL_LONG:
		return constantLongInstruction(w, op.String(), bc, offset)
	default:
		return simpleInstruction(w, op.String(), offset)
	}
}

func simpleInstruction(w io.Writer, name string, offset int) int {
	fmt.Fprintf(w, "%s\n", name)
	return offset + 1
}

func constantInstruction(w io.Writer, name string, bc *bytecode.Bytecode, offset int) int {
	idx := bc.Code[offset+1]
	fmt.Fprintf(w, "%-16s %4d '", name, idx)
	value.Print(w, bc.Constants[idx])
	fmt.Fprint(w, "'\n")
	return offset + 2
}

func constantLongInstruction(w io.Writer, name string, bc *bytecode.Bytecode, offset int) int {
	idx := bytecode.Decode24(bc.Code[offset+1], bc.Code[offset+2], bc.Code[offset+3])
	fmt.Fprintf(w, "%-16s %4d '", name, idx)
	value.Print(w, bc.Constants[idx])
	fmt.Fprint(w, "'\n")
	return offset + 4
}
