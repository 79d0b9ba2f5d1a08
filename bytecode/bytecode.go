// Package bytecode defines the flat instruction buffer the compiler writes
// and the VM reads: opcodes, a constant pool, and a run-length line table.
package bytecode

import (
	"fmt"

	"l/value"
)

// Op identifies a single bytecode instruction. Every Op is one byte;
// operands, when present, immediately follow it in Code.
type Op byte

const (
	OP_CONSTANT Op = iota
	OP_CONSTANT_LONG

	OP_DEFINE_GLOBAL
	OP_DEFINE_GLOBAL_LONG
	OP_GET_GLOBAL
	OP_GET_GLOBAL_LONG
	OP_SET_GLOBAL
	OP_SET_GLOBAL_LONG

	OP_NUL
	OP_TRUE
	OP_FALSE

	OP_ADD
	OP_SUBTRACT
	OP_MULTIPLY
	OP_DIVIDE
	OP_NEGATE
	OP_NOT

	OP_EQUAL
	OP_NOT_EQUAL
	OP_GREATER
	OP_GREATER_EQUAL
	OP_LESS
	OP_LESS_EQUAL

	OP_POP
	OP_RETURN
)

var names = map[Op]string{
	OP_CONSTANT:           "OP_CONSTANT",
	OP_CONSTANT_LONG:      "OP_CONSTANT_LONG",
	OP_DEFINE_GLOBAL:      "OP_DEFINE_GLOBAL",
	OP_DEFINE_GLOBAL_LONG: "OP_DEFINE_GLOBAL_LONG",
	OP_GET_GLOBAL:         "OP_GET_GLOBAL",
	OP_GET_GLOBAL_LONG:    "OP_GET_GLOBAL_LONG",
	OP_SET_GLOBAL:         "OP_SET_GLOBAL",
	OP_SET_GLOBAL_LONG:    "OP_SET_GLOBAL_LONG",
	OP_NUL:                "OP_NUL",
	OP_TRUE:               "OP_TRUE",
	OP_FALSE:              "OP_FALSE",
	OP_ADD:                "OP_ADD",
	OP_SUBTRACT:           "OP_SUBTRACT",
	OP_MULTIPLY:           "OP_MULTIPLY",
	OP_DIVIDE:             "OP_DIVIDE",
	OP_NEGATE:             "OP_NEGATE",
	OP_NOT:                "OP_NOT",
	OP_EQUAL:              "OP_EQUAL",
	OP_NOT_EQUAL:          "OP_NOT_EQUAL",
	OP_GREATER:            "OP_GREATER",
	OP_GREATER_EQUAL:      "OP_GREATER_EQUAL",
	OP_LESS:               "OP_LESS",
	OP_LESS_EQUAL:         "OP_LESS_EQUAL",
	OP_POP:                "OP_POP",
	OP_RETURN:             "OP_RETURN",
}

func (op Op) String() string {
	if name, ok := names[op]; ok {
		return name
	}
	return fmt.Sprintf("OP_UNKNOWN(%d)", byte(op))
}

// lineRun is one entry of the run-length line table: every byte offset
// from StartOffset up to (but not including) the next entry's
// StartOffset belongs to Line.
type lineRun struct {
	StartOffset int
	Line        int
}

// Bytecode is the flat buffer a single compile produces and a single
// interpret call reads: the instruction stream, the constant pool
// addressed by index, and the line table. It is written only by the
// compiler and, once compilation finishes, read only by the VM.
type Bytecode struct {
	Code      []byte
	Constants []value.Value
	lines     []lineRun
}

// New returns an empty Bytecode ready for a compiler to write into.
func New() *Bytecode {
	return &Bytecode{}
}

// Write appends a single raw byte — an opcode or an operand byte — and
// records line as the source line responsible for it.
func (bc *Bytecode) Write(b byte, line int) {
	bc.Code = append(bc.Code, b)
	bc.addLine(line)
}

// addLine appends a new run only when line differs from the last
// recorded line, keeping the table free of adjacent equal-line entries.
func (bc *Bytecode) addLine(line int) {
	offset := len(bc.Code) - 1
	if n := len(bc.lines); n > 0 && bc.lines[n-1].Line == line {
		return
	}
	bc.lines = append(bc.lines, lineRun{StartOffset: offset, Line: line})
}

// LineOf returns the line of the greatest line-table entry whose
// StartOffset is <= offset, or 0 if the table is empty or offset
// precedes every entry.
func (bc *Bytecode) LineOf(offset int) int {
	line := 0
	for _, run := range bc.lines {
		if run.StartOffset > offset {
			break
		}
		line = run.Line
	}
	return line
}

// AddConstant appends v to the constant pool and returns its index.
func (bc *Bytecode) AddConstant(v value.Value) int {
	bc.Constants = append(bc.Constants, v)
	return len(bc.Constants) - 1
}

// PutConstant appends v to the constant pool and emits the short
// CONSTANT/idx8 form when the new index fits in a byte, otherwise the
// long CONSTANT_LONG/idx24 form.
func (bc *Bytecode) PutConstant(v value.Value, line int) {
	idx := bc.AddConstant(v)
	bc.EmitVariableByte(OP_CONSTANT, OP_CONSTANT_LONG, idx, line)
}

// EmitVariableByte emits short followed by a single operand byte when idx
// fits in a byte (< 256), otherwise long followed by three little-endian
// operand bytes. This is the short/long discipline shared by CONSTANT and
// every *_GLOBAL opcode pair.
func (bc *Bytecode) EmitVariableByte(short, long Op, idx int, line int) {
	if idx < 256 {
		bc.Write(byte(short), line)
		bc.Write(byte(idx), line)
		return
	}
	bc.Write(byte(long), line)
	b0, b1, b2 := Encode24(idx)
	bc.Write(b0, line)
	bc.Write(b1, line)
	bc.Write(b2, line)
}

// Encode24 splits idx into three little-endian bytes, supporting constant
// pools of up to 2^24 entries.
func Encode24(idx int) (byte, byte, byte) {
	return byte(idx), byte(idx >> 8), byte(idx >> 16)
}

// Decode24 reassembles the three little-endian bytes Encode24 produced.
func Decode24(b0, b1, b2 byte) int {
	return int(b0) | int(b1)<<8 | int(b2)<<16
}
