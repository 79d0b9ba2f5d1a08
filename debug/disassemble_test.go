package debug

import (
	"bytes"
	"strings"
	"testing"

	"l/bytecode"
	"l/value"
)

func TestDisassembleSimpleAndConstantInstructions(t *testing.T) {
	bc := bytecode.New()
	bc.PutConstant(value.Int(7), 1)
	bc.Write(byte(bytecode.OP_NEGATE), 1)
	bc.Write(byte(bytecode.OP_RETURN), 2)

	var buf bytes.Buffer
	Disassemble(&buf, bc, "test chunk")
	out := buf.String()

	if !strings.Contains(out, "== test chunk ==") {
		t.Fatalf("missing header in:\n%s", out)
	}
	if !strings.Contains(out, "OP_CONSTANT") || !strings.Contains(out, "'7'") {
		t.Fatalf("missing constant instruction in:\n%s", out)
	}
	if !strings.Contains(out, "OP_NEGATE") {
		t.Fatalf("missing OP_NEGATE in:\n%s", out)
	}
	if !strings.Contains(out, "OP_RETURN") {
		t.Fatalf("missing OP_RETURN in:\n%s", out)
	}
}

func TestDisassembleRepeatsLineOnlyWhenItChanges(t *testing.T) {
	bc := bytecode.New()
	bc.Write(byte(bytecode.OP_TRUE), 5)
	bc.Write(byte(bytecode.OP_NOT), 5)
	bc.Write(byte(bytecode.OP_RETURN), 6)

	var buf bytes.Buffer
	Disassemble(&buf, bc, "lines")
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	if len(lines) != 4 { // header + 3 instructions
		t.Fatalf("got %d lines, want 4:\n%v", len(lines), lines)
	}
	if !strings.Contains(lines[2], "   | ") {
		t.Fatalf("second instruction on the same line should show '   | ', got %q", lines[2])
	}
	if strings.Contains(lines[3], "   | ") {
		t.Fatalf("third instruction is on a new line, should show the line number, got %q", lines[3])
	}
}
