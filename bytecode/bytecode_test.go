package bytecode

import (
	"testing"

	"l/value"
)

func TestPutConstantShortForm(t *testing.T) {
	bc := New()
	bc.PutConstant(value.Int(7), 1)

	if len(bc.Code) != 2 {
		t.Fatalf("expected 2 bytes (opcode + idx8), got %d", len(bc.Code))
	}
	if Op(bc.Code[0]) != OP_CONSTANT {
		t.Fatalf("expected OP_CONSTANT, got %s", Op(bc.Code[0]))
	}
	if bc.Code[1] != 0 {
		t.Fatalf("expected index 0, got %d", bc.Code[1])
	}
	if len(bc.Constants) != 1 || !value.Equal(bc.Constants[0], value.Int(7)) {
		t.Fatalf("constant pool mismatch: %v", bc.Constants)
	}
}

func TestPutConstantLongFormPastByteRange(t *testing.T) {
	bc := New()
	for i := 0; i < 256; i++ {
		bc.AddConstant(value.Int(int32(i)))
	}
	bc.PutConstant(value.Int(999), 1)

	// The long form starts right after the 256 AddConstant-only calls,
	// which wrote no bytes to Code.
	if Op(bc.Code[0]) != OP_CONSTANT_LONG {
		t.Fatalf("expected OP_CONSTANT_LONG, got %s", Op(bc.Code[0]))
	}
	idx := Decode24(bc.Code[1], bc.Code[2], bc.Code[3])
	if idx != 256 {
		t.Fatalf("expected constant index 256, got %d", idx)
	}
}

func TestEncodeDecode24RoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 255, 256, 65535, 1 << 20, 1<<24 - 1} {
		b0, b1, b2 := Encode24(n)
		got := Decode24(b0, b1, b2)
		if got != n {
			t.Fatalf("Encode24/Decode24(%d) round-trip = %d", n, got)
		}
	}
}

func TestLineOfIsMonotonicAndLooksUpGreatestLE(t *testing.T) {
	bc := New()
	bc.Write(byte(OP_NUL), 1)
	bc.Write(byte(OP_NUL), 1)
	bc.Write(byte(OP_NUL), 2)
	bc.Write(byte(OP_RETURN), 3)

	cases := []struct {
		offset int
		want   int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 3},
		{100, 3},
	}
	for _, c := range cases {
		if got := bc.LineOf(c.offset); got != c.want {
			t.Errorf("LineOf(%d) = %d, want %d", c.offset, got, c.want)
		}
	}
}

func TestLineOfEmptyBytecodeIsZero(t *testing.T) {
	bc := New()
	if got := bc.LineOf(0); got != 0 {
		t.Fatalf("LineOf on empty bytecode = %d, want 0", got)
	}
}

func TestAddLineSkipsAdjacentDuplicates(t *testing.T) {
	bc := New()
	bc.Write(byte(OP_NUL), 5)
	bc.Write(byte(OP_NUL), 5)
	bc.Write(byte(OP_NUL), 5)

	if len(bc.lines) != 1 {
		t.Fatalf("expected a single run for three same-line writes, got %d", len(bc.lines))
	}
}

func TestEmitVariableByteShortAndLong(t *testing.T) {
	bc := New()
	bc.EmitVariableByte(OP_GET_GLOBAL, OP_GET_GLOBAL_LONG, 3, 1)
	if len(bc.Code) != 2 || Op(bc.Code[0]) != OP_GET_GLOBAL || bc.Code[1] != 3 {
		t.Fatalf("short form mismatch: %v", bc.Code)
	}

	bc2 := New()
	bc2.EmitVariableByte(OP_SET_GLOBAL, OP_SET_GLOBAL_LONG, 70000, 1)
	if len(bc2.Code) != 4 || Op(bc2.Code[0]) != OP_SET_GLOBAL_LONG {
		t.Fatalf("long form mismatch: %v", bc2.Code)
	}
	if Decode24(bc2.Code[1], bc2.Code[2], bc2.Code[3]) != 70000 {
		t.Fatalf("long form operand mismatch: %v", bc2.Code)
	}
}
