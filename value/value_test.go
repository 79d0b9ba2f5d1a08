package value

import (
	"bytes"
	"testing"
)

func TestEqualCrossVariantIsFalse(t *testing.T) {
	cases := []struct {
		name string
		a, b Value
	}{
		{"int vs double", Int(1), Double(1)},
		{"bool vs int", Bool(true), Int(1)},
		{"null vs int", Null(), Int(0)},
		{"string vs null", FromObj(Intern("")), Null()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if Equal(c.a, c.b) {
				t.Fatalf("expected %v != %v", c.a, c.b)
			}
		})
	}
}

func TestEqualSameVariant(t *testing.T) {
	if !Equal(Null(), Null()) {
		t.Fatal("Null should equal Null")
	}
	if !Equal(Int(42), Int(42)) {
		t.Fatal("equal ints should compare equal")
	}
	if Equal(Int(42), Int(7)) {
		t.Fatal("different ints should not compare equal")
	}
	if !Equal(Double(1.5), Double(1.5)) {
		t.Fatal("equal doubles should compare equal")
	}
	if !Equal(Bool(true), Bool(true)) {
		t.Fatal("equal bools should compare equal")
	}
}

func TestInterningIsIdempotentAndContentPreserving(t *testing.T) {
	a := Intern("foobar")
	b := Intern("foobar")
	if a != b {
		t.Fatal("interning the same content twice should return the same pointer")
	}
	if a.Value != "foobar" {
		t.Fatalf("interned content mismatch: got %q", a.Value)
	}
	if !Equal(FromObj(a), FromObj(b)) {
		t.Fatal("interned strings with equal content must compare equal")
	}
}

func TestPrintQuotesStringsToString(t *testing.T) {
	s := FromObj(Intern("hi"))
	var buf bytes.Buffer
	Print(&buf, s)
	if got := buf.String(); got != `"hi"` {
		t.Fatalf("Print(string) = %q, want %q", got, `"hi"`)
	}
	if got := ToString(s); got != "hi" {
		t.Fatalf("ToString(string) = %q, want %q", got, "hi")
	}
}

func TestPrintScalars(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Null(), "null"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Int(9), "9"},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		Print(&buf, c.v)
		if got := buf.String(); got != c.want {
			t.Fatalf("Print(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}
