package value

import (
	"fmt"
	"io"
	"strconv"
)

// Kind identifies which variant of the tagged Value sum is populated.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt
	KindDouble
	KindBool
	KindObj
)

// Value is the tagged sum every expression in L evaluates to: Null, a
// signed 32-bit Int, a 64-bit Double, a Bool, or a reference to a heap
// Object. Scalars are copied by value; objects are copied by reference,
// matching the lifecycle rules in the data model.
type Value struct {
	kind Kind
	i    int32
	f    float64
	b    bool
	obj  Obj
}

func Null() Value               { return Value{kind: KindNull} }
func Int(i int32) Value         { return Value{kind: KindInt, i: i} }
func Double(f float64) Value    { return Value{kind: KindDouble, f: f} }
func Bool(b bool) Value         { return Value{kind: KindBool, b: b} }
func FromObj(o Obj) Value       { return Value{kind: KindObj, obj: o} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) IsInt() bool    { return v.kind == KindInt }
func (v Value) IsDouble() bool { return v.kind == KindDouble }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsObj() bool    { return v.kind == KindObj }

// IsString reports whether v holds a reference to an ObjString.
func (v Value) IsString() bool {
	return v.kind == KindObj && IsObjString(v.obj)
}

// AsInt, AsDouble, AsBool, AsObj and AsString assume the caller already
// dispatched on the matching Is* predicate; calling the wrong accessor
// panics, per the specification's "callers are responsible for dispatch"
// rule.
func (v Value) AsInt() int32 {
	if v.kind != KindInt {
		panic("value: AsInt called on non-int Value")
	}
	return v.i
}

func (v Value) AsDouble() float64 {
	if v.kind != KindDouble {
		panic("value: AsDouble called on non-double Value")
	}
	return v.f
}

func (v Value) AsBool() bool {
	if v.kind != KindBool {
		panic("value: AsBool called on non-bool Value")
	}
	return v.b
}

func (v Value) AsObj() Obj {
	if v.kind != KindObj {
		panic("value: AsObj called on non-object Value")
	}
	return v.obj
}

func (v Value) AsString() *ObjString {
	obj := v.AsObj()
	str, ok := obj.(*ObjString)
	if !ok {
		panic("value: AsString called on a non-string object Value")
	}
	return str
}

// Equal implements the specification's variant-match-then-compare equality:
// cross-variant comparisons are always false, Null equals Null, and
// interned strings compare by their canonical pointer.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindInt:
		return a.i == b.i
	case KindDouble:
		return a.f == b.f
	case KindBool:
		return a.b == b.b
	case KindObj:
		aStr, aIsStr := a.obj.(*ObjString)
		bStr, bIsStr := b.obj.(*ObjString)
		if aIsStr && bIsStr {
			return aStr == bStr
		}
		return a.obj == b.obj
	default:
		return false
	}
}

// ToString renders v the way binary ADD concatenation does: no quotes
// around strings, "true"/"false" for booleans, "null" for Null.
func ToString(v Value) string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(int64(v.i), 10)
	case KindDouble:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindObj:
		if str, ok := v.obj.(*ObjString); ok {
			return str.Value
		}
		return v.obj.String()
	default:
		return ""
	}
}

// Print writes v to w in its printable form, as used by trace output and
// the disassembler: identical to ToString, except strings are wrapped in
// double quotes.
func Print(w io.Writer, v Value) {
	if v.IsString() {
		fmt.Fprintf(w, "\"%s\"", v.AsString().Value)
		return
	}
	fmt.Fprint(w, ToString(v))
}
