// Package value defines the runtime value model shared by the compiler and
// the VM: the tagged Value sum, the heap Object hierarchy, and the
// process-wide interned string pool.
package value

// Obj is the common interface for every heap-allocated object kind a Value
// can reference. ObjString is the only concrete variant this core requires;
// future kinds (e.g. closures) slot in behind the same interface.
type Obj interface {
	// objKind is unexported so Obj can only be implemented inside this
	// package, mirroring the closed tagged-variant design note in the
	// specification (Object = String | ...).
	objKind() objKind
	String() string
}

type objKind uint8

const (
	objString objKind = iota
)

// ObjString is an immutable byte sequence. UTF-8 content is treated
// opaquely, matching the original's ObjString wrapping a std::string.
type ObjString struct {
	Value string
}

func (s *ObjString) objKind() objKind { return objString }
func (s *ObjString) String() string   { return s.Value }

// IsObjString reports whether o is a *ObjString.
func IsObjString(o Obj) bool {
	_, ok := o.(*ObjString)
	return ok
}
