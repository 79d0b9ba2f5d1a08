package value

// internTable is the process-wide mapping from string content to its
// canonical *ObjString, grounded in the original's getOrIntern/
// clearInternedStrings pair (src/interned_strings.cpp): a single static
// table shared by every Intern call, torn down exactly once.
//
// The core is single-threaded (see the concurrency section of the
// specification), so this table is not synchronized.
var internTable = make(map[string]*ObjString)

// Intern returns the canonical *ObjString for content, allocating and
// registering a new one the first time content is seen. Intern is
// idempotent: two calls with the same content return the same pointer.
func Intern(content string) *ObjString {
	if obj, ok := internTable[content]; ok {
		return obj
	}
	obj := &ObjString{Value: content}
	internTable[content] = obj
	return obj
}

// ClearInternedStrings tears down the interned string pool, releasing every
// canonical string object. It must be called at most once after the last VM
// using it has been torn down.
func ClearInternedStrings() {
	clear(internTable)
}
