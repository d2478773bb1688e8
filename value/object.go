package value

// ObjKind discriminates the heap object types. Strings are the only kind
// expression evaluation needs; the Kind field and Next link exist so later
// object kinds can be threaded onto the same owned-object list.
type ObjKind int

const (
	ObjKindString ObjKind = iota
)

// Obj is the header shared by every heap object. Next links the VM's owned
// object list, which exists purely so the VM can walk and release every
// object it ever allocated when it shuts down.
type Obj struct {
	Kind ObjKind
	Next *Obj
}

// ObjString is an interned, immutable heap string. Hash is precomputed once
// at construction so the intern table never rehashes the same bytes twice.
type ObjString struct {
	Obj
	Chars string
	Hash  uint32
}

// NewObjString builds an ObjString header around chars. It does not intern
// the result; callers go through InternTable.InternCopy/InternTake for that.
func NewObjString(chars string, hash uint32) *ObjString {
	return &ObjString{
		Obj:   Obj{Kind: ObjKindString},
		Chars: chars,
		Hash:  hash,
	}
}
