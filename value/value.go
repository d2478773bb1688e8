// Package value implements the tagged-union Value type (C1), the heap
// object model it points into, and the string intern table (C2).
package value

import "strconv"

// Kind discriminates the variants a Value can hold.
type Kind int

const (
	KindBool Kind = iota
	KindNil
	KindNumber
	KindObj
)

// Value is a small tagged union: a Bool/Number payload lives inline, an Obj
// payload is a pointer onto the VM-owned heap. Values are passed by value
// and compared cheaply — Equal only ever does pointer comparison for
// strings because the intern table guarantees one allocation per distinct
// string body.
type Value struct {
	kind    Kind
	number  float64
	boolean bool
	str     *ObjString
}

// Bool returns a Value wrapping b.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Nil is the singular nil Value.
var Nil = Value{kind: KindNil}

// Number returns a Value wrapping n.
func Number(n float64) Value { return Value{kind: KindNumber, number: n} }

// ObjValue returns a Value wrapping a heap object pointer.
func ObjValue(o *ObjString) Value { return Value{kind: KindObj, str: o} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsBool reports whether v holds a boolean.
func (v Value) IsBool() bool { return v.kind == KindBool }

// IsNil reports whether v holds nil.
func (v Value) IsNil() bool { return v.kind == KindNil }

// IsNumber reports whether v holds a number.
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// IsObj reports whether v holds a heap object.
func (v Value) IsObj() bool { return v.kind == KindObj }

// IsString reports whether v holds an interned string object.
func (v Value) IsString() bool {
	return v.kind == KindObj && v.str != nil && v.str.Kind == ObjKindString
}

// AsBool returns the boolean payload. Callers must check IsBool first.
func (v Value) AsBool() bool { return v.boolean }

// AsNumber returns the numeric payload. Callers must check IsNumber first.
func (v Value) AsNumber() float64 { return v.number }

// AsObj returns the object header. Callers must check IsObj first.
func (v Value) AsObj() *Obj { return &v.str.Obj }

// AsString returns the underlying ObjString. Callers must check IsString
// first.
func (v Value) AsString() *ObjString { return v.str }

// IsFalsey implements the language's truthiness rule: nil and false are
// falsey, everything else — including 0 and the empty string — is truthy.
func (v Value) IsFalsey() bool {
	return v.IsNil() || (v.IsBool() && !v.AsBool())
}

// Equal implements value equality per the type's own rule: numbers compare
// by value, booleans by value, nil equals only nil, and strings compare by
// pointer identity since the intern table guarantees a unique allocation
// per distinct string body.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindBool:
		return a.boolean == b.boolean
	case KindNil:
		return true
	case KindNumber:
		return a.number == b.number
	case KindObj:
		return a.str == b.str
	default:
		return false
	}
}

// String renders v the way the language prints it: numbers without a
// trailing ".0" when they're integral, booleans and nil as their keyword
// spelling, strings without their surrounding quotes.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		if v.boolean {
			return "true"
		}
		return "false"
	case KindNil:
		return "nil"
	case KindNumber:
		return strconv.FormatFloat(v.number, 'g', -1, 64)
	case KindObj:
		if v.IsString() {
			return v.AsString().Chars
		}
		return "<obj>"
	default:
		return "<invalid value>"
	}
}
