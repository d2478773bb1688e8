package value

import "testing"

func TestIsFalsey(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Nil, true},
		{Bool(false), true},
		{Bool(true), false},
		{Number(0), false},
		{Number(1), false},
	}
	for _, c := range cases {
		if got := c.v.IsFalsey(); got != c.want {
			t.Errorf("IsFalsey(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestEqualNumbers(t *testing.T) {
	if !Equal(Number(1), Number(1)) {
		t.Error("expected 1 == 1")
	}
	if Equal(Number(1), Number(2)) {
		t.Error("expected 1 != 2")
	}
}

func TestEqualAcrossKinds(t *testing.T) {
	if Equal(Number(0), Bool(false)) {
		t.Error("0 and false must not be equal — kinds differ")
	}
	if Equal(Nil, Bool(false)) {
		t.Error("nil and false must not be equal — kinds differ")
	}
}

func TestEqualStringsByIdentity(t *testing.T) {
	table := NewInternTable()
	a := ObjValue(table.InternCopy("hello"))
	b := ObjValue(table.InternCopy("hello"))
	if !Equal(a, b) {
		t.Error("interned equal strings must compare equal")
	}
}

func TestStringRendering(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Number(3), "3"},
		{Number(3.5), "3.5"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Nil, "nil"},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestStringValueRendersWithoutQuotes(t *testing.T) {
	table := NewInternTable()
	v := ObjValue(table.InternCopy("hi"))
	if got := v.String(); got != "hi" {
		t.Errorf("String() = %q, want %q", got, "hi")
	}
}
