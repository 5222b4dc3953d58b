package types

import "testing"

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if b.I32 == NoTypeID || b.F64 == NoTypeID || b.B1 == NoTypeID {
		t.Fatalf("builtins not initialized")
	}
	i32, _ := in.Lookup(b.I32)
	if i32.Kind != KindInt || i32.Width != Width32 {
		t.Fatalf("expected i32 descriptor, got %+v", i32)
	}
}

func TestInternerDeduplicatesDescriptors(t *testing.T) {
	in := NewInterner()
	v1 := in.Intern(MakeVector(in.Builtins().I32, 4))
	v2 := in.Intern(MakeVector(in.Builtins().I32, 4))
	if v1 != v2 {
		t.Fatalf("vector types should be deduplicated")
	}
	if v1 == in.Intern(MakeVector(in.Builtins().I32, 2)) {
		t.Fatalf("lane count must affect identity")
	}
}

func TestInternerInvalidKind(t *testing.T) {
	in := NewInterner()
	if got := in.Intern(Type{Kind: KindInvalid}); got != NoTypeID {
		t.Fatalf("interning invalid kind should give NoTypeID, got %d", got)
	}
	if _, ok := in.Lookup(NoTypeID); ok {
		t.Fatalf("NoTypeID must not resolve")
	}
}

func TestBitsAndBytes(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	cases := []struct {
		id    TypeID
		bits  uint32
		bytes uint32
	}{
		{b.I32, 32, 4},
		{b.I64, 64, 8},
		{b.B1, 1, 1},
		{b.F64, 64, 8},
		{in.Intern(MakeVector(b.I32, 4)), 128, 16},
	}
	for _, c := range cases {
		if got := in.Bits(c.id); got != c.bits {
			t.Errorf("Bits(%s) = %d, want %d", in.Spelling(c.id), got, c.bits)
		}
		if got := in.Bytes(c.id); got != c.bytes {
			t.Errorf("Bytes(%s) = %d, want %d", in.Spelling(c.id), got, c.bytes)
		}
	}
}

func TestNestedVectorBits(t *testing.T) {
	in := NewInterner()
	inner := in.Intern(MakeVector(in.Builtins().I16, 4))
	outer := in.Intern(MakeVector(inner, 2))
	if got := in.Bits(outer); got != 128 {
		t.Fatalf("Bits(i16x4x2) = %d, want 128", got)
	}
}

func TestHalfWidth(t *testing.T) {
	half, ok := MakeInt(Width64).HalfWidth()
	if !ok || half.Width != Width32 || half.Kind != KindInt {
		t.Fatalf("i64 half = %+v, %v", half, ok)
	}
	if _, ok := MakeBool(Width1).HalfWidth(); ok {
		t.Fatalf("b1 must not halve")
	}
	if _, ok := MakeVector(NoTypeID, 2).HalfWidth(); ok {
		t.Fatalf("vectors must not halve")
	}
}
