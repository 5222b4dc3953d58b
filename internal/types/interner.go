package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the primitive scalar types.
type Builtins struct {
	Invalid TypeID
	I8      TypeID
	I16     TypeID
	I32     TypeID
	I64     TypeID
	B1      TypeID
	B8      TypeID
	B16     TypeID
	B32     TypeID
	B64     TypeID
	F32     TypeID
	F64     TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
//
// One interner serves one legalization unit; it is not safe for concurrent
// mutation, and TypeIDs from different interners must never be mixed.
type Interner struct {
	types    []Type
	index    map[Type]TypeID
	builtins Builtins
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[Type]TypeID, 32),
	}
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.I8 = in.Intern(MakeInt(Width8))
	in.builtins.I16 = in.Intern(MakeInt(Width16))
	in.builtins.I32 = in.Intern(MakeInt(Width32))
	in.builtins.I64 = in.Intern(MakeInt(Width64))
	in.builtins.B1 = in.Intern(MakeBool(Width1))
	in.builtins.B8 = in.Intern(MakeBool(Width8))
	in.builtins.B16 = in.Intern(MakeBool(Width16))
	in.builtins.B32 = in.Intern(MakeBool(Width32))
	in.builtins.B64 = in.Intern(MakeBool(Width64))
	in.builtins.F32 = in.Intern(MakeFloat(Width32))
	in.builtins.F64 = in.Intern(MakeFloat(Width64))
	return in
}

// Builtins returns TypeIDs for the primitive scalar types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Bits returns the total bit width of a type: the scalar precision, or the
// lane count times the element width for vectors. Unknown IDs report zero.
func (in *Interner) Bits(id TypeID) uint32 {
	tt, ok := in.Lookup(id)
	if !ok {
		return 0
	}
	switch {
	case tt.IsScalar():
		return uint32(tt.Width)
	case tt.IsVector():
		return uint32(tt.Lanes) * in.Bits(tt.Elem)
	default:
		return 0
	}
}

// Bytes returns the memory footprint of a type in bytes, rounding sub-byte
// widths up (b1 occupies one byte).
func (in *Interner) Bytes(id TypeID) uint32 {
	return (in.Bits(id) + 7) / 8
}
