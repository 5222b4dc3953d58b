package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of abstract value types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindBool
	KindFloat
	KindVector
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindFloat:
		return "float"
	case KindVector:
		return "vector"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Width captures the precision of a scalar in bits.
type Width uint8

const (
	Width1  Width = 1
	Width8  Width = 8
	Width16 Width = 16
	Width32 Width = 32
	Width64 Width = 64
)

// Type is a compact descriptor for any supported value type.
//
// Scalars use Kind+Width; vectors use Elem+Lanes and leave Width zero.
// Vector elements are TypeIDs, so vectors of vectors are representable.
type Type struct {
	Kind  Kind
	Width Width  // scalar precision in bits
	Elem  TypeID // vector element type
	Lanes uint16 // vector lane count
}

// Descriptor helpers ---------------------------------------------------------

// MakeInt describes a signed integer of the given width.
func MakeInt(width Width) Type {
	return Type{Kind: KindInt, Width: width}
}

// MakeBool describes a boolean of the given width (Width1 for the flag type).
func MakeBool(width Width) Type {
	return Type{Kind: KindBool, Width: width}
}

// MakeFloat describes a floating-point type.
func MakeFloat(width Width) Type {
	return Type{Kind: KindFloat, Width: width}
}

// MakeVector describes a vector of lane-count copies of the element type.
func MakeVector(elem TypeID, lanes uint16) Type {
	return Type{Kind: KindVector, Elem: elem, Lanes: lanes}
}

// IsScalar reports whether the descriptor is a scalar int/bool/float.
func (t Type) IsScalar() bool {
	switch t.Kind {
	case KindInt, KindBool, KindFloat:
		return true
	default:
		return false
	}
}

// IsVector reports whether the descriptor is a vector.
func (t Type) IsVector() bool {
	return t.Kind == KindVector
}

// HalfWidth returns the descriptor for the same kind at half the precision,
// used when splitting a scalar that spans more than one machine word.
// Returns false when the type cannot be halved.
func (t Type) HalfWidth() (Type, bool) {
	if !t.IsScalar() {
		return Type{}, false
	}
	switch t.Width {
	case Width16:
		return Type{Kind: t.Kind, Width: Width8}, true
	case Width32:
		return Type{Kind: t.Kind, Width: Width16}, true
	case Width64:
		return Type{Kind: t.Kind, Width: Width32}, true
	default:
		return Type{}, false
	}
}
