// Package abi assigns concrete argument locations to abstract function
// signatures. Legalization runs in three steps: classify each value type
// against the convention, split values the target cannot pass whole, then
// walk the pieces with the convention's register and stack cursors.
package abi

import (
	"clinker/internal/isa"
	"clinker/internal/sig"
	"clinker/internal/types"
)

// Disposition says how a convention passes a value of some type.
type Disposition uint8

const (
	// Direct values occupy a single register or one stack slot.
	Direct Disposition = iota
	// SplitWords values are scalars wider than a machine word; they travel
	// as word-sized halves.
	SplitWords
	// SplitLanes values are vectors; they travel one lane at a time.
	SplitLanes
)

// Class is the verdict of classifying one value type against a convention.
type Class struct {
	// Bank is the register bank that carries the value, or for split values
	// the bank their scalar pieces end up in.
	Bank sig.RegBank
	// Disp is how the value travels.
	Disp Disposition
	// Bytes is the memory footprint of the whole value.
	Bytes uint32
}

// Classify decides how conv passes a value of type id. The only failure is
// ErrUnsupportedType; running out of registers is handled later by spilling.
func Classify(conv *isa.Convention, in *types.Interner, id types.TypeID) (Class, error) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind == types.KindInvalid {
		return Class{}, &Error{Kind: ErrUnsupportedType, Conv: conv.Name, Type: id}
	}
	switch t.Kind {
	case types.KindInt, types.KindBool:
		return classifyScalar(conv, sig.BankInt, in.Bits(id), in.Bytes(id)), nil
	case types.KindFloat:
		if conv.Float.Units > 0 {
			// Hardware float registers hold a full f64 even on 32-bit
			// targets, so floats never split here.
			return Class{Bank: sig.BankFloat, Disp: Direct, Bytes: in.Bytes(id)}, nil
		}
		// Soft float: the value travels through the int bank as its bit
		// pattern, splitting like an int of the same width.
		return classifyScalar(conv, sig.BankInt, in.Bits(id), in.Bytes(id)), nil
	case types.KindVector:
		if t.Lanes == 0 {
			return Class{}, &Error{Kind: ErrUnsupportedType, Conv: conv.Name, Type: id}
		}
		elem, err := Classify(conv, in, t.Elem)
		if err != nil {
			return Class{}, &Error{Kind: ErrUnsupportedType, Conv: conv.Name, Type: id}
		}
		return Class{Bank: elem.Bank, Disp: SplitLanes, Bytes: in.Bytes(id)}, nil
	default:
		return Class{}, &Error{Kind: ErrUnsupportedType, Conv: conv.Name, Type: id}
	}
}

func classifyScalar(conv *isa.Convention, bank sig.RegBank, bits, bytes uint32) Class {
	if bits > uint32(conv.WordBits) {
		return Class{Bank: bank, Disp: SplitWords, Bytes: bytes}
	}
	return Class{Bank: bank, Disp: Direct, Bytes: bytes}
}
