// Package sig models function signatures for calling-convention legalization:
// ordered parameter and return lists whose entries carry an abstract value
// type and, once legalized, exactly one concrete location.
package sig

import (
	"slices"

	"clinker/internal/types"
)

// RegBank identifies a register bank of the target.
type RegBank uint8

const (
	BankInt RegBank = iota
	BankFloat
)

func (b RegBank) String() string {
	switch b {
	case BankInt:
		return "int"
	case BankFloat:
		return "float"
	default:
		return "bank?"
	}
}

// Purpose distinguishes normal parameters from special implicit ones.
type Purpose uint8

const (
	PurposeNormal Purpose = iota
	// PurposeLink marks the implicit return-address parameter appended for
	// conventions that pass a link register.
	PurposeLink
)

// Extension selects how a narrow integer is widened to a full register.
// It is declared in source text and carried through legalization untouched.
type Extension uint8

const (
	ExtNone Extension = iota
	ExtUext
	ExtSext
)

func (e Extension) String() string {
	switch e {
	case ExtUext:
		return "uext"
	case ExtSext:
		return "sext"
	default:
		return ""
	}
}

// Param is a single parameter or return value.
type Param struct {
	Type      types.TypeID
	Extension Extension
	Purpose   Purpose
	Loc       Loc
}

// NewParam returns an unassigned normal parameter of the given type.
func NewParam(t types.TypeID) Param {
	return Param{Type: t}
}

// Signature is the ordered calling contract of a function: parameter list,
// return list and the name of the convention it was (or will be) legalized
// against. Values are owned by the declaring function; call sites share them
// by reference and must treat them as immutable.
type Signature struct {
	Conv    string
	Params  []Param
	Returns []Param
}

// NewSignature returns an empty signature bound to a convention name.
func NewSignature(conv string) *Signature {
	return &Signature{Conv: conv}
}

// Clone returns a deep copy. Legalization operates on a clone so the abstract
// signature survives untouched.
func (s *Signature) Clone() *Signature {
	if s == nil {
		return nil
	}
	return &Signature{
		Conv:    s.Conv,
		Params:  slices.Clone(s.Params),
		Returns: slices.Clone(s.Returns),
	}
}

// Equal reports structural equality: convention, order, types, flags and
// locations all match. Both signatures must come from the same interner.
func (s *Signature) Equal(other *Signature) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.Conv == other.Conv &&
		slices.Equal(s.Params, other.Params) &&
		slices.Equal(s.Returns, other.Returns)
}

// Assigned reports whether every parameter and return value carries a
// concrete location.
func (s *Signature) Assigned() bool {
	for _, p := range s.Params {
		if !p.Loc.IsAssigned() {
			return false
		}
	}
	for _, p := range s.Returns {
		if !p.Loc.IsAssigned() {
			return false
		}
	}
	return true
}
