package abi

import (
	"errors"
	"fmt"

	"clinker/internal/isa"
	"clinker/internal/sig"
	"clinker/internal/types"
)

// piece is one split-out value awaiting a location.
type piece struct {
	param sig.Param
	cl    Class
	// pair makes the allocator round its cursors before placing this
	// piece, so register pairs start on an even ordinal and split stack
	// slots on an even word boundary.
	pair bool
	// src is the index in the abstract list, kept for error reporting.
	src int
}

// splitParams expands params into pieces the convention can pass directly.
// Pre-assigned and link parameters pass through whole; annotations are
// validated here, where the abstract index is still known. Splitting an
// already split list changes nothing.
func splitParams(conv *isa.Convention, in *types.Interner, params []sig.Param, ret bool) ([]piece, error) {
	out := make([]piece, 0, len(params))
	for i := range params {
		p := params[i]
		if p.Purpose == sig.PurposeLink {
			out = append(out, piece{param: p, src: i})
			continue
		}
		cl, err := Classify(conv, in, p.Type)
		if err != nil {
			return nil, at(err, in, i, ret)
		}
		if p.Loc.IsAssigned() {
			if err := validateAnnotation(conv, p, cl); err != nil {
				return nil, at(err, in, i, ret)
			}
			out = append(out, piece{param: p, cl: cl, src: i})
			continue
		}
		if err := appendPieces(conv, in, &out, p, cl, false, i, ret); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// appendPieces recursively splits p until every piece is Direct. Halves of a
// wide scalar come out least-significant first; vector lanes come out in
// memory order. Split pieces never inherit an extension, they are exactly a
// word or a lane wide.
func appendPieces(conv *isa.Convention, in *types.Interner, out *[]piece, p sig.Param, cl Class, pair bool, src int, ret bool) error {
	switch cl.Disp {
	case Direct:
		*out = append(*out, piece{param: p, cl: cl, pair: pair, src: src})
		return nil
	case SplitWords:
		lo, hi := splitScalar(conv, in, p.Type)
		first := pair || conv.PairAlign > 1
		for k, ty := range [2]types.TypeID{lo, hi} {
			cp, err := Classify(conv, in, ty)
			if err != nil {
				return at(err, in, src, ret)
			}
			np := sig.Param{Type: ty, Purpose: p.Purpose}
			if err := appendPieces(conv, in, out, np, cp, first && k == 0, src, ret); err != nil {
				return err
			}
		}
		return nil
	case SplitLanes:
		t := in.MustLookup(p.Type)
		for lane := 0; lane < int(t.Lanes); lane++ {
			cp, err := Classify(conv, in, t.Elem)
			if err != nil {
				return at(err, in, src, ret)
			}
			np := sig.Param{Type: t.Elem, Purpose: p.Purpose}
			if err := appendPieces(conv, in, out, np, cp, pair && lane == 0, src, ret); err != nil {
				return err
			}
		}
		return nil
	default:
		return at(&Error{Kind: ErrUnsupportedType, Conv: conv.Name, Type: p.Type}, in, src, ret)
	}
}

// splitScalar halves a scalar wider than the machine word. Ints and bools
// halve in place; a soft-float double becomes two int words carrying its bit
// pattern.
func splitScalar(conv *isa.Convention, in *types.Interner, id types.TypeID) (types.TypeID, types.TypeID) {
	t := in.MustLookup(id)
	if t.Kind == types.KindFloat {
		w := in.Intern(types.MakeInt(wordWidth(conv)))
		return w, w
	}
	h, ok := t.HalfWidth()
	if !ok {
		// Classify reports SplitWords only for halvable scalars.
		panic(fmt.Sprintf("abi: cannot split scalar type#%d", id))
	}
	half := in.Intern(h)
	return half, half
}

func wordWidth(conv *isa.Convention) types.Width {
	if conv.WordBits == 64 {
		return types.Width64
	}
	return types.Width32
}

// validateAnnotation checks a pre-assigned location against the annotated
// type. Annotations never move the allocation cursors, so keeping them clear
// of automatically assigned locations is the writer's responsibility.
func validateAnnotation(conv *isa.Convention, p sig.Param, cl Class) error {
	switch p.Loc.Kind {
	case sig.LocReg:
		if cl.Disp != Direct {
			return &Error{
				Kind: ErrInvalidAnnotation, Conv: conv.Name, Type: p.Type, Loc: p.Loc,
				Reason: "type does not fit a single register",
			}
		}
		if p.Loc.Bank != cl.Bank {
			return &Error{
				Kind: ErrInvalidAnnotation, Conv: conv.Name, Type: p.Type, Loc: p.Loc,
				Reason: fmt.Sprintf("%s value cannot live in the %s bank", cl.Bank, p.Loc.Bank),
			}
		}
		if p.Loc.Reg >= bankOf(conv, p.Loc.Bank).Units {
			return &Error{
				Kind: ErrInvalidAnnotation, Conv: conv.Name, Type: p.Type, Loc: p.Loc,
				Reason: "no such register",
			}
		}
	case sig.LocStack:
		// Memory holds any width, so stack annotations skip splitting.
		if p.Loc.Offset < 0 {
			return &Error{
				Kind: ErrInvalidAnnotation, Conv: conv.Name, Type: p.Type, Loc: p.Loc,
				Reason: "negative stack offset",
			}
		}
	}
	return nil
}

func bankOf(conv *isa.Convention, b sig.RegBank) *isa.Bank {
	if b == sig.BankFloat {
		return &conv.Float
	}
	return &conv.Int
}

// at stamps the abstract list position onto a legalization error.
func at(err error, in *types.Interner, index int, ret bool) error {
	var e *Error
	if errors.As(err, &e) {
		e.Index = index
		e.Ret = ret
		if e.Spelling == "" && e.Type != types.NoTypeID {
			e.Spelling = in.Spelling(e.Type)
		}
		return e
	}
	return err
}
