package abi

import (
	"clinker/internal/isa"
	"clinker/internal/sig"
	"clinker/internal/types"
)

// Options configure Legalize.
type Options struct {
	// Declared marks a function defined in the current module. Declared
	// functions gain the convention's link parameter in both lists;
	// signatures of external callees do not.
	Declared bool
}

// Legalize assigns a concrete location to every parameter and return value
// of s under conv. The input is left untouched; the result is a new
// signature whose lists are fully expanded and located. Legalizing an
// already legal signature reproduces it, so the operation is idempotent.
func Legalize(conv *isa.Convention, in *types.Interner, s *sig.Signature, opts Options) (*sig.Signature, error) {
	if conv == nil || in == nil || s == nil {
		return nil, nil
	}
	out := s.Clone()
	out.Conv = conv.Name

	pieces, err := splitParams(conv, in, out.Params, false)
	if err != nil {
		return nil, err
	}
	out.Params = assignParams(conv, pieces)

	rpieces, err := splitParams(conv, in, out.Returns, true)
	if err != nil {
		return nil, err
	}
	out.Returns = assignParams(conv, rpieces)

	if out.Params, err = resolveLink(conv, in, out.Params, false, opts.Declared); err != nil {
		return nil, err
	}
	if out.Returns, err = resolveLink(conv, in, out.Returns, true, opts.Declared); err != nil {
		return nil, err
	}
	return out, nil
}

// resolveLink settles the implicit return-address parameter of one list.
// A declared function on a link-register convention gets one appended unless
// the list already carries it, which keeps repeated legalization stable.
// Hand-written link parameters without a location are pinned to the link
// register; on conventions without one they cannot exist at all.
func resolveLink(conv *isa.Convention, in *types.Interner, list []sig.Param, ret, declared bool) ([]sig.Param, error) {
	found := false
	for i := range list {
		if list[i].Purpose != sig.PurposeLink {
			continue
		}
		if !conv.HasLink {
			return nil, at(&Error{
				Kind: ErrInvalidAnnotation, Conv: conv.Name, Type: list[i].Type, Loc: list[i].Loc,
				Reason: "convention has no link register",
			}, in, i, ret)
		}
		if !list[i].Loc.IsAssigned() {
			list[i].Loc = sig.RegLoc(sig.BankInt, conv.Link)
		}
		found = true
	}
	if declared && conv.HasLink && !found {
		list = append(list, sig.Param{
			Type:    wordType(conv, in),
			Purpose: sig.PurposeLink,
			Loc:     sig.RegLoc(sig.BankInt, conv.Link),
		})
	}
	return list, nil
}

func wordType(conv *isa.Convention, in *types.Interner) types.TypeID {
	if conv.WordBits == 64 {
		return in.Builtins().I64
	}
	return in.Builtins().I32
}
