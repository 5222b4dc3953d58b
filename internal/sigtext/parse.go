package sigtext

import (
	"fmt"
	"strconv"

	"clinker/internal/isa"
	"clinker/internal/sig"
	"clinker/internal/types"
)

// Parse reads one signature line into a Signature. Register annotations
// resolve against conv; conv may be nil only for register-free text. The
// result carries conv's name but is otherwise exactly what the text says;
// nothing is assigned or checked beyond syntax.
func Parse(src string, conv *isa.Convention, in *types.Interner) (*sig.Signature, error) {
	p := &parser{sc: scanner{src: src}, src: src, conv: conv, in: in}
	p.advance()
	s, err := p.parseSignature()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errAt(p.tok, "unexpected trailing input")
	}
	return s, nil
}

type parser struct {
	sc   scanner
	src  string
	conv *isa.Convention
	in   *types.Interner
	tok  token
}

func (p *parser) advance() {
	p.tok = p.sc.next()
}

func (p *parser) errAt(t token, format string, args ...any) *ParseError {
	l := len(t.text)
	if l == 0 {
		l = 1
	}
	return &ParseError{Offset: t.off, Len: l, Msg: fmt.Sprintf(format, args...), Src: p.src}
}

func (p *parser) expect(k tokenKind, what string) (token, *ParseError) {
	if p.tok.kind != k {
		return token{}, p.errAt(p.tok, "expected %s, found %s", what, describe(p.tok))
	}
	t := p.tok
	p.advance()
	return t, nil
}

func (p *parser) parseSignature() (*sig.Signature, error) {
	kw, err := p.expect(tokIdent, `"signature"`)
	if err != nil {
		return nil, err
	}
	if kw.text != "signature" {
		return nil, p.errAt(kw, `expected "signature", found %q`, kw.text)
	}
	if _, err := p.expect(tokLParen, `"("`); err != nil {
		return nil, err
	}

	s := sig.NewSignature("")
	if p.conv != nil {
		s.Conv = p.conv.Name
	}
	if p.tok.kind != tokRParen {
		for {
			prm, err := p.parseParam()
			if err != nil {
				return nil, err
			}
			s.Params = append(s.Params, prm)
			if p.tok.kind != tokComma {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(tokRParen, `")"`); err != nil {
		return nil, err
	}

	if p.tok.kind == tokArrow {
		p.advance()
		for {
			prm, err := p.parseParam()
			if err != nil {
				return nil, err
			}
			s.Returns = append(s.Returns, prm)
			if p.tok.kind != tokComma {
				break
			}
			p.advance()
		}
	}
	return s, nil
}

func (p *parser) parseParam() (sig.Param, error) {
	var prm sig.Param
	t, err := p.expect(tokIdent, "a type")
	if err != nil {
		return prm, err
	}
	id, ok := types.ParseSpelling(p.in, t.text)
	if !ok {
		return prm, p.errAt(t, "unknown type %q", t.text)
	}
	prm.Type = id

	for p.tok.kind == tokIdent {
		switch p.tok.text {
		case "uext":
			if prm.Extension != sig.ExtNone {
				return prm, p.errAt(p.tok, "conflicting extension flags")
			}
			prm.Extension = sig.ExtUext
		case "sext":
			if prm.Extension != sig.ExtNone {
				return prm, p.errAt(p.tok, "conflicting extension flags")
			}
			prm.Extension = sig.ExtSext
		case "link":
			if prm.Purpose == sig.PurposeLink {
				return prm, p.errAt(p.tok, `duplicate "link" flag`)
			}
			prm.Purpose = sig.PurposeLink
		default:
			return prm, p.errAt(p.tok, "unknown flag %q", p.tok.text)
		}
		p.advance()
	}

	if p.tok.kind == tokLBrack {
		p.advance()
		loc, err := p.parseLoc()
		if err != nil {
			return prm, err
		}
		prm.Loc = loc
		if _, err := p.expect(tokRBrack, `"]"`); err != nil {
			return prm, err
		}
	}
	return prm, nil
}

func (p *parser) parseLoc() (sig.Loc, error) {
	switch p.tok.kind {
	case tokReg:
		name := p.tok.text[1:]
		if p.conv == nil {
			return sig.Loc{}, p.errAt(p.tok, "register annotation requires a target convention")
		}
		bank, reg, ok := p.conv.RegByName(name)
		if !ok {
			return sig.Loc{}, p.errAt(p.tok, "unknown register %q for %s", name, p.conv.Name)
		}
		p.advance()
		return sig.RegLoc(bank, reg), nil
	case tokInt:
		v, err := strconv.ParseInt(p.tok.text, 10, 32)
		if err != nil {
			return sig.Loc{}, p.errAt(p.tok, "stack offset out of range")
		}
		p.advance()
		// Slot size is filled in during legalization.
		return sig.StackLoc(int32(v), 0), nil
	default:
		return sig.Loc{}, p.errAt(p.tok, "expected a register or stack offset, found %s", describe(p.tok))
	}
}
