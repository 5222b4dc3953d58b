package sig

import (
	"fmt"
	"io"
	"strings"

	"clinker/internal/types"
)

// RegNamer resolves the canonical name of a register for printing. It is
// implemented by isa.Convention; tests may pass nil to get a bank/index
// fallback rendering.
type RegNamer interface {
	RegName(bank RegBank, reg uint16) string
}

// Print writes the canonical text form of s:
//
//	signature(f32 [%f10], i32 uext [%x12], i32 link [%x1]) -> f64 [%f10]
//
// Unassigned locations are simply omitted, so abstract signatures render as
// they were written. The arrow is omitted when there are no returns.
func Print(w io.Writer, s *Signature, typesIn *types.Interner, names RegNamer) error {
	if w == nil || s == nil {
		return nil
	}
	if _, err := io.WriteString(w, "signature("); err != nil {
		return err
	}
	for i := range s.Params {
		if i > 0 {
			if _, err := io.WriteString(w, ", "); err != nil {
				return err
			}
		}
		if err := printParam(w, &s.Params[i], typesIn, names); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, ")"); err != nil {
		return err
	}
	if len(s.Returns) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, " -> "); err != nil {
		return err
	}
	for i := range s.Returns {
		if i > 0 {
			if _, err := io.WriteString(w, ", "); err != nil {
				return err
			}
		}
		if err := printParam(w, &s.Returns[i], typesIn, names); err != nil {
			return err
		}
	}
	return nil
}

// Text returns the canonical text form of s.
func Text(s *Signature, typesIn *types.Interner, names RegNamer) string {
	var b strings.Builder
	_ = Print(&b, s, typesIn, names)
	return b.String()
}

func printParam(w io.Writer, p *Param, typesIn *types.Interner, names RegNamer) error {
	if _, err := io.WriteString(w, typeStr(typesIn, p.Type)); err != nil {
		return err
	}
	if p.Extension != ExtNone {
		if _, err := fmt.Fprintf(w, " %s", p.Extension); err != nil {
			return err
		}
	}
	if p.Purpose == PurposeLink {
		if _, err := io.WriteString(w, " link"); err != nil {
			return err
		}
	}
	switch p.Loc.Kind {
	case LocReg:
		_, err := fmt.Fprintf(w, " [%%%s]", regName(names, p.Loc.Bank, p.Loc.Reg))
		return err
	case LocStack:
		_, err := fmt.Fprintf(w, " [%d]", p.Loc.Offset)
		return err
	default:
		return nil
	}
}

func typeStr(typesIn *types.Interner, id types.TypeID) string {
	if typesIn == nil {
		return fmt.Sprintf("type%d", id)
	}
	return typesIn.Spelling(id)
}

func regName(names RegNamer, bank RegBank, reg uint16) string {
	if names == nil {
		return fmt.Sprintf("r%s%d", bank, reg)
	}
	return names.RegName(bank, reg)
}
