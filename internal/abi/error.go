package abi

import (
	"fmt"

	"clinker/internal/sig"
	"clinker/internal/types"
)

// ErrorKind enumerates legalization failures.
type ErrorKind uint8

const (
	// ErrUnsupportedType indicates a type the convention cannot pass at all.
	ErrUnsupportedType ErrorKind = iota + 1
	// ErrInvalidAnnotation indicates a pre-assigned location that does not
	// fit the annotated type on this convention.
	ErrInvalidAnnotation
)

// Error reports why a signature could not be legalized. Register exhaustion
// is not an error; exhausted parameters spill to the stack.
type Error struct {
	Kind     ErrorKind
	Conv     string
	Ret      bool // error is in the return list rather than the parameter list
	Index    int  // position within the abstract signature's list
	Type     types.TypeID
	Spelling string  // canonical type spelling, when known
	Loc      sig.Loc // for ErrInvalidAnnotation
	Reason   string  // for ErrInvalidAnnotation
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	what := "parameter"
	if e.Ret {
		what = "return value"
	}
	ty := e.Spelling
	if ty == "" {
		ty = fmt.Sprintf("type#%d", e.Type)
	}
	switch e.Kind {
	case ErrUnsupportedType:
		return fmt.Sprintf("%s: unsupported type %s (%s %d)", e.Conv, ty, what, e.Index)
	case ErrInvalidAnnotation:
		return fmt.Sprintf("%s: invalid location annotation on %s %d (%s): %s", e.Conv, what, e.Index, ty, e.Reason)
	default:
		return fmt.Sprintf("%s: legalization error kind=%d (%s %d)", e.Conv, e.Kind, what, e.Index)
	}
}
