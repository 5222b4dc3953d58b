// Package sigtext reads and reports on the textual form of function
// signatures, one signature per line:
//
//	signature(f32 [%f10], i32 uext [%x12]) -> f64 [%f10]
//
// Parsed signatures carry whatever locations the text pins down; legalization
// is internal/abi's job.
package sigtext

import "fmt"

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent
	tokInt
	tokReg
	tokLParen
	tokRParen
	tokLBrack
	tokRBrack
	tokComma
	tokArrow
	tokInvalid
)

// token is one lexeme. text is the literal source slice, so its length is
// the caret length for error rendering; registers keep their leading '%'.
type token struct {
	kind tokenKind
	off  int
	text string
}

func describe(t token) string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.text)
}
