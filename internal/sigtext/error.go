package sigtext

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// ParseError describes a syntax error in signature text. Offset and Len are
// byte positions into Src, which is the full offending line.
type ParseError struct {
	Offset int
	Len    int
	Msg    string
	Src    string
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

// Render writes the source line followed by a caret underline and the
// message. Padding is computed in display columns, so wide runes in the
// source do not skew the caret.
func (e *ParseError) Render(w io.Writer, useColor bool) {
	if e == nil || w == nil {
		return
	}
	fmt.Fprintln(w, e.Src)

	off := e.Offset
	if off > len(e.Src) {
		off = len(e.Src)
	}
	pad := runewidth.StringWidth(e.Src[:off])
	n := 1
	if e.Len > 0 && off+e.Len <= len(e.Src) {
		if cw := runewidth.StringWidth(e.Src[off : off+e.Len]); cw > 1 {
			n = cw
		}
	}
	carets := strings.Repeat("^", n)
	if useColor {
		carets = color.New(color.FgRed, color.Bold).Sprint(carets)
	}
	fmt.Fprintf(w, "%s%s %s\n", strings.Repeat(" ", pad), carets, e.Msg)
}
