package types

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// Spelling renders the canonical textual name of a type: "i32", "f64", "b1",
// vectors as element spelling plus an "x<lanes>" suffix ("i32x4", "i32x4x2").
func (in *Interner) Spelling(id TypeID) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return "invalid"
	}
	switch tt.Kind {
	case KindInt:
		return fmt.Sprintf("i%d", tt.Width)
	case KindBool:
		return fmt.Sprintf("b%d", tt.Width)
	case KindFloat:
		return fmt.Sprintf("f%d", tt.Width)
	case KindVector:
		return fmt.Sprintf("%sx%d", in.Spelling(tt.Elem), tt.Lanes)
	default:
		return "invalid"
	}
}

// ParseSpelling interns the type named by a canonical spelling. Vector
// suffixes bind left: "i32x4x2" is a 2-lane vector of i32x4.
func ParseSpelling(in *Interner, s string) (TypeID, bool) {
	parts := strings.Split(s, "x")
	id, ok := parseScalar(in, parts[0])
	if !ok {
		return NoTypeID, false
	}
	for _, part := range parts[1:] {
		lanes, ok := parseLanes(part)
		if !ok {
			return NoTypeID, false
		}
		id = in.Intern(MakeVector(id, lanes))
	}
	return id, true
}

func parseScalar(in *Interner, s string) (TypeID, bool) {
	if len(s) < 2 {
		return NoTypeID, false
	}
	width, err := strconv.ParseUint(s[1:], 10, 8)
	if err != nil {
		return NoTypeID, false
	}
	w := Width(width)
	switch s[0] {
	case 'i':
		switch w {
		case Width8, Width16, Width32, Width64:
			return in.Intern(MakeInt(w)), true
		}
	case 'b':
		switch w {
		case Width1, Width8, Width16, Width32, Width64:
			return in.Intern(MakeBool(w)), true
		}
	case 'f':
		switch w {
		case Width32, Width64:
			return in.Intern(MakeFloat(w)), true
		}
	}
	return NoTypeID, false
}

func parseLanes(s string) (uint16, bool) {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	lanes, err := safecast.Conv[uint16](n)
	if err != nil {
		return 0, false
	}
	return lanes, true
}
