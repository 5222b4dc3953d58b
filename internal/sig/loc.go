package sig

import "fmt"

// LocKind tags the variants of Loc.
type LocKind uint8

const (
	LocUnassigned LocKind = iota
	LocReg
	LocStack
)

// Loc is the concrete location of one parameter after legalization: a single
// register in a bank, or a caller-frame stack slot. The zero value is
// unassigned.
type Loc struct {
	Kind LocKind

	// Register location.
	Bank RegBank
	Reg  uint16

	// Stack location. Offset is relative to the frame's argument area;
	// Size is the slot width in bytes.
	Offset int32
	Size   uint32
}

// RegLoc returns a register location.
func RegLoc(bank RegBank, reg uint16) Loc {
	return Loc{Kind: LocReg, Bank: bank, Reg: reg}
}

// StackLoc returns a stack slot location.
func StackLoc(offset int32, size uint32) Loc {
	return Loc{Kind: LocStack, Offset: offset, Size: size}
}

// IsAssigned reports whether the location is concrete.
func (l Loc) IsAssigned() bool { return l.Kind != LocUnassigned }

// String is a debug rendering; canonical text comes from the signature
// printer, which knows register names.
func (l Loc) String() string {
	switch l.Kind {
	case LocReg:
		return fmt.Sprintf("reg(%s, %d)", l.Bank, l.Reg)
	case LocStack:
		return fmt.Sprintf("stack(%d, %d)", l.Offset, l.Size)
	default:
		return "unassigned"
	}
}
