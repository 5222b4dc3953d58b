// Package isa describes target calling conventions as pure data: register
// banks, argument register orders, stack slot rules and the link register.
// The legalizer in internal/abi interprets these tables; nothing here
// allocates.
package isa

import (
	"fmt"
	"strconv"
	"strings"

	"clinker/internal/sig"
)

// ByteOrder is the memory byte order of a target.
type ByteOrder uint8

const (
	Little ByteOrder = iota
	Big
)

func (o ByteOrder) String() string {
	if o == Big {
		return "big"
	}
	return "little"
}

// Bank describes one register bank: how its registers are named and which of
// them carry arguments, in allocation order. Register indices are
// architectural unit numbers (x10 is unit 10).
type Bank struct {
	// Prefix names registers Prefix+unit ("x10") unless Names is set.
	Prefix string
	// Names lists explicit register names indexed by unit number.
	Names []string
	// Units is the number of registers in the bank. Zero means the target
	// has no such bank.
	Units uint16
	// Args lists argument registers in allocation order.
	Args []uint16
}

// Convention is the parameter passing contract of one target. It is shared
// and immutable after construction.
type Convention struct {
	Name     string
	WordBits uint8
	Order    ByteOrder

	Int   Bank
	Float Bank

	// SlotAlign is the minimum stack slot alignment in bytes.
	SlotAlign uint8
	// PairAlign aligns the argument ordinal and the stack cursor for pieces
	// split from a scalar wider than a word. 1 disables pairing.
	PairAlign uint8
	// SharedOrdinals makes both banks consume a single argument counter, as
	// the RISC-V ELF psABI does. When false each bank counts independently.
	SharedOrdinals bool

	// Link is the int-bank register carrying the return address of declared
	// functions. Valid only when HasLink is set.
	Link    uint16
	HasLink bool
}

// WordBytes returns the machine word size in bytes.
func (c *Convention) WordBytes() uint32 {
	return uint32(c.WordBits) / 8
}

func (c *Convention) bank(b sig.RegBank) *Bank {
	switch b {
	case sig.BankInt:
		return &c.Int
	case sig.BankFloat:
		return &c.Float
	default:
		return nil
	}
}

// RegName returns the canonical name of a register, as written in signature
// annotations. It implements sig.RegNamer.
func (c *Convention) RegName(bank sig.RegBank, reg uint16) string {
	b := c.bank(bank)
	if b == nil {
		return fmt.Sprintf("r?%d", reg)
	}
	if int(reg) < len(b.Names) {
		return b.Names[reg]
	}
	return b.Prefix + strconv.Itoa(int(reg))
}

// RegByName resolves a register name like "x10" or "xmm3" to its bank and
// unit number. Names outside the convention's banks do not resolve.
func (c *Convention) RegByName(name string) (sig.RegBank, uint16, bool) {
	for _, bank := range []sig.RegBank{sig.BankInt, sig.BankFloat} {
		b := c.bank(bank)
		if u, ok := b.regByName(name); ok {
			return bank, u, true
		}
	}
	return 0, 0, false
}

func (b *Bank) regByName(name string) (uint16, bool) {
	if b.Units == 0 {
		return 0, false
	}
	for i, n := range b.Names {
		if n == name {
			return uint16(i), true
		}
	}
	if b.Names != nil || b.Prefix == "" {
		return 0, false
	}
	rest, ok := strings.CutPrefix(name, b.Prefix)
	if !ok {
		return 0, false
	}
	u, err := strconv.ParseUint(rest, 10, 16)
	if err != nil || uint16(u) >= b.Units {
		return 0, false
	}
	// Reject non-canonical spellings like "x010".
	if rest != strconv.FormatUint(u, 10) {
		return 0, false
	}
	return uint16(u), true
}
