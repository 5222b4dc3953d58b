package abi

import (
	"fortio.org/safecast"

	"clinker/internal/isa"
	"clinker/internal/sig"
)

// allocator walks pieces with the convention's argument cursors. Registers
// are handed out in the convention's order; once a bank's ordinal runs past
// its argument list, every further piece of that bank lands on the stack.
// With SharedOrdinals both banks advance the same counter, so a float
// argument also uses up an int argument slot and vice versa.
type allocator struct {
	conv     *isa.Convention
	ordInt   int
	ordFloat int
	offset   int64
}

func newAllocator(conv *isa.Convention) *allocator {
	return &allocator{conv: conv}
}

func (a *allocator) ordinal(bank sig.RegBank) *int {
	if bank == sig.BankFloat && !a.conv.SharedOrdinals {
		return &a.ordFloat
	}
	return &a.ordInt
}

// alignPair rounds the ordinal and the stack cursor up so the halves of a
// split scalar start on an even register and an even word. Aligning past the
// last argument register sends both halves to the stack together; a pair
// never straddles the register file boundary.
func (a *allocator) alignPair(bank sig.RegBank) {
	pa := int(a.conv.PairAlign)
	if pa <= 1 {
		return
	}
	ord := a.ordinal(bank)
	*ord = roundUp(*ord, pa)
	a.offset = roundUp(a.offset, int64(pa)*int64(a.conv.WordBytes()))
}

func (a *allocator) assign(pc *piece) sig.Loc {
	if pc.pair {
		a.alignPair(pc.cl.Bank)
	}
	bank := bankOf(a.conv, pc.cl.Bank)
	ord := a.ordinal(pc.cl.Bank)
	if *ord < len(bank.Args) {
		reg := bank.Args[*ord]
		*ord++
		return sig.RegLoc(pc.cl.Bank, reg)
	}
	return a.spill(pc.cl.Bytes)
}

// spill takes the next stack slot. Slot sizes are rounded up to the
// convention's slot alignment, which keeps the cursor aligned without ever
// overlapping slots.
func (a *allocator) spill(bytes uint32) sig.Loc {
	size := roundUp(bytes, uint32(a.conv.SlotAlign))
	off, err := safecast.Conv[int32](a.offset)
	if err != nil {
		panic("abi: stack argument area overflow")
	}
	a.offset += int64(size)
	return sig.StackLoc(off, size)
}

// assignParams gives every unassigned piece a concrete location. Annotated
// pieces keep their location and leave the cursors untouched; stack
// annotations get their slot size filled in from the classified footprint.
func assignParams(conv *isa.Convention, pieces []piece) []sig.Param {
	a := newAllocator(conv)
	out := make([]sig.Param, 0, len(pieces))
	for i := range pieces {
		pc := &pieces[i]
		if pc.param.Purpose != sig.PurposeLink && !pc.param.Loc.IsAssigned() {
			pc.param.Loc = a.assign(pc)
		} else if pc.param.Loc.Kind == sig.LocStack && pc.param.Loc.Size == 0 {
			pc.param.Loc.Size = pc.cl.Bytes
		}
		out = append(out, pc.param)
	}
	return out
}

func roundUp[T int | int64 | uint32](n, m T) T {
	if m <= 1 {
		return n
	}
	if rem := n % m; rem != 0 {
		return n + (m - rem)
	}
	return n
}
