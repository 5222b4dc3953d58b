package isa

// a0..a7 and fa0..fa7 in architectural numbering.
var riscvArgOrder = []uint16{10, 11, 12, 13, 14, 15, 16, 17}

// riscv32 is the RV32 ELF psABI: shared argument ordinals across both banks,
// even-register pairing for split scalars, return address in x1.
var riscv32 = &Convention{
	Name:     "riscv32",
	WordBits: 32,
	Order:    Little,
	Int: Bank{
		Prefix: "x",
		Units:  32,
		Args:   riscvArgOrder,
	},
	Float: Bank{
		Prefix: "f",
		Units:  32,
		Args:   riscvArgOrder,
	},
	SlotAlign:      4,
	PairAlign:      2,
	SharedOrdinals: true,
	Link:           1,
	HasLink:        true,
}

var riscv64 = &Convention{
	Name:     "riscv64",
	WordBits: 64,
	Order:    Little,
	Int: Bank{
		Prefix: "x",
		Units:  32,
		Args:   riscvArgOrder,
	},
	Float: Bank{
		Prefix: "f",
		Units:  32,
		Args:   riscvArgOrder,
	},
	SlotAlign:      8,
	PairAlign:      2,
	SharedOrdinals: true,
	Link:           1,
	HasLink:        true,
}

// riscv32SF is RV32 without the F extension. Floats travel through the int
// bank as bit patterns.
var riscv32SF = &Convention{
	Name:     "riscv32-softfloat",
	WordBits: 32,
	Order:    Little,
	Int: Bank{
		Prefix: "x",
		Units:  32,
		Args:   riscvArgOrder,
	},
	Float: Bank{
		Prefix: "f",
		Units:  0,
	},
	SlotAlign:      4,
	PairAlign:      2,
	SharedOrdinals: true,
	Link:           1,
	HasLink:        true,
}

// x64 is a SysV-flavored 64-bit convention: independent per-bank ordinals,
// no pairing, return address on the stack rather than in a register.
var x64 = &Convention{
	Name:     "x64",
	WordBits: 64,
	Order:    Little,
	Int: Bank{
		Names: []string{
			"rax", "rcx", "rdx", "rbx", "rsp", "rbp", "rsi", "rdi",
			"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15",
		},
		Units: 16,
		Args:  []uint16{7, 6, 2, 1, 8, 9}, // rdi, rsi, rdx, rcx, r8, r9
	},
	Float: Bank{
		Prefix: "xmm",
		Units:  16,
		Args:   []uint16{0, 1, 2, 3, 4, 5, 6, 7},
	},
	SlotAlign: 8,
	PairAlign: 1,
}
