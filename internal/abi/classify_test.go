package abi

import (
	"errors"
	"testing"

	"clinker/internal/isa"
	"clinker/internal/sig"
	"clinker/internal/types"
)

func conv(t *testing.T, name string) *isa.Convention {
	t.Helper()
	c, err := isa.Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q): %v", name, err)
	}
	return c
}

func TestClassifyScalars(t *testing.T) {
	in := types.NewInterner()
	bi := in.Builtins()
	rv32 := conv(t, "riscv32")
	rv64 := conv(t, "riscv64")
	soft := conv(t, "riscv32-softfloat")

	cases := []struct {
		name string
		conv *isa.Convention
		id   types.TypeID
		want Class
	}{
		{"i32 fits a word", rv32, bi.I32, Class{Bank: sig.BankInt, Disp: Direct, Bytes: 4}},
		{"i8 fits a word", rv32, bi.I8, Class{Bank: sig.BankInt, Disp: Direct, Bytes: 1}},
		{"b1 fits a word", rv32, bi.B1, Class{Bank: sig.BankInt, Disp: Direct, Bytes: 1}},
		{"i64 splits on rv32", rv32, bi.I64, Class{Bank: sig.BankInt, Disp: SplitWords, Bytes: 8}},
		{"b64 splits on rv32", rv32, bi.B64, Class{Bank: sig.BankInt, Disp: SplitWords, Bytes: 8}},
		{"i64 fits on rv64", rv64, bi.I64, Class{Bank: sig.BankInt, Disp: Direct, Bytes: 8}},
		{"f32 uses the float bank", rv32, bi.F32, Class{Bank: sig.BankFloat, Disp: Direct, Bytes: 4}},
		{"f64 uses one float reg on rv32", rv32, bi.F64, Class{Bank: sig.BankFloat, Disp: Direct, Bytes: 8}},
		{"soft f32 rides the int bank", soft, bi.F32, Class{Bank: sig.BankInt, Disp: Direct, Bytes: 4}},
		{"soft f64 splits", soft, bi.F64, Class{Bank: sig.BankInt, Disp: SplitWords, Bytes: 8}},
	}
	for _, tc := range cases {
		got, err := Classify(tc.conv, in, tc.id)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestClassifyVectors(t *testing.T) {
	in := types.NewInterner()
	bi := in.Builtins()
	rv32 := conv(t, "riscv32")

	i32x4 := in.Intern(types.MakeVector(bi.I32, 4))
	got, err := Classify(rv32, in, i32x4)
	if err != nil {
		t.Fatalf("i32x4: %v", err)
	}
	want := Class{Bank: sig.BankInt, Disp: SplitLanes, Bytes: 16}
	if got != want {
		t.Fatalf("i32x4: got %+v, want %+v", got, want)
	}

	f64x2 := in.Intern(types.MakeVector(bi.F64, 2))
	got, err = Classify(rv32, in, f64x2)
	if err != nil {
		t.Fatalf("f64x2: %v", err)
	}
	if got.Bank != sig.BankFloat || got.Disp != SplitLanes || got.Bytes != 16 {
		t.Fatalf("f64x2: got %+v", got)
	}
}

func TestClassifyUnsupported(t *testing.T) {
	in := types.NewInterner()
	bi := in.Builtins()
	rv32 := conv(t, "riscv32")

	for _, id := range []types.TypeID{
		types.NoTypeID,
		in.Intern(types.MakeVector(bi.I32, 0)),
	} {
		_, err := Classify(rv32, in, id)
		var e *Error
		if !errors.As(err, &e) || e.Kind != ErrUnsupportedType {
			t.Fatalf("type#%d: got %v, want unsupported type", id, err)
		}
	}
}
