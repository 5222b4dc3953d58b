package sig

import (
	"fmt"
	"testing"

	"clinker/internal/types"
)

type xfNames struct{}

func (xfNames) RegName(bank RegBank, reg uint16) string {
	if bank == BankFloat {
		return fmt.Sprintf("f%d", reg)
	}
	return fmt.Sprintf("x%d", reg)
}

func TestCloneIsDeep(t *testing.T) {
	in := types.NewInterner()
	bi := in.Builtins()

	s := NewSignature("riscv32")
	s.Params = append(s.Params, NewParam(bi.I32), NewParam(bi.F64))
	s.Returns = append(s.Returns, NewParam(bi.I32))

	c := s.Clone()
	if !s.Equal(c) {
		t.Fatalf("clone not equal to original")
	}
	c.Params[0].Loc = RegLoc(BankInt, 10)
	c.Returns[0].Extension = ExtSext
	if s.Params[0].Loc.IsAssigned() {
		t.Fatalf("clone shares param storage with original")
	}
	if s.Returns[0].Extension != ExtNone {
		t.Fatalf("clone shares return storage with original")
	}
}

func TestEqual(t *testing.T) {
	in := types.NewInterner()
	bi := in.Builtins()

	base := func() *Signature {
		s := NewSignature("riscv32")
		s.Params = append(s.Params, NewParam(bi.I32))
		s.Returns = append(s.Returns, NewParam(bi.F32))
		return s
	}

	a := base()
	if !a.Equal(base()) {
		t.Fatalf("identical signatures compare unequal")
	}

	b := base()
	b.Conv = "riscv64"
	if a.Equal(b) {
		t.Fatalf("convention mismatch compares equal")
	}

	b = base()
	b.Params[0].Type = bi.I64
	if a.Equal(b) {
		t.Fatalf("type mismatch compares equal")
	}

	b = base()
	b.Params[0].Loc = StackLoc(0, 4)
	if a.Equal(b) {
		t.Fatalf("location mismatch compares equal")
	}

	b = base()
	b.Params = append(b.Params, NewParam(bi.I32))
	if a.Equal(b) {
		t.Fatalf("arity mismatch compares equal")
	}
}

func TestAssigned(t *testing.T) {
	in := types.NewInterner()
	bi := in.Builtins()

	s := NewSignature("riscv32")
	s.Params = append(s.Params, NewParam(bi.I32))
	s.Returns = append(s.Returns, NewParam(bi.I32))
	if s.Assigned() {
		t.Fatalf("unassigned signature reports assigned")
	}
	s.Params[0].Loc = RegLoc(BankInt, 10)
	if s.Assigned() {
		t.Fatalf("half-assigned signature reports assigned")
	}
	s.Returns[0].Loc = StackLoc(0, 4)
	if !s.Assigned() {
		t.Fatalf("fully assigned signature reports unassigned")
	}
}

func TestTextAbstract(t *testing.T) {
	in := types.NewInterner()
	bi := in.Builtins()

	s := NewSignature("riscv32")
	s.Params = append(s.Params, NewParam(bi.F32), NewParam(bi.I64))
	s.Returns = append(s.Returns, NewParam(bi.F64))

	got := Text(s, in, nil)
	want := "signature(f32, i64) -> f64"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTextAssigned(t *testing.T) {
	in := types.NewInterner()
	bi := in.Builtins()

	s := NewSignature("riscv32")
	p0 := NewParam(bi.F32)
	p0.Loc = RegLoc(BankFloat, 10)
	p1 := NewParam(bi.I32)
	p1.Extension = ExtUext
	p1.Loc = RegLoc(BankInt, 12)
	p2 := NewParam(bi.I32)
	p2.Purpose = PurposeLink
	p2.Loc = RegLoc(BankInt, 1)
	s.Params = append(s.Params, p0, p1, p2)

	r0 := NewParam(bi.I64)
	r0.Loc = StackLoc(8, 8)
	s.Returns = append(s.Returns, r0)

	got := Text(s, in, xfNames{})
	want := "signature(f32 [%f10], i32 uext [%x12], i32 link [%x1]) -> i64 [8]"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTextNoReturns(t *testing.T) {
	in := types.NewInterner()
	bi := in.Builtins()

	s := NewSignature("riscv32")
	s.Params = append(s.Params, NewParam(bi.I32))
	if got, want := Text(s, in, nil), "signature(i32)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	empty := NewSignature("riscv32")
	if got, want := Text(empty, in, nil), "signature()"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
