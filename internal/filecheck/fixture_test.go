package filecheck

import (
	"strings"
	"testing"
)

func TestParseFixture(t *testing.T) {
	content := `# Shared counter demo.
target riscv32

signature(i32) -> i32
; check: signature(i32 [%x10]) -> i32 [%x10]

legalize signature(i32 link)
; declared
; this trailing note is just a comment

signature(i64 [%x10])
; error: does not fit
`
	f, err := ParseFixture("demo.sig", content)
	if err != nil {
		t.Fatalf("ParseFixture: %v", err)
	}
	if f.Target != "riscv32" || f.TargetLine != 2 {
		t.Fatalf("target %q at line %d", f.Target, f.TargetLine)
	}
	want := []Case{
		{Line: 4, Input: "signature(i32) -> i32", Check: "signature(i32 [%x10]) -> i32 [%x10]"},
		{Line: 7, Input: "signature(i32 link)", Declared: true},
		{Line: 11, Input: "signature(i64 [%x10])", ErrWant: "does not fit"},
	}
	if len(f.Cases) != len(want) {
		t.Fatalf("got %d cases, want %d", len(f.Cases), len(want))
	}
	for i := range want {
		if f.Cases[i] != want[i] {
			t.Fatalf("case %d = %+v, want %+v", i, f.Cases[i], want[i])
		}
	}
}

func TestParseFixtureCRLF(t *testing.T) {
	f, err := ParseFixture("crlf.sig", "target riscv32\r\nsignature(i32)\r\n; check: signature(i32 [%x10])\r\n")
	if err != nil {
		t.Fatalf("ParseFixture: %v", err)
	}
	if len(f.Cases) != 1 || f.Cases[0].Input != "signature(i32)" {
		t.Fatalf("cases = %+v", f.Cases)
	}
	if f.Cases[0].Check != "signature(i32 [%x10])" {
		t.Fatalf("check = %q", f.Cases[0].Check)
	}
}

func TestParseFixtureErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "duplicate target",
			content: "target riscv32\ntarget riscv64\n",
			want:    "fix.sig:2: duplicate target directive",
		},
		{
			name:    "bare target",
			content: "target\n",
			want:    "fix.sig:1: target directive needs a convention name",
		},
		{
			name:    "signature before target",
			content: "signature(i32)\n",
			want:    "fix.sig:1: signature before target directive",
		},
		{
			name:    "orphan directive",
			content: "target riscv32\n; declared\n",
			want:    "fix.sig:2: directive without a preceding signature",
		},
		{
			name:    "duplicate check",
			content: "target riscv32\nsignature(i32)\n; check: a\n; check: b\n",
			want:    "fix.sig:4: duplicate check for the signature at line 2",
		},
		{
			name:    "empty check",
			content: "target riscv32\nsignature(i32)\n; check:\n",
			want:    "fix.sig:3: empty check expectation",
		},
		{
			name:    "error after check",
			content: "target riscv32\nsignature(i32)\n; check: a\n; error: b\n",
			want:    "fix.sig:4: signature at line 2 already has a check",
		},
		{
			name:    "check after error",
			content: "target riscv32\nsignature(i32)\n; error: b\n; check: a\n",
			want:    "fix.sig:4: signature at line 2 already expects an error",
		},
		{
			name:    "duplicate error",
			content: "target riscv32\nsignature(i32)\n; error: a\n; error: b\n",
			want:    "fix.sig:4: duplicate error expectation for the signature at line 2",
		},
		{
			name:    "empty error",
			content: "target riscv32\nsignature(i32)\n; error:\n",
			want:    "fix.sig:3: empty error expectation",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFixture("fix.sig", tc.content)
			if err == nil {
				t.Fatalf("fixture accepted")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not contain %q", err, tc.want)
			}
		})
	}
}
