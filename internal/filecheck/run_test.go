package filecheck

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestRunFile(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "ok.sig", `target riscv32

signature(i32) -> i32
; check: signature(i32 [%x10]) -> i32 [%x10]

signature(i32 link)
; declared
; check: signature(i32 link [%x1]) -> i32 link [%x1]

signature(i7)
; error: unknown type

signature(f32, i64)
`)
	var r Runner
	res := r.RunFile(context.Background(), path)
	if res.Err != "" {
		t.Fatalf("file error: %s", res.Err)
	}
	if !res.Ok() {
		t.Fatalf("failures: %+v", res.Failures())
	}
	if res.Target != "riscv32" || len(res.Cases) != 4 {
		t.Fatalf("target %q with %d cases", res.Target, len(res.Cases))
	}
	// A case without expectations still records what it produced.
	if got := res.Cases[3].Got; got != "signature(f32 [%f10], i32 [%x12], i32 [%x13])" {
		t.Fatalf("directiveless case recorded %q", got)
	}
	if res.Elapsed <= 0 {
		t.Fatalf("elapsed = %v", res.Elapsed)
	}
}

func TestRunFileReportsFailures(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "bad.sig", `target riscv32
signature(i32)
; check: signature(i32 [%x11])
signature(i32)
; error: should have failed
signature(i7)
; check: signature(i32 [%x10])
`)
	var r Runner
	res := r.RunFile(context.Background(), path)
	if res.Err != "" {
		t.Fatalf("file error: %s", res.Err)
	}
	if res.Ok() {
		t.Fatalf("broken fixture passed")
	}
	fails := res.Failures()
	if len(fails) != 3 {
		t.Fatalf("got %d failures: %+v", len(fails), fails)
	}
	for i, wantMsg := range []string{
		"legalized form differs",
		"expected an error containing",
		"unexpected error",
	} {
		if !strings.Contains(fails[i].Msg, wantMsg) {
			t.Fatalf("failure %d = %q, want %q", i, fails[i].Msg, wantMsg)
		}
	}
	if got := fails[0].Got; got != "signature(i32 [%x10])" {
		t.Fatalf("mismatch records actual text, got %q", got)
	}

	sum := Summarize([]FileResult{res})
	if sum.Files != 1 || sum.FilesFailed != 1 || sum.Cases != 3 || sum.CasesFailed != 3 {
		t.Fatalf("summary %+v", sum)
	}
}

func TestRunFileLevelErrors(t *testing.T) {
	dir := t.TempDir()
	var r Runner

	t.Run("missing file", func(t *testing.T) {
		res := r.RunFile(context.Background(), filepath.Join(dir, "absent.sig"))
		if res.Err == "" {
			t.Fatalf("missing file passed")
		}
	})

	t.Run("unknown target", func(t *testing.T) {
		path := writeFixture(t, dir, "z80.sig", "# not yet\ntarget z80\nsignature(i32)\n")
		res := r.RunFile(context.Background(), path)
		if !strings.Contains(res.Err, `unknown target convention "z80"`) {
			t.Fatalf("err = %q", res.Err)
		}
		if !strings.Contains(res.Err, "z80.sig:2:") {
			t.Fatalf("err lacks the target position: %q", res.Err)
		}
	})

	t.Run("fixture syntax", func(t *testing.T) {
		path := writeFixture(t, dir, "loose.sig", "signature(i32)\n")
		res := r.RunFile(context.Background(), path)
		if !strings.Contains(res.Err, "signature before target directive") {
			t.Fatalf("err = %q", res.Err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		path := writeFixture(t, dir, "late.sig", "target riscv32\nsignature(i32)\n")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		res := r.RunFile(ctx, path)
		if res.Err == "" || len(res.Cases) != 0 {
			t.Fatalf("canceled run = %+v", res)
		}
	})
}

func TestRunDir(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "b.sig", "target riscv32\nsignature(i32)\n; check: signature(i32 [%x10])\n")
	writeFixture(t, dir, "a.sig", "target riscv64\nsignature(i64)\n; check: signature(i64 [%x10])\n")
	writeFixture(t, dir, "notes.txt", "not a fixture\n")

	var r Runner
	results, err := r.RunDir(context.Background(), dir, 2)
	if err != nil {
		t.Fatalf("RunDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if !strings.HasSuffix(results[0].Path, "a.sig") || !strings.HasSuffix(results[1].Path, "b.sig") {
		t.Fatalf("results out of order: %s, %s", results[0].Path, results[1].Path)
	}
	sum := Summarize(results)
	if sum.Files != 2 || sum.FilesFailed != 0 || sum.Cases != 2 || sum.CasesFailed != 0 {
		t.Fatalf("summary %+v", sum)
	}
}

func TestRunDirEmpty(t *testing.T) {
	var r Runner
	results, err := r.RunDir(context.Background(), t.TempDir(), 0)
	if err != nil {
		t.Fatalf("RunDir: %v", err)
	}
	if results != nil {
		t.Fatalf("got %d results from an empty dir", len(results))
	}
}

// TestRunTestdata runs every fixture shipped in the repository.
func TestRunTestdata(t *testing.T) {
	var r Runner
	results, err := r.RunDir(context.Background(), filepath.Join("..", "..", "testdata"), 0)
	if err != nil {
		t.Fatalf("RunDir: %v", err)
	}
	if len(results) == 0 {
		t.Fatalf("no fixtures found")
	}
	for _, fr := range results {
		if fr.Err != "" {
			t.Errorf("%s: %s", fr.Path, fr.Err)
			continue
		}
		for _, c := range fr.Failures() {
			t.Errorf("%s:%d: %s\n  got  %s\n  want %s", fr.Path, c.Line, c.Msg, c.Got, c.Want)
		}
	}
}
