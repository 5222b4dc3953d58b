// Package filecheck runs signature fixture files: each input line is parsed,
// legalized against the file's target convention and compared with the
// expectations written next to it.
//
// Fixture grammar, line oriented:
//
//	# comment                        ignored
//	target riscv32                   selects the convention, once per file
//	signature(f32, i64) -> f64       a case (optional "legalize " prefix)
//	; declared                       the preceding case is a declared function
//	; check: signature(...)          expected canonical output
//	; error: unsupported type        expected failure substring
//	; anything else                  comment, ignored
package filecheck

import (
	"fmt"
	"strings"
)

// Case is one signature under test.
type Case struct {
	Line     int // 1-based line of the input signature
	Input    string
	Declared bool
	Check    string // expected canonical output, "" when only success is asserted
	ErrWant  string // expected failure substring, "" when success is expected
}

// File is one parsed fixture file.
type File struct {
	Path       string
	Target     string
	TargetLine int
	Cases      []Case
}

// ParseFixture reads fixture content. Errors carry path:line positions.
func ParseFixture(path, content string) (*File, error) {
	f := &File{Path: path}
	for i, raw := range strings.Split(content, "\n") {
		ln := i + 1
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, ";"):
			if err := f.directive(ln, strings.TrimSpace(line[1:])); err != nil {
				return nil, err
			}
		case line == "target" || strings.HasPrefix(line, "target "):
			name := strings.TrimSpace(strings.TrimPrefix(line, "target"))
			if f.Target != "" {
				return nil, fmt.Errorf("%s:%d: duplicate target directive", path, ln)
			}
			if name == "" {
				return nil, fmt.Errorf("%s:%d: target directive needs a convention name", path, ln)
			}
			f.Target = name
			f.TargetLine = ln
		default:
			if f.Target == "" {
				return nil, fmt.Errorf("%s:%d: signature before target directive", path, ln)
			}
			input := strings.TrimSpace(strings.TrimPrefix(line, "legalize "))
			f.Cases = append(f.Cases, Case{Line: ln, Input: input})
		}
	}
	return f, nil
}

func (f *File) directive(ln int, body string) error {
	last := func() (*Case, error) {
		if len(f.Cases) == 0 {
			return nil, fmt.Errorf("%s:%d: directive without a preceding signature", f.Path, ln)
		}
		return &f.Cases[len(f.Cases)-1], nil
	}
	switch {
	case body == "declared":
		c, err := last()
		if err != nil {
			return err
		}
		c.Declared = true
	case strings.HasPrefix(body, "check:"):
		c, err := last()
		if err != nil {
			return err
		}
		if c.Check != "" {
			return fmt.Errorf("%s:%d: duplicate check for the signature at line %d", f.Path, ln, c.Line)
		}
		if c.ErrWant != "" {
			return fmt.Errorf("%s:%d: signature at line %d already expects an error", f.Path, ln, c.Line)
		}
		c.Check = strings.TrimSpace(strings.TrimPrefix(body, "check:"))
		if c.Check == "" {
			return fmt.Errorf("%s:%d: empty check expectation", f.Path, ln)
		}
	case strings.HasPrefix(body, "error:"):
		c, err := last()
		if err != nil {
			return err
		}
		if c.ErrWant != "" {
			return fmt.Errorf("%s:%d: duplicate error expectation for the signature at line %d", f.Path, ln, c.Line)
		}
		if c.Check != "" {
			return fmt.Errorf("%s:%d: signature at line %d already has a check", f.Path, ln, c.Line)
		}
		c.ErrWant = strings.TrimSpace(strings.TrimPrefix(body, "error:"))
		if c.ErrWant == "" {
			return fmt.Errorf("%s:%d: empty error expectation", f.Path, ln)
		}
	default:
		// Plain comment.
	}
	return nil
}
