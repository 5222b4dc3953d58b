package filecheck

import (
	"fmt"
	"os"
	"strings"

	"clinker/internal/abi"
	"clinker/internal/isa"
	"clinker/internal/sig"
	"clinker/internal/sigtext"
	"clinker/internal/types"
)

// UpdateFile legalizes every case in one fixture file and rewrites the
// expectations of those that legalize cleanly, replacing a stale check or
// error line and inserting a check line where the case had none. Cases that
// fail to legalize keep their lines; a later check run reports them.
// Reports whether the file was rewritten.
func UpdateFile(path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	f, err := ParseFixture(path, string(content))
	if err != nil {
		return false, err
	}
	conv, err := isa.Lookup(f.Target)
	if err != nil {
		return false, fmt.Errorf("%s:%d: %w", path, f.TargetLine, err)
	}

	in := types.NewInterner()
	fresh := make(map[int]string, len(f.Cases))
	for _, c := range f.Cases {
		parsed, err := sigtext.Parse(c.Input, conv, in)
		if err != nil {
			continue
		}
		out, err := abi.Legalize(conv, in, parsed, abi.Options{Declared: c.Declared})
		if err != nil {
			continue
		}
		fresh[c.Line] = sig.Text(out, in, conv)
	}

	rewritten, changed := rewriteExpectations(string(content), fresh)
	if !changed {
		return false, nil
	}
	return true, os.WriteFile(path, []byte(rewritten), 0o644)
}

// UpdateDir rewrites expectations across every *.sig file under dir,
// stopping at the first file that cannot be parsed or written. Returns the
// changed paths in path order and the number of fixture files visited.
func UpdateDir(dir string) ([]string, int, error) {
	files, err := listSigFiles(dir)
	if err != nil {
		return nil, 0, err
	}

	var changed []string
	for i, path := range files {
		ch, err := UpdateFile(path)
		if err != nil {
			return changed, i, err
		}
		if ch {
			changed = append(changed, path)
		}
	}
	return changed, len(files), nil
}

// rewriteExpectations returns content with the expectation of every case in
// fresh set to "; check: <text>". fresh maps the 1-based line of a case's
// input to its legalized form. Line classification mirrors ParseFixture;
// content must have parsed cleanly.
func rewriteExpectations(content string, fresh map[int]string) (string, bool) {
	lines := strings.Split(content, "\n")

	// Where each case's expectation lives: an existing check/error line to
	// replace, or the line a new one goes after (the input itself, pushed
	// down by a "; declared" directive).
	replaceAt := make(map[int]int)
	insertAfter := make(map[int]int)
	curCase := 0
	for i, raw := range lines {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
		case strings.HasPrefix(line, ";"):
			if curCase == 0 {
				continue
			}
			body := strings.TrimSpace(line[1:])
			switch {
			case strings.HasPrefix(body, "check:"), strings.HasPrefix(body, "error:"):
				replaceAt[curCase] = i
			case body == "declared":
				insertAfter[curCase] = i
			}
		case line == "target" || strings.HasPrefix(line, "target "):
			curCase = 0
		default:
			curCase = i + 1
			insertAfter[curCase] = i
		}
	}

	replaceLine := make(map[int]string)
	insertLine := make(map[int]string)
	for caseLn, text := range fresh {
		want := "; check: " + text
		if idx, ok := replaceAt[caseLn]; ok {
			if strings.TrimSpace(strings.TrimSuffix(lines[idx], "\r")) != want {
				replaceLine[idx] = want
			}
		} else if idx, ok := insertAfter[caseLn]; ok {
			insertLine[idx] = want
		}
	}
	if len(replaceLine) == 0 && len(insertLine) == 0 {
		return content, false
	}

	out := make([]string, 0, len(lines)+len(insertLine))
	for i, raw := range lines {
		if nl, ok := replaceLine[i]; ok {
			out = append(out, nl)
		} else {
			out = append(out, raw)
		}
		if nl, ok := insertLine[i]; ok {
			out = append(out, nl)
		}
	}
	return strings.Join(out, "\n"), true
}
