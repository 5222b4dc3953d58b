package filecheck

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"clinker/internal/abi"
	"clinker/internal/isa"
	"clinker/internal/sig"
	"clinker/internal/sigtext"
	"clinker/internal/types"
)

// CaseResult is the outcome of one signature case.
type CaseResult struct {
	Line  int
	Input string
	Ok    bool
	Got   string // legalized form, or the error text when legalization failed
	Want  string // check text or expected error substring, "" when only success is asserted
	Msg   string // failure description, "" on success
}

// FileResult is the outcome of one fixture file.
type FileResult struct {
	Path    string
	Target  string
	Cases   []CaseResult
	Elapsed time.Duration
	Cached  bool
	Err     string // file-level failure (I/O, fixture syntax, unknown target)
}

// Ok reports whether the file ran and every case passed.
func (fr *FileResult) Ok() bool {
	return fr.Err == "" && lo.EveryBy(fr.Cases, func(c CaseResult) bool { return c.Ok })
}

// Failures returns the cases that did not pass.
func (fr *FileResult) Failures() []CaseResult {
	return lo.Filter(fr.Cases, func(c CaseResult, _ int) bool { return !c.Ok })
}

// Summary aggregates results across fixture files.
type Summary struct {
	Files       int
	FilesFailed int
	Cached      int
	Cases       int
	CasesFailed int
}

func Summarize(results []FileResult) Summary {
	return Summary{
		Files:       len(results),
		FilesFailed: lo.CountBy(results, func(fr FileResult) bool { return !fr.Ok() }),
		Cached:      lo.CountBy(results, func(fr FileResult) bool { return fr.Cached }),
		Cases:       lo.SumBy(results, func(fr FileResult) int { return len(fr.Cases) }),
		CasesFailed: lo.SumBy(results, func(fr FileResult) int { return len(fr.Failures()) }),
	}
}

// Runner executes fixture files.
type Runner struct {
	Cache *Cache // nil disables result caching
}

// RunFile executes one fixture file. File-level problems land in
// FileResult.Err rather than an error return so directory runs keep going.
func (r *Runner) RunFile(ctx context.Context, path string) FileResult {
	if err := ctx.Err(); err != nil {
		return FileResult{Path: path, Err: err.Error()}
	}
	start := time.Now()

	content, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Err: err.Error()}
	}

	key := contentDigest(content)
	var payload cachePayload
	if hit, cerr := r.Cache.get(key, &payload); cerr == nil && hit {
		return FileResult{
			Path:    path,
			Target:  payload.Target,
			Cases:   payload.Cases,
			Elapsed: time.Duration(payload.Elapsed),
			Cached:  true,
			Err:     payload.Err,
		}
	}
	// Unreadable or stale cache entries fall through to a fresh run.

	res := checkFile(path, string(content))
	res.Elapsed = time.Since(start)

	// Results depend only on the content, so I/O-clean runs are cacheable.
	_ = r.Cache.put(key, &cachePayload{
		Schema:  cacheSchemaVersion,
		Target:  res.Target,
		Err:     res.Err,
		Cases:   res.Cases,
		Elapsed: int64(res.Elapsed),
	})
	return res
}

func checkFile(path, content string) FileResult {
	res := FileResult{Path: path}

	f, err := ParseFixture(path, content)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	res.Target = f.Target

	conv, err := isa.Lookup(f.Target)
	if err != nil {
		res.Err = fmt.Sprintf("%s:%d: %v", path, f.TargetLine, err)
		return res
	}

	in := types.NewInterner()
	res.Cases = make([]CaseResult, 0, len(f.Cases))
	for _, c := range f.Cases {
		res.Cases = append(res.Cases, runCase(conv, in, c))
	}
	return res
}

func runCase(conv *isa.Convention, in *types.Interner, c Case) CaseResult {
	res := CaseResult{Line: c.Line, Input: c.Input, Want: c.Check}
	if c.ErrWant != "" {
		res.Want = c.ErrWant
	}

	parsed, err := sigtext.Parse(c.Input, conv, in)
	var out *sig.Signature
	if err == nil {
		out, err = abi.Legalize(conv, in, parsed, abi.Options{Declared: c.Declared})
	}

	switch {
	case err != nil && c.ErrWant != "":
		res.Got = err.Error()
		if strings.Contains(res.Got, c.ErrWant) {
			res.Ok = true
		} else {
			res.Msg = fmt.Sprintf("error %q does not contain %q", res.Got, c.ErrWant)
		}
	case err != nil:
		res.Got = err.Error()
		res.Msg = "unexpected error: " + res.Got
	case c.ErrWant != "":
		res.Got = sig.Text(out, in, conv)
		res.Msg = fmt.Sprintf("expected an error containing %q", c.ErrWant)
	case c.Check != "" && sig.Text(out, in, conv) != c.Check:
		res.Got = sig.Text(out, in, conv)
		res.Msg = "legalized form differs from expectation"
	default:
		res.Got = sig.Text(out, in, conv)
		res.Ok = true
	}
	return res
}

// listSigFiles returns the sorted *.sig files under dir.
func listSigFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".sig") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// RunDir executes every *.sig file under dir, up to jobs files in parallel.
// jobs <= 0 means GOMAXPROCS. Results come back in path order.
func (r *Runner) RunDir(ctx context.Context, dir string, jobs int) ([]FileResult, error) {
	files, err := listSigFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine owns its own index, no mutex needed.
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				results[i] = r.RunFile(gctx, path)
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
