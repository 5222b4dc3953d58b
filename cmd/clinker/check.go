package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"clinker/internal/filecheck"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [dir]",
	Short: "Run signature fixture files",
	Long: `Check runs every *.sig fixture file under a directory: each signature is
legalized against the file's target convention and compared with its
expectations. The directory defaults to the [check].fixtures entry of
clinker.toml, or "testdata" when no manifest is found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "fixture files checked in parallel (0 = GOMAXPROCS)")
	checkCmd.Flags().Bool("no-cache", false, "ignore and do not update the result cache")
	checkCmd.Flags().Bool("update", false, "rewrite fixture expectations from actual results")
}

func runCheck(cmd *cobra.Command, args []string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	update, err := cmd.Flags().GetBool("update")
	if err != nil {
		return fmt.Errorf("failed to get update flag: %w", err)
	}

	var dir string
	if len(args) == 1 {
		dir = args[0]
	} else if dir, err = defaultFixtureDir(); err != nil {
		return err
	}

	cmd.SilenceUsage = true

	if update {
		return runCheckUpdate(cmd, dir)
	}

	var runner filecheck.Runner
	if !noCache {
		// A broken cache directory is not fatal, checks just run uncached.
		if cache, err := filecheck.OpenCache("clinker"); err == nil {
			runner.Cache = cache
		}
	}

	start := time.Now()
	results, err := runner.RunDir(cmd.Context(), dir, jobs)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no *.sig fixture files under %s", dir)
	}

	out := cmd.OutOrStdout()
	colored := useColor(cmd, os.Stdout)
	timings := showTimings(cmd)
	printFileResults(out, results, colored, timings)

	sum := filecheck.Summarize(results)
	printCheckSummary(out, sum, colored, timings, time.Since(start))
	if sum.FilesFailed > 0 {
		cmd.SilenceErrors = true
		return fmt.Errorf("") // silent, failures are printed above
	}
	return nil
}

// runCheckUpdate regenerates fixture expectations in place instead of
// verifying them.
func runCheckUpdate(cmd *cobra.Command, dir string) error {
	changed, total, err := filecheck.UpdateDir(dir)
	if err != nil {
		return err
	}
	if total == 0 {
		return fmt.Errorf("no *.sig fixture files under %s", dir)
	}

	out := cmd.OutOrStdout()
	for _, path := range changed {
		fmt.Fprintf(out, "updated %s\n", path)
	}
	fmt.Fprintf(out, "%d files, %d updated\n", total, len(changed))
	return nil
}

func printFileResults(out io.Writer, results []filecheck.FileResult, colored, timings bool) {
	pass := color.New(color.FgGreen, color.Bold)
	fail := color.New(color.FgRed, color.Bold)
	if !colored {
		pass.DisableColor()
		fail.DisableColor()
	}

	for i := range results {
		fr := &results[i]
		tag := pass.Sprint("PASS")
		if !fr.Ok() {
			tag = fail.Sprint("FAIL")
		}
		note := ""
		if fr.Cached {
			note = " (cached)"
		}
		if timings {
			fmt.Fprintf(out, "%s %s  %d cases in %.1f ms%s\n", tag, fr.Path, len(fr.Cases), toMillis(fr.Elapsed), note)
		} else {
			fmt.Fprintf(out, "%s %s%s\n", tag, fr.Path, note)
		}

		if fr.Err != "" {
			fmt.Fprintf(out, "  %s\n", fr.Err)
			continue
		}
		for _, c := range fr.Failures() {
			fmt.Fprintf(out, "  %s:%d: %s\n", fr.Path, c.Line, c.Msg)
			fmt.Fprintf(out, "    input %s\n", c.Input)
			if c.Want != "" {
				fmt.Fprintf(out, "    want  %s\n", c.Want)
			}
			fmt.Fprintf(out, "    got   %s\n", c.Got)
		}
	}
}

func printCheckSummary(out io.Writer, sum filecheck.Summary, colored, timings bool, total time.Duration) {
	verdictColor := color.New(color.FgGreen, color.Bold)
	verdict := "ok"
	if sum.FilesFailed > 0 {
		verdictColor = color.New(color.FgRed, color.Bold)
		verdict = "FAIL"
	}
	if !colored {
		verdictColor.DisableColor()
	}

	fmt.Fprintf(out, "%s: %d files, %d cases", verdictColor.Sprint(verdict), sum.Files, sum.Cases)
	if sum.FilesFailed > 0 {
		fmt.Fprintf(out, ", %d failing files, %d failing cases", sum.FilesFailed, sum.CasesFailed)
	}
	if sum.Cached > 0 {
		fmt.Fprintf(out, ", %d cached", sum.Cached)
	}
	if timings {
		fmt.Fprintf(out, ", %.1f ms", toMillis(total))
	}
	fmt.Fprintln(out)
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
