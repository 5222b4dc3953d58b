package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"clinker/internal/abi"
	"clinker/internal/isa"
	"clinker/internal/sig"
	"clinker/internal/sigtext"
	"clinker/internal/types"
)

var legalizeCmd = &cobra.Command{
	Use:   "legalize [flags] <signature>",
	Short: "Assign concrete locations to a signature",
	Long: `Legalize parses a textual signature, gives every parameter and return
value a register or stack slot under the chosen convention and prints the
result. Pass "-" to read the signature from stdin.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLegalize,
}

func init() {
	legalizeCmd.Flags().String("target", "riscv32", "target convention (list them with 'clinker targets')")
	legalizeCmd.Flags().Bool("declared", false, "treat the function as declared in-module (gains the link register)")
	legalizeCmd.Flags().Bool("all", false, "legalize under every registered convention")
}

func runLegalize(cmd *cobra.Command, args []string) error {
	target, err := cmd.Flags().GetString("target")
	if err != nil {
		return fmt.Errorf("failed to get target flag: %w", err)
	}
	declared, err := cmd.Flags().GetBool("declared")
	if err != nil {
		return fmt.Errorf("failed to get declared flag: %w", err)
	}
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}

	src := strings.Join(args, " ")
	if src == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		src = strings.TrimSpace(string(data))
	}

	if all {
		return legalizeAll(cmd, src, declared)
	}

	conv, err := isa.Lookup(target)
	if err != nil {
		return err
	}

	cmd.SilenceUsage = true
	in := types.NewInterner()
	s, err := sigtext.Parse(src, conv, in)
	if err != nil {
		return reportParseError(cmd, err)
	}
	out, err := abi.Legalize(conv, in, s, abi.Options{Declared: declared})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), sig.Text(out, in, conv))
	return nil
}

// legalizeAll prints one line per convention. Per-target failures go on
// that target's line; a signature can be legal on one target and not
// another.
func legalizeAll(cmd *cobra.Command, src string, declared bool) error {
	cmd.SilenceUsage = true
	names := isa.Names()
	width := len(lo.MaxBy(names, func(a, b string) bool { return len(a) > len(b) }))

	for _, name := range names {
		conv, err := isa.Lookup(name)
		if err != nil {
			return err
		}
		in := types.NewInterner()
		var line string
		s, err := sigtext.Parse(src, conv, in)
		if err == nil {
			var out *sig.Signature
			if out, err = abi.Legalize(conv, in, s, abi.Options{Declared: declared}); err == nil {
				line = sig.Text(out, in, conv)
			}
		}
		if err != nil {
			line = "error: " + err.Error()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-*s  %s\n", width, name, line)
	}
	return nil
}

// reportParseError renders the offending line with a caret underline and
// suppresses cobra's own reporting.
func reportParseError(cmd *cobra.Command, err error) error {
	var pe *sigtext.ParseError
	if !errors.As(err, &pe) {
		return err
	}
	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "error: %s\n", pe.Msg)
	pe.Render(stderr, useColor(cmd, os.Stderr))
	cmd.SilenceErrors = true
	return fmt.Errorf("") // silent, the caret is the report
}
