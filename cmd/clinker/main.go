package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"clinker/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "clinker",
	Short: "Calling-convention legalizer for function signatures",
	Long:  `clinker assigns registers and stack slots to abstract function signatures under a target calling convention`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(legalizeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(targetsCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the color mode against the stream the output is headed
// for: the persistent --color flag when given explicitly, otherwise the
// manifest's [output].color entry, otherwise auto.
func useColor(cmd *cobra.Command, f *os.File) bool {
	flags := cmd.Root().PersistentFlags()
	mode, err := flags.GetString("color")
	if err != nil {
		return false
	}
	if !flags.Changed("color") {
		if m := manifestColorMode(); m != "" {
			mode = m
		}
	}
	return mode == "on" || (mode == "auto" && isTerminal(f))
}

func showTimings(cmd *cobra.Command) bool {
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	return err == nil && timings
}
