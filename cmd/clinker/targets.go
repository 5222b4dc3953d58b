package main

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"clinker/internal/isa"
	"clinker/internal/sig"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List registered target conventions",
	RunE:  runTargets,
}

func runTargets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	names := isa.Names()
	width := len(lo.MaxBy(names, func(a, b string) bool { return len(a) > len(b) }))

	for _, name := range names {
		conv, err := isa.Lookup(name)
		if err != nil {
			return err
		}
		link := "none"
		if conv.HasLink {
			link = "%" + conv.RegName(sig.BankInt, conv.Link)
		}
		fmt.Fprintf(out, "%-*s  %2d-bit  int %s  float %s  link %s\n",
			width, name, conv.WordBits,
			argRegList(conv, sig.BankInt, conv.Int.Args),
			argRegList(conv, sig.BankFloat, conv.Float.Args),
			link)
	}
	return nil
}

func argRegList(conv *isa.Convention, bank sig.RegBank, args []uint16) string {
	if len(args) == 0 {
		return "none"
	}
	names := lo.Map(args, func(u uint16, _ int) string { return conv.RegName(bank, u) })
	return strings.Join(names, ",")
}
