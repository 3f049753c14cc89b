package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skdltmxn/bcc-demangle/mapfile"
)

var infoCmd = &cobra.Command{
	Use:   "info <map-file>",
	Short: "Display map file statistics",
	Long:  `Display the number of symbols in a map file and how many of them demangle.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	mapPath := args[0]

	f, err := mapfile.Open(mapPath)
	if err != nil {
		return fmt.Errorf("failed to open map file: %w", err)
	}

	var mangled, ok, failed, addressed int
	for sym := range f.Symbols() {
		if _, has := sym.Address(); has {
			addressed++
		}
		if !sym.IsMangled() {
			continue
		}
		mangled++
		if sym.DemangleErr() != nil {
			failed++
		} else {
			ok++
		}
	}

	fmt.Fprintf(output, "Map File: %s\n", mapPath)
	fmt.Fprintf(output, "Symbols: %d\n", f.Len())
	fmt.Fprintf(output, "With Address: %d\n", addressed)
	fmt.Fprintf(output, "Mangled: %d\n", mangled)
	fmt.Fprintf(output, "Demangled: %d\n", ok)
	fmt.Fprintf(output, "Failed: %d\n", failed)
	return nil
}
