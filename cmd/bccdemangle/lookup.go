package main

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/hbollon/go-edlib"
	"github.com/spf13/cobra"

	"github.com/skdltmxn/bcc-demangle/mapfile"
)

var (
	lookupFuzzy     bool
	lookupThreshold float32
	lookupLimit     int
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <map-file> <query>",
	Short: "Look up symbols by name or address",
	Long: `Look up symbols in a map file.

Query can be:
  - Symbol name: lookup app.map @Sysutils@IntToStr$qqri
  - Demangled name fragment: lookup app.map IntToStr
  - Address: lookup app.map 0001:00000254

With --fuzzy, demangled names are ranked by Jaro-Winkler similarity.`,
	Args: cobra.ExactArgs(2),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().BoolVarP(&lookupFuzzy, "fuzzy", "z", false, "rank demangled names by similarity")
	lookupCmd.Flags().Float32VarP(&lookupThreshold, "threshold", "t", 0.8, "minimum similarity for --fuzzy")
	lookupCmd.Flags().IntVarP(&lookupLimit, "limit", "n", 10, "maximum results for --fuzzy (0 = unlimited)")
}

func runLookup(cmd *cobra.Command, args []string) error {
	mapPath := args[0]
	query := args[1]

	f, err := mapfile.Open(mapPath)
	if err != nil {
		return fmt.Errorf("failed to open map file: %w", err)
	}

	if addr, err := mapfile.ParseAddress(query); err == nil {
		return lookupAddress(f, addr)
	}
	if lookupFuzzy {
		return lookupFuzzyName(f, query)
	}
	return lookupName(f, query)
}

func lookupName(f *mapfile.File, name string) error {
	found := 0
	for sym := range f.ByName(name) {
		printSymbolDetail(sym)
		found++
	}

	// Also search by demangled name if no exact match
	if found == 0 {
		for sym := range f.Symbols() {
			if strings.Contains(sym.DemangledName(), name) || strings.Contains(sym.Name(), name) {
				printSymbolDetail(sym)
				found++
			}
		}
	}

	if found == 0 {
		fmt.Fprintf(output, "No symbols found matching '%s'\n", name)
	} else {
		fmt.Fprintf(output, "Found %d symbol(s)\n", found)
	}
	return nil
}

func lookupAddress(f *mapfile.File, addr mapfile.Address) error {
	found := 0
	for sym := range f.ByAddress(addr) {
		printSymbolDetail(sym)
		found++
	}

	if found == 0 {
		fmt.Fprintf(output, "No symbols found at address %s\n", addr)
	}
	return nil
}

type fuzzyMatch struct {
	sym   *mapfile.Symbol
	score float32
}

func lookupFuzzyName(f *mapfile.File, query string) error {
	var matches []fuzzyMatch
	for sym := range f.Symbols() {
		score, err := edlib.StringsSimilarity(query, sym.DemangledName(), edlib.JaroWinkler)
		if err != nil {
			return fmt.Errorf("similarity: %w", err)
		}
		if score >= lookupThreshold {
			matches = append(matches, fuzzyMatch{sym: sym, score: score})
		}
	}

	slices.SortStableFunc(matches, func(a, b fuzzyMatch) int {
		return cmp.Compare(b.score, a.score)
	})
	if lookupLimit > 0 && len(matches) > lookupLimit {
		matches = matches[:lookupLimit]
	}

	for _, m := range matches {
		fmt.Fprintf(output, "Score: %.3f\n", m.score)
		printSymbolDetail(m.sym)
	}
	if len(matches) == 0 {
		fmt.Fprintf(output, "No symbols similar to '%s'\n", query)
	}
	return nil
}

func printSymbolDetail(sym *mapfile.Symbol) {
	fmt.Fprintf(output, "Symbol:\n")
	fmt.Fprintf(output, "  Name: %s\n", sym.Name())
	fmt.Fprintf(output, "  Demangled: %s\n", sym.DemangledName())
	if addr, ok := sym.Address(); ok {
		fmt.Fprintf(output, "  Address: %s\n", addr)
	}
	if err := sym.DemangleErr(); err != nil {
		fmt.Fprintf(output, "  Error: %v\n", err)
	}
	fmt.Fprintln(output)
}
