package main

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/skdltmxn/bcc-demangle/internal/batch"
	"github.com/skdltmxn/bcc-demangle/mapfile"
)

var (
	batchWorkers     int
	batchMangledOnly bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <pattern>...",
	Short: "Demangle every symbol in map files matching patterns",
	Long: `Demangle the public symbols of every map file or symbol list matching
the given patterns. Patterns may use ** to match any number of directories.

Each symbol is printed as the mangled name, a tab and the demangled name.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "number of worker goroutines (0 = number of CPUs)")
	batchCmd.Flags().BoolVarP(&batchMangledOnly, "mangled-only", "m", false, "skip names that are not mangled")
}

func runBatch(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("workers") {
		batchWorkers = cfg.Workers
	}

	paths, err := expandPatterns(args)
	if err != nil {
		return err
	}

	var names []string
	for _, path := range paths {
		f, err := mapfile.Open(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		logger.Debug("read symbols", "path", path, "count", f.Len())

		for sym := range f.Symbols() {
			if batchMangledOnly && !sym.IsMangled() {
				continue
			}
			names = append(names, sym.Name())
		}
	}

	results, err := batch.Run(cmd.Context(), names, batch.Options{
		Workers:          batchWorkers,
		DisableInterning: !cfg.Interning,
	})
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
		fmt.Fprintf(output, "%s\t%s\n", r.Mangled, r.Demangled)
	}
	logger.Info("batch done", "files", len(paths), "symbols", len(results), "failed", failed)
	return nil
}

func expandPatterns(patterns []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			logger.Warn("pattern matched no files", "pattern", pattern)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no files match %v", patterns)
	}
	return paths, nil
}
