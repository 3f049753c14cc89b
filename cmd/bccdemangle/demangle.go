package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skdltmxn/bcc-demangle/ast"
	"github.com/skdltmxn/bcc-demangle/demangle"
)

var (
	demangleStrict bool
)

var demangleCmd = &cobra.Command{
	Use:   "demangle [names...]",
	Short: "Demangle symbol names",
	Long: `Demangle Borland C++ symbol names given as arguments, or read one
name per line from stdin when no arguments are given.

Names that cannot be demangled are printed unchanged unless --strict is set.`,
	RunE: runDemangle,
}

func init() {
	demangleCmd.Flags().BoolVarP(&demangleStrict, "strict", "s", false, "fail on the first name that cannot be demangled")
}

func runDemangle(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("strict") {
		demangleStrict = cfg.Strict
	}

	ctx := ast.NewContext(ast.WithInterning(cfg.Interning))

	if len(args) > 0 {
		for _, name := range args {
			if err := demangleLine(ctx, name); err != nil {
				return err
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		if err := demangleLine(ctx, name); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	return nil
}

func demangleLine(ctx *ast.Context, name string) error {
	root, err := demangle.DemangleToNode(ctx, name)
	if err != nil {
		if demangleStrict {
			return err
		}
		logger.Debug("leaving name unchanged", "name", name, "err", err)
		fmt.Fprintln(output, name)
		return nil
	}

	fmt.Fprintln(output, ctx.String(root))
	return nil
}
