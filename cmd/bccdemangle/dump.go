package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/skdltmxn/bcc-demangle/ast"
	"github.com/skdltmxn/bcc-demangle/demangle"
)

var (
	dumpFormat string
)

var dumpCmd = &cobra.Command{
	Use:   "dump <name>",
	Short: "Dump the declaration tree of a mangled name",
	Long: `Parse a mangled name and print its declaration tree.

Formats:
  text  indented tree (default)
  json  nested objects
  yaml  nested mappings`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "f", "text", "output format (text, json, yaml)")
}

func runDump(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("format") {
		dumpFormat = cfg.Format
	}
	if err := checkFormat(dumpFormat); err != nil {
		return err
	}

	ctx := ast.NewContext(ast.WithInterning(cfg.Interning))
	root, err := demangle.DemangleToNode(ctx, args[0])
	if err != nil {
		return err
	}
	logger.Debug("parsed", "name", args[0], "nodes", ctx.Len())

	tree := ctx.Export(root)
	switch dumpFormat {
	case "json":
		enc := json.NewEncoder(output)
		enc.SetIndent("", "  ")
		return enc.Encode(tree)
	case "yaml":
		enc := yaml.NewEncoder(output)
		enc.SetIndent(2)
		if err := enc.Encode(tree); err != nil {
			return err
		}
		return enc.Close()
	default:
		fmt.Fprintf(output, "%s\n", ctx.String(root))
		writeTree(output, tree, 0)
		return nil
	}
}

func writeTree(w io.Writer, t *ast.Tree, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s", indent, t.Kind)
	if t.Text != "" {
		fmt.Fprintf(w, " %q", t.Text)
	}
	for _, k := range slices.Sorted(maps.Keys(t.Attrs)) {
		fmt.Fprintf(w, " %s=%s", k, t.Attrs[k])
	}
	fmt.Fprintln(w)

	for _, child := range t.Children {
		writeTree(w, child, depth+1)
	}
}
