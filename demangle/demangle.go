package demangle

import (
	"strings"

	"github.com/skdltmxn/bcc-demangle/ast"
)

// Demangle converts a Borland C++ mangled name to readable form.
// On error, the input is returned unchanged along with the error.
func Demangle(mangled string) (string, error) {
	ctx := ast.NewContext()
	root, err := DemangleToNode(ctx, mangled)
	if err != nil {
		return mangled, err
	}
	return ctx.String(root), nil
}

// DemangleToNode parses a mangled name into ctx and returns the root
// Function node.
func DemangleToNode(ctx *ast.Context, mangled string) (ast.NodeID, error) {
	p := NewParser(ctx, mangled)
	if err := p.Err(); err != nil {
		return ast.NoNode, err
	}
	return p.AST(), nil
}

// DemangleSimple returns the demangled form of name, or name itself if it
// cannot be demangled.
func DemangleSimple(name string) string {
	result, err := Demangle(name)
	if err != nil {
		return name
	}
	return result
}

// IsMangled returns true if the name looks like a Borland mangled
// function name.
func IsMangled(name string) bool {
	return len(name) > 1 && name[0] == '@' && strings.IndexByte(name[1:], '$') >= 0
}
