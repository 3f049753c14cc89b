package ast

import (
	"strconv"
	"strings"
)

// String renders the node as C++ source text.
func (c *Context) String(id NodeID) string {
	n := c.Node(id)
	if n == nil {
		return ""
	}

	switch n := n.(type) {
	case *Name:
		return n.Text
	case *NestedName:
		return c.String(n.Scope) + "::" + c.String(n.Name)
	case *Template:
		return c.String(n.Name) + "<" + c.joinList(n.Args) + ">"
	case *Function:
		return c.functionString(n)
	case *FunctionType:
		return joinNonEmpty(c.left(id), c.right(id))
	}

	return c.left(id) + c.right(id)
}

func (c *Context) functionString(n *Function) string {
	ft, ok := c.Node(n.Type).(*FunctionType)
	if !ok {
		return c.String(n.Name)
	}

	var result strings.Builder
	if ft.Return.Valid() {
		result.WriteString(c.left(ft.Return))
		result.WriteString(" ")
	}
	if ft.CallConv != CallConvUnspecified {
		result.WriteString(ft.CallConv.String())
		result.WriteString(" ")
	}
	result.WriteString(c.String(n.Name))
	result.WriteString(c.paramsString(ft))
	if ft.Return.Valid() {
		result.WriteString(c.right(ft.Return))
	}
	return result.String()
}

func (c *Context) paramsString(ft *FunctionType) string {
	s := "(" + c.joinList(ft.Params) + ")"
	if !ft.Quals.IsEmpty() {
		s += " " + ft.Quals.String()
	}
	return s
}

func (c *Context) joinList(l NodeList) string {
	parts := make([]string, 0, len(l))
	for _, id := range l {
		parts = append(parts, c.String(id))
	}
	return strings.Join(parts, ", ")
}

// left renders the part of a type that precedes a declarator name.
func (c *Context) left(id NodeID) string {
	switch n := c.Node(id).(type) {
	case *FunctionType:
		return joinNonEmpty(c.returnString(n), n.CallConv.String())
	case *PointerType:
		return c.indirectionLeft(n.Pointee, "*", n.Quals)
	case *ReferenceType:
		return c.indirectionLeft(n.Referent, "&", Qualifiers{})
	case *RValueReferenceType:
		return c.indirectionLeft(n.Referent, "&&", Qualifiers{})
	case *ArrayType:
		return withQuals(n.Quals, c.left(n.Element))
	case *NamedType:
		return withQuals(n.Quals, c.String(n.Name))
	case *BuiltInType:
		return withQuals(n.Quals, n.Type.String())
	case *CharType:
		return withQuals(n.Quals, charName(n.Signedness))
	case *IntegralType:
		name := n.Type.String()
		if n.Unsigned {
			name = "unsigned " + name
		}
		return withQuals(n.Quals, name)
	case *FloatType:
		return withQuals(n.Quals, n.Type.String())
	case nil:
		return ""
	default:
		return c.String(id)
	}
}

// right renders the part of a type that follows a declarator name.
func (c *Context) right(id NodeID) string {
	switch n := c.Node(id).(type) {
	case *FunctionType:
		return c.paramsString(n)
	case *PointerType:
		return c.indirectionRight(n.Pointee)
	case *ReferenceType:
		return c.indirectionRight(n.Referent)
	case *RValueReferenceType:
		return c.indirectionRight(n.Referent)
	case *ArrayType:
		return "[" + strconv.FormatUint(n.Length, 10) + "]" + c.right(n.Element)
	default:
		return ""
	}
}

func (c *Context) returnString(ft *FunctionType) string {
	if !ft.Return.Valid() {
		return ""
	}
	return c.String(ft.Return)
}

func (c *Context) indirectionLeft(inner NodeID, sym string, quals Qualifiers) string {
	if !quals.IsEmpty() {
		sym += " " + quals.String()
	}

	switch n := c.Node(inner).(type) {
	case *FunctionType:
		declarator := joinNonEmpty(n.CallConv.String(), sym)
		return joinNonEmpty(c.returnString(n), "("+declarator)
	case *ArrayType:
		return c.left(inner) + " (" + sym
	default:
		l := c.left(inner)
		if strings.HasSuffix(l, "*") || strings.HasSuffix(l, "&") {
			return l + sym
		}
		return l + " " + sym
	}
}

func (c *Context) indirectionRight(inner NodeID) string {
	switch c.Kind(inner) {
	case KindFunctionType, KindArrayType:
		return ")" + c.right(inner)
	default:
		return c.right(inner)
	}
}

func charName(s Signedness) string {
	switch s {
	case SignednessSigned:
		return "signed char"
	case SignednessUnsigned:
		return "unsigned char"
	default:
		return "char"
	}
}

func withQuals(q Qualifiers, s string) string {
	if q.IsEmpty() {
		return s
	}
	return q.String() + " " + s
}

func joinNonEmpty(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
