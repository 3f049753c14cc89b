package demangle

import (
	"github.com/skdltmxn/bcc-demangle/ast"
	"github.com/skdltmxn/bcc-demangle/internal/cursor"
)

// <type> ::= <qualifiers> ( p <type> | r <reference> | h <reference>
//                         | a <array> | q <func-type> | <number> <name>
//                         | <builtin> )
func (p *parser) parseType(c cursor.Cursor) (ast.NodeID, cursor.Cursor, error) {
	quals, c := parseQualifiers(c)

	switch c.Peek() {
	case 'p':
		c, _ = c.ConsumeByte('p')
		return p.parsePointer(c, quals)
	case 'r':
		if !quals.IsEmpty() {
			return ast.NoNode, c, p.fail(c, "reference", "qualified reference")
		}
		c, _ = c.ConsumeByte('r')
		return p.parseReference(c)
	case 'h':
		if !quals.IsEmpty() {
			return ast.NoNode, c, p.fail(c, "rvalue-reference", "qualified rvalue reference")
		}
		c, _ = c.ConsumeByte('h')
		return p.parseRValueReference(c)
	case 'a':
		c, _ = c.ConsumeByte('a')
		return p.parseArray(c, quals)
	case 'q':
		return p.parseFuncType(c, quals)
	}

	if cursor.IsDigit(c.Peek()) {
		length, c, err := p.parseNumber(c, "named-type")
		if err != nil {
			return ast.NoNode, c, err
		}
		return p.parseNamedType(c, length, quals)
	}

	return p.parseBuiltIn(c, quals)
}

func (p *parser) parsePointer(c cursor.Cursor, quals ast.Qualifiers) (ast.NodeID, cursor.Cursor, error) {
	pointee, c, err := p.parseType(c)
	if err != nil {
		return ast.NoNode, c, err
	}
	return p.ctx.NewPointer(pointee, quals), c, nil
}

// <reference> ::= $ <func-type> | <type>
func (p *parser) parseReference(c cursor.Cursor) (ast.NodeID, cursor.Cursor, error) {
	if next, ok := c.ConsumeByte('$'); ok {
		funcType, c, err := p.parseFuncType(next, ast.Qualifiers{})
		if err != nil {
			return ast.NoNode, c, err
		}
		return p.ctx.NewReference(funcType), c, nil
	}

	start := c
	referent, c, err := p.parseType(c)
	if err != nil {
		return ast.NoNode, c, err
	}
	if p.ctx.Kind(referent).IsReference() {
		return ast.NoNode, c, p.fail(start, "reference", "reference to reference")
	}
	return p.ctx.NewReference(referent), c, nil
}

// An rvalue reference may wrap another rvalue reference but not an
// lvalue reference.
func (p *parser) parseRValueReference(c cursor.Cursor) (ast.NodeID, cursor.Cursor, error) {
	if next, ok := c.ConsumeByte('$'); ok {
		funcType, c, err := p.parseFuncType(next, ast.Qualifiers{})
		if err != nil {
			return ast.NoNode, c, err
		}
		return p.ctx.NewRValueReference(funcType), c, nil
	}

	start := c
	referent, c, err := p.parseType(c)
	if err != nil {
		return ast.NoNode, c, err
	}
	if p.ctx.Kind(referent) == ast.KindReferenceType {
		return ast.NoNode, c, p.fail(start, "rvalue-reference", "rvalue reference to reference")
	}
	return p.ctx.NewRValueReference(referent), c, nil
}

// <array> ::= <number> $ <type>
func (p *parser) parseArray(c cursor.Cursor, quals ast.Qualifiers) (ast.NodeID, cursor.Cursor, error) {
	length, c, err := p.parseNumber(c, "array")
	if err != nil {
		return ast.NoNode, c, err
	}

	c, ok := c.ConsumeByte('$')
	if !ok {
		return ast.NoNode, c, p.fail(c, "array", "expected '$' after array length")
	}

	elem, c, err := p.parseType(c)
	if err != nil {
		return ast.NoNode, c, err
	}
	return p.ctx.NewArray(elem, length, quals), c, nil
}

// parseNamedType parses a name of exactly length bytes.
func (p *parser) parseNamedType(c cursor.Cursor, length uint64, quals ast.Qualifiers) (ast.NodeID, cursor.Cursor, error) {
	end, ok := c.Bound(length)
	if !ok {
		return ast.NoNode, c, p.fail(c, "named-type", "name length %d exceeds remaining %d bytes",
			length, c.Remaining())
	}

	name, c, err := p.parseName(c, end)
	if err != nil {
		return ast.NoNode, c, err
	}
	return p.ctx.NewNamedType(name, quals), c, nil
}

var builtInCodes = map[byte]ast.Builtin{
	'o': ast.BuiltinBool,
	'b': ast.BuiltinWChar,
	'v': ast.BuiltinVoid,
}

var integralCodes = map[byte]ast.Integral{
	's': ast.IntegralShort,
	'i': ast.IntegralInt,
	'l': ast.IntegralLong,
	'j': ast.IntegralLongLong,
}

var floatCodes = map[byte]ast.Float{
	'f': ast.FloatFloat,
	'd': ast.FloatDouble,
	'g': ast.FloatLongDouble,
}

// <builtin> ::= o | b | v | zc | uc | c | [u] (s | i | l | j) | f | d | g
func (p *parser) parseBuiltIn(c cursor.Cursor, quals ast.Qualifiers) (ast.NodeID, cursor.Cursor, error) {
	if c.Empty() {
		return ast.NoNode, c, p.fail(c, "type", "unexpected end of input")
	}

	if b, ok := builtInCodes[c.Peek()]; ok {
		_, c = c.Pop()
		return p.ctx.NewBuiltIn(b, quals), c, nil
	}

	// char is the only type with an explicit signed form
	if next, ok := c.ConsumePrefix("zc"); ok {
		return p.ctx.NewChar(ast.SignednessSigned, quals), next, nil
	}
	if next, ok := c.ConsumePrefix("uc"); ok {
		return p.ctx.NewChar(ast.SignednessUnsigned, quals), next, nil
	}
	if next, ok := c.ConsumeByte('c'); ok {
		return p.ctx.NewChar(ast.SignednessUnspecified, quals), next, nil
	}

	next, unsigned := c.ConsumeByte('u')
	if i, ok := integralCodes[next.Peek()]; ok {
		_, next = next.Pop()
		return p.ctx.NewIntegral(i, unsigned, quals), next, nil
	}
	if unsigned {
		return ast.NoNode, next, p.fail(next, "type", "'u' not followed by an integral type")
	}

	if f, ok := floatCodes[c.Peek()]; ok {
		_, c = c.Pop()
		return p.ctx.NewFloat(f, quals), c, nil
	}

	return ast.NoNode, c, p.fail(c, "type", "unknown type code %q", c.Peek())
}
