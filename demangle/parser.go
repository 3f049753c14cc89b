// Package demangle parses names mangled by the Borland C++ compiler into
// an AST.
//
// The grammar is a compact recursive descent: every rule receives the
// cursor it starts at and returns the node it built, the cursor after it
// and an error. The first error ends the parse; no node reached during a
// failed parse is exposed.
package demangle

import (
	"fmt"

	"github.com/skdltmxn/bcc-demangle/ast"
	"github.com/skdltmxn/bcc-demangle/internal/cursor"
)

// Status is the outcome of a parse.
type Status int

const (
	StatusInProgress Status = iota
	StatusSuccess
	StatusInvalidMangledName
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in progress"
	case StatusSuccess:
		return "success"
	case StatusInvalidMangledName:
		return "invalid mangled name"
	default:
		return "unknown"
	}
}

// Parser holds the result of parsing one mangled name.
type Parser struct {
	status Status
	root   ast.NodeID
	err    error
}

// NewParser parses mangled into nodes stored in ctx. The parse runs to
// completion before NewParser returns.
func NewParser(ctx *ast.Context, mangled string) *Parser {
	p := &Parser{status: StatusInProgress}

	root, err := (&parser{ctx: ctx}).parse(cursor.New(mangled))
	if err != nil {
		p.status = StatusInvalidMangledName
		p.err = err
		return p
	}

	p.status = StatusSuccess
	p.root = root
	return p
}

// Status returns the final status of the parse.
func (p *Parser) Status() Status { return p.status }

// AST returns the root Function node, or ast.NoNode unless the parse
// succeeded.
func (p *Parser) AST() ast.NodeID {
	if p.status != StatusSuccess {
		return ast.NoNode
	}
	return p.root
}

// Err returns the parse error, or nil on success.
func (p *Parser) Err() error { return p.err }

// ParseType parses s as a single type. All of s must be consumed.
func ParseType(ctx *ast.Context, s string) (ast.NodeID, error) {
	p := &parser{ctx: ctx}
	id, c, err := p.parseType(cursor.New(s))
	if err != nil {
		return ast.NoNode, err
	}
	if !c.Empty() {
		return ast.NoNode, p.fail(c, "type", "unexpected trailing input %q", c.Rest())
	}
	return id, nil
}

// parser holds the state shared by all grammar rules of one parse.
type parser struct {
	ctx *ast.Context
}

func (p *parser) fail(c cursor.Cursor, rule, format string, args ...any) error {
	return &ParseError{
		Input:   c.Input(),
		Offset:  c.Offset(),
		Rule:    rule,
		Message: fmt.Sprintf(format, args...),
	}
}

// <mangled-name> ::= <mangled-function>
func (p *parser) parse(c cursor.Cursor) (ast.NodeID, error) {
	if !c.HasPrefix('@') {
		return ast.NoNode, p.fail(c, "mangled-name", "expected '@'")
	}

	fn, c, err := p.parseFunction(c)
	if err != nil {
		return ast.NoNode, err
	}

	if !c.Empty() {
		return ast.NoNode, p.fail(c, "mangled-name", "unexpected trailing input %q", c.Rest())
	}
	return fn, nil
}

// <mangled-function> ::= @ <func-name> $ <qualifiers> <func-type>
func (p *parser) parseFunction(c cursor.Cursor) (ast.NodeID, cursor.Cursor, error) {
	c, _ = c.ConsumeByte('@')

	name, c, err := p.parseFuncName(c)
	if err != nil {
		return ast.NoNode, c, err
	}

	c, ok := c.ConsumeByte('$')
	if !ok {
		return ast.NoNode, c, p.fail(c, "function", "expected '$' after function name")
	}

	quals, c := parseQualifiers(c)
	funcType, c, err := p.parseFuncType(c, quals)
	if err != nil {
		return ast.NoNode, c, err
	}

	return p.ctx.NewFunction(name, funcType), c, nil
}

// <qualifiers> ::= [w] [x]
//
// Both orders are accepted; each flag at most once.
func parseQualifiers(c cursor.Cursor) (ast.Qualifiers, cursor.Cursor) {
	var quals ast.Qualifiers
	for {
		if next, ok := c.ConsumeByte('w'); ok && !quals.Volatile {
			quals.Volatile = true
			c = next
			continue
		}
		if next, ok := c.ConsumeByte('x'); ok && !quals.Const {
			quals.Const = true
			c = next
			continue
		}
		return quals, c
	}
}

// <call-conv> ::= qqr | qqs | q
func (p *parser) parseCallConv(c cursor.Cursor) (ast.CallingConvention, cursor.Cursor, error) {
	if next, ok := c.ConsumePrefix("qqr"); ok {
		return ast.CallConvFastCall, next, nil
	}
	if next, ok := c.ConsumePrefix("qqs"); ok {
		return ast.CallConvStdCall, next, nil
	}
	// cdecl and pascal share this encoding
	if next, ok := c.ConsumeByte('q'); ok {
		return ast.CallConvUnspecified, next, nil
	}
	return ast.CallConvUnspecified, c, p.fail(c, "call-conv", "expected calling convention")
}

// <func-type> ::= <call-conv> <func-params> [$ <type>]
func (p *parser) parseFuncType(c cursor.Cursor, quals ast.Qualifiers) (ast.NodeID, cursor.Cursor, error) {
	cc, c, err := p.parseCallConv(c)
	if err != nil {
		return ast.NoNode, c, err
	}

	params, c, err := p.parseFuncParams(c)
	if err != nil {
		return ast.NoNode, c, err
	}

	ret := ast.NoNode
	if next, ok := c.ConsumeByte('$'); ok {
		ret, c, err = p.parseType(next)
		if err != nil {
			return ast.NoNode, c, err
		}
	}

	return p.ctx.NewFunctionType(cc, params, ret, quals), c, nil
}

// <func-params> ::= { <backref> | <type> }
//
// The list ends at '$' or at the end of input. An empty list is
// returned as nil.
func (p *parser) parseFuncParams(c cursor.Cursor) (ast.NodeList, cursor.Cursor, error) {
	var params ast.NodeList
	for !c.Empty() && !c.HasPrefix('$') {
		param, next, err := p.parseListEntry(c, params)
		if err != nil {
			return nil, next, err
		}
		params = append(params, param)
		c = next
	}
	return params, c, nil
}

// parseListEntry parses one parameter or template argument. A 't'
// followed by a position already in list reuses that entry; anything
// else, including 't' with an out of range index, is parsed as a type.
func (p *parser) parseListEntry(c cursor.Cursor, list ast.NodeList) (ast.NodeID, cursor.Cursor, error) {
	if next, ok := c.ConsumeByte('t'); ok {
		if id, ok := list.At(next.PeekNumber()); ok {
			_, rest, err := p.parseNumber(next, "backref")
			if err != nil {
				return ast.NoNode, rest, err
			}
			return id, rest, nil
		}
	}
	return p.parseType(c)
}

// parseNumber parses a decimal number without leading zeros.
func (p *parser) parseNumber(c cursor.Cursor, rule string) (uint64, cursor.Cursor, error) {
	switch b := c.Peek(); {
	case b == '0':
		return 0, c, p.fail(c, rule, "number with leading zero")
	case !cursor.IsDigit(b):
		return 0, c, p.fail(c, rule, "expected number")
	}

	var acc uint64
	for cursor.IsDigit(c.Peek()) {
		var b byte
		b, c = c.Pop()
		d := uint64(b - '0')
		if acc > (^uint64(0)-d)/10 {
			return 0, c, p.fail(c, rule, "number overflows")
		}
		acc = acc*10 + d
	}
	return acc, c, nil
}
