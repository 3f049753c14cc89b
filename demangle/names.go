package demangle

import (
	"github.com/skdltmxn/bcc-demangle/ast"
	"github.com/skdltmxn/bcc-demangle/internal/cursor"
)

// <func-name> ::= <segment> { @ <segment> } [ % <template> ]
//
// The name runs up to the first '$' or '%'. Empty segments are skipped.
func (p *parser) parseFuncName(c cursor.Cursor) (ast.NodeID, cursor.Cursor, error) {
	name := ast.NoNode
	start := c
	for {
		switch c.Peek() {
		case '@', '$', '%':
			if seg := start.Slice(c); seg != "" {
				name = p.appendName(name, seg)
			}
		case cursor.EOF:
			return ast.NoNode, c, p.fail(c, "func-name", "unterminated function name")
		default:
			_, c = c.Pop()
			continue
		}

		if next, ok := c.ConsumeByte('@'); ok {
			c, start = next, next
			continue
		}
		break
	}

	if c.HasPrefix('%') {
		return p.parseTemplate(c, name)
	}
	if !name.Valid() {
		return ast.NoNode, c, p.fail(c, "func-name", "empty function name")
	}
	return name, c, nil
}

// parseName parses a name that ends exactly at end. A '%' before end
// starts a template that must close exactly at end.
func (p *parser) parseName(c, end cursor.Cursor) (ast.NodeID, cursor.Cursor, error) {
	name := ast.NoNode
	start := c
	for c.Before(end) {
		switch c.Peek() {
		case '@':
			if seg := start.Slice(c); seg != "" {
				name = p.appendName(name, seg)
			}
			c, _ = c.ConsumeByte('@')
			start = c
			continue
		case '%':
			if seg := start.Slice(c); seg != "" {
				name = p.appendName(name, seg)
			}
			return p.parseBoundedTemplate(c, name, end)
		}
		_, c = c.Pop()
	}

	if seg := start.Slice(c); seg != "" {
		name = p.appendName(name, seg)
	}
	if !name.Valid() {
		return ast.NoNode, c, p.fail(c, "name", "empty name")
	}
	return name, c, nil
}

// appendName nests a new name segment under scope, if any.
func (p *parser) appendName(scope ast.NodeID, text string) ast.NodeID {
	name := p.ctx.NewName(text)
	if !scope.Valid() {
		return name
	}
	return p.ctx.NewNestedName(scope, name)
}

// <template> ::= % <template-name> $ { <backref> | <type> } %
func (p *parser) parseTemplate(c cursor.Cursor, scope ast.NodeID) (ast.NodeID, cursor.Cursor, error) {
	c, ok := c.ConsumeByte('%')
	if !ok {
		return ast.NoNode, c, p.fail(c, "template", "expected '%%'")
	}

	text, c := c.CutUntil('$')
	if text == "" {
		return ast.NoNode, c, p.fail(c, "template", "missing template name")
	}
	name := p.appendName(scope, text)

	c, ok = c.ConsumeByte('$')
	if !ok {
		return ast.NoNode, c, p.fail(c, "template", "expected '$' after template name")
	}

	var args ast.NodeList
	for !c.HasPrefix('%') {
		if c.Empty() {
			return ast.NoNode, c, p.fail(c, "template", "unterminated template argument list")
		}
		arg, next, err := p.parseListEntry(c, args)
		if err != nil {
			return ast.NoNode, next, err
		}
		args = append(args, arg)
		c = next
	}
	c, _ = c.ConsumeByte('%')

	return p.ctx.NewTemplate(name, args), c, nil
}

// parseBoundedTemplate parses a template whose closing '%' must be the
// last byte before end.
func (p *parser) parseBoundedTemplate(c cursor.Cursor, scope ast.NodeID, end cursor.Cursor) (ast.NodeID, cursor.Cursor, error) {
	tmpl, c, err := p.parseTemplate(c, scope)
	if err != nil {
		return ast.NoNode, c, err
	}
	if !c.At(end) {
		return ast.NoNode, c, p.fail(c, "template", "template ends at offset %d, declared name ends at %d",
			c.Offset(), end.Offset())
	}
	return tmpl, c, nil
}
