package ast

import (
	"bytes"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Context stores AST nodes and hands out NodeIDs for them. Type nodes
// are interned by default, so two requests for the same type return the
// same NodeID. Names, templates and functions are always stored anew.
//
// A Context is not safe for concurrent use. It may be shared by any
// number of sequential parses; concurrent callers need one Context each.
type Context struct {
	nodes     []Node
	interning bool
	interned  map[uint64][]NodeID
	scratch   []byte
}

// Option configures a Context.
type Option func(*Context)

// WithInterning enables or disables interning of type nodes.
func WithInterning(enabled bool) Option {
	return func(c *Context) {
		c.interning = enabled
	}
}

// NewContext creates an empty Context.
func NewContext(opts ...Option) *Context {
	c := &Context{
		nodes:     []Node{nil}, // slot 0 is NoNode
		interning: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.interning {
		c.interned = make(map[uint64][]NodeID)
	}
	return c
}

// Len returns the number of stored nodes.
func (c *Context) Len() int { return len(c.nodes) - 1 }

// Node returns the node for id, or nil if id is NoNode or unknown.
func (c *Context) Node(id NodeID) Node {
	if id == NoNode || int(id) >= len(c.nodes) {
		return nil
	}
	return c.nodes[id]
}

// Kind returns the kind of the node for id.
func (c *Context) Kind(id NodeID) Kind {
	n := c.Node(id)
	if n == nil {
		return KindUnknown
	}
	return n.Kind()
}

func (c *Context) add(n Node) NodeID {
	c.nodes = append(c.nodes, n)
	return NodeID(len(c.nodes) - 1)
}

func (c *Context) intern(n Node) NodeID {
	if !c.interning {
		return c.add(n)
	}

	c.scratch = encodeNode(c.scratch[:0], n)
	digest := xxhash.Sum64(c.scratch)
	key := append([]byte(nil), c.scratch...)

	for _, id := range c.interned[digest] {
		c.scratch = encodeNode(c.scratch[:0], c.nodes[id])
		if bytes.Equal(c.scratch, key) {
			return id
		}
	}

	id := c.add(n)
	c.interned[digest] = append(c.interned[digest], id)
	return id
}

// encodeNode appends a canonical encoding of a type node. Child nodes
// are encoded by handle, so equal encodings mean equal nodes only when
// the children were themselves interned.
func encodeNode(buf []byte, n Node) []byte {
	buf = binary.AppendUvarint(buf, uint64(n.Kind()))
	switch n := n.(type) {
	case *FunctionType:
		buf = binary.AppendUvarint(buf, uint64(n.CallConv))
		buf = appendQuals(buf, n.Quals)
		buf = binary.AppendUvarint(buf, uint64(n.Return))
		if n.Params == nil {
			buf = append(buf, 0)
		} else {
			buf = append(buf, 1)
			buf = binary.AppendUvarint(buf, uint64(len(n.Params)))
			for _, p := range n.Params {
				buf = binary.AppendUvarint(buf, uint64(p))
			}
		}
	case *PointerType:
		buf = binary.AppendUvarint(buf, uint64(n.Pointee))
		buf = appendQuals(buf, n.Quals)
	case *ReferenceType:
		buf = binary.AppendUvarint(buf, uint64(n.Referent))
	case *RValueReferenceType:
		buf = binary.AppendUvarint(buf, uint64(n.Referent))
	case *ArrayType:
		buf = binary.AppendUvarint(buf, uint64(n.Element))
		buf = binary.AppendUvarint(buf, n.Length)
		buf = appendQuals(buf, n.Quals)
	case *NamedType:
		buf = binary.AppendUvarint(buf, uint64(n.Name))
		buf = appendQuals(buf, n.Quals)
	case *BuiltInType:
		buf = binary.AppendUvarint(buf, uint64(n.Type))
		buf = appendQuals(buf, n.Quals)
	case *CharType:
		buf = binary.AppendUvarint(buf, uint64(n.Signedness))
		buf = appendQuals(buf, n.Quals)
	case *IntegralType:
		buf = binary.AppendUvarint(buf, uint64(n.Type))
		buf = appendBool(buf, n.Unsigned)
		buf = appendQuals(buf, n.Quals)
	case *FloatType:
		buf = binary.AppendUvarint(buf, uint64(n.Type))
		buf = appendQuals(buf, n.Quals)
	}
	return buf
}

func appendQuals(buf []byte, q Qualifiers) []byte {
	buf = appendBool(buf, q.Const)
	return appendBool(buf, q.Volatile)
}

func appendBool(buf []byte, v bool) []byte {
	if v {
		return append(buf, 1)
	}
	return append(buf, 0)
}

// NewName creates a Name node.
func (c *Context) NewName(text string) NodeID {
	return c.add(&Name{Text: text})
}

// NewNestedName creates a Scope::Name node.
func (c *Context) NewNestedName(scope, name NodeID) NodeID {
	return c.add(&NestedName{Scope: scope, Name: name})
}

// NewTemplate creates a Template node. The argument list is copied.
func (c *Context) NewTemplate(name NodeID, args NodeList) NodeID {
	return c.add(&Template{Name: name, Args: cloneList(args)})
}

// NewFunction creates a Function node.
func (c *Context) NewFunction(name, typ NodeID) NodeID {
	return c.add(&Function{Name: name, Type: typ})
}

// NewFunctionType creates a FunctionType node. A nil params records an
// absent parameter list. The list is copied.
func (c *Context) NewFunctionType(cc CallingConvention, params NodeList, ret NodeID, quals Qualifiers) NodeID {
	return c.intern(&FunctionType{
		CallConv: cc,
		Params:   cloneList(params),
		Return:   ret,
		Quals:    quals,
	})
}

// NewPointer creates a PointerType node.
func (c *Context) NewPointer(pointee NodeID, quals Qualifiers) NodeID {
	return c.intern(&PointerType{Pointee: pointee, Quals: quals})
}

// NewReference creates a ReferenceType node.
func (c *Context) NewReference(referent NodeID) NodeID {
	return c.intern(&ReferenceType{Referent: referent})
}

// NewRValueReference creates an RValueReferenceType node.
func (c *Context) NewRValueReference(referent NodeID) NodeID {
	return c.intern(&RValueReferenceType{Referent: referent})
}

// NewArray creates an ArrayType node.
func (c *Context) NewArray(elem NodeID, length uint64, quals Qualifiers) NodeID {
	return c.intern(&ArrayType{Element: elem, Length: length, Quals: quals})
}

// NewNamedType creates a NamedType node.
func (c *Context) NewNamedType(name NodeID, quals Qualifiers) NodeID {
	return c.intern(&NamedType{Name: name, Quals: quals})
}

// NewBuiltIn creates a BuiltInType node.
func (c *Context) NewBuiltIn(b Builtin, quals Qualifiers) NodeID {
	return c.intern(&BuiltInType{Type: b, Quals: quals})
}

// NewChar creates a CharType node.
func (c *Context) NewChar(s Signedness, quals Qualifiers) NodeID {
	return c.intern(&CharType{Signedness: s, Quals: quals})
}

// NewIntegral creates an IntegralType node.
func (c *Context) NewIntegral(i Integral, unsigned bool, quals Qualifiers) NodeID {
	return c.intern(&IntegralType{Type: i, Unsigned: unsigned, Quals: quals})
}

// NewFloat creates a FloatType node.
func (c *Context) NewFloat(f Float, quals Qualifiers) NodeID {
	return c.intern(&FloatType{Type: f, Quals: quals})
}

func cloneList(l NodeList) NodeList {
	if l == nil {
		return nil
	}
	return append(make(NodeList, 0, len(l)), l...)
}
