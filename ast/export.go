package ast

import "strconv"

// Tree is a handle-free copy of a subtree, suitable for serialization
// and for comparing trees built in different Contexts.
type Tree struct {
	Kind     string            `json:"kind" yaml:"kind"`
	Text     string            `json:"text,omitempty" yaml:"text,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Children []*Tree           `json:"children,omitempty" yaml:"children,omitempty"`
}

// Export copies the subtree rooted at id. Shared subtrees, such as
// back-referenced parameters, are copied at every occurrence.
func (c *Context) Export(id NodeID) *Tree {
	n := c.Node(id)
	if n == nil {
		return nil
	}

	t := &Tree{Kind: n.Kind().String()}
	switch n := n.(type) {
	case *Name:
		t.Text = n.Text
	case *NestedName:
		t.add(c.Export(n.Scope), c.Export(n.Name))
	case *Template:
		t.add(c.Export(n.Name))
		t.add(c.exportList(n.Args)...)
	case *Function:
		t.add(c.Export(n.Name), c.Export(n.Type))
	case *FunctionType:
		t.attr("callconv", n.CallConv.String())
		t.quals(n.Quals)
		if n.Params == nil {
			t.attr("params", "absent")
		} else {
			t.attr("params", strconv.Itoa(len(n.Params)))
		}
		t.add(c.exportList(n.Params)...)
		if n.Return.Valid() {
			t.attr("return", "true")
			t.add(c.Export(n.Return))
		}
	case *PointerType:
		t.quals(n.Quals)
		t.add(c.Export(n.Pointee))
	case *ReferenceType:
		t.add(c.Export(n.Referent))
	case *RValueReferenceType:
		t.add(c.Export(n.Referent))
	case *ArrayType:
		t.attr("length", strconv.FormatUint(n.Length, 10))
		t.quals(n.Quals)
		t.add(c.Export(n.Element))
	case *NamedType:
		t.quals(n.Quals)
		t.add(c.Export(n.Name))
	case *BuiltInType:
		t.Text = n.Type.String()
		t.quals(n.Quals)
	case *CharType:
		t.Text = charName(n.Signedness)
		t.quals(n.Quals)
	case *IntegralType:
		t.Text = n.Type.String()
		if n.Unsigned {
			t.attr("unsigned", "true")
		}
		t.quals(n.Quals)
	case *FloatType:
		t.Text = n.Type.String()
		t.quals(n.Quals)
	}
	return t
}

func (c *Context) exportList(l NodeList) []*Tree {
	out := make([]*Tree, 0, len(l))
	for _, id := range l {
		out = append(out, c.Export(id))
	}
	return out
}

func (t *Tree) add(children ...*Tree) {
	t.Children = append(t.Children, children...)
}

func (t *Tree) attr(key, value string) {
	if value == "" {
		return
	}
	if t.Attrs == nil {
		t.Attrs = make(map[string]string)
	}
	t.Attrs[key] = value
}

func (t *Tree) quals(q Qualifiers) {
	if q.Const {
		t.attr("const", "true")
	}
	if q.Volatile {
		t.attr("volatile", "true")
	}
}
