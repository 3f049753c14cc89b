// Package ast defines the syntax tree produced by the Borland C++
// demangler and the Context that owns its nodes.
package ast

import "strings"

// Kind identifies the type of AST node.
type Kind int

const (
	KindUnknown Kind = iota
	// Name nodes
	KindName
	KindNestedName
	KindTemplate
	// Symbol nodes
	KindFunction
	// Type nodes
	KindFunctionType
	KindPointerType
	KindReferenceType
	KindRValueReferenceType
	KindArrayType
	KindNamedType
	KindBuiltInType
	KindCharType
	KindIntegralType
	KindFloatType
)

var kindNames = map[Kind]string{
	KindUnknown:             "Unknown",
	KindName:                "Name",
	KindNestedName:          "NestedName",
	KindTemplate:            "Template",
	KindFunction:            "Function",
	KindFunctionType:        "FunctionType",
	KindPointerType:         "PointerType",
	KindReferenceType:       "ReferenceType",
	KindRValueReferenceType: "RValueReferenceType",
	KindArrayType:           "ArrayType",
	KindNamedType:           "NamedType",
	KindBuiltInType:         "BuiltInType",
	KindCharType:            "CharType",
	KindIntegralType:        "IntegralType",
	KindFloatType:           "FloatType",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsReference reports whether k is a reference or rvalue reference kind.
func (k Kind) IsReference() bool {
	return k == KindReferenceType || k == KindRValueReferenceType
}

// NodeID is a handle to a node stored in a Context. The zero value,
// NoNode, refers to no node.
type NodeID uint32

// NoNode is the absent node handle.
const NoNode NodeID = 0

// Valid reports whether id refers to a node.
func (id NodeID) Valid() bool { return id != NoNode }

// NodeList is an ordered list of node handles, as found in parameter and
// template argument lists. Positions are 1-based.
type NodeList []NodeID

// Len returns the number of entries.
func (l NodeList) Len() int { return len(l) }

// At returns the n-th entry, counting from 1.
func (l NodeList) At(n uint64) (NodeID, bool) {
	if n == 0 || n > uint64(len(l)) {
		return NoNode, false
	}
	return l[n-1], true
}

// Node is the interface implemented by all AST nodes. Nodes are
// immutable once stored in a Context.
type Node interface {
	Kind() Kind
}

// Qualifiers represents CV-qualifiers.
type Qualifiers struct {
	Const    bool
	Volatile bool
}

func (q Qualifiers) String() string {
	var parts []string
	if q.Const {
		parts = append(parts, "const")
	}
	if q.Volatile {
		parts = append(parts, "volatile")
	}
	return strings.Join(parts, " ")
}

// IsEmpty reports whether no qualifier is set.
func (q Qualifiers) IsEmpty() bool {
	return !q.Const && !q.Volatile
}

// CallingConvention represents function calling conventions.
type CallingConvention int

const (
	// CallConvUnspecified covers both cdecl and pascal, which share the
	// same encoding.
	CallConvUnspecified CallingConvention = iota
	CallConvFastCall
	CallConvStdCall
)

var callingConvNames = map[CallingConvention]string{
	CallConvUnspecified: "",
	CallConvFastCall:    "__fastcall",
	CallConvStdCall:     "__stdcall",
}

func (c CallingConvention) String() string { return callingConvNames[c] }

// Signedness is the tri-state signedness of a char type.
type Signedness int

const (
	SignednessUnspecified Signedness = iota
	SignednessSigned
	SignednessUnsigned
)

// Builtin identifies the non-numeric built-in types.
type Builtin int

const (
	BuiltinVoid Builtin = iota
	BuiltinBool
	BuiltinWChar
)

var builtinNames = map[Builtin]string{
	BuiltinVoid:  "void",
	BuiltinBool:  "bool",
	BuiltinWChar: "wchar_t",
}

func (b Builtin) String() string { return builtinNames[b] }

// Integral identifies the integer types.
type Integral int

const (
	IntegralShort Integral = iota
	IntegralInt
	IntegralLong
	IntegralLongLong
)

var integralNames = map[Integral]string{
	IntegralShort:    "short",
	IntegralInt:      "int",
	IntegralLong:     "long",
	IntegralLongLong: "long long",
}

func (i Integral) String() string { return integralNames[i] }

// Float identifies the floating point types.
type Float int

const (
	FloatFloat Float = iota
	FloatDouble
	FloatLongDouble
)

var floatNames = map[Float]string{
	FloatFloat:      "float",
	FloatDouble:     "double",
	FloatLongDouble: "long double",
}

func (f Float) String() string { return floatNames[f] }

// Name represents a simple identifier.
type Name struct {
	Text string
}

func (n *Name) Kind() Kind { return KindName }

// NestedName represents Scope::Name.
type NestedName struct {
	Scope NodeID
	Name  NodeID
}

func (n *NestedName) Kind() Kind { return KindNestedName }

// Template represents a template name with its arguments.
type Template struct {
	Name NodeID
	Args NodeList
}

func (n *Template) Kind() Kind { return KindTemplate }

// Function represents a function symbol: its name and its type.
type Function struct {
	Name NodeID
	Type NodeID
}

func (n *Function) Kind() Kind { return KindFunction }

// FunctionType represents a function signature. A nil Params means the
// parameter list was absent, which differs from an explicit void
// parameter.
type FunctionType struct {
	CallConv CallingConvention
	Params   NodeList
	Return   NodeID
	Quals    Qualifiers
}

func (n *FunctionType) Kind() Kind { return KindFunctionType }

// PointerType represents a pointer.
type PointerType struct {
	Pointee NodeID
	Quals   Qualifiers
}

func (n *PointerType) Kind() Kind { return KindPointerType }

// ReferenceType represents an lvalue reference.
type ReferenceType struct {
	Referent NodeID
}

func (n *ReferenceType) Kind() Kind { return KindReferenceType }

// RValueReferenceType represents an rvalue reference.
type RValueReferenceType struct {
	Referent NodeID
}

func (n *RValueReferenceType) Kind() Kind { return KindRValueReferenceType }

// ArrayType represents a one-dimensional array.
type ArrayType struct {
	Element NodeID
	Length  uint64
	Quals   Qualifiers
}

func (n *ArrayType) Kind() Kind { return KindArrayType }

// NamedType represents a class, struct, union or enum referred to by name.
type NamedType struct {
	Name  NodeID
	Quals Qualifiers
}

func (n *NamedType) Kind() Kind { return KindNamedType }

// BuiltInType represents bool, wchar_t or void.
type BuiltInType struct {
	Type  Builtin
	Quals Qualifiers
}

func (n *BuiltInType) Kind() Kind { return KindBuiltInType }

// CharType represents char, signed char or unsigned char.
type CharType struct {
	Signedness Signedness
	Quals      Qualifiers
}

func (n *CharType) Kind() Kind { return KindCharType }

// IntegralType represents an integer type other than char.
type IntegralType struct {
	Type     Integral
	Unsigned bool
	Quals    Qualifiers
}

func (n *IntegralType) Kind() Kind { return KindIntegralType }

// FloatType represents a floating point type.
type FloatType struct {
	Type  Float
	Quals Qualifiers
}

func (n *FloatType) Kind() Kind { return KindFloatType }
