package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	ctx := NewContext()
	none := Qualifiers{}
	intT := ctx.NewIntegral(IntegralInt, false, none)
	charT := ctx.NewChar(SignednessUnspecified, none)
	voidT := ctx.NewBuiltIn(BuiltinVoid, none)

	tests := []struct {
		name string
		id   NodeID
		want string
	}{
		{"int", intT, "int"},
		{"unsigned long long", ctx.NewIntegral(IntegralLongLong, true, none), "unsigned long long"},
		{"signed char", ctx.NewChar(SignednessSigned, none), "signed char"},
		{"const volatile double", ctx.NewFloat(FloatDouble, Qualifiers{Const: true, Volatile: true}), "const volatile double"},
		{"const pointer", ctx.NewPointer(intT, Qualifiers{Const: true}), "int * const"},
		{"pointer to pointer", ctx.NewPointer(ctx.NewPointer(charT, none), none), "char **"},
		{"reference", ctx.NewReference(charT), "char &"},
		{"rvalue reference", ctx.NewRValueReference(intT), "int &&"},
		{"array", ctx.NewArray(intT, 10, none), "int[10]"},
		{"pointer to array", ctx.NewPointer(ctx.NewArray(intT, 4, none), none), "int (*)[4]"},
		{
			"pointer to function",
			ctx.NewPointer(ctx.NewFunctionType(CallConvUnspecified, NodeList{charT}, intT, none), none),
			"int (*)(char)",
		},
		{
			"fastcall pointer to function",
			ctx.NewPointer(ctx.NewFunctionType(CallConvFastCall, NodeList{voidT}, NoNode, none), none),
			"(__fastcall *)(void)",
		},
		{
			"reference to function",
			ctx.NewReference(ctx.NewFunctionType(CallConvStdCall, nil, voidT, none)),
			"void (__stdcall &)()",
		},
		{
			"named type",
			ctx.NewNamedType(ctx.NewNestedName(ctx.NewName("ns"), ctx.NewName("cls")), Qualifiers{Const: true}),
			"const ns::cls",
		},
		{
			"template",
			ctx.NewTemplate(ctx.NewName("vector"), NodeList{intT, charT}),
			"vector<int, char>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ctx.String(tt.id))
		})
	}
}

func TestRenderFunction(t *testing.T) {
	ctx := NewContext()
	none := Qualifiers{}
	intT := ctx.NewIntegral(IntegralInt, false, none)
	ptr := ctx.NewPointer(ctx.NewChar(SignednessUnspecified, none), none)

	ft := ctx.NewFunctionType(CallConvFastCall, NodeList{intT, ptr}, ctx.NewBuiltIn(BuiltinBool, none), Qualifiers{Const: true})
	fn := ctx.NewFunction(ctx.NewNestedName(ctx.NewName("ns"), ctx.NewName("f")), ft)
	assert.Equal(t, "bool __fastcall ns::f(int, char *) const", ctx.String(fn))

	noParams := ctx.NewFunction(ctx.NewName("g"), ctx.NewFunctionType(CallConvUnspecified, nil, NoNode, none))
	assert.Equal(t, "g()", ctx.String(noParams))

	assert.Empty(t, ctx.String(NoNode))
}
