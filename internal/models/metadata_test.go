package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeRef(t *testing.T) {
	tests := []struct {
		name   string
		ref    TypeRef
		str    string
		void   bool
		nested bool
	}{
		{name: "primitive", ref: TypeRef{Name: "int"}, str: "int"},
		{name: "void", ref: Void(), str: "void", void: true},
		{name: "zero value", ref: TypeRef{}, str: "", void: true},
		{name: "package type named void", ref: TypeRef{Package: "win32", Name: "void"}, str: "win32.void"},
		{name: "top level", ref: TypeRef{Package: "win32.pure", Name: "IUnknown"}, str: "win32.pure.IUnknown"},
		{name: "nested", ref: TypeRef{Package: "win32.pure", Outer: "IUnknownVtbl", Name: "AddRef"}, str: "win32.pure.IUnknownVtbl.AddRef", nested: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.str, tt.ref.String())
			assert.Equal(t, tt.void, tt.ref.IsVoid())
			assert.Equal(t, tt.nested, tt.ref.IsNested())
		})
	}
}

func TestVtableType(t *testing.T) {
	vtbl := &VtableType{Name: "IFooVtbl", Package: "win32"}
	vtbl.Nested = []DescriptorType{
		{
			Name:  "Bar",
			Owner: vtbl.Ref(),
			Operations: []MethodMeta{
				{Name: "apply", Abstract: true},
				{Name: "describe"},
				{Name: "allocate", Static: true},
			},
		},
	}

	d, ok := vtbl.NestedType("Bar")
	require.True(t, ok)
	assert.Equal(t, TypeRef{Package: "win32", Outer: "IFooVtbl", Name: "Bar"}, d.Ref())

	ops := d.AbstractOperations()
	require.Len(t, ops, 1)
	assert.Equal(t, "apply", ops[0].Name)

	// lookups return the stored descriptor, not a copy
	d.Name = "Baz"
	_, ok = vtbl.NestedType("Bar")
	assert.False(t, ok)
	_, ok = vtbl.NestedType("Baz")
	assert.True(t, ok)
}

func TestWrapperClass(t *testing.T) {
	class := &WrapperClass{Name: "IFoo_Wrapper"}
	segment := TypeRef{Package: "jdk.incubator.foreign", Name: "MemorySegment"}
	class.AddImport(segment)
	class.AddImport(segment)
	assert.Len(t, class.Imports, 1)

	field := &FieldDecl{Name: "Bar", Type: TypeRef{Package: "win32", Outer: "IFooVtbl", Name: "Bar"}}
	ctor := &ConstructorDecl{Modifiers: Modifiers{Public: true}}
	method := &MethodDecl{Name: "Bar", Return: TypeRef{Name: "int"}}
	class.AddMember(ctor)
	class.AddMember(field)
	class.AddMember(method)

	assert.Equal(t, []Member{ctor, field, method}, class.Members)
	assert.Equal(t, []*FieldDecl{field}, class.Fields())
	assert.Equal(t, []*MethodDecl{method}, class.Methods())
	assert.Equal(t, []*ConstructorDecl{ctor}, class.Constructors())
	assert.Equal(t, "<init>", ctor.MemberName())

	// fields and methods live in separate namespaces
	f, ok := class.Field("Bar")
	require.True(t, ok)
	assert.Same(t, field, f)
	m, ok := class.Method("Bar")
	require.True(t, ok)
	assert.Same(t, method, m)

	_, ok = class.Field("Missing")
	assert.False(t, ok)
}

func TestCodeString(t *testing.T) {
	call := &Call{
		Recv:   &FieldRef{Name: "Bar"},
		Method: "apply",
		Args:   []Expr{&FieldRef{Name: "obj"}, &Ident{Name: "x"}},
	}
	assert.Equal(t, "Bar.apply(obj, x)", call.String())
	assert.Equal(t, "return Bar.apply(obj, x);", (&Return{Value: call}).String())
	assert.Equal(t, "Bar.apply(obj, x);", (&ExprStmt{Value: call}).String())

	static := &StaticCall{
		Type:   TypeRef{Package: "win32", Outer: "IFooVtbl", Name: "Bar"},
		Method: "allocate",
		Args:   []Expr{&Ident{Name: "scope"}},
	}
	assert.Equal(t, "IFooVtbl.Bar.allocate(scope)", static.String())
	assert.Equal(t, "vtbl = IFooVtbl.Bar.allocate(scope);", (&Assign{Field: "vtbl", Value: static}).String())
	assert.Equal(t, "", JoinExprs(nil))
}
