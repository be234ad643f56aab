package generator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/vtwrap/internal/errors"
	"github.com/toyz/vtwrap/internal/models"
)

const testPkg = "win32"

func primitive(name string) models.TypeRef {
	return models.TypeRef{Name: name}
}

func nestedRef(vtbl, name string) models.TypeRef {
	return models.TypeRef{Package: testPkg, Outer: vtbl, Name: name}
}

func applyOp(ret models.TypeRef, params ...models.Param) models.MethodMeta {
	all := append([]models.Param{{Name: "obj", Type: primitive("MemoryAddress")}}, params...)
	return models.MethodMeta{Name: "apply", Params: all, Return: ret, Abstract: true}
}

// slotFixture declares accessor name(): name plus nested type name with the given operations
func slotFixture(vtbl *models.VtableType, name string, ops ...models.MethodMeta) {
	vtbl.Methods = append(vtbl.Methods, models.MethodMeta{Name: name, Return: nestedRef(vtbl.Name, name), Static: true})
	vtbl.Nested = append(vtbl.Nested, models.DescriptorType{Name: name, Owner: vtbl.Ref(), Operations: ops})
}

func fooPair() (*models.InterfaceType, *models.VtableType) {
	iface := &models.InterfaceType{Name: "Foo", Package: testPkg}
	vtbl := &models.VtableType{Name: "FooVtbl", Package: testPkg}
	slotFixture(vtbl, "Bar", applyOp(primitive("int"), models.Param{Name: "x", Type: primitive("int")}))
	return iface, vtbl
}

// keyResolver renders identifier lookups as the bare key
type keyResolver struct {
	*NativeRuntime
}

func (keyResolver) IdentifierConstant(key string) models.Expr {
	return &models.Ident{Name: key}
}

func newTestGenerator(opts ...Option) *Generator {
	return NewGenerator(keyResolver{NewNativeRuntime("", "", "")}, opts...)
}

func bodyText(stmts []models.Stmt) []string {
	out := make([]string, len(stmts))
	for i, s := range stmts {
		out[i] = s.String()
	}
	return out
}

func TestAssemble_EndToEnd(t *testing.T) {
	iface, vtbl := fooPair()
	class := newTestGenerator().Assemble(iface, vtbl)

	assert.Equal(t, "Foo_Wrapper", class.Name)
	assert.True(t, class.Modifiers.Public)
	assert.Equal(t, testPkg, class.Package)

	field, ok := class.Field("Bar")
	require.True(t, ok)
	assert.Equal(t, nestedRef("FooVtbl", "Bar"), field.Type)
	assert.True(t, field.Modifiers.Final)

	method, ok := class.Method("Bar")
	require.True(t, ok)
	assert.Equal(t, primitive("int"), method.Return)
	assert.Equal(t, []models.Param{{Name: "x", Type: primitive("int")}}, method.Params)
	assert.Equal(t, []string{"return Bar.apply(obj, x);"}, bodyText(method.Body))

	ctors := class.Constructors()
	require.Len(t, ctors, 1)
	assert.Equal(t, []string{
		"obj = segment.address();",
		"vtbl = FooVtbl.ofAddress(Foo.lpVtbl$get(segment), scope);",
		"Bar = FooVtbl.Bar(vtbl);",
	}, bodyText(ctors[0].Body))
	assert.Equal(t, ParamSegment, ctors[0].Params[0].Name)
}

func TestAssemble_MemberOrder(t *testing.T) {
	iface, vtbl := fooPair()
	slotFixture(vtbl, "Baz", applyOp(models.Void()))
	class := newTestGenerator().Assemble(iface, vtbl)

	var names []string
	for _, m := range class.Members {
		names = append(names, m.MemberName())
	}
	assert.Equal(t, []string{"scope", "obj", "vtbl", "<init>", IdentityAccessorName, "Bar", "Bar", "Baz", "Baz"}, names)

	scope, ok := class.Field(FieldScope)
	require.True(t, ok)
	assert.Equal(t, "ResourceScope.newImplicitScope()", scope.Init.String())

	obj, _ := class.Field(FieldObject)
	assert.True(t, obj.Modifiers.Public)
	vtblField, _ := class.Field(FieldVtable)
	assert.False(t, vtblField.Modifiers.Public)
}

func TestAssemble_Imports(t *testing.T) {
	iface, vtbl := fooPair()
	class := newTestGenerator().Assemble(iface, vtbl)

	require.GreaterOrEqual(t, len(class.Imports), 3)
	assert.Equal(t, iface.Ref(), class.Imports[0])
	assert.Equal(t, vtbl.Ref(), class.Imports[1])
	assert.Equal(t, models.TypeRef{Package: DefaultNamespacePackage, Name: DefaultNamespace}, class.Imports[2])
}

func TestAssemble_Idempotent(t *testing.T) {
	iface, vtbl := fooPair()
	slotFixture(vtbl, "Release", applyOp(primitive("int")))
	g := newTestGenerator()

	first := g.Assemble(iface, vtbl)
	second := g.Assemble(iface, vtbl)
	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)
}

func TestAssemble_WrapperDropsReceiver(t *testing.T) {
	for n := 1; n <= 5; n++ {
		t.Run(fmt.Sprintf("%d params", n), func(t *testing.T) {
			var extra []models.Param
			for i := 1; i < n; i++ {
				extra = append(extra, models.Param{Name: fmt.Sprintf("a%d", i), Type: primitive("long")})
			}
			iface := &models.InterfaceType{Name: "IThing", Package: testPkg}
			vtbl := &models.VtableType{Name: "IThingVtbl", Package: testPkg}
			slotFixture(vtbl, "Do", applyOp(primitive("int"), extra...))

			class := newTestGenerator().Assemble(iface, vtbl)
			method, ok := class.Method("Do")
			require.True(t, ok)
			assert.Len(t, method.Params, n-1)
			for _, p := range method.Params {
				assert.NotEqual(t, "obj", p.Name)
			}
		})
	}
}

func TestAssemble_VoidReturn(t *testing.T) {
	iface := &models.InterfaceType{Name: "IThing", Package: testPkg}
	vtbl := &models.VtableType{Name: "IThingVtbl", Package: testPkg}
	slotFixture(vtbl, "Reset", applyOp(models.Void(), models.Param{Name: "flags", Type: primitive("int")}))

	method, ok := newTestGenerator().Assemble(iface, vtbl).Method("Reset")
	require.True(t, ok)
	assert.True(t, method.Return.IsVoid())
	assert.Equal(t, []string{"Reset.apply(obj, flags);"}, bodyText(method.Body))
}

func TestAssemble_UnnamedParams(t *testing.T) {
	iface := &models.InterfaceType{Name: "IThing", Package: testPkg}
	vtbl := &models.VtableType{Name: "IThingVtbl", Package: testPkg}
	slotFixture(vtbl, "Put", applyOp(models.Void(),
		models.Param{Type: primitive("int")},
		models.Param{Type: primitive("int")},
	))

	method, ok := newTestGenerator().Assemble(iface, vtbl).Method("Put")
	require.True(t, ok)
	assert.Equal(t, "p0", method.Params[0].Name)
	assert.Equal(t, "p1", method.Params[1].Name)
	assert.Equal(t, []string{"Put.apply(obj, p0, p1);"}, bodyText(method.Body))
}

func TestAssemble_SlotFailureIsLocal(t *testing.T) {
	tests := []struct {
		name string
		ops  []models.MethodMeta
	}{
		{name: "no operations", ops: nil},
		{name: "only default operations", ops: []models.MethodMeta{{Name: "describe", Return: primitive("String")}}},
		{name: "two abstract operations", ops: []models.MethodMeta{applyOp(primitive("int")), {Name: "call", Abstract: true, Params: []models.Param{{Name: "o"}}}}},
		{name: "no receiver", ops: []models.MethodMeta{{Name: "apply", Abstract: true, Return: primitive("int")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iface, vtbl := fooPair()
			slotFixture(vtbl, "Broken", tt.ops...)
			slotFixture(vtbl, "After", applyOp(primitive("int")))

			var reported []*errors.SlotSynthesisError
			g := newTestGenerator(WithDiagnostics(DiagnosticSinkFunc(func(err *errors.SlotSynthesisError) {
				reported = append(reported, err)
			})))

			var result *Assembly
			require.NotPanics(t, func() { result = g.AssembleWithReport(iface, vtbl) })

			class := result.Class
			_, hasField := class.Field("Broken")
			_, hasMethod := class.Method("Broken")
			assert.False(t, hasField)
			assert.False(t, hasMethod)

			_, ok := class.Method("After")
			assert.True(t, ok, "slots after a failure are still generated")
			_, ok = class.Method("Bar")
			assert.True(t, ok)

			require.Len(t, reported, 1)
			assert.Equal(t, "Foo", reported[0].Interface)
			assert.Equal(t, "Broken", reported[0].Slot)
			assert.Equal(t, errors.SlotSynthesisErrorCode, reported[0].ErrorCode())
			assert.Equal(t, reported, result.Failures)
			assert.Len(t, result.Matched, 3)
			assert.Equal(t, 2, result.Generated())

			for _, stmt := range class.Constructors()[0].Body {
				assert.NotEqual(t, "Broken", stmt.(*models.Assign).Field)
			}
		})
	}
}

func TestAssemble_SlotNameCollidesWithFixedField(t *testing.T) {
	for _, name := range []string{FieldScope, FieldObject, FieldVtable} {
		t.Run(name, func(t *testing.T) {
			iface, vtbl := fooPair()
			slotFixture(vtbl, name, applyOp(primitive("int")))

			var reported []*errors.SlotSynthesisError
			g := newTestGenerator(WithDiagnostics(DiagnosticSinkFunc(func(err *errors.SlotSynthesisError) {
				reported = append(reported, err)
			})))
			result := g.AssembleWithReport(iface, vtbl)

			require.Len(t, reported, 1)
			assert.Equal(t, name, reported[0].Slot)
			assert.Contains(t, reported[0].Error(), "collides with a fixed wrapper field")
			assert.Equal(t, 1, result.Generated())

			count := 0
			for _, f := range result.Class.Fields() {
				if f.Name == name {
					count++
				}
			}
			assert.Equal(t, 1, count)

			_, ok := result.Class.Method(name)
			assert.False(t, ok)
			_, ok = result.Class.Method("Bar")
			assert.True(t, ok)
			for _, stmt := range result.Class.Constructors()[0].Body {
				assert.NotEqual(t, fmt.Sprintf("%s = FooVtbl.%s(vtbl);", name, name), stmt.String())
			}
		})
	}
}

func TestAssemble_SlotCollidesWithIdentityAccessor(t *testing.T) {
	iface, vtbl := fooPair()
	slotFixture(vtbl, IdentityAccessorName, applyOp(primitive("int")))

	result := newTestGenerator().AssembleWithReport(iface, vtbl)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, IdentityAccessorName, result.Failures[0].Slot)

	count := 0
	for _, m := range result.Class.Methods() {
		if m.Name == IdentityAccessorName {
			count++
		}
	}
	assert.Equal(t, 1, count)

	iface.Name = "ID3DInclude"
	result = newTestGenerator().AssembleWithReport(iface, vtbl)
	assert.Empty(t, result.Failures)
}

func TestAssemble_ConstructorAssignments(t *testing.T) {
	iface := &models.InterfaceType{Name: "IThing", Package: testPkg}
	vtbl := &models.VtableType{Name: "IThingVtbl", Package: testPkg}
	names := []string{"QueryInterface", "AddRef", "Release", "GetValue"}
	for _, n := range names {
		slotFixture(vtbl, n, applyOp(primitive("int")))
	}

	body := newTestGenerator().Assemble(iface, vtbl).Constructors()[0].Body
	require.Len(t, body, 2+len(names))

	var targets []string
	for _, stmt := range body {
		assign, ok := stmt.(*models.Assign)
		require.True(t, ok)
		targets = append(targets, assign.Field)
	}
	assert.Equal(t, append([]string{FieldObject, FieldVtable}, names...), targets)
}

func TestAssemble_NoSlots(t *testing.T) {
	iface := &models.InterfaceType{Name: "IEmpty", Package: testPkg}
	vtbl := &models.VtableType{Name: "IEmptyVtbl", Package: testPkg}
	vtbl.Methods = append(vtbl.Methods, models.MethodMeta{Name: "sizeof", Return: primitive("long")})

	result := newTestGenerator().AssembleWithReport(iface, vtbl)
	assert.Empty(t, result.Matched)
	assert.Len(t, result.Class.Fields(), 3)
	assert.Len(t, result.Class.Constructors()[0].Body, 2)
}

func TestAssemble_IdentityAccessor(t *testing.T) {
	tests := []struct {
		iface   string
		present bool
		key     string
	}{
		{iface: "IUnknown", present: true, key: "IID_IUnknown"},
		{iface: "ID3D12Device", present: true, key: "IID_ID3D12Device"},
		{iface: "XMLDOMDocumentEvents", present: true, key: "DIID_XMLDOMDocumentEvents"},
		{iface: "ID3DInclude", present: false},
	}

	for _, tt := range tests {
		t.Run(tt.iface, func(t *testing.T) {
			iface := &models.InterfaceType{Name: tt.iface, Package: testPkg}
			vtbl := &models.VtableType{Name: tt.iface + "Vtbl", Package: testPkg}

			method, ok := newTestGenerator().Assemble(iface, vtbl).Method(IdentityAccessorName)
			require.Equal(t, tt.present, ok)
			if !tt.present {
				return
			}
			assert.True(t, method.Modifiers.Static)
			assert.True(t, method.Modifiers.Public)
			assert.Empty(t, method.Params)
			assert.Equal(t, []string{"return " + tt.key + ";"}, bodyText(method.Body))
		})
	}
}

func TestAssemble_NativeIdentityLookup(t *testing.T) {
	iface, vtbl := fooPair()
	method, ok := NewGenerator(nil).Assemble(iface, vtbl).Method(IdentityAccessorName)
	require.True(t, ok)
	assert.Equal(t, []string{"return Win32.IID_Foo$SEGMENT();"}, bodyText(method.Body))
}

func TestAssemble_Options(t *testing.T) {
	iface, vtbl := fooPair()
	iface.HasIID = true
	g := newTestGenerator(WithClassSuffix("_J"), WithPackage("com.example.gen"),
		WithExceptions(Exceptions{NoIdentity: map[string]bool{"Foo": true}}))

	class := g.Assemble(iface, vtbl)
	assert.Equal(t, "Foo_J", class.Name)
	assert.Equal(t, "com.example.gen", class.Package)
	require.NotNil(t, class.IID)
	_, ok := class.Method(IdentityAccessorName)
	assert.False(t, ok)
}
