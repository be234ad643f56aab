package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/vtwrap/internal/models"
)

func slotNames(slots []MatchedSlot) []string {
	var names []string
	for _, s := range slots {
		names = append(names, s.Name())
	}
	return names
}

func TestMatchSlots(t *testing.T) {
	vtbl := &models.VtableType{Name: "FooVtbl", Package: testPkg}
	slotFixture(vtbl, "QueryInterface", applyOp(primitive("int")))
	slotFixture(vtbl, "AddRef", applyOp(primitive("int")))
	// incidental accessors
	vtbl.Methods = append(vtbl.Methods,
		models.MethodMeta{Name: "sizeof", Return: primitive("long")},
		models.MethodMeta{Name: "ofAddress", Return: primitive("MemorySegment"), Static: true},
	)
	slotFixture(vtbl, "Release", applyOp(primitive("int")))

	slots := MatchSlots(vtbl)
	assert.Equal(t, []string{"QueryInterface", "AddRef", "Release"}, slotNames(slots))
	for _, s := range slots {
		assert.Equal(t, s.Name(), s.Descriptor.Name)
		assert.Equal(t, s.Accessor.Return, s.Descriptor.Ref())
	}
}

func TestMatchSlots_RequiresNameAndType(t *testing.T) {
	tests := []struct {
		name     string
		accessor models.MethodMeta
		matches  bool
	}{
		{
			name:     "name and type",
			accessor: models.MethodMeta{Name: "Bar", Return: nestedRef("FooVtbl", "Bar")},
			matches:  true,
		},
		{
			name:     "type only",
			accessor: models.MethodMeta{Name: "Baz", Return: nestedRef("FooVtbl", "Bar")},
		},
		{
			name:     "name only, other outer type",
			accessor: models.MethodMeta{Name: "Bar", Return: nestedRef("OtherVtbl", "Bar")},
		},
		{
			name:     "name only, top-level type",
			accessor: models.MethodMeta{Name: "Bar", Return: models.TypeRef{Package: testPkg, Name: "Bar"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vtbl := &models.VtableType{Name: "FooVtbl", Package: testPkg}
			vtbl.Nested = []models.DescriptorType{{Name: "Bar", Owner: vtbl.Ref(), Operations: []models.MethodMeta{applyOp(primitive("int"))}}}
			vtbl.Methods = []models.MethodMeta{tt.accessor}

			slots := MatchSlots(vtbl)
			if tt.matches {
				assert.Len(t, slots, 1)
			} else {
				assert.Empty(t, slots)
			}
		})
	}
}

func TestMatchSlots_RenameRemovesMatch(t *testing.T) {
	vtbl := &models.VtableType{Name: "FooVtbl", Package: testPkg}
	slotFixture(vtbl, "Bar", applyOp(primitive("int")))
	slotFixture(vtbl, "Baz", applyOp(primitive("int")))
	assert.Len(t, MatchSlots(vtbl), 2)

	vtbl.Nested[0].Name = "BarFn"
	assert.Equal(t, []string{"Baz"}, slotNames(MatchSlots(vtbl)))
}

func TestMatchSlots_DuplicateAccessor(t *testing.T) {
	vtbl := &models.VtableType{Name: "FooVtbl", Package: testPkg}
	slotFixture(vtbl, "Bar", applyOp(primitive("int")))
	vtbl.Methods = append(vtbl.Methods, vtbl.Methods[0])

	assert.Len(t, MatchSlots(vtbl), 1)
}

func TestMatchSlots_Nil(t *testing.T) {
	assert.Empty(t, MatchSlots(nil))
	assert.Empty(t, MatchSlots(&models.VtableType{Name: "Empty"}))
}

func TestExceptions(t *testing.T) {
	e := DefaultExceptions()
	assert.True(t, e.HasIdentity("IUnknown"))
	assert.False(t, e.HasIdentity("ID3DInclude"))
	assert.Equal(t, "IID_IUnknown", e.IdentityKey("IUnknown"))
	assert.Equal(t, "DIID_XMLDOMDocumentEvents", e.IdentityKey("XMLDOMDocumentEvents"))
	assert.Equal(t, []string{"ID3DInclude", "XMLDOMDocumentEvents"}, e.Names())

	merged := e.Merge(Exceptions{
		NoIdentity: map[string]bool{"ID3DInclude": false, "IPrivate": true},
		KeyPrefix:  map[string]string{"DispEvents": "D"},
	})
	assert.True(t, merged.HasIdentity("ID3DInclude"))
	assert.False(t, merged.HasIdentity("IPrivate"))
	assert.Equal(t, "DIID_DispEvents", merged.IdentityKey("DispEvents"))
	// the receiver is not modified
	assert.False(t, e.HasIdentity("ID3DInclude"))

	var empty Exceptions
	assert.True(t, empty.HasIdentity("ID3DInclude"))
	assert.Equal(t, "IID_XMLDOMDocumentEvents", empty.IdentityKey("XMLDOMDocumentEvents"))
}
