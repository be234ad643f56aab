package models

import (
	"strings"

	"github.com/google/uuid"
)

// VoidTypeName is the type name used for operations that return no value
const VoidTypeName = "void"

// TypeRef identifies a type in the metadata universe.
// Two TypeRefs denote the same type iff all three fields are equal.
type TypeRef struct {
	Package string // package the type is declared in, empty for primitives
	Outer   string // simple name of the enclosing type for nested types
	Name    string // simple name
}

// Void returns the empty return type
func Void() TypeRef {
	return TypeRef{Name: VoidTypeName}
}

// IsVoid reports whether the type denotes "no value"
func (t TypeRef) IsVoid() bool {
	return t.Name == "" || (t.Name == VoidTypeName && t.Outer == "" && t.Package == "")
}

// IsNested reports whether the type is declared inside another type
func (t TypeRef) IsNested() bool {
	return t.Outer != ""
}

// SimpleName returns the unqualified type name
func (t TypeRef) SimpleName() string {
	return t.Name
}

// String returns the dotted, fully qualified form of the reference
func (t TypeRef) String() string {
	parts := make([]string, 0, 3)
	if t.Package != "" {
		parts = append(parts, t.Package)
	}
	if t.Outer != "" {
		parts = append(parts, t.Outer)
	}
	parts = append(parts, t.Name)
	return strings.Join(parts, ".")
}

// Param is a declared parameter of a metadata method
type Param struct {
	Name string
	Type TypeRef
}

// MethodMeta describes a method declared on a metadata type
type MethodMeta struct {
	Name     string
	Params   []Param
	Return   TypeRef
	Abstract bool // only meaningful for operations on descriptor types
	Static   bool
}

// InterfaceType is a named native interface contract
type InterfaceType struct {
	Name    string
	Package string
	IID     uuid.UUID // zero when the interface carries no identifier
	HasIID  bool
}

// Ref returns the type reference of the interface
func (i *InterfaceType) Ref() TypeRef {
	return TypeRef{Package: i.Package, Name: i.Name}
}

// DescriptorType is a nested type of a vtable describing one callable slot
type DescriptorType struct {
	Name       string
	Owner      TypeRef // the vtable that declares this type
	Operations []MethodMeta
}

// Ref returns the type identity of the descriptor
func (d *DescriptorType) Ref() TypeRef {
	return TypeRef{Package: d.Owner.Package, Outer: d.Owner.Name, Name: d.Name}
}

// AbstractOperations returns the operations a slot call may be forwarded to
func (d *DescriptorType) AbstractOperations() []MethodMeta {
	var ops []MethodMeta
	for _, op := range d.Operations {
		if op.Abstract {
			ops = append(ops, op)
		}
	}
	return ops
}

// VtableType describes a native virtual function table
type VtableType struct {
	Name    string
	Package string
	Methods []MethodMeta // declared accessor methods, in declaration order
	Nested  []DescriptorType
}

// Ref returns the type reference of the vtable
func (v *VtableType) Ref() TypeRef {
	return TypeRef{Package: v.Package, Name: v.Name}
}

// NestedType returns the nested type with the given simple name
func (v *VtableType) NestedType(name string) (*DescriptorType, bool) {
	for i := range v.Nested {
		if v.Nested[i].Name == name {
			return &v.Nested[i], true
		}
	}
	return nil, false
}

// InterfacePair couples an interface with the vtable describing its layout
type InterfacePair struct {
	Interface *InterfaceType
	Vtable    *VtableType
	Source    string // descriptor file the pair was read from, if any
}
