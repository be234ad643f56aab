package models

import "github.com/google/uuid"

// Modifiers are the access and storage modifiers of a declaration
type Modifiers struct {
	Public bool
	Static bool
	Final  bool
}

// Member is one declaration inside a generated class.
// Implementations: *FieldDecl, *ConstructorDecl, *MethodDecl.
type Member interface {
	MemberName() string
	memberNode()
}

// FieldDecl declares a field of the generated class
type FieldDecl struct {
	Name      string
	Type      TypeRef
	Modifiers Modifiers
	Init      Expr // optional initializer
}

// ConstructorDecl declares a constructor of the generated class
type ConstructorDecl struct {
	Modifiers Modifiers
	Params    []Param
	Body      []Stmt
}

// MethodDecl declares a method of the generated class
type MethodDecl struct {
	Name      string
	Modifiers Modifiers
	Params    []Param
	Return    TypeRef
	Body      []Stmt
}

func (f *FieldDecl) MemberName() string       { return f.Name }
func (c *ConstructorDecl) MemberName() string { return "<init>" }
func (m *MethodDecl) MemberName() string      { return m.Name }

func (*FieldDecl) memberNode()       {}
func (*ConstructorDecl) memberNode() {}
func (*MethodDecl) memberNode()      {}

// WrapperClass is the structural description of one generated wrapper type.
// Members keep their emission order; renderers must not reorder them.
type WrapperClass struct {
	Name      string
	Package   string
	Modifiers Modifiers
	Interface TypeRef
	Vtable    TypeRef
	IID       *uuid.UUID // identifier of the wrapped interface, when declared
	Imports   []TypeRef
	Members   []Member
}

// AddImport declares a dependency of the class, ignoring duplicates
func (c *WrapperClass) AddImport(t TypeRef) {
	for _, existing := range c.Imports {
		if existing == t {
			return
		}
	}
	c.Imports = append(c.Imports, t)
}

// AddMember appends a declaration
func (c *WrapperClass) AddMember(m Member) {
	c.Members = append(c.Members, m)
}

// Fields returns the field declarations in emission order
func (c *WrapperClass) Fields() []*FieldDecl {
	var fields []*FieldDecl
	for _, m := range c.Members {
		if f, ok := m.(*FieldDecl); ok {
			fields = append(fields, f)
		}
	}
	return fields
}

// Methods returns the method declarations in emission order
func (c *WrapperClass) Methods() []*MethodDecl {
	var methods []*MethodDecl
	for _, m := range c.Members {
		if md, ok := m.(*MethodDecl); ok {
			methods = append(methods, md)
		}
	}
	return methods
}

// Constructors returns the constructor declarations
func (c *WrapperClass) Constructors() []*ConstructorDecl {
	var ctors []*ConstructorDecl
	for _, m := range c.Members {
		if cd, ok := m.(*ConstructorDecl); ok {
			ctors = append(ctors, cd)
		}
	}
	return ctors
}

// Field looks up a field by name
func (c *WrapperClass) Field(name string) (*FieldDecl, bool) {
	for _, f := range c.Fields() {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Method looks up a method by name
func (c *WrapperClass) Method(name string) (*MethodDecl, bool) {
	for _, m := range c.Methods() {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}
