package models

import "strings"

// Expr is an expression node in a generated method body.
// Implementations: *Ident, *FieldRef, *Call, *StaticCall.
type Expr interface {
	String() string
	exprNode()
}

// Stmt is a statement node in a generated method body.
// Implementations: *Assign, *Return, *ExprStmt.
type Stmt interface {
	String() string
	stmtNode()
}

// Ident references a parameter or local variable
type Ident struct {
	Name string
}

// FieldRef references a field of the generated instance
type FieldRef struct {
	Name string
}

// Call invokes a method on a receiver expression
type Call struct {
	Recv   Expr
	Method string
	Args   []Expr
}

// StaticCall invokes a type-level (static) member
type StaticCall struct {
	Type   TypeRef
	Method string
	Args   []Expr
}

// Assign stores a value into a field of the generated instance
type Assign struct {
	Field string
	Value Expr
}

// Return returns a value from the enclosing method
type Return struct {
	Value Expr
}

// ExprStmt evaluates an expression for its side effects
type ExprStmt struct {
	Value Expr
}

func (*Ident) exprNode()      {}
func (*FieldRef) exprNode()   {}
func (*Call) exprNode()       {}
func (*StaticCall) exprNode() {}
func (*Assign) stmtNode()     {}
func (*Return) stmtNode()     {}
func (*ExprStmt) stmtNode()   {}

func (e *Ident) String() string    { return e.Name }
func (e *FieldRef) String() string { return e.Name }

func (e *Call) String() string {
	return e.Recv.String() + "." + e.Method + "(" + JoinExprs(e.Args) + ")"
}

func (e *StaticCall) String() string {
	owner := e.Type.Name
	if e.Type.Outer != "" {
		owner = e.Type.Outer + "." + e.Type.Name
	}
	return owner + "." + e.Method + "(" + JoinExprs(e.Args) + ")"
}

func (s *Assign) String() string   { return s.Field + " = " + s.Value.String() + ";" }
func (s *Return) String() string   { return "return " + s.Value.String() + ";" }
func (s *ExprStmt) String() string { return s.Value.String() + ";" }

// JoinExprs renders a comma separated argument list
func JoinExprs(args []Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}
