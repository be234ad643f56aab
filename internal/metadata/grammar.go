// Package metadata ingests vtable descriptor (.vtd) files into the plain-data
// type universe consumed by the wrapper generator.
package metadata

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// descriptorFile is the root of a .vtd file
type descriptorFile struct {
	Pos     lexer.Position
	Package string          `parser:"'package' @Ident ( @'.' @Ident )* ';'"`
	Imports []*importDecl   `parser:"@@*"`
	Decls   []*declaration  `parser:"@@*"`
}

type importDecl struct {
	Pos  lexer.Position
	Path []string `parser:"'import' @Ident ( '.' @Ident )* ';'"`
}

type declaration struct {
	Interface *interfaceDecl `parser:"  @@"`
	Vtable    *vtableDecl    `parser:"| @@"`
}

type interfaceDecl struct {
	Pos  lexer.Position
	Name string  `parser:"'interface' @Ident"`
	IID  *string `parser:"( 'iid' @String )? ';'"`
}

type vtableDecl struct {
	Pos     lexer.Position
	Name    string          `parser:"'vtable' @Ident"`
	For     string          `parser:"'for' @Ident '{'"`
	Members []*vtableMember `parser:"@@* '}'"`
}

type vtableMember struct {
	Nested   *nestedDecl `parser:"  @@"`
	Accessor *methodDecl `parser:"| @@"`
}

type nestedDecl struct {
	Pos        lexer.Position
	Name       string        `parser:"'type' @Ident '{'"`
	Operations []*methodDecl `parser:"@@* '}'"`
}

type methodDecl struct {
	Pos     lexer.Position
	Static  bool         `parser:"@'static'?"`
	Default bool         `parser:"@'default'?"`
	Name    string       `parser:"@Ident '('"`
	Params  []*paramDecl `parser:"( @@ ( ',' @@ )* )? ')'"`
	Return  *typeName    `parser:"( ':' @@ )? ';'"`
}

type paramDecl struct {
	Name string    `parser:"@Ident ':'"`
	Type *typeName `parser:"@@"`
}

type typeName struct {
	Pos   lexer.Position
	Parts []string `parser:"@Ident ( '.' @Ident )*"`
}

var descriptorLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_$][a-zA-Z0-9_$]*`},
	{Name: "Punct", Pattern: `[{}();:,.]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var descriptorParser = participle.MustBuild[descriptorFile](
	participle.Lexer(descriptorLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.Unquote("String"),
	participle.UseLookahead(3),
)
