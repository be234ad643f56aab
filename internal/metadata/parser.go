package metadata

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/google/uuid"

	"github.com/toyz/vtwrap/internal/errors"
	"github.com/toyz/vtwrap/internal/models"
)

// primitives never resolve to a package-qualified type
var primitives = map[string]bool{
	"boolean": true,
	"byte":    true,
	"char":    true,
	"short":   true,
	"int":     true,
	"long":    true,
	"float":   true,
	"double":  true,
}

// File is the type universe declared by one descriptor file
type File struct {
	Path       string
	Package    string
	Interfaces []*models.InterfaceType
	Vtables    []*models.VtableType
	Pairs      []models.InterfacePair
}

// ParseFile reads and parses a descriptor file from disk
func ParseFile(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFileSystemError("read", path, err)
	}
	return ParseString(path, string(content))
}

// ParseString parses descriptor source; filename is only used in error locations
func ParseString(filename, src string) (*File, error) {
	ast, err := descriptorParser.ParseString(filename, src)
	if err != nil {
		var perr participle.Error
		if stderrors.As(err, &perr) {
			return nil, errors.NewSyntaxError(perr.Message(), location(perr.Position()))
		}
		return nil, errors.WrapParseError(filename, err)
	}
	return newBuilder(filename, ast).build()
}

func location(pos lexer.Position) errors.SourceLocation {
	return errors.SourceLocation{File: pos.Filename, Line: pos.Line, Column: pos.Column}
}

// builder converts the syntax tree into models, resolving type names
type builder struct {
	path    string
	ast     *descriptorFile
	imports map[string]models.TypeRef // simple name -> imported type
}

func newBuilder(path string, ast *descriptorFile) *builder {
	return &builder{path: path, ast: ast, imports: make(map[string]models.TypeRef)}
}

func (b *builder) build() (*File, error) {
	file := &File{Path: b.path, Package: b.ast.Package}

	for _, imp := range b.ast.Imports {
		if len(imp.Path) < 2 {
			return nil, errors.NewSyntaxError("import must name a package-qualified type", location(imp.Pos))
		}
		name := imp.Path[len(imp.Path)-1]
		b.imports[name] = models.TypeRef{Package: strings.Join(imp.Path[:len(imp.Path)-1], "."), Name: name}
	}

	interfaces := make(map[string]*models.InterfaceType)
	for _, decl := range b.ast.Decls {
		if decl.Interface == nil {
			continue
		}
		iface, err := b.buildInterface(decl.Interface)
		if err != nil {
			return nil, err
		}
		if _, exists := interfaces[iface.Name]; exists {
			return nil, errors.NewSyntaxError(fmt.Sprintf("interface %s declared more than once", iface.Name), location(decl.Interface.Pos))
		}
		interfaces[iface.Name] = iface
		file.Interfaces = append(file.Interfaces, iface)
	}

	vtables := make(map[string]bool)
	paired := make(map[string]string)
	for _, decl := range b.ast.Decls {
		if decl.Vtable == nil {
			continue
		}
		vd := decl.Vtable
		if vtables[vd.Name] {
			return nil, errors.NewSyntaxError(fmt.Sprintf("vtable %s declared more than once", vd.Name), location(vd.Pos))
		}
		vtables[vd.Name] = true

		iface, ok := interfaces[vd.For]
		if !ok {
			serr := errors.NewSyntaxError(fmt.Sprintf("vtable %s describes undeclared interface %s", vd.Name, vd.For), location(vd.Pos))
			serr.WithSuggestion(fmt.Sprintf("declare `interface %s;` in the same file", vd.For))
			return nil, serr
		}
		if other, ok := paired[vd.For]; ok {
			return nil, errors.NewSyntaxError(fmt.Sprintf("interface %s already described by vtable %s", vd.For, other), location(vd.Pos))
		}
		paired[vd.For] = vd.Name

		vtbl, err := b.buildVtable(vd)
		if err != nil {
			return nil, err
		}
		file.Vtables = append(file.Vtables, vtbl)
		file.Pairs = append(file.Pairs, models.InterfacePair{Interface: iface, Vtable: vtbl, Source: b.path})
	}

	return file, nil
}

func (b *builder) buildInterface(decl *interfaceDecl) (*models.InterfaceType, error) {
	iface := &models.InterfaceType{Name: decl.Name, Package: b.ast.Package}
	if decl.IID != nil {
		id, err := uuid.Parse(*decl.IID)
		if err != nil {
			return nil, errors.NewSyntaxError(fmt.Sprintf("invalid iid for interface %s: %v", decl.Name, err), location(decl.Pos))
		}
		iface.IID = id
		iface.HasIID = true
	}
	return iface, nil
}

func (b *builder) buildVtable(decl *vtableDecl) (*models.VtableType, error) {
	vtbl := &models.VtableType{Name: decl.Name, Package: b.ast.Package}

	nestedNames := make(map[string]bool)
	for _, m := range decl.Members {
		if m.Nested == nil {
			continue
		}
		if nestedNames[m.Nested.Name] {
			return nil, errors.NewSyntaxError(fmt.Sprintf("type %s.%s declared more than once", decl.Name, m.Nested.Name), location(m.Nested.Pos))
		}
		nestedNames[m.Nested.Name] = true
	}

	resolve := func(t *typeName) models.TypeRef {
		return b.resolveType(decl.Name, nestedNames, t)
	}

	for _, m := range decl.Members {
		switch {
		case m.Nested != nil:
			d := models.DescriptorType{Name: m.Nested.Name, Owner: vtbl.Ref()}
			for _, op := range m.Nested.Operations {
				meta := b.buildMethod(op, resolve)
				meta.Abstract = !op.Default && !op.Static
				d.Operations = append(d.Operations, meta)
			}
			vtbl.Nested = append(vtbl.Nested, d)
		case m.Accessor != nil:
			vtbl.Methods = append(vtbl.Methods, b.buildMethod(m.Accessor, resolve))
		}
	}
	return vtbl, nil
}

func (b *builder) buildMethod(decl *methodDecl, resolve func(*typeName) models.TypeRef) models.MethodMeta {
	meta := models.MethodMeta{Name: decl.Name, Static: decl.Static, Return: models.Void()}
	for _, p := range decl.Params {
		meta.Params = append(meta.Params, models.Param{Name: p.Name, Type: resolve(p.Type)})
	}
	if decl.Return != nil {
		meta.Return = resolve(decl.Return)
	}
	return meta
}

// resolveType applies the lookup rules for type names: a single name is a
// primitive, void, a nested type of the enclosing vtable, an imported type or a
// type of the file's package, in that order. A two-part name Outer.Inner is a
// nested type of the file's package; longer names are package qualified.
func (b *builder) resolveType(vtblName string, nested map[string]bool, t *typeName) models.TypeRef {
	parts := t.Parts
	switch len(parts) {
	case 1:
		name := parts[0]
		switch {
		case name == models.VoidTypeName:
			return models.Void()
		case primitives[name]:
			return models.TypeRef{Name: name}
		case nested[name]:
			return models.TypeRef{Package: b.ast.Package, Outer: vtblName, Name: name}
		}
		if imported, ok := b.imports[name]; ok {
			return imported
		}
		return models.TypeRef{Package: b.ast.Package, Name: name}
	case 2:
		if imported, ok := b.imports[parts[0]]; ok {
			return models.TypeRef{Package: imported.Package, Outer: imported.Name, Name: parts[1]}
		}
		return models.TypeRef{Package: b.ast.Package, Outer: parts[0], Name: parts[1]}
	default:
		return models.TypeRef{Package: strings.Join(parts[:len(parts)-1], "."), Name: parts[len(parts)-1]}
	}
}
