package templates

import (
	"bytes"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/toyz/vtwrap/internal/errors"
	"github.com/toyz/vtwrap/internal/models"
	"github.com/toyz/vtwrap/internal/utils"
)

// receiverName is the receiver of every generated method
const receiverName = "w"

// goPrimitives maps metadata primitive names to Go types of the same width
var goPrimitives = map[string]string{
	"boolean": "bool",
	"byte":    "byte",
	"char":    "uint16",
	"short":   "int16",
	"int":     "int32",
	"long":    "int64",
	"float":   "float32",
	"double":  "float64",
}

// GoRenderer emits wrapper classes as Go structs with a constructor function
// and one method per slot. Static members become package-level functions.
type GoRenderer struct {
	opts  RenderOptions
	utils *TemplateUtils
}

// NewGoRenderer creates a Go renderer
func NewGoRenderer(opts RenderOptions) *GoRenderer {
	return &GoRenderer{opts: opts, utils: NewTemplateUtils()}
}

func (r *GoRenderer) Language() string      { return LanguageGo }
func (r *GoRenderer) FileExtension() string { return ".go" }

// FileName returns the lower-case file name for class
func (r *GoRenderer) FileName(class *models.WrapperClass) string {
	return r.utils.SnakeCase(class.Name) + r.FileExtension()
}

// PackageName returns the package clause used for class
func (r *GoRenderer) PackageName(class *models.WrapperClass) string {
	if r.opts.GoPackage != "" {
		return r.opts.GoPackage
	}
	return r.utils.SanitizeIdent(strings.ToLower(r.utils.PackageTail(class.Package)))
}

// Render produces gofmt'ed Go source for class
func (r *GoRenderer) Render(class *models.WrapperClass) ([]byte, error) {
	e := newGoEmitter(r, class)

	f := jen.NewFile(r.PackageName(class))
	f.HeaderComment(generatedHeader())
	for _, imp := range e.aliases() {
		f.ImportAlias(imp.path, imp.alias)
	}

	e.emitStruct(f)
	for _, member := range class.Members {
		switch m := member.(type) {
		case *models.FieldDecl:
			// declared on the struct
		case *models.ConstructorDecl:
			e.emitConstructor(f, m)
		case *models.MethodDecl:
			e.emitMethod(f, m)
		default:
			return nil, errors.Newf(errors.TemplateErrorCode, "unsupported member %T", member)
		}
	}
	if e.err != nil {
		return nil, e.err
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, errors.WrapTemplateError(class.Name, "render", err)
	}
	formatted, err := utils.FormatGoCode(r.FileName(class), buf.Bytes())
	if err != nil {
		return nil, errors.WrapTemplateError(class.Name, "format", err)
	}
	return formatted, nil
}

type goImport struct {
	path  string
	alias string
}

// goEmitter holds the per-class naming state of one render
type goEmitter struct {
	r      *GoRenderer
	class  *models.WrapperClass
	fields map[string]string // model field name -> Go field name
	err    error
}

func newGoEmitter(r *GoRenderer, class *models.WrapperClass) *goEmitter {
	e := &goEmitter{r: r, class: class, fields: make(map[string]string)}

	taken := make(map[string]bool)
	for _, m := range class.Methods() {
		if !m.Modifiers.Static {
			taken[r.utils.ExportedName(m.Name)] = true
		}
	}
	for _, field := range class.Fields() {
		name := r.utils.SanitizeIdent(r.utils.ToCamelCase(field.Name))
		if field.Modifiers.Public {
			name = r.utils.ExportedName(field.Name)
		}
		for taken[name] {
			name += "_"
		}
		taken[name] = true
		e.fields[field.Name] = name
	}
	return e
}

// aliases assigns a stable alias to every mapped package path
func (e *goEmitter) aliases() []goImport {
	paths := make([]string, 0, len(e.r.opts.PackageImports))
	for _, p := range e.r.opts.PackageImports {
		if p != "" {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	used := make(map[string]bool)
	var result []goImport
	for i, p := range paths {
		if i > 0 && paths[i-1] == p {
			continue
		}
		base := e.r.utils.SanitizeIdent(strings.ReplaceAll(path.Base(p), "-", "_"))
		alias := base
		for n := 2; used[alias]; n++ {
			alias = fmt.Sprintf("%s%d", base, n)
		}
		used[alias] = true
		result = append(result, goImport{path: p, alias: alias})
	}
	return result
}

func (e *goEmitter) qualified(pkg, name string) *jen.Statement {
	if p, ok := e.r.opts.PackageImports[pkg]; ok && p != "" {
		return jen.Qual(p, name)
	}
	return jen.Id(name)
}

func (e *goEmitter) typeCode(t models.TypeRef) *jen.Statement {
	if t.Package == "" && !t.IsNested() {
		if prim, ok := goPrimitives[t.Name]; ok {
			return jen.Id(prim)
		}
	}
	return e.qualified(t.Package, e.r.utils.FlatTypeName(t))
}

func (e *goEmitter) ident(name string) string {
	name = e.r.utils.SanitizeIdent(name)
	if name == receiverName {
		name += "_"
	}
	return name
}

func (e *goEmitter) field(name string) string {
	if goName, ok := e.fields[name]; ok {
		return goName
	}
	return e.r.utils.SanitizeIdent(name)
}

func (e *goEmitter) params(params []models.Param) []jen.Code {
	code := make([]jen.Code, len(params))
	for i, p := range params {
		code[i] = jen.Id(e.ident(p.Name)).Add(e.typeCode(p.Type))
	}
	return code
}

func (e *goEmitter) exprs(args []models.Expr) []jen.Code {
	code := make([]jen.Code, len(args))
	for i, a := range args {
		code[i] = e.expr(a)
	}
	return code
}

func (e *goEmitter) expr(x models.Expr) *jen.Statement {
	switch v := x.(type) {
	case *models.Ident:
		return jen.Id(e.ident(v.Name))
	case *models.FieldRef:
		return jen.Id(receiverName).Dot(e.field(v.Name))
	case *models.Call:
		return e.expr(v.Recv).Dot(e.r.utils.ExportedName(v.Method)).Call(e.exprs(v.Args)...)
	case *models.StaticCall:
		fn := e.r.utils.FlatTypeName(v.Type) + "_" + e.r.utils.ExportedName(v.Method)
		return e.qualified(v.Type.Package, fn).Call(e.exprs(v.Args)...)
	default:
		e.fail(fmt.Errorf("unsupported expression %T", x))
		return jen.Null()
	}
}

func (e *goEmitter) stmt(s models.Stmt) jen.Code {
	switch v := s.(type) {
	case *models.Assign:
		return jen.Id(receiverName).Dot(e.field(v.Field)).Op("=").Add(e.expr(v.Value))
	case *models.Return:
		return jen.Return(e.expr(v.Value))
	case *models.ExprStmt:
		return e.expr(v.Value)
	default:
		e.fail(fmt.Errorf("unsupported statement %T", s))
		return jen.Null()
	}
}

func (e *goEmitter) fail(err error) {
	if e.err == nil {
		e.err = errors.Wrap(errors.TemplateErrorCode, "failed to render "+e.class.Name, err)
	}
}

func (e *goEmitter) emitStruct(f *jen.File) {
	class := e.class
	f.Comment(fmt.Sprintf("%s wraps %s through the %s function table.", class.Name, class.Interface.Name, class.Vtable.Name))
	if class.IID != nil {
		f.Comment("IID: {" + strings.ToUpper(class.IID.String()) + "}")
	}

	fields := make([]jen.Code, 0, len(class.Fields()))
	for _, field := range class.Fields() {
		fields = append(fields, jen.Id(e.field(field.Name)).Add(e.typeCode(field.Type)))
	}
	f.Type().Id(class.Name).Struct(fields...)
	f.Line()
}

func (e *goEmitter) emitConstructor(f *jen.File, c *models.ConstructorDecl) {
	class := e.class
	body := []jen.Code{jen.Id(receiverName).Op(":=").Op("&").Id(class.Name).Values()}
	for _, field := range class.Fields() {
		if field.Init != nil {
			body = append(body, jen.Id(receiverName).Dot(e.field(field.Name)).Op("=").Add(e.expr(field.Init)))
		}
	}
	for _, s := range c.Body {
		body = append(body, e.stmt(s))
	}
	body = append(body, jen.Return(jen.Id(receiverName)))

	name := "New" + class.Name
	f.Comment(fmt.Sprintf("%s binds a wrapper to the interface pointer stored in segment.", name))
	f.Func().Id(name).Params(e.params(c.Params)...).Op("*").Id(class.Name).Block(body...)
	f.Line()
}

func (e *goEmitter) emitMethod(f *jen.File, m *models.MethodDecl) {
	body := make([]jen.Code, len(m.Body))
	for i, s := range m.Body {
		body[i] = e.stmt(s)
	}

	var decl *jen.Statement
	if m.Modifiers.Static {
		decl = f.Func().Id(e.class.Name + "_" + e.r.utils.ExportedName(m.Name))
	} else {
		decl = f.Func().Params(jen.Id(receiverName).Op("*").Id(e.class.Name)).Id(e.r.utils.ExportedName(m.Name))
	}
	decl.Params(e.params(m.Params)...)
	if !m.Return.IsVoid() {
		decl.Add(e.typeCode(m.Return))
	}
	decl.Block(body...)
	f.Line()
}
