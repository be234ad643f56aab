package templates

import (
	"strings"

	"github.com/toyz/vtwrap/internal/errors"
	"github.com/toyz/vtwrap/internal/models"
)

// JavaRenderer emits wrapper classes as Java source.
type JavaRenderer struct {
	registry *TemplateRegistry
	utils    *TemplateUtils
}

// NewJavaRenderer creates a Java renderer
func NewJavaRenderer() *JavaRenderer {
	return &JavaRenderer{registry: NewTemplateRegistry(), utils: NewTemplateUtils()}
}

func (r *JavaRenderer) Language() string      { return LanguageJava }
func (r *JavaRenderer) FileExtension() string { return ".java" }

// FileName follows the Java rule of one public class per file named after it
func (r *JavaRenderer) FileName(class *models.WrapperClass) string {
	return class.Name + r.FileExtension()
}

type javaClassData struct {
	Header    string
	Package   string
	Imports   []string
	Interface string
	Vtable    string
	IID       string
	Modifiers string
	Name      string
	Members   []javaMemberData
}

type javaMemberData struct {
	Gap    bool
	Source string
}

type javaFieldData struct {
	Modifiers string
	Type      string
	Name      string
	Init      string
}

type javaMethodData struct {
	Modifiers string
	Return    string
	Name      string
	Params    string
	Body      []string
}

// Render produces the Java source for class
func (r *JavaRenderer) Render(class *models.WrapperClass) ([]byte, error) {
	data := javaClassData{
		Header:    generatedHeader(),
		Package:   class.Package,
		Imports:   r.imports(class),
		Interface: class.Interface.Name,
		Vtable:    class.Vtable.Name,
		Modifiers: r.modifiers(class.Modifiers, false),
		Name:      class.Name,
	}
	if class.IID != nil {
		data.IID = "{" + strings.ToUpper(class.IID.String()) + "}"
	}

	prevBlock := false
	for i, member := range class.Members {
		source, block, err := r.renderMember(class, member)
		if err != nil {
			return nil, err
		}
		data.Members = append(data.Members, javaMemberData{
			Gap:    i > 0 && (block || prevBlock),
			Source: source,
		})
		prevBlock = block
	}

	out, err := executeTemplate("java-class", r.registry.MustGet("java-class"), nil, data)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// imports lists the import targets of class: the declared imports first,
// then every type a member signature or body mentions, in member order
func (r *JavaRenderer) imports(class *models.WrapperClass) []string {
	seen := make(map[string]bool)
	var result []string
	add := func(t models.TypeRef) {
		imp := r.utils.JavaImport(t, class.Package)
		if imp == "" || seen[imp] {
			return
		}
		seen[imp] = true
		result = append(result, imp)
	}

	for _, t := range class.Imports {
		add(t)
	}
	for _, member := range class.Members {
		switch m := member.(type) {
		case *models.FieldDecl:
			add(m.Type)
			if m.Init != nil {
				walkJavaTypes(m.Init, add)
			}
		case *models.ConstructorDecl:
			for _, p := range m.Params {
				add(p.Type)
			}
			for _, s := range m.Body {
				walkJavaTypes(stmtValue(s), add)
			}
		case *models.MethodDecl:
			add(m.Return)
			for _, p := range m.Params {
				add(p.Type)
			}
			for _, s := range m.Body {
				walkJavaTypes(stmtValue(s), add)
			}
		}
	}
	return result
}

// walkJavaTypes reports the owner type of every static call inside e
func walkJavaTypes(e models.Expr, visit func(models.TypeRef)) {
	switch e := e.(type) {
	case *models.StaticCall:
		visit(e.Type)
		for _, a := range e.Args {
			walkJavaTypes(a, visit)
		}
	case *models.Call:
		walkJavaTypes(e.Recv, visit)
		for _, a := range e.Args {
			walkJavaTypes(a, visit)
		}
	}
}

func stmtValue(s models.Stmt) models.Expr {
	switch s := s.(type) {
	case *models.Assign:
		return s.Value
	case *models.Return:
		return s.Value
	case *models.ExprStmt:
		return s.Value
	}
	return nil
}

// javaExpr spells e inside an instance member; instance fields are always
// qualified with this so parameters cannot shadow them
func (r *JavaRenderer) javaExpr(e models.Expr) string {
	switch e := e.(type) {
	case *models.FieldRef:
		return "this." + e.Name
	case *models.Call:
		return r.javaExpr(e.Recv) + "." + e.Method + "(" + r.javaArgs(e.Args) + ")"
	case *models.StaticCall:
		return r.utils.JavaTypeName(e.Type) + "." + e.Method + "(" + r.javaArgs(e.Args) + ")"
	case nil:
		return ""
	default:
		return e.String()
	}
}

func (r *JavaRenderer) javaArgs(args []models.Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = r.javaExpr(a)
	}
	return strings.Join(parts, ", ")
}

func (r *JavaRenderer) javaStmt(s models.Stmt) string {
	switch s := s.(type) {
	case *models.Assign:
		return "this." + s.Field + " = " + r.javaExpr(s.Value) + ";"
	case *models.Return:
		return "return " + r.javaExpr(s.Value) + ";"
	case *models.ExprStmt:
		return r.javaExpr(s.Value) + ";"
	default:
		return s.String()
	}
}

func (r *JavaRenderer) modifiers(m models.Modifiers, private bool) string {
	var b strings.Builder
	switch {
	case m.Public:
		b.WriteString("public ")
	case private:
		b.WriteString("private ")
	}
	if m.Static {
		b.WriteString("static ")
	}
	if m.Final {
		b.WriteString("final ")
	}
	return b.String()
}

func (r *JavaRenderer) params(params []models.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = r.utils.JavaTypeName(p.Type) + " " + p.Name
	}
	return strings.Join(parts, ", ")
}

func (r *JavaRenderer) body(stmts []models.Stmt) []string {
	lines := make([]string, len(stmts))
	for i, s := range stmts {
		lines[i] = r.javaStmt(s)
	}
	return lines
}

// renderMember returns the member source and whether it is a block member
func (r *JavaRenderer) renderMember(class *models.WrapperClass, member models.Member) (string, bool, error) {
	switch m := member.(type) {
	case *models.FieldDecl:
		data := javaFieldData{
			Modifiers: r.modifiers(m.Modifiers, true),
			Type:      r.utils.JavaTypeName(m.Type),
			Name:      m.Name,
		}
		if m.Init != nil {
			data.Init = r.javaExpr(m.Init)
		}
		out, err := executeTemplate("java-field", r.registry.MustGet("java-field"), nil, data)
		return out, false, err
	case *models.ConstructorDecl:
		out, err := executeTemplate("java-method", r.registry.MustGet("java-method"), nil, javaMethodData{
			Modifiers: r.modifiers(m.Modifiers, false),
			Name:      class.Name,
			Params:    r.params(m.Params),
			Body:      r.body(m.Body),
		})
		return out, true, err
	case *models.MethodDecl:
		out, err := executeTemplate("java-method", r.registry.MustGet("java-method"), nil, javaMethodData{
			Modifiers: r.modifiers(m.Modifiers, false),
			Return:    r.utils.JavaTypeName(m.Return),
			Name:      m.Name,
			Params:    r.params(m.Params),
			Body:      r.body(m.Body),
		})
		return out, true, err
	default:
		return "", false, errors.Newf(errors.TemplateErrorCode, "unsupported member %T", member)
	}
}
