package templates

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/toyz/vtwrap/internal/models"
)

// TemplateUtils provides naming helpers shared by the renderers
type TemplateUtils struct{}

// NewTemplateUtils creates a new template utilities instance
func NewTemplateUtils() *TemplateUtils {
	return &TemplateUtils{}
}

// ToCamelCase lowers the first rune of s
func (tu *TemplateUtils) ToCamelCase(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

// ToPascalCase upper-cases the first rune of s
func (tu *TemplateUtils) ToPascalCase(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// SanitizeIdent turns a metadata name into a valid Go identifier
func (tu *TemplateUtils) SanitizeIdent(name string) string {
	name = strings.ReplaceAll(name, "$", "_")
	if token.IsKeyword(name) {
		return name + "_"
	}
	return name
}

// ExportedName returns the exported Go spelling of a metadata name
func (tu *TemplateUtils) ExportedName(name string) string {
	return tu.SanitizeIdent(tu.ToPascalCase(name))
}

// FlatTypeName names a type inside one flat Go package; nested types become Outer_Name
func (tu *TemplateUtils) FlatTypeName(t models.TypeRef) string {
	if t.IsNested() {
		return tu.SanitizeIdent(t.Outer + "_" + t.Name)
	}
	return tu.SanitizeIdent(t.Name)
}

// JavaTypeName returns the source spelling of a type inside a Java class body
func (tu *TemplateUtils) JavaTypeName(t models.TypeRef) string {
	if t.IsVoid() {
		return models.VoidTypeName
	}
	if t.IsNested() {
		return t.Outer + "." + t.Name
	}
	return t.Name
}

// JavaImport returns the import line target for t, or "" when t needs no import
func (tu *TemplateUtils) JavaImport(t models.TypeRef, classPackage string) string {
	if t.Package == "" || t.Package == classPackage || t.Package == "java.lang" {
		return ""
	}
	if t.IsNested() {
		return t.Package + "." + t.Outer
	}
	return t.Package + "." + t.Name
}

// PackageTail returns the last element of a dotted package name
func (tu *TemplateUtils) PackageTail(pkg string) string {
	if i := strings.LastIndex(pkg, "."); i >= 0 {
		return pkg[i+1:]
	}
	return pkg
}

// SnakeCase converts an identifier like IUnknown_Wrapper to iunknown_wrapper
func (tu *TemplateUtils) SnakeCase(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "$", "_"))
}
