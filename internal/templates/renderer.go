// Package templates renders assembled wrapper class models into source files.
package templates

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/toyz/vtwrap/internal/errors"
	"github.com/toyz/vtwrap/internal/models"
	"github.com/toyz/vtwrap/internal/utils"
)

// Supported output languages
const (
	LanguageGo   = "go"
	LanguageJava = "java"
)

// Renderer turns a wrapper class model into the text of one source file.
// Renderers must emit members in model order.
type Renderer interface {
	Language() string
	FileExtension() string
	FileName(class *models.WrapperClass) string
	Render(class *models.WrapperClass) ([]byte, error)
}

// RenderOptions configures renderer construction
type RenderOptions struct {
	// GoPackage overrides the package clause of Go output
	GoPackage string
	// PackageImports maps descriptor packages to Go import paths. Types from
	// unmapped packages are assumed to live in the output package.
	PackageImports map[string]string
}

// Languages returns the supported output languages in sorted order
func Languages() []string {
	langs := []string{LanguageGo, LanguageJava}
	sort.Strings(langs)
	return langs
}

// NewRenderer creates the renderer for lang
func NewRenderer(lang string, opts RenderOptions) (Renderer, error) {
	switch strings.ToLower(lang) {
	case LanguageGo:
		return NewGoRenderer(opts), nil
	case LanguageJava:
		return NewJavaRenderer(), nil
	default:
		return nil, errors.ConfigurationError("lang", fmt.Sprintf("unsupported output language %q", lang)).
			WithSuggestion("use one of: " + strings.Join(Languages(), ", "))
	}
}

// generatedHeader is the marker line written at the top of every output file
func generatedHeader() string {
	return utils.GeneratedMarker
}

// executeTemplate executes a text template with the given data
func executeTemplate(name, templateStr string, funcs template.FuncMap, data interface{}) (string, error) {
	tmpl, err := template.New(name).Funcs(funcs).Parse(templateStr)
	if err != nil {
		return "", errors.WrapTemplateError(name, "parse", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.WrapTemplateError(name, "execute", err)
	}

	return buf.String(), nil
}
