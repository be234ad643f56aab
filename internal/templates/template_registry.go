package templates

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerJavaTemplates()

	return registry
}

// MustGet retrieves a template by name, panics if not found
func (tr *TemplateRegistry) MustGet(name string) string {
	template, exists := tr.templates[name]
	if !exists {
		panic("template not found: " + name)
	}
	return template
}

// registerJavaTemplates registers the Java wrapper class templates
func (tr *TemplateRegistry) registerJavaTemplates() {
	tr.templates["java-class"] = `// {{.Header}}
package {{.Package}};
{{if .Imports}}
{{range .Imports}}import {{.}};
{{end}}{{end}}
/**
 * Wraps {{.Interface}} through the {{.Vtable}} function table.{{if .IID}}
 * IID: {{.IID}}{{end}}
 */
{{.Modifiers}}class {{.Name}} {
{{range .Members}}{{if .Gap}}
{{end}}{{.Source}}{{end}}}
`

	tr.templates["java-field"] = `    {{.Modifiers}}{{.Type}} {{.Name}}{{if .Init}} = {{.Init}}{{end}};
`

	tr.templates["java-method"] = `    {{.Modifiers}}{{if .Return}}{{.Return}} {{end}}{{.Name}}({{.Params}}) {
{{range .Body}}        {{.}}
{{end}}    }
`
}
