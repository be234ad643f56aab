package generator

import (
	"github.com/toyz/vtwrap/internal/errors"
	"github.com/toyz/vtwrap/internal/models"
)

// Fixed fields present on every wrapper class
const (
	FieldScope  = "scope"
	FieldObject = "obj"
	FieldVtable = "vtbl"
)

// DefaultClassSuffix is appended to the interface name to form the class name
const DefaultClassSuffix = "_Wrapper"

// Generator assembles wrapper class models from interface/vtable pairs.
// It holds no per-pair state, so one Generator can serve many pairs.
type Generator struct {
	runtime     RuntimeResolver
	exceptions  Exceptions
	sink        DiagnosticSink
	classSuffix string
	pkg         string
}

// Option configures a Generator
type Option func(*Generator)

// WithExceptions replaces the identity exception table
func WithExceptions(e Exceptions) Option {
	return func(g *Generator) { g.exceptions = e }
}

// WithDiagnostics sets the sink receiving slot synthesis failures
func WithDiagnostics(sink DiagnosticSink) Option {
	return func(g *Generator) {
		if sink != nil {
			g.sink = sink
		}
	}
}

// WithClassSuffix overrides the generated class name suffix
func WithClassSuffix(suffix string) Option {
	return func(g *Generator) {
		if suffix != "" {
			g.classSuffix = suffix
		}
	}
}

// WithPackage places generated classes in pkg instead of the interface's package
func WithPackage(pkg string) Option {
	return func(g *Generator) { g.pkg = pkg }
}

// NewGenerator creates a generator bound to the given runtime namespace
func NewGenerator(runtime RuntimeResolver, opts ...Option) *Generator {
	if runtime == nil {
		runtime = NewNativeRuntime("", "", "")
	}
	g := &Generator{
		runtime:     runtime,
		exceptions:  DefaultExceptions(),
		sink:        discardSink{},
		classSuffix: DefaultClassSuffix,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Assembly is the outcome of assembling one pair
type Assembly struct {
	Class    *models.WrapperClass
	Matched  []MatchedSlot
	Failures []*errors.SlotSynthesisError
}

// Generated returns the number of slots that produced a field and method
func (a *Assembly) Generated() int {
	return len(a.Matched) - len(a.Failures)
}

// ClassName returns the wrapper class name for an interface
func (g *Generator) ClassName(iface *models.InterfaceType) string {
	return iface.Name + g.classSuffix
}

// Assemble builds the wrapper class for one interface/vtable pair.
// It always returns a model; slots that cannot be synthesized are reported
// to the diagnostic sink and left out.
func (g *Generator) Assemble(iface *models.InterfaceType, vtbl *models.VtableType) *models.WrapperClass {
	return g.AssembleWithReport(iface, vtbl).Class
}

// AssemblePair is Assemble for a pre-paired input
func (g *Generator) AssemblePair(pair models.InterfacePair) *Assembly {
	return g.AssembleWithReport(pair.Interface, pair.Vtable)
}

// AssembleWithReport builds the wrapper class and also returns the matched
// slots and per-slot failures.
func (g *Generator) AssembleWithReport(iface *models.InterfaceType, vtbl *models.VtableType) *Assembly {
	pkg := g.pkg
	if pkg == "" {
		pkg = iface.Package
	}
	class := &models.WrapperClass{
		Name:      g.ClassName(iface),
		Package:   pkg,
		Modifiers: models.Modifiers{Public: true},
		Interface: iface.Ref(),
		Vtable:    vtbl.Ref(),
	}
	if iface.HasIID {
		iid := iface.IID
		class.IID = &iid
	}

	class.AddImport(iface.Ref())
	class.AddImport(vtbl.Ref())
	class.AddImport(g.runtime.Namespace())
	class.AddImport(g.runtime.ScopeType())
	class.AddImport(g.runtime.SegmentType())
	class.AddImport(g.runtime.AddressType())

	class.AddMember(&models.FieldDecl{
		Name:      FieldScope,
		Type:      g.runtime.ScopeType(),
		Modifiers: models.Modifiers{Final: true},
		Init:      g.runtime.ImplicitScope(),
	})
	class.AddMember(&models.FieldDecl{
		Name:      FieldObject,
		Type:      g.runtime.AddressType(),
		Modifiers: models.Modifiers{Public: true, Final: true},
	})
	class.AddMember(&models.FieldDecl{
		Name:      FieldVtable,
		Type:      g.runtime.SegmentType(),
		Modifiers: models.Modifiers{Final: true},
	})

	result := &Assembly{Class: class, Matched: MatchSlots(vtbl)}

	// Slots are synthesized before the constructor is emitted so that the
	// constructor only initializes fields that exist on the class.
	type synthesized struct {
		field  *models.FieldDecl
		method *models.MethodDecl
	}
	var usable []MatchedSlot
	var members []synthesized
	for _, slot := range result.Matched {
		field, method, err := g.synthesizeWrapper(iface, slot)
		if err != nil {
			result.Failures = append(result.Failures, err)
			g.sink.ReportSlotFailure(err)
			continue
		}
		usable = append(usable, slot)
		members = append(members, synthesized{field: field, method: method})
	}

	class.AddMember(g.synthesizeConstructor(iface, vtbl, usable))
	if accessor := g.synthesizeIdentity(iface); accessor != nil {
		class.AddMember(accessor)
	}
	for _, m := range members {
		class.AddMember(m.field)
		class.AddMember(m.method)
	}

	return result
}
