package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/toyz/vtwrap/internal/errors"
	"github.com/toyz/vtwrap/internal/generator"
	"github.com/toyz/vtwrap/internal/metadata"
	"github.com/toyz/vtwrap/internal/models"
	"github.com/toyz/vtwrap/internal/templates"
	"github.com/toyz/vtwrap/internal/utils"
)

// Generator coordinates the CLI generation process
type Generator struct {
	loader         *metadata.Loader
	moduleResolver *ModuleResolver
	reporter       *DiagnosticReporter
	diagnostics    *utils.DiagnosticSystem
	summary        GenerationSummary
}

// NewGenerator creates a new CLI generator
func NewGenerator(verbose bool) *Generator {
	level := utils.DiagnosticInfo
	if verbose {
		level = utils.DiagnosticVerbose
	}
	return NewGeneratorWithDiagnostics(verbose, utils.NewDiagnosticSystem(level))
}

// NewGeneratorWithDiagnostics creates a new CLI generator writing progress to diagnostics
func NewGeneratorWithDiagnostics(verbose bool, diagnostics *utils.DiagnosticSystem) *Generator {
	return &Generator{
		loader:         metadata.NewLoader(),
		moduleResolver: NewModuleResolver(),
		reporter:       NewDiagnosticReporter(verbose),
		diagnostics:    diagnostics,
	}
}

// Reporter returns the reporter receiving slot failures and fatal errors
func (g *Generator) Reporter() *DiagnosticReporter {
	return g.reporter
}

// GetSummary returns the generation summary
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run executes the complete generation process
func (g *Generator) Run(config *Config) error {
	startTime := time.Now()
	g.summary = GenerationSummary{GeneratedFiles: make([]string, 0)}
	g.reporter.ResetSlotFailures()

	if err := config.Validate(); err != nil {
		return err
	}
	g.diagnostics.Debug("Descriptor patterns: %v", config.Directories)

	renderer, err := g.newRenderer(config)
	if err != nil {
		return err
	}
	g.diagnostics.Verbose("Rendering %s output", renderer.Language())

	g.diagnostics.PhaseHeader("Loading descriptors")
	universe, err := g.loader.Load(config.Directories)
	if err != nil {
		return err
	}
	if len(universe.Files) == 0 {
		return errors.New(errors.ValidationErrorCode, "no descriptor files found in specified directories").
			WithContext("directories", config.Directories).
			WithSuggestions(
				"Ensure the directories contain "+utils.DescriptorExt+" files",
				"Try scanning parent directories or use './...' pattern",
			)
	}
	g.summary.DescriptorFiles = len(universe.Files)
	for _, file := range universe.Files {
		g.diagnostics.PhaseItem(fmt.Sprintf("%s (%d pairs)", file.Path, len(file.Pairs)))
	}

	gen := generator.NewGenerator(config.NativeRuntime(),
		generator.WithExceptions(config.ExceptionTable()),
		generator.WithDiagnostics(g.reporter),
		generator.WithClassSuffix(config.Output.ClassSuffix),
		generator.WithPackage(config.Output.Package),
	)

	g.diagnostics.PhaseHeader("Generating wrappers")
	written := make(map[string]string)
	for _, pair := range universe.Pairs() {
		g.summary.Pairs++
		generated, err := g.generatePair(gen, renderer, config, pair)
		if err != nil {
			return err
		}
		if other, ok := written[generated.FilePath]; ok {
			return errors.New(errors.ValidationErrorCode,
				fmt.Sprintf("%s and %s both generate %s", other, pair.Source, generated.FilePath)).
				WithSuggestion("rename one of the interfaces or write the outputs to separate directories")
		}
		if err := g.writeFile(generated); err != nil {
			return err
		}
		written[generated.FilePath] = pair.Source

		g.diagnostics.PhaseProgress(fmt.Sprintf("Writing %s (%d slots, %d skipped)", generated.FilePath, generated.Slots, generated.Skipped))
		g.summary.ClassesGenerated++
		g.summary.SlotsGenerated += generated.Slots
		g.summary.SlotsSkipped += generated.Skipped
		g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, generated.FilePath)
	}

	g.diagnostics.Verbose("Generation completed in %v", time.Since(startTime))

	if config.Strict && g.summary.SlotsSkipped > 0 {
		failures := errors.NewMultipleErrors()
		for _, f := range g.reporter.SlotFailures() {
			failures.Add(f)
		}
		return failures
	}
	return nil
}

// generatePair assembles and renders one interface/vtable pair
func (g *Generator) generatePair(gen *generator.Generator, renderer templates.Renderer, config *Config, pair models.InterfacePair) (*models.GeneratedFile, error) {
	assembly := gen.AssemblePair(pair)
	g.diagnostics.Debug("%s: %d slots matched, %d failed", assembly.Class.Name, len(assembly.Matched), len(assembly.Failures))

	content, err := renderer.Render(assembly.Class)
	if err != nil {
		return nil, err
	}

	dir := config.Output.Dir
	if dir == "" {
		dir = filepath.Dir(pair.Source)
	}

	return &models.GeneratedFile{
		ClassName: assembly.Class.Name,
		FilePath:  filepath.Join(dir, renderer.FileName(assembly.Class)),
		Content:   content,
		Slots:     assembly.Generated(),
		Skipped:   len(assembly.Failures),
	}, nil
}

// newRenderer builds the renderer for the configured language, resolving Go
// import paths of the runtime packages when rendering Go
func (g *Generator) newRenderer(config *Config) (templates.Renderer, error) {
	opts := templates.RenderOptions{PackageImports: make(map[string]string)}

	if strings.EqualFold(config.Output.Language, templates.LanguageGo) {
		runtimeImport, err := g.moduleResolver.RuntimeImportPath(config, g.moduleSearchDir(config))
		if err != nil {
			g.reporter.ReportWarning(
				fmt.Sprintf("runtime types will be left unqualified: %v", err),
				"set runtime.go_import in "+ConfigFileName,
			)
		} else if outImport, ok := g.moduleResolver.OutputImportPath(config.Output.Dir); ok && outImport == runtimeImport {
			g.diagnostics.Verbose("Output directory is the runtime package %s", runtimeImport)
		} else {
			opts.PackageImports[config.Runtime.Package] = runtimeImport
		}
		if config.Runtime.NamespaceGoImport != "" {
			opts.PackageImports[config.Runtime.NamespacePackage] = config.Runtime.NamespaceGoImport
		}
		if config.Output.Dir != "" {
			tu := templates.NewTemplateUtils()
			if config.Output.Package != "" {
				opts.GoPackage = tu.SanitizeIdent(tu.PackageTail(config.Output.Package))
			} else {
				opts.GoPackage = tu.SanitizeIdent(filepath.Base(config.Output.Dir))
			}
		}
	}

	return templates.NewRenderer(config.Output.Language, opts)
}

// moduleSearchDir is where the go.mod lookup starts
func (g *Generator) moduleSearchDir(config *Config) string {
	if config.Output.Dir != "" {
		if abs, err := filepath.Abs(config.Output.Dir); err == nil {
			return abs
		}
	}
	return ""
}

// writeFile writes a generated file, creating its directory when needed
func (g *Generator) writeFile(file *models.GeneratedFile) error {
	dir := filepath.Dir(file.FilePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapFileSystemError("create directory for", file.FilePath, err)
	}
	if err := os.WriteFile(file.FilePath, file.Content, 0o644); err != nil {
		return errors.WrapFileSystemError("write", file.FilePath, err)
	}
	return nil
}

// ReportSuccess reports successful generation using the diagnostic reporter
func (g *Generator) ReportSuccess() {
	g.reporter.ReportSuccess(g.summary)
}
