package cli

import (
	"fmt"
	"os"
	"path"

	"github.com/toyz/vtwrap/internal/utils"
)

// RuntimeSubpackage is appended to the module path when no runtime import path is configured
const RuntimeSubpackage = "runtime"

// ModuleResolver maps runtime and output packages to Go import paths
type ModuleResolver struct{}

// NewModuleResolver creates a new module resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{}
}

// ResolveModuleName returns customModule when set, otherwise the module of
// the go.mod found at or above startDir (the working directory when empty).
func (r *ModuleResolver) ResolveModuleName(customModule, startDir string) (string, error) {
	if customModule != "" {
		return customModule, nil
	}

	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		startDir = wd
	}

	mod, err := utils.FindModule(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to determine module name: %w (consider setting module in %s)", err, ConfigFileName)
	}
	return mod.Path, nil
}

// RuntimeImportPath returns the Go import path of the runtime package: the
// configured one, or <module>/runtime.
func (r *ModuleResolver) RuntimeImportPath(cfg *Config, startDir string) (string, error) {
	if cfg.Runtime.GoImport != "" {
		return cfg.Runtime.GoImport, nil
	}
	module, err := r.ResolveModuleName(cfg.ModuleName, startDir)
	if err != nil {
		return "", err
	}
	return path.Join(module, RuntimeSubpackage), nil
}

// OutputImportPath returns the import path of outDir when it lies inside a Go module
func (r *ModuleResolver) OutputImportPath(outDir string) (string, bool) {
	if outDir == "" {
		return "", false
	}
	mod, err := utils.FindModule(outDir)
	if err != nil {
		return "", false
	}
	importPath, err := mod.ImportPath(outDir)
	if err != nil {
		return "", false
	}
	return importPath, true
}
