package utils

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// Module is the Go module enclosing a directory
type Module struct {
	Path string // module directive of go.mod
	Dir  string // directory containing go.mod
}

// FindModule reads the nearest go.mod at or above startDir. startDir does not
// have to exist yet, which lets callers resolve output directories before writing.
func FindModule(startDir string) (*Module, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}
	for {
		goMod := filepath.Join(dir, "go.mod")
		if info, err := os.Stat(goMod); err == nil && !info.IsDir() {
			modPath, err := readModulePath(goMod)
			if err != nil {
				return nil, err
			}
			return &Module{Path: modPath, Dir: dir}, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, fmt.Errorf("go.mod file not found above %s", startDir)
		}
		dir = parent
	}
}

func readModulePath(goMod string) (string, error) {
	content, err := os.ReadFile(goMod)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", goMod, err)
	}
	f, err := modfile.ParseLax(goMod, content, nil)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", goMod, err)
	}
	if f.Module == nil {
		return "", fmt.Errorf("no module declaration found in %s", goMod)
	}
	return f.Module.Mod.Path, nil
}

// ImportPath maps a directory inside the module to its package import path
func (m *Module) ImportPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(m.Dir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside module %s", dir, m.Path)
	}
	if rel == "." {
		return m.Path, nil
	}
	return path.Join(m.Path, filepath.ToSlash(rel)), nil
}
