package metadata

import (
	"github.com/toyz/vtwrap/internal/errors"
	"github.com/toyz/vtwrap/internal/models"
	"github.com/toyz/vtwrap/internal/utils"
)

// Universe is the combined result of loading a set of descriptor files
type Universe struct {
	Files []*File
}

// Pairs returns every interface/vtable pair in file order
func (u *Universe) Pairs() []models.InterfacePair {
	var pairs []models.InterfacePair
	for _, f := range u.Files {
		pairs = append(pairs, f.Pairs...)
	}
	return pairs
}

// Loader discovers and parses descriptor files
type Loader struct {
	fileProcessor *utils.FileProcessor
}

// NewLoader creates a new descriptor loader
func NewLoader() *Loader {
	return &Loader{fileProcessor: utils.NewFileProcessor()}
}

// Discover expands directory patterns into descriptor file paths
func (l *Loader) Discover(patterns []string) ([]string, error) {
	return l.fileProcessor.ExpandPatterns(patterns, utils.DescriptorFileFilter())
}

// Load parses every descriptor file matched by patterns. Parsing continues past
// a broken file so that all syntax errors are reported together.
func (l *Loader) Load(patterns []string) (*Universe, error) {
	paths, err := l.Discover(patterns)
	if err != nil {
		return nil, err
	}

	universe := &Universe{}
	errs := errors.NewMultipleErrors()
	for _, path := range paths {
		file, err := ParseFile(path)
		if err != nil {
			if ve, ok := err.(errors.VtwrapError); ok {
				errs.Add(ve)
			} else {
				errs.Add(errors.WrapParseError(path, err))
			}
			continue
		}
		universe.Files = append(universe.Files, file)
	}

	errs.SortByLocation()
	return universe, errs.ErrOrNil()
}
