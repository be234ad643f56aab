package cli

import (
	"github.com/toyz/vtwrap/internal/utils"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	fileProcessor *utils.FileProcessor
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// CleanGeneratedFiles removes every file carrying the generated header from
// the given directory patterns and returns the removed paths. Hand-written
// files are never touched.
func (c *Cleaner) CleanGeneratedFiles(patterns []string) ([]string, error) {
	files, err := c.fileProcessor.ExpandPatterns(patterns, utils.GeneratedFileFilter())
	if err != nil {
		return nil, err
	}
	return c.fileProcessor.RemoveFiles(files)
}
