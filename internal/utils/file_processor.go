package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/vtwrap/internal/errors"
)

// DescriptorExt is the file extension of vtable descriptor files
const DescriptorExt = ".vtd"

// GeneratedMarker appears in the header of every file vtwrap writes
const GeneratedMarker = "Code generated by vtwrap. DO NOT EDIT."

// FileProcessor provides utilities for common file processing operations
type FileProcessor struct{}

// NewFileProcessor creates a new file processor
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{}
}

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info os.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be processed
type DirectoryFilter func(path string, info os.DirEntry) bool

// FileWalkOptions configures file walking behavior
type FileWalkOptions struct {
	FileFilter      FileFilter
	DirectoryFilter DirectoryFilter
	Recursive       bool
	SkipErrors      bool
}

// DescriptorFileFilter filters for vtable descriptor files
func DescriptorFileFilter() FileFilter {
	return func(path string, info os.DirEntry) bool {
		return !info.IsDir() && strings.HasSuffix(info.Name(), DescriptorExt)
	}
}

// GeneratedFileFilter matches files whose first lines carry the generated marker
func GeneratedFileFilter() FileFilter {
	return func(path string, info os.DirEntry) bool {
		if info.IsDir() {
			return false
		}
		ext := filepath.Ext(info.Name())
		if ext != ".go" && ext != ".java" {
			return false
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return false
		}
		head := content
		if len(head) > 512 {
			head = head[:512]
		}
		return bytes.Contains(head, []byte(GeneratedMarker))
	}
}

// DefaultDirectoryFilter skips common directories that shouldn't contain descriptors
func DefaultDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		"vendor":       true,
		"node_modules": true,
		".git":         true,
		".svn":         true,
		".hg":          true,
		"testdata":     true,
	}

	return func(path string, info os.DirEntry) bool {
		if !info.IsDir() {
			return true
		}

		name := info.Name()

		// Skip hidden directories
		if strings.HasPrefix(name, ".") && name != "." && name != ".." {
			return false
		}

		return !skipDirs[name]
	}
}

// WalkFiles walks through files in a directory with filtering; subdirectories
// are only entered when options.Recursive is set.
func (fp *FileProcessor) WalkFiles(rootDir string, options FileWalkOptions) ([]string, error) {
	var matchedFiles []string

	err := filepath.WalkDir(rootDir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			if options.SkipErrors {
				return nil
			}
			return err
		}

		if entry.IsDir() {
			if path == rootDir {
				return nil
			}
			if !options.Recursive {
				return filepath.SkipDir
			}
			if options.DirectoryFilter != nil && !options.DirectoryFilter(path, entry) {
				return filepath.SkipDir
			}
			return nil
		}

		if options.FileFilter == nil || options.FileFilter(path, entry) {
			matchedFiles = append(matchedFiles, path)
		}
		return nil
	})

	return matchedFiles, err
}

// ExpandPatterns resolves Go-style directory patterns ("./...", "dir/...", "dir")
// and returns the matching files in sorted order without duplicates.
func (fp *FileProcessor) ExpandPatterns(patterns []string, filter FileFilter) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		recursive := false
		dir := pattern
		if pattern == "..." || strings.HasSuffix(pattern, "/...") {
			recursive = true
			dir = strings.TrimSuffix(strings.TrimSuffix(pattern, "..."), "/")
			if dir == "" {
				dir = "."
			}
		}

		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, errors.WrapFileSystemError("resolve", dir, err)
		}
		info, err := os.Stat(absDir)
		if err != nil {
			return nil, errors.WrapFileSystemError("stat", absDir, err)
		}
		if !info.IsDir() {
			if filter == nil || filter(absDir, fileInfoDirEntry{info: info}) {
				if !seen[absDir] {
					seen[absDir] = true
					files = append(files, absDir)
				}
				continue
			}
			return nil, fmt.Errorf("%s is neither a directory nor a matching file", absDir)
		}

		matched, err := fp.WalkFiles(absDir, FileWalkOptions{
			FileFilter:      filter,
			DirectoryFilter: DefaultDirectoryFilter(),
			Recursive:       recursive,
		})
		if err != nil {
			return nil, errors.WrapFileSystemError("walk", absDir, err)
		}
		for _, f := range matched {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// RemoveFiles deletes the given files and returns the ones that were removed
func (fp *FileProcessor) RemoveFiles(paths []string) ([]string, error) {
	var removed []string
	for _, path := range paths {
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, errors.WrapFileSystemError("remove", path, err)
		}
		removed = append(removed, path)
	}
	return removed, nil
}

type fileInfoDirEntry struct {
	info os.FileInfo
}

func (f fileInfoDirEntry) Name() string               { return f.info.Name() }
func (f fileInfoDirEntry) IsDir() bool                { return f.info.IsDir() }
func (f fileInfoDirEntry) Type() os.FileMode          { return f.info.Mode().Type() }
func (f fileInfoDirEntry) Info() (os.FileInfo, error) { return f.info, nil }
