package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/grandstaish/assistedinject/internal/parser"
)

// DirectoryScanner finds package directories to process. Patterns ending in
// /... are expanded recursively the way the go tool does.
type DirectoryScanner struct{}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{}
}

// ScanDirectories resolves the given directories and patterns into the list
// of package directories containing Go source, in stable order
func (s *DirectoryScanner) ScanDirectories(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string

	add := func(dir string) error {
		clean := filepath.Clean(dir)
		if seen[clean] {
			return nil
		}
		hasGo, err := containsGoSource(clean)
		if err != nil {
			return err
		}
		if hasGo {
			seen[clean] = true
			dirs = append(dirs, clean)
		}
		return nil
	}

	for _, pattern := range patterns {
		if !strings.HasSuffix(pattern, "/...") {
			if _, err := os.Stat(pattern); err != nil {
				return nil, fmt.Errorf("failed to scan directory %s: %w", pattern, err)
			}
			if err := add(pattern); err != nil {
				return nil, err
			}
			continue
		}

		base := strings.TrimSuffix(pattern, "/...")
		if base == "" {
			base = "."
		}
		err := filepath.WalkDir(base, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !entry.IsDir() {
				return nil
			}
			if skipDir(entry.Name(), path != base) {
				return filepath.SkipDir
			}
			return add(path)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan pattern %s: %w", pattern, err)
		}
	}

	return dirs, nil
}

// skipDir reports whether a directory is excluded from recursive scanning,
// matching the go tool's treatment of vendor, testdata, and hidden trees
func skipDir(name string, nested bool) bool {
	if !nested {
		return false
	}
	if name == "vendor" || name == "testdata" {
		return true
	}
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// containsGoSource reports whether a directory holds at least one Go file
// that the parser would read
func containsGoSource(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}
		if strings.HasSuffix(name, "_test.go") || name == parser.GeneratedFileName {
			continue
		}
		return true, nil
	}
	return false, nil
}
