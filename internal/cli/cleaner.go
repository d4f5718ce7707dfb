package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/grandstaish/assistedinject/internal/parser"
)

// Cleaner removes previously generated output files
type Cleaner struct{}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// CleanGeneratedFiles removes every generated file under the given
// directories and patterns, returning the paths that were removed
func (c *Cleaner) CleanGeneratedFiles(patterns []string) ([]string, error) {
	var removed []string

	for _, pattern := range patterns {
		if strings.HasSuffix(pattern, "/...") {
			base := strings.TrimSuffix(pattern, "/...")
			if base == "" {
				base = "."
			}
			err := filepath.WalkDir(base, func(path string, entry fs.DirEntry, err error) error {
				if err != nil {
					return nil // inaccessible subtrees are skipped, not fatal
				}
				if !entry.IsDir() {
					return nil
				}
				if skipDir(entry.Name(), path != base) {
					return filepath.SkipDir
				}
				return c.cleanDirectory(path, &removed)
			})
			if err != nil {
				return removed, fmt.Errorf("failed to clean pattern %s: %w", pattern, err)
			}
			continue
		}

		if err := c.cleanDirectory(pattern, &removed); err != nil {
			return removed, fmt.Errorf("failed to clean directory %s: %w", pattern, err)
		}
	}

	return removed, nil
}

// cleanDirectory removes the generated file from a single directory if present
func (c *Cleaner) cleanDirectory(dir string, removed *[]string) error {
	target := filepath.Join(dir, parser.GeneratedFileName)
	if _, err := os.Stat(target); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to check file %s: %w", target, err)
	}

	if err := os.Remove(target); err != nil {
		return fmt.Errorf("failed to remove file %s: %w", target, err)
	}
	*removed = append(*removed, target)
	return nil
}
