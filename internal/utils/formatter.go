package utils

import (
	"golang.org/x/tools/imports"
)

// FormatGoSource formats generated Go source and prunes any unused imports.
// The filename is only used for error positions.
func FormatGoSource(filename string, source []byte) ([]byte, error) {
	return imports.Process(filename, source, &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
}
