package utils

import (
	"strings"
	"testing"
)

func TestFormatGoSourcePrunesUnusedImports(t *testing.T) {
	source := `package widgets

import (
	"fmt"
	"os"
)

func Hello() { fmt.Println("hello") }
`

	formatted, err := FormatGoSource("widgets.go", []byte(source))
	if err != nil {
		t.Fatalf("FormatGoSource() failed: %v", err)
	}

	result := string(formatted)
	if !strings.Contains(result, `"fmt"`) {
		t.Errorf("used import should survive formatting:\n%s", result)
	}
	if strings.Contains(result, `"os"`) {
		t.Errorf("unused import should be pruned:\n%s", result)
	}
}

func TestFormatGoSourceRejectsInvalidSource(t *testing.T) {
	_, err := FormatGoSource("broken.go", []byte("package widgets\n\nfunc {\n"))
	if err == nil {
		t.Fatal("expected an error for unparsable source")
	}
}
