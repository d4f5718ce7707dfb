package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildBinary compiles the CLI once for the exec-based tests
func buildBinary(t *testing.T) string {
	t.Helper()
	binaryPath := filepath.Join(t.TempDir(), "assistedinject")
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI binary: %s", output)
	return binaryPath
}

func TestCLIArgumentParsing(t *testing.T) {
	binaryPath := buildBinary(t)

	t.Run("help flag", func(t *testing.T) {
		output, err := exec.Command(binaryPath, "--help").CombinedOutput()
		assert.NoError(t, err)

		outputStr := string(output)
		assert.Contains(t, outputStr, "Usage:")
		assert.Contains(t, outputStr, "Assisted Injection Factory Generator")
		assert.Contains(t, outputStr, "--module")
		assert.Contains(t, outputStr, "directory-paths")
	})

	t.Run("no arguments", func(t *testing.T) {
		output, err := exec.Command(binaryPath).CombinedOutput()
		assert.Error(t, err)
		assert.Contains(t, string(output), "At least one directory path is required")
	})

	t.Run("nonexistent directory", func(t *testing.T) {
		cmd := exec.Command(binaryPath, "--quiet", "/nonexistent/directory")
		cmd.Dir = t.TempDir()
		output, err := cmd.CombinedOutput()
		assert.Error(t, err)
		assert.NotEmpty(t, output)
	})
}

func TestCLIGenerateAndClean(t *testing.T) {
	binaryPath := buildBinary(t)

	projectDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "go.mod"),
		[]byte("module github.com/example/app\n\ngo 1.25\n"), 0644))
	widgetDir := filepath.Join(projectDir, "widgets")
	require.NoError(t, os.MkdirAll(widgetDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(widgetDir, "widget.go"), []byte(`package widgets

type Widget struct{}

type Logger struct{}

//assisted::inject
//assisted::param id
func NewWidget(id int, logger *Logger) *Widget {
	return &Widget{}
}

//assisted::factory Widget
type WidgetFactory interface {
	Create(id int) *Widget
}
`), 0644))

	generatedFile := filepath.Join(widgetDir, "assistedinject_gen.go")

	cmd := exec.Command(binaryPath, "--quiet", "./...")
	cmd.Dir = projectDir
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "generation failed: %s", output)
	assert.FileExists(t, generatedFile)

	cmd = exec.Command(binaryPath, "--quiet", "--clean", "./...")
	cmd.Dir = projectDir
	output, err = cmd.CombinedOutput()
	require.NoError(t, err, "clean failed: %s", output)
	assert.NoFileExists(t, generatedFile)
}
