// Package cli coordinates the end-to-end generation run: directory scanning,
// package parsing, validation, and writing generated factory files.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/grandstaish/assistedinject/internal/generator"
	"github.com/grandstaish/assistedinject/internal/parser"
	"github.com/grandstaish/assistedinject/internal/processor"
	"github.com/grandstaish/assistedinject/internal/utils"
)

// GenerationSummary captures the outcome of one run
type GenerationSummary struct {
	PackagesScanned    int
	PackagesGenerated  int
	FactoriesGenerated int
	GeneratedFiles     []string
	ValidationErrors   int
	Duration           time.Duration
}

// Generator coordinates the CLI generation process
type Generator struct {
	scanner        *DirectoryScanner
	moduleResolver *ModuleResolver
	diagnostics    *utils.DiagnosticSystem
	summary        GenerationSummary
}

// NewGenerator creates a new CLI generator writing through the given
// diagnostic system
func NewGenerator(diagnostics *utils.DiagnosticSystem) *Generator {
	return &Generator{
		scanner:        NewDirectoryScanner(),
		moduleResolver: NewModuleResolver(),
		diagnostics:    diagnostics,
	}
}

// GetSummary returns the summary of the last run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run executes the complete generation process. Validation failures in one
// package never stop the others; the run fails at the end if any package
// reported errors.
func (g *Generator) Run(config Config) error {
	startTime := time.Now()
	g.summary = GenerationSummary{GeneratedFiles: make([]string, 0)}

	g.diagnostics.Verbose("Starting factory generation at %s", startTime.Format("15:04:05"))
	g.diagnostics.Debug("Scanning directories: %v", config.Directories)

	moduleName, err := g.moduleResolver.ResolveModuleName(config.ModuleName)
	if err != nil {
		g.diagnostics.Error("Failed to resolve module name: %v", err)
		return err
	}
	g.diagnostics.Debug("Resolved module name: %s", moduleName)

	packageDirs, err := g.scanner.ScanDirectories(config.Directories)
	if err != nil {
		g.diagnostics.Error("Failed to scan directories: %v", err)
		return err
	}
	if len(packageDirs) == 0 {
		g.diagnostics.Warn("No Go packages found in %v", config.Directories)
		g.summary.Duration = time.Since(startTime)
		return nil
	}

	reporter := utils.NewConsoleReporter(g.diagnostics, config.Verbose)

	for _, dir := range packageDirs {
		g.summary.PackagesScanned++
		if importPath, err := g.moduleResolver.BuildPackagePath(moduleName, dir); err == nil {
			g.diagnostics.Verbose("Processing package %s", importPath)
		}
		g.processPackage(dir, config, reporter)
	}

	g.summary.ValidationErrors += reporter.ErrorCount()
	g.summary.Duration = time.Since(startTime)

	if g.summary.ValidationErrors > 0 {
		return fmt.Errorf("validation failed with %d error(s)", g.summary.ValidationErrors)
	}
	return nil
}

// processPackage runs the pipeline for one package directory and writes its
// generated file when any factory was produced
func (g *Generator) processPackage(dir string, config Config, reporter *utils.ConsoleReporter) {
	universe, err := parser.NewParser().ParseDirectory(dir)
	if err != nil {
		g.diagnostics.Error("Failed to parse package %s: %v", dir, err)
		g.summary.ValidationErrors++
		return
	}

	emitter := generator.NewEmitter(universe)
	processor.New(universe, reporter, emitter).Process()

	file, err := emitter.File()
	if err != nil {
		g.diagnostics.Error("Failed to generate output for package %s: %v", dir, err)
		g.summary.ValidationErrors++
		return
	}
	if file == nil {
		g.diagnostics.Debug("Package %s has no assisted declarations", dir)
		return
	}

	if err := os.WriteFile(file.FilePath, []byte(file.Content), 0644); err != nil {
		g.diagnostics.Error("Failed to write %s: %v", file.FilePath, err)
		g.summary.ValidationErrors++
		return
	}

	g.summary.PackagesGenerated++
	g.summary.FactoriesGenerated += file.Factories
	g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, file.FilePath)
	g.diagnostics.Success("Generated %s (%d factories)", file.FilePath, file.Factories)
}
