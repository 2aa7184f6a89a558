// Package engine orchestrates the analyze and generate pipelines consumed by
// the command-line layer: dispatch to an analyzer, persist analysis reports,
// and render one test-scaffold file per discovered containing type.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/scaffgen/core/pkg/analyzer"
	"github.com/scaffgen/core/pkg/domain"
	"github.com/scaffgen/core/pkg/generator"

	// Register the analyzer variants and generator styles.
	_ "github.com/scaffgen/core/pkg/analyzer/azfunc"
	_ "github.com/scaffgen/core/pkg/analyzer/desktop"
	_ "github.com/scaffgen/core/pkg/analyzer/mvc"
	_ "github.com/scaffgen/core/pkg/analyzer/webforms"
	_ "github.com/scaffgen/core/pkg/generator/nunit"
	_ "github.com/scaffgen/core/pkg/generator/xunit"
)

// DefaultFramework is the generator style used when none is requested.
const DefaultFramework = "xunit"

// TestFileSuffix is appended to a containing-type name to form the generated
// file name.
const TestFileSuffix = "Tests"

// AnalyzeOptions configures one analysis pass.
type AnalyzeOptions struct {
	// Path is the file or directory to analyze.
	Path string
	// Category selects the analyzer variant; empty or auto lets the
	// dispatcher decide.
	Category domain.Category
	// OutputPath, when set, receives the indented JSON report.
	OutputPath string
	// Recursive controls directory traversal depth.
	Recursive bool
	// AnalyzerOptions are passed through to the selected analyzer.
	AnalyzerOptions []analyzer.Option
}

// GenerateOptions configures one generation pass.
type GenerateOptions struct {
	// Path is the file or directory to analyze.
	Path string
	// Category selects the analyzer variant; empty or auto lets the
	// dispatcher decide.
	Category domain.Category
	// Framework selects the generator style. Defaults to [DefaultFramework].
	Framework string
	// OutputDir receives one test-source file per containing type.
	// Created if absent. Defaults to "GeneratedTests".
	OutputDir string
	// Recursive controls directory traversal depth.
	Recursive bool
	// AnalyzerOptions are passed through to the selected analyzer.
	AnalyzerOptions []analyzer.Option
}

// GenerateResult reports what a generation pass produced.
type GenerateResult struct {
	// Report is the analysis the scaffolds were generated from.
	Report *domain.AnalysisReport
	// Files lists the written test-source file paths.
	Files []string
}

// Engine runs the analysis and generation pipelines.
type Engine struct {
	fs analyzer.FileSystem
}

// Option customizes an Engine.
type Option func(*Engine)

// WithFileSystem replaces the filesystem collaborator used for dispatch and
// analysis.
func WithFileSystem(fs analyzer.FileSystem) Option {
	return func(e *Engine) { e.fs = fs }
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{fs: analyzer.OSFileSystem{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze runs one analysis pass and returns its report. Failures propagate
// uncaught; there is no partial-success mode.
func (e *Engine) Analyze(ctx context.Context, opts AnalyzeOptions) (*domain.AnalysisReport, error) {
	category, err := e.resolveCategory(ctx, opts.Category, opts.Path)
	if err != nil {
		return nil, err
	}

	analyzerOpts := append([]analyzer.Option{analyzer.WithFileSystem(e.fs)}, opts.AnalyzerOptions...)
	a, err := analyzer.New(category, analyzerOpts...)
	if err != nil {
		return nil, err
	}

	info, err := e.fs.Stat(opts.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", analyzer.ErrPathNotFound, opts.Path)
		}
		return nil, fmt.Errorf("stat %s: %w", opts.Path, err)
	}

	var methods []domain.MethodMetadata
	if info.IsDir() {
		methods, err = a.AnalyzeDirectory(ctx, opts.Path, opts.Recursive)
	} else {
		methods, err = a.AnalyzeFile(ctx, opts.Path)
	}
	if err != nil {
		return nil, err
	}

	report := &domain.AnalysisReport{
		ID:          uuid.NewString(),
		RootPath:    opts.Path,
		Category:    category,
		GeneratedAt: time.Now().UTC(),
		Methods:     methods,
	}

	if opts.OutputPath != "" {
		if err := WriteReport(report, opts.OutputPath); err != nil {
			return nil, err
		}
	}

	return report, nil
}

// Generate runs one generation pass: analyze, group methods by containing
// type, and write one rendered test class per type into the output
// directory.
func (e *Engine) Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	framework := opts.Framework
	if framework == "" {
		framework = DefaultFramework
	}
	gen, err := generator.New(framework)
	if err != nil {
		return nil, err
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = "GeneratedTests"
	}

	report, err := e.Analyze(ctx, AnalyzeOptions{
		Path:            opts.Path,
		Category:        opts.Category,
		Recursive:       opts.Recursive,
		AnalyzerOptions: opts.AnalyzerOptions,
	})
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", outputDir, err)
	}

	byType := groupByContainingType(report.Methods)

	result := &GenerateResult{Report: report}
	for _, typeName := range report.ContainingTypes() {
		rendered := gen.GenerateTestClass(typeName, byType[typeName])

		path := filepath.Join(outputDir, typeName+TestFileSuffix+".cs")
		if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		result.Files = append(result.Files, path)
	}

	return result, nil
}

func (e *Engine) resolveCategory(ctx context.Context, category domain.Category, path string) (domain.Category, error) {
	if category == "" || category == domain.CategoryAuto {
		return analyzer.Detect(ctx, e.fs, path)
	}
	if def := analyzer.DefaultRegistry().Find(category); def == nil {
		return "", fmt.Errorf("%w: %s", analyzer.ErrUnknownCategory, category)
	}
	return category, nil
}

func groupByContainingType(methods []domain.MethodMetadata) map[string][]domain.MethodMetadata {
	byType := make(map[string][]domain.MethodMetadata)
	for _, m := range methods {
		byType[m.ContainingType] = append(byType[m.ContainingType], m)
	}
	return byType
}

// WriteReport serializes a report as indented JSON to path.
func WriteReport(report *domain.AnalysisReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

// ReadReport loads a report previously written with [WriteReport].
func ReadReport(path string) (*domain.AnalysisReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", path, err)
	}
	var report domain.AnalysisReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", path, err)
	}
	return &report, nil
}
