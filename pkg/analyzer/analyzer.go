// Package analyzer defines the analyzer contract, category registry, and the
// shared file and directory traversal used by all analyzer variants.
package analyzer

import (
	"context"
	"errors"

	"github.com/scaffgen/core/pkg/domain"
)

var (
	// ErrPathNotFound is returned when a path exists neither as file nor directory.
	ErrPathNotFound = errors.New("analyzer: path not found")
	// ErrUnknownCategory is returned when no analyzer is registered for a category.
	ErrUnknownCategory = errors.New("analyzer: unknown category")
)

// Analyzer converts C# source into method metadata for one structural category.
//
// File reading is the only I/O; content analysis is a pure function of the
// source text. Directory analysis checks cooperative cancellation once per
// file and skips generated files and build-output directories.
type Analyzer interface {
	// Category identifies the structural category this analyzer covers.
	Category() domain.Category

	// CanAnalyze reports whether the file at path is in scope for this analyzer.
	CanAnalyze(path string) bool

	// AnalyzeFile reads and analyzes a single source file.
	AnalyzeFile(ctx context.Context, path string) ([]domain.MethodMetadata, error)

	// AnalyzeDirectory analyzes every in-scope source file below path.
	AnalyzeDirectory(ctx context.Context, path string, recursive bool) ([]domain.MethodMetadata, error)

	// AnalyzeContent analyzes source text directly. displayName is recorded
	// as the file path on the produced metadata.
	AnalyzeContent(ctx context.Context, source []byte, displayName string) ([]domain.MethodMetadata, error)
}

// ContentAnalyzer is the variant-specific part of an [Analyzer]. The shared
// [Runner] supplies the file and directory halves of the contract.
type ContentAnalyzer interface {
	CanAnalyze(path string) bool
	AnalyzeContent(ctx context.Context, source []byte, displayName string) ([]domain.MethodMetadata, error)
}
