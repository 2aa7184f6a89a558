package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/scaffgen/core/pkg/analyzer/depend"
	"github.com/scaffgen/core/pkg/domain"
)

// Runner implements the file and directory halves of the [Analyzer] contract
// on top of a variant's [ContentAnalyzer]. Variants embed a Runner built
// around themselves.
type Runner struct {
	impl ContentAnalyzer
	opts Options
}

// NewRunner builds a Runner delegating content analysis to impl.
func NewRunner(impl ContentAnalyzer, opts ...Option) *Runner {
	options := Options{}
	for _, opt := range opts {
		opt(&options)
	}
	applyDefaults(&options)

	return &Runner{
		impl: impl,
		opts: options,
	}
}

// FS returns the filesystem collaborator.
func (r *Runner) FS() FileSystem {
	return r.opts.FS
}

// Extractor returns the configured dependency extractor.
func (r *Runner) Extractor() *depend.Extractor {
	return r.opts.Extractor
}

// AnalyzeFile reads path and analyzes its content.
func (r *Runner) AnalyzeFile(ctx context.Context, path string) ([]domain.MethodMetadata, error) {
	source, err := r.opts.FS.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return r.impl.AnalyzeContent(ctx, source, path)
}

// AnalyzeDirectory analyzes every in-scope source file below path.
//
// Files are discovered in sorted order; with the default single worker the
// pass is strictly sequential and cancellation is checked once per file.
// The pass is fail-fast: the first file error aborts it with no partial
// results.
func (r *Runner) AnalyzeDirectory(ctx context.Context, path string, recursive bool) ([]domain.MethodMetadata, error) {
	info, err := r.opts.FS.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrPathNotFound, path)
	}

	files, err := r.discoverFiles(path, recursive)
	if err != nil {
		return nil, err
	}

	if r.opts.Workers <= 1 {
		return r.analyzeSequential(ctx, files)
	}
	return r.analyzeParallel(ctx, files)
}

func (r *Runner) discoverFiles(root string, recursive bool) ([]string, error) {
	pattern := "*.cs"
	if recursive {
		pattern = "**/*.cs"
	}

	matches, err := r.opts.FS.Glob(root, pattern)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", root, err)
	}

	var files []string
	for _, f := range matches {
		if r.skipPath(root, f) {
			continue
		}
		if !r.impl.CanAnalyze(f) {
			continue
		}
		files = append(files, f)
	}
	sort.Strings(files)
	return files, nil
}

func (r *Runner) skipPath(root, path string) bool {
	if IsGeneratedFile(path) {
		return true
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	for _, segment := range strings.Split(filepath.ToSlash(rel), "/") {
		for _, skip := range r.opts.SkipDirs {
			if segment == skip {
				return true
			}
		}
	}
	return false
}

// IsGeneratedFile reports whether path names a designer- or tool-generated
// source file.
func IsGeneratedFile(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	for _, suffix := range generatedFileSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

func (r *Runner) analyzeSequential(ctx context.Context, files []string) ([]domain.MethodMetadata, error) {
	var methods []domain.MethodMetadata
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		found, err := r.AnalyzeFile(ctx, file)
		if err != nil {
			return nil, err
		}
		methods = append(methods, found...)
	}
	return methods, nil
}

func (r *Runner) analyzeParallel(ctx context.Context, files []string) ([]domain.MethodMetadata, error) {
	sem := semaphore.NewWeighted(int64(r.opts.Workers))
	g, gCtx := errgroup.WithContext(ctx)

	// Results indexed by discovery position so output order matches the
	// sequential pass.
	results := make([][]domain.MethodMetadata, len(files))

	for i, file := range files {
		i, file := i, file

		g.Go(func() error {
			if err := sem.Acquire(gCtx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			found, err := r.AnalyzeFile(gCtx, file)
			if err != nil {
				return err
			}
			results[i] = found
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var methods []domain.MethodMetadata
	for _, found := range results {
		methods = append(methods, found...)
	}
	return methods, nil
}
