package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scaffgen/core/pkg/domain"
)

// Probe exposes the signals category matchers inspect: file names below a
// path, marker files at its root, and source content substrings. Content is
// read lazily and only by matchers that need it.
type Probe struct {
	fs    FileSystem
	path  string
	isDir bool

	files       []string
	filesLoaded bool
}

// NewProbe stats path and prepares a probe over it.
func NewProbe(fs FileSystem, path string) (*Probe, error) {
	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	return &Probe{
		fs:    fs,
		path:  path,
		isDir: info.IsDir(),
	}, nil
}

// Path returns the probed path.
func (p *Probe) Path() string {
	return p.path
}

// IsDir reports whether the probed path is a directory.
func (p *Probe) IsDir() bool {
	return p.isDir
}

// Files returns every file below the probed path, or the path itself when it
// is a single file.
func (p *Probe) Files() ([]string, error) {
	if p.filesLoaded {
		return p.files, nil
	}

	if !p.isDir {
		p.files = []string{p.path}
	} else {
		matches, err := p.fs.Glob(p.path, "**/*")
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", p.path, err)
		}
		p.files = matches
	}

	p.filesLoaded = true
	return p.files, nil
}

// HasFileMatching reports whether any file name below the path satisfies pred.
func (p *Probe) HasFileMatching(pred func(name string) bool) (bool, error) {
	files, err := p.Files()
	if err != nil {
		return false, err
	}
	for _, f := range files {
		if pred(filepath.Base(f)) {
			return true, nil
		}
	}
	return false, nil
}

// HasRootFile reports whether a file with the given name sits directly at
// the probed root (or is the probed file itself).
func (p *Probe) HasRootFile(name string) bool {
	if !p.isDir {
		return strings.EqualFold(filepath.Base(p.path), name)
	}
	if _, err := p.fs.Stat(filepath.Join(p.path, name)); err == nil {
		return true
	}
	return false
}

// AnySourceContains reports whether any C# source below the path contains
// one of the given substrings. Cancellation is checked once per file.
func (p *Probe) AnySourceContains(ctx context.Context, substrs ...string) (bool, error) {
	files, err := p.Files()
	if err != nil {
		return false, err
	}

	for _, f := range files {
		if !strings.EqualFold(filepath.Ext(f), ".cs") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return false, err
		}

		content, err := p.fs.ReadFile(f)
		if err != nil {
			return false, fmt.Errorf("read %s: %w", f, err)
		}
		for _, s := range substrs {
			if bytes.Contains(content, []byte(s)) {
				return true, nil
			}
		}
	}
	return false, nil
}

// Detect selects the analyzer category for a path using the default
// registry's priority order.
func Detect(ctx context.Context, fs FileSystem, path string) (domain.Category, error) {
	return DetectWith(ctx, defaultRegistry, fs, path)
}

// DetectWith selects the analyzer category for a path using a specific
// registry. Definitions are consulted in priority order; the first match
// wins, and the lowest-priority definition is expected to match anything.
func DetectWith(ctx context.Context, registry *Registry, fs FileSystem, path string) (domain.Category, error) {
	probe, err := NewProbe(fs, path)
	if err != nil {
		return "", err
	}

	for _, def := range registry.Definitions() {
		matched, err := def.Matches(ctx, probe)
		if err != nil {
			return "", err
		}
		if matched {
			return def.Category, nil
		}
	}

	return "", fmt.Errorf("%w: no category matched %s", ErrUnknownCategory, path)
}
