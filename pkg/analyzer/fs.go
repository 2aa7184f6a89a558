package analyzer

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// FileSystem is the file-reading collaborator consumed by the analyzers.
// It is the only I/O surface of the core.
type FileSystem interface {
	// ReadFile reads the whole file as bytes.
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for path.
	Stat(path string) (fs.FileInfo, error)

	// Glob returns the paths below root matching the doublestar pattern,
	// joined with root.
	Glob(root, pattern string) ([]string, error)
}

// OSFileSystem is the default [FileSystem] backed by the host filesystem.
type OSFileSystem struct{}

func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (OSFileSystem) Glob(root, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(root), pattern)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, filepath.Join(root, filepath.FromSlash(m)))
	}
	return paths, nil
}
