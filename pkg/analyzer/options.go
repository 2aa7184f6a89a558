package analyzer

import "github.com/scaffgen/core/pkg/analyzer/depend"

const (
	// DefaultWorkers runs directory analysis sequentially.
	DefaultWorkers = 1
	// MaxWorkers caps the number of concurrent workers.
	MaxWorkers = 256
)

// DefaultSkipDirs contains directory names skipped during directory analysis.
var DefaultSkipDirs = []string{
	"bin",
	"obj",
	".git",
	".vs",
	"packages",
	"node_modules",
	"TestResults",
}

// generatedFileSuffixes marks designer- and tool-generated code-behind files
// that must never be analyzed.
var generatedFileSuffixes = []string{
	".designer.cs",
	".g.cs",
	".g.i.cs",
	".generated.cs",
	"assemblyinfo.cs",
}

// Options configures the shared analyzer runner.
type Options struct {
	// FS is the file-reading collaborator. Defaults to [OSFileSystem].
	FS FileSystem

	// Workers bounds concurrent file analysis. The default of 1 keeps
	// directory analysis strictly sequential; higher values change no
	// observable output since results keep discovery order.
	Workers int

	// SkipDirs lists directory names excluded from directory analysis.
	SkipDirs []string

	// Extractor decides which constructor parameters and fields count as
	// mockable dependencies.
	Extractor *depend.Extractor
}

// Option customizes analyzer construction.
type Option func(*Options)

// WithFileSystem replaces the default filesystem collaborator.
func WithFileSystem(fs FileSystem) Option {
	return func(o *Options) { o.FS = fs }
}

// WithWorkers sets the concurrency bound for directory analysis.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithSkipDirs replaces the default skipped-directory list.
func WithSkipDirs(dirs []string) Option {
	return func(o *Options) { o.SkipDirs = dirs }
}

// WithExtractor replaces the default dependency extractor.
func WithExtractor(e *depend.Extractor) Option {
	return func(o *Options) { o.Extractor = e }
}

func applyDefaults(o *Options) {
	if o.FS == nil {
		o.FS = OSFileSystem{}
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	if o.Workers > MaxWorkers {
		o.Workers = MaxWorkers
	}
	if o.SkipDirs == nil {
		o.SkipDirs = DefaultSkipDirs
	}
	if o.Extractor == nil {
		o.Extractor = depend.NewExtractor()
	}
}
