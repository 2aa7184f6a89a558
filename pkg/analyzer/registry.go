package analyzer

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/scaffgen/core/pkg/domain"
)

// Priority constants order category detection. Higher priorities are checked
// first. The ordering is a deliberate precedence, not alphabetical: a
// controller file also satisfies the desktop fallback, so the fallback must
// come last.
const (
	// PriorityCodeBehind: markup-backed code-behind files are named
	// unambiguously and win over everything else.
	PriorityCodeBehind = 400
	// PriorityController: controller-suffix files beat the serverless
	// content probe.
	PriorityController = 300
	// PriorityServerless: detected from a host marker file or a
	// function-entry attribute in source content.
	PriorityServerless = 200
	// PriorityFallback: the desktop analyzer accepts any source file.
	PriorityFallback = 100
)

// Definition describes one registered analyzer category.
type Definition struct {
	// Category is the category tag this definition detects and builds.
	Category domain.Category

	// Priority orders detection; higher is checked first.
	Priority int

	// Matches reports whether the probed path belongs to this category.
	Matches func(ctx context.Context, probe *Probe) (bool, error)

	// New constructs the analyzer for this category.
	New func(opts ...Option) Analyzer
}

// Registry holds analyzer definitions ordered by priority.
type Registry struct {
	mu   sync.RWMutex
	defs []*Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a definition, keeping the priority order.
func (r *Registry) Register(def *Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.defs = append(r.defs, def)
	sort.SliceStable(r.defs, func(i, j int) bool {
		return r.defs[i].Priority > r.defs[j].Priority
	})
}

// Find returns the definition for a category, or nil.
func (r *Registry) Find(category domain.Category) *Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, def := range r.defs {
		if def.Category == category {
			return def
		}
	}
	return nil
}

// Definitions returns all definitions in priority order.
func (r *Registry) Definitions() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]*Definition(nil), r.defs...)
}

var defaultRegistry = NewRegistry()

// Register adds a definition to the default registry.
// Analyzer variant packages call this from init.
func Register(def *Definition) {
	defaultRegistry.Register(def)
}

// DefaultRegistry returns the registry populated by the variant packages.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// New constructs the analyzer registered for a category.
func New(category domain.Category, opts ...Option) (Analyzer, error) {
	def := defaultRegistry.Find(category)
	if def == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	return def.New(opts...), nil
}
