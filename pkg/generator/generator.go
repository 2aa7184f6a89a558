// Package generator converts method metadata into test-case descriptions and
// renders them as test-source text for a target test-framework style.
package generator

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/scaffgen/core/pkg/domain"
)

// ErrUnknownFramework is returned when no generator is registered for a
// framework style.
var ErrUnknownFramework = errors.New("generator: unknown framework style")

// Generator renders test scaffolds for one test-framework style. The two
// registered styles share the same test-case model and differ only in
// rendering.
type Generator interface {
	// Framework names the target style (e.g. "xunit", "nunit").
	Framework() string

	// GenerateTestCases derives the test cases for one method.
	GenerateTestCases(method *domain.MethodMetadata) []domain.TestCase

	// GenerateTestClass renders a complete test-class source file for all
	// methods of one containing type.
	GenerateTestClass(className string, methods []domain.MethodMetadata) string

	// GenerateTestMethod renders a single test method.
	GenerateTestMethod(tc domain.TestCase) string

	// GenerateMockSetups renders the mock instantiation lines for a
	// dependency list.
	GenerateMockSetups(deps []domain.DependencyInfo) string

	// GetRequiredImports returns the import lines the rendered file needs.
	GetRequiredImports() []string
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func() Generator)
)

// Register adds a generator factory under a framework style name.
// Renderer packages call this from init.
func Register(name string, factory func() Generator) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// New constructs the generator registered for a framework style.
func New(name string) (Generator, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFramework, name)
	}
	return factory(), nil
}

// Frameworks returns the registered framework style names, sorted.
func Frameworks() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
