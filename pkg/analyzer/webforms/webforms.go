// Package webforms analyzes code-behind files for markup-backed pages,
// user controls, and master pages.
package webforms

import (
	"context"
	"fmt"
	"strings"

	"github.com/scaffgen/core/pkg/analyzer"
	"github.com/scaffgen/core/pkg/domain"
	"github.com/scaffgen/core/pkg/parser"
	"github.com/scaffgen/core/pkg/parser/csast"
)

// codeBehindSuffixes name the markup-backed code-behind files this analyzer
// applies to.
var codeBehindSuffixes = []string{
	".aspx.cs",
	".ascx.cs",
	".master.cs",
}

// lifecycleMethods is the fixed set of page-lifecycle method names, including
// the On* override equivalents.
var lifecycleMethods = map[string]bool{
	"Page_PreInit":      true,
	"Page_Init":         true,
	"Page_Load":         true,
	"Page_LoadComplete": true,
	"Page_PreRender":    true,
	"Page_Unload":       true,
	"OnPreInit":         true,
	"OnInit":            true,
	"OnLoad":            true,
	"OnLoadComplete":    true,
	"OnPreRender":       true,
	"OnUnload":          true,
}

// lifecycleTag marks lifecycle methods in the documentation field.
// Informational only; not a separate metadata field.
const lifecycleTag = "[Lifecycle]"

func init() {
	analyzer.Register(&analyzer.Definition{
		Category: domain.CategoryWebForms,
		Priority: analyzer.PriorityCodeBehind,
		Matches: func(ctx context.Context, probe *analyzer.Probe) (bool, error) {
			return probe.HasFileMatching(IsCodeBehindName)
		},
		New: func(opts ...analyzer.Option) analyzer.Analyzer {
			return New(opts...)
		},
	})
}

// IsCodeBehindName reports whether a file name carries a code-behind suffix.
func IsCodeBehindName(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range codeBehindSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// Analyzer extracts method metadata from legacy-page code-behind files.
type Analyzer struct {
	*analyzer.Runner
}

// New creates a webforms analyzer.
func New(opts ...analyzer.Option) *Analyzer {
	a := &Analyzer{}
	a.Runner = analyzer.NewRunner(a, opts...)
	return a
}

// Category implements [analyzer.Analyzer].
func (a *Analyzer) Category() domain.Category {
	return domain.CategoryWebForms
}

// CanAnalyze reports whether path names a code-behind file.
func (a *Analyzer) CanAnalyze(path string) bool {
	return IsCodeBehindName(path)
}

// AnalyzeContent extracts every method of every declared class, with no
// visibility filtering. Lifecycle methods are tagged in the documentation
// field.
func (a *Analyzer) AnalyzeContent(ctx context.Context, source []byte, displayName string) ([]domain.MethodMetadata, error) {
	tree, err := parser.Parse(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("webforms: parse %s: %w", displayName, err)
	}
	defer tree.Close()

	var methods []domain.MethodMetadata
	for _, class := range analyzer.CollectClasses(tree.RootNode()) {
		className := csast.GetClassName(class, source)
		if className == "" {
			continue
		}

		deps := a.Extractor().FromConstructors(class, source)

		for _, method := range csast.GetMethods(class) {
			meta := analyzer.BuildMethodMetadata(method, source, className, displayName)
			if lifecycleMethods[meta.Name] {
				meta.Documentation = analyzer.TagDocumentation(meta.Documentation, lifecycleTag)
			}
			meta.Dependencies = deps
			methods = append(methods, meta)
		}
	}

	return methods, nil
}
