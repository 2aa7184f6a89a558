// Package desktop analyzes WinForms and WPF classes. It is the fallback
// analyzer and accepts any C# source file.
package desktop

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/scaffgen/core/pkg/analyzer"
	"github.com/scaffgen/core/pkg/domain"
	"github.com/scaffgen/core/pkg/parser"
	"github.com/scaffgen/core/pkg/parser/csast"
)

// UIKind classifies a class by its base-type list.
type UIKind string

// UI kinds, matched by substring over declared base-type names.
const (
	UIKindNone        UIKind = ""
	UIKindForm        UIKind = "Form"
	UIKindWindow      UIKind = "Window"
	UIKindUserControl UIKind = "UserControl"
	UIKindPage        UIKind = "Page"
)

// eventHandlerTag marks event-handler methods in the documentation field.
const eventHandlerTag = "[EventHandler]"

func init() {
	analyzer.Register(&analyzer.Definition{
		Category: domain.CategoryDesktop,
		Priority: analyzer.PriorityFallback,
		Matches: func(ctx context.Context, probe *analyzer.Probe) (bool, error) {
			// Fallback: accepts anything the higher-priority categories
			// did not claim.
			return true, nil
		},
		New: func(opts ...analyzer.Option) analyzer.Analyzer {
			return New(opts...)
		},
	})
}

// Analyzer extracts method metadata from desktop UI classes.
type Analyzer struct {
	*analyzer.Runner
}

// New creates a desktop analyzer.
func New(opts ...analyzer.Option) *Analyzer {
	a := &Analyzer{}
	a.Runner = analyzer.NewRunner(a, opts...)
	return a
}

// Category implements [analyzer.Analyzer].
func (a *Analyzer) Category() domain.Category {
	return domain.CategoryDesktop
}

// CanAnalyze accepts any C# source file.
func (a *Analyzer) CanAnalyze(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".cs")
}

// AnalyzeContent extracts every method of every declared class. Classes are
// classified by base-type substring; the resulting UI kind and detected
// event handlers are tagged in the documentation field. Dependencies come
// from both fields and constructor parameters.
func (a *Analyzer) AnalyzeContent(ctx context.Context, source []byte, displayName string) ([]domain.MethodMetadata, error) {
	tree, err := parser.Parse(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("desktop: parse %s: %w", displayName, err)
	}
	defer tree.Close()

	var methods []domain.MethodMetadata
	for _, class := range analyzer.CollectClasses(tree.RootNode()) {
		className := csast.GetClassName(class, source)
		if className == "" {
			continue
		}

		kind := ClassifyClass(class, source)

		deps := a.Extractor().FromConstructors(class, source)
		deps = mergeDeps(deps, a.Extractor().FromFields(class, source))

		for _, method := range csast.GetMethods(class) {
			meta := analyzer.BuildMethodMetadata(method, source, className, displayName)
			if isEventHandler(meta.Parameters) {
				meta.Documentation = analyzer.TagDocumentation(meta.Documentation, eventHandlerTag)
			}
			if kind != UIKindNone {
				meta.Documentation = analyzer.TagDocumentation(meta.Documentation, "["+string(kind)+"]")
			}
			meta.Dependencies = deps
			methods = append(methods, meta)
		}
	}

	return methods, nil
}

// ClassifyClass maps a class to a UI kind by substring matching over its
// declared base-type names.
func ClassifyClass(class *sitter.Node, source []byte) UIKind {
	for _, base := range csast.GetBaseTypes(class, source) {
		switch {
		case strings.Contains(base, "UserControl"):
			return UIKindUserControl
		case strings.Contains(base, "Window"):
			return UIKindWindow
		case strings.Contains(base, "Form"):
			return UIKindForm
		case strings.Contains(base, "Page"):
			return UIKindPage
		}
	}
	return UIKindNone
}

// isEventHandler detects the event-handler signature shape: exactly two
// parameters, the first of the generic object type, the second of a type
// ending with the EventArgs suffix.
func isEventHandler(params []domain.ParameterInfo) bool {
	if len(params) != 2 {
		return false
	}
	first := params[0].Type
	if first != "object" && first != "Object" && first != "System.Object" {
		return false
	}
	return strings.HasSuffix(params[1].Type, "EventArgs")
}

// mergeDeps appends fields after constructor dependencies, keeping one entry
// per type name.
func mergeDeps(ctor, fields []domain.DependencyInfo) []domain.DependencyInfo {
	seen := make(map[string]bool, len(ctor))
	for _, d := range ctor {
		seen[d.Type] = true
	}
	out := ctor
	for _, d := range fields {
		if seen[d.Type] {
			continue
		}
		seen[d.Type] = true
		out = append(out, d)
	}
	return out
}
