// Package mvc analyzes ASP.NET controller classes.
package mvc

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

// controllerBaseMarker filters classes by base-type list: anything deriving
// from the controller family (Controller, ControllerBase, ApiController)
// contains this substring.
const controllerBaseMarker = "Controller"

// verbAttributes maps HTTP-verb attribute names to the verb tag prefixed
// onto the documentation field.
var verbAttributes = []struct {
	Attribute string
	Verb      string
}{
	{"HttpGet", "GET"},
	{"HttpPost", "POST"},
	{"HttpPut", "PUT"},
	{"HttpDelete", "DELETE"},
	{"HttpPatch", "PATCH"},
}

func init() {
	analyzer.Register(&analyzer.Definition{
		Category: domain.CategoryMVC,
		Priority: analyzer.PriorityController,
		Matches: func(ctx context.Context, probe *analyzer.Probe) (bool, error) {
			return probe.HasFileMatching(IsControllerName)
		},
		New: func(opts ...analyzer.Option) analyzer.Analyzer {
			return New(opts...)
		},
	})
}

// IsControllerName reports whether a file name carries the controller suffix.
func IsControllerName(name string) bool {
	return strings.HasSuffix(name, "Controller.cs")
}

// Analyzer extracts method metadata from web controller classes.
type Analyzer struct {
	*analyzer.Runner
}

// New creates an mvc analyzer.
func New(opts ...analyzer.Option) *Analyzer {
	a := &Analyzer{}
	a.Runner = analyzer.NewRunner(a, opts...)
	return a
}

// Category implements [analyzer.Analyzer].
func (a *Analyzer) Category() domain.Category {
	return domain.CategoryMVC
}

// CanAnalyze reports whether path names a controller file.
func (a *Analyzer) CanAnalyze(path string) bool {
	return IsControllerName(path)
}

// AnalyzeContent extracts the public methods of controller classes. The
// inferred HTTP verb, when a verb attribute is present, is prefixed onto the
// documentation field. Dependencies come from constructor parameters.
func (a *Analyzer) AnalyzeContent(ctx context.Context, source []byte, displayName string) ([]domain.MethodMetadata, error) {
	tree, err := parser.Parse(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("mvc: parse %s: %w", displayName, err)
	}
	defer tree.Close()

	var methods []domain.MethodMetadata
	for _, class := range analyzer.CollectClasses(tree.RootNode()) {
		if !isControllerClass(class, source) {
			continue
		}
		className := csast.GetClassName(class, source)
		if className == "" {
			continue
		}

		deps := a.Extractor().FromConstructors(class, source)

		for _, method := range csast.GetMethods(class) {
			if !csast.HasModifier(method, source, "public") {
				continue
			}

			meta := analyzer.BuildMethodMetadata(method, source, className, displayName)
			if verb := inferVerb(method, source); verb != "" {
				meta.Documentation = analyzer.TagDocumentation(meta.Documentation, "["+verb+"]")
			}
			meta.Dependencies = deps
			methods = append(methods, meta)
		}
	}

	return methods, nil
}

func isControllerClass(class *sitter.Node, source []byte) bool {
	for _, base := range csast.GetBaseTypes(class, source) {
		if strings.Contains(base, controllerBaseMarker) {
			return true
		}
	}
	return false
}

func inferVerb(method *sitter.Node, source []byte) string {
	attrLists := csast.GetAttributeLists(method)
	for _, va := range verbAttributes {
		if csast.HasAttribute(attrLists, source, va.Attribute) {
			return va.Verb
		}
	}
	return ""
}
