// Package azfunc analyzes serverless function entry points. A method is in
// scope only when it carries a function-entry attribute.
package azfunc

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

// Function-entry attribute names. The in-process model uses FunctionName,
// the isolated worker model uses Function.
var entryAttributes = []string{"FunctionName", "Function"}

// hostMarkerFile marks a function-host project root.
const hostMarkerFile = "host.json"

// triggerAttributes maps parameter attribute names to trigger kinds, in
// recognition order. First match wins.
var triggerAttributes = []struct {
	Attribute string
	Kind      string
}{
	{"HttpTrigger", "http"},
	{"ServiceBusTrigger", "servicebus"},
	{"TimerTrigger", "timer"},
	{"BlobTrigger", "blob"},
	{"QueueTrigger", "queue"},
	{"EventGridTrigger", "eventgrid"},
	{"EventHubTrigger", "eventhub"},
	{"CosmosDBTrigger", "cosmosdb"},
	{"OrchestrationTrigger", "orchestration"},
	{"ActivityTrigger", "activity"},
	{"EntityTrigger", "entity"},
}

// durableKinds maps trigger attributes to the durable function kind.
var durableKinds = map[string]string{
	"OrchestrationTrigger": "orchestrator",
	"ActivityTrigger":      "activity",
	"EntityTrigger":        "entity",
}

func init() {
	analyzer.Register(&analyzer.Definition{
		Category: domain.CategoryAzureFunction,
		Priority: analyzer.PriorityServerless,
		Matches: func(ctx context.Context, probe *analyzer.Probe) (bool, error) {
			if probe.HasRootFile(hostMarkerFile) {
				return true, nil
			}
			return probe.AnySourceContains(ctx, "[FunctionName", "[Function(")
		},
		New: func(opts ...analyzer.Option) analyzer.Analyzer {
			return New(opts...)
		},
	})
}

// Analyzer extracts method metadata from serverless function classes.
type Analyzer struct {
	*analyzer.Runner
}

// New creates an azfunc analyzer.
func New(opts ...analyzer.Option) *Analyzer {
	a := &Analyzer{}
	a.Runner = analyzer.NewRunner(a, opts...)
	return a
}

// Category implements [analyzer.Analyzer].
func (a *Analyzer) Category() domain.Category {
	return domain.CategoryAzureFunction
}

// CanAnalyze accepts any C# source file.
func (a *Analyzer) CanAnalyze(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".cs")
}

// AnalyzeContent extracts public methods carrying a function-entry
// attribute. The registered function name, the trigger kind, and the durable
// function kind are tagged in the documentation field. Dependencies come
// from constructor parameters only.
func (a *Analyzer) AnalyzeContent(ctx context.Context, source []byte, displayName string) ([]domain.MethodMetadata, error) {
	tree, err := parser.Parse(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("azfunc: parse %s: %w", displayName, err)
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
			if !csast.HasModifier(method, source, "public") {
				continue
			}

			entry := findEntryAttribute(method, source)
			if entry == nil {
				continue
			}

			meta := analyzer.BuildMethodMetadata(method, source, className, displayName)

			name := csast.GetAttributeFirstString(entry, source)
			if name == "" {
				name = meta.Name
			}
			meta.Documentation = analyzer.TagDocumentation(meta.Documentation, "[Function: "+name+"]")

			if attr, kind := findTrigger(method, source); kind != "" {
				meta.Documentation = analyzer.TagDocumentation(meta.Documentation, "[Trigger: "+kind+"]")
				if durable, ok := durableKinds[attr]; ok {
					meta.Documentation = analyzer.TagDocumentation(meta.Documentation, "[Durable: "+durable+"]")
				}
			}

			meta.Dependencies = deps
			methods = append(methods, meta)
		}
	}

	return methods, nil
}

// findEntryAttribute returns the function-entry attribute node of a method,
// or nil when the method is not a function entry point.
func findEntryAttribute(method *sitter.Node, source []byte) *sitter.Node {
	for _, attr := range csast.GetAttributes(csast.GetAttributeLists(method)) {
		name := csast.GetAttributeName(attr, source)
		for _, entry := range entryAttributes {
			if name == entry || name == entry+"Attribute" {
				return attr
			}
		}
	}
	return nil
}

// findTrigger scans the method's parameter attributes against the recognized
// trigger set and returns the first match.
func findTrigger(method *sitter.Node, source []byte) (attribute, kind string) {
	for _, param := range csast.GetParameters(method, source) {
		attrLists := csast.GetAttributeLists(param.Node)
		if len(attrLists) == 0 {
			continue
		}
		for _, ta := range triggerAttributes {
			if csast.HasAttribute(attrLists, source, ta.Attribute) {
				return ta.Attribute, ta.Kind
			}
		}
	}
	return "", ""
}
