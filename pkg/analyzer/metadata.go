package analyzer

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/scaffgen/core/pkg/domain"
	"github.com/scaffgen/core/pkg/parser"
	"github.com/scaffgen/core/pkg/parser/csast"
)

// BuildMethodMetadata assembles the variant-independent fields of a method's
// metadata: signature, modifiers, doc comment, and source position. Variants
// attach dependencies and category tags afterwards, before the value leaves
// their producing function.
func BuildMethodMetadata(method *sitter.Node, source []byte, containingType, filename string) domain.MethodMetadata {
	loc := parser.GetLocation(method, filename)

	var params []domain.ParameterInfo
	for _, p := range csast.GetParameters(method, source) {
		params = append(params, domain.ParameterInfo{
			Name:         p.Name,
			Type:         p.Type,
			HasDefault:   p.HasDefault,
			DefaultValue: p.DefaultValue,
		})
	}

	return domain.MethodMetadata{
		Name:           csast.GetMethodName(method, source),
		ContainingType: containingType,
		Namespace:      csast.GetNamespace(method, source),
		ReturnType:     csast.GetReturnType(method, source),
		Parameters:     params,
		Modifiers:      csast.GetModifiers(method, source),
		Documentation:  csast.GetDocComment(method, source),
		FilePath:       filename,
		StartLine:      loc.StartLine,
		EndLine:        loc.EndLine,
	}
}

// CollectClasses returns every class_declaration in the tree, nested classes
// included.
func CollectClasses(root *sitter.Node) []*sitter.Node {
	var classes []*sitter.Node
	parser.WalkTree(root, func(node *sitter.Node) bool {
		if node.Type() == csast.NodeClassDeclaration {
			classes = append(classes, node)
		}
		return true
	})
	return classes
}

// TagDocumentation prefixes a category tag onto a method's documentation
// field, keeping any existing text.
func TagDocumentation(doc, tag string) string {
	if doc == "" {
		return tag
	}
	return tag + " " + doc
}
