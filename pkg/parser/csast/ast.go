// Package csast provides shared C# AST traversal utilities for the analyzers.
package csast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/scaffgen/core/pkg/parser"
)

// C# AST node types.
const (
	NodeClassDeclaration       = "class_declaration"
	NodeInterfaceDeclaration   = "interface_declaration"
	NodeStructDeclaration      = "struct_declaration"
	NodeMethodDeclaration      = "method_declaration"
	NodeConstructorDeclaration = "constructor_declaration"
	NodeFieldDeclaration       = "field_declaration"
	NodePropertyDeclaration    = "property_declaration"
	NodeVariableDeclaration    = "variable_declaration"
	NodeVariableDeclarator     = "variable_declarator"
	NodeParameterList          = "parameter_list"
	NodeParameter              = "parameter"
	NodeAttributeList          = "attribute_list"
	NodeAttribute              = "attribute"
	NodeAttributeArgumentList  = "attribute_argument_list"
	NodeAttributeArgument      = "attribute_argument"
	NodeIdentifier             = "identifier"
	NodeDeclarationList        = "declaration_list"
	NodeBaseList               = "base_list"
	NodeStringLiteral          = "string_literal"
	NodeVerbatimStringLiteral  = "verbatim_string_literal"
	NodeStringLiteralContent   = "string_literal_content"
	NodeInterpolatedString     = "interpolated_string_expression"
	NodeNamespaceDeclaration   = "namespace_declaration"
	NodeFileScopedNamespace    = "file_scoped_namespace_declaration"
	NodeQualifiedName          = "qualified_name"
	NodeModifier               = "modifier"
	NodeGenericName            = "generic_name"
	NodeEqualsValueClause      = "equals_value_clause"
	NodeComment                = "comment"
	NodePreprocIf              = "preproc_if"
	NodePreprocElse            = "preproc_else"
	NodePreprocElif            = "preproc_elif"
)

// Parameter is the raw shape of one declared parameter.
type Parameter struct {
	Name         string
	Type         string
	HasDefault   bool
	DefaultValue string
	// Node is the underlying parameter node, kept for attribute inspection.
	Node *sitter.Node
}

// Field is the raw shape of one declared field.
type Field struct {
	Name string
	Type string
	// Static reports whether the field carries the static modifier.
	Static bool
}

// GetClassName extracts the class name from a class_declaration node.
func GetClassName(node *sitter.Node, source []byte) string {
	return nameOf(node, source)
}

// GetMethodName extracts the method name from a method_declaration node.
func GetMethodName(node *sitter.Node, source []byte) string {
	return nameOf(node, source)
}

func nameOf(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	nameNode := node.ChildByFieldName("name")
	if nameNode != nil {
		return nameNode.Content(source)
	}
	return ""
}

// GetDeclarationList returns the body (declaration_list) from a type declaration.
func GetDeclarationList(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	return node.ChildByFieldName("body")
}

// GetModifiers returns the modifier tokens of a declaration in source order.
func GetModifiers(node *sitter.Node, source []byte) []string {
	var mods []string
	for _, m := range parser.FindChildrenByType(node, NodeModifier) {
		mods = append(mods, m.Content(source))
	}
	return mods
}

// HasModifier reports whether a declaration carries the given modifier token.
func HasModifier(node *sitter.Node, source []byte, modifier string) bool {
	for _, m := range GetModifiers(node, source) {
		if m == modifier {
			return true
		}
	}
	return false
}

// GetReturnType extracts the declared return type text from a method_declaration.
//
// Grammar versions disagree on the field name for the return type, so this
// falls back to positional scanning: the return type is the last non-modifier,
// non-attribute child preceding the method name.
func GetReturnType(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}

	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		return typeNode.Content(source)
	}
	if typeNode := node.ChildByFieldName("returns"); typeNode != nil {
		return typeNode.Content(source)
	}

	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return ""
	}

	var typeNode *sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nameNode || child.StartByte() >= nameNode.StartByte() {
			break
		}
		switch child.Type() {
		case NodeAttributeList, NodeModifier, NodeComment:
			continue
		default:
			if child.IsNamed() {
				typeNode = child
			}
		}
	}

	if typeNode == nil {
		return ""
	}
	return typeNode.Content(source)
}

// GetParameterList returns the parameter_list node of a method or constructor.
func GetParameterList(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	if params := node.ChildByFieldName("parameters"); params != nil {
		return params
	}
	return parser.FindChildByType(node, NodeParameterList)
}

// GetParameters extracts the declared parameters of a method or constructor.
func GetParameters(node *sitter.Node, source []byte) []Parameter {
	paramList := GetParameterList(node)
	if paramList == nil {
		return nil
	}

	var params []Parameter
	for _, p := range parser.FindChildrenByType(paramList, NodeParameter) {
		params = append(params, parseParameter(p, source))
	}
	return params
}

func parseParameter(node *sitter.Node, source []byte) Parameter {
	param := Parameter{Node: node}

	nameNode := node.ChildByFieldName("name")
	typeNode := node.ChildByFieldName("type")

	// Positional fallback for grammar revisions without these fields: the
	// parameter name is the last identifier, the type the named node
	// before it.
	if nameNode == nil {
		for i := int(node.ChildCount()) - 1; i >= 0; i-- {
			if node.Child(i).Type() == NodeIdentifier {
				nameNode = node.Child(i)
				break
			}
		}
	}
	if typeNode == nil && nameNode != nil {
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child.StartByte() >= nameNode.StartByte() {
				break
			}
			if child.IsNamed() && child.Type() != NodeAttributeList && child.Type() != NodeModifier {
				typeNode = child
			}
		}
	}

	if nameNode != nil {
		param.Name = nameNode.Content(source)
	}
	if typeNode != nil {
		param.Type = typeNode.Content(source)
	}

	// Default values appear either as an equals_value_clause child or as a
	// bare "=" token followed by the value expression.
	if eq := parser.FindChildByType(node, NodeEqualsValueClause); eq != nil {
		param.HasDefault = true
		param.DefaultValue = strings.TrimSpace(strings.TrimPrefix(eq.Content(source), "="))
		return param
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if node.Child(i).Type() == "=" && i+1 < int(node.ChildCount()) {
			param.HasDefault = true
			param.DefaultValue = node.Child(i + 1).Content(source)
			break
		}
	}

	return param
}

// GetBaseTypes returns the base-type names declared on a type declaration.
func GetBaseTypes(node *sitter.Node, source []byte) []string {
	baseList := node.ChildByFieldName("bases")
	if baseList == nil {
		baseList = parser.FindChildByType(node, NodeBaseList)
	}
	if baseList == nil {
		return nil
	}

	var bases []string
	for i := 0; i < int(baseList.ChildCount()); i++ {
		child := baseList.Child(i)
		if child.IsNamed() {
			bases = append(bases, child.Content(source))
		}
	}
	return bases
}

// GetNamespace returns the name of the namespace enclosing a node,
// or empty when the file declares none.
func GetNamespace(node *sitter.Node, source []byte) string {
	for cur := node; cur != nil; cur = cur.Parent() {
		t := cur.Type()
		if t == NodeNamespaceDeclaration || t == NodeFileScopedNamespace {
			return nameOf(cur, source)
		}
	}
	return ""
}

// GetConstructors returns all constructor_declaration nodes of a class body.
func GetConstructors(classNode *sitter.Node) []*sitter.Node {
	body := GetDeclarationList(classNode)
	if body == nil {
		return nil
	}
	return parser.FindChildrenByType(body, NodeConstructorDeclaration)
}

// GetMethods returns all method_declaration nodes directly inside a class body,
// including those wrapped in preprocessor directives.
func GetMethods(classNode *sitter.Node) []*sitter.Node {
	body := GetDeclarationList(classNode)
	if body == nil {
		return nil
	}

	var methods []*sitter.Node
	collectByType(body, NodeMethodDeclaration, &methods)
	return methods
}

func collectByType(node *sitter.Node, nodeType string, result *[]*sitter.Node) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case nodeType:
			*result = append(*result, child)
		case NodePreprocIf, NodePreprocElse, NodePreprocElif:
			collectByType(child, nodeType, result)
		}
	}
}

// GetFields returns the declared fields of a class body.
// A field_declaration with multiple declarators yields one Field per declarator.
func GetFields(classNode *sitter.Node, source []byte) []Field {
	body := GetDeclarationList(classNode)
	if body == nil {
		return nil
	}

	var fields []Field
	for _, decl := range parser.FindChildrenByType(body, NodeFieldDeclaration) {
		static := HasModifier(decl, source, "static")

		varDecl := parser.FindChildByType(decl, NodeVariableDeclaration)
		if varDecl == nil {
			continue
		}

		typeName := ""
		if typeNode := varDecl.ChildByFieldName("type"); typeNode != nil {
			typeName = typeNode.Content(source)
		} else if first := varDecl.NamedChild(0); first != nil && first.Type() != NodeVariableDeclarator {
			typeName = first.Content(source)
		}

		for _, declarator := range parser.FindChildrenByType(varDecl, NodeVariableDeclarator) {
			name := ""
			if nameNode := declarator.ChildByFieldName("name"); nameNode != nil {
				name = nameNode.Content(source)
			} else if id := parser.FindChildByType(declarator, NodeIdentifier); id != nil {
				name = id.Content(source)
			}
			if name == "" || typeName == "" {
				continue
			}
			fields = append(fields, Field{Name: name, Type: typeName, Static: static})
		}
	}
	return fields
}

// GetAttributeLists returns all attribute_list nodes attached to a declaration.
func GetAttributeLists(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	return parser.FindChildrenByType(node, NodeAttributeList)
}

// GetAttributes extracts all attribute nodes from attribute_list nodes.
func GetAttributes(attributeLists []*sitter.Node) []*sitter.Node {
	var attributes []*sitter.Node
	for _, attrList := range attributeLists {
		attributes = append(attributes, parser.FindChildrenByType(attrList, NodeAttribute)...)
	}
	return attributes
}

// GetAttributeName extracts the attribute name (e.g., "HttpGet" from [HttpGet]).
// Handles simple identifiers, qualified names, and generic names.
func GetAttributeName(attribute *sitter.Node, source []byte) string {
	if attribute == nil {
		return ""
	}

	nameNode := attribute.ChildByFieldName("name")
	if nameNode == nil {
		return ""
	}

	switch nameNode.Type() {
	case NodeIdentifier:
		return nameNode.Content(source)
	case NodeQualifiedName:
		fullName := nameNode.Content(source)
		if idx := strings.LastIndex(fullName, "."); idx >= 0 {
			return fullName[idx+1:]
		}
		return fullName
	case NodeGenericName:
		if id := parser.FindChildByType(nameNode, NodeIdentifier); id != nil {
			return id.Content(source)
		}
	}

	return ""
}

// HasAttribute checks if the attribute lists contain a specific attribute,
// accepting both the short name and the Attribute-suffixed form.
func HasAttribute(attributeLists []*sitter.Node, source []byte, attributeName string) bool {
	for _, attr := range GetAttributes(attributeLists) {
		name := GetAttributeName(attr, source)
		if name == attributeName || name == attributeName+"Attribute" {
			return true
		}
	}
	return false
}

// FindAttributeArgumentList finds the attribute_argument_list child of an attribute node.
func FindAttributeArgumentList(attr *sitter.Node) *sitter.Node {
	return parser.FindChildByType(attr, NodeAttributeArgumentList)
}

// GetAttributeFirstString returns the first string-literal argument of an
// attribute, e.g. "ProcessOrder" from [FunctionName("ProcessOrder")].
// Returns empty when the attribute carries no string argument.
func GetAttributeFirstString(attr *sitter.Node, source []byte) string {
	argList := FindAttributeArgumentList(attr)
	if argList == nil {
		return ""
	}

	for _, arg := range parser.FindChildrenByType(argList, NodeAttributeArgument) {
		for i := 0; i < int(arg.ChildCount()); i++ {
			if s := ExtractStringContent(arg.Child(i), source); s != "" {
				return s
			}
		}
	}
	return ""
}

// ExtractStringContent extracts string content from a string literal node.
// Supports regular ("..."), verbatim (@"..."), and interpolated ($"...") forms.
func ExtractStringContent(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}

	switch node.Type() {
	case NodeStringLiteral:
		text := node.Content(source)
		if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
			return text[1 : len(text)-1]
		}
		return text
	case NodeVerbatimStringLiteral:
		text := node.Content(source)
		if len(text) >= 3 && text[0] == '@' && text[1] == '"' && text[len(text)-1] == '"' {
			return text[2 : len(text)-1]
		}
		return text
	case NodeInterpolatedString:
		if content := parser.FindChildByType(node, NodeStringLiteralContent); content != nil {
			return content.Content(source)
		}
	}
	return ""
}

// GetDocComment collects the contiguous /// comment lines immediately
// preceding a declaration, stripped of comment markers.
func GetDocComment(node *sitter.Node, source []byte) string {
	var lines []string
	for prev := node.PrevSibling(); prev != nil && prev.Type() == NodeComment; prev = prev.PrevSibling() {
		text := strings.TrimSpace(prev.Content(source))
		if !strings.HasPrefix(text, "///") {
			break
		}
		lines = append([]string{strings.TrimSpace(strings.TrimPrefix(text, "///"))}, lines...)
	}
	return strings.Join(lines, "\n")
}
