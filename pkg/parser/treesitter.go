// Package parser wraps tree-sitter parsing of C# source files.
//
// Parsers are created fresh per parse. When a context is cancelled during
// ParseCtx, tree-sitter's internal cancel flag is set but not reset, causing
// subsequent parses on the same parser to fail; fresh parsers avoid this.
package parser

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
)

// MaxTreeDepth is the maximum recursion depth when walking AST trees.
const MaxTreeDepth = 1000

var (
	csLang   *sitter.Language
	langOnce sync.Once
)

func language() *sitter.Language {
	langOnce.Do(func() {
		csLang = csharp.GetLanguage()
	})
	return csLang
}

// Parse parses C# source using a fresh parser.
// Caller MUST call tree.Close() to free resources.
func Parse(ctx context.Context, source []byte) (*sitter.Tree, error) {
	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(language())

	tree, err := p.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}
	return tree, nil
}

// Location identifies a node's position within a source file.
// Line numbers are 1-based.
type Location struct {
	File      string `json:"file"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
	StartCol  int    `json:"startCol"`
	EndCol    int    `json:"endCol"`
}

// GetLocation converts a tree-sitter node position to a [Location].
func GetLocation(node *sitter.Node, filename string) Location {
	start := node.StartPoint()
	end := node.EndPoint()

	return Location{
		File:      filename,
		StartLine: int(start.Row) + 1, // Convert to 1-based
		EndLine:   int(end.Row) + 1,
		StartCol:  int(start.Column),
		EndCol:    int(end.Column),
	}
}

// GetNodeText returns the source text for the given AST node.
// Returns empty string if the node's byte range exceeds the source length.
func GetNodeText(node *sitter.Node, source []byte) (result string) {
	start := node.StartByte()
	end := node.EndByte()
	sourceLen := uint32(len(source))

	// Validate bounds before calling tree-sitter C code
	if start > sourceLen || end > sourceLen {
		return ""
	}

	defer func() {
		if r := recover(); r != nil {
			result = ""
		}
	}()

	return node.Content(source)
}

// FindChildByType returns the first direct child with the given node type.
func FindChildByType(node *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == nodeType {
			return child
		}
	}
	return nil
}

// FindChildrenByType returns all direct children with the given node type.
func FindChildrenByType(node *sitter.Node, nodeType string) []*sitter.Node {
	var children []*sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == nodeType {
			children = append(children, child)
		}
	}
	return children
}

func walkTreeWithDepth(node *sitter.Node, visitor func(*sitter.Node) bool, depth int) {
	if depth > MaxTreeDepth {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkTreeWithDepth(node.Child(i), visitor, depth+1)
	}
}

// WalkTree recursively visits all nodes in the AST.
// The visitor function returns false to stop traversing into children.
func WalkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	walkTreeWithDepth(node, visitor, 0)
}
