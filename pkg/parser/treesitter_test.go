package parser

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
)

const sampleSource = `namespace Shop
{
    public class Calculator
    {
        public int Add(int a, int b)
        {
            return a + b;
        }
    }
}
`

func TestParse(t *testing.T) {
	tree, err := Parse(context.Background(), []byte(sampleSource))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		t.Fatal("expected non-nil root node")
	}
	if root.Type() != "compilation_unit" {
		t.Errorf("expected compilation_unit root, got %q", root.Type())
	}
}

func TestParse_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tree, err := Parse(ctx, []byte(sampleSource))
	if err == nil {
		tree.Close()
		t.Fatal("expected error for cancelled context")
	}
}

func TestParse_FreshParserAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if tree, err := Parse(ctx, []byte(sampleSource)); err == nil {
		tree.Close()
	}

	// A cancelled parse must not poison later parses.
	tree, err := Parse(context.Background(), []byte(sampleSource))
	if err != nil {
		t.Fatalf("parse after cancel failed: %v", err)
	}
	tree.Close()
}

func TestGetNodeText(t *testing.T) {
	source := []byte(sampleSource)
	tree, err := Parse(context.Background(), source)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if got := GetNodeText(root, source); got != sampleSource {
		t.Errorf("expected full source text, got %q", got)
	}

	// Byte range beyond the provided source yields empty instead of panicking.
	if got := GetNodeText(root, source[:10]); got != "" {
		t.Errorf("expected empty text for truncated source, got %q", got)
	}
}

func TestFindChildByType(t *testing.T) {
	source := []byte(sampleSource)
	tree, err := Parse(context.Background(), source)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	defer tree.Close()

	ns := FindChildByType(tree.RootNode(), "namespace_declaration")
	if ns == nil {
		t.Fatal("namespace_declaration not found")
	}
	if FindChildByType(tree.RootNode(), "method_declaration") != nil {
		t.Error("method_declaration is not a direct child of the root")
	}
}

func TestWalkTree(t *testing.T) {
	source := []byte(sampleSource)
	tree, err := Parse(context.Background(), source)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	defer tree.Close()

	var classes, methods int
	WalkTree(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Type() {
		case "class_declaration":
			classes++
		case "method_declaration":
			methods++
		}
		return true
	})

	if classes != 1 {
		t.Errorf("expected 1 class, got %d", classes)
	}
	if methods != 1 {
		t.Errorf("expected 1 method, got %d", methods)
	}

	// Returning false stops descent, so the method inside is never visited.
	methods = 0
	WalkTree(tree.RootNode(), func(node *sitter.Node) bool {
		if node.Type() == "class_declaration" {
			return false
		}
		if node.Type() == "method_declaration" {
			methods++
		}
		return true
	})
	if methods != 0 {
		t.Errorf("expected descent to stop at the class, found %d methods", methods)
	}
}

func TestGetLocation(t *testing.T) {
	source := []byte(sampleSource)
	tree, err := Parse(context.Background(), source)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	defer tree.Close()

	var method *sitter.Node
	WalkTree(tree.RootNode(), func(node *sitter.Node) bool {
		if node.Type() == "method_declaration" {
			method = node
			return false
		}
		return true
	})
	if method == nil {
		t.Fatal("method_declaration not found")
	}

	loc := GetLocation(method, "Calculator.cs")
	if loc.File != "Calculator.cs" {
		t.Errorf("expected file Calculator.cs, got %q", loc.File)
	}
	if loc.StartLine != 5 {
		t.Errorf("expected StartLine=5, got %d", loc.StartLine)
	}
	if loc.EndLine != 8 {
		t.Errorf("expected EndLine=8, got %d", loc.EndLine)
	}
}
