package csast

import (
	"context"
	"strings"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/scaffgen/core/pkg/parser"
)

func parseSource(t *testing.T, source string) (*sitter.Tree, []byte) {
	t.Helper()
	src := []byte(source)
	tree, err := parser.Parse(context.Background(), src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	t.Cleanup(tree.Close)
	return tree, src
}

func findNodeByType(root *sitter.Node, nodeType string) *sitter.Node {
	var found *sitter.Node
	parser.WalkTree(root, func(node *sitter.Node) bool {
		if found != nil {
			return false
		}
		if node.Type() == nodeType {
			found = node
			return false
		}
		return true
	})
	return found
}

func TestGetClassName(t *testing.T) {
	tree, src := parseSource(t, `public class OrderService { }`)

	class := findNodeByType(tree.RootNode(), NodeClassDeclaration)
	if class == nil {
		t.Fatal("class declaration not found")
	}
	if name := GetClassName(class, src); name != "OrderService" {
		t.Errorf("expected OrderService, got %q", name)
	}
}

func TestGetMethodName(t *testing.T) {
	tree, src := parseSource(t, `
public class C
{
    public void ProcessOrder(int id) { }
}
`)

	method := findNodeByType(tree.RootNode(), NodeMethodDeclaration)
	if method == nil {
		t.Fatal("method declaration not found")
	}
	if name := GetMethodName(method, src); name != "ProcessOrder" {
		t.Errorf("expected ProcessOrder, got %q", name)
	}
}

func TestGetModifiers(t *testing.T) {
	tree, src := parseSource(t, `
public class C
{
    public static async Task RunAsync() { }
}
`)

	method := findNodeByType(tree.RootNode(), NodeMethodDeclaration)
	mods := GetModifiers(method, src)

	if len(mods) != 3 {
		t.Fatalf("expected 3 modifiers, got %v", mods)
	}
	for i, want := range []string{"public", "static", "async"} {
		if mods[i] != want {
			t.Errorf("modifier %d: expected %q, got %q", i, want, mods[i])
		}
	}

	if !HasModifier(method, src, "async") {
		t.Error("expected HasModifier(async) to be true")
	}
	if HasModifier(method, src, "private") {
		t.Error("expected HasModifier(private) to be false")
	}
}

func TestGetReturnType(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{
			name:     "void",
			source:   `class C { public void Run() { } }`,
			expected: "void",
		},
		{
			name:     "simple type",
			source:   `class C { public int Count() { return 0; } }`,
			expected: "int",
		},
		{
			name:     "generic task",
			source:   `class C { public Task<IActionResult> Get() { return null; } }`,
			expected: "Task<IActionResult>",
		},
		{
			name:     "nullable",
			source:   `class C { public string? Find() { return null; } }`,
			expected: "string?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, src := parseSource(t, tt.source)

			method := findNodeByType(tree.RootNode(), NodeMethodDeclaration)
			if method == nil {
				t.Fatal("method declaration not found")
			}
			if got := GetReturnType(method, src); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestGetParameters(t *testing.T) {
	tree, src := parseSource(t, `
class C
{
    public void Configure(string name, int count = 10, bool verbose = true) { }
}
`)

	method := findNodeByType(tree.RootNode(), NodeMethodDeclaration)
	params := GetParameters(method, src)

	if len(params) != 3 {
		t.Fatalf("expected 3 parameters, got %d", len(params))
	}

	if params[0].Name != "name" || params[0].Type != "string" {
		t.Errorf("param 0: got %q %q", params[0].Type, params[0].Name)
	}
	if params[0].HasDefault {
		t.Error("param 0: expected no default")
	}

	if params[1].Name != "count" || params[1].Type != "int" {
		t.Errorf("param 1: got %q %q", params[1].Type, params[1].Name)
	}
	if !params[1].HasDefault || params[1].DefaultValue != "10" {
		t.Errorf("param 1: expected default 10, got %q (hasDefault=%v)", params[1].DefaultValue, params[1].HasDefault)
	}

	if !params[2].HasDefault || params[2].DefaultValue != "true" {
		t.Errorf("param 2: expected default true, got %q", params[2].DefaultValue)
	}
}

func TestGetParameters_NoParameters(t *testing.T) {
	tree, src := parseSource(t, `class C { public void Run() { } }`)

	method := findNodeByType(tree.RootNode(), NodeMethodDeclaration)
	if params := GetParameters(method, src); len(params) != 0 {
		t.Errorf("expected no parameters, got %d", len(params))
	}
}

func TestGetBaseTypes(t *testing.T) {
	tree, src := parseSource(t, `
public class OrdersController : ControllerBase, IDisposable
{
}
`)

	class := findNodeByType(tree.RootNode(), NodeClassDeclaration)
	bases := GetBaseTypes(class, src)

	if len(bases) != 2 {
		t.Fatalf("expected 2 base types, got %v", bases)
	}
	if bases[0] != "ControllerBase" {
		t.Errorf("expected ControllerBase, got %q", bases[0])
	}
	if bases[1] != "IDisposable" {
		t.Errorf("expected IDisposable, got %q", bases[1])
	}
}

func TestGetNamespace(t *testing.T) {
	t.Run("block scoped", func(t *testing.T) {
		tree, src := parseSource(t, `
namespace Shop.Web
{
    public class C
    {
        public void Run() { }
    }
}
`)
		method := findNodeByType(tree.RootNode(), NodeMethodDeclaration)
		if ns := GetNamespace(method, src); ns != "Shop.Web" {
			t.Errorf("expected Shop.Web, got %q", ns)
		}
	})

	t.Run("file scoped", func(t *testing.T) {
		tree, src := parseSource(t, `
namespace Shop.Functions;

public class C
{
    public void Run() { }
}
`)
		method := findNodeByType(tree.RootNode(), NodeMethodDeclaration)
		if ns := GetNamespace(method, src); ns != "Shop.Functions" {
			t.Errorf("expected Shop.Functions, got %q", ns)
		}
	})

	t.Run("no namespace", func(t *testing.T) {
		tree, src := parseSource(t, `class C { void Run() { } }`)
		method := findNodeByType(tree.RootNode(), NodeMethodDeclaration)
		if ns := GetNamespace(method, src); ns != "" {
			t.Errorf("expected empty namespace, got %q", ns)
		}
	})
}

func TestGetConstructorsAndMethods(t *testing.T) {
	tree, src := parseSource(t, `
public class OrderService
{
    private readonly IOrderRepository _repository;

    public OrderService(IOrderRepository repository)
    {
        _repository = repository;
    }

    public void Save(Order order) { }

    private bool Validate(Order order) { return true; }
}
`)

	class := findNodeByType(tree.RootNode(), NodeClassDeclaration)

	ctors := GetConstructors(class)
	if len(ctors) != 1 {
		t.Fatalf("expected 1 constructor, got %d", len(ctors))
	}
	ctorParams := GetParameters(ctors[0], src)
	if len(ctorParams) != 1 || ctorParams[0].Type != "IOrderRepository" {
		t.Errorf("unexpected constructor parameters: %+v", ctorParams)
	}

	methods := GetMethods(class)
	if len(methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(methods))
	}
	if name := GetMethodName(methods[0], src); name != "Save" {
		t.Errorf("expected Save, got %q", name)
	}
}

func TestGetFields(t *testing.T) {
	tree, src := parseSource(t, `
public class C
{
    private readonly IOrderService _orders;
    private static ILogger _log;
    private int _count, _total;
}
`)

	class := findNodeByType(tree.RootNode(), NodeClassDeclaration)
	fields := GetFields(class, src)

	if len(fields) != 4 {
		t.Fatalf("expected 4 fields, got %+v", fields)
	}
	if fields[0].Name != "_orders" || fields[0].Type != "IOrderService" || fields[0].Static {
		t.Errorf("field 0: got %+v", fields[0])
	}
	if fields[1].Name != "_log" || !fields[1].Static {
		t.Errorf("field 1: expected static _log, got %+v", fields[1])
	}
	if fields[2].Name != "_count" || fields[2].Type != "int" {
		t.Errorf("field 2: got %+v", fields[2])
	}
	if fields[3].Name != "_total" || fields[3].Type != "int" {
		t.Errorf("field 3: got %+v", fields[3])
	}
}

func TestAttributes(t *testing.T) {
	tree, src := parseSource(t, `
public class C
{
    [HttpGet]
    [Route("api/orders")]
    public void Get() { }
}
`)

	method := findNodeByType(tree.RootNode(), NodeMethodDeclaration)
	attrLists := GetAttributeLists(method)
	if len(attrLists) != 2 {
		t.Fatalf("expected 2 attribute lists, got %d", len(attrLists))
	}

	attrs := GetAttributes(attrLists)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	if name := GetAttributeName(attrs[0], src); name != "HttpGet" {
		t.Errorf("expected HttpGet, got %q", name)
	}

	if !HasAttribute(attrLists, src, "HttpGet") {
		t.Error("expected HasAttribute(HttpGet) to be true")
	}
	if HasAttribute(attrLists, src, "HttpPost") {
		t.Error("expected HasAttribute(HttpPost) to be false")
	}
}

func TestHasAttribute_SuffixedForm(t *testing.T) {
	tree, src := parseSource(t, `
public class C
{
    [HttpGetAttribute]
    public void Get() { }
}
`)

	method := findNodeByType(tree.RootNode(), NodeMethodDeclaration)
	if !HasAttribute(GetAttributeLists(method), src, "HttpGet") {
		t.Error("expected the Attribute-suffixed form to match")
	}
}

func TestGetAttributeFirstString(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{
			name: "regular string",
			source: `
public class C
{
    [FunctionName("ProcessOrder")]
    public void Run() { }
}
`,
			expected: "ProcessOrder",
		},
		{
			name: "verbatim string",
			source: `
public class C
{
    [FunctionName(@"ProcessOrder")]
    public void Run() { }
}
`,
			expected: "ProcessOrder",
		},
		{
			name: "no argument",
			source: `
public class C
{
    [FunctionName]
    public void Run() { }
}
`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, src := parseSource(t, tt.source)

			method := findNodeByType(tree.RootNode(), NodeMethodDeclaration)
			attrs := GetAttributes(GetAttributeLists(method))
			if len(attrs) == 0 {
				t.Fatal("no attributes found")
			}

			if got := GetAttributeFirstString(attrs[0], src); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestGetDocComment(t *testing.T) {
	tree, src := parseSource(t, `
public class C
{
    /// <summary>
    /// Saves the order.
    /// </summary>
    public void Save() { }

    public void NoDoc() { }
}
`)

	class := findNodeByType(tree.RootNode(), NodeClassDeclaration)
	methods := GetMethods(class)
	if len(methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(methods))
	}

	doc := GetDocComment(methods[0], src)
	if !strings.Contains(doc, "Saves the order.") {
		t.Errorf("expected doc comment to mention the summary, got %q", doc)
	}

	if doc := GetDocComment(methods[1], src); doc != "" {
		t.Errorf("expected empty doc comment, got %q", doc)
	}
}
