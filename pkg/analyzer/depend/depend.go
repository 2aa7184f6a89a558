// Package depend decides which constructor parameters and fields of a class
// count as injectable, mockable dependencies. Every analyzer variant shares
// this logic.
package depend

import (
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/scaffgen/core/pkg/domain"
	"github.com/scaffgen/core/pkg/parser/csast"
)

// DefaultExcludedTypes lists primitive and value-type names that are never
// dependencies. The list is configurable because its completeness is not
// guaranteed; a missing entry yields a false positive, a wrong entry silently
// drops a real dependency.
var DefaultExcludedTypes = []string{
	"bool", "byte", "sbyte", "char", "decimal", "double", "float",
	"int", "uint", "long", "ulong", "short", "ushort",
	"string", "object", "void", "var", "dynamic",
	"DateTime", "DateTimeOffset", "TimeSpan", "Guid", "Uri",
	"CancellationToken",
}

// DefaultExcludedControls lists common UI-control type names that look like
// dependencies in code-behind classes but are never mocked.
var DefaultExcludedControls = []string{
	"Button", "Label", "TextBox", "RichTextBox", "CheckBox", "RadioButton",
	"ComboBox", "ListBox", "ListView", "TreeView", "DataGridView", "DataGrid",
	"Panel", "GroupBox", "TabControl", "TabPage", "PictureBox", "ProgressBar",
	"Timer", "ToolTip", "MenuStrip", "StatusStrip", "ToolStrip", "ContextMenuStrip",
	"NumericUpDown", "DateTimePicker", "MonthCalendar", "LinkLabel", "SplitContainer",
	"FlowLayoutPanel", "TableLayoutPanel", "GridView", "Repeater", "PlaceHolder",
	"Literal", "HiddenField", "DropDownList",
}

// DefaultExcludedNamespacePrefixes lists platform UI namespaces whose types
// are excluded by prefix match on the declared type text.
var DefaultExcludedNamespacePrefixes = []string{
	"System.Windows.Forms.",
	"System.Windows.",
}

// Option customizes an [Extractor].
type Option func(*Extractor)

// WithExcludedTypes adds type names to the exclusion set.
func WithExcludedTypes(names ...string) Option {
	return func(e *Extractor) {
		for _, n := range names {
			e.excluded[n] = true
		}
	}
}

// WithExcludedNamespaces adds namespace prefixes to the exclusion set.
func WithExcludedNamespaces(prefixes ...string) Option {
	return func(e *Extractor) {
		e.excludedPrefixes = append(e.excludedPrefixes, prefixes...)
	}
}

// Extractor inspects class declarations for injectable dependencies.
type Extractor struct {
	excluded         map[string]bool
	excludedPrefixes []string
}

// NewExtractor builds an Extractor with the default exclusion sets.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		excluded:         make(map[string]bool),
		excludedPrefixes: append([]string(nil), DefaultExcludedNamespacePrefixes...),
	}
	for _, n := range DefaultExcludedTypes {
		e.excluded[n] = true
	}
	for _, n := range DefaultExcludedControls {
		e.excluded[n] = true
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ShouldInclude reports whether a declared type text qualifies as a dependency.
func (e *Extractor) ShouldInclude(typeName string) bool {
	if typeName == "" {
		return false
	}
	for _, prefix := range e.excludedPrefixes {
		if strings.HasPrefix(typeName, prefix) {
			return false
		}
	}
	short := ShortTypeName(typeName)
	if short == "" {
		return false
	}
	return !e.excluded[short] && !e.excluded[baseName(short)]
}

// IsInterfaceName reports whether a type name follows the C# interface
// convention: a leading 'I' immediately followed by another upper-case letter.
func IsInterfaceName(typeName string) bool {
	name := baseName(ShortTypeName(typeName))
	runes := []rune(name)
	if len(runes) < 2 {
		return false
	}
	return runes[0] == 'I' && unicode.IsUpper(runes[1])
}

// ShortTypeName strips namespace qualification and nullability markers,
// keeping generic arguments: "Services.IRepo<User>?" -> "IRepo<User>".
func ShortTypeName(typeName string) string {
	name := strings.TrimSpace(typeName)
	name = strings.TrimSuffix(name, "?")

	// Strip the namespace path of the outer type only; a dot inside
	// generic arguments does not qualify the outer name.
	depth := 0
	lastDot := -1
	for i, r := range name {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case '.':
			if depth == 0 {
				lastDot = i
			}
		}
	}
	if lastDot >= 0 {
		name = name[lastDot+1:]
	}
	return name
}

func baseName(short string) string {
	if idx := strings.Index(short, "<"); idx >= 0 {
		return short[:idx]
	}
	return short
}

// New builds a [domain.DependencyInfo] for a declared type and variable.
// CanBeMocked always equals IsInterface; the interface-naming convention is
// the only mockability signal.
func (e *Extractor) New(typeName, variable string, kind domain.DependencyKind) domain.DependencyInfo {
	short := ShortTypeName(typeName)
	isInterface := IsInterfaceName(typeName)

	fullType := strings.TrimSpace(typeName)
	if fullType == short {
		fullType = short
	}

	return domain.DependencyInfo{
		Type:        short,
		FullType:    fullType,
		Variable:    variable,
		Kind:        kind,
		IsInterface: isInterface,
		CanBeMocked: isInterface,
	}
}

// FromConstructors extracts constructor-injected dependencies of a class.
func (e *Extractor) FromConstructors(classNode *sitter.Node, source []byte) []domain.DependencyInfo {
	var deps []domain.DependencyInfo
	for _, ctor := range csast.GetConstructors(classNode) {
		for _, param := range csast.GetParameters(ctor, source) {
			if !e.ShouldInclude(param.Type) {
				continue
			}
			deps = append(deps, e.New(param.Type, param.Name, domain.DependencyKindConstructor))
		}
	}
	return dedupe(deps)
}

// FromFields extracts field-held dependencies of a class. Static fields are
// tagged as static dependencies.
func (e *Extractor) FromFields(classNode *sitter.Node, source []byte) []domain.DependencyInfo {
	var deps []domain.DependencyInfo
	for _, field := range csast.GetFields(classNode, source) {
		if !e.ShouldInclude(field.Type) {
			continue
		}
		kind := domain.DependencyKindField
		if field.Static {
			kind = domain.DependencyKindStatic
		}
		deps = append(deps, e.New(field.Type, field.Name, kind))
	}
	return dedupe(deps)
}

// dedupe keeps the first occurrence per type name.
func dedupe(deps []domain.DependencyInfo) []domain.DependencyInfo {
	seen := make(map[string]bool, len(deps))
	var out []domain.DependencyInfo
	for _, d := range deps {
		if seen[d.Type] {
			continue
		}
		seen[d.Type] = true
		out = append(out, d)
	}
	return out
}
