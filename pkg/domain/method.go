// Package domain defines the core types for analyzed C# methods and
// generated test scaffolds.
package domain

// Category identifies the structural category of the source being analyzed.
type Category string

// Supported analyzer categories.
const (
	// CategoryAuto lets the dispatcher pick the category from path and content.
	CategoryAuto Category = "auto"
	// CategoryWebForms covers code-behind files for markup-backed pages and controls.
	CategoryWebForms Category = "webforms"
	// CategoryMVC covers ASP.NET controller classes.
	CategoryMVC Category = "mvc"
	// CategoryAzureFunction covers serverless function entry points.
	CategoryAzureFunction Category = "azurefunction"
	// CategoryDesktop covers WinForms/WPF classes and is the fallback category.
	CategoryDesktop Category = "desktop"
)

// DependencyKind describes how a dependency reaches the type under analysis.
type DependencyKind string

// Dependency kinds.
const (
	DependencyKindConstructor    DependencyKind = "constructor-injected"
	DependencyKindParameter      DependencyKind = "method-parameter"
	DependencyKindProperty       DependencyKind = "property-injected"
	DependencyKindStatic         DependencyKind = "static-dependency"
	DependencyKindField          DependencyKind = "field-dependency"
	DependencyKindServiceLocator DependencyKind = "service-locator"
)

// ParameterInfo describes one parameter of a discovered method.
type ParameterInfo struct {
	// Name is the parameter name as declared.
	Name string `json:"name"`
	// Type is the declared type name (source text, e.g. "string", "int?").
	Type string `json:"type"`
	// HasDefault reports whether the parameter declares a default value.
	HasDefault bool `json:"hasDefault"`
	// DefaultValue is the default value expression text, empty when absent.
	DefaultValue string `json:"defaultValue,omitempty"`
}

// DependencyInfo describes an injectable collaborator of the containing type.
//
// Invariant: CanBeMocked is true exactly when IsInterface is true. The
// current heuristic sets both from the interface naming convention.
type DependencyInfo struct {
	// Type is the short type name (e.g. "IUserService").
	Type string `json:"type"`
	// FullType is the fully qualified type name when known, else the short name.
	FullType string `json:"fullType"`
	// Variable is the parameter or field name holding the dependency.
	Variable string `json:"variable"`
	// Kind describes how the dependency is supplied.
	Kind DependencyKind `json:"kind"`
	// UsedMethods lists member names observed on the dependency.
	// Reserved for future refinement; may be empty.
	UsedMethods []string `json:"usedMethods,omitempty"`
	// IsInterface reports whether Type follows the interface naming convention.
	IsInterface bool `json:"isInterface"`
	// CanBeMocked reports whether the dependency is eligible for a test double.
	CanBeMocked bool `json:"canBeMocked"`
}

// MethodMetadata describes one method discovered by an analyzer.
// Values are immutable once returned by the producing analyzer.
type MethodMetadata struct {
	// Name is the method name.
	Name string `json:"name"`
	// ContainingType is the name of the declaring class.
	ContainingType string `json:"containingType"`
	// Namespace is the enclosing namespace, empty when the file declares none.
	Namespace string `json:"namespace,omitempty"`
	// ReturnType is the declared return type text (e.g. "Task<int>", "void").
	ReturnType string `json:"returnType"`
	// Parameters holds the declared parameters in order.
	Parameters []ParameterInfo `json:"parameters,omitempty"`
	// Modifiers holds the declaration modifiers in order (public, static, async, ...).
	Modifiers []string `json:"modifiers,omitempty"`
	// Documentation carries free-text notes attached by the analyzer,
	// such as lifecycle tags or inferred HTTP verbs.
	Documentation string `json:"documentation,omitempty"`
	// Dependencies lists the injectable collaborators of the containing type.
	Dependencies []DependencyInfo `json:"dependencies,omitempty"`
	// FilePath is the path of the source file the method was read from.
	FilePath string `json:"filePath"`
	// StartLine and EndLine are 1-based source line bounds.
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`
}

// IsAsync reports whether the method carries the async modifier.
func (m *MethodMetadata) IsAsync() bool {
	return m.hasModifier("async")
}

// IsStatic reports whether the method carries the static modifier.
func (m *MethodMetadata) IsStatic() bool {
	return m.hasModifier("static")
}

// IsPublic reports whether the method carries the public modifier.
func (m *MethodMetadata) IsPublic() bool {
	return m.hasModifier("public")
}

func (m *MethodMetadata) hasModifier(name string) bool {
	for _, mod := range m.Modifiers {
		if mod == name {
			return true
		}
	}
	return false
}

// MockableDependencies returns the dependencies eligible for test doubles.
func (m *MethodMetadata) MockableDependencies() []DependencyInfo {
	var deps []DependencyInfo
	for _, d := range m.Dependencies {
		if d.CanBeMocked {
			deps = append(deps, d)
		}
	}
	return deps
}
