package generator

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/scaffgen/core/pkg/domain"
)

// valueTypes is the fixed list of value-type names that are not
// nullable-capable.
var valueTypes = map[string]bool{
	"int":     true,
	"bool":    true,
	"double":  true,
	"float":   true,
	"decimal": true,
	"long":    true,
	"short":   true,
	"byte":    true,
	"char":    true,
}

// voidReturnTypes yield no result variable when called (or awaited).
var voidReturnTypes = map[string]bool{
	"void":      true,
	"Task":      true,
	"ValueTask": true,
}

// IsNullableCapable reports whether a parameter type can receive null: its
// name carries the explicit nullability marker, or it is neither a known
// value type nor void.
func IsNullableCapable(typeName string) bool {
	if strings.HasSuffix(typeName, "?") {
		return true
	}
	return !valueTypes[typeName] && typeName != "void"
}

// SubjectField is the subject-under-test field name used in call expressions.
const SubjectField = "_sut"

// BuildTestCases derives the test cases for one method, in fixed order:
// one happy-path case, one null-input case per nullable-capable parameter,
// and one empty-input case per string parameter.
//
// A string parameter is both nullable-capable and string-typed, so it gets
// both a null-input and an empty-input case. The double coverage is
// intentional.
func BuildTestCases(method *domain.MethodMetadata) []domain.TestCase {
	cases := []domain.TestCase{buildHappyPath(method)}

	for _, p := range method.Parameters {
		if IsNullableCapable(p.Type) {
			cases = append(cases, buildNullInput(method, p))
		}
	}
	for _, p := range method.Parameters {
		if p.Type == "string" {
			cases = append(cases, buildEmptyInput(method, p))
		}
	}

	return cases
}

func buildHappyPath(method *domain.MethodMetadata) domain.TestCase {
	tc := domain.TestCase{
		Name:        fmt.Sprintf("%s_WithValidInput_ReturnsExpectedResult", method.Name),
		Description: fmt.Sprintf("%s should succeed for valid input", method.Name),
		Target:      method,
		Scenario:    domain.ScenarioHappyPath,
		Mocks:       buildMocks(method),
		Arrange:     buildArrange(method, "", ""),
		Act:         buildAct(method),
	}

	if tc.Act.Result != "" {
		tc.Assert = []domain.AssertStep{{
			Type:   domain.AssertNotNull,
			Actual: tc.Act.Result,
		}}
	}
	return tc
}

func buildNullInput(method *domain.MethodMetadata, param domain.ParameterInfo) domain.TestCase {
	act := buildAct(method)
	act.Result = ""
	act.ExpectsException = true
	act.ExceptionType = "ArgumentNullException"

	return domain.TestCase{
		Name:        fmt.Sprintf("%s_When%sIsNull_ThrowsArgumentNullException", method.Name, param.Name),
		Description: fmt.Sprintf("%s should reject null %s", method.Name, param.Name),
		Target:      method,
		Scenario:    domain.ScenarioNullInput,
		Mocks:       buildMocks(method),
		Arrange:     buildArrange(method, param.Name, "null"),
		Act:         act,
	}
}

func buildEmptyInput(method *domain.MethodMetadata, param domain.ParameterInfo) domain.TestCase {
	tc := domain.TestCase{
		Name:        fmt.Sprintf("%s_When%sIsEmpty_HandlesGracefully", method.Name, param.Name),
		Description: fmt.Sprintf("%s should handle empty %s", method.Name, param.Name),
		Target:      method,
		Scenario:    domain.ScenarioEmptyInput,
		Mocks:       buildMocks(method),
		Arrange:     buildArrange(method, param.Name, "string.Empty"),
		Act:         buildAct(method),
	}

	if tc.Act.Result != "" {
		tc.Assert = []domain.AssertStep{{
			Type:   domain.AssertNotNull,
			Actual: tc.Act.Result,
		}}
	}
	return tc
}

// buildMocks creates one setup per mockable dependency. The return value is
// the language-neutral default placeholder; refinement happens once used
// member names are tracked.
func buildMocks(method *domain.MethodMetadata) []domain.MockSetup {
	var mocks []domain.MockSetup
	for _, dep := range method.MockableDependencies() {
		mocks = append(mocks, domain.MockSetup{
			Dependency: dep,
			Returns:    "default",
		})
	}
	return mocks
}

// buildArrange declares one variable per parameter. When override names a
// parameter, its value replaces the type's default literal.
func buildArrange(method *domain.MethodMetadata, override, overrideValue string) []domain.ArrangeStep {
	var steps []domain.ArrangeStep
	for _, p := range method.Parameters {
		value := DefaultLiteral(p.Type)
		if p.Name == override {
			value = overrideValue
		}
		steps = append(steps, domain.ArrangeStep{
			Variable: p.Name,
			Type:     p.Type,
			Value:    value,
		})
	}
	return steps
}

func buildAct(method *domain.MethodMetadata) domain.ActStep {
	args := make([]string, 0, len(method.Parameters))
	for _, p := range method.Parameters {
		args = append(args, p.Name)
	}

	act := domain.ActStep{
		Expression: fmt.Sprintf("%s.%s(%s)", SubjectField, method.Name, strings.Join(args, ", ")),
		IsAsync:    method.IsAsync() || strings.HasPrefix(method.ReturnType, "Task"),
	}
	if !voidReturnTypes[method.ReturnType] {
		act.Result = "result"
	}
	return act
}

// DefaultLiteral maps a parameter type to the sample literal arranged for it.
func DefaultLiteral(typeName string) string {
	if strings.HasSuffix(typeName, "?") {
		return "null"
	}

	switch typeName {
	case "string":
		return `"test"`
	case "int", "long", "short", "byte":
		return "1"
	case "bool":
		return "true"
	case "double", "float", "decimal":
		return "1.0"
	case "Guid", "System.Guid":
		return "Guid.NewGuid()"
	case "DateTime", "System.DateTime":
		return "DateTime.Now"
	case "DateTimeOffset":
		return "DateTimeOffset.Now"
	}

	if element, ok := sequenceElement(typeName); ok {
		return fmt.Sprintf("new List<%s>()", element)
	}

	return fmt.Sprintf("default(%s)", typeName)
}

// sequenceElement extracts T from the common sequence-of-T type shapes.
func sequenceElement(typeName string) (string, bool) {
	for _, prefix := range []string{"List<", "IList<", "IEnumerable<", "ICollection<", "IReadOnlyList<"} {
		if strings.HasPrefix(typeName, prefix) && strings.HasSuffix(typeName, ">") {
			return typeName[len(prefix) : len(typeName)-1], true
		}
	}
	return "", false
}

// MockFieldBase derives the mock field's base name from a dependency type:
// the leading interface marker letter is dropped and the first remaining
// character lower-cased. IUserService becomes userService.
func MockFieldBase(typeName string) string {
	name := typeName
	if idx := strings.Index(name, "<"); idx >= 0 {
		name = name[:idx]
	}

	runes := []rune(name)
	if len(runes) >= 2 && runes[0] == 'I' && unicode.IsUpper(runes[1]) {
		runes = runes[1:]
	}
	if len(runes) == 0 {
		return "dep"
	}
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// DistinctDependencies returns the mockable dependencies across all methods
// of a class, one per type name, in first-seen order. The order fixes the
// positional constructor arguments of the subject under test.
func DistinctDependencies(methods []domain.MethodMetadata) []domain.DependencyInfo {
	seen := make(map[string]bool)
	var deps []domain.DependencyInfo
	for i := range methods {
		for _, d := range methods[i].Dependencies {
			if !d.CanBeMocked || seen[d.Type] {
				continue
			}
			seen[d.Type] = true
			deps = append(deps, d)
		}
	}
	return deps
}
