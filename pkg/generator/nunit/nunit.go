// Package nunit renders test scaffolds in the NUnit style with Moq mocks.
package nunit

import (
	"fmt"
	"strings"

	"github.com/scaffgen/core/pkg/domain"
	"github.com/scaffgen/core/pkg/generator"
)

const frameworkName = "nunit"

func init() {
	generator.Register(frameworkName, func() generator.Generator {
		return &Generator{}
	})
}

// Generator renders NUnit test classes.
type Generator struct{}

// Framework implements [generator.Generator].
func (g *Generator) Framework() string {
	return frameworkName
}

// GetRequiredImports returns the using directives of a rendered file.
func (g *Generator) GetRequiredImports() []string {
	return []string{
		"System",
		"System.Collections.Generic",
		"System.Threading.Tasks",
		"Moq",
		"NUnit.Framework",
	}
}

// GenerateTestCases derives the shared test-case model for one method.
func (g *Generator) GenerateTestCases(method *domain.MethodMetadata) []domain.TestCase {
	return generator.BuildTestCases(method)
}

// GenerateMockSetups renders the mock instantiation lines for a dependency
// list.
func (g *Generator) GenerateMockSetups(deps []domain.DependencyInfo) string {
	var b strings.Builder
	for _, dep := range deps {
		fmt.Fprintf(&b, "%s = new Mock<%s>();\n", mockField(dep.Type), dep.Type)
	}
	return b.String()
}

// GenerateTestClass renders one complete test-fixture source file for all
// methods of a containing type. Mocks are recreated per test in the [SetUp]
// routine and passed to the subject positionally in first-seen order.
func (g *Generator) GenerateTestClass(className string, methods []domain.MethodMetadata) string {
	deps := generator.DistinctDependencies(methods)
	ns := testNamespace(methods)

	var b strings.Builder
	for _, imp := range g.GetRequiredImports() {
		fmt.Fprintf(&b, "using %s;\n", imp)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "namespace %s\n{\n", ns)
	b.WriteString("    [TestFixture]\n")
	fmt.Fprintf(&b, "    public class %sTests\n    {\n", className)

	for _, dep := range deps {
		fmt.Fprintf(&b, "        private Mock<%s> %s;\n", dep.Type, mockField(dep.Type))
	}
	fmt.Fprintf(&b, "        private %s %s;\n\n", className, generator.SubjectField)

	b.WriteString("        [SetUp]\n        public void SetUp()\n        {\n")
	if len(deps) > 0 {
		for _, line := range splitLines(g.GenerateMockSetups(deps)) {
			fmt.Fprintf(&b, "            %s\n", line)
		}
	}
	fmt.Fprintf(&b, "            %s = new %s(%s);\n", generator.SubjectField, className, ctorArgs(deps))
	b.WriteString("        }\n")

	for i := range methods {
		for _, tc := range g.GenerateTestCases(&methods[i]) {
			b.WriteString("\n")
			b.WriteString(indent(g.GenerateTestMethod(tc), "        "))
		}
	}

	b.WriteString("    }\n}\n")
	return b.String()
}

// GenerateTestMethod renders a single arrange/act/assert test method.
func (g *Generator) GenerateTestMethod(tc domain.TestCase) string {
	var b strings.Builder
	b.WriteString("[Test]\n")
	if tc.Act.IsAsync && !tc.Act.ExpectsException {
		fmt.Fprintf(&b, "public async Task %s()\n{\n", tc.Name)
	} else {
		fmt.Fprintf(&b, "public void %s()\n{\n", tc.Name)
	}

	b.WriteString("    // Arrange\n")
	for _, step := range tc.Arrange {
		fmt.Fprintf(&b, "    %s %s = %s;\n", step.Type, step.Variable, step.Value)
	}
	for _, mock := range tc.Mocks {
		fmt.Fprintf(&b, "    // %s.Setup(x => x.Member()).Returns(%s);\n",
			mockField(mock.Dependency.Type), mock.Returns)
	}

	b.WriteString("\n    // Act\n")
	writeAct(&b, tc.Act)

	b.WriteString("\n    // Assert\n")
	if tc.Act.ExpectsException {
		b.WriteString("    // Exception asserted in the act step\n")
	} else if len(tc.Assert) == 0 {
		fmt.Fprintf(&b, "    // TODO: assert the observable effects of %s\n", tc.Act.Expression)
	}
	for _, step := range tc.Assert {
		fmt.Fprintf(&b, "    %s\n", renderAssert(step))
	}

	b.WriteString("}\n")
	return b.String()
}

func writeAct(b *strings.Builder, act domain.ActStep) {
	switch {
	case act.ExpectsException && act.IsAsync:
		fmt.Fprintf(b, "    Assert.ThrowsAsync<%s>(async () => await %s);\n", act.ExceptionType, act.Expression)
	case act.ExpectsException:
		fmt.Fprintf(b, "    Assert.Throws<%s>(() => %s);\n", act.ExceptionType, act.Expression)
	case act.Result != "" && act.IsAsync:
		fmt.Fprintf(b, "    var %s = await %s;\n", act.Result, act.Expression)
	case act.Result != "":
		fmt.Fprintf(b, "    var %s = %s;\n", act.Result, act.Expression)
	case act.IsAsync:
		fmt.Fprintf(b, "    await %s;\n", act.Expression)
	default:
		fmt.Fprintf(b, "    %s;\n", act.Expression)
	}
}

func renderAssert(step domain.AssertStep) string {
	switch step.Type {
	case domain.AssertEqual:
		return fmt.Sprintf("Assert.That(%s, Is.EqualTo(%s));", step.Actual, step.Expected)
	case domain.AssertNotEqual:
		return fmt.Sprintf("Assert.That(%s, Is.Not.EqualTo(%s));", step.Actual, step.Expected)
	case domain.AssertTrue:
		return fmt.Sprintf("Assert.That(%s, Is.True);", step.Actual)
	case domain.AssertFalse:
		return fmt.Sprintf("Assert.That(%s, Is.False);", step.Actual)
	case domain.AssertNull:
		return fmt.Sprintf("Assert.That(%s, Is.Null);", step.Actual)
	case domain.AssertNotNull:
		return fmt.Sprintf("Assert.That(%s, Is.Not.Null);", step.Actual)
	case domain.AssertThrows:
		return fmt.Sprintf("Assert.Throws<%s>(() => %s);", step.Expected, step.Actual)
	case domain.AssertContains:
		return fmt.Sprintf("Assert.That(%s, Does.Contain(%s));", step.Actual, step.Expected)
	case domain.AssertEmpty:
		return fmt.Sprintf("Assert.That(%s, Is.Empty);", step.Actual)
	case domain.AssertNotEmpty:
		return fmt.Sprintf("Assert.That(%s, Is.Not.Empty);", step.Actual)
	}
	return fmt.Sprintf("// unsupported assertion: %s", step.Type)
}

func mockField(typeName string) string {
	return "_" + generator.MockFieldBase(typeName) + "Mock"
}

func ctorArgs(deps []domain.DependencyInfo) string {
	args := make([]string, 0, len(deps))
	for _, dep := range deps {
		args = append(args, mockField(dep.Type)+".Object")
	}
	return strings.Join(args, ", ")
}

func testNamespace(methods []domain.MethodMetadata) string {
	for _, m := range methods {
		if m.Namespace != "" {
			return m.Namespace + ".Tests"
		}
	}
	return "Tests"
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func indent(s, pad string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(pad + line + "\n")
	}
	return b.String()
}
