package nunit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scaffgen/core/pkg/domain"
)

func sampleMethod() domain.MethodMetadata {
	return domain.MethodMetadata{
		Name:           "GetOrder",
		ContainingType: "OrderService",
		Namespace:      "Shop.Services",
		ReturnType:     "Task<Order>",
		Parameters:     []domain.ParameterInfo{{Name: "name", Type: "string"}},
		Modifiers:      []string{"public", "async"},
		Dependencies: []domain.DependencyInfo{
			{
				Type:        "IOrderRepository",
				FullType:    "IOrderRepository",
				Variable:    "repository",
				Kind:        domain.DependencyKindConstructor,
				IsInterface: true,
				CanBeMocked: true,
			},
		},
	}
}

func TestGenerateTestClass(t *testing.T) {
	rendered := (&Generator{}).GenerateTestClass("OrderService", []domain.MethodMetadata{sampleMethod()})

	assert.Contains(t, rendered, "using NUnit.Framework;")
	assert.Contains(t, rendered, "using Moq;")
	assert.Contains(t, rendered, "namespace Shop.Services.Tests")
	assert.Contains(t, rendered, "[TestFixture]")
	assert.Contains(t, rendered, "public class OrderServiceTests")
	assert.Contains(t, rendered, "private Mock<IOrderRepository> _orderRepositoryMock;")
	assert.Contains(t, rendered, "[SetUp]")
	assert.Contains(t, rendered, "_orderRepositoryMock = new Mock<IOrderRepository>();")
	assert.Contains(t, rendered, "_sut = new OrderService(_orderRepositoryMock.Object);")

	assert.Equal(t, 3, strings.Count(rendered, "[Test]"))
}

func TestGenerateTestMethod_HappyPath(t *testing.T) {
	g := &Generator{}
	m := sampleMethod()

	cases := g.GenerateTestCases(&m)
	require.Len(t, cases, 3)

	rendered := g.GenerateTestMethod(cases[0])

	assert.Contains(t, rendered, "[Test]")
	assert.Contains(t, rendered, "public async Task GetOrder_WithValidInput_ReturnsExpectedResult()")
	assert.Contains(t, rendered, "var result = await _sut.GetOrder(name);")
	assert.Contains(t, rendered, "Assert.That(result, Is.Not.Null);")
}

func TestGenerateTestMethod_NullCase(t *testing.T) {
	g := &Generator{}
	m := sampleMethod()

	cases := g.GenerateTestCases(&m)
	require.Len(t, cases, 3)

	rendered := g.GenerateTestMethod(cases[1])

	// NUnit asserts async exceptions from a synchronous test method.
	assert.Contains(t, rendered, "public void GetOrder_WhennameIsNull_ThrowsArgumentNullException()")
	assert.Contains(t, rendered, "Assert.ThrowsAsync<ArgumentNullException>(async () => await _sut.GetOrder(name));")
	assert.NotContains(t, rendered, "public async Task GetOrder_WhennameIsNull")
}

func TestRenderAssert(t *testing.T) {
	tests := []struct {
		name     string
		step     domain.AssertStep
		expected string
	}{
		{"equal", domain.AssertStep{Type: domain.AssertEqual, Expected: "3", Actual: "result"}, "Assert.That(result, Is.EqualTo(3));"},
		{"true", domain.AssertStep{Type: domain.AssertTrue, Actual: "ok"}, "Assert.That(ok, Is.True);"},
		{"not null", domain.AssertStep{Type: domain.AssertNotNull, Actual: "result"}, "Assert.That(result, Is.Not.Null);"},
		{"contains", domain.AssertStep{Type: domain.AssertContains, Expected: `"x"`, Actual: "result"}, `Assert.That(result, Does.Contain("x"));`},
		{"empty", domain.AssertStep{Type: domain.AssertEmpty, Actual: "items"}, "Assert.That(items, Is.Empty);"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, renderAssert(tt.step))
		})
	}
}
