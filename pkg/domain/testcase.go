package domain

// Scenario names the intent category of a synthesized test case.
type Scenario string

// Test scenarios.
const (
	ScenarioHappyPath         Scenario = "happy-path"
	ScenarioNullInput         Scenario = "null-input"
	ScenarioEmptyInput        Scenario = "empty-input"
	ScenarioInvalidInput      Scenario = "invalid-input"
	ScenarioExceptionThrown   Scenario = "exception-thrown"
	ScenarioEdgeCase          Scenario = "edge-case"
	ScenarioBoundaryCondition Scenario = "boundary-condition"
)

// AssertionType names the kind of assertion an AssertStep renders to.
type AssertionType string

// Assertion types.
const (
	AssertEqual    AssertionType = "equal"
	AssertNotEqual AssertionType = "not-equal"
	AssertTrue     AssertionType = "true"
	AssertFalse    AssertionType = "false"
	AssertNull     AssertionType = "null"
	AssertNotNull  AssertionType = "not-null"
	AssertThrows   AssertionType = "throws"
	AssertContains AssertionType = "contains"
	AssertEmpty    AssertionType = "empty"
	AssertNotEmpty AssertionType = "not-empty"
)

// MockSetup describes one mock configuration in a test case's arrange phase.
type MockSetup struct {
	// Dependency is the collaborator being mocked.
	Dependency DependencyInfo `json:"dependency"`
	// Method is the stubbed member name, empty when no call is known yet.
	Method string `json:"method,omitempty"`
	// Returns is the return-value expression text.
	Returns string `json:"returns,omitempty"`
	// Matchers holds parameter-matcher expression texts.
	Matchers []string `json:"matchers,omitempty"`
}

// ArrangeStep declares one local variable in a test case's arrange phase.
type ArrangeStep struct {
	Variable string `json:"variable"`
	Type     string `json:"type"`
	Value    string `json:"value"`
	Comment  string `json:"comment,omitempty"`
}

// ActStep describes the invocation of the method under test.
type ActStep struct {
	// Expression is the call expression text, without await.
	Expression string `json:"expression"`
	// Result is the variable receiving the call result, empty for void calls.
	Result string `json:"result,omitempty"`
	// IsAsync reports whether the call must be awaited.
	IsAsync bool `json:"isAsync"`
	// ExpectsException reports whether the act is wrapped in an exception assertion.
	ExpectsException bool `json:"expectsException"`
	// ExceptionType is the expected exception type name, empty when none.
	ExceptionType string `json:"exceptionType,omitempty"`
}

// AssertStep describes one assertion in a test case's assert phase.
type AssertStep struct {
	Type     AssertionType `json:"type"`
	Expected string        `json:"expected,omitempty"`
	Actual   string        `json:"actual,omitempty"`
	Message  string        `json:"message,omitempty"`
}

// TestCase is one synthesized test scaffold for a target method.
// Created by a generator and consumed immediately for rendering.
type TestCase struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Target      *MethodMetadata `json:"-"`
	Scenario    Scenario        `json:"scenario"`
	Mocks       []MockSetup     `json:"mocks,omitempty"`
	Arrange     []ArrangeStep   `json:"arrange,omitempty"`
	Act         ActStep         `json:"act"`
	Assert      []AssertStep    `json:"assert,omitempty"`
}
